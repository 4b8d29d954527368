/* Copyright (C) 2024 Philipp Benner
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <http://www.gnu.org/licenses/>.
 */

package kmermatrix

/* -------------------------------------------------------------------------- */

//import   "fmt"
import   "io/ioutil"
import   "os"
import   "path/filepath"
import   "testing"

/* -------------------------------------------------------------------------- */

func writeTestGenome(test *testing.T, directory, name, content string) string {
  filename := filepath.Join(directory, name)
  if err := ioutil.WriteFile(filename, []byte(content), 0644); err != nil {
    test.Error("test failed")
  }
  return filename
}

func testConfig(tmpdir string) Config {
  config := DefaultConfig()
  config.K           = 8
  config.MinFreq     = 1
  config.Device      = CPU
  config.Threads     = 2
  config.TmpDir      = tmpdir
  config.TmpRequired = -1
  return config
}

/* -------------------------------------------------------------------------- */

func TestPipeline1(test *testing.T) {

  tmpdir, err := ioutil.TempDir("", "pipeline_test_")
  if err != nil {
    test.Error("test failed"); return
  }
  defer os.RemoveAll(tmpdir)

  genomes := []string{
    writeTestGenome(test, tmpdir, "genome1.fa", ">chr1\ngattacagatcgtacgtacgtaaacgtgcaattccggtta\n"),
    writeTestGenome(test, tmpdir, "genome2.fa", ">chr1\ncgtacgtacgtacgtacgtacgtacg\n"),
    writeTestGenome(test, tmpdir, "genome3.fa", ">chr1\ngattacagattacagattacagatta\n") }

  config         := testConfig(tmpdir)
  config.MaxFreq  = len(genomes)

  pipeline, err := NewPipeline(config)
  if err != nil {
    test.Error("test failed"); return
  }
  matrix, vocabulary, stats, err := pipeline.Run(genomes)
  if err != nil {
    test.Error("test failed"); return
  }
  if err := matrix.Validate(); err != nil {
    test.Error("test failed")
  }
  if matrix.Rows != len(genomes) {
    test.Error("test failed")
  }
  if matrix.Cols != vocabulary.Len() || vocabulary.Len() == 0 {
    test.Error("test failed")
  }
  if stats.Genomes != len(genomes) || len(stats.Skipped) != 0 {
    test.Error("test failed")
  }
  if stats.Nonzeros != matrix.Nonzeros() {
    test.Error("test failed")
  }
  if stats.VocabularySize != vocabulary.Len() {
    test.Error("test failed")
  }
}

func TestPipeline2(test *testing.T) {

  tmpdir, err := ioutil.TempDir("", "pipeline_test_")
  if err != nil {
    test.Error("test failed"); return
  }
  defer os.RemoveAll(tmpdir)

  // the second genome is malformed and must be skipped, keeping its row
  // in the matrix empty
  genomes := []string{
    writeTestGenome(test, tmpdir, "genome1.fa", ">chr1\ngattacagatcgtacgtacgtaaacgtgcaattccggtta\n"),
    writeTestGenome(test, tmpdir, "genome2.fa", "this is not a fasta file\n"),
    writeTestGenome(test, tmpdir, "genome3.fa", ">chr1\ngattacagatcgtacgtacgt\n") }

  config         := testConfig(tmpdir)
  config.MaxFreq  = len(genomes)

  pipeline, err := NewPipeline(config)
  if err != nil {
    test.Error("test failed"); return
  }
  matrix, _, stats, err := pipeline.Run(genomes)
  if err != nil {
    test.Error("test failed"); return
  }
  if matrix.Rows != len(genomes) {
    test.Error("test failed")
  }
  if cols, _ := matrix.Row(1); len(cols) != 0 {
    test.Error("test failed")
  }
  if len(stats.Skipped) != 1 || stats.Skipped[0] != genomes[1] {
    test.Error("test failed")
  }
}

func TestPipeline3(test *testing.T) {

  tmpdir, err := ioutil.TempDir("", "pipeline_test_")
  if err != nil {
    test.Error("test failed"); return
  }
  defer os.RemoveAll(tmpdir)

  // invalid configurations are rejected before any processing starts
  config   := testConfig(tmpdir)
  config.K  = 7

  if _, err := NewPipeline(config); err == nil {
    test.Error("test failed")
  } else if _, ok := err.(ConfigError); !ok {
    test.Error("test failed")
  }

  config         = testConfig(tmpdir)
  config.MinFreq = 10
  config.MaxFreq = 5

  if _, err := NewPipeline(config); err == nil {
    test.Error("test failed")
  } else if _, ok := err.(ConfigError); !ok {
    test.Error("test failed")
  }

  config             = testConfig(tmpdir)
  config.TmpRequired = 1 << 60

  if _, err := NewPipeline(config); err == nil {
    test.Error("test failed")
  } else if _, ok := err.(ConfigError); !ok {
    test.Error("test failed")
  }
}

func TestPipeline5(test *testing.T) {

  tmpdir, err := ioutil.TempDir("", "pipeline_test_")
  if err != nil {
    test.Error("test failed"); return
  }
  defer os.RemoveAll(tmpdir)

  genomes := []string{
    writeTestGenome(test, tmpdir, "genome1.fa", ">chr1\ngattacagatcgtacgtacgtaaacgtgcaattccggtta\n"),
    writeTestGenome(test, tmpdir, "genome2.fa", ">chr1\ncgtacgtacgtacgtacgtacgtacg\n") }

  // an explicit maximum of zero retains nothing, only a negative value
  // requests the default of half the number of genomes
  config         := testConfig(tmpdir)
  config.MinFreq  = 0
  config.MaxFreq  = 0

  pipeline, err := NewPipeline(config)
  if err != nil {
    test.Error("test failed"); return
  }
  matrix, vocabulary, _, err := pipeline.Run(genomes)
  if err != nil {
    test.Error("test failed"); return
  }
  if vocabulary.Len() != 0 || matrix.Nonzeros() != 0 {
    test.Error("test failed")
  }

  config         = testConfig(tmpdir)
  config.MaxFreq = -1

  pipeline, err = NewPipeline(config)
  if err != nil {
    test.Error("test failed"); return
  }
  _, _, stats, err := pipeline.Run(genomes)
  if err != nil {
    test.Error("test failed"); return
  }
  if stats.MaxFreq != 1 {
    test.Error("test failed")
  }
}

func TestPipeline4(test *testing.T) {

  tmpdir, err := ioutil.TempDir("", "pipeline_test_")
  if err != nil {
    test.Error("test failed"); return
  }
  defer os.RemoveAll(tmpdir)

  genomes := []string{
    writeTestGenome(test, tmpdir, "genome1.fa", ">chr1\ngattacagatcgtacgtacgtaaacgtgcaattccggtta\n"),
    writeTestGenome(test, tmpdir, "genome2.fa", ">chr1\ncgtacgtacgtacgtacgtacgtacg\n") }

  // identical input must produce identical output across repeated runs,
  // independent of the number of threads
  config1         := testConfig(tmpdir)
  config1.MaxFreq  = len(genomes)
  config1.Threads  = 1
  config2         := testConfig(tmpdir)
  config2.MaxFreq  = len(genomes)
  config2.Threads  = 4

  pipeline1, _ := NewPipeline(config1)
  pipeline2, _ := NewPipeline(config2)

  matrix1, vocabulary1, _, err := pipeline1.Run(genomes)
  if err != nil {
    test.Error("test failed"); return
  }
  matrix2, vocabulary2, _, err := pipeline2.Run(genomes)
  if err != nil {
    test.Error("test failed"); return
  }
  if vocabulary1.Len() != vocabulary2.Len() {
    test.Error("test failed")
  }
  for i := 0; i < vocabulary1.Len(); i++ {
    if !vocabulary1.Kmers[i].Equals(vocabulary2.Kmers[i]) {
      test.Error("test failed")
    }
  }
  if matrix1.Nonzeros() != matrix2.Nonzeros() {
    test.Error("test failed")
  }
  for i := range matrix1.Col {
    if matrix1.Col[i] != matrix2.Col[i] || matrix1.Data[i] != matrix2.Data[i] {
      test.Error("test failed")
    }
  }
}
