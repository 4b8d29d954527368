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
import   "compress/gzip"
import   "io/ioutil"
import   "os"
import   "path/filepath"
import   "strings"
import   "testing"

/* -------------------------------------------------------------------------- */

func TestReadFastaRuns1(test *testing.T) {

  fasta :=
    ">chr1 some header\n" +
    "acgtNNacg\n"         +
    "gtt\n"               +
    ">chr2\n"             +
    "ggg-tttRYat\n"

  runs, err := ReadFastaRuns(strings.NewReader(fasta))
  if err != nil {
    test.Error("test failed")
  }
  expected := []string{"acgt", "acggtt", "ggg", "ttt", "at"}

  if len(runs) != len(expected) {
    test.Error("test failed")
  } else {
    for i := range runs {
      if string(runs[i]) != expected[i] {
        test.Error("test failed")
      }
    }
  }
}

func TestReadFastaRuns2(test *testing.T) {

  // record boundaries break runs even without ambiguous characters
  fasta :=
    ">chr1\n" +
    "acgt\n"  +
    ">chr2\n" +
    "acgt\n"

  runs, err := ReadFastaRuns(strings.NewReader(fasta))
  if err != nil {
    test.Error("test failed")
  }
  if len(runs) != 2 {
    test.Error("test failed")
  }
}

func TestReadFastaRuns3(test *testing.T) {

  if _, err := ReadFastaRuns(strings.NewReader("acgt\n>chr1\nacgt\n")); err == nil {
    test.Error("test failed")
  }
  if _, err := ReadFastaRuns(strings.NewReader(">chr1\nacg5t\n")); err == nil {
    test.Error("test failed")
  }
  if _, err := ReadFastaRuns(strings.NewReader("")); err == nil {
    test.Error("test failed")
  }
}

func TestReadFastaRuns4(test *testing.T) {

  // unwrapped fasta puts a whole chromosome on a single line, which must
  // not be limited by the read buffer size
  sequence := strings.Repeat("gattacagt", 300000)

  fasta :=
    ">chr1\n"        +
    sequence + "\n"  +
    ">chr2\n"        +
    sequence + "n" + sequence + "\n"

  runs, err := ReadFastaRuns(strings.NewReader(fasta))
  if err != nil {
    test.Error("test failed"); return
  }
  if len(runs) != 3 {
    test.Error("test failed"); return
  }
  if string(runs[0]) != sequence ||
     string(runs[1]) != sequence ||
     string(runs[2]) != sequence {
    test.Error("test failed")
  }
}

func TestImportFastaRuns1(test *testing.T) {

  tmpdir, err := ioutil.TempDir("", "sequence_runs_test_")
  if err != nil {
    test.Error("test failed"); return
  }
  defer os.RemoveAll(tmpdir)

  filename := filepath.Join(tmpdir, "genome.fa.gz")

  f, err := os.Create(filename)
  if err != nil {
    test.Error("test failed"); return
  }
  w := gzip.NewWriter(f)
  w.Write([]byte(">chr1\nacgtnacgt\n"))
  w.Close()
  f.Close()

  runs, err := ImportFastaRuns(filename)
  if err != nil {
    test.Error("test failed")
  }
  if len(runs) != 2 || string(runs[0]) != "acgt" || string(runs[1]) != "acgt" {
    test.Error("test failed")
  }
}

func TestImportFastaRuns2(test *testing.T) {

  // failures are scoped to the file so that callers can skip the genome
  if _, err := ImportFastaRuns("/does/not/exist.fa"); err == nil {
    test.Error("test failed")
  } else if _, ok := err.(FormatError); !ok {
    test.Error("test failed")
  }
}
