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
import   "testing"

/* -------------------------------------------------------------------------- */

func TestCSRMatrix1(test *testing.T) {

  tmpdir, err := ioutil.TempDir("", "csr_test_")
  if err != nil {
    test.Error("test failed"); return
  }
  defer os.RemoveAll(tmpdir)

  // with canonicalization `aaaa' and `tttt' collapse onto the same
  // feature, observed three times in each genome
  extractor, _ := NewKmerExtractor(2, true, 0, tmpdir)

  counts := make([]GenomeCounts, 2)
  if counts[0], err = extractor.CountGenome(0, "genome1.fa", [][]byte{[]byte("aaaa")}); err != nil {
    test.Error("test failed"); return
  }
  if counts[1], err = extractor.CountGenome(1, "genome2.fa", [][]byte{[]byte("tttt")}); err != nil {
    test.Error("test failed"); return
  }
  vocabulary, _, err := BuildVocabulary(counts, 2, 1, 2)
  if err != nil {
    test.Error("test failed"); return
  }
  matrix, err := NewCpuExecutor(DeviceConfig{Threads: 1}).AssembleMatrix(counts, vocabulary)
  if err != nil {
    test.Error("test failed"); return
  }
  if err := matrix.Validate(); err != nil {
    test.Error("test failed")
  }
  if matrix.Rows != 2 || matrix.Cols != vocabulary.Len() {
    test.Error("test failed")
  }
  if len(matrix.RowPtr) != 3 || matrix.RowPtr[0] != 0 || matrix.RowPtr[1] != 1 || matrix.RowPtr[2] != 2 {
    test.Error("test failed")
  }
  if len(matrix.Col) != 2 || matrix.Col[0] != 0 || matrix.Col[1] != 0 {
    test.Error("test failed")
  }
  if len(matrix.Data) != 2 || matrix.Data[0] != 3.0 || matrix.Data[1] != 3.0 {
    test.Error("test failed")
  }
  if vocabulary.Decode(0) != "aa" {
    test.Error("test failed")
  }
}

func TestCSRMatrix2(test *testing.T) {

  tmpdir, err := ioutil.TempDir("", "csr_test_")
  if err != nil {
    test.Error("test failed"); return
  }
  defer os.RemoveAll(tmpdir)

  extractor, _ := NewKmerExtractor(8, true, 0, tmpdir)

  // the second genome is shorter than k and yields an empty row
  counts := make([]GenomeCounts, 2)
  if counts[0], err = extractor.CountGenome(0, "genome1.fa", [][]byte{[]byte("gattacagatcgtacgta")}); err != nil {
    test.Error("test failed"); return
  }
  if counts[1], err = extractor.CountGenome(1, "genome2.fa", [][]byte{[]byte("acgt")}); err != nil {
    test.Error("test failed"); return
  }
  vocabulary, _, err := BuildVocabulary(counts, 8, 1, 2)
  if err != nil {
    test.Error("test failed"); return
  }
  matrix, err := NewCpuExecutor(DeviceConfig{Threads: 1}).AssembleMatrix(counts, vocabulary)
  if err != nil {
    test.Error("test failed"); return
  }
  if err := matrix.Validate(); err != nil {
    test.Error("test failed")
  }
  if cols, _ := matrix.Row(1); len(cols) != 0 {
    test.Error("test failed")
  }
  if matrix.RowPtr[2] != int64(matrix.Nonzeros()) {
    test.Error("test failed")
  }
}

func TestCSRMatrix3(test *testing.T) {

  matrix := &CSRMatrix{
    Rows  : 2,
    Cols  : 3,
    RowPtr: []int64  {0, 2, 3},
    Col   : []uint32 {0, 2, 1},
    Data  : []float64{1, 2, 3} }

  if err := matrix.Validate(); err != nil {
    test.Error("test failed")
  }
  // column indices must be strictly increasing within a row
  matrix.Col[0] = 2
  if err := matrix.Validate(); err == nil {
    test.Error("test failed")
  }
  matrix.Col[0] = 0

  // row pointers must be monotone and end at the number of nonzeros
  matrix.RowPtr[2] = 2
  if err := matrix.Validate(); err == nil {
    test.Error("test failed")
  }
}
