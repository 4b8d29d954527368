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
import   "testing"

/* -------------------------------------------------------------------------- */

func TestKmerCodeIterator1(test *testing.T) {

  sequence := []byte("gattacagatcgtacgtacgtaaacgtgcaattccggtta")

  for _, k := range []int{4, 8, 17, 33} {
    it, err := NewKmerCodeIterator(sequence, k, false)
    if err != nil {
      test.Error("test failed")
    }
    n := 0
    for ; it.Ok(); it.Next() {
      reference, _ := EncodeKmer(string(sequence[n:n+k]))
      if !it.Get().Equals(reference) {
        test.Error("test failed")
      }
      n++
    }
    if n != len(sequence)-k+1 {
      test.Error("test failed")
    }
  }
}

func TestKmerCodeIterator2(test *testing.T) {

  sequence := []byte("gattacagatcgtacgtacgtaaacgtgcaattccggtta")
  k        := 8

  it, err := NewKmerCodeIterator(sequence, k, true)
  if err != nil {
    test.Error("test failed")
  }
  n := 0
  for ; it.Ok(); it.Next() {
    reference, _ := EncodeKmer(string(sequence[n:n+k]))
    if !it.Get().Equals(reference.Canonical(k)) {
      test.Error("test failed")
    }
    n++
  }
  if n != len(sequence)-k+1 {
    test.Error("test failed")
  }
}

func TestKmerCodeIterator3(test *testing.T) {

  // sequences shorter than k yield no k-mers
  it, err := NewKmerCodeIterator([]byte("acgt"), 8, true)
  if err != nil {
    test.Error("test failed")
  }
  if it.Ok() {
    test.Error("test failed")
  }
}
