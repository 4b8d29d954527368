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

import "fmt"

/* -------------------------------------------------------------------------- */

// Sparse count matrix in compressed sparse row layout. Rows correspond to
// genomes in input order, columns to vocabulary k-mers in ascending
// order.
type CSRMatrix struct {
  Rows   int
  Cols   int
  RowPtr []int64
  Col    []uint32
  Data   []float64
}

/* -------------------------------------------------------------------------- */

func (obj *CSRMatrix) Nonzeros() int {
  return len(obj.Col)
}

// Row returns the column indices and values of the given row.
func (obj *CSRMatrix) Row(i int) ([]uint32, []float64) {
  from := obj.RowPtr[i]
  to   := obj.RowPtr[i+1]
  return obj.Col[from:to], obj.Data[from:to]
}

// Sparsity returns the fraction of zero entries in percent.
func (obj *CSRMatrix) Sparsity() float64 {
  if obj.Rows == 0 || obj.Cols == 0 {
    return 100.0
  }
  return 100.0*(1.0 - float64(obj.Nonzeros())/(float64(obj.Rows)*float64(obj.Cols)))
}

/* -------------------------------------------------------------------------- */

// Validate checks the structural invariants of the matrix: the row
// pointer has length Rows+1, is non-decreasing and ends at the number of
// nonzeros; column indices are strictly increasing within each row and
// lie in [0, Cols).
func (obj *CSRMatrix) Validate() error {
  if len(obj.RowPtr) != obj.Rows+1 {
    return fmt.Errorf("row pointer has length %d, expected %d", len(obj.RowPtr), obj.Rows+1)
  }
  if obj.RowPtr[0] != 0 {
    return fmt.Errorf("row pointer does not start at zero")
  }
  if obj.RowPtr[obj.Rows] != int64(len(obj.Col)) {
    return fmt.Errorf("row pointer ends at %d, expected %d", obj.RowPtr[obj.Rows], len(obj.Col))
  }
  if len(obj.Col) != len(obj.Data) {
    return fmt.Errorf("column and data arrays differ in length")
  }
  for i := 0; i < obj.Rows; i++ {
    if obj.RowPtr[i] > obj.RowPtr[i+1] {
      return fmt.Errorf("row pointer is decreasing at row %d", i)
    }
    for j := obj.RowPtr[i]; j < obj.RowPtr[i+1]; j++ {
      if int(obj.Col[j]) >= obj.Cols {
        return fmt.Errorf("column index %d out of range at row %d", obj.Col[j], i)
      }
      if j > obj.RowPtr[i] && obj.Col[j-1] >= obj.Col[j] {
        return fmt.Errorf("column indices not strictly increasing at row %d", i)
      }
    }
  }
  return nil
}
