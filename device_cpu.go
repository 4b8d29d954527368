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

import "github.com/pbenner/threadpool"

/* -------------------------------------------------------------------------- */

type CpuExecutor struct {
  Threads int
}

/* -------------------------------------------------------------------------- */

func NewCpuExecutor(config DeviceConfig) *CpuExecutor {
  threads := config.Threads
  if threads < 1 {
    threads = 1
  }
  return &CpuExecutor{Threads: threads}
}

func (obj *CpuExecutor) Name() string {
  return "cpu"
}

/* -------------------------------------------------------------------------- */

// Intersect the sorted counts of one genome with the vocabulary. Since
// both sides share the same k-mer ordering, a single sorted merge suffices
// and the resulting column indices emerge strictly increasing.
func assembleRow(counts GenomeCounts, vocabulary *Vocabulary) ([]uint32, []float64, error) {
  if counts.Empty() {
    return nil, nil, nil
  }
  it, err := counts.Iterate()
  if err != nil {
    return nil, nil, ResourceError{Op: "opening count artifact failed", Err: err}
  }
  defer it.Close()

  cols := []uint32 {}
  vals := []float64{}

  for j := 0; it.Ok(); it.Next() {
    code := it.GetCode()
    for j < vocabulary.Len() && vocabulary.Kmers[j].Less(code) {
      j++
    }
    if j < vocabulary.Len() && vocabulary.Kmers[j] == code {
      cols = append(cols, uint32(j))
      vals = append(vals, float64(it.GetCount()))
      j++
    }
  }
  if err := it.Err(); err != nil {
    return nil, nil, ResourceError{Op: "reading count artifact failed", Err: err}
  }
  return cols, vals, nil
}

/* -------------------------------------------------------------------------- */

func (obj *CpuExecutor) AssembleMatrix(counts []GenomeCounts, vocabulary *Vocabulary) (*CSRMatrix, error) {
  n    := len(counts)
  cols := make([][]uint32,  n)
  vals := make([][]float64, n)

  pool := threadpool.New(obj.Threads, 100*obj.Threads)

  err := pool.RangeJob(0, n, func(i int, pool threadpool.ThreadPool, erf func() error) error {
    if erf() != nil {
      return nil
    }
    c, v, err := assembleRow(counts[i], vocabulary)
    if err != nil {
      return err
    }
    cols[i] = c
    vals[i] = v
    return nil
  })
  if err != nil {
    return nil, err
  }
  // concatenate rows in genome input order
  nnz := 0
  for i := 0; i < n; i++ {
    nnz += len(cols[i])
  }
  matrix := &CSRMatrix{Rows: n, Cols: vocabulary.Len()}
  matrix.RowPtr = make([]int64,   n+1)
  matrix.Col    = make([]uint32,  0, nnz)
  matrix.Data   = make([]float64, 0, nnz)

  for i := 0; i < n; i++ {
    matrix.Col    = append(matrix.Col,  cols[i]...)
    matrix.Data   = append(matrix.Data, vals[i]...)
    matrix.RowPtr[i+1] = int64(len(matrix.Col))
  }
  return matrix, nil
}
