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

//go:build cuda

package kmermatrix

/* -------------------------------------------------------------------------- */

// build cuda/libkmxjoin.a with the Makefile in cuda/ before compiling
// with the cuda build tag

/*
#cgo CFLAGS: -I${SRCDIR}/cuda
#cgo LDFLAGS: -L${SRCDIR}/cuda -lkmxjoin -lcudart -lstdc++
#include "kmx_join.h"
*/
import "C"

import "unsafe"

/* -------------------------------------------------------------------------- */

// GPU executor. Per-genome count artifacts are batched under the transfer
// budget, flattened into packed key arrays and joined against the
// vocabulary by a parallel binary search on the device. The join emits
// for every key its column index, preserving the sorted per-genome order,
// so the output is identical in nonzero positions and values to the CPU
// path.
type GpuExecutor struct {
  MemoryBudget int64
}

/* -------------------------------------------------------------------------- */

func NewGpuExecutor(config DeviceConfig) (*GpuExecutor, error) {
  if C.kmx_device_available() == 0 {
    return nil, DeviceError{Device: "gpu", Reason: "no cuda device found"}
  }
  budget := config.MemoryBudget
  if budget <= 0 {
    budget = 1 << 30
  }
  return &GpuExecutor{MemoryBudget: budget}, nil
}

func (obj *GpuExecutor) Name() string {
  return "gpu"
}

/* -------------------------------------------------------------------------- */

func (obj *GpuExecutor) assembleBatch(counts []GenomeCounts, vocab []uint64, cols [][]uint32, vals [][]float64) error {
  keys   := []uint64  {}
  cnts   := [][]uint64{}
  length := []int     {}

  for _, c := range counts {
    codes, kc, err := c.Load()
    if err != nil {
      return err
    }
    for _, code := range codes {
      for j := 0; j < KmerCodeWords; j++ {
        keys = append(keys, code[j])
      }
    }
    cnts   = append(cnts,   kc)
    length = append(length, len(codes))
  }
  n := len(keys)/KmerCodeWords
  if n == 0 || len(vocab) == 0 {
    return nil
  }
  out := make([]int64, n)

  rc := C.kmx_join_batch(
    (*C.ulonglong)(unsafe.Pointer(&vocab[0])), C.longlong(len(vocab)/KmerCodeWords),
    (*C.ulonglong)(unsafe.Pointer(&keys [0])), C.longlong(n),
    (*C.longlong )(unsafe.Pointer(&out  [0])))
  if rc != 0 {
    return DeviceError{Device: "gpu", Reason: C.GoString(C.kmx_error_string(rc))}
  }
  // compact the join result into per-genome rows
  for i, p := 0, 0; i < len(counts); i++ {
    for j := 0; j < length[i]; j++ {
      if k := out[p+j]; k >= 0 {
        cols[i] = append(cols[i], uint32 (k))
        vals[i] = append(vals[i], float64(cnts[i][j]))
      }
    }
    p += length[i]
  }
  return nil
}

/* -------------------------------------------------------------------------- */

func (obj *GpuExecutor) AssembleMatrix(counts []GenomeCounts, vocabulary *Vocabulary) (*CSRMatrix, error) {
  n := len(counts)

  vocab := make([]uint64, KmerCodeWords*vocabulary.Len())
  for i, code := range vocabulary.Kmers {
    for j := 0; j < KmerCodeWords; j++ {
      vocab[KmerCodeWords*i+j] = code[j]
    }
  }
  cols := make([][]uint32,  n)
  vals := make([][]float64, n)

  // process genomes in batches bounded by the transfer budget
  for lo := 0; lo < n; {
    hi   := lo
    size := int64(0)
    for hi < n {
      s := int64(counts[hi].Distinct)*int64(runRecordSize)
      if hi > lo && size+s > obj.MemoryBudget {
        break
      }
      size += s
      hi   += 1
    }
    if err := obj.assembleBatch(counts[lo:hi], vocab, cols[lo:hi], vals[lo:hi]); err != nil {
      return nil, err
    }
    lo = hi
  }
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
