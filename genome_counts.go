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

import "os"

/* -------------------------------------------------------------------------- */

// Sparse per-genome count artifact produced by the extractor. The counts
// reside in a single sorted run file, the struct itself holds only meta
// data. A zero Filename denotes an empty artifact, e.g. of a skipped
// genome, which later yields an empty matrix row.
type GenomeCounts struct {
  Index    int
  Path     string
  Filename string
  Distinct int
  Total    uint64
}

/* -------------------------------------------------------------------------- */

func (obj GenomeCounts) Empty() bool {
  return obj.Filename == "" || obj.Distinct == 0
}

// Iterate returns an iterator over the sorted (k-mer, count) pairs of
// this genome.
func (obj GenomeCounts) Iterate() (*MergeIterator, error) {
  if obj.Filename == "" {
    return NewMergeIterator(nil)
  }
  reader, err := OpenRunReader(obj.Filename)
  if err != nil {
    return nil, err
  }
  return NewMergeIterator([]*RunReader{reader})
}

// Load materializes the sorted count list in memory, e.g. for device
// transfers.
func (obj GenomeCounts) Load() ([]KmerCode, []uint64, error) {
  codes  := make([]KmerCode, 0, obj.Distinct)
  counts := make([]uint64,   0, obj.Distinct)

  it, err := obj.Iterate()
  if err != nil {
    return nil, nil, err
  }
  defer it.Close()

  for ; it.Ok(); it.Next() {
    codes  = append(codes,  it.GetCode())
    counts = append(counts, it.GetCount())
  }
  if err := it.Err(); err != nil {
    return nil, nil, err
  }
  return codes, counts, nil
}

// Remove deletes the backing run file. Artifacts are removed once the
// matrix assembly consumed them.
func (obj GenomeCounts) Remove() error {
  if obj.Filename == "" {
    return nil
  }
  return os.Remove(obj.Filename)
}
