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
import "os"

import "github.com/twotwotwo/sorts"

/* -------------------------------------------------------------------------- */

type kmerCodeSlice []KmerCode

func (obj kmerCodeSlice) Len() int {
  return len(obj)
}

func (obj kmerCodeSlice) Less(i, j int) bool {
  return obj[i].Less(obj[j])
}

func (obj kmerCodeSlice) Swap(i, j int) {
  obj[i], obj[j] = obj[j], obj[i]
}

/* -------------------------------------------------------------------------- */

// Extracts the sparse (k-mer, count) map of a single genome. Counting is
// performed in memory until the map exceeds MaxEntries, at which point it
// is flushed to a sorted on-disk spill run and accumulation resumes with
// a fresh map. The final artifact is obtained by a k-way merge of all
// spill runs of the genome. A non-positive MaxEntries disables spilling.
type KmerExtractor struct {
  K          int
  Normalize  bool
  MaxEntries int
  TmpDir     string
}

/* -------------------------------------------------------------------------- */

func NewKmerExtractor(k int, normalize bool, maxEntries int, tmpdir string) (KmerExtractor, error) {
  r := KmerExtractor{K: k, Normalize: normalize, MaxEntries: maxEntries, TmpDir: tmpdir}
  if k < 1 || k > MaxKmerSize {
    return r, fmt.Errorf("NewKmerExtractor(): invalid k-mer size `%d'", k)
  }
  return r, nil
}

/* -------------------------------------------------------------------------- */

func sortedCodes(counts map[KmerCode]uint64) []KmerCode {
  codes := make(kmerCodeSlice, 0, len(counts))
  for code := range counts {
    codes = append(codes, code)
  }
  sorts.Quicksort(codes)
  return codes
}

func (obj KmerExtractor) writeSorted(filename string, counts map[KmerCode]uint64) (int, error) {
  writer, err := NewRunWriter(filename)
  if err != nil {
    return 0, ResourceError{Op: "creating run file failed", Err: err}
  }
  for _, code := range sortedCodes(counts) {
    if err := writer.Write(code, counts[code]); err != nil {
      writer.Close()
      return 0, ResourceError{Op: fmt.Sprintf("writing run file `%s' failed", filename), Err: err}
    }
  }
  n := writer.Len()
  if err := writer.Close(); err != nil {
    return 0, ResourceError{Op: fmt.Sprintf("writing run file `%s' failed", filename), Err: err}
  }
  return n, nil
}

/* -------------------------------------------------------------------------- */

// CountGenome computes the count artifact of the genome with the given
// input index from its ordered valid-base runs.
func (obj KmerExtractor) CountGenome(genome int, path string, runs [][]byte) (GenomeCounts, error) {
  r := GenomeCounts{Index: genome, Path: path}

  counts     := make(map[KmerCode]uint64)
  generation := 0

  for _, run := range runs {
    it, err := NewKmerCodeIterator(run, obj.K, obj.Normalize)
    if err != nil {
      return r, FormatError{Genome: path, Reason: err.Error()}
    }
    for ; it.Ok(); it.Next() {
      counts[it.Get()]++
      r.Total++
      if obj.MaxEntries > 0 && len(counts) >= obj.MaxEntries {
        if _, err := obj.writeSorted(spillFilename(obj.TmpDir, genome, generation), counts); err != nil {
          return r, err
        }
        generation++
        counts = make(map[KmerCode]uint64)
      }
    }
  }
  return obj.finalize(r, counts, generation)
}

/* -------------------------------------------------------------------------- */

// Merge all spill runs of the genome plus the residual in-memory map into
// a single sorted run file.
func (obj KmerExtractor) finalize(r GenomeCounts, counts map[KmerCode]uint64, generation int) (GenomeCounts, error) {
  filename := countsFilename(obj.TmpDir, r.Index)

  if generation == 0 {
    n, err := obj.writeSorted(filename, counts)
    if err != nil {
      return r, err
    }
    r.Distinct = n
    r.Filename = filename
    return r, nil
  }
  // flush the residual map as the last spill generation
  if len(counts) > 0 {
    if _, err := obj.writeSorted(spillFilename(obj.TmpDir, r.Index, generation), counts); err != nil {
      return r, err
    }
    generation++
  }
  readers := make([]*RunReader, generation)
  for i := 0; i < generation; i++ {
    reader, err := OpenRunReader(spillFilename(obj.TmpDir, r.Index, i))
    if err != nil {
      return r, ResourceError{Op: "opening spill file failed", Err: err}
    }
    readers[i] = reader
  }
  it, err := NewMergeIterator(readers)
  if err != nil {
    for _, reader := range readers {
      reader.Close()
    }
    return r, ResourceError{Op: "merging spill files failed", Err: err}
  }
  writer, err := NewRunWriter(filename)
  if err != nil {
    it.Close()
    return r, ResourceError{Op: "creating run file failed", Err: err}
  }
  for ; it.Ok(); it.Next() {
    if err := writer.Write(it.GetCode(), it.GetCount()); err != nil {
      writer.Close()
      it.Close()
      return r, ResourceError{Op: fmt.Sprintf("writing run file `%s' failed", filename), Err: err}
    }
  }
  if err := it.Err(); err != nil {
    writer.Close()
    it.Close()
    return r, ResourceError{Op: "merging spill files failed", Err: err}
  }
  it.Close()
  r.Distinct = writer.Len()
  if err := writer.Close(); err != nil {
    return r, ResourceError{Op: fmt.Sprintf("writing run file `%s' failed", filename), Err: err}
  }
  for i := 0; i < generation; i++ {
    os.Remove(spillFilename(obj.TmpDir, r.Index, i))
  }
  r.Filename = filename
  return r, nil
}
