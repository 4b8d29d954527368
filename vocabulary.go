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

import "sort"

/* -------------------------------------------------------------------------- */

// The ordered set of canonical k-mers retained as matrix columns. The
// column index of a k-mer is its position in the ascending Kmers list,
// which makes the column assignment reproducible and independent of the
// genome input order. Frequencies records the document frequency of each
// retained k-mer, i.e. the number of genomes containing it at least once.
type Vocabulary struct {
  K           int
  Kmers       []KmerCode
  Frequencies []int
}

/* -------------------------------------------------------------------------- */

// BuildVocabulary merges the sorted count artifacts of all genomes in a
// single streaming pass and retains every k-mer whose document frequency
// df satisfies minFreq <= df <= maxFreq. The cross-genome k-mer universe
// is never materialized; resident memory is proportional to the result.
// The second return value is the total number of distinct k-mers
// observed.
func BuildVocabulary(counts []GenomeCounts, k, minFreq, maxFreq int) (*Vocabulary, int, error) {
  if maxFreq < minFreq {
    return nil, 0, ConfigError{Reason: "maximum frequency threshold is smaller than minimum"}
  }
  readers := []*RunReader{}
  for _, c := range counts {
    if c.Filename == "" {
      continue
    }
    reader, err := OpenRunReader(c.Filename)
    if err != nil {
      for _, r := range readers {
        r.Close()
      }
      return nil, 0, ResourceError{Op: "opening count artifact failed", Err: err}
    }
    readers = append(readers, reader)
  }
  it, err := NewMergeIterator(readers)
  if err != nil {
    for _, r := range readers {
      r.Close()
    }
    return nil, 0, ResourceError{Op: "merging count artifacts failed", Err: err}
  }
  defer it.Close()

  r        := Vocabulary{K: k}
  distinct := 0

  for ; it.Ok(); it.Next() {
    distinct++
    // each genome artifact contains a key at most once, hence the merge
    // multiplicity equals the document frequency
    if df := it.GetMultiplicity(); minFreq <= df && df <= maxFreq {
      r.Kmers       = append(r.Kmers,       it.GetCode())
      r.Frequencies = append(r.Frequencies, df)
    }
  }
  if err := it.Err(); err != nil {
    return nil, 0, ResourceError{Op: "merging count artifacts failed", Err: err}
  }
  return &r, distinct, nil
}

/* -------------------------------------------------------------------------- */

func (obj *Vocabulary) Len() int {
  return len(obj.Kmers)
}

// Index returns the column index of the given k-mer code.
func (obj *Vocabulary) Index(code KmerCode) (int, bool) {
  i := sort.Search(len(obj.Kmers), func(i int) bool {
    return !obj.Kmers[i].Less(code)
  })
  if i < len(obj.Kmers) && obj.Kmers[i] == code {
    return i, true
  }
  return -1, false
}

func (obj *Vocabulary) Decode(i int) string {
  return obj.Kmers[i].Decode(obj.K)
}
