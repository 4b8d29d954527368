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

// Iterator over all k-mers of a single run of valid bases. The iterator
// maintains the packed forward encoding together with its reverse
// complement twin, both updated in constant time per position. If
// normalization is enabled, Get() returns the canonical k-mer, i.e. the
// numerically smaller of the two encodings.
type KmerCodeIterator struct {
  sequence []byte
  fwd        KmerCode
  rev        KmerCode
  k          int
  i          int
  normalize  bool
  ok         bool
}

/* -------------------------------------------------------------------------- */

func NewKmerCodeIterator(sequence []byte, k int, normalize bool) (KmerCodeIterator, error) {
  t := NucleotideAlphabet{}
  r := KmerCodeIterator{sequence: sequence, k: k, normalize: normalize}
  if k < 1 || k > MaxKmerSize {
    return r, fmt.Errorf("NewKmerCodeIterator(): invalid k-mer size `%d'", k)
  }
  if len(sequence) < k {
    return r, nil
  }
  for i := 0; i < k; i++ {
    c, err := t.Code(sequence[i])
    if err != nil {
      return r, err
    }
    d, err := t.ComplementCoded(c)
    if err != nil {
      return r, err
    }
    r.fwd.PushBack (c, k)
    r.rev.PushFront(d, k)
  }
  r.i  = k
  r.ok = true
  return r, nil
}

/* -------------------------------------------------------------------------- */

func (obj KmerCodeIterator) Ok() bool {
  return obj.ok
}

func (obj KmerCodeIterator) Get() KmerCode {
  if obj.normalize && obj.rev.Less(obj.fwd) {
    return obj.rev
  }
  return obj.fwd
}

func (obj *KmerCodeIterator) Next() {
  if obj.i >= len(obj.sequence) {
    obj.ok = false
    return
  }
  t := NucleotideAlphabet{}
  c, err := t.Code(obj.sequence[obj.i])
  if err != nil {
    // runs must be pre-validated
    panic(err)
  }
  d, err := t.ComplementCoded(c)
  if err != nil {
    panic(err)
  }
  obj.fwd.PushBack (c, obj.k)
  obj.rev.PushFront(d, obj.k)
  obj.i++
}
