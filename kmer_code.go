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

const (
  // number of 64-bit words required to store a k-mer of maximal size
  // (two bits per base)
  KmerCodeWords = 5
  // admissible range of k-mer sizes
  MinKmerSize   = 8
  MaxKmerSize   = 136
)

/* -------------------------------------------------------------------------- */

// Packed fixed-width encoding of a k-mer. Bases are stored with two bits
// each, the first base of the k-mer occupies the most significant used
// position so that the numeric order of codes equals the lexicographic
// order of the corresponding strings. Words are in little-endian order,
// i.e. word zero holds the least significant bits. Since k may exceed the
// capacity of a native integer (up to 272 bits at k=136), all operations
// are implemented as multi-word shifts.
type KmerCode [KmerCodeWords]uint64

/* -------------------------------------------------------------------------- */

func (obj KmerCode) Cmp(b KmerCode) int {
  for i := KmerCodeWords-1; i >= 0; i-- {
    if obj[i] < b[i] {
      return -1
    }
    if obj[i] > b[i] {
      return  1
    }
  }
  return 0
}

func (obj KmerCode) Less(b KmerCode) bool {
  return obj.Cmp(b) < 0
}

func (obj KmerCode) Equals(b KmerCode) bool {
  return obj == b
}

/* -------------------------------------------------------------------------- */

// Append a coded base at the rightmost position of a k-mer of size k,
// dropping the leftmost base. This is a constant time multi-word
// shift-and-mask and does not depend on k for recomputation.
func (obj *KmerCode) PushBack(c byte, k int) {
  for i := KmerCodeWords-1; i > 0; i-- {
    obj[i] = obj[i]<<2 | obj[i-1]>>62
  }
  obj[0] = obj[0]<<2 | uint64(c)
  // clear bits above position 2k
  w := 2*k/64
  if m := uint(2*k % 64); m != 0 {
    obj[w] &= uint64(1)<<m - 1
    w++
  }
  for ; w < KmerCodeWords; w++ {
    obj[w] = 0
  }
}

// Prepend a coded base at the leftmost position of a k-mer of size k,
// dropping the rightmost base. Together with PushBack this allows rolling
// a k-mer and its reverse complement along a sequence in constant time
// per position.
func (obj *KmerCode) PushFront(c byte, k int) {
  for i := 0; i < KmerCodeWords-1; i++ {
    obj[i] = obj[i]>>2 | obj[i+1]<<62
  }
  obj[KmerCodeWords-1] >>= 2

  p := 2*(k-1)
  obj[p/64] |= uint64(c) << uint(p % 64)
}

/* -------------------------------------------------------------------------- */

// Base returns the coded base at position i, counting from the leftmost
// position of a k-mer of size k.
func (obj KmerCode) Base(i, k int) byte {
  p := 2*(k-1-i)
  return byte(obj[p/64] >> uint(p % 64) & 3)
}

func (obj KmerCode) ReverseComplement(k int) KmerCode {
  t := NucleotideAlphabet{}
  r := KmerCode{}
  for i := 0; i < k; i++ {
    c, err := t.ComplementCoded(obj.Base(i, k))
    if err != nil {
      panic(err)
    }
    p := 2*i
    r[p/64] |= uint64(c) << uint(p % 64)
  }
  return r
}

// Canonical returns the numerically smaller of a k-mer and its reverse
// complement. The operation is idempotent and invariant under taking the
// reverse complement.
func (obj KmerCode) Canonical(k int) KmerCode {
  if r := obj.ReverseComplement(k); r.Less(obj) {
    return r
  }
  return obj
}

/* -------------------------------------------------------------------------- */

func (obj KmerCode) Decode(k int) string {
  t := NucleotideAlphabet{}
  s := make([]byte, k)
  for i := 0; i < k; i++ {
    c, err := t.Decode(obj.Base(i, k))
    if err != nil {
      panic(err)
    }
    s[i] = c
  }
  return string(s)
}

func EncodeKmer(s string) (KmerCode, error) {
  t := NucleotideAlphabet{}
  r := KmerCode{}
  if len(s) < 1 || len(s) > MaxKmerSize {
    return r, fmt.Errorf("EncodeKmer(): invalid k-mer size `%d'", len(s))
  }
  for i := 0; i < len(s); i++ {
    c, err := t.Code(s[i])
    if err != nil {
      return KmerCode{}, err
    }
    r.PushBack(c, len(s))
  }
  return r, nil
}
