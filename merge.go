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

import "container/heap"
import "io"

/* -------------------------------------------------------------------------- */

type mergeItem struct {
  code  KmerCode
  count uint64
  src   int
}

type mergeHeap []mergeItem

func (obj mergeHeap) Len() int {
  return len(obj)
}

func (obj mergeHeap) Less(i, j int) bool {
  if c := obj[i].code.Cmp(obj[j].code); c != 0 {
    return c < 0
  }
  return obj[i].src < obj[j].src
}

func (obj mergeHeap) Swap(i, j int) {
  obj[i], obj[j] = obj[j], obj[i]
}

func (obj *mergeHeap) Push(x interface{}) {
  *obj = append(*obj, x.(mergeItem))
}

func (obj *mergeHeap) Pop() interface{} {
  old := *obj
  n   := len(old)
  x   := old[n-1]
  *obj = old[0:n-1]
  return x
}

/* -------------------------------------------------------------------------- */

// Streaming k-way merge over sorted run files. Duplicate keys from
// different sources are folded into a single element; GetCount() returns
// the summed count and GetMultiplicity() the number of sources that
// contained the key. Resident memory is bounded by the number of sources,
// the merged key universe is never materialized.
type MergeIterator struct {
  readers      []*RunReader
  h              mergeHeap
  code           KmerCode
  count          uint64
  multiplicity   int
  ok             bool
  err            error
}

/* -------------------------------------------------------------------------- */

func NewMergeIterator(readers []*RunReader) (*MergeIterator, error) {
  obj := &MergeIterator{readers: readers}
  for i, reader := range readers {
    code, count, err := reader.Read()
    if err == io.EOF {
      continue
    }
    if err != nil {
      return nil, err
    }
    obj.h = append(obj.h, mergeItem{code, count, i})
  }
  heap.Init(&obj.h)
  obj.Next()
  return obj, obj.err
}

/* -------------------------------------------------------------------------- */

func (obj *MergeIterator) Ok() bool {
  return obj.ok
}

func (obj *MergeIterator) GetCode() KmerCode {
  return obj.code
}

func (obj *MergeIterator) GetCount() uint64 {
  return obj.count
}

func (obj *MergeIterator) GetMultiplicity() int {
  return obj.multiplicity
}

func (obj *MergeIterator) Err() error {
  return obj.err
}

func (obj *MergeIterator) Next() {
  if obj.err != nil || len(obj.h) == 0 {
    obj.ok = false
    return
  }
  obj.code         = obj.h[0].code
  obj.count        = 0
  obj.multiplicity = 0
  for len(obj.h) > 0 && obj.h[0].code == obj.code {
    item := heap.Pop(&obj.h).(mergeItem)
    obj.count        += item.count
    obj.multiplicity++
    // refill the heap from the source the item was taken from
    code, count, err := obj.readers[item.src].Read()
    if err == io.EOF {
      continue
    }
    if err != nil {
      obj.err = err
      obj.ok  = false
      return
    }
    heap.Push(&obj.h, mergeItem{code, count, item.src})
  }
  obj.ok = true
}

func (obj *MergeIterator) Close() error {
  var err error
  for _, reader := range obj.readers {
    if e := reader.Close(); e != nil {
      err = e
    }
  }
  return err
}
