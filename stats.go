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

import "bytes"
import "fmt"
import "runtime"
import "time"

/* -------------------------------------------------------------------------- */

// Scalar statistics of one pipeline run. Skipped genomes are recorded
// here, partial failures are never silently dropped.
type RunStatistics struct {
  K              int
  MinFreq        int
  MaxFreq        int
  Normalize      bool
  Device         string
  Genomes        int
  Skipped      []string
  DistinctKmers  int
  VocabularySize int
  Nonzeros       int
  Sparsity       float64
  ExtractionTime time.Duration
  VocabularyTime time.Duration
  AssemblyTime   time.Duration
  PeakMemory     uint64
}

/* -------------------------------------------------------------------------- */

func (obj *RunStatistics) String() string {
  var buffer bytes.Buffer

  fmt.Fprintf(&buffer, "K-mer size              : %d\n",     obj.K)
  fmt.Fprintf(&buffer, "Minimum frequency       : %d\n",     obj.MinFreq)
  fmt.Fprintf(&buffer, "Maximum frequency       : %d\n",     obj.MaxFreq)
  fmt.Fprintf(&buffer, "Normalization enabled   : %v\n",     obj.Normalize)
  fmt.Fprintf(&buffer, "Device                  : %s\n",     obj.Device)
  fmt.Fprintf(&buffer, "Genomes                 : %d\n",     obj.Genomes)
  fmt.Fprintf(&buffer, "Genomes skipped         : %d\n",     len(obj.Skipped))
  for _, genome := range obj.Skipped {
    fmt.Fprintf(&buffer, "  `%s'\n", genome)
  }
  fmt.Fprintf(&buffer, "Distinct k-mers observed: %d\n",     obj.DistinctKmers)
  fmt.Fprintf(&buffer, "Vocabulary size         : %d\n",     obj.VocabularySize)
  fmt.Fprintf(&buffer, "Nonzero entries         : %d\n",     obj.Nonzeros)
  fmt.Fprintf(&buffer, "Sparsity                : %.4f%%\n", obj.Sparsity)
  fmt.Fprintf(&buffer, "Extraction time         : %v\n",     obj.ExtractionTime)
  fmt.Fprintf(&buffer, "Vocabulary time         : %v\n",     obj.VocabularyTime)
  fmt.Fprintf(&buffer, "Assembly time           : %v\n",     obj.AssemblyTime)
  fmt.Fprintf(&buffer, "Peak memory             : %.2f GB\n", float64(obj.PeakMemory)/(1024*1024*1024))

  return buffer.String()
}

/* -------------------------------------------------------------------------- */

// Background monitor recording the peak heap allocation of a run.
type memoryMonitor struct {
  interval time.Duration
  stop     chan struct{}
  done     chan struct{}
  peak     uint64
}

func newMemoryMonitor(interval time.Duration) *memoryMonitor {
  return &memoryMonitor{
    interval: interval,
    stop    : make(chan struct{}),
    done    : make(chan struct{}) }
}

func (obj *memoryMonitor) Start() {
  go func() {
    m := runtime.MemStats{}
    for {
      runtime.ReadMemStats(&m)
      if m.Alloc > obj.peak {
        obj.peak = m.Alloc
      }
      select {
      case <-obj.stop:
        close(obj.done)
        return
      case <-time.After(obj.interval):
      }
    }
  }()
}

func (obj *memoryMonitor) Stop() uint64 {
  select {
  case <-obj.stop:
  default:
    close(obj.stop)
  }
  <-obj.done
  return obj.peak
}
