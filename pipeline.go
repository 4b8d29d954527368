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
import "path/filepath"
import "sort"
import "sync"
import "time"

import "github.com/google/uuid"
import "github.com/pbenner/threadpool"
import "github.com/pkg/errors"
import "golang.org/x/sys/unix"

import "github.com/pbenner/kmermatrix/lib/progress"

/* -------------------------------------------------------------------------- */

type Config struct {
  // k-mer size, must be in [MinKmerSize, MaxKmerSize]
  K             int
  // document frequency thresholds; a negative MaxFreq defaults to half
  // the number of genomes, zero retains nothing
  MinFreq       int
  MaxFreq       int
  // map a k-mer and its reverse complement to the same canonical k-mer
  Normalize     bool
  Device        DeviceType
  AllowFallback bool
  Threads       int
  // maximum number of resident count map entries per genome before
  // spilling to disk; non-positive disables spilling
  MaxEntries    int
  // device transfer budget in bytes
  MemoryBudget  int64
  TmpDir        string
  // required temporary storage capacity in bytes; negative disables the
  // check
  TmpRequired   int64
  Verbose       int
}

func DefaultConfig() Config {
  return Config{
    MinFreq     : 5,
    MaxFreq     : -1,
    Normalize   : true,
    Device      : GPU,
    Threads     : 1,
    MaxEntries  : 1 << 24,
    MemoryBudget: 1 << 30,
    TmpDir      : os.TempDir(),
    TmpRequired : 10 << 30 }
}

/* -------------------------------------------------------------------------- */

// CheckTempSpace verifies that the given directory exists (creating it if
// necessary) and offers at least the required number of free bytes.
func CheckTempSpace(directory string, required int64) error {
  if err := os.MkdirAll(directory, 0777); err != nil {
    return err
  }
  stat := unix.Statfs_t{}
  if err := unix.Statfs(directory, &stat); err != nil {
    return err
  }
  if free := int64(stat.Bavail)*stat.Bsize; free < required {
    return fmt.Errorf("temporary directory `%s' has insufficient space: %d GB available, %d GB required",
      directory, free>>30, required>>30)
  }
  return nil
}

/* -------------------------------------------------------------------------- */

type Pipeline struct {
  Config
}

// NewPipeline validates the configuration and returns a ConfigError
// before any processing starts if it is invalid.
func NewPipeline(config Config) (*Pipeline, error) {
  if config.Threads < 1 {
    config.Threads = 1
  }
  if config.TmpDir == "" {
    config.TmpDir = os.TempDir()
  }
  if config.K < MinKmerSize || config.K > MaxKmerSize {
    return nil, ConfigError{Reason: fmt.Sprintf("k-mer size must be between %d and %d, given: %d", MinKmerSize, MaxKmerSize, config.K)}
  }
  if config.MinFreq < 0 {
    return nil, ConfigError{Reason: fmt.Sprintf("minimum frequency threshold must be non-negative, given: %d", config.MinFreq)}
  }
  if config.MaxFreq >= 0 && config.MaxFreq < config.MinFreq {
    return nil, ConfigError{Reason: fmt.Sprintf("maximum frequency threshold (%d) is smaller than minimum (%d)", config.MaxFreq, config.MinFreq)}
  }
  if config.TmpRequired >= 0 {
    if err := CheckTempSpace(config.TmpDir, config.TmpRequired); err != nil {
      return nil, ConfigError{Reason: err.Error()}
    }
  }
  return &Pipeline{config}, nil
}

func (obj *Pipeline) printStderr(level int, format string, args ...interface{}) {
  if obj.Verbose >= level {
    fmt.Fprintf(os.Stderr, format, args...)
  }
}

/* -------------------------------------------------------------------------- */

// Run executes the three pipeline stages on the given ordered list of
// genome fasta files. Stages are separated by hard barriers: the
// vocabulary requires full-corpus visibility and the matrix assembly
// requires the closed vocabulary. Genomes with malformed input are
// skipped and yield empty rows, all other failures abort the run.
func (obj *Pipeline) Run(genomes []string) (*CSRMatrix, *Vocabulary, *RunStatistics, error) {
  n := len(genomes)

  maxFreq := obj.MaxFreq
  if maxFreq < 0 {
    maxFreq = iMax(1, n/2)
  }
  if maxFreq < obj.MinFreq {
    return nil, nil, nil, ConfigError{Reason: fmt.Sprintf("maximum frequency threshold (%d) is smaller than minimum (%d)", maxFreq, obj.MinFreq)}
  }
  // every run gets its own spill directory, concurrent runs may share
  // TmpDir
  tmpdir := filepath.Join(obj.TmpDir, "kmermatrix-"+uuid.New().String())
  if err := os.MkdirAll(tmpdir, 0777); err != nil {
    return nil, nil, nil, ResourceError{Op: "creating temporary directory failed", Err: err}
  }
  defer os.RemoveAll(tmpdir)

  monitor := newMemoryMonitor(time.Second)
  monitor.Start()
  defer monitor.Stop()

  stats := &RunStatistics{
    K        : obj.K,
    MinFreq  : obj.MinFreq,
    MaxFreq  : maxFreq,
    Normalize: obj.Normalize,
    Genomes  : n }

  // stage 1: extraction, embarrassingly parallel across genomes
  t0     := time.Now()
  counts := make([]GenomeCounts, n)
  mutex  := sync.Mutex{}
  pool   := threadpool.New(obj.Threads, 100*obj.Threads)
  meter  := progress.NewWithLabel("extracting", n, 100)
  m      := 0

  err := pool.RangeJob(0, n, func(i int, pool threadpool.ThreadPool, erf func() error) error {
    if erf() != nil {
      return nil
    }
    defer func() {
      mutex.Lock()
      m++
      if obj.Verbose >= 2 {
        meter.PrintStderr(m)
      }
      mutex.Unlock()
    }()
    extractor, err := NewKmerExtractor(obj.K, obj.Normalize, obj.MaxEntries, tmpdir)
    if err != nil {
      return err
    }
    skip := func(err error) {
      obj.printStderr(1, "%v, skipping genome\n", err)
      mutex.Lock()
      stats.Skipped = append(stats.Skipped, genomes[i])
      mutex.Unlock()
      counts[i] = GenomeCounts{Index: i, Path: genomes[i]}
    }
    runs, err := ImportFastaRuns(genomes[i])
    if err != nil {
      if _, ok := err.(FormatError); ok {
        skip(err)
        return nil
      }
      return err
    }
    c, err := extractor.CountGenome(i, genomes[i], runs)
    if err != nil {
      if _, ok := err.(FormatError); ok {
        skip(err)
        return nil
      }
      return err
    }
    counts[i] = c
    return nil
  })
  if err != nil {
    return nil, nil, nil, errors.Wrap(err, "extraction stage failed")
  }
  sort.Strings(stats.Skipped)
  stats.ExtractionTime = time.Since(t0)

  // stage 2: all extractions finished, global thresholds have
  // full-corpus visibility now
  t0 = time.Now()
  vocabulary, distinct, err := BuildVocabulary(counts, obj.K, obj.MinFreq, maxFreq)
  if err != nil {
    return nil, nil, nil, errors.Wrap(err, "vocabulary stage failed")
  }
  stats.VocabularyTime = time.Since(t0)
  stats.DistinctKmers  = distinct
  stats.VocabularySize = vocabulary.Len()

  // stage 3: vocabulary is closed, column indices are final
  executor, err := NewDeviceExecutor(obj.Device, obj.AllowFallback, DeviceConfig{Threads: obj.Threads, MemoryBudget: obj.MemoryBudget})
  if err != nil {
    return nil, nil, nil, errors.Wrap(err, "assembly stage failed")
  }
  if obj.Device == GPU && executor.Name() == "cpu" {
    obj.printStderr(1, "gpu not available, falling back to cpu\n")
  }
  stats.Device = executor.Name()

  t0 = time.Now()
  matrix, err := executor.AssembleMatrix(counts, vocabulary)
  if err != nil {
    return nil, nil, nil, errors.Wrap(err, "assembly stage failed")
  }
  if err := matrix.Validate(); err != nil {
    return nil, nil, nil, errors.Wrap(err, "assembly stage failed")
  }
  stats.AssemblyTime = time.Since(t0)

  // the per-genome artifacts are consumed now
  for _, c := range counts {
    c.Remove()
  }
  stats.Nonzeros   = matrix.Nonzeros()
  stats.Sparsity   = matrix.Sparsity()
  stats.PeakMemory = monitor.Stop()

  return matrix, vocabulary, stats, nil
}
