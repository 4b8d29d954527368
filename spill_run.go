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

import "encoding/binary"
import "fmt"
import "io"
import "os"
import "path/filepath"

import "github.com/golang/snappy"

/* run files
 * --------------------------------------------------------------------------
 *
 * A run file stores a sequence of (k-mer, count) records sorted by k-mer
 * key. Records have a fixed size of six 64-bit words (five key words plus
 * one count word, little endian) and the stream is snappy compressed.
 * Spill files written during extraction and the final per-genome count
 * files share this format, so that the same k-way merge operates on both.
 * -------------------------------------------------------------------------- */

const runRecordSize = (KmerCodeWords+1)*8

/* -------------------------------------------------------------------------- */

// Collision-free name of the spill file written by the given genome at
// the given spill generation. Each genome owns its spill files
// exclusively.
func spillFilename(tmpdir string, genome, generation int) string {
  return filepath.Join(tmpdir, fmt.Sprintf("genome_%06d_spill_%04d.sz", genome, generation))
}

func countsFilename(tmpdir string, genome int) string {
  return filepath.Join(tmpdir, fmt.Sprintf("genome_%06d_counts.sz", genome))
}

/* -------------------------------------------------------------------------- */

type RunWriter struct {
  f   *os.File
  w   *snappy.Writer
  buf  [runRecordSize]byte
  n    int
}

func NewRunWriter(filename string) (*RunWriter, error) {
  f, err := os.Create(filename)
  if err != nil {
    return nil, err
  }
  return &RunWriter{f: f, w: snappy.NewBufferedWriter(f)}, nil
}

func (obj *RunWriter) Write(code KmerCode, count uint64) error {
  for i := 0; i < KmerCodeWords; i++ {
    binary.LittleEndian.PutUint64(obj.buf[8*i:], code[i])
  }
  binary.LittleEndian.PutUint64(obj.buf[8*KmerCodeWords:], count)
  if _, err := obj.w.Write(obj.buf[:]); err != nil {
    return err
  }
  obj.n++
  return nil
}

// Len returns the number of records written so far.
func (obj *RunWriter) Len() int {
  return obj.n
}

func (obj *RunWriter) Close() error {
  if err := obj.w.Close(); err != nil {
    obj.f.Close()
    return err
  }
  return obj.f.Close()
}

/* -------------------------------------------------------------------------- */

type RunReader struct {
  f   *os.File
  r   *snappy.Reader
  buf  [runRecordSize]byte
}

func OpenRunReader(filename string) (*RunReader, error) {
  f, err := os.Open(filename)
  if err != nil {
    return nil, err
  }
  return &RunReader{f: f, r: snappy.NewReader(f)}, nil
}

// Read returns the next record or io.EOF after the last one.
func (obj *RunReader) Read() (KmerCode, uint64, error) {
  code := KmerCode{}
  if _, err := io.ReadFull(obj.r, obj.buf[:]); err != nil {
    if err == io.ErrUnexpectedEOF {
      return code, 0, fmt.Errorf("truncated run file `%s'", obj.f.Name())
    }
    return code, 0, err
  }
  for i := 0; i < KmerCodeWords; i++ {
    code[i] = binary.LittleEndian.Uint64(obj.buf[8*i:])
  }
  return code, binary.LittleEndian.Uint64(obj.buf[8*KmerCodeWords:]), nil
}

func (obj *RunReader) Close() error {
  return obj.f.Close()
}
