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
import "encoding/binary"
import "fmt"
import "path/filepath"
import "strings"

/* -------------------------------------------------------------------------- */

// ArtifactSuffix encodes the run parameters into artifact file names, so
// that repeated runs with different parameters never collide.
func ArtifactSuffix(k, minFreq, maxFreq int, normalize bool) string {
  d := 0
  if !normalize {
    d = 1
  }
  return fmt.Sprintf("k%d_min%d_max%d_d%d", k, minFreq, maxFreq, d)
}

/* numpy arrays
 * --------------------------------------------------------------------------
 *
 * Arrays are serialized in numpy format version 1.0 so that downstream
 * machine-learning code can load them directly. The format is simple
 * enough to write by hand: a magic string, a padded python dict literal
 * describing dtype and shape, followed by the raw little-endian data.
 * -------------------------------------------------------------------------- */

func npyHeader(descr string, n int) []byte {
  dict := fmt.Sprintf("{'descr': '%s', 'fortran_order': False, 'shape': (%d,), }", descr, n)
  // pad the header with spaces so that the total length including the
  // 10-byte preamble is a multiple of 64, terminated by a newline
  pad  := (64 - (10+len(dict)+1) % 64) % 64
  dict  = dict + strings.Repeat(" ", pad) + "\n"

  header := []byte{0x93, 'N', 'U', 'M', 'P', 'Y', 0x01, 0x00, 0x00, 0x00}
  binary.LittleEndian.PutUint16(header[8:10], uint16(len(dict)))

  return append(header, dict...)
}

func writeNpy(filename string, data interface{}) error {
  var buffer bytes.Buffer

  switch v := data.(type) {
  case []float64:
    buffer.Write(npyHeader("<f8", len(v)))
    for _, x := range v {
      binary.Write(&buffer, binary.LittleEndian, x)
    }
  case []int64:
    buffer.Write(npyHeader("<i8", len(v)))
    for _, x := range v {
      binary.Write(&buffer, binary.LittleEndian, x)
    }
  case []uint32:
    buffer.Write(npyHeader("<u4", len(v)))
    for _, x := range v {
      binary.Write(&buffer, binary.LittleEndian, x)
    }
  default:
    return fmt.Errorf("writeNpy(): unsupported data type")
  }
  if err := atomicWriteFile(filename, &buffer); err != nil {
    return ResourceError{Op: fmt.Sprintf("writing `%s' failed", filename), Err: err}
  }
  return nil
}

/* -------------------------------------------------------------------------- */

func writeVocabulary(filename string, vocabulary *Vocabulary) error {
  var buffer bytes.Buffer

  fmt.Fprintf(&buffer, "index,kmer,frequency\n")
  for i := 0; i < vocabulary.Len(); i++ {
    fmt.Fprintf(&buffer, "%d,%s,%d\n", i, vocabulary.Decode(i), vocabulary.Frequencies[i])
  }
  if err := atomicWriteFile(filename, &buffer); err != nil {
    return ResourceError{Op: fmt.Sprintf("writing `%s' failed", filename), Err: err}
  }
  return nil
}

func writeStatistics(filename string, stats *RunStatistics) error {
  if err := atomicWriteFile(filename, strings.NewReader(stats.String())); err != nil {
    return ResourceError{Op: fmt.Sprintf("writing `%s' failed", filename), Err: err}
  }
  return nil
}

/* -------------------------------------------------------------------------- */

// WriteArtifacts persists the three CSR arrays, the ordered vocabulary
// and the run statistics. Every artifact is written to a temporary file
// first and atomically renamed, aborted runs never leave partially
// written artifacts behind.
func WriteArtifacts(outputDir string, matrix *CSRMatrix, vocabulary *Vocabulary, stats *RunStatistics) error {
  suffix := ArtifactSuffix(stats.K, stats.MinFreq, stats.MaxFreq, stats.Normalize)

  if err := writeNpy(filepath.Join(outputDir, fmt.Sprintf("data_%s.npy", suffix)), matrix.Data); err != nil {
    return err
  }
  if err := writeNpy(filepath.Join(outputDir, fmt.Sprintf("row_%s.npy", suffix)), matrix.RowPtr); err != nil {
    return err
  }
  if err := writeNpy(filepath.Join(outputDir, fmt.Sprintf("column_%s.npy", suffix)), matrix.Col); err != nil {
    return err
  }
  if err := writeVocabulary(filepath.Join(outputDir, fmt.Sprintf("kmers_%s.csv", suffix)), vocabulary); err != nil {
    return err
  }
  if err := writeStatistics(filepath.Join(outputDir, fmt.Sprintf("statistics_%s.txt", suffix)), stats); err != nil {
    return err
  }
  return nil
}
