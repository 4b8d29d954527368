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

import "bufio"
import "compress/gzip"
import "fmt"
import "io"
import "os"

/* -------------------------------------------------------------------------- */

// Read a fasta file and return the ordered runs of valid bases. Runs are
// broken at record boundaries and at ambiguous or gap characters, so that
// no k-mer ever spans them. Ambiguity codes (e.g. n, r, y) and gap
// characters are legal fasta content and merely terminate a run; any
// other character is an error. Lines are read in bounded fragments, so
// unwrapped fasta with a whole chromosome on a single line is supported.
func ReadFastaRuns(reader io.Reader) ([][]byte, error) {
  r := bufio.NewReaderSize(reader, 1024*1024)

  t    := NucleotideAlphabet{}
  runs := [][]byte{}
  run  := []byte{}

  haveRecord := false
  // the current fragment continues a header line
  inHeader   := false
  lineStart  := true

  flush := func() {
    if len(run) > 0 {
      runs = append(runs, run)
      run  = []byte{}
    }
  }
  for {
    line, isPrefix, err := r.ReadLine()
    if err == io.EOF {
      break
    }
    if err != nil {
      return nil, err
    }
    if lineStart {
      inHeader = len(line) > 0 && line[0] == '>'
      if inHeader {
        // k-mers must not span record boundaries
        flush()
        haveRecord = true
      }
    }
    lineStart = !isPrefix

    if inHeader {
      continue
    }
    if !haveRecord && len(line) > 0 {
      return nil, fmt.Errorf("ReadFastaRuns(): sequence data before first header")
    }
    for i := 0; i < len(line); i++ {
      c := line[i]
      if t.IsValid(c) {
        run = append(run, c)
        continue
      }
      switch {
      case c == ' ' || c == '\t':
        // ignore whitespace
      case c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z':
        // ambiguity code, break the current run
        flush()
      case c == '-' || c == '.' || c == '*':
        flush()
      default:
        return nil, fmt.Errorf("ReadFastaRuns(): invalid character `%c'", c)
      }
    }
  }
  if !haveRecord {
    return nil, fmt.Errorf("ReadFastaRuns(): file contains no fasta records")
  }
  flush()
  return runs, nil
}

/* -------------------------------------------------------------------------- */

// Import the valid-base runs of a genome from a fasta file, which may be
// gzip compressed. All failures are reported as FormatError scoped to the
// given file, allowing callers to skip the genome and continue.
func ImportFastaRuns(filename string) ([][]byte, error) {
  var reader io.Reader
  // open file
  f, err := os.Open(filename)
  if err != nil {
    return nil, FormatError{Genome: filename, Reason: err.Error()}
  }
  defer f.Close()

  // check if file is gzipped
  if isGzip(filename) {
    g, err := gzip.NewReader(f)
    if err != nil {
      return nil, FormatError{Genome: filename, Reason: err.Error()}
    }
    defer g.Close()
    reader = g
  } else {
    reader = f
  }
  runs, err := ReadFastaRuns(reader)
  if err != nil {
    return nil, FormatError{Genome: filename, Reason: err.Error()}
  }
  return runs, nil
}
