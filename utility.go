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

import "io"
import "io/ioutil"
import "os"
import "path/filepath"

/* -------------------------------------------------------------------------- */

func iMin(a, b int) int {
  if a < b {
    return a
  } else {
    return b
  }
}

func iMax(a, b int) int {
  if a > b {
    return a
  } else {
    return b
  }
}

/* -------------------------------------------------------------------------- */

func isGzip(filename string) bool {

  f, err := os.Open(filename)
  if err != nil {
    return false
  }
  defer f.Close()

  b := make([]byte, 2)
  n, err := f.Read(b)
  if err != nil {
    return false
  }

  if n == 2 && b[0] == 31 && b[1] == 139 {
    return true
  }
  return false
}

/* -------------------------------------------------------------------------- */

// Write a final artifact by first writing to a temporary file in the
// target directory and atomically renaming it afterwards. An aborted run
// never leaves a partially written artifact behind.
func atomicWriteFile(filename string, r io.Reader) error {
  f, err := ioutil.TempFile(filepath.Dir(filename), filepath.Base(filename)+".tmp*")
  if err != nil {
    return err
  }
  if _, err := io.Copy(f, r); err != nil {
    f.Close()
    os.Remove(f.Name())
    return err
  }
  if err := f.Sync(); err != nil {
    f.Close()
    os.Remove(f.Name())
    return err
  }
  if err := f.Close(); err != nil {
    os.Remove(f.Name())
    return err
  }
  return os.Rename(f.Name(), filename)
}
