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
import "database/sql"
import "fmt"
import "os"
import "strings"

import _ "github.com/go-sql-driver/mysql"

/* -------------------------------------------------------------------------- */

// Import the ordered list of genome fasta files from a text file with one
// path per line. Blank lines and lines starting with `#' are ignored. The
// line order defines the row order of the resulting matrix.
func ImportGenomeList(filename string) ([]string, error) {
  var scanner *bufio.Scanner
  // open file
  f, err := os.Open(filename)
  if err != nil {
    return nil, err
  }
  defer f.Close()
  // check if file is gzipped
  if isGzip(filename) {
    g, err := gzip.NewReader(f)
    if err != nil {
      return nil, err
    }
    defer g.Close()
    scanner = bufio.NewScanner(g)
  } else {
    scanner = bufio.NewScanner(f)
  }
  genomes := []string{}

  for scanner.Scan() {
    line := strings.TrimSpace(scanner.Text())
    if len(line) == 0 || line[0] == '#' {
      continue
    }
    genomes = append(genomes, line)
  }
  if err := scanner.Err(); err != nil {
    return nil, err
  }
  if len(genomes) == 0 {
    return nil, fmt.Errorf("genome list `%s' is empty", filename)
  }
  return genomes, nil
}

/* -------------------------------------------------------------------------- */

// Import the genome list from a collection registry stored in a mysql
// database. The table must have the columns id and path; rows are
// imported in ascending id order so that the matrix row order is
// reproducible.
func ImportGenomeListFromDatabase(dsn, table string) ([]string, error) {
  /* variables for storing a single database row */
  var i_path string

  genomes := []string{}

  /* open connection */
  db, err := sql.Open("mysql", dsn)
  if err != nil {
    return nil, err
  }
  defer db.Close()

  err = db.Ping()
  if err != nil {
    return nil, err
  }

  /* receive data */
  rows, err := db.Query(
    fmt.Sprintf("SELECT path FROM %s ORDER BY id", table))
  if err != nil {
    return nil, err
  }
  defer rows.Close()
  for rows.Next() {
    err := rows.Scan(&i_path)
    if err != nil {
      return nil, err
    }
    genomes = append(genomes, i_path)
  }
  if err := rows.Err(); err != nil {
    return nil, err
  }
  if len(genomes) == 0 {
    return nil, fmt.Errorf("genome table `%s' is empty", table)
  }
  return genomes, nil
}
