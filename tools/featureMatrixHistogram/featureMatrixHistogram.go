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

package main

/* -------------------------------------------------------------------------- */

import   "bufio"
import   "fmt"
import   "log"
import   "os"
import   "strconv"
import   "strings"

import   "github.com/pborman/getopt"

import   "gonum.org/v1/plot"
import   "gonum.org/v1/plot/plotter"
import   "gonum.org/v1/plot/vg"

/* -------------------------------------------------------------------------- */

type Config struct {
  Verbose int
}

func PrintStderr(config Config, level int, format string, args ...interface{}) {
  if config.Verbose >= level {
    fmt.Fprintf(os.Stderr, format, args...)
  }
}

/* -------------------------------------------------------------------------- */

// Import the frequency column of a vocabulary file. The file is expected
// to have a header line followed by `index,kmer,frequency' records.
func importFrequencies(config Config, filename string) []float64 {
  PrintStderr(config, 1, "Reading vocabulary `%s'... ", filename)
  f, err := os.Open(filename)
  if err != nil {
    PrintStderr(config, 1, "failed\n")
    log.Fatal(err)
  }
  defer f.Close()

  frequencies := []float64{}

  scanner := bufio.NewScanner(f)
  for i := 0; scanner.Scan(); i++ {
    if i == 0 {
      // header
      continue
    }
    fields := strings.Split(scanner.Text(), ",")
    if len(fields) != 3 {
      PrintStderr(config, 1, "failed\n")
      log.Fatalf("parsing `%s' failed: invalid record at line %d", filename, i+1)
    }
    v, err := strconv.ParseFloat(fields[2], 64)
    if err != nil {
      PrintStderr(config, 1, "failed\n")
      log.Fatalf("parsing `%s' failed at line %d: %v", filename, i+1, err)
    }
    frequencies = append(frequencies, v)
  }
  if err := scanner.Err(); err != nil {
    PrintStderr(config, 1, "failed\n")
    log.Fatal(err)
  }
  PrintStderr(config, 1, "done\n")
  return frequencies
}

/* -------------------------------------------------------------------------- */

func plotHistogram(config Config, frequencies []float64, bins int, filenameOut string) {
  h, err := plotter.NewHist(plotter.Values(frequencies), bins)
  if err != nil {
    log.Fatal(err)
  }
  p := plot.New()
  p.Title.Text = "k-mer document frequencies"
  p.X.Label.Text = "document frequency"
  p.Y.Label.Text = "number of k-mers"
  p.Add(h)

  PrintStderr(config, 1, "Writing histogram `%s'... ", filenameOut)
  if err := p.Save(8*vg.Inch, 4*vg.Inch, filenameOut); err != nil {
    PrintStderr(config, 1, "failed\n")
    log.Fatal(err)
  }
  PrintStderr(config, 1, "done\n")
}

/* -------------------------------------------------------------------------- */

func main() {
  log.SetFlags(0)

  config  := Config{}
  options := getopt.New()

  optBins    := options.    IntLong("bins",    'b', 50, "number of histogram bins [default: 50]")
  optVerbose := options.CounterLong("verbose", 'v',     "verbose level [-v or -vv]")
  optHelp    := options.   BoolLong("help",    'h',     "print help")

  options.SetParameters("<KMERS.csv> <OUTPUT.pdf>")
  options.Parse(os.Args)

  if *optHelp {
    options.PrintUsage(os.Stdout)
    os.Exit(0)
  }
  if len(options.Args()) != 2 {
    options.PrintUsage(os.Stderr)
    os.Exit(1)
  }
  config.Verbose = *optVerbose

  frequencies := importFrequencies(config, options.Args()[0])

  plotHistogram(config, frequencies, *optBins, options.Args()[1])
}
