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

import   "fmt"
import   "log"
import   "os"
import   "strconv"

import   "github.com/pborman/getopt"

import . "github.com/pbenner/kmermatrix"

/* -------------------------------------------------------------------------- */

func PrintStderr(config Config, level int, format string, args ...interface{}) {
  if config.Verbose >= level {
    fmt.Fprintf(os.Stderr, format, args...)
  }
}

/* -------------------------------------------------------------------------- */

func importGenomeList(config Config, database, table, filename string) []string {
  if database != "" {
    PrintStderr(config, 1, "Importing genome list from database table `%s'... ", table)
    genomes, err := ImportGenomeListFromDatabase(database, table)
    if err != nil {
      PrintStderr(config, 1, "failed\n")
      log.Fatal(err)
    }
    PrintStderr(config, 1, "done\n")
    return genomes
  }
  PrintStderr(config, 1, "Reading genome list `%s'... ", filename)
  genomes, err := ImportGenomeList(filename)
  if err != nil {
    PrintStderr(config, 1, "failed\n")
    log.Fatal(err)
  }
  PrintStderr(config, 1, "done\n")
  return genomes
}

/* -------------------------------------------------------------------------- */

func makeFeatureMatrix(config Config, outputDir string, genomes []string) {
  pipeline, err := NewPipeline(config)
  if err != nil {
    log.Fatal(err)
  }
  matrix, vocabulary, stats, err := pipeline.Run(genomes)
  if err != nil {
    log.Fatal(err)
  }
  PrintStderr(config, 1, "Observed %d distinct k-mers, retained %d as columns\n", stats.DistinctKmers, stats.VocabularySize)
  PrintStderr(config, 1, "Matrix has %d rows and %d nonzero entries (%.4f%% sparse)\n", matrix.Rows, stats.Nonzeros, stats.Sparsity)

  PrintStderr(config, 1, "Writing artifacts to `%s'... ", outputDir)
  if err := WriteArtifacts(outputDir, matrix, vocabulary, stats); err != nil {
    PrintStderr(config, 1, "failed\n")
    log.Fatal(err)
  }
  PrintStderr(config, 1, "done\n")
}

/* -------------------------------------------------------------------------- */

func main() {
  log.SetFlags(0)

  config  := DefaultConfig()
  options := getopt.New()

  optMinFreq    := options.    IntLong("min-frequency",    'l',  5,       "minimum document frequency of retained k-mers [default: 5]")
  optMaxFreq    := options.    IntLong("max-frequency",    'z', -1,       "maximum document frequency of retained k-mers [default: half the number of genomes]")
  optTmpDir     := options. StringLong("tmp-dir",          't', "/tmp",   "temporary directory with at least 10GB free space [default: /tmp]")
  optOutput     := options. StringLong("output",           'o', ".",      "output directory [default: .]")
  optDatabase   := options. StringLong("database",          0 , "",       "import the genome list from this mysql data source instead of a file")
  optTable      := options. StringLong("database-table",    0 , "genomes","name of the genome registry table [default: genomes]")
  optNoNorm     := options.   BoolLong("no-normalization", 'd',           "count a k-mer and its reverse complement as different k-mers")
  optCpu        := options.   BoolLong("cpu",              'c',           "force cpu mode [default: gpu]")
  optFallback   := options.   BoolLong("fallback",          0 ,           "fall back to cpu if no gpu is available")
  optThreads    := options.    IntLong("threads",           0 ,  1,       "number of threads [default: 1]")
  optMaxEntries := options.    IntLong("max-entries",       0 ,  1 << 24, "number of resident count map entries per genome before spilling to disk")
  optMemory     := options.    IntLong("memory-budget",     0 ,  1,       "device transfer budget in GB [default: 1]")
  optVerbose    := options.CounterLong("verbose",          'v',           "verbose level [-v or -vv]")
  optHelp       := options.   BoolLong("help",             'h',           "print help")

  options.SetParameters("<K> <GENOME-LIST.txt>")
  options.Parse(os.Args)

  if *optHelp {
    options.PrintUsage(os.Stdout)
    os.Exit(0)
  }
  if *optDatabase == "" && len(options.Args()) != 2 ||
     *optDatabase != "" && len(options.Args()) != 1 {
    options.PrintUsage(os.Stderr)
    os.Exit(1)
  }
  k, err := strconv.ParseInt(options.Args()[0], 10, 64); if err != nil {
    options.PrintUsage(os.Stderr)
    os.Exit(1)
  }
  config.K            = int(k)
  config.MinFreq      = *optMinFreq
  config.MaxFreq      = *optMaxFreq
  config.Normalize    = !*optNoNorm
  config.AllowFallback= *optFallback
  config.Threads      = *optThreads
  config.MaxEntries   = *optMaxEntries
  config.MemoryBudget = int64(*optMemory) << 30
  config.TmpDir       = *optTmpDir
  config.Verbose      = *optVerbose
  if *optCpu {
    config.Device = CPU
  } else {
    config.Device = GPU
  }
  if err := os.MkdirAll(*optOutput, 0777); err != nil {
    log.Fatal(err)
  }
  filenameList := ""
  if *optDatabase == "" {
    filenameList = options.Args()[1]
  }
  genomes := importGenomeList(config, *optDatabase, *optTable, filenameList)

  makeFeatureMatrix(config, *optOutput, genomes)
}
