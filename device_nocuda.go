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

//go:build !cuda

package kmermatrix

/* -------------------------------------------------------------------------- */

// Placeholder for builds without cuda support. Requesting the GPU device
// is a reportable error, never a silent fallback.
type GpuExecutor struct {
}

func NewGpuExecutor(config DeviceConfig) (*GpuExecutor, error) {
  return nil, DeviceError{Device: "gpu", Reason: "binary was compiled without cuda support"}
}

func (obj *GpuExecutor) Name() string {
  return "gpu"
}

func (obj *GpuExecutor) AssembleMatrix(counts []GenomeCounts, vocabulary *Vocabulary) (*CSRMatrix, error) {
  return nil, DeviceError{Device: "gpu", Reason: "binary was compiled without cuda support"}
}
