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

type DeviceType int

const (
  GPU DeviceType = iota
  CPU
)

func (obj DeviceType) String() string {
  switch obj {
  case GPU: return "gpu"
  case CPU: return "cpu"
  default : return "unknown"
  }
}

/* -------------------------------------------------------------------------- */

type DeviceConfig struct {
  Threads      int
  // transfer budget for device batches in bytes
  MemoryBudget int64
}

/* -------------------------------------------------------------------------- */

// A device executor intersects per-genome count artifacts with the closed
// vocabulary and assembles the CSR matrix. All implementations must
// produce byte-for-byte identical output for identical input; the choice
// of executor is purely a capability and performance switch.
type DeviceExecutor interface {
  Name() string
  AssembleMatrix(counts []GenomeCounts, vocabulary *Vocabulary) (*CSRMatrix, error)
}

/* -------------------------------------------------------------------------- */

// NewDeviceExecutor returns an executor for the requested device. An
// unavailable GPU is an error unless the caller explicitly opted into the
// CPU fallback; whether a fallback happened can be observed through the
// executor name.
func NewDeviceExecutor(device DeviceType, allowFallback bool, config DeviceConfig) (DeviceExecutor, error) {
  switch device {
  case CPU:
    return NewCpuExecutor(config), nil
  case GPU:
    executor, err := NewGpuExecutor(config)
    if err != nil {
      if allowFallback {
        return NewCpuExecutor(config), nil
      }
      return nil, err
    }
    return executor, nil
  default:
    return nil, ConfigError{Reason: "invalid device"}
  }
}
