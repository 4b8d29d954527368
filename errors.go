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

/* -------------------------------------------------------------------------- */

// ConfigError reports an invalid parameter combination. It is always
// raised before any processing starts.
type ConfigError struct {
  Reason string
}

func (obj ConfigError) Error() string {
  return fmt.Sprintf("invalid configuration: %s", obj.Reason)
}

/* -------------------------------------------------------------------------- */

// FormatError reports malformed input of a single genome. The pipeline
// skips the genome and continues with the remaining ones.
type FormatError struct {
  Genome string
  Reason string
}

func (obj FormatError) Error() string {
  return fmt.Sprintf("genome `%s' has invalid format: %s", obj.Genome, obj.Reason)
}

/* -------------------------------------------------------------------------- */

// ResourceError reports a failed disk operation, e.g. a spill write on a
// full temporary file system. It aborts the run.
type ResourceError struct {
  Op  string
  Err error
}

func (obj ResourceError) Error() string {
  return fmt.Sprintf("%s: %v", obj.Op, obj.Err)
}

func (obj ResourceError) Unwrap() error {
  return obj.Err
}

/* -------------------------------------------------------------------------- */

// DeviceError reports an unavailable or failing compute device. It is
// fatal unless the caller explicitly opted into a CPU fallback.
type DeviceError struct {
  Device string
  Reason string
}

func (obj DeviceError) Error() string {
  return fmt.Sprintf("device `%s' not available: %s", obj.Device, obj.Reason)
}
