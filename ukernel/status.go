// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ukernel

// Status is the result of validating a microkernel call.
//
// Only the validation layer produces a Status. Tile kernels never check
// their inputs and never fail.
type Status uint8

const (
	StatusOK Status = iota
	StatusBadType
	StatusBadFlags
	StatusUnsupportedHugeOrNegativeDimension
	StatusUnsupportedGenericTileSize
	StatusShapesMismatch
)

// NumStatuses is the number of Status values.
const NumStatuses = int(StatusShapesMismatch) + 1

// Message returns a human-readable description of s.
func (s Status) Message() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusBadType:
		return "bad type"
	case StatusBadFlags:
		return "bad flags"
	case StatusUnsupportedHugeOrNegativeDimension:
		return "unsupported huge or negative size"
	case StatusUnsupportedGenericTileSize:
		return "tile size too large for the generic tile implementation"
	case StatusShapesMismatch:
		return "shapes mismatch"
	default:
		return "unknown"
	}
}

// String returns s.Message().
func (s Status) String() string {
	return s.Message()
}

// Error implements error so that a Status can be matched with errors.Is
// after callers wrap it. Use Err to turn a Status into an error value.
func (s Status) Error() string {
	return "ukernel: " + s.Message()
}

// Err returns nil for StatusOK and s otherwise.
func (s Status) Err() error {
	if s == StatusOK {
		return nil
	}
	return s
}
