// Copyright 2026 Blink Labs Software
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

package gocardano

import "errors"

// Error kinds shared by every package in this module. Packages wrap these with
// additional context using fmt.Errorf("%w: ...") so callers can branch with
// errors.Is without depending on message text.
var (
	// ErrPointerIsNull is returned when a required argument is nil or an object
	// has already been released
	ErrPointerIsNull = errors.New("required value is nil")

	// ErrMemoryAllocationFailed is returned when a requested allocation is
	// impossible to satisfy
	ErrMemoryAllocationFailed = errors.New("memory allocation failed")

	// ErrInsufficientBufferSize is returned when a caller-provided output buffer
	// is too small. Query the required size and retry.
	ErrInsufficientBufferSize = errors.New("insufficient buffer size")

	ErrOutOfBoundsMemoryRead  = errors.New("out of bounds memory read")
	ErrOutOfBoundsMemoryWrite = errors.New("out of bounds memory write")

	ErrInvalidArgument  = errors.New("invalid argument")
	ErrConversionFailed = errors.New("conversion failed")

	// ErrInvalidCborMajorType is returned when the next CBOR item does not
	// have the major type the caller asked for
	ErrInvalidCborMajorType = errors.New("invalid CBOR major type")

	// ErrInvalidCborValue is returned for CBOR grammar violations: bad
	// additional info, container misuse, unexpected tags and so on
	ErrInvalidCborValue = errors.New("invalid CBOR value")

	ErrUnexpectedEndOfData = errors.New("unexpected end of data")
	ErrIndexOutOfBounds    = errors.New("index out of bounds")
	ErrDuplicateKey        = errors.New("duplicate key")
	ErrNotImplemented      = errors.New("not implemented")
)
