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

package cbor

import (
	"errors"
	"fmt"

	"github.com/blinklabs-io/gocardano"
)

// MajorTypeError is returned when the next data item does not have the major
// type a read call expects
type MajorTypeError struct {
	Expected MajorType
	Got      MajorType
	Offset   int
}

func (e *MajorTypeError) Error() string {
	return fmt.Sprintf(
		"%s: expected %s but found %s at offset %d",
		gocardano.ErrInvalidCborMajorType,
		e.Expected,
		e.Got,
		e.Offset,
	)
}

func (e *MajorTypeError) Unwrap() error {
	return gocardano.ErrInvalidCborMajorType
}

func (e *MajorTypeError) Is(target error) bool {
	_, ok := target.(*MajorTypeError)
	return ok
}

func invalidValue(format string, args ...any) error {
	return fmt.Errorf(
		"%w: %s",
		gocardano.ErrInvalidCborValue,
		fmt.Sprintf(format, args...),
	)
}

func unexpectedEnd(need int, offset int, have int) error {
	return fmt.Errorf(
		"%w: need %d bytes at offset %d, %d remaining",
		gocardano.ErrUnexpectedEndOfData,
		need,
		offset,
		have,
	)
}

// IsEndOfData reports whether err was caused by truncated input
func IsEndOfData(err error) bool {
	return errors.Is(err, gocardano.ErrUnexpectedEndOfData)
}
