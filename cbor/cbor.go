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
	"fmt"

	_cbor "github.com/fxamacker/cbor/v2"
)

const (
	CborTypeUnsignedInt uint8 = 0x00
	CborTypeNegativeInt uint8 = 0x20
	CborTypeByteString  uint8 = 0x40
	CborTypeTextString  uint8 = 0x60
	CborTypeArray       uint8 = 0x80
	CborTypeMap         uint8 = 0xa0
	CborTypeTag         uint8 = 0xc0
	CborTypeSimple      uint8 = 0xe0

	// Only the top 3 bits are used to specify the type
	CborTypeMask uint8 = 0xe0

	// Max value able to be stored in a single byte without type prefix
	CborMaxUintSimple uint8 = 0x17

	// Additional info values
	CborInfoUint8      uint8 = 24
	CborInfoUint16     uint8 = 25
	CborInfoUint32     uint8 = 26
	CborInfoUint64     uint8 = 27
	CborInfoIndefinite uint8 = 31

	// Terminates an indefinite-length item
	CborBreak uint8 = 0xff

	// Simple values
	CborSimpleFalse     uint8 = 20
	CborSimpleTrue      uint8 = 21
	CborSimpleNull      uint8 = 22
	CborSimpleUndefined uint8 = 23
)

// IndefiniteLength requests (when writing) or reports (when reading) an
// indefinite-length array or map
const IndefiniteLength int64 = -1

// MajorType is the top 3 bits of a CBOR initial byte
type MajorType uint8

const (
	MajorTypeUnsignedInt MajorType = iota
	MajorTypeNegativeInt
	MajorTypeByteString
	MajorTypeTextString
	MajorTypeArray
	MajorTypeMap
	MajorTypeTag
	MajorTypeSimple
)

func (m MajorType) String() string {
	switch m {
	case MajorTypeUnsignedInt:
		return "unsigned integer"
	case MajorTypeNegativeInt:
		return "negative integer"
	case MajorTypeByteString:
		return "byte string"
	case MajorTypeTextString:
		return "text string"
	case MajorTypeArray:
		return "array"
	case MajorTypeMap:
		return "map"
	case MajorTypeTag:
		return "tag"
	case MajorTypeSimple:
		return "simple/float"
	default:
		return fmt.Sprintf("MajorType(%d)", uint8(m))
	}
}

// Create an alias for RawMessage for convenience
type RawMessage = _cbor.RawMessage

// Alias for Tag for convenience
type (
	Tag    = _cbor.Tag
	RawTag = _cbor.RawTag
)

// Useful for embedding and easier to remember
type StructAsArray struct {
	// Tells the CBOR decoder to convert to/from a struct and a CBOR array
	_ struct{} `cbor:",toarray"`
}
