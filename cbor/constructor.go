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

	"github.com/blinklabs-io/gocardano"
)

// AlternativeToTag converts a constructor/alternative number to its CBOR tag number.
// It also reports whether the fields must be wrapped as [alt_number, fields],
// which is the case for alternatives 128 and above.
func AlternativeToTag(alt uint64) (uint64, bool) {
	switch {
	case alt <= 6:
		return alt + CborTagAlternative1Min, false
	case alt <= 127:
		return alt - 7 + CborTagAlternative2Min, false
	default:
		return CborTagAlternative3, true
	}
}

// TagToAlternative converts a compact constructor tag (121-127 or 1280-1400)
// to its alternative number. The general form tag 102 carries the
// alternative in its content and is rejected here.
func TagToAlternative(tagNum uint64) (uint64, error) {
	switch {
	case tagNum >= CborTagAlternative1Min && tagNum <= CborTagAlternative1Max:
		return tagNum - CborTagAlternative1Min, nil
	case tagNum >= CborTagAlternative2Min && tagNum <= CborTagAlternative2Max:
		return tagNum - CborTagAlternative2Min + 7, nil
	default:
		return 0, fmt.Errorf("%w: tag %d is not a compact constructor tag", gocardano.ErrInvalidCborValue, tagNum)
	}
}

// IsAlternativeTag returns true if the given CBOR tag number represents
// a constructor/alternative (tags 121-127, 1280-1400, or 102).
func IsAlternativeTag(tagNum uint64) bool {
	return (tagNum >= CborTagAlternative1Min && tagNum <= CborTagAlternative1Max) ||
		(tagNum >= CborTagAlternative2Min && tagNum <= CborTagAlternative2Max) ||
		tagNum == CborTagAlternative3
}

// ReadConstructorTag reads a constructor tag and returns the alternative
// number. For the general form it also enters the [alt_number, fields]
// array and reads the alternative, leaving the reader at the fields; the
// returned bool is true in that case and the caller must finish with
// ReadEndArray after the fields.
func ReadConstructorTag(r *Reader) (uint64, bool, error) {
	tagNum, err := r.ReadTag()
	if err != nil {
		return 0, false, err
	}
	if tagNum != CborTagAlternative3 {
		alt, err := TagToAlternative(tagNum)
		if err != nil {
			return 0, false, r.fail(err)
		}
		return alt, false, nil
	}
	count, err := r.ReadStartArray()
	if err != nil {
		return 0, false, err
	}
	if count != 2 {
		return 0, false, r.fail(fmt.Errorf(
			"%w: expected 2 elements for alternative 128+, got %d",
			gocardano.ErrInvalidCborValue,
			count,
		))
	}
	alt, err := r.ReadUint()
	if err != nil {
		return 0, false, err
	}
	return alt, true, nil
}

// WriteConstructorTag writes the tag for alternative alt. When the general
// form is needed it also starts the [alt_number, fields] array and writes
// the alternative; the returned bool is true in that case and the caller
// must finish with WriteEndArray after the fields.
func WriteConstructorTag(w *Writer, alt uint64) (bool, error) {
	tagNum, wrap := AlternativeToTag(alt)
	if err := w.WriteTag(tagNum); err != nil {
		return false, err
	}
	if !wrap {
		return false, nil
	}
	if err := w.WriteStartArray(2); err != nil {
		return false, err
	}
	if err := w.WriteUint(alt); err != nil {
		return false, err
	}
	return true, nil
}

// ConstructorEncoder builds a CBOR constructor/alternative for encoding.
// Use this when constructing a new constructor value from typed fields.
type ConstructorEncoder struct {
	tag    uint64
	fields any
}

// NewConstructorEncoder creates a ConstructorEncoder with the given alternative
// number and fields value. The fields value is typically a []any.
func NewConstructorEncoder(tag uint64, fields any) ConstructorEncoder {
	return ConstructorEncoder{tag: tag, fields: fields}
}

// Tag returns the alternative/constructor number.
func (ce ConstructorEncoder) Tag() uint64 {
	return ce.tag
}

// MarshalCBOR encodes the constructor as a CBOR tagged value.
func (ce ConstructorEncoder) MarshalCBOR() ([]byte, error) {
	w := NewWriter()
	wrapped, err := WriteConstructorTag(w, ce.tag)
	if err != nil {
		return nil, err
	}
	if err := w.WriteValue(ce.fields); err != nil {
		return nil, err
	}
	if wrapped {
		if err := w.WriteEndArray(); err != nil {
			return nil, err
		}
	}
	return w.Encode()
}

// ConstructorDecoder decodes a CBOR constructor/alternative, keeping fields as
// raw CBOR bytes for deferred decoding into typed structs:
//
//	type DatumOption struct {
//	    cbor.ConstructorDecoder
//	}
//
//	func (d *DatumOption) IsDatumHash() bool { return d.Tag() == 0 }
type ConstructorDecoder struct {
	DecodeStoreCbor
	tag    uint64
	fields RawMessage
}

// Tag returns the alternative/constructor number.
func (cd ConstructorDecoder) Tag() uint64 {
	return cd.tag
}

// Fields returns the raw CBOR bytes of the constructor fields.
func (cd ConstructorDecoder) Fields() RawMessage {
	return cd.fields
}

// DecodeFields decodes the constructor fields into the destination.
func (cd ConstructorDecoder) DecodeFields(dest any) error {
	_, err := Decode(cd.fields, dest)
	return err
}

// UnmarshalCBOR decodes a CBOR constructor/alternative tag.
func (cd *ConstructorDecoder) UnmarshalCBOR(data []byte) error {
	r := NewReader(data)
	captured, err := r.ReadCaptured(func(r *Reader) error {
		alt, wrapped, err := ReadConstructorTag(r)
		if err != nil {
			return err
		}
		fields, err := r.ReadEncodedValue()
		if err != nil {
			return err
		}
		if wrapped {
			if err := r.ReadEndArray(); err != nil {
				return err
			}
		}
		cd.tag = alt
		cd.fields = fields
		return nil
	})
	if err != nil {
		return err
	}
	cd.SetCbor(captured)
	return nil
}

// MarshalCBOR encodes the constructor as CBOR. If original bytes are available
// (from a previous UnmarshalCBOR), they are returned for perfect round-trip fidelity.
func (cd ConstructorDecoder) MarshalCBOR() ([]byte, error) {
	if stored := cd.Cbor(); len(stored) > 0 {
		return stored, nil
	}
	w := NewWriter()
	wrapped, err := WriteConstructorTag(w, cd.tag)
	if err != nil {
		return nil, err
	}
	if err := w.WriteEncoded(cd.fields); err != nil {
		return nil, err
	}
	if wrapped {
		if err := w.WriteEndArray(); err != nil {
			return nil, err
		}
	}
	return w.Encode()
}
