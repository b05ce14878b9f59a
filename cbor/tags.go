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
	"math/big"
	"reflect"

	"github.com/blinklabs-io/gocardano"
	"github.com/blinklabs-io/gocardano/bigint"
	_cbor "github.com/fxamacker/cbor/v2"
)

const (
	// Useful tag numbers
	CborTagBignumPos = 2
	CborTagBignumNeg = 3
	CborTagCbor      = 24
	CborTagRational  = 30
	CborTagSet       = 258
	CborTagMap       = 259

	// Tag ranges for "alternatives"
	// https://www.ietf.org/archive/id/draft-bormann-cbor-notable-tags-07.html#name-enumerated-alternative-data
	CborTagAlternative1Min = 121
	CborTagAlternative1Max = 127
	CborTagAlternative2Min = 1280
	CborTagAlternative2Max = 1400
	CborTagAlternative3    = 102
)

var customTagSet _cbor.TagSet

func init() {
	// Build custom tagset
	customTagSet = _cbor.NewTagSet()
	tagOpts := _cbor.TagOptions{EncTag: _cbor.EncTagRequired, DecTag: _cbor.DecTagRequired}
	// Wrapped CBOR
	if err := customTagSet.Add(
		tagOpts,
		reflect.TypeOf(WrappedCbor{}),
		CborTagCbor,
	); err != nil {
		panic(err)
	}
	// Rational numbers
	if err := customTagSet.Add(
		tagOpts,
		reflect.TypeOf(Rat{}),
		CborTagRational,
	); err != nil {
		panic(err)
	}
	// Sets
	if err := customTagSet.Add(
		tagOpts,
		reflect.TypeOf(Set{}),
		CborTagSet,
	); err != nil {
		panic(err)
	}
	// Maps
	if err := customTagSet.Add(
		tagOpts,
		reflect.TypeOf(Map{}),
		CborTagMap,
	); err != nil {
		panic(err)
	}
}

// WrappedCbor corresponds to CBOR tag 24 and is used to encode nested CBOR data
type WrappedCbor []byte

func (w WrappedCbor) Bytes() []byte {
	return w[:]
}

// Rat corresponds to CBOR tag 30 and is used to represent a rational number
type Rat struct {
	*big.Rat
}

func (r *Rat) UnmarshalCBOR(cborData []byte) error {
	reader := NewReader(cborData)
	// The tag may already have been consumed by the caller
	state, err := reader.PeekState()
	if err != nil {
		return err
	}
	if state == StateTag {
		tag, err := reader.ReadTag()
		if err != nil {
			return err
		}
		if tag != CborTagRational {
			return fmt.Errorf("%w: expected tag %d, found %d", gocardano.ErrInvalidCborValue, CborTagRational, tag)
		}
	}
	count, err := reader.ReadStartArray()
	if err != nil {
		return err
	}
	if count != 2 {
		return fmt.Errorf("%w: rational must have exactly 2 elements, found %d", gocardano.ErrInvalidCborValue, count)
	}
	num, err := reader.ReadBigInt()
	if err != nil {
		return err
	}
	denom, err := reader.ReadBigInt()
	if err != nil {
		return err
	}
	if err := reader.ReadEndArray(); err != nil {
		return err
	}
	if denom.IsZero() {
		return fmt.Errorf("%w: rational with zero denominator", gocardano.ErrInvalidCborValue)
	}
	r.Rat = new(big.Rat).SetFrac(num.Big(), denom.Big())
	return nil
}

func (r *Rat) MarshalCBOR() ([]byte, error) {
	if r.Rat == nil {
		return nil, fmt.Errorf("%w: nil rational", gocardano.ErrPointerIsNull)
	}
	w := NewWriter()
	if err := w.WriteTag(CborTagRational); err != nil {
		return nil, err
	}
	if err := w.WriteStartArray(2); err != nil {
		return nil, err
	}
	if err := w.WriteBigInt(bigint.FromBig(r.Num())); err != nil {
		return nil, err
	}
	if err := w.WriteBigInt(bigint.FromBig(r.Denom())); err != nil {
		return nil, err
	}
	if err := w.WriteEndArray(); err != nil {
		return nil, err
	}
	return w.Encode()
}

func (r *Rat) ToBigRat() *big.Rat {
	return r.Rat
}

// Set corresponds to CBOR tag 258 and is used to represent a mathematical finite set
type Set []any

// Map corresponds to CBOR tag 259 and is used to represent a map with key/value operations
type Map map[any]any
