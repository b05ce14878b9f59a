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

package common

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/blinklabs-io/gocardano"
	"github.com/blinklabs-io/gocardano/bigint"
	"github.com/blinklabs-io/gocardano/cbor"
	"github.com/blinklabs-io/plutigo/data"
)

// Byte strings longer than this are encoded as indefinite-length strings
// made of chunks of this size
const plutusDataChunkSize = 64

type PlutusDataKind uint8

const (
	PlutusDataKindConstr PlutusDataKind = iota
	PlutusDataKindMap
	PlutusDataKindList
	PlutusDataKindInteger
	PlutusDataKindBytes
)

func (k PlutusDataKind) String() string {
	switch k {
	case PlutusDataKindConstr:
		return "constr"
	case PlutusDataKindMap:
		return "map"
	case PlutusDataKindList:
		return "list"
	case PlutusDataKindInteger:
		return "integer"
	case PlutusDataKindBytes:
		return "bytes"
	default:
		return fmt.Sprintf("PlutusDataKind(%d)", uint8(k))
	}
}

// PlutusDataPair is one entry of a map datum
type PlutusDataPair struct {
	Key   *PlutusData
	Value *PlutusData
}

// PlutusData is a Plutus datum: a constructor application, map, list,
// integer or byte string.
//
// Decoded values keep their original encoding, and nested values keep
// theirs, so re-encoding reproduces the input byte for byte.
type PlutusData struct {
	cbor.DecodeStoreCbor
	kind        PlutusDataKind
	alternative uint64
	items       []*PlutusData
	pairs       []PlutusDataPair
	integer     *bigint.BigInt
	bytes       []byte
}

// NewConstrPlutusData returns a constructor application
func NewConstrPlutusData(alternative uint64, fields ...*PlutusData) *PlutusData {
	return &PlutusData{
		kind:        PlutusDataKindConstr,
		alternative: alternative,
		items:       fields,
	}
}

func NewMapPlutusData(pairs ...PlutusDataPair) *PlutusData {
	return &PlutusData{
		kind:  PlutusDataKindMap,
		pairs: pairs,
	}
}

func NewListPlutusData(items ...*PlutusData) *PlutusData {
	return &PlutusData{
		kind:  PlutusDataKindList,
		items: items,
	}
}

// NewIntegerPlutusData returns an integer datum holding a copy of v
func NewIntegerPlutusData(v *bigint.BigInt) *PlutusData {
	return &PlutusData{
		kind:    PlutusDataKindInteger,
		integer: v.Clone(),
	}
}

func NewInt64PlutusData(v int64) *PlutusData {
	return &PlutusData{
		kind:    PlutusDataKindInteger,
		integer: bigint.FromInt64(v),
	}
}

// NewBytesPlutusData returns a byte string datum holding a copy of v
func NewBytesPlutusData(v []byte) *PlutusData {
	return &PlutusData{
		kind:  PlutusDataKindBytes,
		bytes: bytes.Clone(v),
	}
}

func (d *PlutusData) Kind() PlutusDataKind {
	return d.kind
}

// Alternative returns the constructor alternative of a constr datum
func (d *PlutusData) Alternative() uint64 {
	return d.alternative
}

// Fields returns the fields of a constr datum or the items of a list datum.
// Mutating a returned item does not clear the cache of d; call
// d.ClearCborCache afterwards.
func (d *PlutusData) Fields() []*PlutusData {
	return d.items
}

func (d *PlutusData) Pairs() []PlutusDataPair {
	return d.pairs
}

// Integer returns a copy of the value of an integer datum, or nil
func (d *PlutusData) Integer() *bigint.BigInt {
	if d.integer == nil {
		return nil
	}
	return d.integer.Clone()
}

func (d *PlutusData) Bytes() []byte {
	return d.bytes
}

// Append adds items to a constr or list datum
func (d *PlutusData) Append(items ...*PlutusData) error {
	if d.kind != PlutusDataKindConstr && d.kind != PlutusDataKindList {
		return fmt.Errorf("%w: cannot append to %s datum", gocardano.ErrInvalidArgument, d.kind)
	}
	d.items = append(d.items, items...)
	d.ClearCborCache()
	return nil
}

// SetPair sets the value for a key of a map datum. Keys are compared by
// their encoding.
func (d *PlutusData) SetPair(key *PlutusData, value *PlutusData) error {
	if d.kind != PlutusDataKindMap {
		return fmt.Errorf("%w: cannot set a pair on %s datum", gocardano.ErrInvalidArgument, d.kind)
	}
	keyCbor, err := key.MarshalCBOR()
	if err != nil {
		return err
	}
	d.ClearCborCache()
	for i, pair := range d.pairs {
		tmpCbor, err := pair.Key.MarshalCBOR()
		if err != nil {
			return err
		}
		if bytes.Equal(tmpCbor, keyCbor) {
			d.pairs[i].Value = value
			return nil
		}
	}
	d.pairs = append(d.pairs, PlutusDataPair{Key: key, Value: value})
	return nil
}

func (d *PlutusData) UnmarshalCBOR(cborData []byte) error {
	r := cbor.NewReader(cborData)
	defer r.Unref()
	if err := d.FromCbor(r); err != nil {
		return err
	}
	if r.BytesRemaining() > 0 {
		return fmt.Errorf(
			"%w: %d trailing bytes after datum",
			gocardano.ErrInvalidCborValue,
			r.BytesRemaining(),
		)
	}
	return nil
}

func (d *PlutusData) MarshalCBOR() ([]byte, error) {
	w := cbor.NewWriter()
	defer w.Unref()
	if err := d.ToCbor(w); err != nil {
		return nil, err
	}
	return w.Encode()
}

// FromCbor decodes the next item of r and keeps its encoding
func (d *PlutusData) FromCbor(r *cbor.Reader) error {
	*d = PlutusData{}
	return d.CaptureCbor(r, d.readFields)
}

func (d *PlutusData) readFields(r *cbor.Reader) error {
	state, err := r.PeekState()
	if err != nil {
		return err
	}
	switch state {
	case cbor.StateTag:
		tagNum, err := r.PeekTag()
		if err != nil {
			return err
		}
		if tagNum == cbor.CborTagBignumPos || tagNum == cbor.CborTagBignumNeg {
			return d.readInteger(r)
		}
		if !cbor.IsAlternativeTag(tagNum) {
			return fmt.Errorf("%w: unexpected tag %d in datum", gocardano.ErrInvalidCborValue, tagNum)
		}
		alt, wrapped, err := cbor.ReadConstructorTag(r)
		if err != nil {
			return err
		}
		d.kind = PlutusDataKindConstr
		d.alternative = alt
		if d.items, err = readPlutusDataList(r); err != nil {
			return err
		}
		if wrapped {
			return r.ReadEndArray()
		}
		return nil
	case cbor.StateStartMap:
		d.kind = PlutusDataKindMap
		if _, err := r.ReadStartMap(); err != nil {
			return err
		}
		for {
			more, err := r.HasMoreItems()
			if err != nil {
				return err
			}
			if !more {
				break
			}
			var pair PlutusDataPair
			pair.Key = new(PlutusData)
			if err := pair.Key.FromCbor(r); err != nil {
				return err
			}
			pair.Value = new(PlutusData)
			if err := pair.Value.FromCbor(r); err != nil {
				return err
			}
			d.pairs = append(d.pairs, pair)
		}
		return r.ReadEndMap()
	case cbor.StateStartArray:
		d.kind = PlutusDataKindList
		d.items, err = readPlutusDataList(r)
		return err
	case cbor.StateUnsignedInteger, cbor.StateNegativeInteger:
		return d.readInteger(r)
	case cbor.StateByteString, cbor.StateStartIndefiniteByteString:
		d.kind = PlutusDataKindBytes
		d.bytes, err = r.ReadByteString()
		return err
	default:
		return fmt.Errorf("%w: unexpected %s in datum", gocardano.ErrInvalidCborValue, state)
	}
}

func (d *PlutusData) readInteger(r *cbor.Reader) error {
	v, err := r.ReadBigInt()
	if err != nil {
		return err
	}
	d.kind = PlutusDataKindInteger
	d.integer = v
	return nil
}

func readPlutusDataList(r *cbor.Reader) ([]*PlutusData, error) {
	if _, err := r.ReadStartArray(); err != nil {
		return nil, err
	}
	ret := []*PlutusData{}
	for {
		more, err := r.HasMoreItems()
		if err != nil {
			return nil, err
		}
		if !more {
			break
		}
		item := new(PlutusData)
		if err := item.FromCbor(r); err != nil {
			return nil, err
		}
		ret = append(ret, item)
	}
	return ret, r.ReadEndArray()
}

// ToCbor writes the cached encoding when there is one. Fresh values use the
// ledger conventions: non-empty lists are indefinite-length and long byte
// strings are chunked.
func (d *PlutusData) ToCbor(w *cbor.Writer) error {
	return cbor.WriteCachedOr(w, d, d.writeFields)
}

func (d *PlutusData) writeFields(w *cbor.Writer) error {
	switch d.kind {
	case PlutusDataKindConstr:
		wrapped, err := cbor.WriteConstructorTag(w, d.alternative)
		if err != nil {
			return err
		}
		if err := writePlutusDataList(w, d.items); err != nil {
			return err
		}
		if wrapped {
			return w.WriteEndArray()
		}
		return nil
	case PlutusDataKindMap:
		if err := w.WriteStartMap(int64(len(d.pairs))); err != nil {
			return err
		}
		for _, pair := range d.pairs {
			if pair.Key == nil || pair.Value == nil {
				return fmt.Errorf("%w: nil map entry in datum", gocardano.ErrPointerIsNull)
			}
			if err := pair.Key.ToCbor(w); err != nil {
				return err
			}
			if err := pair.Value.ToCbor(w); err != nil {
				return err
			}
		}
		return w.WriteEndMap()
	case PlutusDataKindList:
		return writePlutusDataList(w, d.items)
	case PlutusDataKindInteger:
		if d.integer == nil {
			return fmt.Errorf("%w: integer datum has no value", gocardano.ErrPointerIsNull)
		}
		return w.WriteBigInt(d.integer)
	case PlutusDataKindBytes:
		if len(d.bytes) > plutusDataChunkSize {
			return w.WriteIndefiniteByteString(d.bytes, plutusDataChunkSize)
		}
		return w.WriteByteString(d.bytes)
	default:
		return fmt.Errorf("%w: unknown datum kind %d", gocardano.ErrInvalidArgument, d.kind)
	}
}

func writePlutusDataList(w *cbor.Writer, items []*PlutusData) error {
	count := cbor.IndefiniteLength
	if len(items) == 0 {
		count = 0
	}
	if err := w.WriteStartArray(count); err != nil {
		return err
	}
	for _, item := range items {
		if item == nil {
			return fmt.Errorf("%w: nil item in datum", gocardano.ErrPointerIsNull)
		}
		if err := item.ToCbor(w); err != nil {
			return err
		}
	}
	return w.WriteEndArray()
}

// Hash returns the Blake2b-256 hash of the datum encoding
func (d *PlutusData) Hash() (DatumHash, error) {
	cborData := d.Cbor()
	if len(cborData) == 0 {
		var err error
		if cborData, err = d.MarshalCBOR(); err != nil {
			return DatumHash{}, err
		}
	}
	return Blake2b256Hash(cborData), nil
}

// Clone returns a deep copy, including cached encodings
func (d *PlutusData) Clone() *PlutusData {
	ret := &PlutusData{
		kind:        d.kind,
		alternative: d.alternative,
		bytes:       bytes.Clone(d.bytes),
	}
	ret.SetCbor(d.Cbor())
	if d.integer != nil {
		ret.integer = d.integer.Clone()
	}
	for _, item := range d.items {
		ret.items = append(ret.items, item.Clone())
	}
	for _, pair := range d.pairs {
		ret.pairs = append(ret.pairs, PlutusDataPair{
			Key:   pair.Key.Clone(),
			Value: pair.Value.Clone(),
		})
	}
	return ret
}

// ToPlutigo converts the datum to the plutigo representation used by the
// script evaluator
func (d *PlutusData) ToPlutigo() (data.PlutusData, error) {
	cborData, err := d.MarshalCBOR()
	if err != nil {
		return nil, err
	}
	ret, err := data.Decode(cborData)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", gocardano.ErrConversionFailed, err)
	}
	return ret, nil
}

// NewPlutusDataFromPlutigo converts a plutigo datum
func NewPlutusDataFromPlutigo(pd data.PlutusData) (*PlutusData, error) {
	cborData, err := data.Encode(pd)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", gocardano.ErrConversionFailed, err)
	}
	ret := new(PlutusData)
	if err := ret.UnmarshalCBOR(cborData); err != nil {
		return nil, err
	}
	return ret, nil
}

func (d *PlutusData) String() string {
	var sb strings.Builder
	d.writeString(&sb)
	return sb.String()
}

func (d *PlutusData) writeString(sb *strings.Builder) {
	switch d.kind {
	case PlutusDataKindConstr:
		fmt.Fprintf(sb, "Constr(%d, [", d.alternative)
		writePlutusDataStrings(sb, d.items)
		sb.WriteString("])")
	case PlutusDataKindMap:
		sb.WriteString("Map{")
		for i, pair := range d.pairs {
			if i > 0 {
				sb.WriteString(", ")
			}
			pair.Key.writeString(sb)
			sb.WriteString(": ")
			pair.Value.writeString(sb)
		}
		sb.WriteString("}")
	case PlutusDataKindList:
		sb.WriteString("[")
		writePlutusDataStrings(sb, d.items)
		sb.WriteString("]")
	case PlutusDataKindInteger:
		sb.WriteString(d.integer.String())
	case PlutusDataKindBytes:
		fmt.Fprintf(sb, "h'%x'", d.bytes)
	}
}

func writePlutusDataStrings(sb *strings.Builder, items []*PlutusData) {
	for i, item := range items {
		if i > 0 {
			sb.WriteString(", ")
		}
		item.writeString(sb)
	}
}
