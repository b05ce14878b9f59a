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
	"fmt"
	"iter"
	"slices"

	"github.com/blinklabs-io/gocardano"
	"github.com/blinklabs-io/gocardano/cbor"
)

// RedeemerTag identifies the purpose a redeemer is attached to
type RedeemerTag uint8

const (
	RedeemerTagSpend     RedeemerTag = 0
	RedeemerTagMint      RedeemerTag = 1
	RedeemerTagCert      RedeemerTag = 2
	RedeemerTagReward    RedeemerTag = 3
	RedeemerTagVoting    RedeemerTag = 4
	RedeemerTagProposing RedeemerTag = 5
)

func (t RedeemerTag) String() string {
	switch t {
	case RedeemerTagSpend:
		return "spend"
	case RedeemerTagMint:
		return "mint"
	case RedeemerTagCert:
		return "cert"
	case RedeemerTagReward:
		return "reward"
	case RedeemerTagVoting:
		return "voting"
	case RedeemerTagProposing:
		return "proposing"
	default:
		return fmt.Sprintf("RedeemerTag(%d)", uint8(t))
	}
}

func readRedeemerTag(r *cbor.Reader) (RedeemerTag, error) {
	v, err := r.ReadUint()
	if err != nil {
		return 0, err
	}
	if v > uint64(RedeemerTagProposing) {
		return 0, UnknownRedeemerTagError{Tag: v}
	}
	return RedeemerTag(v), nil
}

// RedeemerKey identifies a redeemer within a transaction
type RedeemerKey struct {
	Tag   RedeemerTag
	Index uint64
}

// Redeemer is the argument and execution budget for one script invocation.
//
// Setters clear the cached encoding. In array form the cache holds
// [tag, index, data, ex_units]; in map form the key [tag, index] and the
// value [data, ex_units] are cached separately.
type Redeemer struct {
	cbor.DecodeStoreCbor
	tag       RedeemerTag
	index     uint64
	data      *PlutusData
	exUnits   ExUnits
	keyCbor   []byte
	valueCbor []byte
}

func NewRedeemer(tag RedeemerTag, index uint64, data *PlutusData, exUnits ExUnits) *Redeemer {
	exUnits.ClearCborCache()
	return &Redeemer{
		tag:     tag,
		index:   index,
		data:    data,
		exUnits: exUnits,
	}
}

func (r *Redeemer) Tag() RedeemerTag {
	return r.tag
}

func (r *Redeemer) Index() uint64 {
	return r.index
}

func (r *Redeemer) Key() RedeemerKey {
	return RedeemerKey{Tag: r.tag, Index: r.index}
}

// Data returns the redeemer datum. Changes made through it are not seen by
// the cache of r until r.ClearCborCache is called.
func (r *Redeemer) Data() *PlutusData {
	return r.data
}

func (r *Redeemer) ExUnits() ExUnits {
	return r.exUnits
}

// SetIndex changes the purpose index. For a redeemer held in a RedeemerList
// use RedeemerList.SetIndex, which keeps purposes unique.
func (r *Redeemer) SetIndex(index uint64) {
	r.index = index
	r.ClearCborCache()
}

func (r *Redeemer) SetData(data *PlutusData) {
	r.data = data
	r.ClearCborCache()
}

func (r *Redeemer) SetExUnits(exUnits ExUnits) {
	exUnits.ClearCborCache()
	r.exUnits = exUnits
	r.ClearCborCache()
}

// ClearCborCache drops the cached encodings of both forms
func (r *Redeemer) ClearCborCache() {
	r.DecodeStoreCbor.ClearCborCache()
	r.keyCbor = nil
	r.valueCbor = nil
}

func (r *Redeemer) UnmarshalCBOR(cborData []byte) error {
	cr := cbor.NewReader(cborData)
	defer cr.Unref()
	return r.FromCbor(cr)
}

func (r *Redeemer) MarshalCBOR() ([]byte, error) {
	w := cbor.NewWriter()
	defer w.Unref()
	if err := r.ToCbor(w); err != nil {
		return nil, err
	}
	return w.Encode()
}

// FromCbor decodes the array form [tag, index, data, ex_units]
func (r *Redeemer) FromCbor(cr *cbor.Reader) error {
	*r = Redeemer{}
	return r.CaptureCbor(cr, func(cr *cbor.Reader) error {
		count, err := cr.ReadStartArray()
		if err != nil {
			return err
		}
		if count != 4 && count != cbor.IndefiniteLength {
			return fmt.Errorf("%w: redeemer must have 4 elements, got %d", gocardano.ErrInvalidCborValue, count)
		}
		if r.tag, err = readRedeemerTag(cr); err != nil {
			return err
		}
		if r.index, err = cr.ReadUint(); err != nil {
			return err
		}
		if err := r.readValueFields(cr); err != nil {
			return err
		}
		return cr.ReadEndArray()
	})
}

func (r *Redeemer) readValueFields(cr *cbor.Reader) error {
	r.data = new(PlutusData)
	if err := r.data.FromCbor(cr); err != nil {
		return err
	}
	return r.exUnits.FromCbor(cr)
}

// ToCbor writes the array form
func (r *Redeemer) ToCbor(w *cbor.Writer) error {
	return cbor.WriteCachedOr(w, r, func(w *cbor.Writer) error {
		if err := w.WriteStartArray(4); err != nil {
			return err
		}
		if err := w.WriteUint(uint64(r.tag)); err != nil {
			return err
		}
		if err := w.WriteUint(r.index); err != nil {
			return err
		}
		if err := r.writeValueFields(w); err != nil {
			return err
		}
		return w.WriteEndArray()
	})
}

func (r *Redeemer) writeValueFields(w *cbor.Writer) error {
	if r.data == nil {
		return fmt.Errorf("%w: redeemer has no data", gocardano.ErrPointerIsNull)
	}
	if err := r.data.ToCbor(w); err != nil {
		return err
	}
	return r.exUnits.ToCbor(w)
}

// readMapEntry decodes a map form entry [tag, index] => [data, ex_units]
func (r *Redeemer) readMapEntry(cr *cbor.Reader) error {
	*r = Redeemer{}
	keyCbor, err := cr.ReadCaptured(func(cr *cbor.Reader) error {
		count, err := cr.ReadStartArray()
		if err != nil {
			return err
		}
		if count != 2 && count != cbor.IndefiniteLength {
			return fmt.Errorf("%w: redeemer key must have 2 elements, got %d", gocardano.ErrInvalidCborValue, count)
		}
		if r.tag, err = readRedeemerTag(cr); err != nil {
			return err
		}
		if r.index, err = cr.ReadUint(); err != nil {
			return err
		}
		return cr.ReadEndArray()
	})
	if err != nil {
		return err
	}
	valueCbor, err := cr.ReadCaptured(func(cr *cbor.Reader) error {
		count, err := cr.ReadStartArray()
		if err != nil {
			return err
		}
		if count != 2 && count != cbor.IndefiniteLength {
			return fmt.Errorf("%w: redeemer value must have 2 elements, got %d", gocardano.ErrInvalidCborValue, count)
		}
		if err := r.readValueFields(cr); err != nil {
			return err
		}
		return cr.ReadEndArray()
	})
	if err != nil {
		return err
	}
	r.keyCbor = keyCbor
	r.valueCbor = valueCbor
	return nil
}

func (r *Redeemer) writeMapEntry(w *cbor.Writer) error {
	if len(r.keyCbor) > 0 {
		if err := w.WriteEncoded(r.keyCbor); err != nil {
			return err
		}
	} else {
		if err := w.WriteStartArray(2); err != nil {
			return err
		}
		if err := w.WriteUint(uint64(r.tag)); err != nil {
			return err
		}
		if err := w.WriteUint(r.index); err != nil {
			return err
		}
		if err := w.WriteEndArray(); err != nil {
			return err
		}
	}
	if len(r.valueCbor) > 0 {
		return w.WriteEncoded(r.valueCbor)
	}
	if err := w.WriteStartArray(2); err != nil {
		return err
	}
	if err := r.writeValueFields(w); err != nil {
		return err
	}
	return w.WriteEndArray()
}

// Clone returns a deep copy, including cached encodings
func (r *Redeemer) Clone() *Redeemer {
	ret := &Redeemer{
		tag:       r.tag,
		index:     r.index,
		exUnits:   r.exUnits,
		keyCbor:   slices.Clone(r.keyCbor),
		valueCbor: slices.Clone(r.valueCbor),
	}
	ret.exUnits.SetCbor(r.exUnits.Cbor())
	ret.SetCbor(r.Cbor())
	if r.data != nil {
		ret.data = r.data.Clone()
	}
	return ret
}

// RedeemerListFormat is the encoding used for a list of redeemers
type RedeemerListFormat uint8

const (
	// RedeemerListFormatMap encodes {[tag, index] => [data, ex_units]}
	RedeemerListFormatMap RedeemerListFormat = iota
	// RedeemerListFormatArray encodes [[tag, index, data, ex_units], ...]
	RedeemerListFormatArray
)

func (f RedeemerListFormat) String() string {
	switch f {
	case RedeemerListFormatMap:
		return "map"
	case RedeemerListFormatArray:
		return "array"
	default:
		return fmt.Sprintf("RedeemerListFormat(%d)", uint8(f))
	}
}

// RedeemerList holds the redeemers of a transaction witness set. It decodes
// both the legacy array form and the map form and encodes in the form it
// was decoded from. Fresh lists use the map form.
//
// Every mutating method clears the cached encoding of the list.
type RedeemerList struct {
	cbor.DecodeStoreCbor
	format    RedeemerListFormat
	redeemers []*Redeemer
}

func NewRedeemerList(redeemers ...*Redeemer) (*RedeemerList, error) {
	ret := &RedeemerList{}
	for _, redeemer := range redeemers {
		if err := ret.Add(redeemer); err != nil {
			return nil, err
		}
	}
	return ret, nil
}

func (l *RedeemerList) Format() RedeemerListFormat {
	return l.format
}

func (l *RedeemerList) SetFormat(format RedeemerListFormat) {
	l.format = format
	l.DecodeStoreCbor.ClearCborCache()
}

func (l *RedeemerList) Len() int {
	return len(l.redeemers)
}

// Get returns the redeemer at position i. Use the list setters to change
// it, since they also clear the list cache.
func (l *RedeemerList) Get(i int) (*Redeemer, error) {
	if i < 0 || i >= len(l.redeemers) {
		return nil, fmt.Errorf(
			"%w: redeemer %d of %d",
			gocardano.ErrIndexOutOfBounds,
			i,
			len(l.redeemers),
		)
	}
	return l.redeemers[i], nil
}

// Find returns the redeemer for a purpose
func (l *RedeemerList) Find(tag RedeemerTag, index uint64) (*Redeemer, bool) {
	for _, redeemer := range l.redeemers {
		if redeemer.tag == tag && redeemer.index == index {
			return redeemer, true
		}
	}
	return nil, false
}

// Add appends a redeemer. Each purpose may appear only once.
func (l *RedeemerList) Add(redeemer *Redeemer) error {
	if redeemer == nil {
		return fmt.Errorf("%w: nil redeemer", gocardano.ErrPointerIsNull)
	}
	if _, ok := l.Find(redeemer.tag, redeemer.index); ok {
		return fmt.Errorf(
			"%w: redeemer for %s index %d",
			gocardano.ErrDuplicateKey,
			redeemer.tag,
			redeemer.index,
		)
	}
	l.redeemers = append(l.redeemers, redeemer)
	l.DecodeStoreCbor.ClearCborCache()
	return nil
}

// Remove deletes the redeemer for a purpose and reports whether it existed
func (l *RedeemerList) Remove(tag RedeemerTag, index uint64) bool {
	idx := slices.IndexFunc(l.redeemers, func(r *Redeemer) bool {
		return r.tag == tag && r.index == index
	})
	if idx < 0 {
		return false
	}
	l.redeemers = slices.Delete(l.redeemers, idx, idx+1)
	l.DecodeStoreCbor.ClearCborCache()
	return true
}

// SetExUnits replaces the execution budget of the redeemer for a purpose,
// as done after evaluating a transaction
func (l *RedeemerList) SetExUnits(tag RedeemerTag, index uint64, exUnits ExUnits) error {
	redeemer, ok := l.Find(tag, index)
	if !ok {
		return RedeemerNotFoundError{Tag: tag, Index: index}
	}
	redeemer.SetExUnits(exUnits)
	l.DecodeStoreCbor.ClearCborCache()
	return nil
}

// SetIndex moves the redeemer for a purpose to a new index of the same tag
func (l *RedeemerList) SetIndex(tag RedeemerTag, oldIndex uint64, newIndex uint64) error {
	redeemer, ok := l.Find(tag, oldIndex)
	if !ok {
		return RedeemerNotFoundError{Tag: tag, Index: oldIndex}
	}
	if oldIndex == newIndex {
		return nil
	}
	if _, ok := l.Find(tag, newIndex); ok {
		return fmt.Errorf(
			"%w: redeemer for %s index %d",
			gocardano.ErrDuplicateKey,
			tag,
			newIndex,
		)
	}
	redeemer.SetIndex(newIndex)
	l.DecodeStoreCbor.ClearCborCache()
	return nil
}

// All yields the redeemers in list order
func (l *RedeemerList) All() iter.Seq2[int, *Redeemer] {
	return slices.All(l.redeemers)
}

// Sorted yields the redeemers ordered by tag, then index
func (l *RedeemerList) Sorted() iter.Seq[*Redeemer] {
	return func(yield func(*Redeemer) bool) {
		sorted := slices.Clone(l.redeemers)
		slices.SortFunc(
			sorted,
			func(a, b *Redeemer) int {
				if a.tag != b.tag {
					return int(a.tag) - int(b.tag)
				}
				switch {
				case a.index < b.index:
					return -1
				case a.index > b.index:
					return 1
				}
				return 0
			},
		)
		for _, redeemer := range sorted {
			if !yield(redeemer) {
				return
			}
		}
	}
}

// Indexes returns the indexes of the redeemers with the given tag
func (l *RedeemerList) Indexes(tag RedeemerTag) []uint64 {
	ret := []uint64{}
	for _, redeemer := range l.redeemers {
		if redeemer.tag == tag {
			ret = append(ret, redeemer.index)
		}
	}
	return ret
}

// TotalExUnits returns the sum of the budgets of all redeemers
func (l *RedeemerList) TotalExUnits() (ExUnits, error) {
	var ret ExUnits
	for _, redeemer := range l.redeemers {
		var err error
		if ret, err = ret.Add(redeemer.exUnits); err != nil {
			return ExUnits{}, err
		}
	}
	return ret, nil
}

// ClearCborCache drops the cached encoding of the list and of every
// redeemer in it
func (l *RedeemerList) ClearCborCache() {
	l.DecodeStoreCbor.ClearCborCache()
	for _, redeemer := range l.redeemers {
		redeemer.ClearCborCache()
	}
}

// Clone returns a deep copy, including cached encodings
func (l *RedeemerList) Clone() *RedeemerList {
	ret := &RedeemerList{
		format:    l.format,
		redeemers: make([]*Redeemer, 0, len(l.redeemers)),
	}
	ret.SetCbor(l.Cbor())
	for _, redeemer := range l.redeemers {
		ret.redeemers = append(ret.redeemers, redeemer.Clone())
	}
	return ret
}

// Hash returns the Blake2b-256 hash of the list encoding
func (l *RedeemerList) Hash() (Blake2b256, error) {
	cborData, err := l.MarshalCBOR()
	if err != nil {
		return Blake2b256{}, err
	}
	return Blake2b256Hash(cborData), nil
}

func (l *RedeemerList) UnmarshalCBOR(cborData []byte) error {
	r := cbor.NewReader(cborData)
	defer r.Unref()
	return l.FromCbor(r)
}

func (l *RedeemerList) MarshalCBOR() ([]byte, error) {
	w := cbor.NewWriter()
	defer w.Unref()
	if err := l.ToCbor(w); err != nil {
		return nil, err
	}
	return w.Encode()
}

// FromCbor decodes either form from r
func (l *RedeemerList) FromCbor(r *cbor.Reader) error {
	*l = RedeemerList{}
	return l.CaptureCbor(r, func(r *cbor.Reader) error {
		state, err := r.PeekState()
		if err != nil {
			return err
		}
		switch state {
		case cbor.StateStartArray:
			l.format = RedeemerListFormatArray
			if _, err := r.ReadStartArray(); err != nil {
				return err
			}
			if err := l.readItems(r, (*Redeemer).FromCbor); err != nil {
				return err
			}
			return r.ReadEndArray()
		case cbor.StateStartMap:
			l.format = RedeemerListFormatMap
			if _, err := r.ReadStartMap(); err != nil {
				return err
			}
			if err := l.readItems(r, (*Redeemer).readMapEntry); err != nil {
				return err
			}
			return r.ReadEndMap()
		default:
			return fmt.Errorf(
				"%w: expected redeemer array or map, found %s",
				gocardano.ErrInvalidCborMajorType,
				state,
			)
		}
	})
}

func (l *RedeemerList) readItems(r *cbor.Reader, read func(*Redeemer, *cbor.Reader) error) error {
	for {
		more, err := r.HasMoreItems()
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
		redeemer := new(Redeemer)
		if err := read(redeemer, r); err != nil {
			return err
		}
		if _, ok := l.Find(redeemer.tag, redeemer.index); ok {
			return fmt.Errorf(
				"%w: redeemer for %s index %d",
				gocardano.ErrDuplicateKey,
				redeemer.tag,
				redeemer.index,
			)
		}
		l.redeemers = append(l.redeemers, redeemer)
	}
}

// ToCbor writes the cached encoding when there is one
func (l *RedeemerList) ToCbor(w *cbor.Writer) error {
	return cbor.WriteCachedOr(w, l, func(w *cbor.Writer) error {
		count := int64(len(l.redeemers))
		if l.format == RedeemerListFormatArray {
			if err := w.WriteStartArray(count); err != nil {
				return err
			}
			for _, redeemer := range l.redeemers {
				if err := redeemer.ToCbor(w); err != nil {
					return err
				}
			}
			return w.WriteEndArray()
		}
		if err := w.WriteStartMap(count); err != nil {
			return err
		}
		for _, redeemer := range l.redeemers {
			if err := redeemer.writeMapEntry(w); err != nil {
				return err
			}
		}
		return w.WriteEndMap()
	})
}
