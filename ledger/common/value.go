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
	"cmp"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/blinklabs-io/gocardano"
	"github.com/blinklabs-io/gocardano/bigint"
	"github.com/blinklabs-io/gocardano/cbor"
)

// MultiAsset maps policy IDs and asset names to amounts. Amounts are
// arbitrary-precision so that the same type serves outputs and mint
// fields, which may be negative.
//
// Zero amounts are never stored. Policies and names are encoded in
// canonical order: shorter keys first, then bytewise.
type MultiAsset struct {
	cbor.DecodeStoreCbor
	data map[PolicyId]map[string]*bigint.BigInt
}

func NewMultiAsset() *MultiAsset {
	return &MultiAsset{
		data: make(map[PolicyId]map[string]*bigint.BigInt),
	}
}

// canonicalCompare orders keys length-first, then bytewise
func canonicalCompare(a []byte, b []byte) int {
	if c := cmp.Compare(len(a), len(b)); c != 0 {
		return c
	}
	return bytes.Compare(a, b)
}

// Policies returns the policy IDs in canonical order
func (m *MultiAsset) Policies() []PolicyId {
	if m == nil {
		return nil
	}
	ret := slices.Collect(maps.Keys(m.data))
	slices.SortFunc(ret, func(a, b PolicyId) int {
		return bytes.Compare(a[:], b[:])
	})
	return ret
}

// Assets returns the asset names under a policy in canonical order
func (m *MultiAsset) Assets(policyId PolicyId) [][]byte {
	if m == nil {
		return nil
	}
	ret := [][]byte{}
	for name := range m.data[policyId] {
		ret = append(ret, []byte(name))
	}
	slices.SortFunc(ret, canonicalCompare)
	return ret
}

// Asset returns a copy of the amount of an asset, zero when absent
func (m *MultiAsset) Asset(policyId PolicyId, assetName []byte) *bigint.BigInt {
	if m != nil {
		if amount, ok := m.data[policyId][string(assetName)]; ok {
			return amount.Clone()
		}
	}
	return bigint.New()
}

// Set stores a copy of amount for an asset. A zero amount removes it.
func (m *MultiAsset) Set(policyId PolicyId, assetName []byte, amount *bigint.BigInt) {
	m.ClearCborCache()
	m.set(policyId, string(assetName), amount.Clone())
}

func (m *MultiAsset) set(policyId PolicyId, assetName string, amount *bigint.BigInt) {
	if m.data == nil {
		m.data = make(map[PolicyId]map[string]*bigint.BigInt)
	}
	if amount.IsZero() {
		delete(m.data[policyId], assetName)
		if len(m.data[policyId]) == 0 {
			delete(m.data, policyId)
		}
		return
	}
	if m.data[policyId] == nil {
		m.data[policyId] = make(map[string]*bigint.BigInt)
	}
	m.data[policyId][assetName] = amount
}

// Len returns the number of distinct assets
func (m *MultiAsset) Len() int {
	if m == nil {
		return 0
	}
	ret := 0
	for _, assets := range m.data {
		ret += len(assets)
	}
	return ret
}

func (m *MultiAsset) IsZero() bool {
	return m.Len() == 0
}

// Add returns a new MultiAsset holding the sum of m and other
func (m *MultiAsset) Add(other *MultiAsset) *MultiAsset {
	return m.combine(other, (*bigint.BigInt).Add)
}

// Sub returns a new MultiAsset holding m minus other
func (m *MultiAsset) Sub(other *MultiAsset) *MultiAsset {
	return m.combine(other, (*bigint.BigInt).Sub)
}

func (m *MultiAsset) combine(
	other *MultiAsset,
	op func(z *bigint.BigInt, x *bigint.BigInt, y *bigint.BigInt) *bigint.BigInt,
) *MultiAsset {
	ret := m.Clone()
	ret.ClearCborCache()
	if other == nil {
		return ret
	}
	for policyId, assets := range other.data {
		for name, amount := range assets {
			current := ret.Asset(policyId, []byte(name))
			ret.set(policyId, name, op(current, current, amount))
		}
	}
	return ret
}

// HasNegative reports whether any amount is below zero
func (m *MultiAsset) HasNegative() bool {
	if m == nil {
		return false
	}
	for _, assets := range m.data {
		for _, amount := range assets {
			if amount.Sign() < 0 {
				return true
			}
		}
	}
	return false
}

// Equal compares amounts, ignoring any cached encoding
func (m *MultiAsset) Equal(other *MultiAsset) bool {
	if m.Len() != other.Len() {
		return false
	}
	if m == nil {
		return true
	}
	for policyId, assets := range m.data {
		for name, amount := range assets {
			if !amount.Equal(other.Asset(policyId, []byte(name))) {
				return false
			}
		}
	}
	return true
}

// Clone returns a deep copy, including any cached encoding
func (m *MultiAsset) Clone() *MultiAsset {
	ret := NewMultiAsset()
	if m == nil {
		return ret
	}
	ret.SetCbor(m.Cbor())
	for policyId, assets := range m.data {
		tmpAssets := make(map[string]*bigint.BigInt, len(assets))
		for name, amount := range assets {
			tmpAssets[name] = amount.Clone()
		}
		ret.data[policyId] = tmpAssets
	}
	return ret
}

func (m *MultiAsset) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, policyId := range m.Policies() {
		for j, name := range m.Assets(policyId) {
			if i > 0 || j > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%s.%x: %s", policyId.String(), name, m.data[policyId][string(name)])
		}
	}
	sb.WriteString("]")
	return sb.String()
}

func (m *MultiAsset) UnmarshalCBOR(cborData []byte) error {
	r := cbor.NewReader(cborData)
	defer r.Unref()
	return m.FromCbor(r)
}

func (m *MultiAsset) MarshalCBOR() ([]byte, error) {
	w := cbor.NewWriter()
	defer w.Unref()
	if err := m.ToCbor(w); err != nil {
		return nil, err
	}
	return w.Encode()
}

// FromCbor decodes {policy_id => {asset_name => amount}}
func (m *MultiAsset) FromCbor(r *cbor.Reader) error {
	*m = MultiAsset{
		data: make(map[PolicyId]map[string]*bigint.BigInt),
	}
	return m.CaptureCbor(r, func(r *cbor.Reader) error {
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
			policyBytes, err := r.ReadByteString()
			if err != nil {
				return err
			}
			if len(policyBytes) != Blake2b224Size {
				return fmt.Errorf(
					"%w: policy ID must be %d bytes, got %d",
					gocardano.ErrInvalidCborValue,
					Blake2b224Size,
					len(policyBytes),
				)
			}
			policyId := NewBlake2b224(policyBytes)
			if _, ok := m.data[policyId]; ok {
				return fmt.Errorf("%w: policy %s", gocardano.ErrDuplicateKey, policyId)
			}
			assets, err := readAssets(r)
			if err != nil {
				return err
			}
			m.data[policyId] = assets
		}
		return r.ReadEndMap()
	})
}

func readAssets(r *cbor.Reader) (map[string]*bigint.BigInt, error) {
	if _, err := r.ReadStartMap(); err != nil {
		return nil, err
	}
	ret := make(map[string]*bigint.BigInt)
	for {
		more, err := r.HasMoreItems()
		if err != nil {
			return nil, err
		}
		if !more {
			break
		}
		name, err := r.ReadByteString()
		if err != nil {
			return nil, err
		}
		if _, ok := ret[string(name)]; ok {
			return nil, fmt.Errorf("%w: asset %x", gocardano.ErrDuplicateKey, name)
		}
		amount, err := r.ReadBigInt()
		if err != nil {
			return nil, err
		}
		// Zero amounts are legal on the wire but not kept
		if !amount.IsZero() {
			ret[string(name)] = amount
		}
	}
	return ret, r.ReadEndMap()
}

// ToCbor writes the cached encoding when there is one
func (m *MultiAsset) ToCbor(w *cbor.Writer) error {
	return cbor.WriteCachedOr(w, m, func(w *cbor.Writer) error {
		policies := m.Policies()
		if err := w.WriteStartMap(int64(len(policies))); err != nil {
			return err
		}
		for _, policyId := range policies {
			if err := w.WriteByteString(policyId.Bytes()); err != nil {
				return err
			}
			names := m.Assets(policyId)
			if err := w.WriteStartMap(int64(len(names))); err != nil {
				return err
			}
			for _, name := range names {
				if err := w.WriteByteString(name); err != nil {
					return err
				}
				if err := w.WriteBigInt(m.data[policyId][string(name)]); err != nil {
					return err
				}
			}
			if err := w.WriteEndMap(); err != nil {
				return err
			}
		}
		return w.WriteEndMap()
	})
}

// Value is an amount of lovelace with optional native assets. It encodes as
// a bare coin when there are no assets and as [coin, multiasset] otherwise.
type Value struct {
	cbor.DecodeStoreCbor
	coin   uint64
	assets *MultiAsset
}

// NewValue returns a Value holding a copy of assets, which may be nil
func NewValue(coin uint64, assets *MultiAsset) *Value {
	ret := &Value{coin: coin}
	if assets != nil {
		ret.assets = assets.Clone()
	}
	return ret
}

func (v *Value) Coin() uint64 {
	return v.coin
}

// Assets returns the native assets, or nil when there are none. Changes made
// through it are not seen by the cache of v until v.ClearCborCache is called.
func (v *Value) Assets() *MultiAsset {
	return v.assets
}

func (v *Value) SetCoin(coin uint64) {
	v.coin = coin
	v.ClearCborCache()
}

func (v *Value) SetAssets(assets *MultiAsset) {
	v.assets = assets
	v.ClearCborCache()
}

// Add returns the sum of v and other
func (v *Value) Add(other *Value) (*Value, error) {
	coin := v.coin + other.coin
	if coin < v.coin {
		return nil, fmt.Errorf("%w: coin overflow", gocardano.ErrConversionFailed)
	}
	return &Value{
		coin:   coin,
		assets: v.assets.Add(other.assets),
	}, nil
}

// Sub returns v minus other. The result must not be negative.
func (v *Value) Sub(other *Value) (*Value, error) {
	if other.coin > v.coin {
		return nil, fmt.Errorf(
			"%w: cannot subtract %d lovelace from %d",
			gocardano.ErrInvalidArgument,
			other.coin,
			v.coin,
		)
	}
	assets := v.assets.Sub(other.assets)
	if assets.HasNegative() {
		return nil, fmt.Errorf("%w: asset amounts would be negative", gocardano.ErrInvalidArgument)
	}
	return &Value{
		coin:   v.coin - other.coin,
		assets: assets,
	}, nil
}

func (v *Value) IsZero() bool {
	return v.coin == 0 && v.assets.IsZero()
}

// Equal compares amounts, ignoring any cached encoding
func (v *Value) Equal(other *Value) bool {
	return v.coin == other.coin && v.assets.Equal(other.assets)
}

func (v *Value) String() string {
	if v.assets.IsZero() {
		return fmt.Sprintf("%d lovelace", v.coin)
	}
	return fmt.Sprintf("%d lovelace + %s", v.coin, v.assets)
}

func (v *Value) UnmarshalCBOR(cborData []byte) error {
	r := cbor.NewReader(cborData)
	defer r.Unref()
	return v.FromCbor(r)
}

func (v *Value) MarshalCBOR() ([]byte, error) {
	w := cbor.NewWriter()
	defer w.Unref()
	if err := v.ToCbor(w); err != nil {
		return nil, err
	}
	return w.Encode()
}

// FromCbor decodes coin or [coin, multiasset]
func (v *Value) FromCbor(r *cbor.Reader) error {
	*v = Value{}
	return v.CaptureCbor(r, func(r *cbor.Reader) error {
		state, err := r.PeekState()
		if err != nil {
			return err
		}
		if state == cbor.StateUnsignedInteger {
			v.coin, err = r.ReadUint()
			return err
		}
		count, err := r.ReadStartArray()
		if err != nil {
			return err
		}
		if count != 2 && count != cbor.IndefiniteLength {
			return fmt.Errorf("%w: value must have 2 elements, got %d", gocardano.ErrInvalidCborValue, count)
		}
		if v.coin, err = r.ReadUint(); err != nil {
			return err
		}
		v.assets = new(MultiAsset)
		if err := v.assets.FromCbor(r); err != nil {
			return err
		}
		return r.ReadEndArray()
	})
}

// ToCbor writes the cached encoding when there is one
func (v *Value) ToCbor(w *cbor.Writer) error {
	return cbor.WriteCachedOr(w, v, func(w *cbor.Writer) error {
		if v.assets.IsZero() {
			return w.WriteUint(v.coin)
		}
		if err := w.WriteStartArray(2); err != nil {
			return err
		}
		if err := w.WriteUint(v.coin); err != nil {
			return err
		}
		if err := v.assets.ToCbor(w); err != nil {
			return err
		}
		return w.WriteEndArray()
	})
}
