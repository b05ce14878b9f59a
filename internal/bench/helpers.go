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

// Package bench provides benchmark fixtures for the CBOR codec and the ledger
// entities built on it.
package bench

import (
	"fmt"
	"slices"

	"github.com/blinklabs-io/gocardano/bigint"
	"github.com/blinklabs-io/gocardano/cbor"
	"github.com/blinklabs-io/gocardano/ledger/common"
)

// Fixture contains a pre-encoded item for benchmarking
type Fixture struct {
	Name string
	Cbor []byte
}

type cborEncoder interface {
	ToCbor(w *cbor.Writer) error
}

var fixtureBuilders = map[string]func() (cborEncoder, error){
	"datum_small": func() (cborEncoder, error) {
		return DatumFixture(1, 4), nil
	},
	"datum_nested": func() (cborEncoder, error) {
		return DatumFixture(6, 4), nil
	},
	"redeemers_map": func() (cborEncoder, error) {
		return RedeemerListFixture(32, common.RedeemerListFormatMap)
	},
	"redeemers_array": func() (cborEncoder, error) {
		return RedeemerListFixture(32, common.RedeemerListFormatArray)
	},
	"value_multiasset": func() (cborEncoder, error) {
		return ValueFixture(16, 8), nil
	},
}

// FixtureNames returns the names accepted by LoadFixture in sorted order
func FixtureNames() []string {
	ret := make([]string, 0, len(fixtureBuilders))
	for name := range fixtureBuilders {
		ret = append(ret, name)
	}
	slices.Sort(ret)
	return ret
}

// LoadFixture builds and encodes the named fixture
func LoadFixture(name string) (*Fixture, error) {
	build, ok := fixtureBuilders[name]
	if !ok {
		return nil, fmt.Errorf("unknown fixture: %s", name)
	}
	item, err := build()
	if err != nil {
		return nil, err
	}
	w := cbor.NewWriter()
	defer w.Unref()
	if err := item.ToCbor(w); err != nil {
		return nil, fmt.Errorf("encode fixture %s: %w", name, err)
	}
	data, err := w.Encode()
	if err != nil {
		return nil, fmt.Errorf("encode fixture %s: %w", name, err)
	}
	return &Fixture{Name: name, Cbor: data}, nil
}

// MustLoadFixture is like LoadFixture but panics on error
func MustLoadFixture(name string) *Fixture {
	ret, err := LoadFixture(name)
	if err != nil {
		panic(err)
	}
	return ret
}

// DatumFixture builds a constructor tree of the given depth where every node
// has width children. Leaves alternate between subtrees and integers.
func DatumFixture(depth int, width int) *common.PlutusData {
	if depth <= 0 {
		return common.NewBytesPlutusData([]byte("leaf"))
	}
	fields := make([]*common.PlutusData, 0, width)
	for i := range width {
		if i%2 == 0 {
			fields = append(fields, DatumFixture(depth-1, width))
			continue
		}
		fields = append(fields, common.NewInt64PlutusData(int64(i)*1_000_000))
	}
	// #nosec G115 -- depth is positive here
	return common.NewConstrPlutusData(uint64(depth%8), fields...)
}

// RedeemerListFixture builds n redeemers with distinct keys
func RedeemerListFixture(n int, format common.RedeemerListFormat) (*common.RedeemerList, error) {
	ret, err := common.NewRedeemerList()
	if err != nil {
		return nil, err
	}
	ret.SetFormat(format)
	for i := range n {
		// #nosec G115 -- i is non-negative
		idx := uint64(i)
		redeemer := common.NewRedeemer(
			common.RedeemerTag(idx%6),
			idx,
			DatumFixture(2, 2),
			common.NewExUnits(1_000_000+idx, 500_000_000+idx),
		)
		if err := ret.Add(redeemer); err != nil {
			return nil, err
		}
	}
	return ret, nil
}

// ValueFixture builds a value with the given number of policies, each
// holding assetsPerPolicy assets
func ValueFixture(policies int, assetsPerPolicy int) *common.Value {
	assets := common.NewMultiAsset()
	for p := range policies {
		policyId := common.Blake2b224Hash(fmt.Appendf(nil, "policy-%d", p))
		for a := range assetsPerPolicy {
			assets.Set(
				policyId,
				fmt.Appendf(nil, "asset-%d", a),
				bigint.FromInt64(int64(a+1)*1000),
			)
		}
	}
	return common.NewValue(2_000_000, assets)
}
