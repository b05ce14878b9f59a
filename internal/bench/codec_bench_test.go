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

package bench

import (
	"testing"

	"github.com/blinklabs-io/gocardano/cbor"
	"github.com/blinklabs-io/gocardano/ledger/common"
)

// benchSink prevents compiler dead-code elimination in benchmarks.
var benchSink any

// BenchmarkReaderSkip benchmarks walking a complete item without decoding it
func BenchmarkReaderSkip(b *testing.B) {
	for _, name := range FixtureNames() {
		fixture := MustLoadFixture(name)
		b.Run(name, func(b *testing.B) {
			b.SetBytes(int64(len(fixture.Cbor)))
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				r := cbor.NewReader(fixture.Cbor)
				if err := r.SkipValue(); err != nil {
					b.Fatal(err)
				}
				r.Unref()
			}
		})
	}
}

// BenchmarkPlutusDataDecode benchmarks datum decoding by tree size
func BenchmarkPlutusDataDecode(b *testing.B) {
	for _, name := range []string{"datum_small", "datum_nested"} {
		fixture := MustLoadFixture(name)
		b.Run(name, func(b *testing.B) {
			b.SetBytes(int64(len(fixture.Cbor)))
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				var d common.PlutusData
				if err := d.UnmarshalCBOR(fixture.Cbor); err != nil {
					b.Fatal(err)
				}
				benchSink = &d
			}
		})
	}
}

// BenchmarkPlutusDataEncode compares re-encoding from the cached bytes
// against a fresh encoding of the same tree
func BenchmarkPlutusDataEncode(b *testing.B) {
	fixture := MustLoadFixture("datum_nested")
	var cached common.PlutusData
	if err := cached.UnmarshalCBOR(fixture.Cbor); err != nil {
		b.Fatal(err)
	}
	fresh := DatumFixture(6, 4)
	for _, tc := range []struct {
		name  string
		datum *common.PlutusData
	}{
		{"cached", &cached},
		{"fresh", fresh},
	} {
		b.Run(tc.name, func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				data, err := tc.datum.MarshalCBOR()
				if err != nil {
					b.Fatal(err)
				}
				benchSink = data
			}
		})
	}
}

// BenchmarkRedeemerListDecode benchmarks both witness set encodings
func BenchmarkRedeemerListDecode(b *testing.B) {
	for _, name := range []string{"redeemers_array", "redeemers_map"} {
		fixture := MustLoadFixture(name)
		b.Run(name, func(b *testing.B) {
			b.SetBytes(int64(len(fixture.Cbor)))
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				var l common.RedeemerList
				if err := l.UnmarshalCBOR(fixture.Cbor); err != nil {
					b.Fatal(err)
				}
				benchSink = &l
			}
		})
	}
}

// BenchmarkRedeemerListSetExUnits benchmarks the evaluate-then-update cycle
func BenchmarkRedeemerListSetExUnits(b *testing.B) {
	fixture := MustLoadFixture("redeemers_map")
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var l common.RedeemerList
		if err := l.UnmarshalCBOR(fixture.Cbor); err != nil {
			b.Fatal(err)
		}
		if err := l.SetExUnits(common.RedeemerTagSpend, 0, common.NewExUnits(1, 1)); err != nil {
			b.Fatal(err)
		}
		data, err := l.MarshalCBOR()
		if err != nil {
			b.Fatal(err)
		}
		benchSink = data
	}
}

// BenchmarkValueDecode benchmarks multi-asset value decoding
func BenchmarkValueDecode(b *testing.B) {
	fixture := MustLoadFixture("value_multiasset")
	b.SetBytes(int64(len(fixture.Cbor)))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var v common.Value
		if err := v.UnmarshalCBOR(fixture.Cbor); err != nil {
			b.Fatal(err)
		}
		benchSink = &v
	}
}
