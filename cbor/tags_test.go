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

package cbor_test

import (
	"encoding/hex"
	"math/big"
	"reflect"
	"testing"

	"github.com/blinklabs-io/gocardano"
	"github.com/blinklabs-io/gocardano/cbor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tagsTestDefs = []struct {
	cborHex string
	object  any
}{
	{
		cborHex: "d81843abcdef",
		object:  cbor.WrappedCbor([]byte{0xab, 0xcd, 0xef}),
	},
	{
		cborHex: "d9010283010203",
		object: cbor.Set(
			[]any{
				uint64(1), uint64(2), uint64(3),
			},
		),
	},
	{
		cborHex: "d90103a201020304",
		object: cbor.Map(
			map[any]any{
				uint64(1): uint64(2),
				uint64(3): uint64(4),
			},
		),
	},
}

func TestTagsDecode(t *testing.T) {
	for _, testDef := range tagsTestDefs {
		cborData, err := hex.DecodeString(testDef.cborHex)
		if err != nil {
			t.Fatalf("failed to decode CBOR hex: %s", err)
		}
		var dest any
		if _, err := cbor.Decode(cborData, &dest); err != nil {
			t.Fatalf("failed to decode CBOR: %s", err)
		}
		if !reflect.DeepEqual(dest, testDef.object) {
			t.Fatalf(
				"CBOR did not decode to expected object\n  got: %#v\n  wanted: %#v",
				dest,
				testDef.object,
			)
		}
	}
}

func TestTagsEncode(t *testing.T) {
	for _, testDef := range tagsTestDefs {
		cborData, err := cbor.Encode(testDef.object)
		if err != nil {
			t.Fatalf("failed to encode object to CBOR: %s", err)
		}
		cborHex := hex.EncodeToString(cborData)
		if cborHex != testDef.cborHex {
			t.Fatalf(
				"object did not encode to expected CBOR\n  got: %s\n  wanted: %s",
				cborHex,
				testDef.cborHex,
			)
		}
	}
}

var ratTestDefs = []struct {
	cborHex string
	rat     *big.Rat
}{
	{
		cborHex: "d81e82031903e8",
		rat:     big.NewRat(3, 1000),
	},
	// 30([9223372036854775809, 10000000000000000000])
	{
		cborHex: "d81e821b80000000000000011b8ac7230489e80000",
		rat: new(big.Rat).SetFrac(
			new(big.Int).SetUint64(9223372036854775809),
			new(big.Int).SetUint64(10000000000000000000),
		),
	},
	// 30([-1, 2])
	{
		cborHex: "d81e822002",
		rat:     big.NewRat(-1, 2),
	},
}

func TestRatRoundTrip(t *testing.T) {
	for _, testDef := range ratTestDefs {
		cborData, err := hex.DecodeString(testDef.cborHex)
		require.NoError(t, err)
		var rat cbor.Rat
		_, err = cbor.Decode(cborData, &rat)
		require.NoError(t, err)
		assert.Equal(t, 0, rat.Cmp(testDef.rat), "got %s, wanted %s", rat.String(), testDef.rat.String())
		encoded, err := cbor.Encode(&cbor.Rat{Rat: testDef.rat})
		require.NoError(t, err)
		assert.Equal(t, testDef.cborHex, hex.EncodeToString(encoded))
	}
}

func TestRatUnmarshalCBORErrors(t *testing.T) {
	tests := []struct {
		name    string
		cborHex string
	}{
		{
			name:    "wrong number of elements",
			cborHex: "d81e8301020304", // 30([1, 2, 3, 4])
		},
		{
			name:    "zero denominator",
			cborHex: "d81e820100", // 30([1, 0])
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, _ := hex.DecodeString(tt.cborHex)
			var rat cbor.Rat
			_, err := cbor.Decode(data, &rat)
			assert.ErrorIs(t, err, gocardano.ErrInvalidCborValue)
		})
	}
}

func TestRatToBigRat(t *testing.T) {
	rat := cbor.Rat{Rat: big.NewRat(3, 4)}
	bigRat := rat.ToBigRat()
	if bigRat.Cmp(big.NewRat(3, 4)) != 0 {
		t.Errorf("expected 3/4, got %s", bigRat.String())
	}
}

func TestWrappedCborBytes(t *testing.T) {
	data := []byte{0xab, 0xcd, 0xef}
	wrapped := cbor.WrappedCbor(data)
	if !reflect.DeepEqual(wrapped.Bytes(), data) {
		t.Errorf("expected %v, got %v", data, wrapped.Bytes())
	}
}
