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

package common_test

import (
	"encoding/hex"
	"slices"
	"testing"

	"github.com/blinklabs-io/gocardano"
	"github.com/blinklabs-io/gocardano/cbor"
	"github.com/blinklabs-io/gocardano/internal/test"
	"github.com/blinklabs-io/gocardano/ledger/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	// [[0, 0 (non-minimal), 121([]), [1000, 2000]], [1, 1, [_ 1, 2], [1000000, 10000000]]]
	redeemerArrayHex = "82" +
		"84001800d87980821903e81907d0" +
		"8401019f0102ff821a000f42401a00989680"
	// {[0, 0]: [121([]), [1000, 2000]], [1, 0 (non-minimal)]: [0, [1000000, 10000000]]}
	redeemerMapHex = "a2" +
		"820000" + "82d87980821903e81907d0" +
		"82011800" + "8200821a000f42401a00989680"
)

func TestRedeemerListArrayRoundTrip(t *testing.T) {
	orig := test.DecodeHexString(redeemerArrayHex)
	var list common.RedeemerList
	require.NoError(t, list.UnmarshalCBOR(orig))
	assert.Equal(t, common.RedeemerListFormatArray, list.Format())
	assert.Equal(t, 2, list.Len())
	out, err := list.MarshalCBOR()
	require.NoError(t, err)
	// The natural encoding of the first index differs from the input
	assert.Equal(t, orig, out)

	first, err := list.Get(0)
	require.NoError(t, err)
	assert.Equal(t, common.RedeemerTagSpend, first.Tag())
	assert.Equal(t, uint64(0), first.Index())
	assert.True(t, first.ExUnits().Equal(common.NewExUnits(1000, 2000)))
	second, ok := list.Find(common.RedeemerTagMint, 1)
	require.True(t, ok)
	assert.Equal(t, common.PlutusDataKindList, second.Data().Kind())
	_, err = list.Get(2)
	assert.ErrorIs(t, err, gocardano.ErrIndexOutOfBounds)

	hash, err := list.Hash()
	require.NoError(t, err)
	assert.Equal(t, common.Blake2b256Hash(orig), hash)
}

func TestRedeemerListClearCache(t *testing.T) {
	var list common.RedeemerList
	require.NoError(t, list.UnmarshalCBOR(test.DecodeHexString(redeemerArrayHex)))
	list.ClearCborCache()
	assert.False(t, list.HasCbor())
	out, err := list.MarshalCBOR()
	require.NoError(t, err)
	assert.Equal(
		t,
		"82"+"840000d87980821903e81907d0"+"8401019f0102ff821a000f42401a00989680",
		hex.EncodeToString(out),
	)
}

func TestRedeemerListSetExUnits(t *testing.T) {
	var list common.RedeemerList
	require.NoError(t, list.UnmarshalCBOR(test.DecodeHexString(redeemerArrayHex)))
	require.NoError(t, list.SetExUnits(common.RedeemerTagSpend, 0, common.NewExUnits(500, 600)))
	assert.False(t, list.HasCbor())
	out, err := list.MarshalCBOR()
	require.NoError(t, err)
	// Only the changed redeemer is re-encoded
	expected := "82" + "840000d87980821901f4190258" + "8401019f0102ff821a000f42401a00989680"
	assert.Equal(t, expected, hex.EncodeToString(out))

	// The new encoding round trips
	var decoded common.RedeemerList
	require.NoError(t, decoded.UnmarshalCBOR(out))
	redeemer, ok := decoded.Find(common.RedeemerTagSpend, 0)
	require.True(t, ok)
	assert.True(t, redeemer.ExUnits().Equal(common.NewExUnits(500, 600)))

	err = list.SetExUnits(common.RedeemerTagCert, 3, common.NewExUnits(1, 1))
	assert.ErrorIs(t, err, common.ErrRedeemerNotFound)
	assert.ErrorIs(t, err, gocardano.ErrInvalidArgument)
}

func TestRedeemerListSetIndex(t *testing.T) {
	var list common.RedeemerList
	require.NoError(t, list.UnmarshalCBOR(test.DecodeHexString(redeemerArrayHex)))
	require.NoError(t, list.SetIndex(common.RedeemerTagSpend, 0, 3))
	assert.False(t, list.HasCbor())
	_, ok := list.Find(common.RedeemerTagSpend, 0)
	assert.False(t, ok)
	out, err := list.MarshalCBOR()
	require.NoError(t, err)
	expected := "82" + "840003d87980821903e81907d0" + "8401019f0102ff821a000f42401a00989680"
	assert.Equal(t, expected, hex.EncodeToString(out))

	// Purposes stay unique
	require.NoError(t, list.Add(common.NewRedeemer(
		common.RedeemerTagSpend,
		0,
		common.NewConstrPlutusData(0),
		common.NewExUnits(1, 1),
	)))
	err = list.SetIndex(common.RedeemerTagSpend, 0, 3)
	assert.ErrorIs(t, err, gocardano.ErrDuplicateKey)
	redeemer, ok := list.Find(common.RedeemerTagSpend, 0)
	require.True(t, ok)
	assert.Equal(t, uint64(0), redeemer.Index())

	err = list.SetIndex(common.RedeemerTagCert, 0, 1)
	assert.ErrorIs(t, err, common.ErrRedeemerNotFound)
	require.NoError(t, list.SetIndex(common.RedeemerTagMint, 1, 1))
}

func TestRedeemerListMapForm(t *testing.T) {
	orig := test.DecodeHexString(redeemerMapHex)
	var list common.RedeemerList
	require.NoError(t, list.UnmarshalCBOR(orig))
	assert.Equal(t, common.RedeemerListFormatMap, list.Format())
	out, err := list.MarshalCBOR()
	require.NoError(t, err)
	assert.Equal(t, orig, out)
	assert.Equal(t, []uint64{0}, list.Indexes(common.RedeemerTagMint))

	require.NoError(t, list.SetExUnits(common.RedeemerTagMint, 0, common.NewExUnits(1, 2)))
	out, err = list.MarshalCBOR()
	require.NoError(t, err)
	expected := "a2" + "820000" + "82d87980821903e81907d0" + "820100" + "8200820102"
	assert.Equal(t, expected, hex.EncodeToString(out))

	// Switching form re-encodes every redeemer
	list.SetFormat(common.RedeemerListFormatArray)
	out, err = list.MarshalCBOR()
	require.NoError(t, err)
	expected = "82" + "840000d87980821903e81907d0" + "8401000082" + "0102"
	assert.Equal(t, expected, hex.EncodeToString(out))
}

func TestRedeemerListFresh(t *testing.T) {
	list, err := common.NewRedeemerList(
		common.NewRedeemer(
			common.RedeemerTagSpend,
			0,
			common.NewInt64PlutusData(42),
			common.NewExUnits(1, 2),
		),
	)
	require.NoError(t, err)
	assert.Equal(t, common.RedeemerListFormatMap, list.Format())
	out, err := list.MarshalCBOR()
	require.NoError(t, err)
	assert.Equal(t, "a1820000"+"82182a820102", hex.EncodeToString(out))

	list.SetFormat(common.RedeemerListFormatArray)
	out, err = list.MarshalCBOR()
	require.NoError(t, err)
	assert.Equal(t, "81"+"840000182a820102", hex.EncodeToString(out))

	dup := common.NewRedeemer(common.RedeemerTagSpend, 0, common.NewInt64PlutusData(1), common.ExUnits{})
	assert.ErrorIs(t, list.Add(dup), gocardano.ErrDuplicateKey)
	assert.ErrorIs(t, list.Add(nil), gocardano.ErrPointerIsNull)

	require.NoError(t, list.Add(common.NewRedeemer(common.RedeemerTagMint, 0, common.NewInt64PlutusData(1), common.NewExUnits(10, 20))))
	total, err := list.TotalExUnits()
	require.NoError(t, err)
	assert.True(t, total.Equal(common.NewExUnits(11, 22)))

	assert.True(t, list.Remove(common.RedeemerTagSpend, 0))
	assert.False(t, list.Remove(common.RedeemerTagSpend, 0))
	assert.Equal(t, 1, list.Len())
}

func TestRedeemerListSorted(t *testing.T) {
	list, err := common.NewRedeemerList(
		common.NewRedeemer(common.RedeemerTagMint, 0, common.NewInt64PlutusData(0), common.ExUnits{}),
		common.NewRedeemer(common.RedeemerTagSpend, 2, common.NewInt64PlutusData(0), common.ExUnits{}),
		common.NewRedeemer(common.RedeemerTagSpend, 1, common.NewInt64PlutusData(0), common.ExUnits{}),
	)
	require.NoError(t, err)
	var keys []common.RedeemerKey
	for redeemer := range list.Sorted() {
		keys = append(keys, redeemer.Key())
	}
	assert.Equal(
		t,
		[]common.RedeemerKey{
			{Tag: common.RedeemerTagSpend, Index: 1},
			{Tag: common.RedeemerTagSpend, Index: 2},
			{Tag: common.RedeemerTagMint, Index: 0},
		},
		keys,
	)
	var order []uint64
	for _, redeemer := range list.All() {
		order = append(order, redeemer.Index())
	}
	assert.True(t, slices.Equal([]uint64{0, 2, 1}, order))
}

func TestRedeemerListClone(t *testing.T) {
	orig := test.DecodeHexString(redeemerArrayHex)
	var list common.RedeemerList
	require.NoError(t, list.UnmarshalCBOR(orig))
	clone := list.Clone()
	require.NoError(t, clone.SetExUnits(common.RedeemerTagMint, 1, common.NewExUnits(0, 0)))
	out, err := list.MarshalCBOR()
	require.NoError(t, err)
	assert.Equal(t, orig, out)
	out, err = clone.MarshalCBOR()
	require.NoError(t, err)
	assert.NotEqual(t, orig, out)
}

func TestRedeemerListErrors(t *testing.T) {
	testDefs := []struct {
		name    string
		cborHex string
		err     error
	}{
		{
			name:    "unknown tag",
			cborHex: "81" + "840600" + "00" + "820102",
			err:     common.ErrUnknownRedeemerTag,
		},
		{
			name:    "duplicate map key",
			cborHex: "a2" + "820000" + "8200820102" + "820000" + "8200820102",
			err:     gocardano.ErrDuplicateKey,
		},
		{
			name:    "duplicate array entry",
			cborHex: "82" + "84000000820102" + "84000000820102",
			err:     gocardano.ErrDuplicateKey,
		},
		{
			name:    "short redeemer",
			cborHex: "81" + "83000000",
			err:     gocardano.ErrInvalidCborValue,
		},
		{
			name:    "not a container",
			cborHex: "01",
			err:     gocardano.ErrInvalidCborMajorType,
		},
		{
			name:    "truncated",
			cborHex: "81" + "840000",
			err:     gocardano.ErrUnexpectedEndOfData,
		},
	}
	for _, td := range testDefs {
		t.Run(td.name, func(t *testing.T) {
			var list common.RedeemerList
			err := list.UnmarshalCBOR(test.DecodeHexString(td.cborHex))
			assert.ErrorIs(t, err, td.err)
		})
	}
	var tagErr common.UnknownRedeemerTagError
	var list common.RedeemerList
	err := list.UnmarshalCBOR(test.DecodeHexString("81" + "840600" + "00" + "820102"))
	require.ErrorAs(t, err, &tagErr)
	assert.Equal(t, uint64(6), tagErr.Tag)
	assert.ErrorIs(t, err, gocardano.ErrInvalidCborValue)
}

func TestRedeemerWithinWriter(t *testing.T) {
	var redeemer common.Redeemer
	orig := test.DecodeHexString("84001800d87980821903e81907d0")
	require.NoError(t, redeemer.UnmarshalCBOR(orig))
	w := cbor.NewWriter()
	defer w.Unref()
	require.NoError(t, w.WriteStartArray(1))
	require.NoError(t, redeemer.ToCbor(w))
	require.NoError(t, w.WriteEndArray())
	out, err := w.Encode()
	require.NoError(t, err)
	assert.Equal(t, append([]byte{0x81}, orig...), out)

	redeemer.SetIndex(5)
	out, err = redeemer.MarshalCBOR()
	require.NoError(t, err)
	assert.Equal(t, "840005d87980821903e81907d0", hex.EncodeToString(out))
	assert.Equal(t, "mint", common.RedeemerTagMint.String())
}
