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
	"math"
	"testing"

	"github.com/blinklabs-io/gocardano"
	"github.com/blinklabs-io/gocardano/bigint"
	"github.com/blinklabs-io/gocardano/cbor"
	"github.com/blinklabs-io/gocardano/internal/test"
	"github.com/blinklabs-io/gocardano/ledger/common"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExUnitsCbor(t *testing.T) {
	// Non-minimal memory value
	orig := test.DecodeHexString("821a000003e81907d0")
	var exUnits common.ExUnits
	require.NoError(t, exUnits.UnmarshalCBOR(orig))
	assert.Equal(t, uint64(1000), exUnits.Memory)
	assert.Equal(t, uint64(2000), exUnits.Steps)
	out, err := exUnits.MarshalCBOR()
	require.NoError(t, err)
	assert.Equal(t, orig, out)

	exUnits.ClearCborCache()
	out, err = exUnits.MarshalCBOR()
	require.NoError(t, err)
	assert.Equal(t, test.DecodeHexString("821903e81907d0"), out)

	// The streaming decoder agrees with the generic one
	var streamed common.ExUnits
	r := cbor.NewReader(orig)
	require.NoError(t, streamed.FromCbor(r))
	assert.True(t, streamed.Equal(exUnits))
	assert.Equal(t, orig, streamed.Cbor())

	r = cbor.NewReader(test.DecodeHexString("83010203"))
	assert.ErrorIs(t, streamed.FromCbor(r), gocardano.ErrInvalidCborValue)
}

func TestExUnitsAdd(t *testing.T) {
	sum, err := common.NewExUnits(1, 2).Add(common.NewExUnits(3, 4))
	require.NoError(t, err)
	assert.Equal(t, "ExUnits{mem: 4, steps: 6}", sum.String())
	_, err = common.NewExUnits(math.MaxUint64, 0).Add(common.NewExUnits(1, 0))
	assert.ErrorIs(t, err, gocardano.ErrConversionFailed)
}

func TestExUnitsUtxorpc(t *testing.T) {
	ret := common.NewExUnits(10, 20).Utxorpc()
	assert.Equal(t, uint64(10), ret.GetMemory())
	assert.Equal(t, uint64(20), ret.GetSteps())
}

const testPolicyHex = "29a8fb8318718bd756124f0c144f56d4b4579dc5edf2dd42d669ac61"

func testPolicy(t *testing.T) common.PolicyId {
	t.Helper()
	ret, err := common.NewBlake2b224FromHex(testPolicyHex)
	require.NoError(t, err)
	return ret
}

func TestMultiAssetCanonicalOrder(t *testing.T) {
	policy := testPolicy(t)
	m := common.NewMultiAsset()
	m.Set(policy, []byte("bb"), bigint.FromInt64(2))
	m.Set(policy, []byte("c"), bigint.FromInt64(3))
	m.Set(policy, []byte("ab"), bigint.FromInt64(1))
	m.Set(policy, []byte("zero"), bigint.New())
	assert.Equal(t, 3, m.Len())
	out, err := m.MarshalCBOR()
	require.NoError(t, err)
	// Shorter names sort first
	expected := "a1581c" + testPolicyHex + "a3" +
		"416303" +
		"42616201" +
		"42626202"
	assert.Equal(t, test.DecodeHexString(expected), out)

	var decoded common.MultiAsset
	require.NoError(t, decoded.UnmarshalCBOR(out))
	assert.True(t, decoded.Equal(m))
	if diff := cmp.Diff([][]byte{[]byte("c"), []byte("ab"), []byte("bb")}, decoded.Assets(policy)); diff != "" {
		t.Errorf("asset names differ (-want +got):\n%s", diff)
	}
}

func TestMultiAssetArithmetic(t *testing.T) {
	policy := testPolicy(t)
	a := common.NewMultiAsset()
	a.Set(policy, []byte("x"), bigint.FromInt64(5))
	b := common.NewMultiAsset()
	b.Set(policy, []byte("x"), bigint.FromInt64(5))
	b.Set(policy, []byte("y"), bigint.FromInt64(-1))

	sum := a.Add(b)
	assert.Equal(t, "10", sum.Asset(policy, []byte("x")).String())
	assert.True(t, sum.HasNegative())
	// Inputs are untouched
	assert.Equal(t, "5", a.Asset(policy, []byte("x")).String())

	diff := a.Sub(b)
	assert.Equal(t, 1, diff.Len())
	assert.Equal(t, "1", diff.Asset(policy, []byte("y")).String())
	assert.True(t, a.Sub(a).IsZero())
}

func TestMultiAssetDecodeErrors(t *testing.T) {
	testDefs := []struct {
		name    string
		cborHex string
		err     error
	}{
		{name: "short policy", cborHex: "a14101a0", err: gocardano.ErrInvalidCborValue},
		{name: "duplicate asset", cborHex: "a1581c" + testPolicyHex + "a2416101416102", err: gocardano.ErrDuplicateKey},
		{name: "not a map", cborHex: "80", err: gocardano.ErrInvalidCborMajorType},
	}
	for _, td := range testDefs {
		var m common.MultiAsset
		assert.ErrorIs(t, m.UnmarshalCBOR(test.DecodeHexString(td.cborHex)), td.err, td.name)
	}
}

func TestValueCbor(t *testing.T) {
	// Coin only, non-minimal
	orig := test.DecodeHexString("1a00000064")
	var v common.Value
	require.NoError(t, v.UnmarshalCBOR(orig))
	assert.Equal(t, uint64(100), v.Coin())
	assert.Nil(t, v.Assets())
	out, err := v.MarshalCBOR()
	require.NoError(t, err)
	assert.Equal(t, orig, out)
	v.SetCoin(100)
	out, err = v.MarshalCBOR()
	require.NoError(t, err)
	assert.Equal(t, test.DecodeHexString("1864"), out)

	// Coin with assets, bignum amount
	withAssets := "82" + "01" + "a1581c" + testPolicyHex + "a1" + "4161" + "c249010000000000000000"
	orig = test.DecodeHexString(withAssets)
	require.NoError(t, v.UnmarshalCBOR(orig))
	assert.Equal(t, "18446744073709551616", v.Assets().Asset(testPolicy(t), []byte("a")).String())
	out, err = v.MarshalCBOR()
	require.NoError(t, err)
	assert.Equal(t, orig, out)
}

func TestValueAssetsCache(t *testing.T) {
	orig := test.DecodeHexString("82" + "01" + "a1581c" + testPolicyHex + "a1" + "4161" + "c249010000000000000000")
	var v common.Value
	require.NoError(t, v.UnmarshalCBOR(orig))
	v.Assets().Set(testPolicy(t), []byte("a"), bigint.FromInt64(5))
	// The parent keeps its cached bytes until told otherwise
	out, err := v.MarshalCBOR()
	require.NoError(t, err)
	assert.Equal(t, orig, out)
	v.ClearCborCache()
	out, err = v.MarshalCBOR()
	require.NoError(t, err)
	assert.Equal(t, test.DecodeHexString("8201a1581c"+testPolicyHex+"a1416105"), out)
}

func TestValueArithmetic(t *testing.T) {
	policy := testPolicy(t)
	assets := common.NewMultiAsset()
	assets.Set(policy, []byte("a"), bigint.FromInt64(3))
	a := common.NewValue(10, assets)
	b := common.NewValue(4, nil)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, uint64(14), sum.Coin())
	assert.Equal(t, "3", sum.Assets().Asset(policy, []byte("a")).String())

	diff, err := a.Sub(b)
	require.NoError(t, err)
	assert.Equal(t, uint64(6), diff.Coin())

	_, err = b.Sub(a)
	assert.ErrorIs(t, err, gocardano.ErrInvalidArgument)
	_, err = common.NewValue(20, nil).Sub(a)
	assert.ErrorIs(t, err, gocardano.ErrInvalidArgument)
	_, err = common.NewValue(math.MaxUint64, nil).Add(b)
	assert.ErrorIs(t, err, gocardano.ErrConversionFailed)

	zero, err := a.Sub(a)
	require.NoError(t, err)
	assert.True(t, zero.IsZero())
	assert.True(t, a.Equal(common.NewValue(10, assets)))
	assert.Equal(t, "4 lovelace", b.String())

	// Fresh values with assets use the array form
	out, err := a.MarshalCBOR()
	require.NoError(t, err)
	assert.Equal(t, test.DecodeHexString("820a"+"a1581c"+testPolicyHex+"a1416103"), out)
}
