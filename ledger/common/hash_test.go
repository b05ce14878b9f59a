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
	"encoding/json"
	"testing"

	"github.com/blinklabs-io/gocardano"
	"github.com/blinklabs-io/gocardano/internal/test"
	"github.com/blinklabs-io/gocardano/ledger/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlake2b256Hash(t *testing.T) {
	testDefs := []struct {
		input    string
		expected string
	}{
		{
			input:    "",
			expected: "0e5751c026e543b2e8ab2eb06099daa1d1e5df47778f7787faab45cdf12fe3a8",
		},
		{
			input:    "abc",
			expected: "bddd813c634239723171ef3fee98579b94964e3bb1cb3e427262c8c068d52319",
		},
	}
	for _, td := range testDefs {
		hash := common.Blake2b256Hash([]byte(td.input))
		assert.Equal(t, td.expected, hash.String())
	}
	assert.Len(t, common.Blake2b224Hash(nil).Bytes(), common.Blake2b224Size)
}

func TestHashCbor(t *testing.T) {
	hash := common.Blake2b256Hash([]byte("abc"))
	cborData, err := hash.MarshalCBOR()
	require.NoError(t, err)
	assert.Equal(t, append([]byte{0x58, 0x20}, hash.Bytes()...), cborData)
	var decoded common.Blake2b256
	require.NoError(t, decoded.UnmarshalCBOR(cborData))
	assert.Equal(t, hash, decoded)

	// Wrong size
	var policy common.Blake2b224
	assert.ErrorIs(t, policy.UnmarshalCBOR(cborData), gocardano.ErrInvalidCborValue)
}

func TestHashFromHex(t *testing.T) {
	hash, err := common.NewBlake2b224FromHex("29a8fb8318718bd756124f0c144f56d4b4579dc5edf2dd42d669ac61")
	require.NoError(t, err)
	assert.Equal(t, "29a8fb8318718bd756124f0c144f56d4b4579dc5edf2dd42d669ac61", hash.String())
	_, err = common.NewBlake2b224FromHex("29a8")
	assert.ErrorIs(t, err, gocardano.ErrInvalidArgument)
	_, err = common.NewBlake2b256FromHex("not hex")
	assert.ErrorIs(t, err, gocardano.ErrInvalidArgument)
	jsonData, err := json.Marshal(hash)
	require.NoError(t, err)
	assert.Equal(t, `"29a8fb8318718bd756124f0c144f56d4b4579dc5edf2dd42d669ac61"`, string(jsonData))
	assert.Equal(t, test.DecodeHexString("29a8fb8318718bd756124f0c144f56d4b4579dc5edf2dd42d669ac61"), hash.Bytes())
}
