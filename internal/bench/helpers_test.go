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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFixture(t *testing.T) {
	for _, name := range FixtureNames() {
		t.Run(name, func(t *testing.T) {
			fixture, err := LoadFixture(name)
			require.NoError(t, err)
			require.NotNil(t, fixture)
			assert.Equal(t, name, fixture.Name)
			assert.NotEmpty(t, fixture.Cbor)
		})
	}
}

func TestLoadFixture_Unknown(t *testing.T) {
	_, err := LoadFixture("unknown")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown fixture")
}

func TestMustLoadFixture_Panics(t *testing.T) {
	assert.Panics(t, func() {
		MustLoadFixture("unknown")
	})
}

func TestFixtureNames(t *testing.T) {
	names := FixtureNames()
	assert.Len(t, names, 5)
	assert.Equal(t, "datum_nested", names[0])
	assert.Contains(t, names, "redeemers_map")
}

func TestRedeemerListFixture(t *testing.T) {
	list, err := RedeemerListFixture(12, 0)
	require.NoError(t, err)
	assert.Equal(t, 12, list.Len())
	total, err := list.TotalExUnits()
	require.NoError(t, err)
	assert.Equal(t, uint64(12*1_000_000+66), total.Memory)
}

func TestValueFixture(t *testing.T) {
	v := ValueFixture(3, 2)
	assert.Equal(t, uint64(2_000_000), v.Coin())
	assert.Equal(t, 6, v.Assets().Len())
}
