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

package provider_test

import (
	"testing"

	"github.com/blinklabs-io/gocardano/provider"
	"github.com/stretchr/testify/assert"
)

func TestNetworkLookup(t *testing.T) {
	testDefs := []struct {
		name     string
		magic    uint32
		expected provider.Network
	}{
		{name: "mainnet", magic: 764824073, expected: provider.NetworkMainnet},
		{name: "preprod", magic: 1, expected: provider.NetworkPreprod},
		{name: "preview", magic: 2, expected: provider.NetworkPreview},
		{name: "sanchonet", magic: 4, expected: provider.NetworkSancho},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			assert.Equal(t, testDef.expected, provider.NetworkByName(testDef.name))
			assert.Equal(t, testDef.expected, provider.NetworkByNetworkMagic(testDef.magic))
			assert.Equal(t, testDef.name, testDef.expected.String())
		})
	}
}

func TestNetworkInvalid(t *testing.T) {
	assert.Equal(t, provider.NetworkInvalid, provider.NetworkByName("devnet"))
	assert.Equal(t, provider.NetworkInvalid, provider.NetworkByNetworkMagic(42))
	assert.Equal(t, "unknown", provider.NetworkInvalid.String())
}

func TestNetworkProperties(t *testing.T) {
	assert.True(t, provider.NetworkMainnet.IsMainnet())
	assert.False(t, provider.NetworkPreview.IsMainnet())
	assert.Equal(t, "764824073", provider.NetworkMainnet.Magic())
	assert.Equal(t, "2", provider.NetworkPreview.Magic())
}
