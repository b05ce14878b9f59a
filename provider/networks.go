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

package provider

import "strconv"

// Network definitions
var (
	NetworkMainnet = Network{
		Id:           NetworkIdMainnet,
		Name:         "mainnet",
		NetworkMagic: 764824073,
	}
	NetworkPreprod = Network{
		Id:           NetworkIdTestnet,
		Name:         "preprod",
		NetworkMagic: 1,
	}
	NetworkPreview = Network{
		Id:           NetworkIdTestnet,
		Name:         "preview",
		NetworkMagic: 2,
	}
	NetworkSancho = Network{
		Id:           NetworkIdTestnet,
		Name:         "sanchonet",
		NetworkMagic: 4,
	}

	// NetworkInvalid is returned by lookup functions when a network isn't found
	NetworkInvalid = Network{
		Name: "invalid",
	}
)

// Network IDs as carried in address headers
const (
	NetworkIdTestnet uint8 = 0
	NetworkIdMainnet uint8 = 1
)

var networks = []Network{
	NetworkMainnet,
	NetworkPreprod,
	NetworkPreview,
	NetworkSancho,
}

// NetworkByName returns a predefined network by name
func NetworkByName(name string) Network {
	for _, network := range networks {
		if network.Name == name {
			return network
		}
	}
	return NetworkInvalid
}

// NetworkByNetworkMagic returns a predefined network by network magic
func NetworkByNetworkMagic(networkMagic uint32) Network {
	for _, network := range networks {
		if network.NetworkMagic == networkMagic {
			return network
		}
	}
	return NetworkInvalid
}

// Network represents a Cardano network a provider is connected to
type Network struct {
	Id           uint8
	Name         string
	NetworkMagic uint32
}

func (n Network) String() string {
	if n == NetworkInvalid {
		return "unknown"
	}
	return n.Name
}

// IsMainnet reports whether n is the production network
func (n Network) IsMainnet() bool {
	return n.Id == NetworkIdMainnet && n.NetworkMagic == NetworkMainnet.NetworkMagic
}

// Magic returns the network magic as a decimal string, as used in
// node-to-client handshakes and backend URLs
func (n Network) Magic() string {
	return strconv.FormatUint(uint64(n.NetworkMagic), 10)
}
