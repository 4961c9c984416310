// Copyright 2015 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package params

import "fmt"

// Chain tags are the last byte of a network's genesis block id. A transaction
// carries the tag of the network it is meant for.
// 链标签是网络创世区块 id 的最后一个字节，交易携带其目标网络的标签。
const (
	MainnetChainTag byte = 0x4a
	TestnetChainTag byte = 0x27
	SoloChainTag    byte = 0xf6
)

// Default public node endpoints.
const (
	MainnetNodeURL = "https://mainnet.vechain.org"
	TestnetNodeURL = "https://testnet.vechain.org"
	SoloNodeURL    = "http://localhost:8669"
)

// Network describes a well-known network.
type Network struct {
	Name     string
	ChainTag byte
	NodeURL  string
}

var networks = []Network{
	{Name: "main", ChainTag: MainnetChainTag, NodeURL: MainnetNodeURL},
	{Name: "test", ChainTag: TestnetChainTag, NodeURL: TestnetNodeURL},
	{Name: "solo", ChainTag: SoloChainTag, NodeURL: SoloNodeURL},
}

// NetworkByName looks up a well-known network. "mainnet" and "testnet" are
// accepted as aliases.
func NetworkByName(name string) (Network, error) {
	switch name {
	case "mainnet":
		name = "main"
	case "testnet":
		name = "test"
	}
	for _, n := range networks {
		if n.Name == name {
			return n, nil
		}
	}
	return Network{}, fmt.Errorf("unknown network %q", name)
}

// NetworkByChainTag returns the network with the given chain tag, if known.
func NetworkByChainTag(tag byte) (Network, bool) {
	for _, n := range networks {
		if n.ChainTag == tag {
			return n, true
		}
	}
	return Network{}, false
}
