// Copyright 2024 The go-ethereum Authors
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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetworkByName(t *testing.T) {
	tests := []struct {
		name string
		want Network
	}{
		{"main", Network{"main", MainnetChainTag, MainnetNodeURL}},
		{"mainnet", Network{"main", MainnetChainTag, MainnetNodeURL}},
		{"test", Network{"test", TestnetChainTag, TestnetNodeURL}},
		{"testnet", Network{"test", TestnetChainTag, TestnetNodeURL}},
		{"solo", Network{"solo", SoloChainTag, SoloNodeURL}},
	}
	for _, tt := range tests {
		n, err := NetworkByName(tt.name)
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.want, n, tt.name)
	}
	_, err := NetworkByName("Main")
	assert.Error(t, err)
	_, err = NetworkByName("")
	assert.Error(t, err)
}

func TestNetworkByChainTag(t *testing.T) {
	n, ok := NetworkByChainTag(0x27)
	require.True(t, ok)
	assert.Equal(t, "test", n.Name)

	_, ok = NetworkByChainTag(0x01)
	assert.False(t, ok)
}
