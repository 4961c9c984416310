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


package units

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vechain/thor-sdk-go/thor"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input    string
		decimals int32
		want     string
	}{
		{"0", 18, "0"},
		{"1", 18, "1000000000000000000"},
		{"1.5", 18, "1500000000000000000"},
		{" 2.25 ", 18, "2250000000000000000"},
		{"0.000000000000000001", 18, "1"},
		{"1.10", 2, "110"},
		{"42", 0, "42"},
		{"1e3", 0, "1000"},
		{"115792089237316195423570985008687907853269984665640564039457.584007913129639935", 18,
			"115792089237316195423570985008687907853269984665640564039457584007913129639935"},
	}
	for _, tt := range tests {
		got, err := Parse(tt.input, tt.decimals)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got.String(), tt.input)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input    string
		decimals int32
	}{
		{"", 18},
		{"   ", 18},
		{"abc", 18},
		{"1.2.3", 18},
		{"-1", 18},
		{"0.0000000000000000001", 18},
		{"1.5", 0},
		{"1", -1},
		{"1", 78},
	}
	for _, tt := range tests {
		_, err := Parse(tt.input, tt.decimals)
		assert.ErrorIs(t, err, thor.ErrInvalidDataType, "%q/%d", tt.input, tt.decimals)
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		value    string
		decimals int32
		want     string
	}{
		{"0", 18, "0"},
		{"1", 18, "0.000000000000000001"},
		{"1000000000000000000", 18, "1"},
		{"1500000000000000000", 18, "1.5"},
		{"123456", 2, "1234.56"},
		{"42", 0, "42"},
	}
	for _, tt := range tests {
		v, ok := new(big.Int).SetString(tt.value, 10)
		require.True(t, ok)
		assert.Equal(t, tt.want, Format(v, tt.decimals), tt.value)
	}
	assert.Equal(t, "0", Format(nil, 18))
}

func TestVETAndVTHO(t *testing.T) {
	wei, err := ParseVET("21.5")
	require.NoError(t, err)
	assert.Equal(t, "21500000000000000000", wei.String())
	assert.Equal(t, "21.5", FormatVET(wei))

	energy, err := ParseVTHO("0.01")
	require.NoError(t, err)
	assert.Equal(t, "10000000000000000", energy.String())
	assert.Equal(t, "0.01", FormatVTHO(energy))
}

func TestRoundTrip(t *testing.T) {
	for _, s := range []string{"0.1", "3", "1000000", "0.123456789012345678"} {
		v, err := ParseVET(s)
		require.NoError(t, err)
		assert.Equal(t, s, FormatVET(v))
	}
}
