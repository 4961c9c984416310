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


// Package units converts between human readable token amounts and their integer
// base unit representation.
//
// units 包负责代币金额在可读十进制与整数最小单位之间的转换。
package units

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/vechain/thor-sdk-go/params"
	"github.com/vechain/thor-sdk-go/thor"
)

// maxDecimals bounds the scale so that 10^decimals still fits a 256-bit word.
const maxDecimals = 77

// Parse converts a decimal string such as "1.5" to base units of a token with the
// given number of decimals. Negative amounts and amounts with more fractional
// digits than decimals are rejected.
func Parse(s string, decimals int32) (*big.Int, error) {
	if decimals < 0 || decimals > maxDecimals {
		return nil, fmt.Errorf("%w: decimals %d out of range", thor.ErrInvalidDataType, decimals)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("%w: empty amount", thor.ErrInvalidDataType)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", thor.ErrInvalidDataType, err)
	}
	if d.Sign() < 0 {
		return nil, fmt.Errorf("%w: negative amount %s", thor.ErrInvalidDataType, s)
	}
	shifted := d.Shift(decimals)
	if !shifted.IsInteger() {
		return nil, fmt.Errorf("%w: %s has more than %d decimals", thor.ErrInvalidDataType, s, decimals)
	}
	return shifted.BigInt(), nil
}

// Format renders base units as a decimal string without trailing zeros.
func Format(v *big.Int, decimals int32) string {
	if v == nil {
		return "0"
	}
	return decimal.NewFromBigInt(v, -decimals).String()
}

// ParseVET parses an amount of VET into wei.
func ParseVET(s string) (*big.Int, error) { return Parse(s, params.Decimals) }

// FormatVET formats wei as VET.
func FormatVET(wei *big.Int) string { return Format(wei, params.Decimals) }

// ParseVTHO parses an amount of VTHO into wei.
func ParseVTHO(s string) (*big.Int, error) { return Parse(s, params.Decimals) }

// FormatVTHO formats wei as VTHO.
func FormatVTHO(wei *big.Int) string { return Format(wei, params.Decimals) }
