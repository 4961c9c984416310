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

// These are the multipliers for VET and VTHO denominations. Both tokens have 18
// decimals. Example: To get the wei value of an amount in VET, use
//
//	new(big.Int).Mul(value, big.NewInt(params.VET))
//
// 这些是 VET 与 VTHO 单位的乘数，两种代币都有 18 位小数。
const (
	Wei  = 1    // smallest unit
	GWei = 1e9  // 10^9 wei
	VET  = 1e18 // 10^18 wei
	VTHO = 1e18 // 10^18 wei of energy

	Decimals = 18
)
