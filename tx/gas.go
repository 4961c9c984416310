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

package tx

import (
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/vechain/thor-sdk-go/params"
)

// IntrinsicGas computes the gas charged for clauses before execution. A transaction
// without clauses is charged as if it had a single call clause.
//
// IntrinsicGas 计算执行前为 clauses 收取的固有 gas。没有 clause 的交易按一个调用 clause 计费。
func IntrinsicGas(clauses ...*Clause) (uint64, error) {
	if len(clauses) == 0 {
		return params.TxGas + params.ClauseGas, nil
	}
	var (
		total    = params.TxGas
		overflow bool
	)
	for _, c := range clauses {
		gas, err := dataGas(c.Data)
		if err != nil {
			return 0, err
		}
		if c.IsCreatingContract() {
			gas, overflow = math.SafeAdd(gas, params.ClauseGasContractCreation)
		} else {
			gas, overflow = math.SafeAdd(gas, params.ClauseGas)
		}
		if overflow {
			return 0, ErrIntrinsicGasOverflow
		}
		if total, overflow = math.SafeAdd(total, gas); overflow {
			return 0, ErrIntrinsicGasOverflow
		}
	}
	return total, nil
}

// dataGas charges every byte of data, zero bytes at a lower rate.
func dataGas(data []byte) (uint64, error) {
	var z uint64
	for _, b := range data {
		if b == 0 {
			z++
		}
	}
	nz := uint64(len(data)) - z

	zeroGas, overflow := math.SafeMul(z, params.TxDataZeroGas)
	if overflow {
		return 0, ErrIntrinsicGasOverflow
	}
	nonZeroGas, overflow := math.SafeMul(nz, params.TxDataNonZeroGas)
	if overflow {
		return 0, ErrIntrinsicGasOverflow
	}
	gas, overflow := math.SafeAdd(zeroGas, nonZeroGas)
	if overflow {
		return 0, ErrIntrinsicGasOverflow
	}
	return gas, nil
}
