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

// Intrinsic gas schedule of a transaction. A transaction pays TxGas once, each clause
// pays ClauseGas (or ClauseGasContractCreation when it has no recipient) and every
// byte of clause data is charged by value.
//
// 交易固有 gas 计费表：每笔交易支付一次 TxGas，每个 clause 支付 ClauseGas（无接收方时
// 支付 ClauseGasContractCreation），clause 数据按字节值计费。
const (
	TxGas                     uint64 = 5000  // Per transaction, regardless of clauses.
	ClauseGas                 uint64 = 16000 // Per clause with a recipient.
	ClauseGasContractCreation uint64 = 48000 // Per clause without a recipient.

	TxDataZeroGas    uint64 = 4  // Per zero byte of clause data.
	TxDataNonZeroGas uint64 = 68 // Per non-zero byte of clause data.
)

// Field widths of the transaction body.
const (
	BlockRefLength  = 8  // Leading bytes of the reference block id.
	MaxFeaturesSize = 4  // Width of the reserved features word.
	MaxGasPriceCoef = 255
)

// Size limits enforced on decoding certificates and client inputs.
const (
	MaxTimestamp uint64 = 1<<53 - 1 // Largest timestamp a certificate may carry.
)
