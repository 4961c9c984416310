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


package thorclient

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/vechain/thor-sdk-go/thor"
)

// Block is the summary of a block as served by /blocks/{revision}.
type Block struct {
	Number        uint32         `json:"number"`
	ID            thor.Bytes32   `json:"id"`
	Size          uint32         `json:"size"`
	ParentID      thor.Bytes32   `json:"parentID"`
	Timestamp     uint64         `json:"timestamp"`
	GasLimit      uint64         `json:"gasLimit"`
	Beneficiary   thor.Address   `json:"beneficiary"`
	GasUsed       uint64         `json:"gasUsed"`
	TotalScore    uint64         `json:"totalScore"`
	TxsRoot       thor.Bytes32   `json:"txsRoot"`
	TxsFeatures   uint32         `json:"txsFeatures"`
	StateRoot     thor.Bytes32   `json:"stateRoot"`
	ReceiptsRoot  thor.Bytes32   `json:"receiptsRoot"`
	COM           bool           `json:"com"`
	Signer        thor.Address   `json:"signer"`
	IsTrunk       bool           `json:"isTrunk"`
	IsFinalized   bool           `json:"isFinalized"`
	BaseFeePerGas *hexutil.Big   `json:"baseFeePerGas,omitempty"` // present once the fee market is active
	Transactions  []thor.Bytes32 `json:"transactions"`
}

// BlockRef returns the reference a transaction built on top of b should carry.
func (b *Block) BlockRef() thor.BlockRef {
	return thor.NewBlockRefFromID(b.ID)
}

// Account is the state of an account.
// Account 表示账户状态：VET 余额、VTHO 能量以及是否为合约。
type Account struct {
	Balance *hexutil.Big `json:"balance"`
	Energy  *hexutil.Big `json:"energy"`
	HasCode bool         `json:"hasCode"`
}

// Receipt is the outcome of an executed transaction.
type Receipt struct {
	Type     uint8        `json:"type"`
	GasUsed  uint64       `json:"gasUsed"`
	GasPayer thor.Address `json:"gasPayer"`
	Paid     *hexutil.Big `json:"paid"`
	Reward   *hexutil.Big `json:"reward"`
	Reverted bool         `json:"reverted"`
	Meta     ReceiptMeta  `json:"meta"`
	Outputs  []*Output    `json:"outputs"`
}

// ReceiptMeta locates a receipt in the chain.
type ReceiptMeta struct {
	BlockID        thor.Bytes32 `json:"blockID"`
	BlockNumber    uint32       `json:"blockNumber"`
	BlockTimestamp uint64       `json:"blockTimestamp"`
	TxID           thor.Bytes32 `json:"txID"`
	TxOrigin       thor.Address `json:"txOrigin"`
}

// Output is the result of one clause.
type Output struct {
	ContractAddress *thor.Address `json:"contractAddress"`
	Events          []*Event      `json:"events"`
	Transfers       []*Transfer   `json:"transfers"`
}

// Event is a log emitted by a contract.
type Event struct {
	Address thor.Address   `json:"address"`
	Topics  []thor.Bytes32 `json:"topics"`
	Data    hexutil.Bytes  `json:"data"`
}

// Transfer is a VET transfer made by a clause.
type Transfer struct {
	Sender    thor.Address `json:"sender"`
	Recipient thor.Address `json:"recipient"`
	Amount    *hexutil.Big `json:"amount"`
}
