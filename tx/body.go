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
	"bytes"
	"math/big"

	"github.com/vechain/thor-sdk-go/thor"
)

// Transaction types. The fee-market type doubles as the one-byte prefix of its wire
// encoding; legacy transactions carry no prefix.
//
// 交易类型。费用市场交易类型同时是其编码的单字节前缀，传统交易没有前缀。
const (
	LegacyTxType    Type = 0x00
	FeeMarketTxType Type = 0x51
)

// Type is the fee-pricing generation of a transaction.
type Type byte

func (t Type) String() string {
	switch t {
	case LegacyTxType:
		return "legacy"
	case FeeMarketTxType:
		return "fee-market"
	}
	return "unknown"
}

// Features is the bit field stored in the first reserved entry.
type Features uint32

// DelegationFeature marks a transaction whose gas is paid by a second signer.
const DelegationFeature Features = 1

// IsDelegated reports whether the delegation bit is set.
func (f Features) IsDelegated() bool { return f&DelegationFeature == DelegationFeature }

// SetDelegated sets or clears the delegation bit.
func (f *Features) SetDelegated(flag bool) {
	if flag {
		*f |= DelegationFeature
	} else {
		*f &^= DelegationFeature
	}
}

// Reserved is the forward compatible tail of a transaction body.
// Reserved 是交易体中为向前兼容保留的字段。
type Reserved struct {
	Features Features
	Unused   [][]byte
}

func (r *Reserved) copy() *Reserved {
	if r == nil {
		return nil
	}
	cpy := &Reserved{Features: r.Features}
	if r.Unused != nil {
		cpy.Unused = make([][]byte, len(r.Unused))
		for i, u := range r.Unused {
			cpy.Unused[i] = bytes.Clone(u)
		}
	}
	return cpy
}

// entries returns the wire form of the reserved list: the features word followed
// by the unused blobs, with trailing empty entries trimmed.
func (r *Reserved) entries() [][]byte {
	if r == nil {
		return [][]byte{}
	}
	list := make([][]byte, 0, 1+len(r.Unused))
	list = append(list, new(big.Int).SetUint64(uint64(r.Features)).Bytes())
	list = append(list, r.Unused...)
	for len(list) > 0 && len(list[len(list)-1]) == 0 {
		list = list[:len(list)-1]
	}
	return list
}

// Clause is one unit of work of a transaction. A nil To creates a contract.
// Clause 是交易中的一个执行单元，To 为空表示创建合约。
type Clause struct {
	To    *thor.Address
	Value *big.Int
	Data  []byte
}

// NewClause creates a clause calling to. Pass nil to deploy a contract.
func NewClause(to *thor.Address) *Clause {
	c := &Clause{Value: new(big.Int)}
	if to != nil {
		cpy := *to
		c.To = &cpy
	}
	return c
}

// WithValue returns a copy of the clause transferring value.
func (c *Clause) WithValue(value *big.Int) *Clause {
	cpy := c.copy()
	cpy.Value = new(big.Int).Set(value)
	return cpy
}

// WithData returns a copy of the clause carrying data.
func (c *Clause) WithData(data []byte) *Clause {
	cpy := c.copy()
	cpy.Data = bytes.Clone(data)
	return cpy
}

// IsCreatingContract reports whether the clause deploys a contract.
func (c *Clause) IsCreatingContract() bool { return c.To == nil }

func (c *Clause) copy() *Clause {
	cpy := &Clause{Data: bytes.Clone(c.Data)}
	if c.To != nil {
		to := *c.To
		cpy.To = &to
	}
	if c.Value != nil {
		cpy.Value = new(big.Int).Set(c.Value)
	} else {
		cpy.Value = new(big.Int)
	}
	return cpy
}

// Body holds the fields of a transaction. Exactly one of the fee field sets must be
// present: GasPriceCoef for legacy transactions, or both MaxFeePerGas and
// MaxPriorityFeePerGas for fee-market transactions.
//
// Body 保存交易字段。传统交易使用 GasPriceCoef，费用市场交易同时使用 MaxFeePerGas
// 和 MaxPriorityFeePerGas，两组字段必须且只能出现一组。
type Body struct {
	ChainTag   byte
	BlockRef   thor.BlockRef
	Expiration uint32
	Clauses    []*Clause

	GasPriceCoef         *uint8   // legacy
	MaxFeePerGas         *big.Int // fee-market
	MaxPriorityFeePerGas *big.Int // fee-market

	Gas       uint64
	DependsOn *thor.Bytes32
	Nonce     uint64
	Reserved  *Reserved
}

// Copy returns a deep copy of the body.
func (b *Body) Copy() *Body {
	cpy := &Body{
		ChainTag:   b.ChainTag,
		BlockRef:   b.BlockRef,
		Expiration: b.Expiration,
		Gas:        b.Gas,
		Nonce:      b.Nonce,
		Reserved:   b.Reserved.copy(),
	}
	if b.Clauses != nil {
		cpy.Clauses = make([]*Clause, len(b.Clauses))
		for i, c := range b.Clauses {
			if c != nil {
				cpy.Clauses[i] = c.copy()
			}
		}
	}
	if b.GasPriceCoef != nil {
		coef := *b.GasPriceCoef
		cpy.GasPriceCoef = &coef
	}
	if b.MaxFeePerGas != nil {
		cpy.MaxFeePerGas = new(big.Int).Set(b.MaxFeePerGas)
	}
	if b.MaxPriorityFeePerGas != nil {
		cpy.MaxPriorityFeePerGas = new(big.Int).Set(b.MaxPriorityFeePerGas)
	}
	if b.DependsOn != nil {
		dep := *b.DependsOn
		cpy.DependsOn = &dep
	}
	return cpy
}

// Features returns the reserved features, zero when there is no reserved field.
func (b *Body) Features() Features {
	if b.Reserved == nil {
		return 0
	}
	return b.Reserved.Features
}

// IsDelegated reports whether the delegation feature is set.
func (b *Body) IsDelegated() bool { return b.Features().IsDelegated() }
