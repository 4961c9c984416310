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
	"math/big"

	"github.com/vechain/thor-sdk-go/thor"
)

// Builder assembles a transaction body step by step.
//
//	trx, err := tx.NewBuilder().
//		ChainTag(params.MainnetChainTag).
//		BlockRef(ref).
//		Expiration(720).
//		Clause(tx.NewClause(&to).WithValue(amount)).
//		GasPriceCoef(0).
//		Gas(21000).
//		Nonce(nonce).
//		Build()
type Builder struct {
	body Body
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// ChainTag sets the network tag.
func (b *Builder) ChainTag(tag byte) *Builder {
	b.body.ChainTag = tag
	return b
}

// BlockRef sets the reference block.
func (b *Builder) BlockRef(ref thor.BlockRef) *Builder {
	b.body.BlockRef = ref
	return b
}

// Expiration sets the number of blocks the transaction stays valid after BlockRef.
func (b *Builder) Expiration(exp uint32) *Builder {
	b.body.Expiration = exp
	return b
}

// Clause appends a clause.
func (b *Builder) Clause(c *Clause) *Builder {
	b.body.Clauses = append(b.body.Clauses, c)
	return b
}

// GasPriceCoef sets the coefficient of a legacy transaction.
func (b *Builder) GasPriceCoef(coef uint8) *Builder {
	b.body.GasPriceCoef = &coef
	return b
}

// MaxFeePerGas sets the fee cap of a fee-market transaction.
func (b *Builder) MaxFeePerGas(fee *big.Int) *Builder {
	b.body.MaxFeePerGas = copyBig(fee)
	return b
}

// MaxPriorityFeePerGas sets the tip cap of a fee-market transaction.
func (b *Builder) MaxPriorityFeePerGas(fee *big.Int) *Builder {
	b.body.MaxPriorityFeePerGas = copyBig(fee)
	return b
}

// Gas sets the gas limit.
func (b *Builder) Gas(gas uint64) *Builder {
	b.body.Gas = gas
	return b
}

// DependsOn sets the id of the transaction this one depends on.
func (b *Builder) DependsOn(id *thor.Bytes32) *Builder {
	if id == nil {
		b.body.DependsOn = nil
		return b
	}
	dep := *id
	b.body.DependsOn = &dep
	return b
}

// Nonce sets the nonce.
func (b *Builder) Nonce(nonce uint64) *Builder {
	b.body.Nonce = nonce
	return b
}

// Features sets the reserved features.
func (b *Builder) Features(feat Features) *Builder {
	if b.body.Reserved == nil {
		b.body.Reserved = &Reserved{}
	}
	b.body.Reserved.Features = feat
	return b
}

// Build validates the body and creates an unsigned transaction.
func (b *Builder) Build() (*Transaction, error) {
	return New(&b.body)
}
