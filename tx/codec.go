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
	"errors"
	"fmt"
	"math/big"

	"github.com/vechain/thor-sdk-go/params"
	"github.com/vechain/thor-sdk-go/profile"
	"github.com/vechain/thor-sdk-go/thor"
)

// Field layouts of the four wire forms. The signed forms append the signature blob.
var (
	clauseProfile = profile.Profile{
		{Name: "to", Kind: profile.OptionalFixedBlob{Size: thor.AddressLength}},
		{Name: "value", Kind: profile.Numeric{MaxBytes: 32}},
		{Name: "data", Kind: profile.Blob{}},
	}

	legacyProfile    = bodyProfile(profile.Field{Name: "gasPriceCoef", Kind: profile.Numeric{MaxBytes: 1}})
	feeMarketProfile = bodyProfile(
		profile.Field{Name: "maxPriorityFeePerGas", Kind: profile.Numeric{MaxBytes: 32}},
		profile.Field{Name: "maxFeePerGas", Kind: profile.Numeric{MaxBytes: 32}},
	)

	signatureField = profile.Field{Name: "signature", Kind: profile.Blob{}}

	legacySignedProfile    = legacyProfile.Append(signatureField)
	feeMarketSignedProfile = feeMarketProfile.Append(signatureField)
)

func bodyProfile(fee ...profile.Field) profile.Profile {
	head := profile.Profile{
		{Name: "chainTag", Kind: profile.Numeric{MaxBytes: 1}},
		{Name: "blockRef", Kind: profile.CompactFixedBlob{Size: params.BlockRefLength}},
		{Name: "expiration", Kind: profile.Numeric{MaxBytes: 4}},
		{Name: "clauses", Kind: profile.Array{Item: profile.Struct{Fields: clauseProfile}}},
	}
	tail := profile.Profile{
		{Name: "gas", Kind: profile.Numeric{MaxBytes: 8}},
		{Name: "dependsOn", Kind: profile.OptionalFixedBlob{Size: thor.Bytes32Length}},
		{Name: "nonce", Kind: profile.Numeric{MaxBytes: 8}},
		{Name: "reserved", Kind: profile.Array{Item: profile.Blob{}}},
	}
	return head.Append(fee...).Append(tail...)
}

func profileOf(typ Type, signed bool) profile.Profile {
	switch {
	case typ == FeeMarketTxType && signed:
		return feeMarketSignedProfile
	case typ == FeeMarketTxType:
		return feeMarketProfile
	case signed:
		return legacySignedProfile
	}
	return legacyProfile
}

// validateBody derives the transaction type from the fee fields and checks every
// field against its wire width.
func validateBody(op string, b *Body) (Type, error) {
	var (
		legacy    = b.GasPriceCoef != nil
		feeMarket = b.MaxFeePerGas != nil || b.MaxPriorityFeePerGas != nil
		typ       Type
	)
	switch {
	case legacy && feeMarket:
		return 0, fieldError(op, "gasPriceCoef", b, ErrInvalidTransactionField, "legacy and fee-market fee fields are mutually exclusive")
	case legacy:
		typ = LegacyTxType
	case feeMarket:
		if b.MaxFeePerGas == nil {
			return 0, fieldError(op, "maxFeePerGas", b, ErrInvalidTransactionField, "missing, required together with maxPriorityFeePerGas")
		}
		if b.MaxPriorityFeePerGas == nil {
			return 0, fieldError(op, "maxPriorityFeePerGas", b, ErrInvalidTransactionField, "missing, required together with maxFeePerGas")
		}
		if err := checkUint256(b.MaxFeePerGas); err != nil {
			return 0, fieldError(op, "maxFeePerGas", b, ErrInvalidTransactionField, "%v", err)
		}
		if err := checkUint256(b.MaxPriorityFeePerGas); err != nil {
			return 0, fieldError(op, "maxPriorityFeePerGas", b, ErrInvalidTransactionField, "%v", err)
		}
		typ = FeeMarketTxType
	default:
		return 0, fieldError(op, "gasPriceCoef", b, ErrInvalidTransactionField, "missing fee fields, need gasPriceCoef or maxFeePerGas and maxPriorityFeePerGas")
	}
	for i, c := range b.Clauses {
		if c == nil {
			return 0, fieldError(op, fmt.Sprintf("clauses.#%d", i), b, ErrInvalidTransactionField, "nil clause")
		}
		if c.Value != nil {
			if err := checkUint256(c.Value); err != nil {
				return 0, fieldError(op, fmt.Sprintf("clauses.#%d.value", i), b, ErrInvalidTransactionField, "%v", err)
			}
		}
	}
	return typ, nil
}

func checkUint256(n *big.Int) error {
	if n.Sign() < 0 {
		return errors.New("negative value")
	}
	if n.BitLen() > 256 {
		return errors.New("value exceeds 256 bits")
	}
	return nil
}

// toObject lays the body out as a profile object.
func toObject(typ Type, b *Body, sig []byte) profile.Object {
	clauses := make([]any, len(b.Clauses))
	for i, c := range b.Clauses {
		var to []byte
		if c.To != nil {
			to = c.To.Bytes()
		}
		value := c.Value
		if value == nil {
			value = new(big.Int)
		}
		clauses[i] = profile.Object{"to": to, "value": value, "data": c.Data}
	}
	var dependsOn []byte
	if b.DependsOn != nil {
		dependsOn = b.DependsOn.Bytes()
	}
	obj := profile.Object{
		"chainTag":   b.ChainTag,
		"blockRef":   b.BlockRef.Bytes(),
		"expiration": b.Expiration,
		"clauses":    clauses,
		"gas":        b.Gas,
		"dependsOn":  dependsOn,
		"nonce":      b.Nonce,
		"reserved":   b.Reserved.entries(),
	}
	if typ == FeeMarketTxType {
		obj["maxFeePerGas"] = b.MaxFeePerGas
		obj["maxPriorityFeePerGas"] = b.MaxPriorityFeePerGas
	} else {
		obj["gasPriceCoef"] = *b.GasPriceCoef
	}
	if sig != nil {
		obj["signature"] = sig
	}
	return obj
}

// encode serializes a validated body, prefixing fee-market encodings with their
// type byte.
func encode(typ Type, b *Body, sig []byte) ([]byte, error) {
	enc, err := profile.Encode(profileOf(typ, sig != nil), toObject(typ, b, sig))
	if err != nil {
		return nil, err
	}
	if typ == FeeMarketTxType {
		return append([]byte{byte(FeeMarketTxType)}, enc...), nil
	}
	return enc, nil
}

// fromObject rebuilds a body from a decoded profile object.
func fromObject(typ Type, obj profile.Object) (*Body, error) {
	var (
		b   = new(Body)
		err error
	)
	chainTag, err := obj.Uint64("chainTag")
	if err != nil {
		return nil, err
	}
	b.ChainTag = byte(chainTag)
	copy(b.BlockRef[:], obj.Bytes("blockRef"))
	expiration, err := obj.Uint64("expiration")
	if err != nil {
		return nil, err
	}
	b.Expiration = uint32(expiration)

	clauses, err := obj.List("clauses")
	if err != nil {
		return nil, err
	}
	if len(clauses) > 0 {
		b.Clauses = make([]*Clause, len(clauses))
	}
	for i, item := range clauses {
		co := item.(profile.Object)
		c := &Clause{Data: co.Bytes("data")}
		if to := co.Bytes("to"); to != nil {
			addr := thor.BytesToAddress(to)
			c.To = &addr
		}
		if c.Value, err = co.BigInt("value"); err != nil {
			return nil, err
		}
		b.Clauses[i] = c
	}

	if typ == FeeMarketTxType {
		if b.MaxFeePerGas, err = obj.BigInt("maxFeePerGas"); err != nil {
			return nil, err
		}
		if b.MaxPriorityFeePerGas, err = obj.BigInt("maxPriorityFeePerGas"); err != nil {
			return nil, err
		}
	} else {
		coef, err := obj.Uint64("gasPriceCoef")
		if err != nil {
			return nil, err
		}
		c := uint8(coef)
		b.GasPriceCoef = &c
	}

	if b.Gas, err = obj.Uint64("gas"); err != nil {
		return nil, err
	}
	if dep := obj.Bytes("dependsOn"); dep != nil {
		id := thor.BytesToBytes32(dep)
		b.DependsOn = &id
	}
	if b.Nonce, err = obj.Uint64("nonce"); err != nil {
		return nil, err
	}

	reserved, err := obj.List("reserved")
	if err != nil {
		return nil, err
	}
	if b.Reserved, err = decodeReserved(b, reserved); err != nil {
		return nil, err
	}
	return b, nil
}

// decodeReserved parses the reserved list. The last entry of a non-empty list
// must not be empty, otherwise the encoding was not trimmed.
func decodeReserved(b *Body, list []any) (*Reserved, error) {
	if len(list) == 0 {
		return nil, nil
	}
	entries := make([][]byte, len(list))
	for i, e := range list {
		entries[i] = e.([]byte)
	}
	if len(entries[len(entries)-1]) == 0 {
		return nil, fieldError("decode", "reserved", b, ErrInvalidTransactionField, "trailing empty entry, reserved list is not trimmed")
	}
	features := entries[0]
	if len(features) > params.MaxFeaturesSize {
		return nil, fieldError("decode", "reserved.features", b, ErrInvalidTransactionField, "expected at most %d bytes, got %d", params.MaxFeaturesSize, len(features))
	}
	if len(features) > 0 && features[0] == 0 {
		return nil, fieldError("decode", "reserved.features", b, ErrInvalidTransactionField, "leading zero byte")
	}
	r := &Reserved{Features: Features(new(big.Int).SetBytes(features).Uint64())}
	if len(entries) > 1 {
		r.Unused = entries[1:]
	}
	return r, nil
}

// splitType reads the type prefix of a raw transaction.
func splitType(raw []byte) (Type, []byte) {
	if len(raw) > 0 && raw[0] == byte(FeeMarketTxType) {
		return FeeMarketTxType, raw[1:]
	}
	return LegacyTxType, raw
}

func isSignatureLength(sig []byte, delegated bool) bool {
	if delegated {
		return len(sig) == 2*signatureLength
	}
	return len(sig) == signatureLength
}
