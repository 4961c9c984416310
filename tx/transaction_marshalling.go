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
	"encoding/json"
	"errors"
	"fmt"
	gomath "math"
	"math/big"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/vechain/thor-sdk-go/thor"
)

// clauseJSON is the JSON form of a clause.
type clauseJSON struct {
	To    *thor.Address         `json:"to"`
	Value *math.HexOrDecimal256 `json:"value"`
	Data  hexutil.Bytes         `json:"data"`
}

type reservedJSON struct {
	Features math.HexOrDecimal64 `json:"features"`
	Unused   []hexutil.Bytes     `json:"unused,omitempty"`
}

// bodyJSON is the JSON form of a body. Numbers are accepted as hex or decimal,
// quoted or not, and written as hex strings.
type bodyJSON struct {
	ChainTag             *math.HexOrDecimal64  `json:"chainTag"`
	BlockRef             *thor.BlockRef        `json:"blockRef"`
	Expiration           *math.HexOrDecimal64  `json:"expiration"`
	Clauses              []*clauseJSON         `json:"clauses"`
	GasPriceCoef         *math.HexOrDecimal64  `json:"gasPriceCoef,omitempty"`
	MaxFeePerGas         *math.HexOrDecimal256 `json:"maxFeePerGas,omitempty"`
	MaxPriorityFeePerGas *math.HexOrDecimal256 `json:"maxPriorityFeePerGas,omitempty"`
	Gas                  *math.HexOrDecimal64  `json:"gas"`
	DependsOn            *thor.Bytes32         `json:"dependsOn"`
	Nonce                *math.HexOrDecimal64  `json:"nonce"`
	Reserved             *reservedJSON         `json:"reserved,omitempty"`
}

// MarshalJSON marshals as JSON.
func (b *Body) MarshalJSON() ([]byte, error) {
	var enc bodyJSON
	chainTag := math.HexOrDecimal64(b.ChainTag)
	enc.ChainTag = &chainTag
	blockRef := b.BlockRef
	enc.BlockRef = &blockRef
	expiration := math.HexOrDecimal64(b.Expiration)
	enc.Expiration = &expiration
	enc.Clauses = make([]*clauseJSON, len(b.Clauses))
	for i, c := range b.Clauses {
		if c == nil {
			return nil, fmt.Errorf("%w: clauses.#%d: nil clause", ErrInvalidTransactionField, i)
		}
		cj := &clauseJSON{To: c.To, Data: c.Data}
		if c.Value != nil {
			cj.Value = (*math.HexOrDecimal256)(c.Value)
		} else {
			cj.Value = math.NewHexOrDecimal256(0)
		}
		if cj.Data == nil {
			cj.Data = hexutil.Bytes{}
		}
		enc.Clauses[i] = cj
	}
	if b.GasPriceCoef != nil {
		coef := math.HexOrDecimal64(*b.GasPriceCoef)
		enc.GasPriceCoef = &coef
	}
	enc.MaxFeePerGas = (*math.HexOrDecimal256)(b.MaxFeePerGas)
	enc.MaxPriorityFeePerGas = (*math.HexOrDecimal256)(b.MaxPriorityFeePerGas)
	gas := math.HexOrDecimal64(b.Gas)
	enc.Gas = &gas
	enc.DependsOn = b.DependsOn
	nonce := math.HexOrDecimal64(b.Nonce)
	enc.Nonce = &nonce
	if b.Reserved != nil {
		enc.Reserved = &reservedJSON{Features: math.HexOrDecimal64(b.Reserved.Features)}
		for _, u := range b.Reserved.Unused {
			enc.Reserved.Unused = append(enc.Reserved.Unused, u)
		}
	}
	return json.Marshal(&enc)
}

// UnmarshalJSON unmarshals from JSON.
func (b *Body) UnmarshalJSON(input []byte) error {
	var dec bodyJSON
	if err := json.Unmarshal(input, &dec); err != nil {
		return err
	}
	var body Body
	if dec.ChainTag == nil {
		return errors.New("missing required field 'chainTag' in transaction body")
	}
	if uint64(*dec.ChainTag) > gomath.MaxUint8 {
		return fmt.Errorf("%w: chainTag %d out of range", ErrInvalidTransactionField, uint64(*dec.ChainTag))
	}
	body.ChainTag = byte(*dec.ChainTag)
	if dec.BlockRef == nil {
		return errors.New("missing required field 'blockRef' in transaction body")
	}
	body.BlockRef = *dec.BlockRef
	if dec.Expiration == nil {
		return errors.New("missing required field 'expiration' in transaction body")
	}
	if uint64(*dec.Expiration) > gomath.MaxUint32 {
		return fmt.Errorf("%w: expiration %d out of range", ErrInvalidTransactionField, uint64(*dec.Expiration))
	}
	body.Expiration = uint32(*dec.Expiration)
	if dec.Clauses == nil {
		return errors.New("missing required field 'clauses' in transaction body")
	}
	for i, cj := range dec.Clauses {
		if cj == nil {
			return fmt.Errorf("%w: clauses.#%d: null clause", ErrInvalidTransactionField, i)
		}
		c := &Clause{To: cj.To, Data: cj.Data, Value: new(big.Int)}
		if cj.Value != nil {
			c.Value = (*big.Int)(cj.Value)
		}
		body.Clauses = append(body.Clauses, c)
	}
	if dec.GasPriceCoef != nil {
		if uint64(*dec.GasPriceCoef) > gomath.MaxUint8 {
			return fmt.Errorf("%w: gasPriceCoef %d out of range", ErrInvalidTransactionField, uint64(*dec.GasPriceCoef))
		}
		coef := uint8(*dec.GasPriceCoef)
		body.GasPriceCoef = &coef
	}
	body.MaxFeePerGas = (*big.Int)(dec.MaxFeePerGas)
	body.MaxPriorityFeePerGas = (*big.Int)(dec.MaxPriorityFeePerGas)
	if dec.Gas == nil {
		return errors.New("missing required field 'gas' in transaction body")
	}
	body.Gas = uint64(*dec.Gas)
	// dependsOn may be null but must be present
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(input, &fields); err != nil {
		return err
	}
	if _, ok := fields["dependsOn"]; !ok {
		return errors.New("missing required field 'dependsOn' in transaction body")
	}
	body.DependsOn = dec.DependsOn
	if dec.Nonce == nil {
		return errors.New("missing required field 'nonce' in transaction body")
	}
	body.Nonce = uint64(*dec.Nonce)
	if dec.Reserved != nil {
		if uint64(dec.Reserved.Features) > gomath.MaxUint32 {
			return fmt.Errorf("%w: reserved.features %d out of range", ErrInvalidTransactionField, uint64(dec.Reserved.Features))
		}
		body.Reserved = &Reserved{Features: Features(dec.Reserved.Features)}
		for _, u := range dec.Reserved.Unused {
			body.Reserved.Unused = append(body.Reserved.Unused, u)
		}
	}
	*b = body
	return nil
}

// txJSON is the JSON form of a transaction. The derived fields are written when
// available and ignored on input.
type txJSON struct {
	Type      hexutil.Uint64 `json:"type"`
	Body      *Body          `json:"body"`
	Signature hexutil.Bytes  `json:"signature,omitempty"`
	ID        *thor.Bytes32  `json:"id,omitempty"`
	Origin    *thor.Address  `json:"origin,omitempty"`
	GasPayer  *thor.Address  `json:"gasPayer,omitempty"`
}

// MarshalJSON marshals as JSON.
func (t *Transaction) MarshalJSON() ([]byte, error) {
	enc := txJSON{
		Type:      hexutil.Uint64(t.typ),
		Body:      t.body,
		Signature: t.signature,
	}
	if origin, err := t.Origin(); err == nil {
		enc.Origin = &origin
	}
	if id, err := t.ID(); err == nil {
		enc.ID = &id
	}
	if t.IsDelegated() {
		if gasPayer, err := t.GasPayer(); err == nil {
			enc.GasPayer = &gasPayer
		}
	}
	return json.Marshal(&enc)
}

// UnmarshalJSON unmarshals from JSON. The body and signature go through the same
// validation as Of, or OfSenderSigned for a delegated transaction carrying only
// the sender signature. The type must match the fee fields of the body.
func (t *Transaction) UnmarshalJSON(input []byte) error {
	var dec txJSON
	if err := json.Unmarshal(input, &dec); err != nil {
		return err
	}
	if dec.Body == nil {
		return errors.New("missing required field 'body' in transaction")
	}
	// a single signature on a delegated body is the sender-signed state
	senderOnly := dec.Body.IsDelegated() && len(dec.Signature) == signatureLength
	tx, err := newTransaction("unmarshal", dec.Body, dec.Signature, senderOnly)
	if err != nil {
		return err
	}
	if uint64(dec.Type) != uint64(tx.typ) {
		return fieldError("unmarshal", "type", tx.body, ErrInvalidTransactionField, "type %#x does not match the fee fields of a %v body", uint64(dec.Type), tx.typ)
	}
	t.setDecoded(tx)
	return nil
}

// setDecoded takes over the content of other and resets the caches.
func (t *Transaction) setDecoded(other *Transaction) {
	t.typ = other.typ
	t.body = other.body
	t.signature = other.signature
	t.unsigned = other.unsigned
	t.encoded = other.encoded
	t.hash.Store(nil)
	t.origin.Store(nil)
	t.id.Store(nil)
}
