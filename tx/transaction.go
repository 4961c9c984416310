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
	"errors"
	"fmt"
	"math/big"
	"sync/atomic"

	"github.com/vechain/thor-sdk-go/crypto"
	"github.com/vechain/thor-sdk-go/profile"
	"github.com/vechain/thor-sdk-go/thor"
)

const signatureLength = crypto.SignatureLength

// Transaction is an immutable Thor transaction: a validated body, its type and an
// optional signature. Signing returns a new Transaction.
//
// Transaction 是不可变的 Thor 交易：经过校验的交易体、交易类型以及可选签名。
// 签名操作总是返回新的 Transaction。
type Transaction struct {
	typ       Type
	body      *Body
	signature []byte
	unsigned  []byte // encoding without signature, including the type prefix
	encoded   []byte // wire encoding

	// caches
	hash   atomic.Pointer[thor.Bytes32]
	origin atomic.Pointer[thor.Address]
	id     atomic.Pointer[thor.Bytes32]
}

// New creates an unsigned transaction. See Of.
func New(body *Body) (*Transaction, error) {
	return Of(body, nil)
}

// Of validates body and an optional signature and creates a transaction.
//
// The type is derived from the fee fields of the body. A signature must be 65
// bytes, or 130 bytes (sender followed by gas payer) when the delegation feature
// is set. Use OfSenderSigned for a delegated transaction that carries only the
// sender signature.
//
// Of 校验交易体和可选签名并创建交易。
func Of(body *Body, signature []byte) (*Transaction, error) {
	return newTransaction("new", body, signature, false)
}

// OfSenderSigned restores a delegated transaction signed by its sender only, the
// state produced by SignAsSender. The gas payer completes it with SignAsGasPayer.
//
// OfSenderSigned 恢复仅有发送方签名的代付交易。
func OfSenderSigned(body *Body, senderSignature []byte) (*Transaction, error) {
	return newTransaction("newSenderSigned", body, senderSignature, true)
}

// newTransaction validates body and signature. With senderOnly set the body must
// be delegated and the signature exactly one 65-byte sender signature.
func newTransaction(op string, body *Body, signature []byte, senderOnly bool) (*Transaction, error) {
	if body == nil {
		return nil, fieldError(op, "", nil, ErrInvalidTransactionField, "nil body")
	}
	b := body.Copy()
	typ, err := validateBody(op, b)
	if err != nil {
		return nil, err
	}
	if len(signature) == 0 {
		signature = nil
	}
	switch {
	case senderOnly && !b.IsDelegated():
		return nil, fieldError(op, "reserved.features", b, ErrNotDelegatedTransaction, "delegation feature not set")
	case senderOnly && len(signature) != signatureLength:
		return nil, fieldError(op, "signature", b, ErrInvalidSignatureLength, "have %d bytes, want %d", len(signature), signatureLength)
	case !senderOnly && signature != nil && !isSignatureLength(signature, b.IsDelegated()):
		want := signatureLength
		if b.IsDelegated() {
			want = 2 * signatureLength
		}
		return nil, fieldError(op, "signature", b, ErrInvalidSignatureLength, "have %d bytes, want %d", len(signature), want)
	}
	tx := &Transaction{typ: typ, body: b, signature: bytes.Clone(signature)}
	if tx.unsigned, err = encode(typ, b, nil); err != nil {
		return nil, fieldError(op, "", b, ErrInvalidTransactionField, "%v", err)
	}
	tx.encoded = tx.unsigned
	if tx.IsSigned() {
		if tx.encoded, err = encode(typ, b, tx.signature); err != nil {
			return nil, fieldError(op, "signature", b, ErrInvalidTransactionField, "%v", err)
		}
	}
	return tx, nil
}

// Decode parses a wire encoding. A leading 0x51 byte selects the fee-market
// layout. When signed is set the encoding must carry a complete signature. The
// decoded body goes through the same validation as Of.
//
// Decode 解析交易编码，首字节为 0x51 时按费用市场交易解析。
func Decode(raw []byte, signed bool) (*Transaction, error) {
	typ, payload := splitType(raw)
	obj, err := profile.Decode(profileOf(typ, signed), payload)
	if err != nil {
		return nil, fmt.Errorf("tx decode: %w", err)
	}
	body, err := fromObject(typ, obj)
	if err != nil {
		var fe *FieldError
		if errors.As(err, &fe) {
			return nil, err
		}
		return nil, fmt.Errorf("tx decode: %w", err)
	}
	var sig []byte
	if signed {
		sig = obj.Bytes("signature")
		if !isSignatureLength(sig, body.IsDelegated()) {
			return nil, fieldError("decode", "signature", body, ErrInvalidSignatureLength, "have %d bytes in a signed encoding", len(sig))
		}
	}
	return newTransaction("decode", body, sig, false)
}

// Type returns the fee-pricing generation.
func (t *Transaction) Type() Type { return t.typ }

// Body returns a deep copy of the transaction body.
func (t *Transaction) Body() *Body { return t.body.Copy() }

// Signature returns a copy of the signature, nil if unsigned.
func (t *Transaction) Signature() []byte { return bytes.Clone(t.signature) }

// ChainTag returns the network tag.
func (t *Transaction) ChainTag() byte { return t.body.ChainTag }

// BlockRef returns the reference block.
func (t *Transaction) BlockRef() thor.BlockRef { return t.body.BlockRef }

// Expiration returns the number of blocks after BlockRef the transaction stays valid.
func (t *Transaction) Expiration() uint32 { return t.body.Expiration }

// Clauses returns copies of the clauses.
func (t *Transaction) Clauses() []*Clause { return t.Body().Clauses }

// GasPriceCoef returns the gas price coefficient of a legacy transaction.
func (t *Transaction) GasPriceCoef() (uint8, bool) {
	if t.body.GasPriceCoef == nil {
		return 0, false
	}
	return *t.body.GasPriceCoef, true
}

// MaxFeePerGas returns the fee cap of a fee-market transaction, nil for legacy ones.
func (t *Transaction) MaxFeePerGas() *big.Int { return copyBig(t.body.MaxFeePerGas) }

// MaxPriorityFeePerGas returns the tip cap of a fee-market transaction, nil for legacy ones.
func (t *Transaction) MaxPriorityFeePerGas() *big.Int { return copyBig(t.body.MaxPriorityFeePerGas) }

// Gas returns the gas limit.
func (t *Transaction) Gas() uint64 { return t.body.Gas }

// Nonce returns the caller chosen nonce.
func (t *Transaction) Nonce() uint64 { return t.body.Nonce }

// DependsOn returns the id of the transaction this one depends on, or nil.
func (t *Transaction) DependsOn() *thor.Bytes32 {
	if t.body.DependsOn == nil {
		return nil
	}
	dep := *t.body.DependsOn
	return &dep
}

// Features returns the reserved features.
func (t *Transaction) Features() Features { return t.body.Features() }

// IsDelegated reports whether gas is paid by a second signer.
func (t *Transaction) IsDelegated() bool { return t.body.IsDelegated() }

// IsSigned reports whether the signature is complete: 65 bytes, or 130 bytes for
// delegated transactions.
func (t *Transaction) IsSigned() bool {
	return isSignatureLength(t.signature, t.IsDelegated())
}

// Encoded returns the wire encoding. The signature is included only when the
// transaction is completely signed.
func (t *Transaction) Encoded() []byte { return bytes.Clone(t.encoded) }

// SigningHash returns the hash the sender signs: Blake2b256 of the unsigned encoding.
// SigningHash 返回发送方签名的哈希：未签名编码的 Blake2b256。
func (t *Transaction) SigningHash() thor.Bytes32 {
	if hash := t.hash.Load(); hash != nil {
		return *hash
	}
	h := thor.Blake2b256(t.unsigned)
	t.hash.Store(&h)
	return h
}

// GasPayerSigningHash returns the hash the gas payer signs. It binds the gas
// payer's signature to a sender.
// GasPayerSigningHash 返回代付方签名的哈希，将代付签名绑定到特定发送方。
func (t *Transaction) GasPayerSigningHash(sender thor.Address) thor.Bytes32 {
	hash := t.SigningHash()
	return thor.Blake2b256(hash[:], sender[:])
}

// Origin recovers the sender from the first signature.
// Origin 从第一个签名中恢复发送方地址。
func (t *Transaction) Origin() (thor.Address, error) {
	if origin := t.origin.Load(); origin != nil {
		return *origin, nil
	}
	if len(t.signature) < signatureLength {
		return thor.Address{}, fieldError("origin", "signature", t.body, ErrUnavailableTransactionField, "transaction is not signed")
	}
	hash := t.SigningHash()
	origin, err := crypto.RecoverAddress(hash[:], t.signature[:signatureLength])
	if err != nil {
		return thor.Address{}, fmt.Errorf("tx origin: %w", err)
	}
	t.origin.Store(&origin)
	return origin, nil
}

// GasPayer recovers the gas payer of a delegated transaction from the second
// signature.
func (t *Transaction) GasPayer() (thor.Address, error) {
	if !t.IsDelegated() {
		return thor.Address{}, fieldError("gasPayer", "reserved.features", t.body, ErrNotDelegatedTransaction, "delegation feature not set")
	}
	if len(t.signature) != 2*signatureLength {
		return thor.Address{}, fieldError("gasPayer", "signature", t.body, ErrUnavailableTransactionField, "gas payer has not signed")
	}
	origin, err := t.Origin()
	if err != nil {
		return thor.Address{}, err
	}
	hash := t.GasPayerSigningHash(origin)
	gasPayer, err := crypto.RecoverAddress(hash[:], t.signature[signatureLength:])
	if err != nil {
		return thor.Address{}, fmt.Errorf("tx gas payer: %w", err)
	}
	return gasPayer, nil
}

// ID returns the transaction id: Blake2b256 of the signing hash and the origin.
// ID 返回交易 id：签名哈希与发送方地址拼接后的 Blake2b256。
func (t *Transaction) ID() (thor.Bytes32, error) {
	if id := t.id.Load(); id != nil {
		return *id, nil
	}
	if !t.IsSigned() {
		return thor.Bytes32{}, fieldError("id", "signature", t.body, ErrUnavailableTransactionField, "transaction is not signed")
	}
	origin, err := t.Origin()
	if err != nil {
		return thor.Bytes32{}, err
	}
	hash := t.SigningHash()
	id := thor.Blake2b256(hash[:], origin[:])
	t.id.Store(&id)
	return id, nil
}

// IntrinsicGas returns the gas consumed before any clause is executed.
func (t *Transaction) IntrinsicGas() (uint64, error) {
	return IntrinsicGas(t.body.Clauses...)
}

func (t *Transaction) String() string {
	var (
		origin, gasPayer, id = "N/A", "N/A", "N/A"
		fee                  string
	)
	if o, err := t.Origin(); err == nil {
		origin = o.String()
	}
	if t.IsDelegated() {
		if gp, err := t.GasPayer(); err == nil {
			gasPayer = gp.String()
		}
	}
	if i, err := t.ID(); err == nil {
		id = i.String()
	}
	if coef, ok := t.GasPriceCoef(); ok {
		fee = fmt.Sprintf("GasPriceCoef:         %v", coef)
	} else {
		fee = fmt.Sprintf("MaxFeePerGas:         %v\n\tMaxPriorityFeePerGas: %v", t.body.MaxFeePerGas, t.body.MaxPriorityFeePerGas)
	}
	dependsOn := "nil"
	if t.body.DependsOn != nil {
		dependsOn = t.body.DependsOn.String()
	}
	return fmt.Sprintf(`
	Tx(%v, %v bytes)
	Type:                 %v
	Origin:               %v
	GasPayer:             %v
	Clauses:              %v
	%v
	Gas:                  %v
	ChainTag:             %v
	BlockRef:             %v
	Expiration:           %v
	DependsOn:            %v
	Nonce:                %v
	Features:             %v
	Signature:            0x%x
`, id, len(t.encoded), t.typ, origin, gasPayer, len(t.body.Clauses), fee, t.body.Gas,
		t.body.ChainTag, t.body.BlockRef, t.body.Expiration, dependsOn, t.body.Nonce,
		t.Features(), t.signature)
}

func copyBig(n *big.Int) *big.Int {
	if n == nil {
		return nil
	}
	return new(big.Int).Set(n)
}
