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
	"fmt"

	"github.com/vechain/thor-sdk-go/crypto"
	"github.com/vechain/thor-sdk-go/thor"
)

// Sign signs a non-delegated transaction with the sender's private key and returns
// the signed copy. Delegated transactions must use the two-party methods.
//
// Sign 使用发送方私钥签名非代付交易并返回签名后的副本。
func (t *Transaction) Sign(prv []byte) (*Transaction, error) {
	if t.IsDelegated() {
		return nil, fieldError("sign", "reserved.features", t.body, ErrInvalidTransactionField,
			"delegated transaction needs sender and gas payer signatures")
	}
	hash := t.SigningHash()
	sig, err := crypto.Sign(hash[:], prv)
	if err != nil {
		return nil, fmt.Errorf("tx sign: %w", err)
	}
	return newTransaction("sign", t.body, sig, false)
}

// SignAsSender adds the sender signature to a delegated transaction. The result is
// not signed yet: it waits for SignAsGasPayer.
//
// SignAsSender 为代付交易添加发送方签名，结果仍需代付方签名。
func (t *Transaction) SignAsSender(prv []byte) (*Transaction, error) {
	if !t.IsDelegated() {
		return nil, fieldError("signAsSender", "reserved.features", t.body, ErrNotDelegatedTransaction, "delegation feature not set")
	}
	hash := t.SigningHash()
	sig, err := crypto.Sign(hash[:], prv)
	if err != nil {
		return nil, fmt.Errorf("tx sign as sender: %w", err)
	}
	return newTransaction("signAsSender", t.body, sig, true)
}

// SignAsGasPayer adds the gas payer signature over GasPayerSigningHash(sender)
// after the existing sender signature. A previous gas payer signature is replaced.
//
// SignAsGasPayer 在发送方签名之后追加代付方签名，已有的代付签名会被替换。
func (t *Transaction) SignAsGasPayer(sender thor.Address, prv []byte) (*Transaction, error) {
	if !t.IsDelegated() {
		return nil, fieldError("signAsGasPayer", "reserved.features", t.body, ErrNotDelegatedTransaction, "delegation feature not set")
	}
	if len(t.signature) < signatureLength {
		return nil, fieldError("signAsGasPayer", "signature", t.body, ErrUnavailableTransactionField, "sender has not signed")
	}
	hash := t.GasPayerSigningHash(sender)
	gasPayerSig, err := crypto.Sign(hash[:], prv)
	if err != nil {
		return nil, fmt.Errorf("tx sign as gas payer: %w", err)
	}
	sig := make([]byte, 0, 2*signatureLength)
	sig = append(sig, t.signature[:signatureLength]...)
	sig = append(sig, gasPayerSig...)
	return newTransaction("signAsGasPayer", t.body, sig, false)
}

// SignAsSenderAndGasPayer produces both signatures of a delegated transaction
// when both keys are at hand.
func (t *Transaction) SignAsSenderAndGasPayer(senderPrv, gasPayerPrv []byte) (*Transaction, error) {
	if !t.IsDelegated() {
		return nil, fieldError("signAsSenderAndGasPayer", "reserved.features", t.body, ErrNotDelegatedTransaction, "delegation feature not set")
	}
	sender, err := crypto.PrivateKeyToAddress(senderPrv)
	if err != nil {
		return nil, fmt.Errorf("tx sign as sender: %w", err)
	}
	hash := t.SigningHash()
	senderSig, err := crypto.Sign(hash[:], senderPrv)
	if err != nil {
		return nil, fmt.Errorf("tx sign as sender: %w", err)
	}
	gasPayerHash := t.GasPayerSigningHash(sender)
	gasPayerSig, err := crypto.Sign(gasPayerHash[:], gasPayerPrv)
	if err != nil {
		return nil, fmt.Errorf("tx sign as gas payer: %w", err)
	}
	return newTransaction("signAsSenderAndGasPayer", t.body, append(senderSig, gasPayerSig...), false)
}

// WithSignature returns a copy of the transaction carrying sig, e.g. a signature
// produced by a remote signer. The signature length is validated as in Of.
func (t *Transaction) WithSignature(sig []byte) (*Transaction, error) {
	return newTransaction("withSignature", t.body, sig, false)
}
