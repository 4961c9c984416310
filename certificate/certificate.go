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

// Package certificate implements signed off-chain attestations. A certificate is
// serialized to canonical JSON, hashed with Blake2b256 and signed with secp256k1.
package certificate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/vechain/thor-sdk-go/crypto"
	"github.com/vechain/thor-sdk-go/params"
	"github.com/vechain/thor-sdk-go/thor"
	"golang.org/x/text/unicode/norm"
)

// ErrSignatureMismatch is returned by Verify for unsigned certificates and for
// signatures that do not recover to the signer.
var ErrSignatureMismatch = errors.New("certificate signature mismatch")

// Payload is the attested content.
type Payload struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// Certificate is an immutable attestation of Payload by Signer.
// Certificate 是签名者对 Payload 的不可变证明。
type Certificate struct {
	purpose   string
	payload   Payload
	domain    string
	timestamp uint64
	signer    thor.Address
	signature []byte
}

// New creates an unsigned certificate. The signer must be a valid address; it is
// stored and encoded in lowercase. The timestamp must be a safe integer
// (at most 2^53-1).
func New(purpose string, payload Payload, domain string, timestamp uint64, signer string) (*Certificate, error) {
	addr, err := thor.ParseAddress(signer)
	if err != nil {
		return nil, fmt.Errorf("certificate signer: %w", err)
	}
	if timestamp > params.MaxTimestamp {
		return nil, fmt.Errorf("%w: certificate timestamp %d exceeds %d", thor.ErrInvalidDataType, timestamp, params.MaxTimestamp)
	}
	return &Certificate{
		purpose:   purpose,
		payload:   payload,
		domain:    domain,
		timestamp: timestamp,
		signer:    addr,
	}, nil
}

func (c *Certificate) Purpose() string      { return c.purpose }
func (c *Certificate) Payload() Payload     { return c.payload }
func (c *Certificate) Domain() string       { return c.domain }
func (c *Certificate) Timestamp() uint64    { return c.timestamp }
func (c *Certificate) Signer() thor.Address { return c.signer }

// Signature returns a copy of the signature, nil if unsigned.
func (c *Certificate) Signature() []byte { return bytes.Clone(c.signature) }

// IsSigned reports whether the certificate carries a signature.
func (c *Certificate) IsSigned() bool { return len(c.signature) > 0 }

// canonical lists the signed fields in ascending key order.
type canonical struct {
	Domain    string           `json:"domain"`
	Payload   canonicalPayload `json:"payload"`
	Purpose   string           `json:"purpose"`
	Signer    string           `json:"signer"`
	Timestamp uint64           `json:"timestamp"`
}

type canonicalPayload struct {
	Content string `json:"content"`
	Type    string `json:"type"`
}

// Encode returns the canonical form that is signed: compact JSON with keys in
// ascending order, without the signature, NFC normalized.
//
// Encode 返回签名所用的规范形式：按键升序排列的紧凑 JSON，不含签名，并做 NFC 规范化。
func (c *Certificate) Encode() []byte {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// strings and integers always encode
	_ = enc.Encode(canonical{
		Domain:    c.domain,
		Payload:   canonicalPayload{Content: c.payload.Content, Type: c.payload.Type},
		Purpose:   c.purpose,
		Signer:    c.signer.String(),
		Timestamp: c.timestamp,
	})
	return norm.NFC.Bytes(bytes.TrimSuffix(buf.Bytes(), []byte("\n")))
}

// SigningHash returns Blake2b256 of the canonical form.
func (c *Certificate) SigningHash() thor.Bytes32 {
	return thor.Blake2b256(c.Encode())
}

// Sign returns a copy of the certificate signed with prv.
func (c *Certificate) Sign(prv []byte) (*Certificate, error) {
	hash := c.SigningHash()
	sig, err := crypto.Sign(hash[:], prv)
	if err != nil {
		return nil, fmt.Errorf("certificate sign: %w", err)
	}
	return c.WithSignature(sig), nil
}

// WithSignature returns a copy of the certificate carrying sig.
func (c *Certificate) WithSignature(sig []byte) *Certificate {
	cpy := *c
	cpy.signature = bytes.Clone(sig)
	return &cpy
}

// Verify checks that the signature recovers to the signer.
// Verify 检查签名恢复出的地址是否为签名者。
func (c *Certificate) Verify() error {
	if !c.IsSigned() {
		return fmt.Errorf("%w: certificate is not signed", ErrSignatureMismatch)
	}
	hash := c.SigningHash()
	signer, err := crypto.RecoverAddress(hash[:], c.signature)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSignatureMismatch, err)
	}
	if signer != c.signer {
		return fmt.Errorf("%w: recovered %v, want %v", ErrSignatureMismatch, signer, c.signer)
	}
	return nil
}

type certificateJSON struct {
	Purpose   *string        `json:"purpose"`
	Payload   *Payload       `json:"payload"`
	Domain    *string        `json:"domain"`
	Timestamp *uint64        `json:"timestamp"`
	Signer    *string        `json:"signer"`
	Signature *hexutil.Bytes `json:"signature,omitempty"`
}

// MarshalJSON marshals as JSON.
func (c *Certificate) MarshalJSON() ([]byte, error) {
	signer := c.signer.String()
	enc := certificateJSON{
		Purpose:   &c.purpose,
		Payload:   &c.payload,
		Domain:    &c.domain,
		Timestamp: &c.timestamp,
		Signer:    &signer,
	}
	if c.IsSigned() {
		sig := hexutil.Bytes(c.signature)
		enc.Signature = &sig
	}
	return json.Marshal(&enc)
}

// UnmarshalJSON unmarshals from JSON with the same validation as New.
func (c *Certificate) UnmarshalJSON(input []byte) error {
	var dec certificateJSON
	if err := json.Unmarshal(input, &dec); err != nil {
		return err
	}
	switch {
	case dec.Purpose == nil:
		return errors.New("missing required field 'purpose' in certificate")
	case dec.Payload == nil:
		return errors.New("missing required field 'payload' in certificate")
	case dec.Domain == nil:
		return errors.New("missing required field 'domain' in certificate")
	case dec.Timestamp == nil:
		return errors.New("missing required field 'timestamp' in certificate")
	case dec.Signer == nil:
		return errors.New("missing required field 'signer' in certificate")
	}
	cert, err := New(*dec.Purpose, *dec.Payload, *dec.Domain, *dec.Timestamp, *dec.Signer)
	if err != nil {
		return err
	}
	if dec.Signature != nil {
		cert.signature = bytes.Clone(*dec.Signature)
	}
	*c = *cert
	return nil
}
