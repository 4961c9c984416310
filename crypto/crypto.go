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

// Package crypto implements the secp256k1 primitives Thor transactions and
// certificates are signed with, and the derivation of account addresses.
package crypto

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/vechain/thor-sdk-go/thor"
)

// SignatureLength indicates the byte length required to carry a signature with recovery id.
// SignatureLength 表示携带恢复 ID 的签名所需的字节长度。
const SignatureLength = 64 + 1 // 64 bytes ECDSA signature + 1 byte recovery id

// RecoveryIDOffset points to the byte offset within the signature that contains the recovery id.
const RecoveryIDOffset = 64

// DigestLength sets the signature digest exact length
const DigestLength = 32

// PrivateKeyLength is the length of a raw secp256k1 scalar.
const PrivateKeyLength = 32

var (
	// ErrInvalidPrivateKey is returned for keys that are not a valid secp256k1
	// scalar in [1, N-1].
	ErrInvalidPrivateKey = errors.New("invalid secp256k1 private key")
	// ErrInvalidSignature is returned for malformed signatures or recovery ids.
	ErrInvalidSignature = errors.New("invalid secp256k1 signature")

	errInvalidPubkey = errors.New("invalid secp256k1 public key")
)

// ValidatePrivateKey checks that prv is a 32-byte scalar in [1, N-1].
func ValidatePrivateKey(prv []byte) error {
	if len(prv) != PrivateKeyLength {
		return fmt.Errorf("%w: need %d bytes, have %d", ErrInvalidPrivateKey, PrivateKeyLength, len(prv))
	}
	var k secp256k1.ModNScalar
	defer k.Zero()
	if overflow := k.SetByteSlice(prv); overflow {
		return fmt.Errorf("%w: >=N", ErrInvalidPrivateKey)
	}
	if k.IsZero() {
		return fmt.Errorf("%w: zero", ErrInvalidPrivateKey)
	}
	return nil
}

// GenerateKey creates a new random private key.
// GenerateKey 生成新的随机私钥。
func GenerateKey() ([]byte, error) {
	key, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return nil, err
	}
	defer key.Zero()
	return key.Serialize(), nil
}

// PublicKey derives the uncompressed 65-byte public key of prv.
func PublicKey(prv []byte) ([]byte, error) {
	if err := ValidatePrivateKey(prv); err != nil {
		return nil, err
	}
	key := secp256k1.PrivKeyFromBytes(prv)
	defer key.Zero()
	return key.PubKey().SerializeUncompressed(), nil
}

// PubkeyToAddress derives the account address of a public key, accepted in
// compressed (33 bytes) or uncompressed (65 bytes) form: the last 20 bytes of
// Keccak256 over the uncompressed X||Y coordinates.
//
// PubkeyToAddress 从公钥推导账户地址：未压缩坐标 X||Y 的 Keccak256 的后 20 字节。
func PubkeyToAddress(pub []byte) (thor.Address, error) {
	key, err := secp256k1.ParsePubKey(pub)
	if err != nil {
		return thor.Address{}, fmt.Errorf("%w: %v", errInvalidPubkey, err)
	}
	return pubToAddress(key), nil
}

func pubToAddress(key *secp256k1.PublicKey) thor.Address {
	pubBytes := key.SerializeUncompressed()
	return thor.BytesToAddress(thor.Keccak256(pubBytes[1:]).Bytes()[12:])
}

// PrivateKeyToAddress derives the account address of prv.
func PrivateKeyToAddress(prv []byte) (thor.Address, error) {
	if err := ValidatePrivateKey(prv); err != nil {
		return thor.Address{}, err
	}
	key := secp256k1.PrivKeyFromBytes(prv)
	defer key.Zero()
	return pubToAddress(key.PubKey()), nil
}

// CompressPubkey encodes a public key to the 33-byte compressed format.
func CompressPubkey(pub []byte) ([]byte, error) {
	key, err := secp256k1.ParsePubKey(pub)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidPubkey, err)
	}
	return key.SerializeCompressed(), nil
}

// DecompressPubkey parses a public key in the 33-byte compressed format and
// returns the 65-byte uncompressed form.
func DecompressPubkey(pub []byte) ([]byte, error) {
	if len(pub) != 33 {
		return nil, errors.New("invalid compressed public key length")
	}
	key, err := secp256k1.ParsePubKey(pub)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidPubkey, err)
	}
	return key.SerializeUncompressed(), nil
}

// ToECDSA converts a raw private key into the standard library representation,
// for callers that hold keys as *ecdsa.PrivateKey.
func ToECDSA(prv []byte) (*ecdsa.PrivateKey, error) {
	if err := ValidatePrivateKey(prv); err != nil {
		return nil, err
	}
	return secp256k1.PrivKeyFromBytes(prv).ToECDSA(), nil
}

// FromECDSA exports a private key into a 32-byte slice.
func FromECDSA(priv *ecdsa.PrivateKey) []byte {
	if priv == nil || priv.D == nil {
		return nil
	}
	return priv.D.FillBytes(make([]byte, PrivateKeyLength))
}

// zeroBytes clears the key material held in a byte slice.
func zeroBytes(b []byte) {
	clear(b)
}

// Zero wipes a private key buffer. Callers holding decrypted keys should defer it.
func Zero(prv []byte) { zeroBytes(prv) }

// secp256k1N is the order of the curve, used to validate signature values.
var secp256k1N = secp256k1.S256().Params().N

// ValidateSignatureValues verifies whether the signature values are valid with
// the given chain rules. The v value is assumed to be either 0 or 1.
func ValidateSignatureValues(v byte, r, s *big.Int) bool {
	if r.Sign() < 1 || s.Sign() < 1 {
		return false
	}
	return r.Cmp(secp256k1N) < 0 && s.Cmp(secp256k1N) < 0 && (v == 0 || v == 1)
}
