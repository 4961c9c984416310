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

package crypto

import (
	"fmt"
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	decred_ecdsa "github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/vechain/thor-sdk-go/thor"
)

// Sign calculates a deterministic (RFC6979) ECDSA signature of a 32-byte digest.
//
// This function is susceptible to chosen plaintext attacks that can leak
// information about the private key that is used for signing. Callers must
// be aware that the given digest cannot be chosen by an adversary. Common
// solution is to hash any input before calculating the signature.
//
// The produced signature is in the [R || S || V] format where V is 0 or 1.
//
// Sign 计算 32 字节摘要的确定性 ECDSA 签名，格式为 [R || S || V]，V 为 0 或 1。
func Sign(digest []byte, prv []byte) ([]byte, error) {
	if len(digest) != DigestLength {
		return nil, fmt.Errorf("digest is required to be exactly %d bytes (%d)", DigestLength, len(digest))
	}
	if err := ValidatePrivateKey(prv); err != nil {
		return nil, err
	}
	key := secp256k1.PrivKeyFromBytes(prv)
	defer key.Zero()

	sig := decred_ecdsa.SignCompact(key, digest, false) // ref uncompressed pubkey
	// Convert to Thor signature format with 'recovery id' v at the end.
	// 转换为 V 在末尾的格式
	v := sig[0] - 27
	copy(sig, sig[1:])
	sig[RecoveryIDOffset] = v
	return sig, nil
}

// Ecrecover returns the uncompressed public key that created the given signature.
// Ecrecover 返回创建给定签名的未压缩公钥。
func Ecrecover(digest, sig []byte) ([]byte, error) {
	pub, err := sigToPub(digest, sig)
	if err != nil {
		return nil, err
	}
	return pub.SerializeUncompressed(), nil
}

// RecoverAddress returns the address of the account that produced sig over digest.
// RecoverAddress 返回对摘要产生签名的账户地址。
func RecoverAddress(digest, sig []byte) (thor.Address, error) {
	pub, err := sigToPub(digest, sig)
	if err != nil {
		return thor.Address{}, err
	}
	return pubToAddress(pub), nil
}

func sigToPub(digest, sig []byte) (*secp256k1.PublicKey, error) {
	if len(digest) != DigestLength {
		return nil, fmt.Errorf("digest is required to be exactly %d bytes (%d)", DigestLength, len(digest))
	}
	if len(sig) != SignatureLength {
		return nil, fmt.Errorf("%w: need %d bytes, have %d", ErrInvalidSignature, SignatureLength, len(sig))
	}
	v := sig[RecoveryIDOffset]
	if v >= 27 {
		v -= 27
	}
	r := new(big.Int).SetBytes(sig[:32])
	s := new(big.Int).SetBytes(sig[32:64])
	if !ValidateSignatureValues(v, r, s) {
		return nil, fmt.Errorf("%w: bad r, s or recovery id", ErrInvalidSignature)
	}
	// Convert to secp256k1 input format with 'recovery id' v at the beginning.
	btcsig := make([]byte, SignatureLength)
	btcsig[0] = v + 27
	copy(btcsig[1:], sig[:RecoveryIDOffset])

	pub, _, err := decred_ecdsa.RecoverCompact(btcsig, digest)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	return pub, nil
}

// VerifySignature checks that the given public key created signature over digest.
// The public key should be in compressed (33 bytes) or uncompressed (65 bytes) format.
// The signature should have the 64 byte [R || S] format.
func VerifySignature(pubkey, digest, signature []byte) bool {
	if len(signature) != 64 {
		return false
	}
	var r, s secp256k1.ModNScalar
	if r.SetByteSlice(signature[:32]) {
		return false // overflow
	}
	if s.SetByteSlice(signature[32:]) {
		return false
	}
	sig := decred_ecdsa.NewSignature(&r, &s)
	key, err := secp256k1.ParsePubKey(pubkey)
	if err != nil {
		return false
	}
	// Reject malleable signatures. libsecp256k1 does this check but decred doesn't.
	if s.IsOverHalfOrder() {
		return false
	}
	return sig.Verify(digest, key)
}
