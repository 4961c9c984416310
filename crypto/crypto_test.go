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
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vechain/thor-sdk-go/thor"
)

var (
	testKey, _  = hex.DecodeString("7582be841ca040aa940fff6c05773129e135623e41acce3e0b8ba520dc1ae26a")
	testAddress = thor.MustParseAddress("0xd989829d88b0ed1b06edf5c50174ecfa64f14a64")
)

func TestPrivateKeyToAddress(t *testing.T) {
	addr, err := PrivateKeyToAddress(testKey)
	require.NoError(t, err)
	assert.Equal(t, testAddress, addr)

	pub, err := PublicKey(testKey)
	require.NoError(t, err)
	assert.Len(t, pub, 65)
	fromPub, err := PubkeyToAddress(pub)
	require.NoError(t, err)
	assert.Equal(t, testAddress, fromPub)

	compressed, err := CompressPubkey(pub)
	require.NoError(t, err)
	assert.Len(t, compressed, 33)
	fromCompressed, err := PubkeyToAddress(compressed)
	require.NoError(t, err)
	assert.Equal(t, testAddress, fromCompressed)

	decompressed, err := DecompressPubkey(compressed)
	require.NoError(t, err)
	assert.Equal(t, pub, decompressed)
}

func TestValidatePrivateKey(t *testing.T) {
	n := secp256k1N.FillBytes(make([]byte, 32))
	tests := map[string][]byte{
		"zero":  make([]byte, 32),
		"order": n,
		"short": testKey[:31],
		"long":  append(append([]byte{}, testKey...), 1),
		"empty": nil,
	}
	for name, k := range tests {
		assert.ErrorIs(t, ValidatePrivateKey(k), ErrInvalidPrivateKey, name)
		_, err := Sign(thor.Blake2b256([]byte("x")).Bytes(), k)
		assert.ErrorIs(t, err, ErrInvalidPrivateKey, name)
	}
	assert.NoError(t, ValidatePrivateKey(testKey))
}

func TestSignDeterministic(t *testing.T) {
	digest := thor.Blake2b256([]byte("thor"))
	sig1, err := Sign(digest[:], testKey)
	require.NoError(t, err)
	sig2, err := Sign(digest[:], testKey)
	require.NoError(t, err)
	assert.Len(t, sig1, SignatureLength)
	assert.True(t, bytes.Equal(sig1, sig2))
	assert.LessOrEqual(t, sig1[RecoveryIDOffset], byte(1))
}

func TestSignRecover(t *testing.T) {
	digest := thor.Blake2b256([]byte("recover me"))
	sig, err := Sign(digest[:], testKey)
	require.NoError(t, err)

	addr, err := RecoverAddress(digest[:], sig)
	require.NoError(t, err)
	assert.Equal(t, testAddress, addr)

	pub, err := Ecrecover(digest[:], sig)
	require.NoError(t, err)
	assert.True(t, VerifySignature(pub, digest[:], sig[:64]))

	// 27/28 style recovery ids are normalised
	legacy := append([]byte{}, sig...)
	legacy[RecoveryIDOffset] += 27
	addr, err = RecoverAddress(digest[:], legacy)
	require.NoError(t, err)
	assert.Equal(t, testAddress, addr)
}

func TestRecoverInvalid(t *testing.T) {
	digest := thor.Blake2b256([]byte("recover me"))
	sig, err := Sign(digest[:], testKey)
	require.NoError(t, err)

	bad := append([]byte{}, sig...)
	bad[RecoveryIDOffset] = 2
	_, err = Ecrecover(digest[:], bad)
	assert.ErrorIs(t, err, ErrInvalidSignature)

	_, err = Ecrecover(digest[:], sig[:64])
	assert.ErrorIs(t, err, ErrInvalidSignature)

	zeroR := append([]byte{}, sig...)
	copy(zeroR[:32], make([]byte, 32))
	_, err = Ecrecover(digest[:], zeroR)
	assert.ErrorIs(t, err, ErrInvalidSignature)

	_, err = Ecrecover(digest[:31], sig)
	assert.Error(t, err)
}

func TestGenerateKey(t *testing.T) {
	k1, err := GenerateKey()
	require.NoError(t, err)
	k2, err := GenerateKey()
	require.NoError(t, err)
	assert.NoError(t, ValidatePrivateKey(k1))
	assert.NotEqual(t, k1, k2)

	ecdsaKey, err := ToECDSA(k1)
	require.NoError(t, err)
	assert.Equal(t, k1, FromECDSA(ecdsaKey))

	Zero(k2)
	assert.Equal(t, make([]byte, 32), k2)
}
