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

// Package thor contains the primitive data types shared by the rest of the SDK:
// account addresses, 32-byte words, block references and the hash functions used
// by the VeChain Thor protocol.
package thor

import (
	"hash"

	"github.com/minio/sha256-simd"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

// KeccakState wraps sha3.state. In addition to the usual hash methods, it also supports
// Read to get a variable amount of data from the hash state. Read is faster than Sum
// because it doesn't copy the internal state, but also modifies the internal state.
//
// KeccakState 包装了 sha3.state，额外提供 Read 方法以直接读取哈希状态。
type KeccakState interface {
	hash.Hash
	Read([]byte) (int, error)
}

// NewKeccakState creates a new KeccakState.
func NewKeccakState() KeccakState {
	return sha3.NewLegacyKeccak256().(KeccakState)
}

// NewBlake2b returns a streaming Blake2b-256 hasher.
// NewBlake2b 返回流式 Blake2b-256 哈希器。
func NewBlake2b() hash.Hash {
	h, err := blake2b.New256(nil)
	if err != nil {
		// only fails for oversized keys
		panic(err)
	}
	return h
}

// Blake2b256 calculates the Blake2b-256 digest of the concatenated input.
// Thor uses it for signing hashes, transaction ids and certificates.
//
// Blake2b256 计算输入拼接后的 Blake2b-256 摘要，Thor 用其计算签名哈希、交易 ID 和证书哈希。
func Blake2b256(data ...[]byte) (h Bytes32) {
	hw := NewBlake2b()
	for _, b := range data {
		hw.Write(b)
	}
	hw.Sum(h[:0])
	return h
}

// Keccak256 calculates the legacy Keccak-256 digest of the concatenated input.
// Account addresses and EIP-55 checksums are derived with it.
func Keccak256(data ...[]byte) (h Bytes32) {
	d := NewKeccakState()
	for _, b := range data {
		d.Write(b)
	}
	d.Read(h[:])
	return h
}

// Sha256 calculates the SHA-256 digest of the concatenated input.
func Sha256(data ...[]byte) (h Bytes32) {
	d := sha256.New()
	for _, b := range data {
		d.Write(b)
	}
	d.Sum(h[:0])
	return h
}
