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

package thor

import (
	"encoding/hex"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// ErrInvalidDataType is returned when a primitive input (hex string, address,
// amount, timestamp) is malformed.
var ErrInvalidDataType = errors.New("invalid data type")

// Lengths of hashes, addresses and block references in bytes.
const (
	// AddressLength is the expected length of the address
	AddressLength = 20
	// Bytes32Length is the expected length of hashes and ids
	Bytes32Length = 32
	// BlockRefLength is the expected length of a block reference
	BlockRefLength = 8
)

var (
	addressT  = reflect.TypeOf(Address{})
	bytes32T  = reflect.TypeOf(Bytes32{})
	blockRefT = reflect.TypeOf(BlockRef{})
)

/////////// Address

// Address represents the 20 byte address of a Thor account.
// Address 表示 Thor 账户的 20 字节地址。
type Address [AddressLength]byte

// BytesToAddress returns Address with value b.
// If b is larger than len(h), b will be cropped from the left.
func BytesToAddress(b []byte) Address {
	var a Address
	a.SetBytes(b)
	return a
}

// ParseAddress parses a 0x-prefixed hex address. Input in a single case is accepted
// as is; mixed-case input must carry a valid EIP-55 checksum.
//
// ParseAddress 解析 0x 前缀的十六进制地址。全大写或全小写直接接受，大小写混合时必须满足 EIP-55 校验和。
func ParseAddress(s string) (Address, error) {
	var a Address
	b, err := hexutil.Decode(s)
	if err != nil {
		return a, fmt.Errorf("%w: address %q: %v", ErrInvalidDataType, s, err)
	}
	if len(b) != AddressLength {
		return a, fmt.Errorf("%w: address %q: want %d bytes, have %d", ErrInvalidDataType, s, AddressLength, len(b))
	}
	copy(a[:], b)
	if body := s[2:]; isMixedCase(body) && a.Checksum()[2:] != body {
		return a, fmt.Errorf("%w: address %q: bad checksum", ErrInvalidDataType, s)
	}
	return a, nil
}

// MustParseAddress is like ParseAddress but panics on error. Meant for constants.
func MustParseAddress(s string) Address {
	a, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return a
}

// IsAddress reports whether s is a well-formed (and, for mixed case, correctly
// checksummed) address string.
func IsAddress(s string) bool {
	_, err := ParseAddress(s)
	return err == nil
}

// Bytes gets the byte representation of the underlying address.
func (a Address) Bytes() []byte { return a[:] }

// IsZero reports whether a is the zero address.
func (a Address) IsZero() bool { return a == Address{} }

// String returns the lowercase 0x-prefixed hex form, which is what Thor nodes emit.
func (a Address) String() string { return hexutil.Encode(a[:]) }

// Checksum returns the EIP-55 mixed-case representation of the address.
// Checksum 返回地址的 EIP-55 大小写混合表示。
func (a Address) Checksum() string {
	lower := hex.EncodeToString(a[:])
	digest := Keccak256([]byte(lower))

	var sb strings.Builder
	sb.Grow(2 + len(lower))
	sb.WriteString("0x")
	for i := 0; i < len(lower); i++ {
		c := lower[i]
		nibble := digest[i/2]
		if i%2 == 0 {
			nibble >>= 4
		} else {
			nibble &= 0xf
		}
		if c >= 'a' && nibble >= 8 {
			c -= 'a' - 'A'
		}
		sb.WriteByte(c)
	}
	return sb.String()
}

// SetBytes sets the address to the value of b.
// If b is larger than len(a), b will be cropped from the left.
func (a *Address) SetBytes(b []byte) {
	if len(b) > len(a) {
		b = b[len(b)-AddressLength:]
	}
	copy(a[AddressLength-len(b):], b)
}

// MarshalText returns the hex representation of a.
func (a Address) MarshalText() ([]byte, error) {
	return hexutil.Bytes(a[:]).MarshalText()
}

// UnmarshalText parses an address in hex syntax.
func (a *Address) UnmarshalText(input []byte) error {
	return hexutil.UnmarshalFixedText("Address", input, a[:])
}

// UnmarshalJSON parses an address in hex syntax.
func (a *Address) UnmarshalJSON(input []byte) error {
	return hexutil.UnmarshalFixedJSON(addressT, input, a[:])
}

func isMixedCase(s string) bool {
	return strings.ToLower(s) != s && strings.ToUpper(s) != s
}

/////////// Bytes32

// Bytes32 is a 32 byte word: hashes, transaction ids and block ids.
type Bytes32 [Bytes32Length]byte

// BytesToBytes32 sets b to a Bytes32, cropping from the left when b is longer.
func BytesToBytes32(b []byte) Bytes32 {
	var h Bytes32
	if len(b) > len(h) {
		b = b[len(b)-Bytes32Length:]
	}
	copy(h[Bytes32Length-len(b):], b)
	return h
}

// ParseBytes32 parses a 0x-prefixed 64 hex digit string.
func ParseBytes32(s string) (Bytes32, error) {
	var h Bytes32
	b, err := hexutil.Decode(s)
	if err != nil {
		return h, fmt.Errorf("%w: bytes32 %q: %v", ErrInvalidDataType, s, err)
	}
	if len(b) != Bytes32Length {
		return h, fmt.Errorf("%w: bytes32 %q: want %d bytes, have %d", ErrInvalidDataType, s, Bytes32Length, len(b))
	}
	copy(h[:], b)
	return h, nil
}

// MustParseBytes32 is like ParseBytes32 but panics on error.
func MustParseBytes32(s string) Bytes32 {
	h, err := ParseBytes32(s)
	if err != nil {
		panic(err)
	}
	return h
}

// Bytes gets the byte representation of the underlying word.
func (h Bytes32) Bytes() []byte { return h[:] }

// IsZero reports whether all bytes are zero.
func (h Bytes32) IsZero() bool { return h == Bytes32{} }

// String implements the stringer interface.
func (h Bytes32) String() string { return hexutil.Encode(h[:]) }

// MarshalText returns the hex representation of h.
func (h Bytes32) MarshalText() ([]byte, error) {
	return hexutil.Bytes(h[:]).MarshalText()
}

// UnmarshalText parses a word in hex syntax.
func (h *Bytes32) UnmarshalText(input []byte) error {
	return hexutil.UnmarshalFixedText("Bytes32", input, h[:])
}

// UnmarshalJSON parses a word in hex syntax.
func (h *Bytes32) UnmarshalJSON(input []byte) error {
	return hexutil.UnmarshalFixedJSON(bytes32T, input, h[:])
}

/////////// BlockRef

// BlockRef is the anti-replay reference a transaction carries: the first 8 bytes
// of a recent block id, i.e. the block number followed by 4 bytes of its hash.
//
// BlockRef 是交易携带的防重放引用：最近区块 ID 的前 8 字节（区块号 + 4 字节哈希）。
type BlockRef [BlockRefLength]byte

// NewBlockRef creates a reference pointing at the given block number.
func NewBlockRef(blockNum uint32) (br BlockRef) {
	br[0] = byte(blockNum >> 24)
	br[1] = byte(blockNum >> 16)
	br[2] = byte(blockNum >> 8)
	br[3] = byte(blockNum)
	return
}

// NewBlockRefFromID creates a reference from a block id.
func NewBlockRefFromID(blockID Bytes32) (br BlockRef) {
	copy(br[:], blockID[:])
	return
}

// ParseBlockRef parses a 0x-prefixed hex string that must decode to exactly 8 bytes.
func ParseBlockRef(s string) (BlockRef, error) {
	var br BlockRef
	b, err := hexutil.Decode(s)
	if err != nil {
		return br, fmt.Errorf("%w: blockRef %q: %v", ErrInvalidDataType, s, err)
	}
	if len(b) != BlockRefLength {
		return br, fmt.Errorf("%w: blockRef %q: want %d bytes, have %d", ErrInvalidDataType, s, BlockRefLength, len(b))
	}
	copy(br[:], b)
	return br, nil
}

// Number extracts the block number part.
func (br BlockRef) Number() uint32 {
	return uint32(br[0])<<24 | uint32(br[1])<<16 | uint32(br[2])<<8 | uint32(br[3])
}

// Bytes gets the byte representation of the reference.
func (br BlockRef) Bytes() []byte { return br[:] }

// String implements the stringer interface.
func (br BlockRef) String() string { return hexutil.Encode(br[:]) }

// MarshalText returns the hex representation of br.
func (br BlockRef) MarshalText() ([]byte, error) {
	return hexutil.Bytes(br[:]).MarshalText()
}

// UnmarshalText parses a block reference in hex syntax.
func (br *BlockRef) UnmarshalText(input []byte) error {
	return hexutil.UnmarshalFixedText("BlockRef", input, br[:])
}

// UnmarshalJSON parses a block reference in hex syntax.
func (br *BlockRef) UnmarshalJSON(input []byte) error {
	return hexutil.UnmarshalFixedJSON(blockRefT, input, br[:])
}
