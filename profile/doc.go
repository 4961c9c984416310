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

/*
Package profile implements profile-driven RLP encoding.

A Profile is an ordered list of named fields, each with a Kind that tells the codec
how the field's value maps onto an RLP string or list. Encoding walks the profile,
converts every value of an Object into an RLP item and serializes the resulting tree
with the rlp package. Decoding splits the input with rlp.Split and interprets every
item with the kind found at the same position of the profile, so the same profile
always reproduces the encoded values exactly.

Kinds

	FixedBlob{Size}          exactly Size raw bytes
	OptionalFixedBlob{Size}  Size raw bytes, or an empty string for an absent value
	CompactFixedBlob{Size}   Size bytes with leading zero bytes stripped on the wire
	Blob{}                   raw bytes of any length
	Numeric{MaxBytes}        non-negative integer, minimal big-endian, zero as empty string
	Struct{Fields}           nested list following a sub profile
	Array{Item}              nested list whose every item has the same kind

Values

Objects are map[string]any. Encoding accepts []byte for blob kinds; Go integers,
*big.Int, *uint256.Int and decimal or 0x-prefixed hex strings for Numeric; []any,
[]Object or [][]byte for Array; Object for Struct. Decoding always produces []byte
(nil for an absent optional blob), *big.Int, []any and Object respectively.

Errors

Values that don't fit their kind fail with ErrInvalidValue, malformed input fails with
ErrInvalidEncoding. Both are prefixed with the path of the offending field, e.g.
"clauses.#1.value". Nothing is silently truncated, padded or wrapped.
*/
package profile
