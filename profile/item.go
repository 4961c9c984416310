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

package profile

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"
)

// item is one node of a parsed RLP tree.
type item struct {
	str    []byte
	list   []item
	isList bool
}

// parse splits a complete RLP value. Size prefixes are checked for canonical form
// by rlp.Split; trailing bytes after the value are rejected.
func parse(b []byte) (item, error) {
	kind, content, rest, err := rlp.Split(b)
	if err != nil {
		return item{}, fmt.Errorf("%w: %v", ErrInvalidEncoding, err)
	}
	if len(rest) != 0 {
		return item{}, fmt.Errorf("%w: %d trailing bytes", ErrInvalidEncoding, len(rest))
	}
	return toItem(kind, content)
}

func toItem(kind rlp.Kind, content []byte) (item, error) {
	if kind != rlp.List {
		return item{str: bytes.Clone(content)}, nil
	}
	var list []item
	for len(content) > 0 {
		k, c, rest, err := rlp.Split(content)
		if err != nil {
			return item{}, fmt.Errorf("%w: %v", ErrInvalidEncoding, err)
		}
		child, err := toItem(k, c)
		if err != nil {
			return item{}, err
		}
		list = append(list, child)
		content = rest
	}
	return item{list: list, isList: true}, nil
}
