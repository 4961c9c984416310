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
	"fmt"
	"math/big"
)

// Bytes returns the byte value of field name, or nil if it is absent or not bytes.
func (o Object) Bytes(name string) []byte {
	b, _ := o[name].([]byte)
	return b
}

// BigInt returns the decoded numeric value of field name.
func (o Object) BigInt(name string) (*big.Int, error) {
	n, ok := o[name].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("%w: %s: expected number, got %T", ErrInvalidValue, name, o[name])
	}
	return n, nil
}

// Uint64 returns the decoded numeric value of field name, which must fit in 64 bits.
func (o Object) Uint64(name string) (uint64, error) {
	n, err := o.BigInt(name)
	if err != nil {
		return 0, err
	}
	if !n.IsUint64() {
		return 0, fmt.Errorf("%w: %s: value exceeds 64 bits", ErrInvalidValue, name)
	}
	return n.Uint64(), nil
}

// List returns the decoded list value of field name.
func (o Object) List(name string) ([]any, error) {
	l, ok := o[name].([]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s: expected list, got %T", ErrInvalidValue, name, o[name])
	}
	return l, nil
}

// Object returns the decoded struct value of field name.
func (o Object) Object(name string) (Object, error) {
	obj, ok := o[name].(Object)
	if !ok {
		return nil, fmt.Errorf("%w: %s: expected object, got %T", ErrInvalidValue, name, o[name])
	}
	return obj, nil
}
