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
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"
)

var (
	// ErrInvalidValue is returned when a value does not fit its field kind.
	ErrInvalidValue = errors.New("profile: invalid value")
	// ErrInvalidEncoding is returned for malformed or non-canonical input.
	ErrInvalidEncoding = errors.New("profile: invalid encoding")
)

// Object holds the field values of a profile, keyed by field name.
// Object 保存配置文件各字段的值，以字段名为键。
type Object map[string]any

// Field is a single named entry of a profile.
type Field struct {
	Name string
	Kind Kind
}

// Profile is an ordered list of fields describing an RLP list.
type Profile []Field

// Append returns a new profile with fs added after the fields of p. The
// receiver is never modified.
func (p Profile) Append(fs ...Field) Profile {
	out := make(Profile, 0, len(p)+len(fs))
	out = append(out, p...)
	return append(out, fs...)
}

// Names lists the field names in order.
func (p Profile) Names() []string {
	names := make([]string, len(p))
	for i, f := range p {
		names[i] = f.Name
	}
	return names
}

// Kind describes how a value maps onto an RLP item.
//
// The set of kinds is closed: the codec only understands the kinds declared in
// this package.
type Kind interface {
	// encode converts v into an RLP tree node ([]byte or []any).
	encode(v any, path string) (any, error)
	// decode interprets an RLP item.
	decode(it item, path string) (any, error)
}

// Encode serializes obj according to p.
// Encode 按照配置文件 p 序列化 obj。
func Encode(p Profile, obj Object) ([]byte, error) {
	tree, err := Struct{Fields: p}.encode(obj, "")
	if err != nil {
		return nil, err
	}
	return rlp.EncodeToBytes(tree)
}

// Decode parses data according to p. The whole input must be consumed.
// Decode 按照配置文件 p 解析 data，输入必须被完整消费。
func Decode(p Profile, data []byte) (Object, error) {
	it, err := parse(data)
	if err != nil {
		return nil, err
	}
	v, err := Struct{Fields: p}.decode(it, "")
	if err != nil {
		return nil, err
	}
	return v.(Object), nil
}

func join(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

func valueErr(path, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidValue, pathOrRoot(path), fmt.Sprintf(format, args...))
}

func encodingErr(path, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidEncoding, pathOrRoot(path), fmt.Sprintf(format, args...))
}

func pathOrRoot(path string) string {
	if path == "" {
		return "<root>"
	}
	return path
}
