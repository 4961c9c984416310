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
	"math/big"
	"strconv"
	"strings"

	"github.com/holiman/uint256"
)

// FixedBlob is a byte string of exactly Size bytes.
type FixedBlob struct{ Size int }

func (k FixedBlob) encode(v any, path string) (any, error) {
	b, ok := v.([]byte)
	if !ok {
		return nil, valueErr(path, "expected bytes, got %T", v)
	}
	if len(b) != k.Size {
		return nil, valueErr(path, "expected %d bytes, got %d", k.Size, len(b))
	}
	return b, nil
}

func (k FixedBlob) decode(it item, path string) (any, error) {
	if it.isList {
		return nil, encodingErr(path, "expected string, got list")
	}
	if len(it.str) != k.Size {
		return nil, encodingErr(path, "expected %d bytes, got %d", k.Size, len(it.str))
	}
	return it.str, nil
}

// OptionalFixedBlob is either absent, encoded as the empty string, or exactly
// Size bytes.
type OptionalFixedBlob struct{ Size int }

func (k OptionalFixedBlob) encode(v any, path string) (any, error) {
	if v == nil {
		return []byte{}, nil
	}
	b, ok := v.([]byte)
	if !ok {
		return nil, valueErr(path, "expected bytes or nil, got %T", v)
	}
	if b == nil {
		return []byte{}, nil
	}
	if len(b) != k.Size {
		return nil, valueErr(path, "expected %d bytes, got %d", k.Size, len(b))
	}
	return b, nil
}

func (k OptionalFixedBlob) decode(it item, path string) (any, error) {
	if it.isList {
		return nil, encodingErr(path, "expected string, got list")
	}
	switch len(it.str) {
	case 0:
		return []byte(nil), nil
	case k.Size:
		return it.str, nil
	}
	return nil, encodingErr(path, "expected 0 or %d bytes, got %d", k.Size, len(it.str))
}

// CompactFixedBlob is a Size-byte value whose leading zero bytes are stripped
// on the wire.
type CompactFixedBlob struct{ Size int }

func (k CompactFixedBlob) encode(v any, path string) (any, error) {
	b, ok := v.([]byte)
	if !ok {
		return nil, valueErr(path, "expected bytes, got %T", v)
	}
	if len(b) != k.Size {
		return nil, valueErr(path, "expected %d bytes, got %d", k.Size, len(b))
	}
	i := 0
	for i < len(b) && b[i] == 0 {
		i++
	}
	return b[i:], nil
}

func (k CompactFixedBlob) decode(it item, path string) (any, error) {
	if it.isList {
		return nil, encodingErr(path, "expected string, got list")
	}
	if len(it.str) > k.Size {
		return nil, encodingErr(path, "expected at most %d bytes, got %d", k.Size, len(it.str))
	}
	if len(it.str) > 0 && it.str[0] == 0 {
		return nil, encodingErr(path, "leading zero byte")
	}
	out := make([]byte, k.Size)
	copy(out[k.Size-len(it.str):], it.str)
	return out, nil
}

// Blob is a byte string of any length.
type Blob struct{}

func (Blob) encode(v any, path string) (any, error) {
	if v == nil {
		return []byte{}, nil
	}
	b, ok := v.([]byte)
	if !ok {
		return nil, valueErr(path, "expected bytes, got %T", v)
	}
	if b == nil {
		return []byte{}, nil
	}
	return b, nil
}

func (Blob) decode(it item, path string) (any, error) {
	if it.isList {
		return nil, encodingErr(path, "expected string, got list")
	}
	if it.str == nil {
		return []byte{}, nil
	}
	return it.str, nil
}

// Numeric is a non-negative integer of at most MaxBytes bytes (MaxBytes ≤ 32),
// encoded big-endian without leading zeros. Zero is the empty string.
type Numeric struct{ MaxBytes int }

func (k Numeric) encode(v any, path string) (any, error) {
	if k.MaxBytes <= 0 || k.MaxBytes > 32 {
		return nil, valueErr(path, "unsupported numeric width %d", k.MaxBytes)
	}
	n, err := toUint256(v)
	if err != nil {
		return nil, valueErr(path, "%v", err)
	}
	if n.ByteLen() > k.MaxBytes {
		return nil, valueErr(path, "value exceeds %d bytes", k.MaxBytes)
	}
	if n.IsZero() {
		return []byte{}, nil
	}
	return n.Bytes(), nil
}

func (k Numeric) decode(it item, path string) (any, error) {
	if it.isList {
		return nil, encodingErr(path, "expected string, got list")
	}
	if k.MaxBytes <= 0 || k.MaxBytes > 32 {
		return nil, encodingErr(path, "unsupported numeric width %d", k.MaxBytes)
	}
	if len(it.str) > k.MaxBytes {
		return nil, encodingErr(path, "expected at most %d bytes, got %d", k.MaxBytes, len(it.str))
	}
	if len(it.str) > 0 && it.str[0] == 0 {
		return nil, encodingErr(path, "leading zero byte")
	}
	return new(big.Int).SetBytes(it.str), nil
}

// toUint256 converts the accepted numeric inputs. Negative values and values
// wider than 256 bits are rejected.
func toUint256(v any) (*uint256.Int, error) {
	switch n := v.(type) {
	case uint64:
		return uint256.NewInt(n), nil
	case uint32:
		return uint256.NewInt(uint64(n)), nil
	case uint16:
		return uint256.NewInt(uint64(n)), nil
	case uint8:
		return uint256.NewInt(uint64(n)), nil
	case uint:
		return uint256.NewInt(uint64(n)), nil
	case int:
		if n < 0 {
			return nil, errors.New("negative value")
		}
		return uint256.NewInt(uint64(n)), nil
	case int64:
		if n < 0 {
			return nil, errors.New("negative value")
		}
		return uint256.NewInt(uint64(n)), nil
	case *big.Int:
		if n == nil {
			return nil, errors.New("nil number")
		}
		if n.Sign() < 0 {
			return nil, errors.New("negative value")
		}
		u, overflow := uint256.FromBig(n)
		if overflow {
			return nil, errors.New("value exceeds 256 bits")
		}
		return u, nil
	case *uint256.Int:
		if n == nil {
			return nil, errors.New("nil number")
		}
		return new(uint256.Int).Set(n), nil
	case string:
		return parseNumericString(n)
	}
	return nil, fmt.Errorf("unsupported numeric type %T", v)
}

// parseNumericString accepts decimal or 0x-prefixed hex strings.
func parseNumericString(s string) (*uint256.Int, error) {
	var (
		b  = new(big.Int)
		ok bool
	)
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		if len(s) == 2 {
			return nil, errors.New("empty hex string")
		}
		_, ok = b.SetString(s[2:], 16)
	} else {
		if s == "" || strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
			return nil, fmt.Errorf("invalid numeric string %q", s)
		}
		_, ok = b.SetString(s, 10)
	}
	if !ok {
		return nil, fmt.Errorf("invalid numeric string %q", s)
	}
	u, overflow := uint256.FromBig(b)
	if overflow {
		return nil, errors.New("value exceeds 256 bits")
	}
	return u, nil
}

// Struct is a nested list following the Fields profile.
type Struct struct{ Fields Profile }

func (k Struct) encode(v any, path string) (any, error) {
	obj, ok := v.(Object)
	if !ok {
		m, isMap := v.(map[string]any)
		if !isMap {
			return nil, valueErr(path, "expected object, got %T", v)
		}
		obj = m
	}
	out := make([]any, len(k.Fields))
	for i, f := range k.Fields {
		fv, present := obj[f.Name]
		if !present {
			return nil, valueErr(join(path, f.Name), "missing field")
		}
		enc, err := f.Kind.encode(fv, join(path, f.Name))
		if err != nil {
			return nil, err
		}
		out[i] = enc
	}
	return out, nil
}

func (k Struct) decode(it item, path string) (any, error) {
	if !it.isList {
		return nil, encodingErr(path, "expected list, got string")
	}
	if len(it.list) != len(k.Fields) {
		return nil, encodingErr(path, "expected %d items, got %d", len(k.Fields), len(it.list))
	}
	obj := make(Object, len(k.Fields))
	for i, f := range k.Fields {
		v, err := f.Kind.decode(it.list[i], join(path, f.Name))
		if err != nil {
			return nil, err
		}
		obj[f.Name] = v
	}
	return obj, nil
}

// Array is a nested list whose items all share the Item kind.
type Array struct{ Item Kind }

func (k Array) encode(v any, path string) (any, error) {
	var items []any
	switch list := v.(type) {
	case nil:
	case []any:
		items = list
	case []Object:
		items = make([]any, len(list))
		for i, o := range list {
			items[i] = o
		}
	case [][]byte:
		items = make([]any, len(list))
		for i, b := range list {
			items[i] = b
		}
	default:
		return nil, valueErr(path, "expected list, got %T", v)
	}
	out := make([]any, len(items))
	for i, iv := range items {
		enc, err := k.Item.encode(iv, join(path, "#"+strconv.Itoa(i)))
		if err != nil {
			return nil, err
		}
		out[i] = enc
	}
	return out, nil
}

func (k Array) decode(it item, path string) (any, error) {
	if !it.isList {
		return nil, encodingErr(path, "expected list, got string")
	}
	out := make([]any, len(it.list))
	for i, child := range it.list {
		v, err := k.Item.decode(child, join(path, "#"+strconv.Itoa(i)))
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
