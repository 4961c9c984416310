// Copyright 2015 The go-ethereum Authors
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

package flags

import (
	"errors"
	"fmt"
	"math/big"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/holiman/uint256"
	"github.com/urfave/cli/v2"
)

// PathValue holds a file system path. Set expands a leading ~ and environment
// variables, e.g. ~/.thorsdk/keystore -> /home/username/.thorsdk/keystore.
// PathValue 保存一个文件系统路径，设置时展开 ~ 和环境变量。
type PathValue struct {
	path string
}

func (p *PathValue) String() string { return p.path }

func (p *PathValue) Set(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("empty path")
	}
	p.path = ExpandPath(s)
	return nil
}

// PathFlag returns a flag accepting a path. The value is only meaningful when
// the flag was set, read it with Path.
func PathFlag(name, usage, defaultText, category string) *cli.GenericFlag {
	return &cli.GenericFlag{
		Name:        name,
		Usage:       usage,
		DefaultText: defaultText,
		Category:    category,
		Value:       new(PathValue),
	}
}

// Path returns the expanded path given for the named flag, or "" if the flag
// was not set on the command line.
func Path(ctx *cli.Context, name string) string {
	if !ctx.IsSet(name) {
		return ""
	}
	if v, ok := ctx.Generic(name).(*PathValue); ok {
		return v.path
	}
	return ""
}

// AmountValue holds a non-negative 256 bit amount, given in decimal or in
// 0x-prefixed hexadecimal.
// AmountValue 保存一个非负的 256 位数值，可用十进制或 0x 前缀的十六进制表示。
type AmountValue struct {
	v *uint256.Int
}

func (a *AmountValue) String() string {
	if a.v == nil {
		return ""
	}
	return a.v.Dec()
}

func (a *AmountValue) Set(s string) error {
	var (
		v   = new(uint256.Int)
		err error
	)
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		err = v.SetFromHex(s)
	} else {
		err = v.SetFromDecimal(s)
	}
	if err != nil {
		return fmt.Errorf("invalid amount %q: %v", s, err)
	}
	a.v = v
	return nil
}

// AmountFlag returns a flag accepting a 256 bit amount, read it with Amount.
func AmountFlag(name, usage, category string) *cli.GenericFlag {
	return &cli.GenericFlag{
		Name:     name,
		Usage:    usage,
		Category: category,
		Value:    new(AmountValue),
	}
}

// Amount returns a copy of the amount given for the named flag, or nil if the
// flag was not set on the command line.
// Amount 返回标志给定数值的副本，未设置时返回 nil。
func Amount(ctx *cli.Context, name string) *big.Int {
	if !ctx.IsSet(name) {
		return nil
	}
	if v, ok := ctx.Generic(name).(*AmountValue); ok && v.v != nil {
		return v.v.ToBig()
	}
	return nil
}

// ExpandPath expands a file path:
//  1. replace tilde with users home dir
//  2. expands embedded environment variables
//  3. cleans the path, e.g. /a/b/../c -> /a/c
//
// Note, ~someuser/tmp is not expanded.
func ExpandPath(p string) string {
	if strings.HasPrefix(p, "~/") || strings.HasPrefix(p, "~\\") {
		if home := homeDir(); home != "" {
			p = home + p[1:]
		}
	}
	return filepath.Clean(os.ExpandEnv(p))
}

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}
