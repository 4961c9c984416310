// Copyright 2015 The go-ethereum Authors
// This file is part of go-ethereum.
//
// go-ethereum is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// go-ethereum is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with go-ethereum. If not, see <http://www.gnu.org/licenses/>.

package utils

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"
)

// ReadPasswordFile returns the first line of the file given by --password.
// ReadPasswordFile 返回 --password 指定文件的第一行。
func ReadPasswordFile(ctx *cli.Context) (string, error) {
	path := ctx.String(PasswordFileFlag.Name)
	if path == "" {
		return "", errors.New("no password file given, use --" + PasswordFileFlag.Name)
	}
	return FirstLine(path)
}

// FirstLine reads the first line of a file, without the line terminator.
func FirstLine(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %v", err)
	}
	defer f.Close()

	line, err := bufio.NewReader(f).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read file: %v", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
