// Copyright 2022 The go-ethereum Authors
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
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"
	"github.com/vechain/thor-sdk-go/internal/version"
)

// NewApp creates an app with the defaults shared by the thorsdk commands.
// Global flags are looked up through the context lineage, subcommands do not
// need to redeclare them.
// NewApp 创建一个带有默认设置的 CLI 应用。
func NewApp(usage string) *cli.App {
	rev, _ := version.VCS()
	app := cli.NewApp()
	app.EnableBashCompletion = true
	app.Version = version.WithCommit(rev)
	app.Usage = usage
	app.Copyright = "Copyright 2024-2025 The thor-sdk-go Authors"
	return app
}

// CheckExclusive returns an error if more than one of the given flags was set.
// CheckExclusive 在多个互斥标志同时被设置时返回错误。
func CheckExclusive(ctx *cli.Context, args ...cli.Flag) error {
	var set []string
	for _, f := range args {
		if name := f.Names()[0]; ctx.IsSet(name) {
			set = append(set, "--"+name)
		}
	}
	if len(set) > 1 {
		return fmt.Errorf("flags %v can't be used at the same time", strings.Join(set, ", "))
	}
	return nil
}
