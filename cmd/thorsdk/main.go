// Copyright 2024 The go-ethereum Authors
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

// thorsdk is a command-line tool for VeChain Thor accounts, transactions and
// certificates.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"github.com/vechain/thor-sdk-go/cmd/utils"
	"github.com/vechain/thor-sdk-go/internal/debug"
	"github.com/vechain/thor-sdk-go/internal/flags"
	"github.com/vechain/thor-sdk-go/internal/version"
)

const (
	clientIdentifier = "thorsdk" // Name printed by the version command
)

var (
	// globalFlags are accepted by every command.
	globalFlags = []cli.Flag{
		configFileFlag,
		utils.NetworkFlag,
		utils.NodeURLFlag,
		utils.RateLimitFlag,
		utils.TimeoutFlag,
		utils.KeyStoreDirFlag,
		utils.LightKDFFlag,
	}

	versionCommand = &cli.Command{
		Action:    printVersion,
		Name:      "version",
		Usage:     "Print version numbers",
		ArgsUsage: " ",
		Description: `
The output of this command is supposed to be machine-readable.
`,
	}
)

var app = flags.NewApp("the VeChain Thor SDK command line interface")

func init() {
	setupApp(app)
}

// setupApp registers the commands and flags of thorsdk on a.
func setupApp(a *cli.App) {
	a.Commands = []*cli.Command{
		// See accountcmd.go:
		accountCommand,
		// See mnemoniccmd.go:
		mnemonicCommand,
		// See txcmd.go:
		txCommand,
		// See certcmd.go:
		certCommand,
		// See unitscmd.go:
		unitsCommand,
		// See config.go:
		dumpConfigCommand,
		versionCommand,
	}
	a.Flags = append(append([]cli.Flag{}, globalFlags...), debug.Flags...)
	// --clause values contain commas, repeat the flag instead
	a.DisableSliceFlagSeparator = true

	a.Before = func(ctx *cli.Context) error {
		return debug.Setup(ctx)
	}
	a.After = func(ctx *cli.Context) error {
		debug.Exit()
		return nil
	}
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func printVersion(ctx *cli.Context) error {
	fmt.Fprint(ctx.App.Writer, version.Info(clientIdentifier))
	return nil
}
