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

// Package utils contains internal helper functions for thorsdk commands.
package utils

import (
	"github.com/urfave/cli/v2"
	"github.com/vechain/thor-sdk-go/internal/flags"
	"github.com/vechain/thor-sdk-go/params"
)

// DefaultKeyStoreDir is used when neither --keystore nor a config file names
// the key directory.
const DefaultKeyStoreDir = "~/.thorsdk/keystore"

// These are all the command line flags we support.
// If you add to this list, please remember to include the
// flag in the appropriate command definition.
//
// The flags are defined here so their names and help texts
// are the same for all commands.

var (
	// Node settings
	NodeURLFlag = &cli.StringFlag{
		Name:     "node",
		Usage:    "URL of the Thor node REST API (default: node of --network)",
		Category: flags.NodeCategory,
	}
	NetworkFlag = &cli.StringFlag{
		Name:     "network",
		Usage:    "Well-known network: main, test or solo",
		Value:    "main",
		Category: flags.NodeCategory,
	}
	RateLimitFlag = &cli.Float64Flag{
		Name:     "node.ratelimit",
		Usage:    "Maximum requests per second sent to the node (0 = unlimited)",
		Category: flags.NodeCategory,
	}
	TimeoutFlag = &cli.DurationFlag{
		Name:     "node.timeout",
		Usage:    "Timeout of a single node request",
		Category: flags.NodeCategory,
	}

	// Account settings
	KeyStoreDirFlag = flags.PathFlag("keystore", "Directory for the keystore", DefaultKeyStoreDir, flags.AccountCategory)
	PasswordFileFlag = &cli.StringFlag{
		Name:     "password",
		Usage:    "Password file to use for non-interactive password input",
		Category: flags.AccountCategory,
	}
	LightKDFFlag = &cli.BoolFlag{
		Name:     "lightkdf",
		Usage:    "Reduce key-derivation RAM & CPU usage at some expense of KDF strength",
		Category: flags.AccountCategory,
	}
	PrivateKeyFlag = &cli.StringFlag{
		Name:     "privatekey",
		Usage:    "File holding a hex encoded private key, used instead of the keystore",
		Category: flags.AccountCategory,
	}

	// Transaction settings
	ChainTagFlag = &cli.UintFlag{
		Name:     "chaintag",
		Usage:    "Chain tag of the target network (default: tag of --network)",
		Value:    uint(params.MainnetChainTag),
		Category: flags.TransactionCategory,
	}
)
