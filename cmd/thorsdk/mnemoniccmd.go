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

package main

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"
	"github.com/vechain/thor-sdk-go/accounts/hdkey"
	"github.com/vechain/thor-sdk-go/cmd/utils"
	"github.com/vechain/thor-sdk-go/crypto"
)

var (
	bitsFlag = &cli.IntFlag{
		Name:  "bits",
		Usage: "Entropy of the mnemonic in bits (128, 160, 192, 224 or 256)",
		Value: 128,
	}
	mnemonicFileFlag = &cli.StringFlag{
		Name:     "mnemonic",
		Usage:    "File holding the mnemonic words",
		Required: true,
	}
	passphraseFileFlag = &cli.StringFlag{
		Name:  "passphrase",
		Usage: "File holding the optional BIP-39 passphrase",
	}
	pathFlag = &cli.StringFlag{
		Name:  "path",
		Usage: "Derivation path of the first account",
		Value: "m/44'/818'/0'/0/0",
	}
	countFlag = &cli.UintFlag{
		Name:  "count",
		Usage: "Number of consecutive accounts to derive",
		Value: 1,
	}

	mnemonicCommand = &cli.Command{
		Name:  "mnemonic",
		Usage: "Generate mnemonics and derive accounts from them",
		Subcommands: []*cli.Command{
			{
				Name:   "new",
				Usage:  "Generate a new BIP-39 mnemonic",
				Action: mnemonicNew,
				Flags:  []cli.Flag{bitsFlag},
			},
			{
				Name:   "derive",
				Usage:  "Derive accounts from a mnemonic",
				Action: mnemonicDerive,
				Flags:  []cli.Flag{mnemonicFileFlag, passphraseFileFlag, pathFlag, countFlag, privateFlag},
				Description: `
    thorsdk mnemonic derive --mnemonic <wordsfile> [--path m/44'/818'/0'/0/0] [--count 5]

Derives consecutive accounts along the given path, increasing its last component.`,
			},
		},
	}
)

func mnemonicNew(ctx *cli.Context) error {
	words, err := hdkey.NewMnemonic(ctx.Int(bitsFlag.Name))
	if err != nil {
		return err
	}
	fmt.Fprintln(ctx.App.Writer, words)
	return nil
}

func mnemonicDerive(ctx *cli.Context) error {
	words, err := utils.FirstLine(ctx.String(mnemonicFileFlag.Name))
	if err != nil {
		return err
	}
	if !hdkey.ValidateMnemonic(words) {
		return hdkey.ErrInvalidMnemonic
	}
	var passphrase string
	if file := ctx.String(passphraseFileFlag.Name); file != "" {
		if passphrase, err = utils.FirstLine(file); err != nil {
			return err
		}
	}
	base, err := hdkey.ParseDerivationPath(ctx.String(pathFlag.Name))
	if err != nil {
		return err
	}
	count := ctx.Uint(countFlag.Name)
	if count == 0 {
		return errors.New("count must be positive")
	}
	master, err := hdkey.MasterFromMnemonic(words, passphrase)
	if err != nil {
		return err
	}

	next := hdkey.DefaultIterator(base)
	for i := uint(0); i < count; i++ {
		path := next()
		key, err := master.Derive(path)
		if err != nil {
			return err
		}
		addr, err := key.Address()
		if err != nil {
			return err
		}
		if !ctx.Bool(privateFlag.Name) {
			fmt.Fprintf(ctx.App.Writer, "%s  %s\n", path, addr.Checksum())
			continue
		}
		prv, err := key.PrivateKey()
		if err != nil {
			return err
		}
		fmt.Fprintf(ctx.App.Writer, "%s  %s  %x\n", path, addr.Checksum(), prv)
		crypto.Zero(prv)
	}
	return nil
}
