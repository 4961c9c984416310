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
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"
	"github.com/vechain/thor-sdk-go/accounts/keystore"
	"github.com/vechain/thor-sdk-go/cmd/utils"
	"github.com/vechain/thor-sdk-go/crypto"
	"github.com/vechain/thor-sdk-go/thor"
	"github.com/vechain/thor-sdk-go/thorclient"
	"github.com/vechain/thor-sdk-go/units"
	"golang.org/x/sync/errgroup"
)

var (
	privateFlag = &cli.BoolFlag{
		Name:  "private",
		Usage: "Include the private key in the output",
	}
	fromFlag = &cli.StringFlag{
		Name:  "from",
		Usage: "Keystore account used for signing",
	}

	accountCommand = &cli.Command{
		Name:  "account",
		Usage: "Manage accounts",
		Description: `

Manage accounts, list all existing accounts, import a private key into a new
account, create a new account or inspect a key file.

Keys are stored under <KEYSTORE>, which defaults to ~/.thorsdk/keystore. Make sure
you backup your keys regularly.`,
		Subcommands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "Print summary of existing accounts",
				Action: accountList,
				Description: `
Print a short summary of all accounts`,
			},
			{
				Name:   "new",
				Usage:  "Create a new account",
				Action: accountCreate,
				Flags:  []cli.Flag{utils.PasswordFileFlag},
				Description: `
    thorsdk account new --password <passwordfile>

Creates a new account and prints the address. The account is saved in encrypted
format, the password is read from the given file.`,
			},
			{
				Name:      "import",
				Usage:     "Import a private key into a new account",
				Action:    accountImport,
				ArgsUsage: "<keyFile>",
				Flags:     []cli.Flag{utils.PasswordFileFlag},
				Description: `
    thorsdk account import --password <passwordfile> <keyfile>

Imports an unencrypted private key from <keyfile> and creates a new account.
The keyfile is assumed to contain an unencrypted private key in hexadecimal format.`,
			},
			{
				Name:      "inspect",
				Usage:     "Decrypt a key file and print its address",
				Action:    accountInspect,
				ArgsUsage: "<keyFile>",
				Flags:     []cli.Flag{utils.PasswordFileFlag, privateFlag},
			},
			{
				Name:      "balance",
				Usage:     "Print the VET and VTHO balances of accounts",
				Action:    accountBalance,
				ArgsUsage: "<address> [<address>...]",
			},
		},
	}
)

func accountList(ctx *cli.Context) error {
	cfg, err := loadBaseConfig(ctx)
	if err != nil {
		return err
	}
	accounts, err := cfg.keyStore().Accounts()
	if err != nil {
		return err
	}
	for i, acct := range accounts {
		fmt.Fprintf(ctx.App.Writer, "Account #%d: {%s} keystore://%s\n", i, acct.Address, acct.Path)
	}
	return nil
}

// accountCreate creates a new account into the keystore defined by the CLI flags.
func accountCreate(ctx *cli.Context) error {
	cfg, err := loadBaseConfig(ctx)
	if err != nil {
		return err
	}
	password, err := utils.ReadPasswordFile(ctx)
	if err != nil {
		return err
	}
	account, err := cfg.keyStore().NewAccount(password)
	if err != nil {
		return fmt.Errorf("failed to create account: %v", err)
	}
	fmt.Fprintf(ctx.App.Writer, "\nYour new key was generated\n\n")
	fmt.Fprintf(ctx.App.Writer, "Public address of the key:   %s\n", account.Address.Checksum())
	fmt.Fprintf(ctx.App.Writer, "Path of the secret key file: %s\n\n", account.Path)
	fmt.Fprintf(ctx.App.Writer, "- You can share your public address with anyone. Others need it to interact with you.\n")
	fmt.Fprintf(ctx.App.Writer, "- You must NEVER share the secret key with anyone! The key controls access to your funds!\n")
	fmt.Fprintf(ctx.App.Writer, "- You must BACKUP your key file! Without the key, it's impossible to access account funds!\n")
	fmt.Fprintf(ctx.App.Writer, "- You must REMEMBER your password! Without the password, it's impossible to decrypt the key!\n\n")
	return nil
}

func accountImport(ctx *cli.Context) error {
	if ctx.Args().Len() != 1 {
		return errors.New("keyfile must be given as the only argument")
	}
	cfg, err := loadBaseConfig(ctx)
	if err != nil {
		return err
	}
	prv, err := readPrivateKeyFile(ctx.Args().First())
	if err != nil {
		return err
	}
	defer crypto.Zero(prv)

	password, err := utils.ReadPasswordFile(ctx)
	if err != nil {
		return err
	}
	acct, err := cfg.keyStore().Import(prv, password)
	if err != nil {
		return fmt.Errorf("could not create the account: %v", err)
	}
	fmt.Fprintf(ctx.App.Writer, "Address: {%s}\n", acct.Address)
	return nil
}

func accountInspect(ctx *cli.Context) error {
	if ctx.Args().Len() != 1 {
		return errors.New("keyfile must be given as the only argument")
	}
	keyjson, err := os.ReadFile(ctx.Args().First())
	if err != nil {
		return fmt.Errorf("failed to read the keyfile: %v", err)
	}
	password, err := utils.ReadPasswordFile(ctx)
	if err != nil {
		return err
	}
	key, err := keystore.DecryptKey(keyjson, password)
	if err != nil {
		return fmt.Errorf("error decrypting key: %v", err)
	}
	defer key.Zero()

	pub, err := crypto.PublicKey(key.PrivateKey)
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.App.Writer, "Address:        %s\n", key.Address.Checksum())
	fmt.Fprintf(ctx.App.Writer, "Public key:     %x\n", pub)
	if ctx.Bool(privateFlag.Name) {
		fmt.Fprintf(ctx.App.Writer, "Private key:    %x\n", key.PrivateKey)
	}
	return nil
}

func accountBalance(ctx *cli.Context) error {
	if ctx.Args().Len() == 0 {
		return errors.New("at least one address is required")
	}
	addrs := make([]thor.Address, ctx.Args().Len())
	for i, arg := range ctx.Args().Slice() {
		addr, err := thor.ParseAddress(arg)
		if err != nil {
			return fmt.Errorf("invalid address %q: %v", arg, err)
		}
		addrs[i] = addr
	}
	cfg, err := loadBaseConfig(ctx)
	if err != nil {
		return err
	}
	client, err := cfg.client()
	if err != nil {
		return err
	}

	results := make([]*thorclient.Account, len(addrs))
	g, gctx := errgroup.WithContext(ctx.Context)
	g.SetLimit(4)
	for i, addr := range addrs {
		i, addr := i, addr
		g.Go(func() error {
			acc, err := client.Account(gctx, addr)
			if err != nil {
				return fmt.Errorf("account %v: %w", addr, err)
			}
			results[i] = acc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for i, acc := range results {
		fmt.Fprintf(ctx.App.Writer, "%s  %s VET  %s VTHO\n", addrs[i].Checksum(),
			units.FormatVET(acc.Balance.ToInt()), units.FormatVTHO(acc.Energy.ToInt()))
	}
	return nil
}

// readPrivateKeyFile loads a hex encoded private key, with or without 0x prefix.
func readPrivateKeyFile(path string) ([]byte, error) {
	line, err := utils.FirstLine(path)
	if err != nil {
		return nil, err
	}
	prv, err := hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(line), "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid private key file: %v", err)
	}
	if err := crypto.ValidatePrivateKey(prv); err != nil {
		return nil, err
	}
	return prv, nil
}

// signingKey resolves the private key named by --privatekey, or unlocks the
// keystore account given by --from with the --password file.
func signingKey(ctx *cli.Context, cfg *thorsdkConfig) ([]byte, error) {
	if file := ctx.String(utils.PrivateKeyFlag.Name); file != "" {
		return readPrivateKeyFile(file)
	}
	from := ctx.String(fromFlag.Name)
	if from == "" {
		return nil, fmt.Errorf("either --%s or --%s is required", utils.PrivateKeyFlag.Name, fromFlag.Name)
	}
	addr, err := thor.ParseAddress(from)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s: %v", fromFlag.Name, err)
	}
	password, err := utils.ReadPasswordFile(ctx)
	if err != nil {
		return nil, err
	}
	key, err := cfg.keyStore().Unlock(addr, password)
	if err != nil {
		return nil, fmt.Errorf("could not unlock %v: %v", addr, err)
	}
	log.Info("Unlocked account", "address", addr)
	prv := append([]byte(nil), key.PrivateKey...)
	key.Zero()
	return prv, nil
}
