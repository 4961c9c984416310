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
	"crypto/rand"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"
	"github.com/vechain/thor-sdk-go/cmd/utils"
	"github.com/vechain/thor-sdk-go/crypto"
	"github.com/vechain/thor-sdk-go/internal/flags"
	"github.com/vechain/thor-sdk-go/thor"
	"github.com/vechain/thor-sdk-go/tx"
	"github.com/vechain/thor-sdk-go/units"
)

var (
	clauseFlag = &cli.StringSliceFlag{
		Name:     "clause",
		Usage:    "Clause as <to>,<VET amount>,<hex data>; leave <to> empty to deploy a contract",
		Category: flags.TransactionCategory,
	}
	gasFlag = &cli.Uint64Flag{
		Name:     "gas",
		Usage:    "Gas limit (default: intrinsic gas of the clauses)",
		Category: flags.TransactionCategory,
	}
	gasPriceCoefFlag = &cli.UintFlag{
		Name:     "gascoef",
		Usage:    "Gas price coefficient of a legacy transaction (0-255)",
		Category: flags.TransactionCategory,
	}
	maxFeeFlag = flags.AmountFlag("maxfee",
		"Max fee per gas in wei, builds a fee-market transaction", flags.TransactionCategory)
	maxPriorityFeeFlag = flags.AmountFlag("maxpriorityfee",
		"Max priority fee per gas in wei, builds a fee-market transaction", flags.TransactionCategory)
	expirationFlag = &cli.UintFlag{
		Name:     "expiration",
		Usage:    "Number of blocks the transaction stays valid after its block ref",
		Value:    720,
		Category: flags.TransactionCategory,
	}
	blockRefFlag = &cli.StringFlag{
		Name:     "blockref",
		Usage:    "Block reference as 8 hex bytes (default: ref of the best block of the node)",
		Category: flags.TransactionCategory,
	}
	nonceFlag = &cli.Uint64Flag{
		Name:     "nonce",
		Usage:    "Transaction nonce (default: random)",
		Category: flags.TransactionCategory,
	}
	dependsOnFlag = &cli.StringFlag{
		Name:     "dependson",
		Usage:    "Id of a transaction that must be executed first",
		Category: flags.TransactionCategory,
	}
	delegatedFlag = &cli.BoolFlag{
		Name:     "delegated",
		Usage:    "Enable fee delegation, a gas payer co-signs the transaction",
		Category: flags.TransactionCategory,
	}
	bodyFileFlag = &cli.StringFlag{
		Name:     "body",
		Usage:    "File holding the transaction body JSON produced by 'tx build'",
		Required: true,
	}
	txFileFlag = &cli.StringFlag{
		Name:     "tx",
		Usage:    "File holding the transaction JSON produced by 'tx sign'",
		Required: true,
	}
	gasPayerKeyFlag = &cli.StringFlag{
		Name:  "gaspayer.privatekey",
		Usage: "File holding the gas payer private key, signs both parts of a delegated transaction",
	}
	unsignedFlag = &cli.BoolFlag{
		Name:  "unsigned",
		Usage: "Decode the input as an unsigned transaction",
	}
	verboseFlag = &cli.BoolFlag{
		Name:  "verbose",
		Usage: "Print a human readable dump instead of JSON",
	}
	waitFlag = &cli.BoolFlag{
		Name:  "wait",
		Usage: "Wait for the receipt of the transaction",
	}
	intervalFlag = &cli.DurationFlag{
		Name:  "interval",
		Usage: "Receipt polling interval",
		Value: 2 * time.Second,
	}

	txCommand = &cli.Command{
		Name:  "tx",
		Usage: "Build, sign, inspect and send transactions",
		Subcommands: []*cli.Command{
			{
				Name:   "build",
				Usage:  "Build an unsigned transaction body",
				Action: txBuild,
				Flags: []cli.Flag{utils.ChainTagFlag, clauseFlag, gasFlag, gasPriceCoefFlag, maxFeeFlag,
					maxPriorityFeeFlag, expirationFlag, blockRefFlag, nonceFlag, dependsOnFlag, delegatedFlag},
				Description: `
    thorsdk tx build --clause 0x7567d83b7b8d80addcb281a71d54fc7b3364ffed,1.5, > body.json

Prints the body as JSON, ready to be signed by 'tx sign'.`,
			},
			{
				Name:   "sign",
				Usage:  "Sign a transaction body as its sender",
				Action: txSign,
				Flags:  []cli.Flag{bodyFileFlag, utils.PrivateKeyFlag, fromFlag, utils.PasswordFileFlag, gasPayerKeyFlag},
				Description: `
Signs the body as the sender. A delegated body gets only the sender part of the
signature unless --gaspayer.privatekey is given; the gas payer completes it with
'tx cosign'.`,
			},
			{
				Name:   "cosign",
				Usage:  "Complete a delegated transaction as gas payer",
				Action: txCosign,
				Flags:  []cli.Flag{txFileFlag, utils.PrivateKeyFlag, fromFlag, utils.PasswordFileFlag},
			},
			{
				Name:   "encode",
				Usage:  "Print the raw encoding of a signed transaction",
				Action: txEncode,
				Flags:  []cli.Flag{txFileFlag},
			},
			{
				Name:      "decode",
				Usage:     "Decode a raw transaction",
				Action:    txDecode,
				ArgsUsage: "<hex>",
				Flags:     []cli.Flag{unsignedFlag, verboseFlag},
			},
			{
				Name:   "send",
				Usage:  "Send a signed transaction to the node",
				Action: txSend,
				Flags:  []cli.Flag{txFileFlag, waitFlag, intervalFlag},
			},
		},
	}
)

func txBuild(ctx *cli.Context) error {
	if err := flags.CheckExclusive(ctx, gasPriceCoefFlag, maxFeeFlag); err != nil {
		return err
	}
	cfg, err := loadBaseConfig(ctx)
	if err != nil {
		return err
	}
	b := tx.NewBuilder().
		ChainTag(cfg.Network.ChainTag).
		Expiration(uint32(ctx.Uint(expirationFlag.Name)))

	var clauses []*tx.Clause
	for _, arg := range ctx.StringSlice(clauseFlag.Name) {
		c, err := parseClause(arg)
		if err != nil {
			return err
		}
		clauses = append(clauses, c)
		b.Clause(c)
	}

	gas := ctx.Uint64(gasFlag.Name)
	if gas == 0 {
		if gas, err = tx.IntrinsicGas(clauses...); err != nil {
			return err
		}
	}
	b.Gas(gas)

	maxFee, maxPriorityFee := flags.Amount(ctx, maxFeeFlag.Name), flags.Amount(ctx, maxPriorityFeeFlag.Name)
	if maxFee != nil || maxPriorityFee != nil {
		if maxFee == nil || maxPriorityFee == nil {
			return fmt.Errorf("--%s and --%s must be given together", maxFeeFlag.Name, maxPriorityFeeFlag.Name)
		}
		b.MaxFeePerGas(maxFee).MaxPriorityFeePerGas(maxPriorityFee)
	} else {
		coef := ctx.Uint(gasPriceCoefFlag.Name)
		if coef > 255 {
			return fmt.Errorf("--%s out of range: %d", gasPriceCoefFlag.Name, coef)
		}
		b.GasPriceCoef(uint8(coef))
	}

	if ref := ctx.String(blockRefFlag.Name); ref != "" {
		blockRef, err := thor.ParseBlockRef(ref)
		if err != nil {
			return err
		}
		b.BlockRef(blockRef)
	} else {
		client, err := cfg.client()
		if err != nil {
			return err
		}
		best, err := client.BestBlock(ctx.Context)
		if err != nil {
			return fmt.Errorf("failed to fetch the best block: %v", err)
		}
		log.Info("Using best block as reference", "number", best.Number, "id", best.ID)
		b.BlockRef(best.BlockRef())
	}

	nonce := ctx.Uint64(nonceFlag.Name)
	if !ctx.IsSet(nonceFlag.Name) {
		var buf [8]byte
		if _, err := rand.Read(buf[:]); err != nil {
			return err
		}
		nonce = binary.BigEndian.Uint64(buf[:])
	}
	b.Nonce(nonce)

	if dep := ctx.String(dependsOnFlag.Name); dep != "" {
		id, err := thor.ParseBytes32(dep)
		if err != nil {
			return err
		}
		b.DependsOn(&id)
	}
	if ctx.Bool(delegatedFlag.Name) {
		b.Features(tx.DelegationFeature)
	}

	trx, err := b.Build()
	if err != nil {
		return err
	}
	return writeJSON(ctx, trx.Body())
}

// parseClause parses <to>,<VET amount>,<hex data>. Missing parts are empty.
func parseClause(arg string) (*tx.Clause, error) {
	parts := strings.Split(arg, ",")
	if len(parts) > 3 {
		return nil, fmt.Errorf("invalid clause %q", arg)
	}
	for len(parts) < 3 {
		parts = append(parts, "")
	}
	var to *thor.Address
	if s := strings.TrimSpace(parts[0]); s != "" {
		addr, err := thor.ParseAddress(s)
		if err != nil {
			return nil, fmt.Errorf("invalid clause recipient %q: %v", s, err)
		}
		to = &addr
	}
	c := tx.NewClause(to)
	if s := strings.TrimSpace(parts[1]); s != "" {
		value, err := units.ParseVET(s)
		if err != nil {
			return nil, fmt.Errorf("invalid clause value %q: %v", s, err)
		}
		c = c.WithValue(value)
	}
	if s := strings.TrimSpace(parts[2]); s != "" {
		data, err := hexutil.Decode(s)
		if err != nil {
			return nil, fmt.Errorf("invalid clause data %q: %v", s, err)
		}
		c = c.WithData(data)
	}
	return c, nil
}

func txSign(ctx *cli.Context) error {
	cfg, err := loadBaseConfig(ctx)
	if err != nil {
		return err
	}
	var body tx.Body
	if err := readJSONFile(ctx.String(bodyFileFlag.Name), &body); err != nil {
		return err
	}
	trx, err := tx.New(&body)
	if err != nil {
		return err
	}
	prv, err := signingKey(ctx, &cfg)
	if err != nil {
		return err
	}
	defer crypto.Zero(prv)

	var signed *tx.Transaction
	switch {
	case !trx.IsDelegated():
		signed, err = trx.Sign(prv)
	case ctx.IsSet(gasPayerKeyFlag.Name):
		gasPayer, kerr := readPrivateKeyFile(ctx.String(gasPayerKeyFlag.Name))
		if kerr != nil {
			return kerr
		}
		defer crypto.Zero(gasPayer)
		signed, err = trx.SignAsSenderAndGasPayer(prv, gasPayer)
	default:
		signed, err = trx.SignAsSender(prv)
		log.Info("Signed as sender, the gas payer has to co-sign")
	}
	if err != nil {
		return err
	}
	return writeJSON(ctx, signed)
}

func txCosign(ctx *cli.Context) error {
	cfg, err := loadBaseConfig(ctx)
	if err != nil {
		return err
	}
	var trx tx.Transaction
	if err := readJSONFile(ctx.String(txFileFlag.Name), &trx); err != nil {
		return err
	}
	sender, err := trx.Origin()
	if err != nil {
		return fmt.Errorf("transaction has no sender signature: %v", err)
	}
	prv, err := signingKey(ctx, &cfg)
	if err != nil {
		return err
	}
	defer crypto.Zero(prv)

	signed, err := trx.SignAsGasPayer(sender, prv)
	if err != nil {
		return err
	}
	return writeJSON(ctx, signed)
}

func txEncode(ctx *cli.Context) error {
	var trx tx.Transaction
	if err := readJSONFile(ctx.String(txFileFlag.Name), &trx); err != nil {
		return err
	}
	if !trx.IsSigned() {
		return errors.New("transaction is not completely signed")
	}
	fmt.Fprintln(ctx.App.Writer, hexutil.Encode(trx.Encoded()))
	return nil
}

func txDecode(ctx *cli.Context) error {
	if ctx.Args().Len() != 1 {
		return errors.New("raw transaction must be given as the only argument")
	}
	raw, err := hexutil.Decode(strings.TrimSpace(ctx.Args().First()))
	if err != nil {
		return fmt.Errorf("invalid hex: %v", err)
	}
	trx, err := tx.Decode(raw, !ctx.Bool(unsignedFlag.Name))
	if err != nil {
		return err
	}
	if ctx.Bool(verboseFlag.Name) {
		fmt.Fprint(ctx.App.Writer, trx.String())
		return nil
	}
	return writeJSON(ctx, trx)
}

func txSend(ctx *cli.Context) error {
	cfg, err := loadBaseConfig(ctx)
	if err != nil {
		return err
	}
	var trx tx.Transaction
	if err := readJSONFile(ctx.String(txFileFlag.Name), &trx); err != nil {
		return err
	}
	if !trx.IsSigned() {
		return errors.New("transaction is not completely signed")
	}
	if trx.ChainTag() != cfg.Network.ChainTag {
		log.Warn("Chain tag differs from the configured network", "tx", trx.ChainTag(), "network", cfg.Network.ChainTag)
	}
	client, err := cfg.client()
	if err != nil {
		return err
	}
	id, err := client.SendTransaction(ctx.Context, &trx)
	if err != nil {
		return err
	}
	log.Info("Submitted transaction", "id", id, "node", client.URL())
	fmt.Fprintln(ctx.App.Writer, id)

	if !ctx.Bool(waitFlag.Name) {
		return nil
	}
	receipt, err := client.WaitForReceipt(ctx.Context, id, ctx.Duration(intervalFlag.Name))
	if err != nil {
		return err
	}
	if receipt.Reverted {
		log.Warn("Transaction reverted", "id", id, "block", receipt.Meta.BlockNumber)
	}
	return writeJSON(ctx, receipt)
}

func readJSONFile(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func writeJSON(ctx *cli.Context, v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(ctx.App.Writer, string(out))
	return err
}
