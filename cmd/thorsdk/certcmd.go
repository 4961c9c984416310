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
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"
	"github.com/vechain/thor-sdk-go/certificate"
	"github.com/vechain/thor-sdk-go/cmd/utils"
	"github.com/vechain/thor-sdk-go/crypto"
)

var (
	purposeFlag = &cli.StringFlag{
		Name:  "purpose",
		Usage: "Purpose of the certificate, e.g. identification or agreement",
		Value: "identification",
	}
	domainFlag = &cli.StringFlag{
		Name:     "domain",
		Usage:    "Domain the certificate is issued for",
		Required: true,
	}
	payloadTypeFlag = &cli.StringFlag{
		Name:  "payload.type",
		Usage: "Type of the payload content",
		Value: "text",
	}
	payloadContentFlag = &cli.StringFlag{
		Name:     "payload.content",
		Usage:    "Content of the payload",
		Required: true,
	}
	timestampFlag = &cli.Uint64Flag{
		Name:  "timestamp",
		Usage: "Unix timestamp of the certificate (default: now)",
	}
	certFileFlag = &cli.StringFlag{
		Name:     "cert",
		Usage:    "File holding the certificate JSON",
		Required: true,
	}

	certCommand = &cli.Command{
		Name:  "cert",
		Usage: "Sign and verify certificates",
		Subcommands: []*cli.Command{
			{
				Name:   "sign",
				Usage:  "Sign a certificate",
				Action: certSign,
				Flags: []cli.Flag{purposeFlag, domainFlag, payloadTypeFlag, payloadContentFlag, timestampFlag,
					utils.PrivateKeyFlag, fromFlag, utils.PasswordFileFlag},
			},
			{
				Name:   "verify",
				Usage:  "Verify the signature of a certificate",
				Action: certVerify,
				Flags:  []cli.Flag{certFileFlag},
			},
		},
	}
)

func certSign(ctx *cli.Context) error {
	cfg, err := loadBaseConfig(ctx)
	if err != nil {
		return err
	}
	prv, err := signingKey(ctx, &cfg)
	if err != nil {
		return err
	}
	defer crypto.Zero(prv)

	signer, err := crypto.PrivateKeyToAddress(prv)
	if err != nil {
		return err
	}
	timestamp := ctx.Uint64(timestampFlag.Name)
	if !ctx.IsSet(timestampFlag.Name) {
		timestamp = uint64(time.Now().Unix())
	}
	payload := certificate.Payload{
		Type:    ctx.String(payloadTypeFlag.Name),
		Content: ctx.String(payloadContentFlag.Name),
	}
	cert, err := certificate.New(ctx.String(purposeFlag.Name), payload, ctx.String(domainFlag.Name), timestamp, signer.String())
	if err != nil {
		return err
	}
	signed, err := cert.Sign(prv)
	if err != nil {
		return err
	}
	return writeJSON(ctx, signed)
}

func certVerify(ctx *cli.Context) error {
	var cert certificate.Certificate
	if err := readJSONFile(ctx.String(certFileFlag.Name), &cert); err != nil {
		return err
	}
	if !cert.IsSigned() {
		return errors.New("certificate is not signed")
	}
	if err := cert.Verify(); err != nil {
		return err
	}
	log.Info("Certificate verified", "signer", cert.Signer(), "domain", cert.Domain())
	fmt.Fprintf(ctx.App.Writer, "Valid certificate signed by %s\n", cert.Signer().Checksum())
	return nil
}
