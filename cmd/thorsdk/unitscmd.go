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

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/urfave/cli/v2"
	"github.com/vechain/thor-sdk-go/params"
	"github.com/vechain/thor-sdk-go/units"
)

var (
	decimalsFlag = &cli.IntFlag{
		Name:  "decimals",
		Usage: "Decimals of the token",
		Value: params.Decimals,
	}

	unitsCommand = &cli.Command{
		Name:  "units",
		Usage: "Convert token amounts between decimal and base units",
		Subcommands: []*cli.Command{
			{
				Name:      "parse",
				Usage:     "Convert a decimal amount (e.g. 1.5) to base units",
				Action:    unitsParse,
				ArgsUsage: "<amount>",
				Flags:     []cli.Flag{decimalsFlag},
			},
			{
				Name:      "format",
				Usage:     "Convert base units (decimal or 0x hex) to a decimal amount",
				Action:    unitsFormat,
				ArgsUsage: "<value>",
				Flags:     []cli.Flag{decimalsFlag},
			},
		},
	}
)

func unitsParse(ctx *cli.Context) error {
	if ctx.Args().Len() != 1 {
		return errors.New("amount must be given as the only argument")
	}
	v, err := units.Parse(ctx.Args().First(), int32(ctx.Int(decimalsFlag.Name)))
	if err != nil {
		return err
	}
	fmt.Fprintln(ctx.App.Writer, v)
	return nil
}

func unitsFormat(ctx *cli.Context) error {
	if ctx.Args().Len() != 1 {
		return errors.New("value must be given as the only argument")
	}
	v, ok := math.ParseBig256(ctx.Args().First())
	if !ok {
		return fmt.Errorf("invalid value %q", ctx.Args().First())
	}
	fmt.Fprintln(ctx.App.Writer, units.Format(v, int32(ctx.Int(decimalsFlag.Name))))
	return nil
}
