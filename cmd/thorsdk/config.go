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
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"time"
	"unicode"

	"github.com/naoina/toml"
	"github.com/urfave/cli/v2"
	"github.com/vechain/thor-sdk-go/accounts/keystore"
	"github.com/vechain/thor-sdk-go/cmd/utils"
	"github.com/vechain/thor-sdk-go/internal/flags"
	"github.com/vechain/thor-sdk-go/params"
	"github.com/vechain/thor-sdk-go/thorclient"
)

var (
	configFileFlag = &cli.StringFlag{
		Name:     "config",
		Usage:    "TOML configuration file",
		Category: flags.MiscCategory,
	}

	dumpConfigCommand = &cli.Command{
		Action:      dumpConfig,
		Name:        "dumpconfig",
		Usage:       "Export configuration values in a TOML format",
		ArgsUsage:   "<dumpfile (optional)>",
		Description: `Export configuration values in TOML format (to stdout by default).`,
	}
)

// These settings ensure that TOML keys use the same names as Go struct fields.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		var link string
		if unicode.IsUpper(rune(rt.Name()[0])) && rt.PkgPath() != "main" {
			link = fmt.Sprintf(", see https://godoc.org/%s#%s for available fields", rt.PkgPath(), rt.Name())
		}
		return fmt.Errorf("field '%s' is not defined in %s%s", field, rt.String(), link)
	},
}

// NodeConfig selects the Thor node the commands talk to.
type NodeConfig struct {
	URL               string        `toml:",omitempty"`
	RequestsPerSecond float64       // 0 means unlimited
	Timeout           time.Duration // per request
}

// KeystoreConfig locates the key directory and sets the scrypt cost of new keys.
type KeystoreConfig struct {
	Dir     string
	ScryptN int
	ScryptP int
}

// NetworkConfig names the target network.
type NetworkConfig struct {
	Name     string
	ChainTag uint8 `toml:",omitempty"`
}

type thorsdkConfig struct {
	Node     NodeConfig
	Keystore KeystoreConfig
	Network  NetworkConfig
}

func defaultConfig() thorsdkConfig {
	return thorsdkConfig{
		Node: NodeConfig{
			Timeout: 20 * time.Second,
		},
		Keystore: KeystoreConfig{
			Dir:     flags.ExpandPath(utils.DefaultKeyStoreDir),
			ScryptN: keystore.StandardScryptConfig.N,
			ScryptP: keystore.StandardScryptConfig.P,
		},
		Network: NetworkConfig{
			Name: utils.NetworkFlag.Value,
		},
	}
}

func loadConfig(file string, cfg *thorsdkConfig) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	err = tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(cfg)
	// Add file name to errors that have a line number.
	if _, ok := err.(*toml.LineError); ok {
		err = errors.New(file + ", " + err.Error())
	}
	return err
}

// loadBaseConfig loads the thorsdkConfig based on the given command line
// parameters and config file.
func loadBaseConfig(ctx *cli.Context) (thorsdkConfig, error) {
	// Load defaults
	cfg := defaultConfig()

	// Load config file.
	if file := ctx.String(configFileFlag.Name); file != "" {
		if err := loadConfig(file, &cfg); err != nil {
			return cfg, err
		}
	}

	// Apply flags.
	if ctx.IsSet(utils.NetworkFlag.Name) {
		cfg.Network = NetworkConfig{Name: ctx.String(utils.NetworkFlag.Name)}
		cfg.Node.URL = ""
	}
	if ctx.IsSet(utils.NodeURLFlag.Name) {
		cfg.Node.URL = ctx.String(utils.NodeURLFlag.Name)
	}
	if ctx.IsSet(utils.RateLimitFlag.Name) {
		cfg.Node.RequestsPerSecond = ctx.Float64(utils.RateLimitFlag.Name)
	}
	if ctx.IsSet(utils.TimeoutFlag.Name) {
		cfg.Node.Timeout = ctx.Duration(utils.TimeoutFlag.Name)
	}
	if ctx.IsSet(utils.ChainTagFlag.Name) {
		cfg.Network.ChainTag = uint8(ctx.Uint(utils.ChainTagFlag.Name))
	}
	if dir := flags.Path(ctx, utils.KeyStoreDirFlag.Name); dir != "" {
		cfg.Keystore.Dir = dir
	}
	if ctx.Bool(utils.LightKDFFlag.Name) {
		cfg.Keystore.ScryptN = keystore.LightScryptConfig.N
		cfg.Keystore.ScryptP = keystore.LightScryptConfig.P
	}

	// Fill what is still open from the well-known network.
	network, err := params.NetworkByName(cfg.Network.Name)
	if err != nil {
		return cfg, err
	}
	cfg.Network.Name = network.Name
	if cfg.Network.ChainTag == 0 {
		cfg.Network.ChainTag = network.ChainTag
	}
	if cfg.Node.URL == "" {
		cfg.Node.URL = network.NodeURL
	}
	return cfg, nil
}

func (cfg *thorsdkConfig) scryptConfig() keystore.ScryptConfig {
	sc := keystore.StandardScryptConfig
	sc.N, sc.P = cfg.Keystore.ScryptN, cfg.Keystore.ScryptP
	return sc
}

func (cfg *thorsdkConfig) keyStore() *keystore.KeyStore {
	return keystore.NewKeyStore(cfg.Keystore.Dir, cfg.scryptConfig())
}

func (cfg *thorsdkConfig) client() (*thorclient.Client, error) {
	return thorclient.New(cfg.Node.URL,
		thorclient.WithTimeout(cfg.Node.Timeout),
		thorclient.WithRateLimit(cfg.Node.RequestsPerSecond),
	)
}

// dumpConfig is the dumpconfig command.
func dumpConfig(ctx *cli.Context) error {
	cfg, err := loadBaseConfig(ctx)
	if err != nil {
		return err
	}
	out, err := tomlSettings.Marshal(&cfg)
	if err != nil {
		return err
	}

	dump := ctx.App.Writer
	if ctx.NArg() > 0 {
		f, err := os.OpenFile(ctx.Args().Get(0), os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return err
		}
		defer f.Close()
		dump = f
	}
	_, err = io.WriteString(dump, string(out))
	return err
}
