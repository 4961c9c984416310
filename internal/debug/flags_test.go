// Copyright 2016 The go-ethereum Authors
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

package debug

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func newContext(t *testing.T, args ...string) *cli.Context {
	t.Helper()
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	for _, f := range Flags {
		require.NoError(t, f.Apply(set))
	}
	require.NoError(t, set.Parse(args))
	return cli.NewContext(cli.NewApp(), set, nil)
}

func TestSetupLogFile(t *testing.T) {
	defer log.SetDefault(log.Root())
	file := filepath.Join(t.TempDir(), "logs", "thorsdk.log")

	ctx := newContext(t, "--log.format", "json", "--log.file", file, "--verbosity", "4")
	require.NoError(t, Setup(ctx))
	log.Debug("Sending transaction", "clauses", 2)
	Exit()

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"Sending transaction"`)
	assert.Contains(t, string(data), `"clauses":2`)
}

func TestSetupVerbosity(t *testing.T) {
	defer log.SetDefault(log.Root())
	file := filepath.Join(t.TempDir(), "quiet.log")

	ctx := newContext(t, "--log.format", "logfmt", "--log.file", file, "--verbosity", "2")
	require.NoError(t, Setup(ctx))
	log.Info("Hidden message")
	log.Warn("Visible message")
	Exit()

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "Hidden message")
	assert.Contains(t, string(data), "Visible message")
}

func TestSetupUnknownFormat(t *testing.T) {
	ctx := newContext(t, "--log.format", "xml")
	assert.ErrorContains(t, Setup(ctx), "unknown log format")
}

func TestSetupRotatedFile(t *testing.T) {
	defer log.SetDefault(log.Root())
	file := filepath.Join(t.TempDir(), "rotated.log")

	ctx := newContext(t, "--log.format", "logfmt", "--log.file", file, "--log.rotate", "--log.maxsize", "1")
	require.NoError(t, Setup(ctx))
	log.Info("Transaction sent", "id", "0x01")
	Exit()

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), "msg=\"Logging configured\"")
	assert.Contains(t, string(data), "rotate=true")
	assert.Contains(t, string(data), "msg=\"Transaction sent\"")
}

func TestSetupInvalidVmodule(t *testing.T) {
	file := filepath.Join(t.TempDir(), "vmodule.log")
	ctx := newContext(t, "--log.file", file, "--log.vmodule", "thorclient/*=x")
	assert.ErrorContains(t, Setup(ctx), "invalid --log.vmodule")
	// the file opened for the failed setup is released
	assert.Nil(t, logFile)
}
