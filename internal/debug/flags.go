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


// Package debug configures logging for the command line tools.
package debug

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ethereum/go-ethereum/log"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"
	"github.com/vechain/thor-sdk-go/internal/flags"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	verbosityFlag = &cli.IntFlag{
		Name:     "verbosity",
		Usage:    "Logging verbosity: 0=silent, 1=error, 2=warn, 3=info, 4=debug, 5=detail",
		Value:    3,
		Category: flags.LoggingCategory,
	}
	logVmoduleFlag = &cli.StringFlag{
		Name:     "log.vmodule",
		Usage:    "Per-module verbosity: comma-separated list of <pattern>=<level> (e.g. thorclient/*=5)",
		Category: flags.LoggingCategory,
	}
	logFormatFlag = &cli.StringFlag{
		Name:     "log.format",
		Usage:    "Log format to use (json|logfmt|terminal)",
		Value:    "terminal",
		Category: flags.LoggingCategory,
	}
	logFileFlag = &cli.StringFlag{
		Name:     "log.file",
		Usage:    "Also write logs to this file, appending to it",
		Category: flags.LoggingCategory,
	}

	// Rotation of --log.file, handled by lumberjack.
	logRotateFlag = &cli.BoolFlag{
		Name:     "log.rotate",
		Usage:    "Rotate the log file, by default in the temp dir when --log.file is not given",
		Category: flags.LoggingCategory,
	}
	logMaxSizeMBsFlag = &cli.IntFlag{
		Name:     "log.maxsize",
		Usage:    "Size in MBs at which a log file is rotated",
		Value:    100,
		Category: flags.LoggingCategory,
	}
	logMaxBackupsFlag = &cli.IntFlag{
		Name:     "log.maxbackups",
		Usage:    "Number of rotated log files to keep",
		Value:    10,
		Category: flags.LoggingCategory,
	}
	logMaxAgeFlag = &cli.IntFlag{
		Name:     "log.maxage",
		Usage:    "Days to keep a rotated log file",
		Value:    30,
		Category: flags.LoggingCategory,
	}
	logCompressFlag = &cli.BoolFlag{
		Name:     "log.compress",
		Usage:    "Gzip rotated log files",
		Category: flags.LoggingCategory,
	}
)

// Flags holds all command-line flags required for logging.
// Flags 包含所有用于日志配置的命令行标志。
var Flags = []cli.Flag{
	verbosityFlag,
	logVmoduleFlag,
	logFormatFlag,
	logFileFlag,
	logRotateFlag,
	logMaxSizeMBsFlag,
	logMaxBackupsFlag,
	logMaxAgeFlag,
	logCompressFlag,
}

// logFile is the file opened by Setup, closed by Exit.
var logFile io.WriteCloser

// handlers maps --log.format values to handler constructors.
var handlers = map[string]func(w io.Writer, useColor bool) slog.Handler{
	"json":     func(w io.Writer, _ bool) slog.Handler { return log.JSONHandler(w) },
	"logfmt":   func(w io.Writer, _ bool) slog.Handler { return log.LogfmtHandler(w) },
	"terminal": func(w io.Writer, useColor bool) slog.Handler { return log.NewTerminalHandler(w, useColor) },
}

// Setup installs the default logger described by the logging flags. It runs
// in the Before hook of thorsdk, ahead of every command.
// Setup 根据日志标志安装默认日志记录器，在每个命令之前运行。
func Setup(ctx *cli.Context) error {
	format := ctx.String(logFormatFlag.Name)
	if format == "" {
		format = "terminal"
	}
	newHandler, ok := handlers[format]
	if !ok {
		return fmt.Errorf("unknown log format: %v", format)
	}
	file, err := openLogFile(ctx)
	if err != nil {
		return err
	}

	var (
		stderr   io.Writer = os.Stderr
		useColor           = format == "terminal" && isColorTerminal(os.Stderr)
	)
	if useColor {
		stderr = colorable.NewColorableStderr()
	}
	output := stderr
	if file != nil {
		output = io.MultiWriter(file, stderr)
	}

	glogger := log.NewGlogHandler(newHandler(output, useColor))
	glogger.Verbosity(log.FromLegacyLevel(ctx.Int(verbosityFlag.Name)))
	if err := glogger.Vmodule(ctx.String(logVmoduleFlag.Name)); err != nil {
		closeLogFile()
		return fmt.Errorf("invalid --%s: %v", logVmoduleFlag.Name, err)
	}
	log.SetDefault(log.NewLogger(glogger))

	if file != nil {
		log.Info("Logging configured", "format", format, "rotate", ctx.Bool(logRotateFlag.Name), "location", logLocation(ctx))
	}
	return nil
}

// Exit closes the log file, if any.
// Exit 关闭日志文件。
func Exit() {
	closeLogFile()
}

func closeLogFile() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

// openLogFile opens the file named by --log.file, or a lumberjack logger when
// rotation is on. It returns nil when logs only go to stderr.
func openLogFile(ctx *cli.Context) (io.WriteCloser, error) {
	name := ctx.String(logFileFlag.Name)
	if name != "" {
		if err := validateLogLocation(filepath.Dir(name)); err != nil {
			return nil, fmt.Errorf("failed to initialize file logger: %v", err)
		}
	}
	switch {
	case ctx.Bool(logRotateFlag.Name):
		logFile = &lumberjack.Logger{
			Filename:   name, // lumberjack picks <process>-lumberjack.log in the temp dir if empty
			MaxSize:    ctx.Int(logMaxSizeMBsFlag.Name),
			MaxBackups: ctx.Int(logMaxBackupsFlag.Name),
			MaxAge:     ctx.Int(logMaxAgeFlag.Name),
			Compress:   ctx.Bool(logCompressFlag.Name),
		}
	case name != "":
		f, err := os.OpenFile(name, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, err
		}
		logFile = f
	default:
		return nil, nil
	}
	return logFile, nil
}

func logLocation(ctx *cli.Context) string {
	if name := ctx.String(logFileFlag.Name); name != "" {
		return name
	}
	return filepath.Join(os.TempDir(), filepath.Base(os.Args[0])+"-lumberjack.log")
}

func isColorTerminal(f *os.File) bool {
	fd := f.Fd()
	return (isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)) && os.Getenv("TERM") != "dumb"
}

// validateLogLocation creates the log directory and checks that it is writable.
func validateLogLocation(dir string) error {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("error creating the directory: %w", err)
	}
	f, err := os.CreateTemp(dir, ".thorsdk-log-*")
	if err != nil {
		return err
	}
	f.Close()
	return os.Remove(f.Name())
}
