/*
 * dmd-core - Main process.
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package main

import (
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	getopt "github.com/pborman/getopt/v2"

	"github.com/sethm/dmd-core/command/console"
	"github.com/sethm/dmd-core/command/serialbridge"
	"github.com/sethm/dmd-core/config"
	"github.com/sethm/dmd-core/terminal"
	"github.com/sethm/dmd-core/util/logger"
)

var Logger *slog.Logger

func main() {
	optConfig := getopt.StringLong("config", 'c', "dmd.cfg", "Configuration file")
	optLogFile := getopt.StringLong("log", 'l', "", "Log file")
	optDebug := getopt.BoolLong("debug", 'd', "Echo debug-level log output to stderr")
	optInteractive := getopt.BoolLong("interactive", 'i', "Start the debug console instead of free-running")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	cfg := config.Defaults()
	if _, err := os.Stat(*optConfig); err == nil {
		loaded, err := config.Load(*optConfig)
		if err != nil {
			Logger = slog.New(logger.NewHandler(nil, nil, optDebug))
			Logger.Error("loading configuration", "error", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	logPath := *optLogFile
	if logPath == "" {
		logPath = cfg.LogFile
	}
	var logFile io.Writer
	if logPath != "" {
		f, err := os.Create(logPath)
		if err != nil {
			slog.Error("creating log file", "path", logPath, "error", err)
			os.Exit(1)
		}
		logFile = f
		defer f.Close()
	}

	programLevel := new(slog.LevelVar)
	programLevel.Set(slog.LevelDebug)
	Logger = slog.New(logger.NewHandler(logFile, &slog.HandlerOptions{Level: programLevel}, optDebug))
	slog.SetDefault(Logger)

	Logger.Info("dmd-core started", "rom_version", cfg.ROMVersion, "ram_size", cfg.RAMSize)

	term := terminal.New(cfg.RAMSize)
	if err := term.Reset(cfg.ROMVersion); err != nil {
		Logger.Error("reset", "error", err)
		os.Exit(1)
	}

	if cfg.NVRAMFile != "" {
		if data, err := os.ReadFile(cfg.NVRAMFile); err == nil {
			if err := term.SetNVRAM(data); err != nil {
				Logger.Warn("loading nvram", "path", cfg.NVRAMFile, "error", err)
			}
		} else if !os.IsNotExist(err) {
			Logger.Warn("reading nvram file", "path", cfg.NVRAMFile, "error", err)
		}
	}

	var bridge *serialbridge.Bridge
	if cfg.ConsolePort != "" {
		b, err := serialbridge.Open(cfg.ConsolePort, term)
		if err != nil {
			Logger.Error("opening serial bridge", "device", cfg.ConsolePort, "error", err)
			os.Exit(1)
		}
		bridge = b
		go bridge.Run()
		Logger.Info("serial bridge attached", "device", cfg.ConsolePort, "baud", cfg.BaudRate)
	}

	if *optInteractive {
		console.New(term).Run()
	} else {
		term.RunAsync(func(err error) {
			Logger.Error("cpu halted", "error", err)
		})

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		Logger.Info("shutting down")
	}

	term.Stop()
	if bridge != nil {
		bridge.Stop()
	}

	if cfg.NVRAMFile != "" {
		if err := os.WriteFile(cfg.NVRAMFile, term.GetNVRAM(), 0o600); err != nil {
			Logger.Error("saving nvram", "path", cfg.NVRAMFile, "error", err)
		}
	}
}
