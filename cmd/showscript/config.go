// Copyright (c) 2024 The btcscript developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	flags "github.com/jessevdk/go-flags"
)

const (
	defaultDebugLevel = "info"
)

// config defines the configuration options for showscript.
//
// See loadConfig for details on the configuration load process.
type config struct {
	Assemble   string `short:"a" long:"assemble" description:"Assemble a script from space separated opcode names and hex pushes and print its hex serialization"`
	DebugLevel string `short:"d" long:"debuglevel" description:"Logging level {trace, debug, info, warn, error, critical}"`
	LogFile    string `long:"logfile" description:"Write log output to this rotated file in addition to stdout"`
	P2SH       string `long:"p2sh" description:"Hex-encoded redeem script to hash into a pay-to-script-hash output script"`
	Script     string `short:"s" long:"script" description:"Hex-encoded script to inspect"`
}

// validLogLevel returns whether or not logLevel is a valid debug log level.
func validLogLevel(logLevel string) bool {
	switch logLevel {
	case "trace", "debug", "info", "warn", "error", "critical":
		return true
	}
	return false
}

// loadConfig initializes and parses the config using command line options.
// Any remaining arguments are treated as hex-encoded scripts to inspect.
func loadConfig() (*config, []string, error) {
	// Default config.
	cfg := config{
		DebugLevel: defaultDebugLevel,
	}

	// Parse command line options.
	parser := flags.NewParser(&cfg, flags.Default)
	remainingArgs, err := parser.Parse()
	if err != nil {
		if e, ok := err.(*flags.Error); !ok || e.Type != flags.ErrHelp {
			parser.WriteHelp(os.Stderr)
		}
		return nil, nil, err
	}

	// Validate debug log level.
	if !validLogLevel(cfg.DebugLevel) {
		str := "%s: The specified debug level [%v] is invalid"
		err := fmt.Errorf(str, "loadConfig", cfg.DebugLevel)
		fmt.Fprintln(os.Stderr, err)
		parser.WriteHelp(os.Stderr)
		return nil, nil, err
	}

	// There must be something to do.
	if cfg.Script == "" && cfg.Assemble == "" && cfg.P2SH == "" &&
		len(remainingArgs) == 0 {

		str := "%s: One of --script, --assemble, --p2sh, or a positional " +
			"hex-encoded script is required"
		err := fmt.Errorf(str, "loadConfig")
		fmt.Fprintln(os.Stderr, err)
		parser.WriteHelp(os.Stderr)
		return nil, nil, err
	}

	return &cfg, remainingArgs, nil
}
