// Copyright (c) 2024 The btcscript developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/btcscript/btcscript"
	"github.com/btcsuite/btclog"
	"github.com/jrick/logrotate/rotator"
	"golang.org/x/crypto/ripemd160"
)

var (
	cfg *config
	log btclog.Logger

	// logRotator is one of the logging outputs.  It should be closed on
	// application shutdown.
	logRotator *rotator.Rotator
)

// logWriter implements an io.Writer that outputs to standard output and, when
// a log file is configured, the write-end pipe of an initialized log rotator.
type logWriter struct{}

func (logWriter) Write(p []byte) (n int, err error) {
	os.Stdout.Write(p)
	if logRotator != nil {
		logRotator.Write(p)
	}
	return len(p), nil
}

// hash160 returns ripemd160(sha256(b)), the hash committed to by a
// pay-to-script-hash output.
func hash160(b []byte) []byte {
	shaHash := sha256.Sum256(b)
	hasher := ripemd160.New()
	hasher.Write(shaHash[:])
	return hasher.Sum(nil)
}

// assembleScript builds a script from a source string of space separated
// opcode names, 0x-prefixed hex pushes, and decimal integers.
func assembleScript(source string) (btcscript.Script, error) {
	builder := btcscript.NewScriptBuilder()
	for _, tok := range strings.Fields(source) {
		if opcode, ok := btcscript.OpcodeByName[tok]; ok {
			builder.AddOp(opcode)
			continue
		}
		if strings.HasPrefix(tok, "0x") {
			data, err := hex.DecodeString(tok[2:])
			if err != nil {
				return nil, fmt.Errorf("invalid hex push %q: %v", tok, err)
			}
			builder.AddData(data)
			continue
		}
		if val, err := strconv.ParseInt(tok, 10, 64); err == nil {
			builder.AddInt64(val)
			continue
		}
		return nil, fmt.Errorf("unrecognized script element %q", tok)
	}
	script, err := builder.Script()
	if err != nil {
		return nil, err
	}
	return btcscript.Script(script), nil
}

// payToScriptHashScript returns the canonical pay-to-script-hash script
// committing to the passed redeem script.
func payToScriptHashScript(redeemScript []byte) (btcscript.Script, error) {
	script, err := btcscript.NewScriptBuilder().
		AddOp(btcscript.OP_HASH160).AddData(hash160(redeemScript)).
		AddOp(btcscript.OP_EQUAL).Script()
	if err != nil {
		return nil, err
	}
	return btcscript.Script(script), nil
}

// classify returns the structural classification of the passed script.
func classify(script btcscript.Script) string {
	switch {
	case script.IsPayToScriptHash():
		return "pay-to-script-hash"
	case script.IsUnspendable():
		return "unspendable"
	default:
		return "other"
	}
}

// inspectScript prints the details for the passed serialized script.
func inspectScript(script btcscript.Script) {
	disasm, err := script.DisasmString()
	if err != nil {
		log.Warnf("Script does not fully tokenize: %v", err)
	}

	fmt.Printf("length:   %d bytes\n", len(script))
	fmt.Printf("disasm:   %s\n", disasm)
	fmt.Printf("rendered: %s\n", script)
	fmt.Printf("class:    %s\n", classify(script))
	if pushOnly := script.IsPushOnlyScript(); pushOnly {
		fmt.Println("pushonly: true")
	}
}

// realMain is the real main function for the utility.  It is necessary to work
// around the fact that deferred functions do not run when os.Exit() is called.
func realMain() error {
	// Load configuration and parse command line.
	tcfg, remainingArgs, err := loadConfig()
	if err != nil {
		return err
	}
	cfg = tcfg

	// Setup logging, optionally rotated to a file.
	if cfg.LogFile != "" {
		logRotator, err = rotator.New(cfg.LogFile, 10*1024, false, 3)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to create log rotator: %v\n", err)
			return err
		}
		defer logRotator.Close()
	}
	backendLogger := btclog.NewBackend(logWriter{})
	defer os.Stdout.Sync()
	log = backendLogger.Logger("MAIN")
	level, _ := btclog.LevelFromString(cfg.DebugLevel)
	log.SetLevel(level)
	scriptLog := backendLogger.Logger("SCRP")
	scriptLog.SetLevel(level)
	btcscript.UseLogger(scriptLog)

	// Build and print a pay-to-script-hash script for the given redeem
	// script.
	if cfg.P2SH != "" {
		redeemScript, err := hex.DecodeString(cfg.P2SH)
		if err != nil {
			log.Errorf("Invalid redeem script hex: %v", err)
			return err
		}
		script, err := payToScriptHashScript(redeemScript)
		if err != nil {
			log.Errorf("Failed to build p2sh script: %v", err)
			return err
		}
		fmt.Printf("p2sh script: %x\n", []byte(script))
		inspectScript(script)
	}

	// Assemble a script from its textual form and print its serialization.
	if cfg.Assemble != "" {
		script, err := assembleScript(cfg.Assemble)
		if err != nil {
			log.Errorf("Failed to assemble script: %v", err)
			return err
		}
		fmt.Printf("assembled: %x\n", []byte(script))
		inspectScript(script)
	}

	// Inspect the explicitly provided script along with any positional
	// arguments.
	scriptArgs := remainingArgs
	if cfg.Script != "" {
		scriptArgs = append([]string{cfg.Script}, scriptArgs...)
	}
	for _, arg := range scriptArgs {
		scriptBytes, err := hex.DecodeString(arg)
		if err != nil {
			log.Errorf("Invalid script hex %q: %v", arg, err)
			return err
		}
		inspectScript(btcscript.Script(scriptBytes))
	}

	return nil
}

func main() {
	// Work around defer not working after os.Exit()
	if err := realMain(); err != nil {
		os.Exit(1)
	}
}
