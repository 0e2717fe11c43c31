// Copyright (c) 2024 The btcscript developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package btcscript

import (
	"encoding/binary"
	"fmt"
)

// TokenKind identifies the decoded form of the token most recently parsed by a
// tokenizer.  Every token is either a plain opcode, a pushed byte payload, or
// a small integer represented by one of the dedicated small-number opcodes
// (OP_1NEGATE, OP_0, and OP_1 through OP_16).
//
// Note that generic pushed payloads are never interpreted as numbers by the
// tokenizer, even when they happen to be valid minimal number encodings.
// Reinterpreting a payload as a number is an explicit choice made by the
// caller via makeScriptNum.
type TokenKind byte

// Constants for the kinds of tokens produced by a tokenizer.
const (
	// TokenOpcode is an opcode with no associated data.
	TokenOpcode TokenKind = iota

	// TokenData is a pushed byte payload from any of the push encodings
	// (OP_DATA_#, OP_PUSHDATA1, OP_PUSHDATA2, OP_PUSHDATA4).
	TokenData

	// TokenNumber is a small integer represented by one of the dedicated
	// small-number opcodes.
	TokenNumber
)

// ScriptTokenizer provides a facility for easily and efficiently tokenizing
// transaction scripts without creating allocations.  Each successive opcode is
// parsed with the Next function, which returns false when iteration is
// complete, either due to successfully tokenizing the entire script or
// encountering a parse error.  In the case of failure, the Err function may be
// used to obtain the specific parse error.
//
// Upon successfully parsing a token, its kind may be obtained via the Kind
// function, and the opcode, data, and small integer associated with it may be
// obtained via the Opcode, Data, and Number functions, respectively.
//
// A tokenizer instance is single pass.  A script remains tokenizable after a
// failed or finished iteration by obtaining a fresh tokenizer for it.
//
// The ByteIndex function may be used to obtain the tokenizer's current offset
// into the raw script.
type ScriptTokenizer struct {
	script  []byte
	version uint16
	offset  int32
	op      *Opcode
	data    []byte
	kind    TokenKind
	num     int64
	err     error
}

// Done returns true when either all opcodes have been exhausted or a parse
// failure was encountered and therefore the state has an associated error.
func (t *ScriptTokenizer) Done() bool {
	return t.err != nil || t.offset >= int32(len(t.script))
}

// Next attempts to parse the next opcode and returns whether or not it was
// successful.  It will not be successful if invoked when already at the end of
// the script, a parse failure is encountered, or an associated error already
// exists due to a previous parse failure.
//
// In the case of a true return, the parsed token can be obtained with the
// associated functions and the offset into the script will either point to
// the next opcode or the end of the script if the final opcode was parsed.
//
// In the case of a false return, the parsed opcode and data will be the last
// successfully parsed values (if any) and the offset into the script will
// either point to the failing opcode or the end of the script if the function
// was invoked when already at the end of the script.  One exception: when the
// failure is due to a push whose declared length exceeds the remaining bytes,
// Data returns the partial payload bytes that were actually present so that
// callers rendering diagnostics can show them.
//
// Invoking this function when already at the end of the script is not
// considered an error and will simply return false.
func (t *ScriptTokenizer) Next() bool {
	if t.Done() {
		return false
	}

	op := &opcodeArray[t.script[t.offset]]
	switch {
	// No additional data.  Note that some of the opcodes, notably OP_1NEGATE,
	// OP_0, and OP_[1-16] represent the data themselves and are yielded as
	// number tokens.
	case op.length == 1:
		t.offset++
		t.op = op
		t.data = nil
		switch {
		case op.value == OP_1NEGATE:
			t.kind = TokenNumber
			t.num = -1
		case IsSmallInt(op.value):
			t.kind = TokenNumber
			t.num = int64(AsSmallInt(op.value))
		default:
			t.kind = TokenOpcode
			t.num = 0
		}
		return true

	// Data pushes of specific lengths -- OP_DATA_[1-75].
	case op.length > 1:
		script := t.script[t.offset:]
		if len(script) < op.length {
			str := fmt.Sprintf("opcode %s pushes %d bytes, but script only "+
				"has %d remaining", op.name, op.length-1, len(script)-1)
			t.err = scriptError(ErrTruncatedData, str)
			t.data = script[1:]
			return false
		}

		// Move the offset forward and set the opcode and data accordingly.
		t.offset += int32(op.length)
		t.op = op
		t.data = script[1:op.length]
		t.kind = TokenData
		return true

	// Data pushes with parsed lengths -- OP_PUSHDATA{1,2,4}.
	case op.length < 0:
		script := t.script[t.offset+1:]
		if len(script) < -op.length {
			var code ErrorCode
			if len(script) == 0 {
				code = ErrMissingDataLength
			} else {
				code = ErrTruncatedDataLength
			}
			str := fmt.Sprintf("opcode %s requires %d length bytes, but "+
				"script only has %d remaining", op.name, -op.length,
				len(script))
			t.err = scriptError(code, str)
			t.data = nil
			return false
		}

		// Next -length bytes are little endian length of data.
		var dataLen int32
		switch op.length {
		case -1:
			dataLen = int32(script[0])
		case -2:
			dataLen = int32(binary.LittleEndian.Uint16(script[:2]))
		case -4:
			dataLen = int32(binary.LittleEndian.Uint32(script[:4]))
		default:
			str := fmt.Sprintf("invalid opcode length %d", op.length)
			t.err = scriptError(ErrInternal, str)
			return false
		}

		// Move to the beginning of the data.
		script = script[-op.length:]

		// Disallow entries that do not fit script or were sign extended.
		if dataLen > int32(len(script)) || dataLen < 0 {
			str := fmt.Sprintf("opcode %s pushes %d bytes, but script only "+
				"has %d remaining", op.name, dataLen, len(script))
			t.err = scriptError(ErrTruncatedData, str)
			t.data = script
			return false
		}

		// Move the offset forward and set the opcode and data accordingly.
		t.offset += 1 + int32(-op.length) + dataLen
		t.op = op
		t.data = script[:dataLen]
		t.kind = TokenData
		return true
	}

	// The only remaining case is an opcode with length zero which is
	// impossible since the opcode table has no such entries.
	panic("unreachable")
}

// Script returns the full script associated with the tokenizer.
func (t *ScriptTokenizer) Script() []byte {
	return t.script
}

// ByteIndex returns the current offset into the full script that will be parsed
// next and therefore also implies everything before it has already been parsed.
func (t *ScriptTokenizer) ByteIndex() int32 {
	return t.offset
}

// Opcode returns the current opcode associated with the tokenizer.
func (t *ScriptTokenizer) Opcode() byte {
	return t.op.value
}

// Op returns the interned opcode entry associated with the most recently
// parsed token.
func (t *ScriptTokenizer) Op() *Opcode {
	return t.op
}

// Data returns the data associated with the most recently successfully parsed
// opcode.  After a failed Next due to a push whose declared length exceeds the
// remaining bytes, it instead returns the partial payload bytes that were
// present.
func (t *ScriptTokenizer) Data() []byte {
	return t.data
}

// Kind returns the kind of the most recently parsed token.
func (t *ScriptTokenizer) Kind() TokenKind {
	return t.kind
}

// Number returns the small integer associated with the most recently parsed
// token.  It is only meaningful when Kind returns TokenNumber.
func (t *ScriptTokenizer) Number() int64 {
	return t.num
}

// Err returns any errors currently associated with the tokenizer.  This will
// only be non-nil in the case a parsing error was encountered.
func (t *ScriptTokenizer) Err() error {
	return t.err
}

// MakeScriptTokenizer returns a new instance of a script tokenizer.  Passing
// an unsupported script version will result in the returned tokenizer
// immediately having an err set accordingly.
//
// See the docs for ScriptTokenizer for more details.
func MakeScriptTokenizer(scriptVersion uint16, script []byte) ScriptTokenizer {
	// Only version 0 scripts are currently supported.
	var err error
	if scriptVersion != 0 {
		str := fmt.Sprintf("script version %d is not supported", scriptVersion)
		err = scriptError(ErrUnsupportedScriptVersion, str)
	}
	return ScriptTokenizer{version: scriptVersion, script: script, err: err}
}
