// Copyright (c) 2024 The btcscript developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package btcscript

import (
	"bytes"
	"fmt"
	"strings"
)

const (
	// maxScriptSize is the maximum allowed length of a raw script.
	maxScriptSize = 10000

	// MaxScriptElementSize is the maximum number of bytes pushable to the
	// stack.
	MaxScriptElementSize = 520
)

// Script is a serialized script.  The underlying bytes are stored verbatim
// with no validation, so a Script may hold a malformed serialization.  It is
// simultaneously an exact binary blob, compared byte for byte via Equal, and
// a lazily tokenizable sequence of opcodes via MakeScriptTokenizer.
//
// Construct one directly from raw bytes with a conversion, for example
// Script(rawBytes), or from heterogeneous elements with NewScript.
type Script []byte

// appendScriptInt appends the passed integer to dst using the most compact
// encoding.  Zero, negative one, and one through sixteen are represented by
// their dedicated opcodes, while all other values are encoded as a minimal
// data push of their script number serialization.
func appendScriptInt(dst []byte, val int64) []byte {
	if val == 0 {
		return append(dst, OP_0)
	}
	if val == -1 || (val >= 1 && val <= 16) {
		return append(dst, byte((OP_1-1)+val))
	}
	return appendRawPush(dst, scriptNum(val).Bytes())
}

// Append returns a new script consisting of the receiver followed by the
// serialization of the passed elements.  Each element must be one of:
//
//   - *Opcode: appended as its single opcode byte
//   - int or int64: encoded via the script number rules, with the small
//     integers -1 and 0 through 16 folded to their dedicated opcodes
//   - []byte: appended as a push of exactly those bytes using the smallest
//     push encoding for the length, with no small integer folding, so a
//     single zero byte becomes OP_DATA_1 0x00 rather than OP_0
//   - Script: appended verbatim with no push wrapping
//
// Any other element type, including an untyped nil, results in an error with
// the code ErrInvalidElementType.  The operation is atomic: on error the
// receiver is returned unchanged and no elements are appended, even those
// that preceded the offending element.
//
// The receiver itself is never modified.
func (s Script) Append(elems ...interface{}) (Script, error) {
	added := make([]byte, 0, defaultScriptAlloc)
	for _, elem := range elems {
		switch v := elem.(type) {
		case *Opcode:
			added = append(added, v.value)
		case int:
			added = appendScriptInt(added, int64(v))
		case int64:
			added = appendScriptInt(added, v)
		case []byte:
			added = appendRawPush(added, v)
		case Script:
			added = append(added, v...)
		default:
			str := fmt.Sprintf("cannot append element of type %T to a "+
				"script", elem)
			return s, scriptError(ErrInvalidElementType, str)
		}
	}

	result := make(Script, 0, len(s)+len(added))
	result = append(result, s...)
	result = append(result, added...)
	return result, nil
}

// NewScript returns a new script consisting of the serialization of the
// passed elements.  See Append for the supported element types and their
// encodings.
func NewScript(elems ...interface{}) (Script, error) {
	return Script(nil).Append(elems...)
}

// Equal returns whether the passed script is byte for byte identical to the
// receiver.  It never tokenizes either script, so it is well defined even for
// malformed serializations.  Distinct serializations of the same logical
// script, such as a minimal push versus a PUSHDATA1 push of the same payload,
// compare unequal.
func (s Script) Equal(other Script) bool {
	return bytes.Equal(s, other)
}

// decodeFailureKind returns a short human readable description of the kind of
// tokenization failure represented by the passed error.
func decodeFailureKind(err error) string {
	serr, ok := err.(Error)
	if !ok {
		return err.Error()
	}
	switch serr.ErrorCode {
	case ErrMissingDataLength:
		return "missing data length"
	case ErrTruncatedDataLength:
		return "truncated data length"
	case ErrTruncatedData:
		return "truncated data"
	case ErrUnsupportedScriptVersion:
		return "unsupported script version"
	}
	return serr.Description
}

// String returns a human readable rendering of the script in the form
// Script([elem, elem, ...]) with opcodes rendered by mnemonic, small integers
// by value, and pushed payloads as hex.  A zero length payload is rendered as
// <empty> so it remains visible in the output.  When the script fails to
// tokenize,
// the successfully decoded prefix is rendered followed by any partial payload
// bytes that were present and an inline <error: ...> diagnostic naming the
// failing opcode and the failure kind.  It never returns an error and never
// panics, regardless of how malformed the script is.
func (s Script) String() string {
	var buf strings.Builder
	buf.WriteString("Script([")

	first := true
	sep := func() {
		if !first {
			buf.WriteString(", ")
		}
		first = false
	}

	tokenizer := MakeScriptTokenizer(0, s)
	for tokenizer.Next() {
		sep()
		switch tokenizer.Kind() {
		case TokenNumber:
			fmt.Fprintf(&buf, "%d", tokenizer.Number())
		case TokenData:
			if data := tokenizer.Data(); len(data) > 0 {
				fmt.Fprintf(&buf, "0x%x", data)
			} else {
				buf.WriteString("<empty>")
			}
		default:
			buf.WriteString(tokenizer.Op().Name())
		}
	}
	if err := tokenizer.Err(); err != nil {
		if data := tokenizer.Data(); len(data) > 0 {
			sep()
			fmt.Fprintf(&buf, "0x%x", data)
		}
		sep()
		if idx := tokenizer.ByteIndex(); int(idx) < len(s) {
			op := OpcodeForValue(s[idx])
			fmt.Fprintf(&buf, "<error: %s: %s>", op.Name(),
				decodeFailureKind(err))
		} else {
			fmt.Fprintf(&buf, "<error: %s>", decodeFailureKind(err))
		}
	}

	buf.WriteString("])")
	return buf.String()
}

// DisasmString formats the script in one line printable format.  It passes
// through the tokenizer and therefore returns the disassembly up to the point
// of failure along with the tokenization error when the script is malformed.
// In that case the returned disassembly carries a trailing "[error]" marker.
func (s Script) DisasmString() (string, error) {
	var disbuf strings.Builder
	tokenizer := MakeScriptTokenizer(0, s)
	if tokenizer.Next() {
		disasmOpcode(&disbuf, tokenizer.Op(), tokenizer.Data(), true)
	}
	for tokenizer.Next() {
		disbuf.WriteByte(' ')
		disasmOpcode(&disbuf, tokenizer.Op(), tokenizer.Data(), true)
	}
	if tokenizer.Err() != nil {
		if tokenizer.ByteIndex() != 0 {
			disbuf.WriteByte(' ')
		}
		disbuf.WriteString("[error]")
	}
	return disbuf.String(), tokenizer.Err()
}

// IsPayToScriptHash returns whether the script is in the standard
// pay-to-script-hash (P2SH) format:
//
//	OP_HASH160 OP_DATA_20 <20-byte script hash> OP_EQUAL
//
// The match is exact, so a script pushing the 20 byte hash through one of the
// PUSHDATA forms instead of the direct length opcode is not P2SH.  Malformed
// scripts are simply not P2SH rather than an error.
func (s Script) IsPayToScriptHash() bool {
	return len(s) == 23 &&
		s[0] == OP_HASH160 &&
		s[1] == OP_DATA_20 &&
		s[22] == OP_EQUAL
}

// IsUnspendable returns whether the script is guaranteed to fail at execution
// due to beginning with OP_RETURN, which allows outputs bearing it to be
// pruned instantly when entering the UTXO set.  Anything after the leading
// OP_RETURN, including bytes that do not tokenize, is irrelevant.
func (s Script) IsUnspendable() bool {
	return len(s) > 0 && s[0] == OP_RETURN
}

// IsPushOnlyScript returns whether the script only pushes data, up to the
// point of failure when the script is malformed.
//
// Note that the dedicated small integer opcodes including OP_0, OP_1NEGATE,
// and OP_RESERVED are considered push operations per consensus rules.
func (s Script) IsPushOnlyScript() bool {
	tokenizer := MakeScriptTokenizer(0, s)
	for tokenizer.Next() {
		if tokenizer.Opcode() > OP_16 {
			return false
		}
	}
	return tokenizer.Err() == nil
}

// PushedData returns an array of byte slices containing any pushed data found
// in the script.  This includes OP_0, but not OP_1 through OP_16.
func (s Script) PushedData() ([][]byte, error) {
	var data [][]byte
	tokenizer := MakeScriptTokenizer(0, s)
	for tokenizer.Next() {
		if tokenizer.Data() != nil {
			data = append(data, tokenizer.Data())
		} else if tokenizer.Opcode() == OP_0 {
			data = append(data, nil)
		}
	}
	if err := tokenizer.Err(); err != nil {
		return nil, err
	}
	return data, nil
}
