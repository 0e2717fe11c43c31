// Copyright (c) 2024 The btcscript developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package btcscript

import (
	"fmt"
)

// ErrorCode identifies a kind of script error.
type ErrorCode int

// These constants are used to identify a specific Error.
const (
	// ErrInternal is returned if internal consistency checks fail.  In
	// practice this error should never be seen as it would mean there is an
	// error in the tokenizer logic.
	ErrInternal ErrorCode = iota

	// ErrUnsupportedScriptVersion is returned when an unsupported script
	// version is passed to a function which deals with specific script
	// versions.
	ErrUnsupportedScriptVersion

	// ErrMissingDataLength is returned when a script contains one of the
	// OP_PUSHDATA# opcodes, but none of the bytes that serialize the length
	// of the data to push are present.
	ErrMissingDataLength

	// ErrTruncatedDataLength is returned when a script contains one of the
	// OP_PUSHDATA# opcodes and some, but not all, of the bytes that
	// serialize the length of the data to push are present.
	ErrTruncatedDataLength

	// ErrTruncatedData is returned when a script push declares more data
	// bytes than remain in the script.
	ErrTruncatedData

	// ErrNumberTooBig is returned when the argument for an opcode that
	// expects numeric input is larger than the expected maximum number of
	// bytes.
	ErrNumberTooBig

	// ErrMinimalData is returned when the script contains push operations
	// that do not use the minimal opcode required.
	ErrMinimalData

	// ErrInvalidElementType is returned when a script is constructed or
	// extended with an element that is not an opcode, an integer, a byte
	// slice, or another script.
	ErrInvalidElementType

	// numErrorCodes is the maximum error code number used in tests.  This
	// entry MUST be the last entry in the enum.
	numErrorCodes
)

// Map of ErrorCode values back to their constant names for pretty printing.
var errorCodeStrings = map[ErrorCode]string{
	ErrInternal:                 "ErrInternal",
	ErrUnsupportedScriptVersion: "ErrUnsupportedScriptVersion",
	ErrMissingDataLength:        "ErrMissingDataLength",
	ErrTruncatedDataLength:      "ErrTruncatedDataLength",
	ErrTruncatedData:            "ErrTruncatedData",
	ErrNumberTooBig:             "ErrNumberTooBig",
	ErrMinimalData:              "ErrMinimalData",
	ErrInvalidElementType:       "ErrInvalidElementType",
}

// String returns the ErrorCode as a human-readable name.
func (e ErrorCode) String() string {
	if s := errorCodeStrings[e]; s != "" {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

// Error identifies a script-related error.  It is used to indicate errors
// during tokenization as well as element type errors during script
// construction.
//
// The caller can use type assertions to determine if an error is an Error and
// access the ErrorCode field to ascertain the specific reason for the failure.
type Error struct {
	ErrorCode   ErrorCode
	Description string
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	return e.Description
}

// scriptError creates an Error given a set of arguments.
func scriptError(c ErrorCode, desc string) Error {
	return Error{ErrorCode: c, Description: desc}
}

// IsErrorCode returns whether or not the provided error is a script error with
// the provided error code.
func IsErrorCode(err error, c ErrorCode) bool {
	serr, ok := err.(Error)
	return ok && serr.ErrorCode == c
}
