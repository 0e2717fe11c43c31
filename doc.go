// Copyright (c) 2024 The btcscript developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package btcscript implements encoding and decoding of bitcoin transaction
scripts.

This package provides the Script value type along with the data structures
and functions needed to build, tokenize, disassemble, and structurally
inspect bitcoin transaction scripts.  It deliberately does not execute
scripts; it is concerned purely with their serialized representation.

# Script Overview

Bitcoin transaction scripts are written in a stack-based, FORTH-like
language and serialized as a byte sequence of opcodes, some of which carry
a data payload whose length is encoded either directly in the opcode byte
or in a little-endian length prefix (OP_PUSHDATA1, OP_PUSHDATA2,
OP_PUSHDATA4).

A given data payload has exactly one minimal (canonical) push encoding,
but the longer forms also decode successfully, so a script does not have a
unique byte representation for its logical content.  Protocol rules such
as pay-to-script-hash matching are defined over the exact serialized
bytes, which is why Script equality in this package is strictly
byte-for-byte and never based on decoded meaning.

Scripts may be constructed from arbitrary bytes, including bytes that do
not decode cleanly.  Validity is only checked when a script is tokenized,
and rendering a malformed script degrades gracefully by reporting the
decode failure inline rather than returning an error.

# Errors

Errors returned by this package are of type Error, which fully describes
the failure via its ErrorCode field.  The caller can programmatically
detect a specific failure with the IsErrorCode function.  The script
builder additionally returns ErrScriptNotCanonical when asked to produce
a script that would violate canonical form.
*/
package btcscript
