// Copyright (c) 2024 The btcscript developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package btcscript

import (
	"testing"
)

// TestErrorCodeStringer tests the stringized output for the ErrorCode type.
func TestErrorCodeStringer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   ErrorCode
		want string
	}{
		{ErrInternal, "ErrInternal"},
		{ErrUnsupportedScriptVersion, "ErrUnsupportedScriptVersion"},
		{ErrMissingDataLength, "ErrMissingDataLength"},
		{ErrTruncatedDataLength, "ErrTruncatedDataLength"},
		{ErrTruncatedData, "ErrTruncatedData"},
		{ErrNumberTooBig, "ErrNumberTooBig"},
		{ErrMinimalData, "ErrMinimalData"},
		{ErrInvalidElementType, "ErrInvalidElementType"},
		{0xffff, "Unknown ErrorCode (65535)"},
	}

	// Detect additional error codes that don't have the stringer added.
	if len(tests)-1 != int(numErrorCodes) {
		t.Errorf("It appears an error code was added without adding an " +
			"associated stringer test")
	}

	t.Logf("Running %d tests", len(tests))
	for i, test := range tests {
		result := test.in.String()
		if result != test.want {
			t.Errorf("String #%d\n got: %s want: %s", i, result,
				test.want)
			continue
		}
	}
}

// TestError tests the error output for the Error type.
func TestError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   Error
		want string
	}{
		{
			Error{Description: "some error"},
			"some error",
		},
		{
			Error{Description: "human-readable error"},
			"human-readable error",
		},
	}

	t.Logf("Running %d tests", len(tests))
	for i, test := range tests {
		result := test.in.Error()
		if result != test.want {
			t.Errorf("Error #%d\n got: %s want: %s", i, result,
				test.want)
			continue
		}
	}
}

// TestIsErrorCode ensures IsErrorCode matches on the exact code and rejects
// other codes and foreign error types.
func TestIsErrorCode(t *testing.T) {
	t.Parallel()

	err := scriptError(ErrTruncatedData, "test error")
	if !IsErrorCode(err, ErrTruncatedData) {
		t.Error("IsErrorCode rejected an error with a matching code")
	}
	if IsErrorCode(err, ErrMissingDataLength) {
		t.Error("IsErrorCode accepted an error with a different code")
	}
	if IsErrorCode(nil, ErrTruncatedData) {
		t.Error("IsErrorCode accepted a nil error")
	}
}
