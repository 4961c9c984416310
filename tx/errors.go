// Copyright 2024 The go-ethereum Authors
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

package tx

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTransactionField is returned for structurally invalid bodies and for
	// single-party signing of a delegated body.
	ErrInvalidTransactionField = errors.New("invalid transaction field")
	// ErrInvalidSignatureLength is returned when a signature does not have the
	// length required by the delegation flag of the body.
	ErrInvalidSignatureLength = errors.New("invalid signature length")
	// ErrNotDelegatedTransaction is returned by delegation-only operations
	// invoked on a transaction without the delegation feature.
	ErrNotDelegatedTransaction = errors.New("transaction is not delegated")
	// ErrUnavailableTransactionField is returned when a derived field needs a
	// signature that is not present yet.
	ErrUnavailableTransactionField = errors.New("transaction field unavailable")
	// ErrIntrinsicGasOverflow is returned when the intrinsic gas of the clauses
	// does not fit in 64 bits.
	ErrIntrinsicGasOverflow = errors.New("intrinsic gas overflow")
)

// FieldError describes a failed transaction operation. It names the operation and
// the offending field, and carries a snapshot of the body for diagnostics.
//
// FieldError 描述失败的交易操作，包含操作名、出错字段以及交易体快照。
type FieldError struct {
	Op     string // operation, e.g. "new", "decode", "sign"
	Field  string // offending field, e.g. "clauses.#1.value"
	Reason string
	Body   *Body
	Err    error // one of the sentinel errors above
}

func (e *FieldError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("tx %s: %v: %s", e.Op, e.Err, e.Reason)
	}
	return fmt.Sprintf("tx %s: %v: %s: %s", e.Op, e.Err, e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error { return e.Err }

func fieldError(op, field string, body *Body, err error, format string, args ...any) *FieldError {
	var snapshot *Body
	if body != nil {
		snapshot = body.Copy()
	}
	return &FieldError{Op: op, Field: field, Reason: fmt.Sprintf(format, args...), Body: snapshot, Err: err}
}
