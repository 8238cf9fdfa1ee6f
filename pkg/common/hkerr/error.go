// Copyright 2024 Hashlab
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package hkerr

import (
	"fmt"
)

const (
	// Ok is not an error.
	Ok uint16 = 0

	// Group 1: internal errors
	ErrInternal     uint16 = 20101
	ErrInvalidState uint16 = 20102

	// Group 2: dictionary lookup and placement
	ErrKeyNotFound      uint16 = 20201
	ErrCapacityExceeded uint16 = 20202
)

type errorMsgItem struct {
	errorMsgOrFormat string
}

var errorMsgRefer = map[uint16]errorMsgItem{
	ErrInternal:         {"internal error: %s"},
	ErrInvalidState:     {"invalid state %s"},
	ErrKeyNotFound:      {"key %d not found"},
	ErrCapacityExceeded: {"%s is full, capacity %d"},
}

func newError(code uint16, args ...any) *Error {
	item, has := errorMsgRefer[code]
	if !has {
		panic(fmt.Sprintf("not exist error code: %d", code))
	}
	if len(args) == 0 {
		return &Error{code: code, message: item.errorMsgOrFormat}
	}
	return &Error{code: code, message: fmt.Sprintf(item.errorMsgOrFormat, args...)}
}

type Error struct {
	code    uint16
	message string
}

func (e *Error) Error() string {
	return e.message
}

func (e *Error) ErrorCode() uint16 {
	return e.code
}

// IsCode reports whether e is a *Error carrying the given code.
// A nil error matches Ok only.
func IsCode(e error, rc uint16) bool {
	if e == nil {
		return rc == Ok
	}

	me, ok := e.(*Error)
	if !ok {
		// not one of ours
		return false
	}
	return me.code == rc
}

func IsKeyNotFound(e error) bool {
	return IsCode(e, ErrKeyNotFound)
}

func IsCapacityExceeded(e error) bool {
	return IsCode(e, ErrCapacityExceeded)
}

func NewInternalError(msg string, args ...any) *Error {
	return newError(ErrInternal, fmt.Sprintf(msg, args...))
}

func NewInvalidState(msg string, args ...any) *Error {
	return newError(ErrInvalidState, fmt.Sprintf(msg, args...))
}

func NewKeyNotFound(key uint32) *Error {
	return newError(ErrKeyNotFound, key)
}

func NewCapacityExceeded(what string, capacity int) *Error {
	return newError(ErrCapacityExceeded, what, capacity)
}
