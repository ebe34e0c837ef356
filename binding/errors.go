// MIT License
//
// Copyright (c) 2023 Lack
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package binding

import (
	"errors"
	"fmt"

	json "github.com/json-iterator/go"
	"github.com/vine-io/propanel/template"
)

type Code string

const (
	CodeUnknownBinding       Code = "unknown_binding"
	CodeInvalidConfiguration Code = "invalid_configuration"
	CodeNotFound             Code = "not_found"
	CodeInvalidValue         Code = "invalid_value"
)

func (c Code) String() string {
	switch c {
	case CodeUnknownBinding:
		return "Unknown Binding"
	case CodeInvalidConfiguration:
		return "Invalid Binding Configuration"
	case CodeNotFound:
		return "Binding Target Not Found"
	case CodeInvalidValue:
		return "Invalid Value"
	}
	return string(c)
}

// Error is returned by the resolver for bindings it cannot serve.
type Error struct {
	Code    Code                 `json:"code"`
	Binding template.BindingType `json:"binding,omitempty"`
	Detail  string               `json:"detail,omitempty"`
	Status  string               `json:"status,omitempty"`
}

func newError(code Code, b template.BindingType, format string, a ...interface{}) *Error {
	return &Error{
		Code:    code,
		Binding: b,
		Detail:  fmt.Sprintf(format, a...),
		Status:  code.String(),
	}
}

func (e Error) Error() string {
	data, _ := json.Marshal(e)
	return string(data)
}

// InvalidConfiguration reports a binding whose fields form no configuration
// the resolver knows how to read or write.
func InvalidConfiguration(b template.BindingType, format string, a ...interface{}) *Error {
	return newError(CodeInvalidConfiguration, b, format, a...)
}

// NotFound reports a missing structure the binding depends on.
func NotFound(b template.BindingType, format string, a ...interface{}) *Error {
	return newError(CodeNotFound, b, format, a...)
}

// InvalidValue reports a value that cannot be stored through the binding.
func InvalidValue(b template.BindingType, format string, a ...interface{}) *Error {
	return newError(CodeInvalidValue, b, format, a...)
}

func UnknownBinding(b template.BindingType) *Error {
	return newError(CodeUnknownBinding, b, "no resolver for binding type <%s>", b)
}

// IsCode reports whether err is a binding error of the given code.
func IsCode(err error, code Code) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}
