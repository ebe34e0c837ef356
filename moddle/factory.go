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

package moddle

import (
	"strings"

	"github.com/vine-io/pkg/xname"
)

// Factory creates elements bound to a registry.
type Factory struct {
	reg *Registry
}

func NewFactory(reg *Registry) *Factory {
	if reg == nil {
		reg = Default
	}
	return &Factory{reg: reg}
}

func (f *Factory) Registry() *Registry {
	return f.reg
}

// Create builds a detached element of typ with the given initial
// properties. Base elements without an id get a generated one.
func (f *Factory) Create(typ string, props map[string]any) *Element {
	el := newElement(f.reg, typ)
	if _, ok := props["id"]; !ok && f.reg.IsType(typ, "bpmn:BaseElement") {
		el.Set("id", NewID(typ))
	}
	for _, key := range sortedKeys(props) {
		el.Set(key, props[key])
	}
	return el
}

// NewID generates an id prefixed by the local name of typ, e.g. ServiceTask_1ab2c3d.
func NewID(typ string) string {
	prefix := typ
	if i := strings.Index(typ, ":"); i >= 0 {
		prefix = typ[i+1:]
	}
	return prefix + "_" + randName()
}

func randName() string {
	return xname.Gen(xname.C(7), xname.Lowercase(), xname.Digit())
}

// RandName returns a short random token used to build unique ids.
func RandName() string {
	return randName()
}
