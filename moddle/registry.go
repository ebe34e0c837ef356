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
	"sync"

	"github.com/tidwall/btree"
)

// TypeDescriptor describes a moddle type.
type TypeDescriptor struct {
	Name string
	// SuperClass lists the direct super types.
	SuperClass []string
	// Lists names the properties holding collections of elements.
	Lists []string
	// References names the properties pointing at elements owned elsewhere
	// in the tree. They serialize as the referenced id.
	References []string
	// Booleans names the attributes decoded as booleans.
	Booleans []string
}

// Registry holds the known types and their inheritance.
type Registry struct {
	sync.RWMutex
	types btree.Map[string, *TypeDescriptor]
}

func NewRegistry(types ...*TypeDescriptor) *Registry {
	r := &Registry{}
	r.Register(types...)
	return r
}

func (r *Registry) Register(types ...*TypeDescriptor) {
	r.Lock()
	defer r.Unlock()
	for _, t := range types {
		r.types.Set(t.Name, t)
	}
}

func (r *Registry) Lookup(name string) (*TypeDescriptor, bool) {
	r.RLock()
	defer r.RUnlock()
	return r.types.Get(name)
}

// Types returns the registered type names in order.
func (r *Registry) Types() []string {
	r.RLock()
	defer r.RUnlock()
	names := make([]string, 0, r.types.Len())
	r.types.Scan(func(name string, _ *TypeDescriptor) bool {
		names = append(names, name)
		return true
	})
	return names
}

// IsType reports whether typ equals super or inherits from it.
func (r *Registry) IsType(typ, super string) bool {
	if typ == "" || super == "" {
		return false
	}
	if typ == super {
		return true
	}
	found := false
	r.walk(typ, map[string]struct{}{}, func(t *TypeDescriptor) bool {
		if t.Name == super {
			found = true
			return false
		}
		return true
	})
	return found
}

// Is reports whether node is of type typ, directly or by inheritance.
func (r *Registry) Is(node Typed, typ string) bool {
	if node == nil {
		return false
	}
	return r.IsType(node.Type(), typ)
}

func (r *Registry) IsList(typ, prop string) bool {
	return r.has(typ, func(t *TypeDescriptor) []string { return t.Lists }, prop)
}

func (r *Registry) IsReference(typ, prop string) bool {
	if r == nil {
		return Default.IsReference(typ, prop)
	}
	return r.has(typ, func(t *TypeDescriptor) []string { return t.References }, prop)
}

func (r *Registry) IsBoolean(typ, prop string) bool {
	return r.has(typ, func(t *TypeDescriptor) []string { return t.Booleans }, prop)
}

func (r *Registry) has(typ string, names func(*TypeDescriptor) []string, prop string) bool {
	found := false
	r.walk(typ, map[string]struct{}{}, func(t *TypeDescriptor) bool {
		for _, name := range names(t) {
			if name == prop {
				found = true
				return false
			}
		}
		return true
	})
	return found
}

func (r *Registry) walk(typ string, seen map[string]struct{}, fn func(*TypeDescriptor) bool) bool {
	if _, ok := seen[typ]; ok {
		return true
	}
	seen[typ] = struct{}{}

	t, ok := r.Lookup(typ)
	if !ok {
		return true
	}
	if !fn(t) {
		return false
	}
	for _, super := range t.SuperClass {
		if !r.walk(super, seen, fn) {
			return false
		}
	}
	return true
}

// Typed is implemented by anything carrying a moddle $type.
type Typed interface {
	Type() string
}

// Is checks node against the Default registry.
func Is(node Typed, typ string) bool {
	return Default.Is(node, typ)
}

// IsAny reports whether node matches one of types.
func IsAny(node Typed, types ...string) bool {
	for _, typ := range types {
		if Is(node, typ) {
			return true
		}
	}
	return false
}

// Default knows the BPMN 2.0 and Camunda extension types.
var Default = NewRegistry(append(bpmnTypes(), camundaTypes()...)...)
