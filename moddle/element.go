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

// Package moddle implements the typed business object tree element
// templates are bound to.
package moddle

import (
	"sort"
	"strconv"
)

// Element is a typed node of the business object tree. Properties are kept
// in insertion order so the tree serializes deterministically.
type Element struct {
	typ    string
	reg    *Registry
	props  map[string]any
	keys   []string
	parent *Element
}

func newElement(reg *Registry, typ string) *Element {
	if reg == nil {
		reg = Default
	}
	return &Element{typ: typ, reg: reg, props: map[string]any{}}
}

// Type returns the $type of the element, e.g. bpmn:ServiceTask.
func (e *Element) Type() string {
	if e == nil {
		return ""
	}
	return e.typ
}

func (e *Element) ID() string {
	return e.GetString("id")
}

func (e *Element) Parent() *Element {
	if e == nil {
		return nil
	}
	return e.parent
}

// Root walks the parent chain up to the top of the tree.
func (e *Element) Root() *Element {
	if e == nil {
		return nil
	}
	root := e
	for root.parent != nil {
		root = root.parent
	}
	return root
}

// Keys returns the names of the properties set on e in insertion order.
func (e *Element) Keys() []string {
	if e == nil {
		return nil
	}
	out := make([]string, len(e.keys))
	copy(out, e.keys)
	return out
}

func (e *Element) Has(name string) bool {
	if e == nil {
		return false
	}
	_, ok := e.props[name]
	return ok
}

func (e *Element) Get(name string) any {
	if e == nil {
		return nil
	}
	return e.props[name]
}

// GetString returns the scalar property name formatted as a string. Absent
// properties and element values yield "".
func (e *Element) GetString(name string) string {
	switch tt := e.Get(name).(type) {
	case string:
		return tt
	case bool:
		return strconv.FormatBool(tt)
	case int:
		return strconv.Itoa(tt)
	case int64:
		return strconv.FormatInt(tt, 10)
	case float64:
		return strconv.FormatFloat(tt, 'f', -1, 64)
	default:
		return ""
	}
}

func (e *Element) GetBool(name string) bool {
	switch tt := e.Get(name).(type) {
	case bool:
		return tt
	case string:
		b, _ := strconv.ParseBool(tt)
		return b
	default:
		return false
	}
}

// GetElement returns a single-valued child or reference.
func (e *Element) GetElement(name string) *Element {
	child, _ := e.Get(name).(*Element)
	return child
}

// Children returns a copy of the collection held by property name.
func (e *Element) Children(name string) []*Element {
	list, _ := e.Get(name).([]*Element)
	if len(list) == 0 {
		return nil
	}
	out := make([]*Element, len(list))
	copy(out, list)
	return out
}

// Set assigns property name. A nil value removes the property. Owned child
// elements are linked to e as their parent, references are left untouched.
//
// Set is meant for command handlers and the factory. Any other code should
// change the tree through a command stack so edits can be undone.
func (e *Element) Set(name string, value any) {
	if value == nil {
		e.unset(name)
		return
	}

	owned := !e.reg.IsReference(e.typ, name)
	switch tt := value.(type) {
	case *Element:
		if tt == nil {
			e.unset(name)
			return
		}
		if owned {
			tt.parent = e
		}
	case []*Element:
		list := make([]*Element, len(tt))
		copy(list, tt)
		if owned {
			for _, child := range list {
				child.parent = e
			}
		}
		value = list
	}

	if _, ok := e.props[name]; !ok {
		e.keys = append(e.keys, name)
	}
	e.props[name] = value
}

func (e *Element) unset(name string) {
	if _, ok := e.props[name]; !ok {
		return
	}
	delete(e.props, name)
	for i, key := range e.keys {
		if key == name {
			e.keys = append(e.keys[:i], e.keys[i+1:]...)
			break
		}
	}
}

// Walk visits e and every owned descendant depth first. Returning false from
// fn stops the walk.
func (e *Element) Walk(fn func(*Element) bool) bool {
	if e == nil {
		return true
	}
	if !fn(e) {
		return false
	}
	for _, key := range e.keys {
		if e.reg.IsReference(e.typ, key) {
			continue
		}
		switch tt := e.props[key].(type) {
		case *Element:
			if !tt.Walk(fn) {
				return false
			}
		case []*Element:
			for _, child := range tt {
				if !child.Walk(fn) {
					return false
				}
			}
		}
	}
	return true
}

// FindByID searches the subtree rooted at e for the element with the given id.
func (e *Element) FindByID(id string) *Element {
	var found *Element
	e.Walk(func(el *Element) bool {
		if el.ID() == id {
			found = el
			return false
		}
		return true
	})
	return found
}

func sortedKeys(props map[string]any) []string {
	keys := make([]string, 0, len(props))
	for key := range props {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
