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
	"reflect"

	"github.com/vine-io/propanel/command"
	"github.com/vine-io/propanel/moddle"
)

// change collects the property updates of one Set call. Reads through a
// change see the pending values, so a Set can build on structures it
// created itself without writing to the tree.
type change struct {
	shape   *moddle.Shape
	order   []*moddle.Element
	updates map[*moddle.Element]map[string]any
}

func newChange(shape *moddle.Shape) *change {
	return &change{shape: shape, updates: map[*moddle.Element]map[string]any{}}
}

func (c *change) get(el *moddle.Element, name string) any {
	if props, ok := c.updates[el]; ok {
		if v, ok := props[name]; ok {
			return v
		}
	}
	return el.Get(name)
}

func (c *change) getString(el *moddle.Element, name string) string {
	v, _ := c.get(el, name).(string)
	return v
}

func (c *change) element(el *moddle.Element, name string) *moddle.Element {
	child, _ := c.get(el, name).(*moddle.Element)
	return child
}

func (c *change) list(el *moddle.Element, name string) []*moddle.Element {
	list, _ := c.get(el, name).([]*moddle.Element)
	out := make([]*moddle.Element, len(list))
	copy(out, list)
	return out
}

// set records name=value for el unless el already holds value. A nil value
// removes the property.
func (c *change) set(el *moddle.Element, name string, value any) {
	if sameValue(c.get(el, name), value) {
		return
	}
	props, ok := c.updates[el]
	if !ok {
		props = map[string]any{}
		c.updates[el] = props
		c.order = append(c.order, el)
	}
	props[name] = value
}

// command packages the recorded updates, one updateModdleProperties per
// touched element in the order they were first touched.
func (c *change) command() *command.Command {
	cmds := make([]*command.Command, 0, len(c.order))
	for _, el := range c.order {
		cmds = append(cmds, command.New(command.UpdateModdleProperties, &command.Context{
			Element:       c.shape,
			ModdleElement: el,
			Properties:    c.updates[el],
		}))
	}
	return command.Multi(cmds...)
}

func sameValue(a, b any) bool {
	switch av := a.(type) {
	case nil:
		return b == nil
	case *moddle.Element:
		bv, ok := b.(*moddle.Element)
		return ok && av == bv
	case []*moddle.Element:
		bv, ok := b.([]*moddle.Element)
		return ok && sameElements(av, bv)
	}
	if b == nil {
		return false
	}
	if !reflect.TypeOf(a).Comparable() || !reflect.TypeOf(b).Comparable() {
		return false
	}
	return a == b
}

func sameElements(a, b []*moddle.Element) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
