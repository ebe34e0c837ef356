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
	"github.com/vine-io/propanel/moddle"
	"github.com/vine-io/propanel/template"
)

func (r *Resolver) getField(shape *moddle.Shape, prop *template.Property, b *template.FieldBinding) (any, error) {
	target, err := r.lookupTarget(shape, prop)
	if err != nil {
		return nil, err
	}

	field := r.entryOf(prop, target.GetElement("extensionElements").Children("values"))
	if b.Expression {
		return field.GetString("expression"), nil
	}
	return field.GetString("string"), nil
}

// setField stores value as the string or the expression of the field. The
// other form is cleared.
func (r *Resolver) setField(c *change, prop *template.Property, b *template.FieldBinding, value any) error {
	s, err := text(b.Type(), value)
	if err != nil {
		return err
	}
	target, err := r.ensureTarget(c, prop)
	if err != nil {
		return err
	}

	attrs := map[string]any{"string": s, "expression": nil}
	if b.Expression {
		attrs = map[string]any{"expression": s, "string": nil}
	}

	ext, _ := r.ensureExtensionElements(c, target)
	r.store(c, prop, ext, "values", attrs, func() *moddle.Element {
		props := map[string]any{"name": b.Name}
		for k, v := range attrs {
			if v != nil {
				props[k] = v
			}
		}
		return r.factory.Create("camunda:Field", props)
	})
	return nil
}
