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

func (r *Resolver) getProperty(shape *moddle.Shape, prop *template.Property, b *template.PropertyBinding) (any, error) {
	target, err := r.lookupTarget(shape, prop)
	if err != nil {
		return nil, err
	}

	v := target.Get(b.Name)
	if prop.Type == template.Boolean {
		return boolean(b.Type(), v)
	}
	switch v.(type) {
	case *moddle.Element, []*moddle.Element:
		return nil, InvalidConfiguration(b.Type(), "attribute <%s> of <%s> is not a scalar", b.Name, target.Type())
	}
	return text(b.Type(), v)
}

func (r *Resolver) setProperty(c *change, prop *template.Property, b *template.PropertyBinding, value any) error {
	target, err := r.ensureTarget(c, prop)
	if err != nil {
		return err
	}

	switch target.Get(b.Name).(type) {
	case *moddle.Element, []*moddle.Element:
		return InvalidConfiguration(b.Type(), "attribute <%s> of <%s> is not a scalar", b.Name, target.Type())
	}

	if prop.Type == template.Boolean {
		v, err := boolean(b.Type(), value)
		if err != nil {
			return err
		}
		c.set(target, b.Name, v)
		return nil
	}

	v, err := text(b.Type(), value)
	if err != nil {
		return err
	}
	c.set(target, b.Name, v)
	return nil
}

func (r *Resolver) getCamundaProperty(shape *moddle.Shape, prop *template.Property, b *template.CamundaPropertyBinding) (any, error) {
	target, err := r.lookupTarget(shape, prop)
	if err != nil {
		return nil, err
	}

	holder := r.findExtension(target, "camunda:Properties")
	entry := r.entryOf(prop, holder.Children("values"))
	return entry.GetString("value"), nil
}

func (r *Resolver) setCamundaProperty(c *change, prop *template.Property, b *template.CamundaPropertyBinding, value any) error {
	v, err := text(b.Type(), value)
	if err != nil {
		return err
	}
	target, err := r.ensureTarget(c, prop)
	if err != nil {
		return err
	}

	ext, _ := r.ensureExtensionElements(c, target)
	holder, _ := r.findOrCreate(c, ext, "values", "camunda:Properties", map[string]any{"values": []*moddle.Element{}})
	r.store(c, prop, holder, "values", map[string]any{"value": v}, func() *moddle.Element {
		return r.factory.Create("camunda:Property", map[string]any{"name": b.Name, "value": v})
	})
	return nil
}
