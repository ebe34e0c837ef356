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

package propanel

import (
	"github.com/vine-io/propanel/moddle"
	"github.com/vine-io/propanel/template"
)

// Entry is a property of a template bound to one diagram element.
type Entry struct {
	ID          string
	Label       string
	Description string
	Kind        template.PropertyType
	Choices     []template.Choice
	Editable    bool
	Property    *template.Property

	panel *Panel
	shape *moddle.Shape
}

func (p *Panel) newEntry(shape *moddle.Shape, prop *template.Property) *Entry {
	kind := prop.Type
	if kind == "" {
		kind = template.String
	}
	return &Entry{
		ID:          prop.ID(),
		Label:       prop.Label,
		Description: prop.Description,
		Kind:        kind,
		Choices:     prop.Choices,
		Editable:    prop.Editable,
		Property:    prop,
		panel:       p,
		shape:       shape,
	}
}

// Get reads the current value of the entry.
func (e *Entry) Get() (any, error) {
	return e.panel.resolver.Get(e.shape, e.Property)
}

// Set writes value through the command stack. Writing the value the element
// already holds executes nothing.
func (e *Entry) Set(value any) error {
	if !e.Editable {
		return ErrNotEditable
	}
	cmd, err := e.panel.resolver.Set(e.shape, e.Property, value)
	if err != nil {
		return err
	}
	if cmd == nil {
		return nil
	}
	return e.panel.stack.Execute(cmd.Name, cmd.Context)
}
