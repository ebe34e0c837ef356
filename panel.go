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

// Package propanel exposes element templates as property panel entries of
// BPMN diagram elements.
//
// A Panel validates template descriptors into a store, lists the templates
// applicable to an element, applies a template in one undoable transaction
// and turns its properties into entries which read and write the business
// object through the binding resolver.
package propanel

//go:generate mockgen -destination internal/mock/command_stack.go -package mock github.com/vine-io/propanel CommandStack

import (
	"errors"
	"strconv"

	"github.com/vine-io/propanel/binding"
	"github.com/vine-io/propanel/command"
	"github.com/vine-io/propanel/moddle"
	"github.com/vine-io/propanel/template"
)

const (
	// ApplyCommand applies the template carried in Context.Extra to
	// Context.Element.
	ApplyCommand = "element-templates.apply"

	TemplateAttr        = "camunda:modelerTemplate"
	TemplateVersionAttr = "camunda:modelerTemplateVersion"
)

var ErrNotEditable = errors.New("property is not editable")

// CommandStack executes the commands produced by the panel.
type CommandStack interface {
	Register(name string, handler command.Handler)
	Execute(name string, ctx *command.Context) error
}

var _ CommandStack = (*command.Stack)(nil)

type Panel struct {
	options  *Options
	stack    CommandStack
	store    *template.Store
	reg      *moddle.Registry
	resolver *binding.Resolver
}

// New returns a Panel executing its commands on stack and registers the
// apply command there.
func New(stack CommandStack, opts ...Option) *Panel {
	options := NewOptions(opts...)
	p := &Panel{
		options:  options,
		stack:    stack,
		store:    template.NewStore(),
		reg:      options.Factory.Registry(),
		resolver: binding.New(binding.WithFactory(options.Factory)),
	}
	stack.Register(ApplyCommand, &applyHandler{stack: stack, resolver: p.resolver})
	return p
}

// Load validates descriptors, a sequence of template descriptors, and adds
// the valid templates to the store. It returns the validation errors.
func (p *Panel) Load(descriptors any) []error {
	v := template.NewValidator(p.options.ValidatorOptions...).AddAll(descriptors)
	for _, tpl := range v.ValidTemplates() {
		p.store.Add(tpl)
	}
	return v.Errors()
}

func (p *Panel) Store() *template.Store {
	return p.store
}

// Templates returns the latest version of every stored template applicable
// to the element of shape.
func (p *Panel) Templates(shape *moddle.Shape) []*template.Template {
	out := make([]*template.Template, 0)
	for _, tpl := range p.store.List() {
		if latest, ok := p.store.Latest(tpl.ID); !ok || latest != tpl {
			continue
		}
		for _, typ := range tpl.AppliesTo {
			if p.Is(shape, typ) {
				out = append(out, tpl)
				break
			}
		}
	}
	return out
}

// Is reports whether the business object of shape is of type typ.
func (p *Panel) Is(shape *moddle.Shape, typ string) bool {
	return p.reg.Is(moddle.GetBusinessObject(shape), typ)
}

// TemplateOf returns the template applied to the element of shape.
func (p *Panel) TemplateOf(shape *moddle.Shape) (*template.Template, bool) {
	bo := moddle.GetBusinessObject(shape)
	id := bo.GetString(TemplateAttr)
	if id == "" {
		return nil, false
	}

	version := 0
	if v := bo.GetString(TemplateVersionAttr); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, false
		}
		version = n
	}
	return p.store.Get(id, version)
}

// Apply sets tpl on the element of shape and writes the default value of
// every property, as a single transaction.
func (p *Panel) Apply(shape *moddle.Shape, tpl *template.Template) error {
	return p.stack.Execute(ApplyCommand, &command.Context{Element: shape, Extra: tpl})
}

// Entries returns one entry per property of tpl, the top level properties
// first.
func (p *Panel) Entries(shape *moddle.Shape, tpl *template.Template) []*Entry {
	props := tpl.AllProperties()
	entries := make([]*Entry, 0, len(props))
	for _, prop := range props {
		entries = append(entries, p.newEntry(shape, prop))
	}
	return entries
}
