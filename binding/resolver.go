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

// Package binding resolves template property bindings against the business
// object of a diagram element.
//
// Reads go straight to the moddle tree. Writes never touch it: Set returns
// the command that performs the change so it can be executed, undone and
// redone on a command stack.
package binding

import (
	"github.com/vine-io/propanel/command"
	"github.com/vine-io/propanel/moddle"
	"github.com/vine-io/propanel/template"
)

type Options struct {
	Factory *moddle.Factory
}

type Option func(*Options)

func NewOptions(opts ...Option) *Options {
	var options Options
	for _, o := range opts {
		o(&options)
	}

	if options.Factory == nil {
		options.Factory = moddle.NewFactory(nil)
	}

	return &options
}

// WithFactory sets the Factory field of *Options to the specified value.
func WithFactory(f *moddle.Factory) Option {
	return func(o *Options) {
		o.Factory = f
	}
}

// Resolver computes get and set for template properties.
type Resolver struct {
	factory *moddle.Factory
	reg     *moddle.Registry
}

func New(opts ...Option) *Resolver {
	options := NewOptions(opts...)
	return &Resolver{factory: options.Factory, reg: options.Factory.Registry()}
}

func (r *Resolver) is(el *moddle.Element, typ string) bool {
	return r.reg.Is(el, typ)
}

// Get reads the current value of prop from the element of shape. Values of
// Boolean properties bound to plain attributes are bools, everything else
// reads as a string except input parameters holding a list ([]string) or a
// map (map[string]string).
func (r *Resolver) Get(shape *moddle.Shape, prop *template.Property) (any, error) {
	if prop == nil || prop.Binding == nil {
		return nil, UnknownBinding("")
	}

	g := &getter{r: r, shape: shape, prop: prop}
	if err := prop.Binding.Accept(g); err != nil {
		return nil, err
	}
	return g.value, nil
}

// Set returns the command storing value through the binding of prop. The
// command is nil when the element already holds value.
func (r *Resolver) Set(shape *moddle.Shape, prop *template.Property, value any) (*command.Command, error) {
	if prop == nil || prop.Binding == nil {
		return nil, UnknownBinding("")
	}

	c := newChange(shape)
	s := &setter{r: r, c: c, shape: shape, prop: prop, value: value}
	if err := prop.Binding.Accept(s); err != nil {
		return nil, err
	}
	return c.command(), nil
}

type getter struct {
	r     *Resolver
	shape *moddle.Shape
	prop  *template.Property
	value any
}

func (g *getter) VisitProperty(b *template.PropertyBinding) (err error) {
	g.value, err = g.r.getProperty(g.shape, g.prop, b)
	return
}

func (g *getter) VisitCamundaProperty(b *template.CamundaPropertyBinding) (err error) {
	g.value, err = g.r.getCamundaProperty(g.shape, g.prop, b)
	return
}

func (g *getter) VisitInputParameter(b *template.InputParameterBinding) (err error) {
	g.value, err = g.r.getInputParameter(g.shape, g.prop, b)
	return
}

func (g *getter) VisitOutputParameter(b *template.OutputParameterBinding) (err error) {
	g.value, err = g.r.getOutputParameter(g.shape, g.prop, b)
	return
}

func (g *getter) VisitIn(b *template.InBinding) (err error) {
	g.value, err = g.r.getIn(g.shape, g.prop, b)
	return
}

func (g *getter) VisitInBusinessKey(b *template.InBusinessKeyBinding) (err error) {
	g.value, err = g.r.getInBusinessKey(g.shape, g.prop, b)
	return
}

func (g *getter) VisitOut(b *template.OutBinding) (err error) {
	g.value, err = g.r.getOut(g.shape, g.prop, b)
	return
}

func (g *getter) VisitExecutionListener(b *template.ExecutionListenerBinding) (err error) {
	g.value, err = g.r.getExecutionListener(g.shape, g.prop, b)
	return
}

func (g *getter) VisitField(b *template.FieldBinding) (err error) {
	g.value, err = g.r.getField(g.shape, g.prop, b)
	return
}

func (g *getter) VisitErrorEventDefinition(b *template.ErrorEventDefinitionBinding) (err error) {
	g.value, err = g.r.getErrorEventDefinition(g.shape, g.prop, b)
	return
}

type setter struct {
	r     *Resolver
	c     *change
	shape *moddle.Shape
	prop  *template.Property
	value any
}

func (s *setter) VisitProperty(b *template.PropertyBinding) error {
	return s.r.setProperty(s.c, s.prop, b, s.value)
}

func (s *setter) VisitCamundaProperty(b *template.CamundaPropertyBinding) error {
	return s.r.setCamundaProperty(s.c, s.prop, b, s.value)
}

func (s *setter) VisitInputParameter(b *template.InputParameterBinding) error {
	return s.r.setInputParameter(s.c, s.prop, b, s.value)
}

func (s *setter) VisitOutputParameter(b *template.OutputParameterBinding) error {
	return s.r.setOutputParameter(s.c, s.prop, b, s.value)
}

func (s *setter) VisitIn(b *template.InBinding) error {
	return s.r.setIn(s.c, s.prop, b, s.value)
}

func (s *setter) VisitInBusinessKey(b *template.InBusinessKeyBinding) error {
	return s.r.setInBusinessKey(s.c, s.prop, b, s.value)
}

func (s *setter) VisitOut(b *template.OutBinding) error {
	return s.r.setOut(s.c, s.prop, b, s.value)
}

func (s *setter) VisitExecutionListener(b *template.ExecutionListenerBinding) error {
	return s.r.setExecutionListener(s.c, s.prop, b, s.value)
}

func (s *setter) VisitField(b *template.FieldBinding) error {
	return s.r.setField(s.c, s.prop, b, s.value)
}

func (s *setter) VisitErrorEventDefinition(b *template.ErrorEventDefinitionBinding) error {
	return s.r.setErrorEventDefinition(s.c, s.prop, b, s.value)
}
