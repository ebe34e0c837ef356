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

	"github.com/vine-io/propanel/moddle"
	"github.com/vine-io/propanel/template"
)

func (r *Resolver) lookupInputOutput(target *moddle.Element) *moddle.Element {
	if r.is(target, "camunda:Connector") {
		return target.GetElement("inputOutput")
	}
	return r.findExtension(target, "camunda:InputOutput")
}

// ensureInputOutput returns the camunda:InputOutput of target and whether it
// had to be created. Connectors own theirs directly, any other element keeps
// it in its extension elements.
func (r *Resolver) ensureInputOutput(c *change, target *moddle.Element) (*moddle.Element, bool) {
	init := map[string]any{
		"inputParameters":  []*moddle.Element{},
		"outputParameters": []*moddle.Element{},
	}
	if r.is(target, "camunda:Connector") {
		if io := c.element(target, "inputOutput"); io != nil {
			return io, false
		}
		io := r.factory.Create("camunda:InputOutput", init)
		c.set(target, "inputOutput", io)
		return io, true
	}

	ext, _ := r.ensureExtensionElements(c, target)
	return r.findOrCreate(c, ext, "values", "camunda:InputOutput", init)
}

func (r *Resolver) getInputParameter(shape *moddle.Shape, prop *template.Property, b *template.InputParameterBinding) (any, error) {
	target, err := r.lookupTarget(shape, prop)
	if err != nil {
		return nil, err
	}

	param := r.entryOf(prop, r.lookupInputOutput(target).Children("inputParameters"))
	if param == nil {
		return "", nil
	}

	def := param.GetElement("definition")
	switch {
	case def == nil:
		return param.GetString("value"), nil
	case r.is(def, "camunda:Script"):
		return def.GetString("value"), nil
	case r.is(def, "camunda:List"):
		return listItems(def), nil
	case r.is(def, "camunda:Map"):
		return mapEntries(def), nil
	default:
		return nil, InvalidConfiguration(b.Type(), "unsupported definition <%s> of input parameter <%s>", def.Type(), b.Name)
	}
}

func listItems(def *moddle.Element) []string {
	items := make([]string, 0)
	for _, item := range def.Children("items") {
		items = append(items, item.GetString("value"))
	}
	return items
}

func mapEntries(def *moddle.Element) map[string]string {
	entries := map[string]string{}
	for _, entry := range def.Children("entries") {
		entries[entry.GetString("key")] = entry.GetString("value")
	}
	return entries
}

// parameterAttrs computes the value and definition of an input parameter.
// A script definition of the same format is updated in place, any other
// kind replaces what the parameter held before unless it holds the same
// list or map already.
func (r *Resolver) parameterAttrs(c *change, bt template.BindingType, existing *moddle.Element, scriptFormat string, value any) (map[string]any, error) {
	if scriptFormat != "" {
		s, err := text(bt, value)
		if err != nil {
			return nil, err
		}
		if def := existing.GetElement("definition"); r.is(def, "camunda:Script") && def.GetString("scriptFormat") == scriptFormat {
			c.set(def, "value", s)
			return map[string]any{"value": nil, "definition": def}, nil
		}
		script := r.factory.Create("camunda:Script", map[string]any{"scriptFormat": scriptFormat, "value": s})
		return map[string]any{"value": nil, "definition": script}, nil
	}

	list, ok, err := stringList(bt, value)
	if err != nil {
		return nil, err
	}
	def := existing.GetElement("definition")
	if ok {
		if r.is(def, "camunda:List") && reflect.DeepEqual(listItems(def), list) {
			return map[string]any{"value": nil, "definition": def}, nil
		}
		items := make([]*moddle.Element, 0, len(list))
		for _, item := range list {
			items = append(items, r.factory.Create("camunda:Value", map[string]any{"value": item}))
		}
		return map[string]any{"value": nil, "definition": r.factory.Create("camunda:List", map[string]any{"items": items})}, nil
	}

	m, ok, err := stringMap(bt, value)
	if err != nil {
		return nil, err
	}
	if ok {
		if r.is(def, "camunda:Map") && reflect.DeepEqual(mapEntries(def), m) {
			return map[string]any{"value": nil, "definition": def}, nil
		}
		entries := make([]*moddle.Element, 0, len(m))
		for _, key := range mapKeys(m) {
			entries = append(entries, r.factory.Create("camunda:Entry", map[string]any{"key": key, "value": m[key]}))
		}
		return map[string]any{"value": nil, "definition": r.factory.Create("camunda:Map", map[string]any{"entries": entries})}, nil
	}

	s, err := text(bt, value)
	if err != nil {
		return nil, err
	}
	return map[string]any{"value": s, "definition": nil}, nil
}

func (r *Resolver) setInputParameter(c *change, prop *template.Property, b *template.InputParameterBinding, value any) error {
	target, err := r.ensureTarget(c, prop)
	if err != nil {
		return err
	}

	io, _ := r.ensureInputOutput(c, target)
	existing := r.entryOf(prop, c.list(io, "inputParameters"))
	attrs, err := r.parameterAttrs(c, b.Type(), existing, b.ScriptFormat, value)
	if err != nil {
		return err
	}

	r.store(c, prop, io, "inputParameters", attrs, func() *moddle.Element {
		props := map[string]any{"name": b.Name}
		for k, v := range attrs {
			if v != nil {
				props[k] = v
			}
		}
		return r.factory.Create("camunda:InputParameter", props)
	})
	return nil
}

// outputSource returns what an output parameter maps from, its plain value
// or the body of its script.
func (r *Resolver) outputSource(param *moddle.Element, scriptFormat string) string {
	def := param.GetElement("definition")
	if scriptFormat == "" {
		if def != nil {
			return ""
		}
		return param.GetString("value")
	}
	if r.is(def, "camunda:Script") && def.GetString("scriptFormat") == scriptFormat {
		return def.GetString("value")
	}
	return ""
}

func (r *Resolver) getOutputParameter(shape *moddle.Shape, prop *template.Property, b *template.OutputParameterBinding) (any, error) {
	target, err := r.lookupTarget(shape, prop)
	if err != nil {
		return nil, err
	}

	param := r.entryOf(prop, r.lookupInputOutput(target).Children("outputParameters"))
	return param.GetString("name"), nil
}

func (r *Resolver) setOutputParameter(c *change, prop *template.Property, b *template.OutputParameterBinding, value any) error {
	name, err := text(b.Type(), value)
	if err != nil {
		return err
	}
	target, err := r.ensureTarget(c, prop)
	if err != nil {
		return err
	}

	io, _ := r.ensureInputOutput(c, target)
	r.store(c, prop, io, "outputParameters", map[string]any{"name": name}, func() *moddle.Element {
		if b.ScriptFormat == "" {
			return r.factory.Create("camunda:OutputParameter", map[string]any{"name": name, "value": b.Source})
		}
		script := r.factory.Create("camunda:Script", map[string]any{"scriptFormat": b.ScriptFormat, "value": b.Source})
		return r.factory.Create("camunda:OutputParameter", map[string]any{"name": name, "definition": script})
	})
	return nil
}
