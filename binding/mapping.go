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

// mappingConfig is one of the legal shapes of a camunda:In or camunda:Out.
type mappingConfig int

const (
	sourceOnly mappingConfig = iota + 1
	sourceTarget
	sourceExpressionTarget
	allVariables
	allLocalVariables
	localTarget
)

func (c mappingConfig) String() string {
	switch c {
	case sourceOnly:
		return "source"
	case sourceTarget:
		return "source+target"
	case sourceExpressionTarget:
		return "sourceExpression+target"
	case allVariables:
		return "variables=all"
	case allLocalVariables:
		return "variables=all+local"
	case localTarget:
		return "local+target"
	}
	return "unknown"
}

// mapping is the attribute set of a camunda:In or camunda:Out entry.
type mapping struct {
	Source           string
	SourceExpression string
	Target           string
	Variables        string
	Local            bool
}

// classify returns the configuration of m, false for combinations that have
// no meaning.
func (m mapping) classify() (mappingConfig, bool) {
	switch {
	case m.Variables != "":
		if m.Variables != "all" || m.Source != "" || m.SourceExpression != "" || m.Target != "" {
			return 0, false
		}
		if m.Local {
			return allLocalVariables, true
		}
		return allVariables, true
	case m.Source != "" && m.SourceExpression != "":
		return 0, false
	case m.Local:
		if m.Target != "" && (m.Source != "" || m.SourceExpression != "") {
			return localTarget, true
		}
		return 0, false
	case m.Source != "" && m.Target != "":
		return sourceTarget, true
	case m.SourceExpression != "" && m.Target != "":
		return sourceExpressionTarget, true
	case m.Source != "":
		return sourceOnly, true
	}
	return 0, false
}

func (m mapping) String() string {
	s := "{"
	add := func(k, v string) {
		if v == "" {
			return
		}
		if len(s) > 1 {
			s += ", "
		}
		s += k + "=" + v
	}
	add("source", m.Source)
	add("sourceExpression", m.SourceExpression)
	add("target", m.Target)
	add("variables", m.Variables)
	if m.Local {
		add("local", "true")
	}
	return s + "}"
}

// attrs returns the moddle attributes of m, clearing the ones m does not use.
func (m mapping) attrs() map[string]any {
	value := func(s string) any {
		if s == "" {
			return nil
		}
		return s
	}
	attrs := map[string]any{
		"source":           value(m.Source),
		"sourceExpression": value(m.SourceExpression),
		"target":           value(m.Target),
		"variables":        value(m.Variables),
		"local":            nil,
	}
	if m.Local {
		attrs["local"] = true
	}
	return attrs
}

// placeholder fills the value slot when only the shape of a mapping matters.
const placeholder = "?"

func mappingOfIn(b *template.InBinding, value string) mapping {
	switch {
	case b.Variables == "all":
		return mapping{Variables: "all", Target: b.Target}
	case b.Variables == "local" && b.Target == "":
		return mapping{Variables: "all", Local: true}
	case b.Variables == "local":
		m := mapping{Target: b.Target, Local: true}
		if b.Expression {
			m.SourceExpression = value
		} else {
			m.Source = value
		}
		return m
	default:
		m := mapping{Target: b.Target, Variables: b.Variables}
		if b.Expression {
			m.SourceExpression = value
		} else {
			m.Source = value
		}
		return m
	}
}

func mappingOfOut(b *template.OutBinding, value string) mapping {
	switch {
	case b.Variables == "all":
		return mapping{Variables: "all", Source: b.Source, SourceExpression: b.SourceExpression}
	case b.Variables == "local" && b.Source == "" && b.SourceExpression == "":
		return mapping{Variables: "all", Local: true}
	case b.Variables == "local":
		return mapping{Source: b.Source, SourceExpression: b.SourceExpression, Target: value, Local: true}
	default:
		return mapping{Source: b.Source, SourceExpression: b.SourceExpression, Target: value, Variables: b.Variables}
	}
}

func inConfig(b *template.InBinding) (mappingConfig, error) {
	m := mappingOfIn(b, placeholder)
	cfg, ok := m.classify()
	if !ok || cfg == sourceOnly {
		return 0, InvalidConfiguration(b.Type(), "unsupported configuration %s (target=%q, variables=%q)", m, b.Target, b.Variables)
	}
	return cfg, nil
}

func outConfig(b *template.OutBinding) (mappingConfig, error) {
	m := mappingOfOut(b, placeholder)
	cfg, ok := m.classify()
	if !ok {
		return 0, InvalidConfiguration(b.Type(), "unsupported configuration %s (source=%q, sourceExpression=%q, variables=%q)", m, b.Source, b.SourceExpression, b.Variables)
	}
	return cfg, nil
}

// matchMapping reports whether entry holds the mapping want of configuration
// cfg. Only the fields identifying the mapping are compared, not the value.
func matchMapping(entry *moddle.Element, cfg mappingConfig, want mapping) bool {
	local := entry.GetBool("local")
	variables := entry.GetString("variables")
	switch cfg {
	case allVariables:
		return variables == "all" && !local
	case allLocalVariables:
		return variables == "all" && local
	}
	if variables != "" || local != want.Local {
		return false
	}
	if want.Target != "" && want.Source == "" && want.SourceExpression == "" {
		// camunda:in, identified by its target
		return entry.GetString("target") == want.Target
	}
	return entry.GetString("source") == want.Source && entry.GetString("sourceExpression") == want.SourceExpression
}

func (r *Resolver) mappingEntry(shape *moddle.Shape, prop *template.Property) (*moddle.Element, error) {
	target, err := r.lookupTarget(shape, prop)
	if err != nil {
		return nil, err
	}
	return r.entryOf(prop, target.GetElement("extensionElements").Children("values")), nil
}

func (r *Resolver) getIn(shape *moddle.Shape, prop *template.Property, b *template.InBinding) (any, error) {
	cfg, err := inConfig(b)
	if err != nil {
		return nil, err
	}
	entry, err := r.mappingEntry(shape, prop)
	if err != nil {
		return nil, err
	}

	switch cfg {
	case allVariables, allLocalVariables:
		return entry.GetString("variables"), nil
	}
	if b.Expression {
		return entry.GetString("sourceExpression"), nil
	}
	return entry.GetString("source"), nil
}

func (r *Resolver) setIn(c *change, prop *template.Property, b *template.InBinding, value any) error {
	if _, err := inConfig(b); err != nil {
		return err
	}
	s, err := text(b.Type(), value)
	if err != nil {
		return err
	}
	return r.storeMapping(c, prop, "camunda:In", mappingOfIn(b, s))
}

func (r *Resolver) getOut(shape *moddle.Shape, prop *template.Property, b *template.OutBinding) (any, error) {
	cfg, err := outConfig(b)
	if err != nil {
		return nil, err
	}
	entry, err := r.mappingEntry(shape, prop)
	if err != nil {
		return nil, err
	}

	switch cfg {
	case allVariables, allLocalVariables:
		return entry.GetString("variables"), nil
	}
	return entry.GetString("target"), nil
}

func (r *Resolver) setOut(c *change, prop *template.Property, b *template.OutBinding, value any) error {
	if _, err := outConfig(b); err != nil {
		return err
	}
	s, err := text(b.Type(), value)
	if err != nil {
		return err
	}
	return r.storeMapping(c, prop, "camunda:Out", mappingOfOut(b, s))
}

func (r *Resolver) storeMapping(c *change, prop *template.Property, typ string, m mapping) error {
	target, err := r.ensureTarget(c, prop)
	if err != nil {
		return err
	}

	attrs := m.attrs()
	ext, _ := r.ensureExtensionElements(c, target)
	r.store(c, prop, ext, "values", attrs, func() *moddle.Element {
		props := map[string]any{}
		for k, v := range attrs {
			if v != nil {
				props[k] = v
			}
		}
		return r.factory.Create(typ, props)
	})
	return nil
}

func (r *Resolver) getInBusinessKey(shape *moddle.Shape, prop *template.Property, b *template.InBusinessKeyBinding) (any, error) {
	entry, err := r.mappingEntry(shape, prop)
	if err != nil {
		return nil, err
	}
	return entry.GetString("businessKey"), nil
}

func (r *Resolver) setInBusinessKey(c *change, prop *template.Property, b *template.InBusinessKeyBinding, value any) error {
	s, err := text(b.Type(), value)
	if err != nil {
		return err
	}
	target, err := r.ensureTarget(c, prop)
	if err != nil {
		return err
	}

	ext, _ := r.ensureExtensionElements(c, target)
	r.store(c, prop, ext, "values", map[string]any{"businessKey": s}, func() *moddle.Element {
		return r.factory.Create("camunda:In", map[string]any{"businessKey": s})
	})
	return nil
}
