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
	"sort"

	"github.com/vine-io/propanel/moddle"
	"github.com/vine-io/propanel/template"
)

// manages reports whether the list entry el stores the value of prop.
func (r *Resolver) manages(prop *template.Property, el *moddle.Element, list []*moddle.Element) bool {
	m := &matcher{r: r, prop: prop, el: el, list: list}
	if err := prop.Binding.Accept(m); err != nil {
		return false
	}
	return m.ok
}

// entryOf returns the entry of list managed by prop.
func (r *Resolver) entryOf(prop *template.Property, list []*moddle.Element) *moddle.Element {
	for _, el := range list {
		if r.manages(prop, el, list) {
			return el
		}
	}
	return nil
}

// rank returns the declared position of the property managing el among the
// siblings of prop.
func (r *Resolver) rank(prop *template.Property, el *moddle.Element, list []*moddle.Element) (int, bool) {
	for i, p := range prop.Siblings() {
		if r.manages(p, el, list) {
			return i, true
		}
	}
	return 0, false
}

// arrange reorders the template managed entries of list to the declared
// order. Entries no property manages keep their slots.
func (r *Resolver) arrange(prop *template.Property, list []*moddle.Element) []*moddle.Element {
	type ranked struct {
		pos int
		el  *moddle.Element
	}

	slots := make([]int, 0, len(list))
	entries := make([]ranked, 0, len(list))
	for i, el := range list {
		if pos, ok := r.rank(prop, el, list); ok {
			slots = append(slots, i)
			entries = append(entries, ranked{pos: pos, el: el})
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].pos < entries[j].pos
	})

	out := make([]*moddle.Element, len(list))
	copy(out, list)
	for i, slot := range slots {
		out[slot] = entries[i].el
	}
	return out
}

// insert places the new entry el of prop before the first entry declared
// after prop, or after the last entry declared before it.
func (r *Resolver) insert(prop *template.Property, list []*moddle.Element, el *moddle.Element) []*moddle.Element {
	at, last := -1, -1
	for i, item := range list {
		pos, ok := r.rank(prop, item, list)
		if !ok {
			continue
		}
		if pos > prop.Index() {
			at = i
			break
		}
		last = i
	}
	switch {
	case at >= 0:
	case last >= 0:
		at = last + 1
	default:
		at = len(list)
	}

	out := make([]*moddle.Element, 0, len(list)+1)
	out = append(out, list[:at]...)
	out = append(out, el)
	out = append(out, list[at:]...)
	return r.arrange(prop, out)
}

// store writes attrs to the entry of prop in the list property of holder.
// Without such an entry, create builds one which is inserted at the declared
// position. Either way the list ends up in declared order.
func (r *Resolver) store(c *change, prop *template.Property, holder *moddle.Element, name string, attrs map[string]any, create func() *moddle.Element) *moddle.Element {
	list := c.list(holder, name)
	if entry := r.entryOf(prop, list); entry != nil {
		for _, key := range sortedKeys(attrs) {
			c.set(entry, key, attrs[key])
		}
		if arranged := r.arrange(prop, list); !sameElements(arranged, list) {
			c.set(holder, name, arranged)
		}
		return entry
	}

	entry := create()
	c.set(holder, name, r.insert(prop, list, entry))
	return entry
}

func sortedKeys(attrs map[string]any) []string {
	keys := make([]string, 0, len(attrs))
	for key := range attrs {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// matcher tells whether a list entry belongs to a property, by the stable
// key of the property binding.
type matcher struct {
	r    *Resolver
	prop *template.Property
	el   *moddle.Element
	list []*moddle.Element
	ok   bool
}

func (m *matcher) VisitProperty(b *template.PropertyBinding) error {
	return nil
}

func (m *matcher) VisitCamundaProperty(b *template.CamundaPropertyBinding) error {
	m.ok = m.r.is(m.el, "camunda:Property") && m.el.GetString("name") == b.Name
	return nil
}

func (m *matcher) VisitInputParameter(b *template.InputParameterBinding) error {
	m.ok = m.r.is(m.el, "camunda:InputParameter") && m.el.GetString("name") == b.Name
	return nil
}

func (m *matcher) VisitOutputParameter(b *template.OutputParameterBinding) error {
	m.ok = m.r.is(m.el, "camunda:OutputParameter") && m.r.outputSource(m.el, b.ScriptFormat) == b.Source
	return nil
}

func (m *matcher) VisitIn(b *template.InBinding) error {
	cfg, err := inConfig(b)
	if err != nil {
		return err
	}
	m.ok = m.r.is(m.el, "camunda:In") && !m.el.Has("businessKey") && matchMapping(m.el, cfg, mappingOfIn(b, ""))
	return nil
}

func (m *matcher) VisitInBusinessKey(b *template.InBusinessKeyBinding) error {
	m.ok = m.r.is(m.el, "camunda:In") && m.el.Has("businessKey")
	return nil
}

func (m *matcher) VisitOut(b *template.OutBinding) error {
	cfg, err := outConfig(b)
	if err != nil {
		return err
	}
	m.ok = m.r.is(m.el, "camunda:Out") && matchMapping(m.el, cfg, mappingOfOut(b, ""))
	return nil
}

func (m *matcher) VisitExecutionListener(b *template.ExecutionListenerBinding) error {
	impl, err := listenerImplementation(b)
	if err != nil {
		return err
	}
	if !m.r.is(m.el, "camunda:ExecutionListener") || !m.r.isListener(m.el, b.Event, impl) {
		return nil
	}
	m.ok = m.r.listenerOccurrence(m.el, m.list) == listenerPropertyOccurrence(m.prop, b.Event, impl)
	return nil
}

func (m *matcher) VisitField(b *template.FieldBinding) error {
	m.ok = m.r.is(m.el, "camunda:Field") && m.el.GetString("name") == b.Name
	return nil
}

func (m *matcher) VisitErrorEventDefinition(b *template.ErrorEventDefinitionBinding) error {
	m.ok = m.r.is(m.el, "camunda:ErrorEventDefinition") && errorRefers(m.el.GetElement("errorRef"), b.ErrorRef)
	return nil
}
