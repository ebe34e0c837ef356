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

const scriptImplementation = "script"

var listenerImplementations = []string{"class", "expression", "delegateExpression"}

// listenerImplementation returns the implementation type of a listener
// binding. An empty type with a script format means a script listener.
func listenerImplementation(b *template.ExecutionListenerBinding) (string, error) {
	if b.Event == "" {
		return "", InvalidConfiguration(b.Type(), "missing event")
	}
	switch b.ImplementationType {
	case "":
		if b.ScriptFormat != "" {
			return scriptImplementation, nil
		}
		return "", InvalidConfiguration(b.Type(), "missing implementationType")
	case scriptImplementation:
		if b.ScriptFormat == "" {
			return "", InvalidConfiguration(b.Type(), "implementationType <script> requires scriptFormat")
		}
		return scriptImplementation, nil
	}
	for _, impl := range listenerImplementations {
		if b.ImplementationType == impl {
			return impl, nil
		}
	}
	return "", InvalidConfiguration(b.Type(), "unsupported implementationType <%s>", b.ImplementationType)
}

// listenerType returns how the listener entry is implemented.
func listenerType(el *moddle.Element) string {
	if el.GetElement("script") != nil {
		return scriptImplementation
	}
	for _, impl := range listenerImplementations {
		if el.Has(impl) {
			return impl
		}
	}
	return ""
}

func (r *Resolver) isListener(el *moddle.Element, event, impl string) bool {
	return r.is(el, "camunda:ExecutionListener") && el.GetString("event") == event && listenerType(el) == impl
}

// listenerOccurrence returns the position of el among the listeners of list
// sharing its event and implementation type.
func (r *Resolver) listenerOccurrence(el *moddle.Element, list []*moddle.Element) int {
	event, impl := el.GetString("event"), listenerType(el)
	n := 0
	for _, item := range list {
		if item == el {
			return n
		}
		if r.isListener(item, event, impl) {
			n++
		}
	}
	return -1
}

// listenerPropertyOccurrence is the property side of listenerOccurrence.
func listenerPropertyOccurrence(prop *template.Property, event, impl string) int {
	n := 0
	for _, p := range prop.Siblings() {
		if p == prop {
			return n
		}
		b, ok := p.Binding.(*template.ExecutionListenerBinding)
		if !ok || b.Event != event {
			continue
		}
		if other, err := listenerImplementation(b); err == nil && other == impl {
			n++
		}
	}
	return -1
}

func (r *Resolver) getExecutionListener(shape *moddle.Shape, prop *template.Property, b *template.ExecutionListenerBinding) (any, error) {
	impl, err := listenerImplementation(b)
	if err != nil {
		return nil, err
	}
	target, err := r.lookupTarget(shape, prop)
	if err != nil {
		return nil, err
	}

	listener := r.entryOf(prop, target.GetElement("extensionElements").Children("values"))
	if impl == scriptImplementation {
		return listener.GetElement("script").GetString("value"), nil
	}
	return listener.GetString(impl), nil
}

func (r *Resolver) setExecutionListener(c *change, prop *template.Property, b *template.ExecutionListenerBinding, value any) error {
	impl, err := listenerImplementation(b)
	if err != nil {
		return err
	}
	s, err := text(b.Type(), value)
	if err != nil {
		return err
	}
	target, err := r.ensureTarget(c, prop)
	if err != nil {
		return err
	}

	ext, _ := r.ensureExtensionElements(c, target)
	existing := r.entryOf(prop, c.list(ext, "values"))
	if existing == nil {
		r.reserveListeners(c, prop, ext, b.Event, impl)
	}

	attrs := map[string]any{}
	if impl != scriptImplementation {
		attrs[impl] = s
	} else if script := existing.GetElement("script"); script != nil && script.GetString("scriptFormat") == b.ScriptFormat {
		c.set(script, "value", s)
	} else {
		attrs["script"] = r.newScript(b.ScriptFormat, s)
	}

	r.store(c, prop, ext, "values", attrs, func() *moddle.Element {
		return r.newListener(b.Event, attrs)
	})
	return nil
}

// reserveListeners creates empty entries for the listeners declared before
// prop with the same event and implementation type. A listener is known by
// its occurrence, so an entry written out of order must not take the slot of
// an earlier declaration.
func (r *Resolver) reserveListeners(c *change, prop *template.Property, ext *moddle.Element, event, impl string) {
	for _, p := range prop.Siblings() {
		if p == prop {
			return
		}
		sb, ok := p.Binding.(*template.ExecutionListenerBinding)
		if !ok || sb.Event != event {
			continue
		}
		if other, err := listenerImplementation(sb); err != nil || other != impl {
			continue
		}
		if r.entryOf(p, c.list(ext, "values")) != nil {
			continue
		}

		attrs := map[string]any{impl: ""}
		if impl == scriptImplementation {
			attrs = map[string]any{"script": r.newScript(sb.ScriptFormat, "")}
		}
		r.store(c, p, ext, "values", nil, func() *moddle.Element {
			return r.newListener(event, attrs)
		})
	}
}

func (r *Resolver) newScript(format, value string) *moddle.Element {
	return r.factory.Create("camunda:Script", map[string]any{"scriptFormat": format, "value": value})
}

func (r *Resolver) newListener(event string, attrs map[string]any) *moddle.Element {
	props := map[string]any{"event": event}
	for k, v := range attrs {
		props[k] = v
	}
	return r.factory.Create("camunda:ExecutionListener", props)
}
