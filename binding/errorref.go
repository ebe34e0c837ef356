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

// findErrorEventDefinition returns the camunda:ErrorEventDefinition of list
// created for the template error ref.
func (r *Resolver) findErrorEventDefinition(list []*moddle.Element, ref string) *moddle.Element {
	for _, el := range list {
		if r.is(el, "camunda:ErrorEventDefinition") && errorRefers(el.GetElement("errorRef"), ref) {
			return el
		}
	}
	return nil
}

// errorOwner returns the top level property of tpl bound to the error event
// definition of ref.
func errorOwner(tpl *template.Template, ref string) *template.Property {
	if tpl == nil {
		return nil
	}
	for _, p := range tpl.Properties {
		if b, ok := p.Binding.(*template.ErrorEventDefinitionBinding); ok && b.ErrorRef == ref {
			return p
		}
	}
	return nil
}

// ensureErrorEventDefinition returns the error event definition of ref kept
// in the extension elements of bo. A missing one is created together with
// its bpmn:Error in the definitions root, at the position owner declares.
func (r *Resolver) ensureErrorEventDefinition(c *change, bo *moddle.Element, bt template.BindingType, ref string, owner *template.Property) (*moddle.Element, error) {
	ext, _ := r.ensureExtensionElements(c, bo)
	list := c.list(ext, "values")
	if ed := r.findErrorEventDefinition(list, ref); ed != nil {
		return ed, nil
	}

	root := r.definitions(bo)
	if root == nil {
		return nil, NotFound(bt, "no bpmn:Definitions to hold bpmn:Error <%s>", ref)
	}

	e := r.factory.Create("bpmn:Error", map[string]any{"id": errorID(ref)})
	c.set(root, "rootElements", append(c.list(root, "rootElements"), e))

	ed := r.factory.Create("camunda:ErrorEventDefinition", map[string]any{"errorRef": e})
	if owner != nil {
		c.set(ext, "values", r.insert(owner, list, ed))
	} else {
		c.set(ext, "values", append(list, ed))
	}
	return ed, nil
}

func (r *Resolver) getErrorEventDefinition(shape *moddle.Shape, prop *template.Property, b *template.ErrorEventDefinitionBinding) (any, error) {
	target, err := r.lookupTarget(shape, prop)
	if err != nil {
		return nil, err
	}

	ed := r.findErrorEventDefinition(target.GetElement("extensionElements").Children("values"), b.ErrorRef)
	return ed.GetString("expression"), nil
}

func (r *Resolver) setErrorEventDefinition(c *change, prop *template.Property, b *template.ErrorEventDefinitionBinding, value any) error {
	s, err := text(b.Type(), value)
	if err != nil {
		return err
	}
	target, err := r.ensureTarget(c, prop)
	if err != nil {
		return err
	}

	ed, err := r.ensureErrorEventDefinition(c, target, b.Type(), b.ErrorRef, prop)
	if err != nil {
		return err
	}
	c.set(ed, "expression", s)

	ext := c.element(target, "extensionElements")
	list := c.list(ext, "values")
	if arranged := r.arrange(prop, list); !sameElements(arranged, list) {
		c.set(ext, "values", arranged)
	}
	return nil
}
