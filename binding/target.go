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
	"strings"

	"github.com/vine-io/propanel/moddle"
	"github.com/vine-io/propanel/template"
)

// businessObject returns the element bindings of shape apply to. Participants
// delegate to the process they reference.
func (r *Resolver) businessObject(shape *moddle.Shape, bt template.BindingType) (*moddle.Element, error) {
	bo := moddle.GetBusinessObject(shape)
	if bo == nil {
		return nil, NotFound(bt, "element has no business object")
	}
	if r.is(bo, "bpmn:Participant") {
		if process := bo.GetElement("processRef"); process != nil {
			return process, nil
		}
	}
	return bo, nil
}

// lookupTarget returns the element prop reads from. It is nil when the
// scope of prop has not been created yet.
func (r *Resolver) lookupTarget(shape *moddle.Shape, prop *template.Property) (*moddle.Element, error) {
	bt := prop.Binding.Type()
	bo, err := r.businessObject(shape, bt)
	if err != nil {
		return nil, err
	}

	scope := prop.Scope()
	if scope == nil {
		return bo, nil
	}
	switch scope.Type {
	case template.ConnectorScope:
		return r.findExtension(bo, "camunda:Connector"), nil
	case template.ErrorScope:
		if ed := r.findErrorEventDefinition(bo.GetElement("extensionElements").Children("values"), scope.ID); ed != nil {
			return ed.GetElement("errorRef"), nil
		}
		return nil, nil
	default:
		return nil, InvalidConfiguration(bt, "unsupported scope <%s>", scope.Type)
	}
}

// ensureTarget returns the element prop writes to, creating its scope when
// needed.
func (r *Resolver) ensureTarget(c *change, prop *template.Property) (*moddle.Element, error) {
	bt := prop.Binding.Type()
	bo, err := r.businessObject(c.shape, bt)
	if err != nil {
		return nil, err
	}

	scope := prop.Scope()
	if scope == nil {
		return bo, nil
	}
	switch scope.Type {
	case template.ConnectorScope:
		ext, _ := r.ensureExtensionElements(c, bo)
		connector, _ := r.findOrCreate(c, ext, "values", "camunda:Connector", nil)
		return connector, nil
	case template.ErrorScope:
		ed, err := r.ensureErrorEventDefinition(c, bo, bt, scope.ID, errorOwner(prop.Template(), scope.ID))
		if err != nil {
			return nil, err
		}
		return c.element(ed, "errorRef"), nil
	default:
		return nil, InvalidConfiguration(bt, "unsupported scope <%s>", scope.Type)
	}
}

// findExtension returns the first entry of type typ in the extension
// elements of el.
func (r *Resolver) findExtension(el *moddle.Element, typ string) *moddle.Element {
	for _, value := range el.GetElement("extensionElements").Children("values") {
		if r.is(value, typ) {
			return value
		}
	}
	return nil
}

// ensureExtensionElements returns the extension container of el and whether
// it had to be created.
func (r *Resolver) ensureExtensionElements(c *change, el *moddle.Element) (*moddle.Element, bool) {
	if ext := c.element(el, "extensionElements"); ext != nil {
		return ext, false
	}
	ext := r.factory.Create("bpmn:ExtensionElements", map[string]any{"values": []*moddle.Element{}})
	c.set(el, "extensionElements", ext)
	return ext, true
}

// findOrCreate returns the first element of type typ held in the list
// property of parent and whether it had to be created. New elements are
// appended to the list.
func (r *Resolver) findOrCreate(c *change, parent *moddle.Element, list, typ string, props map[string]any) (*moddle.Element, bool) {
	children := c.list(parent, list)
	for _, child := range children {
		if r.is(child, typ) {
			return child, false
		}
	}
	el := r.factory.Create(typ, props)
	c.set(parent, list, append(children, el))
	return el, true
}

// definitions walks up to the bpmn:Definitions root of el.
func (r *Resolver) definitions(el *moddle.Element) *moddle.Element {
	for ; el != nil; el = el.Parent() {
		if r.is(el, "bpmn:Definitions") {
			return el
		}
	}
	return nil
}

func errorID(ref string) string {
	return "Error_" + ref + "_" + moddle.RandName()
}

// errorRefers reports whether err was created for the template error ref.
func errorRefers(err *moddle.Element, ref string) bool {
	return err != nil && strings.HasPrefix(err.ID(), "Error_"+ref+"_")
}
