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

package command

import (
	"fmt"
	"sort"

	"github.com/vine-io/propanel/moddle"
)

type updateModdleProperties struct{}

func (h *updateModdleProperties) target(ctx *Context) (*moddle.Element, error) {
	if ctx.ModdleElement != nil {
		return ctx.ModdleElement, nil
	}
	if bo := moddle.GetBusinessObject(ctx.Element); bo != nil {
		return bo, nil
	}
	return nil, fmt.Errorf("missing element")
}

func (h *updateModdleProperties) Execute(ctx *Context) error {
	target, err := h.target(ctx)
	if err != nil {
		return err
	}
	ctx.oldProperties = setProperties(target, ctx.Properties)
	return nil
}

func (h *updateModdleProperties) Revert(ctx *Context) error {
	target, err := h.target(ctx)
	if err != nil {
		return err
	}
	setProperties(target, ctx.oldProperties)
	return nil
}

type updateProperties struct{}

func (h *updateProperties) Execute(ctx *Context) error {
	bo := moddle.GetBusinessObject(ctx.Element)
	if bo == nil {
		return fmt.Errorf("missing element")
	}
	ctx.oldProperties = setProperties(bo, ctx.Properties)
	return nil
}

func (h *updateProperties) Revert(ctx *Context) error {
	bo := moddle.GetBusinessObject(ctx.Element)
	if bo == nil {
		return fmt.Errorf("missing element")
	}
	setProperties(bo, ctx.oldProperties)
	return nil
}

// setProperties applies props to el and returns the values they replaced.
func setProperties(el *moddle.Element, props map[string]any) map[string]any {
	keys := make([]string, 0, len(props))
	for key := range props {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	old := make(map[string]any, len(props))
	for _, key := range keys {
		old[key] = el.Get(key)
		el.Set(key, props[key])
	}
	return old
}

type updateBusinessObjectList struct{}

func (h *updateBusinessObjectList) Execute(ctx *Context) error {
	if ctx.CurrentObject == nil || ctx.PropertyName == "" {
		return fmt.Errorf("missing currentObject or propertyName")
	}

	old := ctx.CurrentObject.Children(ctx.PropertyName)
	list := make([]*moddle.Element, 0, len(old)+len(ctx.ObjectsToAdd))
	for _, el := range old {
		if !contains(ctx.ObjectsToRemove, el) {
			list = append(list, el)
		}
	}
	list = append(list, ctx.ObjectsToAdd...)

	ctx.oldList = old
	ctx.CurrentObject.Set(ctx.PropertyName, list)
	return nil
}

func (h *updateBusinessObjectList) Revert(ctx *Context) error {
	if ctx.CurrentObject == nil {
		return fmt.Errorf("missing currentObject")
	}
	ctx.CurrentObject.Set(ctx.PropertyName, ctx.oldList)
	return nil
}

func contains(list []*moddle.Element, el *moddle.Element) bool {
	for _, item := range list {
		if item == el {
			return true
		}
	}
	return false
}

type multiCommand struct {
	stack *Stack
}

func (h *multiCommand) PreExecute(ctx *Context) error {
	for _, c := range ctx.Commands {
		if err := h.stack.Execute(c.Name, c.Context); err != nil {
			return err
		}
	}
	return nil
}

func (h *multiCommand) Execute(ctx *Context) error { return nil }

func (h *multiCommand) Revert(ctx *Context) error { return nil }
