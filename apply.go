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
	"errors"
	"fmt"

	"github.com/vine-io/propanel/binding"
	"github.com/vine-io/propanel/command"
	"github.com/vine-io/propanel/template"
	log "github.com/vine-io/vine/lib/logger"
)

// applyHandler runs the updates of a template application from PreExecute,
// the stack records them in the transaction of the apply command.
type applyHandler struct {
	stack    CommandStack
	resolver *binding.Resolver
}

func (h *applyHandler) PreExecute(ctx *command.Context) error {
	tpl, ok := ctx.Extra.(*template.Template)
	if !ok || tpl == nil {
		return errors.New("apply: missing template")
	}
	if ctx.Element == nil || ctx.Element.BusinessObject == nil {
		return errors.New("apply: missing element")
	}

	props := map[string]any{TemplateAttr: tpl.ID, TemplateVersionAttr: nil}
	if tpl.Version > 0 {
		props[TemplateVersionAttr] = tpl.Version
	}
	if err := h.stack.Execute(command.UpdateProperties, &command.Context{Element: ctx.Element, Properties: props}); err != nil {
		return err
	}

	for _, prop := range tpl.AllProperties() {
		value := prop.Value
		if value == nil {
			// Listeners are created even without a value.
			if _, ok := prop.Binding.(*template.ExecutionListenerBinding); !ok {
				continue
			}
			value = ""
		}
		cmd, err := h.resolver.Set(ctx.Element, prop, value)
		if err != nil {
			return fmt.Errorf("apply %s: property %s: %w", tpl, prop.ID(), err)
		}
		if cmd == nil {
			continue
		}
		if err = h.stack.Execute(cmd.Name, cmd.Context); err != nil {
			return err
		}
	}

	log.Debugf("template %s applied to %s", tpl, ctx.Element.BusinessObject.ID())
	return nil
}

func (h *applyHandler) Execute(ctx *command.Context) error { return nil }

func (h *applyHandler) Revert(ctx *command.Context) error { return nil }
