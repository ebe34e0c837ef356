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
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/vine-io/propanel/command"
	"github.com/vine-io/propanel/internal/mock"
	"github.com/vine-io/propanel/moddle"
	"github.com/vine-io/propanel/template"
)

func descriptor(id string, version int, appliesTo string, props ...any) map[string]any {
	raw := map[string]any{
		"id":         id,
		"name":       id,
		"appliesTo":  []any{appliesTo},
		"properties": props,
	}
	if version > 0 {
		raw["version"] = version
	}
	return raw
}

func property(label, typ string, value any, binding map[string]any) map[string]any {
	p := map[string]any{"label": label, "binding": binding}
	if typ != "" {
		p["type"] = typ
	}
	if value != nil {
		p["value"] = value
	}
	return p
}

func newTask() *moddle.Shape {
	f := moddle.NewFactory(nil)
	task := f.Create("bpmn:ServiceTask", map[string]any{"id": "Task_1"})
	f.Create("bpmn:Process", map[string]any{"id": "Process_1", "flowElements": []*moddle.Element{task}})
	return moddle.NewShape(task)
}

func load(t *testing.T, p *Panel, descriptors ...any) {
	t.Helper()
	if errs := p.Load(descriptors); !assert.Empty(t, errs) {
		t.FailNow()
	}
}

func TestNewRegistersApplyCommand(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	stack := mock.NewMockCommandStack(ctrl)
	stack.EXPECT().Register(ApplyCommand, gomock.Any()).Times(1)
	New(stack)
}

func TestEntrySetExecutesCommand(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	stack := mock.NewMockCommandStack(ctrl)
	stack.EXPECT().Register(ApplyCommand, gomock.Any())
	p := New(stack)
	load(t, p, descriptor("tpl", 0, "bpmn:ServiceTask",
		property("Name", "", nil, map[string]any{"type": "property", "name": "name"}),
		property("Foo", "", nil, map[string]any{"type": "camunda:property", "name": "foo"}),
	))
	tpl, _ := p.Store().Get("tpl", 0)
	shape := newTask()
	entries := p.Entries(shape, tpl)

	gomock.InOrder(
		stack.EXPECT().Execute(command.UpdateModdleProperties, gomock.Any()).DoAndReturn(func(name string, ctx *command.Context) error {
			assert.Equal(t, map[string]any{"name": "Bar"}, ctx.Properties)
			return nil
		}),
		stack.EXPECT().Execute(command.MultiCommand, gomock.Any()).Return(errors.New("rejected")),
	)

	assert.NoError(t, entries[0].Set("Bar"))
	assert.EqualError(t, entries[1].Set("bar"), "rejected")
	assert.False(t, shape.BusinessObject.Has("name"))
}

func TestEntrySetSameValueExecutesNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	stack := mock.NewMockCommandStack(ctrl)
	stack.EXPECT().Register(ApplyCommand, gomock.Any())
	p := New(stack)
	load(t, p, descriptor("tpl", 0, "bpmn:ServiceTask",
		property("Name", "", nil, map[string]any{"type": "property", "name": "name"}),
	))
	tpl, _ := p.Store().Get("tpl", 0)
	shape := newTask()
	shape.BusinessObject.Set("name", "Bar")

	assert.NoError(t, p.Entries(shape, tpl)[0].Set("Bar"))
}

func TestEntryNotEditable(t *testing.T) {
	p := New(command.NewStack())
	locked := property("Name", "", nil, map[string]any{"type": "property", "name": "name"})
	locked["editable"] = false
	load(t, p, descriptor("tpl", 0, "bpmn:ServiceTask", locked))
	tpl, _ := p.Store().Get("tpl", 0)

	entry := p.Entries(newTask(), tpl)[0]
	assert.False(t, entry.Editable)
	assert.ErrorIs(t, entry.Set("x"), ErrNotEditable)
}

func TestEntries(t *testing.T) {
	p := New(command.NewStack())
	raw := descriptor("tpl", 0, "bpmn:ServiceTask",
		property("Name", "", nil, map[string]any{"type": "property", "name": "name"}),
		property("Listener", "Hidden", "com.A", map[string]any{"type": "camunda:executionListener", "event": "start", "implementationType": "class"}),
	)
	raw["scopes"] = []any{map[string]any{
		"type":       "camunda:Connector",
		"properties": []any{property("Connector", "", "http-connector", map[string]any{"type": "property", "name": "connectorId"})},
	}}
	load(t, p, raw)
	tpl, _ := p.Store().Get("tpl", 0)

	entries := p.Entries(newTask(), tpl)
	if !assert.Len(t, entries, 3) {
		return
	}
	assert.Equal(t, "custom-tpl-0", entries[0].ID)
	assert.Equal(t, template.String, entries[0].Kind)
	assert.Equal(t, template.Hidden, entries[1].Kind)
	assert.Equal(t, "custom-tpl-camunda:Connector-0", entries[2].ID)
	assert.Equal(t, "Connector", entries[2].Label)
}

func TestLoadAndTemplates(t *testing.T) {
	p := New(command.NewStack())
	errs := p.Load([]any{
		descriptor("task", 1, "bpmn:Task", property("Name", "", nil, map[string]any{"type": "property", "name": "name"})),
		descriptor("task", 2, "bpmn:Task", property("Name", "", nil, map[string]any{"type": "property", "name": "name"})),
		descriptor("user", 0, "bpmn:UserTask", property("Name", "", nil, map[string]any{"type": "property", "name": "name"})),
		map[string]any{"id": "broken"},
	})
	assert.Len(t, errs, 1)
	assert.Equal(t, []int{1, 2}, p.Store().Versions("task"))

	templates := p.Templates(newTask())
	if !assert.Len(t, templates, 1) {
		return
	}
	assert.Equal(t, "task@2", templates[0].String())
}

func TestApply(t *testing.T) {
	stack := command.NewStack()
	p := New(stack)
	load(t, p, descriptor("http", 3, "bpmn:ServiceTask",
		property("Name", "", "Call API", map[string]any{"type": "property", "name": "name"}),
		property("Implementation", "Hidden", "external", map[string]any{"type": "property", "name": "camunda:type"}),
		property("Topic", "", "http", map[string]any{"type": "property", "name": "camunda:topic"}),
		property("Url", "", "http://localhost", map[string]any{"type": "camunda:inputParameter", "name": "url"}),
		property("Method", "", nil, map[string]any{"type": "camunda:inputParameter", "name": "method"}),
	))
	tpl, _ := p.Store().Get("http", 3)
	shape := newTask()
	bo := shape.BusinessObject

	if !assert.NoError(t, p.Apply(shape, tpl)) {
		return
	}
	assert.Equal(t, "http", bo.GetString(TemplateAttr))
	assert.Equal(t, "3", bo.GetString(TemplateVersionAttr))
	assert.Equal(t, "Call API", bo.GetString("name"))
	assert.Equal(t, "external", bo.GetString("camunda:type"))

	entries := p.Entries(shape, tpl)
	url, err := entries[3].Get()
	assert.NoError(t, err)
	assert.Equal(t, "http://localhost", url)
	method, err := entries[4].Get()
	assert.NoError(t, err)
	assert.Equal(t, "", method)

	applied, ok := p.TemplateOf(shape)
	assert.True(t, ok)
	assert.Same(t, tpl, applied)

	assert.NoError(t, stack.Undo())
	assert.False(t, bo.Has(TemplateAttr))
	assert.False(t, bo.Has("name"))
	assert.False(t, bo.Has("extensionElements"))
	assert.False(t, stack.CanUndo())
	_, ok = p.TemplateOf(shape)
	assert.False(t, ok)

	assert.NoError(t, stack.Redo())
	assert.Equal(t, "Call API", bo.GetString("name"))
	url, _ = entries[3].Get()
	assert.Equal(t, "http://localhost", url)
}

func TestApplyCreatesListenersWithoutValue(t *testing.T) {
	p := New(command.NewStack())
	listener := map[string]any{"type": "camunda:executionListener", "event": "start", "implementationType": "class"}
	load(t, p, descriptor("listeners", 0, "bpmn:ServiceTask",
		property("First", "Hidden", nil, listener),
		property("Second", "Hidden", "com.Second", listener),
	))
	tpl, _ := p.Store().Get("listeners", 0)
	shape := newTask()

	if !assert.NoError(t, p.Apply(shape, tpl)) {
		return
	}
	values := shape.BusinessObject.GetElement("extensionElements").Children("values")
	if !assert.Len(t, values, 2) {
		return
	}
	assert.Equal(t, "", values[0].GetString("class"))
	assert.Equal(t, "com.Second", values[1].GetString("class"))

	entries := p.Entries(shape, tpl)
	first, err := entries[0].Get()
	assert.NoError(t, err)
	assert.Equal(t, "", first)
	second, err := entries[1].Get()
	assert.NoError(t, err)
	assert.Equal(t, "com.Second", second)
}

func TestApplyFailureRollsBack(t *testing.T) {
	stack := command.NewStack()
	p := New(stack)
	load(t, p, descriptor("bad", 0, "bpmn:ServiceTask",
		property("Name", "", "Foo", map[string]any{"type": "property", "name": "name"}),
		property("In", "", "x", map[string]any{"type": "camunda:in", "variables": "all", "target": "t"}),
	))
	tpl, _ := p.Store().Get("bad", 0)
	shape := newTask()

	err := p.Apply(shape, tpl)
	assert.Error(t, err)
	assert.False(t, shape.BusinessObject.Has(TemplateAttr))
	assert.False(t, shape.BusinessObject.Has("name"))
	assert.False(t, stack.CanUndo())
}

func TestApplyWithoutTemplate(t *testing.T) {
	p := New(command.NewStack())
	assert.Error(t, p.Apply(newTask(), nil))
}
