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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vine-io/propanel/moddle"
)

func newTask() (*moddle.Factory, *moddle.Shape) {
	f := moddle.NewFactory(nil)
	task := f.Create("bpmn:ServiceTask", map[string]any{"id": "Task_1", "name": "old"})
	return f, moddle.NewShape(task)
}

func TestUpdateModdlePropertiesUndoRedo(t *testing.T) {
	_, shape := newTask()
	s := NewStack()

	err := s.Execute(UpdateModdleProperties, &Context{
		Element:    shape,
		Properties: map[string]any{"name": "new", "camunda:type": "external"},
	})
	if !assert.NoError(t, err) {
		return
	}
	bo := shape.BusinessObject
	assert.Equal(t, "new", bo.GetString("name"))
	assert.Equal(t, "external", bo.GetString("camunda:type"))
	assert.True(t, s.CanUndo())

	assert.NoError(t, s.Undo())
	assert.Equal(t, "old", bo.GetString("name"))
	assert.False(t, bo.Has("camunda:type"))
	assert.False(t, s.CanUndo())
	assert.True(t, s.CanRedo())

	assert.NoError(t, s.Redo())
	assert.Equal(t, "new", bo.GetString("name"))
	assert.Equal(t, "external", bo.GetString("camunda:type"))
	assert.False(t, s.CanRedo())
}

func TestUpdateProperties(t *testing.T) {
	_, shape := newTask()
	s := NewStack()

	assert.NoError(t, s.Execute(UpdateProperties, &Context{Element: shape, Properties: map[string]any{"name": "x"}}))
	assert.Equal(t, "x", shape.BusinessObject.GetString("name"))

	assert.Error(t, s.Execute(UpdateProperties, &Context{Properties: map[string]any{"name": "x"}}))
}

func TestUpdateBusinessObjectList(t *testing.T) {
	f, shape := newTask()
	a := f.Create("camunda:Property", map[string]any{"name": "a"})
	b := f.Create("camunda:Property", map[string]any{"name": "b"})
	c := f.Create("camunda:Property", map[string]any{"name": "c"})
	holder := f.Create("camunda:Properties", map[string]any{"values": []*moddle.Element{a, b}})
	s := NewStack()

	err := s.Execute(UpdateBusinessObjectList, &Context{
		Element:         shape,
		CurrentObject:   holder,
		PropertyName:    "values",
		ObjectsToAdd:    []*moddle.Element{c},
		ObjectsToRemove: []*moddle.Element{a},
	})
	if !assert.NoError(t, err) {
		return
	}
	assert.Equal(t, []*moddle.Element{b, c}, holder.Children("values"))

	assert.NoError(t, s.Undo())
	assert.Equal(t, []*moddle.Element{a, b}, holder.Children("values"))
}

func TestMultiCommandIsOneTransaction(t *testing.T) {
	f, shape := newTask()
	ext := f.Create("bpmn:ExtensionElements", nil)
	s := NewStack()

	multi := Multi(
		New(UpdateModdleProperties, &Context{Element: shape, ModdleElement: shape.BusinessObject, Properties: map[string]any{"extensionElements": ext}}),
		New(UpdateModdleProperties, &Context{Element: shape, ModdleElement: ext, Properties: map[string]any{"values": []*moddle.Element{}}}),
		nil,
	)
	assert.Equal(t, MultiCommand, multi.Name)
	assert.Len(t, Flatten(multi), 2)

	assert.NoError(t, s.ExecuteCommand(multi))
	assert.Equal(t, ext, shape.BusinessObject.GetElement("extensionElements"))

	assert.NoError(t, s.Undo())
	assert.False(t, shape.BusinessObject.Has("extensionElements"))
	assert.False(t, s.CanUndo())

	assert.NoError(t, s.Redo())
	assert.Equal(t, ext, shape.BusinessObject.GetElement("extensionElements"))
	assert.True(t, ext.Has("values"))
}

func TestMulti(t *testing.T) {
	assert.Nil(t, Multi())
	single := New(UpdateProperties, &Context{})
	assert.Equal(t, single, Multi(single, nil))
}

func TestExecuteUnknownCommand(t *testing.T) {
	err := NewStack().Execute("foo", &Context{})
	assert.True(t, errors.Is(err, ErrUnknownCommand))
}

type failing struct{}

func (failing) Execute(ctx *Context) error { return errors.New("boom") }

func (failing) Revert(ctx *Context) error { return nil }

func TestFailedTransactionIsReverted(t *testing.T) {
	_, shape := newTask()
	s := NewStack()
	s.Register("test.fail", failing{})

	err := s.ExecuteCommand(Multi(
		New(UpdateModdleProperties, &Context{Element: shape, Properties: map[string]any{"name": "new"}}),
		New("test.fail", &Context{}),
	))
	assert.Error(t, err)
	assert.Equal(t, "old", shape.BusinessObject.GetString("name"))
	assert.False(t, s.CanUndo())
}

func TestExecuteDropsRedoTail(t *testing.T) {
	_, shape := newTask()
	s := NewStack()

	assert.NoError(t, s.Execute(UpdateProperties, &Context{Element: shape, Properties: map[string]any{"name": "a"}}))
	assert.NoError(t, s.Execute(UpdateProperties, &Context{Element: shape, Properties: map[string]any{"name": "b"}}))
	assert.NoError(t, s.Undo())
	assert.True(t, s.CanRedo())

	assert.NoError(t, s.Execute(UpdateProperties, &Context{Element: shape, Properties: map[string]any{"name": "c"}}))
	assert.False(t, s.CanRedo())

	assert.NoError(t, s.Undo())
	assert.Equal(t, "a", shape.BusinessObject.GetString("name"))
	assert.NoError(t, s.Undo())
	assert.Equal(t, "old", shape.BusinessObject.GetString("name"))

	s.Clear()
	assert.False(t, s.CanUndo())
}
