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
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/vine-io/propanel/command"
	"github.com/vine-io/propanel/moddle"
	"github.com/vine-io/propanel/template"
)

type fixture struct {
	t       *testing.T
	factory *moddle.Factory
	defs    *moddle.Element
	process *moddle.Element
	task    *moddle.Element
	shape   *moddle.Shape
	r       *Resolver
	stack   *command.Stack
}

func newFixture(t *testing.T) *fixture {
	f := moddle.NewFactory(nil)
	task := f.Create("bpmn:ServiceTask", map[string]any{"id": "Task_1"})
	process := f.Create("bpmn:Process", map[string]any{"id": "Process_1", "flowElements": []*moddle.Element{task}})
	defs := f.Create("bpmn:Definitions", map[string]any{"id": "Definitions_1", "rootElements": []*moddle.Element{process}})

	return &fixture{
		t:       t,
		factory: f,
		defs:    defs,
		process: process,
		task:    task,
		shape:   moddle.NewShape(task),
		r:       New(WithFactory(f)),
		stack:   command.NewStack(),
	}
}

func (x *fixture) set(prop *template.Property, value any) {
	x.t.Helper()
	cmd, err := x.r.Set(x.shape, prop, value)
	if !assert.NoError(x.t, err) {
		x.t.FailNow()
	}
	assert.NoError(x.t, x.stack.ExecuteCommand(cmd))
}

func (x *fixture) get(prop *template.Property) any {
	x.t.Helper()
	v, err := x.r.Get(x.shape, prop)
	if !assert.NoError(x.t, err) {
		x.t.FailNow()
	}
	return v
}

// unchanged asserts that setting value again yields no command.
func (x *fixture) unchanged(prop *template.Property, value any) {
	x.t.Helper()
	cmd, err := x.r.Set(x.shape, prop, value)
	assert.NoError(x.t, err)
	assert.Nil(x.t, cmd)
}

func (x *fixture) values() []*moddle.Element {
	return x.task.GetElement("extensionElements").Children("values")
}

func p(typ string, binding map[string]any) any {
	prop := map[string]any{"label": "L", "binding": binding}
	if typ != "" {
		prop["type"] = typ
	}
	return prop
}

func newTemplate(t *testing.T, props []any, scopes ...any) *template.Template {
	t.Helper()
	raw := map[string]any{
		"id":         "tpl",
		"name":       "Tpl",
		"appliesTo":  []any{"bpmn:ServiceTask"},
		"properties": props,
	}
	if len(scopes) > 0 {
		raw["scopes"] = scopes
	}

	v := template.NewValidator().Add(raw)
	if !assert.Empty(t, v.Errors()) || !assert.Len(t, v.ValidTemplates(), 1) {
		t.FailNow()
	}
	return v.ValidTemplates()[0]
}

func attrs(el *moddle.Element) map[string]any {
	out := map[string]any{}
	for _, key := range el.Keys() {
		out[key] = el.Get(key)
	}
	return out
}

func TestPropertyBinding(t *testing.T) {
	x := newFixture(t)
	tpl := newTemplate(t, []any{
		p("", map[string]any{"type": "property", "name": "name"}),
		p("Boolean", map[string]any{"type": "property", "name": "camunda:asyncBefore"}),
	})
	name, async := tpl.Properties[0], tpl.Properties[1]

	assert.Equal(t, "", x.get(name))
	x.set(name, "Foo")
	assert.Equal(t, "Foo", x.get(name))
	assert.Equal(t, "Foo", x.task.GetString("name"))
	x.unchanged(name, "Foo")

	assert.Equal(t, false, x.get(async))
	x.set(async, true)
	assert.Equal(t, true, x.get(async))
	assert.Equal(t, true, x.task.Get("camunda:asyncBefore"))
	x.unchanged(async, "true")

	x.set(async, "false")
	assert.Equal(t, false, x.get(async))
}

func TestPropertyCoercion(t *testing.T) {
	x := newFixture(t)
	tpl := newTemplate(t, []any{p("", map[string]any{"type": "property", "name": "camunda:priority"})})
	prop := tpl.Properties[0]

	x.set(prop, 1.5)
	assert.Equal(t, "1.5", x.get(prop))
	x.set(prop, 3)
	assert.Equal(t, "3", x.get(prop))

	_, err := x.r.Set(x.shape, prop, map[string]any{"a": 1})
	assert.True(t, IsCode(err, CodeInvalidValue))

	_, err = x.r.Set(x.shape, tpl.Properties[0], []int{1})
	assert.True(t, IsCode(err, CodeInvalidValue))
}

func TestPropertyBindingOnElementAttribute(t *testing.T) {
	x := newFixture(t)
	tpl := newTemplate(t, []any{p("", map[string]any{"type": "property", "name": "flowElements"})})
	x.shape = moddle.NewShape(x.process)

	_, err := x.r.Set(x.shape, tpl.Properties[0], "x")
	assert.True(t, IsCode(err, CodeInvalidConfiguration))
	_, err = x.r.Get(x.shape, tpl.Properties[0])
	assert.True(t, IsCode(err, CodeInvalidConfiguration))
}

func TestCamundaProperty(t *testing.T) {
	x := newFixture(t)
	tpl := newTemplate(t, []any{p("", map[string]any{"type": "camunda:property", "name": "foo"})})
	prop := tpl.Properties[0]

	assert.Equal(t, "", x.get(prop))
	x.set(prop, "bar")
	assert.Equal(t, "bar", x.get(prop))

	values := x.values()
	if !assert.Len(t, values, 1) {
		return
	}
	assert.Equal(t, "camunda:Properties", values[0].Type())
	entries := values[0].Children("values")
	if !assert.Len(t, entries, 1) {
		return
	}
	assert.Equal(t, map[string]any{"name": "foo", "value": "bar"}, attrs(entries[0]))

	x.unchanged(prop, "bar")
	x.set(prop, "baz")
	assert.Len(t, values[0].Children("values"), 1)
	assert.Same(t, entries[0], values[0].Children("values")[0])
	assert.Equal(t, "baz", x.get(prop))
}

func TestInputParameterKinds(t *testing.T) {
	x := newFixture(t)
	tpl := newTemplate(t, []any{p("", map[string]any{"type": "camunda:inputParameter", "name": "in"})})
	prop := tpl.Properties[0]

	assert.Equal(t, "", x.get(prop))
	x.set(prop, "plain")
	assert.Equal(t, "plain", x.get(prop))

	io := x.values()[0]
	assert.Equal(t, "camunda:InputOutput", io.Type())
	param := io.Children("inputParameters")[0]

	x.set(prop, []string{"a", "b"})
	assert.Equal(t, []string{"a", "b"}, x.get(prop))
	assert.False(t, param.Has("value"))
	assert.Equal(t, "camunda:List", param.GetElement("definition").Type())
	x.unchanged(prop, []any{"a", "b"})

	x.set(prop, map[string]string{"k": "v", "a": "b"})
	assert.Equal(t, map[string]string{"k": "v", "a": "b"}, x.get(prop))
	keys := make([]string, 0)
	for _, entry := range param.GetElement("definition").Children("entries") {
		keys = append(keys, entry.GetString("key"))
	}
	assert.Equal(t, []string{"a", "k"}, keys)
	x.unchanged(prop, map[string]any{"k": "v", "a": "b"})

	x.set(prop, "plain again")
	assert.Equal(t, "plain again", x.get(prop))
	assert.False(t, param.Has("definition"))

	assert.Len(t, io.Children("inputParameters"), 1)
	assert.Same(t, param, io.Children("inputParameters")[0])
}

func TestInputParameterScript(t *testing.T) {
	x := newFixture(t)
	tpl := newTemplate(t, []any{p("", map[string]any{"type": "camunda:inputParameter", "name": "in", "scriptFormat": "groovy"})})
	prop := tpl.Properties[0]

	x.set(prop, "1 + 1")
	param := x.values()[0].Children("inputParameters")[0]
	script := param.GetElement("definition")
	assert.Equal(t, map[string]any{"scriptFormat": "groovy", "value": "1 + 1"}, attrs(script))
	x.unchanged(prop, "1 + 1")

	x.set(prop, "2 + 2")
	assert.Same(t, script, param.GetElement("definition"))
	assert.Equal(t, "2 + 2", x.get(prop))
}

func TestOutputParameter(t *testing.T) {
	x := newFixture(t)
	tpl := newTemplate(t, []any{
		p("", map[string]any{"type": "camunda:outputParameter", "source": "${result}"}),
		p("", map[string]any{"type": "camunda:outputParameter", "source": "result.body", "scriptFormat": "js"}),
	})
	plain, script := tpl.Properties[0], tpl.Properties[1]

	x.set(plain, "resultVar")
	x.set(script, "bodyVar")
	assert.Equal(t, "resultVar", x.get(plain))
	assert.Equal(t, "bodyVar", x.get(script))

	params := x.values()[0].Children("outputParameters")
	if !assert.Len(t, params, 2) {
		return
	}
	assert.Equal(t, map[string]any{"name": "resultVar", "value": "${result}"}, attrs(params[0]))
	assert.Equal(t, "bodyVar", params[1].GetString("name"))
	assert.Equal(t, "js", params[1].GetElement("definition").GetString("scriptFormat"))
	assert.Equal(t, "result.body", params[1].GetElement("definition").GetString("value"))

	x.set(plain, "other")
	assert.Same(t, params[0], x.values()[0].Children("outputParameters")[0])
	x.unchanged(plain, "other")
}

func TestMappings(t *testing.T) {
	tests := []struct {
		name    string
		binding map[string]any
		value   string
		want    map[string]any
		read    string
	}{
		{
			name:    "in source target",
			binding: map[string]any{"type": "camunda:in", "target": "t"},
			value:   "s",
			want:    map[string]any{"source": "s", "target": "t"},
			read:    "s",
		},
		{
			name:    "in source expression target",
			binding: map[string]any{"type": "camunda:in", "target": "t", "expression": true},
			value:   "${s}",
			want:    map[string]any{"sourceExpression": "${s}", "target": "t"},
			read:    "${s}",
		},
		{
			name:    "in all variables",
			binding: map[string]any{"type": "camunda:in", "variables": "all"},
			value:   "x",
			want:    map[string]any{"variables": "all"},
			read:    "all",
		},
		{
			name:    "in all local variables",
			binding: map[string]any{"type": "camunda:in", "variables": "local"},
			value:   "x",
			want:    map[string]any{"variables": "all", "local": true},
			read:    "all",
		},
		{
			name:    "in local target",
			binding: map[string]any{"type": "camunda:in", "variables": "local", "target": "t"},
			value:   "s",
			want:    map[string]any{"source": "s", "target": "t", "local": true},
			read:    "s",
		},
		{
			name:    "out source",
			binding: map[string]any{"type": "camunda:out", "source": "s"},
			value:   "v",
			want:    map[string]any{"source": "s", "target": "v"},
			read:    "v",
		},
		{
			name:    "out source expression",
			binding: map[string]any{"type": "camunda:out", "sourceExpression": "${s}"},
			value:   "v",
			want:    map[string]any{"sourceExpression": "${s}", "target": "v"},
			read:    "v",
		},
		{
			name:    "out all variables",
			binding: map[string]any{"type": "camunda:out", "variables": "all"},
			value:   "x",
			want:    map[string]any{"variables": "all"},
			read:    "all",
		},
		{
			name:    "out all local variables",
			binding: map[string]any{"type": "camunda:out", "variables": "local"},
			value:   "x",
			want:    map[string]any{"variables": "all", "local": true},
			read:    "all",
		},
		{
			name:    "out local source",
			binding: map[string]any{"type": "camunda:out", "variables": "local", "source": "s"},
			value:   "v",
			want:    map[string]any{"source": "s", "target": "v", "local": true},
			read:    "v",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x := newFixture(t)
			x.task = x.factory.Create("bpmn:CallActivity", map[string]any{"id": "Call_1"})
			x.shape = moddle.NewShape(x.task)
			prop := newTemplate(t, []any{p("", tt.binding)}).Properties[0]

			x.set(prop, tt.value)
			values := x.values()
			if !assert.Len(t, values, 1) {
				return
			}
			if diff := cmp.Diff(tt.want, attrs(values[0])); diff != "" {
				t.Errorf("attrs mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, tt.read, x.get(prop))
			x.unchanged(prop, tt.value)
		})
	}
}

func TestIllegalMappings(t *testing.T) {
	tests := []map[string]any{
		{"type": "camunda:in", "variables": "all", "target": "t"},
		{"type": "camunda:in", "variables": "some"},
		{"type": "camunda:out", "source": "a", "sourceExpression": "b"},
		{"type": "camunda:out", "variables": "all", "source": "a"},
		{"type": "camunda:out", "variables": "some"},
	}

	for i, binding := range tests {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			x := newFixture(t)
			prop := newTemplate(t, []any{p("", binding)}).Properties[0]

			cmd, err := x.r.Set(x.shape, prop, "v")
			assert.Nil(t, cmd)
			assert.True(t, IsCode(err, CodeInvalidConfiguration), "%v", err)

			_, err = x.r.Get(x.shape, prop)
			assert.True(t, IsCode(err, CodeInvalidConfiguration), "%v", err)
			assert.Contains(t, err.Error(), binding["type"])
		})
	}
}

func TestInBusinessKey(t *testing.T) {
	x := newFixture(t)
	tpl := newTemplate(t, []any{
		p("", map[string]any{"type": "camunda:in:businessKey"}),
		p("", map[string]any{"type": "camunda:in", "target": "t"}),
	})
	key, in := tpl.Properties[0], tpl.Properties[1]

	x.set(in, "s")
	x.set(key, "${execution.processBusinessKey}")
	assert.Equal(t, "${execution.processBusinessKey}", x.get(key))
	assert.Equal(t, "s", x.get(in))

	values := x.values()
	if !assert.Len(t, values, 2) {
		return
	}
	assert.Equal(t, map[string]any{"businessKey": "${execution.processBusinessKey}"}, attrs(values[0]))
	assert.Equal(t, "t", values[1].GetString("target"))
}

func TestExecutionListener(t *testing.T) {
	x := newFixture(t)
	tpl := newTemplate(t, []any{
		p("Hidden", map[string]any{"type": "camunda:executionListener", "event": "start", "implementationType": "class"}),
		p("Hidden", map[string]any{"type": "camunda:executionListener", "event": "start", "implementationType": "class"}),
		p("Hidden", map[string]any{"type": "camunda:executionListener", "event": "end", "scriptFormat": "groovy"}),
	})
	first, second, script := tpl.Properties[0], tpl.Properties[1], tpl.Properties[2]

	x.set(first, "com.A")
	x.set(second, "com.B")
	x.set(script, "println 'end'")

	values := x.values()
	if !assert.Len(t, values, 3) {
		return
	}
	assert.Equal(t, "com.A", values[0].GetString("class"))
	assert.Equal(t, "com.B", values[1].GetString("class"))
	assert.Equal(t, "end", values[2].GetString("event"))
	assert.Equal(t, "groovy", values[2].GetElement("script").GetString("scriptFormat"))

	assert.Equal(t, "com.B", x.get(second))
	assert.Equal(t, "println 'end'", x.get(script))

	x.set(first, "com.C")
	assert.Len(t, x.values(), 3)
	assert.Equal(t, "com.C", x.get(first))
	assert.Equal(t, "com.B", x.get(second))
	x.unchanged(script, "println 'end'")
}

func TestExecutionListenerOutOfOrder(t *testing.T) {
	x := newFixture(t)
	tpl := newTemplate(t, []any{
		p("Hidden", map[string]any{"type": "camunda:executionListener", "event": "start", "implementationType": "class"}),
		p("Hidden", map[string]any{"type": "camunda:executionListener", "event": "start", "implementationType": "class"}),
		p("Hidden", map[string]any{"type": "camunda:executionListener", "event": "end", "scriptFormat": "groovy"}),
		p("Hidden", map[string]any{"type": "camunda:executionListener", "event": "end", "scriptFormat": "groovy"}),
	})
	first, second := tpl.Properties[0], tpl.Properties[1]
	firstScript, secondScript := tpl.Properties[2], tpl.Properties[3]

	x.set(second, "com.Second")
	assert.Len(t, x.values(), 2)
	assert.Equal(t, "", x.get(first))
	assert.Equal(t, "com.Second", x.get(second))

	x.set(first, "com.First")
	assert.Len(t, x.values(), 2)
	assert.Equal(t, "com.First", x.get(first))
	assert.Equal(t, "com.Second", x.get(second))

	x.set(secondScript, "println 'second'")
	values := x.values()
	if !assert.Len(t, values, 4) {
		return
	}
	assert.Equal(t, "groovy", values[2].GetElement("script").GetString("scriptFormat"))
	assert.Equal(t, "", x.get(firstScript))
	assert.Equal(t, "println 'second'", x.get(secondScript))

	x.set(firstScript, "println 'first'")
	assert.Len(t, x.values(), 4)
	assert.Equal(t, "println 'first'", x.get(firstScript))
	assert.Equal(t, "println 'second'", x.get(secondScript))
}

func TestExecutionListenerWithoutImplementation(t *testing.T) {
	x := newFixture(t)
	prop := newTemplate(t, []any{
		p("Hidden", map[string]any{"type": "camunda:executionListener", "event": "start"}),
	}).Properties[0]

	_, err := x.r.Set(x.shape, prop, "com.A")
	assert.True(t, IsCode(err, CodeInvalidConfiguration))
}

func TestField(t *testing.T) {
	x := newFixture(t)
	tpl := newTemplate(t, []any{
		p("", map[string]any{"type": "camunda:field", "name": "url"}),
		p("", map[string]any{"type": "camunda:field", "name": "payload", "expression": true}),
	})
	url, payload := tpl.Properties[0], tpl.Properties[1]

	x.set(payload, "${body}")
	x.set(url, "http://localhost")

	values := x.values()
	if !assert.Len(t, values, 2) {
		return
	}
	assert.Equal(t, map[string]any{"name": "url", "string": "http://localhost"}, attrs(values[0]))
	assert.Equal(t, map[string]any{"name": "payload", "expression": "${body}"}, attrs(values[1]))
	assert.Equal(t, "http://localhost", x.get(url))
	assert.Equal(t, "${body}", x.get(payload))
}

func TestErrorEventDefinition(t *testing.T) {
	x := newFixture(t)
	tpl := newTemplate(t,
		[]any{p("", map[string]any{"type": "camunda:errorEventDefinition", "errorRef": "err-1"})},
		map[string]any{
			"type": "bpmn:Error",
			"id":   "err-1",
			"properties": []any{
				p("", map[string]any{"type": "property", "name": "errorCode"}),
			},
		},
	)
	expr := tpl.Properties[0]
	code := tpl.Scopes[0].Properties[0]

	assert.Equal(t, "", x.get(code))
	x.set(code, "E1")
	x.set(expr, "${error}")

	roots := x.defs.Children("rootElements")
	if !assert.Len(t, roots, 2) {
		return
	}
	e := roots[1]
	assert.Equal(t, "bpmn:Error", e.Type())
	assert.True(t, errorRefers(e, "err-1"))
	assert.Equal(t, "E1", e.GetString("errorCode"))

	values := x.values()
	if !assert.Len(t, values, 1) {
		return
	}
	assert.Equal(t, "camunda:ErrorEventDefinition", values[0].Type())
	assert.Same(t, e, values[0].GetElement("errorRef"))
	assert.Equal(t, "${error}", values[0].GetString("expression"))

	assert.Equal(t, "E1", x.get(code))
	assert.Equal(t, "${error}", x.get(expr))
	x.unchanged(expr, "${error}")
}

func TestErrorEventDefinitionWithoutDefinitions(t *testing.T) {
	x := newFixture(t)
	x.shape = moddle.NewShape(x.factory.Create("bpmn:ServiceTask", nil))
	prop := newTemplate(t, []any{p("", map[string]any{"type": "camunda:errorEventDefinition", "errorRef": "err-1"})}).Properties[0]

	_, err := x.r.Set(x.shape, prop, "${error}")
	assert.True(t, IsCode(err, CodeNotFound))
}

func TestConnectorScope(t *testing.T) {
	x := newFixture(t)
	tpl := newTemplate(t,
		[]any{p("", map[string]any{"type": "property", "name": "camunda:type"})},
		map[string]any{
			"type": "camunda:Connector",
			"properties": []any{
				p("", map[string]any{"type": "property", "name": "connectorId"}),
				p("", map[string]any{"type": "camunda:inputParameter", "name": "url"}),
			},
		},
	)
	connectorID := tpl.Scopes[0].Properties[0]
	url := tpl.Scopes[0].Properties[1]

	assert.Equal(t, "", x.get(connectorID))
	assert.Equal(t, "", x.get(url))

	x.set(connectorID, "http-connector")
	x.set(url, "http://localhost")

	values := x.values()
	if !assert.Len(t, values, 1) {
		return
	}
	connector := values[0]
	assert.Equal(t, "camunda:Connector", connector.Type())
	assert.Equal(t, "http-connector", connector.GetString("connectorId"))

	params := connector.GetElement("inputOutput").Children("inputParameters")
	if !assert.Len(t, params, 1) {
		return
	}
	assert.Equal(t, "url", params[0].GetString("name"))
	assert.Equal(t, "http://localhost", x.get(url))
	assert.Equal(t, "http-connector", x.get(connectorID))
}

func TestParticipantDelegatesToProcess(t *testing.T) {
	x := newFixture(t)
	participant := x.factory.Create("bpmn:Participant", map[string]any{"id": "Participant_1", "processRef": x.process})
	x.factory.Create("bpmn:Collaboration", map[string]any{"participants": []*moddle.Element{participant}})
	x.shape = moddle.NewShape(participant)
	prop := newTemplate(t, []any{p("", map[string]any{"type": "property", "name": "camunda:versionTag"})}).Properties[0]

	x.set(prop, "v1")
	assert.Equal(t, "v1", x.process.GetString("camunda:versionTag"))
	assert.False(t, participant.Has("camunda:versionTag"))
	assert.Equal(t, "v1", x.get(prop))
}

func TestSetIsUndoable(t *testing.T) {
	x := newFixture(t)
	prop := newTemplate(t, []any{p("", map[string]any{"type": "camunda:inputParameter", "name": "in"})}).Properties[0]

	x.set(prop, "v")
	assert.True(t, x.stack.CanUndo())

	assert.NoError(t, x.stack.Undo())
	assert.False(t, x.task.Has("extensionElements"))
	assert.Equal(t, "", x.get(prop))

	assert.NoError(t, x.stack.Redo())
	assert.Equal(t, "v", x.get(prop))
}

func TestSetDoesNotTouchTree(t *testing.T) {
	x := newFixture(t)
	prop := newTemplate(t, []any{p("", map[string]any{"type": "camunda:property", "name": "foo"})}).Properties[0]

	cmd, err := x.r.Set(x.shape, prop, "bar")
	assert.NoError(t, err)
	assert.NotNil(t, cmd)
	assert.False(t, x.task.Has("extensionElements"))
	assert.Equal(t, command.MultiCommand, cmd.Name)
}

func TestUnknownBinding(t *testing.T) {
	x := newFixture(t)
	_, err := x.r.Get(x.shape, &template.Property{})
	assert.True(t, IsCode(err, CodeUnknownBinding))
	_, err = x.r.Set(x.shape, nil, "v")
	assert.True(t, IsCode(err, CodeUnknownBinding))
}
