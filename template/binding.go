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

package template

import (
	"fmt"
	"strings"
)

// BindingType is the tag of a property binding.
type BindingType string

const (
	PropertyBindingType             BindingType = "property"
	CamundaPropertyBindingType      BindingType = "camunda:property"
	InputParameterBindingType       BindingType = "camunda:inputParameter"
	OutputParameterBindingType      BindingType = "camunda:outputParameter"
	InBindingType                   BindingType = "camunda:in"
	InBusinessKeyBindingType        BindingType = "camunda:in:businessKey"
	OutBindingType                  BindingType = "camunda:out"
	ExecutionListenerBindingType    BindingType = "camunda:executionListener"
	FieldBindingType                BindingType = "camunda:field"
	ErrorEventDefinitionBindingType BindingType = "camunda:errorEventDefinition"
)

// BindingTypes lists every binding tag in declaration order.
var BindingTypes = []BindingType{
	PropertyBindingType,
	CamundaPropertyBindingType,
	InputParameterBindingType,
	OutputParameterBindingType,
	InBindingType,
	InBusinessKeyBindingType,
	OutBindingType,
	ExecutionListenerBindingType,
	FieldBindingType,
	ErrorEventDefinitionBindingType,
}

func bindingTypeNames() string {
	names := make([]string, 0, len(BindingTypes))
	for _, t := range BindingTypes {
		names = append(names, string(t))
	}
	return strings.Join(names, ", ")
}

// Binding describes where a property value lives on the business object.
// The set of implementations is closed, every consumer handles all of them
// through a BindingVisitor.
type Binding interface {
	Type() BindingType
	Accept(v BindingVisitor) error
}

// BindingVisitor is implemented once per binding consumer. Adding a binding
// type breaks every consumer at compile time until it handles the new case.
type BindingVisitor interface {
	VisitProperty(b *PropertyBinding) error
	VisitCamundaProperty(b *CamundaPropertyBinding) error
	VisitInputParameter(b *InputParameterBinding) error
	VisitOutputParameter(b *OutputParameterBinding) error
	VisitIn(b *InBinding) error
	VisitInBusinessKey(b *InBusinessKeyBinding) error
	VisitOut(b *OutBinding) error
	VisitExecutionListener(b *ExecutionListenerBinding) error
	VisitField(b *FieldBinding) error
	VisitErrorEventDefinition(b *ErrorEventDefinitionBinding) error
}

// PropertyBinding maps to an attribute of the business object.
type PropertyBinding struct {
	Name string
}

func (b *PropertyBinding) Type() BindingType { return PropertyBindingType }

func (b *PropertyBinding) Accept(v BindingVisitor) error { return v.VisitProperty(b) }

// CamundaPropertyBinding maps to a camunda:Property inside camunda:Properties.
type CamundaPropertyBinding struct {
	Name string
}

func (b *CamundaPropertyBinding) Type() BindingType { return CamundaPropertyBindingType }

func (b *CamundaPropertyBinding) Accept(v BindingVisitor) error { return v.VisitCamundaProperty(b) }

// InputParameterBinding maps to a camunda:InputParameter keyed by name.
type InputParameterBinding struct {
	Name         string
	ScriptFormat string
}

func (b *InputParameterBinding) Type() BindingType { return InputParameterBindingType }

func (b *InputParameterBinding) Accept(v BindingVisitor) error { return v.VisitInputParameter(b) }

// OutputParameterBinding maps to a camunda:OutputParameter keyed by source.
// The property value is the name of the process variable.
type OutputParameterBinding struct {
	Source       string
	ScriptFormat string
}

func (b *OutputParameterBinding) Type() BindingType { return OutputParameterBindingType }

func (b *OutputParameterBinding) Accept(v BindingVisitor) error { return v.VisitOutputParameter(b) }

type InBinding struct {
	Target     string
	Variables  string
	Expression bool
}

func (b *InBinding) Type() BindingType { return InBindingType }

func (b *InBinding) Accept(v BindingVisitor) error { return v.VisitIn(b) }

type InBusinessKeyBinding struct{}

func (b *InBusinessKeyBinding) Type() BindingType { return InBusinessKeyBindingType }

func (b *InBusinessKeyBinding) Accept(v BindingVisitor) error { return v.VisitInBusinessKey(b) }

type OutBinding struct {
	Source           string
	SourceExpression string
	Variables        string
}

func (b *OutBinding) Type() BindingType { return OutBindingType }

func (b *OutBinding) Accept(v BindingVisitor) error { return v.VisitOut(b) }

// ExecutionListenerBinding maps to a camunda:ExecutionListener. The
// implementation type is one of class, expression, delegateExpression or
// script.
type ExecutionListenerBinding struct {
	Event              string
	ImplementationType string
	ScriptFormat       string
}

func (b *ExecutionListenerBinding) Type() BindingType { return ExecutionListenerBindingType }

func (b *ExecutionListenerBinding) Accept(v BindingVisitor) error {
	return v.VisitExecutionListener(b)
}

type FieldBinding struct {
	Name       string
	Expression bool
}

func (b *FieldBinding) Type() BindingType { return FieldBindingType }

func (b *FieldBinding) Accept(v BindingVisitor) error { return v.VisitField(b) }

// ErrorEventDefinitionBinding maps to a camunda:ErrorEventDefinition whose
// bpmn:Error is identified by ErrorRef.
type ErrorEventDefinitionBinding struct {
	ErrorRef string
}

func (b *ErrorEventDefinitionBinding) Type() BindingType { return ErrorEventDefinitionBindingType }

func (b *ErrorEventDefinitionBinding) Accept(v BindingVisitor) error {
	return v.VisitErrorEventDefinition(b)
}

// errUnknownBinding is returned by decodeBinding for tags outside the closed set.
type errUnknownBinding struct {
	typ string
}

func (e *errUnknownBinding) Error() string {
	return fmt.Sprintf("invalid property.binding type <%s>; must be any of { %s }", e.typ, bindingTypeNames())
}

func decodeBinding(raw map[string]any) (Binding, error) {
	typ := stringValue(raw["type"])
	switch BindingType(typ) {
	case PropertyBindingType:
		return &PropertyBinding{Name: stringValue(raw["name"])}, nil
	case CamundaPropertyBindingType:
		return &CamundaPropertyBinding{Name: stringValue(raw["name"])}, nil
	case InputParameterBindingType:
		return &InputParameterBinding{
			Name:         stringValue(raw["name"]),
			ScriptFormat: stringValue(raw["scriptFormat"]),
		}, nil
	case OutputParameterBindingType:
		return &OutputParameterBinding{
			Source:       stringValue(raw["source"]),
			ScriptFormat: stringValue(raw["scriptFormat"]),
		}, nil
	case InBindingType:
		return &InBinding{
			Target:     stringValue(raw["target"]),
			Variables:  stringValue(raw["variables"]),
			Expression: boolValue(raw["expression"]),
		}, nil
	case InBusinessKeyBindingType:
		return &InBusinessKeyBinding{}, nil
	case OutBindingType:
		return &OutBinding{
			Source:           stringValue(raw["source"]),
			SourceExpression: stringValue(raw["sourceExpression"]),
			Variables:        stringValue(raw["variables"]),
		}, nil
	case ExecutionListenerBindingType:
		return &ExecutionListenerBinding{
			Event:              stringValue(raw["event"]),
			ImplementationType: stringValue(raw["implementationType"]),
			ScriptFormat:       stringValue(raw["scriptFormat"]),
		}, nil
	case FieldBindingType:
		return &FieldBinding{
			Name:       stringValue(raw["name"]),
			Expression: boolValue(raw["expression"]),
		}, nil
	case ErrorEventDefinitionBindingType:
		return &ErrorEventDefinitionBinding{ErrorRef: stringValue(raw["errorRef"])}, nil
	default:
		return nil, &errUnknownBinding{typ: typ}
	}
}
