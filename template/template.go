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

// Package template validates element template descriptors and holds the
// templates that passed.
package template

import (
	"fmt"
	"strconv"
)

// PropertyType is the widget kind of a template property.
type PropertyType string

const (
	String   PropertyType = "String"
	Text     PropertyType = "Text"
	Boolean  PropertyType = "Boolean"
	Hidden   PropertyType = "Hidden"
	Dropdown PropertyType = "Dropdown"
)

var propertyTypes = []PropertyType{String, Text, Boolean, Hidden, Dropdown}

const (
	// ConnectorScope binds properties to the camunda:Connector of the element.
	ConnectorScope = "camunda:Connector"
	// ErrorScope binds properties to the bpmn:Error referenced by the scope id.
	ErrorScope = "bpmn:Error"
)

// Template is a validated element template.
type Template struct {
	ID          string
	Name        string
	Version     int
	Schema      string
	Description string
	AppliesTo   []string
	Properties  []*Property
	Scopes      []*Scope
	Groups      []*Group

	// Raw is the descriptor the template was built from.
	Raw map[string]any
}

// VersionKey returns the version as used for uniqueness, "_" when the
// template is not versioned.
func (t *Template) VersionKey() string {
	return versionKey(t.Version)
}

func (t *Template) String() string {
	if t.Version == 0 {
		return t.ID
	}
	return t.ID + "@" + strconv.Itoa(t.Version)
}

// Scope returns the scope of the given type.
func (t *Template) Scope(typ string) (*Scope, bool) {
	for _, s := range t.Scopes {
		if s.Type == typ {
			return s, true
		}
	}
	return nil, false
}

// AllProperties returns the top-level properties followed by the scoped ones.
func (t *Template) AllProperties() []*Property {
	out := make([]*Property, 0, len(t.Properties))
	out = append(out, t.Properties...)
	for _, s := range t.Scopes {
		out = append(out, s.Properties...)
	}
	return out
}

type Choice struct {
	Name  string
	Value string
}

type Group struct {
	ID    string
	Label string
}

type Property struct {
	Label       string
	Description string
	Type        PropertyType
	Value       any
	Choices     []Choice
	Group       string
	Editable    bool
	Binding     Binding

	index    int
	siblings []*Property
	scope    *Scope
	template *Template
}

// Index returns the position of the property in its declaring list.
func (p *Property) Index() int {
	return p.index
}

// Siblings returns the properties declared in the same list as p, p included.
func (p *Property) Siblings() []*Property {
	return p.siblings
}

// Scope returns the scope declaring p, nil for top-level properties.
func (p *Property) Scope() *Scope {
	return p.scope
}

func (p *Property) Template() *Template {
	return p.template
}

// ID returns a stable identifier of the property within its template.
func (p *Property) ID() string {
	id := "custom"
	if p.template != nil {
		id += "-" + p.template.ID
	}
	if p.scope != nil {
		id += "-" + p.scope.Type
	}
	return fmt.Sprintf("%s-%d", id, p.index)
}

// Scope is a nested set of properties bound to a sub structure of the
// element, e.g. its camunda:Connector.
type Scope struct {
	Type       string
	ID         string
	Properties []*Property
}
