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
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	log "github.com/vine-io/vine/lib/logger"
)

// Validator checks element template descriptors and keeps the ones that
// pass. A Validator is not safe for concurrent use.
type Validator struct {
	opts *Options

	// template id -> version keys in use
	used      map[string]map[string]struct{}
	templates []*Template
	errs      []error
}

func NewValidator(opts ...Option) *Validator {
	return &Validator{
		opts: NewOptions(opts...),
		used: map[string]map[string]struct{}{},
	}
}

// AddAll validates and adds every descriptor of a sequence in order.
func (v *Validator) AddAll(descriptors any) *Validator {
	list, ok := asSlice(descriptors)
	if !ok {
		v.addError(nil, "templates must be []")
		return v
	}

	for _, descriptor := range list {
		v.Add(descriptor)
	}
	return v
}

// Add validates a single descriptor. Valid descriptors are registered under
// their id and version, invalid ones only leave errors behind.
func (v *Validator) Add(descriptor any) *Validator {
	raw, ok := asObject(descriptor)
	if !ok {
		v.addError(nil, "template must be {}")
		return v
	}

	tpl, ok := v.validate(raw)
	if !ok {
		log.Warnf("element template %s rejected", describe(raw))
		return v
	}

	versions, ok := v.used[tpl.ID]
	if !ok {
		versions = map[string]struct{}{}
		v.used[tpl.ID] = versions
	}
	versions[tpl.VersionKey()] = struct{}{}
	v.templates = append(v.templates, tpl)
	log.Debugf("element template %s accepted", tpl)

	return v
}

// Errors returns the accumulated errors in call order. Every entry is a
// *ValidationError.
func (v *Validator) Errors() []error {
	out := make([]error, len(v.errs))
	copy(out, v.errs)
	return out
}

// ValidTemplates returns the accepted templates in call order.
func (v *Validator) ValidTemplates() []*Template {
	out := make([]*Template, len(v.templates))
	copy(out, v.templates)
	return out
}

type header struct {
	id   string
	name string
}

func (v *Validator) addError(h *header, msg string) {
	e := &ValidationError{Message: msg}
	if h != nil {
		e.TemplateID = h.id
		e.TemplateName = h.name
	}
	v.errs = append(v.errs, e)
}

func describe(raw map[string]any) string {
	id := stringValue(raw["id"])
	if id == "" {
		return "<unknown>"
	}
	version, ok := templateVersion(raw["version"])
	switch {
	case !ok:
		return id + "@" + stringValue(raw["version"])
	case version != 0:
		return id + "@" + versionKey(version)
	}
	return id
}

func (v *Validator) validate(raw map[string]any) (*Template, bool) {
	if err := validation.Validate(raw["id"], validation.Required); err != nil {
		v.addError(nil, "missing template id")
		return nil, false
	}
	h := &header{id: stringValue(raw["id"]), name: stringValue(raw["name"])}

	if err := validation.Validate(raw["name"], validation.Required); err != nil {
		v.addError(h, "missing template name")
		return nil, false
	}

	if schema := stringValue(raw["$schema"]); schema != "" {
		if version, ok := SchemaVersion(schema); ok && !supportsSchema(version, v.opts.SchemaVersion) {
			v.addError(h, fmt.Sprintf("unsupported element template schema version <%s>. Your installation only supports up to version <%s>. Please update your installation", version, v.opts.SchemaVersion))
			return nil, false
		}
	}

	n, ok := templateVersion(raw["version"])
	if !ok {
		v.addError(h, fmt.Sprintf("invalid template version <%s>; must be an integer", stringValue(raw["version"])))
		return nil, false
	}
	version := versionKey(n)
	if _, ok := v.used[h.id][version]; ok {
		if version == noVersion {
			v.addError(h, fmt.Sprintf("template id <%s> already used", h.id))
		} else {
			v.addError(h, fmt.Sprintf("template id <%s> and version <%s> already used", h.id, version))
		}
		return nil, false
	}

	valid := true
	if _, ok := asSlice(raw["appliesTo"]); !ok {
		v.addError(h, "missing appliesTo=[]")
		valid = false
	}

	if props, ok := asSlice(raw["properties"]); !ok {
		v.addError(h, "missing properties=[]")
		valid = false
	} else if !v.validateProperties(h, props) {
		valid = false
	}

	var scopes []map[string]any
	if raw["scopes"] != nil {
		var ok bool
		scopes, ok = v.validateScopes(h, raw["scopes"])
		if !ok {
			valid = false
		}
	}

	if !valid {
		return nil, false
	}

	tpl, err := decodeTemplate(raw, scopes)
	if err != nil {
		v.addError(h, err.Error())
		return nil, false
	}
	return tpl, true
}

// validateProperties checks every property, it never stops at the first
// invalid one.
func (v *Validator) validateProperties(h *header, props []any) bool {
	valid := true
	for _, p := range props {
		if !v.validateProperty(h, p) {
			valid = false
		}
	}
	return valid
}

func (v *Validator) validateProperty(h *header, p any) bool {
	prop, ok := asObject(p)
	if !ok {
		v.addError(h, "invalid property, should be property={}")
		return false
	}

	valid := true
	propType := stringValue(prop["type"])
	bindingRaw, hasBinding := asObject(prop["binding"])
	bindingType := BindingType(stringValue(bindingRaw["type"]))

	typeNames := make([]any, 0, len(propertyTypes))
	for _, t := range propertyTypes {
		typeNames = append(typeNames, string(t))
	}
	if err := validation.Validate(propType, validation.In(typeNames...)); err != nil {
		v.addError(h, fmt.Sprintf("invalid property type <%s>; must be any of { %s }", propType, joinTypes(propertyTypes)))
		valid = false
	}

	if PropertyType(propType) == Dropdown && bindingType != ExecutionListenerBindingType {
		if msg := checkChoices(prop["choices"]); msg != "" {
			v.addError(h, msg)
			valid = false
		}
	}

	if !hasBinding {
		v.addError(h, "property missing binding")
		return false
	}

	b, err := decodeBinding(bindingRaw)
	if err != nil {
		v.addError(h, err.Error())
		return false
	}

	if err := b.Accept(&bindingRules{propType: PropertyType(propType)}); err != nil {
		v.addError(h, err.Error())
		valid = false
	}

	return valid
}

var choiceRule = validation.Map(
	validation.Key("name"),
	validation.Key("value"),
).AllowExtraKeys()

func checkChoices(v any) string {
	choices, ok := asSlice(v)
	if !ok || validation.Validate(choices, validation.Required) != nil {
		return `must provide choices=[] with "Dropdown" type`
	}
	for _, c := range choices {
		choice, ok := asObject(c)
		if !ok || validation.Validate(choice, choiceRule) != nil {
			return `{ name, value } must be specified for "Dropdown" choices`
		}
	}
	return ""
}

func joinTypes(types []PropertyType) string {
	names := make([]string, 0, len(types))
	for _, t := range types {
		names = append(names, string(t))
	}
	return strings.Join(names, ", ")
}

// normalizeScopes converts the legacy object form into the array form.
func (v *Validator) normalizeScopes(h *header, raw any) ([]any, bool) {
	if list, ok := asSlice(raw); ok {
		return list, true
	}

	legacy, ok := asObject(raw)
	if !ok || !v.opts.LegacyScopes {
		v.addError(h, "invalid scopes, should be scopes=[]")
		return nil, false
	}

	keys := make([]string, 0, len(legacy))
	for key := range legacy {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	valid := true
	list := make([]any, 0, len(keys))
	for _, key := range keys {
		if key != ConnectorScope {
			v.addError(h, fmt.Sprintf("invalid scope <%s>, object descriptor is only supported for <%s>", key, ConnectorScope))
			valid = false
			continue
		}
		scope, ok := asObject(legacy[key])
		if !ok {
			v.addError(h, "invalid scope, should be scope={}")
			valid = false
			continue
		}
		normalized := make(map[string]any, len(scope)+1)
		for k, value := range scope {
			normalized[k] = value
		}
		normalized["type"] = key
		list = append(list, normalized)
	}
	return list, valid
}

func (v *Validator) validateScopes(h *header, raw any) ([]map[string]any, bool) {
	list, ok := v.normalizeScopes(h, raw)
	if !ok {
		return nil, false
	}

	valid := true
	scopes := make([]map[string]any, 0, len(list))
	for _, s := range list {
		scope, ok := asObject(s)
		if !ok {
			v.addError(h, "invalid scope, should be scope={}")
			valid = false
			continue
		}

		typ := stringValue(scope["type"])
		if err := validation.Validate(typ, validation.Required); err != nil {
			v.addError(h, "missing type in scope")
			valid = false
		}
		if typ == ErrorScope && stringValue(scope["id"]) == "" {
			v.addError(h, fmt.Sprintf("missing id in scope <%s>", typ))
			valid = false
		}

		props, ok := asSlice(scope["properties"])
		if !ok {
			v.addError(h, fmt.Sprintf("missing properties=[] in scope <%s>", typ))
			valid = false
			continue
		}
		if !v.validateProperties(h, props) {
			valid = false
		}
		scopes = append(scopes, scope)
	}
	return scopes, valid
}

// bindingRules checks the companion fields each binding type requires.
type bindingRules struct {
	propType PropertyType
}

func requires(t BindingType, what string, values ...string) error {
	rules := validation.Required.Error(fmt.Sprintf("property.binding <%s> requires %s", t, what))
	return validation.Validate(strings.Join(values, ""), rules)
}

func (r *bindingRules) VisitProperty(b *PropertyBinding) error {
	return requires(b.Type(), "name", b.Name)
}

func (r *bindingRules) VisitCamundaProperty(b *CamundaPropertyBinding) error {
	return requires(b.Type(), "name", b.Name)
}

func (r *bindingRules) VisitInputParameter(b *InputParameterBinding) error {
	return requires(b.Type(), "name", b.Name)
}

func (r *bindingRules) VisitOutputParameter(b *OutputParameterBinding) error {
	return requires(b.Type(), "source", b.Source)
}

func (r *bindingRules) VisitIn(b *InBinding) error {
	return requires(b.Type(), "variables or target", b.Variables, b.Target)
}

func (r *bindingRules) VisitInBusinessKey(b *InBusinessKeyBinding) error {
	return nil
}

func (r *bindingRules) VisitOut(b *OutBinding) error {
	return requires(b.Type(), "variables, sourceExpression or source", b.Variables, b.SourceExpression, b.Source)
}

func (r *bindingRules) VisitExecutionListener(b *ExecutionListenerBinding) error {
	msg := fmt.Sprintf("invalid property type <%s> for binding type <%s>; must be <%s>", r.propType, b.Type(), Hidden)
	return validation.Validate(string(r.propType), validation.In(string(Hidden)).Error(msg))
}

func (r *bindingRules) VisitField(b *FieldBinding) error {
	return requires(b.Type(), "name", b.Name)
}

func (r *bindingRules) VisitErrorEventDefinition(b *ErrorEventDefinitionBinding) error {
	return requires(b.Type(), "errorRef", b.ErrorRef)
}
