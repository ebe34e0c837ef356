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

func decodeTemplate(raw map[string]any, scopes []map[string]any) (*Template, error) {
	tpl := &Template{
		ID:          stringValue(raw["id"]),
		Name:        stringValue(raw["name"]),
		Version:     intValue(raw["version"]),
		Schema:      stringValue(raw["$schema"]),
		Description: stringValue(raw["description"]),
		Raw:         raw,
	}

	appliesTo, _ := asSlice(raw["appliesTo"])
	for _, typ := range appliesTo {
		tpl.AppliesTo = append(tpl.AppliesTo, stringValue(typ))
	}

	props, _ := asSlice(raw["properties"])
	list, err := decodeProperties(tpl, nil, props)
	if err != nil {
		return nil, err
	}
	tpl.Properties = list

	for _, s := range scopes {
		scope := &Scope{Type: stringValue(s["type"]), ID: stringValue(s["id"])}
		props, _ := asSlice(s["properties"])
		list, err := decodeProperties(tpl, scope, props)
		if err != nil {
			return nil, err
		}
		scope.Properties = list
		tpl.Scopes = append(tpl.Scopes, scope)
	}

	groups, _ := asSlice(raw["groups"])
	for _, g := range groups {
		group, ok := asObject(g)
		if !ok {
			continue
		}
		tpl.Groups = append(tpl.Groups, &Group{ID: stringValue(group["id"]), Label: stringValue(group["label"])})
	}

	return tpl, nil
}

func decodeProperties(tpl *Template, scope *Scope, raw []any) ([]*Property, error) {
	list := make([]*Property, 0, len(raw))
	for i, p := range raw {
		prop, _ := asObject(p)
		bindingRaw, _ := asObject(prop["binding"])
		b, err := decodeBinding(bindingRaw)
		if err != nil {
			return nil, err
		}

		property := &Property{
			Label:       stringValue(prop["label"]),
			Description: stringValue(prop["description"]),
			Type:        PropertyType(stringValue(prop["type"])),
			Value:       prop["value"],
			Group:       stringValue(prop["group"]),
			Editable:    true,
			Binding:     b,
			index:       i,
			scope:       scope,
			template:    tpl,
		}
		if editable, ok := prop["editable"]; ok && editable != nil {
			property.Editable = boolValue(editable)
		}

		choices, _ := asSlice(prop["choices"])
		for _, c := range choices {
			choice, ok := asObject(c)
			if !ok {
				continue
			}
			property.Choices = append(property.Choices, Choice{
				Name:  stringValue(choice["name"]),
				Value: stringValue(choice["value"]),
			})
		}

		list = append(list, property)
	}

	for _, p := range list {
		p.siblings = list
	}
	return list, nil
}
