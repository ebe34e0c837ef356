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

package moddle

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/beevik/etree"
)

const propAttr = "moddle:prop"

var namespaces = [][2]string{
	{"xmlns:bpmn", "http://www.omg.org/spec/BPMN/20100524/MODEL"},
	{"xmlns:camunda", "http://camunda.org/schema/1.0/bpmn"},
	{"xmlns:moddle", "http://vine-io.github.io/propanel/moddle"},
}

// Encode writes the tree rooted at root as XML. Every element is written
// under its $type tag, scalar properties become attributes and references
// are written as the id of their target.
func Encode(w io.Writer, root *Element) error {
	if root == nil {
		return fmt.Errorf("moddle: encode nil element")
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	start := doc.CreateElement(root.Type())
	for _, ns := range namespaces {
		start.CreateAttr(ns[0], ns[1])
	}
	if err := encodeElement(start, root, ""); err != nil {
		return err
	}

	doc.Indent(2)
	_, err := doc.WriteTo(w)
	return err
}

func EncodeToBytes(root *Element) ([]byte, error) {
	buf := bytes.NewBufferString("")
	if err := Encode(buf, root); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeElement(start *etree.Element, el *Element, prop string) error {
	if prop != "" {
		start.CreateAttr(propAttr, prop)
	}

	for _, key := range el.keys {
		value := el.props[key]
		if el.reg.IsReference(el.typ, key) {
			ref, ok := value.(*Element)
			if !ok {
				return fmt.Errorf("moddle: %s.%s is not a reference", el.typ, key)
			}
			if ref.ID() == "" {
				return fmt.Errorf("moddle: %s.%s references an element without id", el.typ, key)
			}
			start.CreateAttr(key, ref.ID())
			continue
		}

		switch tt := value.(type) {
		case *Element:
			if err := encodeElement(start.CreateElement(tt.Type()), tt, key); err != nil {
				return err
			}
		case []*Element:
			for _, child := range tt {
				if err := encodeElement(start.CreateElement(child.Type()), child, key); err != nil {
					return err
				}
			}
		default:
			s, err := formatScalar(tt)
			if err != nil {
				return fmt.Errorf("moddle: %s.%s: %w", el.typ, key, err)
			}
			start.CreateAttr(key, s)
		}
	}

	return nil
}

func formatScalar(v any) (string, error) {
	switch tt := v.(type) {
	case string:
		return tt, nil
	case bool:
		return strconv.FormatBool(tt), nil
	case int:
		return strconv.Itoa(tt), nil
	case int64:
		return strconv.FormatInt(tt, 10), nil
	case float64:
		return strconv.FormatFloat(tt, 'f', -1, 64), nil
	default:
		return "", fmt.Errorf("unsupported value %T", v)
	}
}

type pendingRef struct {
	el   *Element
	prop string
	id   string
}

type decoder struct {
	reg  *Registry
	refs []pendingRef
}

// Decode reads a tree written by Encode. Types are resolved against reg,
// or the Default registry when reg is nil.
func Decode(r io.Reader, reg *Registry) (*Element, error) {
	if reg == nil {
		reg = Default
	}

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("moddle: read document: %w", err)
	}
	start := doc.Root()
	if start == nil {
		return nil, fmt.Errorf("moddle: empty document")
	}

	d := &decoder{reg: reg}
	root, err := d.decode(start)
	if err != nil {
		return nil, err
	}

	index := map[string]*Element{}
	root.Walk(func(el *Element) bool {
		if id := el.ID(); id != "" {
			index[id] = el
		}
		return true
	})
	for _, ref := range d.refs {
		target, ok := index[ref.id]
		if !ok {
			return nil, fmt.Errorf("moddle: unresolved reference %s.%s=%q", ref.el.typ, ref.prop, ref.id)
		}
		ref.el.Set(ref.prop, target)
	}

	return root, nil
}

func DecodeBytes(data []byte, reg *Registry) (*Element, error) {
	return Decode(bytes.NewReader(data), reg)
}

func (d *decoder) decode(start *etree.Element) (*Element, error) {
	el := newElement(d.reg, start.FullTag())
	for _, attr := range start.Attr {
		key := attr.FullKey()
		if attr.Space == "xmlns" || key == "xmlns" || key == propAttr {
			continue
		}
		switch {
		case d.reg.IsReference(el.typ, key):
			d.refs = append(d.refs, pendingRef{el: el, prop: key, id: attr.Value})
			// keep the attribute position until the reference is resolved
			el.props[key] = attr.Value
			el.keys = append(el.keys, key)
		case d.reg.IsBoolean(el.typ, key):
			b, err := strconv.ParseBool(attr.Value)
			if err != nil {
				return nil, fmt.Errorf("moddle: %s.%s: %w", el.typ, key, err)
			}
			el.Set(key, b)
		default:
			el.Set(key, attr.Value)
		}
	}

	for _, child := range start.ChildElements() {
		prop, ok := getAttr(child.Attr, propAttr)
		if !ok {
			return nil, fmt.Errorf("moddle: %s child %s is not bound to a property", el.typ, child.FullTag())
		}
		value, err := d.decode(child)
		if err != nil {
			return nil, err
		}
		if d.reg.IsList(el.typ, prop) {
			el.Set(prop, append(el.Children(prop), value))
		} else {
			el.Set(prop, value)
		}
	}

	return el, nil
}

func getAttr(attrs []etree.Attr, name string) (string, bool) {
	for _, attr := range attrs {
		if attr.FullKey() == name {
			return attr.Value, true
		}
	}
	return "", false
}
