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

package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vine-io/propanel"
	"github.com/vine-io/propanel/command"
	"github.com/vine-io/propanel/moddle"
	"github.com/vine-io/propanel/template"
	log "github.com/vine-io/vine/lib/logger"
)

type applyOptions struct {
	dir      string
	template string
	element  string
	node     string
	values   []string
}

func newApplyCmd() *cobra.Command {
	o := &applyOptions{}
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply an element template to a node of a BPMN document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&o.dir, "dir", DefaultTemplateDir, "element template directory")
	flags.StringVar(&o.template, "template", "", "template to apply, id[@version]")
	flags.StringVar(&o.element, "element", "", "document holding the node")
	flags.StringVar(&o.node, "node", "", "id of the node to apply the template to")
	flags.StringArrayVar(&o.values, "set", nil, "entry value as key=value, key is the entry id or label")
	_ = cmd.MarkFlagRequired("template")
	_ = cmd.MarkFlagRequired("element")
	_ = cmd.MarkFlagRequired("node")
	return cmd
}

// parseRef splits id[@version].
func parseRef(ref string) (string, int, error) {
	id, v, ok := strings.Cut(ref, "@")
	if !ok {
		return id, 0, nil
	}
	version, err := strconv.Atoi(v)
	if err != nil {
		return "", 0, fmt.Errorf("invalid template version %q", v)
	}
	return id, version, nil
}

func (o *applyOptions) run(cmd *cobra.Command) error {
	dir, err := templateDir(o.dir)
	if err != nil {
		return err
	}
	descriptors, err := template.LoadFS(os.DirFS(dir))
	if err != nil {
		return err
	}

	panel := propanel.New(command.NewStack())
	for _, e := range panel.Load(descriptors) {
		log.Warnf("skip template: %v", e)
	}

	id, version, err := parseRef(o.template)
	if err != nil {
		return err
	}
	tpl, ok := panel.Store().Get(id, version)
	if version == 0 && !ok {
		tpl, ok = panel.Store().Latest(id)
	}
	if !ok {
		return fmt.Errorf("template %s not found in %s", o.template, dir)
	}

	f, err := os.Open(o.element)
	if err != nil {
		return err
	}
	defer f.Close()
	root, err := moddle.Decode(f, nil)
	if err != nil {
		return fmt.Errorf("decode %s: %w", o.element, err)
	}

	node := root.FindByID(o.node)
	if node == nil {
		return fmt.Errorf("node %s not found in %s", o.node, o.element)
	}
	shape := moddle.NewShape(node)
	if !applicable(panel, shape, tpl) {
		return fmt.Errorf("template %s does not apply to %s <%s>", tpl, o.node, node.Type())
	}

	if err = panel.Apply(shape, tpl); err != nil {
		return err
	}
	entries := panel.Entries(shape, tpl)
	for _, kv := range o.values {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			return fmt.Errorf("invalid value %q, want key=value", kv)
		}
		entry := findEntry(entries, key)
		if entry == nil {
			return fmt.Errorf("template %s has no entry %s", tpl, key)
		}
		if err = entry.Set(value); err != nil {
			return fmt.Errorf("set %s: %w", key, err)
		}
	}

	return moddle.Encode(cmd.OutOrStdout(), root)
}

func applicable(panel *propanel.Panel, shape *moddle.Shape, tpl *template.Template) bool {
	for _, typ := range tpl.AppliesTo {
		if panel.Is(shape, typ) {
			return true
		}
	}
	return false
}

func findEntry(entries []*propanel.Entry, key string) *propanel.Entry {
	for _, entry := range entries {
		if entry.ID == key {
			return entry
		}
	}
	for _, entry := range entries {
		if entry.Label == key {
			return entry
		}
	}
	return nil
}
