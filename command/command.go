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

// Package command implements an undoable command stack over the moddle tree.
package command

import (
	"errors"

	"github.com/vine-io/propanel/moddle"
)

const (
	// UpdateModdleProperties sets Properties on ModdleElement, or on the
	// business object of Element when ModdleElement is nil.
	UpdateModdleProperties = "element.updateModdleProperties"
	// UpdateProperties sets Properties on the business object of Element.
	UpdateProperties = "element.updateProperties"
	// UpdateBusinessObjectList adds and removes entries of a collection.
	UpdateBusinessObjectList = "properties-panel.update-businessobject-list"
	// MultiCommand executes Commands as one undoable unit.
	MultiCommand = "properties-panel.multi-command-executor"
)

var ErrUnknownCommand = errors.New("unknown command")

// Context carries the arguments of a command. Handlers record whatever they
// need to revert the command on it.
type Context struct {
	Element       *moddle.Shape
	ModdleElement *moddle.Element
	Properties    map[string]any

	CurrentObject   *moddle.Element
	PropertyName    string
	ObjectsToAdd    []*moddle.Element
	ObjectsToRemove []*moddle.Element

	Commands []*Command

	// Extra holds the payload of commands registered outside this package.
	Extra any

	oldProperties map[string]any
	oldList       []*moddle.Element
}

// Command is a named intent, executed by the handler registered under Name.
type Command struct {
	Name    string
	Context *Context
}

func New(name string, ctx *Context) *Command {
	return &Command{Name: name, Context: ctx}
}

// Multi wraps cmds into a single multi command. It returns nil for an empty
// list and the command itself when only one is given.
func Multi(cmds ...*Command) *Command {
	list := make([]*Command, 0, len(cmds))
	for _, c := range cmds {
		if c != nil {
			list = append(list, c)
		}
	}
	switch len(list) {
	case 0:
		return nil
	case 1:
		return list[0]
	default:
		return New(MultiCommand, &Context{Commands: list})
	}
}

// Flatten expands nested multi commands into the plain commands they run.
func Flatten(c *Command) []*Command {
	if c == nil {
		return nil
	}
	if c.Name != MultiCommand {
		return []*Command{c}
	}
	out := make([]*Command, 0, len(c.Context.Commands))
	for _, child := range c.Context.Commands {
		out = append(out, Flatten(child)...)
	}
	return out
}

// Handler applies and reverts one kind of command.
type Handler interface {
	Execute(ctx *Context) error
	Revert(ctx *Context) error
}

// PreExecutor is implemented by handlers that issue nested commands before
// their own Execute. Nested commands join the transaction of the outer one.
type PreExecutor interface {
	PreExecute(ctx *Context) error
}
