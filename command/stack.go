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
	"fmt"
	"sync"

	"github.com/google/uuid"
	log "github.com/vine-io/vine/lib/logger"
)

type action struct {
	tx      string
	name    string
	handler Handler
	ctx     *Context
}

// Stack executes commands and keeps the history for undo and redo. Every
// top-level Execute opens a transaction which Undo and Redo treat as a unit.
// Commands are executed by a single writer, only the history accessors are
// safe for concurrent use.
type Stack struct {
	sync.Mutex

	handlers map[string]Handler
	actions  []*action
	// number of applied actions, the rest is the redo tail
	applied int

	depth   int
	tx      string
	pending []*action
}

// NewStack returns a stack with the built-in handlers registered.
func NewStack() *Stack {
	s := &Stack{handlers: map[string]Handler{}}
	s.handlers[UpdateModdleProperties] = &updateModdleProperties{}
	s.handlers[UpdateProperties] = &updateProperties{}
	s.handlers[UpdateBusinessObjectList] = &updateBusinessObjectList{}
	s.handlers[MultiCommand] = &multiCommand{stack: s}
	return s
}

func (s *Stack) Register(name string, handler Handler) {
	s.Lock()
	defer s.Unlock()
	s.handlers[name] = handler
}

func (s *Stack) handler(name string) (Handler, bool) {
	s.Lock()
	defer s.Unlock()
	h, ok := s.handlers[name]
	return h, ok
}

// Execute runs the command registered under name. When called from within a
// PreExecute the command joins the running transaction. A failing command
// reverts everything done in its transaction.
func (s *Stack) Execute(name string, ctx *Context) error {
	h, ok := s.handler(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	if ctx == nil {
		ctx = &Context{}
	}

	root := s.depth == 0
	if root {
		s.tx = uuid.New().String()
		s.pending = nil
	}

	s.depth++
	err := s.run(name, h, ctx)
	s.depth--

	if !root {
		return err
	}

	if err != nil {
		for i := len(s.pending) - 1; i >= 0; i-- {
			a := s.pending[i]
			if e := a.handler.Revert(a.ctx); e != nil {
				log.Errorf("revert %s in transaction %s: %v", a.name, a.tx, e)
			}
		}
		s.pending = nil
		return err
	}

	s.Lock()
	s.actions = append(s.actions[:s.applied], s.pending...)
	s.applied = len(s.actions)
	s.Unlock()
	log.Debugf("command %s executed in transaction %s (%d actions)", name, s.tx, len(s.pending))
	s.pending = nil
	return nil
}

// ExecuteCommand is a shorthand for Execute(c.Name, c.Context). A nil command
// is a no-op.
func (s *Stack) ExecuteCommand(c *Command) error {
	if c == nil {
		return nil
	}
	return s.Execute(c.Name, c.Context)
}

func (s *Stack) run(name string, h Handler, ctx *Context) error {
	if pre, ok := h.(PreExecutor); ok {
		if err := pre.PreExecute(ctx); err != nil {
			return err
		}
	}
	if err := h.Execute(ctx); err != nil {
		return fmt.Errorf("execute %s: %w", name, err)
	}
	s.pending = append(s.pending, &action{tx: s.tx, name: name, handler: h, ctx: ctx})
	return nil
}

func (s *Stack) CanUndo() bool {
	s.Lock()
	defer s.Unlock()
	return s.applied > 0
}

func (s *Stack) CanRedo() bool {
	s.Lock()
	defer s.Unlock()
	return s.applied < len(s.actions)
}

// Undo reverts the last applied transaction.
func (s *Stack) Undo() error {
	s.Lock()
	defer s.Unlock()

	if s.applied == 0 {
		return nil
	}
	tx := s.actions[s.applied-1].tx
	for s.applied > 0 && s.actions[s.applied-1].tx == tx {
		a := s.actions[s.applied-1]
		if err := a.handler.Revert(a.ctx); err != nil {
			return fmt.Errorf("revert %s: %w", a.name, err)
		}
		s.applied--
	}
	return nil
}

// Redo applies the next undone transaction again.
func (s *Stack) Redo() error {
	s.Lock()
	defer s.Unlock()

	if s.applied == len(s.actions) {
		return nil
	}
	tx := s.actions[s.applied].tx
	for s.applied < len(s.actions) && s.actions[s.applied].tx == tx {
		a := s.actions[s.applied]
		if err := a.handler.Execute(a.ctx); err != nil {
			return fmt.Errorf("execute %s: %w", a.name, err)
		}
		s.applied++
	}
	return nil
}

// Clear drops the history.
func (s *Stack) Clear() {
	s.Lock()
	defer s.Unlock()
	s.actions = nil
	s.applied = 0
}
