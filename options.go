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

package propanel

import (
	"github.com/vine-io/propanel/moddle"
	"github.com/vine-io/propanel/template"
)

type Options struct {
	ValidatorOptions []template.Option
	Factory          *moddle.Factory
}

type Option func(*Options)

func NewOptions(opts ...Option) *Options {
	var options Options
	for _, o := range opts {
		o(&options)
	}

	if options.Factory == nil {
		options.Factory = moddle.NewFactory(nil)
	}

	return &options
}

// WithValidatorOptions sets the options templates are validated with.
func WithValidatorOptions(opts ...template.Option) Option {
	return func(o *Options) {
		o.ValidatorOptions = append(o.ValidatorOptions, opts...)
	}
}

// WithFactory sets the Factory field of *Options to the specified value.
func WithFactory(f *moddle.Factory) Option {
	return func(o *Options) {
		o.Factory = f
	}
}
