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

	"github.com/spf13/cobra"
	"github.com/vine-io/propanel/template"
)

func newValidateCmd() *cobra.Command {
	var schemaVersion string
	cmd := &cobra.Command{
		Use:   "validate [dir]",
		Short: "Validate the element templates found in dir",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var dir string
			if len(args) > 0 {
				dir = args[0]
			}
			dir, err := templateDir(dir)
			if err != nil {
				return err
			}

			descriptors, err := template.LoadFS(os.DirFS(dir))
			if err != nil {
				return err
			}
			v := template.NewValidator(template.WithSchemaVersion(schemaVersion)).AddAll(descriptors)

			out := cmd.OutOrStdout()
			for _, tpl := range v.ValidTemplates() {
				fmt.Fprintf(out, "ok\t%s\n", tpl)
			}
			for _, e := range v.Errors() {
				fmt.Fprintf(out, "error\t%v\n", e)
			}
			if n := len(v.Errors()); n > 0 {
				return fmt.Errorf("%s: %d invalid template(s)", dir, n)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&schemaVersion, "schema-version", template.SupportedSchemaVersion, "newest supported $schema version")
	return cmd
}
