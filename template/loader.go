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
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	json "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"
)

// LoadFS walks fsys and collects the descriptors of every JSON or YAML
// file. A file holds a single descriptor or an array of them. The result is
// meant to be handed to Validator.AddAll.
func LoadFS(fsys fs.FS) ([]any, error) {
	descriptors := make([]any, 0)
	if fsys == nil {
		return descriptors, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isTemplateFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("template: read %s: %w", path, err)
		}

		list, err := Parse(data, path)
		if err != nil {
			return err
		}
		descriptors = append(descriptors, list...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return descriptors, nil
}

// LoadFile reads the descriptors of a single file.
func LoadFile(path string) ([]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("template: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes a JSON or YAML document into raw descriptors. The format
// is chosen by the extension of source, documents of unknown extension are
// tried as JSON first.
func Parse(data []byte, source string) ([]any, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("template: file %s is empty", source)
	}

	var doc any
	switch strings.ToLower(filepath.Ext(source)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("template: parse %s: %w", source, err)
		}
	case ".json":
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("template: parse %s: %w", source, err)
		}
	default:
		if err := json.Unmarshal(data, &doc); err != nil {
			if err := yaml.Unmarshal(data, &doc); err != nil {
				return nil, fmt.Errorf("template: parse %s: invalid JSON or YAML", source)
			}
		}
	}

	if list, ok := doc.([]any); ok {
		return list, nil
	}
	return []any{doc}, nil
}

func isTemplateFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
