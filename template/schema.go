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
	"regexp"

	"github.com/coreos/go-semver/semver"
)

var schemaVersionPattern = regexp.MustCompile(`\d+\.\d+\.\d+`)

// SchemaVersion extracts the semantic version embedded in a $schema URI.
func SchemaVersion(uri string) (string, bool) {
	v := schemaVersionPattern.FindString(uri)
	return v, v != ""
}

// supportsSchema reports whether version is not newer than supported.
// Versions that cannot be parsed are not supported.
func supportsSchema(version, supported string) bool {
	v, err := semver.NewVersion(version)
	if err != nil {
		return false
	}
	max, err := semver.NewVersion(supported)
	if err != nil {
		return false
	}
	return !max.LessThan(*v)
}
