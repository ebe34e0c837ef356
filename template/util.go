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
	"math"
	"reflect"
	"strconv"

	"github.com/shopspring/decimal"
)

const noVersion = "_"

func versionKey(version int) string {
	if version == 0 {
		return noVersion
	}
	return strconv.Itoa(version)
}

// templateVersion reads the version of an undecoded descriptor. A missing
// version is 0, anything but a whole number is rejected.
func templateVersion(v any) (int, bool) {
	switch tt := v.(type) {
	case nil:
		return 0, true
	case int:
		return tt, true
	case int64:
		return int(tt), true
	case float64:
		if tt != math.Trunc(tt) || math.IsInf(tt, 0) {
			return 0, false
		}
		return int(tt), true
	default:
		return 0, false
	}
}

func intValue(v any) int {
	switch tt := v.(type) {
	case int:
		return tt
	case int64:
		return int(tt)
	case float64:
		return int(tt)
	case string:
		n, _ := strconv.Atoi(tt)
		return n
	default:
		return 0
	}
}

// stringValue formats scalars the way they read in a JSON document.
func stringValue(v any) string {
	switch tt := v.(type) {
	case nil:
		return ""
	case string:
		return tt
	case bool:
		return strconv.FormatBool(tt)
	case int:
		return strconv.Itoa(tt)
	case int64:
		return strconv.FormatInt(tt, 10)
	case float64:
		return decimal.NewFromFloat(tt).String()
	default:
		return fmt.Sprint(tt)
	}
}

func boolValue(v any) bool {
	switch tt := v.(type) {
	case bool:
		return tt
	case string:
		b, _ := strconv.ParseBool(tt)
		return b
	default:
		return false
	}
}

// asSlice accepts any slice or array value.
func asSlice(v any) ([]any, bool) {
	if list, ok := v.([]any); ok {
		return list, true
	}
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil, false
	}
	list := make([]any, rv.Len())
	for i := range list {
		list[i] = rv.Index(i).Interface()
	}
	return list, true
}

func asObject(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok && m != nil
}
