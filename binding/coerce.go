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

package binding

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/vine-io/propanel/template"
)

// text coerces a scalar value to the string stored in the moddle tree.
func text(bt template.BindingType, v any) (string, error) {
	switch tt := v.(type) {
	case nil:
		return "", nil
	case string:
		return tt, nil
	case []byte:
		return string(tt), nil
	case bool:
		return strconv.FormatBool(tt), nil
	case int:
		return strconv.Itoa(tt), nil
	case int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", tt), nil
	case float32:
		return decimal.NewFromFloat32(tt).String(), nil
	case float64:
		return decimal.NewFromFloat(tt).String(), nil
	case decimal.Decimal:
		return tt.String(), nil
	case fmt.Stringer:
		return tt.String(), nil
	default:
		return "", InvalidValue(bt, "cannot store %T as text", v)
	}
}

func boolean(bt template.BindingType, v any) (bool, error) {
	switch tt := v.(type) {
	case nil:
		return false, nil
	case bool:
		return tt, nil
	case string:
		if tt == "" {
			return false, nil
		}
		b, err := strconv.ParseBool(tt)
		if err != nil {
			return false, InvalidValue(bt, "%q is not a boolean", tt)
		}
		return b, nil
	default:
		return false, InvalidValue(bt, "cannot store %T as boolean", v)
	}
}

// stringList accepts []string and []any of scalars.
func stringList(bt template.BindingType, v any) ([]string, bool, error) {
	switch tt := v.(type) {
	case []string:
		out := make([]string, len(tt))
		copy(out, tt)
		return out, true, nil
	case []any:
		out := make([]string, 0, len(tt))
		for _, item := range tt {
			s, err := text(bt, item)
			if err != nil {
				return nil, true, err
			}
			out = append(out, s)
		}
		return out, true, nil
	default:
		return nil, false, nil
	}
}

// stringMap accepts map[string]string and map[string]any of scalars.
func stringMap(bt template.BindingType, v any) (map[string]string, bool, error) {
	switch tt := v.(type) {
	case map[string]string:
		out := make(map[string]string, len(tt))
		for k, value := range tt {
			out[k] = value
		}
		return out, true, nil
	case map[string]any:
		out := make(map[string]string, len(tt))
		for k, value := range tt {
			s, err := text(bt, value)
			if err != nil {
				return nil, true, err
			}
			out[k] = s
		}
		return out, true, nil
	default:
		return nil, false, nil
	}
}

func mapKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
