// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"encoding/json"

	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// 🔍 Patterns is a list of glob patterns that can be written as a single string or a list
type Patterns []string

// UnmarshalJSON accepts either "pattern" or ["a", "b"]
func (p *Patterns) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*p = Patterns{single}
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return errors.Errorf("patterns must be a string or a list of strings: %w", err)
	}
	*p = list
	return nil
}

// UnmarshalYAML accepts either a scalar or a sequence of scalars
func (p *Patterns) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var single string
		if err := node.Decode(&single); err != nil {
			return errors.Errorf("decoding pattern: %w", err)
		}
		*p = Patterns{single}
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return errors.Errorf("decoding patterns: %w", err)
		}
		*p = list
	default:
		return errors.Errorf("patterns must be a string or a list of strings (line %d)", node.Line)
	}
	return nil
}

// patternsFromCty converts an HCL attribute value holding a string or a list of strings
func patternsFromCty(v cty.Value) (Patterns, error) {
	if v.IsNull() {
		return nil, nil
	}
	if !v.IsWhollyKnown() {
		return nil, errors.New("patterns must be known values")
	}

	ty := v.Type()
	if ty.Equals(cty.String) {
		return Patterns{v.AsString()}, nil
	}

	if !ty.IsListType() && !ty.IsTupleType() && !ty.IsSetType() {
		return nil, errors.Errorf("patterns must be a string or a list of strings, got %s", ty.FriendlyName())
	}

	out := Patterns{}
	for it := v.ElementIterator(); it.Next(); {
		_, elem := it.Element()
		if elem.IsNull() || !elem.Type().Equals(cty.String) {
			return nil, errors.Errorf("pattern entries must be strings, got %s", elem.Type().FriendlyName())
		}
		out = append(out, elem.AsString())
	}
	return out, nil
}
