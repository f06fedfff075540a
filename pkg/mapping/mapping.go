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

package mapping

import (
	"encoding/json"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// ErrParse is returned when the model output is not a valid mapping
var ErrParse = errors.Base("unable to parse file mapping")

// 🔀 Operation is the structural change proposed for one file
type Operation string

const (
	OperationNone   Operation = "none"   // keep the file where it is
	OperationDelete Operation = "delete" // omit the file from the output
	OperationRename Operation = "rename" // write the file under Entry.Name
	OperationExpand Operation = "expand" // split into Entry.Names; treated as none
)

// Valid reports whether o is one of the known operations
func (o Operation) Valid() bool {
	switch o {
	case OperationNone, OperationDelete, OperationRename, OperationExpand:
		return true
	default:
		return false
	}
}

// 📄 Entry is the mapping decision for a single file
type Entry struct {
	Operation Operation `json:"operation"`
	Name      string    `json:"name,omitempty"`  // rename target
	Names     []string  `json:"names,omitempty"` // expand targets
}

// UnmarshalJSON rejects unknown operations
func (e *Entry) UnmarshalJSON(data []byte) error {
	type entry Entry
	var raw entry
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if !raw.Operation.Valid() {
		return errors.Errorf("unknown operation %q", raw.Operation)
	}
	*e = Entry(raw)
	return nil
}

// 🗺️ Mapping is keyed by a file's path relative to the input folder
type Mapping map[string]Entry

// Lookup returns the entry for name, defaulting to none
func (m Mapping) Lookup(name string) Entry {
	if entry, ok := m[name]; ok {
		return entry
	}
	return Entry{Operation: OperationNone}
}

// Deleted reports whether name is dropped from the output
func (m Mapping) Deleted(name string) bool {
	return m.Lookup(name).Operation == OperationDelete
}

// OutputName returns the relative output path for name.
// A rename without a target keeps the original name.
func (m Mapping) OutputName(name string) string {
	entry := m.Lookup(name)
	if entry.Operation == OperationRename && entry.Name != "" {
		return entry.Name
	}
	return name
}

// Parse decodes the model's completion text into a Mapping
func Parse(text string) (Mapping, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, errors.Errorf("%w: empty response", ErrParse)
	}

	var m Mapping
	if err := json.Unmarshal([]byte(trimmed), &m); err != nil {
		return nil, errors.Errorf("%w: %s", ErrParse, err.Error())
	}
	if m == nil {
		return nil, errors.Errorf("%w: expected a JSON object", ErrParse)
	}
	return m, nil
}

// Restrict drops entries whose key is not one of files and returns the dropped keys
func (m Mapping) Restrict(files []string) []string {
	known := make(map[string]struct{}, len(files))
	for _, f := range files {
		known[f] = struct{}{}
	}

	var dropped []string
	for name := range m {
		if _, ok := known[name]; !ok {
			dropped = append(dropped, name)
			delete(m, name)
		}
	}
	return dropped
}
