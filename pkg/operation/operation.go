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

package operation

import (
	"time"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/codemod/pkg/mapping"
	"github.com/walteh/codemod/pkg/model"
	"github.com/walteh/codemod/pkg/output"
)

// MaxInputFiles is the largest number of files a single run accepts
const MaxInputFiles = 5

// ErrTooManyFiles is returned after enumeration, before any remote call
var ErrTooManyFiles = errors.Base("too many input files")

// 🔧 Options contains configuration for the runner
type Options struct {
	// Client performs the remote model calls
	Client model.Client
	// OnStateChange is called on every transition, including into StateFailed
	OnStateChange func(State)
}

// 📊 Result is the outcome of a run. Nothing in it outlives the process.
type Result struct {
	ID           string
	Started      time.Time
	Elapsed      time.Duration
	State        State
	InputFolder  string
	OutputFolder string
	Files        []string
	Mapping      mapping.Mapping
	Records      []output.Record // empty for a dry run
}
