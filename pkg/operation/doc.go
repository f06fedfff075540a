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

/*
Package operation sequences a codemod run.

🎯 Purpose:
- Validates the run configuration before touching the filesystem
- Enumerates input files and enforces the file-count limit
- Asks the model for a file mapping, then for each file's new content
- Hands the edited records to the output writer

🔄 Flow:

	Idle → Validating → Enumerating → Planning → Editing → Writing → Done

Any failure moves the run to Failed and reports the causing error. Nothing is
retried and nothing is written unless every edit succeeded.

🔍 Example:

	runner, err := operation.New(operation.Options{Client: client})
	if err != nil {
		return err
	}
	res, err := runner.Run(ctx, cfg)

Plan stops after the Planning state and writes nothing.
*/
package operation
