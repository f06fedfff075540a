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
Package mapping plans file-level restructuring with a remote model.

🎯 Purpose:
- Renders a few-shot prompt with the instructions and relative file names
- Makes one deterministic completion call (temperature 0, 200 tokens)
- Parses the JSON object answer into a Mapping

🔀 Operations:

	none    {"operation": "none"}
	delete  {"operation": "delete"}
	rename  {"operation": "rename", "name": "new/path.ts"}
	expand  {"operation": "expand", "names": ["a.ts", "b.ts"]}

expand is accepted but not materialized: downstream it behaves like none.
Files missing from the mapping are none. Keys that do not name an input file
are dropped.
*/
package mapping
