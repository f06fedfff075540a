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
	"strconv"
	"strings"
)

const promptHeader = `Create a high level file mapping to be used to perform a code modification on a code base.
Respond with the mapping in a json format.
If nothing should happen to the file structure, which often happens when the code modification request is intended for the code inside of files, use the "operation" "none".
If a file is to be deleted, use the "operation" "delete".
If a file is to be renamed, use the "operation" "rename" and put the new path in "name".
If a file is to be expanded into multiple files, use the "operation" "expand" and put the new paths in "names".
Examples:
Input:

Instructions: "convert javascript to typescript"
["folderName/test.js", "folderName/testTwo.js"]

Output:
{
  "folderName/test.js": {
    "operation": "rename",
    "name": "folderName/test.ts"
  },
  "folderName/testTwo.js": {
    "operation": "rename",
    "name": "folderName/testTwo.ts"
  }
}

Input:

Instructions: "convert usage of the \"async\" package to use \"async/await\""
["pineapples/index.js", "pineapples/main.js"]

Output:
{
  "pineapples/index.js": {
    "operation": "none"
  },
  "pineapples/main.js": {
    "operation": "none"
  }
}

Now it's your turn.

Input:

`

// 💬 BuildPrompt renders the planning prompt for the instructions and relative file names
func BuildPrompt(instructions string, files []string) string {
	quoted := make([]string, len(files))
	for i, f := range files {
		quoted[i] = strconv.Quote(f)
	}

	var sb strings.Builder
	sb.WriteString(promptHeader)
	sb.WriteString("Instructions: ")
	sb.WriteString(strconv.Quote(instructions))
	sb.WriteString("\n[")
	sb.WriteString(strings.Join(quoted, ", "))
	sb.WriteString("]\n\nOutput:\n")
	return sb.String()
}
