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
Package config loads and validates codemod run configuration.

	+-----------+     +---------+     +-----------+
	| .yaml     |     |         |     |           |
	| .json     +---->+ Parser  +---->+  Config   |
	| .hcl      |     |         |     |           |
	+-----------+     +---------+     +-----------+

🎯 Purpose:
- Reads optional config files in YAML, JSON or HCL
- Accepts match/ignore patterns as a single string or a list
- Validates required fields and applies defaults

🔄 Flow:
1. CLI loads a file with Load (when --config is set)
2. Flags override file values
3. Validate runs before any filesystem or network access

📝 Notes:
The API key is never part of a config file. The CLI reads it from the
environment once at startup and places it in ModelArgs.APIKey.

🔍 Example:

	cfg, err := config.Load(ctx, ".codemod.yaml")
	if err != nil {
		return err
	}
	cfg.Instructions = "Translate javascript to typescript"
	if err := cfg.Validate(); err != nil {
		return err
	}
*/
package config
