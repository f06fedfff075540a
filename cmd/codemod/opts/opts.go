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

package opts

import (
	"github.com/walteh/codemod/pkg/log"
)

// Credentials maps a provider name to the API key found in the environment
type Credentials map[string]string

// credentialEnv names the environment variable holding each provider's key
var credentialEnv = map[string]string{
	"openai": "OPENAI_API_KEY",
	"gemini": "GEMINI_API_KEY",
}

// 🔑 LoadCredentials reads every known provider key once, at process start
func LoadCredentials(getenv func(string) string) Credentials {
	creds := make(Credentials, len(credentialEnv))
	for provider, env := range credentialEnv {
		if v := getenv(env); v != "" {
			creds[provider] = v
		}
	}
	return creds
}

// RootOpts holds the options shared by all commands
type RootOpts struct {
	ConfigFile  string
	Debug       bool
	Provider    string
	APIKey      string
	Credentials Credentials
	UserLogger  *log.UserLogger
}

// ResolveAPIKey returns the --api-key flag value, or the key loaded for provider
func (o *RootOpts) ResolveAPIKey(provider string) string {
	if o.APIKey != "" {
		return o.APIKey
	}
	return o.Credentials[provider]
}
