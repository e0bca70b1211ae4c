// Copyright 2025 Tom Barlow
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
Package secrets resolves the Yourang API key from environment variables
or the OS keychain.

Configuration values may reference a secret instead of holding it:

	api_key: ${YOURANG_TOKEN}        # environment variable
	api_key: env:YOURANG_TOKEN       # same, explicit scheme
	api_key: keychain:api-key        # OS keychain entry under service "yourang"

Any other value is used as the key itself. When no key is configured the
CLI falls back to the keychain entry written by "yourang credentials set".

On macOS the system Keychain is used, on Linux the Secret Service API, and
on Windows the Credential Manager.
*/
package secrets
