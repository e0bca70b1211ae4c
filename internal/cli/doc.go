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
Package cli provides the root command for the yourang CLI.

The command tree is:

	yourang
	├── run           Run a resource operation over a batch of items
	├── operations    List resources, operations and parameters
	├── credentials   Store, test and remove the API key
	├── mcp           Serve operations as MCP tools
	└── version       Show version

From main.go:

	cli.SetVersion(version, commit, date)
	if err := cli.NewRootCommand().Execute(); err != nil {
	    cli.HandleExitError(err)
	}

# Global Flags

All commands inherit these flags:

	--verbose, -v    Debug logging
	--quiet, -q      Only log errors
	--json           Output in JSON format
	--config         Path to config file
*/
package cli
