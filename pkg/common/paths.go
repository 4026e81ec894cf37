// Copyright © 2024 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package rpsplus

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// ConfigName is the path of the configuration file relative to the XDG
// configuration directories.
var ConfigName = filepath.Join("rpsplus", "config.yaml")

// FindConfig returns the path of the first configuration file found in the
// XDG configuration directories, or an empty string if there is none. It
// never creates any file or directory.
func FindConfig() string {
	path, err := xdg.SearchConfigFile(ConfigName)
	if err != nil {
		return ""
	}

	return path
}
