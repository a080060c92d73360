// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package metadata

// LicenseInfo describes a well-known license identifier.
type LicenseInfo struct {
	ID   string
	Name string
	URL  string
}

var knownLicenses = map[string]LicenseInfo{
	"Apache-2.0":    {"Apache-2.0", "Apache License 2.0", "https://www.apache.org/licenses/LICENSE-2.0"},
	"MIT":           {"MIT", "MIT License", "https://opensource.org/licenses/MIT"},
	"BSD-2-Clause":  {"BSD-2-Clause", "BSD 2-Clause \"Simplified\" License", "https://opensource.org/licenses/BSD-2-Clause"},
	"BSD-3-Clause":  {"BSD-3-Clause", "BSD 3-Clause \"New\" or \"Revised\" License", "https://opensource.org/licenses/BSD-3-Clause"},
	"GPL-2.0-only":  {"GPL-2.0-only", "GNU General Public License v2.0 only", "https://www.gnu.org/licenses/old-licenses/gpl-2.0.html"},
	"GPL-3.0-only":  {"GPL-3.0-only", "GNU General Public License v3.0 only", "https://www.gnu.org/licenses/gpl-3.0.html"},
	"LGPL-2.1-only": {"LGPL-2.1-only", "GNU Lesser General Public License v2.1 only", "https://www.gnu.org/licenses/old-licenses/lgpl-2.1.html"},
	"LGPL-3.0-only": {"LGPL-3.0-only", "GNU Lesser General Public License v3.0 only", "https://www.gnu.org/licenses/lgpl-3.0.html"},
	"AGPL-3.0-only": {"AGPL-3.0-only", "GNU Affero General Public License v3.0 only", "https://www.gnu.org/licenses/agpl-3.0.html"},
	"MPL-2.0":       {"MPL-2.0", "Mozilla Public License 2.0", "https://www.mozilla.org/en-US/MPL/2.0/"},
	"EPL-2.0":       {"EPL-2.0", "Eclipse Public License 2.0", "https://www.eclipse.org/legal/epl-2.0/"},
	"ISC":           {"ISC", "ISC License", "https://opensource.org/licenses/ISC"},
	"Unlicense":     {"Unlicense", "The Unlicense", "https://unlicense.org/"},
	"CC0-1.0":       {"CC0-1.0", "Creative Commons Zero v1.0 Universal", "https://creativecommons.org/publicdomain/zero/1.0/"},
}

// LookupLicense returns the well-known license for an identifier.
func LookupLicense(id string) (LicenseInfo, bool) {
	info, ok := knownLicenses[id]
	return info, ok
}

// Info returns the well-known description of the license, if any.
func (l License) Info() (LicenseInfo, bool) {
	return LookupLicense(l.Type)
}
