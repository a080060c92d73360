// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package metadata

import (
	"fmt"
	"strconv"
	"strings"
)

// Finding is one validation problem in a Document.
type Finding struct {
	Field   Field
	Message string
}

func (f Finding) String() string {
	return fmt.Sprintf("%s: %s", f.Field, f.Message)
}

// Check inspects a Document for values that are accepted but likely wrong.
// Registration and merging never call it; it exists for hosts that want to
// report problems before publishing.
func Check(doc Document) []Finding {
	var findings []Finding

	for i, l := range doc.Licenses {
		switch {
		case strings.TrimSpace(l.Type) == "":
			findings = append(findings, Finding{FieldLicenses, fmt.Sprintf("entry %d has no license type", i)})
		default:
			if _, ok := LookupLicense(l.Type); !ok {
				findings = append(findings, Finding{FieldLicenses, fmt.Sprintf("entry %d: unrecognized license identifier %q", i, l.Type)})
			}
		}
	}

	seen := make(map[string]int)
	for i, dev := range doc.Developers {
		if dev.ID == "" {
			findings = append(findings, Finding{FieldDevelopers, fmt.Sprintf("entry %d has no id", i)})
			continue
		}
		if prev, ok := seen[dev.ID]; ok {
			findings = append(findings, Finding{FieldDevelopers, fmt.Sprintf("entry %d repeats id %q from entry %d", i, dev.ID, prev)})
			continue
		}
		seen[dev.ID] = i
	}

	if y := doc.InceptionYear; y != "" {
		if _, err := strconv.Atoi(y); err != nil || len(y) != 4 {
			findings = append(findings, Finding{FieldInceptionYear, fmt.Sprintf("%q is not a four-digit year", y)})
		}
	}

	return findings
}
