package sanitization

import (
	"regexp"
	"strings"
)

// LogicalIdSanitizer produces CloudFormation logical ids, which must be alphanumeric and start with a letter.
var LogicalIdSanitizer = NewSanitizer(
	// strip any leading non alpha characters
	Rule{
		Pattern:     regexp.MustCompile(`^[^a-zA-Z]+`),
		Replacement: "",
	},
	// strip any other invalid characters
	Rule{
		Pattern:     regexp.MustCompile(`[^a-zA-Z0-9]+`),
		Replacement: "",
	},
)

// ConstructIdSanitizer converts free-form names (eg from a stack definition file) into construct ids usable
// as resource names.
var ConstructIdSanitizer = NewSanitizer(
	// replace whitespace with "-"
	Rule{
		Pattern:     regexp.MustCompile(`\s+`),
		Replacement: "-",
	},
	// strip characters not allowed in resource names, including the path separator
	Rule{
		Pattern:     regexp.MustCompile(`[^a-zA-Z0-9_.\-]+`),
		Replacement: "",
	},
)

// LatticeNameSanitizer produces names accepted by VPC Lattice for generated resources: lower case alphanumeric
// characters and hyphens, no leading or trailing hyphen, at most 63 characters.
var LatticeNameSanitizer = NewSanitizer(
	Rule{
		Pattern:     regexp.MustCompile(`[A-Z]+`),
		ReplaceFunc: strings.ToLower,
	},
	Rule{
		Pattern:     regexp.MustCompile(`[^a-z0-9]+`),
		Replacement: "-",
	},
	Rule{
		Pattern:     regexp.MustCompile(`^(.{63}).+$`),
		Replacement: "$1",
	},
	Rule{
		Pattern:     regexp.MustCompile(`^-+|-+$`),
		Replacement: "",
	},
)
