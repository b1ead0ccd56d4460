package jnlp

import "strings"

// ArchAliases maps a feature.xml arch value to the JNLP arch names emitted
// for it. Launchers disagree on naming, so one plugin is listed once per
// alias. Matching is exact and case-sensitive.
var ArchAliases = map[string][]string{
	"x86_64": {"x86_64", "amd64"},
	"x86":    {"x86", "i386", "i686"},
}

// OSRule maps a substring of the feature.xml os value to a JNLP os name.
type OSRule struct {
	Token string
	Name  string
}

// OSRules are applied in order and every matching rule overwrites the
// previous result, so a value containing both "win" and "linux" yields
// "Linux".
var OSRules = []OSRule{
	{Token: "win", Name: "Windows"},
	{Token: "mac", Name: "Mac"},
	{Token: "linux", Name: "Linux"},
}

// ArchFor returns the arch attributes for one plugin. An unknown or empty
// arch yields a single empty entry, meaning no arch attribute.
func ArchFor(arch string) []string {
	if aliases, ok := ArchAliases[arch]; ok {
		return aliases
	}
	return []string{""}
}

// OSFor returns the JNLP os attribute for a feature.xml os value, or "" if
// no rule matches.
func OSFor(os string) string {
	name := ""
	for _, r := range OSRules {
		if strings.Contains(os, r.Token) {
			name = r.Name
		}
	}
	return name
}
