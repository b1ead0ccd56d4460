package jnlp

import "testing"

// TestOSFor verifies the substring rules and last-match-wins overlap.
func TestOSFor(t *testing.T) {
	tests := []struct {
		os   string
		want string
	}{
		{"", ""},
		{"win32", "Windows"},
		{"linux_gtk", "Linux"},
		{"linux", "Linux"},
		{"macosx", "Mac"},
		{"win32,linux_gtk", "Linux"},
		{"win32,macosx", "Mac"},
		{"macosx,win32", "Mac"},
		{"solaris", ""},
		{"Win32", ""},
		{"LINUX", ""},
	}
	for _, tt := range tests {
		if got := OSFor(tt.os); got != tt.want {
			t.Errorf("OSFor(%q) = %q, want %q", tt.os, got, tt.want)
		}
	}
}

// TestArchForUnknown verifies unknown arches map to a single unqualified block.
func TestArchForUnknown(t *testing.T) {
	for _, arch := range []string{"", "ppc64", "aarch64", "x86-64"} {
		got := ArchFor(arch)
		if len(got) != 1 || got[0] != "" {
			t.Errorf("ArchFor(%q) = %q, want [\"\"]", arch, got)
		}
	}
}

// TestArchAliasesCover verifies the alias table holds the canonical name first.
func TestArchAliasesCover(t *testing.T) {
	for arch, aliases := range ArchAliases {
		if len(aliases) == 0 || aliases[0] != arch {
			t.Errorf("ArchAliases[%q] = %q, want canonical name first", arch, aliases)
		}
	}
}
