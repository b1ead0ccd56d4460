package jnlp

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kb-labs/jnlp/internal/feature"
)

// TestMarshalEmptyFeature pins the serialized shape of the fixed blocks.
func TestMarshalEmptyFeature(t *testing.T) {
	data, err := Build(&feature.Feature{}, Params{
		Vendor:   "V",
		Title:    "T",
		Codebase: "http://example.com",
	}).Marshal()
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	want := `<?xml version="1.0" encoding="UTF-8"?>
<jnlp spec="1.0+" codebase="http://example.com">
   <information>
      <title>T</title>
      <vendor>V</vendor>
      <offline-allowed></offline-allowed>
   </information>
   <security>
      <all-permissions></all-permissions>
   </security>
   <component-desc></component-desc>
   <resources>
      <j2se version="1.6+"></j2se>
   </resources>
</jnlp>
`
	if diff := cmp.Diff(want, string(data)); diff != "" {
		t.Errorf("Marshal() mismatch (-want +got):\n%s", diff)
	}
}

// TestMarshalPluginAttributes verifies os/arch are attributes of the
// resources element and omitted when empty.
func TestMarshalPluginAttributes(t *testing.T) {
	f := &feature.Feature{Plugins: []feature.Plugin{
		{ID: "core", Version: "1.0", OS: "linux", Arch: "x86_64"},
		{ID: "ui", Version: "1.0"},
	}}
	data, err := Build(f, Params{Codebase: "http://x"}).Marshal()
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	out := string(data)

	for _, s := range []string{
		`<resources os="Linux" arch="x86_64">`,
		`<resources os="Linux" arch="amd64">`,
		`<jar href="plugins/core_1.0.jar"></jar>`,
		`<jar href="plugins/ui_1.0.jar"></jar>`,
	} {
		if !strings.Contains(out, s) {
			t.Errorf("output missing %q:\n%s", s, out)
		}
	}
	if strings.Contains(out, `os=""`) || strings.Contains(out, `arch=""`) {
		t.Errorf("output contains empty attribute:\n%s", out)
	}
}

// TestMarshalEscapes verifies caller strings are escaped as XML text.
func TestMarshalEscapes(t *testing.T) {
	data, err := Build(&feature.Feature{}, Params{
		Vendor:   "Smith & Sons",
		Title:    "<Tools>",
		Codebase: `http://x/?a=1&b="2"`,
	}).Marshal()
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	out := string(data)

	for _, s := range []string{"Smith &amp; Sons", "&lt;Tools&gt;", "a=1&amp;b=&#34;2&#34;"} {
		if !strings.Contains(out, s) {
			t.Errorf("output missing %q:\n%s", s, out)
		}
	}
}

// TestParseRoundTrip verifies a written descriptor reads back to the same tree.
func TestParseRoundTrip(t *testing.T) {
	f := &feature.Feature{Plugins: []feature.Plugin{
		{ID: "a", Version: "1", OS: "win32", Arch: "x86"},
		{ID: "b", Version: "2"},
	}}
	want := Build(f, Params{Vendor: "V", Title: "T", Codebase: "http://x"})

	var buf bytes.Buffer
	if _, err := want.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo() error = %v", err)
	}

	got, err := Parse(buf.Bytes())
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if diff := cmp.Diff(want.Jars(), got.Jars()); diff != "" {
		t.Errorf("Jars() mismatch (-want +got):\n%s", diff)
	}
	if got.Codebase != want.Codebase || got.Information != want.Information {
		t.Errorf("header = %q %+v, want %q %+v", got.Codebase, got.Information, want.Codebase, want.Information)
	}
}

// TestParseInvalid verifies garbage input is rejected.
func TestParseInvalid(t *testing.T) {
	if _, err := Parse([]byte("<jnlp><resources></jnlp>")); err == nil {
		t.Error("Parse() error = nil, want error")
	}
}

// TestOutputPath verifies the jar → jnlp naming rule.
func TestOutputPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{filepath.Join("target", "site", "features", "com.example_1.0.0.jar"), filepath.Join("target", "site", "features", "com.example_1.0.0.jnlp")},
		{"feature.jar", "feature.jnlp"},
		{"feature.zip", "feature.jnlp"},
		{"ab", "ab.jnlp"},
		{filepath.Join("dir", "x"), filepath.Join("dir", "x.jnlp")},
	}
	for _, tt := range tests {
		if got := OutputPath(tt.in); got != tt.want {
			t.Errorf("OutputPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
