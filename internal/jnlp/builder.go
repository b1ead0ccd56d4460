// Package jnlp builds Java Network Launch Protocol descriptors from a parsed
// Eclipse feature.
package jnlp

import (
	"github.com/kb-labs/jnlp/internal/feature"
)

const (
	// SpecVersion is the JNLP spec attribute on the root element.
	SpecVersion = "1.0+"
	// J2SEVersion is the minimum Java runtime declared by the default block.
	J2SEVersion = "1.6+"
)

// Build assembles the descriptor for f. It does not modify f and returns a
// finished tree; calling it twice with equal inputs yields equal output.
func Build(f *feature.Feature, p Params) *Descriptor {
	resources := []Resources{{J2SE: &J2SE{Version: J2SEVersion}}}
	for _, plugin := range f.Plugins {
		resources = append(resources, pluginResources(plugin)...)
	}

	return &Descriptor{
		Spec:     SpecVersion,
		Codebase: p.Codebase,
		Information: Information{
			Title:  p.Title,
			Vendor: p.Vendor,
		},
		Resources: resources,
	}
}

// pluginResources returns one block per arch alias of plugin, or none when
// the plugin is a placeholder.
func pluginResources(plugin feature.Plugin) []Resources {
	if !plugin.Shipped() {
		return nil
	}

	href := Href(plugin)
	os := OSFor(plugin.OS)
	arches := ArchFor(plugin.Arch)

	out := make([]Resources, 0, len(arches))
	for _, arch := range arches {
		out = append(out, Resources{
			OS:   os,
			Arch: arch,
			Jars: []Jar{{Href: href}},
		})
	}
	return out
}

// Href is the codebase-relative jar location of a plugin.
func Href(p feature.Plugin) string {
	return "plugins/" + p.ID + "_" + p.Version + ".jar"
}
