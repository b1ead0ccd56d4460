package feature

import "encoding/xml"

// excludedVersion marks placeholder plugin entries that are not shipped.
const excludedVersion = "0.0.0"

// Plugin is one <plugin> child of feature.xml.
type Plugin struct {
	ID      string `xml:"id,attr"`
	Version string `xml:"version,attr"`
	OS      string `xml:"os,attr"`
	Arch    string `xml:"arch,attr"`
	WS      string `xml:"ws,attr"`
	NL      string `xml:"nl,attr"`
	Unpack  string `xml:"unpack,attr"`
}

// Shipped reports whether the plugin is actually part of the feature.
// Entries without a version or with version 0.0.0 are placeholders.
func (p Plugin) Shipped() bool {
	return p.Version != "" && p.Version != excludedVersion
}

// Feature is the parsed feature.xml. The root element name is not checked.
type Feature struct {
	XMLName      xml.Name
	ID           string   `xml:"id,attr"`
	Version      string   `xml:"version,attr"`
	Label        string   `xml:"label,attr"`
	ProviderName string   `xml:"provider-name,attr"`
	Plugins      []Plugin `xml:"plugin"`
}

// Shipped returns the plugins that pass Plugin.Shipped, in document order.
func (f *Feature) Shipped() []Plugin {
	out := make([]Plugin, 0, len(f.Plugins))
	for _, p := range f.Plugins {
		if p.Shipped() {
			out = append(out, p)
		}
	}
	return out
}
