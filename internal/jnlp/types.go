package jnlp

import "encoding/xml"

// Marker is an element with no attributes or content, such as
// <offline-allowed/> or <all-permissions/>.
type Marker struct{}

// Descriptor is a JNLP document tree.
type Descriptor struct {
	XMLName       xml.Name    `xml:"jnlp"`
	Spec          string      `xml:"spec,attr"`
	Codebase      string      `xml:"codebase,attr"`
	Information   Information `xml:"information"`
	Security      Security    `xml:"security"`
	ComponentDesc Marker      `xml:"component-desc"`
	Resources     []Resources `xml:"resources"`
}

// Information is the <information> block.
type Information struct {
	Title          string `xml:"title"`
	Vendor         string `xml:"vendor"`
	OfflineAllowed Marker `xml:"offline-allowed"`
}

// Security is the <security> block.
type Security struct {
	AllPermissions Marker `xml:"all-permissions"`
}

// Resources is one <resources> block. The default block carries J2SE;
// plugin blocks carry exactly one Jar.
type Resources struct {
	OS   string `xml:"os,attr,omitempty"`
	Arch string `xml:"arch,attr,omitempty"`
	J2SE *J2SE  `xml:"j2se,omitempty"`
	Jars []Jar  `xml:"jar"`
}

// J2SE declares the minimum Java runtime.
type J2SE struct {
	Version string `xml:"version,attr"`
}

// Jar references one downloadable jar relative to the codebase.
type Jar struct {
	Href string `xml:"href,attr"`
}

// Params are the caller-supplied descriptor strings.
type Params struct {
	Vendor   string
	Title    string
	Codebase string
}

// PluginResources returns the per-plugin resource blocks, i.e. everything
// after the default block.
func (d *Descriptor) PluginResources() []Resources {
	if len(d.Resources) == 0 {
		return nil
	}
	return d.Resources[1:]
}

// Jars returns one line per plugin resource block in document order, in the
// form "href [os=..] [arch=..]".
func (d *Descriptor) Jars() []string {
	var out []string
	for _, r := range d.PluginResources() {
		for _, j := range r.Jars {
			out = append(out, r.qualify(j.Href))
		}
	}
	return out
}

func (r Resources) qualify(href string) string {
	s := href
	if r.OS != "" {
		s += " os=" + r.OS
	}
	if r.Arch != "" {
		s += " arch=" + r.Arch
	}
	return s
}
