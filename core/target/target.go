package target

import (
	"bytes"
	"encoding/json"

	"golang.org/x/net/idna"
)

const (
	// NoFileSystemWebRoot marks a target that has no single physical web root.
	NoFileSystemWebRoot = "x"

	// MaxNames is the largest number of host names one certificate may carry.
	MaxNames = 100
)

// Validation holds the validation plugin selection and the opaque option
// blobs of each validation family. Blobs are owned by the plugin that wrote
// them and are never interpreted here.
type Validation struct {
	PluginName    string          `json:"plugin_name,omitempty"`
	DNSOptions    json.RawMessage `json:"dns_options,omitempty"`
	HTTPOptions   json.RawMessage `json:"http_options,omitempty"`
	WebDAVOptions json.RawMessage `json:"webdav_options,omitempty"`
}

// Clone returns a copy that shares no memory with v.
func (v Validation) Clone() Validation {
	return Validation{
		PluginName:    v.PluginName,
		DNSOptions:    bytes.Clone(v.DNSOptions),
		HTTPOptions:   bytes.Clone(v.HTTPOptions),
		WebDAVOptions: bytes.Clone(v.WebDAVOptions),
	}
}

// Target is a certificate target: either one catalog site or an aggregate of several.
type Target struct {
	SiteID           SiteID     `json:"site_id,omitempty"`
	Host             string     `json:"host"`
	HostIsDNS        bool       `json:"host_is_dns"`
	Sources          SiteSet    `json:"sources"`
	AllSites         bool       `json:"all_sites,omitempty"`
	AlternativeNames NameSet    `json:"alternative_names"`
	ExcludeBindings  NameSet    `json:"exclude_bindings"`
	Validation       Validation `json:"validation"`
	Hidden           bool       `json:"hidden,omitempty"`
	WebRootPath      string     `json:"web_root_path,omitempty"`
	PluginName       string     `json:"plugin_name,omitempty"`
}

// IsAggregate reports whether the target combines several catalog sites.
func (t *Target) IsAggregate() bool {
	return t.Sources.Len() > 0
}

// SourceSites returns the catalog sites the target was built from.
func (t *Target) SourceSites() SiteSet {
	if t.IsAggregate() {
		return NewSiteSet(t.Sources.IDs()...)
	}
	if t.SiteID == 0 {
		return SiteSet{}
	}
	return NewSiteSet(t.SiteID)
}

// Hosts returns the effective host list: Host when it is a DNS name, then the
// alternative names, minus the excluded bindings. With unicode set, IDN
// labels are rendered in Unicode; names that fail conversion are kept as is.
func (t *Target) Hosts(unicode bool) []string {
	var all NameSet
	if t.HostIsDNS {
		all.Add(t.Host)
	}
	all.AddAll(t.AlternativeNames.names...)

	var out NameSet
	for _, name := range all.names {
		if t.ExcludeBindings.Contains(name) {
			continue
		}
		if unicode {
			if u, err := idna.ToUnicode(name); err == nil {
				if t.ExcludeBindings.Contains(u) {
					continue
				}
				name = u
			}
		}
		out.Add(name)
	}
	return out.Names()
}

// Check verifies the target can be turned into a certificate request.
// Exclusions match in either IDN form, as in Split.
func (t *Target) Check() error {
	n := len(t.Hosts(true))
	switch {
	case n == 0:
		return ErrNoHosts
	case n > MaxNames:
		return ErrTooManyNames
	}
	return nil
}

// InheritSettings copies the settings shared by every part of an aggregate:
// the excluded bindings and the validation configuration.
func (t *Target) InheritSettings(from *Target) {
	if from == nil {
		return
	}
	t.ExcludeBindings = from.ExcludeBindings.Clone()
	t.Validation = from.Validation.Clone()
}

// Clone returns a deep copy of t.
func (t *Target) Clone() *Target {
	if t == nil {
		return nil
	}
	c := *t
	c.Sources = NewSiteSet(t.Sources.ids...)
	c.AlternativeNames = t.AlternativeNames.Clone()
	c.ExcludeBindings = t.ExcludeBindings.Clone()
	c.Validation = t.Validation.Clone()
	return &c
}
