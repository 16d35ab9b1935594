// Package target defines the certificate target model shared by the plugin
// engine, the site catalog and the renewal stores.
//
// A Target describes the set of host names a certificate must cover and the
// settings needed to validate and store it. A target either represents one
// site from the catalog (SiteID set, Sources empty) or an aggregate of several
// sites (SiteID zero, Sources listing the constituent sites in selection
// order).
//
// # Name handling
//
// Host names are kept in a NameSet: lower-cased, trimmed, duplicate free and
// insertion ordered. The effective host list of a target is computed by Hosts:
//
//	t := &target.Target{
//		Host:             "www.example.com",
//		HostIsDNS:        true,
//		AlternativeNames: target.NewNameSet("example.com", "www.example.com"),
//		ExcludeBindings:  target.ParseNameList("example.com"),
//	}
//	t.Hosts(false) // ["www.example.com"]
//
// Internationalized names are stored in their ASCII (punycode) form and can
// be rendered in Unicode by passing true to Hosts.
//
// # Aggregated targets
//
// Aggregated targets carry the NoFileSystemWebRoot sentinel as their web root
// because several sites never share one physical directory. Their Host field
// is a comma-joined list of site ids kept for display only; the authoritative
// list of constituents is Sources.
package target
