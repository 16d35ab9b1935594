// Package catalog turns the sites of a web server inventory into certificate
// target candidates.
//
// The Catalog interface is what the target plugins consume. Adapter
// implements it over an Inventory, applying the candidate rules:
//
//   - one candidate per site, Host set to the site name (not a DNS name) and
//     the web root set to the site root path;
//   - alternative names are the binding host names, lower-cased, with empty
//     and wildcard names skipped, converted to their ASCII form and
//     de-duplicated;
//   - sites without names or with more than target.MaxNames names are
//     skipped;
//   - when HTTPS sites are hidden, a site is hidden if every binding is HTTPS
//     or shares its host with an HTTPS binding;
//   - candidates are sorted by host.
//
// Two inventories are provided. StaticInventory serves sites from memory and
// FileInventory reads a YAML document:
//
//	sites:
//	  - id: 1
//	    name: shop
//	    root_path: /srv/shop
//	    bindings:
//	      - host: shop.example.com
//	        protocol: http
//	      - host: www.shop.example.com
//	        protocol: https
//
//	cat := catalog.New(catalog.NewFileInventory("sites.yaml"), catalog.WithLogger(log))
//	candidates, err := cat.ListSites(ctx, false, false)
package catalog
