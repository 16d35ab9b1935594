// Package multisite implements the target plugin that combines several
// catalog sites into one certificate target and splits it back into per-site
// targets at renewal time.
//
// # Combining
//
// A selection is either "s" (any case, surrounding whitespace ignored) for
// every candidate, or a comma separated list of site ids:
//
//	p := multisite.New(cat, multisite.WithLogger(log))
//	agg := p.Combine(candidates, "3, 1, 3")
//	agg.Sources.IDs()   // [3 1]
//	agg.Host            // "3,1"
//	agg.WebRootPath     // target.NoFileSystemWebRoot
//
// Entries that are not numbers or name no candidate are skipped with a
// warning. When nothing valid remains Combine logs a single warning listing
// the rejected entries and returns nil.
//
// # Splitting
//
// Split re-reads the catalog and returns the current candidates whose ids are
// among the scheduled target's sources, in catalog order, each carrying the
// scheduled target's exclusions and validation settings. Sites that vanished
// from the catalog are dropped without a warning, as are sites whose host
// list becomes empty after exclusions.
//
// # Refreshing
//
// What happens to a scheduled aggregate before renewal is set by the
// RefreshPolicy:
//
//   - RefreshKeep returns the scheduled target untouched;
//   - RefreshVerify removes sites missing from the catalog, warning for each,
//     and cancels the renewal (nil target) when none remain;
//   - RefreshReconcile also adds sites that appeared since an "all sites"
//     selection was made.
package multisite
