// Package renewal persists scheduled certificate targets and plans what each
// renewal has to act on.
//
// A Renewal pairs a scheduled target with the store plugin settings chosen
// when it was created. Stores implement the Store interface; MemoryStore is
// provided here and database backed stores live under integration/database.
// Every store must pass the contract suite in renewaltest.
//
// The Planner does not issue certificates or run on a timer. For each stored
// renewal it asks the target plugin to refresh the scheduled target, saves
// the refreshed version when it changed, and splits it into the per-site
// targets to renew:
//
//	planner := renewal.NewPlanner(multisitePlugin, store, renewal.WithLogger(log))
//	plans, err := planner.Plan(ctx)
//	for _, p := range plans {
//		if p.Cancelled {
//			continue
//		}
//		for _, t := range p.Targets {
//			// hand t to the issuance pipeline
//		}
//	}
package renewal
