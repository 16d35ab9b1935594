// Package store provides the certificate store plugin factories.
//
// A store keeps issued certificate material by name. Every store implements
// autocert.Cache, so a missing entry is reported as autocert.ErrCacheMiss
// regardless of the backend:
//
//   - filesystem keeps entries in a local directory through autocert.DirCache;
//   - s3 keeps entries as objects in an S3 or S3-compatible bucket.
//
// The configuration chosen when a renewal is created is stored with it
// (Encode) and reopened at renewal time (Decode, Open):
//
//	cfg, err := reg.Select(plugin.CategoryStore, "s3").Default(opts)
//	if err != nil {
//		return err
//	}
//	name, blob, err := store.Encode(cfg)
//
//	// later
//	cfg, err = store.Decode(name, blob)
//	s, err := store.Open(ctx, cfg)
//	err = s.Put(ctx, "example.com", pemBytes)
package store
