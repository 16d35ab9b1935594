// Package mongo provides MongoDB connection management and a renewal store
// built on the official v2 driver.
//
// New and NewWithDatabase retry the initial connection and verify it with a
// ping, which absorbs cold starts of managed clusters:
//
//	var cfg mongo.Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//
//	db, err := mongo.NewWithDatabase(ctx, cfg, "sitecert")
//	if err != nil {
//		return err
//	}
//	defer db.Client().Disconnect(ctx)
//
//	store, err := mongo.NewRenewalStore(ctx, db.Collection("renewals"))
//
// # Configuration
//
//	MONGODB_URL                 (required)
//	MONGODB_DATABASE            (default: sitecert)
//	MONGODB_CONNECT_TIMEOUT     (default: 10s)
//	MONGODB_MAX_POOL_SIZE       (default: 100)
//	MONGODB_MIN_POOL_SIZE       (default: 1)
//	MONGODB_MAX_CONN_IDLE_TIME  (default: 300s)
//	MONGODB_RETRY_WRITES        (default: true)
//	MONGODB_RETRY_READS         (default: true)
//	MONGODB_RETRY_ATTEMPTS      (default: 3)
//	MONGODB_RETRY_INTERVAL      (default: 5s)
//
// # Documents
//
// Renewals are stored one document per renewal keyed by the renewal id.
// Timestamps are kept as integer microseconds since BSON dates only carry
// milliseconds, and the target is kept as its JSON encoding.
//
// # Errors
//
//	ErrFailedToConnectToMongo - all connection attempts failed
//	ErrHealthcheckFailed      - health check ping failed
package mongo
