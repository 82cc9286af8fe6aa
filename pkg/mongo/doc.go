// Package mongo provides the MongoDB connection used by the session store.
//
// A connection is described by a Config that is normally populated from
// environment variables. New dials the server and verifies it with a ping,
// retrying a configurable number of times. Connect additionally resolves a
// named database into a Handle and refuses to dial when no name is
// configured.
//
// # Usage
//
//	cfg := mongo.Config{Host: "localhost", Port: 27017, Database: "app"}
//
//	h, err := mongo.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer h.Close(context.Background())
//
//	sessions := h.Collection("sessions")
//	health := mongo.Healthcheck(h.Client)
//
// # Configuration
//
// Host and Port default to localhost:27017. Database has no default.
// Pool sizing, driver retryable reads/writes and connect retries follow the MONGODB_* environment variables
// declared on Config.
//
// # Error Handling
//
// Failures are joined with ErrFailedToConnectToMongo, ErrHealthcheckFailed or
// ErrEmptyDatabaseName, so callers can match them with errors.Is.
package mongo
