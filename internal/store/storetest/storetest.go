// Package storetest opens throwaway stores for package tests.
package storetest

import (
	"context"
	"os"

	"github.com/frahmantamala/office-management/internal/store"
)

// NewSQLite returns a store backed by a private in-memory sqlite database.
func NewSQLite() (*store.Store, error) {
	return store.Open(context.Background(), store.Config{
		Driver: store.DriverSQLite,
		Source: ":memory:",
	})
}

// MongoURI returns the MongoDB URI used by integration tests, empty when unset.
func MongoURI() string {
	return os.Getenv("MONGODB_TEST_URI")
}
