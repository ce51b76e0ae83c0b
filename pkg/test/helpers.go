package test

import (
	"log"

	"loginapp/internal/adapter/database/sqlite"
)

// InitTestDB opens a migrated in-memory sqlite database. Every call gets a
// fresh, empty database.
func InitTestDB() *sqlite.DB {
	db, err := sqlite.NewDB(sqlite.Config{Path: ":memory:"})

	if err != nil {
		log.Fatal(err)
	}

	return db
}
