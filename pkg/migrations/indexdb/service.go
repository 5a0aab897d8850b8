// Package indexdb holds all the migrations for the indexer database
package indexdb

import (
	"github.com/uptrace/bun/migrate"
)

// Migrations is the collection of all migrations for the indexer database
var Migrations = migrate.NewMigrations()
