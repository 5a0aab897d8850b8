package indexdb

import (
	"context"
	"log"

	"github.com/uptrace/bun"

	"github.com/roastarena/backend/pkg/arenadb"
	mghelper "github.com/roastarena/backend/pkg/pgutil/migrations"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		log.Println("creating sync_cursor table...")
		return mghelper.CreateSchema(ctx, db, &arenadb.SyncCursorDao{})
	}, func(ctx context.Context, db *bun.DB) error {
		log.Println("dropping sync_cursor table...")
		return mghelper.DropTables(ctx, db, &arenadb.SyncCursorDao{})
	})
}
