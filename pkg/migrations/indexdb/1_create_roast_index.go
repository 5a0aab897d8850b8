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
		log.Println("creating roast_index table...")
		if err := mghelper.CreateSchema(ctx, db, &arenadb.RoastDao{}); err != nil {
			return err
		}
		return mghelper.CreateModelIndexes(ctx, db, &arenadb.RoastDao{}, "creator", "state")
	}, func(ctx context.Context, db *bun.DB) error {
		log.Println("dropping roast_index table...")
		return mghelper.DropTables(ctx, db, &arenadb.RoastDao{})
	})
}
