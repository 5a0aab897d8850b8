package apidb

import (
	"context"
	"log"

	"github.com/uptrace/bun"

	"github.com/roastarena/backend/pkg/profilestore"
	mghelper "github.com/roastarena/backend/pkg/pgutil/migrations"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		log.Println("creating roast_content table...")
		if err := mghelper.CreateSchema(ctx, db, &profilestore.RoastContentDao{}); err != nil {
			return err
		}
		// One text entry per (roast, author); resubmission overwrites.
		_, err := db.NewCreateIndex().
			Model(&profilestore.RoastContentDao{}).
			Index("idx_roast_content_roast_id_author").
			Column("roast_id", "author").
			Unique().
			IfNotExists().
			Exec(ctx)
		return err
	}, func(ctx context.Context, db *bun.DB) error {
		log.Println("dropping roast_content table...")
		return mghelper.DropTables(ctx, db, &profilestore.RoastContentDao{})
	})
}
