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
		log.Println("creating profiles table...")
		return mghelper.CreateSchema(ctx, db, &profilestore.ProfileDao{})
	}, func(ctx context.Context, db *bun.DB) error {
		log.Println("dropping profiles table...")
		return mghelper.DropTables(ctx, db, &profilestore.ProfileDao{})
	})
}
