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
		log.Println("creating participant_index table...")
		if err := mghelper.CreateSchema(ctx, db, &arenadb.ParticipantDao{}); err != nil {
			return err
		}
		return mghelper.CreateModelIndexes(ctx, db, &arenadb.ParticipantDao{}, "address")
	}, func(ctx context.Context, db *bun.DB) error {
		log.Println("dropping participant_index table...")
		return mghelper.DropTables(ctx, db, &arenadb.ParticipantDao{})
	})
}
