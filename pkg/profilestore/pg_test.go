package profilestore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	"github.com/roastarena/backend/pkg/pgutil"
	mghelper "github.com/roastarena/backend/pkg/pgutil/migrations"
	"github.com/roastarena/backend/pkg/profile"
)

func setupStore(t *testing.T) (context.Context, *bun.DB, Store) {
	t.Helper()

	ctx := context.Background()
	db, cleanup := pgutil.SetupTestDB(t)
	t.Cleanup(cleanup)

	if err := mghelper.CreateSchema(ctx, db, &ProfileDao{}, &RoastContentDao{}); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
	_, err := db.NewCreateIndex().
		Model(&RoastContentDao{}).
		Index("idx_roast_content_roast_id_author").
		Column("roast_id", "author").
		Unique().
		IfNotExists().
		Exec(ctx)
	if err != nil {
		t.Fatalf("failed to create unique index: %v", err)
	}

	return ctx, db, NewStore(db)
}

func TestUpsertProfile(t *testing.T) {
	ctx, _, store := setupStore(t)

	p := &profile.Profile{
		Address:  "0xabcd00000000000000000000000000000000beef",
		Username: "roastmaster",
		Bio:      "here to roast",
	}
	require.NoError(t, store.UpsertProfile(ctx, p))

	got, err := store.GetProfile(ctx, p.Address)
	require.NoError(t, err)
	assert.Equal(t, "roastmaster", got.Username)
	assert.Equal(t, "here to roast", got.Bio)

	// Re-upsert replaces fields.
	p.Username = "grillmaster"
	p.Bio = ""
	require.NoError(t, store.UpsertProfile(ctx, p))

	got, err = store.GetProfile(ctx, p.Address)
	require.NoError(t, err)
	assert.Equal(t, "grillmaster", got.Username)
	assert.Empty(t, got.Bio)
}

func TestGetProfile_NotFound(t *testing.T) {
	ctx, _, store := setupStore(t)

	_, err := store.GetProfile(ctx, "0x9999999999999999999999999999999999999999")
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestUpsertContent_ReplacesPerAuthor(t *testing.T) {
	ctx, _, store := setupStore(t)

	author := "0xabcd00000000000000000000000000000000beef"
	require.NoError(t, store.UpsertContent(ctx, &profile.RoastContent{
		RoastID: 7, Author: author, Content: "first attempt",
	}))
	require.NoError(t, store.UpsertContent(ctx, &profile.RoastContent{
		RoastID: 7, Author: author, Content: "better roast",
	}))
	require.NoError(t, store.UpsertContent(ctx, &profile.RoastContent{
		RoastID: 7, Author: "0x1111111111111111111111111111111111111111", Content: "rival roast",
	}))

	entries, err := store.ListContent(ctx, 7)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	byAuthor := map[string]string{}
	for _, entry := range entries {
		byAuthor[entry.Author] = entry.Content
	}
	assert.Equal(t, "better roast", byAuthor[author])
}

func TestListContent_JoinsUsername(t *testing.T) {
	ctx, db, store := setupStore(t)

	author := "0xabcd00000000000000000000000000000000beef"
	_, err := db.NewInsert().Model(&ProfileDao{Address: author, Username: "roastmaster"}).Exec(ctx)
	require.NoError(t, err)

	require.NoError(t, store.UpsertContent(ctx, &profile.RoastContent{
		RoastID: 7, Author: author, Content: "zinger",
	}))
	require.NoError(t, store.UpsertContent(ctx, &profile.RoastContent{
		RoastID: 7, Author: "0x1111111111111111111111111111111111111111", Content: "no profile here",
	}))

	entries, err := store.ListContent(ctx, 7)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	byAuthor := map[string]string{}
	for _, entry := range entries {
		byAuthor[entry.Author] = entry.AuthorUsername
	}
	assert.Equal(t, "roastmaster", byAuthor[author])
	assert.Empty(t, byAuthor["0x1111111111111111111111111111111111111111"])
}
