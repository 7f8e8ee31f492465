package gdsave_test

import (
	"context"
	"testing"

	"github.com/AndrewDonelson/gdsave"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchive_Unavailable(t *testing.T) {
	e := newTestEditor(t, gdsave.Config{})
	ctx := context.Background()

	assert.ErrorIs(t, e.Migrate(ctx), gdsave.ErrArchiveUnavailable)
	assert.ErrorIs(t, e.MigrateFrom(ctx, t.TempDir()), gdsave.ErrArchiveUnavailable)
	_, err := e.MigrationStatus(ctx)
	assert.ErrorIs(t, err, gdsave.ErrArchiveUnavailable)
	_, _, err = e.Archive(ctx, newDoc(t, "a"))
	assert.ErrorIs(t, err, gdsave.ErrArchiveUnavailable)
	_, err = e.SearchArchive(ctx, nil)
	assert.ErrorIs(t, err, gdsave.ErrArchiveUnavailable)
	_, err = e.CountArchived(ctx, nil)
	assert.ErrorIs(t, err, gdsave.ErrArchiveUnavailable)
	_, err = e.RestoreLevel(ctx, 1)
	assert.ErrorIs(t, err, gdsave.ErrArchiveUnavailable)
	_, err = e.RestoreSnapshot(ctx, "x")
	assert.ErrorIs(t, err, gdsave.ErrArchiveUnavailable)
	_, err = e.PruneSnapshot(ctx, "x")
	assert.ErrorIs(t, err, gdsave.ErrArchiveUnavailable)
}

func TestArchive_ClosedEditor(t *testing.T) {
	// The pool is lazy, so no server is needed to build the editor.
	e, err := gdsave.NewEditor(gdsave.Config{PostgresDSN: "postgres://u:p@127.0.0.1:1/none"})
	require.NoError(t, err)
	require.NoError(t, e.Close())
	assert.ErrorIs(t, e.Migrate(context.Background()), gdsave.ErrClosed)
}
