package data

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/txpay/txpay-admin/internal/errors"
	"github.com/txpay/txpay-admin/internal/ports"
	"github.com/txpay/txpay-admin/internal/testutil"
)

type stepClock struct{ at time.Time }

func (c *stepClock) now() time.Time           { return c.at }
func (c *stepClock) advance(d time.Duration) { c.at = c.at.Add(d) }

func TestAuditRepo_InsertAndRecent(t *testing.T) {
	testutil.WithAutoDB(t, func(db *sql.DB) {
		clock := &stepClock{at: time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)}
		repo := NewAuditRepoWithClock(db, clock.now)
		ctx := context.Background()

		first, err := repo.Insert(ctx, ports.AuditEntry{
			ActorID: "u1", ActorName: "Ana", Action: "create", Entity: "merchant", EntityID: "m1", Outcome: "ok",
		})
		require.NoError(t, err)
		assert.NotZero(t, first.ID)
		assert.True(t, first.CreatedAt.Equal(clock.now()))

		clock.advance(time.Minute)
		_, err = repo.Insert(ctx, ports.AuditEntry{
			ActorID: "u1", Action: "capture", Entity: "transaction", EntityID: "tx1", Outcome: "failed", Detail: "declined",
		})
		require.NoError(t, err)

		entries, err := repo.Recent(ctx, 10)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "capture", entries[0].Action)
		assert.Equal(t, "declined", entries[0].Detail)
		assert.Equal(t, "create", entries[1].Action)
	})
}

func TestAuditRepo_InsertRejectsBadOutcome(t *testing.T) {
	testutil.WithAutoDB(t, func(db *sql.DB) {
		repo := NewAuditRepo(db)

		_, err := repo.Insert(context.Background(), ports.AuditEntry{
			ActorID: "u1", Action: "create", Entity: "merchant", Outcome: "maybe",
		})

		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err), "check violation maps to validation: %v", err)
	})
}

func TestAuditRepo_Prune(t *testing.T) {
	testutil.WithAutoDB(t, func(db *sql.DB) {
		clock := &stepClock{at: time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)}
		repo := NewAuditRepoWithClock(db, clock.now)
		ctx := context.Background()

		for range 5 {
			clock.advance(time.Second)
			_, err := repo.Insert(ctx, ports.AuditEntry{ActorID: "u", Action: "delete", Entity: "partner", Outcome: "ok"})
			require.NoError(t, err)
		}

		deleted, err := repo.Prune(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, int64(3), deleted)

		entries, err := repo.Recent(ctx, 10)
		require.NoError(t, err)
		assert.Len(t, entries, 2)
	})
}

func TestAuditRepo_Validation(t *testing.T) {
	repo := NewAuditRepo(nil)
	ctx := context.Background()

	_, err := repo.Insert(ctx, ports.AuditEntry{Action: "create", Entity: "merchant"})
	assert.Equal(t, "actor_id", apperrors.GetField(err))

	_, err = repo.Insert(ctx, ports.AuditEntry{ActorID: "u"})
	assert.True(t, apperrors.IsValidation(err))

	_, err = repo.Recent(ctx, 0)
	require.Error(t, err)

	_, err = repo.Prune(ctx, -1)
	require.Error(t, err)
}
