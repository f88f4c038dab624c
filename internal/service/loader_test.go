package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/txpay/txpay-admin/internal/domain/model"
)

func pageOf(ids ...string) model.Page[string] {
	return model.Page[string]{Data: ids, Meta: model.ListMeta{Total: len(ids), Page: 1}}
}

func TestLoader_KeepsPreviousPageOnError(t *testing.T) {
	t.Parallel()

	fail := false
	l := NewLoader(func(_ context.Context, q model.ListQuery) (model.Page[string], error) {
		if fail {
			return model.Page[string]{}, errors.New("api down")
		}
		return pageOf("a", "b"), nil
	})

	first, err := l.Load(context.Background(), model.ListQuery{Page: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, first.Data)

	fail = true
	got, err := l.Load(context.Background(), model.ListQuery{Page: 2})
	require.Error(t, err)
	assert.Equal(t, first, got)

	cur, ok := l.Current()
	assert.True(t, ok)
	assert.Equal(t, first, cur)
	assert.Equal(t, 1, l.Query().Page)
	assert.EqualError(t, l.Err(), "api down")
}

func TestLoader_StaleResponseDiscarded(t *testing.T) {
	t.Parallel()

	slowStarted := make(chan struct{})
	release := make(chan struct{})
	l := NewLoader(func(ctx context.Context, q model.ListQuery) (model.Page[string], error) {
		if q.Filters["tab"] == "slow" {
			close(slowStarted)
			<-release
			// The superseded request was canceled, but a response still arrives.
			assert.ErrorIs(t, ctx.Err(), context.Canceled)
			return pageOf("slow"), nil
		}
		return pageOf("fast"), nil
	})

	slowDone := make(chan error, 1)
	go func() {
		_, err := l.Load(context.Background(), model.ListQuery{Filters: map[string]string{"tab": "slow"}})
		slowDone <- err
	}()

	<-slowStarted
	fast, err := l.Load(context.Background(), model.ListQuery{Filters: map[string]string{"tab": "fast"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"fast"}, fast.Data)

	close(release)
	assert.ErrorIs(t, <-slowDone, ErrStale)

	cur, _ := l.Current()
	assert.Equal(t, []string{"fast"}, cur.Data)
	assert.Equal(t, uint64(2), l.Generation())
}

func TestLoader_Stop(t *testing.T) {
	t.Parallel()

	started := make(chan struct{})
	l := NewLoader(func(ctx context.Context, _ model.ListQuery) (model.Page[string], error) {
		close(started)
		<-ctx.Done()
		return model.Page[string]{}, ctx.Err()
	})

	done := make(chan error, 1)
	go func() {
		_, err := l.Load(context.Background(), model.ListQuery{})
		done <- err
	}()

	<-started
	l.Stop()
	assert.ErrorIs(t, <-done, ErrStale)

	_, ok := l.Current()
	assert.False(t, ok)
	assert.NoError(t, l.Err())
}
