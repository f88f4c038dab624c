package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/txpay/txpay-admin/internal/testutil"
)

func TestMigrate_ConnectFailure(t *testing.T) {
	a := testApp(t, nil)
	a.openDB = func(context.Context) (*sql.DB, error) { return nil, errors.New("connection refused") }

	_, err := execute(t, a, "", "migrate")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connect db: connection refused")
}

func TestMigrate_UpToDate(t *testing.T) {
	db := testutil.NewSchemaDB(t)
	a := testApp(t, nil)
	a.openDB = func(context.Context) (*sql.DB, error) { return db, nil }

	out, err := execute(t, a, "", "migrate", "--dry-run")
	require.NoError(t, err)
	assert.Equal(t, "schema is up to date\n", out)
}

func TestMigrate_AppliesRemoved(t *testing.T) {
	db := testutil.NewSchemaDB(t)
	_, err := db.Exec(`DELETE FROM schema_migrations WHERE version = '0002_audit_entries_entity_idx'`)
	require.NoError(t, err)
	a := testApp(t, nil)
	a.openDB = func(context.Context) (*sql.DB, error) { return db, nil }

	out, err := execute(t, a, "", "migrate", "-o", "json")

	require.NoError(t, err)
	var got map[string][]string
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, []string{"0002_audit_entries_entity_idx"}, got["applied"])
}
