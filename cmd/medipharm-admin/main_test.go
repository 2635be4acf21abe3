package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medipharm/medipharm-console/internal/adapters/memory"
	"github.com/medipharm/medipharm-console/internal/migrate"
	"github.com/medipharm/medipharm-console/internal/session"
)

const (
	testPrefix = "medipharm:session:"
	sessionA   = "0b9c3c52-5f7e-4f7a-9d39-1f7fd0b3d6a1"
	sessionB   = "7a3f4d1e-2c5b-4e8f-8a6d-9b0c1d2e3f40"
)

func TestGroupSessionKeys(t *testing.T) {
	got := groupSessionKeys(testPrefix, []string{
		testPrefix + sessionA + ":" + session.KeyUser,
		testPrefix + sessionA + ":theme",
		testPrefix + sessionB + ":" + session.KeyAccessToken,
		testPrefix + "orphan",
		"other:" + sessionA + ":theme",
	})

	assert.Len(t, got, 2)
	assert.Len(t, got[sessionA], 2)
	assert.Len(t, got[sessionB], 1)
}

func TestLoadAndWriteSessions(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewKVStore(memory.KVStoreConfig{})
	exp := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"exp": exp.Unix()}).SignedString([]byte("k"))
	require.NoError(t, err)

	nsA := testPrefix + sessionA + ":"
	require.NoError(t, kv.Set(ctx, nsA+session.KeyUser,
		`{"id":"1","email":"ada@medipharm.cg","fullName":"Ada","role":"SUPER_ADMIN"}`))
	require.NoError(t, kv.Set(ctx, nsA+session.KeyAccessToken, token))
	require.NoError(t, kv.Set(ctx, testPrefix+sessionB+":theme", "dark"))

	records, err := loadSessions(ctx, kv, testPrefix)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, sessionA, records[0].ID)
	require.NotNil(t, records[0].User)
	assert.Equal(t, "ada@medipharm.cg", records[0].User.Email)
	assert.True(t, exp.Equal(records[0].ExpiresAt))
	assert.Nil(t, records[1].User)

	var buf bytes.Buffer
	require.NoError(t, writeSessions(&buf, records, exp.Add(time.Hour)))
	out := buf.String()
	assert.Contains(t, out, "ada@medipharm.cg")
	assert.Contains(t, out, "SUPER_ADMIN")
	assert.Contains(t, out, "2030-01-02T03:04:05Z (expired)")
	assert.Contains(t, out, "2 session(s)")
}

func TestParseClearFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{name: "single session", args: []string{"--session", sessionA}},
		{name: "all", args: []string{"--all", "--yes"}},
		{name: "neither", args: nil, wantErr: true},
		{name: "both", args: []string{"--all", "--session", sessionA}, wantErr: true},
		{name: "malformed id", args: []string{"--session", "abc"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseClearFlags(tt.args)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfirm(t *testing.T) {
	var out bytes.Buffer
	assert.NoError(t, confirm(strings.NewReader("yes\n"), &out, "About to delete."))
	assert.Contains(t, out.String(), "Continue? [y/N]")

	assert.Error(t, confirm(strings.NewReader("\n"), &out, "About to delete."))
	assert.Error(t, confirm(strings.NewReader(""), &out, "About to delete."))
}

func TestPrintUsageListsCommands(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printUsage(&buf))
	for name := range commands() {
		assert.Contains(t, buf.String(), name)
	}
}

func TestParseMigrateFlags(t *testing.T) {
	opts, err := parseMigrateFlags(nil)
	require.NoError(t, err)
	assert.Equal(t, defaultMigrationTimeout, opts.Timeout)

	assert.False(t, opts.Status)

	opts, err = parseMigrateFlags([]string{"--status"})
	require.NoError(t, err)
	assert.True(t, opts.Status)

	_, err = parseMigrateFlags([]string{"--timeout", "0s"})
	assert.Error(t, err)
}

func TestWriteMigrationStatus(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeMigrationStatus(&buf, []migrate.Status{
		{Version: "0001_console_kv", AppliedAt: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)},
		{Version: "0002_console_kv_prefix_idx"},
	}))
	assert.Contains(t, buf.String(), "2026-03-01T08:00:00Z")
	assert.Contains(t, buf.String(), "0002_console_kv_prefix_idx       pending")
}
