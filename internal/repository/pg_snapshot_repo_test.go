package repository

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type mockRow struct {
	data []byte
	err  error
}

func (r mockRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*[]byte)) = r.data
	return nil
}

type mockPgQuerier struct {
	row       mockRow
	execErr   error
	lastSQL   string
	lastArgs  []any
	execCalls int
}

func (m *mockPgQuerier) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	m.execCalls++
	m.lastSQL = sql
	m.lastArgs = args
	return pgconn.NewCommandTag("INSERT 0 1"), m.execErr
}

func (m *mockPgQuerier) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	m.lastSQL = sql
	m.lastArgs = args
	return m.row
}

func TestPgSnapshotRepository(t *testing.T) {
	t.Run("no rows is not found", func(t *testing.T) {
		repo := &PgSnapshotRepository{pool: &mockPgQuerier{row: mockRow{err: pgx.ErrNoRows}}, key: "k"}
		if _, err := repo.Load(context.Background()); !errors.Is(err, ErrSnapshotNotFound) {
			t.Fatalf("expected ErrSnapshotNotFound, got %v", err)
		}
	})

	t.Run("load by key", func(t *testing.T) {
		mock := &mockPgQuerier{row: mockRow{data: []byte(`[]`)}}
		repo := &PgSnapshotRepository{pool: mock, key: "roomcraft_sessions"}
		out, err := repo.Load(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(out) != `[]` || mock.lastArgs[0] != "roomcraft_sessions" {
			t.Fatalf("unexpected load %s args=%v", out, mock.lastArgs)
		}
	})

	t.Run("save upserts", func(t *testing.T) {
		mock := &mockPgQuerier{}
		repo := &PgSnapshotRepository{pool: mock, key: "k"}
		if err := repo.Save(context.Background(), []byte(`[]`)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if mock.execCalls != 1 || !strings.Contains(mock.lastSQL, "ON CONFLICT (key)") {
			t.Fatalf("expected upsert, got %q", mock.lastSQL)
		}
	})

	t.Run("save error is wrapped", func(t *testing.T) {
		boom := errors.New("conn reset")
		repo := &PgSnapshotRepository{pool: &mockPgQuerier{execErr: boom}, key: "k"}
		if err := repo.Save(context.Background(), []byte(`[]`)); !errors.Is(err, boom) {
			t.Fatalf("expected wrapped error, got %v", err)
		}
	})
}
