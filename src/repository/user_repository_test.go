package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func userRows(ids ...string) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "email", "created_at", "updated_at"})
	for _, id := range ids {
		rows.AddRow(id, "owner@localhost", time.Now(), time.Now())
	}
	return rows
}

func TestUserRepositoryEnsureOwner(t *testing.T) {
	ownerID := "00000000-0000-0000-0000-000000000001"

	t.Run("returns existing owner without inserting", func(t *testing.T) {
		mockDB, mock := newMockDB(t)
		repo := NewUserRepository(mockDB)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE id = $1 ORDER BY "users"."id" LIMIT $2`)).
			WithArgs(ownerID, 1).
			WillReturnRows(userRows(ownerID))

		owner, err := repo.EnsureOwner(context.Background(), ownerID, "owner@localhost")
		if err != nil || owner == nil {
			t.Fatalf("expected existing owner, got %+v err=%v", owner, err)
		}
		if owner.ID != ownerID {
			t.Fatalf("unexpected owner id %q", owner.ID)
		}

		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("unmet sqlmock expectations: %v", err)
		}
	})

	t.Run("creates owner on first boot", func(t *testing.T) {
		mockDB, mock := newMockDB(t)
		repo := NewUserRepository(mockDB)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE id = $1 ORDER BY "users"."id" LIMIT $2`)).
			WithArgs(ownerID, 1).
			WillReturnRows(userRows())
		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO "users"`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		owner, err := repo.EnsureOwner(context.Background(), ownerID, "owner@localhost")
		if err != nil || owner == nil {
			t.Fatalf("expected seeded owner, got %+v err=%v", owner, err)
		}
		if owner.Email != "owner@localhost" {
			t.Fatalf("unexpected owner email %q", owner.Email)
		}

		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("unmet sqlmock expectations: %v", err)
		}
	})
}
