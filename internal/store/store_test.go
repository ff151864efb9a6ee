package store

import (
	"database/sql"
	"testing"

	"github.com/calder-marchand/daybook/internal/database"
	"github.com/calder-marchand/daybook/internal/model"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func createTestMember(t *testing.T, db *sql.DB, email string) *model.Member {
	t.Helper()
	member, err := NewMemberStore(db).Create("Test", "Member", email, "not-a-real-hash")
	if err != nil {
		t.Fatalf("create test member: %v", err)
	}
	return member
}
