package store

import (
	"testing"
)

func TestMemberCreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	members := NewMemberStore(db)

	created, err := members.Create("Rosie", "Cotton", "rosie@example.com", "hashed-pw")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == 0 {
		t.Error("expected non-zero id")
	}
	if created.Email != "rosie@example.com" {
		t.Errorf("email = %q", created.Email)
	}

	byEmail, err := members.GetByEmail("rosie@example.com")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if byEmail == nil || byEmail.ID != created.ID {
		t.Error("lookup by email failed")
	}

	missing, err := members.GetByEmail("nobody@example.com")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for unknown email")
	}
}

func TestMemberDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	members := NewMemberStore(db)

	if _, err := members.Create("Rosie", "Cotton", "rosie@example.com", "hash1"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := members.Create("Other", "Rosie", "rosie@example.com", "hash2"); err == nil {
		t.Error("expected error for duplicate email")
	}
}

func TestMemberUpdatePassword(t *testing.T) {
	db := setupTestDB(t)
	members := NewMemberStore(db)

	created, err := members.Create("Rosie", "Cotton", "rosie@example.com", "old-hash")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := members.UpdatePassword(created.ID, "new-hash"); err != nil {
		t.Fatalf("update password: %v", err)
	}

	got, err := members.GetByID(created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.PasswordHash != "new-hash" {
		t.Errorf("password hash = %q", got.PasswordHash)
	}
}

func TestPasswordResetLifecycle(t *testing.T) {
	db := setupTestDB(t)
	members := NewMemberStore(db)

	member, err := members.Create("Rosie", "Cotton", "rosie@example.com", "hash")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	reset, err := members.CreatePasswordReset(member.ID)
	if err != nil {
		t.Fatalf("create reset: %v", err)
	}
	if reset.Token == "" {
		t.Fatal("expected token")
	}

	got, err := members.GetPasswordReset(reset.Token)
	if err != nil {
		t.Fatalf("get reset: %v", err)
	}
	if got == nil || got.MemberID != member.ID {
		t.Fatal("expected valid reset")
	}

	if err := members.MarkResetUsed(reset.ID); err != nil {
		t.Fatalf("mark used: %v", err)
	}

	used, err := members.GetPasswordReset(reset.Token)
	if err != nil {
		t.Fatalf("get reset: %v", err)
	}
	if used != nil {
		t.Error("used reset should not be returned")
	}
}

func TestPasswordResetUnknownToken(t *testing.T) {
	db := setupTestDB(t)
	members := NewMemberStore(db)

	got, err := members.GetPasswordReset("no-such-token")
	if err != nil {
		t.Fatalf("get reset: %v", err)
	}
	if got != nil {
		t.Error("expected nil for unknown token")
	}
}
