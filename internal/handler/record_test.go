package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/calder-marchand/daybook/internal/auth"
	"github.com/calder-marchand/daybook/internal/database"
	"github.com/calder-marchand/daybook/internal/model"
	"github.com/calder-marchand/daybook/internal/store"
)

func setupRecordHandler(t *testing.T) (*RecordHandler, int64) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	member, err := store.NewMemberStore(db).Create("Test", "Member", "test@example.com", "hash")
	if err != nil {
		t.Fatalf("create member: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewRecordHandler(store.NewRecordStore(db), nil, logger)
	return h, member.ID
}

func formRequest(method, target string, memberID int64, form url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	ctx := auth.WithIdentity(req.Context(), auth.Identity{MemberID: memberID, Email: "test@example.com"})
	return req.WithContext(ctx)
}

func TestRecordHandlerCreate(t *testing.T) {
	h, memberID := setupRecordHandler(t)

	req := formRequest("POST", "/api/tasks", memberID, url.Values{"title": {"Fix the fence"}})
	req.SetPathValue("category", "tasks")
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	var record model.Record
	if err := json.Unmarshal(rec.Body.Bytes(), &record); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if record.Title != "Fix the fence" {
		t.Errorf("title = %q", record.Title)
	}
	if record.Status != "active" {
		t.Errorf("status = %q", record.Status)
	}
}

func TestRecordHandlerCreateMissingTitle(t *testing.T) {
	h, memberID := setupRecordHandler(t)

	req := formRequest("POST", "/api/tasks", memberID, url.Values{"title": {"   "}})
	req.SetPathValue("category", "tasks")
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["message"] != "You must include a to-do!" {
		t.Errorf("message = %q", body["message"])
	}
}

func TestRecordHandlerUnknownCategory(t *testing.T) {
	h, memberID := setupRecordHandler(t)

	req := formRequest("POST", "/api/gadgets", memberID, url.Values{"title": {"x"}})
	req.SetPathValue("category", "gadgets")
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestRecordHandlerUpdateKeepsOmittedFields(t *testing.T) {
	h, memberID := setupRecordHandler(t)

	req := formRequest("POST", "/api/tasks", memberID, url.Values{
		"title":   {"Paint the shed"},
		"details": {"green, two coats"},
	})
	req.SetPathValue("category", "tasks")
	rec := httptest.NewRecorder()
	h.Create(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d", rec.Code)
	}
	var created model.Record
	json.Unmarshal(rec.Body.Bytes(), &created)

	req = formRequest("PUT", "/api/tasks/"+strconv.FormatInt(created.ID, 10), memberID, url.Values{
		"status": {"completed"},
	})
	req.SetPathValue("category", "tasks")
	req.SetPathValue("id", strconv.FormatInt(created.ID, 10))
	rec = httptest.NewRecorder()
	h.Update(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d: %s", rec.Code, rec.Body.String())
	}
	var updated model.Record
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if updated.Status != "completed" {
		t.Errorf("status = %q", updated.Status)
	}
	if updated.CompletedAt == nil {
		t.Error("expected completed_at")
	}
	if updated.Details != "green, two coats" {
		t.Errorf("omitted details overwritten: %q", updated.Details)
	}
}

func TestRecordHandlerUpdateForeignID(t *testing.T) {
	h, memberID := setupRecordHandler(t)

	req := formRequest("PUT", "/api/tasks/9999", memberID, url.Values{"title": {"nope"}})
	req.SetPathValue("category", "tasks")
	req.SetPathValue("id", "9999")
	rec := httptest.NewRecorder()
	h.Update(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
