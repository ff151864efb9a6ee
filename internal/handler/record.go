package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/calder-marchand/daybook/internal/auth"
	"github.com/calder-marchand/daybook/internal/cache"
	"github.com/calder-marchand/daybook/internal/model"
	"github.com/calder-marchand/daybook/internal/store"
)

// RecordHandler serves every uniform record category through one set of
// endpoints; the category comes from the URL.
type RecordHandler struct {
	records *store.RecordStore
	hub     *cache.Hub
	logger  *slog.Logger
}

func NewRecordHandler(rs *store.RecordStore, hub *cache.Hub, logger *slog.Logger) *RecordHandler {
	return &RecordHandler{records: rs, hub: hub, logger: logger}
}

func (h *RecordHandler) invalidate(c store.Category) {
	if h.hub != nil {
		h.hub.Invalidate(c.Path)
	}
}

func (h *RecordHandler) category(w http.ResponseWriter, r *http.Request) (store.Category, bool) {
	c, ok := store.Categories[r.PathValue("category")]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown category"})
	}
	return c, ok
}

func (h *RecordHandler) Create(w http.ResponseWriter, r *http.Request) {
	c, ok := h.category(w, r)
	if !ok {
		return
	}
	memberID := auth.MemberID(r.Context())

	title := strings.TrimSpace(r.FormValue("title"))
	if title == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": fmt.Sprintf("You must include a %s!", c.Field)})
		return
	}

	in := store.RecordInput{
		Title:    title,
		Details:  strings.TrimSpace(r.FormValue("details")),
		Category: strings.TrimSpace(r.FormValue("category")),
		Link:     strings.TrimSpace(r.FormValue("link")),
	}
	if c.HasDueDate {
		due, err := formDate(r, "due_date")
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid due date"})
			return
		}
		in.DueDate = due
	}

	record, err := h.records.Create(c, memberID, in)
	if err != nil {
		h.logger.Error("create record", "category", c.Name, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create " + c.Field})
		return
	}

	h.invalidate(c)
	writeJSON(w, http.StatusCreated, record)
}

func (h *RecordHandler) List(w http.ResponseWriter, r *http.Request) {
	c, ok := h.category(w, r)
	if !ok {
		return
	}
	memberID := auth.MemberID(r.Context())

	var f store.ListFilter
	f.Status = r.URL.Query().Get("status")
	f.Category = r.URL.Query().Get("category")
	if v := r.URL.Query().Get("from"); v != "" {
		t, err := formDateValue(v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid from date"})
			return
		}
		f.From = t
	}
	if v := r.URL.Query().Get("to"); v != "" {
		t, err := formDateValue(v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid to date"})
			return
		}
		f.To = t
	}

	records, err := h.records.List(c, memberID, f)
	if err != nil {
		h.logger.Error("list records", "category", c.Name, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list " + c.Name})
		return
	}
	if records == nil {
		records = []model.Record{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (h *RecordHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, ok := h.category(w, r)
	if !ok {
		return
	}
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	record, err := h.records.GetByID(c, auth.MemberID(r.Context()), id)
	if err != nil {
		h.logger.Error("get record", "category", c.Name, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get " + c.Field})
		return
	}
	if record == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (h *RecordHandler) Update(w http.ResponseWriter, r *http.Request) {
	c, ok := h.category(w, r)
	if !ok {
		return
	}
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	patch := store.RecordPatch{
		Title:    formPtr(r, "title"),
		Details:  formPtr(r, "details"),
		Category: formPtr(r, "category"),
		Link:     formPtr(r, "link"),
	}
	if c.HasStatus {
		patch.Status = formPtr(r, "status")
	}
	if c.HasDueDate {
		due, err := formDate(r, "due_date")
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid due date"})
			return
		}
		patch.DueDate = due
	}

	record, err := h.records.Update(c, auth.MemberID(r.Context()), id, patch)
	if err != nil {
		h.logger.Error("update record", "category", c.Name, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update " + c.Field})
		return
	}
	if record == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}

	h.invalidate(c)
	writeJSON(w, http.StatusOK, record)
}

func (h *RecordHandler) Delete(w http.ResponseWriter, r *http.Request) {
	c, ok := h.category(w, r)
	if !ok {
		return
	}
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	if err := h.records.Delete(c, auth.MemberID(r.Context()), id); err != nil {
		h.logger.Error("delete record", "category", c.Name, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete " + c.Field})
		return
	}

	h.invalidate(c)
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
