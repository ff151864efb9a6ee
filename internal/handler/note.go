package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/calder-marchand/daybook/internal/auth"
	"github.com/calder-marchand/daybook/internal/cache"
	"github.com/calder-marchand/daybook/internal/model"
	"github.com/calder-marchand/daybook/internal/store"
)

const notesPath = "/dashboard/notes"

type NoteHandler struct {
	notes  *store.NoteStore
	hub    *cache.Hub
	logger *slog.Logger
}

func NewNoteHandler(ns *store.NoteStore, hub *cache.Hub, logger *slog.Logger) *NoteHandler {
	return &NoteHandler{notes: ns, hub: hub, logger: logger}
}

func (h *NoteHandler) invalidate() {
	if h.hub != nil {
		h.hub.Invalidate(notesPath)
	}
}

func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	note := strings.TrimSpace(r.FormValue("note"))
	if note == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "You must include a note!"})
		return
	}

	created, err := h.notes.Create(auth.MemberID(r.Context()), note)
	if err != nil {
		h.logger.Error("create note", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create note"})
		return
	}

	// If target fields came with the form, attach in the same request.
	if targetType := strings.TrimSpace(r.FormValue("target_type")); targetType != "" {
		targetID, err := strconv.ParseInt(r.FormValue("target_id"), 10, 64)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid link target"})
			return
		}
		if _, err := h.notes.SetLink(auth.MemberID(r.Context()), created.ID, targetType, targetID); err != nil {
			h.logger.Error("set note link", "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to link note"})
			return
		}
	}

	h.invalidate()
	writeJSON(w, http.StatusCreated, created)
}

func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	memberID := auth.MemberID(r.Context())

	// Optional target filter: /notes?target_type=task&target_id=3
	if targetType := r.URL.Query().Get("target_type"); targetType != "" {
		targetID, err := strconv.ParseInt(r.URL.Query().Get("target_id"), 10, 64)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid link target"})
			return
		}
		notes, err := h.notes.ListForTarget(memberID, targetType, targetID)
		if err != nil {
			h.logger.Error("list notes for target", "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list notes"})
			return
		}
		if notes == nil {
			notes = []model.Note{}
		}
		writeJSON(w, http.StatusOK, notes)
		return
	}

	notes, err := h.notes.List(memberID)
	if err != nil {
		h.logger.Error("list notes", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list notes"})
		return
	}
	if notes == nil {
		notes = []model.Note{}
	}
	writeJSON(w, http.StatusOK, notes)
}

func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	note, err := h.notes.Update(auth.MemberID(r.Context()), id, formPtr(r, "note"))
	if err != nil {
		h.logger.Error("update note", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update note"})
		return
	}
	if note == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}

	h.invalidate()
	writeJSON(w, http.StatusOK, note)
}

func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	if err := h.notes.Delete(auth.MemberID(r.Context()), id); err != nil {
		h.logger.Error("delete note", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete note"})
		return
	}

	h.invalidate()
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *NoteHandler) SetLink(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}
	targetType := strings.TrimSpace(r.FormValue("target_type"))
	targetID, err := strconv.ParseInt(r.FormValue("target_id"), 10, 64)
	if targetType == "" || err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid link target"})
		return
	}

	link, err := h.notes.SetLink(auth.MemberID(r.Context()), id, targetType, targetID)
	if err != nil {
		h.logger.Error("set note link", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to link note"})
		return
	}
	if link == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}

	h.invalidate()
	writeJSON(w, http.StatusOK, link)
}

func (h *NoteHandler) DeleteLink(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	if err := h.notes.DeleteLink(auth.MemberID(r.Context()), id); err != nil {
		h.logger.Error("delete note link", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to unlink note"})
		return
	}

	h.invalidate()
	writeJSON(w, http.StatusOK, map[string]string{"status": "unlinked"})
}
