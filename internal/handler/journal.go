package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/calder-marchand/daybook/internal/auth"
	"github.com/calder-marchand/daybook/internal/cache"
	"github.com/calder-marchand/daybook/internal/model"
	"github.com/calder-marchand/daybook/internal/store"
)

const journalPath = "/dashboard/journal"

type JournalHandler struct {
	journal *store.JournalStore
	hub     *cache.Hub
	logger  *slog.Logger
}

func NewJournalHandler(js *store.JournalStore, hub *cache.Hub, logger *slog.Logger) *JournalHandler {
	return &JournalHandler{journal: js, hub: hub, logger: logger}
}

func (h *JournalHandler) invalidate() {
	if h.hub != nil {
		h.hub.Invalidate(journalPath)
	}
}

func (h *JournalHandler) Create(w http.ResponseWriter, r *http.Request) {
	entry := strings.TrimSpace(r.FormValue("entry"))
	if entry == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "You must write an entry!"})
		return
	}

	entryDate, err := formDate(r, "entry_date")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid entry date"})
		return
	}

	created, err := h.journal.Create(auth.MemberID(r.Context()), store.JournalInput{
		Entry:       entry,
		Notes:       strings.TrimSpace(r.FormValue("notes")),
		MoodStart:   strings.TrimSpace(r.FormValue("mood_start")),
		MoodEnd:     strings.TrimSpace(r.FormValue("mood_end")),
		Food:        strings.TrimSpace(r.FormValue("food")),
		Exercise:    strings.TrimSpace(r.FormValue("exercise")),
		Reflections: strings.TrimSpace(r.FormValue("reflections")),
		Privacy:     strings.TrimSpace(r.FormValue("privacy")),
		EntryDate:   entryDate,
	})
	if err != nil {
		h.logger.Error("create journal entry", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create entry"})
		return
	}

	h.invalidate()
	writeJSON(w, http.StatusCreated, created)
}

func (h *JournalHandler) List(w http.ResponseWriter, r *http.Request) {
	from, err := formDateValue(r.URL.Query().Get("from"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid from date"})
		return
	}
	to, err := formDateValue(r.URL.Query().Get("to"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid to date"})
		return
	}

	entries, err := h.journal.List(auth.MemberID(r.Context()), from, to)
	if err != nil {
		h.logger.Error("list journal entries", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list entries"})
		return
	}
	if entries == nil {
		entries = []model.JournalEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *JournalHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	entry, err := h.journal.GetByID(auth.MemberID(r.Context()), id)
	if err != nil {
		h.logger.Error("get journal entry", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get entry"})
		return
	}
	if entry == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (h *JournalHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	entryDate, err := formDate(r, "entry_date")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid entry date"})
		return
	}

	entry, err := h.journal.Update(auth.MemberID(r.Context()), id, store.JournalPatch{
		Entry:       formPtr(r, "entry"),
		Notes:       formPtr(r, "notes"),
		MoodStart:   formPtr(r, "mood_start"),
		MoodEnd:     formPtr(r, "mood_end"),
		Food:        formPtr(r, "food"),
		Exercise:    formPtr(r, "exercise"),
		Reflections: formPtr(r, "reflections"),
		Privacy:     formPtr(r, "privacy"),
		EntryDate:   entryDate,
	})
	if err != nil {
		h.logger.Error("update journal entry", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update entry"})
		return
	}
	if entry == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}

	h.invalidate()
	writeJSON(w, http.StatusOK, entry)
}

func (h *JournalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	if err := h.journal.Delete(auth.MemberID(r.Context()), id); err != nil {
		h.logger.Error("delete journal entry", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete entry"})
		return
	}

	h.invalidate()
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
