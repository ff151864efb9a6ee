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

const peoplePath = "/dashboard/people"

type PersonHandler struct {
	people *store.PersonStore
	hub    *cache.Hub
	logger *slog.Logger
}

func NewPersonHandler(ps *store.PersonStore, hub *cache.Hub, logger *slog.Logger) *PersonHandler {
	return &PersonHandler{people: ps, hub: hub, logger: logger}
}

func (h *PersonHandler) invalidate() {
	if h.hub != nil {
		h.hub.Invalidate(peoplePath)
	}
}

// formInt returns nil when the field is absent or blank.
func formInt(r *http.Request, name string) (*int, error) {
	v := strings.TrimSpace(r.FormValue(name))
	if v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func parseBirthday(r *http.Request) (month, day, year *int, err error) {
	if month, err = formInt(r, "birth_month"); err != nil {
		return
	}
	if day, err = formInt(r, "birth_day"); err != nil {
		return
	}
	year, err = formInt(r, "birth_year")
	return
}

func (h *PersonHandler) Create(w http.ResponseWriter, r *http.Request) {
	firstName := strings.TrimSpace(r.FormValue("first_name"))
	if firstName == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "You must include a first name!"})
		return
	}

	month, day, year, err := parseBirthday(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid birthday"})
		return
	}

	person, err := h.people.Create(auth.MemberID(r.Context()), store.PersonInput{
		FirstName:  firstName,
		LastName:   strings.TrimSpace(r.FormValue("last_name")),
		Nickname:   strings.TrimSpace(r.FormValue("nickname")),
		Email:      strings.TrimSpace(r.FormValue("email")),
		Phone:      strings.TrimSpace(r.FormValue("phone")),
		BirthMonth: month,
		BirthDay:   day,
		BirthYear:  year,
	})
	if err != nil {
		h.logger.Error("create person", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create person"})
		return
	}

	h.invalidate()
	writeJSON(w, http.StatusCreated, person)
}

func (h *PersonHandler) List(w http.ResponseWriter, r *http.Request) {
	people, err := h.people.List(auth.MemberID(r.Context()))
	if err != nil {
		h.logger.Error("list people", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list people"})
		return
	}
	if people == nil {
		people = []model.Person{}
	}
	writeJSON(w, http.StatusOK, people)
}

func (h *PersonHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	person, err := h.people.GetByID(auth.MemberID(r.Context()), id)
	if err != nil {
		h.logger.Error("get person", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get person"})
		return
	}
	if person == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}
	writeJSON(w, http.StatusOK, person)
}

func (h *PersonHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	month, day, year, err := parseBirthday(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid birthday"})
		return
	}

	person, err := h.people.Update(auth.MemberID(r.Context()), id, store.PersonPatch{
		FirstName:  formPtr(r, "first_name"),
		LastName:   formPtr(r, "last_name"),
		Nickname:   formPtr(r, "nickname"),
		Email:      formPtr(r, "email"),
		Phone:      formPtr(r, "phone"),
		BirthMonth: month,
		BirthDay:   day,
		BirthYear:  year,
	})
	if err != nil {
		h.logger.Error("update person", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update person"})
		return
	}
	if person == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}

	h.invalidate()
	writeJSON(w, http.StatusOK, person)
}

func (h *PersonHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	if err := h.people.Delete(auth.MemberID(r.Context()), id); err != nil {
		h.logger.Error("delete person", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete person"})
		return
	}

	h.invalidate()
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *PersonHandler) AddNote(w http.ResponseWriter, r *http.Request) {
	personID, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}
	note := strings.TrimSpace(r.FormValue("note"))
	if note == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "You must include a note!"})
		return
	}

	created, err := h.people.AddNote(auth.MemberID(r.Context()), personID, note)
	if err != nil {
		h.logger.Error("add person note", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to add note"})
		return
	}
	if created == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}

	h.invalidate()
	writeJSON(w, http.StatusCreated, created)
}

func (h *PersonHandler) ListNotes(w http.ResponseWriter, r *http.Request) {
	personID, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	notes, err := h.people.ListNotes(auth.MemberID(r.Context()), personID)
	if err != nil {
		h.logger.Error("list person notes", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list notes"})
		return
	}
	if notes == nil {
		notes = []model.PersonNote{}
	}
	writeJSON(w, http.StatusOK, notes)
}

func (h *PersonHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	noteID, err := strconv.ParseInt(r.PathValue("noteID"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	if err := h.people.DeleteNote(auth.MemberID(r.Context()), noteID); err != nil {
		h.logger.Error("delete person note", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete note"})
		return
	}

	h.invalidate()
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
