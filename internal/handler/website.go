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

const websitesPath = "/dashboard/websites"

type WebsiteHandler struct {
	websites *store.WebsiteStore
	hub      *cache.Hub
	logger   *slog.Logger
}

func NewWebsiteHandler(ws *store.WebsiteStore, hub *cache.Hub, logger *slog.Logger) *WebsiteHandler {
	return &WebsiteHandler{websites: ws, hub: hub, logger: logger}
}

func (h *WebsiteHandler) invalidate() {
	if h.hub != nil {
		h.hub.Invalidate(websitesPath)
	}
}

func (h *WebsiteHandler) Create(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "You must include a name!"})
		return
	}

	site, err := h.websites.Create(auth.MemberID(r.Context()), store.WebsiteInput{
		Name:        name,
		Link:        strings.TrimSpace(r.FormValue("link")),
		DomainHost:  strings.TrimSpace(r.FormValue("domain_host")),
		HostDetails: strings.TrimSpace(r.FormValue("host_details")),
	})
	if err != nil {
		h.logger.Error("create website", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create website"})
		return
	}

	h.invalidate()
	writeJSON(w, http.StatusCreated, site)
}

func (h *WebsiteHandler) List(w http.ResponseWriter, r *http.Request) {
	sites, err := h.websites.List(auth.MemberID(r.Context()))
	if err != nil {
		h.logger.Error("list websites", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list websites"})
		return
	}
	if sites == nil {
		sites = []model.Website{}
	}
	writeJSON(w, http.StatusOK, sites)
}

func (h *WebsiteHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	site, err := h.websites.GetByID(auth.MemberID(r.Context()), id)
	if err != nil {
		h.logger.Error("get website", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get website"})
		return
	}
	if site == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}
	writeJSON(w, http.StatusOK, site)
}

func (h *WebsiteHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	site, err := h.websites.Update(auth.MemberID(r.Context()), id, store.WebsitePatch{
		Name:        formPtr(r, "name"),
		Link:        formPtr(r, "link"),
		DomainHost:  formPtr(r, "domain_host"),
		HostDetails: formPtr(r, "host_details"),
	})
	if err != nil {
		h.logger.Error("update website", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update website"})
		return
	}
	if site == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}

	h.invalidate()
	writeJSON(w, http.StatusOK, site)
}

func (h *WebsiteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	if err := h.websites.Delete(auth.MemberID(r.Context()), id); err != nil {
		h.logger.Error("delete website", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete website"})
		return
	}

	h.invalidate()
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *WebsiteHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	websiteID, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}
	title := strings.TrimSpace(r.FormValue("title"))
	if title == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "You must include a to-do!"})
		return
	}
	due, err := formDate(r, "due_date")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid due date"})
		return
	}

	task, err := h.websites.CreateTask(auth.MemberID(r.Context()), websiteID, title, strings.TrimSpace(r.FormValue("details")), due)
	if err != nil {
		h.logger.Error("create website task", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create task"})
		return
	}
	if task == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}

	h.invalidate()
	writeJSON(w, http.StatusCreated, task)
}

func (h *WebsiteHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	websiteID, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	tasks, err := h.websites.ListTasks(auth.MemberID(r.Context()), websiteID)
	if err != nil {
		h.logger.Error("list website tasks", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list tasks"})
		return
	}
	if tasks == nil {
		tasks = []model.WebsiteTask{}
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (h *WebsiteHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	taskID, err := strconv.ParseInt(r.PathValue("taskID"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}
	due, err := formDate(r, "due_date")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid due date"})
		return
	}

	task, err := h.websites.UpdateTask(auth.MemberID(r.Context()), taskID,
		formPtr(r, "title"), formPtr(r, "details"), formPtr(r, "status"), due)
	if err != nil {
		h.logger.Error("update website task", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update task"})
		return
	}
	if task == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}

	h.invalidate()
	writeJSON(w, http.StatusOK, task)
}

func (h *WebsiteHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	taskID, err := strconv.ParseInt(r.PathValue("taskID"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	if err := h.websites.DeleteTask(auth.MemberID(r.Context()), taskID); err != nil {
		h.logger.Error("delete website task", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete task"})
		return
	}

	h.invalidate()
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
