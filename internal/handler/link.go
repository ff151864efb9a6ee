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

// LinkHandler serves the goal-task and idea association endpoints.
type LinkHandler struct {
	links  *store.LinkStore
	hub    *cache.Hub
	logger *slog.Logger
}

func NewLinkHandler(ls *store.LinkStore, hub *cache.Hub, logger *slog.Logger) *LinkHandler {
	return &LinkHandler{links: ls, hub: hub, logger: logger}
}

func (h *LinkHandler) invalidate(paths ...string) {
	if h.hub != nil {
		h.hub.Invalidate(paths...)
	}
}

func (h *LinkHandler) LinkGoalTask(w http.ResponseWriter, r *http.Request) {
	goalID, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}
	taskID, err := strconv.ParseInt(r.FormValue("task_id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid task"})
		return
	}

	if err := h.links.LinkGoalTask(auth.MemberID(r.Context()), goalID, taskID); err != nil {
		h.logger.Error("link goal task", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to link task"})
		return
	}

	h.invalidate(store.Categories["goals"].Path, store.Categories["tasks"].Path)
	writeJSON(w, http.StatusOK, map[string]string{"status": "linked"})
}

func (h *LinkHandler) UnlinkGoalTask(w http.ResponseWriter, r *http.Request) {
	goalID, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}
	taskID, err := strconv.ParseInt(r.PathValue("taskID"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	if err := h.links.UnlinkGoalTask(auth.MemberID(r.Context()), goalID, taskID); err != nil {
		h.logger.Error("unlink goal task", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to unlink task"})
		return
	}

	h.invalidate(store.Categories["goals"].Path, store.Categories["tasks"].Path)
	writeJSON(w, http.StatusOK, map[string]string{"status": "unlinked"})
}

func (h *LinkHandler) ListGoalTasks(w http.ResponseWriter, r *http.Request) {
	goalID, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	tasks, err := h.links.ListTasksForGoal(auth.MemberID(r.Context()), goalID)
	if err != nil {
		h.logger.Error("list goal tasks", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list tasks"})
		return
	}
	if tasks == nil {
		tasks = []model.Record{}
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (h *LinkHandler) LinkIdea(w http.ResponseWriter, r *http.Request) {
	ideaID, err := parseIDParam(r)
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

	if err := h.links.LinkIdea(auth.MemberID(r.Context()), ideaID, targetType, targetID); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid link target"})
		return
	}

	h.invalidate(store.Categories["ideas"].Path)
	writeJSON(w, http.StatusOK, map[string]string{"status": "linked"})
}

func (h *LinkHandler) UnlinkIdea(w http.ResponseWriter, r *http.Request) {
	ideaID, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}
	targetType := r.PathValue("targetType")
	targetID, err := strconv.ParseInt(r.PathValue("targetID"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	if err := h.links.UnlinkIdea(auth.MemberID(r.Context()), ideaID, targetType, targetID); err != nil {
		h.logger.Error("unlink idea", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to unlink"})
		return
	}

	h.invalidate(store.Categories["ideas"].Path)
	writeJSON(w, http.StatusOK, map[string]string{"status": "unlinked"})
}

func (h *LinkHandler) ListIdeaLinks(w http.ResponseWriter, r *http.Request) {
	ideaID, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	links, err := h.links.ListIdeaLinks(auth.MemberID(r.Context()), ideaID)
	if err != nil {
		h.logger.Error("list idea links", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list links"})
		return
	}
	if links == nil {
		links = []model.IdeaLink{}
	}
	writeJSON(w, http.StatusOK, links)
}
