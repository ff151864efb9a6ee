package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/calder-marchand/daybook/internal/cache"
	"github.com/calder-marchand/daybook/internal/handler"
	"github.com/calder-marchand/daybook/internal/middleware"
	"github.com/calder-marchand/daybook/internal/session"
	"github.com/calder-marchand/daybook/internal/store"
)

type Server struct {
	db          *sql.DB
	hub         *cache.Hub
	sessions    *session.Manager
	authH       *handler.AuthHandler
	recordH     *handler.RecordHandler
	journalH    *handler.JournalHandler
	personH     *handler.PersonHandler
	websiteH    *handler.WebsiteHandler
	noteH       *handler.NoteHandler
	linkH       *handler.LinkHandler
	rateLimiter *middleware.RateLimiter
	logger      *slog.Logger
}

func New(db *sql.DB, sessions *session.Manager, logger *slog.Logger) *Server {
	hub := cache.NewHub(logger.With("component", "cache"))

	memberStore := store.NewMemberStore(db)
	recordStore := store.NewRecordStore(db)
	journalStore := store.NewJournalStore(db)
	personStore := store.NewPersonStore(db)
	websiteStore := store.NewWebsiteStore(db)
	noteStore := store.NewNoteStore(db)
	linkStore := store.NewLinkStore(db)

	return &Server{
		db:          db,
		hub:         hub,
		sessions:    sessions,
		authH:       handler.NewAuthHandler(memberStore, sessions, logger.With("component", "auth")),
		recordH:     handler.NewRecordHandler(recordStore, hub, logger.With("component", "record")),
		journalH:    handler.NewJournalHandler(journalStore, hub, logger.With("component", "journal")),
		personH:     handler.NewPersonHandler(personStore, hub, logger.With("component", "person")),
		websiteH:    handler.NewWebsiteHandler(websiteStore, hub, logger.With("component", "website")),
		noteH:       handler.NewNoteHandler(noteStore, hub, logger.With("component", "note")),
		linkH:       handler.NewLinkHandler(linkStore, hub, logger.With("component", "link")),
		rateLimiter: middleware.NewRateLimiter(),
		logger:      logger,
	}
}

// Hub returns the invalidation hub.
func (s *Server) Hub() *cache.Hub {
	return s.hub
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

func (s *Server) Router() http.Handler {
	outerMux := http.NewServeMux()

	// Public routes (no auth required)
	outerMux.HandleFunc("POST /register", s.rateLimitedHandler(s.authH.Register))
	outerMux.HandleFunc("POST /sign-in", s.rateLimitedHandler(s.authH.SignIn))
	outerMux.HandleFunc("POST /password-reset/request", s.rateLimitedHandler(s.authH.RequestPasswordReset))
	outerMux.HandleFunc("POST /password-reset", s.rateLimitedHandler(s.authH.ResetPassword))
	outerMux.HandleFunc("GET /health", s.healthHandler)

	// Protected routes — wrapped with RequireAuth middleware
	protectedMux := http.NewServeMux()
	s.registerProtectedRoutes(protectedMux)

	authMiddleware := middleware.RequireAuth(s.sessions)
	outerMux.Handle("/", authMiddleware(protectedMux))

	return middleware.RequestLogger(s.logger.With("component", "http"))(outerMux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) rateLimitedHandler(h http.HandlerFunc) http.HandlerFunc {
	rl := middleware.RateLimit(s.rateLimiter, middleware.RealIP, 10, time.Minute)
	return func(w http.ResponseWriter, r *http.Request) {
		rl(http.HandlerFunc(h)).ServeHTTP(w, r)
	}
}

func (s *Server) registerProtectedRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /sign-out", s.authH.SignOut)

	// Generic record API: one set of endpoints for every category
	mux.HandleFunc("POST /api/{category}", s.recordH.Create)
	mux.HandleFunc("GET /api/{category}", s.recordH.List)
	mux.HandleFunc("GET /api/{category}/{id}", s.recordH.Get)
	mux.HandleFunc("PUT /api/{category}/{id}", s.recordH.Update)
	mux.HandleFunc("DELETE /api/{category}/{id}", s.recordH.Delete)

	// Journal API routes
	mux.HandleFunc("POST /api/journal", s.journalH.Create)
	mux.HandleFunc("GET /api/journal", s.journalH.List)
	mux.HandleFunc("GET /api/journal/{id}", s.journalH.Get)
	mux.HandleFunc("PUT /api/journal/{id}", s.journalH.Update)
	mux.HandleFunc("DELETE /api/journal/{id}", s.journalH.Delete)

	// People API routes
	mux.HandleFunc("POST /api/people", s.personH.Create)
	mux.HandleFunc("GET /api/people", s.personH.List)
	mux.HandleFunc("GET /api/people/{id}", s.personH.Get)
	mux.HandleFunc("PUT /api/people/{id}", s.personH.Update)
	mux.HandleFunc("DELETE /api/people/{id}", s.personH.Delete)
	mux.HandleFunc("POST /api/people/{id}/notes", s.personH.AddNote)
	mux.HandleFunc("GET /api/people/{id}/notes", s.personH.ListNotes)
	mux.HandleFunc("DELETE /api/people/{id}/notes/{noteID}", s.personH.DeleteNote)

	// Website API routes
	mux.HandleFunc("POST /api/websites", s.websiteH.Create)
	mux.HandleFunc("GET /api/websites", s.websiteH.List)
	mux.HandleFunc("GET /api/websites/{id}", s.websiteH.Get)
	mux.HandleFunc("PUT /api/websites/{id}", s.websiteH.Update)
	mux.HandleFunc("DELETE /api/websites/{id}", s.websiteH.Delete)
	mux.HandleFunc("POST /api/websites/{id}/tasks", s.websiteH.CreateTask)
	mux.HandleFunc("GET /api/websites/{id}/tasks", s.websiteH.ListTasks)
	mux.HandleFunc("PUT /api/websites/{id}/tasks/{taskID}", s.websiteH.UpdateTask)
	mux.HandleFunc("DELETE /api/websites/{id}/tasks/{taskID}", s.websiteH.DeleteTask)

	// Notes and note links
	mux.HandleFunc("POST /api/notes", s.noteH.Create)
	mux.HandleFunc("GET /api/notes", s.noteH.List)
	mux.HandleFunc("PUT /api/notes/{id}", s.noteH.Update)
	mux.HandleFunc("DELETE /api/notes/{id}", s.noteH.Delete)
	mux.HandleFunc("PUT /api/notes/{id}/link", s.noteH.SetLink)
	mux.HandleFunc("DELETE /api/notes/{id}/link", s.noteH.DeleteLink)

	// Goal-task and idea associations
	mux.HandleFunc("POST /api/goals/{id}/tasks", s.linkH.LinkGoalTask)
	mux.HandleFunc("GET /api/goals/{id}/tasks", s.linkH.ListGoalTasks)
	mux.HandleFunc("DELETE /api/goals/{id}/tasks/{taskID}", s.linkH.UnlinkGoalTask)
	mux.HandleFunc("POST /api/ideas/{id}/links", s.linkH.LinkIdea)
	mux.HandleFunc("GET /api/ideas/{id}/links", s.linkH.ListIdeaLinks)
	mux.HandleFunc("DELETE /api/ideas/{id}/links/{targetType}/{targetID}", s.linkH.UnlinkIdea)

	// Invalidation stream for presentation clients
	mux.HandleFunc("GET /ws", cache.HandleWebSocket(s.hub))
}
