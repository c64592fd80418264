package ui

import (
	"bytes"
	"context"
	"errors"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"moneytracker/internal/core"
	applog "moneytracker/internal/log"
	"moneytracker/internal/middleware/security"
	"moneytracker/internal/middleware/trace"
	appweb "moneytracker/web"
)

// TransactionAPI is what the page needs from the API client.
type TransactionAPI interface {
	ListTransactions(ctx context.Context) ([]core.Transaction, error)
	CreateTransaction(ctx context.Context, nt core.NewTransaction) (core.Transaction, error)
	Test(ctx context.Context) (string, error)
}

// Options tune the server. Zero values select defaults.
type Options struct {
	Logger       *applog.Logger
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	Headers      *security.HeadersConfig
}

type Server struct {
	http.Server
	api       TransactionAPI
	templates *template.Template
	logger    *applog.Logger

	shutdownOnce sync.Once
}

type formView struct {
	Name        string
	Description string
	DateTime    string
	Missing     string
}

type pageView struct {
	Form            formView
	Balance         core.Amount
	BalanceNegative bool
	Rows            []Row
}

// NewServer configures routes and templates, returning a ready-to-run http.Server.
func NewServer(addr string, api TransactionAPI, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = 15 * time.Second
	}
	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = 30 * time.Second
	}
	if opts.IdleTimeout == 0 {
		opts.IdleTimeout = 60 * time.Second
	}
	headers := security.DefaultHeadersConfig()
	if opts.Headers != nil {
		headers = *opts.Headers
	}

	s := &Server{
		api:    api,
		logger: logger.WithComponent(applog.ComponentUI),
	}

	// Parse embedded templates at startup.
	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		s.logger.Warn("Failed parsing templates",
			applog.NewFields().WithComponent(applog.ComponentTemplate).WithError(err).ToSlice()...)
	}
	s.templates = t

	router := mux.NewRouter()
	router.HandleFunc("/healthz", handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/readyz", s.handleReady).Methods(http.MethodGet)

	// Static assets (served from embedded FS)
	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		router.PathPrefix("/static/").Handler(security.StaticAssetMiddleware(3600)(static))
	} else {
		s.logger.Warn("Failed to mount embedded static FS", applog.FieldError, err.Error())
	}

	pages := router.NewRoute().Subrouter()
	pages.Use(security.NewHeadersMiddleware(headers).Middleware)
	pages.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	pages.HandleFunc("/transactions", s.handleCreateTransaction).Methods(http.MethodPost)

	tracer := trace.NewMiddleware(security.ExtractClientIP, logger)
	s.Server = http.Server{
		Addr:         addr,
		Handler:      tracer.Middleware(router),
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
		IdleTimeout:  opts.IdleTimeout,
	}
	return s
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleReady reports whether the API answers its test endpoint.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("templates not loaded"))
		return
	}
	if _, err := s.api.Test(r.Context()); err != nil {
		s.logger.WarnContext(r.Context(), "API not reachable", applog.FieldError, err.Error())
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("api unavailable"))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// handleIndex loads the list and renders the page. A failed load is logged
// and rendered as an empty list.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	state := NewViewState()
	s.loadList(r.Context(), state)
	s.renderPage(w, r, http.StatusOK, state, "")
}

// loadList fills the state's list from the API. A failure is logged and
// leaves the list empty.
func (s *Server) loadList(ctx context.Context, state *ViewState) {
	list, err := s.api.ListTransactions(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to load transactions",
			applog.NewFields().
				WithRequestID(trace.GetRequestID(ctx)).
				WithOperation(applog.OpList).
				WithError(err).
				ToSlice()...)
		return
	}
	state.LoadComplete(list)
}

// handleCreateTransaction runs the submit transition. HTMX requests get the
// form partial back: cleared on success, unchanged otherwise.
func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := r.ParseForm(); err != nil {
		s.logger.WarnContext(ctx, "Parse form error", applog.FieldError, err.Error())
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	state := NewViewState()
	for _, field := range []string{FieldName, FieldDescription, FieldDateTime} {
		_ = state.SetField(field, r.PostForm.Get(field))
	}

	nt, err := state.Submission()
	if err != nil {
		s.logger.DebugContext(ctx, "Submission blocked by required field",
			applog.NewFields().WithOperation(applog.OpValidate).WithError(err).ToSlice()...)
		s.respondForm(w, r, http.StatusUnprocessableEntity, state, missingField(err), "")
		return
	}

	created, err := s.api.CreateTransaction(ctx, nt)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to submit transaction",
			applog.NewFields().
				WithRequestID(trace.GetRequestID(ctx)).
				WithOperation(applog.OpCreate).
				WithTransaction("", nt.Name, nt.Price, nt.DateTime).
				WithError(err).
				ToSlice()...)
		s.respondForm(w, r, http.StatusBadGateway, state, "", "")
		return
	}

	state.SubmitComplete(created)
	s.logger.InfoContext(ctx, "Transaction submitted",
		applog.NewFields().
			WithRequestID(trace.GetRequestID(ctx)).
			WithTransaction(created.ID, created.Name, created.Price, created.DateTime).
			ToSlice()...)

	if !isHTMX(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	s.respondForm(w, r, http.StatusOK, state, "", created.ID)
}

func (s *Server) respondForm(w http.ResponseWriter, r *http.Request, status int, state *ViewState, missing, createdID string) {
	if !isHTMX(r) {
		s.loadList(r.Context(), state)
		s.renderPage(w, r, status, state, missing)
		return
	}
	if s.templates == nil {
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, "form", newFormView(state, missing)); err != nil {
		s.logger.ErrorContext(r.Context(), "Form template execution failed",
			applog.NewFields().WithOperation(applog.OpRender).WithError(err).ToSlice()...)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}

	resp := NewHTMXResponse().Status(status).BodyHTML(buf.Bytes())
	if createdID != "" {
		resp.TriggerTransactionCreated(createdID).TriggerFormReset()
	}
	resp.Write(w)
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, status int, state *ViewState, missing string) {
	if s.templates == nil {
		s.logger.ErrorContext(r.Context(), "Templates not loaded", applog.FieldPath, r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	data := pageView{
		Form:            newFormView(state, missing),
		Balance:         state.Balance(),
		BalanceNegative: state.BalanceNegative(),
		Rows:            state.Rows(),
	}

	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, "index.html", data); err != nil {
		s.logger.ErrorContext(r.Context(), "Index template execution failed",
			applog.NewFields().WithOperation(applog.OpRender).WithError(err).ToSlice()...)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func newFormView(state *ViewState, missing string) formView {
	return formView{
		Name:        state.Name(),
		Description: state.Description(),
		DateTime:    state.DateTime(),
		Missing:     missing,
	}
}

func missingField(err error) string {
	switch {
	case errors.Is(err, core.ErrEmptyName):
		return FieldName
	case errors.Is(err, core.ErrEmptyDescription):
		return FieldDescription
	case errors.Is(err, core.ErrEmptyDateTime):
		return FieldDateTime
	}
	return ""
}

func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
