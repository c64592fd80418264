package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	applog "moneytracker/internal/log"
	"moneytracker/internal/middleware/trace"
)

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleReady reports whether the store answers a ping.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := s.svc.Ping(ctx); err != nil {
		applog.FromContext(r.Context()).WarnContext(r.Context(), "Readiness check failed",
			applog.NewFields().WithComponent(applog.ComponentAPI).WithError(err).ToSlice()...)
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("not ready"))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

func handleTest(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"body": "test ok"})
}

// handleListTransactions returns every transaction, oldest first.
func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	list, err := s.svc.List(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to list transactions",
			applog.NewFields().
				WithRequestID(requestID(r)).
				WithOperation(applog.OpList).
				WithError(err).
				ToSlice()...)
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch transactions")
		return
	}

	respondWithJSON(w, http.StatusOK, list)
}

// handleCreateTransaction stores the posted transaction and echoes the stored
// record back with its id.
func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	nt, err := parseCreateTransaction(r, s.maxBodyBytes)
	if err != nil {
		s.logger.WarnContext(ctx, "Invalid transaction payload",
			applog.NewFields().
				WithRequestID(requestID(r)).
				WithOperation(applog.OpParse).
				WithError(err).
				ToSlice()...)
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	t, err := s.svc.Create(ctx, nt)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to create transaction",
			applog.NewFields().
				WithRequestID(requestID(r)).
				WithOperation(applog.OpCreate).
				WithTransaction("", nt.Name, nt.Price, nt.DateTime).
				WithError(err).
				ToSlice()...)
		respondWithError(w, http.StatusInternalServerError, "Failed to save transaction")
		return
	}

	respondWithJSON(w, http.StatusOK, t)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(payload)
}

func requestID(r *http.Request) string {
	return trace.GetRequestID(r.Context())
}
