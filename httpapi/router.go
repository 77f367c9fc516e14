package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"tpbot/models"
	"tpbot/service"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"
)

// HealthMessage is the body of a successful health check
const HealthMessage = "Bot is running!"

// AccountResponse is the public view of an account
type AccountResponse struct {
	ID           int64            `json:"id"`
	DisplayName  string           `json:"display_name"`
	RegisteredAt time.Time        `json:"registered_at"`
	Balances     map[string]int64 `json:"balances"`
}

// NewRouter creates the health and status API
func NewRouter(economy service.EconomyService) *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(requestLogger)

	r.Get("/healthz", health)
	r.Get("/accounts/{account_id}", getAccount(economy))
	return r
}

func health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(HealthMessage))
}

func getAccount(economy service.EconomyService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "account_id"), 10, 64)
		if err != nil {
			writeHTTPError(w, http.StatusBadRequest, "invalid_account_id")
			return
		}

		account, err := economy.Balance(r.Context(), id)
		switch {
		case errors.Is(err, service.ErrNotRegistered):
			writeHTTPError(w, http.StatusNotFound, "not_registered")
			return
		case err != nil:
			log.WithFields(log.Fields{
				"accountID": id,
				"error":     err,
			}).Error("Failed to load account for API")
			writeHTTPError(w, http.StatusServiceUnavailable, "unavailable")
			return
		}

		writeJSON(w, http.StatusOK, toAccountResponse(account))
	}
}

func toAccountResponse(account *models.Account) AccountResponse {
	balances := make(map[string]int64, len(account.Balances))
	for currency, amount := range account.Balances {
		balances[string(currency)] = amount
	}
	return AccountResponse{
		ID:           account.ID,
		DisplayName:  account.DisplayName,
		RegisteredAt: account.RegisteredAt,
		Balances:     balances,
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeHTTPError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]any{"error": code})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		log.WithFields(log.Fields{
			"request_id":  chimw.GetReqID(r.Context()),
			"method":      r.Method,
			"route":       route,
			"status":      ww.Status(),
			"duration_ms": time.Since(start).Milliseconds(),
		}).Debug("HTTP request")
	})
}
