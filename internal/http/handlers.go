package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"statistik/internal/log"
	"statistik/internal/period"
)

const readyTimeout = 2 * time.Second

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.ready != nil {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()
		if err := s.ready(ctx); err != nil {
			log.FromContext(r.Context()).WarnContext(r.Context(), "Readiness check failed", log.FieldError, err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.FromContext(ctx)
	sl := log.NewStructuredLogger(logger)

	sel, err := ParseSelection(r.URL.Query(), s.provider.Now())
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: verr.Message, Field: verr.Field})
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := s.provider.Stats(ctx, sel)
	if err != nil {
		sl.LogError(ctx, "Failed to compute stats", err, log.OpAggregate,
			log.NewFields().
				WithPeriod(sel.Period.Year, int(sel.Period.Month), string(sel.Mode)).
				WithErrorType(log.ErrorTypeUpstream))
		writeError(w, http.StatusBadGateway, "transaction source unavailable")
		return
	}

	sl.LogStatsComputed(ctx, sel.Period.Year, int(sel.Period.Month), string(sel.Mode),
		res.IncomeTotal.String(), res.ExpenseTotal.String(), len(res.Categories))
	writeJSON(w, http.StatusOK, newStatsResponse(sel, res))
}

func (s *Server) handleYears(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, yearsResponse{
		Years: period.YearOptions(s.provider.Now(), period.DefaultYearOptions),
	})
}

func (s *Server) handleCategories(w http.ResponseWriter, _ *http.Request) {
	cat := s.provider.Catalog()
	writeJSON(w, http.StatusOK, categoriesResponse{
		FallbackLabel: cat.FallbackLabel(),
		Palette:       cat.Palette(),
		Categories:    cat.Entries(),
	})
}
