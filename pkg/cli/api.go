package cli

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/EDKOMANU/mpictl/pkg/mpi"
	"github.com/EDKOMANU/mpictl/pkg/store"
)

// AnalyzeRequest is the POST /analyze payload: the analysis
// configuration plus the dataset itself.
type AnalyzeRequest struct {
	Dimensions       mpi.Dimensions     `json:"dimensions"`
	DomainWeights    map[string]float64 `json:"domain_weights,omitempty"`
	IndicatorWeights map[string]float64 `json:"indicator_weights,omitempty"`
	Threshold        *float64           `json:"threshold,omitempty"`
	Validate         *bool              `json:"validate,omitempty"`
	Records          []mpi.Record       `json:"records"`
}

func analyzeAPIHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AnalyzeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeAPIError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
			return
		}

		opts := mpi.DefaultOptions()
		opts.DomainWeights = req.DomainWeights
		opts.IndicatorWeights = req.IndicatorWeights
		if req.Threshold != nil {
			opts.Threshold = *req.Threshold
		}
		if req.Validate != nil {
			opts.Validate = *req.Validate
		}

		rep, err := mpi.Analyze(req.Dimensions, req.Records, opts)
		if err != nil {
			writeAPIError(w, statusFor(err), err.Error())
			return
		}
		writeJSON(w, rep)
	}
}

func runsAPIHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := runListLimitDefault
		if v := r.URL.Query().Get("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				writeAPIError(w, http.StatusBadRequest, "invalid limit: "+v)
				return
			}
			limit = n
		}

		runs, err := store.ListRuns(db, limit)
		if err != nil {
			writeAPIError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, runs)
	}
}

func runAPIHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		run, err := store.GetRun(db, r.PathValue("id"))
		if err != nil {
			writeAPIError(w, http.StatusNotFound, err.Error())
			return
		}
		writeJSON(w, run)
	}
}

// statusFor maps engine failures to HTTP codes: all three typed
// errors are caller mistakes.
func statusFor(err error) int {
	var cerr *mpi.ConfigurationError
	var verr *mpi.ValidationError
	var derr *mpi.DataError
	if errors.As(err, &cerr) || errors.As(err, &verr) || errors.As(err, &derr) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeAPIError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(map[string]string{"error": msg}); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}
