package devserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	gologging "github.com/op/go-logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jask/petlist/internal/graphql"
	"github.com/jask/petlist/internal/logging"
)

type handler struct {
	store Store
	ops   *prometheus.CounterVec
	log   *gologging.Logger
}

// NewHandler serves the pets GraphQL API at / plus /health and /metrics.
func NewHandler(store Store) http.Handler {
	reg := prometheus.NewRegistry()
	ops := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "petlist",
		Subsystem: "devserver",
		Name:      "operations_total",
		Help:      "GraphQL operations handled, by root field and outcome.",
	}, []string{"operation", "outcome"})
	reg.MustRegister(ops)

	h := &handler{store: store, ops: ops, log: logging.For("devserver")}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	r.Post("/", h.serveGraphQL)
	r.Post("/graphql", h.serveGraphQL)
	return r
}

type response struct {
	Data   any            `json:"data"`
	Errors graphql.Errors `json:"errors,omitempty"`
}

func (h *handler) serveGraphQL(w http.ResponseWriter, r *http.Request) {
	var req graphql.Request
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err == nil {
		err = json.Unmarshal(body, &req)
	}
	if err != nil || req.Query == "" {
		writeJSON(w, http.StatusBadRequest, response{Errors: graphql.Errors{{Message: "request body must be a GraphQL JSON request"}}})
		return
	}

	field, err := resolveField(req.OperationName, req.Query)
	if err != nil {
		h.ops.WithLabelValues("unknown", "error").Inc()
		writeJSON(w, http.StatusBadRequest, response{Errors: graphql.Errors{{Message: err.Error()}}})
		return
	}

	result, err := execute(r.Context(), h.store, field, req.Variables)
	if err != nil {
		h.ops.WithLabelValues(field, "error").Inc()
		var inErr inputError
		if !errors.As(err, &inErr) && !errors.Is(err, ErrNotFound) {
			h.log.Errorf("%s: %v", field, err)
		}
		writeJSON(w, http.StatusOK, response{Errors: graphql.Errors{{Message: err.Error(), Path: []any{field}}}})
		return
	}
	h.ops.WithLabelValues(field, "ok").Inc()
	h.log.Debugf("%s ok", field)
	writeJSON(w, http.StatusOK, response{Data: map[string]any{field: result}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
