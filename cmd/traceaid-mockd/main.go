// Command traceaid-mockd serves an in-memory Trace-Aid backend for local
// development. It exposes the REST surface the client consumes, seeded with
// fixture data. Drafts live only as long as the process.
package main

import (
	"encoding/json"
	"flag"
	"math/rand"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/emerginginv/trace-aid-sub006/internal/api"
	"github.com/emerginginv/trace-aid-sub006/internal/csync"
)

func main() {
	addr := flag.String("addr", ":8787", "listen address")
	latency := flag.Duration("latency", 150*time.Millisecond, "simulated backend latency")
	failRate := flag.Float64("fail-rate", 0, "fraction of draft saves that fail, 0..1")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "mockd",
	})

	s := &server{
		logger:   logger,
		latency:  *latency,
		failRate: *failRate,
		drafts:   csync.NewMap[string, api.CaseDraft](),
	}
	s.seed()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/me", s.handleMe)
	mux.HandleFunc("GET /api/v1/organization", s.handleOrganization)
	mux.HandleFunc("GET /api/v1/cases", s.handleCases)
	mux.HandleFunc("GET /api/v1/cases/{id}", s.handleCase)
	mux.HandleFunc("GET /api/v1/cases/{id}/draft", s.handleGetDraft)
	mux.HandleFunc("PUT /api/v1/cases/{id}/draft", s.handlePutDraft)
	mux.HandleFunc("GET /api/v1/billing/invoices", s.handleInvoices)

	logger.Info("listening", "addr", *addr, "latency", *latency, "fail_rate", *failRate)
	if err := http.ListenAndServe(*addr, s.trace(mux)); err != nil {
		logger.Fatal("server stopped", "error", err)
	}
}

type server struct {
	logger   *log.Logger
	latency  time.Duration
	failRate float64
	drafts   *csync.Map[string, api.CaseDraft]

	mu       sync.Mutex
	user     api.User
	org      api.Organization
	cases    []api.Case
	invoices []api.Invoice
}

// seed fills the store with a believable workload.
func (s *server) seed() {
	now := time.Now()

	s.user = api.User{
		ID:             "usr_01",
		Name:           "Dana Reyes",
		Email:          "dana@emergent.example",
		Role:           "investigator",
		OrganizationID: "org_01",
	}
	s.org = api.Organization{
		ID:        "org_01",
		Name:      "Emergent Investigations",
		Plan:      "pro",
		SeatCount: 12,
	}

	s.cases = []api.Case{
		{
			ID: "case_1001", Number: "2026-117",
			Subject: "Warehouse inventory loss", Status: api.CaseStatusOpen,
			AssignedTo: "Dana Reyes",
			OpenedAt:   now.Add(-40 * 24 * time.Hour), UpdatedAt: now.Add(-3 * time.Hour),
			BilledCents: 124000, Currency: "USD",
		},
		{
			ID: "case_1002", Number: "2026-118",
			Subject: "Vendor kickback allegation", Status: api.CaseStatusPending,
			AssignedTo: "Marcus Webb",
			OpenedAt:   now.Add(-22 * 24 * time.Hour), UpdatedAt: now.Add(-26 * time.Hour),
			BilledCents: 86500, Currency: "USD",
		},
		{
			ID: "case_1003", Number: "2026-104",
			Subject: "Executive background check", Status: api.CaseStatusClosed,
			AssignedTo: "Dana Reyes",
			OpenedAt:   now.Add(-90 * 24 * time.Hour), UpdatedAt: now.Add(-12 * 24 * time.Hour),
			BilledCents: 402500, Currency: "USD",
		},
		{
			ID: "case_1004", Number: "2025-289",
			Subject: "Insurance claim surveillance", Status: api.CaseStatusArchived,
			AssignedTo: "Priya Nair",
			OpenedAt:   now.Add(-300 * 24 * time.Hour), UpdatedAt: now.Add(-120 * 24 * time.Hour),
			BilledCents: 158000, Currency: "USD",
		},
	}

	s.invoices = []api.Invoice{
		{ID: "inv_0043", Number: "INV-0043", IssuedAt: now.Add(-5 * 24 * time.Hour), AmountCents: 182550, Currency: "USD", Status: "open"},
		{ID: "inv_0042", Number: "INV-0042", IssuedAt: now.Add(-35 * 24 * time.Hour), AmountCents: 250000, Currency: "USD", Status: "paid"},
		{ID: "inv_0041", Number: "INV-0041", IssuedAt: now.Add(-66 * 24 * time.Hour), AmountCents: 311200, Currency: "USD", Status: "paid"},
		{ID: "inv_0039", Number: "INV-0039", IssuedAt: now.Add(-97 * 24 * time.Hour), AmountCents: 46000, Currency: "USD", Status: "void"},
	}
}

// trace logs each request and applies the simulated latency.
func (s *server) trace(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		time.Sleep(s.latency)
		next.ServeHTTP(w, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", r.Header.Get("X-Request-ID"),
			"duration", time.Since(start),
		)
	})
}

func (s *server) handleMe(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.user)
}

func (s *server) handleOrganization(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.org)
}

func (s *server) handleCases(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"cases": s.cases})
}

func (s *server) handleCase(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := r.PathValue("id")
	for _, c := range s.cases {
		if c.ID == id {
			writeJSON(w, http.StatusOK, c)
			return
		}
	}
	writeError(w, http.StatusNotFound, "case not found")
}

func (s *server) handleGetDraft(w http.ResponseWriter, r *http.Request) {
	draft, ok := s.drafts.Get(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "no draft for case")
		return
	}
	writeJSON(w, http.StatusOK, draft)
}

func (s *server) handlePutDraft(w http.ResponseWriter, r *http.Request) {
	if s.failRate > 0 && rand.Float64() < s.failRate {
		writeError(w, http.StatusServiceUnavailable, "simulated save failure")
		return
	}

	var draft api.CaseDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeError(w, http.StatusBadRequest, "invalid draft body")
		return
	}

	id := r.PathValue("id")
	if draft.CaseID == "" {
		draft.CaseID = id
	}
	if draft.CaseID != id {
		writeError(w, http.StatusBadRequest, "draft case ID does not match URL")
		return
	}

	s.drafts.Set(id, draft)

	s.mu.Lock()
	defer s.mu.Unlock()

	// Drafts also bump the case's updated time, like the real backend.
	for i := range s.cases {
		if s.cases[i].ID == id {
			s.cases[i].UpdatedAt = time.Now()
			break
		}
	}

	s.logger.Info("draft saved", "case", id, "subject", draft.Subject)
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleInvoices(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"invoices": s.invoices})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
