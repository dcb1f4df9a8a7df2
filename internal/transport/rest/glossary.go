package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/lularocha/glossary-builder/internal/domain"
	"github.com/lularocha/glossary-builder/internal/service/glossary"
)

// GlossaryHandler serves the stateless model-backed endpoints.
type GlossaryHandler struct {
	svc      glossaryService
	expander *cachedExpander
	maxBody  int64
	log      *slog.Logger
}

// NewGlossaryHandler creates a GlossaryHandler. cache may be nil.
func NewGlossaryHandler(svc glossaryService, c expansionCache, maxBody int64, logger *slog.Logger) *GlossaryHandler {
	log := logger.With("handler", "glossary")
	return &GlossaryHandler{
		svc:      svc,
		expander: &cachedExpander{svc: svc, cache: c, log: log},
		maxBody:  maxBody,
		log:      log,
	}
}

// SetMetrics injects the optional cache observer.
func (h *GlossaryHandler) SetMetrics(m cacheObserver) {
	h.expander.metrics = m
}

type generateRequest struct {
	Title    json.RawMessage `json:"title"`
	SeedWord json.RawMessage `json:"seedWord"`
}

type expandRequest struct {
	Term             json.RawMessage `json:"term"`
	Definition       json.RawMessage `json:"definition"`
	GlossaryTitle    json.RawMessage `json:"glossaryTitle"`
	SeedWord         json.RawMessage `json:"seedWord"`
	DetectedLanguage json.RawMessage `json:"detectedLanguage"`
}

type expandResponse struct {
	Paragraphs  []string        `json:"paragraphs"`
	Sources     []domain.Source `json:"sources"`
	GeneratedAt time.Time       `json:"generatedAt"`
}

type termsResponse struct {
	Terms []domain.Term `json:"terms"`
}

// Generate handles POST /api/generate.
func (h *GlossaryHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := decodeBody(w, r, h.maxBody, &req); err != nil {
		writeError(w, http.StatusBadRequest, "seedWord is required")
		return
	}

	seedWord, ok := stringField(req.SeedWord)
	if !ok {
		writeError(w, http.StatusBadRequest, "seedWord is required")
		return
	}

	g, err := h.svc.Generate(r.Context(), glossary.GenerateInput{
		Title:    optionalString(req.Title),
		SeedWord: seedWord,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, g)
}

// Expand handles POST /api/expand.
func (h *GlossaryHandler) Expand(w http.ResponseWriter, r *http.Request) {
	var req expandRequest
	if err := decodeBody(w, r, h.maxBody, &req); err != nil {
		writeError(w, http.StatusBadRequest, "term is required")
		return
	}

	in, errMsg := req.toInput()
	if errMsg != "" {
		writeError(w, http.StatusBadRequest, errMsg)
		return
	}

	content, err := h.expander.expand(r.Context(), in)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toExpandResponse(content))
}

// Extend handles POST /api/extend. The body is the glossary to extend;
// the response holds only the new terms.
func (h *GlossaryHandler) Extend(w http.ResponseWriter, r *http.Request) {
	var g domain.Glossary
	if err := decodeBody(w, r, h.maxBody, &g); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	terms, err := h.svc.ExtendTerms(r.Context(), glossary.ExtendInput{Glossary: &g})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, termsResponse{Terms: terms})
}

// toInput checks required fields in order and returns the first failure
// as a client message.
func (req expandRequest) toInput() (glossary.ExpandInput, string) {
	term, ok := stringField(req.Term)
	if !ok || term == "" {
		return glossary.ExpandInput{}, "term is required"
	}
	definition, ok := stringField(req.Definition)
	if !ok || definition == "" {
		return glossary.ExpandInput{}, "definition is required"
	}
	seedWord, ok := stringField(req.SeedWord)
	if !ok || seedWord == "" {
		return glossary.ExpandInput{}, "seedWord is required"
	}

	return glossary.ExpandInput{
		Term:             term,
		Definition:       definition,
		SeedWord:         seedWord,
		GlossaryTitle:    optionalString(req.GlossaryTitle),
		DetectedLanguage: languageOrNil(optionalString(req.DetectedLanguage)),
	}, ""
}

func toExpandResponse(c *domain.ExpandedContent) expandResponse {
	return expandResponse{
		Paragraphs:  c.Paragraphs,
		Sources:     c.Sources,
		GeneratedAt: c.LoadedAt,
	}
}
