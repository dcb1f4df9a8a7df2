package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/lularocha/glossary-builder/internal/domain"
	"github.com/lularocha/glossary-builder/internal/service/export"
	"github.com/lularocha/glossary-builder/internal/service/glossary"
)

type sessionIssuer interface {
	NewSession() (uuid.UUID, string, error)
	TTL() time.Duration
}

type sessionService interface {
	Save(ctx context.Context, g *domain.Glossary) error
	Load(ctx context.Context) (*domain.Glossary, error)
	Clear(ctx context.Context) error
	AttachExpansion(ctx context.Context, term string, content domain.ExpandedContent) (*domain.Glossary, error)
	AppendTerms(ctx context.Context, terms []domain.Term) (*domain.Glossary, int, error)
}

// SessionHandler serves the session endpoints that read and modify the
// stored glossary snapshot.
type SessionHandler struct {
	tokens   sessionIssuer
	sessions sessionService
	glossary glossaryService
	expander *cachedExpander
	exporter exporter
	maxBody  int64
	log      *slog.Logger
	now      func() time.Time
}

// NewSessionHandler creates a SessionHandler. It shares the expansion cache
// with the stateless endpoints through gh.
func NewSessionHandler(
	tokens sessionIssuer,
	sessions sessionService,
	gh *GlossaryHandler,
	exp exporter,
	logger *slog.Logger,
) *SessionHandler {
	return &SessionHandler{
		tokens:   tokens,
		sessions: sessions,
		glossary: gh.svc,
		expander: gh.expander,
		exporter: exp,
		maxBody:  gh.maxBody,
		log:      logger.With("handler", "session"),
		now:      time.Now,
	}
}

type sessionResponse struct {
	SessionID string    `json:"sessionId"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type expandTermRequest struct {
	Term string `json:"term"`
}

type extendResponse struct {
	Added    int              `json:"added"`
	Glossary *domain.Glossary `json:"glossary"`
}

// Create handles POST /api/session.
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	id, token, err := h.tokens.NewSession()
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, sessionResponse{
		SessionID: id.String(),
		Token:     token,
		ExpiresAt: h.now().Add(h.tokens.TTL()).UTC(),
	})
}

// Get handles GET /api/session/glossary.
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	g, err := h.sessions.Load(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, g)
}

// Put handles PUT /api/session/glossary.
func (h *SessionHandler) Put(w http.ResponseWriter, r *http.Request) {
	var g domain.Glossary
	if err := decodeBody(w, r, h.maxBody, &g); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	if err := h.sessions.Save(r.Context(), &g); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /api/session/glossary.
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Clear(r.Context()); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ExpandTerm handles POST /api/session/glossary/expand. A term that already
// has expanded content is returned without a model call.
func (h *SessionHandler) ExpandTerm(w http.ResponseWriter, r *http.Request) {
	var req expandTermRequest
	if err := decodeBody(w, r, h.maxBody, &req); err != nil || req.Term == "" {
		writeError(w, http.StatusBadRequest, "term is required")
		return
	}

	g, err := h.sessions.Load(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	idx := g.FindTerm(req.Term)
	if idx < 0 {
		writeError(w, http.StatusNotFound, "Term not found in glossary")
		return
	}
	term := g.Terms[idx]
	if term.IsExpanded() {
		writeJSON(w, http.StatusOK, toExpandResponse(term.ExpandedContent))
		return
	}

	content, err := h.expander.expand(r.Context(), glossary.ExpandInput{
		Term:             term.Term,
		Definition:       term.Definition,
		SeedWord:         g.SeedWord,
		GlossaryTitle:    g.Title,
		DetectedLanguage: languageOrNil(g.DetectedLanguage),
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	if _, err := h.sessions.AttachExpansion(r.Context(), term.Term, *content); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toExpandResponse(content))
}

// Extend handles POST /api/session/glossary/extend.
func (h *SessionHandler) Extend(w http.ResponseWriter, r *http.Request) {
	g, err := h.sessions.Load(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	terms, err := h.glossary.ExtendTerms(r.Context(), glossary.ExtendInput{Glossary: g})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	updated, added, err := h.sessions.AppendTerms(r.Context(), terms)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, extendResponse{Added: added, Glossary: updated})
}

// Export handles GET /api/session/glossary/export?format=md|docx.
func (h *SessionHandler) Export(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	g, err := h.sessions.Load(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeDocument(h.log, w, r, h.exporter, g, format)
}
