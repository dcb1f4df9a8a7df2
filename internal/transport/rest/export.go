package rest

import (
	"bytes"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"github.com/lularocha/glossary-builder/internal/domain"
	"github.com/lularocha/glossary-builder/internal/service/export"
)

type exporter interface {
	Write(w io.Writer, g *domain.Glossary, f export.Format) error
	Filename(g *domain.Glossary, f export.Format) string
}

// ExportHandler renders a glossary posted by the client.
type ExportHandler struct {
	exporter exporter
	maxBody  int64
	log      *slog.Logger
}

// NewExportHandler creates an ExportHandler.
func NewExportHandler(exp exporter, maxBody int64, logger *slog.Logger) *ExportHandler {
	return &ExportHandler{exporter: exp, maxBody: maxBody, log: logger.With("handler", "export")}
}

// Export handles POST /api/export?format=md|docx.
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	var g domain.Glossary
	if err := decodeBody(w, r, h.maxBody, &g); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeDocument(h.log, w, r, h.exporter, &g, format)
}

// writeDocument renders into memory first so a rendering failure still
// produces a JSON error instead of a truncated download.
func writeDocument(log *slog.Logger, w http.ResponseWriter, r *http.Request, exp exporter, g *domain.Glossary, f export.Format) {
	var buf bytes.Buffer
	if err := exp.Write(&buf, g, f); err != nil {
		handleError(log, w, r, err)
		return
	}

	w.Header().Set("Content-Type", f.ContentType())
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": exp.Filename(g, f),
	}))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w) //nolint:errcheck
}
