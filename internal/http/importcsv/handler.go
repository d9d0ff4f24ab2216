package importcsv

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/buku/internal/entry"
	"github.com/MrJamesThe3rd/buku/internal/http/respond"
	"github.com/MrJamesThe3rd/buku/internal/importer"
)

type Importer interface {
	Import(format importer.Format, r io.Reader) ([]entry.CreateParams, error)
}

type Creator interface {
	CreateBatch(ctx context.Context, params []entry.CreateParams) ([]*entry.Entry, error)
}

type Handler struct {
	importSvc Importer
	entrySvc  Creator
}

func NewHandler(importSvc Importer, entrySvc Creator) *Handler {
	return &Handler{
		importSvc: importSvc,
		entrySvc:  entrySvc,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
}

type paramsDTO struct {
	Kind        entry.Kind `json:"kind"`
	Amount      string     `json:"amount"`
	Date        string     `json:"date"`
	Category    string     `json:"category"`
	TaxPercent  string     `json:"tax_percent,omitempty"`
	Name        string     `json:"name,omitempty"`
	Description string     `json:"description,omitempty"`
}

type previewResponse struct {
	Parsed  int         `json:"parsed"`
	Entries []paramsDTO `json:"entries"`
}

type importResponse struct {
	Imported int      `json:"imported"`
	IDs      []string `json:"ids"`
	Error    string   `json:"error,omitempty"`
}

// importCSV parses the uploaded file and creates its entries remotely. With
// dry_run=true only the parsed rows are returned.
func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	format, err := importer.ParseFormat(r.FormValue("format"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	params, err := h.importSvc.Import(format, file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if dry, _ := strconv.ParseBool(r.FormValue("dry_run")); dry {
		respond.JSON(w, http.StatusOK, toPreview(params))
		return
	}

	created, err := h.entrySvc.CreateBatch(r.Context(), params)

	resp := importResponse{Imported: len(created), IDs: make([]string, 0, len(created))}
	for _, e := range created {
		resp.IDs = append(resp.IDs, e.ID)
	}

	if err != nil {
		resp.Error = err.Error()
		respond.JSON(w, respond.StatusOf(err), resp)

		return
	}

	respond.JSON(w, http.StatusCreated, resp)
}

func toPreview(params []entry.CreateParams) previewResponse {
	resp := previewResponse{Parsed: len(params), Entries: make([]paramsDTO, len(params))}

	for i, p := range params {
		resp.Entries[i] = paramsDTO{
			Kind:        p.Kind,
			Amount:      respond.Money(p.Amount),
			Date:        p.OccurredOn.Format(time.DateOnly),
			Category:    p.Category,
			Name:        p.Name,
			Description: p.Description,
		}

		if !p.TaxPercent.IsZero() {
			resp.Entries[i].TaxPercent = p.TaxPercent.String()
		}
	}

	return resp
}
