package entry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/buku/internal/category"
	"github.com/MrJamesThe3rd/buku/internal/entry"
	"github.com/MrJamesThe3rd/buku/internal/finance"
	"github.com/MrJamesThe3rd/buku/internal/http/respond"
)

type Service interface {
	List(ctx context.Context, filter entry.ListFilter) ([]entry.Entry, error)
	Create(ctx context.Context, params entry.CreateParams) (*entry.Entry, error)
	Update(ctx context.Context, id string, params entry.CreateParams) (*entry.Entry, error)
	Delete(ctx context.Context, kind entry.Kind, id string) error
}

type Handler struct {
	svc      Service
	validate *validator.Validate
}

func NewHandler(svc Service) *Handler {
	return &Handler{
		svc:      svc,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/{kind}", h.list)
	r.Post("/{kind}", h.create)
	r.Put("/{kind}/{id}", h.update)
	r.Delete("/{kind}/{id}", h.delete)
}

type entryRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date" validate:"required,datetime=2006-01-02"`
	Category    string          `json:"category" validate:"max=64"`
	TaxPercent  decimal.Decimal `json:"tax_percent"`
	Name        string          `json:"name" validate:"max=120"`
	Description string          `json:"description" validate:"max=500"`
	DueDate     string          `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	kind, err := entry.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		respond.Error(w, err)
		return
	}

	filter := entry.ListFilter{Kind: kind}

	if filter.StartDate, err = dateQuery(r, "start"); err != nil {
		respond.Error(w, err)
		return
	}

	if filter.EndDate, err = dateQuery(r, "end"); err != nil {
		respond.Error(w, err)
		return
	}

	entries, err := h.svc.List(r.Context(), filter)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(entries))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	params, ok := h.decodeParams(w, r)
	if !ok {
		return
	}

	e, err := h.svc.Create(r.Context(), params)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(e))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	params, ok := h.decodeParams(w, r)
	if !ok {
		return
	}

	e, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), params)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(e))
}

// decodeParams reads the kind from the path and the entry fields from the
// JSON body. On failure the response has already been written.
func (h *Handler) decodeParams(w http.ResponseWriter, r *http.Request) (entry.CreateParams, bool) {
	kind, err := entry.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		respond.Error(w, err)
		return entry.CreateParams{}, false
	}

	var req entryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return entry.CreateParams{}, false
	}

	if err := h.validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return entry.CreateParams{}, false
	}

	date, _ := time.Parse(time.DateOnly, req.Date)

	params := entry.CreateParams{
		Kind:        kind,
		Amount:      req.Amount,
		OccurredOn:  date,
		TaxPercent:  req.TaxPercent,
		Name:        req.Name,
		Description: req.Description,
	}
	params.Category, _ = category.Resolve(kind, req.Category)

	if req.DueDate != "" {
		due, _ := time.Parse(time.DateOnly, req.DueDate)
		params.DueDate = new(due)
	}

	return params, true
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	kind, err := entry.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		respond.Error(w, err)
		return
	}

	if err := h.svc.Delete(r.Context(), kind, chi.URLParam(r, "id")); err != nil {
		respond.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func dateQuery(r *http.Request, key string) (*time.Time, error) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return nil, nil
	}

	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, fmt.Errorf("%w: bad %s date %q", finance.ErrInvalidRange, key, s)
	}

	return new(t), nil
}
