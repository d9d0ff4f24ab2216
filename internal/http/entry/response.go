package entry

import (
	"time"

	"github.com/MrJamesThe3rd/buku/internal/entry"
	"github.com/MrJamesThe3rd/buku/internal/http/respond"
)

type entryResponse struct {
	ID          string     `json:"id"`
	Kind        entry.Kind `json:"kind"`
	Amount      string     `json:"amount"`
	Date        string     `json:"date"`
	Category    string     `json:"category"`
	TaxPercent  string     `json:"tax_percent,omitempty"`
	Name        string     `json:"name,omitempty"`
	Description string     `json:"description,omitempty"`
}

func toResponse(e *entry.Entry) entryResponse {
	resp := entryResponse{
		ID:          e.ID,
		Kind:        e.Kind,
		Amount:      respond.Money(e.Amount),
		Date:        e.OccurredOn.Format(time.DateOnly),
		Category:    e.Category,
		Name:        e.Name,
		Description: e.Description,
	}

	if !e.TaxPercent.IsZero() {
		resp.TaxPercent = e.TaxPercent.String()
	}

	return resp
}

func toResponseList(entries []entry.Entry) []entryResponse {
	resp := make([]entryResponse, len(entries))
	for i := range entries {
		resp[i] = toResponse(&entries[i])
	}

	return resp
}
