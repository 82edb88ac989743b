package handler

import (
	"time"

	"validarfc/internal/validation/models"
)

// ValidateResponse is the HTTP response for POST /validate.
type ValidateResponse struct {
	RFC       string    `json:"rfc"`
	IsValid   bool      `json:"is_valid"`
	CreatedAt time.Time `json:"created_at"`
}

// HistoryResponse is the HTTP response for GET /history.
type HistoryResponse struct {
	Total   int                `json:"total"`
	Page    int                `json:"page"`
	PerPage int                `json:"per_page"`
	Items   []ValidateResponse `json:"items"`
}

func toValidateResponse(r models.Record) ValidateResponse {
	return ValidateResponse{
		RFC:       r.RFC,
		IsValid:   r.IsValid,
		CreatedAt: r.CreatedAt,
	}
}

func toHistoryResponse(p *models.Page) *HistoryResponse {
	items := make([]ValidateResponse, 0, len(p.Items))
	for _, r := range p.Items {
		items = append(items, toValidateResponse(r))
	}
	return &HistoryResponse{
		Total:   p.Total,
		Page:    p.Page,
		PerPage: p.PerPage,
		Items:   items,
	}
}
