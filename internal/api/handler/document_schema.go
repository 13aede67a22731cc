package handler

import (
	"time"

	"github.com/qrdocs/deposit-system/internal/core/domain"
)

// errorResponse documents the error envelope produced by the central error
// handler; handlers never build it directly.
type errorResponse struct {
	Error            string `json:"error"`
	RemainingSeconds int    `json:"remaining_seconds,omitempty"`
}

type createDocumentRequest struct {
	LastName        string `json:"last_name"`
	FirstName       string `json:"first_name"`
	MiddleName      string `json:"middle_name"`
	Phone           string `json:"phone"`
	Email           string `json:"email"            validate:"omitempty,email"`
	ItemDescription string `json:"item_description"`
	Category        string `json:"category"         validate:"required,oneof=documents photos cards other"`
	DepositAmount   string `json:"deposit_amount"`
	PickupAmount    string `json:"pickup_amount"`
	PickupDate      string `json:"pickup_date"`
}

type documentResponse struct {
	ID              string     `json:"id"`
	Code            string     `json:"code"`
	LastName        string     `json:"last_name"`
	FirstName       string     `json:"first_name"`
	MiddleName      string     `json:"middle_name,omitempty"`
	Phone           string     `json:"phone"`
	Email           string     `json:"email,omitempty"`
	ItemDescription string     `json:"item_description,omitempty"`
	Category        string     `json:"category"`
	DepositAmount   float64    `json:"deposit_amount"`
	PickupAmount    float64    `json:"pickup_amount"`
	DepositedAt     time.Time  `json:"deposited_at"`
	PickupDate      string     `json:"pickup_date,omitempty"`
	Status          string     `json:"status"`
	ArchivedAt      *time.Time `json:"archived_at,omitempty"`
	CreatedBy       string     `json:"created_by"`
}

type documentListResponse struct {
	Items []documentResponse `json:"items"`
	Total int                `json:"total"`
}

func toDocumentResponse(d *domain.Document) documentResponse {
	resp := documentResponse{
		ID:              d.ID,
		Code:            d.Code,
		LastName:        d.LastName,
		FirstName:       d.FirstName,
		MiddleName:      d.MiddleName,
		Phone:           d.Phone,
		Email:           d.Email,
		ItemDescription: d.ItemDescription,
		Category:        string(d.Category),
		DepositAmount:   d.DepositAmount,
		PickupAmount:    d.PickupAmount,
		DepositedAt:     d.DepositedAt,
		PickupDate:      d.PickupDate,
		Status:          string(d.Status),
		CreatedBy:       d.CreatedBy,
	}
	if !d.ArchivedAt.IsZero() {
		archivedAt := d.ArchivedAt
		resp.ArchivedAt = &archivedAt
	}
	return resp
}

func toDocumentListResponse(docs []*domain.Document) documentListResponse {
	items := make([]documentResponse, 0, len(docs))
	for _, d := range docs {
		items = append(items, toDocumentResponse(d))
	}
	return documentListResponse{Items: items, Total: len(items)}
}
