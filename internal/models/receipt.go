package models

import "time"

// Receipt types: income from document fees or asset rental requests
const (
	ReceiptTypeDocument = "document"
	ReceiptTypeAsset    = "asset"
)

type Receipt struct {
	ID            int       `json:"id"`
	ReceiptNumber string    `json:"receipt_number"`
	Type          string    `json:"type"` // document or asset
	Amount        float64   `json:"amount"`
	ResidentID    *int      `json:"resident_id,omitempty"`
	ResidentName  string    `json:"resident_name"`
	Description   string    `json:"description"`
	IssuedAt      time.Time `json:"issued_at"`
	CreatedAt     time.Time `json:"created_at"`
}

// GenerateReceiptRequest represents the request body for issuing a receipt
type GenerateReceiptRequest struct {
	Amount       float64 `json:"amount"`
	ResidentID   *int    `json:"resident_id,omitempty"`
	ResidentName string  `json:"resident_name"`
	Description  string  `json:"description"`
}
