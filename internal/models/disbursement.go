package models

import "time"

type Disbursement struct {
	ID              int       `json:"id"`
	Date            time.Time `json:"date"`
	Amount          float64   `json:"amount"`
	PaymentMethod   string    `json:"payment_method"`
	Remarks         string    `json:"remarks"`
	BeneficiaryID   *int      `json:"beneficiary_id,omitempty"`
	BeneficiaryName string    `json:"beneficiary_name"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// SaveDisbursementRequest is the body for creating or updating a disbursement
type SaveDisbursementRequest struct {
	Date            string  `json:"date"` // YYYY-MM-DD
	Amount          float64 `json:"amount"`
	PaymentMethod   string  `json:"payment_method"`
	Remarks         string  `json:"remarks"`
	BeneficiaryID   *int    `json:"beneficiary_id,omitempty"`
	BeneficiaryName string  `json:"beneficiary_name"`
}

// Beneficiary is a reference record for disbursement recipients
type Beneficiary struct {
	ID             int       `json:"id"`
	Name           string    `json:"name"`
	Address        string    `json:"address"`
	Phone          string    `json:"phone"`
	TotalDisbursed float64   `json:"total_disbursed"`
	CreatedAt      time.Time `json:"created_at"`
}
