package dto

import "time"

// CreateCompanyRequest body para crear una empresa.
type CreateCompanyRequest struct {
	Name string `json:"name" validate:"required"`
}

// CompanyResponse salida de una empresa.
type CompanyResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
