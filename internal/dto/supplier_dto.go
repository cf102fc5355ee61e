package dto

type CreateSupplierRequest struct {
	Name  string  `json:"name"  validate:"required,min=2"`
	Email *string `json:"email" validate:"omitempty,email"`
	Phone *string `json:"phone"`
	Notes *string `json:"notes"`
}

type UpdateSupplierRequest struct {
	Name  string  `json:"name"  validate:"required,min=2"`
	Email *string `json:"email" validate:"omitempty,email"`
	Phone *string `json:"phone"`
	Notes *string `json:"notes"`
}

type SupplierResponse struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Email  *string `json:"email"`
	Phone  *string `json:"phone"`
	Notes  *string `json:"notes"`
	Active bool    `json:"active"`
}
