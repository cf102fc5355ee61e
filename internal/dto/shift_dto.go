package dto

// CheckInRequest opens a shift for a staff member at a station.
type CheckInRequest struct {
	Station    string `json:"station"     validate:"required,oneof=kitchen front bar"`
	StaffEmail string `json:"staff_email" validate:"required,email"`
	StaffName  string `json:"staff_name"  validate:"required"`
}

// CheckOutRequest closes an open shift.
type CheckOutRequest struct {
	Notes *string `json:"notes"`
}

type ShiftResponse struct {
	ID         string  `json:"id"`
	Station    string  `json:"station"`
	StaffEmail string  `json:"staff_email"`
	StaffName  string  `json:"staff_name"`
	Status     string  `json:"status"`
	Notes      *string `json:"notes"`
	OpenedAt   string  `json:"opened_at"`
	ClosedAt   *string `json:"closed_at"`
}

// ShiftFilter is bound from query string of GET /v1/shifts.
type ShiftFilter struct {
	Station string `form:"station"`
	Status  string `form:"status"` // open | closed | all
	Page    int    `form:"page,default=1"   validate:"min=1"`
	Limit   int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type ShiftListResponse struct {
	Data  []ShiftResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
