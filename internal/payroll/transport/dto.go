package transport

// CreatePayrollRequest records one salary payment.
type CreatePayrollRequest struct {
	EmployeeName string `json:"employeeName" validate:"required,min=1,max=200"`
	Salary       int64  `json:"salary" validate:"required,min=1"`
}

// ListPayrollsRequest filters a payroll listing by calendar month.
type ListPayrollsRequest struct {
	Month int `form:"month" validate:"omitempty,min=1,max=12"`
	Year  int `form:"year" validate:"omitempty,min=2000,max=2200"`
}

// PayrollResponse is one salary payment as returned to clients.
type PayrollResponse struct {
	ID           string `json:"id"`
	EmployeeName string `json:"employeeName"`
	Salary       int64  `json:"salary"`
	CreatedAt    string `json:"createdAt"`
}

// PayrollListResponse is a payroll listing with its total.
type PayrollListResponse struct {
	Items       []PayrollResponse `json:"items"`
	TotalSalary int64             `json:"totalSalary"`
}
