package transport

// CreateEngagementRequest opens a new engagement in one of the three source
// collections. Title carries the service name regardless of source; the
// repository maps it onto the source-specific column.
type CreateEngagementRequest struct {
	Source        string                 `json:"source" validate:"required,oneof=direct manual converted"`
	ClientName    string                 `json:"clientName" validate:"required,min=1,max=200"`
	ClientEmail   string                 `json:"clientEmail" validate:"omitempty,email"`
	Title         string                 `json:"title" validate:"required,min=1,max=200"`
	PaymentAmount *string                `json:"paymentAmount,omitempty" validate:"omitempty,max=20"`
	Fields        map[string]interface{} `json:"fields,omitempty"`
	AssignedTo    string                 `json:"assignedTo,omitempty" validate:"omitempty,max=200"`
}

// UpdateStatusRequest moves an engagement to a new canonical status.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending processing completed rejected"`
}

// AssignRequest assigns an engagement to a staff member.
type AssignRequest struct {
	AssignedTo string `json:"assignedTo" validate:"required,min=1,max=200"`
}

// AttachCertificateRequest records an uploaded certificate object key.
type AttachCertificateRequest struct {
	FileName string `json:"fileName" validate:"required,min=1,max=500"`
}

// CertificatePresignRequest asks for an upload URL for a certificate file.
type CertificatePresignRequest struct {
	FileName string `json:"fileName" validate:"required,min=1,max=500"`
}

// ListEngagementsRequest filters an engagement listing.
type ListEngagementsRequest struct {
	Source   string `form:"source" validate:"required,oneof=direct manual converted"`
	Status   string `form:"status" validate:"omitempty,oneof=pending processing completed rejected"`
	Page     int    `form:"page" validate:"omitempty,min=1"`
	PageSize int    `form:"pageSize" validate:"omitempty,min=1,max=100"`
}

// EngagementResponse is one engagement as returned to clients.
type EngagementResponse struct {
	ID            string                 `json:"id"`
	Source        string                 `json:"source"`
	ClientName    string                 `json:"clientName"`
	ClientEmail   string                 `json:"clientEmail,omitempty"`
	Title         string                 `json:"title"`
	Status        string                 `json:"status"`
	PaymentAmount *string                `json:"paymentAmount,omitempty"`
	Fields        map[string]interface{} `json:"fields,omitempty"`
	Certificate   string                 `json:"certificate,omitempty"`
	AssignedTo    string                 `json:"assignedTo,omitempty"`
	CreatedAt     string                 `json:"createdAt"`
	UpdatedAt     string                 `json:"updatedAt"`
}

// EngagementListResponse is a paginated listing.
type EngagementListResponse struct {
	Items    []EngagementResponse `json:"items"`
	Total    int                  `json:"total"`
	Page     int                  `json:"page"`
	PageSize int                  `json:"pageSize"`
}
