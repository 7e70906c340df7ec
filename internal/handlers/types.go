package handlers

// AggregatePayload is the document the dashboard consumes.
type AggregatePayload struct {
	Q1Counts map[string]int     `json:"q1_counts"`
	Q1Dist   map[string]float64 `json:"q1_dist"`
	Col2     []string           `json:"col2"`
	Col3     []string           `json:"col3"`
	Col4     []string           `json:"col4"`
	Col5     []string           `json:"col5"`
	Q2       []string           `json:"q2"`
	Q3       []string           `json:"q3"`
}

// UploadResult is the response body of a successful upload.
type UploadResult struct {
	Message string `json:"message"`
	Rows    int    `json:"rows"`
	BatchID string `json:"batch_id"`
}

// RowPayload is the JSON body accepted by the row-level write APIs.
type RowPayload struct {
	PhoneNumber      *string `json:"phone_number" validate:"omitempty,max=50"`
	EFD              *string `json:"efd" validate:"omitempty,max=100"`
	JobCategory      *string `json:"job_category" validate:"omitempty,max=200"`
	EmploymentStatus *string `json:"employment_status" validate:"omitempty,max=200"`
	Sex              *string `json:"sex" validate:"omitempty,max=50"`
	Status           *string `json:"status" validate:"omitempty,max=100"`
	Q1               *string `json:"q1" validate:"omitempty,max=2000"`
	Q2               *string `json:"q2" validate:"omitempty,max=10000"`
	Q3               *string `json:"q3" validate:"omitempty,max=10000"`
}
