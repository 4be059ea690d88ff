package dto

// AddLinkRequest registers one share URL.
type AddLinkRequest struct {
	URL      string `json:"url"`
	Title    string `json:"title"`
	Priority string `json:"priority"`
}

// BulkImportRequest registers many share URLs at once.
type BulkImportRequest struct {
	URLs            []string `json:"urls"`
	DefaultPriority string   `json:"default_priority"`
}

// UpdateLinkRequest is a partial update; nil fields are left untouched.
type UpdateLinkRequest struct {
	Status     *string `json:"status"`
	Title      *string `json:"title"`
	Priority   *string `json:"priority"`
	AssignedTo *uint   `json:"assigned_to"`
}

// ClaimRequest starts or resumes a review.
type ClaimRequest struct {
	AccountID uint   `json:"account_id"`
	URL       string `json:"url"`
}

// SubmitStepRequest saves one step's checklist state. Checks must be a flat
// key to boolean mapping; binding rejects anything nested.
type SubmitStepRequest struct {
	TaskID   uint            `json:"qa_task_id"`
	Step     int             `json:"step"`
	Checks   map[string]bool `json:"checks"`
	Comments string          `json:"comments"`
}

// FinalizeRequest completes a review.
type FinalizeRequest struct {
	TaskID      uint   `json:"qa_task_id"`
	FinalNotes  string `json:"final_notes"`
	CompletedBy string `json:"completed_by"`
}
