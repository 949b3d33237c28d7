package dto

// ReportRequest is the body of POST /resources/{id}/report
type ReportRequest struct {
	Reason string `json:"reason" example:"Copyrighted material"`
}
