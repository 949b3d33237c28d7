package dto

import (
	"time"

	"github.com/yigit/unishare/internal/app/models"
)

// StatsResponse is the popularity snapshot of a resource
type StatsResponse = models.ResourceStats

// ResourceResponse is the detail view of a resource
type ResourceResponse struct {
	ID          string        `json:"id" example:"3f1c2a9e-4b7d-4c1e-9a2b-0d5e6f7a8b9c"`
	Title       string        `json:"title" example:"Calculus I midterm notes"`
	Description string        `json:"description"`
	UploaderID  int64         `json:"uploaderId" example:"1"`
	Uploader    string        `json:"uploader,omitempty" example:"John Doe"`
	CourseCode  string        `json:"courseCode" example:"MATH101"`
	Semester    string        `json:"semester" example:"Fall 2024"`
	University  string        `json:"university" example:"METU"`
	FileURL     string        `json:"fileUrl"`
	MimeType    string        `json:"mimeType" example:"application/pdf"`
	SizeBytes   int64         `json:"sizeBytes" example:"1048576"`
	Tags        []string      `json:"tags"`
	CreatedAt   time.Time     `json:"createdAt"`
	Stats       StatsResponse `json:"stats"`
}

// ResourceListResponse is one page of resources
type ResourceListResponse struct {
	Resources  []ResourceResponse `json:"resources"`
	Pagination PaginationInfo     `json:"pagination"`
}

// ResourceListRequest holds the listing filters
type ResourceListRequest struct {
	CourseCode string `form:"courseCode" binding:"omitempty,max=50"`
	University string `form:"university" binding:"omitempty,max=255"`
	Semester   string `form:"semester" binding:"omitempty,max=50"`
}

// FromResource converts a models.Resource to a ResourceResponse
func FromResource(r *models.Resource, stats models.ResourceStats) ResourceResponse {
	resp := ResourceResponse{
		ID:          r.ID.String(),
		Title:       r.Title,
		Description: r.Description,
		UploaderID:  r.UploaderID,
		CourseCode:  r.CourseCode,
		Semester:    r.Semester,
		University:  r.University,
		FileURL:     r.FileURL,
		MimeType:    r.MimeType,
		SizeBytes:   r.SizeBytes,
		Tags:        r.TagList(),
		CreatedAt:   r.CreatedAt,
		Stats:       stats,
	}
	if r.Uploader != nil {
		resp.Uploader = r.Uploader.DisplayName()
	}
	return resp
}
