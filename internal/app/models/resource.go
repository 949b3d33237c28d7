package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Resource is a shared course document
type Resource struct {
	ID             uuid.UUID `db:"id" json:"id"`
	Title          string    `db:"title" json:"title"`
	Description    string    `db:"description" json:"description"`
	UploaderID     int64     `db:"uploader_id" json:"uploaderId"`
	CourseCode     string    `db:"course_code" json:"courseCode"`
	Semester       string    `db:"semester" json:"semester"`
	University     string    `db:"university" json:"university"`
	FileURL        string    `db:"file_url" json:"fileUrl"`
	MimeType       string    `db:"mime_type" json:"mimeType"`
	SizeBytes      int64     `db:"size_bytes" json:"sizeBytes"`
	ViewsCount     int64     `db:"views_count" json:"viewsCount"`
	DownloadsCount int64     `db:"downloads_count" json:"downloadsCount"`
	Tags           string    `db:"tags" json:"-"` // comma delimited
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`

	Uploader *User `json:"uploader,omitempty"` // Relation, no db tag
}

// TagList returns the parsed tags of the resource
func (r *Resource) TagList() []string {
	return ParseTags(r.Tags)
}

// ParseTags splits a stored tag string on commas, trims each entry and drops
// empty ones. Order is preserved.
func ParseTags(raw string) []string {
	tags := make([]string, 0)
	for _, tag := range strings.Split(raw, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// JoinTags is the inverse of ParseTags
func JoinTags(tags []string) string {
	return strings.Join(ParseTags(strings.Join(tags, ",")), ",")
}

// ResourceOwner is the minimal projection needed to address notifications
type ResourceOwner struct {
	ResourceID uuid.UUID
	Title      string
	OwnerID    int64
}

// ResourceFilter narrows a resource listing
type ResourceFilter struct {
	CourseCode string
	University string
	Semester   string
}
