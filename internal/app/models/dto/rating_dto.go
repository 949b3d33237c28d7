package dto

// SubmitRatingRequest is the body of POST /resources/{id}/rating
type SubmitRatingRequest struct {
	Value *int `json:"value" binding:"required" example:"4"`
}

// RatingResponse is the rating aggregate of a resource as seen by the caller
type RatingResponse struct {
	Average    float64 `json:"average" example:"4.25"`
	Count      int64   `json:"count" example:"12"`
	UserRating *int    `json:"userRating" example:"4"`
	// Unavailable is set when the aggregate could not be computed
	Unavailable bool `json:"unavailable,omitempty"`
}
