package models

import "time"

// NoMatchGID is the sentinel id used when no candidate clears the review
// threshold.
const NoMatchGID = "0"

// ReviewReasonBelowThreshold is attached to results routed to human review.
const ReviewReasonBelowThreshold = "all scores below threshold, showing top-3 anyway"

// Match result statuses
const (
	MatchStatusAutoMatched   = "auto_matched"
	MatchStatusPendingReview = "pending_review"
	MatchStatusApproved      = "approved"
	MatchStatusRejected      = "rejected"
	MatchStatusNoMatch       = "no_match"
)

// Candidate is a retrieval hit. Score is BM25 relevance normalized against
// the best hit, rounded to three decimals.
type Candidate struct {
	GID   string  `json:"gid"`
	Title string  `json:"title"`
	Score float64 `json:"score"`
}

// ScoredCandidate is a candidate after rubric scoring on the 0-10 integer
// scale, with the reasoning behind the score.
type ScoredCandidate struct {
	GID    string `json:"gid"`
	Title  string `json:"title"`
	Score  int    `json:"score"`
	Reason string `json:"reason"`
}

// MatchResult is the outcome of comparing one label against the catalog.
// SelectedGID is NoMatchGID when nothing was confidently matched.
type MatchResult struct {
	ID               string            `json:"id" db:"id"`
	Query            string            `json:"query" db:"query"`
	NormalizedQuery  string            `json:"normalized_query" db:"normalized_query"`
	SelectedGID      string            `json:"selected_gid" db:"selected_gid"`
	NeedsHumanReview bool              `json:"needs_human_review" db:"needs_human_review"`
	ReviewReason     string            `json:"review_reason,omitempty" db:"review_reason"`
	Candidates       []ScoredCandidate `json:"candidates" db:"-"`
	Status           string            `json:"status" db:"status"`
	ResolvedBy       *string           `json:"resolved_by,omitempty" db:"resolved_by"`
	ResolvedAt       *time.Time        `json:"resolved_at,omitempty" db:"resolved_at"`
	CreatedAt        time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at" db:"updated_at"`
}

// CompareRequest is the request body for a single label comparison
type CompareRequest struct {
	Label string `json:"label" validate:"required"`
}

// CompareBatchRequest is the request body for comparing multiple labels
type CompareBatchRequest struct {
	Labels []string `json:"labels" validate:"required,min=1,dive,required"`
}

// CompareBatchResponse is the response for a batch comparison
type CompareBatchResponse struct {
	Results []*MatchResult `json:"results"`
}

// MatchResultListResponse is a paginated list of match results
type MatchResultListResponse struct {
	Items      []MatchResult `json:"items"`
	TotalCount int           `json:"total_count"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
}
