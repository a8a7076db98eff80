package constants

// ReviewStatus is the canonical review state for rows in draft_documents.
type ReviewStatus string

// Stable values (store these exact strings in DB).
const (
	ReviewStatusClean  ReviewStatus = "CLEAN"  // extraction produced a complete draft
	ReviewStatusReview ReviewStatus = "REVIEW" // draft persisted but flagged for human review
	ReviewStatusFailed ReviewStatus = "FAILED" // orchestration failed; placeholder draft stored
)
