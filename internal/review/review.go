package review

// Review is one rating+comment submission for a product. There is no edit
// or delete surface and no uniqueness rule: a user may review the same jar
// more than once.
type Review struct {
	ID        string `json:"id"`
	ProductID string `json:"product_id"`
	UserID    string `json:"user_id"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
	CreatedAt string `json:"created_at"`
	// ReviewerName is joined in from the submitting profile's full_name
	// when listing; it is not stored on the review row.
	ReviewerName *string `json:"reviewer_name,omitempty"`
}
