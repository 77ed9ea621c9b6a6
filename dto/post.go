package dto

// CreatePostRequest is the body of POST /api/posts.
// Date accepts either a calendar day ("2024-05-01") or an RFC3339 timestamp;
// either way the entry lands on that calendar day.
type CreatePostRequest struct {
	Title   string   `json:"title" example:"A Walk in the Woods"`
	Content string   `json:"content" example:"<p>Went hiking today, saw a fox.</p>"`
	Date    string   `json:"date" example:"2024-05-01"`
	Mood    string   `json:"mood,omitempty" example:"happy"`
	Tags    []string `json:"tags,omitempty"`
}

// UpdatePostRequest is the body of PUT /api/posts/:id. Only supplied fields
// change.
type UpdatePostRequest struct {
	Title   *string   `json:"title"`
	Content *string   `json:"content"`
	Date    *string   `json:"date"`
	Mood    *string   `json:"mood"`
	Tags    *[]string `json:"tags"`
}

// GenerateTitleRequest is the body of POST /api/ai/generate-title.
type GenerateTitleRequest struct {
	Content string `json:"content" example:"<p>Went hiking today, saw a fox.</p>"`
}

// GenerateTitleResponse carries the suggested title back to the client.
type GenerateTitleResponse struct {
	Title string `json:"title" example:"A Fox Among the Pines"`
}
