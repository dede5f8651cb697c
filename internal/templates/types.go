package templates

import "time"

// Template is a canned reply an admin can insert into the send box.
type Template struct {
	ID        int64     `json:"id"`
	ChannelID string    `json:"channel_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateRequest is the input for creating a template.
type CreateRequest struct {
	Body string `json:"body"`
}

// ListResponse wraps a list of templates.
type ListResponse struct {
	Items []Template `json:"items"`
}
