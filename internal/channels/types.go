package channels

import "time"

// Channel is one LINE Official Account the desk receives messages through.
// Access tokens are write-only through the API: list and get responses carry
// a masked token tail, never the full credential.
type Channel struct {
	ID        int64     `json:"id"`
	ChannelID string    `json:"channel_id"`
	Name      string    `json:"name"`
	TokenTail string    `json:"token_tail,omitempty"`
	HasSecret bool      `json:"has_secret"`
	CreatedAt time.Time `json:"created_at"`
}

// UpsertRequest is the input for creating or updating a channel.
type UpsertRequest struct {
	ChannelID   string `json:"channel_id"`
	Name        string `json:"name"`
	AccessToken string `json:"access_token"`
	Secret      string `json:"secret,omitempty"`
}

// ListResponse wraps a list of channels.
type ListResponse struct {
	Items []Channel `json:"items"`
}
