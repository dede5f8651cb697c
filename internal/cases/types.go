package cases

import "time"

// Case is one customer's ongoing support conversation on one channel.
type Case struct {
	ID                 int64     `json:"id"`
	CustomerExternalID string    `json:"customer_external_id"`
	ChannelID          string    `json:"channel_id"`
	Status             Status    `json:"status"`
	AdminName          string    `json:"admin_name,omitempty"`
	Note               string    `json:"note,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// Filter narrows List results; zero values mean no filtering.
type Filter struct {
	ChannelID string
	Status    Status
}

// ListResponse wraps a list of cases.
type ListResponse struct {
	Items []Case `json:"items"`
}
