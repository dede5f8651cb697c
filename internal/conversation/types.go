package conversation

import "time"

// Sender is the role that authored a message.
type Sender string

const (
	SenderCustomer Sender = "customer"
	SenderAdmin    Sender = "admin"
)

// DeliveryStatus tracks outbound delivery of an admin reply to the customer.
// Customer messages are stored as sent; admin messages start pending and end
// sent or failed depending on the push to the messaging platform.
type DeliveryStatus string

const (
	DeliverySent    DeliveryStatus = "sent"
	DeliveryPending DeliveryStatus = "pending"
	DeliveryFailed  DeliveryStatus = "failed"
)

// ContentTypeText is the default message content type.
const ContentTypeText = "text"

// Message is one immutable entry in a case's conversation log.
type Message struct {
	ID             int64          `json:"id"`
	CaseID         int64          `json:"case_id"`
	Sender         Sender         `json:"sender"`
	Body           string         `json:"body"`
	ContentType    string         `json:"content_type"`
	DeliveryStatus DeliveryStatus `json:"delivery_status"`
	CreatedAt      time.Time      `json:"created_at"`
}

// AppendRequest is the input for appending a message to a case.
type AppendRequest struct {
	CaseID      int64  `json:"case_id"`
	Sender      Sender `json:"sender"`
	Body        string `json:"body"`
	ContentType string `json:"content_type,omitempty"`
}

// ListResponse wraps a list of messages.
type ListResponse struct {
	Items []Message `json:"items"`
}
