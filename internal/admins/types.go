package admins

import "time"

// Admin represents an agent console account.
type Admin struct {
	ID          int64     `json:"id"`
	Username    string    `json:"username"`
	Role        string    `json:"role"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	LastLoginAt time.Time `json:"last_login_at,omitzero"`
}

// CreateRequest is the input for creating an admin account.
type CreateRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
	IsActive *bool  `json:"is_active,omitempty"`
}

// ListResponse wraps a list of admins.
type ListResponse struct {
	Items []Admin `json:"items"`
}
