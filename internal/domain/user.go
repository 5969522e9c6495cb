package domain

// User represents a user account. The id is client-supplied and doubles as
// the presence key for real-time delivery.
type User struct {
	ID       string `json:"userId"`
	Password string `json:"-"` // Do not expose the password
}

// CredentialRequest is the JSON body of the /login and /register endpoints.
type CredentialRequest struct {
	UserID   string `json:"userId" validate:"required"`
	Password string `json:"password" validate:"required"`
}
