package models

// User represents a user account as exposed by the API.
// The password hash is never serialized.
type User struct {
	ID          int64     `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"displayName"`
	IsAdmin     bool      `json:"isAdmin"`
	CreatedAt   Timestamp `json:"createdAt"`
}

// RegisterRequest is the request body for creating an account.
type RegisterRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
}

// Validate validates the register request.
func (r *RegisterRequest) Validate() []FieldError {
	var errs []FieldError

	if len(r.Username) < 3 || len(r.Username) > 32 {
		errs = append(errs, FieldError{
			Field:   "username",
			Message: "username must be between 3 and 32 characters",
			Code:    "INVALID",
		})
	}
	if len(r.Password) < 8 {
		errs = append(errs, FieldError{
			Field:   "password",
			Message: "password must be at least 8 characters",
			Code:    "TOO_SHORT",
		})
	}

	return errs
}

// LoginRequest is the request body for authenticating.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate validates the login request.
func (r *LoginRequest) Validate() []FieldError {
	var errs []FieldError

	if r.Username == "" {
		errs = append(errs, FieldError{
			Field:   "username",
			Message: "username is required",
			Code:    "REQUIRED",
		})
	}
	if r.Password == "" {
		errs = append(errs, FieldError{
			Field:   "password",
			Message: "password is required",
			Code:    "REQUIRED",
		})
	}

	return errs
}

// TokenResponse is returned after successful authentication.
type TokenResponse struct {
	// AccessToken is the signed session token for API authentication.
	AccessToken string `json:"accessToken"`

	// TokenType is always "Bearer".
	TokenType string `json:"tokenType"`

	// ExpiresIn is the number of seconds until the token expires.
	ExpiresIn int64 `json:"expiresIn"`

	// User is the authenticated account.
	User User `json:"user"`
}

// UploadResponse is returned after a successful image upload.
type UploadResponse struct {
	ImageURL string `json:"imageUrl"`
}
