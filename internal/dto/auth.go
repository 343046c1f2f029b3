package dto

// Auth Request DTOs

// LoginRequest carries the optional post-login redirect target. It binds from
// the JSON body or the query string.
type LoginRequest struct {
	Redirect string `json:"redirect" query:"redirect"`
}

// Auth Response DTOs

// LoginResponse points the caller at the SSO service login page
type LoginResponse struct {
	Success bool   `json:"success"`
	AuthURL string `json:"authUrl"`
}

// UserResponse wraps the authenticated identity for /me, /verify and /auth
type UserResponse struct {
	Success bool        `json:"success"`
	User    interface{} `json:"user"`
}
