package auth

// CreateTokenRequest is the credential payload for the token endpoint.
type CreateTokenRequest struct {
	Email    string `json:"email" validate:"required" example:"don.joe@example.com"`
	Password string `json:"password" validate:"required" example:"password1"`
}

// TokenResponse carries the issued token key.
type TokenResponse struct {
	Token string `json:"token" example:"9944b09199c62bcf9418ad846dd0e4bbdfc6ee4b"`
}
