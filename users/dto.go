package users

// CreateUserRequest is the signup payload. The 5-character password minimum
// is enforced here, at the boundary, not in the directory service.
type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email" example:"don.joe@example.com"`
	Password string `json:"password" validate:"required,min=5" example:"password1"`
	Name     string `json:"name" example:"Don Joe"`
}

// UserResponse is returned from signup. The password never appears in any
// response.
type UserResponse struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// ProfileResponse is returned from the profile endpoint.
type ProfileResponse struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// UpdateProfileRequest is the partial-update payload for the profile
// endpoint. Nil fields are left unchanged.
type UpdateProfileRequest struct {
	Name     *string `json:"name,omitempty"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=5"`
}

func toUserResponse(u *User) UserResponse {
	return UserResponse{ID: u.ID, Email: u.Email, Name: u.Name}
}

func toProfileResponse(u *User) ProfileResponse {
	return ProfileResponse{Email: u.Email, Name: u.Name}
}
