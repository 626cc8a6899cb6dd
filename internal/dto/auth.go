package dto

// LoginResponse carries the authenticated user's profile and the issued
// token pair.
type LoginResponse struct {
	User         UserDTO `json:"user"`
	AccessToken  string  `json:"access_token"`
	RefreshToken string  `json:"refresh_token"`
}
