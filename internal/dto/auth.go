package dto

// TokenRequest exchanges the administrative secret for an operator JWT. The
// engine has no user store; operator identity comes from the caller and the
// secret gates issuance.
type TokenRequest struct {
	UserID      string `json:"userID" binding:"required"`
	AdminSecret string `json:"adminSecret" binding:"required"`
}

// TokenResponse carries the issued JWT.
type TokenResponse struct {
	Token string `json:"token"`
}
