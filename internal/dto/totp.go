package dto

// TOTPSettingsRequest is the body of POST /api/totp/settings.
type TOTPSettingsRequest struct {
	Secret string `json:"secret"`
	Code   string `json:"code"`
	Action string `json:"action"`
	Email  string `json:"email"`
}

// TOTPVerifyRequest is the body of POST /api/totp/verify.
type TOTPVerifyRequest struct {
	Secret string `json:"secret"`
	Code   string `json:"code"`
	Email  string `json:"email"`
}

// TOTPSubmitRequest carries the second factor during login.
type TOTPSubmitRequest struct {
	Code string `json:"code"`
}
