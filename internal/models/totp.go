package models

import "time"

// UserTOTPSettings is the per-account second-factor leaf. It is always
// written whole: disabling stores {enabled:false} and drops the secret.
type UserTOTPSettings struct {
	Enabled   bool       `json:"enabled"`
	Secret    string     `json:"secret,omitempty"`
	EnabledAt *time.Time `json:"enabledAt,omitempty"`
}

// TOTPSetup is handed to the admin while enrolling an authenticator.
type TOTPSetup struct {
	Secret         string `json:"secret"`
	QRCode         string `json:"qrCode"`
	ManualEntryKey string `json:"manualEntryKey"`
	OTPAuthURL     string `json:"otpauthUrl"`
}

// TOTPStatus is the public view of the settings leaf.
type TOTPStatus struct {
	Enabled   bool       `json:"enabled"`
	EnabledAt *time.Time `json:"enabledAt,omitempty"`
}
