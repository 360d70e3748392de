package models

// LoginState is a step of the two-factor login flow.
type LoginState int

const (
	LoginAnonymous LoginState = iota
	LoginPrimaryPending
	LoginTOTPRequired
	LoginTOTPPending
	LoginAuthenticated
)

var loginStateNames = [...]string{
	LoginAnonymous:      "ANONYMOUS",
	LoginPrimaryPending: "PRIMARY_PENDING",
	LoginTOTPRequired:   "TOTP_REQUIRED",
	LoginTOTPPending:    "TOTP_PENDING",
	LoginAuthenticated:  "AUTHENTICATED",
}

func (s LoginState) String() string {
	if s < 0 || int(s) >= len(loginStateNames) {
		return "UNKNOWN"
	}
	return loginStateNames[s]
}

// MarshalText renders the state name in JSON bodies.
func (s LoginState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// LoginStatus is returned by every step of the browser login flow.
type LoginStatus struct {
	State        LoginState       `json:"state"`
	TOTPRequired bool             `json:"totpRequired"`
	User         *UserInfo        `json:"user,omitempty"`
	Session      *ProviderSession `json:"session,omitempty"`
	Error        string           `json:"error,omitempty"`
}
