package schemas

import "time"

// BrokerSessionRequest holds the user supplied half of a broker login. Which
// fields are needed depends on the broker.
type BrokerSessionRequest struct {
	RequestToken    string `json:"request_token,omitempty"`
	Username        string `json:"username,omitempty"`
	Password        string `json:"password,omitempty"`
	TwoFactorAnswer string `json:"two_factor_answer,omitempty"`
}

type BrokerSessionResponse struct {
	Broker    string    `json:"broker"`
	ExpiresAt time.Time `json:"expires_at"`
}

type LoginURLResponse struct {
	Broker   string `json:"broker"`
	LoginURL string `json:"login_url"`
}
