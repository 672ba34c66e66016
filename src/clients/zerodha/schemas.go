package zerodha

import "encoding/json"

// envelope is the wrapper of every Kite Connect response.
type envelope struct {
	Status    string          `json:"status"`
	Message   string          `json:"message"`
	ErrorType string          `json:"error_type"`
	Data      json.RawMessage `json:"data"`
}

type sessionData struct {
	UserID      string `json:"user_id"`
	UserName    string `json:"user_name"`
	AccessToken string `json:"access_token"`
	PublicToken string `json:"public_token"`
	LoginTime   string `json:"login_time"`
}
