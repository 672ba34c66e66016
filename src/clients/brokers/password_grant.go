package brokers

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"time"

	"famwealth/src/utils"
	"famwealth/src/utils/requests"
)

// TokenResponse is the OAuth style password grant answer.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
}

// PasswordGrant exchanges a username and password for a bearer session.
func PasswordGrant(ctx context.Context, api *requests.ExternalAPIService, broker, tokenURL, clientID string, creds Credentials, now time.Time) (*Session, error) {
	if creds.Username == "" || creds.Password == "" {
		return nil, &utils.AuthenticationError{Broker: broker, Err: errors.New("username and password are required")}
	}

	data := url.Values{}
	data.Set("grant_type", "password")
	data.Set("username", creds.Username)
	data.Set("password", creds.Password)
	data.Set("client_id", clientID)
	if creds.ClientSecret != "" {
		data.Set("client_secret", creds.ClientSecret)
	}

	body, err := api.PostForm(ctx, tokenURL, data, nil)
	if err != nil {
		var httpErr *utils.HTTPError
		if errors.As(err, &httpErr) && httpErr.Code == 400 {
			// invalid_grant
			return nil, &utils.AuthenticationError{Broker: broker, Err: err}
		}
		return nil, WrapError(broker, "token", err)
	}

	var token TokenResponse
	if err := json.Unmarshal(body, &token); err != nil || token.AccessToken == "" {
		return nil, &utils.AuthenticationError{Broker: broker, Err: errors.New("no access_token in token response")}
	}

	session := &Session{Broker: broker, UserID: creds.UserID, AccessToken: token.AccessToken}
	if token.ExpiresIn > 0 {
		session.ExpiresAt = now.Add(time.Duration(token.ExpiresIn) * time.Second)
	}
	return session, nil
}

// FetchBearerList GETs a JSON list of holdings, optionally wrapped in data.
func FetchBearerList(ctx context.Context, api *requests.ExternalAPIService, broker, endpoint string, session *Session) ([]VendorRecord, error) {
	body, err := api.Get(ctx, endpoint, nil, requests.BearerHeader(session.AccessToken))
	if err != nil {
		return nil, WrapError(broker, "GET holdings", err)
	}

	records, err := DecodeRecords(body)
	if err == nil {
		return records, nil
	}
	var wrapped struct {
		Data json.RawMessage `json:"data"`
	}
	if jsonErr := json.Unmarshal(body, &wrapped); jsonErr != nil || len(wrapped.Data) == 0 {
		return nil, &utils.TransportError{Broker: broker, Op: "GET holdings", Err: err}
	}
	records, err = DecodeRecords(wrapped.Data)
	if err != nil {
		return nil, &utils.TransportError{Broker: broker, Op: "GET holdings", Err: err}
	}
	return records, nil
}
