package hdfc

type tokenIDResponse struct {
	TokenID string `json:"tokenId"`
}

type loginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type twoFAPayload struct {
	Answer string `json:"answer"`
}

type twoFAResponse struct {
	RequestToken string `json:"requestToken"`
	CallbackURL  string `json:"callbackUrl"`
	Authorised   bool   `json:"authorised"`
}

type accessTokenPayload struct {
	APISecret string `json:"apiSecret"`
}

type accessTokenResponse struct {
	AccessToken string `json:"accessToken"`
}
