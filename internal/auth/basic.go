// Package auth derives and checks the HTTP Basic credential used by the
// publish endpoint.
package auth

import (
	"crypto/subtle"
	"encoding/base64"
	"net/http"
)

// DeriveToken returns base64("apiKey:apiSecret"). It is recomputed for every
// publish attempt and never stored.
func DeriveToken(apiKey, apiSecret string) string {
	return base64.StdEncoding.EncodeToString([]byte(apiKey + ":" + apiSecret))
}

// BasicHeader formats token as an Authorization header value.
func BasicHeader(token string) string {
	return "Basic " + token
}

// CheckBasic reports whether r carries Basic credentials equal to
// apiKey/apiSecret. An empty configured key never matches.
func CheckBasic(r *http.Request, apiKey, apiSecret string) bool {
	if apiKey == "" {
		return false
	}
	user, pass, ok := r.BasicAuth()
	if !ok {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(apiKey)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(pass), []byte(apiSecret)) == 1
	return userOK && passOK
}
