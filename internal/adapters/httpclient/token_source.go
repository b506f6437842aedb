package httpclient

import (
	"net/http"
	"time"

	"github.com/SscSPs/bookhub_loan_service/internal/utils"
	"golang.org/x/oauth2"
)

// InternalAuth describes the service-to-service token attached to outbound calls.
type InternalAuth struct {
	Secret   string
	Issuer   string
	Audience string
	TTL      time.Duration
}

// internalTokenSource signs a scope=internal JWT. It is only reached through
// the ReuseTokenSource in NewInternalTokenSource, which calls it once the
// cached token is about to expire.
type internalTokenSource struct {
	auth InternalAuth
	now  func() time.Time
}

func (s *internalTokenSource) Token() (*oauth2.Token, error) {
	signed, expiresAt, err := utils.GenerateInternalJWT(s.auth.Secret, s.auth.Issuer, s.auth.Audience, s.auth.TTL, s.now())
	if err != nil {
		return nil, err
	}
	return &oauth2.Token{AccessToken: signed, TokenType: "Bearer", Expiry: expiresAt}, nil
}

// NewInternalTokenSource returns a caching token source. A token is reused
// until shortly before it expires.
func NewInternalTokenSource(auth InternalAuth) oauth2.TokenSource {
	return oauth2.ReuseTokenSource(nil, &internalTokenSource{auth: auth, now: time.Now})
}

// NewInternalHTTPClient returns an http.Client that sends a bearer internal
// token with every request and gives up after timeout.
func NewInternalHTTPClient(auth InternalAuth, timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &oauth2.Transport{
			Source: NewInternalTokenSource(auth),
			Base:   http.DefaultTransport,
		},
	}
}
