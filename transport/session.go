package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/spilchen/yahoo-fantasy-api/model"
)

const YahooURL = "https://fantasysports.yahooapis.com/fantasy/v2"

// Requester is the boundary the Game/League/Team facades call through. Test
// doubles implement it to avoid call-outs to Yahoo!.
type Requester interface {
	// Get sends a GET to the URI and returns the parsed JSON document.
	Get(uri string) (map[string]any, error)
	// Put sends an XML payload, succeeding only on status 200.
	Put(uri, body string) error
	// Post sends an XML payload, succeeding only on status 201.
	Post(uri, body string) error
}

// Session is the authenticated HTTP session against the Yahoo! fantasy
// endpoint. It attaches the OAuth2 bearer token to every request and will
// transparently refresh an expired credential once, retrying the same call.
// Token persistence is the caller's concern.
type Session struct {
	url    string
	client *http.Client
	token  string
	renew  func() (string, error)
}

// NewSession builds a Session from an OAuth2 config and a previously obtained
// token (typically carrying a refresh token).
func NewSession(ctx context.Context, cfg *oauth2.Config, tok *oauth2.Token) *Session {
	s := &Session{
		url:    YahooURL,
		client: &http.Client{Timeout: 1 * time.Minute},
		token:  tok.AccessToken,
	}
	s.renew = func() (string, error) {
		// Force a refresh even if the token's expiry hasn't passed; the
		// server has already told us it is no longer valid.
		expired := *tok
		expired.Expiry = time.Now().Add(-1 * time.Hour)
		fresh, err := cfg.TokenSource(ctx, &expired).Token()
		if err != nil {
			return "", fmt.Errorf("error refreshing yahoo token: %w", err)
		}
		*tok = *fresh
		return fresh.AccessToken, nil
	}
	return s
}

// NewSessionForTest builds a Session against a fake server. The renew
// function may be nil if the test never exercises the refresh path.
func NewSessionForTest(url string, renew func() (string, error)) *Session {
	return &Session{
		url:    url,
		client: http.DefaultClient,
		token:  "test-token",
		renew:  renew,
	}
}

func (s *Session) Get(uri string) (map[string]any, error) {
	resp, err := s.do(http.MethodGet, uri+"?format=json", "")
	if err != nil {
		return nil, err
	}
	if resp.status != http.StatusOK {
		return nil, &model.RemoteAPIError{StatusCode: resp.status, Payload: string(resp.body)}
	}

	dec := json.NewDecoder(bytes.NewReader(resp.body))
	dec.UseNumber()
	var doc map[string]any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("error parsing response from yahoo: %w", err)
	}
	if _, ok := doc["error"]; ok {
		return nil, &model.RemoteAPIError{StatusCode: resp.status, Payload: string(resp.body)}
	}
	return doc, nil
}

func (s *Session) Put(uri, body string) error {
	resp, err := s.do(http.MethodPut, uri, body)
	if err != nil {
		return err
	}
	if resp.status != http.StatusOK {
		return &model.RemoteAPIError{StatusCode: resp.status, Payload: string(resp.body)}
	}
	return nil
}

func (s *Session) Post(uri, body string) error {
	resp, err := s.do(http.MethodPost, uri, body)
	if err != nil {
		return err
	}
	if resp.status != http.StatusCreated {
		return &model.RemoteAPIError{StatusCode: resp.status, Payload: string(resp.body)}
	}
	return nil
}

type response struct {
	status int
	body   []byte
}

// do performs one round trip, plus at most one refresh-and-retry cycle when
// the response looks like an expired credential.
func (s *Session) do(method, uri, body string) (*response, error) {
	resp, err := s.send(method, uri, body)
	if err != nil {
		return nil, err
	}
	if s.renew != nil && expiredCredential(resp) {
		token, rerr := s.renew()
		if rerr != nil {
			// Keep the original API error; the refresh failure is secondary.
			return resp, nil
		}
		s.token = token
		retried, err := s.send(method, uri, body)
		if err != nil {
			return nil, err
		}
		return retried, nil
	}
	return resp, nil
}

func (s *Session) send(method, uri, body string) (*response, error) {
	var payload io.Reader
	if body != "" {
		payload = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, fmt.Sprintf("%s/%s", s.url, uri), payload)
	if err != nil {
		return nil, fmt.Errorf("error creating yahoo http request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.token)
	if body != "" {
		req.Header.Set("Content-Type", "application/xml")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending yahoo http request: %w", err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading yahoo response: %w", err)
	}
	return &response{status: resp.StatusCode, body: b}, nil
}

// expiredCredential reports whether a response is Yahoo! telling us the
// access token has lapsed, as opposed to a real authorization failure.
func expiredCredential(r *response) bool {
	if r.status != http.StatusUnauthorized && r.status != http.StatusForbidden {
		return false
	}
	body := string(r.body)
	return strings.Contains(body, "token_expired") || strings.Contains(body, "oauth_problem")
}
