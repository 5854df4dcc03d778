package clerkauth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"intelvest/internal/apperrors"
	"intelvest/internal/logger"

	"github.com/golang-jwt/jwt"
)

// Client acquires short-lived session tokens from a Clerk-style identity
// provider. Tokens are never cached - each fetch cycle asks for a fresh one
// right before its network calls.
//
// The provider may still be initializing when the first cycle starts.
// AcquireToken suspends until MarkReady has been called rather than issuing
// a premature failure.
type Client struct {
	HttpClient  *http.Client
	FrontendApi string
	SessionId   string

	ready     chan struct{}
	readyOnce sync.Once
}

func NewClient(httpClient *http.Client, frontendApi, sessionId string) *Client {
	return &Client{
		HttpClient:  httpClient,
		FrontendApi: frontendApi,
		SessionId:   sessionId,
		ready:       make(chan struct{}),
	}
}

// MarkReady signals that the provider has finished initializing. Safe to
// call more than once.
func (c *Client) MarkReady() {
	c.readyOnce.Do(func() {
		close(c.ready)
	})
}

type tokenResponse struct {
	Jwt string `json:"jwt"`
}

// AcquireToken returns a fresh bearer token, or an AuthUnavailable failure
// if there is no active session. Callers must not retry on that failure -
// the user has to re-authenticate out of band.
func (c *Client) AcquireToken(ctx context.Context) (string, error) {
	select {
	case <-c.ready:
	case <-ctx.Done():
		return "", ctx.Err()
	}

	if c.SessionId == "" {
		return "", apperrors.New(apperrors.KindAuthUnavailable, "You are signed out. Please sign in to continue.")
	}

	requestUrl := fmt.Sprintf("%s/v1/client/sessions/%s/tokens", c.FrontendApi, c.SessionId)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, requestUrl, nil)
	if err != nil {
		return "", err
	}

	response, err := c.HttpClient.Do(req)
	if err != nil {
		return "", apperrors.Wrap(apperrors.KindAuthUnavailable, "Could not reach the sign-in service. Please try again.", err)
	}
	defer response.Body.Close()

	responseBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return "", apperrors.Wrap(
			apperrors.KindAuthUnavailable,
			"Could not read the sign-in service response.",
			fmt.Errorf("received status code %d and failed to read body: %w", response.StatusCode, err),
		)
	}

	if response.StatusCode != 200 {
		return "", apperrors.Wrap(
			apperrors.KindAuthUnavailable,
			"Your session has ended. Please sign in again.",
			fmt.Errorf("token endpoint failed with status code %d", response.StatusCode),
		)
	}

	tokenJson := tokenResponse{}
	err = json.Unmarshal(responseBytes, &tokenJson)
	if err != nil || tokenJson.Jwt == "" {
		return "", apperrors.Wrap(apperrors.KindAuthUnavailable, "Sign-in service returned an unusable token.", err)
	}

	if err := checkExpiry(tokenJson.Jwt); err != nil {
		return "", apperrors.Wrap(apperrors.KindAuthUnavailable, "Your session token has expired. Please sign in again.", err)
	}

	return tokenJson.Jwt, nil
}

// checkExpiry decodes the token claims without verifying the signature -
// verification is the backend's job, we only want to avoid sending a token
// that is already dead.
func checkExpiry(jwtStr string) error {
	claims := jwt.MapClaims{}
	parser := jwt.Parser{}
	_, _, err := parser.ParseUnverified(jwtStr, claims)
	if err != nil {
		// unparseable tokens still get sent; the backend decides
		logger.Debug("could not parse session token claims: %v", err)
		return nil
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil
	}
	if time.Now().UTC().Unix() > int64(exp) {
		return fmt.Errorf("jwt is expired")
	}

	return nil
}
