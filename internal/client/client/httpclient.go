package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/pantrykeeper/internal/client/models"
	"github.com/dmitrijs2005/pantrykeeper/internal/common"
	"github.com/dmitrijs2005/pantrykeeper/internal/logging"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultRenewTimeout = 10 * time.Second

	renewKey = "renew"

	// upper bound on response bodies we are willing to buffer
	maxResponseBody = 1 << 20
)

var errNoRefreshToken = errors.New("no refresh token")

// call describes one logical request. It is passed by value; a replay gets a
// copy with attempt bumped, so the original is never mutated.
type call struct {
	method    string
	path      string
	body      []byte
	public    bool
	attempt   int
	requestID string
}

func (c call) retried() call {
	c.attempt++
	return c
}

type Option func(*HTTPClient)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.http = hc }
}

// WithRenewTimeout bounds a single /auth/refresh round trip.
func WithRenewTimeout(d time.Duration) Option {
	return func(c *HTTPClient) {
		if d > 0 {
			c.renewTimeout = d
		}
	}
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.log = l }
}

type HTTPClient struct {
	baseURL      string
	http         *http.Client
	tokens       TokenStore
	log          logging.Logger
	renewTimeout time.Duration
	renewals     singleflight.Group
}

func NewHTTPClient(baseURL string, tokens TokenStore, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL:      strings.TrimRight(baseURL, "/"),
		http:         &http.Client{Timeout: 30 * time.Second},
		tokens:       tokens,
		log:          logging.Nop(),
		renewTimeout: DefaultRenewTimeout,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, c.newCall(http.MethodGet, "/", nil, true), nil)
}

func (c *HTTPClient) Register(ctx context.Context, reg models.Registration) (models.User, error) {
	body, err := json.Marshal(reg)
	if err != nil {
		return models.User{}, err
	}

	var u models.User
	err = c.do(ctx, c.newCall(http.MethodPost, "/auth/register", body, true), &u)
	if err != nil {
		return models.User{}, mapCredentialsError(err)
	}
	return u, nil
}

// Login exchanges credentials for a token pair and persists it.
func (c *HTTPClient) Login(ctx context.Context, username, password string) error {
	body, err := json.Marshal(map[string]string{"username": username, "password": password})
	if err != nil {
		return err
	}

	var pair models.TokenPair
	if err := c.do(ctx, c.newCall(http.MethodPost, "/auth/login", body, true), &pair); err != nil {
		return mapCredentialsError(err)
	}
	if pair.AccessToken == "" {
		return fmt.Errorf("%w: empty access token", ErrAuthFailure)
	}

	if err := c.tokens.Save(ctx, pair.AccessToken, pair.RefreshToken); err != nil {
		return err
	}
	c.log.Info(ctx, "logged in", "username", username)
	return nil
}

// Logout asks the service to revoke the refresh token, then clears the local
// session whatever the service answered. The remote error, if any, is
// returned after the session is gone.
func (c *HTTPClient) Logout(ctx context.Context) error {
	sess, err := c.tokens.Load(ctx)
	if err != nil {
		return err
	}

	var remoteErr error
	if sess.RefreshToken != "" {
		body, err := json.Marshal(map[string]string{"refresh_token": sess.RefreshToken})
		if err != nil {
			return err
		}
		remoteErr = c.do(ctx, c.newCall(http.MethodPost, "/auth/logout", body, true), nil)
		if remoteErr != nil {
			c.log.Warn(ctx, "remote logout failed", "error", remoteErr)
		}
	}

	if err := c.tokens.Clear(ctx); err != nil {
		return err
	}
	return remoteErr
}

func (c *HTTPClient) CurrentUser(ctx context.Context) (models.User, error) {
	var u models.User
	if err := c.do(ctx, c.newCall(http.MethodGet, "/auth/users/me", nil, false), &u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (c *HTTPClient) newCall(method, path string, body []byte, public bool) call {
	return call{method: method, path: path, body: body, public: public, requestID: uuid.NewString()}
}

// do sends cl with the stored access token, if any. A protected call
// rejected with 401 renews the session and is replayed once; public calls
// are never renewed.
func (c *HTTPClient) do(ctx context.Context, cl call, out any) error {
	sess, err := c.tokens.Load(ctx)
	if err != nil {
		return err
	}
	token := sess.AccessToken

	status, body, err := c.send(ctx, cl, token)
	if err != nil {
		return err
	}

	if status == http.StatusUnauthorized && !cl.public {
		if cl.attempt > 0 {
			return c.expire(ctx, ErrUnauthorized)
		}

		fresh, err := c.renew(ctx, token)
		if err != nil {
			return err
		}

		cl = cl.retried()
		status, body, err = c.send(ctx, cl, fresh)
		if err != nil {
			return err
		}
		if status == http.StatusUnauthorized {
			return c.expire(ctx, ErrUnauthorized)
		}
	}

	return decode(status, body, out)
}

func (c *HTTPClient) send(ctx context.Context, cl call, token string) (int, []byte, error) {
	var rdr io.Reader
	if cl.body != nil {
		rdr = bytes.NewReader(cl.body)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, c.baseURL+cl.path, rdr)
	if err != nil {
		return 0, nil, err
	}
	if cl.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeader, cl.requestID)
	if token != "" {
		req.Header.Set(common.AuthorizationHeader, common.BearerScheme+" "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return 0, nil, fmt.Errorf("%w: read response: %w", ErrUnavailable, err)
	}

	c.log.Debug(ctx, "request done",
		"method", cl.method, "path", cl.path, "status", resp.StatusCode,
		"attempt", cl.attempt, "request_id", cl.requestID)

	return resp.StatusCode, body, nil
}

// renew returns an access token to replay with. stale is the token the
// failed request carried. If the stored token already differs, another
// renewal finished in the meantime and its token is reused. Otherwise one
// /auth/refresh is shared by every concurrent caller.
func (c *HTTPClient) renew(ctx context.Context, stale string) (string, error) {
	ch := c.renewals.DoChan(renewKey, func() (any, error) {
		rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.renewTimeout)
		defer cancel()

		sess, err := c.tokens.Load(rctx)
		if err != nil {
			return "", err
		}
		if sess.AccessToken != "" && sess.AccessToken != stale {
			return sess.AccessToken, nil
		}
		if sess.RefreshToken == "" {
			return "", c.expire(rctx, errNoRefreshToken)
		}

		pair, err := c.refresh(rctx, sess.RefreshToken)
		if err != nil {
			return "", c.expire(rctx, err)
		}
		if pair.RefreshToken == "" {
			pair.RefreshToken = sess.RefreshToken
		}

		if err := c.tokens.Save(rctx, pair.AccessToken, pair.RefreshToken); err != nil {
			return "", err
		}
		c.log.Info(rctx, "session renewed")
		return pair.AccessToken, nil
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

func (c *HTTPClient) refresh(ctx context.Context, refreshToken string) (models.TokenPair, error) {
	body, err := json.Marshal(map[string]string{"refresh_token": refreshToken})
	if err != nil {
		return models.TokenPair{}, err
	}

	var pair models.TokenPair
	if err := c.do(ctx, c.newCall(http.MethodPost, "/auth/refresh", body, true), &pair); err != nil {
		return models.TokenPair{}, err
	}
	if pair.AccessToken == "" {
		return models.TokenPair{}, errors.New("refresh returned empty access token")
	}
	return pair, nil
}

// expire drops the local session and reports ErrSessionExpired wrapping cause.
func (c *HTTPClient) expire(ctx context.Context, cause error) error {
	c.log.Warn(ctx, "session expired", "cause", cause)
	if err := c.tokens.Clear(ctx); err != nil {
		return errors.Join(fmt.Errorf("%w: %w", ErrSessionExpired, cause), err)
	}
	return fmt.Errorf("%w: %w", ErrSessionExpired, cause)
}

func decode(status int, body []byte, out any) error {
	if status >= 200 && status < 300 {
		if out == nil || len(bytes.TrimSpace(body)) == 0 {
			return nil
		}
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	}

	apiErr := &APIError{StatusCode: status, Detail: detail(body)}
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		return fmt.Errorf("%w: %w", ErrUnauthorized, apiErr)
	}
	if status == http.StatusBadGateway || status == http.StatusServiceUnavailable || status == http.StatusGatewayTimeout {
		return fmt.Errorf("%w: %w", ErrUnavailable, apiErr)
	}
	return apiErr
}

// detail extracts the "detail" member of an error body. Validation errors
// carry a structured detail, which is returned as raw JSON.
func detail(body []byte) string {
	var e struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &e); err != nil || len(e.Detail) == 0 {
		return strings.TrimSpace(string(body))
	}
	var s string
	if err := json.Unmarshal(e.Detail, &s); err == nil {
		return s
	}
	return string(e.Detail)
}

// mapCredentialsError turns a rejection of login or registration into
// ErrAuthFailure, keeping the service's detail reachable via errors.As.
func mapCredentialsError(err error) error {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return err
	}
	switch apiErr.StatusCode {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusConflict, http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %w", ErrAuthFailure, apiErr)
	}
	return err
}
