package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/grandline-driver/internal/domain/apperror"
	"github.com/oksasatya/grandline-driver/internal/domain/entity"
	"github.com/oksasatya/grandline-driver/internal/domain/repository"
	"github.com/oksasatya/grandline-driver/pkg/helpers"
)

const timeoutMessage = "Request timed out"

// envelope is the wire shape of every API response. Only Data and Message are consumed.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Errors  []string        `json:"errors,omitempty"`
}

// Client issues JSON requests against the driver API with bearer auth and a
// single refresh-and-retry on 401.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Tokens  repository.TokenStore
	Logger  *logrus.Logger
}

func NewClient(baseURL string, timeout time.Duration, tokens repository.TokenStore, logger *logrus.Logger) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
		Tokens:  tokens,
		Logger:  helpers.OrDiscard(logger),
	}
}

type call struct {
	method   string
	path     string
	body     any
	out      any
	fallback string // message used when the response carries none

	// noRefresh skips the 401 refresh-retry (auth endpoints).
	noRefresh bool
}

type result struct {
	status int
	env    envelope
}

func (c *Client) do(ctx context.Context, cl call) error {
	var payload []byte
	if cl.body != nil {
		b, err := json.Marshal(cl.body)
		if err != nil {
			return apperror.Wrap(apperror.KindRequest, cl.fallback, err)
		}
		payload = b
	}

	token, err := c.Tokens.AccessToken(ctx)
	if err != nil {
		c.Logger.WithError(err).Warn("token store read failed")
	}

	res, err := c.send(ctx, cl, payload, token)
	if err != nil {
		return err
	}

	if res.status == http.StatusUnauthorized && !cl.noRefresh {
		newToken, rerr := c.refreshAccessToken(ctx)
		if rerr != nil || newToken == "" {
			c.Logger.WithError(rerr).WithField("path", cl.path).Info("token refresh failed, clearing tokens")
			if cerr := c.Tokens.Clear(ctx); cerr != nil {
				c.Logger.WithError(cerr).Warn("token store clear failed")
			}
			return c.statusError(cl, res)
		}
		c.Logger.WithField("path", cl.path).Debug("retrying request with refreshed token")
		res, err = c.send(ctx, cl, payload, newToken)
		if err != nil {
			return err
		}
	}

	if res.status < 200 || res.status > 299 {
		return c.statusError(cl, res)
	}
	if cl.out != nil && len(res.env.Data) > 0 && string(res.env.Data) != "null" {
		if err := json.Unmarshal(res.env.Data, cl.out); err != nil {
			return apperror.Wrap(apperror.KindRequest, cl.fallback, err)
		}
	}
	return nil
}

func (c *Client) send(ctx context.Context, cl call, payload []byte, token string) (result, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, cl.method, c.BaseURL+cl.path, body)
	if err != nil {
		return result{}, apperror.Wrap(apperror.KindRequest, cl.fallback, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.Logger.WithFields(logrus.Fields{"method": cl.method, "path": cl.path}).Debug("api request")
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return result{}, c.transportError(cl, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return result{}, c.transportError(cl, err)
	}
	var env envelope
	if len(raw) > 0 {
		// Non-JSON bodies (proxies, HTML error pages) fall back to the default message.
		if uerr := json.Unmarshal(raw, &env); uerr != nil {
			env = envelope{}
		}
	}
	c.Logger.WithFields(logrus.Fields{"status": resp.StatusCode, "path": cl.path}).Debug("api response")
	return result{status: resp.StatusCode, env: env}, nil
}

func (c *Client) transportError(cl call, err error) error {
	var ne net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout()) {
		return apperror.Wrap(apperror.KindTimeout, timeoutMessage, err)
	}
	return apperror.Wrap(apperror.KindNetwork, cl.fallback, err)
}

func (c *Client) statusError(cl call, res result) error {
	msg := res.env.Message
	if msg == "" {
		msg = cl.fallback
	}
	kind := apperror.KindRequest
	if res.status == http.StatusUnauthorized {
		kind = apperror.KindUnauthorized
	}
	return &apperror.Error{Kind: kind, Message: msg}
}

// refresh posts the stored refresh token and saves the rotated pair.
// The call itself never triggers another refresh.
func (c *Client) refresh(ctx context.Context) (*entity.AuthResponse, error) {
	rt, err := c.Tokens.RefreshToken(ctx)
	if err != nil {
		c.Logger.WithError(err).Warn("token store read failed")
	}
	var body any
	if rt != "" {
		body = map[string]string{"refreshToken": rt}
	}
	var out entity.AuthResponse
	if err := c.do(ctx, call{
		method:    http.MethodPost,
		path:      PathRefresh,
		body:      body,
		out:       &out,
		fallback:  "Token refresh failed",
		noRefresh: true,
	}); err != nil {
		return nil, err
	}
	if out.AccessToken == "" {
		return nil, apperror.New(apperror.KindUnauthorized, "Token refresh failed")
	}
	if err := c.Tokens.Save(ctx, entity.TokenPair{AccessToken: out.AccessToken, RefreshToken: out.RefreshToken}); err != nil {
		c.Logger.WithError(err).Warn("token store save failed")
	}
	return &out, nil
}

func (c *Client) refreshAccessToken(ctx context.Context) (string, error) {
	res, err := c.refresh(ctx)
	if err != nil {
		return "", err
	}
	return res.AccessToken, nil
}
