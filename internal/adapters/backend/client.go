package backend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bnema/contentkit-cli/internal/codec"
	"github.com/bnema/contentkit-cli/internal/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultTimeout   = 30 * time.Second
	MaxResponseBytes = 64 << 20
	requestIDHeader  = "X-Request-Id"
	userAgent        = "ck/backend"
)

// TokenSource returns the bearer token for outgoing calls; "" sends none.
type TokenSource func(ctx context.Context) (string, error)

type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Token      TokenSource
	Logger     *zap.Logger
	// MaxResponseBytes caps response bodies; larger bodies fail instead of being truncated.
	MaxResponseBytes int64
}

// Client is the request builder shared by the content and accounts APIs.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      TokenSource
	logger     *zap.Logger
	maxBody    int64
}

type response struct {
	Status      int
	Body        []byte
	ContentType string
}

func NewClient(cfg Config) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("backend base url is empty")
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("parse backend base url: %w", err)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	maxBody := cfg.MaxResponseBytes
	if maxBody <= 0 {
		maxBody = MaxResponseBytes
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		token:      cfg.Token,
		logger:     logger,
		maxBody:    maxBody,
	}, nil
}

// do sends one request. Transport failures become *domain.NetworkError and non-2xx
// statuses become *domain.ServerError carrying the body's error message.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType, accept string) (response, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	op := method + " " + path

	request, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return response{}, fmt.Errorf("create request: %w", err)
	}

	requestID := uuid.NewString()
	request.Header.Set(requestIDHeader, requestID)
	request.Header.Set("User-Agent", userAgent)
	if contentType != "" {
		request.Header.Set("Content-Type", contentType)
	}
	if accept != "" {
		request.Header.Set("Accept", accept)
	}
	if c.token != nil {
		token, err := c.token(ctx)
		if err != nil {
			return response{}, fmt.Errorf("load access token: %w", err)
		}
		if token != "" {
			request.Header.Set("Authorization", "Bearer "+token)
		}
	}

	started := time.Now()
	resp, err := c.httpClient.Do(request)
	if err != nil {
		c.logger.Debug("backend request failed", zap.String("op", op), zap.String("request_id", requestID), zap.Error(err))
		return response{}, &domain.NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.ContentLength > c.maxBody {
		c.logger.Debug("backend response too large", zap.String("op", op), zap.String("request_id", requestID), zap.Int64("bytes", resp.ContentLength))
		return response{}, fmt.Errorf("%s: %w: %d bytes exceeds %d", op, domain.ErrResponseTooLarge, resp.ContentLength, c.maxBody)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return response{}, &domain.NetworkError{Op: op, Err: fmt.Errorf("read response: %w", err)}
	}
	if int64(len(data)) > c.maxBody {
		c.logger.Debug("backend response too large", zap.String("op", op), zap.String("request_id", requestID))
		return response{}, fmt.Errorf("%s: %w: more than %d bytes", op, domain.ErrResponseTooLarge, c.maxBody)
	}

	c.logger.Debug("backend request",
		zap.String("op", op),
		zap.String("request_id", requestID),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(data)),
		zap.Duration("elapsed", time.Since(started)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return response{}, &domain.ServerError{Status: resp.StatusCode, Message: codec.ErrorMessage(data)}
	}

	return response{
		Status:      resp.StatusCode,
		Body:        data,
		ContentType: resp.Header.Get("Content-Type"),
	}, nil
}

func accountQuery(accountID domain.AccountID) url.Values {
	query := url.Values{}
	query.Set("accountId", string(accountID))
	return query
}
