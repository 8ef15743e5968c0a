package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/sessionkeeper/internal/common"
	"github.com/dmitrijs2005/sessionkeeper/internal/logging"
)

const maxReplySize = 1 << 20

// HTTPClient is the net/http implementation of Requester.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	log     logging.Logger
}

// NewHTTPClient builds a client rooted at baseURL (e.g.
// "http://127.0.0.1:8000/api/v1"). tokens may be nil when no session token
// should ever be injected.
func NewHTTPClient(baseURL string, timeout time.Duration, tokens TokenSource, log logging.Logger) *HTTPClient {
	if log == nil {
		log = logging.NewDiscard()
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		log:     log,
	}
}

func (c *HTTPClient) Request(ctx context.Context, path, method string, body url.Values, headers map[string]string) (json.RawMessage, error) {
	var reader io.Reader
	if body != nil {
		reader = strings.NewReader(body.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, common.NewTransportError(0, "", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	c.injectToken(req)

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug(ctx, "request failed", "method", method, "path", path, "error", err)
		return nil, common.NewTransportError(0, "", fmt.Errorf("%w: %w", ErrUnavailable, err))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxReplySize))
	if err != nil {
		return nil, common.NewTransportError(resp.StatusCode, "", fmt.Errorf("%w: read reply: %w", ErrUnavailable, err))
	}

	c.log.Debug(ctx, "request done", "method", method, "path", path, "status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, mapStatus(resp.StatusCode, data)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return json.RawMessage("null"), nil
	}
	return json.RawMessage(data), nil
}

func (c *HTTPClient) injectToken(req *http.Request) {
	if c.tokens == nil || req.Header.Get(common.AuthorizationHeaderName) != "" {
		return
	}
	if token, ok := c.tokens.Read(); ok {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}
}

// errorReply is the server's error envelope. detail is either a string or
// a list of field errors.
type errorReply struct {
	Detail  json.RawMessage `json:"detail"`
	Message string          `json:"message"`
}

func mapStatus(status int, data []byte) error {
	var reply errorReply
	_ = json.Unmarshal(data, &reply)

	var detail string
	var fields []common.FieldError
	if len(reply.Detail) > 0 {
		if err := json.Unmarshal(reply.Detail, &detail); err != nil {
			_ = json.Unmarshal(reply.Detail, &fields)
		}
	}
	if detail == "" {
		detail = reply.Message
	}

	if status == http.StatusUnprocessableEntity {
		verr := common.NewValidationError(status, fields)
		if detail != "" {
			verr.Detail = detail
		}
		return verr
	}

	if detail == "" && len(fields) > 0 {
		detail = common.NewValidationError(status, fields).Detail
	}
	if detail == "" {
		detail = http.StatusText(status)
	}

	var cause error
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		cause = ErrUnauthorized
	}
	return common.NewTransportError(status, detail, cause)
}
