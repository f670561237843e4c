package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/buger/jsonparser"
	gologging "github.com/op/go-logging"

	"github.com/jask/petlist/internal/logging"
)

const maxBody = 1 << 20

// Request is a single GraphQL operation.
type Request struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName,omitempty"`
	Variables     map[string]any `json:"variables,omitempty"`
}

// Client posts GraphQL operations to one endpoint. It is built once per
// process and shared by everything that talks to the API.
type Client struct {
	Endpoint string
	HTTP     *http.Client
	Log      *gologging.Logger
}

// New validates endpoint and builds a Client. A zero timeout means requests
// wait as long as their context allows.
func New(endpoint string, timeout time.Duration) (*Client, error) {
	endpoint = strings.TrimSpace(endpoint)
	u, err := url.ParseRequestURI(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid endpoint: unsupported scheme %q", u.Scheme)
	}
	return &Client{
		Endpoint: endpoint,
		HTTP:     &http.Client{Timeout: timeout},
		Log:      logging.For("graphql"),
	}, nil
}

// HTTPError is a non-2xx response that carried no GraphQL errors.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("http error: status=%d", e.StatusCode)
	}
	return fmt.Sprintf("http error: status=%d body=%s", e.StatusCode, e.Body)
}

// Do sends req and decodes the response's data object into out.
// GraphQL errors come back as Errors, transport failures are wrapped.
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	if c == nil || c.HTTP == nil {
		return errors.New("graphql: nil client")
	}
	err := c.do(ctx, req, out)
	if err != nil {
		c.report(req.OperationName, err)
	}
	return err
}

func (c *Client) do(ctx context.Context, req Request, out any) error {
	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("graphql: marshal request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("graphql: new request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(httpReq)
	if err != nil {
		return fmt.Errorf("graphql: do request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return fmt.Errorf("graphql: read response: %w", err)
	}

	gqlErrs, err := decodeErrors(raw)
	if err != nil && resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return err
	}
	if len(gqlErrs) > 0 {
		return gqlErrs
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &HTTPError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	data, typ, _, err := jsonparser.Get(raw, "data")
	if err != nil || typ == jsonparser.Null {
		return errors.New("graphql: response has no data")
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("graphql: decode data: %w", err)
	}
	return nil
}

func decodeErrors(raw []byte) (Errors, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, errors.New("graphql: empty response")
	}
	value, typ, _, err := jsonparser.Get(raw, "errors")
	switch {
	case errors.Is(err, jsonparser.KeyPathNotFoundError):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("graphql: malformed response: %w", err)
	case typ != jsonparser.Array:
		return nil, nil
	}
	var out Errors
	if err := json.Unmarshal(value, &out); err != nil {
		return nil, fmt.Errorf("graphql: decode errors: %w", err)
	}
	return out, nil
}

func (c *Client) report(op string, err error) {
	if c.Log == nil {
		return
	}
	var gqlErrs Errors
	if errors.As(err, &gqlErrs) {
		for _, e := range gqlErrs {
			c.Log.Errorf("[GraphQL error]: Operation: %s, Message: %s, Location: %s, Path: %s", op, e.Message, e.locationText(), e.pathText())
		}
		return
	}
	c.Log.Errorf("[Network error]: Operation: %s, %v", op, err)
}
