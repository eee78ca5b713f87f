package aria2

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ternarybob/ferret/internal/common"
)

const jsonrpcVersion = "2.0"

// TransportError is a failure of the RPC exchange itself: unreachable
// endpoint, non-2xx status, or an undecodable envelope. Distinguished from
// per-call JSON-RPC errors so callers can tell "the service rejected this
// call" from "the service could not be reached".
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("aria2 transport error: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsTransportError reports whether err (or anything it wraps) is a transport
// failure
func IsTransportError(err error) bool {
	for err != nil {
		if _, ok := err.(*TransportError); ok {
			return true
		}
		unwrapper, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = unwrapper.Unwrap()
	}
	return false
}

type rpcRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      string        `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *rpcError) Error() string {
	return fmt.Sprintf("aria2 rpc error %d: %s", e.Code, e.Message)
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

// Client is a minimal JSON-RPC 2.0 client for the aria2 endpoint
type Client struct {
	endpoint   string
	token      string
	dir        string
	httpClient *http.Client
}

// ClientOption configures a Client
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithToken sets the RPC secret, sent as a leading "token:<value>" parameter
func WithToken(token string) ClientOption {
	return func(c *Client) {
		c.token = token
	}
}

// WithDownloadDir sets the download directory passed with each addUri call
func WithDownloadDir(dir string) ClientOption {
	return func(c *Client) {
		c.dir = dir
	}
}

// NewClient creates a client for the given endpoint. An empty endpoint falls
// back to the conventional local aria2 address.
func NewClient(endpoint string, opts ...ClientOption) *Client {
	if endpoint == "" {
		endpoint = common.DefaultAria2Endpoint
	}
	client := &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Call issues one JSON-RPC request and decodes its result into result (which
// may be nil when the caller only cares about success). Transport failures
// come back as *TransportError; a JSON-RPC error field comes back as
// *rpcError.
func (c *Client) Call(ctx context.Context, method string, params []interface{}, result interface{}) error {
	body, err := json.Marshal(rpcRequest{
		JSONRPC: jsonrpcVersion,
		ID:      common.NewRPCID(),
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return fmt.Errorf("failed to encode rpc request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return &TransportError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &TransportError{Err: fmt.Errorf("HTTP %d", resp.StatusCode)}
	}

	var envelope rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return &TransportError{Err: fmt.Errorf("failed to decode rpc response: %w", err)}
	}

	if envelope.Error != nil {
		return envelope.Error
	}

	if result != nil {
		if envelope.Result == nil {
			return &TransportError{Err: fmt.Errorf("rpc response carried no result")}
		}
		if err := json.Unmarshal(envelope.Result, result); err != nil {
			return &TransportError{Err: fmt.Errorf("failed to decode rpc result: %w", err)}
		}
	}

	return nil
}

// buildAddURIParams assembles aria2.addUri positional parameters: optional
// leading token, then the URI list, then the options object
func (c *Client) buildAddURIParams(url string) []interface{} {
	options := map[string]interface{}{}
	if c.dir != "" {
		options["dir"] = c.dir
	}

	params := []interface{}{[]string{url}, options}
	if c.token != "" {
		params = append([]interface{}{"token:" + c.token}, params...)
	}
	return params
}
