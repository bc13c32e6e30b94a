package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"
)

type Response struct {
	StatusCode int
	Data       []byte
}

// TokenSource supplies a bearer token per request.
type TokenSource interface {
	Token() (string, error)
}

// Transport handles low-level HTTP and authentication. Tokens, when set, wins over AuthToken.
type Transport struct {
	BaseURL    string
	AuthToken  string
	Tokens     TokenSource
	HTTPClient *http.Client
	Logger     *log.Logger
}

// NewTransport creates a transport with base URL and auth.
// No client timeout is set: a request lives as long as its context.
func NewTransport(baseURL, token string) *Transport {
	return &Transport{
		BaseURL:    baseURL,
		AuthToken:  token,
		HTTPClient: &http.Client{},
		Logger:     log.Default(),
	}
}

// helper: build full URL with query params
func (t *Transport) buildURL(path string, query map[string]string) (string, error) {
	u, err := url.Parse(t.BaseURL + path)
	if err != nil {
		return "", err
	}
	if len(query) > 0 {
		q := u.Query()
		for k, v := range query {
			q.Set(k, v)
		}
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

// Get sends a GET request
func (t *Transport) Get(ctx context.Context, path string, query map[string]string) (*Response, error) {
	return t.Do(ctx, http.MethodGet, path, nil, query)
}

// Post sends a POST request with JSON body
func (t *Transport) Post(ctx context.Context, path string, data any, query map[string]string) (*Response, error) {
	return t.Do(ctx, http.MethodPost, path, data, query)
}

// Put sends a PUT request with JSON body
func (t *Transport) Put(ctx context.Context, path string, data any, query map[string]string) (*Response, error) {
	return t.Do(ctx, http.MethodPut, path, data, query)
}

// Do issues the request and returns the raw status and body whatever the status is.
// Anything that prevents a response from arriving is reported as a *TransportError.
func (t *Transport) Do(ctx context.Context, method, path string, data any, query map[string]string) (*Response, error) {
	fullURL, err := t.buildURL(path, query)
	if err != nil {
		return nil, &TransportError{Method: method, Path: path, Err: err}
	}

	var body io.Reader
	if data != nil {
		b, err := json.Marshal(data)
		if err != nil {
			return nil, &TransportError{Method: method, Path: path, Err: err}
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return nil, &TransportError{Method: method, Path: path, Err: err}
	}

	requestID := requestID(ctx)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if data != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	token, err := t.bearer()
	if err != nil {
		return nil, &TransportError{Method: method, Path: path, Err: err}
	}
	if token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	}

	started := time.Now()
	resp, err := t.HTTPClient.Do(req)
	if err != nil {
		t.logf("%s %s failed after %s (request %s): %v", method, path, time.Since(started), requestID, err)
		return nil, &TransportError{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	resdata, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Method: method, Path: path, Err: err}
	}
	t.logf("%s %s -> %d in %s (request %s)", method, path, resp.StatusCode, time.Since(started), requestID)

	return &Response{
		StatusCode: resp.StatusCode,
		Data:       resdata,
	}, nil
}

func (t *Transport) bearer() (string, error) {
	if t.Tokens == nil {
		return t.AuthToken, nil
	}
	return t.Tokens.Token()
}

func (t *Transport) logf(format string, args ...any) {
	if t.Logger == nil {
		return
	}
	t.Logger.Printf("hrpayroll: "+format, args...)
}

// statusCreated accepts exactly 201; creation endpoints answer nothing else on success.
func statusCreated(code int) bool {
	return code == http.StatusCreated
}

func statusOK(code int) bool {
	return code >= 200 && code < 300
}

// decode turns a response into T when accept(StatusCode) holds and the body parses,
// and into an *APIError otherwise.
func decode[T any](resp *Response, accept func(int) bool) (T, error) {
	var result T
	if !accept(resp.StatusCode) {
		return result, newAPIError(resp)
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return result, &APIError{StatusCode: resp.StatusCode}
	}
	return result, nil
}

type errorBody struct {
	Error string `json:"error"`
}

func newAPIError(resp *Response) *APIError {
	var body errorBody
	if err := json.Unmarshal(resp.Data, &body); err != nil {
		return &APIError{StatusCode: resp.StatusCode}
	}
	return &APIError{StatusCode: resp.StatusCode, Message: body.Error}
}
