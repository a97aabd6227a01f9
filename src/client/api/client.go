package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

const DefaultBaseURL = "http://localhost:5000/api"

// ErrNetwork cobre falhas de transporte: nenhuma resposta foi recebida.
var ErrNetwork = errors.New("network request failed")

// APIError é uma resposta não-2xx. Message é o campo "error" do corpo, repassado sem alteração.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func NewClient(baseURL string, options ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, option := range options {
		option(client)
	}
	return client
}

// Request descreve uma chamada à API. Token vazio dispensa o header Authorization.
type Request struct {
	Method string
	Path   string
	Token  string
	Body   any
}

// Do executa a chamada e decodifica o corpo de sucesso em out (que pode ser nil).
func (c *Client) Do(ctx context.Context, request Request, out any) error {
	var body io.Reader
	if request.Body != nil {
		payload, err := json.Marshal(request.Body)
		if err != nil {
			return fmt.Errorf("Client.Do - failed to encode request body: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	method := request.Method
	if method == "" {
		method = http.MethodGet
	}

	httpRequest, err := http.NewRequestWithContext(ctx, method, c.baseURL+request.Path, body)
	if err != nil {
		return fmt.Errorf("Client.Do - failed to build request: %w", err)
	}
	httpRequest.Header.Set("Accept", "application/json")
	if body != nil {
		httpRequest.Header.Set("Content-Type", "application/json")
	}
	if request.Token != "" {
		httpRequest.Header.Set("Authorization", "Bearer "+request.Token)
	}

	response, err := c.httpClient.Do(httpRequest)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrNetwork, method, request.Path, err)
	}
	defer response.Body.Close()

	payload, err := io.ReadAll(response.Body)
	if err != nil {
		return fmt.Errorf("%w: reading %s %s: %v", ErrNetwork, method, request.Path, err)
	}

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return decodeError(response.StatusCode, payload)
	}

	if out == nil || len(payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("Client.Do - failed to decode %s %s: %w", method, request.Path, err)
	}
	return nil
}

func decodeError(status int, payload []byte) error {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(payload, &body); err != nil || body.Error == "" {
		return &APIError{Status: status, Message: http.StatusText(status)}
	}
	return &APIError{Status: status, Message: body.Error}
}

// StatusOf devolve o status HTTP de um APIError, ou 0.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}
