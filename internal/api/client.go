// Package api is the HTTP client for the GhostGraph service.
package api

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

	"github.com/ghostlogs/ghost/internal/logging"
	"go.uber.org/zap"
)

const (
	keyHeader      = "GG-KEY"
	defaultTimeout = 60 * time.Second
)

// Client talks to the GhostGraph API. Every request is authenticated with
// the user's API key.
type Client struct {
	baseURL    string
	webBaseURL string
	apiKey     string
	http       *http.Client
	log        *zap.Logger
}

// NewClient creates a Client. log may be nil.
func NewClient(baseURL, webBaseURL, apiKey string, log *zap.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		webBaseURL: strings.TrimRight(webBaseURL, "/"),
		apiKey:     apiKey,
		http:       &http.Client{Timeout: defaultTimeout},
		log:        logging.OrNop(log),
	}
}

// WebBaseURL returns the base URL of the web app.
func (c *Client) WebBaseURL() string { return c.webBaseURL }

// EditorURL returns the web editor link for a graph version.
func (c *Client) EditorURL(id, versionID string) string {
	return fmt.Sprintf("%s/graphs/%s/versions/%s/editor", c.webBaseURL, id, versionID)
}

// CreateGraph creates a new graph and returns its initial sources.
func (c *Client) CreateGraph(ctx context.Context, req CreateRequest) (*CreateResponse, error) {
	var wire createResponseWire
	if err := c.do(ctx, http.MethodPost, "/gg/cli/graphs", req, &wire, "create"); err != nil {
		return nil, err
	}
	if !wire.OK || wire.ID == nil || wire.VersionID == nil || wire.Sources == nil {
		return nil, ErrUnexpectedResponse
	}
	return &CreateResponse{ID: *wire.ID, VersionID: *wire.VersionID, Sources: wire.Sources}, nil
}

// Codegen regenerates the graph's derived sources from schema and events.
func (c *Client) Codegen(ctx context.Context, id string, req CodegenRequest) (*CodegenResponse, error) {
	var resp CodegenResponse
	if err := c.do(ctx, http.MethodPost, graphPath(id, "codegen"), req, &resp, "codegen"); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Compile compiles the graph's indexer.
func (c *Client) Compile(ctx context.Context, id string, req CompileRequest) (*CompileResponse, error) {
	var resp CompileResponse
	if err := c.do(ctx, http.MethodPost, graphPath(id, "compile"), req, &resp, "compile"); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Deploy deploys the compiled graph version.
func (c *Client) Deploy(ctx context.Context, id string) (*DeployResponse, error) {
	var resp DeployResponse
	if err := c.do(ctx, http.MethodPost, graphPath(id, "deploy"), nil, &resp, "deploy"); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetGraph returns a single graph.
func (c *Client) GetGraph(ctx context.Context, id string) (*Graph, error) {
	var resp graphDetailsResponse
	if err := c.do(ctx, http.MethodGet, graphPath(id, ""), nil, &resp, "graph"); err != nil {
		return nil, err
	}
	return &resp.Graph, nil
}

// ListGraphs returns the caller's graphs.
func (c *Client) ListGraphs(ctx context.Context) (*ListResponse, error) {
	var resp ListResponse
	if err := c.do(ctx, http.MethodGet, "/gg/cli/list", nil, &resp, "list"); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ForkGraph copies a graph into a new one owned by the caller.
func (c *Client) ForkGraph(ctx context.Context, id string, req ForkRequest) (*ForkResponse, error) {
	var wire forkResponseWire
	if err := c.do(ctx, http.MethodPost, graphPath(id, "fork"), req, &wire, "fork"); err != nil {
		return nil, err
	}
	if !wire.OK || wire.GhostGraphID == nil || wire.GhostGraphVersionID == nil || wire.Sources == nil {
		return nil, ErrUnexpectedResponse
	}
	return &ForkResponse{ID: *wire.GhostGraphID, VersionID: *wire.GhostGraphVersionID, Sources: wire.Sources}, nil
}

// DeleteGraph deletes a graph.
func (c *Client) DeleteGraph(ctx context.Context, id string) error {
	var wire deleteResponseWire
	if err := c.do(ctx, http.MethodDelete, graphPath(id, ""), nil, &wire, "delete"); err != nil {
		return err
	}
	if !wire.OK {
		return ErrUnexpectedResponse
	}
	return nil
}

func graphPath(id, action string) string {
	p := "/gg/cli/graphs/" + url.PathEscape(id)
	if action != "" {
		p += "/" + action
	}
	return p
}

// do sends body as JSON (when non-nil) and decodes the response into out.
// The service reports failures in the body, so the status code is only
// logged.
func (c *Client) do(ctx context.Context, method, path string, body, out any, what string) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding %s request: %w", what, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("building %s request: %w", what, err)
	}
	req.Header.Set(keyHeader, c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s request: %w", what, err)
	}
	defer resp.Body.Close()

	c.log.Debug("api request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("took", time.Since(start)),
	)

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading %s response: %w", what, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		c.log.Debug("undecodable response", zap.String("path", path), zap.ByteString("body", data))
		return fmt.Errorf("decoding %s response (HTTP %d): %w", what, resp.StatusCode, err)
	}
	return nil
}
