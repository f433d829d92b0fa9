// Package explorer fetches verified contract ABIs from Etherscan, following
// proxy contracts to their implementation.
package explorer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ghostlogs/ghost/internal/contract"
	"github.com/ghostlogs/ghost/internal/logging"
	"go.uber.org/zap"
)

// DefaultBaseURL is the Etherscan V2 unified endpoint.
const DefaultBaseURL = "https://api.etherscan.io/v2/api"

// MaxProxyRedirects bounds how many implementation hops FetchABI follows.
const MaxProxyRedirects = 3

// CacheTTL is how long a fetched source response is reused.
const CacheTTL = time.Hour

const notVerified = "Contract source code not verified"

var (
	// ErrNoItems is returned when the explorer answers with an empty result.
	ErrNoItems = errors.New("no item found")
	// ErrNotVerified is returned for contracts without verified source.
	ErrNotVerified = errors.New("contract source code not verified")
	// ErrTooManyRedirects is returned when proxies chain beyond MaxProxyRedirects.
	ErrTooManyRedirects = fmt.Errorf("ABI not found after %d redirects", MaxProxyRedirects)
	// ErrMissingAPIKey is returned by NewClient when no key is configured.
	ErrMissingAPIKey = errors.New("etherscan API key is required")
)

// response is the Etherscan API envelope. Result is a JSON array on success
// and a plain string on failure.
type response struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
}

// SourceCode is one item of a getsourcecode result.
type SourceCode struct {
	ContractName   string `json:"ContractName"`
	ABI            string `json:"ABI"`
	Proxy          string `json:"Proxy"`
	Implementation string `json:"Implementation"`
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = u
		}
	}
}

// WithCache enables the on-disk response cache.
func WithCache(cache *Cache) Option {
	return func(c *Client) { c.cache = cache }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.log = logging.OrNop(l) }
}

// Client is an Etherscan client bound to one chain.
type Client struct {
	chainID uint64
	apiKey  string
	baseURL string
	http    *http.Client
	cache   *Cache
	log     *zap.Logger
}

// NewClient creates a client for chainID.
func NewClient(chainID uint64, apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	c := &Client{
		chainID: chainID,
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
		log:     zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// ParseAddress validates a hex address and returns its checksummed form.
func ParseAddress(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("invalid address %q", s)
	}
	return common.HexToAddress(s), nil
}

// FetchABI returns the ABI of the contract at address. Proxies are followed
// to their implementation at most MaxProxyRedirects times.
func (c *Client) FetchABI(ctx context.Context, address common.Address) ([]contract.ABIEntry, error) {
	current := address
	for range MaxProxyRedirects {
		item, err := c.SourceCode(ctx, current)
		if err != nil {
			return nil, err
		}
		if item.Implementation != "" && common.IsHexAddress(item.Implementation) {
			next := common.HexToAddress(item.Implementation)
			c.log.Debug("following proxy",
				zap.String("proxy", current.Hex()),
				zap.String("implementation", next.Hex()))
			current = next
			continue
		}
		if item.ABI == "" || strings.HasPrefix(item.ABI, notVerified) {
			return nil, fmt.Errorf("%w: %s", ErrNotVerified, current.Hex())
		}
		abi, err := contract.ParseABI([]byte(item.ABI))
		if err != nil {
			return nil, fmt.Errorf("parsing ABI of %s: %w", current.Hex(), err)
		}
		return abi, nil
	}
	return nil, ErrTooManyRedirects
}

// SourceCode returns the first getsourcecode item for address.
func (c *Client) SourceCode(ctx context.Context, address common.Address) (*SourceCode, error) {
	items, err := c.sourceCode(ctx, address)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrNoItems
	}
	return &items[0], nil
}

func (c *Client) sourceCode(ctx context.Context, address common.Address) ([]SourceCode, error) {
	if c.cache != nil {
		if data, ok := c.cache.Get(c.chainID, address.Hex()); ok {
			var items []SourceCode
			if err := json.Unmarshal(data, &items); err == nil {
				c.log.Debug("etherscan cache hit", zap.String("address", address.Hex()))
				return items, nil
			}
		}
	}

	q := url.Values{}
	q.Set("chainid", strconv.FormatUint(c.chainID, 10))
	q.Set("module", "contract")
	q.Set("action", "getsourcecode")
	q.Set("address", address.Hex())
	q.Set("apikey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building explorer request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching contract source: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading explorer response: %w", err)
	}

	var env response
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("parsing explorer response: %w", err)
	}
	if env.Status != "1" {
		var detail string
		if json.Unmarshal(env.Result, &detail) != nil || detail == "" {
			detail = env.Message
		}
		return nil, fmt.Errorf("explorer error: %s", detail)
	}

	var items []SourceCode
	if err := json.Unmarshal(env.Result, &items); err != nil {
		return nil, fmt.Errorf("parsing contract source: %w", err)
	}

	if c.cache != nil {
		if err := c.cache.Put(c.chainID, address.Hex(), env.Result); err != nil {
			c.log.Warn("caching explorer response", zap.Error(err))
		}
	}
	return items, nil
}
