package explorer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	proxyAddr = "0x1111111111111111111111111111111111111111"
	implAddr  = "0x2222222222222222222222222222222222222222"
	eventABI  = `[{"type":"event","name":"Transfer","inputs":[{"name":"from","type":"address","indexed":true}]}]`
)

// sourceServer answers getsourcecode with items[address], counting calls.
func sourceServer(t *testing.T, items map[string]SourceCode, calls *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls != nil {
			calls.Add(1)
		}
		q := r.URL.Query()
		assert.Equal(t, "contract", q.Get("module"))
		assert.Equal(t, "getsourcecode", q.Get("action"))
		assert.Equal(t, "8453", q.Get("chainid"))
		assert.Equal(t, "key", q.Get("apikey"))

		item, ok := items[strings.ToLower(q.Get("address"))]
		if !ok {
			fmt.Fprint(w, `{"status":"1","message":"OK","result":[]}`)
			return
		}
		result, _ := json.Marshal([]SourceCode{item})
		fmt.Fprintf(w, `{"status":"1","message":"OK","result":%s}`, result)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(t *testing.T, srv *httptest.Server, opts ...Option) *Client {
	t.Helper()
	c, err := NewClient(8453, "key", append([]Option{WithBaseURL(srv.URL)}, opts...)...)
	require.NoError(t, err)
	return c
}

func TestNewClientRequiresKey(t *testing.T) {
	_, err := NewClient(1, "")
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestFetchABIDirect(t *testing.T) {
	srv := sourceServer(t, map[string]SourceCode{
		strings.ToLower(implAddr): {ContractName: "Token", ABI: eventABI},
	}, nil)
	c := newTestClient(t, srv)

	abi, err := c.FetchABI(context.Background(), common.HexToAddress(implAddr))
	require.NoError(t, err)
	require.Len(t, abi, 1)
	assert.Equal(t, "Transfer", abi[0].Name)
}

func TestFetchABIFollowsProxy(t *testing.T) {
	srv := sourceServer(t, map[string]SourceCode{
		strings.ToLower(proxyAddr): {ContractName: "Proxy", ABI: `[]`, Proxy: "1", Implementation: implAddr},
		strings.ToLower(implAddr):  {ContractName: "Token", ABI: eventABI},
	}, nil)
	c := newTestClient(t, srv)

	abi, err := c.FetchABI(context.Background(), common.HexToAddress(proxyAddr))
	require.NoError(t, err)
	require.Len(t, abi, 1)
	assert.Equal(t, "Transfer", abi[0].Name)
}

func TestFetchABITooManyRedirects(t *testing.T) {
	// A proxy pointing at itself never resolves.
	srv := sourceServer(t, map[string]SourceCode{
		strings.ToLower(proxyAddr): {ABI: `[]`, Proxy: "1", Implementation: proxyAddr},
	}, nil)
	c := newTestClient(t, srv)

	_, err := c.FetchABI(context.Background(), common.HexToAddress(proxyAddr))
	require.ErrorIs(t, err, ErrTooManyRedirects)
	assert.Equal(t, "ABI not found after 3 redirects", err.Error())
}

func TestFetchABINoItems(t *testing.T) {
	srv := sourceServer(t, map[string]SourceCode{}, nil)
	c := newTestClient(t, srv)

	_, err := c.FetchABI(context.Background(), common.HexToAddress(implAddr))
	assert.ErrorIs(t, err, ErrNoItems)
}

func TestFetchABINotVerified(t *testing.T) {
	srv := sourceServer(t, map[string]SourceCode{
		strings.ToLower(implAddr): {ABI: "Contract source code not verified"},
	}, nil)
	c := newTestClient(t, srv)

	_, err := c.FetchABI(context.Background(), common.HexToAddress(implAddr))
	assert.ErrorIs(t, err, ErrNotVerified)
}

func TestFetchABIExplorerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"0","message":"NOTOK","result":"Invalid API Key"}`)
	}))
	defer srv.Close()
	c := newTestClient(t, srv)

	_, err := c.FetchABI(context.Background(), common.HexToAddress(implAddr))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid API Key")
}

func TestFetchABIUsesCache(t *testing.T) {
	var calls atomic.Int32
	srv := sourceServer(t, map[string]SourceCode{
		strings.ToLower(implAddr): {ABI: eventABI},
	}, &calls)
	c := newTestClient(t, srv, WithCache(NewCache(t.TempDir(), time.Hour)))

	for range 2 {
		abi, err := c.FetchABI(context.Background(), common.HexToAddress(implAddr))
		require.NoError(t, err)
		assert.Len(t, abi, 1)
	}
	assert.Equal(t, int32(1), calls.Load())
}

func TestParseAddress(t *testing.T) {
	addr, err := ParseAddress("0xd8da6bf26964af9d7eed9e03e53415d37aa96045")
	require.NoError(t, err)
	assert.Equal(t, "0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045", addr.Hex())

	_, err = ParseAddress("0x1234")
	assert.Error(t, err)
}

// ---------------------------------------------------------------------------
// Cache
// ---------------------------------------------------------------------------

func TestCacheRoundTrip(t *testing.T) {
	c := NewCache(t.TempDir(), time.Hour)
	require.NoError(t, c.Put(1, "0xABC", []byte(`[1,2]`)))

	data, ok := c.Get(1, "0xabc")
	require.True(t, ok)
	assert.JSONEq(t, `[1,2]`, string(data))

	_, ok = c.Get(2, "0xabc")
	assert.False(t, ok)
}

func TestCacheExpires(t *testing.T) {
	c := NewCache(t.TempDir(), time.Minute)
	now := time.Unix(1_700_000_000, 0)
	c.now = func() time.Time { return now }
	require.NoError(t, c.Put(1, "0xabc", []byte(`[]`)))

	now = now.Add(2 * time.Minute)
	_, ok := c.Get(1, "0xabc")
	assert.False(t, ok)
}

func TestCacheFileNamedByAddressAndChain(t *testing.T) {
	dir := t.TempDir()
	c := NewCache(dir, time.Hour)
	require.NoError(t, c.Put(8453, "0xABC", []byte(`[]`)))

	assert.FileExists(t, filepath.Join(dir, "0xabc-8453.json"))
}
