package chain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrChainNotFound is returned when a chain is not in the registry.
var ErrChainNotFound = errors.New("chain not found")

// Chain holds the metadata ghost needs for one network.
type Chain struct {
	ID          uint64
	Key         string   // persisted in a graph's config.json; empty = not selectable
	ShortName   string   // label used by `ghost list`
	DisplayName string
	Aliases     []string // accepted by Parse, first one is shown in help
}

// Selectable reports whether graphs can be created on this chain.
func (c *Chain) Selectable() bool { return c.Key != "" }

func (c *Chain) String() string { return c.DisplayName }

// Registry is the chain registry.
type Registry struct {
	chains []Chain
	byID   map[uint64]*Chain
	byKey  map[string]*Chain
	byName map[string]*Chain
}

// NewRegistry returns the registry of every chain the service knows about.
func NewRegistry() *Registry {
	chains := allChains()
	r := &Registry{
		chains: chains,
		byID:   make(map[uint64]*Chain, len(chains)),
		byKey:  make(map[string]*Chain, len(chains)),
		byName: make(map[string]*Chain),
	}
	for i := range r.chains {
		c := &r.chains[i]
		r.byID[c.ID] = c
		if !c.Selectable() {
			continue
		}
		r.byKey[c.Key] = c
		for _, a := range c.Aliases {
			r.byName[a] = c
		}
	}
	return r
}

// All returns every chain in the registry.
func (r *Registry) All() []Chain {
	return r.chains
}

// Selectable returns the chains a graph can be created on.
func (r *Registry) Selectable() []Chain {
	var out []Chain
	for _, c := range r.chains {
		if c.Selectable() {
			out = append(out, c)
		}
	}
	return out
}

// GetByID finds a chain by its numeric chain ID.
func (r *Registry) GetByID(id uint64) (*Chain, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported chain id %d", ErrChainNotFound, id)
	}
	return c, nil
}

// GetByKey finds a selectable chain by its persisted key, e.g. "BaseMainnet".
func (r *Registry) GetByKey(key string) (*Chain, error) {
	c, ok := r.byKey[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrChainNotFound, key)
	}
	return c, nil
}

// Parse resolves a user-supplied chain: a numeric chain id or one of the
// aliases (case-insensitive). Only selectable chains are accepted.
func (r *Registry) Parse(s string) (*Chain, error) {
	s = strings.TrimSpace(s)
	if id, err := strconv.ParseUint(s, 10, 64); err == nil {
		c, ok := r.byID[id]
		if !ok || !c.Selectable() {
			return nil, fmt.Errorf("%w: unsupported chain id %d", ErrChainNotFound, id)
		}
		return c, nil
	}
	c, ok := r.byName[strings.ToLower(s)]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported chain name %s. Valid options are: %s",
			ErrChainNotFound, s, strings.Join(r.Options(), ", "))
	}
	return c, nil
}

// Options returns the primary alias of every selectable chain.
func (r *Registry) Options() []string {
	var out []string
	for _, c := range r.chains {
		if c.Selectable() {
			out = append(out, c.Aliases[0])
		}
	}
	return out
}

// ShortName returns the list label for a chain id, or "Unknown".
func (r *Registry) ShortName(id uint64) string {
	if c, ok := r.byID[id]; ok {
		return c.ShortName
	}
	return "Unknown"
}

// --- chain data ---

func allChains() []Chain {
	return []Chain{
		{ID: 1, Key: "EthMainnet", ShortName: "eth", DisplayName: "Ethereum",
			Aliases: []string{"ethereum", "eth-mainnet", "eth"}},
		{ID: 11155111, Key: "EthSepolia", ShortName: "eth_testnet", DisplayName: "Sepolia",
			Aliases: []string{"sepolia", "eth-sepolia"}},
		{ID: 8453, Key: "BaseMainnet", ShortName: "base", DisplayName: "Base",
			Aliases: []string{"base", "base-mainnet"}},
		{ID: 84532, Key: "BaseSepolia", ShortName: "base_testnet", DisplayName: "Base Sepolia",
			Aliases: []string{"base-testnet", "base-sepolia"}},
		{ID: 80069, Key: "BeraTestnet", ShortName: "bera_testnet", DisplayName: "Berachain Testnet",
			Aliases: []string{"bera", "bera-testnet"}},
		{ID: 80094, ShortName: "bera", DisplayName: "Berachain"},
		{ID: 81457, Key: "BlastMainnet", ShortName: "blast", DisplayName: "Blast",
			Aliases: []string{"blast", "blast-mainnet"}},
		{ID: 11124, Key: "AbstractTestnet", ShortName: "abs_testnet", DisplayName: "Abstract Testnet",
			Aliases: []string{"abstract", "abstract-testnet"}},
		{ID: 2741, ShortName: "abstract", DisplayName: "Abstract"},
		{ID: 1301, Key: "UniTestnet", ShortName: "uni_testnet", DisplayName: "Unichain Sepolia",
			Aliases: []string{"uni-testnet"}},
		{ID: 130, ShortName: "unichain", DisplayName: "Unichain"},
		{ID: 10143, ShortName: "monad_testnet", DisplayName: "Monad Testnet"},
	}
}
