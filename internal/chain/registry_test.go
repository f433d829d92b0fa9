package chain_test

import (
	"testing"

	"github.com/ghostlogs/ghost/internal/chain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryHasAllChains(t *testing.T) {
	reg := chain.NewRegistry()
	assert.Len(t, reg.All(), 12)
	assert.Len(t, reg.Selectable(), 8)
}

func TestParseByAlias(t *testing.T) {
	reg := chain.NewRegistry()
	tests := map[string]string{
		"ethereum":         "EthMainnet",
		"ETH":              "EthMainnet",
		"eth-sepolia":      "EthSepolia",
		"base":             "BaseMainnet",
		"base-sepolia":     "BaseSepolia",
		"bera":             "BeraTestnet",
		"blast-mainnet":    "BlastMainnet",
		"Abstract-Testnet": "AbstractTestnet",
		"uni-testnet":      "UniTestnet",
	}
	for in, want := range tests {
		c, err := reg.Parse(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, c.Key, in)
	}
}

func TestParseByChainID(t *testing.T) {
	reg := chain.NewRegistry()
	c, err := reg.Parse("8453")
	require.NoError(t, err)
	assert.Equal(t, "BaseMainnet", c.Key)
	assert.Equal(t, uint64(8453), c.ID)
}

func TestParseRejectsNonSelectableID(t *testing.T) {
	reg := chain.NewRegistry()
	_, err := reg.Parse("130")
	require.Error(t, err)
	assert.ErrorIs(t, err, chain.ErrChainNotFound)
}

func TestParseUnknownNameListsOptions(t *testing.T) {
	reg := chain.NewRegistry()
	_, err := reg.Parse("dogechain")
	require.Error(t, err)
	assert.ErrorIs(t, err, chain.ErrChainNotFound)
	assert.Contains(t, err.Error(), "ethereum")
	assert.Contains(t, err.Error(), "uni-testnet")
}

func TestGetByKey(t *testing.T) {
	reg := chain.NewRegistry()
	c, err := reg.GetByKey("BlastMainnet")
	require.NoError(t, err)
	assert.Equal(t, uint64(81457), c.ID)

	_, err = reg.GetByKey("Nope")
	assert.ErrorIs(t, err, chain.ErrChainNotFound)
}

func TestGetByID(t *testing.T) {
	reg := chain.NewRegistry()
	c, err := reg.GetByID(10143)
	require.NoError(t, err)
	assert.False(t, c.Selectable())

	_, err = reg.GetByID(999)
	assert.ErrorIs(t, err, chain.ErrChainNotFound)
}

func TestShortName(t *testing.T) {
	reg := chain.NewRegistry()
	assert.Equal(t, "eth", reg.ShortName(1))
	assert.Equal(t, "unichain", reg.ShortName(130))
	assert.Equal(t, "Unknown", reg.ShortName(424242))
}
