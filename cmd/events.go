package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/ghostlogs/ghost/internal/abigen"
	"github.com/ghostlogs/ghost/internal/chain"
	"github.com/ghostlogs/ghost/internal/contract"
	"github.com/ghostlogs/ghost/internal/explorer"
	"github.com/ghostlogs/ghost/internal/ui"
	"github.com/ghostlogs/ghost/internal/workspace"
	"github.com/spf13/cobra"
)

var (
	eventsAddress string
	eventsAPIKey  string
	eventsABIFile string
	eventsChain   string
	eventsTopics  bool
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Fetch events from contract ABI",
	Long: `Fetch a verified contract's ABI from Etherscan and print Solidity
declarations for its events and the structs they use, ready to paste into
src/events.sol. Proxies are followed to their implementation.

The chain comes from --chain or, inside a graph directory, from config.json.
With --abi the ABI is read from a local JSON file (a plain ABI array or a
compiler artifact) and nothing is fetched.

Examples:
  ghost events --address 0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48
  ghost events -a 0x4200000000000000000000000000000000000006 --chain base
  ghost events --abi out/Pool.sol/Pool.json
  ghost events -a 0xA0b8... --topics`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		abi, source, err := loadEventsABI(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(contract.EventEntries(abi)) == 0 {
			fmt.Fprintf(out, "No events found for %s\n", source)
			return nil
		}
		if eventsTopics {
			fmt.Fprint(out, topicTable(abi).Render())
			return nil
		}
		printEvents(out, abigen.Generate(contract.Events(abi)))
		return nil
	},
}

// loadEventsABI returns the ABI to generate from and a label naming where
// it came from.
func loadEventsABI(ctx context.Context) ([]contract.ABIEntry, string, error) {
	if eventsABIFile != "" {
		abi, err := contract.LoadFromArtifact(eventsABIFile)
		if err != nil {
			return nil, "", err
		}
		source := eventsABIFile
		if eventsAddress != "" {
			source = eventsAddress
		}
		return abi, source, nil
	}

	if eventsAddress == "" {
		return nil, "", errors.New("--address is required unless --abi is given")
	}
	addr, err := explorer.ParseAddress(eventsAddress)
	if err != nil {
		return nil, "", err
	}
	c, err := eventsTargetChain(ctx)
	if err != nil {
		return nil, "", err
	}
	key := eventsAPIKey
	if key == "" {
		key = env.EtherscanAPIKey
	}

	opts := []explorer.Option{
		explorer.WithBaseURL(env.EtherscanAPIURL),
		explorer.WithLogger(logger),
	}
	if dir := explorer.DefaultCacheDir(); dir != "" {
		opts = append(opts, explorer.WithCache(explorer.NewCache(dir, explorer.CacheTTL)))
	}
	client, err := explorer.NewClient(c.ID, key, opts...)
	if err != nil {
		return nil, "", err
	}

	sp := ui.NewSpinner("Fetching ABI for " + addr.Hex() + " on " + ui.ChainName(c.DisplayName) + "...")
	sp.Start()
	abi, err := client.FetchABI(ctx, addr)
	if err != nil {
		sp.Stop()
		return nil, "", err
	}
	sp.StopWithMsg(ui.Meta("Fetched ABI for " + addr.Hex()))
	return abi, addr.Hex(), nil
}

// eventsTargetChain resolves --chain, falling back to the chain of the graph
// in the working directory.
func eventsTargetChain(ctx context.Context) (*chain.Chain, error) {
	if eventsChain != "" {
		return chains.Parse(eventsChain)
	}
	ws, err := workspace.Open(workDir, logger)
	if err != nil {
		return nil, fmt.Errorf("%w (or pass --chain)", err)
	}
	if ws.Config.Chain == nil {
		client, err := apiClient()
		if err != nil {
			return nil, err
		}
		if err := ws.Ensure(ctx, client, chains); err != nil {
			return nil, err
		}
	}
	if ws.Config.Chain == nil {
		return nil, errors.New("no chain found")
	}
	return chains.GetByKey(*ws.Config.Chain)
}

// printEvents writes the structs, then the events wrapped in an events
// block, then a hint.
func printEvents(w io.Writer, res abigen.Result) {
	for _, s := range res.Structs {
		fmt.Fprintln(w, s)
	}
	fmt.Fprintln(w, "events {")
	for _, e := range res.Events {
		fmt.Fprintf(w, "\t%s\n", e)
	}
	fmt.Fprintln(w, "}")
	fmt.Fprintln(w, "\n\nYou can copy the relevant events into your events.sol file")
}

func topicTable(abi []contract.ABIEntry) *ui.Table {
	tbl := ui.NewTable([]ui.Column{
		{Title: "Event", Width: 5},
		{Title: "Signature", Width: 9},
		{Title: "Topic", Width: 66},
	})
	for _, e := range contract.EventEntries(abi) {
		tbl.AddRow(ui.Row{e.Name, contract.EventSignature(e), contract.EventTopic(e)})
	}
	tbl.Fit()
	return tbl
}

func init() {
	eventsCmd.Flags().StringVarP(&eventsAddress, "address", "a", "", "contract address")
	eventsCmd.Flags().StringVarP(&eventsAPIKey, "api-key", "k", "", "etherscan key for the target chain (env ETHERSCAN_API_KEY)")
	eventsCmd.Flags().StringVar(&eventsABIFile, "abi", "", "read the ABI from a local JSON file instead of Etherscan")
	eventsCmd.Flags().StringVarP(&eventsChain, "chain", "c", "", "chain to query (default: the graph's chain)")
	eventsCmd.Flags().BoolVar(&eventsTopics, "topics", false, "print event signatures and topic hashes instead")
}
