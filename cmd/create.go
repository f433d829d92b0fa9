package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ghostlogs/ghost/internal/api"
	"github.com/ghostlogs/ghost/internal/ui"
	"github.com/ghostlogs/ghost/internal/workspace"
	"github.com/spf13/cobra"
)

const defaultGraphName = "My Index"

var (
	createChain string
	createName  string
)

var createCmd = &cobra.Command{
	Use:   "create <dir>",
	Short: "Create a new graph",
	Long: `Create a new GhostGraph and initialize its files in <dir>.
The directory is created if needed and must be empty.

Examples:
  ghost create my-index --chain base
  ghost create my-index --chain 8453 --name "Uniswap swaps"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := args[0]
		c, err := chains.Parse(createChain)
		if err != nil {
			return err
		}
		if err := workspace.PrepareDir(dir); err != nil {
			return err
		}
		client, err := apiClient()
		if err != nil {
			return err
		}

		name := createName
		if name == "" {
			name = defaultName(dir)
		}

		sp := ui.NewSpinner("Creating graph...")
		sp.Start()
		resp, err := client.CreateGraph(cmd.Context(), api.CreateRequest{Name: name, Chain: c.ID})
		sp.Stop()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s %s on %s\n", ui.Success("Success! Created a new graph"), ui.Val(name), ui.ChainName(c.DisplayName))
		fmt.Fprintf(out, "View online at %s\n", ui.Addr(client.EditorURL(resp.ID, resp.VersionID)))
		fmt.Fprintln(out, "\n"+ui.Meta("Initializing files..."))

		key := c.Key
		graphCfg := workspace.GraphConfig{ID: resp.ID, VersionID: resp.VersionID, Chain: &key}
		if err := workspace.Init(dir, graphCfg, resp.Sources); err != nil {
			return err
		}
		fmt.Fprintln(out, ui.KeyValueBlock("", [][2]string{
			{"Name", name},
			{"Chain", c.DisplayName},
			{"ID", resp.ID},
			{"Version", resp.VersionID},
		}))
		fmt.Fprintf(out, "done! Check the %q directory\n", dir)
		return nil
	},
}

// defaultName names a graph after its directory.
func defaultName(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = dir
	}
	base := filepath.Base(abs)
	if base == "." || base == string(filepath.Separator) || strings.TrimSpace(base) == "" {
		return defaultGraphName
	}
	return base
}

func init() {
	createCmd.Flags().StringVarP(&createChain, "chain", "c", "",
		"chain: "+strings.Join(chains.Options(), ", ")+", or a chain id")
	createCmd.Flags().StringVarP(&createName, "name", "n", "", "graph name (default: directory name)")
	_ = createCmd.MarkFlagRequired("chain")
}
