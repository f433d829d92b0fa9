package cmd

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ghostlogs/ghost/internal/api"
	"github.com/ghostlogs/ghost/internal/ui"
	"github.com/ghostlogs/ghost/internal/workspace"
	"github.com/spf13/cobra"
)

// errCancelled is returned when the user backs out of a prompt.
var errCancelled = errors.New("cancelled")

// pickGraph is replaced in tests.
var pickGraph = ui.PickItem

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all my graphs",
	Long: `List your graphs. Inside a graph directory the row of the current
graph is highlighted.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := apiClient()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, ui.Info("Fetching list of graphs..."))

		graphs, err := listGraphs(cmd.Context(), client)
		if err != nil {
			return err
		}
		if len(graphs) == 0 {
			fmt.Fprintln(out, "No graphs found.")
			return nil
		}
		current := ""
		if ws, err := workspace.Open(workDir, logger); err == nil {
			current = ws.Config.VersionID
		}
		fmt.Fprint(out, graphTable(graphs, current).Render())
		return nil
	},
}

var (
	forkID   string
	forkName string
)

var forkCmd = &cobra.Command{
	Use:   "fork <dir>",
	Short: "Fork a graph",
	Long: `Fork an existing graph into <dir>. Without --id an interactive picker
lists your graphs.

Examples:
  ghost fork my-fork --id clx9abc...
  ghost fork my-fork`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := args[0]
		client, err := apiClient()
		if err != nil {
			return err
		}
		id := forkID
		if id == "" {
			if id, err = chooseGraph(cmd.Context(), client, "Select a graph to fork"); err != nil {
				return err
			}
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, ui.Info("Forking graph with ID: "+id))
		if err := workspace.PrepareDir(dir); err != nil {
			return err
		}

		req := api.ForkRequest{}
		if forkName != "" {
			req.Name = &forkName
		} else if name := defaultName(dir); name != defaultGraphName {
			req.Name = &name
		}

		resp, err := client.ForkGraph(cmd.Context(), id, req)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, ui.Success("Graph has been successfully forked. Setting up local files..."))
		graphCfg := workspace.GraphConfig{ID: resp.ID, VersionID: resp.VersionID}
		if err := workspace.Init(dir, graphCfg, resp.Sources); err != nil {
			return err
		}
		fmt.Fprintf(out, "done! Check the %q directory\n", dir)
		return nil
	},
}

var (
	deleteID  string
	deleteYes bool
)

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a graph",
	Long: `Delete a graph. Without --id an interactive picker lists your graphs.
You are asked to confirm unless --yes is given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := apiClient()
		if err != nil {
			return err
		}
		id := deleteID
		if id == "" {
			if id, err = chooseGraph(cmd.Context(), client, "Select a graph to delete"); err != nil {
				return err
			}
		}
		out := cmd.OutOrStdout()
		if !deleteYes && !ui.ConfirmDanger(cmd.InOrStdin(), out, "Delete graph "+id+"? This cannot be undone.") {
			return errCancelled
		}

		fmt.Fprintln(out, ui.Info("Deleting graph with ID: "+id))
		if err := client.DeleteGraph(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Fprintln(out, ui.Success("Successfully deleted the graph"))
		return nil
	},
}

func listGraphs(ctx context.Context, client *api.Client) ([]api.Graph, error) {
	resp, err := client.ListGraphs(ctx)
	if err != nil {
		return nil, err
	}
	if resp.Err != nil {
		return nil, resp.Err
	}
	return resp.Graphs, nil
}

// chooseGraph lets the user pick one of their graphs and returns its id.
func chooseGraph(ctx context.Context, client *api.Client, title string) (string, error) {
	graphs, err := listGraphs(ctx, client)
	if err != nil {
		return "", err
	}
	if len(graphs) == 0 {
		return "", errors.New("no graphs found. Pass --id explicitly")
	}
	id, err := pickGraph(title, graphItems(graphs))
	if err != nil {
		return "", err
	}
	if id == "" {
		return "", errCancelled
	}
	return id, nil
}

func graphItems(graphs []api.Graph) []ui.PickerItem {
	items := make([]ui.PickerItem, len(graphs))
	for i, g := range graphs {
		items[i] = ui.PickerItem{
			Label:    strings.TrimSpace(g.Name),
			SubLabel: ui.TruncateID(g.LatestVersionID) + "  " + chainLabel(g.Chain) + "  " + fmtTime(g.CreatedAt),
			Value:    g.LatestVersionID,
		}
	}
	return items
}

// graphTable renders graphs, highlighting the one whose version is current.
func graphTable(graphs []api.Graph, current string) *ui.Table {
	tbl := ui.NewTable([]ui.Column{
		{Title: "ID", Width: 2},
		{Title: "Name", Width: 20},
		{Title: "Description", Width: 11},
		{Title: "Chain", Width: 5},
		{Title: "Created", Width: 16},
	})
	for i, g := range graphs {
		if current != "" && g.LatestVersionID == current {
			tbl.SelIdx = i
		}
		desc := "--"
		if g.Description != nil {
			desc = truncate(*g.Description, 30)
		}
		tbl.AddRow(ui.Row{
			g.LatestVersionID,
			truncate(strings.TrimSpace(g.Name), 24),
			desc,
			chainLabel(g.Chain),
			fmtTime(g.CreatedAt),
		})
	}
	tbl.Fit()
	return tbl
}

func chainLabel(id uint64) string {
	return chains.ShortName(id) + " (" + strconv.FormatUint(id, 10) + ")"
}

// fmtTime renders an RFC 3339 timestamp in local time. Unparseable input is
// returned unchanged.
func fmtTime(s string) string {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return s
	}
	return t.Local().Format("2006-01-02 15:04")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func init() {
	forkCmd.Flags().StringVar(&forkID, "id", "", "ID of the graph to fork (default: pick interactively)")
	forkCmd.Flags().StringVarP(&forkName, "name", "n", "", "name for the fork (default: directory name)")

	deleteCmd.Flags().StringVar(&deleteID, "id", "", "ID of the graph to delete (default: pick interactively)")
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "skip the confirmation prompt")
}
