package cmd

import (
	"context"
	"fmt"

	"github.com/ghostlogs/ghost/internal/api"
	"github.com/ghostlogs/ghost/internal/ui"
	"github.com/ghostlogs/ghost/internal/workspace"
	"github.com/spf13/cobra"
)

// workDir is the graph directory the build commands operate on.
var workDir = "."

// openGraph opens the graph in workDir, builds the API client and fills in
// the chain when the config lacks it.
func openGraph(ctx context.Context, required ...string) (*workspace.Workspace, *api.Client, error) {
	ws, err := workspace.Open(workDir, logger, required...)
	if err != nil {
		return nil, nil, err
	}
	client, err := apiClient()
	if err != nil {
		return nil, nil, err
	}
	if err := ws.Ensure(ctx, client, chains); err != nil {
		return nil, nil, err
	}
	return ws, client, nil
}

var codegenCmd = &cobra.Command{
	Use:   "codegen",
	Short: "Run codegen for an existing graph",
	Long: `Send src/schema.sol and src/events.sol to the service and write the
generated sources back into src/. Run inside a graph directory.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, client, err := openGraph(cmd.Context(), workspace.SchemaFile, workspace.EventsFile)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, ui.Info("Running codegen for id="+ws.Config.VersionID))

		schema, err := ws.Read(workspace.SchemaFile)
		if err != nil {
			return err
		}
		events, err := ws.Read(workspace.EventsFile)
		if err != nil {
			return err
		}

		resp, err := client.Codegen(cmd.Context(), ws.Config.VersionID, api.CodegenRequest{
			SchemaCode: schema,
			EventsCode: events,
		})
		if err != nil {
			return err
		}
		if resp.Err != nil {
			return resp.Err
		}
		if resp.Version != nil {
			if err := workspace.WriteSources(ws.Dir, resp.Version.Sources); err != nil {
				return err
			}
			fmt.Fprintln(out, ui.Success("All files saved."))
			fmt.Fprintln(out, ui.Hint("Go ahead and modify indexer.sol and then run `ghost compile`"))
		}
		return nil
	},
}

var compileCmd = &cobra.Command{
	Use:   "compile",
	Short: "Compile the graph",
	Long: `Send src/indexer.sol to the service for compilation and write the
returned sources into src/. Run inside a graph directory.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, client, err := openGraph(cmd.Context(), workspace.IndexerFile)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, ui.Info("Running compile for id="+ws.Config.VersionID))

		indexer, err := ws.Read(workspace.IndexerFile)
		if err != nil {
			return err
		}
		resp, err := client.Compile(cmd.Context(), ws.Config.VersionID, api.CompileRequest{IndexerCode: indexer})
		if err != nil {
			return err
		}
		if resp.Err != nil {
			return resp.Err
		}
		if resp.Version != nil {
			if err := workspace.WriteSources(ws.Dir, resp.Version.Sources); err != nil {
				return err
			}
			fmt.Fprintln(out, ui.Success("Successfully compiled."))
			fmt.Fprintln(out, ui.Hint("Go ahead and run `ghost deploy` to deploy the graph"))
		}
		return nil
	},
}

var deployCmd = &cobra.Command{
	Use:   "deploy",
	Short: "Deploy the graph",
	Long:  `Deploy the compiled graph version. Run inside a graph directory.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, client, err := openGraph(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, ui.Info("Running deploy for id="+ws.Config.VersionID))

		resp, err := client.Deploy(cmd.Context(), ws.Config.VersionID)
		if err != nil {
			return err
		}
		if resp.Err != nil {
			return resp.Err
		}
		if resp.OK != nil {
			fmt.Fprintln(out, ui.Success("Successfully deployed."))
			fmt.Fprintln(out, ui.Hint("View online at "+client.EditorURL(ws.Config.ID, ws.Config.VersionID)))
		}
		return nil
	},
}
