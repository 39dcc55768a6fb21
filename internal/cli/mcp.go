package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/aidanlsb/kvasir/internal/mcpclient"
	"github.com/aidanlsb/kvasir/internal/mcpserver"
	"github.com/aidanlsb/kvasir/internal/ui"
)

var mcpClientFlag string

const supportedClientsHint = "Supported clients: claude-code, claude-desktop, cursor, windsurf"

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Manage MCP client integrations",
	Long: `Manage MCP client integrations for kvasir.

Install, remove, or inspect the kvasir MCP server entry in supported
client config files (Claude Code, Claude Desktop, Cursor, Windsurf).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var mcpInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Add kvasir to an MCP client config",
	Long: `Add kvasir to an MCP client config file.

The registered entry runs 'kvs serve'. Use --docs-path to pin the
documentation roots into the entry; without it the server uses its
normal configuration resolution.

Examples:
  kvs mcp install --client claude-code
  kvs mcp install --client cursor --docs-path ~/project/docs`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client := mcpclient.Client(mcpClientFlag)
		if !mcpclient.ValidClient(mcpClientFlag) {
			return handleErrorMsg(ErrMCPClientInvalid, fmt.Sprintf("unknown client: %s", mcpClientFlag),
				supportedClientsHint)
		}

		cfgPath, err := mcpclient.ConfigPath(client, "")
		if err != nil {
			return handleError(ErrInternal, err, "")
		}

		entry := mcpclient.BuildServerEntry(docsPathsFlag)
		result, err := mcpclient.Install(cfgPath, entry)
		if err != nil {
			return handleError(ErrMCPConfigWriteError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"client":      string(client),
				"config_path": cfgPath,
				"result":      result.String(),
				"entry": map[string]interface{}{
					"command": entry.Command,
					"args":    entry.Args,
				},
			}, nil)
			return nil
		}

		switch result {
		case mcpclient.Installed:
			fmt.Println(ui.Successf("Installed kvasir in %s config", client))
		case mcpclient.Updated:
			fmt.Println(ui.Successf("Updated kvasir in %s config", client))
		case mcpclient.AlreadyInstalled:
			fmt.Printf("Already installed in %s config.\n", client)
		}
		fmt.Printf("config: %s\n", ui.FilePath(cfgPath))
		return nil
	},
}

var mcpRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove kvasir from an MCP client config",
	Long: `Remove kvasir from an MCP client config file.

Examples:
  kvs mcp remove --client claude-code`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client := mcpclient.Client(mcpClientFlag)
		if !mcpclient.ValidClient(mcpClientFlag) {
			return handleErrorMsg(ErrMCPClientInvalid, fmt.Sprintf("unknown client: %s", mcpClientFlag),
				supportedClientsHint)
		}

		cfgPath, err := mcpclient.ConfigPath(client, "")
		if err != nil {
			return handleError(ErrInternal, err, "")
		}

		removed, err := mcpclient.Remove(cfgPath)
		if err != nil {
			return handleError(ErrMCPConfigWriteError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"client":      string(client),
				"config_path": cfgPath,
				"removed":     removed,
			}, nil)
			return nil
		}

		if removed {
			fmt.Println(ui.Successf("Removed kvasir from %s config", client))
		} else {
			fmt.Printf("Kvasir not found in %s config.\n", client)
		}
		fmt.Printf("config: %s\n", ui.FilePath(cfgPath))
		return nil
	},
}

var mcpStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show kvasir MCP status across all clients",
	Long: `Show kvasir MCP status across all supported clients.

Checks each client's config file and reports whether kvasir is
configured.

Examples:
  kvs mcp status
  kvs mcp status --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		clients := mcpclient.AllClients()
		statuses := make([]map[string]interface{}, 0, len(clients))

		for _, client := range clients {
			cfgPath, err := mcpclient.ConfigPath(client, "")
			if err != nil {
				continue
			}

			cs, err := mcpclient.Status(client, cfgPath)
			if err != nil {
				// Report error but continue
				if isJSONOutput() {
					statuses = append(statuses, map[string]interface{}{
						"client":      string(client),
						"config_path": cfgPath,
						"error":       err.Error(),
					})
				} else {
					fmt.Printf("%-16s error: %v\n", client, err)
				}
				continue
			}

			entry := map[string]interface{}(nil)
			if cs.Entry != nil {
				entry = map[string]interface{}{
					"command": cs.Entry.Command,
					"args":    cs.Entry.Args,
				}
			}

			statuses = append(statuses, map[string]interface{}{
				"client":      string(cs.Client),
				"config_path": cs.ConfigPath,
				"exists":      cs.Exists,
				"installed":   cs.Installed,
				"entry":       entry,
			})

			if !isJSONOutput() {
				status := ui.Error("not installed")
				detail := ""
				if cs.Installed && cs.Entry != nil {
					status = ui.Success("installed")
					detail = fmt.Sprintf("  (%s %s)", cs.Entry.Command, strings.Join(cs.Entry.Args, " "))
				} else if !cs.Exists {
					status = ui.Hint("no config file")
				}
				fmt.Printf("%-16s %s%s\n", client, status, detail)
			}
		}

		if isJSONOutput() {
			installed := 0
			for _, s := range statuses {
				if b, ok := s["installed"].(bool); ok && b {
					installed++
				}
			}
			outputSuccess(map[string]interface{}{
				"clients": statuses,
			}, &Meta{Count: installed})
			return nil
		}

		return nil
	},
}

var mcpShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the MCP config snippet for manual setup",
	Long: `Print the JSON config snippet for manual setup.

Outputs the JSON that would be added to the client config file,
useful for unsupported clients or manual configuration.

Examples:
  kvs mcp show
  kvs mcp show --client cursor --docs-path ~/project/docs`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if mcpClientFlag != "" && !mcpclient.ValidClient(mcpClientFlag) {
			return handleErrorMsg(ErrMCPClientInvalid, fmt.Sprintf("unknown client: %s", mcpClientFlag),
				supportedClientsHint)
		}

		entry := mcpclient.BuildServerEntry(docsPathsFlag)

		snippet := map[string]interface{}{
			"mcpServers": map[string]interface{}{
				"kvasir": map[string]interface{}{
					"command": entry.Command,
					"args":    entry.Args,
				},
			},
		}

		if isJSONOutput() {
			outputSuccess(snippet, nil)
			return nil
		}

		out, err := json.MarshalIndent(snippet, "", "  ")
		if err != nil {
			return handleError(ErrInternal, err, "")
		}
		fmt.Println(string(out))

		if mcpClientFlag != "" {
			cfgPath, err := mcpclient.ConfigPath(mcpclient.Client(mcpClientFlag), "")
			if err == nil {
				fmt.Printf("\nAdd this to: %s\n", ui.FilePath(cfgPath))
			}
		}

		return nil
	},
}

var mcpCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Smoke-test the MCP server",
	Long: `Connect a real MCP client to an in-process kvasir server, list the
tools, and call list_documents against the resolved corpus.

Examples:
  kvs mcp check
  kvs mcp check --docs-path ./docs --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		srv := mcpserver.New(getSettings(), currentVersionInfo().Version, getLogger())
		serverTransport, clientTransport := mcp.NewInMemoryTransports()

		serverSession, err := srv.Connect(ctx, serverTransport)
		if err != nil {
			return handleError(ErrMCPCheckFailed, err, "")
		}
		defer serverSession.Close()

		client := mcp.NewClient(&mcp.Implementation{Name: "kvs-check"}, nil)
		clientSession, err := client.Connect(ctx, clientTransport, nil)
		if err != nil {
			return handleError(ErrMCPCheckFailed, err, "")
		}
		defer clientSession.Close()

		tools, err := clientSession.ListTools(ctx, nil)
		if err != nil {
			return handleError(ErrMCPCheckFailed, err, "")
		}
		toolNames := make([]string, 0, len(tools.Tools))
		for _, tool := range tools.Tools {
			toolNames = append(toolNames, tool.Name)
		}

		res, err := clientSession.CallTool(ctx, &mcp.CallToolParams{
			Name:      "list_documents",
			Arguments: map[string]interface{}{},
		})
		if err != nil {
			return handleError(ErrMCPCheckFailed, err, "")
		}
		if res.IsError {
			return handleErrorMsg(ErrMCPCheckFailed, "list_documents returned an error", "")
		}

		documents := countListedDocuments(res)

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"server":    "kvasir",
				"tools":     toolNames,
				"documents": documents,
			}, &Meta{Count: len(toolNames)})
			return nil
		}

		fmt.Println(ui.Successf("connected to kvasir MCP server"))
		fmt.Println(ui.Successf("%d tools exposed: %s", len(toolNames), strings.Join(toolNames, ", ")))
		fmt.Println(ui.Successf("list_documents returned %d documents", documents))
		return nil
	},
}

// countListedDocuments digs the document count out of a list_documents
// result without committing to the full schema.
func countListedDocuments(res *mcp.CallToolResult) int {
	raw, err := json.Marshal(res.StructuredContent)
	if err != nil {
		return 0
	}
	var payload struct {
		Documents []json.RawMessage `json:"documents"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return 0
	}
	return len(payload.Documents)
}

func init() {
	mcpInstallCmd.Flags().StringVar(&mcpClientFlag, "client", "", "MCP client (claude-code, claude-desktop, cursor, windsurf)")
	_ = mcpInstallCmd.MarkFlagRequired("client")

	mcpRemoveCmd.Flags().StringVar(&mcpClientFlag, "client", "", "MCP client (claude-code, claude-desktop, cursor, windsurf)")
	_ = mcpRemoveCmd.MarkFlagRequired("client")

	mcpShowCmd.Flags().StringVar(&mcpClientFlag, "client", "", "MCP client (claude-code, claude-desktop, cursor, windsurf)")

	mcpCmd.AddCommand(mcpInstallCmd)
	mcpCmd.AddCommand(mcpRemoveCmd)
	mcpCmd.AddCommand(mcpStatusCmd)
	mcpCmd.AddCommand(mcpShowCmd)
	mcpCmd.AddCommand(mcpCheckCmd)

	rootCmd.AddCommand(mcpCmd)
}
