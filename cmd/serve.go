package cmd

import (
	"errors"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/theapemachine/velixar-mcp/pkg/service"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the Velixar memory tools over stdio",
	Long:  longServe,
	RunE: func(cmd *cobra.Command, args []string) error {
		apiKey := viper.GetString("api_key")

		if apiKey == "" {
			return errors.New("VELIXAR_API_KEY is not set; refusing to start")
		}

		srv := service.NewMemoryServer(service.Config{
			APIKey:      apiKey,
			APIURL:      viper.GetString("api_url"),
			UserID:      viper.GetString("user_id"),
			AutoRecall:  viper.GetBool("auto_recall"),
			RecallLimit: viper.GetInt("recall_limit"),
		})

		return srv.Start()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

var longServe = `
Serve the Velixar MCP server on stdin/stdout.

The process runs until the client closes the stream. Logs go to stderr so
they never interleave with the protocol.

Example Claude Desktop entry:

  "velixar": {
    "command": "velixar-mcp",
    "args": ["serve"],
    "env": { "VELIXAR_API_KEY": "..." }
  }
`
