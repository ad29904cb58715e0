/*
Package cmd implements the command-line interface for the Velixar MCP
server. Configuration is environment-driven because MCP clients launch the
server as a subprocess and pass settings through env vars.
*/
package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/theapemachine/velixar-mcp/pkg/recall"
	"github.com/theapemachine/velixar-mcp/pkg/velixar"
)

var rootCmd = &cobra.Command{
	Use:   "velixar-mcp",
	Short: "MCP server exposing the Velixar remote memory API",
	Long:  longRoot,
}

/*
Execute is the main entry point for the velixar-mcp CLI.
*/
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)
}

/*
initConfig binds configuration to VELIXAR_-prefixed environment variables,
loading a local .env file first when one exists.
*/
func initConfig() {
	_ = godotenv.Load()

	viper.SetEnvPrefix("velixar")
	viper.AutomaticEnv()

	viper.SetDefault("api_url", velixar.DefaultBaseURL)
	viper.SetDefault("user_id", "default_user")
	viper.SetDefault("auto_recall", true)
	viper.SetDefault("recall_limit", recall.DefaultLimit)
}

var longRoot = `
velixar-mcp bridges the Velixar remote memory API into the Model Context
Protocol: store, search, list, update and delete memories as MCP tools, with
the most recent memories prefetched into a readable resource.

Configuration (environment):
  VELIXAR_API_KEY       API bearer token (required)
  VELIXAR_API_URL       API base URL (default ` + velixar.DefaultBaseURL + `)
  VELIXAR_USER_ID       user scope for all operations (default "default_user")
  VELIXAR_AUTO_RECALL   prefetch recent memories at startup (default true)
  VELIXAR_RECALL_LIMIT  how many memories to prefetch (default 10)
`
