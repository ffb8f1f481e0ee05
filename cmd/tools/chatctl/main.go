// cmd/tools/chatctl/main.go
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "chatctl",
	Short: "Try the OBCMS chat query pipeline from a terminal",
	Long: `chatctl runs the chat template pipeline outside Zeebe.

Offline commands (extract, match, suggest, compile) need no services.
exec, ask and index read configs/config.yaml for database and
Elasticsearch settings.

Examples:
  chatctl extract "fishing communities in Region IX"
  chatctl match "How many communities in Zamboanga del Sur?"
  chatctl suggest "show me" --category geographic
  chatctl compile "Province.objects.filter(region__name__icontains='IX').count()"
  chatctl ask "List provinces of Region XII" --execute
  chatctl index`,
	SilenceUsage: true,
}

var (
	configPath string
	logLevel   string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: configs/config.yaml layering)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level for pipeline components")

	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(compileCmd)
	rootCmd.AddCommand(execCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(indexCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
