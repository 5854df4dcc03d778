package commands

import (
	"intelvest/cmd"

	"github.com/spf13/cobra"
)

var apiPort int

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Serve the view resolvers over HTTP",
	RunE:  runApi,
}

func init() {
	rootCmd.AddCommand(apiCmd)
	apiCmd.Flags().IntVar(&apiPort, "port", 3009, "port to listen on")
}

func runApi(c *cobra.Command, args []string) error {
	handler, err := cmd.InitializeDependencies()
	if err != nil {
		return err
	}
	return handler.StartApi(apiPort)
}
