package cmd

import (
	"fmt"
	"os"

	"amfkit/cli"
	"amfkit/cmd/amfctl/cmd/alias"
	"amfkit/config"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "amfctl",
	Short: "Inspect, compress and alias AMF byte streams.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.CalledAs() == "init" || cmd.CalledAs() == "version" {
			return nil
		}
		if err := config.EnsureHomeDir(cli.GetHomeDir(cmd)); err != nil {
			return errors.Wrap(err, "error ensuring home directory")
		}
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String(cli.FlagHome, "~/.amfctl", "Home directory for amfctl's config and alias database.")
	rootCmd.PersistentFlags().String(cli.FlagFormat, cli.FormatText, "Output format. Can be text or json.")
	alias.AddCmd(rootCmd)
}
