package alias

import (
	"encoding/json"
	"os"
	"time"

	"amfkit/cli"
	"amfkit/store"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Lists stored and configured class aliases.",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := cli.OpenEnv(cli.GetHomeDir(cmd))
		if err != nil {
			return err
		}
		defer env.Close()

		stream, err := store.StreamAliases(env.DB, "")
		if err != nil {
			return err
		}
		defer stream.Close()
		registered := make(map[string]time.Time)
		for {
			info, err := stream.Next()
			if err != nil {
				return err
			}
			if info == nil {
				break
			}
			registered[info.Alias] = info.RegisteredAt
		}

		format, _ := cmd.Flags().GetString(cli.FlagFormat)
		if format == cli.FormatJSON {
			return json.NewEncoder(os.Stdout).Encode(env.Registry.Pairs())
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Alias", "Class Name", "Source"})
		for _, pair := range env.Registry.Pairs() {
			source := "config"
			if at, ok := registered[pair.Alias]; ok {
				if _, configured := env.Config.Aliases[pair.Alias]; !configured {
					source = "stored " + at.Format(time.RFC3339)
				}
			}
			table.Append([]string{pair.Alias, pair.ClassName, source})
		}
		table.Render()
		return nil
	},
}

func init() {
	cmd.AddCommand(listCmd)
}
