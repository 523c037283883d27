package cmd

import (
	"context"
	"encoding/json"
	"os"
	"strconv"

	"amfkit/cli"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var workers int

var batchCmd = &cobra.Command{
	Use:   "batch <files...>",
	Short: "Compresses many files concurrently, writing each next to its source.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := cli.OpenEnv(cli.GetHomeDir(cmd))
		if err != nil {
			return err
		}
		defer env.Close()

		alg, err := resolveAlgorithm(env)
		if err != nil {
			return err
		}
		n := workers
		if n == 0 {
			n = env.Config.Compression.BatchWorkers
		}
		results, err := env.CompressFiles(context.Background(), alg, args, n)
		if err != nil {
			return err
		}

		format, _ := cmd.Flags().GetString(cli.FlagFormat)
		if format == cli.FormatJSON {
			return json.NewEncoder(os.Stdout).Encode(results)
		}
		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Source", "Dest", "In", "Out"})
		for _, res := range results {
			table.Append([]string{
				res.Source,
				res.Dest,
				strconv.Itoa(res.InLen),
				strconv.Itoa(res.OutLen),
			})
		}
		table.Render()
		return nil
	},
}

func init() {
	batchCmd.Flags().StringVarP(&algorithm, cli.FlagAlgorithm, "a", "", "Compression algorithm. Defaults to the configured one.")
	batchCmd.Flags().IntVarP(&workers, cli.FlagWorkers, "w", 0, "Concurrent workers. Defaults to the configured count.")
	rootCmd.AddCommand(batchCmd)
}
