package cmd

import (
	"context"
	"fmt"
	"os"

	"amfkit/cli"
	"amfkit/compression"

	"github.com/spf13/cobra"
)

var (
	algorithm string
	output    string
)

var compressCmd = &cobra.Command{
	Use:   "compress <file>",
	Short: "Compresses a file. Use - to read from stdin.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return transform(cmd, args[0], true)
	},
}

var uncompressCmd = &cobra.Command{
	Use:   "uncompress <file>",
	Short: "Uncompresses a file. Use - to read from stdin.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return transform(cmd, args[0], false)
	},
}

func transform(cmd *cobra.Command, name string, compress bool) error {
	env, err := cli.OpenEnv(cli.GetHomeDir(cmd))
	if err != nil {
		return err
	}
	defer env.Close()

	alg, err := resolveAlgorithm(env)
	if err != nil {
		return err
	}
	data, err := cli.ReadInput(name)
	if err != nil {
		return err
	}
	s, err := env.NewStream(data)
	if err != nil {
		return err
	}
	if compress {
		err = s.CompressContext(context.Background(), alg)
	} else {
		err = s.UncompressContext(context.Background(), alg)
	}
	if err != nil {
		return err
	}

	if err := cli.WriteOutput(output, s.Bytes()); err != nil {
		return err
	}
	if output != "-" {
		fmt.Fprintf(os.Stderr, "Wrote %d bytes to %s.\n", s.Len(), output)
	}
	return nil
}

func resolveAlgorithm(env *cli.Env) (compression.Algorithm, error) {
	if algorithm == "" {
		return env.Config.Algorithm()
	}
	return compression.ParseAlgorithm(algorithm)
}

func init() {
	for _, c := range []*cobra.Command{compressCmd, uncompressCmd} {
		c.Flags().StringVarP(&algorithm, cli.FlagAlgorithm, "a", "", "Compression algorithm. Defaults to the configured one.")
		c.Flags().StringVarP(&output, cli.FlagOutput, "o", "-", "File to write to. Defaults to stdout.")
		rootCmd.AddCommand(c)
	}
}
