package alias

import (
	"fmt"

	"amfkit/cli"
	"amfkit/store"

	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <alias> <class name>",
	Short: "Stores a class alias. The class name must already be qualified, e.g. com.example::Foo.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := cli.OpenEnv(cli.GetHomeDir(cmd))
		if err != nil {
			return err
		}
		defer env.Close()

		if err := env.Registry.RegisterQualifiedName(args[0], args[1]); err != nil {
			return err
		}
		if err := store.PutAlias(env.DB, args[0], args[1]); err != nil {
			return err
		}
		fmt.Printf("Registered %s as %s.\n", args[0], args[1])
		return nil
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove <alias>",
	Short: "Removes a stored class alias.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := cli.OpenEnv(cli.GetHomeDir(cmd))
		if err != nil {
			return err
		}
		defer env.Close()

		if err := store.DeleteAlias(env.DB, args[0]); err != nil {
			return err
		}
		fmt.Printf("Removed %s.\n", args[0])
		return nil
	},
}

func init() {
	cmd.AddCommand(addCmd)
	cmd.AddCommand(removeCmd)
}
