package alias

import (
	"github.com/spf13/cobra"
)

var cmd = &cobra.Command{
	Use:   "alias",
	Short: "Commands related to class aliases.",
}

func AddCmd(parent *cobra.Command) {
	parent.AddCommand(cmd)
}
