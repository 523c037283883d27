package cmd

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"strconv"
	"strings"

	"amfkit/cli"
	"amfkit/message"

	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var objectsOnly bool

var inspectCmd = &cobra.Command{
	Use:   "inspect [file]",
	Short: "Decodes an AMF message envelope, or a run of AMF objects with --objects.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := cli.OpenEnv(cli.GetHomeDir(cmd))
		if err != nil {
			return err
		}
		defer env.Close()

		var data []byte
		if len(args) == 1 {
			data, err = cli.ReadInput(args[0])
		} else if isatty.IsTerminal(os.Stdin.Fd()) {
			data, err = readHexTTY(os.Stdin)
		} else {
			data, err = ioutil.ReadAll(os.Stdin)
		}
		if err != nil {
			return err
		}

		format, _ := cmd.Flags().GetString(cli.FlagFormat)
		if objectsOnly {
			return inspectObjects(env, data, format)
		}
		msg, err := message.Decode(data, env.Codecs())
		if err != nil {
			return err
		}
		return renderMessage(msg, format)
	},
}

func readHexTTY(r io.Reader) ([]byte, error) {
	fmt.Println("Paste the hex-encoded bytes you would like to inspect below.")
	fmt.Println("When you are finished, press Ctrl+D.")

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return nil, err
	}
	return hex.DecodeString(strings.Join(strings.Fields(buf.String()), ""))
}

func inspectObjects(env *cli.Env, data []byte, format string) error {
	s, err := env.NewStream(data)
	if err != nil {
		return err
	}
	var values []interface{}
	for s.BytesAvailable() > 0 {
		v, err := s.ReadObject()
		if err != nil {
			return err
		}
		values = append(values, v)
	}

	if format == cli.FormatJSON {
		return json.NewEncoder(os.Stdout).Encode(values)
	}
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"#", "Type", "Value"})
	for i, v := range values {
		table.Append([]string{strconv.Itoa(i), fmt.Sprintf("%T", v), fmt.Sprintf("%v", v)})
	}
	table.Render()
	return nil
}

type headerView struct {
	Name           string      `json:"name"`
	MustUnderstand bool        `json:"mustUnderstand"`
	Data           interface{} `json:"data"`
}

type bodyView struct {
	TargetURI   string      `json:"targetURI"`
	ResponseURI string      `json:"responseURI"`
	Data        interface{} `json:"data"`
}

type messageView struct {
	Version uint16       `json:"version"`
	Headers []headerView `json:"headers"`
	Bodies  []bodyView   `json:"bodies"`
}

func renderMessage(msg *message.Message, format string) error {
	if format == cli.FormatJSON {
		view := messageView{Version: msg.Version}
		for _, h := range msg.Headers() {
			view.Headers = append(view.Headers, headerView{h.Name, h.MustUnderstand, h.Data})
		}
		for _, b := range msg.Bodies() {
			view.Bodies = append(view.Bodies, bodyView{b.TargetURI(), b.ResponseURI(), b.Data()})
		}
		return json.NewEncoder(os.Stdout).Encode(view)
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Append([]string{"Version", strconv.Itoa(int(msg.Version)), ""})
	for _, h := range msg.Headers() {
		table.Append([]string{
			"Header " + h.Name,
			"mustUnderstand=" + strconv.FormatBool(h.MustUnderstand),
			fmt.Sprintf("%v", h.Data),
		})
	}
	for _, b := range msg.Bodies() {
		table.Append([]string{
			"Body " + b.TargetURI(),
			b.ResponseURI(),
			fmt.Sprintf("%v", b.Data()),
		})
	}
	table.Render()
	return nil
}

func init() {
	inspectCmd.Flags().BoolVar(&objectsOnly, "objects", false, "Decode a run of objects at the configured encoding.")
	rootCmd.AddCommand(inspectCmd)
}
