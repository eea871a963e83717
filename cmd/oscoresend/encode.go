package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/iotsec/oscore-sender/pkg/oscore"
)

var encodeContextPath string

var encodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Convert a CoAP datagram on stdin into its OSCORE-protected form",
	Long: `encode reads one raw CoAP datagram from stdin, runs it through the
coap2oscore pipeline against the context named by --context, and writes the
resulting OSCORE datagram to stdout.

The context is held locked for the whole call, and its sequence number is
burned whether or not the overall process later fails to send the result —
this command is meant for one-shot piping, not a long-lived server; embed
pkg/oscore directly for that.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cipher, err := loadContext(encodeContextPath)
		if err != nil {
			return err
		}

		input, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}

		ctx.Lock()
		out, err := oscore.CoapToOscore(input, ctx, cipher)
		ctx.Unlock()
		if err != nil {
			return err
		}

		_, err = os.Stdout.Write(out)
		return err
	},
}

func init() {
	encodeCmd.Flags().StringVar(&encodeContextPath, "context", "", "path to the context descriptor YAML file")
	_ = encodeCmd.MarkFlagRequired("context")
}
