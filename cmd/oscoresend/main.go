// Command oscoresend bootstraps an OSCORE security context from a
// descriptor file and protects CoAP messages through it (RFC 8613,
// coap2oscore direction only).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "oscoresend",
	Short: "Protect CoAP messages with an OSCORE security context",
	Long: `oscoresend bootstraps an OSCORE security context from a descriptor
file (master secret plus the context's fixed parameters) and converts
plaintext CoAP datagrams into their OSCORE-protected form.

Examples:
  # Protect one CoAP datagram read from stdin
  oscoresend encode --context ctx.yaml < request.coap > request.oscore

  # Serve a read-only introspection endpoint over the loaded contexts
  oscoresend status --context ctx.yaml --listen :8090`,
	Version: fmt.Sprintf("%s (commit: %s)", version, commit),
}

func init() {
	rootCmd.AddCommand(bootstrapCmd)
	rootCmd.AddCommand(encodeCmd)
	rootCmd.AddCommand(statusCmd)
}
