package main

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/iotsec/oscore-sender/internal/status"
)

var (
	statusContextPath string
	statusListenAddr  string
	statusContextName string
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Serve a read-only introspection endpoint over one context",
	Long: `status loads the context named by --context and serves it over
GET /contexts and GET /contexts/{name}, exposing only its sequence number
and reboot/ECHO recovery state — never key material.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, _, err := loadContext(statusContextPath)
		if err != nil {
			return err
		}

		reg := status.NewRegistry()
		reg.Register(statusContextName, ctx)

		fmt.Printf("serving context %q on %s\n", statusContextName, statusListenAddr)
		return http.ListenAndServe(statusListenAddr, status.New(reg))
	},
}

func init() {
	statusCmd.Flags().StringVar(&statusContextPath, "context", "", "path to the context descriptor YAML file")
	statusCmd.Flags().StringVar(&statusListenAddr, "listen", ":8090", "address to serve the introspection endpoint on")
	statusCmd.Flags().StringVar(&statusContextName, "name", "default", "name the context is exposed under")
	_ = statusCmd.MarkFlagRequired("context")
}
