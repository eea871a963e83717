package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var bootstrapContextPath string

var bootstrapCmd = &cobra.Command{
	Use:   "bootstrap",
	Short: "Derive and validate a security context from a descriptor",
	Long: `bootstrap loads a context descriptor, resolves its secret material
(inline or via PKCS#11), and runs the full RFC 8613 §3.2 derivation — without
encoding anything — so a deployment can be checked before it goes live.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cipher, err := loadContext(bootstrapContextPath)
		if err != nil {
			return err
		}
		fmt.Printf("sender_id=%x key_len=%d nonce_len=%d tag_len=%d common_iv_len=%d\n",
			ctx.SC.ID, len(ctx.SC.Key), cipher.NonceSize(), cipher.TagSize(), len(ctx.CC.CommonIV))
		return nil
	},
}

func init() {
	bootstrapCmd.Flags().StringVar(&bootstrapContextPath, "context", "", "path to the context descriptor YAML file")
	_ = bootstrapCmd.MarkFlagRequired("context")
}
