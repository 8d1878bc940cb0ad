package cmd

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/writewithwrabit/journal/cryptopasta"
)

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Print a random value for ENCRYPTION_KEY",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		key := cryptopasta.NewEncryptionKey()
		// 16 random bytes as 32 hex characters fill the whole AES-256 key.
		fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(key[:16]))
	},
}
