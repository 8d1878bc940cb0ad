package cmd

import (
	"context"
	"encoding/json"
	"io"

	firebaseAuth "firebase.google.com/go/auth"
	"github.com/spf13/cobra"

	"github.com/writewithwrabit/journal/auth"
	"github.com/writewithwrabit/journal/config"
	wrabitDB "github.com/writewithwrabit/journal/db"
	"github.com/writewithwrabit/journal/resolvers"
)

var (
	statsUser string
	statsTZ   string
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print a user's journaling statistics as JSON",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().StringVar(&statsUser, "user", "", "Firebase user ID")
	statsCmd.Flags().StringVar(&statsTZ, "tz", "", "IANA time zone (default DEFAULT_TIMEZONE)")
	statsCmd.MarkFlagRequired("user")
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(envFiles...)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	wrabitDB.Verbose = false

	ctx := context.Background()
	db, err := wrabitDB.Open(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	r := resolvers.New(db, resolvers.Options{
		EncryptionKey:   cfg.EncryptionKey,
		DefaultTimezone: cfg.DefaultTimezone,
	})

	return writeStats(ctx, cmd.OutOrStdout(), r.Query(), statsUser, statsTZ)
}

// writeStats prints user's statistics as indented JSON. An empty tz means
// the default time zone.
func writeStats(ctx context.Context, out io.Writer, q resolvers.QueryResolver, user, tz string) error {
	ctx = auth.WithToken(ctx, &firebaseAuth.Token{Subject: user})

	var zone *string
	if tz != "" {
		zone = &tz
	}

	s, err := q.Stats(ctx, zone)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}
