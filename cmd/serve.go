package cmd

import (
	"context"
	"log"
	"net/http"

	firebase "firebase.google.com/go"
	"github.com/spf13/cobra"
	"google.golang.org/api/option"

	"github.com/writewithwrabit/journal/ai"
	"github.com/writewithwrabit/journal/auth"
	"github.com/writewithwrabit/journal/config"
	wrabitDB "github.com/writewithwrabit/journal/db"
	"github.com/writewithwrabit/journal/mail"
	"github.com/writewithwrabit/journal/resolvers"
	"github.com/writewithwrabit/journal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load(envFiles...)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	db, err := wrabitDB.Open(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := wrabitDB.Migrate(ctx, db); err != nil {
		return err
	}

	verifier, err := newVerifier(ctx, cfg.FirebaseCredentialsFile)
	if err != nil {
		return err
	}

	opts := resolvers.Options{
		EncryptionKey:   cfg.EncryptionKey,
		DefaultTimezone: cfg.DefaultTimezone,
	}

	if cfg.MailgunKey != "" {
		opts.Mailer = mail.NewMailgun(cfg.MailgunDomain, cfg.MailgunKey)
	} else {
		log.Println("MAILGUN_KEY not set, welcome mails are disabled")
	}

	if cfg.GroqAPIKey != "" {
		opts.Assistant = ai.NewClient(cfg.GroqAPIKey, cfg.GroqBaseURL, cfg.GroqModel)
	} else {
		log.Println("GROQ_API_KEY not set, AI features are disabled")
	}

	router := server.NewRouter(resolvers.New(db, opts), verifier, cfg.CORSOrigins)

	log.Printf("listening on http://localhost:%s/", cfg.Port)
	return http.ListenAndServe(":"+cfg.Port, router)
}

func newVerifier(ctx context.Context, credentialsFile string) (auth.TokenVerifier, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, err
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, err
	}

	return client, nil
}
