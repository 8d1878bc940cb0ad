package config

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/writewithwrabit/journal/db"
)

const defaultPort = "8080"

type Config struct {
	Port string

	Database db.Options

	EncryptionKey           string
	FirebaseCredentialsFile string

	MailgunDomain string
	MailgunKey    string

	GroqAPIKey  string
	GroqBaseURL string
	GroqModel   string

	DefaultTimezone *time.Location
	CORSOrigins     []string
}

// Load reads .env files (if any) and then the environment.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil {
		log.Println("File .env not found!")
	}

	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", defaultPort)
	v.SetDefault("DB_DRIVER", "cloudsqlpostgres")
	v.SetDefault("MAILGUN_DOMAIN", "mg.writewithwrabit.com")
	v.SetDefault("GROQ_BASE_URL", "https://api.groq.com/openai/v1")
	v.SetDefault("GROQ_MODEL", "llama-3.1-8b-instant")
	v.SetDefault("DEFAULT_TIMEZONE", "UTC")
	v.SetDefault("CORS_ORIGINS", "*")

	return v
}

// FromViper builds a Config from already populated settings.
func FromViper(v *viper.Viper) (*Config, error) {
	loc, err := time.LoadLocation(v.GetString("DEFAULT_TIMEZONE"))
	if err != nil {
		return nil, err
	}

	host := v.GetString("CLOUDSQL_CONNECTION_NAME")
	driver := v.GetString("DB_DRIVER")
	if driver == "cloudsqlpostgres" && host != "" && !strings.Contains(host, ":") {
		// A bare host name means a local Postgres, not an instance connection name.
		driver = "postgres"
	}

	var origins []string
	for _, origin := range strings.Split(v.GetString("CORS_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}

	return &Config{
		Port: v.GetString("PORT"),
		Database: db.Options{
			Driver:   driver,
			Host:     host,
			User:     v.GetString("CLOUDSQL_USER"),
			Password: v.GetString("CLOUDSQL_PASSWORD"),
			Name:     v.GetString("CLOUDSQL_DATABASE_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		EncryptionKey:           v.GetString("ENCRYPTION_KEY"),
		FirebaseCredentialsFile: v.GetString("FIREBASE_CREDENTIALS_FILE"),
		MailgunDomain:           v.GetString("MAILGUN_DOMAIN"),
		MailgunKey:              v.GetString("MAILGUN_KEY"),
		GroqAPIKey:              v.GetString("GROQ_API_KEY"),
		GroqBaseURL:             v.GetString("GROQ_BASE_URL"),
		GroqModel:               v.GetString("GROQ_MODEL"),
		DefaultTimezone:         loc,
		CORSOrigins:             origins,
	}, nil
}

// Validate reports the settings the server cannot start without.
func (c *Config) Validate() error {
	var missing []string
	if c.Database.Host == "" {
		missing = append(missing, "CLOUDSQL_CONNECTION_NAME")
	}
	if c.Database.User == "" {
		missing = append(missing, "CLOUDSQL_USER")
	}
	if c.EncryptionKey == "" {
		missing = append(missing, "ENCRYPTION_KEY")
	}

	if len(missing) > 0 {
		return errors.New(strings.Join(missing, ", ") + " environment variable not set")
	}

	return nil
}
