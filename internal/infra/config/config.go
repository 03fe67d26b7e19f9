package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds the process-wide environment settings.
type Config struct {
	Port          string
	AllowedOrigin string

	FirestoreProjectID       string
	FirestoreCredentialsFile string
	FirebaseProjectID        string

	// CartStatePath is where the device-scoped cart is persisted.
	CartStatePath string

	// GCSBucket backs image reference resolution; empty disables signing.
	GCSBucket string

	// SendGrid: the key can come straight from the environment or, when only
	// the secret name is set, from Secret Manager at startup.
	SendGridAPIKey     string
	SendGridSecretName string
	MailFrom           string

	// PostgresDSN enables the order archive mirror; empty disables it.
	PostgresDSN string
}

// Load reads .env (when present) and the environment, and returns the config.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[config] .env not loaded: %v", err)
	}

	defaultProject := getenvDefault("GCP_PROJECT_ID", "quickcart-dev")

	return &Config{
		Port:          getenvDefault("PORT", "8080"),
		AllowedOrigin: getenvDefault("ALLOWED_ORIGIN", "*"),

		FirestoreProjectID:       getenvDefault("FIRESTORE_PROJECT_ID", defaultProject),
		FirestoreCredentialsFile: os.Getenv("FIRESTORE_CREDENTIALS_FILE"),
		FirebaseProjectID:        getenvDefault("FIREBASE_PROJECT_ID", defaultProject),

		CartStatePath: getenvDefault("CART_STATE_PATH", "data/cart.json"),

		GCSBucket: os.Getenv("GCS_BUCKET"),

		SendGridAPIKey:     os.Getenv("SENDGRID_API_KEY"),
		SendGridSecretName: os.Getenv("SENDGRID_SECRET_NAME"),
		MailFrom:           getenvDefault("MAIL_FROM", "orders@quickcart.example"),

		PostgresDSN: os.Getenv("POSTGRES_DSN"),
	}
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
