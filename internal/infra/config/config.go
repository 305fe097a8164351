// internal/infra/config/config.go
package config

import "os"

// Config holds the environment configuration for the storefront service.
type Config struct {
	Port       string
	CORSOrigin string

	// Store backend selection: "bolt" (default), "firestore", "memory".
	StoreBackend string
	BoltPath     string

	// GCP / Firestore
	FirestoreProjectID       string
	FirestoreCredentialsFile string
	GCPCreds                 string
	FirebaseProjectID        string

	// Stock availability collaborator. Postgres wins when both are set.
	PostgresDSN       string
	PostgresDSNSecret string // Secret Manager resource name, optional
	StockAPIBaseURL   string
	StockAPIKey       string
	StockAPIKeySecret string // Secret Manager resource name, optional
}

// Load reads the environment and returns the Config.
func Load() *Config {
	defaultProject := getenvDefault("GCP_PROJECT_ID", "")

	return &Config{
		Port:       getenvDefault("PORT", "8080"),
		CORSOrigin: os.Getenv("CORS_ORIGIN"),

		StoreBackend: getenvDefault("STORE_BACKEND", "bolt"),
		BoltPath:     getenvDefault("BOLT_PATH", "greencart.db"),

		FirestoreProjectID:       getenvDefault("FIRESTORE_PROJECT_ID", defaultProject),
		FirestoreCredentialsFile: os.Getenv("FIRESTORE_CREDENTIALS_FILE"),
		GCPCreds:                 os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		FirebaseProjectID:        getenvDefault("FIREBASE_PROJECT_ID", defaultProject),

		PostgresDSN:       os.Getenv("POSTGRES_DSN"),
		PostgresDSNSecret: os.Getenv("POSTGRES_DSN_SECRET"),
		StockAPIBaseURL:   os.Getenv("STOCK_API_BASE_URL"),
		StockAPIKey:       os.Getenv("STOCK_API_KEY"),
		StockAPIKeySecret: os.Getenv("STOCK_API_KEY_SECRET"),
	}
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
