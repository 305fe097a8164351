// internal/platform/di/container.go
package di

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"strings"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	_ "github.com/lib/pq"

	storefront "greencart/internal/adapters/in/http/storefront"
	storefrontHandler "greencart/internal/adapters/in/http/storefront/handler"
	"greencart/internal/adapters/in/http/middleware"
	outdb "greencart/internal/adapters/out/db"
	outhttp "greencart/internal/adapters/out/http"
	"greencart/internal/adapters/out/kv"
	"greencart/internal/application/store"
	"greencart/internal/application/usecase"
	"greencart/internal/infra/config"
	firestoreinfra "greencart/internal/infra/firestore"
	"greencart/internal/infra/kvstore"
)

// Container wires the storefront service: the persistence provider, the
// stock availability collaborator, Firebase auth, and the session manager.
type Container struct {
	Config *config.Config

	Firestore    *firestoreinfra.ClientWrapper
	Bolt         *kvstore.DB
	SQLDB        *sql.DB
	FirebaseAuth *fbauth.Client

	Provider store.Provider
	Stock    usecase.AvailabilityChecker
	Sessions *usecase.SessionManager
}

// NewContainer builds the container from cfg. Optional collaborators
// (Firebase auth, stock) degrade gracefully; the persistence provider
// always resolves, falling back to the in-memory store with a warning.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("di: nil config")
	}

	c := &Container{Config: cfg}

	// persistence provider
	switch strings.ToLower(strings.TrimSpace(cfg.StoreBackend)) {
	case "firestore":
		fs, err := firestoreinfra.NewClient(ctx, cfg.FirestoreProjectID, cfg.FirestoreCredentialsFile)
		if err != nil {
			log.Printf("[di] WARN: firestore init failed: %v (falling back to memory store)", err)
			c.Provider = kv.NewMemoryProvider()
		} else {
			c.Firestore = fs
			c.Provider = kv.NewFirestoreProvider(fs.Client)
		}

	case "memory":
		c.Provider = kv.NewMemoryProvider()

	default: // bolt
		db, err := kvstore.Open(cfg.BoltPath)
		if err != nil {
			log.Printf("[di] WARN: bolt open failed path=%s: %v (falling back to memory store)", cfg.BoltPath, err)
			c.Provider = kv.NewMemoryProvider()
		} else {
			c.Bolt = db
			c.Provider = kv.NewBoltProvider(db)
		}
	}

	// firebase auth (optional; guests still work without it)
	if strings.TrimSpace(cfg.FirebaseProjectID) != "" {
		app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.FirebaseProjectID})
		if err != nil {
			log.Printf("[di] WARN: firebase app init failed: %v (bearer logins disabled)", err)
		} else if auth, err := app.Auth(ctx); err != nil {
			log.Printf("[di] WARN: firebase auth init failed: %v (bearer logins disabled)", err)
		} else {
			c.FirebaseAuth = auth
		}
	}

	// stock availability: postgres wins, then the HTTP catalog, else nil
	// (mutations fail open).
	switch {
	case strings.TrimSpace(cfg.PostgresDSN) != "":
		db, err := sql.Open("postgres", cfg.PostgresDSN)
		if err != nil {
			log.Printf("[di] WARN: postgres open failed: %v (stock gate fails open)", err)
		} else {
			c.SQLDB = db
			c.Stock = &outdb.StockAvailabilityPG{DB: db}
		}
	case strings.TrimSpace(cfg.StockAPIBaseURL) != "":
		c.Stock = outhttp.NewStockClient(cfg.StockAPIBaseURL, cfg.StockAPIKey)
	default:
		log.Printf("[di] no stock collaborator configured (stock gate fails open)")
	}

	c.Sessions = usecase.NewSessionManager(c.Provider, store.LogMonitor{}, c.Stock)
	return c, nil
}

// BuildHandler assembles the HTTP surface: storefront routes wrapped in
// session auth, panic recovery and CORS, plus /healthz.
func (c *Container) BuildHandler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	storefront.Register(mux, storefront.Deps{
		Session:  storefrontHandler.NewSessionHandler(c.Sessions),
		Cart:     storefrontHandler.NewCartHandler(c.Sessions),
		Wishlist: storefrontHandler.NewWishlistHandler(c.Sessions),
	})

	auth := &middleware.SessionAuth{FirebaseAuth: c.FirebaseAuth}
	var h http.Handler = auth.Handler(mux)
	h = middleware.Recover(h)
	h = middleware.CORS(c.Config.CORSOrigin, h)
	return h
}

// Close releases the container's resources.
func (c *Container) Close() error {
	if c == nil {
		return nil
	}

	var firstErr error
	if c.SQLDB != nil {
		if err := c.SQLDB.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if c.Bolt != nil {
		if err := c.Bolt.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if c.Firestore != nil {
		if err := c.Firestore.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
