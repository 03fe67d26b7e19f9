package di

import (
	"context"
	"fmt"
	"log"

	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"

	httpin "quickcart/internal/adapters/in/http"
	"quickcart/internal/adapters/in/http/middleware"
	dbadapter "quickcart/internal/adapters/out/db"
	fsadapter "quickcart/internal/adapters/out/firestore"
	"quickcart/internal/adapters/out/gcs"
	"quickcart/internal/adapters/out/localstate"
	"quickcart/internal/adapters/out/mail"
	"quickcart/internal/application/notify"
	"quickcart/internal/application/usecase"
	"quickcart/internal/infra/config"
	"quickcart/internal/infra/database"
	firestoreinfra "quickcart/internal/infra/firestore"
	"quickcart/internal/infra/secrets"
)

// Container is the bundle of dependencies main.go needs. Everything is wired
// once here; no package-level singletons.
type Container struct {
	Config *config.Config

	Catalog  *usecase.CatalogUsecase
	Cart     *usecase.CartUsecase
	Wishlist *usecase.WishlistUsecase
	Orders   *usecase.OrderUsecase

	FirebaseAuth *middleware.FirebaseAuthClient

	fs      *firestoreinfra.ClientWrapper
	gcs     *storage.Client
	db      *database.DB
	cleanup []func()
}

// NewContainer builds every adapter and usecase. Optional pieces (GCS signing,
// SendGrid, the Postgres archive) degrade to nil with a log line instead of
// failing startup; Firestore and Firebase Auth are required.
func NewContainer(ctx context.Context) (*Container, error) {
	cfg := config.Load()
	c := &Container{Config: cfg}

	// Firestore: the hosted record store everything remote runs on.
	fsw, err := firestoreinfra.NewClient(ctx, cfg.FirestoreProjectID, cfg.FirestoreCredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("init firestore: %w", err)
	}
	c.fs = fsw
	store := &fsadapter.RecordStore{Client: fsw.Client}

	// Firebase Auth guards the wishlist and order routes.
	fbApp, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.FirebaseProjectID}, firebaseOpts(cfg)...)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("init firebase app: %w", err)
	}
	authClient, err := fbApp.Auth(ctx)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("init firebase auth: %w", err)
	}
	c.FirebaseAuth = authClient

	notifier := notify.LogNotifier{}

	// Image references resolve through GCS when a bucket is configured.
	var images usecase.ImageResolver
	if cfg.GCSBucket != "" {
		gcsClient, err := storage.NewClient(ctx)
		if err != nil {
			log.Printf("[di] WARN: gcs client init failed, image refs pass through: %v", err)
		} else {
			c.gcs = gcsClient
			images = gcs.NewImageResolver(gcsClient, cfg.GCSBucket)
		}
	}

	c.Catalog = usecase.NewCatalogUsecaseWithImages(store, images)

	slot := localstate.NewSlot(cfg.CartStatePath)
	c.Cart = usecase.NewCartUsecase(c.Catalog, slot)

	c.Wishlist = usecase.NewWishlistUsecase(store, c.Catalog, notifier)

	c.Orders = usecase.NewOrderUsecase(store, notifier)
	if mailer := buildMailer(ctx, cfg, c); mailer != nil {
		c.Orders.WithMailer(mailer)
	}
	if cfg.PostgresDSN != "" {
		conn, err := database.NewConnection(cfg.PostgresDSN)
		if err != nil {
			log.Printf("[di] WARN: order archive disabled: %v", err)
		} else {
			c.db = conn
			archive := dbadapter.NewOrderArchivePG(conn.Client)
			if err := archive.Init(ctx); err != nil {
				log.Printf("[di] WARN: order archive schema init failed: %v", err)
			} else {
				c.Orders.WithArchiver(archive)
			}
		}
	}

	return c, nil
}

// RouterDeps exposes the wired usecases to the HTTP surface.
func (c *Container) RouterDeps() httpin.RouterDeps {
	return httpin.RouterDeps{
		Catalog:      c.Catalog,
		Cart:         c.Cart,
		Wishlist:     c.Wishlist,
		Orders:       c.Orders,
		FirebaseAuth: c.FirebaseAuth,
	}
}

// Close releases external connections. Safe on a partially built container.
func (c *Container) Close() {
	if c == nil {
		return
	}
	for _, fn := range c.cleanup {
		fn()
	}
	if c.db != nil {
		_ = c.db.Close()
	}
	if c.gcs != nil {
		_ = c.gcs.Close()
	}
	if c.fs != nil {
		_ = c.fs.Close()
	}
}

// buildMailer resolves the SendGrid key from the environment first, then from
// Secret Manager. No key means order confirmations are skipped.
func buildMailer(ctx context.Context, cfg *config.Config, c *Container) usecase.Mailer {
	key := cfg.SendGridAPIKey
	if key == "" && cfg.SendGridSecretName != "" {
		reader, err := secrets.NewReader(ctx, cfg.FirestoreProjectID)
		if err != nil {
			log.Printf("[di] WARN: secret manager init failed, mail disabled: %v", err)
			return nil
		}
		c.cleanup = append(c.cleanup, func() { _ = reader.Close() })
		key, err = reader.Read(ctx, cfg.SendGridSecretName)
		if err != nil {
			log.Printf("[di] WARN: sendgrid key read failed, mail disabled: %v", err)
			return nil
		}
	}
	if key == "" {
		log.Printf("[di] sendgrid key absent, mail disabled")
		return nil
	}
	return mail.NewSendGridClient(key, cfg.MailFrom)
}

func firebaseOpts(cfg *config.Config) []option.ClientOption {
	if cfg.FirestoreCredentialsFile != "" {
		return []option.ClientOption{option.WithCredentialsFile(cfg.FirestoreCredentialsFile)}
	}
	return nil
}
