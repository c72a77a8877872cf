package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"strings"
	"syscall"

	_ "readscape/docs" // swagger docs

	"github.com/labstack/echo/v4"

	"readscape/internal/auth"
	"readscape/internal/cache"
	"readscape/internal/config"
	"readscape/internal/db"
	"readscape/internal/handler"
	"readscape/internal/repository"
	"readscape/internal/router"
	"readscape/internal/service"
	"readscape/internal/storage"
)

// @title Readscape API
// @version 1.0
// @description Reading platform API: accounts, book catalog, saved-book libraries.
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the token returned by /login.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	gormDB, err := db.Open(cfg)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}
	defer db.Close(gormDB)

	if cfg.ResetDB {
		log.Println("RESET_DB=true detected, dropping all tables...")
	}
	if err := db.Migrate(gormDB, cfg.ResetDB); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	var cacheClient *cache.Client
	if cfg.CacheEnabled {
		cacheClient = cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		defer cacheClient.Close()
		if err := cacheClient.Ping(context.Background()); err != nil {
			log.Printf("Warning: redis unavailable at %s, continuing without cache: %v", cfg.RedisAddr, err)
		}
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB, cfg.DBQueryTimeout)
	bookRepo := repository.NewBookRepository(gormDB, cfg.DBQueryTimeout)
	savedRepo := repository.NewSavedBookRepository(gormDB, cfg.DBQueryTimeout)

	content := storage.NewOSContentStore(cfg.BooksStorage, cfg.CoversStorage)

	// Initialize services
	identityService := service.NewIdentityService(userRepo, newHasher(cfg), cacheClient)
	catalogService := service.NewCatalogService(bookRepo, content, cacheClient)
	libraryService := service.NewLibraryService(bookRepo, savedRepo)

	// Initialize auth components
	var jwtService *auth.JWTService
	if cfg.AuthScheme == config.AuthSchemeJWT {
		jwtService = auth.NewJWTService(cfg.JWTSecret, cfg.JWTTTL)
	}
	authenticator, err := auth.NewAuthenticator(
		auth.Scheme(cfg.AuthScheme),
		identityService,
		jwtService,
		auth.NewTokenStore(cacheClient),
	)
	if err != nil {
		log.Fatalf("auth init: %v", err)
	}

	e := echo.New()
	e.HideBanner = true

	router.Register(
		e,
		cfg,
		authenticator,
		handler.NewAuthHandler(identityService, authenticator),
		handler.NewBookHandler(catalogService),
		handler.NewLibraryHandler(libraryService),
		handler.NewProfileHandler(identityService),
	)

	log.Printf("Swagger documentation available at: %s", swaggerURL(cfg))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := e.Start(cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server start: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
}

func newHasher(cfg *config.Config) service.CredentialHasher {
	if cfg.CredentialScheme == config.CredentialPlain {
		return auth.PlainHasher{}
	}
	return auth.BcryptHasher{}
}

func swaggerURL(cfg *config.Config) string {
	host := cfg.SwaggerHost
	if host == "" {
		host = "localhost" + cfg.Addr()
	}
	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		host = "http://" + host
	}
	return host + "/swagger/index.html"
}
