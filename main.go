// RecipeBox is a multi-user recipe catalog service. Accounts register with an
// email address, exchange credentials for an opaque token, and manage their
// own tags, ingredients, and recipes over a JSON API.
//
// @title RecipeBox API
// @version 1.0
// @description Multi-user recipe catalog with token authentication.
// @contact.name API Support
// @license.name MIT
// @license.url https://opensource.org/licenses/MIT
// @BasePath /
// @securityDefinitions.apikey TokenAuth
// @in header
// @name Authorization
// @description Type 'Token YOUR_TOKEN' to authorize
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/user/recipebox-go/apperror"
	"github.com/user/recipebox-go/auth"
	"github.com/user/recipebox-go/config"
	"github.com/user/recipebox-go/db"
	_ "github.com/user/recipebox-go/docs" // generated Swagger spec
	"github.com/user/recipebox-go/httpx"
	"github.com/user/recipebox-go/i18n"
	"github.com/user/recipebox-go/logging"
	"github.com/user/recipebox-go/recipes"
	"github.com/user/recipebox-go/users"
)

func main() {
	createSuperuser := flag.Bool("create-superuser", false, "create a superuser from the EMAIL and PASSWORD arguments, then exit")
	flag.Parse()

	ctx := context.Background()
	log := logging.NewDefault()

	if err := godotenv.Load(); err != nil {
		log.Warn(ctx, ".env file not found or unreadable", "error", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Error(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	if err := db.RunMigrations(cfg.Database); err != nil {
		log.Error(ctx, "failed to run migrations", "error", err)
		os.Exit(1)
	}

	pool, err := db.NewPool(cfg.Database)
	if err != nil {
		log.Error(ctx, "failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	catalog, err := i18n.NewCatalog(cfg.Locale.Dir, cfg.Locale.Locale)
	if err != nil {
		log.Error(ctx, "failed to load message catalog", "error", err)
		os.Exit(1)
	}

	userService := users.NewService(pool, catalog, log)

	if *createSuperuser {
		args := flag.Args()
		if len(args) != 2 {
			log.Error(ctx, "usage: recipebox -create-superuser EMAIL PASSWORD")
			os.Exit(2)
		}
		user, err := userService.CreateSuperuser(ctx, args[0], args[1])
		if err != nil {
			log.Error(ctx, "failed to create superuser", "error", err)
			os.Exit(1)
		}
		log.Info(ctx, "superuser created", "id", user.ID, "email", user.Email)
		return
	}

	authService := auth.NewService(pool, userService, catalog, log)
	recipeService := recipes.NewService(pool, catalog, log)

	userHandlers := users.NewHandlers(userService, catalog)
	authHandlers := auth.NewHandlers(authService)
	recipeHandlers := recipes.NewHandlers(recipeService, catalog)

	r := chi.NewRouter()

	// Chi requires all middleware to be registered before any routes.
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Panic recovery that reports through the shared error envelope.
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
			defer func() {
				if rvr := recover(); rvr != nil {
					log.Error(req.Context(), "panic in handler", "panic", rvr)
					httpx.WriteError(ww, apperror.NewInternalError("internal server error", nil))
				}
			}()
			next.ServeHTTP(ww, req)
		})
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Route("/api/user", func(r chi.Router) {
		r.Post("/create", userHandlers.HandleCreateUser())
		r.Post("/token", authHandlers.HandleCreateToken())

		r.Group(func(r chi.Router) {
			r.Use(auth.TokenMiddleware(authService, catalog))
			r.Get("/profile", userHandlers.HandleGetProfile())
			r.Patch("/profile", userHandlers.HandleUpdateProfile())
		})
	})

	r.Route("/api/recipe", func(r chi.Router) {
		r.Use(auth.TokenMiddleware(authService, catalog))
		recipeHandlers.RegisterRoutes(r)
	})

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info(ctx, "server starting", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error(ctx, "server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info(ctx, "server shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", "error", err)
		os.Exit(1)
	}
	log.Info(ctx, "server stopped")
}
