package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"row-merger/core/loader"
	"row-merger/core/logger"
	"row-merger/core/middleware/auth"
	"row-merger/core/middleware/rayid"
	"row-merger/core/storage"
	"row-merger/feature/merge"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "row-merger/docs/swagger"
)

// shutdownTimeout bounds how long in-flight requests may run after a signal.
const shutdownTimeout = 10 * time.Second

// @title Row Merger API
// @version 1.0
// @description API for merging tabular datasets with fuzzy row matching.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the merge API server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		// 1. Configuration, logger and optional backends
		rt, err := newRuntime(ctx)
		if err != nil {
			log.Fatalf("Failed to start: %v", err)
		}
		defer rt.close()
		zap.ReplaceGlobals(rt.log)
		logg := rt.log

		// 2. Make sure the dataset bucket exists
		if err := storage.EnsureBucket(ctx, rt.store, rt.cfg.Storage.Bucket, rt.cfg.Storage.Region); err != nil {
			logg.Warn("Dataset bucket unavailable; s3:// references will fail", zap.Error(err))
		}

		// 3. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
			BodyLimit:             rt.cfg.Server.BodyLimitBytes(),
			JSONEncoder:           json.Marshal,
			JSONDecoder:           json.Unmarshal,
		})

		// 4. Initialize Feature Loader
		mgr := loader.NewManager()
		resolver := rt.resolver(rt.cfg.Dataset.ReadOptions(), false)
		resolver.TablePrefix = rt.cfg.Dataset.TablePrefix
		svc := rt.service(resolver)
		mgr.Register(merge.NewFeature(svc))

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Logging Middleware (Zap + RayID)
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			start := time.Now()
			err := c.Next()
			l.Info("Request",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
				zap.Int("status", c.Response().StatusCode()),
				zap.Duration("latency", time.Since(start)),
			)
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// 3. Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		// 4. Health (Public)
		app.Get("/health", func(c *fiber.Ctx) error {
			hits, misses := svc.CacheStats()
			return c.JSON(fiber.Map{
				"status":       "ok",
				"history":      rt.history != nil,
				"cache_hits":   hits,
				"cache_misses": misses,
			})
		})

		// 5. Auth (Protect API)
		app.Use(auth.New(auth.Config{ApiKey: rt.cfg.Server.ApiKey}))
		if rt.cfg.Server.ApiKey == "" {
			logg.Warn("SERVER_API_KEY is empty; the API is unauthenticated")
		}

		// 6. Load Features
		loaded, err := mgr.LoadAll(app)
		if err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}
		logg.Info("Features loaded", zap.Strings("features", loaded))

		// 7. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", rt.cfg.Server.Port))
			if err := app.Listen(rt.cfg.Server.Address()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 8. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			logg.Warn("Shutdown did not complete cleanly", zap.Error(err))
		}
	},
}

func init() {
	RootCmd.AddCommand(serveCmd)
}
