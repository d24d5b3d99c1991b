package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"object-storage/core/config"
	"object-storage/core/loader"
	"object-storage/core/logger"
	"object-storage/core/metrics"
	"object-storage/core/middleware/auth"
	"object-storage/core/middleware/rayid"
	"object-storage/feature/bucketfs"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "object-storage/docs/swagger"
)

// @title Object Storage API
// @version 1.0
// @description Filesystem verbs over an S3-compatible bucket.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the object storage HTTP server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		metrics.Init()

		// 3. Open the store
		store, err := bucketfs.Open(cfg.Storage, logg, bucketfs.WithTransferConfig(cfg.Transfer))
		if err != nil {
			logg.Fatal("Failed to open store", zap.Error(err))
		}
		defer store.Close()

		ok, err := store.BucketExists(cmd.Context())
		switch {
		case err != nil:
			logg.Warn("Bucket check failed", zap.String("bucket", store.Bucket()), zap.Error(err))
		case !ok:
			logg.Warn("Bucket does not exist", zap.String("bucket", store.Bucket()))
		}

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			BodyLimit:             cfg.Server.BodyLimit(),
		})

		// 4. Initialize Feature Loader
		mgr := loader.NewManager()
		mgr.Register(bucketfs.NewFeature(store))

		// RayID must be first to trace everything
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

		// 5. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 6. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port), zap.String("bucket", store.Bucket()))
			if err := app.Listen(cfg.Server.Address()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 7. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
