package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/juju/clock"
	jujuerrors "github.com/juju/errors"
	"github.com/juju/lumberjack/v2"
	"github.com/junaidrashid-git/fishparque-api/backup"
	"github.com/junaidrashid-git/fishparque-api/catalog"
	"github.com/junaidrashid-git/fishparque-api/config"
	"github.com/junaidrashid-git/fishparque-api/middleware"
	"github.com/junaidrashid-git/fishparque-api/notify"
	"github.com/junaidrashid-git/fishparque-api/routes"
	"github.com/junaidrashid-git/fishparque-api/store"
	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:           "storefront",
		Short:         "Fish Parque storefront API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			setupLogging(cfg)
			return serve(cmd.Context(), cfg)
		},
	}

	root.AddCommand(&cobra.Command{
		Use:   "backup",
		Short: "Copy the data directory into BACKUP_DIR now",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.BackupDir == "" {
				return jujuerrors.NotValidf("empty BACKUP_DIR")
			}
			s, err := newBackupScheduler(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			dest, err := s.RunOnce()
			if err != nil {
				return err
			}
			log.Printf("✅ Data backed up to %s", dest)
			s.ShipOffsite(cmd.Context(), dest)
			s.Cleanup()
			return nil
		},
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		log.Fatalf("❌ %v", err)
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	log.Println("✅ Starting application...")

	cat := catalog.Default()
	if cfg.CatalogFile != "" {
		loaded, err := catalog.LoadFile(cfg.CatalogFile)
		if err != nil {
			return err
		}
		cat = loaded
		log.Printf("✅ Loaded catalog from %s", cfg.CatalogFile)
	}
	log.Printf("✅ Catalog: %s", strings.Join(cat.Keys(), ", "))

	st, err := store.New(cfg.DataDir)
	if err != nil {
		return err
	}
	log.Printf("✅ Data directory: %s", st.Dir())

	var notifier notify.Notifier
	if cfg.NotifyEndpoint != "" {
		notifier = notify.NewWebhook(cfg.NotifyEndpoint, cfg.NotifyTimeout)
	} else {
		log.Println("⚠️ FORMSPREE_ENDPOINT not set, notifications disabled")
	}
	dispatcher := notify.NewDispatcher(notifier, cfg.NotifyTimeout)

	if cfg.AdminKey == "" {
		log.Println("⚠️ ADMIN_KEY not set, admin endpoints will reject every request")
	}

	services := routes.NewServices(cfg, st, cat, dispatcher, clock.WallClock)

	// Gin setup
	r := gin.Default()

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", middleware.AdminKeyHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.SetupRoutes(r, services)

	if cfg.BackupDir != "" {
		scheduler, err := newBackupScheduler(ctx, cfg)
		if err != nil {
			return err
		}
		go scheduler.Run(ctx)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("🚀 Server running on port %s...", cfg.Port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return jujuerrors.Annotate(err, "failed to start server")
		}
	case <-ctx.Done():
		log.Println("⏳ Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("❌ Shutdown error: %v", err)
		}
	}

	services.Hub.Close()
	dispatcher.Wait()
	log.Println("✅ Server stopped")
	return nil
}

// setupLogging mirrors the standard logger and gin's request log into a rotating file.
func setupLogging(cfg *config.Config) {
	if cfg.LogFile == "" {
		return
	}
	w := io.MultiWriter(os.Stderr, &lumberjack.Logger{
		Filename:   cfg.LogFile,
		MaxSize:    cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		Compress:   true,
	})
	log.SetOutput(w)
	gin.DefaultWriter = w
	gin.DefaultErrorWriter = w
	log.Printf("✅ Logging to %s", cfg.LogFile)
}

func newBackupScheduler(ctx context.Context, cfg *config.Config) (*backup.Scheduler, error) {
	s := &backup.Scheduler{
		SrcDir:    cfg.DataDir,
		BackupDir: cfg.BackupDir,
		Retention: cfg.BackupRetention,
		Hour:      cfg.BackupHour,
		Clock:     clock.WallClock,
	}
	if cfg.BackupS3Bucket != "" {
		offsite, err := backup.NewS3Offsite(ctx, cfg.AWSRegion, cfg.BackupS3Bucket, cfg.BackupS3Prefix)
		if err != nil {
			return nil, err
		}
		s.Offsite = offsite
		log.Printf("✅ Offsite backups go to s3://%s/%s", cfg.BackupS3Bucket, cfg.BackupS3Prefix)
	}
	return s, nil
}
