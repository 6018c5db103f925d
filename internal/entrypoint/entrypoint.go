package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mrlokans/clippings/internal/ankiconnect"
	"github.com/mrlokans/clippings/internal/audit"
	"github.com/mrlokans/clippings/internal/config"
	"github.com/mrlokans/clippings/internal/database"
	auditrepo "github.com/mrlokans/clippings/internal/database/audit"
	http_controllers "github.com/mrlokans/clippings/internal/http"
	"github.com/mrlokans/clippings/internal/scheduler"
	"github.com/mrlokans/clippings/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// kill (no param) sends SIGTERM, kill -2 is SIGINT
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	if onShutdown != nil {
		onShutdown(ctx)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, markersPath, version string) {
	log.Printf("Starting clippings v%s", version)

	markers, err := config.LoadMarkers(markersPath)
	if err != nil {
		log.Fatalf("Failed to load markers: %v", err)
	}

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	auditService := audit.NewService(auditrepo.NewRepository(db.DB))

	// JSON snapshots of parsed uploads are opt-in
	var auditor *audit.Auditor
	if cfg.Audit.Dir != "" {
		auditor = audit.NewAuditor(cfg.Audit.Dir)
		log.Printf("Saving parse snapshots to %s", cfg.Audit.Dir)
	}

	cleanupScheduler := scheduler.NewAuditCleanupScheduler(
		auditService,
		auditService,
		cfg.Audit.CleanupSchedule,
		cfg.Audit.RetentionDays,
	)
	bgCtx, bgCancel := context.WithCancel(context.Background())
	if err := cleanupScheduler.Start(bgCtx); err != nil {
		log.Printf("WARNING: audit cleanup disabled: %v", err)
	}

	// Task queue for snapshots and on-demand maintenance
	var taskClient *tasks.Client
	var taskQueue http_controllers.TaskQueue
	if cfg.Tasks.Enabled {
		taskClient, err = tasks.NewClient(cfg.Database.Path, tasks.Config{
			Workers:         cfg.Tasks.Workers,
			ReleaseAfter:    cfg.Tasks.ReleaseAfter,
			CleanupInterval: cfg.Tasks.CleanupInterval,
		})
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		taskClient.Register(tasks.NewCleanupAuditEventsQueue(auditService))
		if auditor != nil {
			taskClient.Register(tasks.NewSaveSnapshotQueue(auditor))
		}
		go taskClient.Start(bgCtx)
		taskQueue = taskClient
	}

	ankiClient := ankiconnect.NewClient(cfg.AnkiConnect)
	log.Printf("AnkiConnect endpoint: %s (deck %q, note type %q)", cfg.AnkiConnect.URL, cfg.AnkiConnect.DeckName, cfg.AnkiConnect.ModelName)

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Markers:      markers,
		Database:     db,
		AuditService: auditService,
		Auditor:      auditor,
		AuditCleanup: cleanupScheduler,
		AnkiClient:   ankiClient,
		TaskQueue:    taskQueue,
		Version:      version,

		AuditRetentionDays: cfg.Audit.RetentionDays,
	})

	onShutdown := func(ctx context.Context) {
		if taskClient != nil {
			taskClient.Stop(ctx)
		}
		cleanupScheduler.Stop()
		bgCancel()
		auditService.Wait()
	}

	Serve(router, cfg, onShutdown)
}
