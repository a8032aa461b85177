package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/common/webapi"
	"go.uber.org/zap"

	"github.com/hdnotes/hdnotes/internal/config"
	"github.com/hdnotes/hdnotes/internal/db"
	"github.com/hdnotes/hdnotes/internal/handler"
	"github.com/hdnotes/hdnotes/internal/job"
	"github.com/hdnotes/hdnotes/internal/middleware"
	"github.com/hdnotes/hdnotes/internal/repo"
	"github.com/hdnotes/hdnotes/internal/schedule"
	"github.com/hdnotes/hdnotes/internal/service"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "hdnotes",
		Short: "hdnotes backend server",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run hdnotes server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				return fmt.Errorf("--config is required")
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			logger.Init(
				cfg.LogConfig.File,
				cfg.LogConfig.Level,
				int(cfg.LogConfig.FileCount),
				int(cfg.LogConfig.FileSize),
				int(cfg.LogConfig.KeepDays),
				cfg.LogConfig.Console,
			)
			logutil.GetLogger(context.Background()).Info("config loaded", zap.String("config", configPath))

			conn, err := db.Open(cfg.Database)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			if err := db.ApplyMigrations(conn); err != nil {
				return fmt.Errorf("migrations: %w", err)
			}
			return runServer(cfg, conn)
		},
	}

	runCmd.Flags().StringVar(&configPath, "config", "", "path to config.json")
	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		logutil.GetLogger(context.Background()).Fatal("startup error", zap.Error(err))
	}
}

func runServer(cfg *config.Config, conn *sql.DB) error {
	logutil.GetLogger(context.Background()).Info(
		"starting server",
		zap.Int("port", cfg.Port),
		zap.Int("jwt_ttl_days", cfg.JWTTTLDays),
	)

	userRepo := repo.NewUserRepo(conn)
	noteRepo := repo.NewNoteRepo(conn)

	mailSender := service.NewEmailSender(cfg.Mail)
	otpService := service.NewOTPService(userRepo, mailSender)
	jwtTTL := 24 * time.Hour * time.Duration(cfg.JWTTTLDays)
	authService := service.NewAuthService(userRepo, otpService, []byte(cfg.JWTSecret), jwtTTL)
	noteService := service.NewNoteService(noteRepo)
	exportService := service.NewExportService(noteRepo)

	deps := handler.RouterDeps{
		Auth:      handler.NewAuthHandler(authService),
		Notes:     handler.NewNoteHandler(noteService, exportService),
		Users:     userRepo,
		JWTSecret: []byte(cfg.JWTSecret),
	}

	engine, err := webapi.NewEngine(
		"/api",
		fmt.Sprintf("0.0.0.0:%d", cfg.Port),
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.RequestID(),
			middleware.CORS(cfg.AllowOrigins),
			gzip.Gzip(gzip.DefaultCompression),
		),
	)
	if err != nil {
		return fmt.Errorf("init web engine: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler := schedule.NewCronScheduler()
	if err := scheduler.AddJob(job.NewOTPCleanupJob(userRepo), cfg.OTPCleanupJob); err != nil {
		return fmt.Errorf("schedule cleanup job: %w", err)
	}
	scheduler.Start(ctx)
	defer scheduler.Stop()

	logutil.GetLogger(context.Background()).Info("http server listening", zap.String("addr", fmt.Sprintf("0.0.0.0:%d", cfg.Port)))

	go func() {
		if err := engine.Run(); err != nil && err != http.ErrServerClosed {
			logutil.GetLogger(context.Background()).Error("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logutil.GetLogger(context.Background()).Info("server stopping...")
	return nil
}
