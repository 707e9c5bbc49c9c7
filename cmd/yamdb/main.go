/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"yamdb/internal/config"
	"yamdb/internal/entity"
	"yamdb/internal/handler"
	"yamdb/internal/importer"
	"yamdb/internal/mailer"
	"yamdb/internal/repository"
	"yamdb/internal/service"
	"yamdb/internal/token"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var configPath string

func main() {
	root := &cobra.Command{
		Use:           "yamdb",
		Short:         "YaMDb content review platform",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "configs/default.yaml", "path of the YAML configuration")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "import <dir>",
		Short: "Seed the database from the CSV files of <dir>",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(args[0])
		},
	})

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openDatabase opens the SQLite file, turns on the enforcement the schema
// relies on and migrates it.
func openDatabase(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		// The review uniqueness check needs gorm.ErrDuplicatedKey back from the driver
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, err
	}
	// SQLite ships with foreign keys off
	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(
		&entity.User{},
		&entity.ConfirmationSecret{},
		&entity.Category{},
		&entity.Genre{},
		&entity.Title{},
		&entity.Review{},
		&entity.Comment{},
	); err != nil {
		return nil, err
	}
	return db, nil
}

func newMailer(cfg *config.Config, logger *zap.Logger) mailer.Sender {
	if cfg.Mail.Mode == "smtp" {
		addr := fmt.Sprintf("%s:%d", cfg.Mail.Host, cfg.Mail.Port)
		return mailer.NewSMTPSender(addr, cfg.Mail.From, cfg.Mail.Username, cfg.Mail.Password, cfg.Mail.Host)
	}
	return mailer.NewLogSender(logger)
}

func serve() error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logger, err := zap.NewProduction()
	if err != nil {
		return err
	}
	defer logger.Sync()

	db, err := openDatabase(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}

	userRepo := repository.NewSQLiteUserRepository(db)
	categoryRepo := repository.NewSQLiteCategoryRepository(db)
	genreRepo := repository.NewSQLiteGenreRepository(db)
	titleRepo := repository.NewSQLiteTitleRepository(db)
	reviewRepo := repository.NewSQLiteReviewRepository(db)
	commentRepo := repository.NewSQLiteCommentRepository(db)

	tokens := token.NewManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)
	mail := newMailer(cfg, logger)

	handlers := handler.Handlers{
		Auth:     handler.NewAuthHandler(service.NewAuthService(userRepo, tokens, mail, logger)),
		User:     handler.NewUserHandler(service.NewUserService(userRepo, logger)),
		Category: handler.NewCategoryHandler(service.NewCatalogService(categoryRepo, genreRepo, logger)),
		Genre:    handler.NewGenreHandler(service.NewCatalogService(categoryRepo, genreRepo, logger)),
		Title:    handler.NewTitleHandler(service.NewTitleService(titleRepo, categoryRepo, genreRepo, reviewRepo, logger)),
		Review:   handler.NewReviewHandler(service.NewReviewService(reviewRepo, titleRepo, logger)),
		Comment:  handler.NewCommentHandler(service.NewCommentService(commentRepo, reviewRepo, logger)),
	}
	router := handler.NewRouter(handlers, handler.NewMiddleware(tokens, userRepo, logger))

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.API.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.API.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.API.WriteTimeout) * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.Uint16("port", cfg.API.Port))
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errs:
		return err
	case <-stop:
	}

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(ctx)
}

func runImport(dir string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logger, err := zap.NewProduction()
	if err != nil {
		return err
	}
	defer logger.Sync()

	db, err := openDatabase(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	return importer.New(db, logger).Run(dir)
}
