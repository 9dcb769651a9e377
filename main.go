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

	"blog-engagement/cache"
	"blog-engagement/config"
	"blog-engagement/helper"
	"blog-engagement/logging"
	"blog-engagement/repositories"
	"blog-engagement/routes"
	"blog-engagement/services"

	"github.com/fatih/color"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "blog-engagement",
		Short: "Article engagement and authorship service",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Start the HTTP API",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runServe()
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Apply database migrations",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runMigrate()
			},
		},
		&cobra.Command{
			Use:   "reconcile-likes",
			Short: "Rewrite article like counters from the like ledger",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runReconcile(cmd.Context())
			},
		},
	)

	return rootCmd
}

type stores struct {
	articles repositories.ArticleRepository
	comments repositories.CommentRepository
	likes    repositories.LikeRepository
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logging.Setup(cfg.LogLevel, !cfg.IsProduction())
	return cfg, nil
}

func openStores(cfg *config.Config) (*stores, error) {
	if cfg.Storage == config.StorageMemory {
		logging.Warn().Msg("Using in-memory storage, data is lost on restart.")
		db := repositories.NewMemoryDB()
		return &stores{
			articles: repositories.NewMemoryArticleRepository(db),
			comments: repositories.NewMemoryCommentRepository(db),
			likes:    repositories.NewMemoryLikeRepository(db),
		}, nil
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		return nil, err
	}
	if err := config.Migrate(db); err != nil {
		return nil, err
	}
	return &stores{
		articles: repositories.NewArticleRepository(db),
		comments: repositories.NewCommentRepository(db),
		likes:    repositories.NewLikeRepository(db),
	}, nil
}

func runServe() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fmt.Printf("%s on port %s\n", color.New(color.FgHiYellow, color.Bold).Sprint("blog-engagement"), cfg.Port)

	st, err := openStores(cfg)
	if err != nil {
		logging.Error().Err(err).Msg("An error occurred when opening storage.")
		return err
	}

	articleCache, err := cache.NewArticleCache(cfg.CacheTTL, cfg.CacheMaxCost)
	if err != nil {
		return err
	}

	validate := helper.NewValidator()
	httpHelper, err := helper.NewHTTPHelper(validate)
	if err != nil {
		return err
	}

	articleService := services.NewArticleService(st.articles, articleCache, validate)
	engagementService := services.NewEngagementService(st.articles, st.comments, st.likes, articleCache, validate)

	reconciler := services.NewLikeReconciler(st.likes)
	if err := reconciler.Start(cfg.ReconcileSchedule); err != nil {
		return err
	}
	defer reconciler.Stop()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := routes.NewRouter(routes.Dependencies{
		ArticleService:    articleService,
		EngagementService: engagementService,
		Helper:            httpHelper,
		JWTSecret:         cfg.JWTSecret,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logging.Info().Str("port", cfg.Port).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("An error occurred when serving HTTP.")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logging.Info().Msg("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(ctx)
}

func runMigrate() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Storage != config.StoragePostgres {
		return errors.New("migrate requires STORAGE=postgres")
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		return err
	}
	if err := config.Migrate(db); err != nil {
		return err
	}
	logging.Info().Msg("Database migrations applied")
	return nil
}

func runReconcile(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st, err := openStores(cfg)
	if err != nil {
		return err
	}

	fixed, err := services.NewLikeReconciler(st.likes).Run(ctx)
	if err != nil {
		return err
	}
	logging.Info().Int64("articles", fixed).Msg("Like counters reconciled")
	return nil
}
