package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/boardparity/assets"
	"github.com/robalobadob/boardparity/internal/config"
	"github.com/robalobadob/boardparity/internal/httpserver"
	"github.com/robalobadob/boardparity/internal/labels"
	"github.com/robalobadob/boardparity/internal/quiz"
	"github.com/robalobadob/boardparity/internal/store"
	"github.com/robalobadob/boardparity/internal/tui"
)

func main() {
	_ = godotenv.Load()
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgPath string
	root := &cobra.Command{
		Use:          "trainer",
		Short:        "Chessboard parity trainer: file/rank parity and square color drills",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", os.Getenv("TRAINER_CONFIG"), "YAML config file")
	root.AddCommand(newServeCmd(&cfgPath), newDrillCmd(&cfgPath))
	return root
}

func newServeCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the trainer page and its session API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*cfgPath)
			if err != nil {
				return err
			}
			setLogLevel(cfg.LogLevel)
			if cfg.Session.Secret == config.DevSecret {
				log.Warn().Msg("SESSION_SECRET not set; using the development secret")
			}

			st, closeStore, err := openStore(cfg.Store)
			if err != nil {
				return err
			}
			defer closeStore()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			go store.RunJanitor(ctx, st, cfg.Session.TTL, time.Minute)

			srv := httpserver.New(st, httpserver.Options{
				ClientOrigin: cfg.ClientOrigin,
				DefaultLang:  cfg.DefaultLang,
				Secret:       cfg.Session.Secret,
				TTL:          cfg.Session.TTL,
				CookieName:   cfg.Session.CookieName,
				Secure:       os.Getenv("NODE_ENV") == "production",
				Web:          assets.Web(),
			})
			log.Info().Str("port", cfg.Port).Str("store", cfg.Store.Driver).Msg("starting trainer")
			if err := srv.Run(ctx, cfg.Addr()); err != nil {
				log.Error().Err(err).Msg("server exited")
				return err
			}
			log.Info().Msg("server stopped")
			return nil
		},
	}
}

// openStore builds the configured session store and its cleanup func.
func openStore(c config.Store) (store.Store, func(), error) {
	switch c.Driver {
	case "sqlite":
		db, err := openDB(c.DSN)
		if err != nil {
			return nil, nil, err
		}
		if err := store.Migrate(db, assets.FS, assets.MigrationsDir); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("migrate: %w", err)
		}
		return store.NewSQLiteStore(db), func() { _ = db.Close() }, nil
	default:
		return store.NewMemoryStore(), func() {}, nil
	}
}

func newDrillCmd(cfgPath *string) *cobra.Command {
	var (
		modeName string
		seed     uint64
		lang     string
		logFile  string
	)
	cmd := &cobra.Command{
		Use:   "drill",
		Short: "Run the trainer in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*cfgPath)
			if err != nil {
				return err
			}
			mode, err := quiz.ParseMode(modeName)
			if err != nil {
				return fmt.Errorf("--mode %q: %w", modeName, err)
			}
			if lang == "" {
				lang = cfg.DefaultLang
			}

			// The screen owns the terminal; logs go to a file or nowhere.
			var out io.Writer = io.Discard
			if logFile != "" {
				f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if err != nil {
					return err
				}
				defer f.Close()
				out = f
			}
			log.Logger = zerolog.New(out).With().Timestamp().Logger()
			setLogLevel(cfg.LogLevel)

			var sess *quiz.Session
			if cmd.Flags().Changed("seed") {
				sess = quiz.NewSeeded(seed)
			} else {
				sess = quiz.New(nil)
			}
			if mode != quiz.ByFile {
				sess.SetMode(mode)
			}

			screen, err := tcell.NewScreen()
			if err != nil {
				return err
			}
			if err := screen.Init(); err != nil {
				return err
			}
			defer screen.Fini()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			err = tui.New(screen, sess, labels.Lookup(lang)).Run(ctx)
			log.Info().Int("correct", sess.Correct()).Int("total", sess.Total()).Msg("drill finished")
			if err == context.Canceled {
				return nil
			}
			return err
		},
	}
	cmd.Flags().StringVar(&modeName, "mode", "file", "quiz: file|rank|square")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "fixed question sequence")
	cmd.Flags().StringVar(&lang, "lang", "", "label language (en|ru); default from config")
	cmd.Flags().StringVar(&logFile, "log-file", "", "append logs here instead of discarding them")
	return cmd
}

func setLogLevel(level string) {
	if lvl, err := zerolog.ParseLevel(level); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
}
