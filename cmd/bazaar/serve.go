package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/bazaar-dev/bazaar/db"
	"github.com/bazaar-dev/bazaar/internal/auth"
	"github.com/bazaar-dev/bazaar/internal/events"
	"github.com/bazaar-dev/bazaar/internal/handlers"
	"github.com/bazaar-dev/bazaar/internal/media"
	"github.com/bazaar-dev/bazaar/internal/router"
	"github.com/bazaar-dev/bazaar/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newServeCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := connect(v)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := auth.InitJWTSecret(cfg.JWTSecret); err != nil {
				return err
			}

			if v.GetBool("migrate") {
				if err := db.MigrateDatabase(); err != nil {
					return err
				}
			}

			gin.SetMode(cfg.GinMode)

			server := handlers.NewServer(
				media.NewStorage(cfg.MediaRoot, cfg.MediaURL),
				events.NewHub(),
				types.AllowedOrigins(cfg.ClientURL, cfg.Origins),
			)

			r, err := router.NewRouter(server)
			if err != nil {
				return err
			}

			srv := &http.Server{
				Addr:              ":" + cfg.Port,
				Handler:           r,
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				log.Printf("Listening on :%s", cfg.Port)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			case <-ctx.Done():
				log.Println("Shutting down server...")
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().String("port", "", "port to listen on (env PORT, default 3000)")
	cmd.Flags().Bool("migrate", false, "migrate the schema before serving")
	_ = v.BindPFlag("port", cmd.Flags().Lookup("port"))
	_ = v.BindPFlag("migrate", cmd.Flags().Lookup("migrate"))

	return cmd
}
