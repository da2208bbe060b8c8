package cmd

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ufdrinsight/ufdrinsight/internal/ufdrinsight/conf"
	"github.com/ufdrinsight/ufdrinsight/internal/ufdrinsight/database"
	ihttp "github.com/ufdrinsight/ufdrinsight/internal/ufdrinsight/http"
	"github.com/ufdrinsight/ufdrinsight/pkg/util"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the analysis HTTP API",
	RunE:  runServer,
}

func init() {
	rootCmd.AddCommand(serverCmd)
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := conf.Load(configFile)
	if err != nil {
		return err
	}
	if debug {
		cfg.Debug = true
	}

	db, err := database.New(cfg.DBPath())
	if err != nil {
		return err
	}
	defer db.Close()

	svc := ihttp.NewService(cfg, db)

	log.Info().Str("url", util.ComposeLANURL(cfg.HTTPAddr)).Msg("API reachable at")
	for _, ip := range util.LocalIPv4s(true) {
		log.Debug().Str("ip", ip).Msg("local interface")
	}

	errCh := make(chan error, 1)
	go func() {
		if err := svc.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	}
	return svc.Stop()
}
