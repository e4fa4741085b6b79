package main

import (
	"fmt"

	"github.com/jonathan/apply-assistant/internal/classify"
	"github.com/jonathan/apply-assistant/internal/logging"
	"github.com/jonathan/apply-assistant/internal/server"
	"github.com/jonathan/apply-assistant/internal/server/ratelimit"
	"github.com/spf13/cobra"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the field classifier, description extractor, suggestion generator and profile store as REST endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config, default 8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	defer a.close()

	if servePort != 0 {
		a.cfg.Port = servePort
	}
	policy, err := classify.ParseHiddenPolicy(a.cfg.HiddenPolicy)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	profiles, release, err := a.profiles(ctx)
	if err != nil {
		return err
	}
	defer release()

	loader, err := a.newLoader()
	if err != nil {
		return err
	}
	defer loader.Close()

	rl := ratelimit.NewConfig(a.cfg.RateLimitRPS, a.cfg.RateLimitBurst)
	srv, err := server.New(server.Config{
		Port:       a.cfg.Port,
		Profiles:   profiles,
		Loader:     loader,
		Classifier: classify.New(classify.WithHiddenPolicy(policy)),
		RateLimit:  rl,
		Logger:     a.log,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	a.log.Info("serving",
		logging.Int("port", a.cfg.Port),
		logging.Bool("rate_limit", rl.Enabled),
		logging.String("hidden_policy", string(policy)),
		logging.Bool("use_browser", a.cfg.UseBrowser),
		logging.Bool("readability", a.cfg.Readability))

	return srv.Start(ctx)
}
