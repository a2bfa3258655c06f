package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rafael/resume-match/internal/config"
	"github.com/rafael/resume-match/internal/logging"
	"github.com/rafael/resume-match/internal/match"
	"github.com/rafael/resume-match/internal/presets"
	"github.com/rafael/resume-match/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the match analysis endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg := config.Load()
	if servePort > 0 {
		cfg.Port = servePort
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	analyzer := match.NewOpenAIAnalyzer(cfg.OpenAIAPIKey, cfg.OpenAIModel, logger)
	service := match.NewService(match.NewStore(), analyzer, logger)
	library := presets.NewLibrary(cfg.PresetJobFile, cfg.PresetResumeDir)

	srv := server.New(server.Config{
		Host:             cfg.Host,
		Port:             cfg.Port,
		CORSOrigins:      cfg.CORSOrigins,
		OpenAIConfigured: analyzer.Configured(),
	}, service, library, logger)

	return srv.Start()
}
