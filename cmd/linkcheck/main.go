package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/aleister1102/linkcheck/internal/checker"
	"github.com/aleister1102/linkcheck/internal/config"
	"github.com/aleister1102/linkcheck/internal/httpclient"
	"github.com/aleister1102/linkcheck/internal/logger"
	"github.com/aleister1102/linkcheck/internal/notifier"
	"github.com/aleister1102/linkcheck/internal/orchestrator"
	"github.com/rs/zerolog"
)

func main() {
	flags, err := ParseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		os.Exit(2)
	}

	// Used until the configured logger exists.
	bootLogger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Timestamp().Logger()

	gCfg, err := loadConfig(flags, bootLogger)
	if err != nil {
		bootLogger.Fatal().Err(err).Msg("Could not load configuration")
	}

	zLogger, err := logger.New(gCfg.LogConfig)
	if err != nil {
		bootLogger.Fatal().Err(err).Msg("Could not initialize logger")
	}

	o, err := buildOrchestrator(gCfg, zLogger)
	if err != nil {
		zLogger.Fatal().Err(err).Msg("Failed to initialize components")
	}

	resp := o.Handle(context.Background())
	zLogger.Info().Int("status_code", resp.StatusCode).Str("body", resp.Body).Msg("Run response")

	out, err := json.Marshal(resp)
	if err != nil {
		zLogger.Error().Err(err).Msg("Failed to encode response")
		return
	}
	fmt.Println(string(out))
}

// loadConfig reads the config file, then applies environment variables and finally flags.
func loadConfig(flags AppFlags, log zerolog.Logger) (*config.GlobalConfig, error) {
	gCfg, err := config.LoadGlobalConfig(flags.GlobalConfigFile, log)
	if err != nil {
		return nil, err
	}

	if applied := config.ApplyEnvOverrides(gCfg, os.LookupEnv); len(applied) > 0 {
		log.Debug().Strs("variables", applied).Msg("Environment overrides applied")
	}
	if flags.TargetURL != "" {
		gCfg.TargetConfig.TargetURL = flags.TargetURL
	}

	if err := config.ValidateConfig(gCfg); err != nil {
		return nil, err
	}
	return gCfg, nil
}

func buildOrchestrator(gCfg *config.GlobalConfig, zLogger zerolog.Logger) (*orchestrator.Orchestrator, error) {
	client, err := httpclient.NewHTTPClientBuilder(zLogger).WithAppConfig(gCfg.HTTPClientConfig).Build()
	if err != nil {
		return nil, err
	}

	linkChecker, err := checker.NewChecker(client, gCfg.CheckerConfig, zLogger)
	if err != nil {
		return nil, err
	}

	n, err := notifier.NewNotifier(gCfg.NotificationConfig, client, zLogger)
	if err != nil {
		return nil, err
	}
	helper := notifier.NewNotificationHelper(n, gCfg.NotificationConfig, zLogger)

	return orchestrator.NewOrchestrator(gCfg, client, linkChecker, helper, zLogger), nil
}
