package service

import (
	"io"

	"github.com/sirupsen/logrus"
	"github.com/xolan/well/internal/ai"
	"github.com/xolan/well/internal/config"
	"github.com/xolan/well/internal/logging"
	"github.com/xolan/well/internal/storage"
)

// Services holds all service instances used by the application
type Services struct {
	Tracker   *TrackerService
	Analytics *AnalyticsService
	Log       *LogService
	Summary   *SummaryService
	Config    *ConfigService
	Storage   *StorageService

	Logger *logrus.Logger
	closer io.Closer
}

// Options selects how NewServices wires the application.
type Options struct {
	// Ephemeral keeps all records in memory for this run.
	Ephemeral bool
}

// NewServices loads the config from the default path, opens the log file
// and the default store, and wires everything together.
func NewServices(opts Options) (*Services, error) {
	configPath, err := config.GetConfigPath()
	if err != nil {
		return nil, err
	}

	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return nil, err
	}

	logger, closer, err := logging.Open(cfg.Log)
	if err != nil {
		// Logging must never stop tracking.
		logger, closer = logging.Discard(), nil
	}

	var store storage.Store
	if opts.Ephemeral {
		store = storage.NewMemoryStore()
	} else {
		jsonl, err := storage.OpenDefault(logging.Component(logger, "storage"))
		if err != nil {
			if closer != nil {
				_ = closer.Close()
			}
			return nil, err
		}
		store = jsonl
	}

	s := NewServicesWith(store, configPath, cfg, logger)
	s.closer = closer
	return s, nil
}

// NewServicesWith wires services over an existing store (useful for testing).
// A nil logger discards output.
func NewServicesWith(store storage.Store, configPath string, cfg config.Config, logger *logrus.Logger, opts ...TrackerOption) *Services {
	if logger == nil {
		logger = logging.Discard()
	}

	trackerOpts := append([]TrackerOption{WithLogger(logging.Component(logger, "tracker"))}, opts...)
	tracker := NewTrackerService(store, cfg, trackerOpts...)

	client := ai.NewClient(AIOptions(cfg.AI), logging.Component(logger, "ai"))
	orchestrator := ai.NewOrchestrator(client, logging.Component(logger, "ai"))

	return &Services{
		Tracker:   tracker,
		Analytics: NewAnalyticsService(store, tracker, logging.Component(logger, "analytics")),
		Log:       NewLogService(store),
		Summary:   NewSummaryService(tracker, orchestrator),
		Config:    NewConfigService(configPath, cfg),
		Storage:   NewStorageService(store),
		Logger:    logger,
	}
}

// AIOptions converts the [ai] config table into client options.
func AIOptions(c config.AIConfig) ai.Options {
	return ai.Options{
		BaseURL:           c.BaseURL,
		Model:             c.Model,
		Temperature:       c.Temperature,
		TopK:              c.TopK,
		TopP:              c.TopP,
		MaxOutputTokens:   c.MaxOutputTokens,
		Timeout:           c.Timeout(),
		RequestsPerMinute: c.RequestsPerMinute,
	}
}

// Close releases the log file, if one was opened.
func (s *Services) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}
