package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/cv-builder/internal/apiclient"
	"github.com/jonathan/cv-builder/internal/config"
	"github.com/jonathan/cv-builder/internal/draftcache"
	"github.com/jonathan/cv-builder/internal/enhance"
	"github.com/jonathan/cv-builder/internal/llm"
	"github.com/jonathan/cv-builder/internal/logging"
	"github.com/jonathan/cv-builder/internal/schemas"
	"github.com/jonathan/cv-builder/internal/types"
)

var errNoEnhancer = errors.New("enhancement is not configured: run `cvbuilder login` or set GEMINI_API_KEY")

// configFile is where the config is read from and `login` writes to.
func configFile() string {
	if configPath != "" {
		return configPath
	}
	return config.DefaultPath()
}

// loadConfig resolves the effective configuration: file, then environment, then defaults.
// A missing default config file is not an error; a missing --config file is.
func loadConfig() (*config.Config, error) {
	cfg := &config.Config{}
	path := configPath
	if path == "" {
		if _, err := os.Stat(config.DefaultPath()); err == nil {
			path = config.DefaultPath()
		}
	}
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	cfg.ApplyEnv()

	merged := cfg.MergeWithDefaults(config.Defaults())
	if verbose {
		merged.Verbose = true
	}
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

// newLogger logs to the configured file for interactive runs and to stderr otherwise.
func newLogger(cfg *config.Config, toFile bool) (*zap.Logger, error) {
	opts := logging.Options{Verbose: cfg.Verbose}
	if toFile {
		opts.File = cfg.LogFile
	} else {
		opts.Development = true
	}
	return logging.New(opts)
}

func openCache(cfg *config.Config) (*draftcache.SQLiteStore, error) {
	return draftcache.OpenSQLite(cfg.CachePath, nil)
}

// readCVFile reads a CV document, checks it against the schema and normalizes it.
// Schema failures are returned as *schemas.ValidationError.
func readCVFile(path string) (*types.CVData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read CV file: %w", err)
	}
	if err := schemas.ValidateCV(data); err != nil {
		return nil, err
	}
	var cv types.CVData
	if err := json.Unmarshal(data, &cv); err != nil {
		return nil, fmt.Errorf("failed to unmarshal CV JSON: %w", err)
	}
	cv.Normalize()
	return &cv, nil
}

// loadCV reads the CV named in args, or the cached draft when args is empty.
func loadCV(cfg *config.Config, args []string) (*types.CVData, error) {
	if len(args) > 0 {
		return readCVFile(args[0])
	}
	store, err := openCache(cfg)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	cv, ok, err := draftcache.GetValue[*types.CVData](store, draftcache.DraftKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read cached draft: %w", err)
	}
	if !ok || cv == nil {
		return nil, fmt.Errorf("no draft in %s: run `cvbuilder build` or pass a CV file", cfg.CachePath)
	}
	cv.Normalize()
	return cv, nil
}

// newEnhancer picks the enhancement backend: the local model when asked or when
// no API token is configured but a Gemini key is, the API otherwise. It returns
// a nil enhancer when neither is configured. The returned closer is never nil.
func newEnhancer(ctx context.Context, cfg *config.Config, logger *zap.Logger, local bool) (enhance.Enhancer, func() error, error) {
	nop := func() error { return nil }
	timeout, err := cfg.EnhanceTimeoutDuration()
	if err != nil {
		return nil, nop, err
	}

	if local || (cfg.APIToken == "" && cfg.GeminiKey != "") {
		if cfg.GeminiKey == "" {
			return nil, nop, fmt.Errorf("local enhancement needs %s", config.EnvGeminiKey)
		}
		client, err := llm.NewClient(ctx, llm.DefaultConfig(), cfg.GeminiKey)
		if err != nil {
			return nil, nop, err
		}
		var enh enhance.Enhancer = llm.NewCVEnhancer(client, llm.TierStandard, logger)
		if timeout > 0 {
			enh = timeoutEnhancer{next: enh, timeout: timeout}
		}
		return enh, client.Close, nil
	}

	if cfg.APIToken == "" {
		return nil, nop, nil
	}
	client, err := apiclient.New(cfg.APIURL, apiclient.Options{Token: cfg.APIToken, Timeout: timeout})
	if err != nil {
		return nil, nop, err
	}
	return client, nop, nil
}

// timeoutEnhancer bounds each call of next.
type timeoutEnhancer struct {
	next    enhance.Enhancer
	timeout time.Duration
}

func (t timeoutEnhancer) EnhanceCV(ctx context.Context, req *types.EnhanceRequest) (*types.APIResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.next.EnhanceCV(ctx, req)
}
