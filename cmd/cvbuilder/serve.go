package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/cv-builder/internal/config"
	"github.com/jonathan/cv-builder/internal/db"
	"github.com/jonathan/cv-builder/internal/llm"
	"github.com/jonathan/cv-builder/internal/rendering"
	"github.com/jonathan/cv-builder/internal/server"
)

var (
	servePort    int
	serveMemory  bool
	serveTier    string
	serveRestore bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that exposes account, profile, CV enhancement and CV export endpoints.
Accounts are stored in PostgreSQL (DATABASE_URL) unless --memory is given.
Enhancement needs GEMINI_API_KEY; without it /v1/cv/enhance answers 503.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from config, 8080)")
	serveCmd.Flags().BoolVar(&serveMemory, "memory", false, "Keep accounts in memory instead of PostgreSQL")
	serveCmd.Flags().StringVar(&serveTier, "tier", string(llm.TierStandard), "Model tier for enhancement: lite, standard or advanced")
	serveCmd.Flags().BoolVar(&serveRestore, "restore-certifications", true, "Re-attach certifications the model leaves out")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}
	tier, err := llm.ParseTier(serveTier)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg, false)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	jwtCfg, err := config.NewJWTConfig()
	if err != nil {
		return err
	}
	pwCfg, err := config.NewPasswordConfig()
	if err != nil {
		return err
	}

	srvCfg := server.Config{
		Port:     cfg.Port,
		JWT:      jwtCfg,
		Password: pwCfg,
		Exporter: &rendering.Exporter{PDF: rendering.PDFRenderer{ChromePath: cfg.ChromePath}, LaTeXTemplate: cfg.Template},
		Logger:   logger,
	}

	if serveMemory {
		logger.Warn("accounts are kept in memory and lost on exit")
		srvCfg.Store = db.NewMemoryStore()
	} else {
		if cfg.DatabaseURL == "" {
			return fmt.Errorf("%s environment variable is required (or pass --memory)", config.EnvDatabaseURL)
		}
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer database.Close()
		if err := database.Migrate(ctx); err != nil {
			return err
		}
		srvCfg.Store = database
	}

	if cfg.GeminiKey != "" {
		client, err := llm.NewClient(ctx, llm.DefaultConfig(), cfg.GeminiKey)
		if err != nil {
			return err
		}
		defer client.Close()
		enh := llm.NewCVEnhancer(client, tier, logger)
		enh.RestoreCertifications = serveRestore
		srvCfg.Enhancer = enh
	} else {
		logger.Warn("GEMINI_API_KEY not set; enhancement is disabled")
	}

	srv, err := server.New(srvCfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	logger.Info("starting server", zap.Int("port", cfg.Port), zap.Bool("memory", serveMemory), zap.String("tier", string(tier)))
	return srv.Start(ctx)
}
