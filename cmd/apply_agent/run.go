package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/apply-agent/internal/answers"
	"github.com/jonathan/apply-agent/internal/apply"
	"github.com/jonathan/apply-agent/internal/ats"
	"github.com/jonathan/apply-agent/internal/browser"
	"github.com/jonathan/apply-agent/internal/config"
	"github.com/jonathan/apply-agent/internal/llm"
	"github.com/jonathan/apply-agent/internal/notify"
	"github.com/jonathan/apply-agent/internal/observability"
	"github.com/jonathan/apply-agent/internal/screenshot"
	"github.com/jonathan/apply-agent/internal/secrets"
	"github.com/jonathan/apply-agent/internal/store"
	"github.com/jonathan/apply-agent/internal/tracker"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Run the auto-apply loop against the job tracker",
	Long: `Drives the full application flow: pick the highest-priority ready job from the tracker sheet, open its listing, hand the ATS form to the matching filler, submit, and record the outcome in the sheet.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runApplyCmd,
}

var (
	runConfigPath      string
	runOnce            bool
	runInterval        int
	runSpreadsheetID   string
	runCredentialsFile string
	runResume          string
	runMaxDaily        int
	runBusinessHours   bool
	runAPIKey          string
	runDatabaseURL     string
	runHeadless        bool
	runVerbose         bool
)

func init() {
	// Config file flag (processed first)
	runCommand.Flags().StringVar(&runConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	runCommand.Flags().BoolVar(&runOnce, "once", false, "Attempt a single application and exit")
	runCommand.Flags().IntVar(&runInterval, "interval", 0, "Minutes between application cycles (default 30)")
	runCommand.Flags().StringVar(&runSpreadsheetID, "spreadsheet-id", "", "Google Sheets ID of the job tracker")
	runCommand.Flags().StringVar(&runCredentialsFile, "credentials", "", "Path to Google service account credentials JSON")
	runCommand.Flags().StringVar(&runResume, "resume", "", "Default resume PDF for rows without a tailored one")
	runCommand.Flags().IntVar(&runMaxDaily, "max-daily", 0, "Maximum applications per day (default 50)")
	runCommand.Flags().BoolVar(&runBusinessHours, "business-hours", false, "Only apply between 09:00 and 18:00 local time")
	runCommand.Flags().BoolVar(&runHeadless, "headless", false, "Run the browser without a window")
	runCommand.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Print detailed debug information")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY or the OS keyring
	runCommand.Flags().StringVar(&runAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var or keyring)")

	// Database URL for attempt persistence
	runCommand.Flags().StringVar(&runDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(runCommand)
}

func runApplyCmd(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Step 1: Load config file if provided
	var cfg config.Config
	if runConfigPath != "" {
		loadedCfg, err := config.LoadConfig(runConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		// Validate loaded config
		if err := loadedCfg.Validate(); err != nil {
			return err
		}

		cfg = *loadedCfg
		if runVerbose {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", runConfigPath)
		}
	}

	// Step 2: Apply CLI overrides (command-line args take priority)
	// Only override if the flag was explicitly set
	if cmd.Flags().Changed("interval") {
		cfg.IntervalMinutes = runInterval
	}
	if cmd.Flags().Changed("spreadsheet-id") {
		cfg.SpreadsheetID = runSpreadsheetID
	}
	if cmd.Flags().Changed("credentials") {
		cfg.CredentialsFile = runCredentialsFile
	}
	if cmd.Flags().Changed("resume") {
		cfg.ResumePath = runResume
	}
	if cmd.Flags().Changed("max-daily") {
		cfg.MaxDailyApplications = runMaxDaily
	}
	if cmd.Flags().Changed("business-hours") {
		cfg.BusinessHoursOnly = runBusinessHours
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = runAPIKey
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = runDatabaseURL
	}
	if cmd.Flags().Changed("headless") {
		cfg.Headless = runHeadless
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = runVerbose
	}

	// Step 3: Apply defaults for unset values
	defaults := config.Config{
		MaxDailyApplications: 50,
		IntervalMinutes:      30,
		ScreenshotDir:        screenshot.DefaultDir,
	}
	cfg = cfg.MergeWithDefaults(defaults)

	// Step 4: Validate required fields
	if cfg.SpreadsheetID == "" {
		return fmt.Errorf("--spreadsheet-id is required (via flag or config)")
	}
	if cfg.CredentialsFile == "" {
		return fmt.Errorf("--credentials is required (via flag or config)")
	}

	// Step 5: API key handling. A missing key is not fatal: remembered and
	// canned answers still cover the common screening questions.
	if cfg.APIKey == "" {
		cfg.APIKey = secrets.Resolve("GEMINI_API_KEY", secrets.AccountGeminiAPIKey)
	}

	// Step 6: Database URL handling (optional attempt log)
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	// Tracker sheet client: the job queue and the QA memory both live there
	trackerClient, err := tracker.NewClient(ctx, cfg.CredentialsFile, cfg.SpreadsheetID)
	if err != nil {
		return fmt.Errorf("failed to open tracker sheet: %w", err)
	}

	// LLM-backed answerer over the sheet's QA memory
	var llmClient llm.Client
	if cfg.APIKey != "" {
		gemini, err := llm.NewClient(ctx, nil, cfg.APIKey)
		if err != nil {
			return fmt.Errorf("failed to initialize Gemini client: %w", err)
		}
		defer gemini.Close()
		llmClient = llm.NewBreakerClient(gemini)
	} else {
		fmt.Printf("Warning: no Gemini API key configured; answering questions from memory and fallbacks only\n")
	}

	// Warm the QA memory bank and connect the optional attempt store in
	// parallel; they hit unrelated backends.
	var bank *answers.Bank
	var attempts *store.Store
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := trackerClient.EnsureMemoryTab(gCtx); err != nil {
			return fmt.Errorf("failed to prepare QA memory tab: %w", err)
		}
		bank = answers.NewBank(gCtx, trackerClient)
		return nil
	})
	g.Go(func() error {
		if cfg.DatabaseURL == "" {
			return nil
		}
		s, err := store.Connect(gCtx, cfg.DatabaseURL)
		if err != nil {
			fmt.Printf("Warning: Failed to connect to database: %v\n", err)
			fmt.Printf("Continuing without database persistence...\n")
			return nil
		}
		attempts = s
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}
	defer attempts.Close()
	if attempts != nil && cfg.Verbose {
		fmt.Printf("[VERBOSE] Connected to database\n")
	}

	answerer := answers.NewAnswerer(llmClient, bank, "")

	// Screenshot capturer, optionally mirrored to S3
	mirror, err := screenshot.NewMirrorFromEnv()
	if err != nil {
		fmt.Printf("Warning: screenshot mirror disabled: %v\n", err)
	}
	shots, err := screenshot.NewCapturer(cfg.ScreenshotDir, mirror)
	if err != nil {
		return fmt.Errorf("failed to prepare screenshot directory: %w", err)
	}

	// Telegram notifier for failed submissions
	botToken := cfg.TelegramBotToken
	if botToken == "" {
		botToken = secrets.Resolve("TELEGRAM_BOT_TOKEN", secrets.AccountTelegramToken)
	}
	chatID := cfg.TelegramChatID
	if chatID == "" {
		chatID = os.Getenv("TELEGRAM_CHAT_ID")
	}

	profile := apply.Profile{
		FullName: cfg.Name,
		Email:    cfg.Email,
		Phone:    cfg.Phone,
		LinkedIn: cfg.LinkedIn,
		Website:  cfg.Website,
	}
	fillers := apply.Registry{
		ats.VendorAshby: apply.NewAshbyFiller(profile, answerer, shots),
	}

	var printer *observability.Printer
	if cfg.Verbose {
		printer = observability.NewPrinter(os.Stdout)
	}

	engine := apply.NewEngine(apply.EngineOptions{
		Jobs:    trackerClient,
		Fillers: fillers,
		Gate: apply.NewGate(apply.Limits{
			MaxDailyApplications: cfg.MaxDailyApplications,
			BusinessHoursOnly:    cfg.BusinessHoursOnly,
		}),
		Notifier:      notify.NewNotifier(botToken, chatID),
		Screenshots:   shots,
		Attempts:      attempts,
		Browser:       browser.Options{UserDataDir: cfg.BrowserProfileDir, Headless: cfg.Headless},
		DefaultResume: cfg.ResumePath,
		Printer:       printer,
	})
	defer func() { _ = engine.Close() }()

	if runOnce {
		return engine.RunCycle(ctx)
	}

	err = engine.RunContinuous(ctx, time.Duration(cfg.IntervalMinutes)*time.Minute)
	if errors.Is(err, context.Canceled) {
		// Interrupt or SIGTERM: a normal way to stop the service.
		return nil
	}
	return err
}
