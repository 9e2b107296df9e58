package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/Veraticus/grievance-intel/internal/common"
	"github.com/Veraticus/grievance-intel/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile  string
	version  = "dev"
	settings config.Settings
	logFile  io.Closer
	rootCmd  = &cobra.Command{
		Use:   "grievance",
		Short: "📣 Submit and track citizen grievances",
		Long: `grievance: a terminal client for the Citizen Grievance Intel service.

Run without a subcommand to open the interactive view. Write a grievance,
submit it for analysis and browse recent grievances with their priority,
category and suggested welfare schemes.`,
		RunE:         runView,
		SilenceUsage: true,
	}
)

func init() {
	// Assigned here rather than in the literal: initConfig refers to rootCmd.
	rootCmd.PersistentPreRunE = initConfig

	config.SetDefaults(viper.GetViper())

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/grievance/config.yaml)")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "console", "log format (console, json)")
	flags.String("api-url", config.DefaultBaseURL, "grievance backend base URL")
	flags.Duration("timeout", config.DefaultTimeout, "backend request timeout")
	flags.String("locale", config.DefaultLocale, "locale used to format dates")

	// View-only flags
	rootCmd.Flags().String("theme", config.DefaultTheme, "color theme (default, catppuccin-mocha)")
	rootCmd.Flags().Bool("cache", false, "keep a local copy of the last grievance list")

	// Bind flags to viper
	_ = viper.BindPFlag("logging.level", flags.Lookup("log-level"))
	_ = viper.BindPFlag("logging.format", flags.Lookup("log-format"))
	_ = viper.BindPFlag("api.base_url", flags.Lookup("api-url"))
	_ = viper.BindPFlag("api.timeout", flags.Lookup("timeout"))
	_ = viper.BindPFlag("ui.locale", flags.Lookup("locale"))
	_ = viper.BindPFlag("ui.theme", rootCmd.Flags().Lookup("theme"))
	_ = viper.BindPFlag("cache.enabled", rootCmd.Flags().Lookup("cache"))

	// Add commands
	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(submitCmd())
	rootCmd.AddCommand(versionCmd())
}

func main() {
	// Set up signal handling
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		slog.Info("Received interrupt signal, shutting down gracefully...")
		cancel()
	}()

	err := rootCmd.ExecuteContext(ctx)
	cancel() // Always cleanup

	if logFile != nil {
		_ = logFile.Close()
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initConfig(cmd *cobra.Command, _ []string) error {
	// Set up config file
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}

		// Search for config in standard locations
		viper.AddConfigPath(filepath.Join(home, ".config", "grievance"))
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	// Environment variables: GRIEVANCE_API_BASE_URL, GRIEVANCE_UI_LOCALE, ...
	viper.SetEnvPrefix("GRIEVANCE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, we'll use defaults
	}

	s, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}
	settings = s

	// The interactive view owns the terminal, so it logs to a file
	if err := setupLogging(cmd == rootCmd); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	return nil
}

func setupLogging(toFile bool) error {
	level, err := common.ParseLevel(settings.Logging.Level)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stderr
	if toFile {
		f, err := openLogFile(settings.Logging.File)
		if err != nil {
			return err
		}
		logFile = f
		w = f
	}

	return common.SetupLogger(w, level, settings.Logging.Format)
}

// openLogFile opens path for appending, creating its directory.
func openLogFile(path string) (*os.File, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: logging.file", common.ErrMissingConfig)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600) // #nosec G304 - path comes from config
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "grievance %s\n", version)
		},
	}
}
