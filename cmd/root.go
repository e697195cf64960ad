package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/karnival/limonite/internal/build"
	"github.com/karnival/limonite/internal/config"
)

var (
	cfgFile  string
	logLevel string

	appConfig config.Config
	logger    = slog.Default()
)

var rootCmd = &cobra.Command{
	Use:   "limonite",
	Short: "limonite - turns dated Markdown posts into HTML",
	Long: `limonite reads posts named YYYY-MM-DD-SSS-slug.<ext>, splits their
front matter from the body, renders the Markdown to HTML and merges the
result into layout templates.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig(cmd)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./limonite.yml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
}

func initializeConfig(cmd *cobra.Command) error {
	v := viper.New()

	def := config.Default()
	v.SetDefault("postURLPrefix", def.PostURLPrefix)
	v.SetDefault("postFrontMatter", def.PostFrontMatter)
	v.SetDefault("missingVariable", def.MissingVariable)
	v.SetDefault("workers", def.Workers)
	v.SetDefault("logLevel", def.LogLevel)
	v.SetDefault("markdown.gfm", def.Markdown.GFM)
	v.SetDefault("markdown.autoHeadingID", def.Markdown.AutoHeadingID)
	v.SetDefault("markdown.hardWraps", def.Markdown.HardWraps)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("limonite")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("LIMONITE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.BindPFlag("logLevel", cmd.Root().PersistentFlags().Lookup("log-level")); err != nil {
		return fmt.Errorf("binding log-level flag: %w", err)
	}

	configNotFound := false
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok && cfgFile == "" {
			configNotFound = true
		} else {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := v.Unmarshal(&appConfig); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if err := appConfig.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	lvl, _ := config.ParseLevel(appConfig.LogLevel)
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)

	if configNotFound {
		logger.Debug("no config file found, using defaults and environment")
	} else {
		logger.Debug("using config file", "path", v.ConfigFileUsed())
	}
	return nil
}

func newBuilder() (*build.Builder, error) {
	return build.New(appConfig, logger)
}
