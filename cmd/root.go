package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bacalhau-project/azops/pkg/azcli"
	"github.com/bacalhau-project/azops/pkg/logger"
	"github.com/bacalhau-project/azops/pkg/providers/azure"
	"github.com/bacalhau-project/azops/pkg/publicip"
)

const configName = ".azops"

var (
	cfgFile     string
	verboseMode bool
)

// NewRootCmd builds the azops command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "azops",
		Short: "azops prepares an Azure subscription for the application",
		Long: `azops is a small operator tool for Azure. It registers the resource providers
the application needs and opens PostgreSQL firewall rules for your current public IP.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := initConfig(); err != nil {
				return err
			}
			return initLogger()
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.azops.yaml)")
	rootCmd.PersistentFlags().BoolVar(&verboseMode, "verbose", false, "Enable verbose output")

	rootCmd.AddCommand(getRegisterProvidersCmd())
	rootCmd.AddCommand(getWhitelistIPCmd())
	rootCmd.AddCommand(getListProvidersCmd())
	rootCmd.AddCommand(getListSubscriptionsCmd())
	rootCmd.AddCommand(getVersionCmd())

	return rootCmd
}

// Execute runs the root command. This is called by main.main().
func Execute() error {
	defer func() {
		_ = logger.Get().Sync()
	}()
	return NewRootCmd().Execute()
}

func setDefaults() {
	viper.SetDefault("azure.cli_command", azcli.DefaultCommand)
	viper.SetDefault("azure.backend", azure.BackendCLI)
	viper.SetDefault("network.ip_echo_url", publicip.DefaultEchoURL)
	viper.SetDefault("general.log_path", logger.DefaultLogPath)
	viper.SetDefault("general.log_level", logger.InfoLogLevel)
	viper.SetDefault("general.log_format", "text")
	viper.SetDefault("general.log_with_trace", false)
	viper.SetDefault("general.enable_console_logger", false)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() error {
	setDefaults()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(configName)
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

func initLogger() error {
	cfg := logger.ConfigFromViper(viper.GetViper())
	if verboseMode {
		cfg.EnableConsole = true
		cfg.Level = "debug"
	}
	if err := logger.Initialize(cfg); err != nil {
		return err
	}
	if used := viper.ConfigFileUsed(); used != "" {
		logger.Get().Debugf("Using config file: %s", used)
	}
	return nil
}

// configFileTarget is where list-subscriptions --set writes.
func configFileTarget() (string, error) {
	if used := viper.ConfigFileUsed(); used != "" {
		return used, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configName+".yaml"), nil
}
