// Package cmd implements the popsign CLI.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Bidon15/popsign/keystore"
)

var (
	cfgFile string
	jsonOut bool
)

var rootCmd = &cobra.Command{
	Use:   "popsign",
	Short: "Proof-of-possession request signing",
	Long: `popsign generates ECDSA key pairs and signs request payloads,
producing portable signature envelopes a backend can verify as proof
of possession of the private key.

Examples:
  popsign keygen device-main
  popsign sign device-main --payload '{"device":"abc"}'
  popsign verify --signature <sig> --payload '{"device":"abc"}'
  popsign inspect <sig>
  popsign keys list`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", colorRed("✗"), err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $HOME/.popsign/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "output as JSON")
	rootCmd.PersistentFlags().String("keystore", "", "keystore file (default $HOME/.popsign/keystore.json)")

	viper.BindPFlag("keystore", rootCmd.PersistentFlags().Lookup("keystore"))
}

// initConfig reads config from file and POPSIGN_* environment
// variables. Flags win over env, env wins over file.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".popsign"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	viper.SetEnvPrefix("POPSIGN")
	viper.AutomaticEnv()

	// Missing config file is fine; everything has defaults.
	_ = viper.ReadInConfig()
}

// keystorePath resolves the keystore location from flag/env/config.
func keystorePath() (string, error) {
	if path := viper.GetString("keystore"); path != "" {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot resolve home directory: %w", err)
	}
	return filepath.Join(home, ".popsign", "keystore.json"), nil
}

// getStore opens the keystore.
func getStore() (*keystore.Store, error) {
	path, err := keystorePath()
	if err != nil {
		return nil, err
	}
	return keystore.Open(path)
}
