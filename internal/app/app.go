package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/mattn/go-colorable"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/drawbot/drawbot/configs"
)

var rootCmd = &cobra.Command{
	Use:               "drawbot",
	Short:             "Draws images on a paint canvas with the mouse",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: appPersistentPreRun,
}

var (
	configPath string
	logLevel   string
)

func init() {
	rootCmd.PersistentFlags().StringVarP(
		&configPath, "config", "c",
		"", "Configuration file",
	)
	rootCmd.PersistentFlags().StringVarP(
		&logLevel, "level", "l",
		"", "Log level",
	)
}

func appPersistentPreRun(_ *cobra.Command, _ []string) error {
	if configPath == "" {
		configPath = "config.toml"
	}
	if err := createConfigFile(configPath); err != nil {
		return err
	}

	if err := configs.LoadConfiguration(configPath); err != nil {
		return fmt.Errorf("error loading configuration (%s)", err)
	}
	if logLevel != "" {
		configs.Config.Main.LogLevel = logLevel
	}

	// Enforce debug in dev mode
	if configs.Config.Main.DevMode {
		configs.Config.Main.LogLevel = "debug"
	}

	// Setup logger
	lvl, err := log.ParseLevel(configs.Config.Main.LogLevel)
	if err != nil {
		lvl = log.InfoLevel
	}
	log.SetLevel(lvl)
	log.WithField("log_level", lvl).Debug()
	if configs.Config.Main.DevMode {
		log.SetFormatter(&log.TextFormatter{
			ForceColors: true,
		})
		log.SetOutput(colorable.NewColorableStdout())
	}

	// Create required folders
	if err := createFolder(configs.Config.Main.DataDirectory); err != nil {
		return fmt.Errorf("can't create data directory: %w", err)
	}

	return nil
}

// createConfigFile writes the initial configuration file when
// it doesn't exist.
func createConfigFile(filename string) error {
	_, err := os.Stat(filename)
	if err == nil {
		return nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return err
	}

	if err = createFolder(filepath.Dir(filename)); err != nil {
		return err
	}
	if err = configs.WriteConfig(filename); err != nil {
		return err
	}
	log.WithField("path", filename).Info("configuration file created")
	return nil
}

func createFolder(name string) error {
	stat, err := os.Stat(name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if err := os.MkdirAll(name, 0750); err != nil {
				return err
			}
		} else {
			return err
		}
	} else if !stat.IsDir() {
		return fmt.Errorf("'%s' is not a directory", name)
	}

	return nil
}

// Run starts the application
func Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigchan := make(chan os.Signal, 10)
		signal.Notify(sigchan,
			os.Interrupt,
			syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGHUP,
		)
		<-sigchan
		log.Info("interrupted, stopping")
		cancel()

		// A second signal leaves immediately
		<-sigchan
		println("Bye!")
		os.Exit(1)
	}()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.WithError(err).Error()
		return err
	}

	return nil
}
