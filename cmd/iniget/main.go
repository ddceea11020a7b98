package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/confkit/iniget/cmd/helpers"
	"github.com/confkit/iniget/pkg/ini"
	"github.com/confkit/iniget/pkg/server"
)

// Exit codes, kept distinguishable so callers can tell a missing key from
// an unreadable file from a bad invocation.
const (
	exitUsage       = 1
	exitNotFound    = 2
	exitSourceError = 3
)

var (
	logLevelStr         string
	logFullTimestamp    bool
	logDisableTimestamp bool

	serverCfg server.Config
)

var rootCmd = &cobra.Command{
	Use:   "iniget",
	Short: "look up single values in INI-style configuration files",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

var getCmd = &cobra.Command{
	Use:   "get <file> <section> <key>",
	Short: "print the value of one key in one section of an INI file",
	Args:  cobra.ExactArgs(3),
	Run:   runGet,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "serve INI lookups over HTTP",
	Run:   runServe,
}

func AddCommands() {
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(serveCmd)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevelStr, "log-level", log.WarnLevel.String(), "log level")
	rootCmd.PersistentFlags().BoolVar(&logFullTimestamp, "log-timestamp", true, "log full timestamp if true, otherwise log time since startup")
	rootCmd.PersistentFlags().BoolVar(&logDisableTimestamp, "disable-timestamp", false, "disable timestamp logging")

	serveCmd.Flags().StringVar(&serverCfg.ListenAddr, "listen", "127.0.0.1:8080", "the host:port for the HTTP API to listen on")
	serveCmd.Flags().StringVar(&serverCfg.ConfigDir, "config-dir", ".", "directory lookups are served from; requests cannot escape it")
}

func main() {
	AddCommands()

	rootCmd.ParseFlags(os.Args[1:])

	if err := helpers.SetFlagsFromEnv(serveCmd.Flags(), "INIGET"); err != nil {
		log.WithError(err).Fatalf("error setting flags from environment variables: %v", err)
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitUsage)
	}
}

func newLogger() log.FieldLogger {
	return helpers.SetupLogger(logLevelStr, logFullTimestamp, logDisableTimestamp, log.Fields{
		"app": "iniget",
	})
}

func runGet(cmd *cobra.Command, args []string) {
	logger := newLogger()
	path, section, key := args[0], args[1], args[2]

	value, found, err := ini.LookupFile(path, section, key)
	if err != nil {
		if errors.Is(err, ini.ErrEmptySection) || errors.Is(err, ini.ErrEmptyKey) {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(exitUsage)
		}
		logger.WithError(err).Errorf("couldn't open file %s for reading", path)
		os.Exit(exitSourceError)
	}
	if !found {
		logger.Errorf("no key %q in section %q of %s", key, section, path)
		os.Exit(exitNotFound)
	}
	fmt.Println(value)
}

func runServe(cmd *cobra.Command, args []string) {
	logger := newLogger()

	srv, err := server.New(logger, serverCfg)
	if err != nil {
		logger.WithError(err).Fatal("unable to setup the lookup server")
	}
	if err := srv.Run(setupSignals()); err != nil {
		logger.WithError(err).Fatal("error occurred while the lookup server was running")
	}
	logger.Infof("lookup server has stopped")
}

func setupSignals() context.Context {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		sig := <-sigs
		log.Infof("got signal %s, performing shutdown", sig)
		cancel()
	}()
	return ctx
}
