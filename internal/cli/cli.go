package cli

import (
	"errors"
	"io"
	"os"

	"github.com/addrsplit/addrsplit/internal/i18n"
	"github.com/addrsplit/addrsplit/internal/log"
	"github.com/spf13/cobra"
)

// app carries the resolved configuration from the root command to its
// subcommands.
type app struct {
	cfg        Config
	configPath string
	envFile    string

	// flag values, applied over the loaded config only when set
	flags Config

	logFile io.WriteCloser
}

// Execute runs the addrsplit command tree and closes the log file, if one
// was opened, once the command returns.
func Execute(version string) error {
	a := &app{}
	return a.execute(newRootCommand(a, version))
}

func (a *app) execute(root *cobra.Command) error {
	err := root.Execute()
	return errors.Join(err, a.closeLog())
}

// closeLog points logging back at stderr and closes the rotating file.
func (a *app) closeLog() error {
	if a.logFile == nil {
		return nil
	}
	log.SetOutput(os.Stderr)
	err := a.logFile.Close()
	a.logFile = nil
	return err
}

// newRootCommand builds the addrsplit command tree around a.
func newRootCommand(a *app, version string) *cobra.Command {
	root := &cobra.Command{
		Use:           "addrsplit",
		Short:         "Split a pasted recipient line into name, phone and address fields",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "path to the YAML config file (default ~/.config/addrsplit/config.yaml)")
	pf.StringVar(&a.envFile, "env-file", "", "path to a .env file (default ~/.config/addrsplit/.env)")
	pf.StringVarP(&a.flags.Language, "language", "g", "", "message language, e.g. en or zh")
	pf.StringVar(&a.flags.LogFile, "log-file", "", "write logs to this rotating file instead of stderr")
	pf.IntVar(&a.flags.LogLevel, "log-level", 0, "debug level 0-4")
	pf.BoolVar(&a.flags.Debug, "debug", false, "debug mode")

	root.AddCommand(
		newServeCommand(a),
		newParseCommand(a),
		newVersionCommand(version),
	)
	return root
}

// load resolves the configuration: defaults, then the .env file and
// ADDRSPLIT_* variables, then the YAML file, then explicit flags.
func (a *app) load(cmd *cobra.Command) error {
	cfg := DefaultConfig()

	envFile := a.envFile
	if envFile == "" {
		var err error
		if envFile, err = getEnvFile(); err != nil {
			return err
		}
	}
	if err := loadEnvFile(envFile); err != nil {
		return err
	}
	applyEnv(&cfg)

	// Messages while reading the config file use the best language known so far.
	flags := cmd.Flags()
	lang := cfg.Language
	if flags.Changed("language") {
		lang = a.flags.Language
	}
	if _, err := i18n.Init(lang); err != nil {
		return err
	}

	if err := loadConfigFile(a.configPath, &cfg); err != nil {
		return err
	}

	if flags.Changed("host") {
		cfg.Host = a.flags.Host
	}
	if flags.Changed("port") {
		cfg.Port = a.flags.Port
	}
	if flags.Changed("debug") {
		cfg.Debug = a.flags.Debug
	}
	if flags.Changed("language") {
		cfg.Language = a.flags.Language
	}
	if flags.Changed("log-file") {
		cfg.LogFile = a.flags.LogFile
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = a.flags.LogLevel
	}
	a.cfg = cfg

	if _, err := i18n.Init(cfg.Language); err != nil {
		return err
	}

	if cfg.LogFile != "" {
		if err := a.closeLog(); err != nil {
			return err
		}
		a.logFile = log.RotatingFile(cfg.LogFile)
		log.SetOutput(a.logFile)
	}
	level := log.LevelFromInt(cfg.LogLevel)
	if cfg.Debug && level < log.Detailed {
		level = log.Detailed
	}
	log.SetLevel(level)
	log.Debug(log.Basic, "config: host=%s port=%d debug=%t language=%q\n", cfg.Host, cfg.Port, cfg.Debug, cfg.Language)
	return nil
}

func newVersionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println(version)
		},
	}
}
