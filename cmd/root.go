package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/golangdaddy/apexdrift/pkg/config"
	"github.com/golangdaddy/apexdrift/pkg/game"
	"github.com/golangdaddy/apexdrift/pkg/log"
	"github.com/golangdaddy/apexdrift/pkg/models"
)

const (
	envPrefix = "APEXDRIFT"
	appName   = "apexdrift"
)

// flags shared by every command
var (
	cfgFile    string
	tuningFile string
	seed       int64
	logLevel   string
	devLogging bool
)

var (
	width  int
	height int
	mute   bool
)

// rootCmd plays the game when called without a subcommand
var rootCmd = &cobra.Command{
	Use:   appName,
	Short: "Endless pseudo-3D racing with apex timing",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initLogging()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return play()
	},
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is $HOME/.apexdrift.yml)")
	rootCmd.PersistentFlags().StringVar(&tuningFile, "tuning", "",
		"YAML file overriding physics and generator tuning")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0,
		"track seed, 0 picks a new one per run")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info",
		"controls the log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&devLogging, "dev", false,
		"human readable development logging")

	rootCmd.Flags().IntVar(&width, "width", 1024, "window width")
	rootCmd.Flags().IntVar(&height, "height", 600, "window height")
	rootCmd.Flags().BoolVar(&mute, "mute", false, "disable sound")

	rootCmd.AddCommand(newSimulateCmd())
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("." + appName)
	}

	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	bindFlags(rootCmd, viper.GetViper())
	for _, cmd := range rootCmd.Commands() {
		bindFlags(cmd, viper.GetViper())
	}
}

// Bind each cobra flag to its associated viper configuration
// (config file and environment variable)
func bindFlags(cmd *cobra.Command, v *viper.Viper) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		// Environment variables can't have dashes in them, so bind them to their
		// equivalent keys with underscores, e.g. --log-level to APEXDRIFT_LOG_LEVEL
		if strings.Contains(f.Name, "-") {
			envVarSuffix := strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))
			if err := v.BindEnv(f.Name,
				fmt.Sprintf("%s_%s", envPrefix, envVarSuffix)); err != nil {
				fmt.Fprintf(os.Stderr, "Could not bind env var %s: %v", f.Name, err)
			}
		}
		// Apply the viper config value to the flag when the flag is not set and viper
		// has a value
		if !f.Changed && v.IsSet(f.Name) {
			val := v.Get(f.Name)
			if err := cmd.Flags().Set(f.Name, fmt.Sprintf("%v", val)); err != nil {
				fmt.Fprintf(os.Stderr, "Could not set flag value for %s: %v", f.Name, err)
			}
		}
	})
}

func initLogging() error {
	if devLogging {
		return log.InitDevelopmentLogger(logLevel)
	}
	return log.InitProductionLogger(logLevel)
}

// loadTuning returns the defaults or the tuning file on top of them
func loadTuning() (*config.Tuning, error) {
	if tuningFile == "" {
		return config.Default(), nil
	}
	t, err := config.Load(tuningFile)
	if err != nil {
		return nil, fmt.Errorf("tuning %s: %w", tuningFile, err)
	}
	return t, nil
}

func play() error {
	tuning, err := loadTuning()
	if err != nil {
		return err
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", width, height)
	}

	scores := models.OpenHighScoreStore(appName)
	g := game.NewGame(tuning, scores, game.Options{
		Width:  width,
		Height: height,
		Seed:   seed,
		Muted:  mute,
	})

	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle("Apex Drift")
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}
