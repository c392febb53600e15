package cli

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Urooyo/lylvey/internal/config"
	"github.com/Urooyo/lylvey/internal/logging"
)

var (
	verbose    bool
	configPath string
	logger     *logging.Logger
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "lylvey",
	Short: "Time lyrics against audio or video",
	Long: `Lylvey is a lyrics timing editor.

Load a song, type or import the lyrics, stamp each line with start and end
times, preview the result karaoke-style and export it as an SRT file.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = logging.NewLogger(verbose)

		// API keys may live in .env; a missing file is fine
		if err := godotenv.Load(); err == nil {
			logger.Debugw("Loaded .env")
		}

		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
		if cfg.Path() != "" {
			logger.Debugw("Loaded config", "path", cfg.Path())
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			logger.Close()
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		StringVar(&configPath, "config", "", "Settings file (default ./lylvey.yaml)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output file path")
	rootCmd.PersistentFlags().
		StringP("language", "l", "", "Language of the lyrics (e.g., en, ko, ja)")
}
