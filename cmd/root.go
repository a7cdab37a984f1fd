package cmd

import (
	"io"
	"log/slog"
	"os"
	"unicode"
	"unicode/utf8"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	sourceURL  string
	outputFile string
	timeout    int
	configPath string
	verbose    bool
)

// RootCmd represents the base command; run without subcommands it builds the card table
var RootCmd = &cobra.Command{
	Use:   "inktable",
	Short: "Convert the LorcanaJSON card dataset into a CARDS lookup table",
	Long: `Inktable downloads the LorcanaJSON allCards.json dataset and rewrites it as a flat
lookup table keyed by each card's simple name, one line per card.

Settings are read from XDG_CONFIG_HOME/inktable/config.toml, which is created with
defaults on first run. Flags override the config file.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupOutput(cmd)
	},
	RunE: runConvert,
}

func init() {
	RootCmd.AddCommand(validateCmd)
	RootCmd.AddCommand(showCmd)

	RootCmd.PersistentFlags().StringVar(&sourceURL, "url", "", "dataset URL (default from config)")
	RootCmd.PersistentFlags().IntVar(&timeout, "timeout", 0, "request timeout in seconds (default from config)")
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $XDG_CONFIG_HOME/inktable/config.toml)")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug diagnostics to stderr")

	RootCmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file (default from config)")
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return RootCmd.Execute()
}

// Report prints err to w in red with its first letter capitalized
func Report(w io.Writer, err error) {
	msg := err.Error()
	if r, size := utf8.DecodeRuneInString(msg); size > 0 {
		msg = string(unicode.ToUpper(r)) + msg[size:]
	}
	colorize.New(colorize.FgRed).Fprintln(w, msg)
}

// setupOutput configures slog and disables color when stdout is not a terminal
func setupOutput(cmd *cobra.Command) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))

	if cmd.OutOrStdout() != os.Stdout || !term.IsTerminal(int(os.Stdout.Fd())) {
		colorize.NoColor = true
	}
}
