package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/wtw0212/ff14-stratboard-decode/internal/config"
	"github.com/wtw0212/ff14-stratboard-decode/pkg/logging"
	"github.com/wtw0212/ff14-stratboard-decode/pkg/stgy"
)

const version = "0.2.0"

var (
	logLevel         string
	jsonLog          bool
	compressionLevel int
	seedChar         string
	versionFlag      bool
	rootCmd          *cobra.Command
)

func getBuildTimestamp() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.time" {
				if t, err := time.Parse(time.RFC3339, setting.Value); err == nil {
					return t.UTC().Format(time.RFC3339)
				}
			}
		}
	}
	if exePath, err := os.Executable(); err == nil {
		if stat, err := os.Stat(exePath); err == nil {
			return stat.ModTime().UTC().Format(time.RFC3339)
		}
	}
	return time.Now().UTC().Format(time.RFC3339)
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "stgy",
		Short:         "Decode, encode and edit strategy board codes",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if versionFlag {
				printVersion(cmd)
				return nil
			}
			return cmd.Help()
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&logLevel, "log-level", "", "Log level (trace, debug, info, warn, error); overrides STGY_LOG_LEVEL")
	flags.BoolVar(&jsonLog, "json-log", false, "Emit logs as JSON; overrides STGY_JSON_LOG")
	flags.IntVar(&compressionLevel, "level", 0, "Deflate level 1..9; overrides STGY_COMPRESSION_LEVEL")
	flags.StringVar(&seedChar, "seed", "", "Seed character for encoding; overrides STGY_SEED_CHAR")
	cmd.Flags().BoolVarP(&versionFlag, "version", "V", false, "Show version information")

	cmd.AddCommand(
		newDecodeCmd(),
		newEncodeCmd(),
		newSummaryCmd(),
		newAnalyzeCmd(),
		newHexdumpCmd(),
		newLocateCmd(),
		newModifyCmd(),
	)
	return cmd
}

func printVersion(cmd *cobra.Command) {
	fmt.Fprintf(cmd.OutOrStdout(), "stgy %s\n", version)
	fmt.Fprintf(cmd.OutOrStdout(), "Built: %s\n", getBuildTimestamp())
}

func init() {
	rootCmd = newRootCmd()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newCodec builds a codec from the environment, with command line flags
// taking precedence.
func newCodec(cmd *cobra.Command) (*stgy.Codec, hclog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("json-log") {
		cfg.JSONLog = jsonLog
	}
	if flags.Changed("level") {
		cfg.CompressionLevel = compressionLevel
	}
	if flags.Changed("seed") {
		cfg.SeedChar = seedChar
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	logger := logging.NewLogger("stgy", cfg.Level(), cfg.JSONLog, cmd.ErrOrStderr())
	codec, err := stgy.New(cfg.Options(logger))
	if err != nil {
		return nil, nil, err
	}
	return codec, logger, nil
}
