package main

import (
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/avelar-dev/itinero"
	"github.com/avelar-dev/itinero/internal/logging"
	redisAdapter "github.com/avelar-dev/itinero/pkg/adapters/redis"
	"github.com/avelar-dev/itinero/pkg/config"
	"github.com/avelar-dev/itinero/pkg/persistence/sealed"
)

var rootCmd = &cobra.Command{
	Use:   "itinero",
	Short: "Itinero is a deterministic trip-planning workflow engine",
	Long: `Itinero plans trips through a fixed pipeline: weather evaluation,
hotel and flight search, budget filtering, ranking and itinerary synthesis.
Without flags it runs fully offline against deterministic demo data.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML configuration file")
	rootCmd.PersistentFlags().String("redis", "", "Redis address for session persistence (default: in-memory)")
	rootCmd.PersistentFlags().Bool("json-logs", false, "Emit JSON logs")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
}

// newLogger builds the logger from the persistent flags. Logs go to stderr so
// rendered output and JSON-RPC stay clean on stdout.
func newLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelInfo
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = slog.LevelDebug
	}
	if jsonLogs, _ := cmd.Flags().GetBool("json-logs"); jsonLogs {
		return logging.NewJSON(level)
	}
	return logging.New(level)
}

// buildPlanner assembles a Planner from the persistent flags plus any extra
// options the command needs.
func buildPlanner(cmd *cobra.Command, extra ...itinero.Option) (*itinero.Planner, error) {
	logger := newLogger(cmd)

	cfg := config.Default()
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	opts := []itinero.Option{
		itinero.WithConfig(cfg),
		itinero.WithLogger(logger),
	}

	if addr, _ := cmd.Flags().GetString("redis"); addr != "" {
		var storeOpts []redisAdapter.Option
		// ITINERO_SESSION_KEY enables encryption at rest (64 hex chars).
		if keyHex := os.Getenv("ITINERO_SESSION_KEY"); keyHex != "" {
			key, err := hex.DecodeString(keyHex)
			if err != nil {
				return nil, fmt.Errorf("invalid ITINERO_SESSION_KEY: %w", err)
			}
			sealer, err := sealed.New(key)
			if err != nil {
				return nil, fmt.Errorf("invalid ITINERO_SESSION_KEY: %w", err)
			}
			storeOpts = append(storeOpts, redisAdapter.WithSealer(sealer))
		}
		store := redisAdapter.New(addr, "", 0, storeOpts...)
		opts = append(opts, itinero.WithStore(store))
	}

	return itinero.New(append(opts, extra...)...)
}
