package config

import (
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// RegisterFlags registers all CLI flags to a cobra command.
func RegisterFlags(cmd *cobra.Command) {
	configureFlags(cmd.Flags())
}

// newFlagCommand creates a cobra command with all flags configured.
func newFlagCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "hazcat",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	cmd.SetOut(os.Stdout)
	configureFlags(cmd.Flags())
	return cmd
}

// configureFlags sets up all CLI flags on the provided flag set.
func configureFlags(flags *pflag.FlagSet) {
	// Execution flags
	flags.Bool("run-dangerous", false, "Disable quarantine for DANGEROUS scenarios. A deadlock scenario may hang forever; without --timeout the only recovery is killing the process")
	flags.Duration("timeout", 2*time.Second, "Per-scenario execution bound (0 disables the bound)")
	flags.StringSlice("only", nil, "Run only the listed scenario IDs")
	flags.StringSlice("skip", nil, "Skip the listed scenario IDs")
	flags.IntP("iterations", "n", 1, "Number of soak passes over the SAFE/FLAKY subset")
	flags.IntP("rate", "r", 0, "Scenario executions per second during soak passes (0 means unpaced)")
	flags.String("scratch-dir", "", "Directory for scenario file artifacts and the run lock (default: system temp dir)")

	// Output flags
	flags.Bool("list", false, "List registered scenarios and exit")
	flags.Bool("json-output", false, "Emit JSON formatted output")
	flags.Bool("log-errors", false, "Log each failed scenario to stderr")
	flags.StringSlice("threshold", nil, "Harness-integrity threshold, e.g. 'harness_failures:count == 0' (repeatable)")
	flags.String("config", "", "Path to configuration file (JSON or YAML)")

	// Analyzer verification flags
	flags.Bool("verify", false, "Run the external analyzer and compare findings against the manifest")
	flags.String("manifest", "", "Path to the expected-findings YAML manifest")
	flags.String("analyzer", "go vet -json ./internal/scenarios/...", "Analyzer command producing JSON diagnostics")

	// Tracing flags
	flags.String("trace-endpoint", "", "OTLP trace exporter endpoint")
	flags.String("trace-protocol", "grpc", "OTLP protocol: 'grpc' or 'http'")
	flags.Bool("trace-insecure", false, "Disable TLS for the OTLP exporter")
	flags.Float64("trace-sample-rate", 1.0, "Trace sampling ratio between 0.0 and 1.0")
	flags.String("trace-service-name", "", "Service name reported on trace spans")
}
