// Package main provides the CLI entry point for schemalens, a tool that
// infers a structural schema from one or more JSON, YAML, CBOR, TOML,
// BSON, or XML documents and emits it as JSON Schema (or, with --raw, the
// persisted Schema tree itself).
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/inferlab/schemalens"
	"github.com/inferlab/schemalens/log"
	"github.com/inferlab/schemalens/profile"
	xmlpost "github.com/inferlab/schemalens/xml"
)

func main() {
	cfg := NewConfig()
	logCfg := log.NewConfig()
	profCfg := profile.NewConfig()

	rootCmd := &cobra.Command{
		Use:   "schemalens [flags] <file> [file2 ...]",
		Short: "Infer a structural schema from self-describing data files",
		Long: `schemalens infers a structural schema from one or many JSON, YAML, CBOR,
TOML, BSON, or XML documents, incorporating each document into a single
merged schema, and emits it as a JSON Schema document (or, with --raw, the
engine's own persisted Schema tree).`,
		Args:          cobra.MinimumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(_ *cobra.Command, args []string) error {
			handler, err := log.NewHandlerFromStrings(os.Stderr, logCfg.Level, logCfg.Format)
			if err != nil {
				return err
			}

			slog.SetDefault(slog.New(handler))

			prof := profCfg.NewProfiler()
			if err := prof.Start(); err != nil {
				return err
			}

			defer func() {
				if stopErr := prof.Stop(); stopErr != nil {
					slog.Error("stopping profiler", "error", stopErr)
				}
			}()

			return run(cfg, args)
		},
	}

	rootCmd.AddCommand(versionCommand())

	cfg.RegisterFlags(rootCmd.Flags())
	logCfg.RegisterFlags(rootCmd.Flags())
	profCfg.RegisterFlags(rootCmd.Flags())

	if err := cfg.RegisterCompletions(rootCmd); err != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", err)
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// run infers a schema from every input in args and writes the configured
// artifact to cfg.Output.
func run(cfg *Config, args []string) error {
	var schema *schemalens.Schema

	for _, arg := range args {
		data, err := readInput(arg)
		if err != nil {
			return err
		}

		src, err := newSource(cfg.Format, data)
		if err != nil {
			return err
		}

		if schema == nil {
			schema, err = schemalens.InferFromTokens(src)
		} else {
			err = schemalens.Extend(schema, src)
		}

		if err != nil {
			return fmt.Errorf("inferring from %s: %w", arg, err)
		}
	}

	if cfg.Format == "xml" && cfg.Cleanup {
		xmlpost.Cleanup(schema)
	}

	out, err := render(cfg, schema)
	if err != nil {
		return err
	}

	return writeOutput(cfg.Output, out)
}

func readInput(arg string) ([]byte, error) {
	if arg == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("%w: stdin: %w", ErrReadInput, err)
		}

		return data, nil
	}

	data, err := os.ReadFile(arg)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrReadInput, arg, err)
	}

	return data, nil
}

// render produces the configured output artifact for schema: the raw
// persisted Schema tree, or a JSON Schema document.
func render(cfg *Config, schema *schemalens.Schema) ([]byte, error) {
	indent := indentString(cfg.Indent)

	var (
		out []byte
		err error
	)

	if cfg.Raw {
		out, err = json.MarshalIndent(schema, "", indent)
	} else {
		var version schemalens.JSONSchemaVersion

		version, err = cfg.JSONSchemaVersion()
		if err == nil {
			out, err = json.MarshalIndent(schema.ToJSONSchema(version), "", indent)
		}
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	return append(out, '\n'), nil
}

func indentString(n int) string {
	if n <= 0 {
		return ""
	}

	indent := make([]byte, n)
	for i := range indent {
		indent[i] = ' '
	}

	return string(indent)
}

func writeOutput(path string, data []byte) error {
	if path == "" || path == "-" {
		if _, err := os.Stdout.Write(data); err != nil {
			return fmt.Errorf("%w: %w", ErrWriteOutput, err)
		}

		return nil
	}

	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // Output path from CLI flag is expected.
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	return nil
}
