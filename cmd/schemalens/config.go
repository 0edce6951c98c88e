package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/inferlab/schemalens"
)

// Flags holds CLI flag names for schema-inference configuration, allowing
// callers to customize flag names while keeping sensible defaults via
// [NewConfig].
type Flags struct {
	Format  string
	Output  string
	Draft   string
	Indent  string
	Raw     string
	Cleanup string
}

// Config holds CLI flag values for schema-inference configuration.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags]. Use [Config.JSONSchemaVersion] to translate the
// parsed --draft value for [schemalens.Schema.ToJSONSchema].
type Config struct {
	Flags   Flags
	Format  string
	Output  string
	Draft   string
	Indent  int
	Raw     bool
	Cleanup bool
}

// knownFormats lists the --format values accepted by [Config.RegisterFlags]
// completions and newSource, matching spec.md §6's CLI/WASM
// format-tag set.
var knownFormats = []string{"json", "yaml", "cbor", "toml", "bson", "xml"}

var knownDrafts = []string{"2019-09", "draft-07", "openapi3"}

// NewConfig returns a new [Config] with default flag names.
func NewConfig() *Config {
	return &Config{
		Flags: Flags{
			Format:  "format",
			Output:  "output",
			Draft:   "draft",
			Indent:  "indent",
			Raw:     "raw",
			Cleanup: "xml-cleanup",
		},
	}
}

// RegisterFlags adds schema-inference flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&c.Format, c.Flags.Format, "f", "json",
		fmt.Sprintf("input format, one of: %v", knownFormats))
	flags.StringVarP(&c.Output, c.Flags.Output, "o", "-",
		"output file path (- for stdout)")
	flags.StringVar(&c.Draft, c.Flags.Draft, "2019-09",
		fmt.Sprintf("JSON Schema dialect, one of: %v", knownDrafts))
	flags.IntVar(&c.Indent, c.Flags.Indent, 2,
		"JSON indentation spaces")
	flags.BoolVar(&c.Raw, c.Flags.Raw, false,
		"emit the persisted Schema tree instead of a JSON Schema document")
	flags.BoolVar(&c.Cleanup, c.Flags.Cleanup, true,
		"apply the XML post-processor (only meaningful with --format xml)")
}

// RegisterCompletions registers shell completions for schema-inference
// flags on cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	err := cmd.RegisterFlagCompletionFunc(c.Flags.Format,
		cobra.FixedCompletions(slices.Clone(knownFormats), cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Format, err)
	}

	err = cmd.RegisterFlagCompletionFunc(c.Flags.Draft,
		cobra.FixedCompletions(slices.Clone(knownDrafts), cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Draft, err)
	}

	return nil
}

// JSONSchemaVersion translates the parsed --draft value into the version
// enum [schemalens.Schema.ToJSONSchema] expects.
func (c *Config) JSONSchemaVersion() (schemalens.JSONSchemaVersion, error) {
	switch c.Draft {
	case "2019-09":
		return schemalens.JSONSchemaDraft201909, nil
	case "draft-07":
		return schemalens.JSONSchemaDraft07, nil
	case "openapi3":
		return schemalens.JSONSchemaOpenAPI3, nil
	default:
		return 0, fmt.Errorf("%w: unknown draft %q", ErrInvalidOption, c.Draft)
	}
}
