package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inferlab/schemalens/version"
)

// versionCommand reports the build metadata the version package exposes.
func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:           "version",
		Short:         "Print version information",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(),
				"schemalens %s\nrevision: %s\nbuilt: %s by %s\ngo: %s %s/%s\n",
				orUnknown(version.Version), version.Revision,
				orUnknown(version.BuildDate), orUnknown(version.BuildUser),
				version.GoVersion, version.GoOS, version.GoArch)

			return err
		},
	}
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}

	return s
}
