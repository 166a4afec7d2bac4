package main

import (
	"fmt"
	"runtime"

	"github.com/opticore/jwt/internal/cmdutil"
	"github.com/spf13/cobra"
)

// Set at build time with -ldflags "-X main.version=... -X main.gitCommit=...".
var (
	version   = "0.0.0-dev"
	gitCommit = "unknown"
)

type versionInfo struct {
	Name      string `json:"name" yaml:"name" text:"Name"`
	Version   string `json:"version" yaml:"version" text:"Version"`
	GitCommit string `json:"gitCommit" yaml:"gitCommit" text:"GitCommit"`
	GoVersion string `json:"goVersion" yaml:"goVersion" text:"GoVersion"`
	Platform  string `json:"platform" yaml:"platform" text:"Platform"`
}

// NewVersionCommand returns a new version command.
func NewVersionCommand() *cobra.Command {
	var (
		short bool
	)

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version of jwtoken",
		RunE: func(c *cobra.Command, args []string) error {
			if short {
				fmt.Fprintln(c.OutOrStdout(), version)
				return nil
			}

			format, _ := c.Flags().GetString("output")
			out, err := cmdutil.MarshalStruct(versionInfo{
				Name:      "jwtoken",
				Version:   version,
				GitCommit: gitCommit,
				GoVersion: runtime.Version(),
				Platform:  runtime.GOOS + "/" + runtime.GOARCH,
			}, format)
			if err != nil {
				return err
			}
			_, err = c.OutOrStdout().Write(out)
			return err
		},
	}

	cmd.Flags().BoolVarP(&short, "short", "s", false, "Print the version number only")

	return cmd
}
