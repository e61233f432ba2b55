package main

import (
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/dgc-network/smart/internal/app/version"
	"github.com/dgc-network/smart/internal/core/handler"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the tool and transaction family versions",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		info := version.GetBuildInfo()
		h := handler.New(nil, handler.Options{})
		pterm.DefaultTable.WithData([][]string{
			{"smart-tp", info.Version},
			{"built", info.BuildTime + " (" + info.BuildEnv + ")"},
			{"go", info.GoVersion + " " + info.Platform},
			{"family", h.FamilyName()},
			{"family versions", strings.Join(h.FamilyVersions(), ", ")},
			{"namespaces", strings.Join(h.AllNamespaces(), ", ")},
		}).Render()
	},
}
