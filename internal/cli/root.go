package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"kachaka-map-exporter/internal/version"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "kachaka-map-exporter",
		Short:         "Export maps from Kachaka robots to a central edge PC",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(NewExportCmd())
	cmd.AddCommand(NewCheckCmd())
	cmd.AddCommand(NewVersionCmd())

	cmd.SetVersionTemplate(fmt.Sprintf("%s (%s/%s)\n", version.Version, runtime.GOOS, runtime.GOARCH))
	cmd.Version = version.Version

	return cmd
}
