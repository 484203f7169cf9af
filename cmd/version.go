package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/notargets/gosoliton/linalg"
)

// Version is replaced at link time with -ldflags "-X github.com/notargets/gosoliton/cmd.Version=..."
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and the linear algebra configuration",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "gosoliton %s (%s %s/%s)\n", Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
		fmt.Fprintf(out, "backends: %v, BLAS/LAPACK: %s\n", linalg.Names(), linalg.Accelerator())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
