package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/msto63/mRW/pkg/core/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Zeigt die Version an",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "meinRECHENWERK v%s\n", version.Application)
		fmt.Fprintf(out, "  Rechner:    %s\n", version.ComponentVersion("calculator"))
		fmt.Fprintf(out, "  Verlauf:    %s\n", version.ComponentVersion("history"))
		fmt.Fprintf(out, "  Journal:    %s\n", version.ComponentVersion("journal"))
		fmt.Fprintf(out, "  Git Commit: %s\n", version.Commit)
		fmt.Fprintf(out, "  Build Date: %s\n", version.BuildDate)
		fmt.Fprintf(out, "  Go Version: %s\n", runtime.Version())
		fmt.Fprintf(out, "  OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
