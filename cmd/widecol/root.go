package main

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Version is filled when building with -ldflags, but not when installing via
// "go install".
var Version string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "widecol",
		Short:         "Flatten wide-column rows into tuples.",
		Long:          "Decode wide-column store rows into flat tuples and inspect store client configuration.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if getFlag(cmd, "verbose") {
				log.SetLevel(log.DebugLevel)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if getFlag(cmd, "version") {
				printVersion(cmd.OutOrStdout())
				return nil
			}

			return cmd.Help()
		},
	}

	root.Flags().Bool("version", false, "report version of this executable")
	root.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")

	root.AddCommand(newDecodeCmd(), newConnectionCmd())

	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func printVersion(w io.Writer) {
	fmt.Fprint(w, "widecol ")
	if Version != "" {
		fmt.Fprint(w, Version)
	} else if info, ok := debug.ReadBuildInfo(); ok {
		fmt.Fprint(w, info.Main.Version)
	} else {
		fmt.Fprint(w, "(unknown version)")
	}
	fmt.Fprintln(w)
}

func getFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		log.Fatal(err)
	}

	return r
}

func getString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		log.Fatal(err)
	}

	return r
}
