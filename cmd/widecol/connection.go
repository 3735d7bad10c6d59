package main

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/arloliu/widecol/connection"
)

func newConnectionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "connection [flags]",
		Short: "Print the resolved store client properties.",
		Long: `Resolve the default and site configuration resources, apply the ZooKeeper
host and port overrides and print every property as key=value, sorted by key.`,
		Args: cobra.NoArgs,
		RunE: runConnection,
	}

	cmd.Flags().String("hosts", "", "comma-separated ZooKeeper hosts")
	cmd.Flags().String("port", "", "ZooKeeper client port")
	cmd.Flags().String("site", "", "site resource path or URL (default: "+connection.SiteResource+" on the conf dirs)")
	cmd.Flags().String("default", "", "default resource path or URL (default: "+connection.DefaultResource+" on the conf dirs)")
	cmd.Flags().StringSlice("conf-dir", []string{"."}, "directories searched for the well-known resources")

	return cmd
}

func runConnection(cmd *cobra.Command, args []string) error {
	dirs, err := cmd.Flags().GetStringSlice("conf-dir")
	if err != nil {
		return err
	}

	cfg := connection.Config{
		Hosts:         getString(cmd, "hosts"),
		Port:          getString(cmd, "port"),
		SiteConfig:    getString(cmd, "site"),
		DefaultConfig: getString(cmd, "default"),
		SearchPaths:   dirs,
	}

	props, err := connection.Resolve(cmd.Context(), cfg, connection.WithLogger(log.StandardLogger()))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, k := range props.Keys() {
		v, _ := props.Get(k)
		fmt.Fprintf(out, "%s=%s\n", k, v)
	}

	return nil
}
