package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pypack/internal/core"
)

type latestOptions struct {
	Project string
	All     bool
	NoDev   bool
	NoPre   bool
}

func newLatestCommand() *cobra.Command {
	opts := latestOptions{}
	cmd := &cobra.Command{
		Use:   "latest <project>",
		Short: "Show the latest version of a project on PyPI",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Project = args[0]
			return runLatest(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().BoolVar(&opts.All, "all", false, "List every released version")
	cmd.Flags().BoolVar(&opts.NoDev, "no-dev", false, "Skip -dev versions when listing")
	cmd.Flags().BoolVar(&opts.NoPre, "no-pre", false, "Skip prerelease versions when listing")
	_ = viper.BindPFlag("latest_all", cmd.Flags().Lookup("all"))
	_ = viper.BindPFlag("latest_no_dev", cmd.Flags().Lookup("no-dev"))
	_ = viper.BindPFlag("latest_no_pre", cmd.Flags().Lookup("no-pre"))
	return cmd
}

func runLatest(ctx context.Context, cmd *cobra.Command, opts latestOptions) error {
	service := newAppService()
	if !resolveBool(cmd, opts.All, "latest_all", "all") {
		latest, err := service.Index.LatestVersion(ctx, opts.Project)
		if err != nil {
			return err
		}
		fmt.Println(latest)
		return nil
	}

	releases, err := service.Index.Releases(ctx, opts.Project)
	if err != nil {
		return err
	}
	versions := make([]string, 0, len(releases))
	for version := range releases {
		versions = append(versions, version)
	}
	if resolveBool(cmd, opts.NoDev, "latest_no_dev", "no-dev") {
		versions = core.NoDevVersions(versions)
	}
	if resolveBool(cmd, opts.NoPre, "latest_no_pre", "no-pre") {
		versions = core.NoPreVersions(versions)
	}
	sort.Strings(versions)
	for _, version := range versions {
		fmt.Println(version)
	}
	return nil
}
