package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pypack/internal/app"
)

func newCondaCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "conda",
		Short: "Work with Conda channels and recipes",
	}
	cmd.AddCommand(newCondaListCommand())
	cmd.AddCommand(newCondaClearCacheCommand())
	cmd.AddCommand(newCondaRecipeCommand())
	return cmd
}

func newCondaListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list <channel>",
		Short: "List the packages available in a Conda channel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service := newAppService()
			packages, err := service.Conda.ChannelPackages(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			for _, pkg := range packages {
				fmt.Println(pkg)
			}
			return nil
		},
	}
}

func newCondaClearCacheCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear-cache [channel]...",
		Short: "Clear cached Conda channel listings",
		RunE: func(_ *cobra.Command, args []string) error {
			service := newAppService()
			return service.Conda.ClearCache(args...)
		},
	}
}

type condaRecipeOptions struct {
	RepoDir  string
	Name     string
	Version  string
	Summary  string
	Homepage string
	License  string
	Channels []string
	Extras   []string
	OutDir   string
}

func newCondaRecipeCommand() *cobra.Command {
	opts := condaRecipeOptions{}
	cmd := &cobra.Command{
		Use:   "recipe",
		Short: "Render a conda meta.yaml from a repository's requirements",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCondaRecipe(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.RepoDir, "repo-dir", ".", "Repository root containing requirements.txt")
	cmd.Flags().StringVar(&opts.Name, "name", "", "Package name")
	cmd.Flags().StringVar(&opts.Version, "version", "", "Package version")
	cmd.Flags().StringVar(&opts.Summary, "summary", "", "Package summary")
	cmd.Flags().StringVar(&opts.Homepage, "homepage", "", "Project homepage")
	cmd.Flags().StringVar(&opts.License, "license", "", "License name")
	cmd.Flags().StringSliceVar(&opts.Channels, "channel", nil, "Conda channels to validate against")
	cmd.Flags().StringSliceVar(&opts.Extras, "extra", nil, "Additional requirement strings")
	cmd.Flags().StringVar(&opts.OutDir, "out-dir", "conda", "Directory for the rendered meta.yaml")
	_ = viper.BindPFlag("recipe_repo_dir", cmd.Flags().Lookup("repo-dir"))
	_ = viper.BindPFlag("recipe_name", cmd.Flags().Lookup("name"))
	_ = viper.BindPFlag("recipe_version", cmd.Flags().Lookup("version"))
	_ = viper.BindPFlag("recipe_summary", cmd.Flags().Lookup("summary"))
	_ = viper.BindPFlag("recipe_homepage", cmd.Flags().Lookup("homepage"))
	_ = viper.BindPFlag("recipe_license", cmd.Flags().Lookup("license"))
	_ = viper.BindPFlag("recipe_channels", cmd.Flags().Lookup("channel"))
	_ = viper.BindPFlag("recipe_extras", cmd.Flags().Lookup("extra"))
	_ = viper.BindPFlag("recipe_out_dir", cmd.Flags().Lookup("out-dir"))
	return cmd
}

func runCondaRecipe(ctx context.Context, cmd *cobra.Command, opts condaRecipeOptions) error {
	service := newAppService()

	requirements, err := service.CompileCondaRequirements(
		resolveString(cmd, opts.RepoDir, "recipe_repo_dir", "repo-dir"),
		resolveStrings(cmd, opts.Extras, "recipe_extras", "extra"),
	)
	if err != nil {
		return err
	}
	channels := resolveStrings(cmd, opts.Channels, "recipe_channels", "channel")
	if len(channels) > 0 {
		requirements, err = service.ValidateCondaRequirements(ctx, requirements, channels)
		if err != nil {
			return err
		}
	}

	path, err := app.WriteCondaRecipe(app.CondaRecipe{
		Name:         resolveString(cmd, opts.Name, "recipe_name", "name"),
		Version:      resolveString(cmd, opts.Version, "recipe_version", "version"),
		Summary:      resolveString(cmd, opts.Summary, "recipe_summary", "summary"),
		Homepage:     resolveString(cmd, opts.Homepage, "recipe_homepage", "homepage"),
		License:      resolveString(cmd, opts.License, "recipe_license", "license"),
		Channels:     channels,
		Requirements: requirements,
	}, resolveString(cmd, opts.OutDir, "recipe_out_dir", "out-dir"))
	if err != nil {
		return err
	}
	fmt.Printf("wrote recipe to %s\n", path)
	return nil
}
