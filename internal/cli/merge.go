package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pypack/internal/adapters"
	"pypack/internal/core"
	"pypack/internal/shared"
)

type mergeOptions struct {
	File    string
	Write   bool
	KeepDot bool
}

func newMergeCommand() *cobra.Command {
	opts := mergeOptions{}
	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Merge duplicated requirements in a requirements file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMerge(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.File, "file", "requirements.txt", "Requirements file to merge")
	cmd.Flags().BoolVar(&opts.Write, "write", false, "Rewrite the file instead of printing")
	cmd.Flags().BoolVar(&opts.KeepDot, "keep-dot", false, "Keep dots when normalizing names")
	_ = viper.BindPFlag("merge_file", cmd.Flags().Lookup("file"))
	_ = viper.BindPFlag("merge_write", cmd.Flags().Lookup("write"))
	_ = viper.BindPFlag("merge_keep_dot", cmd.Flags().Lookup("keep-dot"))
	return cmd
}

func runMerge(cmd *cobra.Command, opts mergeOptions) error {
	file := resolveString(cmd, opts.File, "merge_file", "file")
	requirements, comments, _, err := adapters.ReadRequirements(file, false)
	if err != nil {
		return err
	}

	var normalize core.NormalizeFunc
	if resolveBool(cmd, opts.KeepDot, "merge_keep_dot", "keep-dot") {
		normalize = shared.NormalizeKeepDot
	}
	merged := core.CombineRequirements(requirements, normalize)

	if resolveBool(cmd, opts.Write, "merge_write", "write") {
		return adapters.WriteRequirements(file, merged, comments)
	}
	core.SortRequirements(merged)
	for _, req := range merged {
		fmt.Println(req.String())
	}
	return nil
}
