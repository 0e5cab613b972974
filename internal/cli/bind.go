package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pypack/internal/types"
)

type bindOptions struct {
	File      string
	Specifier string
}

func newBindCommand() *cobra.Command {
	opts := bindOptions{}
	cmd := &cobra.Command{
		Use:   "bind",
		Short: "Bind unbound requirements to the latest version on PyPI",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBind(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.File, "file", "requirements.txt", "Requirements file to rewrite")
	cmd.Flags().StringVar(&opts.Specifier, "specifier", ">=", "Operator used for new pins")
	_ = viper.BindPFlag("bind_file", cmd.Flags().Lookup("file"))
	_ = viper.BindPFlag("bind_specifier", cmd.Flags().Lookup("specifier"))
	return cmd
}

func runBind(ctx context.Context, cmd *cobra.Command, opts bindOptions) error {
	service := newAppService()
	changed, err := service.BindRequirements(
		ctx,
		resolveString(cmd, opts.File, "bind_file", "file"),
		types.SpecifierOp(resolveString(cmd, opts.Specifier, "bind_specifier", "specifier")),
		nil,
	)
	if err != nil {
		return err
	}
	if changed {
		fmt.Println("requirements updated")
	} else {
		fmt.Println("requirements unchanged")
	}
	return nil
}
