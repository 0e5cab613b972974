package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pypack/internal/adapters"
)

type recordOptions struct {
	Files      []string
	RelativeTo string
}

func newRecordCommand() *cobra.Command {
	opts := recordOptions{}
	cmd := &cobra.Command{
		Use:   "record <file>...",
		Short: "Print RECORD entries for files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Files = args
			return runRecord(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.RelativeTo, "relative-to", "", "Record paths relative to this directory")
	_ = viper.BindPFlag("record_relative_to", cmd.Flags().Lookup("relative-to"))
	return cmd
}

func runRecord(cmd *cobra.Command, opts recordOptions) error {
	relativeTo := resolveString(cmd, opts.RelativeTo, "record_relative_to", "relative-to")
	for _, file := range opts.Files {
		entry, err := adapters.RecordEntry(file, relativeTo)
		if err != nil {
			return err
		}
		fmt.Println(entry)
	}
	return nil
}
