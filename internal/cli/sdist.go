package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"pypack/internal/core"
)

func newSdistCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sdist <filename>...",
		Short: "Parse sdist filenames into project, version, and extension",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			for _, filename := range args {
				parsed, err := core.ParseSdistFilename(filename)
				if err != nil {
					return err
				}
				fmt.Printf("project=%s version=%s extension=%s\n",
					parsed.Project, parsed.Version, parsed.Extension)
			}
			return nil
		},
	}
}
