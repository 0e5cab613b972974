package cli

import (
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pypack/internal/adapters"
)

type checksumOptions struct {
	Files     []string
	Algorithm string
	Expected  string
}

func newChecksumCommand() *cobra.Command {
	opts := checksumOptions{}
	cmd := &cobra.Command{
		Use:   "checksum <file>...",
		Short: "Compute file checksums",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Files = args
			return runChecksum(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Algorithm, "algorithm", "sha256", "Digest algorithm (sha256 or md5)")
	cmd.Flags().StringVar(&opts.Expected, "expect", "", "Fail unless the sha256 digest matches")
	_ = viper.BindPFlag("checksum_algorithm", cmd.Flags().Lookup("algorithm"))
	_ = viper.BindPFlag("checksum_expect", cmd.Flags().Lookup("expect"))
	return cmd
}

func runChecksum(cmd *cobra.Command, opts checksumOptions) error {
	algorithm := resolveString(cmd, opts.Algorithm, "checksum_algorithm", "algorithm")
	expected := resolveString(cmd, opts.Expected, "checksum_expect", "expect")

	for _, file := range opts.Files {
		if expected != "" {
			ok, err := adapters.CheckSHA256Hash(file, expected)
			if err != nil {
				return err
			}
			if !ok {
				return errbuilder.New().
					WithCode(errbuilder.CodeFailedPrecondition).
					WithMsg("checksum mismatch for " + file)
			}
			fmt.Printf("%s: ok\n", file)
			continue
		}

		var digest string
		var err error
		switch algorithm {
		case "sha256":
			digest, err = adapters.SHA256Hash(file)
		case "md5":
			digest, err = adapters.MD5Hash(file)
		default:
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("unknown digest algorithm: " + algorithm)
		}
		if err != nil {
			return err
		}
		fmt.Printf("%s  %s\n", digest, file)
	}
	return nil
}
