package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pypack/internal/adapters"
)

type classifiersOptions struct {
	File    string
	Suggest string
}

func newClassifiersCommand() *cobra.Command {
	opts := classifiersOptions{}
	cmd := &cobra.Command{
		Use:   "classifiers",
		Short: "Validate trove classifiers or suggest them from requirements",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runClassifiers(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.File, "file", "", "File with one classifier per line to validate")
	cmd.Flags().StringVar(&opts.Suggest, "suggest-from", "", "Requirements file to suggest classifiers from")
	_ = viper.BindPFlag("classifiers_file", cmd.Flags().Lookup("file"))
	_ = viper.BindPFlag("classifiers_suggest_from", cmd.Flags().Lookup("suggest-from"))
	return cmd
}

func runClassifiers(cmd *cobra.Command, opts classifiersOptions) error {
	service := newAppService()
	file := resolveString(cmd, opts.File, "classifiers_file", "file")
	suggestFrom := resolveString(cmd, opts.Suggest, "classifiers_suggest_from", "suggest-from")

	if suggestFrom != "" {
		requirements, _, _, err := adapters.ReadRequirements(suggestFrom, false)
		if err != nil {
			return err
		}
		for _, classifier := range service.Classifiers.SuggestFromRequirements(requirements) {
			fmt.Println(classifier)
		}
		return nil
	}
	if file == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("either --file or --suggest-from is required")
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("failed to read classifiers file: " + file).
			WithCause(err)
	}
	var classifiers []string
	for _, line := range strings.Split(string(data), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			classifiers = append(classifiers, line)
		}
	}
	if service.Classifiers.Validate(classifiers) {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("unknown classifiers in " + file)
	}
	return nil
}
