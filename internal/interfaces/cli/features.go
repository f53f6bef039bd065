package cli

import (
	"github.com/spf13/cobra"
)

// newFeaturesCmd extracts lexicon and structural features from a text.
func newFeaturesCmd(opts *RootOptions) *cobra.Command {
	var (
		text string
		file string
	)

	cmd := &cobra.Command{
		Use:   "features",
		Short: "Extract keywords, thinkers, theories, and structure from a text",
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readTextArg(text, file)
			if err != nil {
				return err
			}

			svc, err := newOfflineService(opts)
			if err != nil {
				return err
			}

			return printResult(cmd, opts, svc.ExtractFeatures(input))
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "answer text to analyse")
	cmd.Flags().StringVar(&file, "file", "", "path to a file containing the answer text")

	return cmd
}
