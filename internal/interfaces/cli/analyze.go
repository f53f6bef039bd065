package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	atypes "github.com/turtacn/AnswerKey-Intelligence/pkg/types/answer"
)

// newAnalyzeCmd compares one candidate answer file against one or more
// reference files and prints the winning scores and feedback.
func newAnalyzeCmd(opts *RootOptions) *cobra.Command {
	var (
		answerFile     string
		referenceFiles []string
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Score a candidate answer against reference answers",
		Long:  "Reads the candidate and reference texts from files, scores every pair,\nand reports the best match with synthesized feedback. Nothing is persisted.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if answerFile == "" {
				return fmt.Errorf("--answer is required")
			}
			if len(referenceFiles) == 0 {
				return fmt.Errorf("at least one --reference is required")
			}

			candidate, err := os.ReadFile(answerFile)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", answerFile, err)
			}

			references := make([]string, len(referenceFiles))
			for i, path := range referenceFiles {
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("failed to read %s: %w", path, err)
				}
				references[i] = string(data)
			}

			svc, err := newOfflineService(opts)
			if err != nil {
				return err
			}

			result, err := svc.Compare(&atypes.CompareRequest{
				CandidateText:  string(candidate),
				ReferenceTexts: references,
			})
			if err != nil {
				return err
			}

			if opts.OutputFormat == "text" {
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Best match: reference %d of %d (%s)\n",
					result.BestIndex+1, result.ComparedCount, referenceFiles[result.BestIndex])
				fmt.Fprintf(out, "  content:   %.3f\n", result.Scores.Content)
				fmt.Fprintf(out, "  keyword:   %.3f\n", result.Scores.Keyword)
				fmt.Fprintf(out, "  structure: %.3f\n", result.Scores.Structure)
				fmt.Fprintf(out, "  theory:    %.3f\n", result.Scores.Theory)
				fmt.Fprintf(out, "  overall:   %.3f\n", result.Scores.Overall)
				fmt.Fprintf(out, "\n%s\n", result.Feedback.Text)
				for _, s := range result.Feedback.Suggestions {
					fmt.Fprintf(out, "  - %s\n", s)
				}
				return nil
			}
			return printResult(cmd, opts, result)
		},
	}

	cmd.Flags().StringVar(&answerFile, "answer", "", "path to the candidate answer text file")
	cmd.Flags().StringArrayVar(&referenceFiles, "reference", nil, "path to a reference answer text file (repeatable)")

	return cmd
}
