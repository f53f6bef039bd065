package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	atypes "github.com/turtacn/AnswerKey-Intelligence/pkg/types/answer"
)

// referencePreview is what ingest prints for each file: the metadata
// the API ingestion endpoint would store, with the features extracted
// the same way the server does it.
type referencePreview struct {
	File          string            `json:"file"`
	QuestionID    string            `json:"question_id"`
	TopperName    string            `json:"topper_name"`
	Year          int               `json:"year"`
	Rank          int               `json:"rank,omitempty"`
	MarksObtained float64           `json:"marks_obtained,omitempty"`
	WordCount     int               `json:"word_count"`
	Features      atypes.FeatureSet `json:"features"`
}

// newIngestCmd previews reference answer ingestion: it reads the topper
// answer files and prints the feature records the API would persist.
// Actual persistence goes through POST /reference-answers.
func newIngestCmd(opts *RootOptions) *cobra.Command {
	var (
		questionID string
		topperName string
		year       int
		rank       int
		marks      float64
	)

	cmd := &cobra.Command{
		Use:   "ingest [files...]",
		Short: "Preview the feature records for topper answer files",
		Long:  "Extracts features from each topper answer file and prints the record the\nAPI server would persist. Use the HTTP API to actually ingest.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newOfflineService(opts)
			if err != nil {
				return err
			}

			previews := make([]referencePreview, 0, len(args))
			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("failed to read %s: %w", path, err)
				}

				features := svc.ExtractFeatures(string(data))
				previews = append(previews, referencePreview{
					File:          filepath.Base(path),
					QuestionID:    questionID,
					TopperName:    topperName,
					Year:          year,
					Rank:          rank,
					MarksObtained: marks,
					WordCount:     features.WordCount,
					Features:      features,
				})
			}

			return printResult(cmd, opts, previews)
		},
	}

	cmd.Flags().StringVar(&questionID, "question-id", "", "question the topper answers belong to")
	cmd.Flags().StringVar(&topperName, "topper", "", "topper name recorded with the answers")
	cmd.Flags().IntVar(&year, "year", 0, "exam year")
	cmd.Flags().IntVar(&rank, "rank", 0, "topper rank")
	cmd.Flags().Float64Var(&marks, "marks", 0, "marks obtained")

	return cmd
}
