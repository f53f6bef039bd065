package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	atypes "github.com/turtacn/AnswerKey-Intelligence/pkg/types/answer"
)

// runCommand executes the root command with args and returns stdout.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestNewRootCommand_Structure(t *testing.T) {
	cmd := NewRootCommand()
	assert.Equal(t, "answerkey", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	names := make(map[string]bool)
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	for _, want := range []string{"analyze", "features", "ingest", "migrate"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}
}

func TestNewRootCommand_GlobalFlags(t *testing.T) {
	cmd := NewRootCommand()
	for _, name := range []string{"config", "lexicon", "output", "verbose"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), "missing flag %s", name)
	}
}

func TestFeatures_ExtractsFromText(t *testing.T) {
	out, err := runCommand(t, "features", "-o", "json",
		"--text", "Karl Marx developed conflict theory through historical materialism.")
	require.NoError(t, err)

	var features atypes.FeatureSet
	require.NoError(t, json.Unmarshal([]byte(out), &features))
	assert.Contains(t, features.Thinkers, "karl marx")
	assert.Contains(t, features.Theories, "conflict theory")
	assert.Contains(t, features.Keywords, "karl marx")
	assert.Equal(t, 8, features.WordCount)
}

func TestFeatures_TextAndFileAreExclusive(t *testing.T) {
	path := writeTempFile(t, "a.txt", "some text")
	_, err := runCommand(t, "features", "--text", "x", "--file", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestFeatures_RequiresInput(t *testing.T) {
	_, err := runCommand(t, "features")
	require.Error(t, err)
}

func TestAnalyze_RequiresFlags(t *testing.T) {
	_, err := runCommand(t, "analyze")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--answer is required")

	answer := writeTempFile(t, "answer.txt", "text")
	_, err = runCommand(t, "analyze", "--answer", answer)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--reference")
}

func TestAnalyze_PicksBestReference(t *testing.T) {
	text := "Functionalism views society as a system. Emile Durkheim studied social institutions and socialization in depth."
	answer := writeTempFile(t, "answer.txt", text)
	refSame := writeTempFile(t, "ref1.txt", text)
	refOther := writeTempFile(t, "ref2.txt", "Survey methods gather quantitative data from large samples quickly.")

	out, err := runCommand(t, "analyze",
		"--answer", answer,
		"--reference", refSame,
		"--reference", refOther)
	require.NoError(t, err)

	assert.Contains(t, out, "Best match: reference 1 of 2")
	assert.Contains(t, out, "overall:   1.000")
}

func TestAnalyze_JSONOutput(t *testing.T) {
	answer := writeTempFile(t, "answer.txt", "Max Weber analysed bureaucracy.")
	ref := writeTempFile(t, "ref.txt", "Max Weber analysed bureaucracy.")

	out, err := runCommand(t, "analyze", "-o", "json",
		"--answer", answer, "--reference", ref)
	require.NoError(t, err)

	var result struct {
		BestIndex     int `json:"best_index"`
		ComparedCount int `json:"compared_count"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 0, result.BestIndex)
	assert.Equal(t, 1, result.ComparedCount)
}

func TestIngest_PreviewsFeatureRecords(t *testing.T) {
	ref := writeTempFile(t, "topper.txt",
		"Social stratification divides society. Robert Merton refined functionalism.")

	out, err := runCommand(t, "ingest", "-o", "json",
		"--question-id", "q-soc-101",
		"--topper", "A. Sharma",
		"--year", "2023",
		ref)
	require.NoError(t, err)

	var previews []referencePreview
	require.NoError(t, json.Unmarshal([]byte(out), &previews))
	require.Len(t, previews, 1)
	assert.Equal(t, "topper.txt", previews[0].File)
	assert.Equal(t, "q-soc-101", previews[0].QuestionID)
	assert.Equal(t, 2023, previews[0].Year)
	assert.Contains(t, previews[0].Features.Thinkers, "robert merton")
}

func TestIngest_RequiresFiles(t *testing.T) {
	_, err := runCommand(t, "ingest")
	require.Error(t, err)
}

func TestMigrate_RequiresPath(t *testing.T) {
	_, err := runCommand(t, "migrate", "up")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no migrations path")
}

func TestCustomLexiconOverridesBuiltin(t *testing.T) {
	lex := writeTempFile(t, "lexicon.json",
		`{"theories": ["dependency theory"], "thinkers": ["raul prebisch"]}`)

	out, err := runCommand(t, "features", "-o", "json",
		"--lexicon", lex,
		"--text", "Raul Prebisch shaped dependency theory; Karl Marx is absent from this catalogue.")
	require.NoError(t, err)

	var features atypes.FeatureSet
	require.NoError(t, json.Unmarshal([]byte(out), &features))
	assert.Contains(t, features.Theories, "dependency theory")
	assert.Contains(t, features.Thinkers, "raul prebisch")
	assert.NotContains(t, features.Thinkers, "karl marx")
}
