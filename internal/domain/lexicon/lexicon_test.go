package lexicon

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/AnswerKey-Intelligence/pkg/errors"
)

func TestNew_RejectsEmptyLexicon(t *testing.T) {
	_, err := New(map[Category][]string{})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeLexiconInvalid, errors.GetCode(err))

	_, err = New(map[Category][]string{CategoryTheories: {"", "   "}})
	require.Error(t, err)
}

func TestNew_LowercasesTerms(t *testing.T) {
	l, err := New(map[Category][]string{CategoryThinkers: {"Karl Marx", " Max WEBER "}})
	require.NoError(t, err)
	assert.Equal(t, []string{"karl marx", "max weber"}, l.Terms(CategoryThinkers))
}

func TestNewSociologyLexicon_Catalogue(t *testing.T) {
	l := NewSociologyLexicon()

	assert.Contains(t, l.Terms(CategoryThinkers), "karl marx")
	assert.Contains(t, l.Terms(CategoryTheories), "conflict theory")
	assert.Contains(t, l.Terms(CategoryConcepts), "social mobility")
	assert.Contains(t, l.Terms(CategoryMethods), "ethnography")
}

func TestExtract_ThinkerAndTheory(t *testing.T) {
	l, err := New(map[Category][]string{
		CategoryThinkers: {"karl marx"},
		CategoryTheories: {"historical materialism"},
	})
	require.NoError(t, err)

	m := l.Extract("Karl Marx developed historical materialism as a method of analysis.")
	assert.Equal(t, []string{"karl marx"}, m.Thinkers)
	assert.Equal(t, []string{"historical materialism"}, m.Theories)
	assert.Equal(t, []string{"historical materialism", "karl marx"}, m.Keywords)
}

func TestExtract_EmptyInput(t *testing.T) {
	l := NewSociologyLexicon()

	for _, input := range []string{"", "   \n\t "} {
		m := l.Extract(input)
		assert.Empty(t, m.Keywords)
		assert.Empty(t, m.Thinkers)
		assert.Empty(t, m.Theories)
	}
}

func TestExtract_CaseInsensitive(t *testing.T) {
	l := NewSociologyLexicon()

	m := l.Extract("EMILE DURKHEIM studied SOCIALIZATION.")
	assert.Contains(t, m.Thinkers, "emile durkheim")
	assert.Contains(t, m.Keywords, "socialization")
}

func TestExtract_SubstringContainment(t *testing.T) {
	l := NewSociologyLexicon()

	// Containment is not word-boundary aware; "survey" inside
	// "surveys" and "interview" inside "interviewing" both match.
	m := l.Extract("The study ran surveys and interviewing sessions.")
	assert.Contains(t, m.Keywords, "survey")
	assert.Contains(t, m.Keywords, "interview")
}

func TestExtract_CategoryOrderInKeywords(t *testing.T) {
	l := NewSociologyLexicon()

	m := l.Extract("Max Weber criticised functionalism using qualitative interview data on socialization.")
	assert.Equal(t, []string{
		"functionalism",
		"max weber",
		"socialization",
		"qualitative",
		"interview",
	}, m.Keywords)
}

func TestExtract_Caps(t *testing.T) {
	terms := map[Category][]string{
		CategoryThinkers: {"t one", "t two", "t three", "t four", "t five", "t six", "t seven"},
		CategoryConcepts: {"c one", "c two", "c three", "c four", "c five", "c six"},
	}
	l, err := New(terms)
	require.NoError(t, err)

	text := "t one t two t three t four t five t six t seven c one c two c three c four c five c six"
	m := l.Extract(text)

	assert.Len(t, m.Keywords, MaxKeywords)
	assert.Len(t, m.Thinkers, MaxThinkers)
	assert.Equal(t, []string{"t one", "t two", "t three", "t four", "t five"}, m.Thinkers)
	assert.Empty(t, m.Theories)
}

func TestExtract_Deterministic(t *testing.T) {
	l := NewSociologyLexicon()
	text := "Talcott Parsons extended functionalism; social change followed."

	first := l.Extract(text)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, l.Extract(text))
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("valid file", func(t *testing.T) {
		path := filepath.Join(dir, "lexicon.json")
		content := `{"theories":["world systems theory"],"thinkers":["immanuel wallerstein"]}`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		l, err := LoadFile(path)
		require.NoError(t, err)

		m := l.Extract("Immanuel Wallerstein proposed world systems theory.")
		assert.Equal(t, []string{"immanuel wallerstein"}, m.Thinkers)
		assert.Equal(t, []string{"world systems theory"}, m.Theories)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(dir, "absent.json"))
		require.Error(t, err)
		assert.Equal(t, errors.ErrCodeLexiconInvalid, errors.GetCode(err))
	})

	t.Run("malformed json", func(t *testing.T) {
		path := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

		_, err := LoadFile(path)
		require.Error(t, err)
		assert.Equal(t, errors.ErrCodeLexiconInvalid, errors.GetCode(err))
	})
}
