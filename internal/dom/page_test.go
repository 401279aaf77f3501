package dom

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"letterbox/internal/collector"
	"letterbox/internal/puzzle"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestShippedPageMarkup checks web/index.html carries every element the
// binding looks up.
func TestShippedPageMarkup(t *testing.T) {
	raw, err := os.ReadFile(filepath.Join("..", "..", "web", "index.html"))
	require.NoError(t, err)
	html := string(raw)

	for _, id := range []string{SolveButtonID, ClearButtonID, ResultsID, SolutionsListID} {
		assert.Contains(t, html, `id="`+id+`"`)
	}
	assert.Equal(t, puzzle.CellCount, strings.Count(html, `class="`+LetterClass+` `))
	assert.Contains(t, html, `id="results" class="`+HiddenClass+`"`, "results start hidden")
	assert.Contains(t, html, ">"+collector.SubmitLabel+"<")
}
