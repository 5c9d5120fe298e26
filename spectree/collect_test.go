package spectree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectFiles(t *testing.T) {
	specs := []Spec{
		createSpec("cypress", "s1"),
		createSpec("cypress/d1", "s2"),
		createSpec("cypress/d1/d2", "s3"),
		createSpec("cypress/d1/d2", "s4"),
		createSpec("cypress/q2/q3/q4/q5", "s5"),
	}
	tree, err := Derive(specs, Options{})
	require.NoError(t, err)

	names := func(files []*FileNode) []string {
		var out []string
		for _, f := range files {
			out = append(out, f.Name)
		}
		return out
	}

	t.Run("root", func(t *testing.T) {
		assert.Len(t, CollectFiles(tree.Root), len(specs))
	})

	t.Run("subtree", func(t *testing.T) {
		d1, ok := tree.Lookup("cypress/d1")
		require.True(t, ok)
		assert.ElementsMatch(t, []string{"s2.cy.ts", "s3.cy.ts", "s4.cy.ts"}, names(CollectFiles(d1)))
	})

	t.Run("no subdirectories", func(t *testing.T) {
		d2, ok := tree.Lookup("cypress/d1/d2")
		require.True(t, ok)
		assert.ElementsMatch(t, Files(d2.Children()), CollectFiles(d2))
	})

	t.Run("only directories above the file", func(t *testing.T) {
		q2, ok := tree.Lookup("cypress/q2")
		require.True(t, ok)
		assert.Empty(t, Files(q2.Children()))
		assert.Equal(t, []string{"s5.cy.ts"}, names(CollectFiles(q2)))
	})

	t.Run("nil", func(t *testing.T) {
		assert.Empty(t, CollectFiles(nil))
	})
}

func TestSummarize(t *testing.T) {
	tree, err := Derive([]Spec{
		createSpec("cypress", "b"),
		createSpec("cypress/e2e", "a"),
	}, Options{})
	require.NoError(t, err)

	cypress, _ := tree.Lookup("cypress")
	summary := Summarize(cypress)
	assert.Equal(t, 2, summary.Count)
	assert.Equal(t, []string{"a.cy.ts", "b.cy.ts"}, summary.Names)
	assert.Equal(t, "2 specs: a.cy.ts, b.cy.ts", summary.String())

	e2e, _ := tree.Lookup("cypress/e2e")
	assert.Equal(t, "1 spec: a.cy.ts", Summarize(e2e).String())

	empty, err := Derive(nil, Options{})
	require.NoError(t, err)
	assert.Equal(t, "0 specs", Summarize(empty.Root).String())
}
