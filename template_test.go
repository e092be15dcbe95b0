package strand

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileTemplate(t *testing.T) {
	t.Run("records parameter names in order", func(t *testing.T) {
		tpl, err := compileTemplate("/api/:action/:id")
		require.NoError(t, err)
		assert.Equal(t, []string{"action", "id"}, tpl.params)
		assert.Equal(t, 4, tpl.segments)
	})

	t.Run("rejects empty parameter name", func(t *testing.T) {
		_, err := compileTemplate("/api/:")
		assert.Error(t, err)
	})

	t.Run("rejects duplicated parameter name", func(t *testing.T) {
		_, err := compileTemplate("/:a/x/:a")
		assert.Error(t, err)
	})

	t.Run("literal segments are quoted", func(t *testing.T) {
		tpl, err := compileTemplate("/v1.0/:id")
		require.NoError(t, err)

		_, ok, _ := tpl.match("/v1x0/abc")
		assert.False(t, ok)

		vars, ok, _ := tpl.match("/v1.0/abc")
		assert.True(t, ok)
		assert.Equal(t, "abc", vars["id"])
	})
}

func TestTemplateMatch(t *testing.T) {
	t.Run("binds named segments", func(t *testing.T) {
		tpl, err := compileTemplate("/hello/:name")
		require.NoError(t, err)

		vars, ok, _ := tpl.match("/hello/world")
		assert.True(t, ok)
		assert.Equal(t, map[string]string{"name": "world"}, vars)
	})

	t.Run("extra path segment never matches", func(t *testing.T) {
		tpl, err := compileTemplate("/api/:a/:b")
		require.NoError(t, err)

		_, ok, _ := tpl.match("/api/x/y/z")
		assert.False(t, ok)
	})

	t.Run("missing segment never matches", func(t *testing.T) {
		tpl, err := compileTemplate("/api/:a/:b")
		require.NoError(t, err)

		_, ok, _ := tpl.match("/api/x")
		assert.False(t, ok)
	})

	t.Run("empty capture invalidates the match", func(t *testing.T) {
		tpl, err := compileTemplate("/api/:action")
		require.NoError(t, err)

		_, ok, empty := tpl.match("/api/")
		assert.False(t, ok)
		assert.True(t, empty)
	})

	t.Run("multiple parameters bind independently", func(t *testing.T) {
		tpl, err := compileTemplate("/:a/sep/:b")
		require.NoError(t, err)

		vars, ok, _ := tpl.match("/left/sep/right")
		assert.True(t, ok)
		assert.Equal(t, "left", vars["a"])
		assert.Equal(t, "right", vars["b"])
	})
}

func TestHasParams(t *testing.T) {
	assert.True(t, hasParams("/api/:action"))
	assert.False(t, hasParams("/api/action"))
	assert.False(t, hasParams("/time/12:30")) // colon not at segment start
}
