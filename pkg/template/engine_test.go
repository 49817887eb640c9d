package template_test

import (
	"testing"

	. "github.com/pseudomuto/cppgen/pkg/template"
	"github.com/stretchr/testify/require"
)

func newEngine() *Engine {
	engine := New()
	engine.SetVariables(map[string]string{
		"PROJECT_NAME": "demo",
		"AUTHOR":       "jane",
	})
	engine.AddLibrary("core", "testdata/lib/core")
	engine.RegisterTemplate("banner", "// ${PROJECT_NAME} by ${AUTHOR}")
	engine.RegisterTemplate("getter", "return ${field};")
	return engine
}

func TestExpand(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{"plain text", "return 0;", "return 0;"},
		{"empty", "", ""},
		{"variable", "std::string name = \"${PROJECT_NAME}\";", "std::string name = \"demo\";"},
		{"repeated variable", "${AUTHOR}${AUTHOR}", "janejane"},
		{"unknown variable", "${MISSING} stays", "${MISSING} stays"},
		{"lone dollar", "cost $5 @ noon", "cost $5 @ noon"},
		{"unterminated placeholder", "${PROJECT_NAME", "${PROJECT_NAME"},
		{"template include", "@include(banner)\nreturn 1;", "// demo by jane\nreturn 1;"},
		{"library include", "@include(core::logging.inc)", `log("demo");`},
		{"unknown include", "a@include(nothing)b", "ab"},
		{"unknown library", "@include(other::x.h)", ""},
		{"missing component", "@include(core::missing.h)", ""},
		{"unterminated include", "@include(banner", "@include(banner"},
	}

	engine := newEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := engine.Expand(tt.text)
			require.NoError(t, err)
			require.Equal(t, tt.expected, result)
		})
	}
}

func TestResolve(t *testing.T) {
	engine := newEngine()

	content, ok := engine.Resolve("core::logging.inc")
	require.True(t, ok)
	require.Equal(t, `log("${PROJECT_NAME}");`, content)

	content, ok = engine.Resolve("banner")
	require.True(t, ok)
	require.Equal(t, "// demo by jane", content)

	_, ok = engine.Resolve("core::nope.h")
	require.False(t, ok)

	engine.RegisterTemplate("core::nope.h", "fallback")
	content, ok = engine.Resolve("core::nope.h")
	require.True(t, ok)
	require.Equal(t, "fallback", content)
}

func TestInclude(t *testing.T) {
	engine := newEngine()

	content, err := engine.Include("core::logging.inc")
	require.NoError(t, err)
	require.Equal(t, `log("demo");`, content)

	content, err = engine.Include("missing")
	require.NoError(t, err)
	require.Empty(t, content)

	require.True(t, engine.HasTemplate("banner"))
	require.False(t, engine.HasTemplate("missing"))
}

func TestApplyTemplate(t *testing.T) {
	engine := newEngine()

	result, err := engine.ApplyTemplate("getter", map[string]string{"field": "name_"})
	require.NoError(t, err)
	require.Equal(t, "return name_;", result)

	result, err = engine.ApplyTemplate("getter", nil)
	require.NoError(t, err)
	require.Equal(t, "return ${field};", result)

	engine.RegisterTemplate("mixed", "${PROJECT_NAME}::${kind}")
	result, err = engine.ApplyTemplate("mixed", map[string]string{"kind": "widget", "PROJECT_NAME": "ignored"})
	require.NoError(t, err)
	require.Equal(t, "demo::widget", result)

	result, err = engine.ApplyTemplate("unknown", map[string]string{"a": "b"})
	require.NoError(t, err)
	require.Empty(t, result)
}

func TestSubstitute(t *testing.T) {
	engine := New()
	result, err := engine.Substitute("${a} @include(x) ${b}", map[string]string{"a": "1"})
	require.NoError(t, err)
	require.Equal(t, "1 @include(x) ${b}", result)
}

func TestTemplatesAndVariables(t *testing.T) {
	engine := newEngine()
	require.Equal(t, []string{"banner", "getter"}, engine.Templates())

	engine.SetVariable("AUTHOR", "max")
	v, ok := engine.Variable("AUTHOR")
	require.True(t, ok)
	require.Equal(t, "max", v)

	_, ok = engine.Variable("NOPE")
	require.False(t, ok)
}

func TestClone(t *testing.T) {
	engine := newEngine()
	clone := engine.Clone()

	clone.SetVariable("AUTHOR", "max")
	clone.RegisterTemplate("footer", "// end")

	v, _ := engine.Variable("AUTHOR")
	require.Equal(t, "jane", v)
	require.Equal(t, []string{"banner", "getter"}, engine.Templates())
	require.Equal(t, []string{"banner", "footer", "getter"}, clone.Templates())
}
