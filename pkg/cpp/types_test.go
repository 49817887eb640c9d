package cpp_test

import (
	"testing"

	. "github.com/pseudomuto/cppgen/pkg/cpp"
	"github.com/stretchr/testify/require"
)

func TestTypeString(t *testing.T) {
	tests := []struct {
		typ      Type
		expected string
	}{
		{Type{Name: "int"}, "int"},
		{Type{Name: "Widget", Const: true}, "const Widget"},
		{Type{Name: "char", Pointer: true}, "char*"},
		{Type{Name: "std::string", Const: true, Reference: true}, "const std::string&"},
		{Type{Name: "Node", Const: true, Pointer: true, Reference: true}, "const Node*&"},
	}

	for _, tt := range tests {
		require.Equal(t, tt.expected, tt.typ.String())
	}
}

func TestParameterString(t *testing.T) {
	require.Equal(t, "int count", Parameter{Type: Type{Name: "int"}, Name: "count"}.String())
	require.Equal(t, "int count = 0", Parameter{Type: Type{Name: "int"}, Name: "count", Default: "0"}.String())
}

func TestFunctionSignature(t *testing.T) {
	params := []Parameter{
		{Type: Type{Name: "int"}, Name: "id"},
		{Type: Type{Name: "bool"}, Name: "force", Default: "false"},
	}

	tests := []struct {
		name       string
		fn         Function
		signature  string
		definition string
	}{
		{
			name:       "plain",
			fn:         Function{Name: "Run", ReturnType: "void"},
			signature:  "void Run()",
			definition: "void App::Run()",
		},
		{
			name:       "parameters",
			fn:         Function{Name: "Find", ReturnType: "Item*", Parameters: params},
			signature:  "Item* Find(int id, bool force = false)",
			definition: "Item* App::Find(int id, bool force)",
		},
		{
			name:       "virtual const",
			fn:         Function{Name: "Size", ReturnType: "size_t", Virtual: true, Const: true},
			signature:  "virtual size_t Size() const",
			definition: "size_t App::Size() const",
		},
		{
			name:       "pure virtual",
			fn:         Function{Name: "Draw", ReturnType: "void", PureVirtual: true},
			signature:  "virtual void Draw() = 0",
			definition: "void App::Draw()",
		},
		{
			name:       "static",
			fn:         Function{Name: "Create", ReturnType: "App*", Static: true},
			signature:  "static App* Create()",
			definition: "App* App::Create()",
		},
		{
			name:       "constructor",
			fn:         Function{Name: "App", Parameters: params[:1]},
			signature:  "App(int id)",
			definition: "App::App(int id)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.signature, tt.fn.Signature())
			require.Equal(t, tt.definition, tt.fn.Definition("App"))
		})
	}

	require.Equal(t, "void Run()", Function{Name: "Run", ReturnType: "void"}.Definition(""))
}

func TestAccessSpecifiers(t *testing.T) {
	require.Equal(t, Public, Function{}.AccessSpecifier())
	require.Equal(t, Private, Function{Access: Private}.AccessSpecifier())
	require.Equal(t, Public, Function{Access: "friend"}.AccessSpecifier())

	require.Equal(t, Private, Member{}.AccessSpecifier())
	require.Equal(t, Protected, Member{Access: Protected}.AccessSpecifier())
}

func TestMemberString(t *testing.T) {
	require.Equal(t, "int count_;", Member{Type: Type{Name: "int"}, Name: "count_"}.String())
	require.Equal(t, "int count_ = 0;", Member{Type: Type{Name: "int"}, Name: "count_", Initializer: "0"}.String())
}

func TestClassInheritance(t *testing.T) {
	require.Empty(t, Class{Name: "A"}.Inheritance())
	require.Equal(t, "public Base", Class{BaseClasses: []string{"Base"}}.Inheritance())
	require.Equal(t,
		"public Base, private Impl, public Other",
		Class{BaseClasses: []string{"Base", "private Impl", " ", "public Other"}}.Inheritance(),
	)
}

func TestAccessors(t *testing.T) {
	m := Member{Type: Type{Name: "int"}, Name: "count_"}

	getter := GetterFor(m)
	require.Equal(t, "const int& GetCount() const", getter.Signature())
	require.Equal(t, "return count_;", getter.Body)

	setter := SetterFor(m)
	require.Equal(t, "void SetCount(int value)", setter.Signature())
	require.Equal(t, "count_ = value;", setter.Body)

	t.Run("qualified member types", func(t *testing.T) {
		tests := map[string]Type{
			"const int& GetCount() const":         {Name: "int", Const: true},
			"const std::string& GetCount() const": {Name: "std::string", Reference: true},
			"const Node*& GetCount() const":       {Name: "Node", Pointer: true},
		}

		for expected, typ := range tests {
			require.Equal(t, expected, GetterFor(Member{Type: typ, Name: "count_"}).Signature())
		}
	})
}

func TestImplemented(t *testing.T) {
	require.True(t, Function{Body: "x();"}.Implemented())
	require.False(t, Function{}.Implemented())
	require.False(t, Function{Body: "x();", PureVirtual: true}.Implemented())
}
