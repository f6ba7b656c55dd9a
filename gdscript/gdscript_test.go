package gdscript

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gdtdd/gdtdd/model"
)

const tileDatabase = `class_name TileDatabase
extends Node

var _tiles := {}

func _ready():
	pass

func get_tile(id: int, fallback = null):
	return _tiles.get(id, fallback)

func size():
	return _tiles.size()

func _rebuild_index():
	pass

func test_helper():
	pass

static func from_file(path : String)  ->  TileDatabase:
	return TileDatabase.new()
`

func TestAnalyze(t *testing.T) {
	summary := Analyze(tileDatabase)

	require.Equal(t, "TileDatabase", summary.ClassName)
	require.Equal(t, "Node", summary.BaseName)
	require.Equal(t, []model.Operation{
		{Name: "get_tile", Parameters: "id: int, fallback = null"},
		{Name: "size", Parameters: ""},
		{Name: "from_file", Parameters: "path : String"},
	}, summary.Operations)
}

func TestAnalyzeDefaults(t *testing.T) {
	summary := Analyze("func foo():\n\tpass\n")

	require.Equal(t, "", summary.ClassName)
	require.Equal(t, model.DefaultBaseName, summary.BaseName)
	require.Len(t, summary.Operations, 1)

	empty := Analyze("")
	require.Equal(t, model.SourceSummary{BaseName: model.DefaultBaseName, Operations: []model.Operation{}}, empty)
}

func TestAnalyzeFiltersPrivateAndTests(t *testing.T) {
	summary := Analyze("func foo():\n\tpass\nfunc _bar():\n\tpass\nfunc test_baz():\n\tpass\n")

	stub := RenderStub(summary, "foo.gd")

	require.Len(t, summary.Operations, 1)
	require.Contains(t, stub, "func test_foo():")
	require.NotContains(t, stub, "_bar")
	require.NotContains(t, stub, "test_test_baz")
	require.NotContains(t, stub, "instance.test_baz")
}

func TestParameterNames(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{in: "", want: nil},
		{in: "id", want: []string{"id"}},
		{in: "id: int, name := \"x\", flags = 0", want: []string{"id", "name", "flags"}},
		{in: " a : Vector2 ,  ", want: []string{"a"}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParameterNames(tt.in))
		})
	}
}

func TestRenderStub(t *testing.T) {
	summary := model.SourceSummary{
		ClassName: "TileDatabase",
		BaseName:  "Node",
		Operations: []model.Operation{
			{Name: "size"},
			{Name: "get_tile", Parameters: "id: int, fallback = null"},
		},
	}

	want := strings.Join([]string{
		"# Auto-generated test suite",
		"# Source: Scripts/tile/tile_database.gd",
		"extends GdUnitTestSuite",
		"",
		"# Setup/Teardown",
		"func before():",
		"\t# Setup test environment",
		"\tpass",
		"",
		"func after():",
		"\t# Cleanup after tests",
		"\tpass",
		"",
		"",
		"# Test Methods",
		"func test_size():",
		"\t# TODO: Implement test for size()",
		"\tvar instance := TileDatabase.new()",
		"\tvar result := instance.size()",
		"\tassert_that(result).is_not_null()",
		"",
		"",
		"func test_get_tile():",
		"\t# TODO: Implement test for get_tile()",
		"\tvar instance := TileDatabase.new()",
		"\t# var result := instance.get_tile(# id, # fallback)",
		"\tassert_that(false).is_true()  # TODO: Implement",
		"",
		"",
	}, "\n")

	require.Equal(t, want, RenderStub(summary, "Scripts/tile/tile_database.gd"))
}

func TestRenderStubWithoutOperations(t *testing.T) {
	stub := RenderStub(Analyze("extends Node\n"), "empty.gd")

	require.Contains(t, stub, "func before():")
	require.Contains(t, stub, "func after():")
	require.True(t, strings.HasSuffix(stub, "# Test Methods"))
}

func TestRenderStubParameterizedAlwaysFails(t *testing.T) {
	for _, params := range []string{"a", "a: int", ",", "a = 1, b := 2"} {
		stub := RenderStub(model.SourceSummary{
			Operations: []model.Operation{{Name: "f", Parameters: params}},
		}, "x.gd")
		require.Contains(t, stub, "assert_that(false).is_true()", params)
	}
}

func TestRenderStubDuplicateNames(t *testing.T) {
	summary := Analyze("class_name A\nfunc load(path):\n\tpass\nfunc load():\n\tpass\n")

	stub := RenderStub(summary, "a.gd")

	require.Len(t, summary.Operations, 2)
	require.Contains(t, stub, "func test_load():")
	require.Contains(t, stub, "func test_load_2():")
	require.Equal(t, 2, strings.Count(stub, "# TODO: Implement test for load()"))
}

func TestTestNamesNeverCollide(t *testing.T) {
	tests := []struct {
		name string
		ops  []string
		want []string
	}{
		{
			name: "suffixed source name after duplicate",
			ops:  []string{"foo", "foo", "foo_2"},
			want: []string{"test_foo", "test_foo_2", "test_foo_2_2"},
		},
		{
			name: "suffixed source name before duplicate",
			ops:  []string{"foo", "foo_2", "foo"},
			want: []string{"test_foo", "test_foo_2", "test_foo_3"},
		},
		{
			name: "triple duplicate",
			ops:  []string{"bar", "bar", "bar"},
			want: []string{"test_bar", "test_bar_2", "test_bar_3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ops := make([]model.Operation, 0, len(tt.ops))
			for _, name := range tt.ops {
				ops = append(ops, model.Operation{Name: name})
			}
			assert.Equal(t, tt.want, TestNames(ops))
		})
	}

	stub := RenderStub(Analyze("func foo():\n\tpass\nfunc foo():\n\tpass\nfunc foo_2():\n\tpass\n"), "foo.gd")
	require.Equal(t, 1, strings.Count(stub, "func test_foo_2():"))
	require.Equal(t, 1, strings.Count(stub, "func test_foo_2_2():"))
}

func TestTypeNameAndStubFileName(t *testing.T) {
	withClass := model.SourceSummary{ClassName: "TileDatabase"}
	anonymous := model.SourceSummary{}

	assert.Equal(t, "TileDatabase", TypeName(withClass, "Scripts/tile_database.gd"))
	assert.Equal(t, "tile_database", TypeName(anonymous, "Scripts/tile/tile_database.gd"))
	assert.Equal(t, "Player", TypeName(anonymous, `C:\game\Player.gd`))

	assert.Equal(t, "test_tiledatabase.gd", StubFileName(withClass, "Scripts/tile_database.gd"))
	assert.Equal(t, "test_player.gd", StubFileName(anonymous, `C:\game\Player.gd`))
}
