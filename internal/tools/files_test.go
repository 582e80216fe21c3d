package tools

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestWorkspace(t *testing.T) *Workspace {
	t.Helper()
	return &Workspace{Root: t.TempDir()}
}

func TestCreateFolder_Idempotent(t *testing.T) {
	ws := newTestWorkspace(t)
	tool := NewCreateFolderTool(ws)
	ctx := context.Background()

	params := map[string]any{"name": "proj"}

	first := tool.Execute(ctx, params)
	second := tool.Execute(ctx, params)

	if strings.HasPrefix(first, "Error") || strings.HasPrefix(second, "Error") {
		t.Fatalf("creating the same folder twice failed: %q / %q", first, second)
	}

	info, err := os.Stat(filepath.Join(ws.Root, "proj"))
	if err != nil || !info.IsDir() {
		t.Fatalf("expected one folder present, stat err = %v", err)
	}
}

func TestCreateFile_OverwritesExisting(t *testing.T) {
	ws := newTestWorkspace(t)
	tool := NewCreateFileTool(ws)
	ctx := context.Background()

	tool.Execute(ctx, map[string]any{"name": "main.py", "content": "old"})
	result := tool.Execute(ctx, map[string]any{"name": "main.py", "content": "new"})
	if strings.HasPrefix(result, "Error") {
		t.Fatalf("overwrite-create failed: %q", result)
	}

	data, err := os.ReadFile(filepath.Join(ws.Root, "main.py"))
	if err != nil {
		t.Fatalf("reading created file: %v", err)
	}
	if string(data) != "new" {
		t.Errorf("file content = %q, want %q", data, "new")
	}
}

func TestCreateFile_DefaultsToEmpty(t *testing.T) {
	ws := newTestWorkspace(t)
	tool := NewCreateFileTool(ws)

	result := tool.Execute(context.Background(), map[string]any{"name": "empty.txt"})
	if strings.HasPrefix(result, "Error") {
		t.Fatalf("create without content failed: %q", result)
	}

	data, err := os.ReadFile(filepath.Join(ws.Root, "empty.txt"))
	if err != nil {
		t.Fatalf("reading created file: %v", err)
	}
	if len(data) != 0 {
		t.Errorf("file content = %q, want empty", data)
	}
}

func TestAddCode_SingleSeparatingNewline(t *testing.T) {
	ws := newTestWorkspace(t)
	create := NewCreateFileTool(ws)
	add := NewAddCodeTool(ws)
	ctx := context.Background()

	// Start from a previously empty file: the first chunk must get no
	// leading newline, the second exactly one separator.
	create.Execute(ctx, map[string]any{"name": "app.py"})
	add.Execute(ctx, map[string]any{"name": "app.py", "code": "import os"})
	add.Execute(ctx, map[string]any{"name": "app.py", "code": "print(os.getcwd())"})

	data, err := os.ReadFile(filepath.Join(ws.Root, "app.py"))
	if err != nil {
		t.Fatalf("reading file: %v", err)
	}

	want := "import os\nprint(os.getcwd())"
	if string(data) != want {
		t.Errorf("file content = %q, want %q", data, want)
	}
}

func TestAddCode_CreatesMissingFile(t *testing.T) {
	ws := newTestWorkspace(t)
	add := NewAddCodeTool(ws)

	result := add.Execute(context.Background(), map[string]any{"name": "fresh.js", "code": "let x = 1;"})
	if strings.HasPrefix(result, "Error") {
		t.Fatalf("append to missing file failed: %q", result)
	}

	data, err := os.ReadFile(filepath.Join(ws.Root, "fresh.js"))
	if err != nil {
		t.Fatalf("reading file: %v", err)
	}
	if string(data) != "let x = 1;" {
		t.Errorf("file content = %q, want %q (no leading newline)", data, "let x = 1;")
	}
}

func TestWorkspace_RejectsEscapes(t *testing.T) {
	ws := newTestWorkspace(t)
	ctx := context.Background()

	escapes := []string{"../outside.txt", "a/../../outside.txt", "/etc/passwd", ""}

	for _, tool := range []Tool{NewCreateFolderTool(ws), NewCreateFileTool(ws), NewAddCodeTool(ws)} {
		for _, name := range escapes {
			result := tool.Execute(ctx, map[string]any{"name": name, "code": "x", "content": "x"})
			if !strings.HasPrefix(result, "Error") {
				t.Errorf("%s(%q) = %q, want an error result", tool.Name(), name, result)
			}
		}
	}

	if _, err := os.Stat(filepath.Join(filepath.Dir(ws.Root), "outside.txt")); err == nil {
		t.Error("a file escaped the workspace")
	}
}

func TestToolFailures_NeverReturnGoErrors(t *testing.T) {
	// The Execute signature has no error return at all; this test documents
	// that failures come back as descriptive strings.
	ws := newTestWorkspace(t)
	result := NewCreateFileTool(ws).Execute(context.Background(), map[string]any{})
	if !strings.HasPrefix(result, "Error") {
		t.Errorf("missing name produced %q, want a descriptive error string", result)
	}
}
