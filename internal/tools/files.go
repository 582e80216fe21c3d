package tools

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Workspace is the directory subtree the file tools operate in. Every path
// the model supplies is resolved relative to Root, and resolution that walks
// outside Root is refused.
type Workspace struct {
	Root string
}

// resolve turns a model-supplied relative path into an absolute path inside
// the workspace, or reports why it can't.
func (ws *Workspace) resolve(name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("a name is required")
	}
	if filepath.IsAbs(name) {
		return "", fmt.Errorf("absolute paths are not allowed; use a path relative to the workspace")
	}

	path := filepath.Join(ws.Root, filepath.Clean(name))

	// filepath.Join cleans "..", so a path that escapes Root no longer has
	// Root as a prefix.
	rel, err := filepath.Rel(ws.Root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q escapes the workspace", name)
	}

	return path, nil
}

// CreateFolderTool creates a directory in the workspace, idempotently.
type CreateFolderTool struct {
	ws *Workspace
}

func NewCreateFolderTool(ws *Workspace) *CreateFolderTool {
	return &CreateFolderTool{ws: ws}
}

func (t *CreateFolderTool) Name() string { return "create_folder" }

func (t *CreateFolderTool) Description() string {
	return "Create a folder with the given name. Creating a folder that already exists succeeds."
}

func (t *CreateFolderTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name": map[string]any{
				"type":        "string",
				"description": "Folder path to create, relative to the workspace",
			},
		},
		"required": []string{"name"},
	}
}

func (t *CreateFolderTool) Execute(_ context.Context, params map[string]any) string {
	name := stringParam(params, "name", "")

	path, err := t.ws.resolve(name)
	if err != nil {
		return fmt.Sprintf("Error: %v", err)
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Sprintf("Error: could not create folder %q: %v", name, err)
	}

	return fmt.Sprintf("Folder %q created successfully.", name)
}

// CreateFileTool creates (or overwrites) a file with the given content.
type CreateFileTool struct {
	ws *Workspace
}

func NewCreateFileTool(ws *Workspace) *CreateFileTool {
	return &CreateFileTool{ws: ws}
}

func (t *CreateFileTool) Name() string { return "create_file" }

func (t *CreateFileTool) Description() string {
	return "Create a file with the given name and optional content. An existing file is overwritten."
}

func (t *CreateFileTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name": map[string]any{
				"type":        "string",
				"description": "File path to create, relative to the workspace",
			},
			"content": map[string]any{
				"type":        "string",
				"description": "Initial file content (optional, defaults to empty)",
			},
		},
		"required": []string{"name"},
	}
}

func (t *CreateFileTool) Execute(_ context.Context, params map[string]any) string {
	name := stringParam(params, "name", "")
	content := stringParam(params, "content", "")

	path, err := t.ws.resolve(name)
	if err != nil {
		return fmt.Sprintf("Error: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Sprintf("Error: could not create parent folder for %q: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Sprintf("Error: could not create file %q: %v", name, err)
	}

	return fmt.Sprintf("File %q created successfully.", name)
}

// AddCodeTool appends code to a file, creating it if needed.
type AddCodeTool struct {
	ws *Workspace
}

func NewAddCodeTool(ws *Workspace) *AddCodeTool {
	return &AddCodeTool{ws: ws}
}

func (t *AddCodeTool) Name() string { return "add_code_to_file" }

func (t *AddCodeTool) Description() string {
	return "Append code to an existing file (the file is created if it doesn't exist)."
}

func (t *AddCodeTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name": map[string]any{
				"type":        "string",
				"description": "File path to append to, relative to the workspace",
			},
			"code": map[string]any{
				"type":        "string",
				"description": "Code to append",
			},
		},
		"required": []string{"name", "code"},
	}
}

func (t *AddCodeTool) Execute(_ context.Context, params map[string]any) string {
	name := stringParam(params, "name", "")
	code := stringParam(params, "code", "")

	path, err := t.ws.resolve(name)
	if err != nil {
		return fmt.Sprintf("Error: %v", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Sprintf("Error: could not open file %q: %v", name, err)
	}
	defer f.Close()

	// A separating newline goes in only when the file already has content,
	// so the first chunk never starts with a blank line.
	info, err := f.Stat()
	if err != nil {
		return fmt.Sprintf("Error: could not stat file %q: %v", name, err)
	}
	if info.Size() > 0 {
		if _, err := f.WriteString("\n"); err != nil {
			return fmt.Sprintf("Error: could not write to file %q: %v", name, err)
		}
	}

	if _, err := f.WriteString(code); err != nil {
		return fmt.Sprintf("Error: could not write to file %q: %v", name, err)
	}

	return fmt.Sprintf("Code added to %q successfully.", name)
}
