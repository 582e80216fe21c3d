// Package executor defines the language-tagged code execution contract.
//
// The interface is deliberately small: handlers hand over a language tag and
// a source string, implementations decide how to run it. The production
// implementation (executor/toolchain) shells out to the local interpreters
// and compilers; tests swap in mocks.
package executor

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Language identifies one of the supported toolchains.
type Language string

const (
	LangPython     Language = "python"
	LangJavaScript Language = "javascript"
	LangJava       Language = "java"
	LangCPP        Language = "cpp"
)

// Languages lists every supported language in UI display order.
func Languages() []Language {
	return []Language{LangPython, LangJavaScript, LangJava, LangCPP}
}

// ParseLanguage normalizes a user-supplied language tag. It accepts a few
// common aliases so the API is forgiving about what the selector sends.
func ParseLanguage(s string) (Language, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "python", "py":
		return LangPython, nil
	case "javascript", "js", "node":
		return LangJavaScript, nil
	case "java":
		return LangJava, nil
	case "cpp", "c++", "cxx":
		return LangCPP, nil
	default:
		return "", fmt.Errorf("unsupported language %q", s)
	}
}

// ExecutionRequest represents a request to run a piece of source code.
type ExecutionRequest struct {
	Language Language `json:"language"`
	Code     string   `json:"code"`
}

// ExecutionResult represents the captured output of one run.
//
// For compiled languages (Java, C++) Compiled reports whether the compile
// step succeeded; when it did not, CompileOutput carries the compiler
// diagnostics verbatim and Stdout/Stderr stay empty because execution was
// skipped. Interpreted languages always report Compiled=true.
type ExecutionResult struct {
	Stdout        string        `json:"stdout"`
	Stderr        string        `json:"stderr"`
	CompileOutput string        `json:"compileOutput,omitempty"`
	Compiled      bool          `json:"compiled"`
	ExitCode      int           `json:"exitCode"`
	Duration      time.Duration `json:"duration"`
}

// Executor runs source code and reports its output.
type Executor interface {
	Execute(ctx context.Context, req ExecutionRequest) (*ExecutionResult, error)
}
