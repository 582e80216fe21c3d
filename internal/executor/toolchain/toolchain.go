// Package toolchain implements executor.Executor by shelling out to the
// local language toolchains: python, node, javac+java, and g++.
//
// The lifecycle for every run is the same: write the source to an ephemeral
// file in the platform temp area, invoke the toolchain with the request
// context, capture stdout and stderr separately, and remove every artifact
// afterwards. Cleanup is deferred and best-effort; a file the OS refuses to
// delete never fails a run.
//
// KNOWN LIMITATIONS (deliberate, mirroring the product decision to run code
// with the host toolchains):
//   - No sandboxing: submitted code runs with the server process's privileges.
//   - No timeout: a program that hangs blocks its request until the client
//     disconnects (the request context is the only cancellation path).
package toolchain

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"time"

	"github.com/sakif/code-studio/internal/apperror"
	"github.com/sakif/code-studio/internal/executor"
)

// javaClassRe finds the public class declaration whose name Java requires
// the source file to be named after.
var javaClassRe = regexp.MustCompile(`public\s+class\s+(\w+)`)

// Executor runs code with the toolchains on the host's PATH.
type Executor struct {
	logger *slog.Logger
}

var _ executor.Executor = (*Executor)(nil)

// New creates a toolchain Executor. It does not probe for the toolchain
// binaries; a missing interpreter or compiler is reported per run through
// the captured stderr, the same as any other subprocess failure.
func New(logger *slog.Logger) *Executor {
	return &Executor{logger: logger}
}

// Execute dispatches the request to the matching toolchain.
//
// Empty or whitespace-only source is rejected before any file is written or
// subprocess spawned.
func (e *Executor) Execute(ctx context.Context, req executor.ExecutionRequest) (*executor.ExecutionResult, error) {
	if strings.TrimSpace(req.Code) == "" {
		return nil, apperror.ValidationFailed("code", "code must not be empty")
	}

	start := time.Now()

	var res *executor.ExecutionResult
	var err error

	switch req.Language {
	case executor.LangPython:
		res, err = e.runInterpreted(ctx, "python", ".py", req.Code)
	case executor.LangJavaScript:
		res, err = e.runInterpreted(ctx, "node", ".js", req.Code)
	case executor.LangJava:
		res, err = e.runJava(ctx, req.Code)
	case executor.LangCPP:
		res, err = e.runCPP(ctx, req.Code)
	default:
		return nil, apperror.ValidationFailed("language", fmt.Sprintf("unsupported language %q", req.Language))
	}
	if err != nil {
		return nil, err
	}

	res.Duration = time.Since(start)

	e.logger.Info("execution finished",
		slog.String("language", string(req.Language)),
		slog.Bool("compiled", res.Compiled),
		slog.Int("exitCode", res.ExitCode),
		slog.Duration("duration", res.Duration),
	)

	return res, nil
}

// runInterpreted writes the source to a temp file with the right extension
// and hands the path to the interpreter as its sole argument.
func (e *Executor) runInterpreted(ctx context.Context, interpreter, ext, code string) (*executor.ExecutionResult, error) {
	path, err := writeTempSource(ext, code)
	if err != nil {
		return nil, err
	}
	defer removeQuietly(path)

	stdout, stderr, exitCode := e.runCommand(ctx, interpreter, path)

	return &executor.ExecutionResult{
		Stdout:   stdout,
		Stderr:   stderr,
		Compiled: true,
		ExitCode: exitCode,
	}, nil
}

// runJava compiles and runs Java source.
//
// Java insists the file be named after the public class, so we scan the
// source for the declaration first and reject the submission outright if it
// has none; the compiler is never invoked in that case. The file lives in a
// fresh temp directory which doubles as the classpath for the run step.
func (e *Executor) runJava(ctx context.Context, code string) (*executor.ExecutionResult, error) {
	match := javaClassRe.FindStringSubmatch(code)
	if match == nil {
		return nil, apperror.ValidationFailed("code",
			"could not find a public class in the Java code; define one, e.g. `public class Main`")
	}
	className := match[1]

	dir, err := os.MkdirTemp("", "codestudio-java-")
	if err != nil {
		return nil, fmt.Errorf("toolchain: creating temp dir: %w", err)
	}
	defer removeQuietly(dir)

	srcPath := filepath.Join(dir, className+".java")
	if err := os.WriteFile(srcPath, []byte(code), 0o644); err != nil {
		return nil, fmt.Errorf("toolchain: writing %s: %w", srcPath, err)
	}

	// javac writes diagnostics to stderr; any diagnostic text means the
	// compile failed for our purposes and execution is skipped.
	_, compileErrs, _ := e.runCommand(ctx, "javac", srcPath)
	if compileErrs != "" {
		return &executor.ExecutionResult{CompileOutput: compileErrs}, nil
	}

	stdout, stderr, exitCode := e.runCommand(ctx, "java", "-cp", dir, className)

	return &executor.ExecutionResult{
		Stdout:   stdout,
		Stderr:   stderr,
		Compiled: true,
		ExitCode: exitCode,
	}, nil
}

// runCPP compiles the source with g++ and runs the produced binary.
func (e *Executor) runCPP(ctx context.Context, code string) (*executor.ExecutionResult, error) {
	srcPath, err := writeTempSource(".cpp", code)
	if err != nil {
		return nil, err
	}
	defer removeQuietly(srcPath)

	binPath := srcPath + exeSuffix()
	defer removeQuietly(binPath)

	_, compileErrs, _ := e.runCommand(ctx, "g++", srcPath, "-o", binPath)
	if compileErrs != "" {
		return &executor.ExecutionResult{CompileOutput: compileErrs}, nil
	}

	stdout, stderr, exitCode := e.runCommand(ctx, binPath)

	return &executor.ExecutionResult{
		Stdout:   stdout,
		Stderr:   stderr,
		Compiled: true,
		ExitCode: exitCode,
	}, nil
}

// runCommand runs one subprocess and captures its streams.
//
// Every failure mode (nonzero exit, binary not on PATH, context cancelled)
// is folded into the stderr text rather than a distinct error kind; callers
// surface whatever text is there. The exit code is recovered from
// exec.ExitError when the process actually ran.
func (e *Executor) runCommand(ctx context.Context, name string, args ...string) (stdout, stderr string, exitCode int) {
	var outBuf, errBuf bytes.Buffer

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	err := cmd.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		} else {
			// The process never ran (missing binary, cancelled context).
			// Report the reason through stderr like any other failure.
			exitCode = -1
			if errBuf.Len() == 0 {
				errBuf.WriteString(err.Error())
			}
		}
		e.logger.Debug("subprocess failed",
			slog.String("command", name),
			slog.Int("exitCode", exitCode),
		)
	}

	return outBuf.String(), errBuf.String(), exitCode
}

// writeTempSource writes code to a uniquely named file in the temp area.
func writeTempSource(ext, code string) (string, error) {
	f, err := os.CreateTemp("", "codestudio-*"+ext)
	if err != nil {
		return "", fmt.Errorf("toolchain: creating temp file: %w", err)
	}

	if _, err := f.WriteString(code); err != nil {
		f.Close()
		removeQuietly(f.Name())
		return "", fmt.Errorf("toolchain: writing %s: %w", f.Name(), err)
	}
	if err := f.Close(); err != nil {
		removeQuietly(f.Name())
		return "", fmt.Errorf("toolchain: closing %s: %w", f.Name(), err)
	}

	return f.Name(), nil
}

// removeQuietly deletes an ephemeral artifact, swallowing any error.
func removeQuietly(path string) {
	_ = os.RemoveAll(path)
}

// exeSuffix returns the platform's executable suffix for compiled binaries.
func exeSuffix() string {
	if runtime.GOOS == "windows" {
		return ".exe"
	}
	return ".out"
}
