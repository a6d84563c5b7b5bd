package main

import (
	"bytes"
	"strings"
	"testing"
)

func runCompiler(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = run(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestRunCompilesProgram(t *testing.T) {
	code, out, errOut := runCompiler(t, "{ return 42; }")
	if code != 0 {
		t.Fatalf("run exit=%d\nstderr:\n%s", code, errOut)
	}
	if errOut != "" {
		t.Fatalf("unexpected stderr:\n%s", errOut)
	}
	if !strings.HasPrefix(out, "  .globl main\n") {
		t.Fatalf("output missing .globl directive:\n%s", out)
	}
	if !strings.Contains(out, "main:\n") {
		t.Fatalf("output missing main label:\n%s", out)
	}
	if !strings.Contains(out, "  mov $42, %rax\n") {
		t.Fatalf("output missing return value load:\n%s", out)
	}
	if !strings.Contains(out, "  ret\n") {
		t.Fatalf("output missing ret:\n%s", out)
	}
}

func TestRunRejectsBadArgCount(t *testing.T) {
	for _, args := range [][]string{
		{},
		{"{ return 1; }", "{ return 2; }"},
	} {
		code, _, errOut := runCompiler(t, args...)
		if code != 1 {
			t.Errorf("run(%q) exit=%d, want 1", args, code)
		}
		if !strings.Contains(errOut, "invalid number of arguments") {
			t.Errorf("run(%q) stderr=%q, want argument count error", args, errOut)
		}
	}
}

func TestRunReportsScanErrorWithCaret(t *testing.T) {
	src := "{ return 99999999999999999999; }"
	code, _, errOut := runCompiler(t, src)
	if code != 1 {
		t.Fatalf("run exit=%d, want 1", code)
	}
	want := src + "\n" + strings.Repeat(" ", 9) + "^ number out of range\n"
	if errOut != want {
		t.Fatalf("diagnostic mismatch:\ngot:\n%s\nwant:\n%s", errOut, want)
	}
}

func TestRunReportsParseErrorWithCaret(t *testing.T) {
	tests := []struct {
		src string
		off int
		msg string
	}{
		// A stray punctuator like @ scans fine and is rejected by
		// the parser at its column.
		{"{ return @; }", 9, "expected an expression"},
		{"{ return 1+; }", 11, "expected an expression"},
	}
	for _, tt := range tests {
		code, _, errOut := runCompiler(t, tt.src)
		if code != 1 {
			t.Errorf("run(%q) exit=%d, want 1", tt.src, code)
			continue
		}
		want := tt.src + "\n" + strings.Repeat(" ", tt.off) + "^ " + tt.msg + "\n"
		if errOut != want {
			t.Errorf("run(%q) diagnostic mismatch:\ngot:\n%s\nwant:\n%s", tt.src, errOut, want)
		}
	}
}

func TestRunEmitTokens(t *testing.T) {
	code, out, errOut := runCompiler(t, "-emit-tokens", "{ return 1; }")
	if code != 0 {
		t.Fatalf("run exit=%d\nstderr:\n%s", code, errOut)
	}
	for _, want := range []string{"KIND", `"{"`, `"return"`, `"1"`, `"}"`, "EOF"} {
		if !strings.Contains(out, want) {
			t.Errorf("token dump missing %s:\n%s", want, out)
		}
	}
}

func TestRunEmitAST(t *testing.T) {
	code, out, errOut := runCompiler(t, "-emit-ast", "{ int x=3; return &x; }")
	if code != 0 {
		t.Fatalf("run exit=%d\nstderr:\n%s", code, errOut)
	}
	for _, want := range []string{`Function "main"`, "x int", "ReturnStmt", "AddrExpr (*int)"} {
		if !strings.Contains(out, want) {
			t.Errorf("AST dump missing %q:\n%s", want, out)
		}
	}
}

func TestRunVersion(t *testing.T) {
	code, out, _ := runCompiler(t, "-version")
	if code != 0 {
		t.Fatalf("run exit=%d, want 0", code)
	}
	if !strings.Contains(out, "occ version "+Version) {
		t.Fatalf("version output missing version string:\n%s", out)
	}
}
