// Package check_tests provides test infrastructure for must-use check tests.
//
// Fixture modules live in testdata/ as YAML files carrying expectation
// annotations in comments, so each file documents its own expected outcome.
package check_tests

import (
	"bufio"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"codeberg.org/saruga/mustuse/pkg/api"
)

// TestCase represents a single check test case.
type TestCase struct {
	Name     string
	FilePath string
	Expected ExpectedResult
}

// ExpectedResult describes the expected check outcome.
type ExpectedResult struct {
	Valid  bool
	Errors []ExpectedDiagnostic
}

// ExpectedDiagnostic describes an expected diagnostic message.
type ExpectedDiagnostic struct {
	Code    string // e.g., "E0901"
	Pattern string // substring to match in the message
}

// Annotation patterns for fixture files.
var (
	expectValidRe = regexp.MustCompile(`#\s*@expect-valid`)
	expectErrorRe = regexp.MustCompile(`#\s*@expect-error\s+(\w+)(?:\s+"([^"]*)")?`)
	testNameRe    = regexp.MustCompile(`#\s*@test:\s*(.+)`)
)

// ParseTestFile reads a fixture file and extracts its annotations.
func ParseTestFile(path string) (*TestCase, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	tc := &TestCase{
		FilePath: path,
		Name:     filepath.Base(path),
	}

	scanner := bufio.NewScanner(strings.NewReader(string(content)))
	for scanner.Scan() {
		line := scanner.Text()

		if match := testNameRe.FindStringSubmatch(line); match != nil {
			tc.Name = strings.TrimSpace(match[1])
		}
		if expectValidRe.MatchString(line) {
			tc.Expected.Valid = true
		}
		if match := expectErrorRe.FindStringSubmatch(line); match != nil {
			diag := ExpectedDiagnostic{Code: match[1]}
			if len(match) > 2 && match[2] != "" {
				diag.Pattern = match[2]
			}
			tc.Expected.Errors = append(tc.Expected.Errors, diag)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	// No explicit expectation means the module is expected to be clean.
	if !tc.Expected.Valid && len(tc.Expected.Errors) == 0 {
		tc.Expected.Valid = true
	}

	return tc, nil
}

// RunTestCase executes a single test case and reports results.
func RunTestCase(t *testing.T, tc *TestCase) {
	t.Helper()

	result, err := api.CheckFile(tc.FilePath, api.Options{})
	if err != nil {
		t.Fatalf("loading %s: %v", tc.FilePath, err)
	}

	if tc.Expected.Valid {
		if !result.Valid {
			t.Errorf("expected clean module, got %d issue(s):", len(result.Issues))
			for _, issue := range result.Issues {
				t.Errorf("  %d:%d: %s [%s]", issue.Line, issue.Column, issue.Message, issue.Code)
			}
		}
		return
	}

	if result.Valid {
		t.Error("expected check errors, but the module passed")
		return
	}

	for _, expected := range tc.Expected.Errors {
		found := false
		for _, actual := range result.Issues {
			if expected.Code != "" && actual.Code != expected.Code {
				continue
			}
			if expected.Pattern != "" && !strings.Contains(actual.Message, expected.Pattern) {
				continue
			}
			found = true
			break
		}
		if !found {
			t.Errorf("expected error not found: code=%s pattern=%q", expected.Code, expected.Pattern)
		}
	}
}

// RunTestDir runs all .yaml fixture files in a directory.
func RunTestDir(t *testing.T, dir string) {
	t.Helper()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("failed to read test directory %s: %v", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		tc, err := ParseTestFile(path)
		if err != nil {
			t.Errorf("failed to parse %s: %v", path, err)
			continue
		}
		t.Run(tc.Name, func(t *testing.T) {
			RunTestCase(t, tc)
		})
	}
}
