package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

// newTestRootCmd creates a root command with persistent flags for testing subcommands
func newTestRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use: "matprop",
	}
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")
	rootCmd.PersistentFlags().String("root", ".", "Catalog root directory")
	return rootCmd
}

func runCmd(t *testing.T, sub *cobra.Command, args ...string) string {
	t.Helper()
	rootCmd := newTestRootCmd()
	rootCmd.AddCommand(sub)
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute(%v) error = %v", args, err)
	}
	return buf.String()
}

func runCmdErr(t *testing.T, sub *cobra.Command, args ...string) error {
	t.Helper()
	rootCmd := newTestRootCmd()
	rootCmd.AddCommand(sub)
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func TestVersionCmd(t *testing.T) {
	out := runCmd(t, newVersionCmd(), "version")
	if !strings.Contains(out, "matprop version "+version) {
		t.Errorf("output = %q", out)
	}

	out = runCmd(t, newVersionCmd(), "version", "--json")
	var parsed map[string]string
	if err := json.Unmarshal([]byte(out), &parsed); err != nil {
		t.Fatalf("invalid JSON output %q: %v", out, err)
	}
	if parsed["version"] != version {
		t.Errorf("version = %q, want %q", parsed["version"], version)
	}
}

func TestListCmd(t *testing.T) {
	out := runCmd(t, newListCmd(), "list", "--root", t.TempDir())
	for _, want := range []string{"Library materials:", "SS316L", "Water", "PlanseeTungsten"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	out = runCmd(t, newListCmd(), "list", "--json", "--root", t.TempDir())
	var parsed map[string][]string
	if err := json.Unmarshal([]byte(out), &parsed); err != nil {
		t.Fatalf("invalid JSON output %q: %v", out, err)
	}
	if len(parsed["library"]) == 0 {
		t.Errorf("JSON output = %v", parsed)
	}
}

func TestShowCmd(t *testing.T) {
	out := runCmd(t, newShowCmd(), "show", "PlanseeTungsten",
		"--root", t.TempDir(), "--temperature", "293.15")
	for _, want := range []string{"PlanseeTungsten", "density: 19250", "serpent"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestShowCmdUnknownMaterial(t *testing.T) {
	if err := runCmdErr(t, newShowCmd(), "show", "Unobtainium", "--root", t.TempDir()); err == nil {
		t.Error("show should fail for unknown materials")
	}
}

func TestConvertCmd(t *testing.T) {
	out := runCmd(t, newConvertCmd(), "convert", "PlanseeTungsten", "serpent",
		"--root", t.TempDir(), "--temperature", "293.15")
	if !strings.HasPrefix(out, "mat PlanseeTungsten -1.92500000e+01") {
		t.Errorf("card = %q", out)
	}
}

func TestConvertCmdToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "w.serpent")
	runCmd(t, newConvertCmd(), "convert", "PlanseeTungsten", "serpent",
		"--root", t.TempDir(), "--temperature", "293.15", "-o", path)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "mat PlanseeTungsten") {
		t.Errorf("file contents = %q", data)
	}
}

func TestConvertCmdUnknownConverter(t *testing.T) {
	err := runCmdErr(t, newConvertCmd(), "convert", "Water", "mcnp", "--root", t.TempDir())
	if err == nil {
		t.Error("convert should fail when the converter is not registered")
	}
}

func TestDefineShowRemove(t *testing.T) {
	root := t.TempDir()
	doc := `
name: Graphite
formula: C
properties:
  density:
    value: 1850
converters:
  - name: serpent
`
	path := filepath.Join(root, "graphite.yaml")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	out := runCmd(t, newDefineCmd(), "define", path, "--root", root)
	if !strings.Contains(out, "Defined Graphite") {
		t.Errorf("output = %q", out)
	}

	// The catalog entry resolves ahead of the library.
	out = runCmd(t, newShowCmd(), "show", "Graphite", "--root", root, "--temperature", "300")
	if !strings.Contains(out, "density: 1850") {
		t.Errorf("output = %q", out)
	}

	out = runCmd(t, newListCmd(), "list", "--root", root)
	if !strings.Contains(out, "Catalog materials:") || !strings.Contains(out, "Graphite") {
		t.Errorf("output = %q", out)
	}

	out = runCmd(t, newRemoveCmd(), "remove", "Graphite", "--root", root)
	if !strings.Contains(out, "Removed Graphite") {
		t.Errorf("output = %q", out)
	}
	if err := runCmdErr(t, newShowCmd(), "show", "Graphite", "--root", root); err == nil {
		t.Error("show should fail once the catalog entry is removed")
	}
}

func TestExportAndImport(t *testing.T) {
	root := t.TempDir()

	yamlPath := filepath.Join(root, "w.yaml")
	out := runCmd(t, newExportCmd(), "export", "PlanseeTungsten", yamlPath, "--root", root)
	if !strings.Contains(out, "Exported PlanseeTungsten") {
		t.Errorf("output = %q", out)
	}
	data, err := os.ReadFile(yamlPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "name: PlanseeTungsten") {
		t.Errorf("YAML export = %q", data)
	}

	xmlPath := filepath.Join(root, "w.xml")
	runCmd(t, newExportCmd(), "export", "PlanseeTungsten", xmlPath,
		"--root", root, "--temperature", "293.15")
	data, err = os.ReadFile(xmlPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "<MatMLXML>") {
		t.Errorf("XML export = %q", data)
	}

	out = runCmd(t, newImportCmd(), "import", xmlPath, "--root", root, "--save")
	if !strings.Contains(out, "Imported PlanseeTungsten") || !strings.Contains(out, "Saved PlanseeTungsten") {
		t.Errorf("output = %q", out)
	}
	out = runCmd(t, newListCmd(), "list", "--root", root)
	if !strings.Contains(out, "Catalog materials:") {
		t.Errorf("output = %q", out)
	}
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	err := runCmdErr(t, newExportCmd(), "export", "Water",
		filepath.Join(t.TempDir(), "water.txt"), "--root", t.TempDir())
	if err == nil {
		t.Error("export should reject unknown file extensions")
	}
}
