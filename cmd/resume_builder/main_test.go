package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/docx"
	"github.com/jonathan/resume-builder/internal/mos"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testProfileJSON = `{
	"contact": {
		"full_name": "Marcus Reed",
		"email": "marcus.reed@example.com",
		"phone": "+1 963 258 7410",
		"city": "Norfolk",
		"state": "VA",
		"security_clearance": "Secret"
	},
	"mos_codes": [{"code": "IT", "branch": "Navy"}],
	"target_role": "Network Administrator",
	"summary": "Navy network technician with eight years of shipboard IT experience.",
	"experience": [{
		"job_title": "Information Systems Technician",
		"employer": "U.S. Navy",
		"start_date": "2014-08-01",
		"end_date": "2022-09-30",
		"bullets": ["Maintained shipboard networks for 400 users"]
	}],
	"skills": ["Cisco IOS", "Active Directory"]
}`

const testMOSCSV = `Branch Code,Personnel Category,MOS_CODE,Title Military,SOC Code,SOC Title,O*NET Code,O*NET Occupation,CSV Lookup Key
A,E,25B,Information Technology Specialist,15-1232,"Computer User Support Specialists",15-1232.00,Computer User Support Specialists,A|25B
N,E,IT,Information Systems Technician,15-1244,"Network and Computer Systems Administrators",15-1244.00,Network Administrators,N|IT
AF,E,3D0X2,Cyber Systems Operations,,,15-1244.00,Network and Computer Systems Administrators,AF|3D0X2
`

// setupEnv points configuration at a temporary workspace and returns it.
func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	dataset := filepath.Join(dir, "mos.csv")
	require.NoError(t, os.WriteFile(dataset, []byte(testMOSCSV), 0644))

	t.Setenv(config.EnvOutputDir, filepath.Join(dir, "out"))
	t.Setenv(config.EnvMOSDataset, dataset)
	t.Setenv(config.EnvAIProvider, "")
	t.Setenv(config.EnvAPIKey, "")
	t.Setenv(config.EnvModel, "")
	t.Setenv(config.EnvLogLevel, "error")
	t.Setenv(config.EnvLogFormat, "")
	t.Setenv(config.EnvDatabaseURL, "")
	return dir
}

func writeProfile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// resetFlags restores every flag to its default so runs do not leak into each other.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// execute runs the CLI in-process and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	err := rootCmd.ExecuteContext(ctx)
	return stdout.String(), stderr.String(), err
}

func TestBuild_WritesResume(t *testing.T) {
	dir := setupEnv(t)
	path := writeProfile(t, dir, "marcus.json", testProfileJSON)

	stdout, _, err := execute(t, "build", path, "--out", "marcus.docx")
	require.NoError(t, err)

	out := filepath.Join(dir, "out", "marcus.docx")
	assert.Contains(t, stdout, "Resume written: "+out)

	text, err := docx.ExtractTextFile(out)
	require.NoError(t, err)
	assert.Contains(t, text, "Marcus Reed")
	assert.Contains(t, text, "Maintained shipboard networks for 400 users")
}

func TestBuild_OutputDirFlag(t *testing.T) {
	dir := setupEnv(t)
	path := writeProfile(t, dir, "marcus.json", testProfileJSON)
	target := filepath.Join(dir, "elsewhere")

	stdout, _, err := execute(t, "build", path, "--output-dir", target, "--template", "compact")
	require.NoError(t, err)
	assert.Contains(t, stdout, target)

	entries, err := os.ReadDir(target)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, ".docx", filepath.Ext(entries[0].Name()))
}

func TestBuild_MultipleProfiles(t *testing.T) {
	dir := setupEnv(t)
	first := writeProfile(t, dir, "a.json", testProfileJSON)
	second := writeProfile(t, dir, "b.json", testProfileJSON)

	_, _, err := execute(t, "build", first, second)
	require.NoError(t, err)

	entries, err := os.ReadDir(filepath.Join(dir, "out"))
	require.NoError(t, err)
	assert.Len(t, entries, 2, "same name gets distinct files")
}

func TestBuild_OutRequiresSingleProfile(t *testing.T) {
	dir := setupEnv(t)
	path := writeProfile(t, dir, "a.json", testProfileJSON)

	_, _, err := execute(t, "build", path, path, "--out", "x.docx")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--out can only be used with a single profile")
}

func TestBuild_AIDraftsMissingText(t *testing.T) {
	dir := setupEnv(t)
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(testProfileJSON), &doc))
	delete(doc, "summary")
	doc["experience"].([]any)[0].(map[string]any)["bullets"] = []string{}
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	path := writeProfile(t, dir, "bare.json", string(data))

	_, _, err = execute(t, "build", path, "--ai", "--provider", "template", "--out", "bare.docx")
	require.NoError(t, err)

	text, err := docx.ExtractTextFile(filepath.Join(dir, "out", "bare.docx"))
	require.NoError(t, err)
	assert.Contains(t, text, "Marcus Reed")
	assert.Contains(t, text, "Navy")
}

func TestBuild_UnknownProvider(t *testing.T) {
	dir := setupEnv(t)
	path := writeProfile(t, dir, "a.json", testProfileJSON)

	_, _, err := execute(t, "build", path, "--ai", "--provider", "openai")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create text generator")
}

func TestBuild_UnknownTemplate(t *testing.T) {
	dir := setupEnv(t)
	path := writeProfile(t, dir, "a.json", testProfileJSON)

	_, stderr, err := execute(t, "build", path, "--template", "fancy")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 1 resumes failed")
	assert.Contains(t, stderr, "Marcus Reed")
	assert.Contains(t, stderr, "fancy")
}

func TestBuild_InvalidProfile(t *testing.T) {
	dir := setupEnv(t)
	path := writeProfile(t, dir, "bad.json", `{"contact": {"full_name": "A"}}`)

	_, _, err := execute(t, "build", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load profile")
}

func TestTemplateFor(t *testing.T) {
	defaults := &types.ResumeProfile{Preferences: types.DefaultPreferences()}
	compact := &types.ResumeProfile{Preferences: types.DocumentPreferences{Template: "compact"}}

	assert.Equal(t, "compact", templateFor("compact", "classic", defaults), "flag wins")
	assert.Equal(t, "", templateFor("", "classic", compact), "profile preference is kept")
	assert.Equal(t, "compact", templateFor("", "compact", defaults), "configured default")
}

func TestCompleteMOS(t *testing.T) {
	catalog := mos.New([]types.MOSEntry{
		{Code: "IT", Branch: types.BranchNavy, Title: "Information Systems Technician", SOCCode: "15-1244"},
	})
	known := &types.ResumeProfile{MOS: &types.MOSEntry{Code: "IT", Branch: types.BranchNavy}}
	unknown := &types.ResumeProfile{MOS: &types.MOSEntry{Code: "ZZ9"}}
	none := &types.ResumeProfile{}

	completeMOS(catalog, []*types.ResumeProfile{known, unknown, none}, zap.NewNop())

	assert.Equal(t, "Information Systems Technician", known.MOS.Title)
	assert.Equal(t, "15-1244", known.MOS.SOCCode)
	assert.Empty(t, unknown.MOS.Title)
	assert.Nil(t, none.MOS)
}

func TestSearchMOS(t *testing.T) {
	setupEnv(t)

	stdout, _, err := execute(t, "search-mos", "network")
	require.NoError(t, err)
	assert.Contains(t, stdout, "IT")
	assert.Contains(t, stdout, "3D0X2")
	assert.NotContains(t, stdout, "25B")
}

func TestSearchMOS_BranchAndJSON(t *testing.T) {
	setupEnv(t)

	stdout, _, err := execute(t, "search-mos", "network", "--branch", "Navy", "--json")
	require.NoError(t, err)

	var results []types.MOSEntry
	require.NoError(t, json.Unmarshal([]byte(stdout), &results))
	require.Len(t, results, 1)
	assert.Equal(t, "IT", results[0].Code)
}

func TestSearchMOS_NoMatch(t *testing.T) {
	setupEnv(t)

	stdout, _, err := execute(t, "search-mos", "submarine")
	require.NoError(t, err)
	assert.Contains(t, stdout, `No MOS codes match "submarine"`)

	stdout, _, err = execute(t, "search-mos", "submarine", "--json")
	require.NoError(t, err)
	assert.JSONEq(t, "[]", stdout)
}

func TestSearchMOS_Verbose(t *testing.T) {
	setupEnv(t)

	stdout, _, err := execute(t, "search-mos", "25b", "--verbose")
	require.NoError(t, err)
	assert.Contains(t, stdout, `MOS SEARCH: "25b"`)
	assert.Contains(t, stdout, "Information Technology Specialist")
}

func TestValidate(t *testing.T) {
	dir := setupEnv(t)
	good := writeProfile(t, dir, "good.json", testProfileJSON)
	bad := writeProfile(t, dir, "bad.json", `{
		"contact": {"full_name": "Ana Torres", "email": "ana@example.com", "phone": "123", "city": "Austin", "state": "TX"}
	}`)

	stdout, _, err := execute(t, "validate", good)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Validation passed")

	stdout, _, err = execute(t, "validate", bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "problem(s)")
	assert.Contains(t, stdout, "Validation failed")
	assert.Contains(t, stdout, "contact.phone")
}

func TestValidate_UnreadableFile(t *testing.T) {
	setupEnv(t)

	_, _, err := execute(t, "validate", filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load profile")
}

func TestExport(t *testing.T) {
	dir := setupEnv(t)
	path := writeProfile(t, dir, "marcus.json", testProfileJSON)

	stdout, _, err := execute(t, "export", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, `"phone": "(963) 258-7410"`)
	assert.Contains(t, stdout, `"start_date": "2014-08-01"`)

	out := filepath.Join(dir, "exported", "marcus.json")
	stdout, _, err = execute(t, "export", path, "--out", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Profile exported to")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, json.Valid(data))
}

func TestInspect(t *testing.T) {
	dir := setupEnv(t)
	path := writeProfile(t, dir, "marcus.json", testProfileJSON)

	_, _, err := execute(t, "build", path, "--out", "marcus.docx")
	require.NoError(t, err)

	stdout, _, err := execute(t, "inspect", filepath.Join(dir, "out", "marcus.docx"))
	require.NoError(t, err)
	assert.Contains(t, stdout, "Marcus Reed")

	_, _, err = execute(t, "inspect", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read document")
}

func TestTemplates(t *testing.T) {
	stdout, _, err := execute(t, "templates")
	require.NoError(t, err)
	assert.Contains(t, stdout, "classic")
	assert.Contains(t, stdout, "compact")
}

func TestSnapshot_RequiresDatabase(t *testing.T) {
	dir := setupEnv(t)
	path := writeProfile(t, dir, "marcus.json", testProfileJSON)

	_, _, err := execute(t, "snapshot", "save", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL is not set")

	_, _, err = execute(t, "snapshot", "get", "not-a-uuid")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid snapshot id")
}

func TestSnapshot_RoundTrip(t *testing.T) {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}
	dir := setupEnv(t)
	t.Setenv(config.EnvDatabaseURL, databaseURL)
	path := writeProfile(t, dir, "marcus.json", testProfileJSON)

	stdout, _, err := execute(t, "snapshot", "save", path)
	require.NoError(t, err)
	require.Contains(t, stdout, "Snapshot saved: ")
	id := stdout[len("Snapshot saved: ") : len(stdout)-1]

	stdout, _, err = execute(t, "snapshot", "get", id)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Marcus Reed")

	_, _, err = execute(t, "snapshot", "delete", id)
	require.NoError(t, err)
}

func TestConfigFlag_InvalidFile(t *testing.T) {
	setupEnv(t)

	_, _, err := execute(t, "search-mos", "network", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestCLI_Help(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "--help")
	output, err := cmd.CombinedOutput()

	assert.NoError(t, err)
	for _, sub := range []string{"build", "search-mos", "validate", "export", "snapshot", "inspect"} {
		assert.Contains(t, string(output), sub)
	}
}

func TestCLI_BuildMissingArgs(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "build")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "requires at least 1 arg(s)")
	if exitError, ok := err.(*exec.ExitError); ok {
		assert.Equal(t, 1, exitError.ExitCode())
	}
}
