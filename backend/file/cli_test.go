package file_test

import (
	"os"
	"path/filepath"
	"testing"

	"todopad/internal/testutil"
)

func newFileCLITest(t *testing.T) (*testutil.CLITest, string) {
	t.Helper()
	cli := testutil.NewCLITestWithConfig(t, "storage:\n  backend: file\nseed: false\n")
	dir := filepath.Join(cli.TmpDir(), "store")
	cli.Config().DBPath = dir
	return cli, dir
}

func TestAddAndListFileCLI(t *testing.T) {
	cli, dir := newFileCLITest(t)

	cli.MustExecute("-y", "add", "Sweep floor")
	cli.MustExecute("-y", "add", "Mop floor")
	cli.MustExecute("-y", "toggle", "1")

	stdout := cli.MustExecute("-y", "ls")
	testutil.AssertContains(t, stdout, "[ ]   2  Mop floor")
	testutil.AssertContains(t, stdout, "[x]   1  Sweep floor")

	data, err := os.ReadFile(filepath.Join(dir, "todo-app.json"))
	if err != nil {
		t.Fatalf("expected todo-app.json in store dir: %v", err)
	}
	want := `[{"id":2,"title":"Mop floor","completed":false},{"id":1,"title":"Sweep floor","completed":true}]`
	if string(data) != want {
		t.Errorf("got %s, want %s", data, want)
	}
}

func TestEditMissingIDFileCLI(t *testing.T) {
	cli, _ := newFileCLITest(t)

	cli.MustExecute("-y", "edit", "3", "Made by edit")

	stdout := cli.MustExecute("-y", "show", "3")
	testutil.AssertContains(t, stdout, "Made by edit")
}
