package validate

import (
	"io/ioutil"
	"os"
	"path"
	"testing"
)

func writeEmpty(t *testing.T, filename string) {
	t.Helper()
	if err := ioutil.WriteFile(filename, []byte{}, 0644); err != nil {
		t.Fatal(err)
	}
}

func TestRunDirectory(t *testing.T) {
	dir := t.TempDir()

	if err := RunDirectory(dir); err == nil {
		t.Error("empty directory should not validate")
	}

	writeEmpty(t, path.Join(dir, "dem.png"))
	if err := RunDirectory(dir); err == nil {
		t.Error("directory without meta.json should not validate")
	}

	writeEmpty(t, path.Join(dir, "meta.json"))
	if err := RunDirectory(dir); err != nil {
		t.Errorf("complete directory should validate, got %v", err)
	}
}

func TestRunDirectoryMissing(t *testing.T) {
	if err := RunDirectory(path.Join(os.TempDir(), "does-not-exist-topo-utils")); err == nil {
		t.Error("missing directory should not validate")
	}
}

func TestDeformationDirectory(t *testing.T) {
	dir := t.TempDir()

	writeEmpty(t, path.Join(dir, "meta.json"))
	if err := DeformationDirectory(dir); err == nil {
		t.Error("directory without frames should not validate")
	}

	writeEmpty(t, path.Join(dir, "dz_0001.png"))
	if err := DeformationDirectory(dir); err != nil {
		t.Errorf("directory with frames should validate, got %v", err)
	}
}
