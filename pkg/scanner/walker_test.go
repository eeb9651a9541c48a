package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
)

func createFiles(t *testing.T, fs afero.Fs, files map[string]string) {
	t.Helper()
	for path, content := range files {
		if err := afero.WriteFile(fs, path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to create test file %s: %v", path, err)
		}
	}
}

func TestFileWalker_Walk_NonRecursive(t *testing.T) {
	fs := afero.NewMemMapFs()
	createFiles(t, fs, map[string]string{
		"/root/file1.txt":        "a",
		"/root/file2.txt":        "b",
		"/root/subdir/file3.txt": "c",
	})

	var visited []string
	err := NewFileWalker(fs, false, "").Walk("/root", func(path string, info os.FileInfo) error {
		visited = append(visited, path)
		return nil
	})
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}

	want := []string{"/root/file1.txt", "/root/file2.txt"}
	if len(visited) != len(want) {
		t.Fatalf("Expected %v, got %v", want, visited)
	}
	for i := range want {
		if visited[i] != want[i] {
			t.Errorf("visited[%d] = %s, want %s", i, visited[i], want[i])
		}
	}
}

func countFiles(w *FileWalker, root string) (int, error) {
	count := 0
	err := w.Walk(root, func(path string, info os.FileInfo) error {
		count++
		return nil
	})
	return count, err
}

func TestFileWalker_Walk_Recursive(t *testing.T) {
	fs := afero.NewMemMapFs()
	createFiles(t, fs, map[string]string{
		"/root/file1.txt":         "a",
		"/root/.hidden_file":      "b",
		"/root/subdir/file3.txt":  "c",
		"/root/subdir/deep/x.bin": "d",
	})

	count, err := countFiles(NewFileWalker(fs, true, ""), "/root")
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
	if count != 4 {
		t.Errorf("Expected 4 files, got %d", count)
	}
}

func TestFileWalker_Walk_ExcludesOutputFolder(t *testing.T) {
	fs := afero.NewMemMapFs()
	createFiles(t, fs, map[string]string{
		"/root/a.txt":                "a",
		"/root/duplicated/a.txt":     "a",
		"/root/duplicated/sub/b.txt": "b",
		"/root/duplicated2/c.txt":    "c",
	})

	var visited []string
	err := NewFileWalker(fs, true, "/root/duplicated").Walk("/root", func(path string, info os.FileInfo) error {
		visited = append(visited, path)
		return nil
	})
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}

	// duplicated2 shares a prefix with the output folder but is not inside it
	want := []string{"/root/a.txt", "/root/duplicated2/c.txt"}
	if len(visited) != len(want) {
		t.Fatalf("Expected %v, got %v", want, visited)
	}
	for i := range want {
		if visited[i] != want[i] {
			t.Errorf("visited[%d] = %s, want %s", i, visited[i], want[i])
		}
	}
}

func TestFileWalker_Walk_RegexUnsafeExclude(t *testing.T) {
	fs := afero.NewMemMapFs()
	createFiles(t, fs, map[string]string{
		"/root/dup[1]+(x)/a.txt": "a",
		"/root/dup1x/b.txt":      "b",
	})

	count, err := countFiles(NewFileWalker(fs, true, "/root/dup[1]+(x)"), "/root")
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 file, got %d", count)
	}
}

func TestFileWalker_Walk_WithSymlinks(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping symlink test in short mode")
	}

	tempDir := t.TempDir()

	filePath := filepath.Join(tempDir, "file.txt")
	if err := os.WriteFile(filePath, []byte("test content"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	linkPath := filepath.Join(tempDir, "link.txt")
	if err := os.Symlink(filePath, linkPath); err != nil {
		t.Skipf("Skipping symlink test: %v", err)
	}

	count, err := countFiles(NewFileWalker(afero.NewOsFs(), false, ""), tempDir)
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}

	if count != 1 {
		t.Errorf("Expected 1 regular file (symlink skipped), got %d", count)
	}
}

func TestIsWithin(t *testing.T) {
	tests := []struct {
		path, dir string
		want      bool
	}{
		{"/root/out", "/root/out", true},
		{"/root/out/a.txt", "/root/out", true},
		{"/root/out/x/y", "/root/out", true},
		{"/root/output/a.txt", "/root/out", false},
		{"/root/a.txt", "/root/out", false},
		{"/root/..foo", "/root", true},
		{"/other", "/root", false},
		{"/root/a.txt", "", false},
	}

	for _, tt := range tests {
		if got := IsWithin(tt.path, tt.dir); got != tt.want {
			t.Errorf("IsWithin(%q, %q) = %v, want %v", tt.path, tt.dir, got, tt.want)
		}
	}
}
