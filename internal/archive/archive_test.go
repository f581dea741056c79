package archive

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestCopyFile(t *testing.T) {
	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "in.pptx")
	dst := filepath.Join(tmpDir, "out.pptx")

	content := []byte("PK\x03\x04 binary \x00 content")
	if err := os.WriteFile(src, content, 0640); err != nil {
		t.Fatalf("Failed to create source file: %v", err)
	}
	mtime := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	if err := os.Chtimes(src, mtime, mtime); err != nil {
		t.Fatalf("Failed to set source times: %v", err)
	}

	if err := CopyFile(src, dst); err != nil {
		t.Fatalf("CopyFile failed: %v", err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("Failed to read copy: %v", err)
	}
	if string(got) != string(content) {
		t.Errorf("Copy content mismatch: %q vs %q", got, content)
	}

	info, err := os.Stat(dst)
	if err != nil {
		t.Fatalf("Failed to stat copy: %v", err)
	}
	if info.Mode().Perm() != 0640 {
		t.Errorf("Expected mode 0640, got %v", info.Mode().Perm())
	}
	if !info.ModTime().Equal(mtime) {
		t.Errorf("Expected mtime %v, got %v", mtime, info.ModTime())
	}
}

func TestCopyFile_Overwrites(t *testing.T) {
	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "in.pptx")
	dst := filepath.Join(tmpDir, "out.pptx")

	os.WriteFile(src, []byte("new"), 0644)
	os.WriteFile(dst, []byte("old and longer"), 0644)

	if err := CopyFile(src, dst); err != nil {
		t.Fatalf("CopyFile failed: %v", err)
	}
	got, _ := os.ReadFile(dst)
	if string(got) != "new" {
		t.Errorf("Expected destination to be truncated and replaced, got %q", got)
	}
}

func TestCopyFile_Errors(t *testing.T) {
	tmpDir := t.TempDir()

	if err := CopyFile(filepath.Join(tmpDir, "missing"), filepath.Join(tmpDir, "out")); err == nil {
		t.Error("Expected error for missing source")
	}

	if err := CopyFile(tmpDir, filepath.Join(tmpDir, "out")); err == nil {
		t.Error("Expected error for directory source")
	}
}

func TestCopyFile_SameFile(t *testing.T) {
	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "talk.pptx")
	content := []byte("deck bytes")
	if err := os.WriteFile(src, content, 0644); err != nil {
		t.Fatalf("Failed to create source file: %v", err)
	}
	link := filepath.Join(tmpDir, "link.pptx")
	if err := os.Symlink(src, link); err != nil {
		t.Fatalf("Failed to create symlink: %v", err)
	}
	t.Chdir(tmpDir)

	for _, dst := range []string{src, link, "./talk.pptx"} {
		err := CopyFile("talk.pptx", dst)
		if !errors.Is(err, ErrSameFile) {
			t.Errorf("CopyFile(talk.pptx, %s) error = %v, want ErrSameFile", dst, err)
		}
	}

	got, err := os.ReadFile(src)
	if err != nil {
		t.Fatalf("Failed to read source: %v", err)
	}
	if string(got) != string(content) {
		t.Errorf("Source was modified: %q", got)
	}

	if !SameFile(link, src) {
		t.Error("Expected symlink and target to be the same file")
	}
	if SameFile(src, filepath.Join(tmpDir, "new.pptx")) {
		t.Error("A missing path must not be the same file")
	}
}

func TestArchiveCache(t *testing.T) {
	tmpDir := t.TempDir()
	cachePath := filepath.Join(tmpDir, "translation_cache.json")
	if err := os.WriteFile(cachePath, []byte("{}"), 0644); err != nil {
		t.Fatalf("Failed to create cache file: %v", err)
	}

	archived, err := ArchiveCache(cachePath)
	if err != nil {
		t.Fatalf("ArchiveCache failed: %v", err)
	}

	if _, err := os.Stat(cachePath); !os.IsNotExist(err) {
		t.Error("Cache file still exists after archiving")
	}

	if filepath.Dir(archived) != filepath.Join(tmpDir, "archive") {
		t.Errorf("Archive placed in unexpected directory: %s", archived)
	}

	name := filepath.Base(archived)
	if !strings.HasPrefix(name, "translation_cache-") || !strings.HasSuffix(name, ".json") {
		t.Errorf("Unexpected archive name: %s", name)
	}

	content, err := os.ReadFile(archived)
	if err != nil || string(content) != "{}" {
		t.Errorf("Archived content mismatch: %q, %v", content, err)
	}
}

func TestArchiveCache_NonExistentFile(t *testing.T) {
	_, err := ArchiveCache(filepath.Join(t.TempDir(), "nonexistent.json"))
	if err == nil {
		t.Fatal("Expected error for non-existent cache file")
	}

	if !strings.Contains(err.Error(), "does not exist") {
		t.Errorf("Expected 'does not exist' error, got: %v", err)
	}
}

func TestArchiveCache_MultipleArchives(t *testing.T) {
	tmpDir := t.TempDir()
	cachePath := filepath.Join(tmpDir, "cache.json")

	for i := 0; i < 2; i++ {
		if err := os.WriteFile(cachePath, []byte("{}"), 0644); err != nil {
			t.Fatalf("Failed to create cache file: %v", err)
		}
		if i == 1 {
			time.Sleep(10 * time.Millisecond)
		}
		if _, err := ArchiveCache(cachePath); err != nil {
			t.Fatalf("ArchiveCache failed on iteration %d: %v", i, err)
		}
	}

	entries, err := os.ReadDir(filepath.Join(tmpDir, "archive"))
	if err != nil {
		t.Fatalf("Failed to read archive directory: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries in archive directory, got %d", len(entries))
	}
}
