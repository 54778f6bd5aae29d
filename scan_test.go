package main

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestIsPhotoFile(t *testing.T) {
	cases := map[string]bool{
		"a.jpg":       true,
		"a.JPG":       true,
		"a.jpeg":      true,
		"a.png":       false,
		"a.mp4":       false,
		"history.bin": false,
	}
	for path, want := range cases {
		if got := isPhotoFile(path); got != want {
			t.Fatalf("isPhotoFile(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestCollectPhotoFilesNaturalOrder(t *testing.T) {
	dir := t.TempDir()
	names := []string{"photo10.jpg", "photo2.jpg", "photo1.jpg", "notes.txt"}
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	files, err := collectPhotoFiles([]string{dir})
	if err != nil {
		t.Fatalf("collect: %v", err)
	}

	want := []string{
		filepath.Join(dir, "photo1.jpg"),
		filepath.Join(dir, "photo2.jpg"),
		filepath.Join(dir, "photo10.jpg"),
	}
	if !reflect.DeepEqual(files, want) {
		t.Fatalf("expected natural order %v, got %v", want, files)
	}
}

func TestCollectPhotoFilesMissingPath(t *testing.T) {
	if _, err := collectPhotoFiles([]string{filepath.Join(t.TempDir(), "nope")}); err == nil {
		t.Fatal("expected an error for a missing path")
	}
}
