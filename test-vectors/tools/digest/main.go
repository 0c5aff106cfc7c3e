package main

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	sha256 "github.com/minio/sha256-simd"
)

// Prints a digest over the paths and contents of the message traces under a directory,
// as written by the VM when REQUEST_ACTORS_TRACE_DIR is set.
func main() {
	if len(os.Args) != 2 {
		fmt.Printf("Expected exactly one argument, path of directory to digest")
		os.Exit(1)
	}
	rootDir := os.Args[1]
	h := sha256.New()
	var count int
	err := filepath.Walk(rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(rootDir, path)
		if err != nil {
			return err
		}
		_, _ = h.Write([]byte(filepath.ToSlash(rel)))
		if info.IsDir() || filepath.Ext(path) != ".json" {
			return nil
		}
		data, err := ioutil.ReadFile(path)
		if err != nil {
			return err
		}
		_, _ = h.Write(data)
		count++
		return nil
	})
	if err != nil {
		fmt.Printf("Error: %s\n", err)
		os.Exit(1)
	}
	fmt.Printf("- %x (%d traces)\n", h.Sum(nil), count)
}
