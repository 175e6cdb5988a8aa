// Command minify writes minified copies of the templates and static assets
// into dist/, which the server prefers in production. With -input it
// minifies a single file instead.
package main

import (
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
)

var mediaTypes = map[string]string{
	".css":  "text/css",
	".js":   "application/javascript",
	".html": "text/html",
}

func main() {
	var (
		inputFile  = flag.String("input", "", "Input file path (single file mode)")
		outputFile = flag.String("output", "", "Output file path (single file mode)")
		fileType   = flag.String("type", "", "File type (css, js or html); defaults to the input extension")
		outDir     = flag.String("out", "dist", "Output directory for the asset tree")
	)
	flag.Parse()

	m := newMinifier()

	if *inputFile != "" {
		if *outputFile == "" {
			log.Fatal("Usage: go run ./cmd/minify -input=<file> -output=<file> [-type=<css|js|html>]")
		}
		mediaType, ok := mediaTypeFor(*inputFile, *fileType)
		if !ok {
			log.Fatalf("Unsupported file type for %s (supported: css, js, html)", *inputFile)
		}
		if err := minifyFile(m, *inputFile, *outputFile, mediaType); err != nil {
			log.Fatalf("Failed to minify %s: %v", *inputFile, err)
		}
		return
	}

	n, err := buildTree(m, []string{"templates", "static"}, *outDir)
	if err != nil {
		log.Fatalf("Minification failed: %v", err)
	}
	fmt.Printf("Minified %d files into %s/\n", n, *outDir)
}

func newMinifier() *minify.M {
	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.Add("text/html", &html.Minifier{
		KeepDocumentTags: true,
		KeepEndTags:      true,
		KeepQuotes:       true,
	})
	m.AddFunc("application/javascript", js.Minify)
	return m
}

// mediaTypeFor resolves the minifier media type from an explicit type name
// or the file extension.
func mediaTypeFor(path, typ string) (string, bool) {
	ext := "." + strings.ToLower(strings.TrimPrefix(typ, "."))
	if typ == "" {
		ext = strings.ToLower(filepath.Ext(path))
	}
	mediaType, ok := mediaTypes[ext]
	return mediaType, ok
}

// buildTree mirrors every source directory under outDir. Files the
// minifier knows are minified; everything else is copied as is.
func buildTree(m *minify.M, srcDirs []string, outDir string) (int, error) {
	minified := 0
	for _, dir := range srcDirs {
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return err
			}
			dst := filepath.Join(outDir, path)
			if mediaType, ok := mediaTypeFor(path, ""); ok {
				minified++
				return minifyFile(m, path, dst, mediaType)
			}
			return copyFile(path, dst)
		})
		if err != nil {
			return minified, fmt.Errorf("walk %s: %w", dir, err)
		}
	}
	return minified, nil
}

func minifyFile(m *minify.M, srcPath, dstPath, mediaType string) error {
	src, err := os.ReadFile(srcPath)
	if err != nil {
		return err
	}
	out, err := m.Bytes(mediaType, src)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dstPath), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(dstPath, out, 0644); err != nil {
		return err
	}

	if len(src) > 0 {
		ratio := float64(len(src)-len(out)) / float64(len(src)) * 100
		fmt.Printf("%s: %d bytes -> %d bytes (%.1f%% reduction)\n", srcPath, len(src), len(out), ratio)
	}
	return nil
}

func copyFile(srcPath, dstPath string) error {
	data, err := os.ReadFile(srcPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dstPath), 0755); err != nil {
		return err
	}
	return os.WriteFile(dstPath, data, 0644)
}
