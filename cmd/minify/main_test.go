package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCSSMinification(t *testing.T) {
	m := newMinifier()
	input := `
		body {
			color: #fff;
			margin: 0  ;
		}
	`
	got, err := m.String("text/css", input)
	if err != nil {
		t.Fatalf("CSS minification failed: %v", err)
	}
	if want := `body{color:#fff;margin:0}`; got != want {
		t.Errorf("CSS minification mismatch:\nGot:      %q\nExpected: %q", got, want)
	}
}

func TestJSMinification(t *testing.T) {
	m := newMinifier()
	input := `
		function add(a, b) {
			return a + b;
		}
	`
	got, err := m.String("application/javascript", input)
	if err != nil {
		t.Fatalf("JS minification failed: %v", err)
	}
	if want := `function add(e,t){return e+t}`; got != want {
		t.Errorf("JS minification mismatch:\nGot:      %q\nExpected: %q", got, want)
	}
}

func TestHTMLMinificationKeepsTemplateActions(t *testing.T) {
	m := newMinifier()
	input := `<div class="tile {{.Class}}">
		{{.Letter}}
	</div>`
	got, err := m.String("text/html", input)
	if err != nil {
		t.Fatalf("HTML minification failed: %v", err)
	}
	for _, want := range []string{"{{.Class}}", "{{.Letter}}", "</div>"} {
		if !strings.Contains(got, want) {
			t.Errorf("minified HTML %q lost %q", got, want)
		}
	}
}

func TestMediaTypeFor(t *testing.T) {
	cases := []struct {
		path, typ string
		want      string
		ok        bool
	}{
		{"static/app.css", "", "text/css", true},
		{"static/app.JS", "", "application/javascript", true},
		{"templates/index.html", "", "text/html", true},
		{"anything", "css", "text/css", true},
		{"static/logo.png", "", "", false},
	}
	for _, c := range cases {
		got, ok := mediaTypeFor(c.path, c.typ)
		if got != c.want || ok != c.ok {
			t.Errorf("mediaTypeFor(%q, %q) = %q, %v; want %q, %v", c.path, c.typ, got, ok, c.want, c.ok)
		}
	}
}

func TestBuildTree(t *testing.T) {
	t.Chdir(t.TempDir())
	write := func(path, content string) {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	write("static/app.css", "body {\n  margin: 0;\n}\n")
	write("static/logo.png", "PNGDATA")

	n, err := buildTree(newMinifier(), []string{"static"}, "dist")
	if err != nil {
		t.Fatalf("buildTree: %v", err)
	}
	if n != 1 {
		t.Errorf("minified %d files, want 1", n)
	}

	css, err := os.ReadFile(filepath.Join("dist", "static", "app.css"))
	if err != nil {
		t.Fatalf("read minified css: %v", err)
	}
	if string(css) != "body{margin:0}" {
		t.Errorf("minified css = %q", css)
	}
	png, err := os.ReadFile(filepath.Join("dist", "static", "logo.png"))
	if err != nil || string(png) != "PNGDATA" {
		t.Errorf("copied png = %q, %v", png, err)
	}
}
