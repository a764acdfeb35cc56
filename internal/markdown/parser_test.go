package markdown

import (
	"strings"
	"testing"
)

func TestRenderDecodesFrontmatter(t *testing.T) {
	src := []byte("---\nweek: 2\ntitle: Increased energy\n---\n\nMany people notice **more energy**.\n")

	var meta struct {
		Week  int    `yaml:"week"`
		Title string `yaml:"title"`
	}
	html, err := NewParser().Render(src, &meta)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	if meta.Week != 2 || meta.Title != "Increased energy" {
		t.Errorf("meta = %+v", meta)
	}
	if !strings.Contains(string(html), "<strong>more energy</strong>") {
		t.Errorf("html = %s", html)
	}
	if strings.Contains(string(html), "title:") {
		t.Error("front matter leaked into html")
	}
}

func TestRenderWithoutMeta(t *testing.T) {
	html, err := NewParser().Render([]byte("# Hi"), nil)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(string(html), "<h1>Hi</h1>") {
		t.Errorf("html = %s", html)
	}
}
