package theme

import (
	"bytes"
	"strings"
	"testing"

	"showfolio/internal/database"
	"showfolio/internal/portfolio"
)

func sampleModel(themeName string) *portfolio.ReadModel {
	return &portfolio.ReadModel{
		Portfolio: database.Portfolio{
			Username: "janedoe",
			Tagline:  "Engineer",
			Theme:    themeName,
		},
		Owner: portfolio.Owner{FullName: "Jane Doe", Email: "jane@example.com"},
		Experience: []database.Experience{
			{Company: "Acme", Position: "Dev", StartDate: "2022-01"},
		},
		Skills: []database.Skill{
			{Name: "Go", Category: "Languages"},
		},
	}
}

func TestNormalizeFallsBackToModern(t *testing.T) {
	cases := map[string]string{
		"modern":       Modern,
		"minimal":      Minimal,
		"professional": Professional,
		"neon":         Modern,
		"":             Modern,
		"MODERN":       Modern,
	}
	for in, want := range cases {
		if got := Normalize(in); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRenderEachVariant(t *testing.T) {
	for _, name := range []string{Modern, Minimal, Professional} {
		var buf bytes.Buffer
		if err := Render(&buf, sampleModel(name)); err != nil {
			t.Fatalf("render %s: %v", name, err)
		}
		out := buf.String()
		for _, want := range []string{"Jane Doe", "Engineer", "Acme", "Dev", "Go"} {
			if !strings.Contains(out, want) {
				t.Errorf("%s output missing %q", name, want)
			}
		}
	}
}

func TestRenderUnknownThemeUsesModern(t *testing.T) {
	var known, unknown bytes.Buffer
	if err := Render(&known, sampleModel("modern")); err != nil {
		t.Fatalf("render modern: %v", err)
	}
	if err := Render(&unknown, sampleModel("vaporwave")); err != nil {
		t.Fatalf("render unknown: %v", err)
	}
	if known.String() != unknown.String() {
		t.Error("unknown theme did not render via the modern variant")
	}
}

func TestRenderEscapesUserContent(t *testing.T) {
	model := sampleModel("minimal")
	model.Portfolio.Bio = `<script>alert("x")</script>`
	var buf bytes.Buffer
	if err := Render(&buf, model); err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(buf.String(), "<script>alert") {
		t.Error("bio was not HTML-escaped")
	}
}
