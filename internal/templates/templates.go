// Package templates provides the file content the collector uploads:
// notebook and script bodies, the metadata JSON the kaggle CLI expects next
// to them, and generated artifacts like the Titanic submission. Everything
// here is deterministic except the unique resource-name suffixes.
package templates

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

//go:embed assets/*
var assetsFS embed.FS

// Embedded upload bodies.
var (
	PythonNotebook = mustAsset("python_notebook.ipynb")
	RNotebook      = mustAsset("r_notebook.ipynb")
	UtilityScript  = mustAsset("utility_script.py")
	RScript        = mustAsset("r_script.R")
	DatasetReadme  = mustAsset("dataset_readme.md")
)

func mustAsset(name string) string {
	data, err := assetsFS.ReadFile("assets/" + name)
	if err != nil {
		panic(fmt.Sprintf("templates: missing embedded asset %s: %v", name, err))
	}
	return string(data)
}

// UniqueSlug builds a resource slug of the form <prefix><kind>-<suffix>.
// The suffix makes repeated runs create fresh resources instead of
// colliding with half-finished ones from earlier attempts.
func UniqueSlug(prefix, kind string) string {
	suffix := strings.Split(uuid.NewString(), "-")[0]
	return Slugify(prefix+kind) + "-" + suffix
}

// Slugify lowers a title into the character set Kaggle accepts for slugs.
func Slugify(s string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

// TitleFromSlug renders a slug back into a display title.
func TitleFromSlug(slug string) string {
	words := strings.Split(slug, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// WriteFile writes one upload file into a staging directory.
func WriteFile(dir, name, content string) (string, error) {
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	return path, nil
}
