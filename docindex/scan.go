package docindex

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/ldoc-dev/ldoc/markup"
	"github.com/ldoc-dev/ldoc/modes"
)

// Stats summarizes one indexing pass.
type Stats struct {
	Files   int
	Bytes   int64
	Entries int
}

// ScanDir walks a directory of pre-existing hypertext manual pages and
// harvests their predicate definitions into the registry.
func ScanDir(r *Registry, dir string) (Stats, error) {
	var stats Stats
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".html") {
			return nil
		}
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		n, err := ScanManual(r, path, f)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		stats.Files++
		stats.Bytes += info.Size()
		stats.Entries += n
		return nil
	})
	return stats, err
}

// ScanManual reads one hypertext page and registers every predicate
// definition it declares. Definitions are recognized by their anchor ids
// ("name/arity" or "name//arity") on definition headers, the layout this
// toolkit and the reference manuals both emit.
func ScanManual(r *Registry, file string, src io.Reader) (int, error) {
	doc, err := goquery.NewDocumentFromReader(src)
	if err != nil {
		return 0, fmt.Errorf("could not parse page: %w", err)
	}

	count := 0
	// Indicator-shaped ids identify definitions wherever they sit, so one
	// catch-all selector covers pubdef and multidef headers alike.
	doc.Find("a[id]").Each(func(_ int, s *goquery.Selection) {
		id := s.AttrOr("id", "")
		name, arity, dcg, ok := splitAnchor(id)
		if !ok {
			return
		}
		sig := &modes.Signature{Name: name, DCG: dcg, Public: true}
		sig.Args = make([]modes.Arg, arity)

		// The definition text carries the full mode line; prefer it over
		// the bare indicator when it parses.
		if text := strings.TrimSpace(s.Text()); text != "" {
			if parsed, ok := modes.ParseModeLine(text, nil); ok && parsed.Arity() == arity {
				parsed.DCG = dcg
				parsed.Public = true
				sig = parsed
			}
		}

		if _, fresh := r.Register(sig, file, 0); fresh {
			count++
		}
	})
	return count, nil
}

// IndexComments registers the signatures declared by a file's structured
// comments under page, the rendered output their anchors will live on.
// This is the first half of the index-then-render contract: it runs
// strictly before any render pass reads the registry.
func IndexComments(r *Registry, page string, comments []markup.Comment, ops modes.OpTable) int {
	count := 0
	for _, c := range comments {
		for _, line := range c.Lines {
			if strings.TrimSpace(line) == "" {
				break
			}
			sig, ok := modes.ParseModeLine(line, ops)
			if !ok {
				break
			}
			if _, fresh := r.Register(sig, page, c.Offset); fresh {
				count++
			}
		}
	}
	return count
}

func splitAnchor(id string) (string, int, bool, bool) {
	if id == "" {
		return "", 0, false, false
	}
	name, arity, dcg, ok := markup.SplitIndicator(id)
	if !ok {
		return "", 0, false, false
	}
	return name, arity, dcg, true
}
