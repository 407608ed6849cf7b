// Command ldoc extracts structured comments from logic-language source
// files and renders them as browsable hypertext or typesettable document
// markup.
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/dustin/go-humanize"

	"github.com/ldoc-dev/ldoc/docindex"
	"github.com/ldoc-dev/ldoc/htmldoc"
	"github.com/ldoc-dev/ldoc/latexdoc"
	"github.com/ldoc-dev/ldoc/markup"
	"github.com/ldoc-dev/ldoc/render"
)

const version = "0.2.0"

var cli struct {
	Config string `help:"Configuration file." default:"ldoc.json" type:"path"`
	Debug  bool   `help:"Dump parsed document trees."`

	Render  renderCmd  `cmd:"" help:"Render documentation for source files."`
	Index   indexCmd   `cmd:"" help:"Index hypertext manual pages into a registry."`
	Summary summaryCmd `cmd:"" help:"Print one-line summaries of documented declarations."`
	Version versionCmd `cmd:"" help:"Print version information."`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("ldoc"),
		kong.Description("Structured-comment documentation toolkit"),
		kong.UsageOnError(),
	)

	config, err := loadConfig(cli.Config)
	if err != nil {
		log.Fatal(err)
	}
	ctx.FatalIfErrorf(ctx.Run(&config))
}

type renderCmd struct {
	Files []string `arg:"" help:"Source files to document." type:"existingfile"`

	Format       string  `help:"Output format." enum:"html,latex" default:"html"`
	Out          string  `help:"Output directory." default:"."`
	Registry     string  `help:"Cross-reference registry file."`
	SectionLevel *string `help:"Base section level (chapter..paragraph)."`
	PublicOnly   *bool   `help:"Only document public signatures."`
	Standalone   *bool   `help:"Emit a complete document instead of a fragment."`
}

func (c *renderCmd) Run(config *configuration) error {
	opts, err := config.options(c.SectionLevel, c.PublicOnly, c.Standalone)
	if err != nil {
		return err
	}
	ops, err := config.ops()
	if err != nil {
		return err
	}

	reg, err := openRegistry(c.Registry, config)
	if err != nil {
		return err
	}

	// Index strictly before render: the registry is read-only once the
	// first page renders. Entries point at the pages being generated, so
	// cross-references link into rendered output rather than the sources.
	units := make(map[string][]markup.Comment, len(c.Files))
	for _, file := range c.Files {
		src, err := os.ReadFile(file)
		if err != nil {
			return err
		}
		comments := markup.ExtractComments(file, string(src))
		docindex.IndexComments(reg, c.outputName(file), comments, ops)
		units[file] = comments
	}

	parse := markup.Config{Known: reg.Known, Ops: ops}
	for _, file := range c.Files {
		var docs []*markup.Doc
		for _, comment := range units[file] {
			doc := markup.Parse(comment.Lines, parse)
			doc.File, doc.Offset = comment.File, comment.Offset
			if cli.Debug {
				dumpTree(doc)
			}
			docs = append(docs, doc)
		}

		out, err := c.renderFile(file, docs, reg, opts)
		if err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
		log.Printf("rendered %s (%d comments) -> %s", file, len(docs), out)
	}
	return nil
}

func (c *renderCmd) renderFile(file string, docs []*markup.Doc, reg *docindex.Registry, opts render.Options) (string, error) {
	out := filepath.Join(c.Out, c.outputName(file))

	switch c.Format {
	case "latex":
		toks, err := latexdoc.Document(docs, opts)
		if err != nil {
			return "", err
		}
		f, err := os.Create(out)
		if err != nil {
			return "", err
		}
		defer f.Close()
		return out, latexdoc.Print(f, toks)

	default:
		r := htmldoc.New(reg, opts)
		var body strings.Builder
		for _, doc := range docs {
			body.WriteString(r.Render(doc))
		}
		page := body.String()
		if opts.StandAlone {
			page = htmldoc.Page(filepath.Base(file), page)
		}
		return out, os.WriteFile(out, []byte(page), 0o644)
	}
}

// outputName is the page a source file renders to, and therefore the
// target its indexed anchors carry.
func (c *renderCmd) outputName(file string) string {
	base := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	if c.Format == "latex" {
		return base + ".tex"
	}
	return base + ".html"
}

type indexCmd struct {
	Dir string `arg:"" help:"Directory of hypertext manual pages." type:"existingdir"`
	Out string `help:"Registry file to write." default:"registry.json"`
}

func (c *indexCmd) Run(config *configuration) error {
	reg := docindex.NewRegistry()
	stats, err := docindex.ScanDir(reg, c.Dir)
	if err != nil {
		return err
	}
	if err := reg.Save(c.Out); err != nil {
		return err
	}
	log.Printf("indexed %s files (%s), %s entries -> %s",
		humanize.Comma(int64(stats.Files)),
		humanize.Bytes(uint64(stats.Bytes)),
		humanize.Comma(int64(stats.Entries)),
		c.Out)
	return nil
}

type summaryCmd struct {
	Files []string `arg:"" help:"Source files to summarize." type:"existingfile"`
}

func (c *summaryCmd) Run(config *configuration) error {
	ops, err := config.ops()
	if err != nil {
		return err
	}
	for _, file := range c.Files {
		src, err := os.ReadFile(file)
		if err != nil {
			return err
		}
		for _, comment := range markup.ExtractComments(file, string(src)) {
			doc := markup.Parse(comment.Lines, markup.Config{Ops: ops})
			name := "(module)"
			if len(doc.Signatures) > 0 {
				name = doc.Signatures[0].Key()
			}
			fmt.Printf("%s\t%s\t%s\n", file, name, doc.Summary)
		}
	}
	return nil
}

type versionCmd struct{}

func (versionCmd) Run(*configuration) error {
	fmt.Println("ldoc", version)
	return nil
}

func openRegistry(flag string, config *configuration) (*docindex.Registry, error) {
	path := flag
	if path == "" {
		path = config.Registry
	}
	if path == "" {
		return docindex.NewRegistry(), nil
	}
	return docindex.Load(path)
}
