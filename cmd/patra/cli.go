package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"go.uber.org/zap"

	"github.com/sant0-9/patra/internal/catalog"
	"github.com/sant0-9/patra/internal/document"
	"github.com/sant0-9/patra/internal/llm"
	"github.com/sant0-9/patra/internal/session"
	"github.com/sant0-9/patra/internal/writer"
)

const usage = `Usage: patra [command]

With no command, patra opens the interactive letter editor.

Commands:
  list [category]                 List templates, optionally in one category
  search [-category c] <query>    Search templates by title or tag
  show <id> [-lang hindi]         Print a template body
  render <id> [flags]             Fill a template and print or export it
      -lang english|hindi
      -var "Field Name=value"     (repeatable)
      -out letter.pdf             .txt, .html or .pdf
  trending                        Today's featured templates
  drafts                          List saved drafts
  generate <request> [-out file]  Write a letter with the AI writer
  version                         Print the version
`

// varFlags collects repeated -var name=value pairs.
type varFlags []string

func (v *varFlags) String() string { return strings.Join(*v, ",") }

func (v *varFlags) Set(s string) error {
	if !strings.Contains(s, "=") {
		return fmt.Errorf("want name=value, got %q", s)
	}
	*v = append(*v, s)
	return nil
}

func runCommand(e *env, args []string, stdout, stderr io.Writer) int {
	var err error
	switch args[0] {
	case "list":
		err = cmdList(e, args[1:], stdout)
	case "search":
		err = cmdSearch(e, args[1:], stdout)
	case "show":
		err = cmdShow(e, args[1:], stdout)
	case "render":
		err = cmdRender(e, args[1:], stdout)
	case "trending":
		printTemplates(stdout, e.catalog.Trending(time.Now()))
	case "drafts":
		err = cmdDrafts(e, stdout)
	case "generate":
		err = cmdGenerate(e, args[1:], stdout)
	case "version":
		fmt.Fprintf(stdout, "patra %s\n", version)
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usage)
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", args[0], usage)
		return 2
	}

	if err != nil {
		e.logger.Warn("command failed", zap.String("command", args[0]), zap.Error(err))
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func printTemplates(w io.Writer, list []catalog.Template) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, t := range list {
		langs := "en"
		if t.HasLanguage(catalog.Hindi) {
			langs += ",hi"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", t.ID, t.Category, langs, t.Title)
	}
	tw.Flush()
}

func cmdList(e *env, args []string, w io.Writer) error {
	if len(args) == 0 {
		printTemplates(w, e.catalog.All())
		return nil
	}
	cat, err := catalog.ParseCategory(args[0])
	if err != nil {
		return err
	}
	printTemplates(w, e.catalog.ByCategory(cat))
	return nil
}

func cmdSearch(e *env, args []string, w io.Writer) error {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	category := fs.String("category", "", "only search this category")
	if err := fs.Parse(args); err != nil {
		return err
	}
	query := strings.Join(fs.Args(), " ")
	if strings.TrimSpace(query) == "" {
		return errors.New("search needs a query")
	}

	var cat catalog.Category
	if *category != "" {
		c, err := catalog.ParseCategory(*category)
		if err != nil {
			return err
		}
		cat = c
	}
	results := e.catalog.Filter(cat, query)
	if len(results) == 0 {
		fmt.Fprintln(w, "No letters found. Try: patra generate \""+query+"\"")
		return nil
	}
	printTemplates(w, results)
	return nil
}

// lookup splits a leading template id from the flags that follow it.
func lookup(e *env, args []string) (catalog.Template, []string, error) {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return catalog.Template{}, nil, errors.New("missing template id")
	}
	t, ok := e.catalog.Get(args[0])
	if !ok {
		return catalog.Template{}, nil, fmt.Errorf("no template with id %q", args[0])
	}
	return t, args[1:], nil
}

func parseLang(s string, t catalog.Template) (catalog.Language, error) {
	lang, err := catalog.ParseLanguage(s)
	if err != nil {
		return "", err
	}
	if !t.HasLanguage(lang) {
		return "", fmt.Errorf("template %s has no %s version", t.ID, lang)
	}
	return lang, nil
}

func cmdShow(e *env, args []string, w io.Writer) error {
	t, rest, err := lookup(e, args)
	if err != nil {
		return err
	}
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	langFlag := fs.String("lang", e.cfg.Language, "english or hindi")
	if err := fs.Parse(rest); err != nil {
		return err
	}
	lang, err := parseLang(*langFlag, t)
	if err != nil {
		return err
	}

	s := session.New(t, lang)
	fmt.Fprintf(w, "%s (%s, %s)\n\n%s\n", t.Title, t.Category, lang, s.Body())
	if names := s.Placeholders(); len(names) > 0 {
		fmt.Fprintf(w, "\nFields: %s\n", strings.Join(names, ", "))
	}
	return nil
}

func cmdRender(e *env, args []string, w io.Writer) error {
	t, rest, err := lookup(e, args)
	if err != nil {
		return err
	}
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	langFlag := fs.String("lang", e.cfg.Language, "english or hindi")
	out := fs.String("out", "", "write to this file instead of stdout")
	var vars varFlags
	fs.Var(&vars, "var", "field value as name=value")
	if err := fs.Parse(rest); err != nil {
		return err
	}
	lang, err := parseLang(*langFlag, t)
	if err != nil {
		return err
	}

	s := session.New(t, lang)
	for _, v := range vars {
		name, value, _ := strings.Cut(v, "=")
		if !s.Set(strings.TrimSpace(name), value) {
			return fmt.Errorf("template %s has no field %q (fields: %s)", t.ID, name, strings.Join(s.Placeholders(), ", "))
		}
	}

	return emit(e, document.New(t.Title, s.Render(), lang), *out, w)
}

func cmdDrafts(e *env, w io.Writer) error {
	if e.draftsErr != nil {
		return fmt.Errorf("%s: %w", e.draftsPath, e.draftsErr)
	}
	list := e.book.List()
	if len(list) == 0 {
		fmt.Fprintln(w, "No saved drafts.")
		return nil
	}
	if e.draftsPath != "" {
		fmt.Fprintf(w, "%d drafts in %s\n\n", len(list), e.draftsPath)
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, d := range list {
		origin := "ai"
		if d.FromCatalog() {
			origin = *d.TemplateID
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", d.LastModified.Local().Format("2006-01-02 15:04"), origin, d.Language, d.Title)
	}
	tw.Flush()
	return nil
}

func cmdGenerate(e *env, args []string, w io.Writer) error {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	out := fs.String("out", "", "write to this file instead of stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}
	request := strings.Join(fs.Args(), " ")

	provider, err := llm.NewProvider(e.cfg)
	if err != nil && !errors.Is(err, llm.ErrMissingAPIKey) {
		return err
	}
	wr := writer.NewWriter(provider, e.cfg.Model, e.cfg.RequestTimeout(), e.logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	t, err := wr.Generate(ctx, request)
	if err != nil {
		var werr *writer.Error
		if errors.As(err, &werr) {
			return errors.New(werr.Message())
		}
		return err
	}

	lang := catalog.English
	if t.HasLanguage(catalog.Hindi) {
		lang = catalog.Hindi
	}
	return emit(e, document.New(t.Title, t.Body(lang), lang), *out, w)
}

// emit prints the letter, or exports it when out names a file.
func emit(e *env, d *document.Document, out string, w io.Writer) error {
	if out == "" {
		fmt.Fprintln(w, d.Text)
		return nil
	}
	format, err := document.FormatFor(out)
	if err != nil {
		return err
	}
	if err := e.exporter.SaveAs(context.Background(), d, format, out); err != nil {
		return err
	}
	fmt.Fprintf(w, "Saved %s (%d words)\n", out, d.WordCount())
	return nil
}
