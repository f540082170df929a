package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
	"pkt.systems/mdf"
	"pkt.systems/mdf/pdf"
	"pkt.systems/version"

	"pkt.systems/starldoc"
	"pkt.systems/starldoc/internal/docfile"
)

const (
	defaultThemeName   = "default"
	defaultWidth       = 80
	defaultInputFormat = "yaml"
)

func init() {
	version.SetDefaultModule("pkt.systems/starldoc")
}

type options struct {
	format       string
	inputFormat  string
	themeName    string
	width        int
	osc8         string
	outPath      string
	item         string
	index        bool
	maxDocParams int
	maxLineWidth int
	codeLanguage string
	verbose      bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var (
		opts       options
		listThemes bool
	)
	flags := pflag.NewFlagSet("starldoc", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVarP(&opts.format, "format", "f", "auto", "Output format: auto|md|ansi|pdf")
	flags.StringVar(&opts.inputFormat, "input-format", defaultInputFormat, "Format of stdin input: yaml|json|toml")
	flags.StringVarP(&opts.themeName, "theme", "t", defaultThemeName, "Theme name for ansi and pdf output")
	flags.IntVarP(&opts.width, "width", "w", 0, "Output width override (0 uses terminal width if available)")
	flags.StringVarP(&opts.osc8, "osc8", "8", "auto", "OSC8 hyperlinks: auto|on|off")
	flags.StringVarP(&opts.outPath, "output", "o", "", "Output file instead of stdout")
	flags.StringVarP(&opts.item, "item", "i", "", "Dotted path of the entity to render, e.g. Target.run")
	flags.BoolVar(&opts.index, "index", false, "List members with their summaries instead of full docs")
	flags.IntVar(&opts.maxDocParams, "max-doc-params", starldoc.DefaultMaxDocParams, "Documented parameters allowed on a one-line prototype")
	flags.IntVar(&opts.maxLineWidth, "max-line-width", starldoc.DefaultMaxLineWidth, "Longest one-line prototype")
	flags.StringVar(&opts.codeLanguage, "lang", starldoc.DefaultCodeLanguage, "Language tag of code blocks")
	flags.BoolVar(&listThemes, "list-themes", false, "List available themes")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log progress to stderr")

	flags.SetInterspersed(true)
	flags.Usage = func() {
		fmt.Fprintln(stderr, version.Module(), version.Current())
		fmt.Fprintf(stderr, "Usage: starldoc [flags] [documents...]\n")
		fmt.Fprintln(stderr, "\nDocuments are YAML, JSON or TOML doc trees. If none is given, one is read from stdin.")
		fmt.Fprintln(stderr, "\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}

	if listThemes {
		printThemes(stdout)
		return 0
	}

	log := newLogger(opts.verbose, stderr)
	defer func() { _ = log.Sync() }()

	docs, err := loadDocuments(flags.Args(), stdin, opts.inputFormat, log)
	if err != nil {
		fmt.Fprintf(stderr, "load: %v\n", err)
		return 1
	}

	var markdown string
	if opts.index {
		markdown, err = renderIndexes(docs, opts.item, resolveWidth(opts.width))
	} else {
		markdown, err = renderDocuments(docs, opts.item, opts.renderOptions())
	}
	if err != nil {
		fmt.Fprintf(stderr, "render: %v\n", err)
		return 1
	}

	if opts.format == "auto" && opts.outPath != "" && strings.HasSuffix(strings.ToLower(opts.outPath), ".pdf") {
		fmt.Fprintf(stderr, "warning: output %q ends with .pdf; enabling --format pdf\n", opts.outPath)
		opts.format = "pdf"
	}

	writer, closeOut, err := resolveOutput(opts.outPath, stdout)
	if err != nil {
		fmt.Fprintf(stderr, "open output: %v\n", err)
		return 1
	}
	if closeOut != nil {
		defer func() { _ = closeOut.Close() }()
	}

	format, err := resolveFormat(opts.format, writer)
	if err != nil {
		fmt.Fprintf(stderr, "invalid --format %q: %v\n", opts.format, err)
		return 2
	}
	log.Debugw("writing output", "format", format, "bytes", len(markdown), "output", opts.outPath)

	switch format {
	case "md":
		_, err = io.WriteString(writer, markdown+"\n")
	case "ansi", "pdf":
		theme, ok := mdf.ThemeByName(opts.themeName)
		if !ok {
			fmt.Fprintf(stderr, "unknown theme %q\n\n", opts.themeName)
			printThemes(stderr)
			return 2
		}
		if format == "pdf" {
			if isTerminal(writer) {
				fmt.Fprintln(stderr, "refusing to write PDF to terminal; use -o/--output")
				return 2
			}
			err = renderPDF(markdown, writer, theme)
			break
		}
		osc8, oerr := resolveOSC8(opts.osc8)
		if oerr != nil {
			fmt.Fprintf(stderr, "invalid --osc8 %q: %v\n", opts.osc8, oerr)
			return 2
		}
		err = mdf.Render(mdf.RenderRequest{
			Reader:  strings.NewReader(markdown),
			Writer:  writer,
			Width:   resolveWidth(opts.width),
			Theme:   theme,
			Options: []mdf.RenderOption{mdf.WithOSC8(osc8)},
		})
	}
	if err != nil {
		fmt.Fprintf(stderr, "write %s: %v\n", format, err)
		return 1
	}
	return 0
}

func (o options) renderOptions() []starldoc.RenderOption {
	return []starldoc.RenderOption{
		starldoc.WithMaxDocParams(o.maxDocParams),
		starldoc.WithMaxLineWidth(o.maxLineWidth),
		starldoc.WithCodeLanguage(o.codeLanguage),
	}
}

func newLogger(verbose bool, stderr io.Writer) *zap.SugaredLogger {
	if !verbose {
		return zap.NewNop().Sugar()
	}
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(stderr),
		zapcore.DebugLevel,
	)
	return zap.New(core).Sugar()
}

func loadDocuments(paths []string, stdin io.Reader, inputFormat string, log *zap.SugaredLogger) ([]*docfile.Document, error) {
	if len(paths) == 0 {
		data, err := io.ReadAll(bufio.NewReader(stdin))
		if err != nil {
			return nil, errors.Wrap(err, "read stdin")
		}
		doc, err := docfile.Decode(data, docfile.Format(strings.ToLower(inputFormat)))
		if err != nil {
			return nil, errors.Wrap(err, "stdin")
		}
		if doc.Name == "" {
			doc.Name = "stdin"
		}
		log.Debugw("loaded document", "source", "stdin", "name", doc.Name)
		return []*docfile.Document{doc}, nil
	}
	docs := make([]*docfile.Document, 0, len(paths))
	for _, raw := range paths {
		path := normalizePath(strings.TrimSpace(raw))
		doc, err := docfile.Load(path)
		if err != nil {
			return nil, err
		}
		log.Debugw("loaded document", "path", path, "name", doc.Name)
		docs = append(docs, doc)
	}
	return docs, nil
}

func renderDocuments(docs []*docfile.Document, item string, opts []starldoc.RenderOption) (string, error) {
	out := make([]string, 0, len(docs))
	for _, doc := range docs {
		name, selected, err := doc.Select(item)
		if err != nil {
			return "", err
		}
		out = append(out, starldoc.RenderDocItem(name, selected, opts...))
	}
	return strings.Join(out, "\n\n"), nil
}

func renderPDF(markdown string, w io.Writer, theme mdf.Theme) error {
	cfg := pdf.DefaultConfig()
	regular, bold, italic, boldItalic, err := pdf.EmbeddedHackFonts()
	if err != nil {
		return errors.Wrap(err, "embedded fonts")
	}
	cfg.FontFamily = pdf.EmbeddedFontFamily
	cfg.RegularFontBytes = regular
	cfg.BoldFontBytes = bold
	cfg.ItalicFontBytes = italic
	cfg.BoldItalicFontBytes = boldItalic
	return pdf.Render(pdf.RenderRequest{
		Reader: strings.NewReader(markdown),
		Writer: w,
		Theme:  theme,
		Config: cfg,
	})
}

func printThemes(w io.Writer) {
	names := mdf.AvailableThemes()
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintln(w, name)
	}
}

func resolveFormat(format string, w io.Writer) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(format)); f {
	case "", "auto":
		if isTerminal(w) {
			return "ansi", nil
		}
		return "md", nil
	case "md", "markdown":
		return "md", nil
	case "ansi", "pdf":
		return f, nil
	}
	return "", errors.New("expected auto|md|ansi|pdf")
}

func resolveWidth(width int) int {
	if width > 0 {
		return width
	}
	return terminalWidth(defaultWidth)
}

func terminalWidth(fallback int) int {
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			return w
		}
	}
	if value := os.Getenv("COLUMNS"); value != "" {
		if w, err := strconvAtoi(value); err == nil && w > 0 {
			return w
		}
	}
	return fallback
}

func resolveOSC8(mode string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "auto":
		return mdf.DetectOSC8Support(), nil
	case "on", "true", "1", "yes":
		return true, nil
	case "off", "false", "0", "no":
		return false, nil
	default:
		return false, errors.New("expected auto|on|off")
	}
}

func resolveOutput(path string, stdout io.Writer) (io.Writer, io.Closer, error) {
	if strings.TrimSpace(path) == "" {
		return stdout, nil, nil
	}
	clean := normalizePath(path)
	dir := filepath.Dir(clean)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, err
		}
	}
	f, err := os.Create(clean)
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

func normalizePath(path string) string {
	if strings.HasPrefix(path, "~/") || path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			if path == "~" {
				path = home
			} else {
				path = filepath.Join(home, path[2:])
			}
		}
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		return abs
	}
	return path
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func strconvAtoi(value string) (int, error) {
	var n int
	for i := 0; i < len(value); i++ {
		if value[i] < '0' || value[i] > '9' {
			return 0, errors.New("invalid int")
		}
		n = n*10 + int(value[i]-'0')
	}
	return n, nil
}
