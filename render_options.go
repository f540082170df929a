package starldoc

const (
	// DefaultMaxDocParams is the number of documented parameters a prototype
	// may have before it is split over multiple lines.
	DefaultMaxDocParams = 3
	// DefaultMaxLineWidth is the longest single-line prototype, in characters.
	DefaultMaxLineWidth = 80
	// DefaultCodeLanguage tags fenced code blocks.
	DefaultCodeLanguage = "python"
)

// RenderOption configures rendering behavior.
type RenderOption func(*renderConfig)

type renderConfig struct {
	maxDocParams int
	maxLineWidth int
	codeLanguage string
}

func newRenderConfig(opts []RenderOption) renderConfig {
	cfg := renderConfig{
		maxDocParams: DefaultMaxDocParams,
		maxLineWidth: DefaultMaxLineWidth,
		codeLanguage: DefaultCodeLanguage,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithMaxDocParams sets how many documented parameters fit a one-line prototype.
func WithMaxDocParams(n int) RenderOption {
	return func(cfg *renderConfig) {
		if n >= 0 {
			cfg.maxDocParams = n
		}
	}
}

// WithMaxLineWidth sets the longest one-line prototype.
func WithMaxLineWidth(n int) RenderOption {
	return func(cfg *renderConfig) {
		if n > 0 {
			cfg.maxLineWidth = n
		}
	}
}

// WithCodeLanguage sets the info string of fenced code blocks.
func WithCodeLanguage(tag string) RenderOption {
	return func(cfg *renderConfig) {
		cfg.codeLanguage = tag
	}
}
