package parse

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/vango-dev/querido/internal/errors"
)

// DefaultTag is the identifier that marks a tagged literal when no override
// is configured.
const DefaultTag = "data"

// DefaultExtensions lists the host file extensions scanned by default.
var DefaultExtensions = []string{".js", ".jsx", ".ts", ".tsx"}

// Literal is one tagged literal extracted from a host source file.
type Literal struct {
	// AbsolutePath is the file the literal was found in.
	AbsolutePath string

	// RelativePath is AbsolutePath relative to the scan root.
	RelativePath string

	// Body is the raw text between the backticks, unescaped.
	Body string

	// Line and Column are 1-indexed and point at the first character of
	// the tag.
	Line   int
	Column int
}

// Options configures a scan.
type Options struct {
	// Tag is the identifier that must precede a backtick for it to be
	// treated as a literal. Defaults to DefaultTag.
	Tag string

	// Extensions lists file extensions to read. Defaults to
	// DefaultExtensions.
	Extensions []string
}

func (o Options) withDefaults() Options {
	if o.Tag == "" {
		o.Tag = DefaultTag
	}
	if len(o.Extensions) == 0 {
		o.Extensions = DefaultExtensions
	}
	return o
}

// ScanDir walks root recursively and returns every tagged literal found in
// a file with a recognized extension. Paths matching an entry in ignore
// (matched against the base name, as in filepath.Match) are skipped
// entirely, directories included.
func ScanDir(root string, ignore []string, opts Options) ([]Literal, error) {
	opts = opts.withDefaults()

	var out []Literal
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		base := filepath.Base(path)
		for _, pattern := range ignore {
			if matched, _ := filepath.Match(pattern, base); matched {
				if info.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
		}
		if info.IsDir() {
			return nil
		}
		if !hasExtension(path, opts.Extensions) {
			return nil
		}

		literals, err := ScanFile(path, opts)
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}
		for i := range literals {
			literals[i].RelativePath = rel
		}
		out = append(out, literals...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ScanFile extracts every tagged literal from a single file.
func ScanFile(path string, opts Options) ([]Literal, error) {
	opts = opts.withDefaults()

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("Q102").
			WithDetail("could not read " + path + ": " + err.Error())
	}

	literals, err := Extract(string(content), opts.Tag)
	if err != nil {
		if qe, ok := err.(*errors.QueridoError); ok && qe.Location != nil {
			return nil, qe.WithLocation(path, qe.Location.Line, qe.Location.Column)
		}
		return nil, err
	}
	for i := range literals {
		literals[i].AbsolutePath = path
	}
	return literals, nil
}

// Extract scans src for occurrences of tag immediately followed by a
// backtick string and returns their bodies and positions. It is a small
// hand-rolled reader, not a full tokenizer: it tracks nested `${ }`
// interpolations only well enough to find the literal's closing backtick,
// since DSL literals never use them, but a conservative host file might.
func Extract(src string, tag string) ([]Literal, error) {
	var out []Literal
	line, col := 1, 1
	prev := byte(0)

	advance := func(n int) {
		for i := 0; i < n; i++ {
			prev = src[0]
			if prev == '\n' {
				line++
				col = 1
			} else {
				col++
			}
			src = src[1:]
		}
	}

	for len(src) > 0 {
		if isWordChar(prev) || !strings.HasPrefix(src, tag) {
			advance(1)
			continue
		}
		afterTag := src[len(tag):]
		if len(afterTag) > 0 && isWordChar(afterTag[0]) {
			advance(1)
			continue
		}
		trimmed := strings.TrimLeft(afterTag, " \t")
		if !strings.HasPrefix(trimmed, "`") {
			advance(1)
			continue
		}

		skipped := len(afterTag) - len(trimmed)
		startLine, startCol := line, col
		advance(len(tag) + skipped + 1) // consume tag, whitespace, opening backtick

		body, consumed, err := readTemplateBody(src)
		if err != nil {
			return nil, errors.New("Q100").WithLocation("", startLine, startCol)
		}

		out = append(out, Literal{
			Body:   body,
			Line:   startLine,
			Column: startCol,
		})
		advance(consumed)
	}

	return out, nil
}

// readTemplateBody reads until the unescaped backtick that closes the
// literal, tracking `${ ... }` nesting depth so an embedded expression
// containing a backtick does not terminate the literal early.
func readTemplateBody(src string) (body string, consumed int, err error) {
	depth := 0
	i := 0
	for i < len(src) {
		switch {
		case src[i] == '\\' && i+1 < len(src):
			i += 2
			continue
		case depth == 0 && src[i] == '`':
			return src[:i], i + 1, nil
		case strings.HasPrefix(src[i:], "${"):
			depth++
			i += 2
			continue
		case depth > 0 && src[i] == '}':
			depth--
			i++
			continue
		default:
			i++
		}
	}
	return "", 0, errors.New("Q100")
}

func isWordChar(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

func hasExtension(path string, extensions []string) bool {
	ext := filepath.Ext(path)
	for _, e := range extensions {
		if ext == e {
			return true
		}
	}
	return false
}
