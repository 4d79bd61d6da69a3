package render

import (
	"bytes"
	"fmt"
	"html"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	chromastyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
)

const codeStyle = "github"

var (
	markdown = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(goldmarkhtml.WithHardWraps()),
	)
	sanitizer     = bluemonday.UGCPolicy()
	codeFormatter = chromahtml.New(chromahtml.WithClasses(true))
)

// RenderMarkdownHTML converts bot text to sanitised HTML. Fenced code blocks
// are highlighted with chroma; everything else goes through goldmark and
// then bluemonday, so raw HTML in model output never reaches the page.
func RenderMarkdownHTML(text string) string {
	var out strings.Builder
	var prose []string
	var code []string
	var language string
	inCode := false

	flushProse := func() {
		if len(prose) == 0 {
			return
		}
		out.WriteString(markdownToHTML(strings.Join(prose, "\n")))
		prose = nil
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "```") && !inCode:
			flushProse()
			language = strings.TrimSpace(strings.TrimPrefix(trimmed, "```"))
			inCode = true
		case strings.HasPrefix(trimmed, "```") && inCode:
			out.WriteString(highlightHTML(strings.Join(code, "\n"), language))
			code = nil
			language = ""
			inCode = false
		case inCode:
			code = append(code, line)
		default:
			prose = append(prose, line)
		}
	}

	// Unclosed fence: treat what we have as code.
	if inCode {
		out.WriteString(highlightHTML(strings.Join(code, "\n"), language))
	}
	flushProse()

	return out.String()
}

func markdownToHTML(text string) string {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(text), &buf); err != nil {
		return "<p>" + escapeWithBreaks(text) + "</p>"
	}
	return sanitizer.Sanitize(buf.String())
}

// highlightHTML guesses the language when the fence does not name one.
func highlightHTML(code, language string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := chromastyles.Get(codeStyle)
	if style == nil {
		style = chromastyles.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "<pre><code>" + html.EscapeString(code) + "</code></pre>"
	}

	var buf bytes.Buffer
	if err := codeFormatter.Format(&buf, style, iterator); err != nil {
		return "<pre><code>" + html.EscapeString(code) + "</code></pre>"
	}
	return buf.String()
}

// CodeCSS returns the stylesheet for highlighted code blocks.
func CodeCSS() string {
	style := chromastyles.Get(codeStyle)
	if style == nil {
		style = chromastyles.Fallback
	}
	var buf bytes.Buffer
	if err := codeFormatter.WriteCSS(&buf, style); err != nil {
		return ""
	}
	return buf.String()
}

func escapeWithBreaks(text string) string {
	return strings.ReplaceAll(html.EscapeString(text), "\n", "<br>")
}

type htmlBlock struct {
	id   int
	html string
}

// HTMLSurface keeps the chat box as a list of HTML fragments, the way a
// browser page would hold message elements.
type HTMLSurface struct {
	mu     sync.Mutex
	blocks []htmlBlock
	nextID int
	notice string
	title  string
}

func NewHTMLSurface(title string) *HTMLSurface {
	return &HTMLSurface{title: title}
}

func (s *HTMLSurface) ShowUser(text string) {
	s.add(`<div class="message user-msg"><div class="text-bubble">` + escapeWithBreaks(text) + `</div></div>`)
}

func (s *HTMLSurface) ShowBot(text string) {
	s.add(`<div class="message bot-msg"><div class="text-bubble markdown-body">` + RenderMarkdownHTML(text) + `</div></div>`)
}

func (s *HTMLSurface) ShowTyping() Placeholder {
	id := s.add(`<div class="message bot-msg typing"><div class="text-bubble"><div class="typing-indicator"><span></span><span></span><span></span></div></div></div>`)

	return placeholderFunc(func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, b := range s.blocks {
			if b.id == id {
				s.blocks = append(s.blocks[:i], s.blocks[i+1:]...)
				return
			}
		}
	})
}

func (s *HTMLSurface) Notify(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notice = message
}

func (s *HTMLSurface) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blocks = nil
}

// Messages returns the current chat box fragments in display order.
func (s *HTMLSurface) Messages() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.blocks))
	for i, b := range s.blocks {
		out[i] = b.html
	}
	return out
}

// LastNotice returns the most recent notification, if any. Document shows it
// below the chat box.
func (s *HTMLSurface) LastNotice() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notice
}

// Document wraps the chat box in a standalone HTML page.
func (s *HTMLSurface) Document() string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(s.title))
	b.WriteString("<style>\n")
	b.WriteString(pageCSS)
	b.WriteString(CodeCSS())
	b.WriteString("</style>\n</head>\n<body>\n<div id=\"chatBox\">\n")
	for _, m := range s.Messages() {
		b.WriteString(m)
		b.WriteString("\n")
	}
	b.WriteString("</div>\n")
	if notice := s.LastNotice(); notice != "" {
		fmt.Fprintf(&b, "<div class=\"notification\">%s</div>\n", html.EscapeString(notice))
	}
	b.WriteString("</body>\n</html>\n")
	return b.String()
}

func (s *HTMLSurface) add(fragment string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.blocks = append(s.blocks, htmlBlock{id: s.nextID, html: fragment})
	return s.nextID
}

const pageCSS = `body { font-family: sans-serif; background: #f5f7fa; margin: 0; }
#chatBox { max-width: 800px; margin: 0 auto; padding: 20px; }
.message { display: flex; margin: 12px 0; }
.user-msg { justify-content: flex-end; }
.text-bubble { padding: 10px 16px; border-radius: 16px; max-width: 75%; }
.user-msg .text-bubble { background: #00A3E0; color: #fff; }
.bot-msg .text-bubble { background: #fff; box-shadow: 0 1px 3px rgba(0,0,0,0.1); }
pre { overflow-x: auto; padding: 10px; border-radius: 8px; }
.notification { max-width: 800px; margin: 0 auto 20px; color: #666; font-size: 0.85em; text-align: center; }
`
