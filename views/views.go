package views

import (
	"embed"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/anjiri1684/review_board/locales"
	"github.com/anjiri1684/review_board/reviewboard"
)

//go:embed templates/*.html
var templateFS embed.FS

const maxStars = 5

type Toast struct {
	Level   reviewboard.Level
	Message string
}

type Page struct {
	Lang   string
	Toasts []Toast

	catalog *locales.Catalog
}

func (p Page) T(key string, args ...string) string {
	return p.catalog.Translate(p.Lang, key, args...)
}

type BoardPage struct {
	Page
	View *reviewboard.View
}

type AuthPage struct {
	Page
	Email    string
	FullName string
}

type Renderer struct {
	board   *template.Template
	auth    *template.Template
	catalog *locales.Catalog
}

func New(catalog *locales.Catalog) (*Renderer, error) {
	funcs := template.FuncMap{
		"stars": Stars,
		"date":  func(t time.Time) string { return t.Format("2006-01-02") },
	}

	board, err := template.New("board.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/board.html")
	if err != nil {
		return nil, err
	}
	auth, err := template.New("auth.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/auth.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{board: board, auth: auth, catalog: catalog}, nil
}

func (r *Renderer) page(lang string, notices []reviewboard.Notice) Page {
	p := Page{Lang: lang, catalog: r.catalog}
	for _, n := range notices {
		p.Toasts = append(p.Toasts, Toast{Level: n.Level, Message: r.catalog.Translate(lang, n.Key)})
	}
	return p
}

func (r *Renderer) Board(w io.Writer, lang string, v *reviewboard.View) error {
	return r.board.Execute(w, BoardPage{Page: r.page(lang, v.Notices), View: v})
}

func (r *Renderer) Auth(w io.Writer, lang string, notices []reviewboard.Notice, email, fullName string) error {
	return r.auth.Execute(w, AuthPage{Page: r.page(lang, notices), Email: email, FullName: fullName})
}

// Stars draws a rating out of five. Ratings outside 1-5 are stored as given,
// so the drawing is clamped rather than the value.
func Stars(rating int) string {
	filled := rating
	if filled < 0 {
		filled = 0
	}
	if filled > maxStars {
		filled = maxStars
	}
	return strings.Repeat("★", filled) + strings.Repeat("☆", maxStars-filled)
}
