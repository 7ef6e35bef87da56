package app

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"mime"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/go-sprout/sprout"
	"github.com/go-sprout/sprout/registry/std"
	sproutstrings "github.com/go-sprout/sprout/registry/strings"
	"github.com/pkg/errors"
	flag "github.com/spf13/pflag"

	"github.com/jmoiron/rjview/rjson"
)

// maxDocumentSize bounds the playground form body.
const maxDocumentSize = 4 << 20

// Config configures the inspector.
type Config struct {
	Addr    string
	Verbose int
	Decoder rjson.Config
}

// RegisterFlags adds the inspector flags to the given FlagSet.
func (cfg *Config) RegisterFlags(f *flag.FlagSet) {
	f.StringVar(&cfg.Addr, "addr", "0.0.0.0:8333", "listen address for the web UI (host:port)")
	f.CountVarP(&cfg.Verbose, "verbose", "v", "increase verbosity; repeat for more detail")
	cfg.Decoder.RegisterFlags(f)
}

type App struct {
	Root string
	Config

	logger log.Logger
	tpl    *template.Template

	mu  sync.RWMutex
	lib *Library
}

//go:embed templates/*.gohtml static/*
var templatesFS embed.FS

// New loads the library under root and prepares the templates.
func New(root string, cfg Config, logger log.Logger) (*App, error) {
	a := &App{Root: root, Config: cfg, logger: logger}
	if err := a.reload(); err != nil {
		return nil, err
	}

	sub, _ := fs.Sub(templatesFS, "templates")
	sh := sprout.New()
	if err := sh.AddRegistries(std.NewRegistry(), sproutstrings.NewRegistry()); err != nil {
		return nil, errors.Wrap(err, "template functions")
	}
	funcs := sh.Build()
	funcs["eq"] = func(a, b any) bool { return fmt.Sprint(a) == fmt.Sprint(b) }
	funcs["add"] = func(a, b int) int { return a + b }
	tpl, err := template.New("base").Funcs(funcs).ParseFS(sub, "*.gohtml")
	if err != nil {
		return nil, errors.Wrap(err, "parse templates")
	}
	a.tpl = tpl
	return a, nil
}

// Library returns the currently loaded library.
func (a *App) Library() *Library {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.lib
}

// reload rescans the library from disk and swaps it in.
func (a *App) reload() error {
	lib, err := NewLibrary(a.Root, a.Decoder, a.logger)
	if err != nil {
		return err
	}
	a.mu.Lock()
	a.lib = lib
	a.mu.Unlock()
	level.Info(a.logger).Log("msg", "library loaded", "root", a.Root, "parsed", len(lib.Docs), "failed", len(lib.Failures))
	return nil
}

func (a *App) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	if a.Verbose > 0 {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)

	mime.AddExtensionType(".css", "text/css")
	staticFS, _ := fs.Sub(templatesFS, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	r.Get("/", a.index)
	r.Post("/decode", a.decode)
	r.Get("/doc/*", a.document)
	r.Get("/raw/*", a.raw)
	r.Get("/search", a.search)
	r.Get("/errors", a.errors)
	r.Post("/reload", a.reloadHandler)

	return r
}

// render executes the named template into a buffer so a template error can
// still produce a clean 500.
func (a *App) render(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := a.tpl.ExecuteTemplate(&buf, name, data); err != nil {
		level.Error(a.logger).Log("msg", "template failed", "template", name, "err", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// baseData returns common template data to keep the sidebar consistent.
func (a *App) baseData(r *http.Request, title string) map[string]any {
	// ?dark=... wins over the theme cookie set by the client toggle
	themeDark := false
	if v := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("dark"))); v != "" {
		themeDark = v == "1" || v == "true" || v == "t" || v == "yes" || v == "on"
	} else if c, err := r.Cookie("theme"); err == nil && c.Value == "dark" {
		themeDark = true
	}
	lib := a.Library()
	return map[string]any{
		"Title":       title,
		"Root":        a.Root,
		"Docs":        lib.Docs,
		"Failures":    lib.Failures,
		"Parsed":      len(lib.Docs),
		"Failed":      len(lib.Failures),
		"HasFailures": len(lib.Failures) > 0,
		"MaxDepth":    a.Decoder.MaxDepth,
		"ThemeDark":   themeDark,
	}
}

// index handles GET "/".
func (a *App) index(w http.ResponseWriter, r *http.Request) {
	a.render(w, http.StatusOK, "index.gohtml", a.baseData(r, "rjview"))
}

// decode handles POST "/decode" from the playground form.
func (a *App) decode(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxDocumentSize)
	if err := r.ParseForm(); err != nil {
		level.Warn(a.logger).Log("msg", "error parsing decode form", "err", err)
		http.Error(w, "bad form: "+err.Error(), http.StatusBadRequest)
		return
	}
	in := Inspect(r.PostFormValue("doc"), a.Decoder)
	status := http.StatusOK
	if in.Err != nil {
		level.Debug(a.logger).Log("msg", "playground document rejected", "err", in.Err)
		status = http.StatusUnprocessableEntity
	}
	data := a.baseData(r, "Playground")
	data["Inspection"] = in
	a.render(w, status, "inspect.gohtml", data)
}

// document handles GET "/doc/*".
func (a *App) document(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "*")
	src, ok := a.source(name)
	if !ok {
		http.NotFound(w, r)
		return
	}
	data := a.baseData(r, name)
	data["Name"] = name
	data["Inspection"] = Inspect(src, a.Decoder)
	a.render(w, http.StatusOK, "inspect.gohtml", data)
}

// raw handles GET "/raw/*" and shows the highlighted source alone.
func (a *App) raw(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "*")
	src, ok := a.source(name)
	if !ok {
		http.NotFound(w, r)
		return
	}
	data := a.baseData(r, "Raw: "+name)
	data["Name"] = name
	data["Inspection"] = Inspect(src, a.Decoder)
	a.render(w, http.StatusOK, "raw.gohtml", data)
}

func (a *App) source(name string) (string, bool) {
	doc, fail := a.Library().Lookup(name)
	switch {
	case doc != nil:
		return doc.Source, true
	case fail != nil:
		return fail.Source, true
	}
	return "", false
}

// search handles GET "/search".
func (a *App) search(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	caseSensitive := r.URL.Query().Has("case")
	terms := splitTerms(q, caseSensitive)

	var results []*Document
	if len(terms) > 0 {
		for _, d := range a.Library().Docs {
			if matchDocument(d, terms, caseSensitive) {
				results = append(results, d)
			}
		}
	}

	data := a.baseData(r, "Search")
	data["Query"] = q
	data["Case"] = caseSensitive
	data["Results"] = results
	a.render(w, http.StatusOK, "search.gohtml", data)
}

// errors handles GET "/errors".
func (a *App) errors(w http.ResponseWriter, r *http.Request) {
	a.render(w, http.StatusOK, "errors.gohtml", a.baseData(r, "Errors"))
}

// reloadHandler handles POST "/reload".
func (a *App) reloadHandler(w http.ResponseWriter, r *http.Request) {
	if err := a.reload(); err != nil {
		level.Error(a.logger).Log("msg", "reload failed", "err", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
