package preview

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/net/html"

	"github.com/alnah/go-textdown"
	"github.com/alnah/go-textdown/internal/fileutil"
)

// MaxBodySize caps the markup accepted by POST /render.
const MaxBodySize = 1 << 20

const contentTypeHTML = "text/html; charset=utf-8"

// Converter is the conversion service used by the server.
type Converter interface {
	Convert(ctx context.Context, input textdown.Input) (*textdown.ConvertResult, error)
}

// Compile-time interface implementation check.
var _ Converter = (*textdown.Converter)(nil)

// Server is the HTTP preview server. It is an http.Handler.
type Server struct {
	router chi.Router
	conv   Converter
	root   string
	css    string
	log    *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithExtraCSS appends css to the style of every standalone page.
func WithExtraCSS(css string) Option {
	return func(s *Server) {
		s.css = css
	}
}

// NewServer creates a server rendering sources below root with conv.
func NewServer(conv Converter, root string, log *slog.Logger, opts ...Option) *Server {
	s := &Server{
		conv: conv,
		root: root,
		log:  log,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)
	r.Post("/render", s.handleRender)
	r.Get("/", s.handleIndex)
	r.Get("/*", s.handlePage)

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// handleRender converts the request body. ?standalone=true wraps the
// result in a document, ?title= sets its title.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodySize))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "reading request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	standalone, _ := strconv.ParseBool(r.URL.Query().Get("standalone"))
	s.writeConverted(w, r, textdown.Input{
		Textile:    string(body),
		Title:      r.URL.Query().Get("title"),
		CSS:        s.css,
		Standalone: standalone,
	})
}

// handlePage renders one source file below the root as a standalone page.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	rel := path.Clean("/" + chi.URLParam(r, "*"))
	if !fileutil.IsSourceFile(rel) || strings.Contains(rel, "/.") {
		http.NotFound(w, r)
		return
	}

	content, err := os.ReadFile(filepath.Join(s.root, filepath.FromSlash(rel))) // #nosec G304 -- cleaned path below root
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			http.NotFound(w, r)
			return
		}
		s.log.Warn("reading source", "path", rel, "error", err)
		http.Error(w, "reading source failed", http.StatusInternalServerError)
		return
	}

	s.writeConverted(w, r, textdown.Input{Textile: string(content), CSS: s.css, Standalone: true})
}

func (s *Server) writeConverted(w http.ResponseWriter, r *http.Request, input textdown.Input) {
	result, err := s.conv.Convert(r.Context(), input)
	if err != nil {
		s.log.Warn("conversion failed", "path", r.URL.Path, "error", err)
		http.Error(w, "conversion failed", http.StatusInternalServerError)
		return
	}
	etag := etagFor(result.HTML)
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "no-cache")
	if r.Method == http.MethodGet && notModified(r, etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", contentTypeHTML)
	w.Write(result.HTML)
}

// handleIndex lists the source files below the root.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	sources, err := ListSources(s.root)
	if err != nil {
		s.log.Warn("listing sources", "root", s.root, "error", err)
		http.Error(w, "listing sources failed", http.StatusInternalServerError)
		return
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>Index</title>\n</head>\n<body>\n<ul>")
	for _, src := range sources {
		href := (&url.URL{Path: "/" + src}).EscapedPath()
		fmt.Fprintf(&b, `<li><a href="%s">%s</a></li>`, html.EscapeString(href), html.EscapeString(src))
	}
	b.WriteString("</ul>\n</body>\n</html>")

	w.Header().Set("Content-Type", contentTypeHTML)
	w.Write([]byte(b.String()))
}

// ListSources returns the slash-separated paths of source files below
// root, sorted, skipping hidden directories.
func ListSources(root string) ([]string, error) {
	var sources []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !fileutil.IsSourceFile(p) {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		sources = append(sources, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(sources)
	return sources, nil
}
