package server

import (
	"mime"
	"net/http"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/connline/pkg/buildinfo"
	"github.com/matzehuels/connline/pkg/cache"
	"github.com/matzehuels/connline/pkg/connector"
	"github.com/matzehuels/connline/pkg/errors"
	"github.com/matzehuels/connline/pkg/geom"
	"github.com/matzehuels/connline/pkg/httputil"
	"github.com/matzehuels/connline/pkg/pipeline"
	"github.com/matzehuels/connline/pkg/scene"
	"github.com/matzehuels/connline/pkg/target"
)

// Headers understood or set by the API.
const (
	HeaderNamespace = "X-Connline-Namespace"
	HeaderCache     = "X-Connline-Cache"
)

var namespaceRe = requestIDRe

// layoutRequest is the body of POST /v1/layout. Region rectangles and
// origin are absolute; from and to accept every target form.
type layoutRequest struct {
	Origin  geom.Point           `json:"origin"`
	Regions map[string]geom.Rect `json:"regions,omitempty"`
	From    target.Spec          `json:"from"`
	To      target.Spec          `json:"to"`
	Options map[string]any       `json:"options,omitempty"`
	Markers markerSizes          `json:"markers"`
}

// markerSizes are the footprints used to place the three markers.
type markerSizes struct {
	Start geom.Size `json:"start"`
	End   geom.Size `json:"end"`
	Mid   geom.Size `json:"mid"`
}

type layoutResponse struct {
	Layout  connector.Result  `json:"layout"`
	Markers connector.Markers `json:"markers"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	httputil.WriteError(w, errors.New(errors.ErrCodeNotFound, "no route for %s %s", r.Method, r.URL.Path))
}

func (s *Server) handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusMethodNotAllowed)
	_, _ = w.Write([]byte(`{"code":"INVALID_INPUT","message":"method not allowed"}` + "\n"))
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var req layoutRequest
	if err := httputil.DecodeJSON(r, &req, s.maxBody); err != nil {
		httputil.WriteError(w, err)
		return
	}
	runner, err := s.runnerFor(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	c := scene.NewConnector("request")
	c.From, c.To = req.From, req.To
	c.Options = connector.OptionsFromMap(req.Options)
	sc := &scene.Scene{Origin: req.Origin, Regions: sortedRegions(req.Regions), Connectors: []scene.Connector{c}}
	if err := sc.Validate(); err != nil {
		httputil.WriteError(w, err)
		return
	}

	remote, err := runner.FetchRegions(r.Context(), sc, pipeline.Options{Logger: s.logger})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	res, err := sc.Engine(remote).Layout(c.From, c.To, c.Options)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, layoutResponse{
		Layout:  res,
		Markers: connector.PlaceMarkers(res, req.Markers.Start, req.Markers.End, req.Markers.Mid),
	})
}

func (s *Server) handleScene(w http.ResponseWriter, r *http.Request) {
	body, err := httputil.ReadBody(r, s.maxBody)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	sc, err := scene.Decode(body, sceneFormat(r), "request")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	s.renderScene(w, r, sc)
}

// handleSceneFile renders a scene file below the configured scene directory.
func (s *Server) handleSceneFile(w http.ResponseWriter, r *http.Request) {
	rel := chi.URLParam(r, "*")
	if err := errors.ValidatePath(rel); err != nil {
		httputil.WriteError(w, err)
		return
	}
	sc, err := scene.Load(filepath.Join(s.sceneDir, filepath.FromSlash(rel)))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	s.renderScene(w, r, sc)
}

// renderScene runs the pipeline with the query options and writes the
// single requested artifact.
func (s *Server) renderScene(w http.ResponseWriter, r *http.Request, sc *scene.Scene) {
	opts, err := optionsFromQuery(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	opts.Logger = s.logger
	if err := opts.ValidateAndSetDefaults(); err != nil {
		httputil.WriteError(w, err)
		return
	}
	runner, err := s.runnerFor(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	res, err := runner.Execute(r.Context(), sc, opts)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	format := opts.Formats[0]
	w.Header().Set("Content-Type", pipeline.ContentType(format))
	w.Header().Set(HeaderCache, cacheState(res.CacheInfo))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

// runnerFor scopes the runner's cache keys to the request's namespace.
func (s *Server) runnerFor(r *http.Request) (*pipeline.Runner, error) {
	ns := r.Header.Get(HeaderNamespace)
	if ns == "" {
		return s.runner, nil
	}
	if !namespaceRe.MatchString(ns) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "invalid %s header", HeaderNamespace)
	}
	return s.runner.WithKeyer(cache.NewScopedKeyer(s.runner.Keyer, "ns:"+ns+":")), nil
}

// optionsFromQuery reads render options from the query string. Only one
// format is rendered per request.
func optionsFromQuery(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := pipeline.Options{Style: q.Get("style")}
	if f := q.Get("format"); f != "" {
		opts.Formats = []string{f}
	}

	var err error
	for _, p := range []struct {
		name string
		dst  *bool
	}{
		{"straight", &opts.Straight},
		{"regions", &opts.ShowRegions},
		{"detailed", &opts.Detailed},
		{"refresh", &opts.Refresh},
	} {
		if *p.dst, err = queryBool(q.Get(p.name), p.name); err != nil {
			return opts, err
		}
	}
	if v := q.Get("scale"); v != "" {
		if opts.Scale, err = queryFloat(v, "scale"); err != nil {
			return opts, err
		}
	}
	if v := q.Get("margin"); v != "" {
		m, err := queryFloat(v, "margin")
		if err != nil {
			return opts, err
		}
		opts.Margin = &m
	}
	return opts, nil
}

func queryBool(v, name string) (bool, error) {
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, errors.New(errors.ErrCodeInvalidInput, "query parameter %s: %q is not a boolean", name, v)
	}
	return b, nil
}

func queryFloat(v, name string) (float64, error) {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "query parameter %s: %q is not a number", name, v)
	}
	return f, nil
}

// sceneFormat picks the scene syntax from the Content-Type header.
func sceneFormat(r *http.Request) scene.Format {
	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch {
	case strings.HasSuffix(mt, "toml"):
		return scene.FormatTOML
	case strings.HasSuffix(mt, "hcl"):
		return scene.FormatHCL
	}
	return scene.FormatJSON
}

func sortedRegions(m map[string]geom.Rect) []scene.Region {
	out := make([]scene.Region, 0, len(m))
	for name, rect := range m {
		out = append(out, scene.Region{Name: name, Rect: rect})
	}
	slices.SortFunc(out, func(a, b scene.Region) int { return strings.Compare(a.Name, b.Name) })
	return out
}

func cacheState(ci pipeline.CacheInfo) string {
	switch {
	case ci.RenderHit:
		return "hit"
	case ci.LayoutHit:
		return "layout"
	}
	return "miss"
}
