package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/katalvlaran/spacegrid/escape"
	"github.com/katalvlaran/spacegrid/grid"
)

var (
	errBadRequest = errors.New("bad request")
	errNotFound   = errors.New("no result stored under this key")
	errTooLarge   = errors.New("request too large")
)

type solveRequest struct {
	Grid [][]int `json:"grid"`
}

type routesRequest struct {
	Starts [][]int `json:"starts"`
}

// escapeDoc is the JSON form of a stored result. SafeFactor is null for
// an empty grid.
type escapeDoc struct {
	Key        string    `json:"key"`
	Rows       int       `json:"rows"`
	Cols       int       `json:"cols"`
	Width      int       `json:"width"`
	Distances  [][]int64 `json:"distances"`
	Directions []string  `json:"directions"`
	SafeFactor *float64  `json:"safe_factor"`
	Cached     bool      `json:"cached"`
}

type routeDoc struct {
	Start     [2]int   `json:"start"`
	Distance  int64    `json:"distance"`
	Waypoints [][2]int `json:"waypoints"`
}

type routesDoc struct {
	Routes [][][2]int `json:"routes"`
}

type errorDoc struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) solve(w http.ResponseWriter, r *http.Request) {
	var req solveRequest
	if err := decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if req.Grid == nil {
		s.fail(w, r, fmt.Errorf("%w: missing grid", errBadRequest))
		return
	}
	g, err := grid.From2D(req.Grid)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	entry, err := s.results.Solve(r.Context(), g)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if entry.CacheErr != nil {
		s.logger.Warn("result cache", "err", entry.CacheErr, "request_id", requestIDFrom(r.Context()))
	}
	writeJSON(w, http.StatusOK, newEscapeDoc(entry.Key, entry.Result, entry.Cached))
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	res, err := s.load(r.Context(), key)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newEscapeDoc(key, res, true))
}

func (s *Server) route(w http.ResponseWriter, r *http.Request) {
	row, rowErr := strconv.Atoi(r.URL.Query().Get("row"))
	col, colErr := strconv.Atoi(r.URL.Query().Get("col"))
	if rowErr != nil || colErr != nil {
		s.fail(w, r, fmt.Errorf("%w: row and col must be integers", errBadRequest))
		return
	}
	res, err := s.load(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	start := grid.Coord{Row: row, Col: col}
	waypoints, err := res.RouteSlice(start)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, routeDoc{
		Start:     pair(start),
		Distance:  res.Distances().At(start),
		Waypoints: pairs(waypoints),
	})
}

func (s *Server) routes(w http.ResponseWriter, r *http.Request) {
	var req routesRequest
	if err := decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	starts := make([]grid.Coord, len(req.Starts))
	for i, p := range req.Starts {
		if len(p) != 2 {
			s.fail(w, r, fmt.Errorf("%w: start %d must be [row, col]", errBadRequest, i))
			return
		}
		starts[i] = grid.Coord{Row: p[0], Col: p[1]}
	}
	res, err := s.load(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	routes, err := res.Routes(r.Context(), starts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	doc := routesDoc{Routes: make([][][2]int, len(routes))}
	for i, route := range routes {
		doc.Routes[i] = pairs(route)
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) load(ctx context.Context, key string) (*escape.Result, error) {
	res, hit, err := s.results.Load(ctx, key)
	if err != nil {
		return nil, err
	}
	if !hit {
		return nil, fmt.Errorf("%w: %s", errNotFound, key)
	}
	return res, nil
}

func newEscapeDoc(key string, res *escape.Result, cached bool) escapeDoc {
	doc := escapeDoc{
		Key:        key,
		Rows:       res.Grid().Rows(),
		Cols:       res.Grid().Cols(),
		Width:      int(res.Distances().Width()),
		Distances:  res.Distances().Values(),
		Directions: res.Directions().Lines(),
		Cached:     cached,
	}
	if sf := res.SafeFactor(); !math.IsNaN(sf) {
		doc.SafeFactor = &sf
	}
	return doc
}

func pair(c grid.Coord) [2]int { return [2]int{c.Row, c.Col} }

func pairs(cs []grid.Coord) [][2]int {
	out := make([][2]int, len(cs))
	for i, c := range cs {
		out[i] = pair(c)
	}
	return out
}

// decode reads a size-capped JSON body into v.
func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return fmt.Errorf("%w: body exceeds %d bytes", errTooLarge, tooLarge.Limit)
		}
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}

// statusFor maps an error to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, grid.ErrNonRectangular),
		errors.Is(err, grid.ErrUnknownKind),
		errors.Is(err, grid.ErrTypeMismatch),
		errors.Is(err, grid.ErrSyntax),
		errors.Is(err, escape.ErrOutOfBounds):
		return http.StatusBadRequest
	case errors.Is(err, errNotFound):
		return http.StatusNotFound
	case errors.Is(err, errTooLarge), errors.Is(err, escape.ErrCapacityOverflow):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, escape.ErrUnreachable):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	id := requestIDFrom(r.Context())
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err, "request_id", id)
	} else {
		s.logger.Debug("request rejected", "err", err, "status", status, "request_id", id)
	}
	writeJSON(w, status, errorDoc{Error: err.Error(), RequestID: id})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
