package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"laygrid/pkg/diagram"
	"laygrid/pkg/errors"
	"laygrid/pkg/layout"
	"laygrid/pkg/pipeline"
	"laygrid/pkg/route"
)

// operationResponse wraps the updated diagram with operation details.
type operationResponse struct {
	Diagram *diagram.Diagram `json:"diagram"`
	Stats   any              `json:"stats,omitempty"`
}

// withDiagram loads the named diagram, applies fn, and stores the result.
// fn returns the stats payload for the response.
func (s *Server) withDiagram(w http.ResponseWriter, r *http.Request, fn func(d *diagram.Diagram) (any, error)) {
	name := chi.URLParam(r, "name")
	d, err := s.store.Get(r.Context(), name)
	if err != nil {
		writeError(w, err)
		return
	}

	stats, err := fn(d)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := s.store.Put(r.Context(), d); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, operationResponse{Diagram: d, Stats: stats})
}

// handleLayout runs the full pipeline: layered layout, routing, optimization.
func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	if err := decodeBody(r, &opts); err != nil {
		writeError(w, err)
		return
	}

	s.withDiagram(w, r, func(d *diagram.Diagram) (any, error) {
		res, err := s.runner.Execute(r.Context(), d, opts)
		if err != nil {
			return nil, err
		}
		return res.Stats, nil
	})
}

// relayoutRequest carries the parameters for a plain relayout.
type relayoutRequest struct {
	Direction   string  `json:"direction,omitempty"`
	RankSpacing float64 `json:"rank_spacing,omitempty"`
	NodeSpacing float64 `json:"node_spacing,omitempty"`
}

// handleRelayout recomputes positions without routing or optimization.
func (s *Server) handleRelayout(w http.ResponseWriter, r *http.Request) {
	var req relayoutRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := errors.ValidateDirection(req.Direction); err != nil {
		writeError(w, err)
		return
	}

	s.withDiagram(w, r, func(d *diagram.Diagram) (any, error) {
		cfg := layout.DefaultConfig()
		if req.RankSpacing > 0 {
			cfg.RankSpacing = req.RankSpacing
		}
		if req.NodeSpacing > 0 {
			cfg.NodeSpacing = req.NodeSpacing
		}
		cfg.RouteEdges = false
		positions := layout.Relayout(d, errors.NormalizeDirection(req.Direction, "TB"), cfg)
		return map[string]int{"moved": len(positions)}, nil
	})
}

// routeRequest carries the parameters for edge routing.
type routeRequest struct {
	Margin float64 `json:"margin,omitempty"`
}

func (s *Server) handleRoute(w http.ResponseWriter, r *http.Request) {
	var req routeRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	margin := req.Margin
	if margin <= 0 {
		margin = layout.DefaultConfig().EdgeMargin
	}

	s.withDiagram(w, r, func(d *diagram.Diagram) (any, error) {
		routed := route.Edges(d, margin)
		return map[string]int{"routed": routed}, nil
	})
}

// optimizeRequest carries the parameters for path optimization.
type optimizeRequest struct {
	Margin       float64 `json:"margin,omitempty"`
	NudgeSpacing float64 `json:"nudge_spacing,omitempty"`
}

func (s *Server) handleOptimize(w http.ResponseWriter, r *http.Request) {
	var req optimizeRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	s.withDiagram(w, r, func(d *diagram.Diagram) (any, error) {
		modified := route.Optimize(d, route.OptimizeOptions{
			Margin:       req.Margin,
			NudgeSpacing: req.NudgeSpacing,
		})
		return map[string]int{"modified": modified}, nil
	})
}

func (s *Server) handleTidy(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.TidyOptions
	if err := decodeBody(r, &opts); err != nil {
		writeError(w, err)
		return
	}
	if err := errors.ValidateDirection(opts.Direction); err != nil {
		writeError(w, err)
		return
	}

	s.withDiagram(w, r, func(d *diagram.Diagram) (any, error) {
		return pipeline.Tidy(d, opts), nil
	})
}

func (s *Server) handleOverlaps(w http.ResponseWriter, r *http.Request) {
	d, err := s.store.Get(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, err)
		return
	}

	overlaps := layout.FindOverlaps(d, 0)
	if overlaps == nil {
		overlaps = [][2]string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"count":    len(overlaps),
		"overlaps": overlaps,
	})
}

// resolveOverlapsRequest carries the parameters for overlap resolution.
type resolveOverlapsRequest struct {
	Margin        float64 `json:"margin,omitempty"`
	MaxIterations int     `json:"max_iterations,omitempty"`
}

func (s *Server) handleResolveOverlaps(w http.ResponseWriter, r *http.Request) {
	var req resolveOverlapsRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.MaxIterations <= 0 {
		req.MaxIterations = layout.DefaultConfig().MaxOverlapIterations
	}

	s.withDiagram(w, r, func(d *diagram.Diagram) (any, error) {
		moved := layout.ResolveOverlaps(d, req.Margin, req.MaxIterations)
		return map[string]int{"moved": moved}, nil
	})
}

// arrangeRequest carries the parameters for the arrangement helpers.
type arrangeRequest struct {
	Mode      string              `json:"mode"`
	Labels    []string            `json:"labels,omitempty"`
	Columns   int                 `json:"columns,omitempty"`
	Adjacency map[string][]string `json:"adjacency,omitempty"`
	Root      string              `json:"root,omitempty"`
	Direction string              `json:"direction,omitempty"`
	Style     string              `json:"style,omitempty"`
	EdgeStyle string              `json:"edge_style,omitempty"`
}

func (s *Server) handleArrange(w http.ResponseWriter, r *http.Request) {
	var req arrangeRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := errors.ValidateDirection(req.Direction); err != nil {
		writeError(w, err)
		return
	}

	s.withDiagram(w, r, func(d *diagram.Diagram) (any, error) {
		switch req.Mode {
		case "row":
			ids := layout.Row(d, req.Labels, req.Style, nil)
			return map[string]any{"ids": ids}, nil
		case "column":
			ids := layout.Column(d, req.Labels, req.Style, nil)
			return map[string]any{"ids": ids}, nil
		case "grid":
			if err := errors.ValidateColumns(req.Columns); err != nil {
				return nil, err
			}
			ids := layout.Grid(d, req.Labels, req.Columns, req.Style, nil)
			return map[string]any{"ids": ids}, nil
		case "chain":
			ids := layout.Row(d, req.Labels, req.Style, nil)
			edges := layout.ConnectChain(d, ids, req.EdgeStyle, nil)
			return map[string]any{"ids": ids, "connectors": edges}, nil
		case "tree":
			if req.Root == "" {
				return nil, errors.New(errors.ErrCodeInvalidInput, "tree arrangement requires a root")
			}
			direction := errors.NormalizeDirection(req.Direction, "TB")
			ids := layout.Tree(d, req.Adjacency, req.Root, req.Style, req.EdgeStyle, nil, direction)
			return map[string]any{"ids": ids}, nil
		default:
			return nil, errors.New(errors.ErrCodeInvalidInput, "unknown arrange mode %q", req.Mode)
		}
	})
}
