package http

import (
	"net/http"
	"strconv"

	"github.com/m-mizutani/goerr/v2"

	"github.com/govern-lab/aegis/pkg/catalog"
	"github.com/govern-lab/aegis/pkg/domain/types"
	"github.com/govern-lab/aegis/pkg/utils/errutil"
)

// listControlsHandler serves the filtered control catalog. All filters are
// optional query parameters and conjunctive when present.
func listControlsHandler(cat *catalog.Catalog) http.HandlerFunc {
	type response struct {
		Controls []controlDTO `json:"controls"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := controlFilterFromQuery(r)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err)
			return
		}

		controls := cat.Controls(filter)
		resp := response{Controls: make([]controlDTO, 0, len(controls))}
		for _, ctrl := range controls {
			resp.Controls = append(resp.Controls, controlToDTO(ctrl))
		}
		respondJSON(r.Context(), w, http.StatusOK, resp)
	}
}

func controlFilterFromQuery(r *http.Request) (catalog.ControlFilter, error) {
	var filter catalog.ControlFilter
	q := r.URL.Query()

	if scope := q.Get("scope"); scope != "" {
		s := types.ControlScope(scope)
		if err := s.Validate(); err != nil {
			return filter, goerr.Wrap(types.ErrInvalidInput, "invalid scope filter", goerr.V("scope", scope))
		}
		filter.Scope = s
	}
	if ctype := q.Get("type"); ctype != "" {
		t := types.ControlType(ctype)
		if err := t.Validate(); err != nil {
			return filter, goerr.Wrap(types.ErrInvalidInput, "invalid type filter", goerr.V("type", ctype))
		}
		filter.Type = t
	}
	if level := q.Get("level"); level != "" {
		n, err := strconv.Atoi(level)
		if err != nil {
			return filter, goerr.Wrap(types.ErrInvalidInput, "level filter must be an integer", goerr.V("level", level))
		}
		l := types.ControlLevel(n)
		if err := l.Validate(); err != nil {
			return filter, goerr.Wrap(types.ErrInvalidInput, "invalid level filter", goerr.V("level", n))
		}
		filter.MaxLevel = l
	}
	if tags, ok := q["riskTag"]; ok {
		filter.RiskTags = tags
	}

	return filter, nil
}

// taxonomyHandler serves the full governance taxonomy
func taxonomyHandler(cat *catalog.Catalog) http.HandlerFunc {
	type response struct {
		Functions []taxonomyFunctionDTO `json:"functions"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(r.Context(), w, http.StatusOK, response{
			Functions: taxonomyToDTO(cat.Functions()),
		})
	}
}
