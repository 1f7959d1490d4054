package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"

	"github.com/govern-lab/aegis/pkg/domain/interfaces"
	"github.com/govern-lab/aegis/pkg/domain/model"
	"github.com/govern-lab/aegis/pkg/domain/model/auth"
	"github.com/govern-lab/aegis/pkg/domain/types"
	"github.com/govern-lab/aegis/pkg/usecase"
	"github.com/govern-lab/aegis/pkg/utils/errutil"
)

// productAuditHandler serves one newest-first page of a product's audit
// trail. The cursor in the response is resubmitted verbatim to fetch the
// next page; an absent cursor means the trail is exhausted.
func productAuditHandler(uc *usecase.AuditUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := auth.UserIDFromContext(r.Context())
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err)
			return
		}

		opts, err := auditOptionsFromQuery(r)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err)
			return
		}

		orgID := types.OrgAssessmentID(chi.URLParam(r, "orgID"))
		productID := types.ProductAssessmentID(chi.URLParam(r, "productID"))
		entries, nextCursor, err := uc.ListProductAudit(r.Context(), userID, orgID, productID, opts...)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err)
			return
		}
		respondAuditPage(r.Context(), w, entries, nextCursor)
	}
}

// orgAuditHandler serves one newest-first page of an org's audit trail
func orgAuditHandler(uc *usecase.AuditUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := auth.UserIDFromContext(r.Context())
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err)
			return
		}

		opts, err := auditOptionsFromQuery(r)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err)
			return
		}

		orgID := types.OrgAssessmentID(chi.URLParam(r, "orgID"))
		entries, nextCursor, err := uc.ListOrgAudit(r.Context(), userID, orgID, opts...)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err)
			return
		}
		respondAuditPage(r.Context(), w, entries, nextCursor)
	}
}

func respondAuditPage(ctx context.Context, w http.ResponseWriter, entries []*model.AuditEntry, nextCursor types.AuditEntryID) {
	resp := struct {
		Entries    []auditEntryDTO `json:"entries"`
		NextCursor string          `json:"nextCursor,omitempty"`
	}{
		Entries:    make([]auditEntryDTO, 0, len(entries)),
		NextCursor: nextCursor.String(),
	}
	for _, entry := range entries {
		resp.Entries = append(resp.Entries, auditEntryToDTO(entry))
	}
	respondJSON(ctx, w, http.StatusOK, resp)
}

func auditOptionsFromQuery(r *http.Request) ([]interfaces.ListAuditOption, error) {
	var opts []interfaces.ListAuditOption
	q := r.URL.Query()

	if action := q.Get("action"); action != "" {
		a := types.AuditAction(action)
		if err := a.Validate(); err != nil {
			return nil, goerr.Wrap(types.ErrInvalidInput, "invalid action filter", goerr.V("action", action))
		}
		opts = append(opts, interfaces.WithAuditAction(a))
	}
	if cursor := q.Get("cursor"); cursor != "" {
		c := types.AuditEntryID(cursor)
		if err := c.Validate(); err != nil {
			return nil, goerr.Wrap(types.ErrInvalidInput, "invalid cursor", goerr.V("cursor", cursor))
		}
		opts = append(opts, interfaces.WithAuditCursor(c))
	}
	if limit := q.Get("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n <= 0 {
			return nil, goerr.Wrap(types.ErrInvalidInput, "limit must be a positive integer", goerr.V("limit", limit))
		}
		opts = append(opts, interfaces.WithAuditLimit(n))
	}

	return opts, nil
}
