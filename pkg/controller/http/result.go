package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/govern-lab/aegis/pkg/domain/model/auth"
	"github.com/govern-lab/aegis/pkg/domain/types"
	"github.com/govern-lab/aegis/pkg/usecase"
	"github.com/govern-lab/aegis/pkg/utils/errutil"
)

func productResultHandler(uc *usecase.ResultUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := auth.UserIDFromContext(r.Context())
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err)
			return
		}

		orgID := types.OrgAssessmentID(chi.URLParam(r, "orgID"))
		productID := types.ProductAssessmentID(chi.URLParam(r, "productID"))
		result, err := uc.GetProductResult(r.Context(), userID, orgID, productID)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err)
			return
		}

		respondJSON(r.Context(), w, http.StatusOK, resultToDTO(result))
	}
}

func orgPoliciesHandler(uc *usecase.ResultUseCase) http.HandlerFunc {
	type response struct {
		Policies []policyDraftDTO `json:"policies"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := auth.UserIDFromContext(r.Context())
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err)
			return
		}

		orgID := types.OrgAssessmentID(chi.URLParam(r, "orgID"))
		drafts, err := uc.GetOrgPolicyDrafts(r.Context(), userID, orgID)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err)
			return
		}

		resp := response{Policies: make([]policyDraftDTO, 0, len(drafts))}
		for _, draft := range drafts {
			resp.Policies = append(resp.Policies, policyDraftDTO{
				Key:   draft.Key,
				Title: draft.Title,
				Body:  draft.Body,
			})
		}
		respondJSON(r.Context(), w, http.StatusOK, resp)
	}
}

func recomputeOrgHandler(uc *usecase.ResultUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := auth.UserIDFromContext(r.Context())
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err)
			return
		}

		orgID := types.OrgAssessmentID(chi.URLParam(r, "orgID"))
		result, err := uc.RecomputeOrg(r.Context(), userID, orgID)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err)
			return
		}

		respondJSON(r.Context(), w, http.StatusOK, resultToDTO(result))
	}
}

func recomputeProductHandler(uc *usecase.ResultUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := auth.UserIDFromContext(r.Context())
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err)
			return
		}

		orgID := types.OrgAssessmentID(chi.URLParam(r, "orgID"))
		productID := types.ProductAssessmentID(chi.URLParam(r, "productID"))
		result, err := uc.RecomputeProduct(r.Context(), userID, orgID, productID)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err)
			return
		}

		respondJSON(r.Context(), w, http.StatusOK, resultToDTO(result))
	}
}

func patchChecklistHandler(uc *usecase.ResultUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := auth.UserIDFromContext(r.Context())
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err)
			return
		}

		var req checklistDTO
		if err := decodeJSON(r, &req); err != nil {
			errutil.HandleHTTP(r.Context(), w, err)
			return
		}

		orgID := types.OrgAssessmentID(chi.URLParam(r, "orgID"))
		productID := types.ProductAssessmentID(chi.URLParam(r, "productID"))
		if err := uc.PatchProductChecklist(r.Context(), userID, orgID, productID, req.toModel()); err != nil {
			errutil.HandleHTTP(r.Context(), w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
