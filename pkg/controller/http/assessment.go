package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/govern-lab/aegis/pkg/domain/model/auth"
	"github.com/govern-lab/aegis/pkg/domain/types"
	"github.com/govern-lab/aegis/pkg/usecase"
	"github.com/govern-lab/aegis/pkg/utils/errutil"
)

func createOrgHandler(uc *usecase.AssessmentUseCase) http.HandlerFunc {
	type request struct {
		Name string `json:"name"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := auth.UserIDFromContext(r.Context())
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err)
			return
		}

		var req request
		if err := decodeJSON(r, &req); err != nil {
			errutil.HandleHTTP(r.Context(), w, err)
			return
		}

		org, err := uc.CreateOrg(r.Context(), userID, req.Name)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err)
			return
		}

		respondJSON(r.Context(), w, http.StatusCreated, orgToDTO(org))
	}
}

func listOrgsHandler(uc *usecase.AssessmentUseCase) http.HandlerFunc {
	type response struct {
		Orgs []orgOverviewDTO `json:"orgs"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := auth.UserIDFromContext(r.Context())
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err)
			return
		}

		overviews, err := uc.ListOrgs(r.Context(), userID)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err)
			return
		}

		resp := response{Orgs: make([]orgOverviewDTO, 0, len(overviews))}
		for _, ov := range overviews {
			resp.Orgs = append(resp.Orgs, orgOverviewToDTO(ov))
		}
		respondJSON(r.Context(), w, http.StatusOK, resp)
	}
}

func updateOrgAnswersHandler(uc *usecase.AssessmentUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := auth.UserIDFromContext(r.Context())
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err)
			return
		}

		var req orgAnswersDTO
		if err := decodeJSON(r, &req); err != nil {
			errutil.HandleHTTP(r.Context(), w, err)
			return
		}

		orgID := types.OrgAssessmentID(chi.URLParam(r, "orgID"))
		updated, err := uc.UpdateOrgAnswers(r.Context(), userID, orgID, req.toModel())
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err)
			return
		}

		respondJSON(r.Context(), w, http.StatusOK, orgToDTO(updated))
	}
}

func deleteOrgHandler(uc *usecase.AssessmentUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := auth.UserIDFromContext(r.Context())
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err)
			return
		}

		orgID := types.OrgAssessmentID(chi.URLParam(r, "orgID"))
		if err := uc.DeleteOrg(r.Context(), userID, orgID); err != nil {
			errutil.HandleHTTP(r.Context(), w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func createProductHandler(uc *usecase.AssessmentUseCase) http.HandlerFunc {
	type request struct {
		Name string `json:"name"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := auth.UserIDFromContext(r.Context())
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err)
			return
		}

		var req request
		if err := decodeJSON(r, &req); err != nil {
			errutil.HandleHTTP(r.Context(), w, err)
			return
		}

		orgID := types.OrgAssessmentID(chi.URLParam(r, "orgID"))
		product, err := uc.CreateProduct(r.Context(), userID, orgID, req.Name)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err)
			return
		}

		respondJSON(r.Context(), w, http.StatusCreated, productToDTO(product))
	}
}

func updateProductAnswersHandler(uc *usecase.AssessmentUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := auth.UserIDFromContext(r.Context())
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err)
			return
		}

		var req productAnswersDTO
		if err := decodeJSON(r, &req); err != nil {
			errutil.HandleHTTP(r.Context(), w, err)
			return
		}

		orgID := types.OrgAssessmentID(chi.URLParam(r, "orgID"))
		productID := types.ProductAssessmentID(chi.URLParam(r, "productID"))
		updated, err := uc.UpdateProductAnswers(r.Context(), userID, orgID, productID, req.toModel())
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err)
			return
		}

		respondJSON(r.Context(), w, http.StatusOK, productToDTO(updated))
	}
}

func deleteProductHandler(uc *usecase.AssessmentUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := auth.UserIDFromContext(r.Context())
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err)
			return
		}

		orgID := types.OrgAssessmentID(chi.URLParam(r, "orgID"))
		productID := types.ProductAssessmentID(chi.URLParam(r, "productID"))
		if err := uc.DeleteProduct(r.Context(), userID, orgID, productID); err != nil {
			errutil.HandleHTTP(r.Context(), w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
