package model

import "github.com/m-mizutani/goerr/v2"

// The governance taxonomy is a strict three-level hierarchy:
// function → category → subcategory. It is read-only reference data, loaded
// once at process start. Identity at every level is a stable string code
// such as "GOVERN", "GOVERN 1", "GOVERN 1.1".

// TaxonomySubcategory is a leaf of the taxonomy
type TaxonomySubcategory struct {
	Code    string
	Name    string
	SortKey int
}

// TaxonomyCategory groups subcategories under a function
type TaxonomyCategory struct {
	Code          string
	Name          string
	SortKey       int
	Subcategories []TaxonomySubcategory
}

// TaxonomyFunction is a top-level governance concern
type TaxonomyFunction struct {
	Code       string
	Name       string
	SortKey    int
	Categories []TaxonomyCategory
}

// Validate checks code presence and that every child carries a code
func (f *TaxonomyFunction) Validate() error {
	if f.Code == "" {
		return goerr.New("taxonomy function code is required")
	}
	for _, cat := range f.Categories {
		if cat.Code == "" {
			return goerr.New("taxonomy category code is required", goerr.V("function", f.Code))
		}
		for _, sub := range cat.Subcategories {
			if sub.Code == "" {
				return goerr.New("taxonomy subcategory code is required", goerr.V("category", cat.Code))
			}
		}
	}
	return nil
}
