package config

// NewCatalogForTest creates a Catalog config for testing purposes
func NewCatalogForTest(taxonomyPath, controlsPath string) *Catalog {
	return &Catalog{
		taxonomyPath: taxonomyPath,
		controlsPath: controlsPath,
	}
}

// NewScoringForTest creates a Scoring config for testing purposes
func NewScoringForTest(path string) *Scoring {
	return &Scoring{
		path: path,
	}
}

// NewAuthForTest creates an Auth config for testing purposes
func NewAuthForTest(noAuthUID string) *Auth {
	return &Auth{
		noAuthUID: noAuthUID,
	}
}

// NewRepositoryForTest creates a Repository config for testing purposes
func NewRepositoryForTest(backend, projectID, databaseID string) *Repository {
	return &Repository{
		backend:    backend,
		projectID:  projectID,
		databaseID: databaseID,
	}
}
