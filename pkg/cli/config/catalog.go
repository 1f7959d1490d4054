package config

import (
	_ "embed"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"

	"github.com/govern-lab/aegis/pkg/catalog"
	"github.com/govern-lab/aegis/pkg/domain/model"
	"github.com/govern-lab/aegis/pkg/domain/types"
)

//go:embed data/taxonomy.toml
var defaultTaxonomyTOML []byte

//go:embed data/controls.toml
var defaultControlsTOML []byte

// Catalog holds CLI flags for the governance reference data. Without flags
// the embedded default taxonomy and control catalog are used.
type Catalog struct {
	taxonomyPath string
	controlsPath string
}

// Flags returns CLI flags for catalog configuration
func (c *Catalog) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "taxonomy",
			Usage:       "Path to taxonomy TOML file (default: embedded)",
			Sources:     cli.EnvVars("AEGIS_TAXONOMY"),
			Destination: &c.taxonomyPath,
		},
		&cli.StringFlag{
			Name:        "controls",
			Usage:       "Path to control catalog TOML file (default: embedded)",
			Sources:     cli.EnvVars("AEGIS_CONTROLS"),
			Destination: &c.controlsPath,
		},
	}
}

type taxonomyFile struct {
	Functions []taxonomyFunctionTOML `toml:"function"`
}

type taxonomyFunctionTOML struct {
	Code       string                 `toml:"code"`
	Name       string                 `toml:"name"`
	Sort       int                    `toml:"sort"`
	Categories []taxonomyCategoryTOML `toml:"category"`
}

type taxonomyCategoryTOML struct {
	Code          string                    `toml:"code"`
	Name          string                    `toml:"name"`
	Sort          int                       `toml:"sort"`
	Subcategories []taxonomySubcategoryTOML `toml:"subcategory"`
}

type taxonomySubcategoryTOML struct {
	Code string `toml:"code"`
	Name string `toml:"name"`
	Sort int    `toml:"sort"`
}

type controlsFile struct {
	Controls []controlTOML `toml:"control"`
}

type controlTOML struct {
	ID          string   `toml:"id"`
	Name        string   `toml:"name"`
	Description string   `toml:"description"`
	Scope       string   `toml:"scope"`
	Type        string   `toml:"type"`
	Level       int      `toml:"level"`
	RiskTags    []string `toml:"risk_tags"`
	Refs        []string `toml:"refs"`
}

// Configure loads, converts, and validates the reference data. Validation is
// delegated to catalog.New so file-based and embedded data pass the same
// checks.
func (c *Catalog) Configure() (*catalog.Catalog, error) {
	taxonomyData, err := readOrDefault(c.taxonomyPath, defaultTaxonomyTOML)
	if err != nil {
		return nil, err
	}
	controlsData, err := readOrDefault(c.controlsPath, defaultControlsTOML)
	if err != nil {
		return nil, err
	}

	var tf taxonomyFile
	if err := toml.Unmarshal(taxonomyData, &tf); err != nil {
		return nil, goerr.Wrap(err, "failed to parse taxonomy TOML", goerr.V("path", c.taxonomyPath))
	}
	var cf controlsFile
	if err := toml.Unmarshal(controlsData, &cf); err != nil {
		return nil, goerr.Wrap(err, "failed to parse controls TOML", goerr.V("path", c.controlsPath))
	}

	functions := make([]model.TaxonomyFunction, 0, len(tf.Functions))
	for _, fn := range tf.Functions {
		mf := model.TaxonomyFunction{
			Code:       fn.Code,
			Name:       fn.Name,
			SortKey:    fn.Sort,
			Categories: make([]model.TaxonomyCategory, 0, len(fn.Categories)),
		}
		for _, cat := range fn.Categories {
			mc := model.TaxonomyCategory{
				Code:          cat.Code,
				Name:          cat.Name,
				SortKey:       cat.Sort,
				Subcategories: make([]model.TaxonomySubcategory, 0, len(cat.Subcategories)),
			}
			for _, sub := range cat.Subcategories {
				mc.Subcategories = append(mc.Subcategories, model.TaxonomySubcategory{
					Code:    sub.Code,
					Name:    sub.Name,
					SortKey: sub.Sort,
				})
			}
			mf.Categories = append(mf.Categories, mc)
		}
		functions = append(functions, mf)
	}

	controls := make([]*model.Control, 0, len(cf.Controls))
	for _, ctrl := range cf.Controls {
		controls = append(controls, &model.Control{
			ID:          types.ControlID(ctrl.ID),
			Name:        ctrl.Name,
			Description: ctrl.Description,
			Scope:       types.ControlScope(ctrl.Scope),
			Type:        types.ControlType(ctrl.Type),
			Level:       types.ControlLevel(ctrl.Level),
			RiskTags:    ctrl.RiskTags,
			Refs:        ctrl.Refs,
		})
	}

	return catalog.New(functions, controls)
}

func readOrDefault(path string, fallback []byte) ([]byte, error) {
	if path == "" {
		return fallback, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V("path", path))
	}
	return data, nil
}
