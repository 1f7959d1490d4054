package model

import (
	"github.com/m-mizutani/goerr/v2"

	"github.com/govern-lab/aegis/pkg/domain/types"
)

// Control is one recommended governance or technical safeguard from the
// catalog. Controls reference zero or more taxonomy subcategories.
type Control struct {
	ID          types.ControlID
	Name        string
	Description string
	Scope       types.ControlScope
	Type        types.ControlType
	Level       types.ControlLevel
	RiskTags    []string
	Refs        []string // taxonomy subcategory codes
}

// Validate checks all control attributes
func (c *Control) Validate() error {
	if err := c.ID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid control ID")
	}
	if c.Name == "" {
		return goerr.New("control name is required", goerr.V("id", c.ID))
	}
	if err := c.Scope.Validate(); err != nil {
		return goerr.Wrap(err, "invalid control scope", goerr.V("id", c.ID))
	}
	if err := c.Type.Validate(); err != nil {
		return goerr.Wrap(err, "invalid control type", goerr.V("id", c.ID))
	}
	if err := c.Level.Validate(); err != nil {
		return goerr.Wrap(err, "invalid control level", goerr.V("id", c.ID))
	}
	if len(c.RiskTags) == 0 {
		return goerr.New("control must carry at least one risk tag", goerr.V("id", c.ID))
	}
	return nil
}

// HasAnyTag reports whether the control carries at least one of the given
// risk tags. An empty query matches every control.
func (c *Control) HasAnyTag(tags []string) bool {
	if len(tags) == 0 {
		return true
	}
	for _, want := range tags {
		for _, have := range c.RiskTags {
			if want == have {
				return true
			}
		}
	}
	return false
}
