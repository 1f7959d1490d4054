package types

import "github.com/m-mizutani/goerr/v2"

// ControlType categorizes the nature of a control
type ControlType string

const (
	ControlTypePolicy        ControlType = "policy"
	ControlTypeProcess       ControlType = "process"
	ControlTypeTechnical     ControlType = "technical"
	ControlTypeDocumentation ControlType = "documentation"
)

// Validate checks if the ControlType is valid
func (t ControlType) Validate() error {
	switch t {
	case ControlTypePolicy, ControlTypeProcess, ControlTypeTechnical, ControlTypeDocumentation:
		return nil
	}
	return goerr.New("invalid control type", goerr.V("type", t))
}

// String returns the string representation of ControlType
func (t ControlType) String() string {
	return string(t)
}

// ControlLevel is the ordinal implementation level of a control:
// 1 foundational, 2 intermediate, 3 advanced.
type ControlLevel int

const (
	LevelFoundational ControlLevel = 1
	LevelIntermediate ControlLevel = 2
	LevelAdvanced     ControlLevel = 3
)

// Validate checks if the ControlLevel is within the defined range
func (l ControlLevel) Validate() error {
	if l < LevelFoundational || l > LevelAdvanced {
		return goerr.New("control level must be between 1 and 3", goerr.V("level", int(l)))
	}
	return nil
}
