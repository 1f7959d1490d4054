package types

import (
	"regexp"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// OrgAssessmentID represents a unique identifier for an organization assessment
type OrgAssessmentID string

// NewOrgAssessmentID generates a new random OrgAssessmentID
func NewOrgAssessmentID() OrgAssessmentID {
	return OrgAssessmentID(uuid.NewString())
}

// Validate checks if the OrgAssessmentID is valid
func (x OrgAssessmentID) Validate() error {
	if x == "" {
		return goerr.New("org assessment ID cannot be empty")
	}
	if _, err := uuid.Parse(string(x)); err != nil {
		return goerr.Wrap(err, "org assessment ID must be a UUID", goerr.V("id", x))
	}
	return nil
}

// String returns the string representation of OrgAssessmentID
func (x OrgAssessmentID) String() string {
	return string(x)
}

// ProductAssessmentID represents a unique identifier for a product assessment
type ProductAssessmentID string

// NewProductAssessmentID generates a new random ProductAssessmentID
func NewProductAssessmentID() ProductAssessmentID {
	return ProductAssessmentID(uuid.NewString())
}

// Validate checks if the ProductAssessmentID is valid
func (x ProductAssessmentID) Validate() error {
	if x == "" {
		return goerr.New("product assessment ID cannot be empty")
	}
	if _, err := uuid.Parse(string(x)); err != nil {
		return goerr.Wrap(err, "product assessment ID must be a UUID", goerr.V("id", x))
	}
	return nil
}

// String returns the string representation of ProductAssessmentID
func (x ProductAssessmentID) String() string {
	return string(x)
}

// UserID represents the identity of a caller. The value is opaque to the
// engine; it only has to be stable per user.
type UserID string

// Validate checks if the UserID is valid
func (x UserID) Validate() error {
	if x == "" {
		return goerr.New("user ID cannot be empty")
	}
	return nil
}

// String returns the string representation of UserID
func (x UserID) String() string {
	return string(x)
}

// ControlID represents a stable identifier of a control in the catalog,
// e.g. "AIG-001". Controls are always ordered by this ID.
type ControlID string

var controlIDPattern = regexp.MustCompile(`^[A-Z]+-[0-9]{3}$`)

// Validate checks if the ControlID is valid
func (x ControlID) Validate() error {
	if x == "" {
		return goerr.New("control ID cannot be empty")
	}
	if !controlIDPattern.MatchString(string(x)) {
		return goerr.New("control ID must match PREFIX-NNN", goerr.V("id", x))
	}
	return nil
}

// String returns the string representation of ControlID
func (x ControlID) String() string {
	return string(x)
}

// AuditEntryID identifies an audit log entry and doubles as the pagination
// cursor. It is a UUIDv7, so lexical order equals creation order.
type AuditEntryID string

// NewAuditEntryID generates a new time-ordered AuditEntryID
func NewAuditEntryID() AuditEntryID {
	id, err := uuid.NewV7()
	if err != nil {
		// NewV7 only fails when the entropy source does, which is fatal anyway
		return AuditEntryID(uuid.NewString())
	}
	return AuditEntryID(id.String())
}

// Validate checks if the AuditEntryID is valid
func (x AuditEntryID) Validate() error {
	if x == "" {
		return goerr.New("audit entry ID cannot be empty")
	}
	if _, err := uuid.Parse(string(x)); err != nil {
		return goerr.Wrap(err, "audit entry ID must be a UUID", goerr.V("id", x))
	}
	return nil
}

// String returns the string representation of AuditEntryID
func (x AuditEntryID) String() string {
	return string(x)
}
