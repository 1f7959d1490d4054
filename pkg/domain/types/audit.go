package types

import "github.com/m-mizutani/goerr/v2"

// AuditEntityType identifies what kind of record an audit entry refers to
type AuditEntityType string

const (
	EntityOrgAssessment     AuditEntityType = "org_assessment"
	EntityProductAssessment AuditEntityType = "product_assessment"
)

// Validate checks if the AuditEntityType is valid
func (t AuditEntityType) Validate() error {
	switch t {
	case EntityOrgAssessment, EntityProductAssessment:
		return nil
	}
	return goerr.New("invalid audit entity type", goerr.V("entity_type", t))
}

// String returns the string representation of AuditEntityType
func (t AuditEntityType) String() string {
	return string(t)
}

// AuditAction is the label of a mutating action recorded in the audit log
type AuditAction string

const (
	ActionCreated          AuditAction = "created"
	ActionUpdated          AuditAction = "updated"
	ActionComputed         AuditAction = "computed"
	ActionRecomputed       AuditAction = "recomputed"
	ActionChecklistPatched AuditAction = "checklist_patched"
	ActionDeleted          AuditAction = "deleted"
)

// Validate checks if the AuditAction is valid
func (a AuditAction) Validate() error {
	switch a {
	case ActionCreated, ActionUpdated, ActionComputed, ActionRecomputed, ActionChecklistPatched, ActionDeleted:
		return nil
	}
	return goerr.New("invalid audit action", goerr.V("action", a))
}

// String returns the string representation of AuditAction
func (a AuditAction) String() string {
	return string(a)
}
