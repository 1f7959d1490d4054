package model

import (
	"time"

	"github.com/govern-lab/aegis/pkg/domain/types"
)

// OrgAssessment is one organization's questionnaire record. It is owned by
// exactly one user and owns zero or more product assessments.
type OrgAssessment struct {
	ID        types.OrgAssessmentID
	OwnerID   types.UserID
	Name      string
	Answers   OrgAnswers
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProductAssessment is the questionnaire record for one AI product beneath an
// org assessment. It shares the owner of its parent org.
type ProductAssessment struct {
	ID        types.ProductAssessmentID
	OrgID     types.OrgAssessmentID
	OwnerID   types.UserID
	Name      string
	Answers   ProductAnswers
	CreatedAt time.Time
	UpdatedAt time.Time
}
