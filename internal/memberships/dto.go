package memberships

import (
	"time"

	"github.com/google/uuid"

	"github.com/ccoppo/AcronymLookupTool/pkg/enums"
)

// MembershipWithProject includes basic project metadata + membership info.
// It is what the session layer hands the presentation surface as the list of
// available projects.
type MembershipWithProject struct {
	MembershipID uuid.UUID              `json:"membership_id"`
	ProjectID    uuid.UUID              `json:"project_id"`
	UserID       uuid.UUID              `json:"user_id"`
	ProjectName  string                 `json:"project_name"`
	ProjectCode  string                 `json:"project_code"`
	Role         enums.MemberRole       `json:"role"`
	Status       enums.MembershipStatus `json:"status"`
	CreatedAt    time.Time              `json:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at"`
}

// IsActive reports whether the membership currently grants access.
func (m MembershipWithProject) IsActive() bool {
	return m.Status == enums.MembershipStatusActive
}
