package memberships

import (
	"github.com/ccoppo/AcronymLookupTool/pkg/db/models"
)

type membershipWithProjectRow struct {
	models.ProjectMember
	ProjectName string `gorm:"column:project_name"`
	ProjectCode string `gorm:"column:project_code"`
}

func membershipWithProjectFromRow(row membershipWithProjectRow) MembershipWithProject {
	return MembershipWithProject{
		MembershipID: row.ID,
		ProjectID:    row.ProjectID,
		UserID:       row.UserID,
		ProjectName:  row.ProjectName,
		ProjectCode:  row.ProjectCode,
		Role:         row.Role,
		Status:       row.Status,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}

func membershipRowsToDTO(rows []membershipWithProjectRow) []MembershipWithProject {
	out := make([]MembershipWithProject, 0, len(rows))
	for _, row := range rows {
		out = append(out, membershipWithProjectFromRow(row))
	}
	return out
}
