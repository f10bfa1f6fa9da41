package promotion

import (
	"github.com/ccoppo/AcronymLookupTool/pkg/db/models"
)

func toRequestDTO(row models.TermRequest) RequestDTO {
	return RequestDTO{
		ID:          row.ID,
		Kind:        row.Kind,
		ProjectID:   row.ProjectID,
		Key:         row.Key,
		Definition:  row.Definition,
		Category:    row.Category,
		Notes:       row.Notes,
		RequestedBy: row.RequestedByUserID,
		Status:      row.Status,
		ReviewNote:  row.ReviewNote,
		ReviewedBy:  row.ReviewedByUserID,
		ReviewedAt:  row.ReviewedAt,
		CreatedAt:   row.CreatedAt,
	}
}

func toRequestDTOs(rows []models.TermRequest) []RequestDTO {
	out := make([]RequestDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, toRequestDTO(row))
	}
	return out
}
