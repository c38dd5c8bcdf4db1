package mapper

import (
	"campusflow/modules/report/dto"
	"campusflow/modules/report/entity"
	userDto "campusflow/modules/user/dto"

	"github.com/google/uuid"
)

func ToReportResponse(report *entity.Report, profiles map[uuid.UUID]userDto.PublicProfile) dto.ReportResponse {
	resp := dto.ReportResponse{
		ID:         report.ID,
		TargetType: report.TargetType,
		TargetID:   report.TargetID,
		Reason:     report.Reason,
		Status:     report.Status,
		ReviewedBy: report.ReviewedBy,
		ReviewedAt: report.ReviewedAt,
		Action:     report.Action,
		CreatedAt:  report.CreatedAt,
	}
	if p, ok := profiles[report.ReporterID]; ok {
		resp.Reporter = &p
	}
	return resp
}

func ToReportResponses(reports []entity.Report, profiles map[uuid.UUID]userDto.PublicProfile) []dto.ReportResponse {
	out := make([]dto.ReportResponse, 0, len(reports))
	for i := range reports {
		out = append(out, ToReportResponse(&reports[i], profiles))
	}
	return out
}
