package mapper

import (
	"campusflow/modules/announcement/dto"
	"campusflow/modules/announcement/entity"
)

func ToAnnouncementResponse(a *entity.Announcement) dto.AnnouncementResponse {
	return dto.AnnouncementResponse{
		ID:         a.ID,
		Title:      a.Title,
		Body:       a.Body,
		Audience:   a.Audience,
		TargetID:   a.TargetID,
		TargetYear: a.TargetYear,
		Priority:   a.Priority,
		CreatedBy:  a.CreatedBy,
		ExpiresAt:  a.ExpiresAt,
		CreatedAt:  a.CreatedAt,
	}
}

func ToAnnouncementResponses(list []entity.Announcement) []dto.AnnouncementResponse {
	out := make([]dto.AnnouncementResponse, 0, len(list))
	for i := range list {
		out = append(out, ToAnnouncementResponse(&list[i]))
	}
	return out
}
