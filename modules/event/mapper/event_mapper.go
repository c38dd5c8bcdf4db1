package mapper

import (
	"campusflow/modules/event/dto"
	"campusflow/modules/event/entity"
)

func ToEventResponse(e *entity.Event) *dto.EventResponse {
	if e == nil {
		return nil
	}
	return &dto.EventResponse{
		ID:              e.ID,
		Title:           e.Title,
		Description:     e.Description,
		Category:        e.Category,
		StartsAt:        e.StartsAt,
		EndsAt:          e.EndsAt,
		Location:        dto.Location{Type: e.LocationType, Value: e.LocationValue},
		Visibility:      e.Visibility,
		GroupID:         e.GroupID,
		HostID:          e.HostID,
		HostName:        e.HostName,
		Capacity:        e.Capacity,
		AttendeeCount:   e.AttendeeCount,
		InterestedCount: e.InterestedCount,
		Status:          e.Status,
		Featured:        e.Featured,
		CoverURL:        e.CoverURL,
		CreatedAt:       e.CreatedAt,
	}
}

func ToEventResponses(events []entity.Event) []dto.EventResponse {
	out := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		out = append(out, *ToEventResponse(&events[i]))
	}
	return out
}

func ToUserRSVPResponses(rows []entity.UserRSVP) []dto.EventResponse {
	out := make([]dto.EventResponse, 0, len(rows))
	for i := range rows {
		resp := ToEventResponse(&rows[i].Event)
		resp.MyRSVP = rows[i].RSVPStatus
		out = append(out, *resp)
	}
	return out
}
