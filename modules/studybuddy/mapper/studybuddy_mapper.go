package mapper

import (
	"campusflow/modules/studybuddy/dto"
	"campusflow/modules/studybuddy/entity"
	userDto "campusflow/modules/user/dto"

	"github.com/google/uuid"
)

func ToRequestResponse(r *entity.Request, profiles map[uuid.UUID]userDto.PublicProfile) dto.RequestResponse {
	resp := dto.RequestResponse{
		ID:        r.ID,
		TargetID:  r.TargetID,
		Course:    r.Course,
		Message:   r.Message,
		Status:    r.Status,
		CreatedAt: r.CreatedAt,
	}
	if p, ok := profiles[r.RequesterID]; ok {
		resp.Requester = &p
	}
	return resp
}
