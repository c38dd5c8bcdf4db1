package mapper

import (
	"campusflow/modules/user/dto"
	"campusflow/modules/user/entity"
)

func interests(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}

func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Course:    u.Course,
		Year:      u.Year,
		Interests: interests(u.Interests),
		Bio:       u.Bio,
		AvatarURL: u.AvatarURL,
		Roles: dto.Roles{
			Student:   u.RoleStudent,
			Organizer: u.RoleOrganizer,
			Admin:     u.RoleAdmin,
		},
		QuietHours: dto.QuietHours{
			Start:   u.QuietStart,
			End:     u.QuietEnd,
			Enabled: u.QuietEnabled,
		},
		HasPushToken: u.PushToken != nil && *u.PushToken != "",
		LastSeen:     u.LastSeen,
		CreatedAt:    u.CreatedAt,
	}
}

func ToPublicProfile(u *entity.User) dto.PublicProfile {
	return dto.PublicProfile{
		ID:        u.ID,
		Name:      u.Name,
		Course:    u.Course,
		Year:      u.Year,
		Interests: interests(u.Interests),
		Bio:       u.Bio,
		AvatarURL: u.AvatarURL,
	}
}

func ToPublicProfiles(users []entity.User) []dto.PublicProfile {
	out := make([]dto.PublicProfile, 0, len(users))
	for i := range users {
		out = append(out, ToPublicProfile(&users[i]))
	}
	return out
}
