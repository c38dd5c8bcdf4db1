package mapper

import (
	coreEntity "campusflow/core/entity"
	"campusflow/modules/group/dto"
	"campusflow/modules/group/entity"
)

func ToGroupResponse(group *entity.Group) *dto.GroupResponse {
	if group == nil {
		return nil
	}
	return &dto.GroupResponse{
		ID:          group.ID,
		Name:        group.Name,
		Slug:        group.Slug,
		Type:        group.Type,
		Description: group.Description,
		OwnerID:     group.OwnerID,
		MemberCount: group.MemberCount,
		CreatedAt:   group.CreatedAt,
		UpdatedAt:   group.UpdatedAt,
	}
}

func ToGroupPaginationResponse(page *entity.PaginatedGroupEntity) *dto.PaginatedGroupResponse {
	if page == nil {
		return coreEntity.NewPagination([]dto.GroupResponse{}, 0, 0, 0)
	}
	items := make([]dto.GroupResponse, len(page.Items))
	for i := range page.Items {
		items[i] = *ToGroupResponse(&page.Items[i])
	}
	return coreEntity.NewPagination(items, page.TotalItems, page.PageNumber, page.PageSize)
}

func ToMemberResponses(members []entity.Member) []dto.MemberResponse {
	out := make([]dto.MemberResponse, 0, len(members))
	for _, m := range members {
		out = append(out, dto.MemberResponse{
			UserID:    m.UserID,
			Name:      m.Name,
			AvatarURL: m.AvatarURL,
			Role:      m.Role,
			JoinedAt:  m.JoinedAt,
		})
	}
	return out
}
