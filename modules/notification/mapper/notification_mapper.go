package mapper

import (
	coreEntity "campusflow/core/entity"
	"campusflow/modules/notification/dto"
	"campusflow/modules/notification/entity"
)

func ToNotificationResponse(n *entity.Notification) dto.NotificationResponse {
	data := map[string]any(n.Data)
	if data == nil {
		data = map[string]any{}
	}
	return dto.NotificationResponse{
		ID:        n.ID,
		Title:     n.Title,
		Message:   n.Message,
		Type:      n.Type,
		Data:      data,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}

func ToPaginatedResponse(p *entity.PaginatedNotificationEntity) *coreEntity.Pagination[dto.NotificationResponse] {
	items := make([]dto.NotificationResponse, 0, len(p.Items))
	for i := range p.Items {
		items = append(items, ToNotificationResponse(&p.Items[i]))
	}
	return coreEntity.NewPagination(items, p.TotalItems, p.PageNumber, p.PageSize)
}
