package service

import (
	"campusflow/modules/chat/entity"
	"sort"
)

// SortChats orders by latest message first. Chats with no messages go last,
// and ties fall back to the newest chat.
func SortChats(chats []entity.ChatSummary) {
	sort.SliceStable(chats, func(i, j int) bool {
		a, b := chats[i].LastMessageAt, chats[j].LastMessageAt
		switch {
		case a != nil && b == nil:
			return true
		case a == nil && b != nil:
			return false
		case a != nil && b != nil && !a.Equal(*b):
			return a.After(*b)
		}
		return chats[i].CreatedAt.After(chats[j].CreatedAt)
	})
}
