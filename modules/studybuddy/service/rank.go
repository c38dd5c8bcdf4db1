package service

import (
	"campusflow/modules/studybuddy/dto"
	userEntity "campusflow/modules/user/entity"
	userMapper "campusflow/modules/user/mapper"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Rank orders candidates by shared interests, then same year, then name.
// Blocked users are dropped.
func Rank(me *userEntity.User, candidates []userEntity.User, blocked map[uuid.UUID]struct{}) []dto.Match {
	mine := make(map[string]struct{}, len(me.Interests))
	for _, in := range me.Interests {
		mine[strings.ToLower(in)] = struct{}{}
	}

	matches := make([]dto.Match, 0, len(candidates))
	for i := range candidates {
		c := &candidates[i]
		if c.ID == me.ID {
			continue
		}
		if _, ok := blocked[c.ID]; ok {
			continue
		}
		shared := []string{}
		for _, in := range c.Interests {
			if _, ok := mine[strings.ToLower(in)]; ok {
				shared = append(shared, in)
			}
		}
		matches = append(matches, dto.Match{
			Profile:         userMapper.ToPublicProfile(c),
			SharedInterests: shared,
			SameYear:        me.Year != 0 && c.Year == me.Year,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if len(a.SharedInterests) != len(b.SharedInterests) {
			return len(a.SharedInterests) > len(b.SharedInterests)
		}
		if a.SameYear != b.SameYear {
			return a.SameYear
		}
		return strings.ToLower(a.Profile.Name) < strings.ToLower(b.Profile.Name)
	})
	return matches
}
