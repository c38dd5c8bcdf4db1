package service

import (
	userEntity "campusflow/modules/user/entity"
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

func student(name string, year int, interests ...string) userEntity.User {
	u := userEntity.NewUser(name+"@uni.ac.uk", name)
	u.Year = year
	u.Interests = pq.StringArray(interests)
	return *u
}

func TestRank(t *testing.T) {
	me := student("Me", 2, "chess", "maths", "go")
	blocked := student("Blocked", 2, "chess", "maths", "go")
	candidates := []userEntity.User{
		student("zara", 1, "chess"),
		student("Yusuf", 2, "chess"),
		student("Anna", 3, "maths", "go"),
		student("Ben", 2),
		student("Cara", 1),
		blocked,
		me,
	}
	got := Rank(&me, candidates, map[uuid.UUID]struct{}{blocked.ID: {}})

	want := []string{"Anna", "Yusuf", "zara", "Ben", "Cara"}
	if len(got) != len(want) {
		t.Fatalf("got %d matches, want %d", len(got), len(want))
	}
	for i, name := range want {
		if got[i].Profile.Name != name {
			t.Errorf("position %d = %s, want %s", i, got[i].Profile.Name, name)
		}
	}
	if len(got[0].SharedInterests) != 2 {
		t.Errorf("shared = %v", got[0].SharedInterests)
	}
	if !got[1].SameYear || got[2].SameYear {
		t.Error("same-year flag wrong")
	}
}
