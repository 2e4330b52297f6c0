package models

import "testing"

func TestAnswerHasVoted(t *testing.T) {
	a := Answer{
		ListLike:    []string{"u1", "u2"},
		ListDeslike: []string{"u3"},
	}

	cases := []struct {
		userID string
		want   bool
	}{
		{"u1", true},
		{"u2", true},
		{"u3", true},
		{"u4", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := a.HasVoted(tc.userID); got != tc.want {
			t.Errorf("HasVoted(%q) = %v, want %v", tc.userID, got, tc.want)
		}
	}
}

func TestAnswerHasVotedEmptyLists(t *testing.T) {
	a := Answer{}
	if a.HasVoted("u1") {
		t.Error("HasVoted on empty lists = true, want false")
	}
}

func TestForumHasMember(t *testing.T) {
	f := Forum{ActiveUsers: []UserSnapshot{
		{UserID: "u1", Name: "Ana"},
		{UserID: "u2", Name: "Ben"},
	}}

	if !f.HasMember("u1") {
		t.Error("HasMember(u1) = false, want true")
	}
	if f.HasMember("u3") {
		t.Error("HasMember(u3) = true, want false")
	}

	empty := Forum{}
	if empty.HasMember("u1") {
		t.Error("HasMember on empty forum = true, want false")
	}
}

func TestForumPopularityScore(t *testing.T) {
	cases := []struct {
		users    int
		messages int
		want     float64
	}{
		{0, 0, 0},
		{2, 0, 1},
		{0, 3, 1.5},
		{4, 6, 5},
	}
	for _, tc := range cases {
		f := Forum{
			ActiveUsers: make([]UserSnapshot, tc.users),
			Messages:    make([]Message, tc.messages),
		}
		if got := f.PopularityScore(); got != tc.want {
			t.Errorf("score with %d users, %d messages = %v, want %v", tc.users, tc.messages, got, tc.want)
		}
	}
}

func TestUserSanitize(t *testing.T) {
	u := User{Email: "a@x.com", Password: "hash"}
	u.Sanitize()
	if u.Password != "" {
		t.Errorf("password after Sanitize = %q, want empty", u.Password)
	}
	if u.Email != "a@x.com" {
		t.Error("Sanitize touched a field other than the password")
	}
}
