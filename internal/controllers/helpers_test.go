package controllers

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/Wmolina17/backProjectUniversity/dto"
	"github.com/Wmolina17/backProjectUniversity/internal/models"
	"github.com/Wmolina17/backProjectUniversity/utils"
)

func forumWith(title string, users, messages int) models.Forum {
	return models.Forum{
		Title:       title,
		ActiveUsers: make([]models.UserSnapshot, users),
		Messages:    make([]models.Message, messages),
	}
}

func TestRankPopularOrdersByScore(t *testing.T) {
	forums := []models.Forum{
		forumWith("quiet", 1, 0),
		forumWith("busy", 5, 9),
		forumWith("middling", 2, 3),
	}

	ranked := rankPopular(forums, 10)
	if len(ranked) != 3 {
		t.Fatalf("got %d forums, want 3", len(ranked))
	}

	wantOrder := []string{"busy", "middling", "quiet"}
	for i, want := range wantOrder {
		if ranked[i].Title != want {
			t.Errorf("position %d holds %q, want %q", i, ranked[i].Title, want)
		}
	}
	if ranked[0].Statdistics != 7 {
		t.Errorf("busy score = %v, want 7", ranked[0].Statdistics)
	}
}

func TestRankPopularTruncates(t *testing.T) {
	forums := make([]models.Forum, 15)
	for i := range forums {
		forums[i] = forumWith("f", i, 0)
	}

	ranked := rankPopular(forums, popularForumLimit)
	if len(ranked) != popularForumLimit {
		t.Errorf("got %d forums, want %d", len(ranked), popularForumLimit)
	}
}

func TestRankPopularStableOnTies(t *testing.T) {
	forums := []models.Forum{
		forumWith("first", 2, 2),
		forumWith("second", 2, 2),
	}

	ranked := rankPopular(forums, 10)
	if ranked[0].Title != "first" || ranked[1].Title != "second" {
		t.Error("tied forums were reordered")
	}
}

func TestRankPopularEmpty(t *testing.T) {
	if got := rankPopular(nil, 10); len(got) != 0 {
		t.Errorf("got %d forums from nil input, want 0", len(got))
	}
}

func TestToListItemWithholdsAnswers(t *testing.T) {
	q := models.Question{
		ID:          bson.NewObjectID(),
		UserID:      "u1",
		Title:       "how do goroutines work?",
		TextContent: "body",
		ViewsCount:  7,
		Date:        time.Now(),
		Tags:        []string{"go"},
		Answers: []models.Answer{
			{UserID: "u2", TextContent: "first"},
			{UserID: "u3", TextContent: "second"},
		},
	}
	owner := dto.QuestionOwner{ID: "u1", FullName: "Ana"}

	item := toListItem(q, owner)

	if item.AnswersCount != 2 {
		t.Errorf("AnswersCount = %d, want 2", item.AnswersCount)
	}
	if item.ID != q.ID.Hex() || item.Title != q.Title {
		t.Error("identity fields not carried over")
	}
	if item.User.FullName != "Ana" {
		t.Error("owner projection not attached")
	}
}

func TestSignUserTokenUsesConfiguredSecret(t *testing.T) {
	InitAuth("configured-secret")
	defer InitAuth("")

	user := &models.User{ID: bson.NewObjectID(), Email: "a@x.com"}
	token, err := signUserToken(user)
	if err != nil {
		t.Fatalf("signUserToken failed: %v", err)
	}

	claims, err := utils.VerifyToken("configured-secret", token)
	if err != nil {
		t.Fatalf("token did not verify against the configured secret: %v", err)
	}
	if claims.UID != user.ID.Hex() {
		t.Errorf("uid claim = %q, want %q", claims.UID, user.ID.Hex())
	}

	if _, err := utils.VerifyToken("other-secret", token); err == nil {
		t.Error("token verified against a different secret")
	}
}

func TestNormalizeEmail(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"a@x.com", "a@x.com"},
		{"A@X.com", "a@x.com"},
		{"  A@X.COM  ", "a@x.com"},
		{"\tMixed.Case@Example.ORG\n", "mixed.case@example.org"},
		{"   ", ""},
	}
	for _, tc := range cases {
		if got := normalizeEmail(tc.in); got != tc.want {
			t.Errorf("normalizeEmail(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestIsSaved(t *testing.T) {
	user := &models.User{SavedResources: []string{"r1", "r2"}}

	if !isSaved(user, "r1") {
		t.Error("isSaved(r1) = false, want true")
	}
	if isSaved(user, "r3") {
		t.Error("isSaved(r3) = true, want false")
	}
	if isSaved(&models.User{}, "r1") {
		t.Error("isSaved on empty list = true, want false")
	}
}
