package league

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/xorcare/pointer"
)

func TestMatchPoints(t *testing.T) {
	cases := []struct {
		home, away         int
		wantHome, wantAway int
	}{
		{2, 1, 3, 0},
		{0, 3, 0, 3},
		{1, 1, 1, 1},
		{0, 0, 1, 1},
	}

	for _, c := range cases {
		h, a := MatchPoints(c.home, c.away)
		assert.Equal(t, c.wantHome, h, "home points for %d-%d", c.home, c.away)
		assert.Equal(t, c.wantAway, a, "away points for %d-%d", c.home, c.away)
	}
}

func TestApplyScores_UpcomingCarriesNoPoints(t *testing.T) {
	m := Match{Status: StatusUpcoming, HomeScore: 2, AwayScore: 0}
	m.ApplyScores()
	assert.Zero(t, m.HomePoints)
	assert.Zero(t, m.AwayPoints)

	m.Status = StatusPlayed
	m.ApplyScores()
	assert.Equal(t, 3, m.HomePoints)
	assert.Equal(t, 0, m.AwayPoints)
}

func TestMatchUpdate_Apply(t *testing.T) {
	played := StatusPlayed
	m := Match{HomeTeamID: "a", AwayTeamID: "b", Status: StatusUpcoming}
	u := MatchUpdate{HomeScore: pointer.Int(2), AwayScore: pointer.Int(1), Status: &played}

	assert.True(t, u.ScoresChanged())
	u.Apply(&m)

	assert.Equal(t, 2, m.HomeScore)
	assert.Equal(t, 1, m.AwayScore)
	assert.Equal(t, StatusPlayed, m.Status)
	assert.Equal(t, "a", m.HomeTeamID)
	assert.False(t, MatchUpdate{League: pointer.String("x")}.ScoresChanged())
}

func TestEventKindCollection(t *testing.T) {
	assert.Equal(t, "goals", KindGoal.Collection())
	assert.Equal(t, "assists", KindAssist.Collection())
	assert.Equal(t, "yellow_cards", KindYellowCard.Collection())
	assert.Equal(t, "red_cards", KindRedCard.Collection())
	assert.Equal(t, "", EventKind("foul").Collection())
}

func TestValidate(t *testing.T) {
	ctx := context.Background()

	valid := Match{HomeTeamID: "a", AwayTeamID: "b", Status: StatusUpcoming}
	assert.NoError(t, Validate(ctx, valid))

	same := valid
	same.AwayTeamID = "a"
	assert.ErrorIs(t, Validate(ctx, same), ErrInvalidInput)

	badStatus := valid
	badStatus.Status = "postponed"
	assert.ErrorIs(t, Validate(ctx, badStatus), ErrInvalidInput)

	assert.ErrorIs(t, Validate(ctx, Team{}), ErrInvalidInput)
	assert.ErrorIs(t, Validate(ctx, EventBatch{Goals: []EventInput{{PlayerID: "p"}}}), ErrInvalidInput)
}

func TestValidateEmail(t *testing.T) {
	assert.True(t, ValidateEmail("someone@example.com"))
	assert.False(t, ValidateEmail("not-an-email"))
	assert.False(t, ValidateEmail(""))
}
