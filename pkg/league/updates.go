package league

// TeamUpdate is a partial team update. Nil fields are left unchanged.
type TeamUpdate struct {
	Name         *string `json:"name" validate:"omitempty,min=1"`
	Logo         *string `json:"logo"`
	PrimaryColor *string `json:"primaryColor"`
	Founded      *string `json:"founded"`
	Stadium      *string `json:"stadium"`
}

func (u TeamUpdate) Apply(t *Team) {
	if u.Name != nil {
		t.Name = *u.Name
	}
	if u.Logo != nil {
		t.Logo = u.Logo
	}
	if u.PrimaryColor != nil {
		t.PrimaryColor = *u.PrimaryColor
	}
	if u.Founded != nil {
		t.Founded = *u.Founded
	}
	if u.Stadium != nil {
		t.Stadium = *u.Stadium
	}
}

// PlayerUpdate is a partial player update. Nil fields are left unchanged.
type PlayerUpdate struct {
	Name      *string `json:"name" validate:"omitempty,min=1"`
	Position  *string `json:"position"`
	Number    *int    `json:"number" validate:"omitempty,gte=0"`
	TeamID    *string `json:"teamId" validate:"omitempty,min=1"`
	IsManager *bool   `json:"isManager"`
	Photo     *string `json:"photo"`
}

func (u PlayerUpdate) Apply(p *Player) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Position != nil {
		p.Position = *u.Position
	}
	if u.Number != nil {
		p.Number = *u.Number
	}
	if u.TeamID != nil {
		p.TeamID = *u.TeamID
	}
	if u.IsManager != nil {
		p.IsManager = *u.IsManager
	}
	if u.Photo != nil {
		p.Photo = u.Photo
	}
}

// MatchUpdate is a partial match update. Nil fields are left unchanged.
type MatchUpdate struct {
	MatchDay      *int         `json:"matchDay" validate:"omitempty,gte=1"`
	HomeTeamID    *string      `json:"homeTeamId" validate:"omitempty,min=1"`
	AwayTeamID    *string      `json:"awayTeamId" validate:"omitempty,min=1"`
	HomeScore     *int         `json:"homeScore" validate:"omitempty,gte=0"`
	AwayScore     *int         `json:"awayScore" validate:"omitempty,gte=0"`
	HomeYellows   *int         `json:"homeYellows" validate:"omitempty,gte=0"`
	AwayYellows   *int         `json:"awayYellows" validate:"omitempty,gte=0"`
	HomeReds      *int         `json:"homeReds" validate:"omitempty,gte=0"`
	AwayReds      *int         `json:"awayReds" validate:"omitempty,gte=0"`
	HomePoints    *int         `json:"-"`
	AwayPoints    *int         `json:"-"`
	MinutesPlayed *int         `json:"minutesPlayed" validate:"omitempty,gte=0"`
	League        *string      `json:"league"`
	Date          *string      `json:"date"`
	Time          *string      `json:"time"`
	Status        *MatchStatus `json:"status" validate:"omitempty,oneof=upcoming played"`
}

// ScoresChanged reports whether the update touches either score.
func (u MatchUpdate) ScoresChanged() bool {
	return u.HomeScore != nil || u.AwayScore != nil
}

func (u MatchUpdate) Apply(m *Match) {
	setInt(&m.MatchDay, u.MatchDay)
	setString(&m.HomeTeamID, u.HomeTeamID)
	setString(&m.AwayTeamID, u.AwayTeamID)
	setInt(&m.HomeScore, u.HomeScore)
	setInt(&m.AwayScore, u.AwayScore)
	setInt(&m.HomeYellows, u.HomeYellows)
	setInt(&m.AwayYellows, u.AwayYellows)
	setInt(&m.HomeReds, u.HomeReds)
	setInt(&m.AwayReds, u.AwayReds)
	setInt(&m.HomePoints, u.HomePoints)
	setInt(&m.AwayPoints, u.AwayPoints)
	setInt(&m.MinutesPlayed, u.MinutesPlayed)
	setString(&m.League, u.League)
	setString(&m.Date, u.Date)
	setString(&m.Time, u.Time)
	if u.Status != nil {
		m.Status = *u.Status
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
