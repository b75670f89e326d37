package league

import "time"

type MatchStatus string

const (
	StatusUpcoming MatchStatus = "upcoming"
	StatusPlayed   MatchStatus = "played"
)

// DefaultMinutesPlayed is used for player records when a match carries no duration.
const DefaultMinutesPlayed = 90

type Team struct {
	ID           string  `firestore:"-" json:"id"`
	Name         string  `firestore:"name" json:"name" validate:"required"`
	Logo         *string `firestore:"logo" json:"logo"`
	PrimaryColor string  `firestore:"primary_color" json:"primaryColor"`
	Founded      string  `firestore:"founded" json:"founded"`
	Stadium      string  `firestore:"stadium" json:"stadium"`
}

type Player struct {
	ID        string  `firestore:"-" json:"id"`
	Name      string  `firestore:"name" json:"name" validate:"required"`
	Position  string  `firestore:"position" json:"position"`
	Number    int     `firestore:"number" json:"number" validate:"gte=0"`
	TeamID    string  `firestore:"team_id" json:"teamId" validate:"required"`
	IsManager bool    `firestore:"is_manager" json:"isManager"`
	Photo     *string `firestore:"photo" json:"photo"`
}

type Match struct {
	ID            string      `firestore:"-" json:"id"`
	MatchDay      int         `firestore:"matchDay" json:"matchDay" validate:"gte=0"`
	HomeTeamID    string      `firestore:"homeTeamId" json:"homeTeamId" validate:"required"`
	AwayTeamID    string      `firestore:"awayTeamId" json:"awayTeamId" validate:"required,nefield=HomeTeamID"`
	HomeScore     int         `firestore:"homeScore" json:"homeScore" validate:"gte=0"`
	AwayScore     int         `firestore:"awayScore" json:"awayScore" validate:"gte=0"`
	HomeYellows   int         `firestore:"homeYellows" json:"homeYellows" validate:"gte=0"`
	AwayYellows   int         `firestore:"awayYellows" json:"awayYellows" validate:"gte=0"`
	HomeReds      int         `firestore:"homeReds" json:"homeReds" validate:"gte=0"`
	AwayReds      int         `firestore:"awayReds" json:"awayReds" validate:"gte=0"`
	HomePoints    int         `firestore:"homePoints" json:"homePoints"`
	AwayPoints    int         `firestore:"awayPoints" json:"awayPoints"`
	MinutesPlayed int         `firestore:"minutesPlayed" json:"minutesPlayed" validate:"gte=0"`
	League        string      `firestore:"league" json:"league"`
	CreatedAt     time.Time   `firestore:"createdAt,serverTimestamp" json:"createdAt"`
	Date          string      `firestore:"date" json:"date"`
	Time          string      `firestore:"time" json:"time"`
	Status        MatchStatus `firestore:"status" json:"status" validate:"required,oneof=upcoming played"`
}

// IsPlayed reports whether the match counts towards standings.
func (m Match) IsPlayed() bool {
	return m.Status == StatusPlayed
}

// HasTeam reports whether teamID plays in the match.
func (m Match) HasTeam(teamID string) bool {
	return m.HomeTeamID == teamID || m.AwayTeamID == teamID
}

type EventKind string

const (
	KindGoal       EventKind = "goal"
	KindAssist     EventKind = "assist"
	KindYellowCard EventKind = "yellow_card"
	KindRedCard    EventKind = "red_card"
)

// EventKinds lists the four event collections in the order they are joined.
var EventKinds = []EventKind{KindGoal, KindAssist, KindYellowCard, KindRedCard}

// Collection returns the document collection holding events of this kind.
func (k EventKind) Collection() string {
	switch k {
	case KindGoal:
		return "goals"
	case KindAssist:
		return "assists"
	case KindYellowCard:
		return "yellow_cards"
	case KindRedCard:
		return "red_cards"
	}
	return ""
}

type PlayerEvent struct {
	ID        string    `firestore:"-" json:"id"`
	Kind      EventKind `firestore:"-" json:"kind"`
	PlayerID  string    `firestore:"playerId" json:"playerId"`
	MatchID   string    `firestore:"matchId" json:"matchId"`
	MatchDay  int       `firestore:"matchDay" json:"matchDay"`
	TeamID    string    `firestore:"teamId" json:"teamId"`
	Timestamp time.Time `firestore:"timestamp,serverTimestamp" json:"timestamp"`
}

// EventInput is one event to record against a match.
type EventInput struct {
	PlayerID string `json:"playerId" validate:"required"`
	TeamID   string `json:"teamId" validate:"required"`
}

// EventBatch groups the events recorded for a single match.
type EventBatch struct {
	Goals   []EventInput `json:"goals" validate:"dive"`
	Assists []EventInput `json:"assists" validate:"dive"`
	Yellows []EventInput `json:"yellows" validate:"dive"`
	Reds    []EventInput `json:"reds" validate:"dive"`
}

// ByKind returns the inputs of the given kind.
func (b EventBatch) ByKind(kind EventKind) []EventInput {
	switch kind {
	case KindGoal:
		return b.Goals
	case KindAssist:
		return b.Assists
	case KindYellowCard:
		return b.Yellows
	case KindRedCard:
		return b.Reds
	}
	return nil
}

// Len is the total number of events in the batch.
func (b EventBatch) Len() int {
	return len(b.Goals) + len(b.Assists) + len(b.Yellows) + len(b.Reds)
}

// Snapshot is the full in-memory dataset the aggregation engine works on.
type Snapshot struct {
	Teams       []Team
	Players     []Player
	Matches     []Match
	Goals       []PlayerEvent
	Assists     []PlayerEvent
	YellowCards []PlayerEvent
	RedCards    []PlayerEvent
}

// Events returns the event collection for kind.
func (s *Snapshot) Events(kind EventKind) []PlayerEvent {
	switch kind {
	case KindGoal:
		return s.Goals
	case KindAssist:
		return s.Assists
	case KindYellowCard:
		return s.YellowCards
	case KindRedCard:
		return s.RedCards
	}
	return nil
}

// SetEvents replaces the event collection for kind.
func (s *Snapshot) SetEvents(kind EventKind, events []PlayerEvent) {
	switch kind {
	case KindGoal:
		s.Goals = events
	case KindAssist:
		s.Assists = events
	case KindYellowCard:
		s.YellowCards = events
	case KindRedCard:
		s.RedCards = events
	}
}

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Invite gates account activation. It is keyed by Code.
type Invite struct {
	Code             string     `firestore:"-" json:"code"`
	Email            string     `firestore:"email" json:"email"`
	Role             Role       `firestore:"role" json:"role"`
	CreatedByAdminID string     `firestore:"createdByAdminId" json:"createdByAdminId"`
	CreatedAt        time.Time  `firestore:"createdAt,serverTimestamp" json:"createdAt"`
	Used             bool       `firestore:"used" json:"used"`
	UsedBy           *string    `firestore:"usedBy" json:"usedBy"`
	UsedAt           *time.Time `firestore:"usedAt" json:"usedAt"`
}

type User struct {
	ID          string    `firestore:"-" json:"id"`
	Email       string    `firestore:"email" json:"email"`
	DisplayName string    `firestore:"displayName" json:"displayName"`
	PhotoURL    *string   `firestore:"photoUrl" json:"photoUrl"`
	CreatedAt   time.Time `firestore:"createdAt,serverTimestamp" json:"createdAt"`
}

type UserWithRole struct {
	UserID      string `json:"userId"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Role        Role   `json:"role"`
}
