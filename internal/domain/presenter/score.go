package presenter

import (
	"fmt"
	"strings"

	"github.com/okian/liveupdates/internal/domain/model"
	"github.com/okian/liveupdates/internal/domain/progress"
	"github.com/okian/liveupdates/internal/domain/status"
)

// Leading-side indicators.
const (
	IndicatorLeading = "🔥"
	IndicatorTied    = "⚖️"
)

// Side of a game.
type Side int

// Sides. SideNone means the game is tied.
const (
	SideNone Side = iota
	SideHome
	SideAway
)

// Standing summarizes who leads and by how much.
type Standing struct {
	Leader    Side
	Margin    int
	Indicator string
}

// Tied reports whether neither side leads.
func (s Standing) Tied() bool { return s.Leader == SideNone }

// StandingOf compares the two scores.
func StandingOf(s model.ScoreUpdate) Standing {
	switch {
	case s.HomeScore > s.AwayScore:
		return Standing{Leader: SideHome, Margin: s.HomeScore - s.AwayScore, Indicator: IndicatorLeading}
	case s.AwayScore > s.HomeScore:
		return Standing{Leader: SideAway, Margin: s.AwayScore - s.HomeScore, Indicator: IndicatorLeading}
	default:
		return Standing{Leader: SideNone, Indicator: IndicatorTied}
	}
}

// Phase of a game as derived from its clock text.
type Phase int

// Game phases.
const (
	PhaseLive Phase = iota
	PhaseHalftime
	PhaseFinal
)

// Label is the short phase text shown in the collapsed notification.
func (p Phase) Label() string {
	switch p {
	case PhaseFinal:
		return "Final Score"
	case PhaseHalftime:
		return "Halftime"
	default:
		return "LIVE"
	}
}

// Color is the accent color for the phase.
func (p Phase) Color() string {
	if p == PhaseFinal {
		return status.ColorGreen
	}
	return status.ColorRed
}

// PhaseOf matches gameTime case-insensitively; "final" wins over "half".
func PhaseOf(gameTime string) Phase {
	t := strings.ToLower(gameTime)
	switch {
	case strings.Contains(t, "final"):
		return PhaseFinal
	case strings.Contains(t, "half"):
		return PhaseHalftime
	default:
		return PhaseLive
	}
}

// RenderScore builds the live score notification.
func (p *Presenter) RenderScore(s model.ScoreUpdate) (model.Notification, error) {
	standing := StandingOf(s)
	phase := PhaseOf(s.GameTime)
	progressText := progress.Text(s.Progress)
	title := fmt.Sprintf("%s %s %d - %d %s", standing.Indicator, s.HomeTeam, s.HomeScore, s.AwayScore, s.AwayTeam)

	var big strings.Builder
	fmt.Fprintf(&big, "%s: %d\n", s.HomeTeam, s.HomeScore)
	fmt.Fprintf(&big, "%s: %d\n\n", s.AwayTeam, s.AwayScore)
	fmt.Fprintf(&big, "Game Progress: %s\n", progressText)
	fmt.Fprintf(&big, "Time: %s\n", s.GameTime)
	if s.Quarter != "" {
		fmt.Fprintf(&big, "Quarter: %s\n", s.Quarter)
	}
	if standing.Tied() {
		big.WriteString("Tied game")
	} else {
		fmt.Fprintf(&big, "Lead: %d points", standing.Margin)
	}

	final := phase == PhaseFinal
	n := model.Notification{
		ID:            model.ScoreNotificationID,
		ChannelID:     p.channelID,
		Category:      model.CategoryStatus,
		Title:         title,
		Text:          fmt.Sprintf("%s • %s", phase.Label(), s.GameTime),
		BigTitle:      title,
		BigText:       big.String(),
		SubText:       progressText,
		Color:         phase.Color(),
		Ongoing:       !final,
		AutoCancel:    final,
		OnlyAlertOnce: true,
		Progress:      progress.Indicator(s.Progress),
		Actions: []model.Action{
			{Label: "View Game", Token: TokenViewGame, Icon: "ic_menu_view"},
		},
		When: p.now(),
	}
	if err := validate(n); err != nil {
		return model.Notification{}, err
	}
	return n, nil
}
