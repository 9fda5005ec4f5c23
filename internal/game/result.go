package game

import "github.com/peterkuimelis/cardclash/internal/log"

// Result is the immutable summary of a finished battle.
type Result struct {
	Winner        *string         `json:"winner"`
	WinnerSide    int             `json:"winner_side"` // 0, 1, or -1 for a draw
	Draw          bool            `json:"draw"`
	Player1       string          `json:"player1"`
	Player2       string          `json:"player2"`
	Player1Health int             `json:"player1_health"`
	Player2Health int             `json:"player2_health"`
	Turns         int             `json:"turns"`
	Log           []string        `json:"log"`
	Animations    []log.Animation `json:"animations"`

	// Played lists, per side, the deck slots that reached the field.
	Played [2][]int `json:"-"`
}

// Result snapshots the battle state. It returns nil before the battle is over.
func (b *Battle) Result() *Result {
	st := b.State
	if !st.Over {
		return nil
	}
	r := &Result{
		WinnerSide:    st.Winner,
		Draw:          st.Draw,
		Player1:       st.Sides[0].Name,
		Player2:       st.Sides[1].Name,
		Player1Health: st.Sides[0].Health,
		Player2Health: st.Sides[1].Health,
		Turns:         st.Turn,
		Log:           append([]string(nil), st.Log...),
		Animations:    append([]log.Animation{}, st.Animations...),
	}
	if st.Winner >= 0 {
		name := st.Sides[st.Winner].Name
		r.Winner = &name
	}
	for i, s := range st.Sides {
		r.Played[i] = append([]int(nil), s.Played...)
	}
	return r
}

// WinnerName returns the winner's username, or "" for a draw.
func (r *Result) WinnerName() string {
	if r.Winner == nil {
		return ""
	}
	return *r.Winner
}

// GrantRewards pays out trophies and gold. On a draw both sides receive the
// losing reward.
func GrantRewards(r *Result, p0, p1 Player, rules Rules) {
	players := [2]Player{p0, p1}
	for i, p := range players {
		if r.WinnerSide == i {
			p.EarnTrophies(rules.WinTrophies)
			p.EarnGold(rules.WinGold)
			continue
		}
		p.EarnTrophies(rules.LoseTrophies)
		p.EarnGold(rules.LoseGold)
	}
}
