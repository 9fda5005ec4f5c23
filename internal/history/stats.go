package history

// Stats summarizes a player's battle history.
type Stats struct {
	TotalBattles     int     `json:"total_battles"`
	Wins             int     `json:"wins"`
	Losses           int     `json:"losses"`
	Draws            int     `json:"draws"`
	WinRate          float64 `json:"win_rate"` // percent
	AverageTurns     float64 `json:"average_turns"`
	TotalDamageDealt int     `json:"total_damage_dealt"`
}

// ComputeStats derives stats for username from records. Records the player
// did not take part in are ignored. Damage dealt in a battle is how far the
// opponent fell from startingHealth, counting overkill as zero.
func ComputeStats(username string, records []Record, startingHealth int) Stats {
	var st Stats
	turns := 0
	for _, rec := range records {
		if !rec.Involves(username) {
			continue
		}
		st.TotalBattles++
		turns += rec.Turns

		switch {
		case rec.Winner == nil:
			st.Draws++
		case *rec.Winner == username:
			st.Wins++
		default:
			st.Losses++
		}

		opp := rec.Player2Health
		if rec.Player2 == username && rec.Player1 != username {
			opp = rec.Player1Health
		}
		st.TotalDamageDealt += startingHealth - max(0, opp)
	}

	if st.TotalBattles > 0 {
		st.WinRate = float64(st.Wins) / float64(st.TotalBattles) * 100
		st.AverageTurns = float64(turns) / float64(st.TotalBattles)
	}
	return st
}
