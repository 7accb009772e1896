package mission

// GrowthSummary aggregates reflection outcomes across a user's history.
// Consolation counts missions that left the user feeling alive, desolation
// the ones that did not.
type GrowthSummary struct {
	Completed   int
	Skipped     int
	Consolation int
	Desolation  int
	Unreflected int
}

// ConsolationRate is the share of reflected missions that felt alive, in [0,1].
func (s GrowthSummary) ConsolationRate() float64 {
	reflected := s.Consolation + s.Desolation
	if reflected == 0 {
		return 0
	}
	return float64(s.Consolation) / float64(reflected)
}

// Summarize counts outcomes over archived missions.
func Summarize(history []Mission) GrowthSummary {
	var s GrowthSummary
	for _, m := range history {
		switch m.Status {
		case StatusCompleted:
			s.Completed++
		case StatusSkipped:
			s.Skipped++
			continue
		}

		switch {
		case m.FeltAlive == nil:
			s.Unreflected++
		case *m.FeltAlive:
			s.Consolation++
		default:
			s.Desolation++
		}
	}
	return s
}
