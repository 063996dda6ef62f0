package sim

// ScoreParams holds the scoring tuning.
type ScoreParams struct {
	PointsPerTile uint64
	Period        float64 // seconds between awards
}

// DefaultScoreParams returns one point per claimed tile every five seconds.
func DefaultScoreParams() ScoreParams {
	return ScoreParams{PointsPerTile: 1, Period: 5}
}

// Score accumulates points for holding tiles.
//
// The landing tile is never counted in ClaimedTiles because it does not emit
// a claim notification; DisplayedClaimedTiles adds it back for the HUD.
type Score struct {
	params  ScoreParams
	events  *Events
	total   uint64
	claimed int
	timer   float64
}

// NewScore creates a zeroed score.
func NewScore(params ScoreParams, events *Events) *Score {
	return &Score{params: params, events: events, timer: params.Period}
}

// Params returns the scoring tuning.
func (s *Score) Params() ScoreParams { return s.params }

// Total returns the accumulated points.
func (s *Score) Total() uint64 { return s.total }

// ClaimedTiles returns the claimed tiles counted from notifications.
func (s *Score) ClaimedTiles() int { return s.claimed }

// DisplayedClaimedTiles includes the landing tile.
func (s *Score) DisplayedClaimedTiles() int { return s.claimed + 1 }

// TimeToAward returns the countdown to the next periodic award.
func (s *Score) TimeToAward() float64 { return s.timer }

// OnTile counts claims and losses.
func (s *Score) OnTile(ev TileEvent) {
	switch ev.Kind {
	case TileClaimed:
		s.claimed++
	case TileLost:
		if s.claimed == 0 {
			return
		}
		s.claimed--
		if s.claimed == 0 {
			s.timer = s.params.Period
		}
	default:
		return
	}
	s.publish(ClaimedTilesChanged)
}

// AddPoints adds a bonus.
func (s *Score) AddPoints(n uint64) {
	if n == 0 {
		return
	}
	s.total += n
	s.publish(ScoreChanged)
}

// Tick awards pointsPerTile for every counted tile once per period. The
// period only runs while at least one tile is claimed, and a long frame that
// spans several periods still awards once.
func (s *Score) Tick(dt float64) {
	if s.params.Period <= 0 || s.claimed == 0 {
		return
	}
	s.timer -= dt
	if s.timer > 0 {
		return
	}
	for s.timer <= 0 {
		s.timer += s.params.Period
	}
	s.AddPoints(uint64(s.claimed) * s.params.PointsPerTile)
}

// Reset zeroes the totals for a new game.
func (s *Score) Reset() {
	s.total = 0
	s.claimed = 0
	s.timer = s.params.Period
	s.publish(ScoreChanged)
}

func (s *Score) publish(kind ScoreEventKind) {
	s.events.Score.Publish(ScoreEvent{Kind: kind, Total: s.total, ClaimedTiles: s.DisplayedClaimedTiles()})
}
