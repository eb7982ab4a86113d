package threat

// Tier is a coarse enemy-danger classification, re-evaluated on read and
// never persisted.
type Tier string

const (
	TierLow    Tier = "LOW"
	TierMedium Tier = "MEDIUM"
	TierHigh   Tier = "HIGH"
)

const (
	highKillThreshold    = 2
	highLevelThreshold   = 300
	mediumLevelThreshold = 200
)

// Classify computes the threat tier for an enemy from their kills against
// monitored members in the last 24 hours, their level, and whether they are
// currently online. Rules apply in priority order, first match wins.
func Classify(kills24h, level int, online bool) Tier {
	if kills24h > highKillThreshold || (level > highLevelThreshold && online) {
		return TierHigh
	}
	if kills24h > 0 || level > mediumLevelThreshold {
		return TierMedium
	}
	return TierLow
}
