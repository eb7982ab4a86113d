package threat

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		kills24h int
		level    int
		online   bool
		want     Tier
	}{
		{"three kills is high", 3, 100, false, TierHigh},
		{"high level online is high", 2, 301, true, TierHigh},
		{"high level offline falls to medium", 2, 301, false, TierMedium},
		{"level 300 online is not high", 0, 300, true, TierMedium},
		{"one kill is medium", 1, 50, false, TierMedium},
		{"level above 200 is medium", 0, 201, false, TierMedium},
		{"quiet low level is low", 0, 150, false, TierLow},
		{"level 200 exactly is low", 0, 200, false, TierLow},
		{"zero everything is low", 0, 0, false, TierLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.kills24h, tt.level, tt.online); got != tt.want {
				t.Errorf("Classify(%d, %d, %v) = %s, want %s", tt.kills24h, tt.level, tt.online, got, tt.want)
			}
		})
	}
}
