package presence

import "testing"

func TestEstimateBot(t *testing.T) {
	got := Estimate(Signals{ID: 777000, Bot: true, HasUsername: true, Premium: true})
	if got != StatusBot {
		t.Errorf("Estimate(bot) = %q, want %q", got, StatusBot)
	}
}

func TestEstimateBuckets(t *testing.T) {
	tests := []struct {
		name string
		s    Signals
		want string
	}{
		{
			// 40 + 30 + 20 + (2100000000 % 30 = 0) = 90
			name: "premium with username, recent ID",
			s:    Signals{ID: 2_100_000_000, HasUsername: true, Premium: true},
			want: StatusRecently,
		},
		{
			// 40 + 15 + (1200000015 % 30 = 15) = 70 → not > 70
			name: "username mid ID lands on boundary",
			s:    Signals{ID: 1_200_000_015, HasUsername: true},
			want: StatusThisWeek,
		},
		{
			// 5 + (90 % 30 = 0) + 40 = 45
			name: "old small ID with username",
			s:    Signals{ID: 90, HasUsername: true},
			want: StatusThisMonth,
		},
		{
			// 5 + (60 % 30 = 0) = 5
			name: "bare old account",
			s:    Signals{ID: 60},
			want: StatusLongAgo,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Estimate(tt.s); got != tt.want {
				t.Errorf("Estimate(%+v) = %q, want %q", tt.s, got, tt.want)
			}
		})
	}
}

func TestEstimateDeterministic(t *testing.T) {
	s := Signals{ID: 1_234_567_890, HasUsername: true}
	first := Estimate(s)
	for range 10 {
		if got := Estimate(s); got != first {
			t.Fatalf("Estimate() not deterministic: %q then %q", first, got)
		}
	}
}

func TestEstimateScoreCap(t *testing.T) {
	// 40 + 30 + 20 + 19 = 109, capped at 100: still the top bucket.
	s := Signals{ID: 2_000_000_029, HasUsername: true, Premium: true}
	if got := Estimate(s); got != StatusRecently {
		t.Errorf("Estimate(capped) = %q, want %q", got, StatusRecently)
	}
}
