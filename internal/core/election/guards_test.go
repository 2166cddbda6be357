package election

import (
	"errors"
	"testing"
	"time"

	"github.com/example/ballot/internal/models"
)

var (
	start = time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	end   = time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)
)

func window(status string) Window {
	return Window{Status: status, StartDate: start, EndDate: end}
}

func TestIsVotable(t *testing.T) {
	tests := []struct {
		name string
		w    Window
		now  time.Time
		want bool
	}{
		{"active inside window", window(models.ElectionStatusActive), start.Add(time.Hour), true},
		{"active at exact start", window(models.ElectionStatusActive), start, true},
		{"active at exact end", window(models.ElectionStatusActive), end, true},
		{"active one second before start", window(models.ElectionStatusActive), start.Add(-time.Second), false},
		{"active one second after end", window(models.ElectionStatusActive), end.Add(time.Second), false},
		{"pending inside window", window(models.ElectionStatusPending), start.Add(time.Hour), false},
		{"completed inside window", window(models.ElectionStatusCompleted), start.Add(time.Hour), false},
		{"cancelled inside window", window(models.ElectionStatusCancelled), start.Add(time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsVotable(tt.w, tt.now); got != tt.want {
				t.Errorf("IsVotable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		w    Window
		now  time.Time
		want string
	}{
		{"active before start is upcoming", window(models.ElectionStatusActive), start.Add(-time.Hour), models.ClassUpcoming},
		{"pending before start is upcoming", window(models.ElectionStatusPending), start.Add(-time.Hour), models.ClassUpcoming},
		{"active inside window is active", window(models.ElectionStatusActive), start.Add(time.Hour), models.ClassActive},
		{"active past end is completed", window(models.ElectionStatusActive), end.Add(time.Minute), models.ClassCompleted},
		{"completed status inside window is completed", window(models.ElectionStatusCompleted), start.Add(time.Hour), models.ClassCompleted},
		{"cancelled wins over past end", window(models.ElectionStatusCancelled), end.Add(time.Hour), models.ClassCancelled},
		{"cancelled wins over upcoming", window(models.ElectionStatusCancelled), start.Add(-time.Hour), models.ClassCancelled},
		{"pending inside window is pending", window(models.ElectionStatusPending), start.Add(time.Hour), models.ClassPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.w, tt.now); got != tt.want {
				t.Errorf("Classify() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsFinished(t *testing.T) {
	tests := []struct {
		name string
		w    Window
		now  time.Time
		want bool
	}{
		{"completed status inside window", window(models.ElectionStatusCompleted), start.Add(time.Hour), true},
		{"active past end", window(models.ElectionStatusActive), end.Add(time.Second), true},
		{"cancelled past end", window(models.ElectionStatusCancelled), end.Add(time.Hour), true},
		{"active at exact end", window(models.ElectionStatusActive), end, false},
		{"active inside window", window(models.ElectionStatusActive), start.Add(time.Hour), false},
		{"cancelled before end", window(models.ElectionStatusCancelled), start.Add(time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsFinished(tt.w, tt.now); got != tt.want {
				t.Errorf("IsFinished() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMatchesFilter(t *testing.T) {
	inside := start.Add(time.Hour)
	before := start.Add(-time.Hour)
	after := end.Add(time.Hour)

	tests := []struct {
		name     string
		w        Window
		now      time.Time
		hasVoted bool
		filter   string
		want     bool
	}{
		{"all matches everything", window(models.ElectionStatusCancelled), after, false, models.FilterAll, true},
		{"empty filter matches everything", window(models.ElectionStatusPending), before, false, "", true},
		{"active matches votable", window(models.ElectionStatusActive), inside, false, models.FilterActive, true},
		{"active rejects pending", window(models.ElectionStatusPending), inside, false, models.FilterActive, false},
		{"upcoming matches pending before start", window(models.ElectionStatusPending), before, false, models.FilterUpcoming, true},
		{"upcoming rejects cancelled before start", window(models.ElectionStatusCancelled), before, false, models.FilterUpcoming, false},
		{"completed matches active past end", window(models.ElectionStatusActive), after, false, models.FilterCompleted, true},
		{"completed matches completed status", window(models.ElectionStatusCompleted), inside, false, models.FilterCompleted, true},
		{"voted matches when voter has ballot", window(models.ElectionStatusActive), inside, true, models.FilterVoted, true},
		{"not voted rejects when voter has ballot", window(models.ElectionStatusActive), inside, true, models.FilterNotVoted, false},
		{"unknown filter matches nothing", window(models.ElectionStatusActive), inside, false, "bogus", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchesFilter(tt.w, tt.now, tt.hasVoted, tt.filter); got != tt.want {
				t.Errorf("MatchesFilter() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanCreateElection(t *testing.T) {
	tests := []struct {
		name        string
		ctx         CreateElectionContext
		wantAllowed bool
		wantReason  string
	}{
		{
			name:        "can create with title and ordered dates",
			ctx:         CreateElectionContext{Title: "Student Council", StartDate: start, EndDate: end},
			wantAllowed: true,
		},
		{
			name:        "cannot create with blank title",
			ctx:         CreateElectionContext{Title: "   ", StartDate: start, EndDate: end},
			wantAllowed: false,
			wantReason:  "election title is required",
		},
		{
			name:        "cannot create without dates",
			ctx:         CreateElectionContext{Title: "Student Council"},
			wantAllowed: false,
			wantReason:  "election start and end dates are required",
		},
		{
			name:        "cannot create when end equals start",
			ctx:         CreateElectionContext{Title: "Student Council", StartDate: start, EndDate: start},
			wantAllowed: false,
			wantReason:  "election end date must be after start date",
		},
		{
			name:        "cannot create when end before start",
			ctx:         CreateElectionContext{Title: "Student Council", StartDate: end, EndDate: start},
			wantAllowed: false,
			wantReason:  "election end date must be after start date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CanCreateElection(tt.ctx)
			if result.Allowed != tt.wantAllowed {
				t.Errorf("Allowed = %v, want %v", result.Allowed, tt.wantAllowed)
			}
			if !tt.wantAllowed && result.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", result.Reason, tt.wantReason)
			}
			if !tt.wantAllowed && !errors.Is(result.Error(), ErrInvalidElection) {
				t.Errorf("Error() = %v, want ErrInvalidElection", result.Error())
			}
		})
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name        string
		ctx         StatusTransitionContext
		wantAllowed bool
		wantReason  string
	}{
		{"pending to active", StatusTransitionContext{1, models.ElectionStatusPending, models.ElectionStatusActive}, true, ""},
		{"pending to cancelled", StatusTransitionContext{1, models.ElectionStatusPending, models.ElectionStatusCancelled}, true, ""},
		{"active to completed", StatusTransitionContext{1, models.ElectionStatusActive, models.ElectionStatusCompleted}, true, ""},
		{"active to cancelled", StatusTransitionContext{1, models.ElectionStatusActive, models.ElectionStatusCancelled}, true, ""},
		{
			"pending straight to completed",
			StatusTransitionContext{2, models.ElectionStatusPending, models.ElectionStatusCompleted},
			false,
			"cannot move election 2 from pending to completed",
		},
		{
			"active back to pending",
			StatusTransitionContext{2, models.ElectionStatusActive, models.ElectionStatusPending},
			false,
			"cannot move election 2 from active to pending",
		},
		{
			"active to active",
			StatusTransitionContext{2, models.ElectionStatusActive, models.ElectionStatusActive},
			false,
			"cannot move election 2 from active to active",
		},
		{
			"completed is terminal",
			StatusTransitionContext{3, models.ElectionStatusCompleted, models.ElectionStatusActive},
			false,
			"election 3 is completed and can no longer change status",
		},
		{
			"cancelled is terminal",
			StatusTransitionContext{3, models.ElectionStatusCancelled, models.ElectionStatusActive},
			false,
			"election 3 is cancelled and can no longer change status",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CanTransition(tt.ctx)
			if result.Allowed != tt.wantAllowed {
				t.Errorf("Allowed = %v, want %v", result.Allowed, tt.wantAllowed)
			}
			if !tt.wantAllowed && result.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", result.Reason, tt.wantReason)
			}
			if !tt.wantAllowed && !errors.Is(result.Error(), ErrInvalidTransition) {
				t.Errorf("Error() = %v, want ErrInvalidTransition", result.Error())
			}
		})
	}
}
