package cases

import "testing"

func TestParseStatus(t *testing.T) {
	tests := []struct {
		input   string
		want    Status
		wantErr bool
	}{
		{"new", StatusNew, false},
		{"assigned", StatusAssigned, false},
		{"closed", StatusClosed, false},
		{"unassigned", StatusNew, false},
		{"open", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseStatus(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseStatus(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseStatus(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to Status
		want     bool
	}{
		{StatusNew, StatusAssigned, true},
		{StatusNew, StatusClosed, true},
		{StatusAssigned, StatusAssigned, true}, // reassignment, last writer wins
		{StatusAssigned, StatusClosed, true},
		{StatusClosed, StatusNew, true}, // explicit reopen
		{StatusClosed, StatusAssigned, false},
		{StatusClosed, StatusClosed, false},
		{StatusNew, StatusNew, false},
		{StatusAssigned, StatusNew, false},
		{Status("bogus"), StatusAssigned, false},
	}
	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}
