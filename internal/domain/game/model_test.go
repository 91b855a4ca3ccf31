package game

import "testing"

func TestIsPlayerID(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{value: "U-ABCD-1234-EF5678", want: true},
		{value: "U-0000-0000-000000", want: true},
		{value: "u-ABCD-1234-EF5678", want: false},
		{value: "U-abcd-1234-EF5678", want: false},
		{value: "U-ABCD-1234-EF567", want: false},
		{value: "U-ABCD-1234-EF56789", want: false},
		{value: "xU-ABCD-1234-EF5678", want: false},
		{value: "", want: false},
	}

	for _, tc := range tests {
		if got := IsPlayerID(tc.value); got != tc.want {
			t.Fatalf("IsPlayerID(%q)=%v, want %v", tc.value, got, tc.want)
		}
	}
}

func TestIsKnownMap(t *testing.T) {
	for _, name := range []string{"1.1", "5.b2", "rumble", "DQ12"} {
		if !IsKnownMap(name) {
			t.Fatalf("expected %q to be a known map", name)
		}
	}
	for _, name := range []string{"", "7.1", "DQ2", "SP", "season"} {
		if IsKnownMap(name) {
			t.Fatalf("expected %q to be rejected", name)
		}
	}
	if len(Maps) != 63 {
		t.Fatalf("unexpected map count: %d", len(Maps))
	}
}

func TestModeAndDifficultyValid(t *testing.T) {
	if !ModeScore.Valid() || !ModeWaves.Valid() || Mode("time").Valid() {
		t.Fatalf("unexpected mode validation result")
	}
	if !DifficultyEndlessI.Valid() || Difficulty("normal").Valid() {
		t.Fatalf("unexpected difficulty validation result")
	}
}
