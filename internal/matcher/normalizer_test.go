package matcher

import "testing"

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{
			name:  "parentheses and brackets",
			title: "Album Name (2021) [Full Album]",
			want:  "Album Name  ",
		},
		{
			name:  "full-width brackets",
			title: "【Complete】Chill Mix",
			want:  "Chill Mix",
		},
		{
			name:  "nothing to strip",
			title: "Plain Title",
			want:  "Plain Title",
		},
		{
			name:  "multiple spans",
			title: "Name (Full EP) extra [HD] end",
			want:  "Name  extra  end",
		},
		{
			name:  "empty",
			title: "",
			want:  "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeTitle(tc.title)
			if got != tc.want {
				t.Errorf("NormalizeTitle(%q) = %q, want %q", tc.title, got, tc.want)
			}
		})
	}
}

func TestNormalizeTitleIdempotent(t *testing.T) {
	titles := []string{
		"Album Name (2021) [Full Album]",
		"【Complete】Mix (live)",
		"No brackets here",
	}
	for _, title := range titles {
		once := NormalizeTitle(title)
		twice := NormalizeTitle(once)
		if once != twice {
			t.Errorf("NormalizeTitle not idempotent for %q: %q != %q", title, once, twice)
		}
	}
}
