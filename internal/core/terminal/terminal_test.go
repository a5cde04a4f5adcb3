package terminal

import (
	"errors"
	"testing"
)

func TestWidth(t *testing.T) {
	orig := getSize
	defer func() { getSize = orig }()

	tests := []struct {
		name    string
		size    func(uintptr) (int, int, error)
		columns string
		want    int
		wantOK  bool
	}{
		{
			name:   "terminal size",
			size:   func(uintptr) (int, int, error) { return 100, 30, nil },
			want:   100,
			wantOK: true,
		},
		{
			name:    "falls back to COLUMNS",
			size:    func(uintptr) (int, int, error) { return 0, 0, errors.New("not a terminal") },
			columns: "72",
			want:    72,
			wantOK:  true,
		},
		{
			name:    "unavailable",
			size:    func(uintptr) (int, int, error) { return 0, 0, errors.New("not a terminal") },
			columns: "wide",
			want:    0,
			wantOK:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			getSize = tt.size
			t.Setenv("COLUMNS", tt.columns)

			got, ok := Width()
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Width() = (%d, %v), want (%d, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestHeight(t *testing.T) {
	orig := getSize
	defer func() { getSize = orig }()

	getSize = func(uintptr) (int, int, error) { return 80, 24, nil }
	if h, ok := Height(); h != 24 || !ok {
		t.Errorf("Height() = (%d, %v), want (24, true)", h, ok)
	}

	getSize = func(uintptr) (int, int, error) { return 0, 0, errors.New("no tty") }
	if _, ok := Height(); ok {
		t.Error("Height() should be unavailable without a terminal")
	}
}
