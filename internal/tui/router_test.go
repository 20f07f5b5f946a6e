package tui

import (
	"errors"
	"testing"
)

func TestParseRoute(t *testing.T) {
	tests := []struct {
		path    string
		want    Route
		wantErr bool
	}{
		{"/", ListRoute, false},
		{"", ListRoute, false},
		{"/todos/5", EditRoute(5), false},
		{"todos/12/", EditRoute(12), false},
		{"/todos/-1", EditRoute(-1), false},
		{"/todos/abc", Route{}, true},
		{"/todos", Route{}, true},
		{"/todos/1/extra", Route{}, true},
		{"/lists/1", Route{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := ParseRoute(tt.path)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidRoute) {
					t.Errorf("ParseRoute(%q) error = %v, want ErrInvalidRoute", tt.path, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRoute(%q) error = %v", tt.path, err)
			}
			if got != tt.want {
				t.Errorf("ParseRoute(%q) = %+v, want %+v", tt.path, got, tt.want)
			}
		})
	}
}

func TestRoutePathRoundTrip(t *testing.T) {
	for _, r := range []Route{ListRoute, EditRoute(1), EditRoute(42)} {
		back, err := ParseRoute(r.Path())
		if err != nil || back != r {
			t.Errorf("ParseRoute(%q) = (%+v, %v), want %+v", r.Path(), back, err, r)
		}
	}
	if EditRoute(7).String() != "/todos/7" {
		t.Errorf("String() = %q", EditRoute(7).String())
	}
}

func TestNavigateCommand(t *testing.T) {
	msg := navigate(EditRoute(3))()
	nav, ok := msg.(navigateMsg)
	if !ok || nav.route != EditRoute(3) {
		t.Errorf("navigate() produced %#v", msg)
	}
}
