package models

import (
	"encoding/json"
	"testing"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "plain date", in: "2024-01-05", want: "2024-01-05"},
		{name: "rfc3339 truncated to day", in: "2024-01-05T14:30:00Z", want: "2024-01-05"},
		{name: "garbage", in: "05/01/2024", wantErr: true},
		{name: "empty", in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := ParseDate(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseDate(%q): expected error", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDate(%q): %v", tt.in, err)
			}
			if d.String() != tt.want {
				t.Fatalf("ParseDate(%q) = %q, want %q", tt.in, d.String(), tt.want)
			}
		})
	}
}

func TestDateOrdering(t *testing.T) {
	early := NewDate(2024, 1, 5)
	late := NewDate(2024, 1, 10)

	if !early.Before(late) || late.Before(early) {
		t.Fatal("expected 2024-01-05 < 2024-01-10")
	}
	if !late.After(early) {
		t.Fatal("expected 2024-01-10 > 2024-01-05")
	}
}

func TestDateJSON(t *testing.T) {
	d := NewDate(2024, 1, 7)
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"2024-01-07"` {
		t.Fatalf("marshal: got %s", b)
	}

	var back Date
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.String() != d.String() {
		t.Fatalf("round trip: got %q, want %q", back.String(), d.String())
	}
}
