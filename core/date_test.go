package core

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Date
		wantErr bool
	}{
		{name: "epoch", in: "1970-01-01", want: 0},
		{name: "padded", in: "  2024-03-01 ", want: NewDate(2024, time.March, 1)},
		{name: "pre-epoch", in: "1969-12-31", want: -1},
		{name: "garbage", in: "not-a-date", wantErr: true},
		{name: "empty", in: "", wantErr: true},
		{name: "wrong layout", in: "01/03/2024", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDate(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestDate_StartOfWeek(t *testing.T) {
	tests := []struct {
		name string
		in   Date
		want Date
	}{
		{name: "monday maps to itself", in: NewDate(2024, time.March, 4), want: NewDate(2024, time.March, 4)},
		{name: "friday maps back", in: NewDate(2024, time.March, 1), want: NewDate(2024, time.February, 26)},
		{name: "sunday maps back 6", in: NewDate(2024, time.March, 10), want: NewDate(2024, time.March, 4)},
		{name: "epoch thursday", in: 0, want: NewDate(1969, time.December, 29)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.StartOfWeek(); got != tt.want {
				t.Errorf("StartOfWeek() = %s, want %s", got, tt.want)
			}
			if got := tt.in.EndOfWeek(); got != tt.want.AddDays(6) {
				t.Errorf("EndOfWeek() = %s, want %s", got, tt.want.AddDays(6))
			}
		})
	}
}

func TestDate_DaysUntil(t *testing.T) {
	d := NewDate(2024, time.March, 1)
	if got := d.DaysUntil(NewDate(2024, time.March, 4)); got != 3 {
		t.Errorf("DaysUntil() = %d, want 3", got)
	}
	if got := d.DaysUntil(NewDate(2024, time.February, 28)); got != -2 {
		t.Errorf("DaysUntil() = %d, want -2", got)
	}
	// leap day in between
	if got := NewDate(2024, time.February, 28).DaysUntil(NewDate(2024, time.March, 1)); got != 2 {
		t.Errorf("DaysUntil() across leap day = %d, want 2", got)
	}
	// year boundary
	if got := NewDate(2023, time.December, 30).DaysUntil(NewDate(2024, time.January, 2)); got != 3 {
		t.Errorf("DaysUntil() across year = %d, want 3", got)
	}
}

func TestDate_JSON(t *testing.T) {
	d := NewDate(2024, time.March, 1)
	data, err := d.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON(): %v", err)
	}
	if string(data) != `"2024-03-01"` {
		t.Errorf("MarshalJSON() = %s", data)
	}
	var back Date
	if err = back.UnmarshalJSON(data); err != nil {
		t.Fatalf("UnmarshalJSON(): %v", err)
	}
	if back != d {
		t.Errorf("roundtrip = %v, want %v", back, d)
	}
	if err = back.UnmarshalJSON([]byte(`"lol"`)); err == nil {
		t.Error("UnmarshalJSON() accepted garbage")
	}
}
