package config

import (
	"testing"
	"time"
)

func TestParseDurationField(t *testing.T) {
	tests := []struct {
		raw     string
		want    time.Duration
		wantErr bool
	}{
		{"", 0, false},
		{"  ", 0, false},
		{"30s", 30 * time.Second, false},
		{"1h30m", 90 * time.Minute, false},
		{"-5s", 0, true},
		{"10 seconds", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseDurationField("field", tt.raw)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDurationField(%q) err = %v, wantErr %v", tt.raw, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("ParseDurationField(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestParseDurationOrDefault(t *testing.T) {
	if d, err := ParseDurationOrDefault("field", "", time.Minute); err != nil || d != time.Minute {
		t.Errorf("unset: got %v, %v; want 1m default", d, err)
	}
	if d, err := ParseDurationOrDefault("field", "45s", time.Minute); err != nil || d != 45*time.Second {
		t.Errorf("set: got %v, %v; want 45s", d, err)
	}
	if _, err := ParseDurationOrDefault("field", "bogus", time.Minute); err == nil {
		t.Error("want error for unparseable value, got default")
	}
}
