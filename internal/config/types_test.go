package config

import (
	"strings"
	"testing"
	"time"
)

func TestDurationUnmarshalText(t *testing.T) {
	cases := []struct {
		name  string
		text  string
		want  time.Duration
		isSet bool
	}{
		{name: "seconds", text: "30s", want: 30 * time.Second, isSet: true},
		{name: "compound", text: "1m30s", want: 90 * time.Second, isSet: true},
		{name: "empty", text: "", want: 0, isSet: true},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			var d Duration
			if err := d.UnmarshalText([]byte(tc.text)); err != nil {
				t.Fatalf("UnmarshalText(%q) returned error: %v", tc.text, err)
			}
			if d.Duration != tc.want {
				t.Fatalf("unexpected duration: got %v want %v", d.Duration, tc.want)
			}
			if d.IsSet() != tc.isSet {
				t.Fatalf("IsSet mismatch: got %t want %t", d.IsSet(), tc.isSet)
			}
		})
	}
}

func TestDurationUnmarshalTextInvalid(t *testing.T) {
	var d Duration
	err := d.UnmarshalText([]byte("not-a-duration"))
	if err == nil {
		t.Fatalf("invalid duration accepted")
	}
	if !strings.Contains(err.Error(), "invalid duration") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDurationIsSetZeroValue(t *testing.T) {
	var d Duration
	if d.IsSet() {
		t.Fatalf("zero value should not report set")
	}
}

func TestApplyDefaultsCaptureFlags(t *testing.T) {
	off := false
	m := &Manifest{
		Tasks: map[string]*TaskSpec{
			"a": {Command: []string{"true"}},
			"b": {Command: []string{"true"}, CaptureStdout: &off},
		},
	}
	if err := m.ApplyDefaults(); err != nil {
		t.Fatalf("ApplyDefaults returned error: %v", err)
	}
	if a := m.Tasks["a"]; a.CaptureStdout == nil || !*a.CaptureStdout || a.CaptureStderr == nil || !*a.CaptureStderr {
		t.Fatalf("capture flags should default to true")
	}
	if b := m.Tasks["b"]; b.CaptureStdout == nil || *b.CaptureStdout {
		t.Fatalf("explicit capture flag overridden")
	}
}

func TestValidateTaskErrors(t *testing.T) {
	cases := []struct {
		name string
		m    *Manifest
		want string
	}{
		{
			name: "nil task",
			m:    &Manifest{Tasks: map[string]*TaskSpec{"a": nil}},
			want: "empty definition",
		},
		{
			name: "empty executable",
			m:    &Manifest{Tasks: map[string]*TaskSpec{"a": {Command: []string{""}}}},
			want: "executable is empty",
		},
		{
			name: "negative timeout",
			m: &Manifest{Tasks: map[string]*TaskSpec{"a": {
				Command: []string{"true"},
				Timeout: Duration{Duration: -time.Second},
			}}},
			want: "timeout must not be negative",
		},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			err := tc.m.Validate()
			if err == nil {
				t.Fatalf("Validate returned nil error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("unexpected error: got %q want substring %q", err, tc.want)
			}
		})
	}
}

func TestTaskNamesSorted(t *testing.T) {
	m := &Manifest{Tasks: map[string]*TaskSpec{
		"zeta":  {Command: []string{"true"}},
		"alpha": {Command: []string{"true"}},
		"mid":   {Command: []string{"true"}},
	}}
	got := m.TaskNames()
	want := []string{"alpha", "mid", "zeta"}
	if len(got) != len(want) {
		t.Fatalf("unexpected names: %#v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("names not sorted: got %#v want %#v", got, want)
		}
	}
}
