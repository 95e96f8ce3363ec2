package main

import (
	"errors"
	"testing"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		args    []string
		want    command
		wantErr bool
	}{
		{args: []string{"up"}, want: command{name: "up"}},
		{args: []string{"DOWN"}, want: command{name: "down", steps: 1}},
		{args: []string{"down", "3"}, want: command{name: "down", steps: 3}},
		{args: []string{"down", "0"}, wantErr: true},
		{args: []string{"migrate", "2"}, want: command{name: "goto", target: 2}},
		{args: []string{"goto"}, wantErr: true},
		{args: []string{"force", "1"}, want: command{name: "force", force: 1}},
		{args: []string{"force", "x"}, wantErr: true},
	}
	for _, tt := range tests {
		got, err := parseCommand(tt.args)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("parseCommand(%v) expected error", tt.args)
			}
			continue
		}
		if err != nil {
			t.Fatalf("parseCommand(%v): %v", tt.args, err)
		}
		if got != tt.want {
			t.Fatalf("parseCommand(%v)=%+v want=%+v", tt.args, got, tt.want)
		}
	}
}

func TestParseCommand_Unknown(t *testing.T) {
	if _, err := parseCommand([]string{"sideways"}); !errors.Is(err, errUsage) {
		t.Fatalf("expected usage error, got %v", err)
	}
}
