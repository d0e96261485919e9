package main

import (
	"errors"
	"testing"

	"github.com/golang-migrate/migrate/v4"

	"financas/internal/logger"
)

func init() {
	logger.Init("test")
}

type fakeSchema struct {
	upErr      error
	stepsErr   error
	steps      []int
	upCalls    int
	version    uint
	dirty      bool
	versionErr error
}

func (f *fakeSchema) Up() error {
	f.upCalls++
	return f.upErr
}

func (f *fakeSchema) Steps(n int) error {
	f.steps = append(f.steps, n)
	return f.stepsErr
}

func (f *fakeSchema) Version() (uint, bool, error) {
	return f.version, f.dirty, f.versionErr
}

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    command
		wantErr bool
	}{
		{name: "up", args: []string{"up"}, want: command{Name: "up"}},
		{name: "down_defaults_to_one", args: []string{"down"}, want: command{Name: "down", Steps: 1}},
		{name: "down_n", args: []string{"down", "3"}, want: command{Name: "down", Steps: 3}},
		{name: "version", args: []string{"version"}, want: command{Name: "version"}},
		{name: "no_args", args: nil, wantErr: true},
		{name: "unknown", args: []string{"seed"}, wantErr: true},
		{name: "down_zero", args: []string{"down", "0"}, wantErr: true},
		{name: "down_not_a_number", args: []string{"down", "all"}, wantErr: true},
		{name: "up_extra_arg", args: []string{"up", "2"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseArgs(tt.args)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestExecute(t *testing.T) {
	t.Run("up_without_changes_succeeds", func(t *testing.T) {
		s := &fakeSchema{upErr: migrate.ErrNoChange}
		if err := execute(s, command{Name: "up"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.upCalls != 1 {
			t.Errorf("expected one Up call, got %d", s.upCalls)
		}
	})

	t.Run("up_failure_is_returned", func(t *testing.T) {
		boom := errors.New("boom")
		err := execute(&fakeSchema{upErr: boom}, command{Name: "up"})
		if !errors.Is(err, boom) {
			t.Fatalf("expected wrapped error, got %v", err)
		}
	})

	t.Run("down_rolls_back_n_steps", func(t *testing.T) {
		s := &fakeSchema{}
		if err := execute(s, command{Name: "down", Steps: 2}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(s.steps) != 1 || s.steps[0] != -2 {
			t.Errorf("expected Steps(-2), got %v", s.steps)
		}
	})

	t.Run("version_on_empty_database", func(t *testing.T) {
		if err := execute(&fakeSchema{versionErr: migrate.ErrNilVersion}, command{Name: "version"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}
