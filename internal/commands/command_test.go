package commands

import (
	"errors"
	"testing"

	"github.com/sandeepkv93/daybook/internal/model"
)

func TestParseSupportedCommands(t *testing.T) {
	cases := []struct {
		in       string
		typeWant Type
	}{
		{"/add pay rent", TypeAdd},
		{"remind monthly 2024-01-31 pay rent", TypeRemind},
		{"bookmark https://go.dev read later", TypeBookmark},
		{"done 42", TypeDone},
		{"ADVANCE abc", TypeAdvance},
		{"note weekly plan", TypeNote},
	}

	for _, tc := range cases {
		cmd, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", tc.in, err)
		}
		if cmd.Type != tc.typeWant {
			t.Fatalf("parse %q type = %s, want %s", tc.in, cmd.Type, tc.typeWant)
		}
	}
}

func TestParseRemindArguments(t *testing.T) {
	cmd, err := Parse("remind Yearly 2024-02-29 leap day party")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	r := cmd.Remind
	if r.Cycle != model.CycleYearly {
		t.Fatalf("cycle = %s", r.Cycle)
	}
	if r.Target.String() != "2024-02-29" {
		t.Fatalf("target = %s", r.Target)
	}
	if r.Content != "leap day party" {
		t.Fatalf("content = %q", r.Content)
	}
}

func TestParseRemindRejectsBadInput(t *testing.T) {
	cases := []struct {
		in   string
		want error
	}{
		{"remind hourly 2024-01-01 x", model.ErrUnknownCycle},
		{"remind daily 01/01/2024 x", model.ErrInvalidDateFormat},
		{"remind daily 2024-01-01", nil},
	}
	for _, tc := range cases {
		_, err := Parse(tc.in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeInvalidArgument {
			t.Fatalf("parse %q: expected invalid argument, got %v", tc.in, err)
		}
		if tc.want != nil && !errors.Is(err, tc.want) {
			t.Fatalf("parse %q: expected %v in chain, got %v", tc.in, tc.want, err)
		}
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		in   string
		code ErrorCode
	}{
		{"", ErrCodeEmptyInput},
		{"  / ", ErrCodeEmptyInput},
		{"/unknown do x", ErrCodeUnknownCommand},
		{"add", ErrCodeInvalidArgument},
		{"done", ErrCodeInvalidArgument},
		{"done a b", ErrCodeInvalidArgument},
		{"bookmark", ErrCodeInvalidArgument},
		{"note   ", ErrCodeInvalidArgument},
	}
	for _, tc := range cases {
		_, err := Parse(tc.in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != tc.code {
			t.Fatalf("parse %q: expected %s, got %v", tc.in, tc.code, err)
		}
	}
}

func TestExecuteDispatch(t *testing.T) {
	cmd, err := Parse("/bookmark https://pkg.go.dev std docs")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	called := false
	res, err := Execute(cmd, Handlers{
		Bookmark: func(a BookmarkArgs) (Result, error) {
			called = true
			if a.URL != "https://pkg.go.dev" || a.Comment != "std docs" {
				t.Fatalf("unexpected args: %+v", a)
			}
			return Result{Message: "ok"}, nil
		},
	})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !called || res.Message != "ok" {
		t.Fatalf("dispatch failed, called=%v res=%+v", called, res)
	}
}

func TestExecuteMissingHandler(t *testing.T) {
	cmd, err := Parse("advance r1")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	_, err = Execute(cmd, Handlers{})
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeHandlerMissing {
		t.Fatalf("expected missing handler error, got %v", err)
	}
}
