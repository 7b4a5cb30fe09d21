package prompt

import (
	"bytes"
	"context"
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/dshills/healthcheck/internal/audit"
)

func testBank() *audit.Bank {
	return &audit.Bank{
		Name: "tiny",
		Questions: []audit.Question{
			{ID: 1, Text: "Backups?", Options: []audit.Option{
				{Text: "none"}, {Text: "nightly", Points: 10}, {Text: "no servers", NA: true},
			}},
			{ID: 2, Text: "Restores tested?", Options: []audit.Option{
				{Text: "no"}, {Text: "yes", Points: 10},
			}},
			{ID: 5, Text: "Runbooks?", Options: []audit.Option{
				{Text: "no"}, {Text: "yes", Points: 10},
			}},
		},
	}
}

func TestFormatQuestion(t *testing.T) {
	q := testBank().Questions[0]
	got := FormatQuestion(q, 1, 3)
	want := "[1/3] Backups?\n  1) none\n  2) nightly\n  3) no servers (not applicable)\n"
	if got != want {
		t.Errorf("FormatQuestion() =\n%s\nwant\n%s", got, want)
	}
}

func TestParseSelection(t *testing.T) {
	q := testBank().Questions[0]
	tests := []struct {
		input   string
		index   int
		skip    bool
		wantErr bool
	}{
		{"1", 0, false, false},
		{" 3 ", 2, false, false},
		{"", 0, true, false},
		{"s", 0, true, false},
		{"SKIP", 0, true, false},
		{"0", 0, false, true},
		{"4", 0, false, true},
		{"two", 0, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			idx, skip, err := ParseSelection(tt.input, q)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if idx != tt.index || skip != tt.skip {
				t.Errorf("got (%d, %v), want (%d, %v)", idx, skip, tt.index, tt.skip)
			}
		})
	}

	if _, _, err := ParseSelection("Q", q); !errors.Is(err, ErrQuit) {
		t.Errorf("expected ErrQuit, got %v", err)
	}
}

func TestRun(t *testing.T) {
	tests := []struct {
		name  string
		input string
		opts  Options
		want  audit.AnswerSet
	}{
		{"all answered", "2\n1\n2\n", Options{}, audit.AnswerSet{1: 1, 2: 0, 5: 1}},
		{"skip middle", "3\n\n1\n", Options{}, audit.AnswerSet{1: 2, 5: 0}},
		{"retry after bad input", "9\nx\n2\n2\n2\n", Options{}, audit.AnswerSet{1: 1, 2: 1, 5: 1}},
		{"retries exhausted", "9\n9\n9\n1\n1\n", Options{}, audit.AnswerSet{2: 0, 5: 0}},
		{"custom retries", "9\n1\n1\n", Options{MaxRetries: 1}, audit.AnswerSet{2: 0, 5: 0}},
		{"quit keeps answers", "1\nq\n", Options{}, audit.AnswerSet{1: 0}},
		{"eof keeps answers", "1\n", Options{}, audit.AnswerSet{1: 0}},
		{"start kept on skip", "\n\n\n", Options{Start: audit.AnswerSet{2: 1}}, audit.AnswerSet{2: 1}},
		{"start overridden", "\n1\n\n", Options{Start: audit.AnswerSet{2: 1}}, audit.AnswerSet{2: 0}},
		{"skip answered", "2\n2\n", Options{Start: audit.AnswerSet{1: 0}, SkipAnswered: true}, audit.AnswerSet{1: 0, 2: 1, 5: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := Run(context.Background(), strings.NewReader(tt.input), &out, testBank(), tt.opts)
			if err != nil {
				t.Fatalf("Run: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("answers = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRunOutput(t *testing.T) {
	var out bytes.Buffer
	_, err := Run(context.Background(), strings.NewReader("7\n1\n"), &out, testBank(), Options{Start: audit.AnswerSet{1: 1}})
	if err != nil {
		t.Fatal(err)
	}
	s := out.String()
	for _, want := range []string{"[1/3] Backups?", "(current: 2) nightly", "choose 1-3", "[2/3] Restores tested?"} {
		if !strings.Contains(s, want) {
			t.Errorf("output missing %q:\n%s", want, s)
		}
	}
}

func TestRunDoesNotMutateStart(t *testing.T) {
	start := audit.AnswerSet{1: 0}
	if _, err := Run(context.Background(), strings.NewReader("2\n"), &bytes.Buffer{}, testBank(), Options{Start: start}); err != nil {
		t.Fatal(err)
	}
	if start[1] != 0 || len(start) != 1 {
		t.Errorf("start mutated: %v", start)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	got, err := Run(ctx, strings.NewReader("1\n1\n1\n"), &bytes.Buffer{}, testBank(), Options{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no answers, got %v", got)
	}
}

func TestRunCancelWhileWaitingForInput(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	type result struct {
		set audit.AnswerSet
		err error
	}
	done := make(chan result, 1)
	go func() {
		set, err := Run(ctx, pr, io.Discard, testBank(), Options{Start: audit.AnswerSet{2: 1}})
		done <- result{set, err}
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case r := <-done:
		if !errors.Is(r.err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", r.err)
		}
		if !reflect.DeepEqual(r.set, audit.AnswerSet{2: 1}) {
			t.Errorf("answers = %v, want the start answers", r.set)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel while blocked on input")
	}
}
