package internal

import (
	"encoding/json"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/dshills/healthcheck/internal/answers"
	"github.com/dshills/healthcheck/internal/audit"
	"github.com/dshills/healthcheck/internal/bank"
	"github.com/dshills/healthcheck/internal/render"
	"github.com/dshills/healthcheck/internal/schema"
)

func projectRoot() string {
	_, filename, _, _ := runtime.Caller(0)
	return filepath.Dir(filepath.Dir(filename))
}

func loadXero(t *testing.T) *audit.Bank {
	t.Helper()
	b, err := bank.LoadBuiltin("xero")
	if err != nil {
		t.Fatalf("load bank: %v", err)
	}
	return b
}

func TestPipelineMixedAnswers(t *testing.T) {
	b := loadXero(t)
	if errs := schema.Validate(b); len(errs) > 0 {
		t.Fatalf("bank invalid: %v", errs)
	}

	af, err := answers.Load(filepath.Join(projectRoot(), "testdata", "answers", "mixed.yaml"))
	if err != nil {
		t.Fatalf("load answers: %v", err)
	}
	if errs := schema.ValidateAnswers(b, af.Answers); len(errs) > 0 {
		t.Fatalf("answers invalid: %v", errs)
	}

	totals := audit.Score(b, af.Answers)
	if totals.Earned != 40 || totals.Achievable != 70 {
		t.Errorf("totals = %d/%d, want 40/70", totals.Earned, totals.Achievable)
	}

	rep := &audit.Report{
		Tool:      "healthcheck",
		Input:     audit.Input{Bank: b.Name, BankTitle: b.Title, AnswersHash: af.Hash},
		Progress:  audit.ComputeProgress(b, af.Answers),
		Result:    audit.ComputeResult(b, af.Answers),
		Breakdown: audit.ComputeBreakdown(b, af.Answers),
	}
	if rep.Result.Percentage != 57 || rep.Result.Tier != "SPREADSHEET_SURVIVOR" {
		t.Errorf("result = %d%% %s", rep.Result.Percentage, rep.Result.Tier)
	}
	if rep.Breakdown[4].Status != audit.StatusNA {
		t.Errorf("question 5 status = %s, want NA", rep.Breakdown[4].Status)
	}

	data, err := json.Marshal(rep)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back audit.Report
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Result != rep.Result {
		t.Errorf("result changed through JSON: %+v", back.Result)
	}

	md := render.Markdown(rep)
	if !strings.Contains(md, "[Get a Xero Tune-Up](https://nurture.kiwi/virtual-cfo/)") {
		t.Errorf("markdown missing call to action:\n%s", md)
	}
	console := render.Console(rep, render.ConsoleOptions{})
	if !strings.Contains(console, "57%") {
		t.Errorf("console missing score:\n%s", console)
	}
}

func TestPipelineDeterministic(t *testing.T) {
	b := loadXero(t)
	set := audit.AnswerSet{1: 3, 2: 2, 3: 1, 6: 3, 8: 1}
	first, err := json.Marshal(audit.ComputeResult(b, set))
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 20; i++ {
		again, _ := json.Marshal(audit.ComputeResult(b, set))
		if string(again) != string(first) {
			t.Fatalf("run %d differs:\n%s\n%s", i, again, first)
		}
	}
	h1, _ := bank.Hash(b)
	h2, _ := bank.Hash(loadXero(t))
	if h1 != h2 {
		t.Errorf("bank hash not stable: %s vs %s", h1, h2)
	}
}
