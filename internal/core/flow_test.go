package core

import (
	"log/slog"
	"testing"

	"github.com/JonMunkholm/ddport/internal/ddp"
	"github.com/JonMunkholm/ddport/internal/ddp/ddptest"
)

func newTestFlow(t *testing.T, opts ...FlowOption) *Flow {
	t.Helper()
	p := testPlatform()
	opts = append([]FlowOption{WithLogger(quietLogger())}, opts...)
	return NewFlow(&p, "sess1", opts...)
}

func mustNext(t *testing.T, f *Flow, resp Response) Command {
	t.Helper()
	cmd, ok := f.Next(resp)
	if !ok {
		t.Fatalf("Next(%v) returned no command in state %s", resp.Kind, f.State())
	}
	return cmd
}

func promptOf(t *testing.T, cmd Command) Prompt {
	t.Helper()
	page, ok := cmd.(Page)
	if !ok {
		t.Fatalf("command = %T, want Page", cmd)
	}
	return page.Prompt
}

func expectTail(t *testing.T, f *Flow, resp Response) {
	t.Helper()
	exit, ok := mustNext(t, f, resp).(Exit)
	if !ok {
		t.Fatalf("expected Exit")
	}
	if exit.Code != ExitSuccess || exit.Info != "Success" {
		t.Errorf("Exit = %+v, want {0 Success}", exit)
	}
	if _, ok := mustNext(t, f, Void()).(EndPage); !ok {
		t.Fatalf("expected EndPage")
	}
	if cmd, ok := f.Next(Void()); ok {
		t.Errorf("Next after end page = %v, want none", cmd)
	}
	if !f.Done() {
		t.Error("Done() = false after end page")
	}
}

func TestFlow_ValidArchive(t *testing.T) {
	zip := ddptest.WriteZip(t,
		ddptest.File{Name: "TikTok_Data/Comments/Comments.txt", Body: commentsTxt},
		ddptest.File{Name: "TikTok_Data/Follower.txt", Body: "Date: 2024-01-01\n"},
	)
	f := newTestFlow(t)

	first := mustNext(t, f, Response{})
	fp, ok := promptOf(t, first).(FilePrompt)
	if !ok {
		t.Fatalf("first prompt = %T, want FilePrompt", promptOf(t, first))
	}
	if fp.Extensions != "application/zip" {
		t.Errorf("Extensions = %q", fp.Extensions)
	}
	if h := first.(Page).Header.Text("en"); h != "Select your file" {
		t.Errorf("header = %q", h)
	}

	review := mustNext(t, f, String(zip))
	cp, ok := promptOf(t, review).(ConsentPrompt)
	if !ok {
		t.Fatalf("prompt after valid file = %T, want ConsentPrompt", promptOf(t, review))
	}
	if cp.ID != "sess1-testplatform" {
		t.Errorf("consent ID = %q", cp.ID)
	}
	if len(cp.Tables) != 1 || cp.Tables[0].Name != "test_comments" {
		t.Fatalf("tables = %+v, want only test_comments", cp.Tables)
	}
	if got := cp.Tables[0].Len(); got != 2 {
		t.Errorf("comment rows = %d, want 2", got)
	}
	if !f.Validation().Valid() {
		t.Errorf("Validation() = %+v", f.Validation())
	}

	expectTail(t, f, JSON(`{"consent":true}`))

	c, ok := f.Consent()
	if !ok || c.Value != `{"consent":true}` {
		t.Errorf("Consent() = %+v, %v", c, ok)
	}
}

func TestFlow_ValidArchiveWithoutData(t *testing.T) {
	zip := ddptest.WriteZip(t,
		ddptest.File{Name: "Comments.txt", Body: "nothing to see\n"},
		ddptest.File{Name: "Follower.txt", Body: "Date: 2024-01-01\n"},
	)
	f := newTestFlow(t)
	mustNext(t, f, Response{})

	cp, ok := promptOf(t, mustNext(t, f, String(zip))).(ConsentPrompt)
	if !ok {
		t.Fatal("valid archive without parseable data should still reach review")
	}
	if len(cp.Tables) != 0 {
		t.Errorf("tables = %d, want 0", len(cp.Tables))
	}
	expectTail(t, f, Void())
}

func TestFlow_RetryPaths(t *testing.T) {
	tests := []struct {
		name   string
		answer Response
		retry  bool
	}{
		{"confirm retry", Bool(true), true},
		{"decline retry", Bool(false), false},
		{"void ends flow", Void(), false},
		{"string ends flow", String("x"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestFlow(t)
			mustNext(t, f, Response{})

			notZip := ddptest.WriteFile(t, "notes.zip", "not a zip")
			rp, ok := promptOf(t, mustNext(t, f, String(notZip))).(RetryPrompt)
			if !ok {
				t.Fatal("expected RetryPrompt for bad zip")
			}
			if f.Validation().StatusCode != ddp.StatusBadZip {
				t.Errorf("status = %d, want %d", f.Validation().StatusCode, ddp.StatusBadZip)
			}
			if rp.Ok.Text("en") != "Try again" || rp.Cancel.Text("nl") != "Verder" {
				t.Errorf("retry buttons = %v / %v", rp.Ok.Map(), rp.Cancel.Map())
			}

			if !tt.retry {
				expectTail(t, f, tt.answer)
				return
			}
			if _, ok := promptOf(t, mustNext(t, f, tt.answer)).(FilePrompt); !ok {
				t.Fatal("retry should prompt for a file again")
			}
			expectTail(t, f, Void())
		})
	}
}

func TestFlow_SkipAtFileSelection(t *testing.T) {
	for _, resp := range []Response{Void(), Bool(false), Bool(true), JSON("{}")} {
		t.Run(resp.Kind.String(), func(t *testing.T) {
			f := newTestFlow(t)
			mustNext(t, f, Response{})
			expectTail(t, f, resp)
			if len(f.Tables()) != 0 {
				t.Error("skipped flow has tables")
			}
		})
	}
}

func TestFlow_NonValidStatusesRetry(t *testing.T) {
	for _, code := range []int{ddp.StatusNotValid, ddp.StatusBadZip, ddp.StatusUnsupportedFiletype} {
		f := newTestFlow(t,
			WithValidator(constValidator(code)),
			WithExtractor(func(string, []DisplaySpec, *slog.Logger) []Table {
				t.Fatal("extractor called for invalid archive")
				return nil
			}),
		)
		mustNext(t, f, Response{})
		if _, ok := promptOf(t, mustNext(t, f, String("any.zip"))).(RetryPrompt); !ok {
			t.Errorf("status %d: expected RetryPrompt", code)
		}
	}
}

func TestFlow_RetryClearsPreviousAttempt(t *testing.T) {
	calls := 0
	validator := func(m []ddp.Manifest, p string) ddp.ValidationResult {
		calls++
		if calls == 1 {
			return ddp.ValidationResult{StatusCode: ddp.StatusNotValid, Description: "Not a valid DDP"}
		}
		return ddp.ValidationResult{StatusCode: ddp.StatusValid}
	}
	extractor := func(string, []DisplaySpec, *slog.Logger) []Table {
		return []Table{{Name: "t"}}
	}
	f := newTestFlow(t, WithValidator(validator), WithExtractor(extractor))

	mustNext(t, f, Response{})
	mustNext(t, f, String("a.zip"))
	if f.Validation().StatusCode != ddp.StatusNotValid {
		t.Fatalf("first attempt status = %d", f.Validation().StatusCode)
	}

	mustNext(t, f, Bool(true))
	if f.Validation().StatusCode != 0 || f.Validation().Description != "" {
		t.Errorf("validation not cleared on retry: %+v", f.Validation())
	}

	cp, ok := promptOf(t, mustNext(t, f, String("b.zip"))).(ConsentPrompt)
	if !ok || len(cp.Tables) != 1 {
		t.Fatalf("second attempt = %+v", cp)
	}
}

func TestFlow_TablesIsCopy(t *testing.T) {
	f := newTestFlow(t,
		WithValidator(constValidator(ddp.StatusValid)),
		WithExtractor(func(string, []DisplaySpec, *slog.Logger) []Table {
			return []Table{{Name: "a"}, {Name: "b"}}
		}),
	)
	mustNext(t, f, Response{})
	mustNext(t, f, String("x.zip"))

	tables := f.Tables()
	tables[0].Name = "changed"
	if f.Tables()[0].Name != "a" {
		t.Error("Tables() exposes internal slice")
	}
}
