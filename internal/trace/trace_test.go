package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestLevelRecords(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelError, ScopeDriver, false},
		{LevelPhase, ScopePass, true},
		{LevelPhase, ScopeModule, false},
		{LevelDetail, ScopeModule, true},
		{LevelDetail, ScopeNode, false},
		{LevelDebug, ScopeNode, true},
	}
	for _, tt := range tests {
		if got := tt.level.Records(tt.scope); got != tt.want {
			t.Errorf("%s.Records(%s) = %v, want %v", tt.level, tt.scope, got, tt.want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	for _, s := range []string{"off", "error", "phase", "detail", "DEBUG"} {
		if _, err := ParseLevel(s); err != nil {
			t.Errorf("ParseLevel(%q): %v", s, err)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("ParseLevel(loud) should fail")
	}
}

func TestStreamTextFiltersByScope(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatText)

	root := Begin(tr, ScopePass, "check", 0)
	mod := Begin(tr, ScopeModule, "check main", root.ID())
	mod.End("")
	root.WithExtra("modules", "1").End("ok")

	out := buf.String()
	if strings.Contains(out, "check main") {
		t.Fatalf("module span leaked at phase level:\n%s", out)
	}
	if !strings.Contains(out, "→ check\n") {
		t.Fatalf("missing begin line:\n%s", out)
	}
	if !strings.Contains(out, "(ok) {modules=1}") {
		t.Fatalf("missing end detail:\n%s", out)
	}
}

func TestStreamNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatNDJSON)
	sp := Begin(tr, ScopeDriver, "build", 0)
	sp.End("")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	var ev jsonEvent
	if err := json.Unmarshal([]byte(lines[1]), &ev); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if ev.Kind != "end" || ev.Name != "build" || ev.Scope != "driver" {
		t.Fatalf("unexpected event %+v", ev)
	}
}

func TestRingKeepsNewest(t *testing.T) {
	r := NewRingTracer(3, LevelDebug)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		Point(r, ScopePass, name, "", 0)
	}
	got := r.Snapshot()
	if len(got) != 3 {
		t.Fatalf("got %d events", len(got))
	}
	for i, want := range []string{"c", "d", "e"} {
		if got[i].Name != want {
			t.Errorf("event %d = %s, want %s", i, got[i].Name, want)
		}
	}
}

func TestRingRecordsModulesAtErrorLevel(t *testing.T) {
	r := NewRingTracer(8, LevelError)
	Begin(r, ScopeModule, "parse a", 0).End("")
	Begin(r, ScopeNode, "stmt", 0).End("")
	if n := len(r.Snapshot()); n != 2 {
		t.Fatalf("got %d events, want 2", n)
	}
	var buf bytes.Buffer
	if err := r.Dump(&buf, FormatText); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "parse a") {
		t.Fatalf("dump:\n%s", buf.String())
	}
}

func TestNewOff(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil {
		t.Fatal(err)
	}
	if tr.Enabled() {
		t.Fatal("off tracer is enabled")
	}
	sp := Begin(tr, ScopePass, "x", 0)
	if sp.ID() != 0 || sp.End("") != 0 {
		t.Fatal("span on a disabled tracer recorded something")
	}
}

func TestNewBothHasRing(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &buf})
	if err != nil {
		t.Fatal(err)
	}
	Begin(tr, ScopePass, "link", 0).End("")
	ring := RingOf(tr)
	if ring == nil {
		t.Fatal("no ring behind ModeBoth")
	}
	if len(ring.Snapshot()) != 2 || !strings.Contains(buf.String(), "link") {
		t.Fatal("events did not reach both tracers")
	}
}

func TestContext(t *testing.T) {
	ctx := context.Background()
	if FromContext(ctx) != Nop {
		t.Fatal("empty context should give Nop")
	}
	r := NewRingTracer(4, LevelDebug)
	ctx = WithTracer(ctx, r)
	if FromContext(ctx) != Tracer(r) {
		t.Fatal("tracer not propagated")
	}
	ctx = WithSpanContext(ctx, SpanContext{SpanID: 7})
	if CurrentSpan(ctx).SpanID != 7 {
		t.Fatal("span not propagated")
	}
}
