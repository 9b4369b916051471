package mks

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestEnricher_SkipsDeleted(t *testing.T) {
	inv := NewRecordingInvoker().On("memberinfo", Response{Stdout: memberInfoXML("amy", "c", "2024-01-01T00:00:00Z", "1.4")})
	e := &Enricher{Invoker: inv, Settings: testSettings("/sb")}

	mods := []Modification{
		{Type: ModificationDeleted, FileName: "a"},
		{Type: ModificationAdded, FileName: "b"},
		{Type: ModificationDeleted, FileName: "c"},
	}
	if err := e.Enrich(context.Background(), mods); err != nil {
		t.Fatalf("Enrich: %v", err)
	}
	if len(inv.Calls()) != 1 {
		t.Fatalf("calls = %d, expected 1", len(inv.Calls()))
	}
	if mods[1].Version != "1.4" || mods[0].Version != "" || mods[2].Version != "" {
		t.Fatalf("mods = %#v", mods)
	}
}

func TestEnricher_Workers(t *testing.T) {
	for _, workers := range []int{0, 1, 4, 16} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			inv := NewRecordingInvoker().On("memberinfo", Response{Stdout: memberInfoXML("amy", "c", "2024-01-01T00:00:00Z", "2.0")})
			e := &Enricher{Invoker: inv, Settings: testSettings("/sb"), Workers: workers}

			mods := make([]Modification, 25)
			for i := range mods {
				mods[i] = Modification{Type: ModificationModified, FileName: fmt.Sprintf("f%d.c", i)}
			}
			mods[3].Type = ModificationDeleted

			if err := e.Enrich(context.Background(), mods); err != nil {
				t.Fatalf("Enrich: %v", err)
			}
			if got := len(inv.CallsTo("memberinfo")); got != 24 {
				t.Fatalf("memberinfo calls = %d, expected 24", got)
			}
			seen := make(map[string]int)
			for _, c := range inv.Calls() {
				seen[c.Args[len(c.Args)-1]]++
			}
			for path, n := range seen {
				if n != 1 {
					t.Fatalf("%s queried %d times", path, n)
				}
			}
			for i, m := range mods {
				if (i == 3) != (m.Version == "") {
					t.Fatalf("mods[%d] = %#v", i, m)
				}
			}
		})
	}
}

func TestEnricher_StopsOnError(t *testing.T) {
	inv := NewRecordingInvoker().On("memberinfo", Response{ExitCode: 1, Stderr: "member not found"})
	e := &Enricher{Invoker: inv, Settings: testSettings("/sb")}

	mods := []Modification{
		{Type: ModificationModified, FileName: "a"},
		{Type: ModificationModified, FileName: "b"},
	}
	err := e.Enrich(context.Background(), mods)
	var invErr *InvocationError
	if !errors.As(err, &invErr) {
		t.Fatalf("err = %v, want InvocationError", err)
	}
	if len(inv.Calls()) != 1 {
		t.Fatalf("calls = %d, expected sequential enrichment to stop after 1", len(inv.Calls()))
	}
}
