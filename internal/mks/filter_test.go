package mks

import (
	"fmt"
	"testing"
	"time"

	"pgregory.net/rapid"
)

func cycleWindow() (time.Time, time.Time) {
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
}

func scenarioMods() []Modification {
	return []Modification{
		{Type: ModificationModified, FileName: "in.c", ModifiedTime: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)},
		{Type: ModificationModified, FileName: "old.c", ModifiedTime: time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)},
		{Type: ModificationDeleted, FileName: "gone.c", ModifiedTime: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
}

func TestFilterTimeframe_Scenario(t *testing.T) {
	from, to := cycleWindow()
	got := FilterTimeframe(scenarioMods(), from, to)

	if len(got) != 2 {
		t.Fatalf("kept %d, expected 2", len(got))
	}
	if got[0].FileName != "in.c" || got[1].FileName != "gone.c" {
		t.Fatalf("kept %q, %q; expected in.c, gone.c", got[0].FileName, got[1].FileName)
	}
}

func TestFilterTimeframe_InclusiveBounds(t *testing.T) {
	from, to := cycleWindow()
	mods := []Modification{
		{Type: ModificationModified, FileName: "from", ModifiedTime: from},
		{Type: ModificationAdded, FileName: "to", ModifiedTime: to},
		{Type: ModificationAdded, FileName: "after", ModifiedTime: to.Add(time.Nanosecond)},
		{Type: ModificationAdded, FileName: "before", ModifiedTime: from.Add(-time.Nanosecond)},
	}
	got := FilterTimeframe(mods, from, to)
	if len(got) != 2 || got[0].FileName != "from" || got[1].FileName != "to" {
		t.Fatalf("kept %#v, expected bounds only", got)
	}
}

func TestFilterPolicy(t *testing.T) {
	from, to := cycleWindow()

	tests := []struct {
		name       string
		checkpoint bool
		wantPolicy FilterPolicy
		wantKept   int
	}{
		{name: "timestamp", checkpoint: false, wantPolicy: FilterByTimestamp, wantKept: 2},
		{name: "checkpoint", checkpoint: true, wantPolicy: FilterByCheckpoint, wantKept: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			s.CheckpointOnSuccess = tt.checkpoint
			policy := PolicyFor(s)
			if policy != tt.wantPolicy {
				t.Fatalf("PolicyFor = %v, want %v", policy, tt.wantPolicy)
			}
			if got := policy.Apply(scenarioMods(), from, to); len(got) != tt.wantKept {
				t.Fatalf("kept %d, want %d", len(got), tt.wantKept)
			}
		})
	}
}

func TestPathFilter(t *testing.T) {
	f := PathFilter{Include: []string{"src/**"}, Exclude: []string{"**/*_gen.c"}}

	tests := []struct {
		path string
		want bool
	}{
		{path: "src/main.c", want: true},
		{path: "src/deep/a.c", want: true},
		{path: `src\win\b.c`, want: true},
		{path: "src/deep/parser_gen.c", want: false},
		{path: "docs/readme.txt", want: false},
	}
	for _, tt := range tests {
		if got := f.Matches(tt.path); got != tt.want {
			t.Fatalf("Matches(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}

	if err := (PathFilter{Include: []string{"src/[a-"}}).Validate(); err == nil {
		t.Fatalf("expected invalid pattern error")
	}
}

// --- Generators ---

func genModifications() *rapid.Generator[[]Modification] {
	return rapid.Custom(func(t *rapid.T) []Modification {
		count := rapid.IntRange(0, 50).Draw(t, "count")
		base := time.Date(2023, 12, 25, 0, 0, 0, 0, time.UTC)
		types := []ModificationType{ModificationAdded, ModificationModified, ModificationDeleted}
		mods := make([]Modification, count)
		for i := range mods {
			hours := rapid.IntRange(0, 24*14).Draw(t, fmt.Sprintf("hour%d", i))
			mods[i] = Modification{
				Type:         rapid.SampledFrom(types).Draw(t, fmt.Sprintf("type%d", i)),
				FileName:     fmt.Sprintf("f%d.c", i),
				ModifiedTime: base.Add(time.Duration(hours) * time.Hour),
			}
		}
		return mods
	})
}

// --- Property Tests ---

func TestRapidFilterTimeframe_KeepsDeletions(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		from, to := cycleWindow()
		mods := genModifications().Draw(t, "mods")

		kept := FilterTimeframe(mods, from, to)

		keptNames := make(map[string]bool, len(kept))
		for _, m := range kept {
			keptNames[m.FileName] = true
		}
		for _, m := range mods {
			if m.IsDeleted() && !keptNames[m.FileName] {
				t.Fatalf("deletion %s was dropped", m.FileName)
			}
		}
	})
}

func TestRapidFilterTimeframe_OrderedSubsequence(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		from, to := cycleWindow()
		mods := genModifications().Draw(t, "mods")

		kept := FilterTimeframe(mods, from, to)

		j := 0
		for _, m := range mods {
			if j < len(kept) && kept[j].FileName == m.FileName {
				j++
			}
		}
		if j != len(kept) {
			t.Fatalf("kept is not an ordered subsequence of the input")
		}
		for _, m := range kept {
			if !m.IsDeleted() && !InTimeframe(m.ModifiedTime, from, to) {
				t.Fatalf("%s at %v kept outside window", m.FileName, m.ModifiedTime)
			}
		}
	})
}

func TestRapidCheckpointPolicy_Identity(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		from, to := cycleWindow()
		mods := genModifications().Draw(t, "mods")

		got := FilterByCheckpoint.Apply(mods, from, to)
		if len(got) != len(mods) {
			t.Fatalf("checkpoint policy returned %d of %d", len(got), len(mods))
		}
	})
}
