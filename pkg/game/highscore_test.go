package game

import (
	"os"
	"testing"

	"github.com/quasilyte/gdata/v2"
)

func TestDefaultHighScoreTable(t *testing.T) {
	table := DefaultHighScoreTable()
	if len(table.Records) != HighScoreTableSize {
		t.Fatalf("got %d records, want %d", len(table.Records), HighScoreTableSize)
	}
	for i, r := range table.Records {
		if r.Rank != i+1 {
			t.Errorf("record %d has rank %d", i, r.Rank)
		}
	}
}

func TestInsertRanks(t *testing.T) {
	tests := []struct {
		name  string
		score int
		want  int
	}{
		{"new top score", 1_000_000, 0},
		{"ties go below existing", 100000, 1},
		{"middle", 52000, 10},
		{"last place", 5001, 19},
		{"does not qualify", 5000, -1},
		{"zero", 0, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := DefaultHighScoreTable()
			rank := table.Insert(HighScoreRecord{Initials: "abcd", Score: tt.score, Stage: 2})
			if rank != tt.want {
				t.Fatalf("rank = %d, want %d", rank, tt.want)
			}
			if len(table.Records) != HighScoreTableSize {
				t.Errorf("table size %d after insert", len(table.Records))
			}
			if rank >= 0 {
				got := table.Records[rank]
				if got.Score != tt.score || got.Initials != "ABC" || got.Rank != rank+1 {
					t.Errorf("inserted record = %+v", got)
				}
			}
		})
	}
}

func TestNewHighScoreTableRejectsUnsorted(t *testing.T) {
	_, err := NewHighScoreTable([]HighScoreRecord{{Score: 1}, {Score: 2}})
	if err == nil {
		t.Error("expected error for unsorted records")
	}
}

func TestHighScoreManagerDegradedMode(t *testing.T) {
	m := NewHighScoreManager(nil)
	rank, err := SubmitScore(m, HighScoreRecord{Initials: "ZZ", Score: 77777, Stage: 1})
	if err != nil {
		t.Fatalf("SubmitScore error: %v", err)
	}
	if rank != 5 {
		t.Errorf("rank = %d, want 5", rank)
	}
	records, _ := m.LoadHighScoreTable()
	if records[5].Initials != "ZZ." {
		t.Errorf("record not kept in memory: %+v", records[5])
	}
}

func TestHighScoreManagerPersists(t *testing.T) {
	tempDir := t.TempDir()
	originalHome := os.Getenv("HOME")
	os.Setenv("HOME", tempDir)
	defer os.Setenv("HOME", originalHome)

	gdataManager, err := gdata.Open(gdata.Config{
		AppName: "stg_test_highscores",
	})
	if err != nil {
		t.Skipf("gdata unavailable: %v", err)
	}

	m1 := NewHighScoreManager(gdataManager)
	if _, err := SubmitScore(m1, HighScoreRecord{Initials: "ACE", Score: 999999, Stage: 3}); err != nil {
		t.Fatalf("SubmitScore error: %v", err)
	}

	m2 := NewHighScoreManager(gdataManager)
	records, err := m2.LoadHighScoreTable()
	if err != nil {
		t.Fatalf("LoadHighScoreTable error: %v", err)
	}
	if len(records) != HighScoreTableSize || records[0].Initials != "ACE" || records[0].Stage != 3 {
		t.Errorf("reloaded top record = %+v", records[0])
	}
}
