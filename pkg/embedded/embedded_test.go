package embedded

import (
	"testing"
	"testing/fstest"
)

func TestReadFile(t *testing.T) {
	Init(fstest.MapFS{
		"data/stages/stage1.yaml": {Data: []byte("stage: 1")},
		"data/game.yaml":          {Data: []byte("lastStage: 2")},
	})

	data, err := ReadFile("./data/stages/stage1.yaml")
	if err != nil {
		t.Fatalf("ReadFile error: %v", err)
	}
	if string(data) != "stage: 1" {
		t.Errorf("got %q", data)
	}

	if _, err := ReadFile("assets/x.png"); err == nil {
		t.Error("expected error for unknown prefix")
	}
	if !Exists("data/game.yaml") || Exists("data/missing.yaml") {
		t.Error("Exists returned wrong result")
	}

	matches, err := Glob("data/stages/*.yaml")
	if err != nil || len(matches) != 1 {
		t.Errorf("Glob = %v, %v", matches, err)
	}
}
