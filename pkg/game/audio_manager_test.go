package game

import (
	"encoding/binary"
	"testing"
)

func TestRenderTones_Length(t *testing.T) {
	pcm := renderTones([]tone{{From: 440, To: 440, Duration: 0.5}, {From: 880, To: 220, Duration: 0.25}}, 1000)
	// (500 + 250) 帧，每帧 4 字节
	if got, want := len(pcm), 750*4; got != want {
		t.Fatalf("len: got %d, want %d", got, want)
	}
}

func TestRenderTones_StereoAndBounded(t *testing.T) {
	pcm := renderTones([]tone{{From: 300, To: 300, Duration: 0.1}}, 8000)
	for i := 0; i+4 <= len(pcm); i += 4 {
		l := int16(binary.LittleEndian.Uint16(pcm[i:]))
		r := int16(binary.LittleEndian.Uint16(pcm[i+2:]))
		if l != r {
			t.Fatalf("frame %d: channels differ %d/%d", i/4, l, r)
		}
		if l > 10000 || l < -10000 {
			t.Fatalf("frame %d: amplitude %d out of range", i/4, l)
		}
	}
}

func TestSoundTablesCoverAllIndices(t *testing.T) {
	for i := SoundPlayerShot; i <= SoundPause; i++ {
		if _, ok := soundTones[i]; !ok {
			t.Errorf("sound %d has no tone", i)
		}
	}
	for i := MusicStage; i <= MusicGameOver; i++ {
		if _, ok := musicPhrases[i]; !ok {
			t.Errorf("music %d has no phrase", i)
		}
	}
}
