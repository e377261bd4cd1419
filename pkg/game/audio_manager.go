package game

import (
	"bytes"
	"encoding/binary"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// AudioSampleRate 音频上下文采样率
const AudioSampleRate = 48000

// tone 一段合成音：频率从 From 线性滑到 To
type tone struct {
	From, To float64 // Hz
	Duration float64 // 秒
}

// soundTones 音效对应的合成音
var soundTones = map[int][]tone{
	SoundPlayerShot:     {{From: 1400, To: 900, Duration: 0.04}},
	SoundEnemyShot:      {{From: 500, To: 350, Duration: 0.06}},
	SoundExplosion:      {{From: 180, To: 40, Duration: 0.25}},
	SoundLargeExplosion: {{From: 120, To: 25, Duration: 0.6}},
	SoundHit:            {{From: 800, To: 600, Duration: 0.03}},
	SoundImmuneHit:      {{From: 2200, To: 2200, Duration: 0.02}},
	SoundItem:           {{From: 660, To: 660, Duration: 0.05}, {From: 990, To: 990, Duration: 0.08}},
	SoundBomb:           {{From: 90, To: 30, Duration: 0.9}},
	SoundPlayerHit:      {{From: 400, To: 60, Duration: 0.5}},
	SoundBonusTick:      {{From: 1760, To: 1760, Duration: 0.015}},
	SoundPause:          {{From: 880, To: 880, Duration: 0.06}, {From: 660, To: 660, Duration: 0.06}},
}

// musicPhrases 每首曲目循环播放的音符序列
var musicPhrases = map[int][]float64{
	MusicStage:      {220, 262, 330, 262, 196, 247, 294, 247},
	MusicMiniboss:   {185, 185, 220, 175, 185, 185, 247, 233},
	MusicBoss:       {147, 156, 147, 196, 147, 156, 147, 208},
	MusicStageClear: {523, 659, 784, 1047},
	MusicGameOver:   {392, 370, 349, 330},
}

// noteLength 音乐中每个音符的时长（秒）
const noteLength = 0.2

// AudioManager 音频管理器，实现 Audio
//
// 没有音频素材，音效和音乐都由程序合成：
// 音效预先渲染成 PCM 并缓存播放器，音乐使用无限循环的播放器。
// 音量和静音读取 SettingsManager。
type AudioManager struct {
	context         *audio.Context
	settingsManager *SettingsManager // 可为 nil

	soundPlayers map[int]*audio.Player
	musicPlayers map[int]*audio.Player
	currentMusic *audio.Player
	currentTrack int
}

// NewAudioManager 创建音频管理器
//
// 参数：
//   - ctx: ebiten 音频上下文（采样率 AudioSampleRate）
//   - sm: 设置管理器，可为 nil
func NewAudioManager(ctx *audio.Context, sm *SettingsManager) *AudioManager {
	return &AudioManager{
		context:         ctx,
		settingsManager: sm,
		soundPlayers:    make(map[int]*audio.Player),
		musicPlayers:    make(map[int]*audio.Player),
		currentTrack:    -1,
	}
}

// PlaySoundEffect 播放音效
func (am *AudioManager) PlaySoundEffect(index int) {
	if am.muted() {
		return
	}
	player := am.soundPlayers[index]
	if player == nil {
		tones, ok := soundTones[index]
		if !ok {
			log.Printf("[AudioManager] Unknown sound %d", index)
			return
		}
		player = am.context.NewPlayerFromBytes(renderTones(tones, AudioSampleRate))
		am.soundPlayers[index] = player
	}
	player.SetVolume(am.volume(false))
	if err := player.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: failed to rewind sound %d: %v", index, err)
	}
	player.Play()
}

// PlayMusicTrack 切换背景音乐，同一首正在播放时不重新开始
func (am *AudioManager) PlayMusicTrack(index int) {
	if am.currentTrack == index && am.currentMusic != nil && am.currentMusic.IsPlaying() {
		return
	}
	am.StopMusic()
	if am.muted() {
		am.currentTrack = index
		return
	}

	player := am.musicPlayers[index]
	if player == nil {
		notes, ok := musicPhrases[index]
		if !ok {
			log.Printf("[AudioManager] Unknown music track %d", index)
			return
		}
		pcm := renderPhrase(notes, noteLength, AudioSampleRate)
		loop := audio.NewInfiniteLoop(bytes.NewReader(pcm), int64(len(pcm)))
		p, err := am.context.NewPlayer(loop)
		if err != nil {
			log.Printf("[AudioManager] Failed to create music player %d: %v", index, err)
			return
		}
		player = p
		am.musicPlayers[index] = player
	}
	player.SetVolume(am.volume(true))
	if err := player.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: failed to rewind music %d: %v", index, err)
	}
	player.Play()
	am.currentMusic = player
	am.currentTrack = index
	log.Printf("[AudioManager] Playing music track %d", index)
}

// StopMusic 停止当前音乐
func (am *AudioManager) StopMusic() {
	if am.currentMusic != nil {
		am.currentMusic.Pause()
		am.currentMusic = nil
	}
}

func (am *AudioManager) muted() bool {
	return am.settingsManager != nil && am.settingsManager.Settings().Muted
}

func (am *AudioManager) volume(music bool) float64 {
	if am.settingsManager == nil {
		return 1
	}
	if music {
		return am.settingsManager.Settings().MusicVolume
	}
	return am.settingsManager.Settings().SoundVolume
}

// renderTones 把音段渲染为 16 位立体声小端 PCM
// 每段末尾线性淡出，避免爆音
func renderTones(tones []tone, sampleRate int) []byte {
	var buf bytes.Buffer
	for _, t := range tones {
		n := int(t.Duration * float64(sampleRate))
		phase := 0.0
		for i := 0; i < n; i++ {
			progress := float64(i) / float64(n)
			freq := t.From + (t.To-t.From)*progress
			phase += 2 * math.Pi * freq / float64(sampleRate)
			amp := 0.3 * (1 - progress)
			writeFrame(&buf, amp*squareish(phase))
		}
	}
	return buf.Bytes()
}

// renderPhrase 把音符序列渲染为 PCM，每个音符时长相同
func renderPhrase(notes []float64, length float64, sampleRate int) []byte {
	tones := make([]tone, len(notes))
	for i, f := range notes {
		tones[i] = tone{From: f, To: f, Duration: length}
	}
	return renderTones(tones, sampleRate)
}

// squareish 柔化的方波
func squareish(phase float64) float64 {
	return math.Tanh(3 * math.Sin(phase))
}

func writeFrame(buf *bytes.Buffer, v float64) {
	s := int16(v * math.MaxInt16)
	var frame [4]byte
	binary.LittleEndian.PutUint16(frame[0:], uint16(s))
	binary.LittleEndian.PutUint16(frame[2:], uint16(s))
	buf.Write(frame[:])
}
