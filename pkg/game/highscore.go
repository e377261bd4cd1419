package game

import (
	"fmt"
	"log"
	"strings"
)

// HighScoreTableSize 排行榜条目数
const HighScoreTableSize = 20

// DefaultInitials 未设置缩写时使用
const DefaultInitials = "AAA"

// HighScoreRecord 排行榜条目
type HighScoreRecord struct {
	Rank     int    `yaml:"rank"` // 1 起
	Initials string `yaml:"initials"`
	Score    int    `yaml:"score"`
	Stage    int    `yaml:"stage"`
}

// HighScoreTable 按分数降序排列的排行榜
type HighScoreTable struct {
	Records []HighScoreRecord
}

// DefaultHighScoreTable 内置的初始排行榜
func DefaultHighScoreTable() *HighScoreTable {
	records := make([]HighScoreRecord, HighScoreTableSize)
	for i := range records {
		records[i] = HighScoreRecord{
			Rank:     i + 1,
			Initials: "STG",
			Score:    (HighScoreTableSize - i) * 5000,
			Stage:    1,
		}
	}
	return &HighScoreTable{Records: records}
}

// NewHighScoreTable 由存储中读出的记录构造排行榜
// 记录会被截断到 HighScoreTableSize 条并重新编号
func NewHighScoreTable(records []HighScoreRecord) (*HighScoreTable, error) {
	for i := 1; i < len(records); i++ {
		if records[i].Score > records[i-1].Score {
			return nil, fmt.Errorf("high score table not sorted at entry %d", i)
		}
	}
	t := &HighScoreTable{Records: append([]HighScoreRecord(nil), records...)}
	if len(t.Records) > HighScoreTableSize {
		t.Records = t.Records[:HighScoreTableSize]
	}
	t.renumber()
	return t, nil
}

// RankFor 分数能进入的名次（0 起），进不了榜返回 -1
//
// 与已有记录同分时排在其后。
func (t *HighScoreTable) RankFor(score int) int {
	for i, r := range t.Records {
		if score > r.Score {
			return i
		}
	}
	if len(t.Records) < HighScoreTableSize {
		return len(t.Records)
	}
	return -1
}

// Insert 插入候选记录
// 返回：
//   - int: 名次（0 起），未上榜返回 -1
func (t *HighScoreTable) Insert(candidate HighScoreRecord) int {
	rank := t.RankFor(candidate.Score)
	if rank < 0 {
		return -1
	}
	candidate.Initials = normalizeInitials(candidate.Initials)

	t.Records = append(t.Records, HighScoreRecord{})
	copy(t.Records[rank+1:], t.Records[rank:])
	t.Records[rank] = candidate
	if len(t.Records) > HighScoreTableSize {
		t.Records = t.Records[:HighScoreTableSize]
	}
	t.renumber()

	log.Printf("[HighScoreTable] %s %d inserted at rank %d", candidate.Initials, candidate.Score, rank+1)
	return rank
}

// TopScore 榜首分数
func (t *HighScoreTable) TopScore() int {
	if len(t.Records) == 0 {
		return 0
	}
	return t.Records[0].Score
}

func (t *HighScoreTable) renumber() {
	for i := range t.Records {
		t.Records[i].Rank = i + 1
	}
}

// normalizeInitials 大写并补齐/截断到 3 个字符
func normalizeInitials(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) > 3 {
		s = s[:3]
	}
	for len(s) < 3 {
		s += "."
	}
	return s
}
