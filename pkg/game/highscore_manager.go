package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// 存储路径常量
const (
	highScoreObject   = "highscores"
	highScoreProperty = "table"
)

// highScoreFile gdata 中保存的 YAML 结构
type highScoreFile struct {
	Records []HighScoreRecord `yaml:"records"`
}

// HighScoreManager 排行榜持久化
// 实现 HighScoreStore，基于 gdata 跨平台存储
type HighScoreManager struct {
	gdataManager *gdata.Manager // 可为 nil（降级模式，仅内存）
	memory       []HighScoreRecord
}

// NewHighScoreManager 创建排行榜管理器
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，排行榜只保存在内存中）
func NewHighScoreManager(gdataManager *gdata.Manager) *HighScoreManager {
	return &HighScoreManager{
		gdataManager: gdataManager,
		memory:       DefaultHighScoreTable().Records,
	}
}

// LoadHighScoreTable 读取排行榜
//
// 存储中没有排行榜时返回内置默认排行榜
//
// 返回：
//   - []HighScoreRecord: 按名次排列的记录
//   - error: 读取或反序列化失败
func (m *HighScoreManager) LoadHighScoreTable() ([]HighScoreRecord, error) {
	// 降级模式：使用内存中的排行榜
	if m.gdataManager == nil {
		return cloneRecords(m.memory), nil
	}

	if !m.gdataManager.ObjectPropExists(highScoreObject, highScoreProperty) {
		return DefaultHighScoreTable().Records, nil
	}

	data, err := m.gdataManager.LoadObjectProp(highScoreObject, highScoreProperty)
	if err != nil {
		return nil, fmt.Errorf("failed to load high scores: %w", err)
	}

	var file highScoreFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal high scores: %w", err)
	}

	log.Printf("[HighScoreManager] Loaded %d record(s)", len(file.Records))
	return file.Records, nil
}

// SaveHighScoreTable 保存排行榜
//
// gdataManager 为 nil 时只更新内存（降级模式，不报错）
func (m *HighScoreManager) SaveHighScoreTable(records []HighScoreRecord) error {
	if m.gdataManager == nil {
		m.memory = cloneRecords(records)
		return nil
	}

	data, err := yaml.Marshal(highScoreFile{Records: records})
	if err != nil {
		return fmt.Errorf("failed to marshal high scores: %w", err)
	}

	if err := m.gdataManager.SaveObjectProp(highScoreObject, highScoreProperty, data); err != nil {
		return fmt.Errorf("failed to save high scores: %w", err)
	}

	log.Printf("[HighScoreManager] Saved %d record(s)", len(records))
	return nil
}

// TopScoreOf 读取排行榜并返回榜首分数
func TopScoreOf(store HighScoreStore) (int, error) {
	records, err := store.LoadHighScoreTable()
	if err != nil {
		return 0, err
	}
	table, err := NewHighScoreTable(records)
	if err != nil {
		return 0, fmt.Errorf("invalid high score table: %w", err)
	}
	return table.TopScore(), nil
}

// SubmitScore 读取排行榜、插入候选记录并在上榜时保存
//
// 返回：
//   - int: 名次（0 起），未上榜为 -1
//   - error: 读写失败
func SubmitScore(store HighScoreStore, candidate HighScoreRecord) (int, error) {
	records, err := store.LoadHighScoreTable()
	if err != nil {
		return -1, err
	}
	table, err := NewHighScoreTable(records)
	if err != nil {
		return -1, fmt.Errorf("invalid high score table: %w", err)
	}
	rank := table.Insert(candidate)
	if rank < 0 {
		return -1, nil
	}
	if err := store.SaveHighScoreTable(table.Records); err != nil {
		return rank, err
	}
	return rank, nil
}

func cloneRecords(records []HighScoreRecord) []HighScoreRecord {
	return append([]HighScoreRecord(nil), records...)
}
