package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"

	"resume-fit-go/internal/logger"
	"resume-fit-go/internal/types"
)

// Manager 基于文件系统的会话管理器
// 每个会话落盘为 <dir>/<session_id>.json 一个扁平JSON文件，
// 服务重启后数据不丢失；这是整个系统唯一的持久化层
type Manager struct {
	dir    string
	maxAge time.Duration
}

// NewManager 创建会话管理器并确保存储目录存在
func NewManager(dir string, maxAgeHours int) (*Manager, error) {
	if dir == "" {
		dir = "sessions"
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("创建会话目录失败: %w", err)
	}

	logger.Info().Str("dir", dir).Int("max_age_hours", maxAgeHours).Msg("会话存储初始化完成")

	return &Manager{
		dir:    dir,
		maxAge: time.Duration(maxAgeHours) * time.Hour,
	}, nil
}

// NewSessionID 生成一个新的会话ID（UUIDv7，时间有序）
func NewSessionID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("生成会话ID失败: %w", err)
	}
	return id.String(), nil
}

// ErrInvalidID 会话ID不是合法UUID
var ErrInvalidID = errors.New("invalid session id")

// validateID 会话ID必须是合法UUID
// ID会拼进文件路径，这里同时挡掉路径穿越类输入
func validateID(sessionID string) error {
	if _, err := uuid.FromString(sessionID); err != nil {
		return fmt.Errorf("%w %q: %v", ErrInvalidID, sessionID, err)
	}
	return nil
}

func (m *Manager) sessionPath(sessionID string) string {
	return filepath.Join(m.dir, sessionID+".json")
}

// Save 保存会话，写入前刷新UpdatedAt
func (m *Manager) Save(session *types.SessionData) error {
	if err := validateID(session.SessionID); err != nil {
		return err
	}

	session.UpdatedAt = time.Now()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = session.UpdatedAt
	}

	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("序列化会话 %s 失败: %w", session.SessionID, err)
	}

	if err := os.WriteFile(m.sessionPath(session.SessionID), data, 0644); err != nil {
		return fmt.Errorf("写入会话 %s 失败: %w", session.SessionID, err)
	}

	logger.Debug().Str("session_id", session.SessionID).Msg("会话已保存")
	return nil
}

// Get 加载会话，不存在时返回 (nil, nil)
func (m *Manager) Get(sessionID string) (*types.SessionData, error) {
	if err := validateID(sessionID); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(m.sessionPath(sessionID))
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warn().Str("session_id", sessionID).Msg("会话文件不存在")
			return nil, nil
		}
		return nil, fmt.Errorf("读取会话 %s 失败: %w", sessionID, err)
	}

	var session types.SessionData
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("解析会话 %s 失败: %w", sessionID, err)
	}
	return &session, nil
}

// Delete 删除会话文件，返回是否实际删除了文件
func (m *Manager) Delete(sessionID string) (bool, error) {
	if err := validateID(sessionID); err != nil {
		return false, err
	}

	err := os.Remove(m.sessionPath(sessionID))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("删除会话 %s 失败: %w", sessionID, err)
	}
	return true, nil
}

// Cleanup 清理超过最大存活时间的会话文件，按文件修改时间判断，
// 返回清理掉的数量
func (m *Manager) Cleanup() (int, error) {
	cutoff := time.Now().Add(-m.maxAge)

	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return 0, fmt.Errorf("扫描会话目录失败: %w", err)
	}

	count := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			logger.Warn().Err(err).Str("file", entry.Name()).Msg("读取会话文件信息失败，跳过")
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(m.dir, entry.Name())); err != nil {
				logger.Warn().Err(err).Str("file", entry.Name()).Msg("清理会话文件失败")
				continue
			}
			count++
		}
	}

	if count > 0 {
		logger.Info().Int("count", count).Msg("过期会话清理完成")
	}
	return count, nil
}
