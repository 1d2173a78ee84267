package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"resume-fit-go/internal/logger"
	"resume-fit-go/internal/types"
)

// ServerConfig 定义HTTP服务器配置
type ServerConfig struct {
	Address string `yaml:"address"` // 例如 ":8080"
	// RateLimitQPM 每分钟允许的请求数，<=0 时不启用限流
	RateLimitQPM int `yaml:"rate_limit_qpm"`
	// RateLimitBurst 限流突发容量，<=0 时取QPM的一半
	RateLimitBurst int `yaml:"rate_limit_burst"`
}

// SessionConfig 会话文件存储配置
type SessionConfig struct {
	Dir         string `yaml:"dir"`           // 会话JSON文件目录
	MaxAgeHours int    `yaml:"max_age_hours"` // 会话过期时间(小时)
}

// ParsingConfig 解析阶段配置
type ParsingConfig struct {
	// MaxRawTextLen 分段前的原文长度上限，防止对抗性输入导致的正则回溯放大
	MaxRawTextLen int `yaml:"max_raw_text_len"`
	// TaxonomyPath 技能词表文件路径，为空时使用内置词表
	TaxonomyPath string `yaml:"taxonomy_path"`
}

// MatchThresholds 技能匹配阈值
type MatchThresholds struct {
	FullMatch    float64 `yaml:"full_match"`    // 完全匹配阈值，默认90
	PartialMatch float64 `yaml:"partial_match"` // 部分匹配阈值，默认70
}

// Penalties 缺失必备技能的扣分配置，两个值均为负数
type Penalties struct {
	MissingRequiredSkill float64 `yaml:"missing_required_skill"` // 每缺一项的扣分
	MaxPenalty           float64 `yaml:"max_penalty"`            // 扣分下限(最负值)
}

// ScoreBounds 最终分数边界
type ScoreBounds struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// RequiredSkillEnforcement 必备技能硬性下限规则
// 命中率低于 MinimumRequiredMatched 时，总分被压到 BelowMinimumCap，
// 其他分项再高也无法绕过
type RequiredSkillEnforcement struct {
	MinimumRequiredMatched float64 `yaml:"minimum_required_matched"`
	BelowMinimumCap        float64 `yaml:"below_minimum_cap"`
}

// ScoringConfig 打分引擎配置，定义了打分契约，加载失败视为启动期致命错误
type ScoringConfig struct {
	Weights                  types.ScoreWeights       `yaml:"weights"`
	MatchThresholds          MatchThresholds          `yaml:"match_thresholds"`
	Penalties                Penalties                `yaml:"penalties"`
	ScoreBounds              ScoreBounds              `yaml:"score_bounds"`
	RequiredSkillEnforcement RequiredSkillEnforcement `yaml:"required_skill_enforcement"`
}

// SignalGroup 经历深度信号的一组正则模式及其权重
type SignalGroup struct {
	Patterns []string `yaml:"patterns"`
	Weight   float64  `yaml:"weight"`
}

// ExperienceSignalsConfig 经历深度打分信号，分leadership/scale/technical_depth三类，
// 每条经历内每类最多命中一次（首个命中的模式生效），多条经历可各自叠加
type ExperienceSignalsConfig struct {
	Leadership     SignalGroup `yaml:"leadership"`
	Scale          SignalGroup `yaml:"scale"`
	TechnicalDepth SignalGroup `yaml:"technical_depth"`
}

// EducationConfig 学历打分配置
type EducationConfig struct {
	// DegreeLevels 学历关键词到分值的映射，例如 {"bachelor": 80, "master": 90}
	DegreeLevels map[string]float64 `yaml:"degree_levels"`
	// FieldMatchBonus 专业方向与JD学历要求重叠时的一次性加分
	FieldMatchBonus float64 `yaml:"field_match_bonus"`
}

// OutputConfig 输出配置
type OutputConfig struct {
	MaxSuggestions int `yaml:"max_suggestions"` // 改进建议条数上限
}

// Config 应用程序配置
type Config struct {
	Server            ServerConfig            `yaml:"server"`
	Logger            logger.Config           `yaml:"logger"`
	Session           SessionConfig           `yaml:"session"`
	Parsing           ParsingConfig           `yaml:"parsing"`
	Scoring           ScoringConfig           `yaml:"scoring"`
	ExperienceSignals ExperienceSignalsConfig `yaml:"experience_signals"`
	Education         EducationConfig         `yaml:"education"`
	Output            OutputConfig            `yaml:"output"`
}

// LoadConfig 从文件加载配置
// 配置定义了打分契约，文件缺失或语法错误属于启动期致命错误，不做降级
func LoadConfig(configPath string) (*Config, error) {
	if configPath == "" {
		return nil, fmt.Errorf("必须提供配置文件路径")
	}

	if _, err := os.Stat(configPath); err != nil {
		return nil, fmt.Errorf("配置文件不存在: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	// 从环境变量覆盖服务器地址（如果存在）
	if envAddr := os.Getenv("RESUME_FIT_ADDRESS"); envAddr != "" {
		config.Server.Address = envAddr
	}

	if config.Server.Address == "" {
		config.Server.Address = ":8080" // 默认服务器地址
	}

	return config, nil
}

// DefaultConfig 返回文档化的默认配置
// 纯计算核心和测试可以在没有配置文件的情况下直接使用
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Address:        ":8080",
			RateLimitQPM:   300,
			RateLimitBurst: 30,
		},
		Logger: logger.Config{
			Level:        "info",
			Format:       "pretty",
			TimeFormat:   "2006-01-02 15:04:05",
			ReportCaller: true,
		},
		Session: SessionConfig{
			Dir:         "sessions",
			MaxAgeHours: 24,
		},
		Parsing: ParsingConfig{
			MaxRawTextLen: 200_000,
		},
		Scoring: ScoringConfig{
			Weights: types.ScoreWeights{
				RequiredSkills:  0.4,
				OptionalSkills:  0.2,
				ExperienceDepth: 0.25,
				EducationMatch:  0.15,
			},
			MatchThresholds: MatchThresholds{
				FullMatch:    90,
				PartialMatch: 70,
			},
			Penalties: Penalties{
				MissingRequiredSkill: -5,
				MaxPenalty:           -20,
			},
			ScoreBounds: ScoreBounds{
				Min: 0,
				Max: 100,
			},
			RequiredSkillEnforcement: RequiredSkillEnforcement{
				MinimumRequiredMatched: 0.5,
				BelowMinimumCap:        40,
			},
		},
		ExperienceSignals: ExperienceSignalsConfig{
			Leadership: SignalGroup{
				Patterns: []string{
					`led\s+(a\s+)?team`,
					`managed\s+(a\s+)?team`,
					`mentored`,
					`supervised`,
					`directed`,
					`headed`,
				},
				Weight: 1.0,
			},
			Scale: SignalGroup{
				Patterns: []string{
					`\d+\s*(million|m)\s*(users?|customers?|requests?)`,
					`\d+\s*(thousand|k)\s*(users?|customers?|requests?)`,
					`team of \d+`,
					`\d+\+?\s*(engineers?|developers?)`,
					`large[- ]?scale`,
					`high[- ]?traffic`,
				},
				Weight: 1.0,
			},
			TechnicalDepth: SignalGroup{
				Patterns: []string{
					`architected`,
					`designed\s+(and\s+)?implemented`,
					`built\s+from\s+scratch`,
					`microservices`,
					`distributed\s+systems?`,
					`optimized`,
				},
				Weight: 1.0,
			},
		},
		Education: EducationConfig{
			DegreeLevels: map[string]float64{
				"phd":       100,
				"doctorate": 100,
				"master":    90,
				"m.s.":      90,
				"bachelor":  80,
				"b.s.":      80,
				"b.a.":      80,
				"b.tech":    80,
				"associate": 65,
				"diploma":   55,
			},
			FieldMatchBonus: 10,
		},
		Output: OutputConfig{
			MaxSuggestions: 5,
		},
	}
}

// CreateSampleConfig 创建一个示例配置文件
func CreateSampleConfig(filePath string) error {
	if _, err := os.Stat(filePath); err == nil {
		return fmt.Errorf("文件 '%s' 已存在，不会覆盖", filePath)
	}

	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return fmt.Errorf("序列化配置失败: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("写入示例配置文件 '%s' 失败: %w", filePath, err)
	}

	return nil
}
