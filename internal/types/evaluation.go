package types

import "time"

// MatchType JD技能的匹配分类
type MatchType string

const (
	MatchMatched MatchType = "matched"
	MatchPartial MatchType = "partial"
	MatchMissing MatchType = "missing"
)

// SkillMatch 单个JD技能的匹配结果
// 每个JD技能（必备+加分）恰好产生一条记录，由JD侧驱动枚举，
// 而不是按简历技能枚举
type SkillMatch struct {
	SkillName     string          `json:"skill_name"`
	CanonicalName string          `json:"canonical_name"`
	MatchType     MatchType       `json:"match_type"`
	Confidence    ConfidenceLevel `json:"confidence"`
	JDPriority    SkillPriority   `json:"jd_priority"`
	// Evidence 命中技能在简历中的原文片段，缺失技能为空，禁止合成
	Evidence   string  `json:"evidence,omitempty"`
	LineNumber int     `json:"line_number,omitempty"`
	MatchScore float64 `json:"match_score"` // [0,1]
}

// ScoreWeights 四个分项分数的权重，配置约定之和为1.0（运行时不强制校验）
type ScoreWeights struct {
	RequiredSkills  float64 `json:"required_skills" yaml:"required_skills"`
	OptionalSkills  float64 `json:"optional_skills" yaml:"optional_skills"`
	ExperienceDepth float64 `json:"experience_depth" yaml:"experience_depth"`
	EducationMatch  float64 `json:"education_match" yaml:"education_match"`
}

// ScoreBreakdown 总分的计算拆解
type ScoreBreakdown struct {
	RequiredSkillsScore  float64      `json:"required_skills_score"`
	OptionalSkillsScore  float64      `json:"optional_skills_score"`
	ExperienceDepthScore float64      `json:"experience_depth_score"`
	EducationMatchScore  float64      `json:"education_match_score"`
	WeightsApplied       ScoreWeights `json:"weights_applied"`
	PenaltiesApplied     []string     `json:"penalties_applied"`
}

// ImprovementSuggestion 单条改进建议，Priority=1 为最高优先级
type ImprovementSuggestion struct {
	Category       string   `json:"category"`
	Priority       int      `json:"priority"`
	Suggestion     string   `json:"suggestion"`
	EvidenceGap    string   `json:"evidence_gap,omitempty"`
	AffectedSkills []string `json:"affected_skills,omitempty"`
}

// ExperienceSignals 从工作经历中提取的参考性信号（不参与打分）
type ExperienceSignals struct {
	RelevantYears           float64  `json:"relevant_years"`
	OwnershipStrength       string   `json:"ownership_strength"` // High / Medium / Low
	LeadershipSignals       []string `json:"leadership_signals"`
	ResponsibilityAlignment string   `json:"responsibility_alignment"`
}

// EvaluationResult 完整评估结果，一经产出即不可变，
// 作为该会话的评估快照持久化
type EvaluationResult struct {
	JobFitScore            int                     `json:"job_fit_score"` // [0,100]
	ConfidenceLevel        ConfidenceLevel         `json:"confidence_level"`
	ScoreBreakdown         ScoreBreakdown          `json:"score_breakdown"`
	SkillMatches           []SkillMatch            `json:"skill_matches"`
	MatchedCount           int                     `json:"matched_count"`
	PartialCount           int                     `json:"partial_count"`
	MissingCount           int                     `json:"missing_count"`
	Explanation            string                  `json:"explanation"`
	ExperienceSignals      *ExperienceSignals      `json:"experience_signals,omitempty"`
	ImprovementSuggestions []ImprovementSuggestion `json:"improvement_suggestions"`
	AdvisoryNotice         string                  `json:"advisory_notice"`
}

// SessionData 一次分析会话的数据，按会话落盘为单个JSON文件
type SessionData struct {
	SessionID      string                `json:"session_id"`
	Resume         *ParsedResume         `json:"resume,omitempty"`
	JobDescription *ParsedJobDescription `json:"job_description,omitempty"`
	Evaluation     *EvaluationResult     `json:"evaluation,omitempty"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
}
