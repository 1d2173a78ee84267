package rules

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"resume-fit-go/internal/config"
	"resume-fit-go/internal/explain"
	"resume-fit-go/internal/taxonomy"
	"resume-fit-go/internal/types"
)

// 经历信号的参考性检测词表，只影响展示，不参与打分
var (
	ownershipVerbs  = []string{"led", "managed", "architected", "designed", "created", "spearheaded", "built", "developed"}
	leadershipVerbs = []string{"led", "mentored", "managed", "supervised", "directed"}
)

// Engine 规则评估引擎
// 配置在构造时注入并编译完成，Evaluate 是 (resume, jd) 的纯函数：
// 相同输入永远产出相同结果
type Engine struct {
	cfg *config.Config

	normalizer *taxonomy.Normalizer

	leadership     []*regexp.Regexp
	scale          []*regexp.Regexp
	technicalDepth []*regexp.Regexp

	degreeKeys []string // 学历关键词，排序后遍历，与map顺序无关
}

// NewEngine 构造引擎，信号正则在此一次性编译，非法模式直接报错
func NewEngine(cfg *config.Config, normalizer *taxonomy.Normalizer) (*Engine, error) {
	e := &Engine{cfg: cfg, normalizer: normalizer}

	var err error
	if e.leadership, err = compileSignalGroup(cfg.ExperienceSignals.Leadership.Patterns); err != nil {
		return nil, fmt.Errorf("编译leadership信号正则失败: %w", err)
	}
	if e.scale, err = compileSignalGroup(cfg.ExperienceSignals.Scale.Patterns); err != nil {
		return nil, fmt.Errorf("编译scale信号正则失败: %w", err)
	}
	if e.technicalDepth, err = compileSignalGroup(cfg.ExperienceSignals.TechnicalDepth.Patterns); err != nil {
		return nil, fmt.Errorf("编译technical_depth信号正则失败: %w", err)
	}

	for key := range cfg.Education.DegreeLevels {
		e.degreeKeys = append(e.degreeKeys, key)
	}
	sort.Strings(e.degreeKeys)

	return e, nil
}

func compileSignalGroup(patterns []string) ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			return nil, fmt.Errorf("模式 %q: %w", p, err)
		}
		compiled = append(compiled, re)
	}
	return compiled, nil
}

// Evaluate 对一份简历和一份JD做完整评估
//
// 流程：技能匹配 → 四个分项得分 → 加权求和 → 缺失必备技能扣分 →
// 必备技能命中率硬性下限 → 分数取整夹紧 → 解释与建议 → 参考性经历信号
func (e *Engine) Evaluate(resume *types.ParsedResume, jd *types.ParsedJobDescription) *types.EvaluationResult {
	scoring := e.cfg.Scoring

	skillResult := MatchSkills(
		resume.Skills,
		jd.RequiredSkills,
		jd.OptionalSkills,
		e.normalizer,
		scoring.MatchThresholds.FullMatch,
		scoring.MatchThresholds.PartialMatch,
	)

	requiredScore := componentSkillScore(skillResult.Stats.RequiredMatched, len(skillResult.PartialRequired), skillResult.Stats.RequiredTotal)
	optionalScore := componentSkillScore(skillResult.Stats.OptionalMatched, len(skillResult.PartialOptional), skillResult.Stats.OptionalTotal)
	experienceScore := e.experienceScore(resume)
	educationScore := e.educationScore(resume, jd)

	weights := scoring.Weights
	weightedScore := requiredScore*weights.RequiredSkills +
		optionalScore*weights.OptionalSkills +
		experienceScore*weights.ExperienceDepth +
		educationScore*weights.EducationMatch

	var penaltiesApplied []string
	if missing := len(skillResult.MissingRequired); missing > 0 {
		penalty := float64(missing) * scoring.Penalties.MissingRequiredSkill
		penalty = math.Max(penalty, scoring.Penalties.MaxPenalty)
		weightedScore += penalty
		penaltiesApplied = append(penaltiesApplied,
			fmt.Sprintf("%d missing required skill(s): %.0f points", missing, penalty))
	}

	if skillResult.Stats.RequiredTotal > 0 {
		ratio := float64(skillResult.Stats.RequiredMatched) / float64(skillResult.Stats.RequiredTotal)
		enforcement := scoring.RequiredSkillEnforcement
		if ratio < enforcement.MinimumRequiredMatched && weightedScore > enforcement.BelowMinimumCap {
			weightedScore = enforcement.BelowMinimumCap
			penaltiesApplied = append(penaltiesApplied,
				fmt.Sprintf("Score capped at %.0f: below %.0f%% required skills matched",
					enforcement.BelowMinimumCap, enforcement.MinimumRequiredMatched*100))
		}
	}

	finalScore := e.boundScore(weightedScore)

	breakdown := types.ScoreBreakdown{
		RequiredSkillsScore:  requiredScore,
		OptionalSkillsScore:  optionalScore,
		ExperienceDepthScore: experienceScore,
		EducationMatchScore:  educationScore,
		WeightsApplied:       weights,
		PenaltiesApplied:     penaltiesApplied,
	}

	explanation := explain.GenerateExplanation(finalScore, skillResult.Matches, breakdown, weights)
	suggestions := explain.GenerateSuggestions(
		skillResult.Matches,
		explain.AnalyzeResumeQuality(resume),
		e.cfg.Output.MaxSuggestions,
	)

	return &types.EvaluationResult{
		JobFitScore:            finalScore,
		ConfidenceLevel:        overallConfidence(resume, jd),
		ScoreBreakdown:         breakdown,
		SkillMatches:           skillResult.Matches,
		MatchedCount:           skillResult.Stats.MatchedCount,
		PartialCount:           skillResult.Stats.PartialCount,
		MissingCount:           skillResult.Stats.MissingCount,
		Explanation:            explanation,
		ExperienceSignals:      experienceSignals(resume),
		ImprovementSuggestions: suggestions,
		AdvisoryNotice:         explain.AdvisoryNotice,
	}
}

// componentSkillScore 一类技能的分项得分，完全命中计100%，部分命中计50%
// 该类技能在JD中不存在时视为满分
func componentSkillScore(matched, partial, total int) float64 {
	if total == 0 {
		return 100.0
	}
	score := float64(matched*100+partial*50) / float64(total)
	return math.Min(100.0, score)
}

// experienceScore 经历深度分项得分
// 基准50分，每条经历内每类信号最多命中一次，多条经历各自叠加
func (e *Engine) experienceScore(resume *types.ParsedResume) float64 {
	if len(resume.Experience) == 0 {
		return 50.0
	}

	score := 50.0
	signals := e.cfg.ExperienceSignals
	for _, exp := range resume.Experience {
		text := strings.ToLower(exp.Description) + strings.ToLower(strings.Join(exp.Responsibilities, " "))

		if matchAny(e.leadership, text) {
			score += 10 * signals.Leadership.Weight
		}
		if matchAny(e.scale, text) {
			score += 10 * signals.Scale.Weight
		}
		if matchAny(e.technicalDepth, text) {
			score += 8 * signals.TechnicalDepth.Weight
		}
	}

	return math.Min(100.0, score)
}

func matchAny(res []*regexp.Regexp, text string) bool {
	for _, re := range res {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// educationScore 学历匹配分项得分
// 取所有学历条目中最高的学历档位分，JD有学历要求且专业方向词汇重叠时
// 一次性加 field_match_bonus
func (e *Engine) educationScore(resume *types.ParsedResume, jd *types.ParsedJobDescription) float64 {
	if len(resume.Education) == 0 {
		return 50.0
	}

	maxScore := 50.0
	for _, edu := range resume.Education {
		degreeLower := strings.ToLower(edu.Degree)
		for _, key := range e.degreeKeys {
			if strings.Contains(degreeLower, key) {
				maxScore = math.Max(maxScore, e.cfg.Education.DegreeLevels[key])
			}
		}
	}

	if jdEdu := strings.ToLower(jd.EducationRequirements); jdEdu != "" {
	fieldLoop:
		for _, edu := range resume.Education {
			if edu.FieldOfStudy == "" {
				continue
			}
			for _, word := range strings.Fields(strings.ToLower(edu.FieldOfStudy)) {
				if strings.Contains(jdEdu, word) {
					maxScore += e.cfg.Education.FieldMatchBonus
					break fieldLoop
				}
			}
		}
	}

	return math.Min(100.0, maxScore)
}

// boundScore 把分数夹在配置边界内并四舍五入取整
func (e *Engine) boundScore(score float64) int {
	bounds := e.cfg.Scoring.ScoreBounds
	bounded := math.Max(bounds.Min, math.Min(bounds.Max, score))
	return int(math.Round(bounded))
}

// overallConfidence 评估整体置信度
// 简历内容与JD覆盖都充分时为high，技能过少的降级判断在后面，
// 可以覆盖前面的high判定
func overallConfidence(resume *types.ParsedResume, jd *types.ParsedJobDescription) types.ConfidenceLevel {
	confidence := types.ConfidenceMedium
	if len(resume.Experience) > 0 && len(resume.Skills) > 5 && len(jd.RequiredSkills) > 0 {
		confidence = types.ConfidenceHigh
	}
	if len(resume.Skills) < 3 {
		confidence = types.ConfidenceLow
	}
	return confidence
}

// experienceSignals 提取参考性经历信号，只用于展示
func experienceSignals(resume *types.ParsedResume) *types.ExperienceSignals {
	leadershipSignals := []string{}
	ownershipCount := 0
	relevantYears := 0.0

	if len(resume.Experience) > 0 {
		// 年限的粗略估计，按每段经历1.5年折算
		relevantYears = float64(len(resume.Experience)) * 1.5

		for _, exp := range resume.Experience {
			textLower := strings.ToLower(exp.Title + " " + exp.Description + " " + strings.Join(exp.Responsibilities, " "))
			if containsAnyWord(textLower, leadershipVerbs) {
				leadershipSignals = append(leadershipSignals, fmt.Sprintf("Leadership detected in %s", exp.Company))
			}
			if containsAnyWord(textLower, ownershipVerbs) {
				ownershipCount++
			}
		}
	}

	ownershipStrength := "Low"
	switch {
	case ownershipCount >= 2:
		ownershipStrength = "High"
	case ownershipCount > 0:
		ownershipStrength = "Medium"
	}

	return &types.ExperienceSignals{
		RelevantYears:           relevantYears,
		OwnershipStrength:       ownershipStrength,
		LeadershipSignals:       leadershipSignals,
		ResponsibilityAlignment: fmt.Sprintf("Found %d roles with strong ownership signals.", ownershipCount),
	}
}

func containsAnyWord(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
