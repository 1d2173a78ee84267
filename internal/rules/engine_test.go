package rules

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-fit-go/internal/config"
	"resume-fit-go/internal/explain"
	"resume-fit-go/internal/types"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine(config.DefaultConfig(), newTestNormalizer(t))
	require.NoError(t, err, "默认配置下引擎应能成功构造")
	return e
}

func sampleResume() *types.ParsedResume {
	return &types.ParsedResume{
		RawText: "sample resume",
		Skills: []types.ExtractedSkill{
			{Name: "Python", CanonicalName: "Python", Confidence: types.ConfidenceHigh, SourceText: "Python, React, AWS", LineNumber: 12},
			{Name: "React", CanonicalName: "React", Confidence: types.ConfidenceHigh, SourceText: "Python, React, AWS", LineNumber: 12},
			{Name: "AWS", CanonicalName: "AWS", Confidence: types.ConfidenceHigh, SourceText: "Python, React, AWS", LineNumber: 12},
		},
		Experience: []types.ExperienceEntry{
			{
				Company:     "Acme Corp",
				Title:       "Senior Software Engineer",
				Description: "Led a team of 5 engineers to build microservices on AWS",
				Responsibilities: []string{
					"Designed and implemented the payment pipeline",
				},
				SourceText: "Senior Software Engineer - Acme Corp",
			},
		},
		Education: []types.EducationEntry{
			{
				Institution:  "State University",
				Degree:       "Bachelor's",
				FieldOfStudy: "Computer Science",
				SourceText:   "Bachelor of Science in Computer Science",
			},
		},
	}
}

func sampleJD(required, optional []string) *types.ParsedJobDescription {
	return &types.ParsedJobDescription{
		RawText:        "sample jd",
		Title:          "Backend Engineer",
		RequiredSkills: required,
		OptionalSkills: optional,
	}
}

func TestEvaluate_EndToEnd(t *testing.T) {
	e := newTestEngine(t)

	result := e.Evaluate(sampleResume(), sampleJD(
		[]string{"Python", "React"},
		[]string{"AWS", "Docker"},
	))

	// 必备技能全部命中100分，加分技能命中一半50分，
	// 经历命中leadership+scale+technical_depth三类信号 50+10+10+8=78，
	// 学士学历80分，加权 100*0.4+50*0.2+78*0.25+80*0.15 = 81.5 → 82
	assert.Equal(t, 82, result.JobFitScore)
	assert.Equal(t, 3, result.MatchedCount)
	assert.Equal(t, 1, result.MissingCount, "Docker应被判为缺失")
	assert.Equal(t, types.ConfidenceMedium, result.ConfidenceLevel)
	assert.Empty(t, result.ScoreBreakdown.PenaltiesApplied, "未缺失必备技能时不应有扣分")
	assert.Equal(t, explain.AdvisoryNotice, result.AdvisoryNotice)
	require.NotNil(t, result.ExperienceSignals)
	assert.Equal(t, "Medium", result.ExperienceSignals.OwnershipStrength, "单条经历命中所有权动词")
}

func TestEvaluate_Deterministic(t *testing.T) {
	e := newTestEngine(t)
	resume := sampleResume()
	jd := sampleJD([]string{"Python", "Kubernetes"}, []string{"Docker"})

	first := e.Evaluate(resume, jd)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, e.Evaluate(resume, jd), "相同输入必须得到逐字段一致的结果")
	}
}

func TestEvaluate_ScoreBounds(t *testing.T) {
	e := newTestEngine(t)

	cases := []struct {
		name   string
		resume *types.ParsedResume
		jd     *types.ParsedJobDescription
	}{
		{"空简历空JD", &types.ParsedResume{}, &types.ParsedJobDescription{}},
		{"空简历大量必备技能", &types.ParsedResume{}, sampleJD(
			[]string{"Python", "React", "Kubernetes", "Docker", "AWS", "Kafka", "Terraform", "GraphQL"}, nil)},
		{"完整简历", sampleResume(), sampleJD([]string{"Python"}, []string{"React"})},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := e.Evaluate(tc.resume, tc.jd)
			assert.GreaterOrEqual(t, result.JobFitScore, 0)
			assert.LessOrEqual(t, result.JobFitScore, 100)
		})
	}
}

func TestEvaluate_NoRequirementsNeutrality(t *testing.T) {
	e := newTestEngine(t)

	result := e.Evaluate(sampleResume(), sampleJD(nil, nil))

	// JD中不存在的技能类按满分处理，不奖励也不惩罚
	assert.Equal(t, 100.0, result.ScoreBreakdown.RequiredSkillsScore)
	assert.Equal(t, 100.0, result.ScoreBreakdown.OptionalSkillsScore)
	assert.Empty(t, result.ScoreBreakdown.PenaltiesApplied)
}

func TestEvaluate_MissingRequiredPenalty(t *testing.T) {
	e := newTestEngine(t)

	result := e.Evaluate(sampleResume(), sampleJD(
		[]string{"Python", "React", "Kafka"}, nil))

	require.Len(t, result.ScoreBreakdown.PenaltiesApplied, 1)
	assert.Contains(t, result.ScoreBreakdown.PenaltiesApplied[0], "1 missing required skill(s): -5 points")
}

func TestEvaluate_PenaltyFloor(t *testing.T) {
	e := newTestEngine(t)

	// 缺失6项，按每项-5应扣30分，但扣分下限为-20
	result := e.Evaluate(sampleResume(), sampleJD(
		[]string{"Python", "React", "AWS", "Kafka", "Terraform", "GraphQL", "Scala", "Elixir", "Haskell"}, nil))

	found := false
	for _, p := range result.ScoreBreakdown.PenaltiesApplied {
		if strings.Contains(p, "-20 points") {
			found = true
		}
	}
	assert.True(t, found, "扣分应被钳制在最大扣分值: %v", result.ScoreBreakdown.PenaltiesApplied)
}

func TestEvaluate_RequiredSkillHardFloor(t *testing.T) {
	e := newTestEngine(t)

	// 经历和学历分都拉满，但必备技能只命中1/4，
	// 其他分项无法绕过硬性下限
	resume := &types.ParsedResume{
		Skills: []types.ExtractedSkill{
			{Name: "Python", CanonicalName: "Python", Confidence: types.ConfidenceHigh, SourceText: "Python expert", LineNumber: 1},
		},
		Experience: []types.ExperienceEntry{
			{Company: "A", Title: "Architect", Description: "Architected microservices serving 2 million users, led a team of 12 engineers"},
			{Company: "B", Title: "Lead", Description: "Designed and implemented large-scale distributed systems, managed a team"},
			{Company: "C", Title: "Principal", Description: "Built from scratch a high-traffic platform, mentored 8 developers"},
		},
		Education: []types.EducationEntry{
			{Institution: "Tech University", Degree: "PhD", FieldOfStudy: "Computer Science"},
		},
	}
	jd := sampleJD([]string{"Python", "React", "Kubernetes", "Docker"}, nil)

	result := e.Evaluate(resume, jd)

	assert.Equal(t, 40, result.JobFitScore, "命中率低于一半时总分被压到40")
	capped := false
	for _, p := range result.ScoreBreakdown.PenaltiesApplied {
		if strings.Contains(p, "Score capped at 40") {
			capped = true
		}
	}
	assert.True(t, capped, "扣分明细应记录封顶原因: %v", result.ScoreBreakdown.PenaltiesApplied)
}

func TestEvaluate_ConfidenceLevels(t *testing.T) {
	e := newTestEngine(t)

	// 技能少于3个时置信度降为low，即使有经历
	sparse := &types.ParsedResume{
		Skills: []types.ExtractedSkill{
			{Name: "Python", CanonicalName: "Python", Confidence: types.ConfidenceHigh},
		},
		Experience: []types.ExperienceEntry{{Company: "A", Title: "Engineer"}},
	}
	result := e.Evaluate(sparse, sampleJD([]string{"Python"}, nil))
	assert.Equal(t, types.ConfidenceLow, result.ConfidenceLevel)

	// 有经历、技能超过5个、JD有必备技能时为high
	rich := sampleResume()
	rich.Skills = append(rich.Skills,
		types.ExtractedSkill{Name: "Docker", CanonicalName: "Docker", Confidence: types.ConfidenceHigh},
		types.ExtractedSkill{Name: "Kubernetes", CanonicalName: "Kubernetes", Confidence: types.ConfidenceHigh},
		types.ExtractedSkill{Name: "Go", CanonicalName: "Go", Confidence: types.ConfidenceHigh},
	)
	result = e.Evaluate(rich, sampleJD([]string{"Python"}, nil))
	assert.Equal(t, types.ConfidenceHigh, result.ConfidenceLevel)
}

func TestEvaluate_ExplanationMatchesStructuredResult(t *testing.T) {
	e := newTestEngine(t)

	result := e.Evaluate(sampleResume(), sampleJD(
		[]string{"Python", "React", "Kafka"},
		[]string{"AWS"},
	))

	// 解释文本中的数字必须与结构化结果一致，不允许口径漂移
	assert.Contains(t, result.Explanation,
		fmt.Sprintf("Your job-fit score is %d/100", result.JobFitScore))
	assert.Contains(t, result.Explanation,
		fmt.Sprintf("• %d skills fully matched", result.MatchedCount))
	assert.Contains(t, result.Explanation,
		fmt.Sprintf("• %d required skills not found", result.MissingCount))
	assert.Contains(t, result.Explanation, "ADVISORY NOTICE")
}

func TestEvaluate_Suggestions(t *testing.T) {
	e := newTestEngine(t)

	result := e.Evaluate(sampleResume(), sampleJD(
		[]string{"Python", "Kafka", "Terraform"},
		[]string{"GraphQL"},
	))

	require.NotEmpty(t, result.ImprovementSuggestions)
	assert.LessOrEqual(t, len(result.ImprovementSuggestions), 5)
	first := result.ImprovementSuggestions[0]
	assert.Equal(t, 1, first.Priority, "缺失必备技能的建议优先级最高")
	assert.Equal(t, "Missing Required Skill", first.Category)
	for i := 1; i < len(result.ImprovementSuggestions); i++ {
		assert.GreaterOrEqual(t, result.ImprovementSuggestions[i].Priority,
			result.ImprovementSuggestions[i-1].Priority, "建议必须按优先级非降序排列")
	}
}

func TestEvaluate_ExperienceScoreNeutralWithoutEntries(t *testing.T) {
	e := newTestEngine(t)

	result := e.Evaluate(&types.ParsedResume{
		Skills: sampleResume().Skills,
	}, sampleJD([]string{"Python"}, nil))

	assert.Equal(t, 50.0, result.ScoreBreakdown.ExperienceDepthScore, "无经历区时给中性分")
	assert.Equal(t, 50.0, result.ScoreBreakdown.EducationMatchScore, "无学历区时给中性分")
}

func TestEvaluate_EducationFieldBonus(t *testing.T) {
	e := newTestEngine(t)

	jd := sampleJD([]string{"Python"}, nil)
	jd.EducationRequirements = "Bachelor's degree in Computer Science or related field"

	result := e.Evaluate(sampleResume(), jd)

	// 学士80分 + 专业方向重叠一次性加10分
	assert.Equal(t, 90.0, result.ScoreBreakdown.EducationMatchScore)
}
