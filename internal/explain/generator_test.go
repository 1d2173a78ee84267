package explain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-fit-go/internal/types"
)

func TestScoreLabel_Bands(t *testing.T) {
	cases := []struct {
		score    int
		expected string
	}{
		{100, "Excellent Match"},
		{85, "Excellent Match"},
		{84, "Good Match"},
		{70, "Good Match"},
		{69, "Fair Match"},
		{55, "Fair Match"},
		{54, "Needs Work"},
		{0, "Needs Work"},
	}

	for _, tc := range cases {
		label, description := ScoreLabel(tc.score)
		assert.Equal(t, tc.expected, label, "分数 %d 的标签", tc.score)
		assert.NotEmpty(t, description)
	}
}

func sampleMatches() []types.SkillMatch {
	return []types.SkillMatch{
		{SkillName: "Python", CanonicalName: "Python", MatchType: types.MatchMatched,
			Confidence: types.ConfidenceHigh, JDPriority: types.PriorityRequired,
			Evidence: "5 years of Python development", MatchScore: 1.0},
		{SkillName: "Kubernetes", CanonicalName: "Kubernetes", MatchType: types.MatchPartial,
			Confidence: types.ConfidenceMedium, JDPriority: types.PriorityRequired,
			Evidence: "container orchestration", MatchScore: 0.75},
		{SkillName: "Kafka", CanonicalName: "Kafka", MatchType: types.MatchMissing,
			Confidence: types.ConfidenceLow, JDPriority: types.PriorityRequired},
		{SkillName: "GraphQL", CanonicalName: "GraphQL", MatchType: types.MatchMissing,
			Confidence: types.ConfidenceLow, JDPriority: types.PriorityOptional},
	}
}

func TestGenerateExplanation_Structure(t *testing.T) {
	breakdown := types.ScoreBreakdown{
		RequiredSkillsScore:  50,
		OptionalSkillsScore:  0,
		ExperienceDepthScore: 78,
		EducationMatchScore:  80,
		PenaltiesApplied:     []string{"2 missing required skill(s): -10 points"},
	}
	weights := types.ScoreWeights{RequiredSkills: 0.4, OptionalSkills: 0.2, ExperienceDepth: 0.25, EducationMatch: 0.15}

	text := GenerateExplanation(61, sampleMatches(), breakdown, weights)

	assert.Contains(t, text, "Your job-fit score is 61/100")
	assert.Contains(t, text, "• 1 skills fully matched (25%)")
	assert.Contains(t, text, "• 1 skills partially matched")
	assert.Contains(t, text, "• 2 required skills not found")
	assert.Contains(t, text, "Score Breakdown:")
	assert.Contains(t, text, "📊 Result: Fair Match")
	assert.Contains(t, text, "🎯 Required Skills (1/3 matched)")
	assert.Contains(t, text, "📌 Preferred Skills (0/1 matched)")
	assert.Contains(t, text, "✓ Python: Found in your resume (5 years of Python development)")
	assert.Contains(t, text, "◐ Kubernetes: Partially matched (medium confidence)")
	assert.Contains(t, text, "✗ Kafka: Not found in your resume")
	assert.Contains(t, text, "ADVISORY NOTICE")
}

func TestSumPenalties(t *testing.T) {
	assert.Equal(t, 0.0, sumPenalties(nil))
	assert.Equal(t, -10.0, sumPenalties([]string{"2 missing required skill(s): -10 points"}))
	// 封顶说明行没有数值，应被跳过而不是报错
	assert.Equal(t, -15.0, sumPenalties([]string{
		"3 missing required skill(s): -15 points",
		"Score capped at 40: below 50% required skills matched",
	}))
}

func TestGenerateSuggestions_PriorityOrder(t *testing.T) {
	quality := ResumeQuality{HasExperience: true, HasMetrics: false}

	suggestions := GenerateSuggestions(sampleMatches(), quality, 5)

	require.NotEmpty(t, suggestions)
	assert.Equal(t, 1, suggestions[0].Priority)
	assert.Equal(t, "Missing Required Skill", suggestions[0].Category)
	assert.Equal(t, []string{"Kafka"}, suggestions[0].AffectedSkills)

	for i := 1; i < len(suggestions); i++ {
		assert.GreaterOrEqual(t, suggestions[i].Priority, suggestions[i-1].Priority)
	}

	categories := make([]string, 0, len(suggestions))
	for _, s := range suggestions {
		categories = append(categories, s.Category)
	}
	assert.Contains(t, categories, "Strengthen Evidence", "部分命中的必备技能应有补强建议")
	assert.Contains(t, categories, "Quantify Impact", "缺少量化指标时应有相应建议")
	assert.Contains(t, categories, "Nice to Have")
}

func TestGenerateSuggestions_MaxLimit(t *testing.T) {
	matches := []types.SkillMatch{}
	for _, name := range []string{"A", "B", "C", "D"} {
		matches = append(matches, types.SkillMatch{
			SkillName: name, MatchType: types.MatchMissing, JDPriority: types.PriorityRequired,
		})
	}
	suggestions := GenerateSuggestions(matches, ResumeQuality{}, 2)
	assert.Len(t, suggestions, 2)
}

func TestAnalyzeResumeQuality(t *testing.T) {
	resume := &types.ParsedResume{
		Experience: []types.ExperienceEntry{
			{Description: "Improved performance by 40% and led the migration",
				Responsibilities: []string{"Served 10000 users daily"}},
		},
		Skills: []types.ExtractedSkill{{Name: "Python"}},
	}

	q := AnalyzeResumeQuality(resume)
	assert.True(t, q.HasExperience)
	assert.True(t, q.HasMetrics, "百分比与用户量都属于量化指标")
	assert.True(t, q.HasActionVerbs, "led与improved属于行动动词")
	assert.False(t, q.HasEducation)
	assert.Equal(t, 1, q.SkillCount)

	empty := AnalyzeResumeQuality(&types.ParsedResume{})
	assert.False(t, empty.HasExperience)
	assert.False(t, empty.HasMetrics)
}

func TestFormatSuggestionsText(t *testing.T) {
	assert.Contains(t, FormatSuggestionsText(nil), "aligns well")

	text := FormatSuggestionsText([]types.ImprovementSuggestion{
		{Priority: 1, Category: "Missing Required Skill", Suggestion: "Add Kafka"},
	})
	assert.Contains(t, text, "1. 🔴 Missing Required Skill")
	assert.Contains(t, text, "Add Kafka")
}
