package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-fit-go/internal/types"
)

func skillByCanonical(skills []types.ExtractedSkill, canonical string) (types.ExtractedSkill, bool) {
	for _, s := range skills {
		if s.CanonicalName == canonical {
			return s, true
		}
	}
	return types.ExtractedSkill{}, false
}

func TestExtractSkillsFromText_Basic(t *testing.T) {
	text := "Proficient in Python, React and Docker. Deployed on AWS with Kubernetes."
	skills := ExtractSkillsFromText(text)

	for _, want := range []string{"Python", "React", "Docker", "AWS", "Kubernetes"} {
		_, ok := skillByCanonical(skills, want)
		assert.True(t, ok, "应抽取到 %s", want)
	}
}

func TestExtractSkillsFromText_DedupByCanonical(t *testing.T) {
	text := "Python, python, PYTHON and more Python"
	skills := ExtractSkillsFromText(text)

	count := 0
	for _, s := range skills {
		if s.CanonicalName == "Python" {
			count++
		}
	}
	assert.Equal(t, 1, count, "同一标准名只保留首次命中")
}

func TestExtractSkillsFromText_EvidenceContext(t *testing.T) {
	text := strings.Repeat("x", 100) + " built services with Kubernetes in production " + strings.Repeat("y", 100)
	skills := ExtractSkillsFromText(text)

	skill, ok := skillByCanonical(skills, "Kubernetes")
	require.True(t, ok)
	assert.Contains(t, skill.SourceText, "Kubernetes", "证据片段应包含命中的原文")
	assert.LessOrEqual(t, len(skill.SourceText), 120, "证据片段限制在命中位置前后各50字符")
	assert.Equal(t, types.ConfidenceHigh, skill.Confidence)
}

func TestExtractSkillsFromText_WordBoundaries(t *testing.T) {
	// "django"不能命中Go，"github"不能命中Git
	skills := ExtractSkillsFromText("Experienced with django and github actions")

	_, hasGo := skillByCanonical(skills, "Go")
	assert.False(t, hasGo)
	_, hasGit := skillByCanonical(skills, "Git")
	assert.False(t, hasGit)
	_, hasDjango := skillByCanonical(skills, "Django")
	assert.True(t, hasDjango)
	_, hasGitHub := skillByCanonical(skills, "GitHub")
	assert.True(t, hasGitHub)
}

func TestExtractSkillsFromText_SingleLetterR(t *testing.T) {
	skills := ExtractSkillsFromText("Statistical analysis in R, Python and MATLAB")
	skill, ok := skillByCanonical(skills, "R")
	require.True(t, ok)
	assert.Equal(t, "r", skill.Name)
}

func TestExtractSkillsFromText_Empty(t *testing.T) {
	assert.Empty(t, ExtractSkillsFromText(""))
}

func TestExtractSkillsFromText_HealthcareDomain(t *testing.T) {
	text := "Nursing background with patient care experience, HIPAA trained, CPR certified, Epic EMR"
	skills := ExtractSkillsFromText(text)

	for _, want := range []string{"Patient Care", "HIPAA", "CPR", "Epic", "EMR", "Nursing"} {
		_, ok := skillByCanonical(skills, want)
		assert.True(t, ok, "应抽取到 %s", want)
	}
}
