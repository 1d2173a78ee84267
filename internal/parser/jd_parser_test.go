package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-fit-go/internal/types"
)

const sampleJD = `Title: Senior Backend Engineer
Company: Acme Corp

About
Acme Corp builds developer tools used by millions.

Requirements:
- 5+ years of experience with Python and Django
- Strong knowledge of PostgreSQL and Redis
- Bachelor's degree in Computer Science

Nice to have:
- Experience with Kubernetes
- Familiarity with Terraform
`

func TestParseJobDescription_SectionRouting(t *testing.T) {
	jd := ParseJobDescription(sampleJD)

	assert.Equal(t, "Senior Backend Engineer", jd.Title)
	assert.Equal(t, "Acme Corp", jd.Company)

	assert.Contains(t, jd.RequiredSkills, "Python")
	assert.Contains(t, jd.RequiredSkills, "Django")
	assert.Contains(t, jd.RequiredSkills, "PostgreSQL")
	assert.NotContains(t, jd.RequiredSkills, "Kubernetes", "加分章节的技能不应进入必备列表")

	assert.Contains(t, jd.OptionalSkills, "Kubernetes")
	assert.Contains(t, jd.OptionalSkills, "Terraform")
	assert.NotContains(t, jd.OptionalSkills, "Python")
}

func TestParseJobDescription_RequirementRecords(t *testing.T) {
	jd := ParseJobDescription(sampleJD)

	require.NotEmpty(t, jd.Requirements)
	var required, optional int
	for _, req := range jd.Requirements {
		assert.NotEmpty(t, req.Text)
		switch req.Priority {
		case types.PriorityRequired:
			required++
		case types.PriorityOptional:
			optional++
		}
	}
	assert.Equal(t, 3, required, "必备章节有3个要点")
	assert.Equal(t, 2, optional)
}

func TestParseJobDescription_ExperienceAndEducation(t *testing.T) {
	jd := ParseJobDescription(sampleJD)

	assert.Contains(t, jd.ExperienceRequirements, "5+")
	assert.Contains(t, jd.ExperienceRequirements, "years")
	assert.Contains(t, jd.EducationRequirements, "Bachelor")
}

func TestParseJobDescription_NoSectionsFallsBackToFullText(t *testing.T) {
	jd := ParseJobDescription("We need someone who knows Python and Docker for our platform team.")

	assert.Contains(t, jd.RequiredSkills, "Python")
	assert.Contains(t, jd.RequiredSkills, "Docker")
	assert.Empty(t, jd.OptionalSkills)
}

func TestParseJobDescription_Deterministic(t *testing.T) {
	first := ParseJobDescription(sampleJD)
	second := ParseJobDescription(sampleJD)
	assert.Equal(t, first, second, "同一输入必须得到完全相同的结构")
}

func TestParseJobDescription_SkillsDeduplicated(t *testing.T) {
	jd := ParseJobDescription("Requirements:\n- Python scripting\n- Advanced Python usage\n")

	count := 0
	for _, s := range jd.RequiredSkills {
		if s == "Python" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestSplitJDSections(t *testing.T) {
	sections := splitJDSections(sampleJD)

	var names []string
	for _, s := range sections {
		names = append(names, s.name)
	}
	assert.Contains(t, names, "general")
	assert.Contains(t, names, "requirements:")
	assert.Contains(t, names, "nice to have:")
}
