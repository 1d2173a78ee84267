package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-fit-go/internal/types"
)

func singleColumnBlocks(lines ...string) []types.TextBlock {
	blocks := make([]types.TextBlock, 0, len(lines))
	for i, line := range lines {
		blocks = append(blocks, types.TextBlock{
			Text: line,
			Page: 1,
			Line: i + 1,
			Top:  float64(i+1) * 20,
		})
	}
	return blocks
}

func TestFindSectionBoundaries_PlainHeaders(t *testing.T) {
	blocks := singleColumnBlocks(
		"John Doe",
		"EXPERIENCE",
		"Software Engineer - Acme Corp",
		"- Built backend services",
		"EDUCATION",
		"Bachelor of Science, MIT University",
	)

	boundaries := findSectionBoundaries(blocks)

	exp, ok := boundaries[types.SectionExperience]
	require.True(t, ok, "应识别出经历章节")
	assert.Equal(t, types.SectionBoundary{Start: 2, End: 4}, exp, "标题块不计入自身区间")

	edu, ok := boundaries[types.SectionEducation]
	require.True(t, ok)
	assert.Equal(t, types.SectionBoundary{Start: 5, End: 6}, edu)
}

func TestFindSectionBoundaries_DecoratedHeaders(t *testing.T) {
	cases := []string{
		"--- EXPERIENCE ---",
		"*** Work History ***",
		"2. Experience",
		"II. Experience",
		"► Experience",
		"• Experience:",
		"[Experience]",
		"Experience:",
		"— Experience —",
	}

	for _, header := range cases {
		blocks := singleColumnBlocks("John Doe", header, "Software Engineer - Acme")
		boundaries := findSectionBoundaries(blocks)
		_, ok := boundaries[types.SectionExperience]
		assert.True(t, ok, "装饰标题 %q 应被识别", header)
	}
}

func TestFindSectionBoundaries_ProseDoesNotFalsePositive(t *testing.T) {
	blocks := singleColumnBlocks(
		"John Doe",
		"I have 5 years of experience in building distributed systems and delivering products to enterprise clients.",
		"My education at a top university taught me the skills needed for modern software work environments today.",
	)

	boundaries := findSectionBoundaries(blocks)
	assert.NotContains(t, boundaries, types.SectionExperience, "正文中顺带出现的词不应被当成标题")
	assert.NotContains(t, boundaries, types.SectionEducation)
}

func TestFindSectionBoundaries_LongHeaderRejected(t *testing.T) {
	// 逗号让装饰外壳也能匹配到，只剩80字符守卫拦截
	longLine := "Experience, " + strings.Repeat("I built and shipped software, ", 3) + "across many companies"
	blocks := singleColumnBlocks("John Doe", longLine)

	boundaries := findSectionBoundaries(blocks)
	assert.NotContains(t, boundaries, types.SectionExperience)
}

func TestFindSectionBoundaries_TwoColumn(t *testing.T) {
	// 左栏经历、右栏技能与教育，两侧均超过5个块触发双栏处理
	blocks := []types.TextBlock{
		{Text: "EXPERIENCE", Top: 20, Left: 0},
		{Text: "SKILLS", Top: 20, Left: 300},
		{Text: "Software Engineer - Acme Corp", Top: 40, Left: 0},
		{Text: "Python, Go, Docker", Top: 40, Left: 300},
		{Text: "- Built APIs in Python", Top: 60, Left: 0},
		{Text: "EDUCATION", Top: 60, Left: 300},
		{Text: "- Led a team of 5 engineers", Top: 80, Left: 0},
		{Text: "Bachelor of Science", Top: 80, Left: 300},
		{Text: "Senior Developer - Beta Inc", Top: 100, Left: 0},
		{Text: "MIT University", Top: 100, Left: 300},
		{Text: "- Designed microservices", Top: 120, Left: 0},
		{Text: "2015 - 2019", Top: 120, Left: 300},
	}

	boundaries := findSectionBoundaries(blocks)

	require.Contains(t, boundaries, types.SectionExperience)
	require.Contains(t, boundaries, types.SectionSkills)
	require.Contains(t, boundaries, types.SectionEducation)

	// 技能章节终止于同列的下一个标题（EDUCATION），不会吞掉右栏后续内容
	skills := boundaries[types.SectionSkills]
	assert.Equal(t, 2, skills.Start)
	assert.Equal(t, 5, skills.End)
}

func TestDetectSections_EndToEnd(t *testing.T) {
	rawText := `John Doe
john.doe@example.com | github.com/johndoe

EXPERIENCE
Software Engineer - Acme Corp
2019 - 2022
- Built backend services with Python and Docker
- Led a team of 5 engineers

EDUCATION
Bachelor of Science in Computer Science
MIT University
2015 - 2019

SKILLS
Python, Go, Docker, Kubernetes, PostgreSQL
`
	blocks := BlocksFromText(rawText)
	sections := DetectSections(rawText, blocks)

	require.NotEmpty(t, sections.Experience, "应抽取出经历条目")
	assert.Equal(t, "Software Engineer", sections.Experience[0].Company)
	assert.Len(t, sections.Experience[0].Responsibilities, 2)

	require.NotEmpty(t, sections.Education)
	assert.Equal(t, "Bachelor's", sections.Education[0].Degree)

	canonicals := make(map[string]bool)
	for _, s := range sections.Skills {
		canonicals[s.CanonicalName] = true
	}
	for _, want := range []string{"Python", "Go", "Docker", "Kubernetes", "PostgreSQL"} {
		assert.True(t, canonicals[want], "技能 %s 应被抽取", want)
	}

	assert.Equal(t, "john.doe@example.com", ExtractContactInfo(rawText).Email)
}

func TestDetectSections_SkillsMergedFromWholeDocument(t *testing.T) {
	// 技能只出现在经历要点里，没有技能章节，也必须被全文扫描兜住
	rawText := `EXPERIENCE
Backend Developer - Acme
- Implemented services in Rust and deployed with Terraform
`
	sections := DetectSections(rawText, BlocksFromText(rawText))

	canonicals := make(map[string]bool)
	for _, s := range sections.Skills {
		canonicals[s.CanonicalName] = true
	}
	assert.True(t, canonicals["Rust"])
	assert.True(t, canonicals["Terraform"])
}

func TestExtractSectionFromRawText_Fallback(t *testing.T) {
	rawText := `WORK EXPERIENCE
Software Engineer at Acme Corp from 2019 to 2022, building
distributed backend systems and mentoring junior developers.
SKILLS
Python, Go`

	text := extractSectionFromRawText(rawText, types.SectionExperience)
	require.NotEmpty(t, text, "原文兜底应截取到经历内容")
	assert.Contains(t, text, "Software Engineer")
	assert.NotContains(t, text, "Python, Go", "截取应终止于下一章节标题")
}

func TestExtractSectionFromRawText_RejectsShortCapture(t *testing.T) {
	rawText := "EXPERIENCE\nshort\nEDUCATION\nBachelor of Science"
	assert.Empty(t, extractSectionFromRawText(rawText, types.SectionExperience),
		"截取内容不足50字符时应放弃")
}

func TestDetectSections_EmptyInput(t *testing.T) {
	sections := DetectSections("", nil)
	assert.Empty(t, sections.Experience)
	assert.Empty(t, sections.Education)
	assert.Empty(t, sections.Skills)
}
