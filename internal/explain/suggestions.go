package explain

import (
	"fmt"
	"regexp"
	"strings"

	"resume-fit-go/internal/types"
)

// ResumeQuality 简历本身的质量体检结果，用于生成通用改进建议
type ResumeQuality struct {
	HasExperience   bool `json:"has_experience"`
	HasEducation    bool `json:"has_education"`
	HasSkills       bool `json:"has_skills"`
	HasProjects     bool `json:"has_projects"`
	HasMetrics      bool `json:"has_metrics"`
	HasActionVerbs  bool `json:"has_action_verbs"`
	ExperienceCount int  `json:"experience_count"`
	SkillCount      int  `json:"skill_count"`
}

var metricsRegexp = regexp.MustCompile(`(?i)\d+%|\d+x|\$\d+|\d+ (users|customers|requests|team)`)

var actionVerbs = []string{
	"led", "developed", "built", "created", "managed",
	"implemented", "designed", "improved", "optimized",
}

// AnalyzeResumeQuality 检查简历的常见质量问题
func AnalyzeResumeQuality(resume *types.ParsedResume) ResumeQuality {
	q := ResumeQuality{
		HasExperience:   len(resume.Experience) > 0,
		HasEducation:    len(resume.Education) > 0,
		HasSkills:       len(resume.Skills) > 0,
		HasProjects:     len(resume.Projects) > 0,
		ExperienceCount: len(resume.Experience),
		SkillCount:      len(resume.Skills),
	}

	for _, exp := range resume.Experience {
		allText := exp.Description + strings.Join(exp.Responsibilities, " ")
		if metricsRegexp.MatchString(allText) {
			q.HasMetrics = true
		}
		textLower := strings.ToLower(allText)
		for _, verb := range actionVerbs {
			if strings.Contains(textLower, verb) {
				q.HasActionVerbs = true
				break
			}
		}
	}

	return q
}

// GenerateSuggestions 生成按优先级排序的改进建议
//
// 优先级：1缺失必备技能 → 2部分命中需补强证据 → 3经历区/量化指标 →
// 4加分技能，建议总数不超过 maxSuggestions
func GenerateSuggestions(
	matches []types.SkillMatch,
	quality ResumeQuality,
	maxSuggestions int,
) []types.ImprovementSuggestion {
	suggestions := []types.ImprovementSuggestion{}

	var missingRequired, partialRequired, missingOptional []types.SkillMatch
	for _, m := range matches {
		switch {
		case m.MatchType == types.MatchMissing && m.JDPriority == types.PriorityRequired:
			missingRequired = append(missingRequired, m)
		case m.MatchType == types.MatchPartial && m.JDPriority == types.PriorityRequired:
			partialRequired = append(partialRequired, m)
		case m.MatchType == types.MatchMissing && m.JDPriority == types.PriorityOptional:
			missingOptional = append(missingOptional, m)
		}
	}

	for _, m := range limitMatches(missingRequired, 2) {
		suggestions = append(suggestions, types.ImprovementSuggestion{
			Priority:       1,
			Category:       "Missing Required Skill",
			Suggestion:     fmt.Sprintf(suggestionMissingSkill, m.SkillName, m.SkillName),
			AffectedSkills: []string{m.SkillName},
		})
	}

	for _, m := range limitMatches(partialRequired, 2) {
		suggestions = append(suggestions, types.ImprovementSuggestion{
			Priority:       2,
			Category:       "Strengthen Evidence",
			Suggestion:     fmt.Sprintf(suggestionStrengthen, m.SkillName),
			EvidenceGap:    "mentioned without concrete examples",
			AffectedSkills: []string{m.SkillName},
		})
	}

	if !quality.HasExperience {
		suggestions = append(suggestions, types.ImprovementSuggestion{
			Priority:   3,
			Category:   "Experience Section",
			Suggestion: suggestionExperience,
		})
	} else if !quality.HasMetrics {
		suggestions = append(suggestions, types.ImprovementSuggestion{
			Priority:   3,
			Category:   "Quantify Impact",
			Suggestion: suggestionAddMetrics,
		})
	}

	for _, m := range limitMatches(missingOptional, 2) {
		suggestions = append(suggestions, types.ImprovementSuggestion{
			Priority:       4,
			Category:       "Nice to Have",
			Suggestion:     fmt.Sprintf("Consider adding %q if you have experience with it.", m.SkillName),
			AffectedSkills: []string{m.SkillName},
		})
	}

	// 生成顺序即优先级顺序，截断即可
	if maxSuggestions > 0 && len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions
}

func limitMatches(matches []types.SkillMatch, n int) []types.SkillMatch {
	if len(matches) > n {
		return matches[:n]
	}
	return matches
}

// FormatSuggestionsText 把建议列表排版成可读文本块
func FormatSuggestionsText(suggestions []types.ImprovementSuggestion) string {
	if len(suggestions) == 0 {
		return "No specific improvements suggested. Your resume aligns well with this position!"
	}

	var b strings.Builder
	b.WriteString("💡 Improvement Suggestions\n")
	b.WriteString("─────────────────────────────────────────")
	for i, s := range suggestions {
		fmt.Fprintf(&b, "\n\n%d. %s %s", i+1, priorityIcon(s.Priority), s.Category)
		fmt.Fprintf(&b, "\n\n   %s", s.Suggestion)
	}
	b.WriteString("\n\n─────────────────────────────────────────")
	return b.String()
}

func priorityIcon(priority int) string {
	switch priority {
	case 1:
		return "🔴"
	case 2:
		return "🟠"
	case 3:
		return "🟡"
	case 4:
		return "🟢"
	default:
		return "⚪"
	}
}
