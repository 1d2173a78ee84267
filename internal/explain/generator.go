package explain

import (
	"fmt"
	"strconv"
	"strings"

	"resume-fit-go/internal/types"
)

// GenerateExplanation 由评估数据拼装完整的可读解释
// 文本中的所有数字都直接取自结构化结果，不另行计算命中数，
// 避免解释与结构化数据出现口径漂移
func GenerateExplanation(
	score int,
	matches []types.SkillMatch,
	breakdown types.ScoreBreakdown,
	weights types.ScoreWeights,
) string {
	var matchedCount, partialCount, missingCount, totalSkills int
	for _, m := range matches {
		totalSkills++
		switch m.MatchType {
		case types.MatchMatched:
			matchedCount++
		case types.MatchPartial:
			partialCount++
		case types.MatchMissing:
			missingCount++
		}
	}

	matchedPercentage := 0.0
	if totalSkills > 0 {
		matchedPercentage = float64(matchedCount) / float64(totalSkills) * 100
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Your job-fit score is %d/100.\n\n", score)
	b.WriteString("This score reflects:\n")
	fmt.Fprintf(&b, "• %d skills fully matched (%.0f%%)\n", matchedCount, matchedPercentage)
	fmt.Fprintf(&b, "• %d skills partially matched\n", partialCount)
	fmt.Fprintf(&b, "• %d required skills not found\n\n", missingCount)
	b.WriteString(scoreBreakdownText(score, breakdown, weights))

	label, description := ScoreLabel(score)
	fmt.Fprintf(&b, "\n\n📊 Result: %s\n%s", label, description)

	b.WriteString(skillDetails(matches))
	b.WriteString(advisoryBlock)

	return b.String()
}

// scoreBreakdownText 生成分项得分明细表
func scoreBreakdownText(score int, breakdown types.ScoreBreakdown, weights types.ScoreWeights) string {
	requiredContribution := breakdown.RequiredSkillsScore * weights.RequiredSkills
	optionalContribution := breakdown.OptionalSkillsScore * weights.OptionalSkills
	experienceContribution := breakdown.ExperienceDepthScore * weights.ExperienceDepth
	educationContribution := breakdown.EducationMatchScore * weights.EducationMatch
	subtotal := requiredContribution + optionalContribution + experienceContribution + educationContribution
	penalties := sumPenalties(breakdown.PenaltiesApplied)

	var b strings.Builder
	b.WriteString("Score Breakdown:\n")
	b.WriteString("─────────────────────────────\n")
	fmt.Fprintf(&b, "Required Skills:    %6.1f%% × %.0f%% = %5.1f\n",
		breakdown.RequiredSkillsScore, weights.RequiredSkills*100, requiredContribution)
	fmt.Fprintf(&b, "Preferred Skills:   %6.1f%% × %.0f%% = %5.1f\n",
		breakdown.OptionalSkillsScore, weights.OptionalSkills*100, optionalContribution)
	fmt.Fprintf(&b, "Experience Depth:   %6.1f%% × %.0f%% = %5.1f\n",
		breakdown.ExperienceDepthScore, weights.ExperienceDepth*100, experienceContribution)
	fmt.Fprintf(&b, "Education Match:    %6.1f%% × %.0f%% = %5.1f\n",
		breakdown.EducationMatchScore, weights.EducationMatch*100, educationContribution)
	b.WriteString("─────────────────────────────\n")
	fmt.Fprintf(&b, "Subtotal:                              %5.1f\n", subtotal)
	fmt.Fprintf(&b, "Penalties Applied:                     %5.1f\n", penalties)
	b.WriteString("─────────────────────────────\n")
	fmt.Fprintf(&b, "Final Score:                           %5d", score)
	return b.String()
}

// sumPenalties 从扣分明细行里累加扣分值
// 明细行格式约定为 "原因: 数值 points"，解析不出数值的行跳过
func sumPenalties(lines []string) float64 {
	var total float64
	for _, line := range lines {
		_, after, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		fields := strings.Fields(after)
		if len(fields) == 0 {
			continue
		}
		if v, err := strconv.ParseFloat(fields[0], 64); err == nil {
			total += v
		}
	}
	return total
}

// skillDetails 生成逐技能的匹配明细区块
func skillDetails(matches []types.SkillMatch) string {
	var required, optional []types.SkillMatch
	for _, m := range matches {
		if m.JDPriority == types.PriorityRequired {
			required = append(required, m)
		} else {
			optional = append(optional, m)
		}
	}

	var b strings.Builder
	if len(required) > 0 {
		fmt.Fprintf(&b, "\n\n🎯 Required Skills (%d/%d matched)", countMatched(required), len(required))
		for _, m := range required {
			b.WriteString("\n" + formatSkillMatch(m))
		}
	}
	if len(optional) > 0 {
		fmt.Fprintf(&b, "\n\n📌 Preferred Skills (%d/%d matched)", countMatched(optional), len(optional))
		for _, m := range optional {
			b.WriteString("\n" + formatSkillMatch(m))
		}
	}
	return b.String()
}

func countMatched(matches []types.SkillMatch) int {
	n := 0
	for _, m := range matches {
		if m.MatchType == types.MatchMatched {
			n++
		}
	}
	return n
}

func formatSkillMatch(m types.SkillMatch) string {
	switch m.MatchType {
	case types.MatchMatched:
		evidence := m.Evidence
		if len(evidence) > 50 {
			evidence = truncateRunes(evidence, 50) + "..."
		}
		if evidence == "" {
			evidence = "found in resume"
		}
		return fmt.Sprintf("✓ %s: Found in your resume (%s)", m.SkillName, evidence)
	case types.MatchPartial:
		return fmt.Sprintf("◐ %s: Partially matched (%s confidence)", m.SkillName, m.Confidence)
	default:
		return fmt.Sprintf("✗ %s: Not found in your resume", m.SkillName)
	}
}

// truncateRunes 按字符截断，避免在多字节字符中间截开
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
