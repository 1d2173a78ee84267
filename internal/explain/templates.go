package explain

// 纯模板拼装，不依赖任何语言模型

// AdvisoryNotice 所有评估结果必须携带的免责声明
const AdvisoryNotice = "This analysis is advisory only and should not be used as the sole basis for hiring decisions."

// advisoryBlock 附在完整解释文本末尾的免责声明区块
const advisoryBlock = `
───────────────────────────────────────────────────────────────────
⚠️ ADVISORY NOTICE
This analysis is for informational purposes only and should not be
used as the sole basis for hiring decisions. Actual job fit depends
on many factors not captured in this automated assessment.
───────────────────────────────────────────────────────────────────`

const suggestionMissingSkill = `Add "%s" to your resume
   → Include specific examples showing how you've used this skill
   → Mention projects or work where %s was essential`

const suggestionStrengthen = `Strengthen your "%s" evidence
   → Your resume mentions this, but lacks specific examples
   → Add metrics or project details demonstrating expertise`

const suggestionAddMetrics = `Quantify your achievements
   → Use numbers to show impact (e.g., "reduced load time by 40%")
   → Include team sizes, user counts, or performance improvements`

const suggestionExperience = `Expand your experience section
   → Add more detail about your responsibilities
   → Include technologies used and outcomes achieved`

// scoreLabel 分数区间的定性标签
type scoreLabel struct {
	min, max    int
	label       string
	description string
}

// scoreLabels 区间按从高到低排列，边界分数落入靠前的区间
var scoreLabels = []scoreLabel{
	{85, 100, "Excellent Match", "Your resume strongly aligns with this position."},
	{70, 85, "Good Match", "Your resume shows good alignment with key requirements."},
	{55, 70, "Fair Match", "Your resume covers some requirements but has gaps."},
	{0, 55, "Needs Work", "Significant improvements needed to match this position."},
}

// ScoreLabel 返回分数对应的标签和说明
func ScoreLabel(score int) (label, description string) {
	for _, sl := range scoreLabels {
		if score >= sl.min && score <= sl.max {
			return sl.label, sl.description
		}
	}
	return "Unknown", ""
}
