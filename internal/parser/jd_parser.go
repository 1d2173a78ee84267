package parser

import (
	"regexp"
	"strings"

	"resume-fit-go/internal/types"
)

// ParseJobDescription 解析岗位描述文本
// 按标题行切分章节，必备/加分技能分别从对应章节抽取；
// 没有识别出任何章节时退化为全文抽取（全部视为必备）
func ParseJobDescription(jdText string) *types.ParsedJobDescription {
	var requirements []types.JDRequirement
	var requiredSkills, optionalSkills []string

	for _, section := range splitJDSections(jdText) {
		nameLower := strings.ToLower(section.name)
		switch {
		case containsAny(nameLower, "requirement", "qualif", "must", "essential"):
			skills, reqs := extractSkillsAndRequirements(section.text, types.PriorityRequired)
			requiredSkills = append(requiredSkills, skills...)
			requirements = append(requirements, reqs...)
		case containsAny(nameLower, "prefer", "nice", "bonus", "plus", "optional"):
			skills, reqs := extractSkillsAndRequirements(section.text, types.PriorityOptional)
			optionalSkills = append(optionalSkills, skills...)
			requirements = append(requirements, reqs...)
		}
	}

	if len(requiredSkills) == 0 {
		requiredSkills = extractJDSkills(jdText)
	}

	return &types.ParsedJobDescription{
		RawText:                jdText,
		Title:                  extractJDTitle(jdText),
		Company:                extractJDCompany(jdText),
		Requirements:           requirements,
		RequiredSkills:         dedupeOrdered(requiredSkills),
		OptionalSkills:         dedupeOrdered(optionalSkills),
		ExperienceRequirements: extractExperienceRequirement(jdText),
		EducationRequirements:  extractEducationRequirement(jdText),
	}
}

var (
	jdTitleRegexp    = regexp.MustCompile(`(?i)^(job\s*)?title\s*:\s*(.+)`)
	jdPositionRegexp = regexp.MustCompile(`(?i)^position\s*:\s*(.+)`)
)

// extractJDTitle 从前几行里找岗位名称：显式"Title:"标记优先，
// 其次是含职位关键词的短行
func extractJDTitle(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) > 5 {
		lines = lines[:5]
	}

	for _, line := range lines {
		line = strings.TrimSpace(line)

		if m := jdTitleRegexp.FindStringSubmatch(line); m != nil {
			return strings.TrimSpace(m[2])
		}
		if m := jdPositionRegexp.FindStringSubmatch(line); m != nil {
			return strings.TrimSpace(m[1])
		}

		lower := strings.ToLower(line)
		if len(line) < 80 && !containsAny(lower, "company", "location", "about") {
			if containsAny(lower, "engineer", "developer", "manager", "analyst", "designer", "architect") {
				return line
			}
		}
	}
	return ""
}

var jdCompanyRegexps = []*regexp.Regexp{
	regexp.MustCompile(`(?i)company\s*:\s*(.+)`),
	regexp.MustCompile(`(?i)about\s+(\w+(?:\s+\w+)?(?:\s+inc\.?|\s+llc\.?|\s+corp\.?)?)`),
	regexp.MustCompile(`(?i)at\s+(\w+(?:\s+\w+)?(?:\s+inc\.?|\s+llc\.?|\s+corp\.?)?)\s`),
}

func extractJDCompany(text string) string {
	for _, re := range jdCompanyRegexps {
		if m := re.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

type jdSection struct {
	name string
	text string
}

var jdHeaderRegexps = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(requirements?|qualifications?|what we('re)? look(ing)? for)\s*:?\s*$`),
	regexp.MustCompile(`(?i)^(responsibilities?|what you('ll)? do|duties)\s*:?\s*$`),
	regexp.MustCompile(`(?i)^(preferred|nice to have|bonus|optional)\s*:?\s*$`),
	regexp.MustCompile(`(?i)^(about|company|who we are)\s*:?\s*$`),
	regexp.MustCompile(`(?i)^(benefits?|perks?|what we offer)\s*:?\s*$`),
}

// splitJDSections 按标题行把JD切成章节，标题前的内容归入"general"
func splitJDSections(text string) []jdSection {
	var sections []jdSection
	currentName := "general"
	var currentContent []string

	flush := func() {
		if len(currentContent) > 0 {
			sections = append(sections, jdSection{
				name: currentName,
				text: strings.Join(currentContent, "\n"),
			})
		}
	}

	for _, line := range strings.Split(text, "\n") {
		stripped := strings.TrimSpace(line)

		isHeader := false
		for _, re := range jdHeaderRegexps {
			if re.MatchString(stripped) {
				flush()
				currentName = strings.ToLower(stripped)
				currentContent = nil
				isHeader = true
				break
			}
		}

		if !isHeader && stripped != "" {
			currentContent = append(currentContent, line)
		}
	}
	flush()

	return sections
}

var bulletLineRegexp = regexp.MustCompile(`^\d+\.`)
var bulletStripRegexp = regexp.MustCompile(`^[-•▪○*\d.]+\s*`)

// extractSkillsAndRequirements 从一个JD章节抽取技能列表和逐条要求
// 每个要点行生成一条JDRequirement，其内的技能同时并入章节技能列表
func extractSkillsAndRequirements(text string, priority types.SkillPriority) ([]string, []types.JDRequirement) {
	skills := extractJDSkills(text)
	var requirements []types.JDRequirement

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if !hasBulletPrefix(line) && !bulletLineRegexp.MatchString(line) {
			continue
		}
		clean := strings.TrimSpace(bulletStripRegexp.ReplaceAllString(line, ""))
		if clean == "" {
			continue
		}
		lineSkills := extractJDSkills(clean)
		requirements = append(requirements, types.JDRequirement{
			Text:     clean,
			Skills:   lineSkills,
			Priority: priority,
		})
		skills = append(skills, lineSkills...)
	}

	return skills, requirements
}

// jdSkillPattern JD技能关键词表（比简历侧的表更精简）
type jdSkillPattern struct {
	re   *regexp.Regexp
	name string
}

func jp(pattern, name string) jdSkillPattern {
	return jdSkillPattern{re: regexp.MustCompile(pattern), name: name}
}

var jdSkillPatterns = []jdSkillPattern{
	// 编程语言
	jp(`\bpython\b`, "Python"),
	jp(`\bjavascript\b|\bjs\b`, "JavaScript"),
	jp(`\btypescript\b|\bts\b`, "TypeScript"),
	jp(`\bjava\b`, "Java"),
	jp(`\bc\+\+\b|cpp\b`, "C++"),
	jp(`\bc#\b|csharp\b`, "C#"),
	jp(`\bgolang\b|\bgo\b`, "Go"),
	jp(`\brust\b`, "Rust"),
	jp(`\bruby\b`, "Ruby"),
	jp(`\bphp\b`, "PHP"),
	jp(`\bswift\b`, "Swift"),
	jp(`\bkotlin\b`, "Kotlin"),
	jp(`\bscala\b`, "Scala"),
	jp(`\br[\s,.]`, "R"),
	jp(`\bsql\b`, "SQL"),
	jp(`\bhtml\b`, "HTML"),
	jp(`\bcss\b`, "CSS"),
	jp(`\bshell\b|\bbash\b`, "Bash"),

	// 框架
	jp(`\breact\b|\breactjs\b`, "React"),
	jp(`\bangular\b`, "Angular"),
	jp(`\bvue\b|\bvuejs\b`, "Vue.js"),
	jp(`\bnode\b|\bnodejs\b`, "Node.js"),
	jp(`\bexpress\b`, "Express.js"),
	jp(`\bdjango\b`, "Django"),
	jp(`\bflask\b`, "Flask"),
	jp(`\bfastapi\b`, "FastAPI"),
	jp(`\bspring\b`, "Spring Boot"),
	jp(`\bnext\.?js\b`, "Next.js"),
	jp(`\btailwind\b`, "Tailwind CSS"),
	jp(`\bbootstrap\b`, "Bootstrap"),

	// ML/AI
	jp(`\btensorflow\b`, "TensorFlow"),
	jp(`\bpytorch\b`, "PyTorch"),
	jp(`\bscikit-?learn\b`, "Scikit-learn"),
	jp(`\bpandas\b`, "Pandas"),
	jp(`\bnumpy\b`, "NumPy"),
	jp(`\bopencv\b`, "OpenCV"),

	// 数据库
	jp(`\bpostgres(?:ql)?\b`, "PostgreSQL"),
	jp(`\bmysql\b`, "MySQL"),
	jp(`\bmongodb\b`, "MongoDB"),
	jp(`\bredis\b`, "Redis"),
	jp(`\belasticsearch\b`, "Elasticsearch"),
	jp(`\bdynamodb\b`, "DynamoDB"),

	// 云与DevOps
	jp(`\baws\b`, "AWS"),
	jp(`\bgcp\b|google cloud\b`, "Google Cloud"),
	jp(`\bazure\b`, "Azure"),
	jp(`\bdocker\b`, "Docker"),
	jp(`\bkubernetes\b|\bk8s\b`, "Kubernetes"),
	jp(`\bgit\b`, "Git"),
	jp(`\bjenkins\b`, "Jenkins"),
	jp(`\bterraform\b`, "Terraform"),
	jp(`\bansible\b`, "Ansible"),
	jp(`\blinux\b`, "Linux"),
	jp(`\bjira\b`, "Jira"),

	// 软技能与业务
	jp(`\bcommunication\b`, "Communication"),
	jp(`\bleadership\b`, "Leadership"),
	jp(`\bteamwork\b`, "Teamwork"),
	jp(`\bproblem[- ]?solving\b`, "Problem Solving"),
	jp(`\bagile\b`, "Agile"),
	jp(`\bscrum\b`, "Scrum"),
	jp(`\bproject[- ]?management\b`, "Project Management"),
	jp(`\btime[- ]?management\b`, "Time Management"),
	jp(`\bcustomer[- ]?service\b`, "Customer Service"),
	jp(`\bpresentation\b`, "Presentation"),
	jp(`\banalysis\b|\banalytical\b`, "Analytical Skills"),
	jp(`\bmarketing\b`, "Marketing"),
	jp(`\bsales\b`, "Sales"),
	jp(`\bexcel\b`, "Excel"),
}

// extractJDSkills 在JD文本上按关键词表抽取技能名，按出现顺序去重
func extractJDSkills(text string) []string {
	textLower := strings.ToLower(text)
	seen := make(map[string]bool)
	var skills []string
	for _, p := range jdSkillPatterns {
		if !seen[p.name] && p.re.MatchString(textLower) {
			seen[p.name] = true
			skills = append(skills, p.name)
		}
	}
	return skills
}

var experienceReqRegexps = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d+\+?\s*(?:years?|yrs?)\s*(?:of\s*)?(?:experience|exp)?)`),
	regexp.MustCompile(`(?i)(experience\s*:\s*\d+\+?\s*(?:years?|yrs?))`),
	regexp.MustCompile(`(?i)(minimum\s+\d+\s*(?:years?|yrs?)\s*(?:of\s*)?experience)`),
}

func extractExperienceRequirement(text string) string {
	for _, re := range experienceReqRegexps {
		if m := re.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

var educationReqRegexps = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(bachelor'?s?|master'?s?|phd|doctorate)\s*(?:degree)?\s*(?:in\s+[\w\s]+)?`),
	regexp.MustCompile(`(?i)(bs|ms|ba|ma|b\.s\.|m\.s\.)\s*(?:in\s+[\w\s]+)?`),
	regexp.MustCompile(`(?i)(degree\s+in\s+[\w\s]+)`),
}

func extractEducationRequirement(text string) string {
	for _, re := range educationReqRegexps {
		if m := re.FindString(text); m != "" {
			return strings.TrimSpace(m)
		}
	}
	return ""
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// dedupeOrdered 保序去重
func dedupeOrdered(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if !seen[item] {
			seen[item] = true
			out = append(out, item)
		}
	}
	return out
}
