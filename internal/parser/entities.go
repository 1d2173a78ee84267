package parser

import (
	"regexp"
	"strings"

	"resume-fit-go/internal/types"
)

// 实体抽取器：对章节内的有序块做单次正向扫描，维护一个"当前打开条目"指针。
// 抽取器对畸形输入永不报错，匹配不到就返回空列表。

var (
	degreeRegexp  = regexp.MustCompile(`(?i)(bachelor|master|phd|doctorate|associate|b\.?s\.?|m\.?s\.?|b\.?a\.?|m\.?a\.?|b\.?tech|m\.?tech)`)
	yearRegexp    = regexp.MustCompile(`(20\d{2}|19\d{2})`)
	presentRegexp = regexp.MustCompile(`(?i)(present|current)`)
	monthRegexp   = regexp.MustCompile(`(?i)(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)`)
	gpaKeyRegexp  = regexp.MustCompile(`(?i)(gpa|cgpa|grade)`)
	gpaValRegexp  = regexp.MustCompile(`(\d+\.?\d*)\s*/?\s*(\d+\.?\d*)?`)
	splitRegexp   = regexp.MustCompile(`[,|–-]`)
)

var institutionKeywords = []string{"university", "college", "institute", "school"}

var jobTitleKeywords = []string{
	"engineer", "developer", "manager", "analyst", "designer",
	"architect", "lead", "senior", "junior", "intern", "director",
	"consultant", "specialist", "administrator", "coordinator", "officer",
	"executive", "assistant", "associate", "founder", "ceo", "cto",
	"scientist", "researcher", "student", "representative", "agent",
	"technician", "supervisor", "head", "vp", "president", "principal",
	"freelancer", "contractor",
}

// bulletPrefixes 要点行的前导符号
var bulletPrefixes = []string{"-", "•", "▪", "○", "*"}

// blocksFromLines 兜底路径下没有块信息，按行合成
func blocksFromLines(text string) []types.TextBlock {
	var blocks []types.TextBlock
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" {
			blocks = append(blocks, types.TextBlock{Text: trimmed})
		}
	}
	return blocks
}

// parseEducation 抽取教育经历
// 含学位关键词或院校特征词的块开启新条目，
// 后续块按日期/GPA特征附加到当前条目
func parseEducation(text string, blocks []types.TextBlock) []types.EducationEntry {
	if len(blocks) == 0 && text != "" {
		blocks = blocksFromLines(text)
	}

	var entries []types.EducationEntry
	var current *types.EducationEntry

	for _, block := range blocks {
		line := block.Text

		hasDegree := degreeRegexp.MatchString(line)
		if hasDegree || looksLikeInstitution(line) {
			if current != nil {
				entries = append(entries, *current)
			}
			current = &types.EducationEntry{
				Institution: extractInstitution(line),
				Degree:      extractDegree(line),
				SourceText:  line,
			}
		} else if current != nil {
			if looksLikeDate(line) {
				dates := extractDates(line)
				if len(dates) > 0 {
					current.StartDate = dates[0]
					if len(dates) > 1 {
						current.EndDate = dates[1]
					}
				}
			} else if gpaKeyRegexp.MatchString(line) {
				current.GPA = extractGPA(line)
			}
		}
	}

	if current != nil {
		entries = append(entries, *current)
	}
	return entries
}

// parseExperience 抽取工作经历
// 只有"像职位行"且不是要点行的块才开启新条目；已有打开条目时进一步要求
// 该块是粗体或短于80字符——防止碰巧含职位关键词的要点行
// （如"...managed 500+ engineers"）错误切断当前条目
func parseExperience(text string, blocks []types.TextBlock) []types.ExperienceEntry {
	if len(blocks) == 0 && text != "" {
		blocks = blocksFromLines(text)
	}

	var entries []types.ExperienceEntry
	var current *types.ExperienceEntry

	for _, block := range blocks {
		line := block.Text

		isBullet := hasBulletPrefix(line)
		isLikelyTitle := looksLikeJobTitle(line) && !isBullet

		if isLikelyTitle && (current == nil || block.IsBold || len(line) < 80) {
			if current != nil {
				entries = append(entries, *current)
			}
			current = &types.ExperienceEntry{
				Company:          extractCompany(line),
				Title:            extractJobTitle(line),
				Responsibilities: []string{},
				SourceText:       line,
			}
		} else if current != nil {
			if looksLikeDate(line) {
				dates := extractDates(line)
				if len(dates) > 0 {
					current.StartDate = dates[0]
					if len(dates) > 1 {
						current.EndDate = dates[1]
					}
				}
			} else if isBullet {
				clean := strings.TrimSpace(strings.TrimLeft(line, "-•▪○* "))
				current.Responsibilities = append(current.Responsibilities, clean)
				current.Description += " " + clean
			}
		}
	}

	if current != nil {
		entries = append(entries, *current)
	}
	return entries
}

// parseProjects 抽取项目经历
// 粗体或短的非要点行开启新条目，要点行并入描述并顺带识别技术栈
func parseProjects(blocks []types.TextBlock) []types.ProjectEntry {
	var entries []types.ProjectEntry
	var current *types.ProjectEntry

	for _, block := range blocks {
		line := block.Text

		if block.IsBold || (len(line) < 100 && !strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "•")) {
			if current != nil {
				entries = append(entries, *current)
			}
			current = &types.ProjectEntry{
				Name:         strings.TrimSpace(line),
				Technologies: []string{},
				SourceText:   line,
			}
		} else if current != nil {
			if hasBulletPrefix(line) {
				clean := strings.TrimSpace(strings.TrimLeft(line, "-•▪ "))
				current.Description += " " + clean
				current.Technologies = append(current.Technologies, extractTechnologies(clean)...)
			} else {
				current.Description += " " + line
			}
		}
	}

	if current != nil {
		entries = append(entries, *current)
	}
	return entries
}

// certKeywords 证书行的识别关键词，含常见发证方
var certKeywords = []string{
	"certification", "certificate", "certified", "by ", "from ",
	"coursera", "udemy", "linkedin learning", "aws", "google",
	"microsoft", "meta", "forage",
}

var certIssuers = []string{
	"AWS", "Google", "Microsoft", "Meta", "Coursera", "Udemy",
	"LinkedIn Learning", "Forage", "IBM", "Oracle", "Cisco",
}

var (
	certIssuerTailRegexps = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\s*by\s+\w+.*$`),
		regexp.MustCompile(`(?i)\s*from\s+\w+.*$`),
		regexp.MustCompile(`(?i)\s*-\s*\w+.*$`),
		regexp.MustCompile(`(?i)\s*\|\s*\w+.*$`),
	}
	certIssuerByFromRegexp = regexp.MustCompile(`(?i)(?:by|from)\s+([A-Za-z\s]+?)(?:\s*[\|\-]|\s*$)`)
)

// parseCertifications 抽取证书条目
// 证书通常一行一条（与多行的工作经历不同），含证书关键词或足够短的行
// 各自成为独立条目
func parseCertifications(text string, blocks []types.TextBlock) []types.CertificationEntry {
	if len(blocks) == 0 && text != "" {
		blocks = blocksFromLines(text)
	}

	var entries []types.CertificationEntry

	for _, block := range blocks {
		line := block.Text
		trimmed := strings.TrimSpace(line)
		if len(trimmed) < 5 {
			continue
		}

		lower := strings.ToLower(line)
		isCertLine := false
		for _, kw := range certKeywords {
			if strings.Contains(lower, kw) {
				isCertLine = true
				break
			}
		}

		if isCertLine || len(line) < 150 {
			entry := types.CertificationEntry{
				Name:       extractCertName(line),
				Issuer:     extractCertIssuer(line),
				SourceText: line,
			}
			if dates := extractDates(line); len(dates) > 0 {
				entry.Date = dates[0]
			}
			entries = append(entries, entry)
		}
	}

	return entries
}

func extractCertName(text string) string {
	name := text
	for _, re := range certIssuerTailRegexps {
		name = re.ReplaceAllString(name, "")
	}
	return strings.TrimSpace(name)
}

func extractCertIssuer(text string) string {
	lower := strings.ToLower(text)
	for _, issuer := range certIssuers {
		if strings.Contains(lower, strings.ToLower(issuer)) {
			return issuer
		}
	}
	if m := certIssuerByFromRegexp.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

func hasBulletPrefix(text string) bool {
	trimmed := strings.TrimSpace(text)
	for _, p := range bulletPrefixes {
		if strings.HasPrefix(trimmed, p) {
			return true
		}
	}
	return false
}

func looksLikeInstitution(text string) bool {
	lower := strings.ToLower(text)
	for _, k := range institutionKeywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

func looksLikeDate(text string) bool {
	lower := strings.ToLower(text)
	return regexp.MustCompile(`\d{4}`).MatchString(lower) ||
		monthRegexp.MatchString(lower) ||
		presentRegexp.MatchString(lower)
}

func looksLikeJobTitle(text string) bool {
	lower := strings.ToLower(text)
	for _, k := range jobTitleKeywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

func extractInstitution(text string) string {
	parts := splitRegexp.Split(text, -1)
	for _, part := range parts {
		if looksLikeInstitution(part) {
			return strings.TrimSpace(part)
		}
	}
	if len(parts) > 0 {
		return strings.TrimSpace(parts[0])
	}
	return text
}

// degreePatternOrder 学位关键词到规范写法的映射，按优先级排列
var degreePatternOrder = []struct {
	re     *regexp.Regexp
	degree string
}{
	{regexp.MustCompile(`(?i)bachelor`), "Bachelor's"},
	{regexp.MustCompile(`(?i)master`), "Master's"},
	{regexp.MustCompile(`(?i)phd|doctorate`), "PhD"},
	{regexp.MustCompile(`(?i)b\.?s\.?`), "B.S."},
	{regexp.MustCompile(`(?i)m\.?s\.?`), "M.S."},
	{regexp.MustCompile(`(?i)b\.?a\.?`), "B.A."},
	{regexp.MustCompile(`(?i)m\.?a\.?`), "M.A."},
	{regexp.MustCompile(`(?i)b\.?tech`), "B.Tech"},
	{regexp.MustCompile(`(?i)m\.?tech`), "M.Tech"},
}

func extractDegree(text string) string {
	for _, d := range degreePatternOrder {
		if d.re.MatchString(text) {
			return d.degree
		}
	}
	return "Degree"
}

// extractDates 抽取最多两个日期（起止），"present/current"记为Present
func extractDates(text string) []string {
	var dates []string
	dates = append(dates, yearRegexp.FindAllString(text, -1)...)
	if presentRegexp.MatchString(text) {
		dates = append(dates, "Present")
	}
	if len(dates) > 2 {
		dates = dates[:2]
	}
	return dates
}

func extractGPA(text string) string {
	if m := gpaValRegexp.FindString(text); m != "" {
		return m
	}
	return ""
}

func extractCompany(text string) string {
	parts := splitRegexp.Split(text, -1)
	return strings.TrimSpace(parts[0])
}

func extractJobTitle(text string) string {
	parts := splitRegexp.Split(text, -1)
	if len(parts) > 1 {
		return strings.TrimSpace(parts[1])
	}
	return strings.TrimSpace(parts[0])
}

var techNameRegexp = regexp.MustCompile(`(?i)\b(Python|JavaScript|React|Node|AWS|Docker|Kubernetes|PostgreSQL|MongoDB|Redis|Git)\b`)

// extractTechnologies 从要点文本里识别常见技术名，去重后返回
func extractTechnologies(text string) []string {
	matches := techNameRegexp.FindAllString(text, -1)
	seen := make(map[string]bool, len(matches))
	var techs []string
	for _, m := range matches {
		if !seen[m] {
			seen[m] = true
			techs = append(techs, m)
		}
	}
	return techs
}
