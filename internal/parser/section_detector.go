package parser

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"resume-fit-go/internal/types"
)

// maxHeaderLen 章节标题长度上限，超过视为正文误报
const maxHeaderLen = 80

// sectionPatternOrder 各章节类型的标题同义词模式
// 顺序即匹配优先级：一个块命中多个类型时取靠前者
var sectionPatternOrder = []struct {
	kind     types.SectionKind
	patterns []string
}{
	{types.SectionEducation, []string{
		`education`,
		`academic\s*(background|history|qualifications|profile)?`,
		`degrees?`,
		`qualifications?`,
		`certifications?\s*(&|and)?\s*education`,
		`educational\s*background`,
		`education\s*(and|&)\s*academic`,
	}},
	{types.SectionExperience, []string{
		`(work\s*)?experience`,
		`employment(\s*history)?`,
		`professional\s*(experience|background|history)`,
		`work\s*history`,
		`career\s*(history|summary)`,
		`previous\s*(employment|positions?)`,
		`positions\s*held`,
		`recent\s*work`,
	}},
	{types.SectionProjects, []string{
		`projects?`,
		`personal\s*projects?`,
		`academic\s*projects?`,
		`portfolio`,
		`key\s*projects?`,
	}},
	{types.SectionSkills, []string{
		`skills?`,
		`technical\s*skills?`,
		`core\s*(competencies|skills?)`,
		`technologies?`,
		`expertise`,
		`proficiencies?`,
		`competencies`,
		`abilities`,
	}},
	{types.SectionCertifications, []string{
		`certifications?`,
		`certificates?`,
		`licenses?\s*(and|&)?\s*certifications?`,
		`professional\s*certifications?`,
		`credentials?`,
		`accreditations?`,
	}},
	{types.SectionContact, []string{
		`contact(\s*info(rmation)?)?`,
		`personal\s*(info(rmation)?|details?)`,
	}},
	{types.SectionSummary, []string{
		`(professional\s*)?summary`,
		`(career\s*)?objective`,
		`profile`,
		`about\s*me`,
	}},
}

// headerRegexps 预编译的标题匹配正则，与 sectionPatternOrder 一一对应
var headerRegexps = buildHeaderRegexps()

// buildHeaderRegexps 给每个同义词模式套上装饰容错外壳：
// 行首可带编号("2."、"II.")、装饰符（横线/星号/括号/箭头/项目符），
// 尾部可带冒号和装饰符，匹配必须到行尾（或紧跟 | 与逗号），
// 避免把正文里顺带出现的词（"I have experience in ..."）当成标题
func buildHeaderRegexps() [][]*regexp.Regexp {
	all := make([][]*regexp.Regexp, len(sectionPatternOrder))
	for i, group := range sectionPatternOrder {
		compiled := make([]*regexp.Regexp, len(group.patterns))
		for j, pattern := range group.patterns {
			combined := fmt.Sprintf(
				`(?i)(?:^|\n)\s*`+
					`(?:[-–—*=_<>►▶→•\[\(#]+\s*)?`+
					`(?:\d+[\.)\-]?|[IVX]+\.)?\s*`+
					`%s`+
					`(?:\s*[:\-–—._\]\)*=_<>►▶→•#]*)?\s*`+
					`(?:$|\n|[|,])`,
				pattern,
			)
			compiled[j] = regexp.MustCompile(combined)
		}
		all[i] = compiled
	}
	return all
}

// Sections 章节分割与实体抽取的聚合结果
type Sections struct {
	Education      []types.EducationEntry
	Experience     []types.ExperienceEntry
	Projects       []types.ProjectEntry
	Skills         []types.ExtractedSkill
	Certifications []types.CertificationEntry
	ContactInfo    types.ContactInfo
	Warnings       []string
}

// DetectSections 对简历做章节分割并抽取各章节实体
// 原文兜底：块级分割得到的经历/教育为空时，直接用正则扫描原文；
// 技能抽取始终额外跑一遍全文，与章节内技能按标准名去重合并
func DetectSections(rawText string, blocks []types.TextBlock) *Sections {
	boundaries := findSectionBoundaries(blocks)

	sections := &Sections{}

	for _, group := range sectionPatternOrder {
		boundary, ok := boundaries[group.kind]
		if !ok {
			continue
		}
		sectionBlocks := blocks[boundary.Start:boundary.End]
		var texts []string
		for _, b := range sectionBlocks {
			texts = append(texts, b.Text)
		}
		sectionText := strings.Join(texts, "\n")

		switch group.kind {
		case types.SectionEducation:
			sections.Education = parseEducation(sectionText, sectionBlocks)
		case types.SectionExperience:
			sections.Experience = parseExperience(sectionText, sectionBlocks)
		case types.SectionProjects:
			sections.Projects = parseProjects(sectionBlocks)
		case types.SectionSkills:
			sections.Skills = ExtractSkillsFromText(sectionText)
		case types.SectionCertifications:
			sections.Certifications = parseCertifications(sectionText, sectionBlocks)
		case types.SectionContact:
			sections.ContactInfo = ExtractContactInfo(sectionText)
		}
	}

	// 双栏版式下块区间可能交错，导致块级分割出来的章节为空
	if len(sections.Experience) == 0 {
		if expText := extractSectionFromRawText(rawText, types.SectionExperience); expText != "" {
			sections.Experience = parseExperience(expText, nil)
			sections.Warnings = append(sections.Warnings, "experience section recovered from raw text scan")
		}
	}
	if len(sections.Education) == 0 {
		if eduText := extractSectionFromRawText(rawText, types.SectionEducation); eduText != "" {
			sections.Education = parseEducation(eduText, nil)
			sections.Warnings = append(sections.Warnings, "education section recovered from raw text scan")
		}
	}

	// 没有专门联系方式章节时扫描全文
	if (sections.ContactInfo == types.ContactInfo{}) {
		sections.ContactInfo = ExtractContactInfo(rawText)
	}

	// 简历常把技能散落在经历要点里，全文扫描兜住章节外的技能
	seen := make(map[string]bool, len(sections.Skills))
	for _, s := range sections.Skills {
		seen[s.CanonicalName] = true
	}
	for _, skill := range ExtractSkillsFromText(rawText) {
		if !seen[skill.CanonicalName] {
			sections.Skills = append(sections.Skills, skill)
			seen[skill.CanonicalName] = true
		}
	}

	return sections
}

type sectionStart struct {
	idx  int
	kind types.SectionKind
	left float64
}

// findSectionBoundaries 定位各章节在块序列上的半开区间
// 双栏版式（40%页宽两侧均有超过5个块）按列独立计算边界，
// 标题块本身不计入自己的区间
func findSectionBoundaries(blocks []types.TextBlock) map[types.SectionKind]types.SectionBoundary {
	if len(blocks) == 0 {
		return nil
	}

	var maxLeft float64
	for _, b := range blocks {
		if b.Left > maxLeft {
			maxLeft = b.Left
		}
	}
	pageWidthEstimate := maxLeft + 100 // 粗略估计页宽
	columnThreshold := pageWidthEstimate * 0.4

	leftCount, rightCount := 0, 0
	for _, b := range blocks {
		if b.Left < columnThreshold {
			leftCount++
		} else {
			rightCount++
		}
	}
	isTwoColumn := leftCount > 5 && rightCount > 5

	var starts []sectionStart
	for idx, block := range blocks {
		text := strings.TrimSpace(strings.ToLower(block.Text))
		if kind, ok := matchSectionHeader(text); ok {
			starts = append(starts, sectionStart{idx: idx, kind: kind, left: block.Left})
		}
	}
	if len(starts) == 0 {
		return nil
	}

	boundaries := make(map[types.SectionKind]types.SectionBoundary)

	if isTwoColumn {
		var leftSections, rightSections []sectionStart
		for _, s := range starts {
			if s.left < columnThreshold {
				leftSections = append(leftSections, s)
			} else {
				rightSections = append(rightSections, s)
			}
		}

		for _, column := range [][]sectionStart{leftSections, rightSections} {
			for i, start := range column {
				var nextIdx int
				if i+1 < len(column) {
					nextIdx = column[i+1].idx
				} else {
					// 列尾：区间延伸到同列最后一个块
					isLeftCol := blocks[start.idx].Left < columnThreshold
					nextIdx = start.idx + 1
					for j := start.idx + 1; j < len(blocks); j++ {
						if (blocks[j].Left < columnThreshold) == isLeftCol {
							nextIdx = j + 1
						}
					}
				}
				// 同类章节首个命中生效
				if _, exists := boundaries[start.kind]; !exists {
					boundaries[start.kind] = types.SectionBoundary{Start: start.idx + 1, End: nextIdx}
				}
			}
		}
	} else {
		for i, start := range starts {
			endIdx := len(blocks)
			if i+1 < len(starts) {
				endIdx = starts[i+1].idx
			}
			boundaries[start.kind] = types.SectionBoundary{Start: start.idx + 1, End: endIdx}
		}
	}

	return boundaries
}

// matchSectionHeader 判断一段小写文本是否是章节标题
func matchSectionHeader(text string) (types.SectionKind, bool) {
	for i, group := range sectionPatternOrder {
		for _, re := range headerRegexps[i] {
			if re.MatchString(text) {
				// 标题应当很短，防止长正文块误报
				if utf8.RuneCountInString(text) < maxHeaderLen {
					return group.kind, true
				}
			}
		}
	}
	return "", false
}

var (
	expFallbackHeader = regexp.MustCompile(`(?i)(?:^|\n)\s*(?:EXPERIENCE|WORK\s*EXPERIENCE|PROFESSIONAL\s*EXPERIENCE|EMPLOYMENT(?:\s*HISTORY)?|WORK\s*HISTORY|CAREER\s*HISTORY)`)
	expFallbackNext   = regexp.MustCompile(`(?i)(?:^|\n)\s*(?:EDUCATION|SKILLS|PROJECTS|CERTIFICATIONS|AWARDS|REFERENCES|VOLUNTEER)`)
	eduFallbackHeader = regexp.MustCompile(`(?i)(?:^|\n)\s*(?:EDUCATION|ACADEMIC\s*(?:BACKGROUND|PROFILE)|QUALIFICATIONS|DEGREES?)`)
	eduFallbackNext   = regexp.MustCompile(`(?i)(?:^|\n)\s*(?:EXPERIENCE|SKILLS|PROJECTS|AWARDS|CERTIFICATIONS)`)
)

// rawFallbackWindow 兜底扫描向后截取的最大字符数
const rawFallbackWindow = 2000

// rawFallbackMinLen 截取内容短于该长度时放弃，避免把噪声当章节
const rawFallbackMinLen = 50

// extractSectionFromRawText 直接在原文里用标题/下一标题正则对截取章节内容
// 仅支持经历和教育两类，块级分割失败时的兜底路径
func extractSectionFromRawText(rawText string, kind types.SectionKind) string {
	var header, next *regexp.Regexp
	switch kind {
	case types.SectionExperience:
		header, next = expFallbackHeader, expFallbackNext
	case types.SectionEducation:
		header, next = eduFallbackHeader, eduFallbackNext
	default:
		return ""
	}

	loc := header.FindStringIndex(rawText)
	if loc == nil {
		return ""
	}
	startPos := loc[1]

	endPos := startPos + rawFallbackWindow
	if nextLoc := next.FindStringIndex(rawText[startPos:]); nextLoc != nil {
		endPos = startPos + nextLoc[0]
	}
	if endPos > len(rawText) {
		endPos = len(rawText)
	}

	sectionText := strings.TrimSpace(rawText[startPos:endPos])
	if len(sectionText) > rawFallbackMinLen {
		return sectionText
	}
	return ""
}
