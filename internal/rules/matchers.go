package rules

import (
	"strings"

	"resume-fit-go/internal/taxonomy"
	"resume-fit-go/internal/types"
)

// MatchStats 技能匹配的聚合统计
type MatchStats struct {
	MatchedCount    int `json:"matched_count"`
	PartialCount    int `json:"partial_count"`
	MissingCount    int `json:"missing_count"`
	RequiredMatched int `json:"required_matched"`
	RequiredTotal   int `json:"required_total"`
	OptionalMatched int `json:"optional_matched"`
	OptionalTotal   int `json:"optional_total"`
}

// SkillMatchResult 一次技能匹配的完整输出
// Matches 中每个JD技能（必备在前、加分在后）恰好一条记录
type SkillMatchResult struct {
	Matches         []types.SkillMatch `json:"matches"`
	MatchedRequired []string           `json:"matched_required"`
	MatchedOptional []string           `json:"matched_optional"`
	PartialRequired []string           `json:"partial_required"`
	PartialOptional []string           `json:"partial_optional"`
	MissingRequired []string           `json:"missing_required"`
	MissingOptional []string           `json:"missing_optional"`
	Stats           MatchStats         `json:"stats"`
}

// resumeSkillEntry 简历侧的一条技能索引
type resumeSkillEntry struct {
	canonical  string
	sourceText string
	lineNumber int
}

// resumeIndex 以归一化后的小写标准名为键索引简历技能
// keys 记录插入顺序，模糊匹配按该顺序遍历，平分时取先出现者
type resumeIndex struct {
	byName map[string]resumeSkillEntry
	keys   []string
}

func buildResumeIndex(skills []types.ExtractedSkill, normalizer *taxonomy.Normalizer) *resumeIndex {
	idx := &resumeIndex{byName: make(map[string]resumeSkillEntry, len(skills))}
	for _, s := range skills {
		name := s.CanonicalName
		if name == "" {
			name = s.Name
		}
		r := normalizer.Normalize(name)
		key := strings.ToLower(r.Canonical)
		if _, exists := idx.byName[key]; !exists {
			idx.keys = append(idx.keys, key)
		}
		// 同名技能后出现的覆盖先出现的
		idx.byName[key] = resumeSkillEntry{
			canonical:  r.Canonical,
			sourceText: s.SourceText,
			lineNumber: s.LineNumber,
		}
	}
	return idx
}

// MatchSkills 把JD技能逐个与简历技能匹配
// 先精确命中归一化后的标准名，未命中再对全部简历技能做模糊匹配取最高分，
// 按阈值落入 matched / partial / missing 三档；必备技能先于加分技能处理
func MatchSkills(
	resumeSkills []types.ExtractedSkill,
	requiredSkills []string,
	optionalSkills []string,
	normalizer *taxonomy.Normalizer,
	fullMatchThreshold float64,
	partialMatchThreshold float64,
) *SkillMatchResult {
	idx := buildResumeIndex(resumeSkills, normalizer)

	result := &SkillMatchResult{
		Matches:         make([]types.SkillMatch, 0, len(requiredSkills)+len(optionalSkills)),
		MatchedRequired: []string{},
		MatchedOptional: []string{},
		PartialRequired: []string{},
		PartialOptional: []string{},
		MissingRequired: []string{},
		MissingOptional: []string{},
		Stats: MatchStats{
			RequiredTotal: len(requiredSkills),
			OptionalTotal: len(optionalSkills),
		},
	}

	for _, skill := range requiredSkills {
		m := matchOne(skill, types.PriorityRequired, idx, normalizer, fullMatchThreshold, partialMatchThreshold)
		result.Matches = append(result.Matches, m)
		switch m.MatchType {
		case types.MatchMatched:
			result.MatchedRequired = append(result.MatchedRequired, m.CanonicalName)
			result.Stats.MatchedCount++
			result.Stats.RequiredMatched++
		case types.MatchPartial:
			result.PartialRequired = append(result.PartialRequired, m.CanonicalName)
			result.Stats.PartialCount++
		default:
			result.MissingRequired = append(result.MissingRequired, m.CanonicalName)
			result.Stats.MissingCount++
		}
	}

	for _, skill := range optionalSkills {
		m := matchOne(skill, types.PriorityOptional, idx, normalizer, fullMatchThreshold, partialMatchThreshold)
		result.Matches = append(result.Matches, m)
		switch m.MatchType {
		case types.MatchMatched:
			result.MatchedOptional = append(result.MatchedOptional, m.CanonicalName)
			result.Stats.MatchedCount++
			result.Stats.OptionalMatched++
		case types.MatchPartial:
			result.PartialOptional = append(result.PartialOptional, m.CanonicalName)
			result.Stats.PartialCount++
		default:
			result.MissingOptional = append(result.MissingOptional, m.CanonicalName)
			result.Stats.MissingCount++
		}
	}

	return result
}

func matchOne(
	jdSkill string,
	priority types.SkillPriority,
	idx *resumeIndex,
	normalizer *taxonomy.Normalizer,
	fullThreshold, partialThreshold float64,
) types.SkillMatch {
	r := normalizer.Normalize(jdSkill)
	key := strings.ToLower(r.Canonical)

	if entry, ok := idx.byName[key]; ok {
		return types.SkillMatch{
			SkillName:     jdSkill,
			CanonicalName: entry.canonical,
			MatchType:     types.MatchMatched,
			Confidence:    types.ConfidenceHigh,
			JDPriority:    priority,
			Evidence:      entry.sourceText,
			LineNumber:    entry.lineNumber,
			MatchScore:    1.0,
		}
	}

	var best resumeSkillEntry
	var bestScore float64
	for _, k := range idx.keys {
		entry := idx.byName[k]
		if s := normalizer.Similarity(r.Canonical, entry.canonical); s > bestScore {
			bestScore = s
			best = entry
		}
	}

	switch {
	case bestScore >= fullThreshold:
		return types.SkillMatch{
			SkillName:     jdSkill,
			CanonicalName: r.Canonical,
			MatchType:     types.MatchMatched,
			Confidence:    scoreToConfidence(bestScore),
			JDPriority:    priority,
			Evidence:      best.sourceText,
			LineNumber:    best.lineNumber,
			MatchScore:    bestScore / 100.0,
		}
	case bestScore >= partialThreshold:
		return types.SkillMatch{
			SkillName:     jdSkill,
			CanonicalName: r.Canonical,
			MatchType:     types.MatchPartial,
			Confidence:    scoreToConfidence(bestScore),
			JDPriority:    priority,
			Evidence:      best.sourceText,
			LineNumber:    best.lineNumber,
			MatchScore:    bestScore / 100.0,
		}
	default:
		// 缺失技能不给证据片段
		return types.SkillMatch{
			SkillName:     jdSkill,
			CanonicalName: r.Canonical,
			MatchType:     types.MatchMissing,
			Confidence:    types.ConfidenceLow,
			JDPriority:    priority,
			MatchScore:    0,
		}
	}
}

func scoreToConfidence(score float64) types.ConfidenceLevel {
	switch {
	case score >= 90:
		return types.ConfidenceHigh
	case score >= 70:
		return types.ConfidenceMedium
	default:
		return types.ConfidenceLow
	}
}
