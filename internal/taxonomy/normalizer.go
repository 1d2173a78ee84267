package taxonomy

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/agext/levenshtein"
	"gopkg.in/yaml.v3"

	"resume-fit-go/internal/types"
)

//go:embed skills.yaml
var defaultTaxonomy []byte

// Thresholds 归一化置信度阈值
type Thresholds struct {
	ExactMatch       float64 `yaml:"exact_match"`
	HighConfidence   float64 `yaml:"high_confidence"`
	MediumConfidence float64 `yaml:"medium_confidence"`
	LowConfidence    float64 `yaml:"low_confidence"`
}

// Category 词表中的一个技能类别
type Category struct {
	Canonical []string            `yaml:"canonical"`
	Aliases   map[string][]string `yaml:"aliases"`
}

type taxonomyFile struct {
	Categories map[string]Category `yaml:"categories"`
	Thresholds *Thresholds         `yaml:"thresholds"`
}

// Result 单次归一化的结果
type Result struct {
	Canonical  string                `json:"canonical"`
	Confidence types.ConfidenceLevel `json:"confidence"`
	Score      float64               `json:"score"` // 0-100
}

// BatchResult 批量归一化的单条结果，保留原始输入
type BatchResult struct {
	Original   string                `json:"original"`
	Canonical  string                `json:"canonical"`
	Confidence types.ConfidenceLevel `json:"confidence"`
	Score      float64               `json:"score"`
}

// Normalizer 技能归一化器
// 词表在构造时加载一次，之后只读，可被多个请求并发使用
type Normalizer struct {
	categories    map[string]Category
	categoryNames []string // 排序后的类别名，保证遍历顺序确定
	canonical     []string // 按类别顺序展开的全部标准名
	aliasMap      map[string]string
	aliasKeys     []string // aliasMap 的键，按插入顺序
	thresholds    Thresholds
}

// NewNormalizer 从文件加载词表，path为空时使用内置词表
func NewNormalizer(path string) (*Normalizer, error) {
	data := defaultTaxonomy
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("读取技能词表失败: %w", err)
		}
		data = b
	}

	var file taxonomyFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("解析技能词表失败: %w", err)
	}

	n := &Normalizer{
		categories: file.Categories,
		aliasMap:   make(map[string]string),
		thresholds: Thresholds{
			ExactMatch:       100,
			HighConfidence:   90,
			MediumConfidence: 75,
			LowConfidence:    60,
		},
	}
	if file.Thresholds != nil {
		n.thresholds = *file.Thresholds
	}

	// 类别名排序后再展开，归一化结果与map遍历顺序无关
	for name := range file.Categories {
		n.categoryNames = append(n.categoryNames, name)
	}
	sort.Strings(n.categoryNames)

	for _, name := range n.categoryNames {
		cat := file.Categories[name]
		n.canonical = append(n.canonical, cat.Canonical...)
		n.buildAliases(cat)
	}

	return n, nil
}

// buildAliases 把一个类别的别名表并入全局别名映射
// 别名键先小写、下划线转空格，再与该类别的标准名逐个比对定位
func (n *Normalizer) buildAliases(cat Category) {
	aliasKeys := make([]string, 0, len(cat.Aliases))
	for key := range cat.Aliases {
		aliasKeys = append(aliasKeys, key)
	}
	sort.Strings(aliasKeys)

	for _, key := range aliasKeys {
		keyLower := strings.ToLower(key)
		keySpaced := strings.ReplaceAll(keyLower, "_", " ")

		var canonical string
		for _, c := range cat.Canonical {
			cLower := strings.ToLower(c)
			if cLower == keySpaced || strings.Contains(strings.ReplaceAll(cLower, ".", ""), keyLower) {
				canonical = c
				break
			}
		}
		if canonical == "" {
			continue
		}

		for _, alias := range cat.Aliases[key] {
			aliasLower := strings.ToLower(alias)
			if _, exists := n.aliasMap[aliasLower]; !exists {
				n.aliasMap[aliasLower] = canonical
				n.aliasKeys = append(n.aliasKeys, aliasLower)
			}
		}
	}
}

// similarity 计算两个字符串的相似度，0-100
func similarity(a, b string) float64 {
	return levenshtein.Similarity(a, b, nil) * 100
}

// bestMatch 在候选列表里找相似度最高的一项，平分时取靠前者
func bestMatch(input string, candidates []string) (idx int, score float64) {
	idx = -1
	for i, c := range candidates {
		s := similarity(input, strings.ToLower(c))
		if s > score {
			score = s
			idx = i
		}
	}
	return idx, score
}

// Normalize 把一个原始技能提法归一化到标准名
//
// 解析顺序（有序策略链）：
//  1. 别名表精确命中
//  2. 标准名精确命中（忽略大小写）
//  3. 对标准名做模糊匹配，达到高置信度阈值立即返回
//  4. 对别名键做模糊匹配，分数严格高于标准名匹配且达到中置信度时优先采用
//     （处理"Amazn Web Services"这类别名本身拼错的情况）
//  5. 标准名模糊匹配达到任一阈值时兜底返回
//  6. 都未命中时原样返回，置信度no_match
//
// 顺序设计源于别名与标准名拼写差异往往大于别名自身的常见拼写错误
func (n *Normalizer) Normalize(skill string) Result {
	skillLower := strings.ToLower(strings.TrimSpace(skill))

	if canonical, ok := n.aliasMap[skillLower]; ok {
		return Result{Canonical: canonical, Confidence: types.ConfidenceHigh, Score: 100}
	}

	for _, c := range n.canonical {
		if strings.ToLower(c) == skillLower {
			return Result{Canonical: c, Confidence: types.ConfidenceHigh, Score: 100}
		}
	}

	canonicalIdx, canonicalScore := bestMatch(skillLower, n.canonical)
	if canonicalIdx >= 0 && canonicalScore >= n.thresholds.HighConfidence {
		return Result{
			Canonical:  n.canonical[canonicalIdx],
			Confidence: types.ConfidenceHigh,
			Score:      canonicalScore,
		}
	}

	if aliasIdx, aliasScore := bestMatch(skillLower, n.aliasKeys); aliasIdx >= 0 {
		if aliasScore > canonicalScore && aliasScore >= n.thresholds.MediumConfidence {
			return Result{
				Canonical:  n.aliasMap[n.aliasKeys[aliasIdx]],
				Confidence: n.scoreToConfidence(aliasScore),
				Score:      aliasScore,
			}
		}
	}

	if canonicalIdx >= 0 {
		if confidence := n.scoreToConfidence(canonicalScore); confidence != types.ConfidenceNoMatch {
			return Result{
				Canonical:  n.canonical[canonicalIdx],
				Confidence: confidence,
				Score:      canonicalScore,
			}
		}
	}

	return Result{Canonical: skill, Confidence: types.ConfidenceNoMatch, Score: 0}
}

// NormalizeBatch 批量归一化
func (n *Normalizer) NormalizeBatch(skills []string) []BatchResult {
	results := make([]BatchResult, 0, len(skills))
	for _, skill := range skills {
		r := n.Normalize(skill)
		results = append(results, BatchResult{
			Original:   skill,
			Canonical:  r.Canonical,
			Confidence: r.Confidence,
			Score:      r.Score,
		})
	}
	return results
}

func (n *Normalizer) scoreToConfidence(score float64) types.ConfidenceLevel {
	switch {
	case score >= n.thresholds.HighConfidence:
		return types.ConfidenceHigh
	case score >= n.thresholds.MediumConfidence:
		return types.ConfidenceMedium
	case score >= n.thresholds.LowConfidence:
		return types.ConfidenceLow
	default:
		return types.ConfidenceNoMatch
	}
}

// Similarity 暴露给匹配器使用的相似度计算，0-100
func (n *Normalizer) Similarity(a, b string) float64 {
	return similarity(strings.ToLower(a), strings.ToLower(b))
}

// Thresholds 返回当前生效的阈值
func (n *Normalizer) GetThresholds() Thresholds {
	return n.thresholds
}

// GetCategory 返回技能所属的类别，未知技能返回空串
func (n *Normalizer) GetCategory(skill string) string {
	r := n.Normalize(skill)
	for _, name := range n.categoryNames {
		for _, c := range n.categories[name].Canonical {
			if c == r.Canonical {
				return name
			}
		}
	}
	return ""
}

// GetRelatedSkills 返回同类别的所有标准名
func (n *Normalizer) GetRelatedSkills(skill string) []string {
	category := n.GetCategory(skill)
	if category == "" {
		return nil
	}
	return n.categories[category].Canonical
}

// CanonicalSkills 返回全部标准名（只读约定，调用方不得修改）
func (n *Normalizer) CanonicalSkills() []string {
	return n.canonical
}
