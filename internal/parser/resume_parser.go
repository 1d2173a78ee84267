package parser

import (
	"fmt"

	"resume-fit-go/internal/logger"
	"resume-fit-go/internal/types"
)

// ParseResume 简历解析的统一入口
// 输入是提取器产出的原文和定位文本块，输出完整的结构化简历；
// 解析永不报错，各抽取器对畸形输入降级为空结果加警告
//
// maxRawTextLen 为分段前的原文长度上限（按字符计），超限部分截断并记录警告，
// 传0表示不限制
func ParseResume(rawText string, blocks []types.TextBlock, maxRawTextLen int) *types.ParsedResume {
	var warnings []string

	if maxRawTextLen > 0 {
		runes := []rune(rawText)
		if len(runes) > maxRawTextLen {
			rawText = string(runes[:maxRawTextLen])
			blocks = truncateBlocks(blocks, maxRawTextLen)
			warnings = append(warnings,
				fmt.Sprintf("raw text truncated to %d characters before segmentation", maxRawTextLen))
		}
	}

	sections := DetectSections(rawText, blocks)

	logger.Debug().
		Int("blocks", len(blocks)).
		Int("skills", len(sections.Skills)).
		Int("experience", len(sections.Experience)).
		Int("education", len(sections.Education)).
		Int("raw_text_len", len(rawText)).
		Msg("简历章节分割完成")

	return &types.ParsedResume{
		RawText:         rawText,
		Education:       sections.Education,
		Experience:      sections.Experience,
		Projects:        sections.Projects,
		Certifications:  sections.Certifications,
		Skills:          sections.Skills,
		ContactInfo:     sections.ContactInfo,
		ParsingWarnings: append(warnings, sections.Warnings...),
	}
}

// truncateBlocks 按累计字符数截断块序列，与原文截断保持同步
func truncateBlocks(blocks []types.TextBlock, maxLen int) []types.TextBlock {
	total := 0
	for i, b := range blocks {
		total += len([]rune(b.Text))
		if total > maxLen {
			return blocks[:i]
		}
	}
	return blocks
}
