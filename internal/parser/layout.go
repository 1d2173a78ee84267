package parser

import (
	"sort"
	"strings"

	"resume-fit-go/internal/types"
)

const (
	// defaultLineTolerance 同一行的垂直位置容差
	defaultLineTolerance = 3.0
	// defaultGapThreshold 行内水平间距超过该值时切分为独立块（双栏分隔）
	defaultGapThreshold = 50.0
	// docxLineSpacing DOCX没有坐标，按行号合成垂直位置
	docxLineSpacing = 20.0
)

// GroupWords 把带坐标的单词级片段归并为有序文本块
// 先按垂直位置分行（容差内视为同一行），再在行内按水平大间距切块，
// 输出顺序：自上而下，行内自左向右
func GroupWords(words []types.WordToken, page int) []types.TextBlock {
	return groupWords(words, page, defaultLineTolerance, defaultGapThreshold)
}

func groupWords(words []types.WordToken, page int, tolerance, gapThreshold float64) []types.TextBlock {
	if len(words) == 0 {
		return nil
	}

	sorted := make([]types.WordToken, len(words))
	copy(sorted, words)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Top != sorted[j].Top {
			return sorted[i].Top < sorted[j].Top
		}
		return sorted[i].X0 < sorted[j].X0
	})

	var blocks []types.TextBlock
	lineTop := sorted[0].Top
	var lineWords []types.WordToken

	flush := func() {
		if len(lineWords) > 0 {
			blocks = append(blocks, splitLineOnGaps(lineWords, lineTop, gapThreshold)...)
		}
	}

	for _, w := range sorted {
		if abs(w.Top-lineTop) <= tolerance {
			lineWords = append(lineWords, w)
			continue
		}
		flush()
		lineWords = []types.WordToken{w}
		lineTop = w.Top
	}
	flush()

	for i := range blocks {
		blocks[i].Page = page
		blocks[i].Line = i + 1
	}
	return blocks
}

// splitLineOnGaps 把一行单词按大水平间距切分为多个块
// 间距判定用前一单词的右边界到当前单词左边界的距离
func splitLineOnGaps(words []types.WordToken, top, gapThreshold float64) []types.TextBlock {
	sorted := make([]types.WordToken, len(words))
	copy(sorted, words)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].X0 < sorted[j].X0
	})

	var segments [][]types.WordToken
	current := []types.WordToken{sorted[0]}
	for i := 1; i < len(sorted); i++ {
		gap := sorted[i].X0 - sorted[i-1].X1
		if gap > gapThreshold {
			segments = append(segments, current)
			current = []types.WordToken{sorted[i]}
		} else {
			current = append(current, sorted[i])
		}
	}
	segments = append(segments, current)

	blocks := make([]types.TextBlock, 0, len(segments))
	for _, seg := range segments {
		parts := make([]string, 0, len(seg))
		for _, w := range seg {
			parts = append(parts, w.Text)
		}
		blocks = append(blocks, types.TextBlock{
			Text:     strings.TrimSpace(strings.Join(parts, " ")),
			Top:      top,
			Left:     seg[0].X0,
			FontSize: seg[0].Height,
		})
	}
	return blocks
}

// BlocksFromText 从纯文本按行合成文本块
// 用于没有坐标信息的来源（整文PDF提取、原文兜底），垂直位置按行号合成
func BlocksFromText(text string) []types.TextBlock {
	var blocks []types.TextBlock
	line := 0
	for _, raw := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		line++
		blocks = append(blocks, types.TextBlock{
			Text: trimmed,
			Page: 1,
			Line: line,
			Top:  float64(line) * docxLineSpacing,
		})
	}
	return blocks
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
