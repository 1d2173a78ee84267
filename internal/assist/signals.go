package assist

import (
	"regexp"
	"strconv"
	"strings"
)

// 经历深度信号提取
// 纯正则驱动，不依赖任何NLP模型；产出只作参考展示，从不参与打分

// signalContextWindow 信号上下文片段向两侧各取的字符数
const signalContextWindow = 50

// Signal 一条结构化的经历深度信号
type Signal struct {
	Category   string   `json:"category"`
	Text       string   `json:"text"`
	Value      *float64 `json:"value,omitempty"`
	Confidence string   `json:"confidence"`
	SourceText string   `json:"source_text,omitempty"`
}

// Aggregate 各类信号的汇总得分，用于展示
type Aggregate struct {
	Duration            float64 `json:"duration"`
	Scale               float64 `json:"scale"`
	Leadership          float64 `json:"leadership"`
	TechnicalComplexity float64 `json:"technical_complexity"`
	Impact              float64 `json:"impact"`
}

var (
	yearsRegexp  = regexp.MustCompile(`(\d+)\+?\s*years?\s*(of\s*)?(experience|exp)?`)
	monthsRegexp = regexp.MustCompile(`(\d+)\s*months?\s*(of\s*)?(experience|exp)?`)
)

// scalePattern 带数值提取的规模信号模式
type scalePattern struct {
	re         *regexp.Regexp
	multiplier float64
}

var scalePatterns = []scalePattern{
	{regexp.MustCompile(`team of (\d+)`), 1},
	{regexp.MustCompile(`(\d+)\s*(engineers?|developers?|members?)`), 1},
	{regexp.MustCompile(`(\d+)\s*(million|m)\s*(users?|customers?|requests?)`), 1_000_000},
	{regexp.MustCompile(`(\d+)\s*(thousand|k)\s*(users?|customers?|requests?)`), 1_000},
	{regexp.MustCompile(`(\d+)\s*(tb|terabytes?)`), 1000},
	{regexp.MustCompile(`(\d+)\s*(gb|gigabytes?)`), 1},
}

// qualitativeScalePattern 定性规模指标，无精确数值，模式本身作为信号文本
type qualitativeScalePattern struct {
	re    *regexp.Regexp
	raw   string
	value float64
}

var qualitativeScalePatterns = []qualitativeScalePattern{
	{regexp.MustCompile(`large[- ]?scale`), `large[- ]?scale`, 50},
	{regexp.MustCompile(`high[- ]?traffic`), `high[- ]?traffic`, 50},
	{regexp.MustCompile(`enterprise`), `enterprise`, 40},
	{regexp.MustCompile(`production`), `production`, 30},
	{regexp.MustCompile(`global`), `global`, 35},
}

// valuedPattern 带固定信号值与置信度的模式
type valuedPattern struct {
	re         *regexp.Regexp
	value      float64
	confidence string
}

var leadershipPatterns = []valuedPattern{
	{regexp.MustCompile(`led\s+(a\s+)?team`), 100, "high"},
	{regexp.MustCompile(`managed\s+(a\s+)?team`), 100, "high"},
	{regexp.MustCompile(`supervised`), 80, "high"},
	{regexp.MustCompile(`mentored`), 70, "high"},
	{regexp.MustCompile(`trained`), 60, "medium"},
	{regexp.MustCompile(`coordinated`), 50, "medium"},
	{regexp.MustCompile(`guided`), 50, "medium"},
	{regexp.MustCompile(`headed`), 90, "high"},
	{regexp.MustCompile(`directed`), 80, "high"},
	{regexp.MustCompile(`oversaw`), 70, "high"},
}

var complexityPatterns = []valuedPattern{
	{regexp.MustCompile(`architected`), 100, "high"},
	{regexp.MustCompile(`designed\s+(and\s+)?implemented`), 90, "high"},
	{regexp.MustCompile(`built\s+from\s+scratch`), 85, "high"},
	{regexp.MustCompile(`full[- ]?stack`), 70, "medium"},
	{regexp.MustCompile(`end[- ]?to[- ]?end`), 65, "medium"},
	{regexp.MustCompile(`scalable`), 60, "medium"},
	{regexp.MustCompile(`optimized`), 55, "medium"},
	{regexp.MustCompile(`refactored`), 50, "medium"},
	{regexp.MustCompile(`automated`), 50, "medium"},
	{regexp.MustCompile(`migrated`), 45, "medium"},
	{regexp.MustCompile(`integrated`), 40, "medium"},
}

var impactPatterns = []*regexp.Regexp{
	regexp.MustCompile(`improved\s+.*?by\s+(\d+)\s*%`),
	regexp.MustCompile(`reduced\s+.*?by\s+(\d+)\s*%`),
	regexp.MustCompile(`increased\s+.*?by\s+(\d+)\s*%`),
	regexp.MustCompile(`(\d+)x\s+(faster|improvement|increase)`),
}

// ExtractSignals 从经历区文本中提取全部经历深度信号
func ExtractSignals(text string) []Signal {
	var signals []Signal
	signals = append(signals, extractDurationSignals(text)...)
	signals = append(signals, extractScaleSignals(text)...)
	signals = append(signals, extractLeadershipSignals(text)...)
	signals = append(signals, extractComplexitySignals(text)...)
	return signals
}

func extractDurationSignals(text string) []Signal {
	var signals []Signal
	textLower := strings.ToLower(text)

	for _, loc := range yearsRegexp.FindAllStringSubmatchIndex(textLower, -1) {
		years, err := strconv.Atoi(textLower[loc[2]:loc[3]])
		if err != nil {
			continue
		}
		confidence := "medium"
		if years >= 3 {
			confidence = "high"
		}
		signals = append(signals, Signal{
			Category:   "duration",
			Text:       textLower[loc[0]:loc[1]],
			Value:      floatPtr(float64(years)),
			Confidence: confidence,
			SourceText: surroundingText(text, loc[0], loc[1]),
		})
	}

	for _, loc := range monthsRegexp.FindAllStringSubmatchIndex(textLower, -1) {
		months, err := strconv.Atoi(textLower[loc[2]:loc[3]])
		if err != nil {
			continue
		}
		signals = append(signals, Signal{
			Category:   "duration",
			Text:       textLower[loc[0]:loc[1]],
			Value:      floatPtr(float64(months) / 12),
			Confidence: "medium",
			SourceText: surroundingText(text, loc[0], loc[1]),
		})
	}

	return signals
}

func extractScaleSignals(text string) []Signal {
	var signals []Signal
	textLower := strings.ToLower(text)

	for _, p := range scalePatterns {
		for _, loc := range p.re.FindAllStringSubmatchIndex(textLower, -1) {
			n, err := strconv.Atoi(textLower[loc[2]:loc[3]])
			if err != nil {
				continue
			}
			signals = append(signals, Signal{
				Category:   "scale",
				Text:       textLower[loc[0]:loc[1]],
				Value:      floatPtr(float64(n) * p.multiplier),
				Confidence: "high",
				SourceText: surroundingText(text, loc[0], loc[1]),
			})
		}
	}

	for _, p := range qualitativeScalePatterns {
		if p.re.MatchString(textLower) {
			signals = append(signals, Signal{
				Category:   "scale",
				Text:       p.raw,
				Value:      floatPtr(p.value),
				Confidence: "medium",
			})
		}
	}

	return signals
}

func extractLeadershipSignals(text string) []Signal {
	return extractValuedSignals(text, "leadership", leadershipPatterns)
}

func extractComplexitySignals(text string) []Signal {
	signals := extractValuedSignals(text, "technical_complexity", complexityPatterns)

	textLower := strings.ToLower(text)
	for _, re := range impactPatterns {
		if loc := re.FindStringIndex(textLower); loc != nil {
			signals = append(signals, Signal{
				Category:   "impact",
				Text:       textLower[loc[0]:loc[1]],
				Confidence: "high",
				SourceText: surroundingText(text, loc[0], loc[1]),
			})
		}
	}

	return signals
}

// extractValuedSignals 每个模式取首个命中，最多产生一条信号
func extractValuedSignals(text, category string, patterns []valuedPattern) []Signal {
	var signals []Signal
	textLower := strings.ToLower(text)

	for _, p := range patterns {
		if loc := p.re.FindStringIndex(textLower); loc != nil {
			signals = append(signals, Signal{
				Category:   category,
				Text:       textLower[loc[0]:loc[1]],
				Value:      floatPtr(p.value),
				Confidence: p.confidence,
				SourceText: surroundingText(text, loc[0], loc[1]),
			})
		}
	}

	return signals
}

// AggregateSignals 把信号列表汇总成各类别的参考得分
// 每个类别内按置信度加权求均值
func AggregateSignals(signals []Signal) Aggregate {
	type bucket struct {
		sum   float64
		count int
	}
	buckets := map[string]*bucket{
		"duration":             {},
		"scale":                {},
		"leadership":           {},
		"technical_complexity": {},
		"impact":               {},
	}

	for _, s := range signals {
		b, ok := buckets[s.Category]
		if !ok || s.Value == nil {
			continue
		}
		b.sum += *s.Value * confidenceWeight(s.Confidence)
		b.count++
	}

	mean := func(name string) float64 {
		b := buckets[name]
		if b.count == 0 {
			return 0
		}
		return b.sum / float64(b.count)
	}

	return Aggregate{
		Duration:            mean("duration"),
		Scale:               mean("scale"),
		Leadership:          mean("leadership"),
		TechnicalComplexity: mean("technical_complexity"),
		Impact:              mean("impact"),
	}
}

func confidenceWeight(confidence string) float64 {
	switch confidence {
	case "high":
		return 1.0
	case "medium":
		return 0.7
	case "low":
		return 0.4
	default:
		return 0.5
	}
}

// surroundingText 取命中位置两侧的上下文片段
func surroundingText(text string, start, end int) string {
	contextStart := start - signalContextWindow
	if contextStart < 0 {
		contextStart = 0
	}
	contextEnd := end + signalContextWindow
	if contextEnd > len(text) {
		contextEnd = len(text)
	}
	return text[contextStart:contextEnd]
}

func floatPtr(v float64) *float64 {
	return &v
}
