package assist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signalsByCategory(signals []Signal, category string) []Signal {
	var out []Signal
	for _, s := range signals {
		if s.Category == category {
			out = append(out, s)
		}
	}
	return out
}

func TestExtractSignals_Duration(t *testing.T) {
	signals := ExtractSignals("5 years of experience in backend development, plus 6 months of ML work")

	duration := signalsByCategory(signals, "duration")
	require.Len(t, duration, 2)

	assert.Equal(t, 5.0, *duration[0].Value)
	assert.Equal(t, "high", duration[0].Confidence, "3年以上为high置信度")
	assert.Contains(t, duration[0].SourceText, "5 years")

	assert.Equal(t, 0.5, *duration[1].Value, "月数折算为年")
	assert.Equal(t, "medium", duration[1].Confidence)
}

func TestExtractSignals_Scale(t *testing.T) {
	signals := ExtractSignals("Scaled a large-scale platform serving 3 million users with a team of 8")

	scale := signalsByCategory(signals, "scale")
	require.NotEmpty(t, scale)

	var values []float64
	for _, s := range scale {
		if s.Value != nil {
			values = append(values, *s.Value)
		}
	}
	assert.Contains(t, values, 3_000_000.0, "百万级用户量应换算成绝对数")
	assert.Contains(t, values, 8.0, "team of 8")
	assert.Contains(t, values, 50.0, "large-scale属于定性规模指标")
}

func TestExtractSignals_Leadership(t *testing.T) {
	signals := ExtractSignals("Led a team of engineers and mentored junior developers")

	leadership := signalsByCategory(signals, "leadership")
	require.Len(t, leadership, 2)
	assert.Equal(t, "led a team", leadership[0].Text)
	assert.Equal(t, 100.0, *leadership[0].Value)
	assert.Equal(t, "high", leadership[0].Confidence)
	assert.Equal(t, "mentored", leadership[1].Text)
}

func TestExtractSignals_ComplexityAndImpact(t *testing.T) {
	signals := ExtractSignals("Architected the billing system and improved throughput by 40%")

	complexity := signalsByCategory(signals, "technical_complexity")
	require.NotEmpty(t, complexity)
	assert.Equal(t, "architected", complexity[0].Text)

	impact := signalsByCategory(signals, "impact")
	require.Len(t, impact, 1)
	assert.Contains(t, impact[0].Text, "by 40")
	assert.Nil(t, impact[0].Value, "影响类信号不赋数值")
}

func TestExtractSignals_EmptyText(t *testing.T) {
	assert.Empty(t, ExtractSignals(""))
	assert.Empty(t, ExtractSignals("plain text without any signal words"))
}

func TestAggregateSignals(t *testing.T) {
	signals := []Signal{
		{Category: "leadership", Value: floatPtr(100), Confidence: "high"},
		{Category: "leadership", Value: floatPtr(70), Confidence: "high"},
		{Category: "scale", Value: floatPtr(50), Confidence: "medium"},
		{Category: "impact", Confidence: "high"}, // 无数值，不计入
		{Category: "unknown", Value: floatPtr(10), Confidence: "high"},
	}

	agg := AggregateSignals(signals)
	assert.Equal(t, 85.0, agg.Leadership, "同类信号按置信度加权后取均值")
	assert.Equal(t, 35.0, agg.Scale, "medium置信度权重0.7")
	assert.Zero(t, agg.Impact)
	assert.Zero(t, agg.Duration)
}

func TestAggregateSignals_Empty(t *testing.T) {
	agg := AggregateSignals(nil)
	assert.Zero(t, agg.Leadership)
	assert.Zero(t, agg.Scale)
}
