package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-fit-go/internal/types"
)

func TestGroupWords_SingleLine(t *testing.T) {
	words := []types.WordToken{
		{Text: "Software", Top: 100, X0: 10, X1: 60},
		{Text: "Engineer", Top: 101.5, X0: 65, X1: 110}, // 容差内视为同一行
	}

	blocks := GroupWords(words, 1)
	require.Len(t, blocks, 1)
	assert.Equal(t, "Software Engineer", blocks[0].Text)
	assert.Equal(t, 1, blocks[0].Page)
	assert.Equal(t, 1, blocks[0].Line)
}

func TestGroupWords_SeparateLines(t *testing.T) {
	words := []types.WordToken{
		{Text: "Resume", Top: 50, X0: 10, X1: 60},
		{Text: "Experience", Top: 80, X0: 10, X1: 80},
	}

	blocks := GroupWords(words, 1)
	require.Len(t, blocks, 2)
	assert.Equal(t, "Resume", blocks[0].Text)
	assert.Equal(t, "Experience", blocks[1].Text)
}

func TestGroupWords_SplitsColumnsOnGap(t *testing.T) {
	// 同一垂直位置但水平间距超过阈值的两段文本应切成独立块
	words := []types.WordToken{
		{Text: "Python", Top: 100, X0: 10, X1: 50},
		{Text: "Developer", Top: 100, X0: 55, X1: 110},
		{Text: "EDUCATION", Top: 100, X0: 300, X1: 380}, // 右栏
	}

	blocks := GroupWords(words, 1)
	require.Len(t, blocks, 2)
	assert.Equal(t, "Python Developer", blocks[0].Text)
	assert.Equal(t, "EDUCATION", blocks[1].Text)
	assert.Greater(t, blocks[1].Left, blocks[0].Left, "右栏块的Left应更大")
}

func TestGroupWords_OrderTopThenLeft(t *testing.T) {
	// 输入乱序，输出必须自上而下、行内自左向右
	words := []types.WordToken{
		{Text: "second", Top: 200, X0: 10, X1: 50},
		{Text: "first", Top: 100, X0: 10, X1: 40},
		{Text: "line", Top: 100, X0: 45, X1: 70},
	}

	blocks := GroupWords(words, 1)
	require.Len(t, blocks, 2)
	assert.Equal(t, "first line", blocks[0].Text)
	assert.Equal(t, "second", blocks[1].Text)
}

func TestGroupWords_Empty(t *testing.T) {
	assert.Nil(t, GroupWords(nil, 1))
}

func TestBlocksFromText(t *testing.T) {
	blocks := BlocksFromText("EXPERIENCE\n\nSoftware Engineer\n  - Built APIs  \n")
	require.Len(t, blocks, 3, "空行应被跳过")
	assert.Equal(t, "EXPERIENCE", blocks[0].Text)
	assert.Equal(t, "- Built APIs", blocks[2].Text)
	assert.Equal(t, 3, blocks[2].Line)
	assert.Greater(t, blocks[2].Top, blocks[0].Top, "垂直位置按行号递增")
}
