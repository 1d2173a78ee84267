package taxonomy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-fit-go/internal/types"
)

func newDefaultNormalizer(t *testing.T) *Normalizer {
	t.Helper()
	n, err := NewNormalizer("")
	require.NoError(t, err, "内置词表应能成功加载")
	return n
}

func TestNormalize_ExactAlias(t *testing.T) {
	n := newDefaultNormalizer(t)

	cases := []struct {
		input    string
		expected string
	}{
		{"py", "Python"},
		{"reactjs", "React"},
		{"k8s", "Kubernetes"},
		{"ml", "Machine Learning"},
		{"golang", "Go"},
		{"postgres", "PostgreSQL"},
		{"amazon web services", "AWS"},
		{"nodejs", "Node.js"},
	}

	for _, tc := range cases {
		r := n.Normalize(tc.input)
		assert.Equal(t, tc.expected, r.Canonical, "别名 %q 应归一化到 %q", tc.input, tc.expected)
		assert.Equal(t, types.ConfidenceHigh, r.Confidence)
		assert.Equal(t, float64(100), r.Score)
	}
}

func TestNormalize_ExactCanonical(t *testing.T) {
	n := newDefaultNormalizer(t)

	// 大小写不敏感，返回词表中的原始写法
	r := n.Normalize("PYTHON")
	assert.Equal(t, "Python", r.Canonical)
	assert.Equal(t, types.ConfidenceHigh, r.Confidence)
	assert.Equal(t, float64(100), r.Score)
}

func TestNormalize_FuzzyAliasBeatsCanonical(t *testing.T) {
	n := newDefaultNormalizer(t)

	// 别名本身拼错的情况：与标准名"AWS"相距甚远，
	// 但与别名"amazon web services"只差一个字母
	r := n.Normalize("Amazn Web Services")
	assert.Equal(t, "AWS", r.Canonical)
	assert.NotEqual(t, types.ConfidenceNoMatch, r.Confidence)
	assert.Greater(t, r.Score, float64(90))
}

func TestNormalize_FuzzyCanonical(t *testing.T) {
	n := newDefaultNormalizer(t)

	r := n.Normalize("Pythn")
	assert.Equal(t, "Python", r.Canonical)
	assert.Equal(t, types.ConfidenceMedium, r.Confidence)
}

func TestNormalize_NoMatch(t *testing.T) {
	n := newDefaultNormalizer(t)

	r := n.Normalize("zzzzqqqqxxxx")
	assert.Equal(t, "zzzzqqqqxxxx", r.Canonical, "未命中时原样返回输入")
	assert.Equal(t, types.ConfidenceNoMatch, r.Confidence)
	assert.Equal(t, float64(0), r.Score)
}

func TestNormalize_Idempotent(t *testing.T) {
	n := newDefaultNormalizer(t)

	first := n.Normalize("reactjs")
	second := n.Normalize(first.Canonical)
	assert.Equal(t, first.Canonical, second.Canonical, "归一化结果再次归一化应保持不变")
	assert.Equal(t, types.ConfidenceHigh, second.Confidence)
}

func TestNormalize_Deterministic(t *testing.T) {
	// 两个独立构造的实例对同一输入必须给出相同结果
	a := newDefaultNormalizer(t)
	b := newDefaultNormalizer(t)

	inputs := []string{"py", "Amazn Web Services", "Pythn", "kuberntes", "unknown skill"}
	for _, in := range inputs {
		ra, rb := a.Normalize(in), b.Normalize(in)
		assert.Equal(t, ra, rb, "输入 %q 的归一化结果应确定", in)
	}
}

func TestNormalize_EmptyTaxonomy(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(path, []byte("categories: {}\n"), 0644))

	n, err := NewNormalizer(path)
	require.NoError(t, err)

	r := n.Normalize("Python")
	assert.Equal(t, "Python", r.Canonical)
	assert.Equal(t, types.ConfidenceNoMatch, r.Confidence)
}

func TestNormalizeBatch(t *testing.T) {
	n := newDefaultNormalizer(t)

	results := n.NormalizeBatch([]string{"py", "k8s"})
	require.Len(t, results, 2)
	assert.Equal(t, "py", results[0].Original)
	assert.Equal(t, "Python", results[0].Canonical)
	assert.Equal(t, "Kubernetes", results[1].Canonical)
}

func TestGetCategory(t *testing.T) {
	n := newDefaultNormalizer(t)

	assert.Equal(t, "programming_languages", n.GetCategory("py"))
	assert.Equal(t, "devops_tools", n.GetCategory("Docker"))
	assert.Empty(t, n.GetCategory("zzzzqqqqxxxx"))
}

func TestGetRelatedSkills(t *testing.T) {
	n := newDefaultNormalizer(t)

	related := n.GetRelatedSkills("postgres")
	assert.Contains(t, related, "PostgreSQL")
	assert.Contains(t, related, "MySQL")
}

func TestMissingTaxonomyFile(t *testing.T) {
	_, err := NewNormalizer("/nonexistent/skills.yaml")
	require.Error(t, err)
}
