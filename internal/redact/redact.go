package redact

import (
	"strings"
)

const (
	// DefaultMaxLength 默认日志字段最大长度
	DefaultMaxLength = 200

	// MaxSnippetLength 简历/JD文本片段最大长度
	MaxSnippetLength = 150
)

// piiFieldLookup 需要掩码处理的字段名关键字
var piiFieldLookup = map[string]bool{
	"email":    true,
	"phone":    true,
	"password": true,
	"身份证":      true,
	"id_card":  true,
	"address":  true,
	"地址":       true,
	"name":     true,
	"姓名":       true,
	"secret":   true,
	"token":    true,
}

// SafeLogValue 确保日志字段值安全，不泄露敏感信息
// 1. 字段名命中PII关键字时返回掩码后的值
// 2. 长度超过maxLength时截断
func SafeLogValue(name string, value string, maxLength int) string {
	lowerName := strings.ToLower(name)
	for keyword := range piiFieldLookup {
		if strings.Contains(lowerName, keyword) {
			return MaskPII(value)
		}
	}

	return TruncateString(value, maxLength)
}

// MaskPII 对个人敏感信息进行掩码处理
func MaskPII(value string) string {
	if value == "" {
		return ""
	}

	runes := []rune(value)
	length := len(runes)

	if length <= 1 {
		return "*"
	}
	// 短值如 "张三" -> "张*"，"王小明" -> "王*明"
	if length <= 4 {
		if length == 2 {
			return string(runes[0:1]) + "*"
		}
		return string(runes[0:1]) + strings.Repeat("*", length-2) + string(runes[length-1:])
	}

	// 较长的值（邮箱、电话）保留首尾各2个字符
	// "myemail@example.com" -> "my***************om"
	return string(runes[0:2]) + strings.Repeat("*", length-4) + string(runes[length-2:])
}

// TruncateString 截断字符串，保留前后两段并用...连接
func TruncateString(s string, maxLength int) string {
	runes := []rune(s)
	if len(runes) <= maxLength {
		return s
	}

	if maxLength <= 3 {
		return string(runes[:maxLength])
	}

	half := (maxLength - 3) / 2
	if half < 1 {
		half = 1
	}

	return string(runes[:half]) + "..." + string(runes[len(runes)-half:])
}

// SafeSnippet 安全处理简历或JD的原文片段
func SafeSnippet(content string) string {
	return TruncateString(content, MaxSnippetLength)
}
