package parser

import (
	"regexp"

	"resume-fit-go/internal/types"
)

var (
	emailRegexp    = regexp.MustCompile(`[\w.+-]+@[\w-]+\.[\w.-]+`)
	phoneRegexp    = regexp.MustCompile(`[\+]?[(]?[0-9]{1,3}[)]?[-\s\.]?[(]?[0-9]{1,4}[)]?[-\s\.]?[0-9]{1,4}[-\s\.]?[0-9]{1,9}`)
	linkedinRegexp = regexp.MustCompile(`(?i)linkedin\.com/in/[\w-]+`)
	githubRegexp   = regexp.MustCompile(`(?i)github\.com/[\w-]+`)
)

// ExtractContactInfo 单次正则扫描抽取邮箱、电话、LinkedIn和GitHub
// 没有专门联系方式章节时可以直接传全文
func ExtractContactInfo(text string) types.ContactInfo {
	return types.ContactInfo{
		Email:    emailRegexp.FindString(text),
		Phone:    phoneRegexp.FindString(text),
		LinkedIn: linkedinRegexp.FindString(text),
		GitHub:   githubRegexp.FindString(text),
	}
}
