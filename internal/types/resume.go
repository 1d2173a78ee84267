package types

// SectionKind 表示简历章节类型
type SectionKind string

const (
	// SectionEducation 教育经历章节
	SectionEducation SectionKind = "education"
	// SectionExperience 工作经历章节
	SectionExperience SectionKind = "experience"
	// SectionProjects 项目经历章节
	SectionProjects SectionKind = "projects"
	// SectionSkills 技能章节
	SectionSkills SectionKind = "skills"
	// SectionCertifications 证书章节
	SectionCertifications SectionKind = "certifications"
	// SectionContact 联系方式章节
	SectionContact SectionKind = "contact"
	// SectionSummary 个人简介章节
	SectionSummary SectionKind = "summary"
)

// WordToken 表示上游PDF解析器产出的带坐标的单词级文本片段
// Top/X0/X1 使用PDF坐标单位，Height 近似字号
type WordToken struct {
	Text   string  `json:"text"`
	Top    float64 `json:"top"`
	X0     float64 `json:"x0"`
	X1     float64 `json:"x1"`
	Height float64 `json:"height,omitempty"`
}

// TextBlock 表示一段带版面信息的文本块，由布局归一化器产出
// 排序规则：先按 Top（自上而下），再按 Left（自左向右）
// 一旦创建即视为不可变，仅供章节分割器消费
type TextBlock struct {
	Text      string  `json:"text"`
	Page      int     `json:"page"`
	Line      int     `json:"line"`
	Top       float64 `json:"top"`
	Left      float64 `json:"left"`
	FontSize  float64 `json:"font_size,omitempty"`
	IsBold    bool    `json:"is_bold"`
	IsHeading bool    `json:"is_heading,omitempty"`
}

// SectionBoundary 表示某章节在TextBlock序列上的半开区间 [Start, End)
// 章节标题块本身不包含在区间内
type SectionBoundary struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// EducationEntry 教育经历条目
type EducationEntry struct {
	Institution  string `json:"institution"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"field_of_study,omitempty"`
	StartDate    string `json:"start_date,omitempty"`
	EndDate      string `json:"end_date,omitempty"`
	GPA          string `json:"gpa,omitempty"`
	// SourceText 产生该条目的简历原文片段，用于可解释性，禁止合成
	SourceText string `json:"source_text"`
}

// ExperienceEntry 工作经历条目
type ExperienceEntry struct {
	Company          string   `json:"company"`
	Title            string   `json:"title"`
	StartDate        string   `json:"start_date,omitempty"`
	EndDate          string   `json:"end_date,omitempty"`
	Description      string   `json:"description"`
	Responsibilities []string `json:"responsibilities"`
	SourceText       string   `json:"source_text"`
}

// ProjectEntry 项目经历条目
type ProjectEntry struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	URL          string   `json:"url,omitempty"`
	SourceText   string   `json:"source_text"`
}

// CertificationEntry 证书条目
type CertificationEntry struct {
	Name         string `json:"name"`
	Issuer       string `json:"issuer"`
	Date         string `json:"date,omitempty"`
	CredentialID string `json:"credential_id,omitempty"`
	URL          string `json:"url,omitempty"`
	SourceText   string `json:"source_text"`
}

// SkillCategory 技能类别
type SkillCategory string

const (
	CategoryProgrammingLanguages SkillCategory = "programming_languages"
	CategoryFrameworks           SkillCategory = "frameworks"
	CategoryDatabases            SkillCategory = "databases"
	CategoryTools                SkillCategory = "tools"
	CategoryCloud                SkillCategory = "cloud"
	CategorySoftSkills           SkillCategory = "soft_skills"
	CategoryCertifications       SkillCategory = "certifications"
	CategoryHealthcare           SkillCategory = "healthcare"
	CategoryOther                SkillCategory = "other"
)

// ConfidenceLevel 匹配置信度
type ConfidenceLevel string

const (
	ConfidenceHigh   ConfidenceLevel = "high"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceLow    ConfidenceLevel = "low"
	// ConfidenceNoMatch 词表归一化未命中任何候选
	ConfidenceNoMatch ConfidenceLevel = "no_match"
)

// ExtractedSkill 从简历中抽取的技能
// CanonicalName 由技能词表归一化得到；全文档范围内按 CanonicalName 去重，
// 首次出现的 SourceText 作为去重后的证据
type ExtractedSkill struct {
	Name          string          `json:"name"`
	CanonicalName string          `json:"canonical_name"`
	Category      SkillCategory   `json:"category"`
	Confidence    ConfidenceLevel `json:"confidence"`
	SourceText    string          `json:"source_text"`
	LineNumber    int             `json:"line_number,omitempty"`
}

// ContactInfo 联系方式
type ContactInfo struct {
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
}

// ParsedResume 解析后的完整简历结构（聚合根）
// 上传时创建一次；此后仅允许用户显式修正（人工校正），不做静默重推导
type ParsedResume struct {
	RawText         string               `json:"raw_text"`
	Education       []EducationEntry     `json:"education"`
	Experience      []ExperienceEntry    `json:"experience"`
	Projects        []ProjectEntry       `json:"projects"`
	Certifications  []CertificationEntry `json:"certifications"`
	Skills          []ExtractedSkill     `json:"skills"`
	ContactInfo     ContactInfo          `json:"contact_info"`
	ParsingWarnings []string             `json:"parsing_warnings"`
}

// SkillPriority JD中技能的优先级
type SkillPriority string

const (
	PriorityRequired SkillPriority = "required"
	PriorityOptional SkillPriority = "optional"
)

// JDRequirement 岗位描述中的单条要求
type JDRequirement struct {
	Text     string        `json:"text"`
	Skills   []string      `json:"skills"`
	Priority SkillPriority `json:"priority"`
}

// ParsedJobDescription 解析后的岗位描述结构
type ParsedJobDescription struct {
	RawText                string          `json:"raw_text"`
	Title                  string          `json:"title,omitempty"`
	Company                string          `json:"company,omitempty"`
	Requirements           []JDRequirement `json:"requirements"`
	RequiredSkills         []string        `json:"required_skills"`
	OptionalSkills         []string        `json:"optional_skills"`
	ExperienceRequirements string          `json:"experience_requirements,omitempty"`
	EducationRequirements  string          `json:"education_requirements,omitempty"`
}
