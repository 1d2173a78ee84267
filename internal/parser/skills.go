package parser

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"resume-fit-go/internal/types"
)

// skillPattern 一条技能识别模式：正则、标准名、类别
type skillPattern struct {
	re        *regexp.Regexp
	canonical string
	category  types.SkillCategory
}

func sp(pattern, canonical string, category types.SkillCategory) skillPattern {
	return skillPattern{
		re:        regexp.MustCompile(pattern),
		canonical: canonical,
		category:  category,
	}
}

// skillPatterns 常见技能关键词表，覆盖技术、业务工具、软技能与医疗等领域
// 匹配在小写文本上进行，顺序即产出顺序
var skillPatterns = []skillPattern{
	// 编程语言
	sp(`\bpython\b`, "Python", types.CategoryProgrammingLanguages),
	sp(`\bjavascript\b|\bjs\b`, "JavaScript", types.CategoryProgrammingLanguages),
	sp(`\btypescript\b|\bts\b`, "TypeScript", types.CategoryProgrammingLanguages),
	sp(`\bjava\b`, "Java", types.CategoryProgrammingLanguages),
	sp(`\bc\+\+\b|cpp\b`, "C++", types.CategoryProgrammingLanguages),
	sp(`\bc#\b|csharp\b`, "C#", types.CategoryProgrammingLanguages),
	sp(`\bgolang\b|\bgo\b`, "Go", types.CategoryProgrammingLanguages),
	sp(`\brust\b`, "Rust", types.CategoryProgrammingLanguages),
	sp(`\bruby\b`, "Ruby", types.CategoryProgrammingLanguages),
	sp(`\bphp\b`, "PHP", types.CategoryProgrammingLanguages),
	sp(`\bswift\b`, "Swift", types.CategoryProgrammingLanguages),
	sp(`\bkotlin\b`, "Kotlin", types.CategoryProgrammingLanguages),
	sp(`\bscala\b`, "Scala", types.CategoryProgrammingLanguages),
	sp(`\br[\s,.]`, "R", types.CategoryProgrammingLanguages),
	sp(`\bmatlab\b`, "MATLAB", types.CategoryProgrammingLanguages),
	sp(`\bsql\b`, "SQL", types.CategoryProgrammingLanguages),
	sp(`\bhtml\b`, "HTML", types.CategoryProgrammingLanguages),
	sp(`\bcss\b`, "CSS", types.CategoryProgrammingLanguages),
	sp(`\bshell\b|\bbash\b`, "Bash", types.CategoryProgrammingLanguages),

	// Web框架
	sp(`\breact\b|\breactjs\b|react\.js\b`, "React", types.CategoryFrameworks),
	sp(`\bangular\b`, "Angular", types.CategoryFrameworks),
	sp(`\bvue\b|\bvuejs\b|vue\.js\b`, "Vue.js", types.CategoryFrameworks),
	sp(`\bnode\b|\bnodejs\b|node\.js\b`, "Node.js", types.CategoryFrameworks),
	sp(`\bexpress\b|express\.js\b`, "Express.js", types.CategoryFrameworks),
	sp(`\bdjango\b`, "Django", types.CategoryFrameworks),
	sp(`\bflask\b`, "Flask", types.CategoryFrameworks),
	sp(`\bfastapi\b`, "FastAPI", types.CategoryFrameworks),
	sp(`\bspring\s?boot\b|\bspring\b`, "Spring Boot", types.CategoryFrameworks),
	sp(`\bnext\.?js\b`, "Next.js", types.CategoryFrameworks),
	sp(`\btailwind\b`, "Tailwind CSS", types.CategoryFrameworks),
	sp(`\bbootstrap\b`, "Bootstrap", types.CategoryFrameworks),
	sp(`\bjquery\b`, "jQuery", types.CategoryFrameworks),
	sp(`\brails\b|ruby on rails\b`, "Ruby on Rails", types.CategoryFrameworks),
	sp(`\blasp\.?net\b|\.net\b`, ".NET", types.CategoryFrameworks),

	// ML/AI框架
	sp(`\btensorflow\b`, "TensorFlow", types.CategoryFrameworks),
	sp(`\bpytorch\b`, "PyTorch", types.CategoryFrameworks),
	sp(`\bkeras\b`, "Keras", types.CategoryFrameworks),
	sp(`\bscikit-?learn\b|sklearn\b`, "Scikit-learn", types.CategoryFrameworks),
	sp(`\bpandas\b`, "Pandas", types.CategoryFrameworks),
	sp(`\bnumpy\b`, "NumPy", types.CategoryFrameworks),
	sp(`\bopencv\b`, "OpenCV", types.CategoryFrameworks),
	sp(`\bhugging\s?face\b`, "Hugging Face", types.CategoryFrameworks),

	// 数据库
	sp(`\bpostgres(?:ql)?\b`, "PostgreSQL", types.CategoryDatabases),
	sp(`\bmysql\b`, "MySQL", types.CategoryDatabases),
	sp(`\bmongodb\b|\bmongo\b`, "MongoDB", types.CategoryDatabases),
	sp(`\bredis\b`, "Redis", types.CategoryDatabases),
	sp(`\bsqlite\b`, "SQLite", types.CategoryDatabases),
	sp(`\boracle\b`, "Oracle", types.CategoryDatabases),
	sp(`\bsql server\b|mssql\b`, "SQL Server", types.CategoryDatabases),
	sp(`\bdynamodb\b`, "DynamoDB", types.CategoryDatabases),
	sp(`\bcassandra\b`, "Cassandra", types.CategoryDatabases),
	sp(`\belasticsearch\b`, "Elasticsearch", types.CategoryDatabases),
	sp(`\bfirebase\b`, "Firebase", types.CategoryDatabases),

	// 云与DevOps
	sp(`\baws\b|amazon web services\b`, "AWS", types.CategoryCloud),
	sp(`\bgcp\b|google cloud\b`, "Google Cloud", types.CategoryCloud),
	sp(`\bazure\b|microsoft azure\b`, "Azure", types.CategoryCloud),
	sp(`\bdocker\b`, "Docker", types.CategoryTools),
	sp(`\bkubernetes\b|\bk8s\b`, "Kubernetes", types.CategoryTools),
	sp(`\bgit\b`, "Git", types.CategoryTools),
	sp(`\bgithub\b`, "GitHub", types.CategoryTools),
	sp(`\bgitlab\b`, "GitLab", types.CategoryTools),
	sp(`\bjenkins\b`, "Jenkins", types.CategoryTools),
	sp(`\bci/?cd\b`, "CI/CD", types.CategoryTools),
	sp(`\bterraform\b`, "Terraform", types.CategoryTools),
	sp(`\bansible\b`, "Ansible", types.CategoryTools),
	sp(`\blinux\b`, "Linux", types.CategoryTools),
	sp(`\bnginx\b`, "Nginx", types.CategoryTools),
	sp(`\bapache\b`, "Apache", types.CategoryTools),
	sp(`\bjira\b`, "Jira", types.CategoryTools),
	sp(`\bconfluence\b`, "Confluence", types.CategoryTools),
	sp(`\bfigma\b`, "Figma", types.CategoryTools),
	sp(`\bpostman\b`, "Postman", types.CategoryTools),

	// 软技能
	sp(`\bcommunication\b`, "Communication", types.CategorySoftSkills),
	sp(`\bleadership\b`, "Leadership", types.CategorySoftSkills),
	sp(`\bteamwork\b|team\s*work\b`, "Teamwork", types.CategorySoftSkills),
	sp(`\bproblem[- ]?solving\b`, "Problem Solving", types.CategorySoftSkills),
	sp(`\bagile\b`, "Agile", types.CategorySoftSkills),
	sp(`\bscrum\b`, "Scrum", types.CategorySoftSkills),
	sp(`\badaptability\b`, "Adaptability", types.CategorySoftSkills),
	sp(`\bcollaboration\b`, "Collaboration", types.CategorySoftSkills),
	sp(`\btime[- ]?management\b`, "Time Management", types.CategorySoftSkills),
	sp(`\bcritical[- ]?thinking\b`, "Critical Thinking", types.CategorySoftSkills),
	sp(`\bwork[- ]?ethic\b|strong work ethic\b`, "Strong Work Ethic", types.CategorySoftSkills),
	sp(`\battention[- ]?to[- ]?detail\b`, "Attention to Detail", types.CategorySoftSkills),
	sp(`\bproject[- ]?management\b`, "Project Management", types.CategorySoftSkills),
	sp(`\bcustomer[- ]?service\b`, "Customer Service", types.CategorySoftSkills),
	sp(`\borganization\b|organizational\b`, "Organization", types.CategorySoftSkills),
	sp(`\bpresentation\b`, "Presentation", types.CategorySoftSkills),
	sp(`\bmultitasking\b|multi-tasking\b`, "Multitasking", types.CategorySoftSkills),
	sp(`\bhandling[- ]?pressure\b`, "Handling Pressure", types.CategorySoftSkills),
	sp(`\binterpersonal\b`, "Interpersonal Skills", types.CategorySoftSkills),
	sp(`\bconflict[- ]?resolution\b`, "Conflict Resolution", types.CategorySoftSkills),
	sp(`\bnegotiation\b`, "Negotiation", types.CategorySoftSkills),
	sp(`\bcoaching\b|mentoring\b`, "Coaching/Mentoring", types.CategorySoftSkills),

	// 办公与业务工具
	sp(`\bmicrosoft\s*excel\b|\bexcel\b`, "Microsoft Excel", types.CategoryTools),
	sp(`\bmicrosoft\s*word\b|\bword\b`, "Microsoft Word", types.CategoryTools),
	sp(`\bmicrosoft\s*powerpoint\b|\bpowerpoint\b`, "Microsoft PowerPoint", types.CategoryTools),
	sp(`\bmicrosoft\s*office\b|\bms\s*office\b`, "Microsoft Office", types.CategoryTools),
	sp(`\boutlook\b`, "Outlook", types.CategoryTools),
	sp(`\bsalesforce\b`, "Salesforce", types.CategoryTools),
	sp(`\bsap\b`, "SAP", types.CategoryTools),
	sp(`\btableau\b`, "Tableau", types.CategoryTools),
	sp(`\bpower\s*bi\b`, "Power BI", types.CategoryTools),

	// 其他技术概念
	sp(`\brest\s*api\b|\brestful\b`, "REST API", types.CategoryOther),
	sp(`\bgraphql\b`, "GraphQL", types.CategoryOther),
	sp(`\bmicroservices\b`, "Microservices", types.CategoryOther),
	sp(`\bmachine\s*learning\b|\bml\b`, "Machine Learning", types.CategoryOther),
	sp(`\bdeep\s*learning\b|\bdl\b`, "Deep Learning", types.CategoryOther),
	sp(`\bdata\s*science\b`, "Data Science", types.CategoryOther),
	sp(`\bnlp\b|natural language processing\b`, "NLP", types.CategoryOther),
	sp(`\bcomputer vision\b`, "Computer Vision", types.CategoryOther),

	// 开发方向
	sp(`\bfull\s*stack\b|fullstack\b`, "Full Stack Development", types.CategoryOther),
	sp(`\bfront\s*end\b|frontend\b`, "Frontend Development", types.CategoryOther),
	sp(`\bback\s*end\b|backend\b`, "Backend Development", types.CategoryOther),
	sp(`\bweb\s*development\b|web\s*dev\b`, "Web Development", types.CategoryOther),
	sp(`\bmobile\s*development\b|mobile\s*dev\b|app\s*development\b`, "Mobile Development", types.CategoryOther),
	sp(`\bsoftware\s*development\b|software\s*dev\b`, "Software Development", types.CategoryOther),

	// 数据结构与算法
	sp(`\bdsa\b|data\s*structures?\s*(and|&)?\s*algorithms?\b`, "Data Structures & Algorithms", types.CategoryOther),
	sp(`\balgorithms?\b`, "Algorithms", types.CategoryOther),
	sp(`\bdata\s*structures?\b`, "Data Structures", types.CategoryOther),
	sp(`\boops?\b|object\s*oriented\s*programming\b`, "Object-Oriented Programming", types.CategoryOther),
	sp(`\boop\s*concepts?\b`, "OOP Concepts", types.CategoryOther),

	// 设计
	sp(`\bgraphic\s*design(er|ing)?\b`, "Graphic Design", types.CategoryTools),
	sp(`\bui\s*/?ux\b|ux\s*/?ui\b`, "UI/UX Design", types.CategoryTools),
	sp(`\buser\s*experience\b`, "User Experience", types.CategoryTools),
	sp(`\buser\s*interface\b`, "User Interface", types.CategoryTools),
	sp(`\bvisual\s*design\b`, "Visual Design", types.CategoryTools),
	sp(`\bweb\s*design\b`, "Web Design", types.CategoryTools),
	sp(`\badobe\s*photoshop\b|photoshop\b`, "Adobe Photoshop", types.CategoryTools),
	sp(`\badobe\s*illustrator\b|illustrator\b`, "Adobe Illustrator", types.CategoryTools),
	sp(`\badobe\s*xd\b`, "Adobe XD", types.CategoryTools),
	sp(`\bcanva\b`, "Canva", types.CategoryTools),
	sp(`\bsketch\b`, "Sketch", types.CategoryTools),
	sp(`\binvision\b`, "InVision", types.CategoryTools),

	// 物联网与嵌入式
	sp(`\biot\b|internet\s*of\s*things\b`, "IoT", types.CategoryOther),
	sp(`\bembedded\s*systems?\b`, "Embedded Systems", types.CategoryOther),
	sp(`\barduino\b`, "Arduino", types.CategoryTools),
	sp(`\braspberry\s*pi\b`, "Raspberry Pi", types.CategoryTools),
	sp(`\bmicrocontrollers?\b`, "Microcontrollers", types.CategoryOther),
	sp(`\bhardware\b`, "Hardware", types.CategoryOther),
	sp(`\bfirmware\b`, "Firmware", types.CategoryOther),
	sp(`\bpcb\s*design\b`, "PCB Design", types.CategoryTools),

	// 社媒与内容
	sp(`\bsocial\s*media\b`, "Social Media", types.CategoryTools),
	sp(`\bcontent\s*creation\b|content\s*creator\b`, "Content Creation", types.CategoryOther),
	sp(`\bvideo\s*editing\b`, "Video Editing", types.CategoryTools),
	sp(`\bpremiere\s*pro\b`, "Adobe Premiere Pro", types.CategoryTools),
	sp(`\bafter\s*effects\b`, "Adobe After Effects", types.CategoryTools),
	sp(`\bfinal\s*cut\b`, "Final Cut Pro", types.CategoryTools),

	// 学习平台（用于证书识别）
	sp(`\bcoursera\b`, "Coursera", types.CategoryOther),
	sp(`\budemy\b`, "Udemy", types.CategoryOther),
	sp(`\bedx\b`, "edX", types.CategoryOther),
	sp(`\bforage\b`, "Forage", types.CategoryOther),
	sp(`\blinkedin\s*learning\b`, "LinkedIn Learning", types.CategoryOther),

	// 医疗健康
	sp(`\bpatient\s*care\b`, "Patient Care", types.CategoryHealthcare),
	sp(`\bvital\s*signs\b`, "Vital Signs", types.CategoryHealthcare),
	sp(`\bphlebotomy\b`, "Phlebotomy", types.CategoryHealthcare),
	sp(`\bemr\b|electronic\s*medical\s*records?\b`, "EMR", types.CategoryTools),
	sp(`\behr\b|electronic\s*health\s*records?\b`, "EHR", types.CategoryTools),
	sp(`\bhipaa\b`, "HIPAA", types.CategoryHealthcare),
	sp(`\bbls\b|basic\s*life\s*support\b`, "BLS", types.CategoryCertifications),
	sp(`\bacls\b|advanced\s*cardiac\s*life\s*support\b`, "ACLS", types.CategoryCertifications),
	sp(`\bcpr\b`, "CPR", types.CategoryCertifications),
	sp(`\btriage\b`, "Triage", types.CategoryHealthcare),
	sp(`\bmedication\s*administration\b`, "Medication Administration", types.CategoryHealthcare),
	sp(`\bclinical\s*documentation\b`, "Clinical Documentation", types.CategoryHealthcare),
	sp(`\bmedical\s*billing\b`, "Medical Billing", types.CategoryHealthcare),
	sp(`\bicd[- ]?10\b`, "ICD-10", types.CategoryHealthcare),
	sp(`\bepic\b`, "Epic", types.CategoryTools),
	sp(`\bcerner\b`, "Cerner", types.CategoryTools),
	sp(`\bmeditech\b`, "Meditech", types.CategoryTools),
	sp(`\bnursing\b`, "Nursing", types.CategoryHealthcare),
	sp(`\banatomy\b`, "Anatomy", types.CategoryHealthcare),
	sp(`\bphysiology\b`, "Physiology", types.CategoryHealthcare),
}

// contextRadius 证据片段在命中位置前后各截取的字符数
const contextRadius = 50

// ExtractSkillsFromText 用关键词表在任意文本上抽取技能
// 按标准名去重（首次命中保留），证据为命中位置前后各50字符的原文片段
func ExtractSkillsFromText(text string) []types.ExtractedSkill {
	textLower := strings.ToLower(text)
	seen := make(map[string]bool)
	var skills []types.ExtractedSkill

	for _, p := range skillPatterns {
		if seen[p.canonical] {
			continue
		}
		loc := p.re.FindStringIndex(textLower)
		if loc == nil {
			continue
		}
		seen[p.canonical] = true

		start := snapRuneStart(text, loc[0]-contextRadius)
		end := snapRuneStart(text, loc[1]+contextRadius)
		name := strings.TrimRight(textLower[loc[0]:loc[1]], " ,.\t\n")

		skills = append(skills, types.ExtractedSkill{
			Name:          name,
			CanonicalName: p.canonical,
			Category:      p.category,
			Confidence:    types.ConfidenceHigh,
			SourceText:    text[start:end],
		})
	}

	return skills
}

// snapRuneStart 把字节偏移夹到[0,len]并对齐到UTF-8字符边界
func snapRuneStart(s string, pos int) int {
	if pos < 0 {
		return 0
	}
	if pos >= len(s) {
		return len(s)
	}
	for pos > 0 && !utf8.RuneStart(s[pos]) {
		pos--
	}
	return pos
}
