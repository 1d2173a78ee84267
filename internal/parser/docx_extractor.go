package parser

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"resume-fit-go/internal/types"
)

// DOCX提取：读取word/document.xml，正常路径走段落和表格；
// 段落/表格提取不到足够内容时（少于3个片段或不足100字符），
// 退化为递归收集全部XML文本节点——多栏版式常把内容放进文本框，
// 段落接口看不到那部分

// docxNode 通用XML节点树，Text收集节点自身的字符数据
type docxNode struct {
	XMLName xml.Name
	Attrs   []xml.Attr `xml:",any,attr"`
	Nodes   []docxNode `xml:",any"`
	Text    string     `xml:",chardata"`
}

// docxFallbackMinParts 段落/表格提取片段数低于该值时触发XML兜底
const docxFallbackMinParts = 3

// docxFallbackMinChars 段落/表格提取总字符数低于该值时触发XML兜底
const docxFallbackMinChars = 100

// ExtractDocx 从DOCX字节内容提取原文和文本块
// DOCX没有坐标，垂直位置按行号合成
func ExtractDocx(data []byte) (string, []types.TextBlock, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", nil, fmt.Errorf("DOCX不是有效的zip文件: %w", err)
	}

	var docXML []byte
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			rc, err := f.Open()
			if err != nil {
				return "", nil, fmt.Errorf("打开document.xml失败: %w", err)
			}
			docXML, err = io.ReadAll(rc)
			rc.Close()
			if err != nil {
				return "", nil, fmt.Errorf("读取document.xml失败: %w", err)
			}
			break
		}
	}
	if docXML == nil {
		return "", nil, fmt.Errorf("DOCX缺少word/document.xml")
	}

	var root docxNode
	if err := xml.Unmarshal(docXML, &root); err != nil {
		return "", nil, fmt.Errorf("解析document.xml失败: %w", err)
	}

	body := findChild(&root, "body")
	if body == nil {
		return "", nil, fmt.Errorf("document.xml缺少body元素")
	}

	var rawParts []string
	var blocks []types.TextBlock
	lineNum := 0

	appendBlock := func(text string, bold, heading bool) {
		lineNum++
		rawParts = append(rawParts, text)
		blocks = append(blocks, types.TextBlock{
			Text:      strings.TrimSpace(text),
			Page:      1,
			Line:      lineNum,
			Top:       float64(lineNum) * docxLineSpacing,
			IsBold:    bold,
			IsHeading: heading,
		})
	}

	for i := range body.Nodes {
		node := &body.Nodes[i]
		switch node.XMLName.Local {
		case "p":
			text := paragraphText(node)
			if strings.TrimSpace(text) == "" {
				continue
			}
			heading := paragraphIsHeading(node)
			bold := paragraphIsBold(node) || heading
			appendBlock(text, bold, heading)
		case "tbl":
			for _, row := range childrenNamed(node, "tr") {
				for _, cell := range childrenNamed(row, "tc") {
					text := cellText(cell)
					if strings.TrimSpace(text) != "" {
						appendBlock(text, false, false)
					}
				}
			}
		}
	}

	if len(rawParts) < docxFallbackMinParts || len(strings.Join(rawParts, " ")) < docxFallbackMinChars {
		existing := make(map[string]bool, len(rawParts))
		for _, p := range rawParts {
			existing[strings.TrimSpace(p)] = true
		}
		for _, chunk := range extractAllXMLText(body) {
			if chunk != "" && !existing[chunk] {
				existing[chunk] = true
				appendBlock(chunk, false, false)
			}
		}
	}

	return strings.Join(rawParts, "\n"), blocks, nil
}

// extractAllXMLText 递归收集全部文本节点，按空白归一化后的内容去重，
// 保持首次出现顺序
func extractAllXMLText(node *docxNode) []string {
	var texts []string
	var walk func(n *docxNode)
	walk = func(n *docxNode) {
		if t := strings.TrimSpace(n.Text); t != "" {
			texts = append(texts, t)
		}
		for i := range n.Nodes {
			walk(&n.Nodes[i])
		}
	}
	walk(node)

	seen := make(map[string]bool, len(texts))
	var unique []string
	for _, t := range texts {
		normalized := strings.Join(strings.Fields(t), " ")
		if len(normalized) > 1 && !seen[normalized] {
			seen[normalized] = true
			unique = append(unique, normalized)
		}
	}
	return unique
}

// paragraphText 拼接段落内所有w:t的文本
func paragraphText(p *docxNode) string {
	var sb strings.Builder
	var walk func(n *docxNode)
	walk = func(n *docxNode) {
		if n.XMLName.Local == "t" {
			sb.WriteString(n.Text)
			return
		}
		for i := range n.Nodes {
			walk(&n.Nodes[i])
		}
	}
	walk(p)
	return sb.String()
}

// paragraphIsBold 过半数run为粗体时段落视为粗体
func paragraphIsBold(p *docxNode) bool {
	runs := childrenNamed(p, "r")
	if len(runs) == 0 {
		return false
	}
	boldCount := 0
	for _, run := range runs {
		if rpr := findChild(run, "rPr"); rpr != nil && findChild(rpr, "b") != nil {
			boldCount++
		}
	}
	return boldCount > len(runs)/2
}

func paragraphIsHeading(p *docxNode) bool {
	ppr := findChild(p, "pPr")
	if ppr == nil {
		return false
	}
	style := findChild(ppr, "pStyle")
	if style == nil {
		return false
	}
	for _, attr := range style.Attrs {
		if attr.Name.Local == "val" && strings.HasPrefix(strings.ToLower(attr.Value), "heading") {
			return true
		}
	}
	return false
}

// cellText 表格单元格内各段落文本按换行拼接
func cellText(tc *docxNode) string {
	var parts []string
	for _, p := range childrenNamed(tc, "p") {
		parts = append(parts, paragraphText(p))
	}
	return strings.Join(parts, "\n")
}

func findChild(n *docxNode, local string) *docxNode {
	for i := range n.Nodes {
		if n.Nodes[i].XMLName.Local == local {
			return &n.Nodes[i]
		}
	}
	return nil
}

func childrenNamed(n *docxNode, local string) []*docxNode {
	var out []*docxNode
	for i := range n.Nodes {
		if n.Nodes[i].XMLName.Local == local {
			out = append(out, &n.Nodes[i])
		}
	}
	return out
}
