package parser

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/cloudwego/eino-ext/components/document/parser/pdf"
	einoParser "github.com/cloudwego/eino/components/document/parser"

	"resume-fit-go/internal/logger"
	"resume-fit-go/internal/types"
)

// pdfExtractTimeout 单个PDF的提取超时
const pdfExtractTimeout = 30 * time.Second

// PDFExtractor 使用 Eino PDF Parser 提取文本
// 提取不到坐标信息，文本块由整文按行合成
type PDFExtractor struct {
	parser *pdf.PDFParser
}

// NewPDFExtractor 初始化PDF文本提取器
// 配置为不按页面分割，获取整个文档的连续文本
func NewPDFExtractor(ctx context.Context) (*PDFExtractor, error) {
	p, err := pdf.NewPDFParser(ctx, &pdf.Config{
		ToPages: false,
	})
	if err != nil {
		return nil, fmt.Errorf("创建Eino PDF解析器失败: %w", err)
	}
	return &PDFExtractor{parser: p}, nil
}

// ExtractFromBytes 从PDF字节内容提取原文和文本块
func (e *PDFExtractor) ExtractFromBytes(ctx context.Context, data []byte, uri string) (string, []types.TextBlock, error) {
	return e.ExtractFromReader(ctx, bytes.NewReader(data), uri)
}

// ExtractFromReader 从 io.Reader 提取原文和文本块
func (e *PDFExtractor) ExtractFromReader(ctx context.Context, reader io.Reader, uri string) (string, []types.TextBlock, error) {
	startTime := time.Now()
	logger.Debug().Str("uri", uri).Msg("开始提取PDF文本")

	ctx, cancel := context.WithTimeout(ctx, pdfExtractTimeout)
	defer cancel()

	docs, err := e.parser.Parse(ctx, reader, einoParser.WithURI(uri))
	duration := time.Since(startTime)
	if err != nil {
		logger.Error().Err(err).Str("uri", uri).Dur("duration", duration).Msg("PDF提取失败")
		return "", nil, fmt.Errorf("PDF解析失败 (uri=%s): %w", uri, err)
	}
	if len(docs) == 0 {
		return "", nil, fmt.Errorf("PDF解析无结果 (uri=%s)", uri)
	}

	var sb bytes.Buffer
	for i, doc := range docs {
		sb.WriteString(doc.Content)
		if i < len(docs)-1 {
			sb.WriteString("\n")
		}
	}
	rawText := sb.String()

	logger.Info().
		Str("uri", uri).
		Int("chars", len(rawText)).
		Int("documents", len(docs)).
		Dur("duration", duration).
		Msg("PDF提取完成")

	return rawText, BlocksFromText(rawText), nil
}
