package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"resume-fit-go/internal/config"
	"resume-fit-go/internal/logger"
	"resume-fit-go/internal/parser"
	"resume-fit-go/internal/redact"
	"resume-fit-go/internal/rules"
	"resume-fit-go/internal/session"
	"resume-fit-go/internal/types"
)

// 路由层据此映射HTTP状态码
var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrInvalidFileType  = errors.New("invalid file type, only PDF and DOCX files are accepted")
	ErrResumeMissing    = errors.New("resume not yet uploaded for this session")
	ErrJDMissing        = errors.New("job description not yet analyzed for this session")
	ErrNoEvaluation     = errors.New("no evaluation results available for this session")
	ErrEmptyUpload      = errors.New("uploaded file is empty")
	ErrMissingJDText    = errors.New("job_description text is required")
	ErrPDFExportPending = errors.New("pdf export not yet implemented")
)

// AnalysisHandler 分析流程处理器，协调解析、评估与会话存取
type AnalysisHandler struct {
	cfg      *config.Config
	sessions *session.Manager
	engine   *rules.Engine
	pdf      *parser.PDFExtractor
}

// NewAnalysisHandler 创建分析处理器
func NewAnalysisHandler(
	cfg *config.Config,
	sessions *session.Manager,
	engine *rules.Engine,
	pdf *parser.PDFExtractor,
) *AnalysisHandler {
	return &AnalysisHandler{
		cfg:      cfg,
		sessions: sessions,
		engine:   engine,
		pdf:      pdf,
	}
}

// ResumeUploadResponse 简历上传响应
type ResumeUploadResponse struct {
	SessionID    string              `json:"session_id"`
	Filename     string              `json:"filename"`
	ParsedResume *types.ParsedResume `json:"parsed_resume"`
}

// JobDescriptionResponse JD解析响应
type JobDescriptionResponse struct {
	SessionID string                      `json:"session_id"`
	ParsedJD  *types.ParsedJobDescription `json:"parsed_jd"`
}

// EvaluationResponse 评估响应
type EvaluationResponse struct {
	SessionID   string                  `json:"session_id"`
	Result      *types.EvaluationResult `json:"result"`
	EvaluatedAt time.Time               `json:"evaluated_at"`
}

// ExportResponse JSON导出响应
type ExportResponse struct {
	SessionID         string                  `json:"session_id"`
	Evaluation        *types.EvaluationResult `json:"evaluation"`
	ResumeSkillsCount int                     `json:"resume_skills_count"`
	ExportedAt        time.Time               `json:"exported_at"`
}

// HandleResumeUpload 处理简历上传
// 仅接受PDF/DOCX，解析成功后创建新会话，顺带触发一次过期会话清理
func (h *AnalysisHandler) HandleResumeUpload(ctx context.Context, reader io.Reader, filename string) (*ResumeUploadResponse, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if ext != "pdf" && ext != "docx" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFileType, filename)
	}

	fileBytes, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("读取上传文件内容失败: %w", err)
	}
	if len(fileBytes) == 0 {
		return nil, ErrEmptyUpload
	}

	var rawText string
	var blocks []types.TextBlock
	switch ext {
	case "pdf":
		rawText, blocks, err = h.pdf.ExtractFromBytes(ctx, fileBytes, filename)
	case "docx":
		rawText, blocks, err = parser.ExtractDocx(fileBytes)
	}
	if err != nil {
		return nil, fmt.Errorf("提取简历文本失败: %w", err)
	}

	parsed := parser.ParseResume(rawText, blocks, h.cfg.Parsing.MaxRawTextLen)

	sessionID, err := session.NewSessionID()
	if err != nil {
		return nil, err
	}

	if err := h.sessions.Save(&types.SessionData{
		SessionID: sessionID,
		Resume:    parsed,
	}); err != nil {
		return nil, err
	}

	// 顺带清理过期会话，失败不影响本次请求
	if _, err := h.sessions.Cleanup(); err != nil {
		logger.Warn().Err(err).Msg("过期会话清理失败")
	}

	logger.Info().
		Str("session_id", sessionID).
		Str("filename", filename).
		Str("email", redact.MaskPII(parsed.ContactInfo.Email)).
		Int("skills", len(parsed.Skills)).
		Int("experience", len(parsed.Experience)).
		Msg("简历上传解析完成")

	return &ResumeUploadResponse{
		SessionID:    sessionID,
		Filename:     filename,
		ParsedResume: parsed,
	}, nil
}

// HandleAnalyzeJD 解析岗位描述
// sessionID为空或对应会话不存在时创建新会话
func (h *AnalysisHandler) HandleAnalyzeJD(ctx context.Context, sessionID, jdText string) (*JobDescriptionResponse, error) {
	if strings.TrimSpace(jdText) == "" {
		return nil, ErrMissingJDText
	}

	var sess *types.SessionData
	if sessionID != "" {
		existing, err := h.sessions.Get(sessionID)
		if err != nil {
			logger.Warn().Err(err).Str("session_id", sessionID).Msg("加载会话失败，将创建新会话")
		}
		sess = existing
	}

	parsed := parser.ParseJobDescription(jdText)

	if sess == nil {
		newID, err := session.NewSessionID()
		if err != nil {
			return nil, err
		}
		sess = &types.SessionData{SessionID: newID}
	}
	sess.JobDescription = parsed

	if err := h.sessions.Save(sess); err != nil {
		return nil, err
	}

	logger.Info().
		Str("session_id", sess.SessionID).
		Int("required_skills", len(parsed.RequiredSkills)).
		Int("optional_skills", len(parsed.OptionalSkills)).
		Msg("岗位描述解析完成")

	return &JobDescriptionResponse{
		SessionID: sess.SessionID,
		ParsedJD:  parsed,
	}, nil
}

// HandleEvaluate 对会话中的简历和JD执行规则评估
func (h *AnalysisHandler) HandleEvaluate(ctx context.Context, sessionID string) (*EvaluationResponse, error) {
	sess, err := h.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, ErrSessionNotFound
	}
	if sess.Resume == nil {
		return nil, ErrResumeMissing
	}
	if sess.JobDescription == nil {
		return nil, ErrJDMissing
	}

	result := h.engine.Evaluate(sess.Resume, sess.JobDescription)

	sess.Evaluation = result
	if err := h.sessions.Save(sess); err != nil {
		return nil, err
	}

	logger.Info().
		Str("session_id", sessionID).
		Int("job_fit_score", result.JobFitScore).
		Str("confidence", string(result.ConfidenceLevel)).
		Msg("评估完成")

	return &EvaluationResponse{
		SessionID:   sessionID,
		Result:      result,
		EvaluatedAt: sess.UpdatedAt,
	}, nil
}

// GetResults 获取已有的评估结果
func (h *AnalysisHandler) GetResults(sessionID string) (*EvaluationResponse, error) {
	sess, err := h.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, ErrSessionNotFound
	}
	if sess.Evaluation == nil {
		return nil, ErrNoEvaluation
	}

	return &EvaluationResponse{
		SessionID:   sessionID,
		Result:      sess.Evaluation,
		EvaluatedAt: sess.UpdatedAt,
	}, nil
}

// ExportJSON 导出评估结果的JSON快照
func (h *AnalysisHandler) ExportJSON(sessionID string) (*ExportResponse, error) {
	sess, err := h.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, ErrSessionNotFound
	}
	if sess.Evaluation == nil {
		return nil, ErrNoEvaluation
	}

	skillsCount := 0
	if sess.Resume != nil {
		skillsCount = len(sess.Resume.Skills)
	}

	return &ExportResponse{
		SessionID:         sessionID,
		Evaluation:        sess.Evaluation,
		ResumeSkillsCount: skillsCount,
		ExportedAt:        time.Now(),
	}, nil
}

// GetSession 获取完整会话数据
func (h *AnalysisHandler) GetSession(sessionID string) (*types.SessionData, error) {
	sess, err := h.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// DeleteSession 删除会话及其数据
func (h *AnalysisHandler) DeleteSession(sessionID string) error {
	sess, err := h.sessions.Get(sessionID)
	if err != nil {
		return err
	}
	if sess == nil {
		return ErrSessionNotFound
	}

	if _, err := h.sessions.Delete(sessionID); err != nil {
		return err
	}
	return nil
}

// UpdateResume 用人工修正后的简历数据覆盖会话中的解析结果
// 这是人工复核回路：解析出错时用户可以改完再评估
func (h *AnalysisHandler) UpdateResume(sessionID string, resume *types.ParsedResume) (*types.SessionData, error) {
	sess, err := h.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, ErrSessionNotFound
	}

	sess.Resume = resume
	if err := h.sessions.Save(sess); err != nil {
		return nil, err
	}
	return sess, nil
}
