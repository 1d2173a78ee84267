package router

import (
	"context"
	"errors"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"resume-fit-go/internal/api/handler"
	"resume-fit-go/internal/session"
	"resume-fit-go/internal/types"
)

// JobDescriptionRequest JD解析请求体
type JobDescriptionRequest struct {
	SessionID      string `json:"session_id"`
	JobDescription string `json:"job_description"`
}

// EvaluationRequest 评估请求体
type EvaluationRequest struct {
	SessionID string `json:"session_id"`
}

// RegisterRoutes 注册 API 路由
func RegisterRoutes(h *server.Hertz, analysis *handler.AnalysisHandler) {
	api := h.Group("/api/v1")

	api.POST("/upload-resume", func(c context.Context, ctx *app.RequestContext) {
		fileHeader, err := ctx.FormFile("file")
		if err != nil {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "文件未找到"})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": "打开文件失败"})
			return
		}
		defer file.Close()

		resp, err := analysis.HandleResumeUpload(c, file, fileHeader.Filename)
		if err != nil {
			writeError(ctx, err)
			return
		}
		ctx.JSON(consts.StatusOK, resp)
	})

	api.POST("/analyze-jd", func(c context.Context, ctx *app.RequestContext) {
		var req JobDescriptionRequest
		if err := ctx.BindJSON(&req); err != nil {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "请求体解析失败"})
			return
		}

		resp, err := analysis.HandleAnalyzeJD(c, req.SessionID, req.JobDescription)
		if err != nil {
			writeError(ctx, err)
			return
		}
		ctx.JSON(consts.StatusOK, resp)
	})

	api.POST("/evaluate", func(c context.Context, ctx *app.RequestContext) {
		var req EvaluationRequest
		if err := ctx.BindJSON(&req); err != nil {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "请求体解析失败"})
			return
		}

		resp, err := analysis.HandleEvaluate(c, req.SessionID)
		if err != nil {
			writeError(ctx, err)
			return
		}
		ctx.JSON(consts.StatusOK, resp)
	})

	api.GET("/results/:session_id", func(c context.Context, ctx *app.RequestContext) {
		resp, err := analysis.GetResults(ctx.Param("session_id"))
		if err != nil {
			writeError(ctx, err)
			return
		}
		ctx.JSON(consts.StatusOK, resp)
	})

	api.GET("/export/:session_id", func(c context.Context, ctx *app.RequestContext) {
		if format := ctx.Query("format"); format == "pdf" {
			writeError(ctx, handler.ErrPDFExportPending)
			return
		}

		resp, err := analysis.ExportJSON(ctx.Param("session_id"))
		if err != nil {
			writeError(ctx, err)
			return
		}
		ctx.JSON(consts.StatusOK, resp)
	})

	api.GET("/session/:session_id", func(c context.Context, ctx *app.RequestContext) {
		sess, err := analysis.GetSession(ctx.Param("session_id"))
		if err != nil {
			writeError(ctx, err)
			return
		}
		ctx.JSON(consts.StatusOK, sess)
	})

	api.DELETE("/session/:session_id", func(c context.Context, ctx *app.RequestContext) {
		if err := analysis.DeleteSession(ctx.Param("session_id")); err != nil {
			writeError(ctx, err)
			return
		}
		ctx.JSON(consts.StatusOK, utils.H{"message": "Session deleted successfully"})
	})

	// 人工复核回路：用户修正解析结果后再评估
	api.PUT("/session/:session_id/resume", func(c context.Context, ctx *app.RequestContext) {
		var resume types.ParsedResume
		if err := ctx.BindJSON(&resume); err != nil {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "请求体解析失败"})
			return
		}

		sess, err := analysis.UpdateResume(ctx.Param("session_id"), &resume)
		if err != nil {
			writeError(ctx, err)
			return
		}
		ctx.JSON(consts.StatusOK, sess)
	})

	api.GET("/health", func(c context.Context, ctx *app.RequestContext) {
		ctx.JSON(consts.StatusOK, utils.H{"status": "ok"})
	})
}

// writeError 把处理器错误映射为HTTP状态码
func writeError(ctx *app.RequestContext, err error) {
	status := consts.StatusInternalServerError
	switch {
	case errors.Is(err, handler.ErrSessionNotFound),
		errors.Is(err, handler.ErrNoEvaluation):
		status = consts.StatusNotFound
	case errors.Is(err, handler.ErrInvalidFileType),
		errors.Is(err, handler.ErrResumeMissing),
		errors.Is(err, handler.ErrJDMissing),
		errors.Is(err, handler.ErrEmptyUpload),
		errors.Is(err, handler.ErrMissingJDText),
		errors.Is(err, session.ErrInvalidID):
		status = consts.StatusBadRequest
	case errors.Is(err, handler.ErrPDFExportPending):
		status = consts.StatusNotImplemented
	}
	ctx.JSON(status, utils.H{"error": err.Error()})
}
