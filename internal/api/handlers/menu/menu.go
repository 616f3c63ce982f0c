// Package menu 菜單評分與單一菜品分析的 HTTP 處理器
package menu

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"menu-scorer/internal/core/scoring"
	"menu-scorer/internal/infrastructure/config"
	"menu-scorer/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Allergens 過敏原清單，可接受逗號分隔字串或字串陣列
type Allergens []string

// UnmarshalJSON 解析字串或陣列兩種格式
func (a *Allergens) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*a = list
		return nil
	}
	var csv string
	if err := json.Unmarshal(data, &csv); err != nil {
		return common.NewValidationError("allergens must be a string or a list of strings")
	}
	*a = common.SplitCSV(csv)
	return nil
}

// ProfileInput 請求中的使用者偏好，所有欄位皆可省略
type ProfileInput struct {
	DietaryRestriction string    `json:"dietary_restriction"`
	Goal               string    `json:"goal"`
	Allergens          Allergens `json:"allergens"`
	StrictFilter       *bool     `json:"strict_filter"`
}

// Profile 轉成評分使用的偏好，未提供時使用預設值
func (in *ProfileInput) Profile() common.UserProfile {
	p := common.DefaultUserProfile()
	if in == nil {
		return p
	}
	p.DietaryRestriction = in.DietaryRestriction
	p.Goal = in.Goal
	if in.Allergens != nil {
		p.Allergens = []string(in.Allergens)
	}
	if in.StrictFilter != nil {
		p.StrictFilter = *in.StrictFilter
	}
	return p
}

// ScoreRequest 菜單評分請求
type ScoreRequest struct {
	MenuData    []common.Dish `json:"menu_data" binding:"required"`
	UserProfile *ProfileInput `json:"user_profile"`
	Mode        string        `json:"mode"` // consumer 或 restaurant，預設 consumer
	TopN        *int          `json:"top_n"`
}

// ScoreResponse 菜單評分響應
type ScoreResponse struct {
	Success bool                       `json:"success"`
	Mode    string                     `json:"mode"`
	Results *common.MenuAnalysisResult `json:"results"`
}

// AnalyzeRequest 單一菜品分析請求
type AnalyzeRequest struct {
	Dish        common.Dish   `json:"dish"`
	UserProfile *ProfileInput `json:"user_profile"`
}

// AnalyzeResponse 單一菜品分析響應
type AnalyzeResponse struct {
	Success  bool                  `json:"success"`
	Analysis scoring.DishAnalysis `json:"analysis"`
}

// Handler 菜單處理器
type Handler struct {
	scorer      *scoring.Scorer
	defaultTopN int
	debug       bool
}

// NewHandler 創建處理器
func NewHandler(scorer *scoring.Scorer, cfg *config.Config) *Handler {
	h := &Handler{
		scorer:      scorer,
		defaultTopN: 10,
	}
	if cfg != nil {
		if cfg.Scoring.DefaultTopN > 0 {
			h.defaultTopN = cfg.Scoring.DefaultTopN
		}
		h.debug = cfg.App.Debug
	}
	return h
}

// Score 依 mode 評分菜單
func (h *Handler) Score(c *gin.Context) {
	var req ScoreRequest
	if !h.bind(c, &req) {
		return
	}
	h.score(c, &req, req.Mode)
}

// ScoreConsumer 消費者模式評分，忽略請求中的 mode
func (h *Handler) ScoreConsumer(c *gin.Context) {
	var req ScoreRequest
	if !h.bind(c, &req) {
		return
	}
	h.score(c, &req, scoring.ModeConsumer)
}

// ScoreRestaurant 餐廳模式評分，忽略請求中的 mode 與偏好
func (h *Handler) ScoreRestaurant(c *gin.Context) {
	var req ScoreRequest
	if !h.bind(c, &req) {
		return
	}
	h.score(c, &req, scoring.ModeRestaurant)
}

// AnalyzeDish 分析單一菜品
func (h *Handler) AnalyzeDish(c *gin.Context) {
	var req AnalyzeRequest
	if !h.bind(c, &req) {
		return
	}
	if strings.TrimSpace(req.Dish.Name) == "" && strings.TrimSpace(req.Dish.Description) == "" {
		h.fail(c, common.NewValidationError("dish name or description is required"))
		return
	}

	analysis := h.scorer.AnalyzeDish(c.Request.Context(), req.Dish, req.UserProfile.Profile())

	common.LogInfo("Dish analyzed",
		zap.String("request_id", common.RequestID(c)),
		zap.String("dish", analysis.Dish.Name),
		zap.Float64("s_planet", analysis.SPlanet),
	)

	c.JSON(http.StatusOK, AnalyzeResponse{Success: true, Analysis: analysis})
}

func (h *Handler) score(c *gin.Context, req *ScoreRequest, mode string) {
	mode = strings.ToLower(strings.TrimSpace(mode))
	if mode == "" {
		mode = scoring.ModeConsumer
	}

	topN := h.defaultTopN
	if req.TopN != nil {
		topN = *req.TopN
	}

	requestID := common.RequestID(c)
	common.LogInfo("收到菜單評分請求",
		zap.String("request_id", requestID),
		zap.String("mode", mode),
		zap.Int("dishes", len(req.MenuData)),
		zap.Int("top_n", topN),
	)

	ctx := c.Request.Context()
	var (
		result *common.MenuAnalysisResult
		err    error
	)
	switch mode {
	case scoring.ModeConsumer:
		result, err = h.scorer.ScoreForConsumer(ctx, req.MenuData, req.UserProfile.Profile(), topN)
	case scoring.ModeRestaurant:
		result, err = h.scorer.ScoreForRestaurant(ctx, req.MenuData, topN)
	default:
		h.fail(c, common.ErrInvalidMode)
		return
	}
	if err != nil {
		common.LogError("Menu scoring failed",
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		if errors.Is(err, context.DeadlineExceeded) {
			h.fail(c, common.ErrGatewayTimeout.Wrap(err))
			return
		}
		h.fail(c, common.ErrInternalError.Wrap(err))
		return
	}

	c.JSON(http.StatusOK, ScoreResponse{
		Success: true,
		Mode:    mode,
		Results: result,
	})
}

// bind 解析 JSON 請求體，失敗時寫入錯誤響應
func (h *Handler) bind(c *gin.Context, v interface{}) bool {
	err := c.ShouldBindJSON(v)
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		h.fail(c, common.ErrBodyTooLarge.Wrap(err))
		return false
	}

	common.LogWarn("Invalid request body",
		zap.String("request_id", common.RequestID(c)),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)
	h.fail(c, common.ErrInvalidRequest.Wrap(err))
	return false
}

func (h *Handler) fail(c *gin.Context, err error) {
	common.WriteError(c, err, h.debug)
}
