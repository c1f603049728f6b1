package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"katydid-common-core/pkg/idgen/core"
	"katydid-common-core/pkg/idgen/domain"
)

// handleMint 铸造ID
//
//	@Summary		铸造ID
//	@Description	铸造一个或一批128位唯一标识符
//	@Tags			ids
//	@Accept			json
//	@Produce		json
//	@Param			request	body		MintRequest	false	"铸造参数"
//	@Success		200		{object}	MintResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		429		{object}	ErrorResponse	"同一毫秒内序列号耗尽"
//	@Failure		503		{object}	ErrorResponse	"检测到时钟回拨"
//	@Security		BearerAuth
//	@Router			/api/v1/ids [post]
func (s *Server) handleMint(c *gin.Context) {
	var req MintRequest
	// body可省略，省略时铸造1个
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error: err.Error(), Code: "invalid_request",
			})
			return
		}
	}
	if req.Count == 0 {
		req.Count = 1
	}

	// 批量或单个铸造
	ids, err := s.generator.NextIDBatch(req.Count)
	if err != nil {
		s.writeGenerateError(c, err)
		return
	}

	// 组装响应
	resp := MintResponse{IDs: make([]IDResponse, 0, len(ids))}
	for _, id := range ids {
		resp.IDs = append(resp.IDs, toIDResponse(id))
	}
	c.JSON(http.StatusOK, resp)
}

// handleInspect 解析ID
//
//	@Summary		解析ID
//	@Description	解析32字符十六进制表示的ID，返回各逻辑字段
//	@Tags			ids
//	@Produce		json
//	@Param			id	path		string	true	"ID（32字符十六进制）"
//	@Success		200	{object}	IDResponse
//	@Failure		400	{object}	ErrorResponse
//	@Router			/api/v1/ids/{id} [get]
func (s *Server) handleInspect(c *gin.Context) {
	id, err := domain.ParseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: err.Error(), Code: "invalid_request",
		})
		return
	}

	// 结构有效性验证（时间戳范围等）
	if err := s.generator.ValidateID(id); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: err.Error(), Code: "invalid_id",
		})
		return
	}

	c.JSON(http.StatusOK, toIDResponse(id))
}

// handleMetrics 生成器监控指标
//
//	@Summary		生成器监控指标
//	@Description	返回节点坐标和生成器的运行指标
//	@Tags			metrics
//	@Produce		json
//	@Success		200	{object}	MetricsResponse
//	@Router			/api/v1/metrics [get]
func (s *Server) handleMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, MetricsResponse{
		Node: NodeInfo{
			Version:      s.generator.GetVersion(),
			DatacenterID: s.generator.GetDatacenterID(),
			WorkerID:     s.generator.GetWorkerID(),
			ProcessID:    s.generator.GetProcessID(),
		},
		Metrics: s.generator.GetMetrics(),
	})
}

// handleHealthz 健康检查
//
//	@Summary	健康检查
//	@Tags		health
//	@Produce	json
//	@Success	200	{object}	map[string]string
//	@Router		/healthz [get]
func (s *Server) handleHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// writeGenerateError 将生成错误映射为HTTP响应
// 说明：
//   - 时钟回拨 → 503，携带回拨幅度，客户端可等待时钟追上后重试
//   - 序列号耗尽 → 429，携带溢出幅度
//
// 两种情况下生成器状态都未被修改，重试是安全的
func (s *Server) writeGenerateError(c *gin.Context, err error) {
	var regression *core.ClockRegressionError
	if errors.As(err, &regression) {
		s.logger.Warn("铸造失败：时钟回拨",
			zap.Uint64("backward_ms", regression.Backward))
		c.Header("Retry-After", strconv.FormatUint(regression.Backward/1000+1, 10))
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{
			Error:    err.Error(),
			Code:     "clock_regression",
			Backward: regression.Backward,
		})
		return
	}

	var exhausted *core.SequenceExhaustedError
	if errors.As(err, &exhausted) {
		s.logger.Warn("铸造失败：序列号耗尽",
			zap.Uint64("overflow", exhausted.Overflow))
		c.JSON(http.StatusTooManyRequests, ErrorResponse{
			Error:    err.Error(),
			Code:     "sequence_exhausted",
			Overflow: exhausted.Overflow,
		})
		return
	}

	if errors.Is(err, core.ErrInvalidBatchSize) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: err.Error(), Code: "invalid_request",
		})
		return
	}

	s.logger.Error("铸造失败", zap.Error(err))
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error: err.Error(), Code: "internal",
	})
}

// toIDResponse 将ID转换为响应结构
func toIDResponse(id core.ID128) IDResponse {
	return IDResponse{
		ID:           id.String(),
		Word0:        strconv.FormatUint(id.Word0(), 10),
		Word1:        strconv.FormatUint(id.Word1(), 10),
		Timestamp:    id.TimestampMs(),
		Version:      id.Version(),
		DatacenterID: id.DatacenterID(),
		WorkerID:     id.WorkerID(),
		ProcessID:    id.ProcessID(),
		Sequence:     id.Sequence(),
	}
}
