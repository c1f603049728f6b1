package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	// accessTokenTTL JWT访问令牌有效期
	accessTokenTTL = time.Hour

	// tokenIssuer JWT签发者标识
	tokenIssuer = "katydid-idgend"
)

// authRequired JWT鉴权中间件
// 说明：校验Authorization: Bearer <jwt>；未配置密钥时放行（仅限开发环境）
func (s *Server) authRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 未配置密钥：鉴权关闭
		if s.jwtSecret == "" {
			c.Next()
			return
		}

		// 提取Bearer令牌
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Error: "missing bearer token", Code: "unauthorized",
			})
			return
		}
		tokenStr := strings.TrimPrefix(header, "Bearer ")

		// 解析并校验JWT
		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(s.jwtSecret), nil
		}, jwt.WithIssuer(tokenIssuer), jwt.WithExpirationRequired())

		if err != nil || !token.Valid {
			s.logger.Debug("JWT校验失败", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Error: "invalid or expired token", Code: "unauthorized",
			})
			return
		}

		c.Next()
	}
}

// handleToken 用管理令牌换取JWT访问令牌
//
//	@Summary		换取访问令牌
//	@Description	用管理令牌明文换取短期JWT访问令牌
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		TokenRequest	true	"管理令牌"
//	@Success		200		{object}	TokenResponse
//	@Failure		401		{object}	ErrorResponse
//	@Router			/api/v1/auth/token [post]
func (s *Server) handleToken(c *gin.Context) {
	// 未配置管理令牌或JWT密钥：接口关闭
	if s.adminTokenHash == "" || s.jwtSecret == "" {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error: "token exchange disabled", Code: "disabled",
		})
		return
	}

	var req TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: err.Error(), Code: "invalid_request",
		})
		return
	}

	// bcrypt比对管理令牌
	if err := bcrypt.CompareHashAndPassword([]byte(s.adminTokenHash), []byte(req.Token)); err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error: "invalid admin token", Code: "unauthorized",
		})
		return
	}

	// 签发JWT
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(accessTokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		s.logger.Error("JWT签发失败", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "failed to sign token", Code: "internal",
		})
		return
	}

	c.JSON(http.StatusOK, TokenResponse{
		AccessToken: signed,
		ExpiresIn:   int64(accessTokenTTL.Seconds()),
	})
}
