package handler

import (
	"math"
	"math/rand"
	"net/http"
	"runtime/debug"
	"sync"
	"time"

	"lm-go/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// probabilityRequest asks for the probability of one word position or of a
// whole sentence.
type probabilityRequest struct {
	Model    string   `json:"model" binding:"required"`
	Sentence []string `json:"sentence" binding:"required"`
	Index    *int     `json:"index,omitempty"`
}

// generateRequest asks a model to sample a sentence.
type generateRequest struct {
	Model    string `json:"model" binding:"required"`
	MaxWords int    `json:"max_words"`
}

// SetupRouter builds the HTTP query surface over a trained corpus manager.
func SetupRouter(cm *service.CorpusManager, maxGeneratedWords int, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(CustomRecoveryMiddleware(logger))
	router.Use(LoggerMiddleware(logger))

	// rand.Rand is not safe for concurrent use; serialize generation requests.
	var rngMu sync.Mutex
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status": "healthy",
			})
		})

		v1.GET("/models", func(c *gin.Context) {
			c.JSON(200, gin.H{"models": cm.ModelNames()})
		})

		v1.GET("/stats", func(c *gin.Context) {
			c.JSON(200, cm.Stats())
		})

		v1.POST("/wordProbability", func(c *gin.Context) {
			var req probabilityRequest
			if !bindProbability(c, &req, true) {
				return
			}
			model, ok := cm.Model(req.Model)
			if !ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "unknown model: " + req.Model})
				return
			}
			p, err := model.WordProbability(req.Sentence, *req.Index)
			if err != nil {
				c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
				return
			}
			c.JSON(200, gin.H{"probability": p, "log2_probability": math.Log2(p)})
		})

		v1.POST("/sentenceProbability", func(c *gin.Context) {
			var req probabilityRequest
			if !bindProbability(c, &req, false) {
				return
			}
			model, ok := cm.Model(req.Model)
			if !ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "unknown model: " + req.Model})
				return
			}
			p, err := model.SentenceProbability(req.Sentence)
			if err != nil {
				c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
				return
			}
			c.JSON(200, gin.H{"probability": p, "log2_probability": math.Log2(p)})
		})

		v1.POST("/generate", func(c *gin.Context) {
			var req generateRequest
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			model, ok := cm.Model(req.Model)
			if !ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "unknown model: " + req.Model})
				return
			}
			generator, ok := model.(service.SentenceGenerator)
			if !ok {
				c.JSON(http.StatusBadRequest, gin.H{"error": "model does not support generation: " + req.Model})
				return
			}
			maxWords := req.MaxWords
			if maxWords <= 0 || maxWords > maxGeneratedWords {
				maxWords = maxGeneratedWords
			}
			rngMu.Lock()
			sentence, err := generator.GenerateSentence(rng, maxWords)
			rngMu.Unlock()
			if err != nil {
				c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
				return
			}
			c.JSON(200, gin.H{"sentence": sentence})
		})

		v1.GET("/check/:model", func(c *gin.Context) {
			model, ok := cm.Model(c.Param("model"))
			if !ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "unknown model: " + c.Param("model")})
				return
			}
			sum, err := model.CheckModel()
			if err != nil {
				c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
				return
			}
			c.JSON(200, gin.H{"mass": sum})
		})
	}

	return router
}

// bindProbability parses a probability request, enforcing the index field
// and its bounds for word-level queries.
func bindProbability(c *gin.Context, req *probabilityRequest, needIndex bool) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	if needIndex {
		if req.Index == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "index is required"})
			return false
		}
		if *req.Index < 0 || *req.Index >= len(req.Sentence) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "index out of range"})
			return false
		}
	}
	return true
}

func LoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger.Info("HTTP Request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("client_ip", c.ClientIP()),
		)
		c.Next()
	}
}

func CustomRecoveryMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("Panic recovered",
					zap.Any("error", err),
					zap.String("stack", string(debug.Stack())),
					zap.String("path", c.Request.URL.Path),
					zap.String("method", c.Request.Method),
				)
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}
