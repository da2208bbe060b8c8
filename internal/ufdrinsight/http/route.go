package http

import (
	stderrors "errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ufdrinsight/ufdrinsight/internal/aggregate"
	"github.com/ufdrinsight/ufdrinsight/internal/errors"
	"github.com/ufdrinsight/ufdrinsight/internal/indexer"
	"github.com/ufdrinsight/ufdrinsight/internal/risk"
	"github.com/ufdrinsight/ufdrinsight/internal/ufdr"
	"github.com/ufdrinsight/ufdrinsight/internal/ufdrinsight/database"
	"github.com/ufdrinsight/ufdrinsight/pkg/util"
)

func (s *Service) initRouter() {
	s.router.GET("/health", func(ctx *gin.Context) { ctx.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	api := s.router.Group("/api/v1")
	{
		api.POST("/analyze", s.handleAnalyze)
		api.GET("/analysis", s.handleListAnalyses)
		api.GET("/analysis/:id", s.handleGetAnalysis)
		api.DELETE("/analysis/:id", s.handleDeleteAnalysis)
		api.GET("/analysis/:id/search", s.handleSearch)
	}
}

func (s *Service) handleAnalyze(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		errors.Err(c, errors.InvalidArg("file"))
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		errors.Err(c, errors.Internal(err))
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		errors.Err(c, errors.Internal(err))
		return
	}

	result, err := ufdr.Parse(data)
	if err != nil {
		if stderrors.Is(err, errors.ErrNoMessages) {
			// Distinct from a valid report with naturally low activity:
			// the archive opened but nothing parseable was recovered.
			c.JSON(errors.HTTPStatus(err), gin.H{
				"error":  errors.Message(err),
				"errors": result.Errors,
			})
			return
		}
		errors.Err(c, err)
		return
	}

	metrics := aggregate.Aggregate(result.Messages, result.Calls, result.Metadata)
	risks := risk.Detect(metrics)

	analysis := &database.Analysis{
		ID:           uuid.NewString(),
		FileName:     fileHeader.Filename,
		Description:  c.PostForm("description"),
		AnalyzedAt:   time.Now(),
		MessageCount: len(result.Messages),
		CallCount:    len(result.Calls),
		Metrics:      metrics,
		Risks:        risks,
		Errors:       result.Errors,
	}
	if err := s.db.SaveAnalysis(analysis); err != nil {
		errors.Err(c, errors.Internal(err))
		return
	}

	idx, err := s.getIndex(analysis.ID)
	if err != nil {
		errors.Err(c, errors.Internal(err))
		return
	}
	if err := idx.IndexMessages(result.Messages); err != nil {
		errors.Err(c, errors.Internal(err))
		return
	}

	log.Info().Str("analysis", analysis.ID).Str("file", analysis.FileName).
		Int("messages", analysis.MessageCount).Int("calls", analysis.CallCount).
		Int("dropped", result.DroppedRecords).Msg("analysis complete")

	c.JSON(http.StatusOK, gin.H{
		"id":              analysis.ID,
		"file_name":       analysis.FileName,
		"analyzed_at":     analysis.AnalyzedAt,
		"metrics":         metrics,
		"risks":           risks,
		"errors":          result.Errors,
		"dropped_records": result.DroppedRecords,
	})
}

func (s *Service) handleListAnalyses(c *gin.Context) {
	summaries, err := s.db.ListAnalyses()
	if err != nil {
		errors.Err(c, errors.Internal(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": summaries, "total": len(summaries)})
}

func (s *Service) handleGetAnalysis(c *gin.Context) {
	analysis, err := s.db.GetAnalysis(c.Param("id"))
	if err != nil {
		errors.Err(c, err)
		return
	}
	c.JSON(http.StatusOK, analysis)
}

func (s *Service) handleDeleteAnalysis(c *gin.Context) {
	id := c.Param("id")
	if err := s.db.DeleteAnalysis(id); err != nil {
		errors.Err(c, err)
		return
	}
	s.dropIndex(id)
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (s *Service) handleSearch(c *gin.Context) {
	id := c.Param("id")
	// Ensure the analysis exists before touching its index.
	if _, err := s.db.GetAnalysis(id); err != nil {
		errors.Err(c, err)
		return
	}

	q := indexer.Query{
		Text:       c.Query("q"),
		Contacts:   util.Str2List(c.Query("contact"), ","),
		Directions: util.Str2List(c.Query("direction"), ","),
		Offset:     util.MustAnyToInt(c.DefaultQuery("offset", "0")),
		Limit:      util.MustAnyToInt(c.DefaultQuery("limit", "20")),
	}
	if v := c.Query("start"); v != "" {
		q.StartUnix = parseTimeParam(v)
	}
	if v := c.Query("end"); v != "" {
		q.EndUnix = parseTimeParam(v)
	}

	idx, err := s.getIndex(id)
	if err != nil {
		errors.Err(c, errors.Internal(err))
		return
	}

	started := time.Now()
	hits, total, err := idx.Search(q)
	if err != nil {
		errors.Err(c, errors.Internal(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"total":       total,
		"hits":        hits,
		"query":       q.Text,
		"limit":       q.Limit,
		"offset":      q.Offset,
		"duration_ms": time.Since(started).Milliseconds(),
	})
}

// parseTimeParam accepts RFC3339 timestamps or raw Unix seconds.
func parseTimeParam(v string) int64 {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t.Unix()
	}
	if sec, err := strconv.ParseInt(v, 10, 64); err == nil {
		return sec
	}
	return 0
}
