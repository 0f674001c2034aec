package controllers

import (
	"errors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/matttrann/NDIS-Web-Application-sub000/application/ports/inbound"
	"github.com/matttrann/NDIS-Web-Application-sub000/application/ports/outbound"
	"github.com/matttrann/NDIS-Web-Application-sub000/domain"
	"github.com/matttrann/NDIS-Web-Application-sub000/infrastructure/gin_interface/dto"
	"net/http"
	"time"
)

type VideoRequestsController interface {
	RegisterRoutes(g *gin.Engine)
}

type videoRequestsController struct {
	logger       outbound.LoggerPort
	store        outbound.VideoRequestStorePort
	media        outbound.MediaStorePort
	orchestrator inbound.PipelineOrchestrator
	signedURLTTL time.Duration
}

func NewVideoRequestsController(
	logger outbound.LoggerPort,
	store outbound.VideoRequestStorePort,
	media outbound.MediaStorePort,
	orchestrator inbound.PipelineOrchestrator,
	signedURLTTL time.Duration,
) VideoRequestsController {
	return &videoRequestsController{
		logger:       logger,
		store:        store,
		media:        media,
		orchestrator: orchestrator,
		signedURLTTL: signedURLTTL,
	}
}

func (v *videoRequestsController) RegisterRoutes(g *gin.Engine) {
	g.POST("/requests", v.CreateRequest)
	g.POST("/requests/:id/start", v.StartRequest)
	g.GET("/requests/:id", v.GetRequest)
	g.POST("/requests/:id/script-review", v.ReviewScript)
	g.GET("/requests/:id/artifacts", v.GetArtifactURL)
}

func (v *videoRequestsController) CreateRequest(c *gin.Context) {
	var createReq dto.CreateVideoRequest
	if err := c.ShouldBindJSON(&createReq); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	characterID := domain.CharacterID(createReq.CharacterID)
	if _, err := domain.ProfileFor(characterID); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req := domain.NewVideoRequest(uuid.NewString(), createReq.OwnerID, createReq.QuestionnaireRef, characterID)
	if err := v.store.Create(c.Request.Context(), &req); err != nil {
		v.logger.Error(err, "failed to create video request")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to create request"})
		return
	}

	c.JSON(http.StatusCreated, dto.CreateVideoResponse{
		ID:     req.ID,
		Status: string(req.Status),
	})
}

func (v *videoRequestsController) StartRequest(c *gin.Context) {
	err := v.orchestrator.Start(c.Request.Context(), c.Param("id"))
	if err != nil {
		v.abortWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"scheduled": true})
}

func (v *videoRequestsController) GetRequest(c *gin.Context) {
	req, err := v.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		v.abortWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.VideoRequestResponse{
		ID:               req.ID,
		Status:           string(req.Status),
		Script:           req.Script,
		CaptionsText:     req.CaptionsText,
		ComposedVideoKey: req.ComposedVideoKey,
		ComposeState:     string(req.ComposeState),
		FrameCount:       len(req.FrameArtifactKeys),
		UpdatedAt:        req.UpdatedAt,
	})
}

func (v *videoRequestsController) ReviewScript(c *gin.Context) {
	var reviewReq dto.ScriptReviewRequest
	if err := c.ShouldBindJSON(&reviewReq); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var err error
	if reviewReq.Action == "approve" {
		err = v.orchestrator.ApproveScript(c.Request.Context(), c.Param("id"), reviewReq.Script)
	} else {
		err = v.orchestrator.RejectScript(c.Request.Context(), c.Param("id"))
	}
	if err != nil {
		v.abortWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"action": reviewReq.Action})
}

// GetArtifactURL hands out a time-limited signed URL for one artifact. The
// key must sit under the request's own namespace; ownership and visibility
// checks are the collaborating application's concern.
func (v *videoRequestsController) GetArtifactURL(c *gin.Context) {
	req, err := v.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		v.abortWithDomainError(c, err)
		return
	}

	key := c.Query("key")
	if !req.OwnsArtifact(key) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "artifact key outside request namespace"})
		return
	}

	url, err := v.media.SignedURL(key, v.signedURLTTL)
	if err != nil {
		v.logger.Error(err, "failed to sign artifact URL")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to sign artifact URL"})
		return
	}

	c.JSON(http.StatusOK, dto.ArtifactURLResponse{URL: url})
}

func (v *videoRequestsController) abortWithDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "request not found"})
	case errors.Is(err, domain.ErrInvalidState):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "request status does not permit this action"})
	default:
		v.logger.Error(err, "request handling failed")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
