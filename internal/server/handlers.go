package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nibzard/choretracker-go/internal/dummy"
	"github.com/nibzard/choretracker-go/internal/utils"
)

func (s *Server) handleList(c *gin.Context) {
	c.JSON(http.StatusOK, dummy.Envelope{Data: s.db.GetAll()})
}

func (s *Server) handleCreate(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, dummy.ErrorBody{Error: err.Error()})
		return
	}
	in, err := dummy.DecodeInput(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, dummy.ErrorBody{Error: err.Error()})
		return
	}

	created, err := s.db.Create(in)
	if err != nil {
		c.JSON(dummy.StatusOf(err), dummy.ErrorBody{Error: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, dummy.Envelope{Data: created})
}

func (s *Server) handleGet(c *gin.Context) {
	id, ok := s.taskID(c)
	if !ok {
		return
	}
	t, err := s.db.Get(id)
	if err != nil {
		c.JSON(dummy.StatusOf(err), dummy.ErrorBody{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, dummy.Envelope{Data: t})
}

func (s *Server) handleUpdate(c *gin.Context) {
	id, ok := s.taskID(c)
	if !ok {
		return
	}
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, dummy.ErrorBody{Error: err.Error()})
		return
	}
	in, err := dummy.DecodeInput(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, dummy.ErrorBody{Error: err.Error()})
		return
	}

	updated, err := s.db.Update(id, in)
	if err != nil {
		c.JSON(dummy.StatusOf(err), dummy.ErrorBody{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, dummy.Envelope{Data: updated})
}

func (s *Server) handleDelete(c *gin.Context) {
	id, ok := s.taskID(c)
	if !ok {
		return
	}
	if err := s.db.Delete(id); err != nil {
		c.JSON(dummy.StatusOf(err), dummy.ErrorBody{Error: err.Error()})
		return
	}
	c.Status(http.StatusOK)
}

// taskID parses the :id parameter. Non-integer ids are answered with 404.
func (s *Server) taskID(c *gin.Context) (int64, bool) {
	raw := c.Param("id")
	if !utils.IsIntID(raw) {
		c.JSON(http.StatusNotFound, dummy.ErrorBody{Error: fmt.Sprintf("unknown task id %s", raw)})
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, dummy.ErrorBody{Error: fmt.Sprintf("unknown task id %s", raw)})
		return 0, false
	}
	return id, true
}
