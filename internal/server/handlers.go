package server

import (
	"errors"
	"net/http"

	"github.com/alkime/slideswitch/internal/owner"
	"github.com/alkime/slideswitch/pkg/collections"
	"github.com/alkime/slideswitch/pkg/slideswitch"
	"github.com/gin-gonic/gin"
)

type rangeResponse struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

type switchResponse struct {
	Open      bool          `json:"open"`
	Phase     string        `json:"phase"`
	Shape     string        `json:"shape"`
	Slideable bool          `json:"slideable"`
	ThumbLeft int           `json:"thumbLeft"`
	Alpha     int           `json:"alpha"`
	Range     rangeResponse `json:"range"`
	Width     int           `json:"width"`
	Height    int           `json:"height"`
	Redraws   int64         `json:"redraws"`
}

type drawOpResponse struct {
	Kind   string `json:"kind"`
	Left   int    `json:"left"`
	Top    int    `json:"top"`
	Right  int    `json:"right"`
	Bottom int    `json:"bottom"`
	Radius int    `json:"radius,omitempty"`
	Color  string `json:"color"`
	Alpha  int    `json:"alpha"`
}

type stateRequest struct {
	Open *bool `json:"open" binding:"required"`
}

type pointerRequest struct {
	Action string `json:"action" binding:"required,oneof=down move up"`
	X      int    `json:"x"`
}

type layoutRequest struct {
	Width  int `json:"width" binding:"required,min=1"`
	Height int `json:"height" binding:"required,min=1"`
}

type shapeRequest struct {
	Shape string `json:"shape" binding:"required"`
}

type slideableRequest struct {
	Slideable *bool `json:"slideable" binding:"required"`
}

func toDrawOpResponse(op slideswitch.DrawOp) drawOpResponse {
	return drawOpResponse{
		Kind:   op.Kind.String(),
		Left:   op.Bounds.Min.X,
		Top:    op.Bounds.Min.Y,
		Right:  op.Bounds.Max.X,
		Bottom: op.Bounds.Max.Y,
		Radius: op.Radius,
		Color:  op.Color.Hex(),
		Alpha:  op.Alpha,
	}
}

func (s *Server) handleGetSwitch(c *gin.Context) {
	s.respondSnapshot(c)
}

func (s *Server) handleGetFrame(c *gin.Context) {
	snap, err := s.loop.Snapshot(c.Request.Context())
	if err != nil {
		s.loopError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ops": collections.Apply(snap.Ops, toDrawOpResponse),
	})
}

func (s *Server) handleSetState(c *gin.Context) {
	var req stateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.do(c, func(sw *slideswitch.Switch) { sw.SetState(*req.Open) })
}

func (s *Server) handlePointer(c *gin.Context) {
	var req pointerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var handled bool
	err := s.loop.Do(c.Request.Context(), func(sw *slideswitch.Switch) {
		switch req.Action {
		case "down":
			handled = sw.PointerDown(req.X)
		case "move":
			handled = sw.PointerMove(req.X)
		case "up":
			handled = sw.PointerUp(req.X)
		}
	})
	if err != nil {
		s.loopError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"handled": handled})
}

func (s *Server) handleLayout(c *gin.Context) {
	var req layoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.do(c, func(sw *slideswitch.Switch) {
		sw.Layout(slideswitch.Dimensions{Width: req.Width, Height: req.Height})
	})
}

func (s *Server) handleShape(c *gin.Context) {
	var req shapeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	shape, err := slideswitch.ParseShape(req.Shape)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.do(c, func(sw *slideswitch.Switch) { sw.SetShape(shape) })
}

func (s *Server) handleSlideable(c *gin.Context) {
	var req slideableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.do(c, func(sw *slideswitch.Switch) { sw.SetSlideable(*req.Slideable) })
}

// do runs fn on the owner loop and responds with the resulting state.
func (s *Server) do(c *gin.Context, fn func(sw *slideswitch.Switch)) {
	if err := s.loop.Do(c.Request.Context(), fn); err != nil {
		s.loopError(c, err)
		return
	}

	s.respondSnapshot(c)
}

func (s *Server) respondSnapshot(c *gin.Context) {
	snap, err := s.loop.Snapshot(c.Request.Context())
	if err != nil {
		s.loopError(c, err)
		return
	}

	c.JSON(http.StatusOK, switchResponse{
		Open:      snap.Open,
		Phase:     snap.Phase.String(),
		Shape:     snap.Shape.String(),
		Slideable: snap.Slideable,
		ThumbLeft: snap.ThumbLeft,
		Alpha:     snap.Alpha,
		Range:     rangeResponse{Min: snap.Range.Min, Max: snap.Range.Max},
		Width:     snap.Size.Width,
		Height:    snap.Size.Height,
		Redraws:   s.loop.Redraws(),
	})
}

func (s *Server) loopError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, owner.ErrStopped) {
		status = http.StatusServiceUnavailable
	}

	s.logger.Error("Switch request failed", "path", c.Request.URL.Path, "error", err)
	c.JSON(status, gin.H{"error": err.Error()})
}
