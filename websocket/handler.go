package websocket

import (
	"time"

	"linkabet-backend/config"
	"linkabet-backend/imports/repositories"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// WsHandler upgrades connections that want live progress for one import job.
type WsHandler struct {
	hub     *Hub
	jobRepo repositories.ImportJobRepository
}

func NewWsHandler(hub *Hub, jobRepo repositories.ImportJobRepository) *WsHandler {
	return &WsHandler{hub: hub, jobRepo: jobRepo}
}

// HandleJobProgress subscribes the caller to progress updates for a job. The
// current job state is sent immediately so late subscribers are not left
// waiting for the next transition.
func (h *WsHandler) HandleJobProgress(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	jobID := c.Params("job_id")
	if _, err := uuid.Parse(jobID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid job id format",
			"data":    nil,
		})
	}

	job, err := h.jobRepo.GetJobByID(jobID)
	if err != nil {
		config.Logger.Error("Failed to load job for websocket subscription",
			zap.String("job_id", jobID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to load import job",
			"data":    nil,
		})
	}
	if job == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Import job not found",
			"data":    nil,
		})
	}

	snapshot := JobProgressMessage{
		Type:             MessageTypeJobProgress,
		JobID:            jobID,
		Status:           job.Status,
		TotalRecords:     job.TotalRecords,
		ProcessedRecords: job.ProcessedRecords,
		SuccessCount:     job.SuccessCount,
		ErrorCount:       job.ErrorCount,
		Timestamp:        time.Now().UTC(),
	}

	return websocket.New(func(conn *websocket.Conn) {
		client := &Client{
			ID:    uuid.New(),
			JobID: jobID,
			Conn:  conn,
			Hub:   h.hub,
			Send:  make(chan JobProgressMessage, 16),
		}

		h.hub.register <- client
		client.Send <- snapshot

		config.Logger.Info("Job progress subscriber connected",
			zap.String("client_id", client.ID.String()),
			zap.String("job_id", jobID),
		)

		go client.writePump()
		client.readPump()
	})(c)
}

// readPump only keeps the connection alive; subscribers never send data.
func (c *Client) readPump() {
	defer func() {
		c.Hub.unregister <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(1024)
	c.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				config.Logger.Debug("Job progress subscriber closed unexpectedly",
					zap.String("client_id", c.ID.String()),
					zap.Error(err),
				)
			}
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteJSON(message); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
