package websocket

import (
	"sync"
	"time"

	"linkabet-backend/db/models"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

const MessageTypeJobProgress = "JOB_PROGRESS"

// JobProgressMessage is one progress snapshot pushed to subscribers of a job.
type JobProgressMessage struct {
	Type             string              `json:"type"`
	JobID            string              `json:"job_id"`
	Status           models.ImportStatus `json:"status"`
	TotalRecords     int                 `json:"total_records"`
	ProcessedRecords int                 `json:"processed_records"`
	SuccessCount     int                 `json:"success_count"`
	ErrorCount       int                 `json:"error_count"`
	Timestamp        time.Time           `json:"timestamp"`
}

// Client is one live connection watching a single import job.
type Client struct {
	ID    uuid.UUID
	JobID string
	Conn  *websocket.Conn
	Hub   *Hub
	Send  chan JobProgressMessage
}

// Hub fans job progress out to the connections subscribed to each job.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	progress   chan JobProgressMessage
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		progress:   make(chan JobProgressMessage),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mu.Unlock()

		case message := <-h.progress:
			h.broadcastToJob(message)
		}
	}
}

// PublishProgress pushes a snapshot to every connection watching the job.
// Called by the import worker between processing steps.
func (h *Hub) PublishProgress(jobID string, status models.ImportStatus, totalRecords, processedRecords, successCount, errorCount int) {
	h.progress <- JobProgressMessage{
		Type:             MessageTypeJobProgress,
		JobID:            jobID,
		Status:           status,
		TotalRecords:     totalRecords,
		ProcessedRecords: processedRecords,
		SuccessCount:     successCount,
		ErrorCount:       errorCount,
		Timestamp:        time.Now().UTC(),
	}
}

// broadcastToJob needs the write lock: dropping a slow consumer mutates the
// client map while GetClientCount may be reading it.
func (h *Hub) broadcastToJob(message JobProgressMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		if client.JobID != message.JobID {
			continue
		}
		select {
		case client.Send <- message:
		default:
			// Slow consumer, drop the connection rather than block the hub.
			close(client.Send)
			delete(h.clients, client)
		}
	}
}

// GetClientCount returns the number of connected clients.
func (h *Hub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
