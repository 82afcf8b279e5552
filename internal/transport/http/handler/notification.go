package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vaxcare/vaxcare-backend/internal/domain"
)

type notificationUsecaser interface {
	List(ctx context.Context, userID string) ([]*domain.Notification, error)
	MarkRead(ctx context.Context, id, userID string) (*domain.Notification, error)
	Delete(ctx context.Context, id, userID string) error
}

type NotificationHandler struct {
	uc     notificationUsecaser
	logger *slog.Logger
}

func NewNotificationHandler(uc notificationUsecaser, logger *slog.Logger) *NotificationHandler {
	return &NotificationHandler{uc: uc, logger: logger.With("component", "notification_handler")}
}

type notificationResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

func toNotificationResponse(n *domain.Notification) notificationResponse {
	return notificationResponse{
		ID:        n.ID,
		Title:     n.Title,
		Message:   n.Message,
		Type:      n.Type,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}

// GET /api/notifications
func (h *NotificationHandler) List(c *gin.Context) {
	notifications, err := h.uc.List(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		h.logger.Error("list notifications", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	items := make([]notificationResponse, len(notifications))
	unread := 0
	for i, n := range notifications {
		items[i] = toNotificationResponse(n)
		if !n.IsRead {
			unread++
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"notifications": items,
		"unreadCount":   unread,
	})
}

// PUT /api/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id := c.Param("id")

	n, err := h.uc.MarkRead(c.Request.Context(), id, c.GetString("userID"))
	if err != nil {
		if errors.Is(err, domain.ErrNotificationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errNotificationNotFound})
			return
		}
		h.logger.Error("mark notification read", "notification_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Notification marked as read",
		"notification": toNotificationResponse(n),
	})
}

// DELETE /api/notifications/:id
func (h *NotificationHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	err := h.uc.Delete(c.Request.Context(), id, c.GetString("userID"))
	if err != nil {
		if errors.Is(err, domain.ErrNotificationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errNotificationNotFound})
			return
		}
		h.logger.Error("delete notification", "notification_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification deleted successfully"})
}
