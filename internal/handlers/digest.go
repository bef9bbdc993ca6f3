package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const errSendDigest = "failed to send digest"

// @Summary      Send weather digest
// @Description  Fetches the configured multi-day forecast and sends the formatted summary over WhatsApp. Returns the gateway message ID.
// @Tags         digest
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "message_id, days, body"
// @Failure      401  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /api/v1/digest/send [post]
// @Security     BearerAuth
func (h *Handler) sendDigest(c *gin.Context) {
	report, err := h.services.Digest.Send(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusBadGateway, errSendDigest, "digest_send_failed", err)
		return
	}
	c.JSON(http.StatusOK, report)
}
