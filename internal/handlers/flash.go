package handlers

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

const flashCookie = "jobboard_flash"

// Flash is a one-shot notice shown on the next rendered page.
type Flash struct {
	Level   string `json:"level"` // success, info, warning, danger
	Message string `json:"message"`
}

// addFlash queues a notice for the next page. Notices queued earlier in the
// same request are kept.
func addFlash(c *gin.Context, level, message string) {
	flashes := append(pendingFlashes(c), Flash{Level: level, Message: message})
	c.Set(flashCookie, flashes)
	writeFlashCookie(c, flashes)
}

// popFlashes returns and clears the queued notices.
func popFlashes(c *gin.Context) []Flash {
	flashes := pendingFlashes(c)
	if len(flashes) > 0 {
		c.Set(flashCookie, []Flash(nil))
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(flashCookie, "", -1, "/", "", false, true)
	}
	return flashes
}

func pendingFlashes(c *gin.Context) []Flash {
	if v, ok := c.Get(flashCookie); ok {
		flashes, _ := v.([]Flash)
		return flashes
	}
	raw, err := c.Cookie(flashCookie)
	if err != nil || raw == "" {
		return nil
	}
	data, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return nil
	}
	var flashes []Flash
	if err := json.Unmarshal(data, &flashes); err != nil {
		return nil
	}
	return flashes
}

func writeFlashCookie(c *gin.Context, flashes []Flash) {
	data, err := json.Marshal(flashes)
	if err != nil {
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookie, base64.RawURLEncoding.EncodeToString(data), 60, "/", "", false, true)
}
