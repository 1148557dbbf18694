package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/inburst/prhub/datasource"
	"github.com/inburst/prhub/logger"
	"github.com/inburst/prhub/table"
)

type Handlers struct {
	store  *Store
	layout *table.Layout
	ds     *datasource.Datasource
}

func NewHandlers(store *Store, layout *table.Layout, ds *datasource.Datasource) *Handlers {
	return &Handlers{store: store, layout: layout, ds: ds}
}

type pullsResponse struct {
	Pulls       []*datasource.PullRequest `json:"pulls"`
	Sort        string                    `json:"sort,omitempty"`
	Direction   string                    `json:"direction,omitempty"`
	RefreshedAt string                    `json:"refreshedAt,omitempty"`
	Error       string                    `json:"error,omitempty"`
}

// HandlePulls lists the rows, ordered by the column named in ?sort= and
// ?dir= when given.
func (h *Handlers) HandlePulls(c *gin.Context) {
	pulls := h.store.Pulls()
	if pulls == nil {
		pulls = []*datasource.PullRequest{}
	}
	resp := pullsResponse{}

	if key := c.Query("sort"); key != "" {
		dir, err := table.ParseSortDirection(c.Query("dir"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		pulls, err = h.layout.SortByKey(table.ColumnKey(key), dir, pulls)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		resp.Sort = key
		resp.Direction = dir.String()
	}

	refreshedAt, lastErr := h.store.Status()
	if !refreshedAt.IsZero() {
		resp.RefreshedAt = refreshedAt.UTC().Format(time.RFC3339)
	}
	if lastErr != nil {
		resp.Error = lastErr.Error()
	}
	resp.Pulls = pulls
	c.JSON(http.StatusOK, resp)
}

type layoutResponse struct {
	Width      int                    `json:"width"`
	Breakpoint table.Breakpoint       `json:"breakpoint"`
	Columns    []table.ResolvedColumn `json:"columns"`
}

// HandleLayout resolves the visible columns for ?width= cells.
func (h *Handlers) HandleLayout(c *gin.Context) {
	width, err := strconv.Atoi(c.DefaultQuery("width", "80"))
	if err != nil || width < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "width must be a positive number of cells"})
		return
	}
	c.JSON(http.StatusOK, layoutResponse{
		Width:      width,
		Breakpoint: h.layout.ActiveBreakpoint(width),
		Columns:    h.layout.Resolve(width),
	})
}

type commentsResponse struct {
	ID       int `json:"pullRequestId"`
	Resolved int `json:"resolved"`
	Total    int `json:"total"`
}

func (h *Handlers) HandleComments(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a number"})
		return
	}
	pr := h.store.Find(id)
	if pr == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown pull request"})
		return
	}

	count, err := h.ds.CommentCount(c.Request.Context(), pr)
	if err != nil {
		logger.Shared().WithField("pr", pr.CacheKey()).WithError(err).Warn("comment count")
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, commentsResponse{ID: pr.ID, Resolved: count.Resolved, Total: count.Total})
}
