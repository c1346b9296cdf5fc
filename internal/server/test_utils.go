package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type testCleanupRequest struct {
	Prefix string `json:"prefix"`
}

// TestCleanup deletes every record whose name carries a test prefix so
// end-to-end runs can sweep up after themselves. Hidden in production.
func (s *Server) TestCleanup(c *gin.Context) {
	if s.cfg.IsProduction() {
		AbortWithError(c, &apiError{Status: http.StatusNotFound, Code: "not_found", Message: "not found"})
		return
	}

	var req testCleanupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	prefix := strings.TrimSpace(req.Prefix)
	if prefix == "" {
		AbortWithError(c, newValidationError("prefix", "required", "prefix is required"))
		return
	}

	ctx := c.Request.Context()
	deleted, err := s.deleteTestData(ctx, prefix)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "deleted": deleted})
}

func (s *Server) deleteTestData(ctx context.Context, prefix string) (int, error) {
	deleted := 0

	// Invoices first: they reference customers by name.
	for _, inv := range s.invoiceSvc.All(ctx) {
		if !strings.HasPrefix(inv.Customer, prefix) {
			continue
		}
		if err := s.invoiceSvc.Delete(ctx, inv.ID); err != nil {
			return deleted, err
		}
		deleted++
	}

	for _, cust := range s.customerSvc.All(ctx) {
		if !strings.HasPrefix(cust.Name, prefix) {
			continue
		}
		if err := s.customerSvc.Delete(ctx, cust.ID); err != nil {
			return deleted, err
		}
		deleted++
	}

	for _, prod := range s.productSvc.All(ctx) {
		if !strings.HasPrefix(prod.Name, prefix) {
			continue
		}
		if err := s.productSvc.Delete(ctx, prod.ID); err != nil {
			return deleted, err
		}
		deleted++
	}

	return deleted, nil
}
