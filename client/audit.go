package client

import (
	"context"
	"net/url"
	"strconv"
)

// AuditService handles audit log queries.
type AuditService struct {
	c *Client
}

// List returns audit entries newest first.
func (s *AuditService) List(ctx context.Context, opts *AuditListOptions) (*Page[AuditEntry], error) {
	params := url.Values{}
	if opts != nil {
		if opts.Page > 0 {
			params.Set("page", strconv.Itoa(opts.Page))
		}
		if opts.Limit > 0 {
			params.Set("limit", strconv.Itoa(opts.Limit))
		}
	}
	var resp Page[AuditEntry]
	if err := s.c.get(ctx, "/api/v1/audit", params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
