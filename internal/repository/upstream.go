package repository

import (
	"context"

	"github.com/noah-isme/phlebotomy-portal/pkg/apiclient"
)

// Upstream is the API transport shared by the upstream-backed repositories.
type Upstream interface {
	Do(ctx context.Context, req apiclient.Request, out interface{}) (apiclient.Result, error)
	DoMultipart(ctx context.Context, req apiclient.MultipartRequest, out interface{}) (apiclient.Result, error)
}

func messageOr(res apiclient.Result, fallback string) string {
	if res.Message != "" {
		return res.Message
	}
	return fallback
}
