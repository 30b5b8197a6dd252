// Package ports declares the interfaces the application layer needs
// from infrastructure, keeping the dependency arrow pointed inward.
package ports

import (
	"context"

	"netviz/domain/graph"
)

// GraphSource is the upstream collaborator that computes the contact
// graph from raw communication metadata. The engine never fetches or
// caches data itself; it consumes finished payloads from this port.
type GraphSource interface {
	// FetchGraph retrieves the current graph payload. The access token
	// is passed through from the caller; the source never stores it.
	FetchGraph(ctx context.Context, accessToken string) (*graph.Payload, error)
}
