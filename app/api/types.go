package api

import (
	"context"

	"github.com/lysyi3m/reuters-comb/app/feed"
	"github.com/lysyi3m/reuters-comb/app/reuters"
)

type AdapterInterface interface {
	Fetch(ctx context.Context, req reuters.Request) (*feed.Metadata, []feed.Item, error)
}

var _ AdapterInterface = (*reuters.Adapter)(nil)

type GeneratorInterface interface {
	Run(meta feed.Metadata, items []feed.Item, selfPath string) (string, error)
}

var _ GeneratorInterface = (*feed.Generator)(nil)

type Handler struct {
	adapter   AdapterInterface
	generator GeneratorInterface
}
