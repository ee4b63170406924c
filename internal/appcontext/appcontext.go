package appcontext

import (
	"github.com/meilisearch/meilisearch-go"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Context struct {
	DB     *gorm.DB
	Logger *zap.Logger

	// MeilisearchClient is nil when search is not configured.
	MeilisearchClient *meilisearch.Client
}
