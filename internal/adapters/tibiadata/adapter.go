package tibiadata

import (
	"net/http"
	"time"

	"guildwatch/internal/adapters/tibiadata/api"
)

// Adapter exposes the external game-data source as the fetcher port. TibiaData
// is the primary source; tibia.com scraping is the fallback for world online
// lists.
type Adapter struct {
	client         *api.Client
	tibiaComClient *http.Client
}

func NewAdapter(client *api.Client) *Adapter {
	return &Adapter{
		client: client,
		tibiaComClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}
