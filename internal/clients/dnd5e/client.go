package dnd5e

import (
	"log"
	"net/http"

	"github.com/fadedpez/dnd5e-api/clients/dnd5e"

	dnderr "github.com/KirkDiggler/dnd-dpr-engine/internal/errors"
)

type client struct {
	client dnd5e.Interface
}

// Config holds configuration for the API client.
type Config struct {
	HttpClient *http.Client
}

// New creates a client against the public 5e API.
func New(cfg *Config) (Client, error) {
	if cfg == nil {
		return nil, dnderr.InvalidArgument("cfg is required")
	}

	dndClient, err := dnd5e.NewDND5eAPI(&dnd5e.DND5eAPIConfig{
		Client: cfg.HttpClient,
	})
	if err != nil {
		return nil, err
	}

	return &client{
		client: dndClient,
	}, nil
}

func (c *client) GetMonster(key string) (*Monster, error) {
	if key == "" {
		return nil, dnderr.InvalidArgument("key is required")
	}

	monster, err := c.client.GetMonster(key)
	if err != nil {
		return nil, err
	}

	return apiToMonster(monster), nil
}

// standardCRs is every challenge rating printed in the reference data. The
// API filters by exact value only, so a range query walks these.
var standardCRs = []float64{0, 0.125, 0.25, 0.5, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10,
	11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24, 25, 26, 27, 28, 29, 30}

func (c *client) ListMonstersByCR(minCR, maxCR float64) ([]*Monster, error) {
	if minCR > maxCR {
		return nil, dnderr.InvalidField("minCR", minCR, "must not exceed maxCR")
	}

	monsters := make([]*Monster, 0)
	seen := make(map[string]bool)

	for _, cr := range standardCRs {
		if cr < minCR || cr > maxCR {
			continue
		}

		filterCR := cr
		refs, err := c.client.ListMonstersWithFilter(&dnd5e.ListMonstersInput{
			ChallengeRating: &filterCR,
		})
		if err != nil {
			// A failed page drops that CR, not the whole listing.
			log.Printf("dnd5e: list monsters at CR %g: %v", cr, err)
			continue
		}

		for _, ref := range refs {
			if ref.Key == "" || seen[ref.Key] {
				continue
			}
			monster, err := c.client.GetMonster(ref.Key)
			if err != nil {
				log.Printf("dnd5e: get monster %s: %v", ref.Key, err)
				continue
			}
			if converted := apiToMonster(monster); converted != nil {
				monsters = append(monsters, converted)
				seen[ref.Key] = true
			}
		}
	}

	return monsters, nil
}
