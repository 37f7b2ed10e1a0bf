package dropdown

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"fleet-registry/internal/domain"
	"fleet-registry/internal/repository"
)

const cacheKey = "dropdowns:all"

// Service serves the vehicle lookup lists. The full map is cached in
// redis; dropdown contents change rarely.
type Service interface {
	List(ctx context.Context) (map[domain.DropdownKind][]domain.DropdownOption, error)
}

type service struct {
	dropdownRepo repository.DropdownRepository
	redis        *redis.Client
}

func NewService(dropdownRepo repository.DropdownRepository, redisClient *redis.Client) Service {
	return &service{
		dropdownRepo: dropdownRepo,
		redis:        redisClient,
	}
}

func (s *service) List(ctx context.Context) (map[domain.DropdownKind][]domain.DropdownOption, error) {
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			var out map[domain.DropdownKind][]domain.DropdownOption
			if err := json.Unmarshal([]byte(cached), &out); err == nil {
				return out, nil
			}
		}
	}

	options, err := s.dropdownRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make(map[domain.DropdownKind][]domain.DropdownOption)
	for _, kind := range domain.DropdownKinds() {
		out[kind] = []domain.DropdownOption{}
	}
	for _, opt := range options {
		out[opt.Kind] = append(out[opt.Kind], opt)
	}

	if s.redis != nil {
		if encoded, err := json.Marshal(out); err == nil {
			_ = s.redis.Set(ctx, cacheKey, encoded, 10*time.Minute).Err()
		}
	}

	return out, nil
}
