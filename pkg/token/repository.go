package token

import (
	"fmt"
	"time"

	"github.com/go-redis/redis"
)

//goland:noinspection GoExportedFuncWithUnexportedType
func NewRepository(client *redis.Client) *redisRepository {
	return &redisRepository{client}
}

// redisRepository keeps an allow-list of refresh token ids per user. A refresh
// token not present in the list is rejected even if its signature is valid,
// which is what makes sign out and rotation effective.
type redisRepository struct {
	client *redis.Client
}

func (r redisRepository) SetRefreshToken(userId uint, tokenId string, expiresIn time.Duration) error {
	if err := r.client.Set(key(userId, tokenId), "1", expiresIn).Err(); err != nil {
		return fmt.Errorf("failed to store refresh token: %v", err)
	}
	return nil
}

func (r redisRepository) HasRefreshToken(userId uint, tokenId string) (bool, error) {
	count, err := r.client.Exists(key(userId, tokenId)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to look up refresh token: %v", err)
	}
	return count > 0, nil
}

func (r redisRepository) DeleteRefreshToken(userId uint, tokenId string) error {
	if err := r.client.Del(key(userId, tokenId)).Err(); err != nil {
		return fmt.Errorf("failed to delete refresh token: %v", err)
	}
	return nil
}

func (r redisRepository) DeleteRefreshTokens(userId uint) error {
	keys, err := r.client.Keys(fmt.Sprintf("refreshToken:%d:*", userId)).Result()
	if err != nil {
		return fmt.Errorf("failed to list refresh tokens: %v", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := r.client.Del(keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete refresh tokens: %v", err)
	}
	return nil
}

func key(userId uint, tokenId string) string {
	return fmt.Sprintf("refreshToken:%d:%s", userId, tokenId)
}
