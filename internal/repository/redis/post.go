package redis

import (
	"context"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/coursecoc/coursecoc-server/domain"
)

const (
	KeyPostViewsBuffer     = "post:views:buffer"
	KeyPostViewsProcessing = "post:views:processing"
)

// postViewBuffer only buffers view counts; posts themselves are not cached
// (the community board is far less read-heavy than course pages).
type postViewBuffer struct {
	client *redis.Client
}

var _ domain.PostViewBuffer = (*postViewBuffer)(nil)

func NewPostViewBuffer(client *redis.Client) *postViewBuffer {
	return &postViewBuffer{
		client,
	}
}

func (p *postViewBuffer) IncrViews(ctx context.Context, id int64) (int64, error) {
	return p.client.HIncrBy(ctx, KeyPostViewsBuffer, strconv.FormatInt(id, 10), 1).Result()
}

func (p *postViewBuffer) FetchAndResetViews(ctx context.Context) (map[int64]int64, error) {
	return fetchAndResetViews(ctx, p.client, KeyPostViewsBuffer, KeyPostViewsProcessing)
}
