package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/coursecoc/coursecoc-server/domain"
)

const (
	KeyCourse                = "course:%d"
	KeyCourseViewsBuffer     = "course:views:buffer"
	KeyCourseViewsProcessing = "course:views:processing"

	courseCacheTTL = 10 * time.Minute
)

type courseCache struct {
	client *redis.Client
}

var _ domain.CourseCache = (*courseCache)(nil)

func NewCourseCache(client *redis.Client) *courseCache {
	return &courseCache{
		client,
	}
}

func (c *courseCache) GetCourse(ctx context.Context, id int64) (res domain.Course, err error) {
	key := fmt.Sprintf(KeyCourse, id)
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Course{}, redis.Nil
	} else if err != nil {
		return domain.Course{}, err
	}
	if err = json.Unmarshal(data, &res); err != nil {
		return domain.Course{}, err
	}
	return
}

func (c *courseCache) SetCourse(ctx context.Context, course *domain.Course) (err error) {
	key := fmt.Sprintf(KeyCourse, course.ID)
	data, err := json.Marshal(course)
	if err != nil {
		return
	}
	err = c.client.Set(ctx, key, data, courseCacheTTL).Err()
	return
}

func (c *courseCache) DeleteCourse(ctx context.Context, id int64) error {
	key := fmt.Sprintf(KeyCourse, id)
	return c.client.Del(ctx, key).Err()
}

func (c *courseCache) IncrViews(ctx context.Context, id int64) (int64, error) {
	return c.client.HIncrBy(ctx, KeyCourseViewsBuffer, strconv.FormatInt(id, 10), 1).Result()
}

func (c *courseCache) FetchAndResetViews(ctx context.Context) (map[int64]int64, error) {
	return fetchAndResetViews(ctx, c.client, KeyCourseViewsBuffer, KeyCourseViewsProcessing)
}

// fetchAndResetViews drains a view-buffer hash. The rename makes the drain
// atomic with respect to concurrent HINCRBYs on the buffer key.
func fetchAndResetViews(ctx context.Context, client *redis.Client, bufferKey, processingKey string) (map[int64]int64, error) {
	result := make(map[int64]int64)
	err := client.Rename(ctx, bufferKey, processingKey).Err()
	if err != nil {
		if isMissingKey(err) {
			// nothing buffered since the last drain
			return result, nil
		}
		return result, err
	}

	data, err := client.HGetAll(ctx, processingKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return result, nil
		}
		return result, err
	}

	for idStr, viewsStr := range data {
		id, _ := strconv.ParseInt(idStr, 10, 64)
		views, _ := strconv.ParseInt(viewsStr, 10, 64)
		result[id] = views
	}

	client.Del(ctx, processingKey)

	return result, nil
}

// isMissingKey matches the server's RENAME answer for an absent source
// key ("ERR no such key").
func isMissingKey(err error) bool {
	return errors.Is(err, redis.Nil) || strings.Contains(err.Error(), "no such key")
}
