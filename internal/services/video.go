package services

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/option"
	youtube "google.golang.org/api/youtube/v3"

	"github.com/eduforge/eduforge-backend/internal/platform/logger"
)

type VideoLink struct {
	Title        string `json:"title"`
	URL          string `json:"url"`
	ChannelTitle string `json:"channel_title"`
	ThumbnailURL string `json:"thumbnail_url"`
}

type VideoService interface {
	SearchVideos(ctx context.Context, topic string, maxResults int64) []VideoLink
}

type videoService struct {
	log    *logger.Logger
	apiKey string
}

func NewVideoService(log *logger.Logger, apiKey string) VideoService {
	serviceLog := log.With("service", "VideoService")
	return &videoService{log: serviceLog, apiKey: apiKey}
}

// SearchVideos looks up educational videos for a topic. Lookup failures
// degrade to an empty list; video links are supplementary and must not
// fail the surrounding request.
func (vs *videoService) SearchVideos(ctx context.Context, topic string, maxResults int64) []VideoLink {
	topic = strings.TrimSpace(topic)
	if topic == "" || vs.apiKey == "" {
		return []VideoLink{}
	}
	if maxResults <= 0 {
		maxResults = 5
	}

	svc, err := youtube.NewService(ctx, option.WithAPIKey(vs.apiKey))
	if err != nil {
		vs.log.Warn("Failed to build youtube client", "error", err.Error())
		return []VideoLink{}
	}

	resp, err := svc.Search.List([]string{"snippet"}).
		Q(topic + " tutorial").
		Type("video").
		SafeSearch("strict").
		MaxResults(maxResults).
		Context(ctx).
		Do()
	if err != nil {
		vs.log.Warn("Youtube search failed", "topic", topic, "error", err.Error())
		return []VideoLink{}
	}

	links := make([]VideoLink, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Id == nil || item.Id.VideoId == "" || item.Snippet == nil {
			continue
		}
		link := VideoLink{
			Title:        item.Snippet.Title,
			URL:          fmt.Sprintf("https://www.youtube.com/watch?v=%s", item.Id.VideoId),
			ChannelTitle: item.Snippet.ChannelTitle,
		}
		if item.Snippet.Thumbnails != nil && item.Snippet.Thumbnails.Default != nil {
			link.ThumbnailURL = item.Snippet.Thumbnails.Default.Url
		}
		links = append(links, link)
	}
	return links
}
