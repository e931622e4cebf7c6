package storage

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"
)

// Sink stores an encoded render under a slash-separated key and reports
// where it ended up
type Sink interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// TimestampLayout is the layout used for render keys
const TimestampLayout = "20060102_150405"

// RenderKey builds the key "<scene>/render_<timestamp>.<ext>". Scene names
// given as file paths are reduced to their base name without extension.
func RenderKey(sceneName string, at time.Time, ext string) string {
	return path.Join(SceneDirName(sceneName), fmt.Sprintf("render_%s.%s", at.Format(TimestampLayout), ext))
}

// ThumbnailKey derives the thumbnail key for a render key
func ThumbnailKey(renderKey string) string {
	ext := path.Ext(renderKey)
	return strings.TrimSuffix(renderKey, ext) + "_thumb" + ext
}

// SceneDirName returns the directory name used to group renders of a scene
func SceneDirName(sceneName string) string {
	name := strings.ReplaceAll(sceneName, "\\", "/")
	if strings.HasSuffix(strings.ToLower(name), ".json") {
		name = path.Base(name)
		name = strings.TrimSuffix(name, path.Ext(name))
	}
	name = strings.Trim(name, "/")
	if name == "" || name == "." {
		return "scene"
	}
	return strings.ReplaceAll(name, "/", "-")
}
