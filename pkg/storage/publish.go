package storage

import (
	"context"
	"image"
	"time"

	"github.com/disintegration/imaging"

	"github.com/df07/go-direct-raytracer/pkg/imageio"
)

// Output describes one stored image
type Output struct {
	Key         string
	Location    string
	ContentType string
	Size        int
}

// Publish encodes img and stores it under RenderKey. When thumbnailWidth is
// positive and smaller than the image, a thumbnail is stored alongside it.
func Publish(ctx context.Context, sink Sink, sceneName string, img image.Image, format imaging.Format, thumbnailWidth int, at time.Time) ([]Output, error) {
	key := RenderKey(sceneName, at, imageio.Extension(format))

	outputs := make([]Output, 0, 2)
	out, err := put(ctx, sink, key, img, format)
	if err != nil {
		return nil, err
	}
	outputs = append(outputs, out)

	if thumbnailWidth > 0 && thumbnailWidth < img.Bounds().Dx() {
		out, err := put(ctx, sink, ThumbnailKey(key), imageio.Thumbnail(img, thumbnailWidth), format)
		if err != nil {
			return outputs, err
		}
		outputs = append(outputs, out)
	}

	return outputs, nil
}

func put(ctx context.Context, sink Sink, key string, img image.Image, format imaging.Format) (Output, error) {
	data, err := imageio.EncodeBytes(img, format)
	if err != nil {
		return Output{}, err
	}
	contentType := imageio.ContentType(format)
	location, err := sink.Put(ctx, key, data, contentType)
	if err != nil {
		return Output{}, err
	}
	return Output{Key: key, Location: location, ContentType: contentType, Size: len(data)}, nil
}
