package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/spendmap/pkg/chart"
	"github.com/matzehuels/spendmap/pkg/render/sink"
)

// RenderAll renders ch in every requested format.
func RenderAll(ctx context.Context, ch *chart.Chart, opts Options) (map[string][]byte, error) {
	opts.SetDefaults()
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := RenderFormat(ch, format, opts)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		opts.Logger.Debug("rendered", "format", format, "bytes", len(data))
		artifacts[format] = data
	}
	return artifacts, nil
}

// RenderFormat renders ch in a single format.
func RenderFormat(ch *chart.Chart, format string, opts Options) ([]byte, error) {
	opts.SetDefaults()
	sinkOpts := sinkOptions(opts)

	switch format {
	case FormatSVG:
		return sink.RenderSVG(ch, sinkOpts...), nil
	case FormatPNG:
		return sink.RenderPNG(ch, sinkOpts...)
	case FormatJSON:
		return sink.RenderJSON(ch, sinkOpts...)
	case FormatDOT:
		return sink.RenderDOT(ch, sinkOpts...)
	default:
		return nil, ValidateFormat(format)
	}
}

// sinkOptions builds sink options from the run's config.
func sinkOptions(opts Options) []sink.Option {
	result := []sink.Option{
		sink.WithRules(opts.Config.StyleRules()),
		sink.WithFormatter(opts.Config.Formatter()),
	}
	if opts.DocumentID != "" {
		result = append(result, sink.WithDocumentID(opts.DocumentID))
	}
	return result
}
