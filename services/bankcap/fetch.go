package bankcap

import (
	"context"
	"fmt"
	"largestbanks/lib/restyutil"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

// Fetcher retrieves the raw html of a page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

type FetchOptions struct {
	// 0 means no timeout
	TimeoutSeconds   int    `json:"timeout_seconds"`
	UserAgent        string `json:"user_agent"`
	CloudflareBypass bool   `json:"cloudflare_bypass"`
	// when set, every request and response is written into this directory
	DumpDir string `json:"dump_dir"`
}

type HttpFetcher struct {
	http *resty.Client
}

func NewHttpFetcher(opts FetchOptions) (HttpFetcher, error) {
	client := resty.New()
	if opts.TimeoutSeconds > 0 {
		client.SetTimeout(time.Duration(opts.TimeoutSeconds) * time.Second)
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	client.SetHeader("user-agent", userAgent)
	if opts.CloudflareBypass {
		client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	}

	var output restyutil.InstrumentOutput
	if opts.DumpDir != "" {
		fsout, err := restyutil.NewFilesystemOutput(opts.DumpDir)
		if err != nil {
			return HttpFetcher{}, err
		}
		output = fsout
	}
	restyutil.InstrumentClient(client, tracer, output)

	return HttpFetcher{http: client}, nil
}

func (f HttpFetcher) Fetch(ctx context.Context, url string) (string, error) {
	ctx, span := tracer.Start(ctx, "Fetch")
	defer span.End()
	span.SetAttributes(attribute.String("url", url))

	res, err := f.http.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch")
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}
	if res.IsError() {
		err := fmt.Errorf("fetch %s: unexpected status %s", url, res.Status())
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}
	return res.String(), nil
}
