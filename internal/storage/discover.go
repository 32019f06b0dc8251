// Package storage lists lookup files directly on the object store behind the base URL.
package storage

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Location is a base URL split into its object-store parts.
type Location struct {
	Endpoint string // scheme://host of an S3-compatible service; empty for s3:// URLs
	Bucket   string
	Prefix   string // key prefix without leading or trailing slash
}

// ParseBaseURL splits a path-style object-store URL such as
// https://s3-west.nrp-nautilus.io/public-padus/padus-4-1/lookup
// or an s3://bucket/prefix URI.
func ParseBaseURL(raw string) (Location, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Location{}, fmt.Errorf("parse base URL %q: %w", raw, err)
	}

	var loc Location
	switch u.Scheme {
	case "s3":
		loc.Bucket = u.Host
		loc.Prefix = strings.Trim(u.Path, "/")
	case "http", "https":
		if u.Host == "" {
			return Location{}, fmt.Errorf("missing host in base URL %q", raw)
		}
		loc.Endpoint = u.Scheme + "://" + u.Host
		bucket, prefix, _ := strings.Cut(strings.Trim(u.Path, "/"), "/")
		loc.Bucket = bucket
		loc.Prefix = prefix
	default:
		return Location{}, fmt.Errorf("unsupported scheme %q in base URL %q: use http, https or s3", u.Scheme, raw)
	}

	if loc.Bucket == "" {
		return Location{}, fmt.Errorf("missing bucket in base URL %q", raw)
	}
	return loc, nil
}

// keyPrefix is the listing prefix, with a trailing slash unless the prefix is empty.
func (l Location) keyPrefix() string {
	if l.Prefix == "" {
		return ""
	}
	return l.Prefix + "/"
}

// Lister finds lookup files under a Location.
type Lister struct {
	client s3.ListObjectsV2APIClient
	loc    Location
}

// NewLister creates a Lister that talks to the location's endpoint anonymously.
func NewLister(loc Location, region string) *Lister {
	opts := s3.Options{
		Region:       region,
		Credentials:  aws.AnonymousCredentials{},
		UsePathStyle: true,
	}
	if loc.Endpoint != "" {
		opts.BaseEndpoint = aws.String(loc.Endpoint)
	}
	return NewListerWithClient(s3.New(opts), loc)
}

// NewListerWithClient creates a Lister over an existing S3 client.
func NewListerWithClient(client s3.ListObjectsV2APIClient, loc Location) *Lister {
	return &Lister{client: client, loc: loc}
}

// ListTables returns the names of objects directly under the prefix whose
// key ends in ext (case-insensitive), with the prefix and extension removed.
// A missing leading dot on ext is added. Names are sorted.
func (l *Lister) ListTables(ctx context.Context, ext string) ([]string, error) {
	prefix := l.loc.keyPrefix()
	paginator := s3.NewListObjectsV2Paginator(l.client, &s3.ListObjectsV2Input{
		Bucket:    aws.String(l.loc.Bucket),
		Prefix:    aws.String(prefix),
		Delimiter: aws.String("/"),
	})

	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	lowerExt := strings.ToLower(ext)
	var names []string
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list s3://%s/%s: %w", l.loc.Bucket, prefix, err)
		}
		for _, obj := range page.Contents {
			key := strings.TrimPrefix(aws.ToString(obj.Key), prefix)
			if key == "" || strings.Contains(key, "/") {
				continue
			}
			if !strings.HasSuffix(strings.ToLower(key), lowerExt) {
				continue
			}
			names = append(names, key[:len(key)-len(ext)])
		}
	}
	sort.Strings(names)
	return names, nil
}
