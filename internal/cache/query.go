// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// query.go provides a Valkey-backed cache for journal API and GitHub API
// query results. Responses are stored as JSON under named result sets so
// that an admin mutation can drop exactly the sets it makes stale instead
// of flushing everything.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// queryKeyPrefix namespaces all query cache entries in Valkey.
	queryKeyPrefix = "query:"

	// DefaultQueryTTL bounds staleness even when invalidation misses.
	DefaultQueryTTL = 5 * time.Minute
)

// Result set names. A set covers every key built from it via Key, so
// dropping the set drops all its variants (list pages, filters).
const (
	SetPosts      = "posts"      // published post listings
	SetPost       = "post"       // single published posts, keyed by slug
	SetAdminPosts = "adminposts" // admin listings, any status
	SetSections   = "sections"   // the section tree
	SetTags       = "tags"       // tag counts
	SetProjects   = "projects"   // GitHub repositories
)

// Key builds the cache key for one variant of a result set. The variant
// distinguishes pages and filters of the same set ("" for sets with a
// single entry, a slug for SetPost, an encoded query for listings).
func Key(set, variant string) string {
	if variant == "" {
		return set
	}
	return set + ":" + variant
}

// Mutation identifies an admin write against the journal API.
type Mutation int

const (
	MutationPostCreated Mutation = iota
	MutationPostUpdated
	MutationPostDeleted
	MutationPostPublished
	MutationPostUnpublished
	MutationSectionCreated
	MutationSectionUpdated
	MutationSectionDeleted
)

// invalidations maps each mutation to the result sets it can make stale.
// Post writes touch the section tree too because sections carry post
// counts; section writes touch post listings because posts render with
// their section breadcrumb.
var invalidations = map[Mutation][]string{
	MutationPostCreated:     {SetPosts, SetAdminPosts, SetTags, SetSections},
	MutationPostUpdated:     {SetPosts, SetPost, SetAdminPosts, SetTags, SetSections},
	MutationPostDeleted:     {SetPosts, SetPost, SetAdminPosts, SetTags, SetSections},
	MutationPostPublished:   {SetPosts, SetPost, SetAdminPosts, SetTags, SetSections},
	MutationPostUnpublished: {SetPosts, SetPost, SetAdminPosts, SetTags, SetSections},
	MutationSectionCreated:  {SetSections, SetAdminPosts},
	MutationSectionUpdated:  {SetSections, SetPosts, SetPost, SetAdminPosts},
	MutationSectionDeleted:  {SetSections, SetPosts, SetPost, SetAdminPosts},
}

// QueryCache caches upstream API responses in Valkey. All methods are
// best-effort: a cache failure logs a warning and the caller falls through
// to the upstream API.
type QueryCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewQueryCache creates a query cache backed by the given Valkey client.
func NewQueryCache(client *redis.Client, ttl time.Duration) *QueryCache {
	if ttl == 0 {
		ttl = DefaultQueryTTL
	}
	return &QueryCache{client: client, ttl: ttl}
}

// Get unmarshals the cached value for a key into out. Returns false on
// miss or error.
func (qc *QueryCache) Get(ctx context.Context, key string, out any) bool {
	raw, err := qc.client.Get(ctx, queryKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		slog.Warn("query cache get error", "key", key, "error", err)
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		slog.Warn("query cache decode error", "key", key, "error", err)
		return false
	}
	slog.Debug("query cache hit", "key", key)
	return true
}

// Set stores a value under a key with the configured TTL.
func (qc *QueryCache) Set(ctx context.Context, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		slog.Warn("query cache encode error", "key", key, "error", err)
		return
	}
	if err := qc.client.Set(ctx, queryKeyPrefix+key, raw, qc.ttl).Err(); err != nil {
		slog.Warn("query cache set error", "key", key, "error", err)
	}
}

// InvalidateSet removes every variant of a result set.
func (qc *QueryCache) InvalidateSet(ctx context.Context, set string) {
	qc.invalidatePattern(ctx, queryKeyPrefix+set)
	qc.invalidatePattern(ctx, queryKeyPrefix+set+":*")
}

// OnMutation drops every result set the mutation can affect.
func (qc *QueryCache) OnMutation(ctx context.Context, m Mutation) {
	for _, set := range invalidations[m] {
		qc.InvalidateSet(ctx, set)
	}
	slog.Debug("query cache invalidated", "mutation", int(m))
}

func (qc *QueryCache) invalidatePattern(ctx context.Context, pattern string) {
	var cursor uint64
	for {
		keys, nextCursor, err := qc.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			slog.Warn("query cache scan error", "pattern", pattern, "error", err)
			return
		}
		if len(keys) > 0 {
			if err := qc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("query cache bulk delete error", "error", err)
			}
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
}
