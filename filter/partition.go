package filter

// partition.go contains test sharding across several runs.

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// PartitionKind selects how tests are assigned to shards.
type PartitionKind int

const (
	// PartitionCount assigns tests round-robin in listing order.
	PartitionCount PartitionKind = iota
	// PartitionHash assigns tests by a hash of their name.
	PartitionHash
)

// PartitionerBuilder describes shard M of N.
type PartitionerBuilder struct {
	Kind        PartitionKind
	Shard       uint64 // 1-based
	TotalShards uint64
}

// ParsePartition parses "count:M/N" or "hash:M/N".
func ParsePartition(s string) (*PartitionerBuilder, error) {
	kindStr, spec, ok := strings.Cut(s, ":")
	if !ok {
		return nil, fmt.Errorf("invalid partition %q: expected count:M/N or hash:M/N", s)
	}

	var kind PartitionKind
	switch kindStr {
	case "count":
		kind = PartitionCount
	case "hash":
		kind = PartitionHash
	default:
		return nil, fmt.Errorf("invalid partition %q: unknown kind %q", s, kindStr)
	}

	shardStr, totalStr, ok := strings.Cut(spec, "/")
	if !ok {
		return nil, fmt.Errorf("invalid partition %q: expected M/N", s)
	}
	shard, err := strconv.ParseUint(shardStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid partition %q: shard: %w", s, err)
	}
	total, err := strconv.ParseUint(totalStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid partition %q: total shards: %w", s, err)
	}
	if total == 0 || shard == 0 || shard > total {
		return nil, fmt.Errorf("invalid partition %q: shard must be between 1 and %d", s, total)
	}

	return &PartitionerBuilder{Kind: kind, Shard: shard, TotalShards: total}, nil
}

func (b *PartitionerBuilder) String() string {
	kind := "count"
	if b.Kind == PartitionHash {
		kind = "hash"
	}
	return fmt.Sprintf("%s:%d/%d", kind, b.Shard, b.TotalShards)
}

// Partitioner decides whether a test belongs to the current shard.
type Partitioner interface {
	TestMatches(name string) bool
}

// Build returns a partitioner with fresh state.
func (b *PartitionerBuilder) Build() Partitioner {
	switch b.Kind {
	case PartitionHash:
		return &hashPartitioner{shard: b.Shard - 1, total: b.TotalShards}
	default:
		return &countPartitioner{shard: b.Shard - 1, total: b.TotalShards}
	}
}

type countPartitioner struct {
	shard   uint64 // 0-based
	total   uint64
	counter uint64
}

func (p *countPartitioner) TestMatches(string) bool {
	matches := p.counter%p.total == p.shard
	p.counter++
	return matches
}

type hashPartitioner struct {
	shard uint64 // 0-based
	total uint64
}

func (p *hashPartitioner) TestMatches(name string) bool {
	return xxhash.Sum64String(name)%p.total == p.shard
}
