package services

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"sort"
	"strings"

	"github.com/vondel-labs/begrip-cli/internal/core/domain"
	"github.com/vondel-labs/begrip-cli/internal/logger"
)

// RankingEngine canonicalises, deduplicates and orders lookup results.
// Provider weighting is applied here and nowhere else, so a provider's
// prior is never counted twice.
type RankingEngine struct{}

// NewRankingEngine creates a new ranking engine.
func NewRankingEngine() *RankingEngine {
	return &RankingEngine{}
}

// scoredResult pairs a result with its precomputed ranking keys.
type scoredResult struct {
	result       domain.LookupResult
	finalScore   float64
	contentHash  string
	canonicalURL string
}

// RankAndDedup deduplicates results by content hash, then by canonical
// URL, and returns them in a deterministic total order: final score
// descending, juridical flag descending, title ascending, canonical
// URL ascending. Results carrying neither a content hash nor a URL are
// dropped; every survivor has a usable dedup key.
func (e *RankingEngine) RankAndDedup(
	items []domain.LookupResult, weights map[string]float64,
) []domain.LookupResult {
	scored := make([]scoredResult, 0, len(items))

	for _, item := range items {
		if !item.Success {
			continue
		}

		weight, ok := weights[item.Source.Name]
		if !ok {
			weight = domain.DefaultProviderWeight
		}

		sr := scoredResult{
			result:       item,
			finalScore:   weight * item.Source.Confidence,
			contentHash:  ContentHash(item),
			canonicalURL: CanonicalURL(item.Source.URL),
		}

		if sr.contentHash == "" && sr.canonicalURL == "" {
			logger.Debug("Ranking: dropping result from %s without dedup key", item.Source.Name)
			continue
		}

		if sr.result.Metadata == nil {
			sr.result.Metadata = make(map[string]any)
		}
		if sr.contentHash != "" {
			sr.result.Metadata["content_hash"] = sr.contentHash
		}
		if sr.canonicalURL != "" {
			sr.result.Metadata["canonical_url"] = sr.canonicalURL
		}

		scored = append(scored, sr)
	}

	// Phase 1: collapse identical content, keeping the best weighted
	// entry per hash.
	byHash := make(map[string]scoredResult)
	var hashless []scoredResult
	for _, sr := range scored {
		if sr.contentHash == "" {
			hashless = append(hashless, sr)
			continue
		}
		if best, seen := byHash[sr.contentHash]; !seen || betterThan(sr, best) {
			byHash[sr.contentHash] = sr
		}
	}

	// Phase 2: collapse identical canonical URLs across the hash
	// survivors and the hash-less entries, keeping the best per URL.
	// Entries without a URL survive on their hash alone. After both
	// phases no two survivors share either dedup key.
	candidates := make([]scoredResult, 0, len(byHash)+len(hashless))
	for _, sr := range byHash {
		candidates = append(candidates, sr)
	}
	candidates = append(candidates, hashless...)

	byURL := make(map[string]scoredResult)
	var urlless []scoredResult
	for _, sr := range candidates {
		if sr.canonicalURL == "" {
			urlless = append(urlless, sr)
			continue
		}
		if best, seen := byURL[sr.canonicalURL]; !seen || betterThan(sr, best) {
			byURL[sr.canonicalURL] = sr
		}
	}

	survivors := make([]scoredResult, 0, len(byURL)+len(urlless))
	for _, sr := range byURL {
		survivors = append(survivors, sr)
	}
	survivors = append(survivors, urlless...)

	sort.Slice(survivors, func(i, j int) bool {
		return betterThan(survivors[i], survivors[j])
	})

	out := make([]domain.LookupResult, len(survivors))
	for i, sr := range survivors {
		out[i] = sr.result
	}
	return out
}

// betterThan is the deterministic total order over scored results.
func betterThan(a, b scoredResult) bool {
	if a.finalScore != b.finalScore {
		return a.finalScore > b.finalScore
	}
	if a.result.Source.Juridical != b.result.Source.Juridical {
		return a.result.Source.Juridical
	}
	at, bt := titleOf(a.result), titleOf(b.result)
	if at != bt {
		return at < bt
	}
	if a.canonicalURL != b.canonicalURL {
		return a.canonicalURL < b.canonicalURL
	}
	// Last-resort key so the order is total even for results that tie
	// on every ranking dimension.
	return a.contentHash < b.contentHash
}

// titleOf returns the text used as the title tie-break key.
func titleOf(r domain.LookupResult) string {
	if t, ok := r.Metadata["title"].(string); ok && t != "" {
		return t
	}
	return r.Term
}

// ContentHash computes the dedup hash over a result's normalised text.
// Results without any text have no hash and fall back to URL dedup.
func ContentHash(r domain.LookupResult) string {
	text := strings.TrimSpace(strings.ToLower(r.Definition + " " + r.Context))
	if text == "" {
		return ""
	}
	text = strings.Join(strings.Fields(text), " ")
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:16])
}

// CanonicalURL normalises a URL into a stable dedup key: scheme and
// host lowercased, default port stripped, trailing slash stripped,
// query string preserved. The operation is idempotent; unparseable
// URLs canonicalise to the empty string.
func CanonicalURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return ""
	}

	u.Scheme = strings.ToLower(u.Scheme)
	host := strings.ToLower(u.Host)
	switch {
	case u.Scheme == "http" && strings.HasSuffix(host, ":80"):
		host = strings.TrimSuffix(host, ":80")
	case u.Scheme == "https" && strings.HasSuffix(host, ":443"):
		host = strings.TrimSuffix(host, ":443")
	}
	u.Host = host

	u.Path = strings.TrimSuffix(u.Path, "/")
	u.Fragment = ""

	return u.String()
}
