// Package corpus serves graded practice articles from jsonl files. The
// provider is an injected value with an explicit ensure-loaded step and a
// process-lifetime in-memory cache; engine packages never touch it.
package corpus

import (
	"bufio"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/artemgv/ritmo/internal/model"
)

// Families and Tiers enumerate the corpus axes. File names follow
// corpus-<family>-<tier>.jsonl; the wiki family also accepts the legacy
// corpus-<tier>.jsonl name.
var (
	Families = []string{"wiki", "prose"}
	Tiers    = []string{"easy", "medium", "hard"}
)

// Provider resolves and caches corpus files from a list of candidate
// directories, first match wins.
type Provider struct {
	dirs []string

	mu    sync.Mutex
	cache map[string][]model.CorpusArticle
}

// NewProvider returns a provider searching the given directories.
func NewProvider(dirs ...string) *Provider {
	return &Provider{
		dirs:  dirs,
		cache: map[string][]model.CorpusArticle{},
	}
}

// Valid reports whether family and tier name a known corpus slot.
func Valid(family, tier string) bool {
	return contains(Families, family) && contains(Tiers, tier)
}

// EnsureLoaded loads the corpus file for family/tier into the cache if it
// is not already resident. It returns false without error when no file
// exists in any candidate directory.
func (p *Provider) EnsureLoaded(family, tier string) (bool, error) {
	if !Valid(family, tier) {
		return false, nil
	}
	key := cacheKey(family, tier)

	p.mu.Lock()
	_, ok := p.cache[key]
	p.mu.Unlock()
	if ok {
		return true, nil
	}

	path, ok := p.findFile(family, tier)
	if !ok {
		return false, nil
	}
	articles, err := readArticles(path)
	if err != nil {
		return false, fmt.Errorf("failed to load corpus %s: %w", key, err)
	}

	p.mu.Lock()
	p.cache[key] = articles
	p.mu.Unlock()
	return true, nil
}

// Info reports availability and article counts for every family/tier
// pair, loading files as a side effect.
func (p *Provider) Info() map[string]map[string]model.CorpusTierInfo {
	out := map[string]map[string]model.CorpusTierInfo{}
	for _, family := range Families {
		tiers := map[string]model.CorpusTierInfo{}
		for _, tier := range Tiers {
			available, err := p.EnsureLoaded(family, tier)
			if err != nil {
				available = false
			}
			tiers[tier] = model.CorpusTierInfo{
				Available:     available,
				TotalArticles: p.count(family, tier),
			}
		}
		out[family] = tiers
	}
	return out
}

// Sample returns a uniformly chosen article from the family/tier corpus,
// or ok=false when the corpus is missing or empty.
func (p *Provider) Sample(family, tier string, rnd *rand.Rand) (model.CorpusArticle, bool, error) {
	loaded, err := p.EnsureLoaded(family, tier)
	if err != nil {
		return model.CorpusArticle{}, false, err
	}
	if !loaded {
		return model.CorpusArticle{}, false, nil
	}

	p.mu.Lock()
	articles := p.cache[cacheKey(family, tier)]
	p.mu.Unlock()
	if len(articles) == 0 {
		return model.CorpusArticle{}, false, nil
	}
	return articles[rnd.Intn(len(articles))], true, nil
}

func (p *Provider) count(family, tier string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.cache[cacheKey(family, tier)])
}

func (p *Provider) findFile(family, tier string) (string, bool) {
	for _, dir := range p.dirs {
		path := filepath.Join(dir, fmt.Sprintf("corpus-%s-%s.jsonl", family, tier))
		if fileExists(path) {
			return path, true
		}
		if family == "wiki" {
			legacy := filepath.Join(dir, fmt.Sprintf("corpus-%s.jsonl", tier))
			if fileExists(legacy) {
				return legacy, true
			}
		}
	}
	return "", false
}

// readArticles parses one article per jsonl line. Blank and malformed
// lines are skipped so a partially corrupted corpus still serves.
func readArticles(path string) ([]model.CorpusArticle, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only corpus file.
			_ = cerr
		}
	}()

	var articles []model.CorpusArticle
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var article model.CorpusArticle
		if err := json.Unmarshal([]byte(line), &article); err != nil {
			continue
		}
		articles = append(articles, article)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return articles, nil
}

func cacheKey(family, tier string) string {
	return family + ":" + tier
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
