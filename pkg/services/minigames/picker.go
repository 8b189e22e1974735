package minigames

import (
	"bufio"
	"math/rand"
	"os"
	"strings"
	"sync"
	"time"
)

// Picker draws uniformly from a fixed list of strings
type Picker struct {
	items []string
	mu    sync.Mutex
	rng   *rand.Rand
}

// NewPicker creates a picker over items
func NewPicker(items []string) *Picker {
	return &Picker{
		items: items,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// LoadPicker reads one item per line from path. Blank lines and lines
// starting with # are skipped. An empty path or a file without items falls
// back to the given list.
func LoadPicker(path string, fallback []string) (*Picker, error) {
	if path == "" {
		return NewPicker(fallback), nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var items []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		items = append(items, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if len(items) == 0 {
		items = fallback
	}
	return NewPicker(items), nil
}

// Pick returns a random item, or "" when the list is empty
func (p *Picker) Pick() string {
	if len(p.items) == 0 {
		return ""
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.items[p.rng.Intn(len(p.items))]
}

// Items returns the list the picker draws from
func (p *Picker) Items() []string {
	return p.items
}
