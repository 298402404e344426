package utils

import (
	"bufio"
	"os"
	"strings"

	"github.com/amaumene/bingebuddy/internal/models"
)

// Blocklist holds title terms the user never wants to see in the catalog
type Blocklist struct {
	terms []string
}

// LoadBlocklist loads blocklist terms from a file, one per line.
// Blank lines and lines starting with # are ignored.
func LoadBlocklist(path string) (*Blocklist, error) {
	// If file doesn't exist, return empty blocklist
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &Blocklist{terms: []string{}}, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var terms []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		term := strings.TrimSpace(scanner.Text())
		if term != "" && !strings.HasPrefix(term, "#") {
			terms = append(terms, strings.ToLower(term))
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return &Blocklist{terms: terms}, nil
}

// Len returns the number of terms
func (b *Blocklist) Len() int {
	if b == nil {
		return 0
	}
	return len(b.terms)
}

// IsBlocked checks if a title matches any blocklist term.
// Returns (isBlocked, matchedTerm)
func (b *Blocklist) IsBlocked(title string) (bool, string) {
	if b == nil {
		return false, ""
	}
	titleLower := strings.ToLower(title)

	for _, term := range b.terms {
		if strings.Contains(titleLower, term) {
			return true, term
		}
	}

	return false, ""
}

// Apply drops records whose title is blocked, keeping order.
// The input slice is not modified.
func (b *Blocklist) Apply(records []models.MediaRecord) []models.MediaRecord {
	if b.Len() == 0 {
		return records
	}
	kept := make([]models.MediaRecord, 0, len(records))
	for _, r := range records {
		if blocked, _ := b.IsBlocked(r.Title); !blocked {
			kept = append(kept, r)
		}
	}
	return kept
}
