// Package chatbot answers short "what should I watch" questions.
// Text is classified into an Intent by keyword rules, then served from TMDB.
package chatbot

import (
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Media types an intent can target
const (
	TypeMovie = "movie"
	TypeTV    = "tv"
	TypeBoth  = "both"
)

// Sorts an intent can ask for
const (
	SortPopular     = "popular"
	SortTopRated    = "top_rated"
	SortTrending    = "trending"
	SortNowPlaying  = "now_playing"
	SortUpcoming    = "upcoming"
	SortAiringToday = "airing_today"
	SortOnTheAir    = "on_the_air"
	SortDiscover    = "discover"
	SortSearch      = "search"
	// SortHelp answers questions about the app itself
	SortHelp = "help"
)

const (
	defaultCount = 10
	maxCount     = 20
)

// InvalidMessage is the reply to text that is not about movies or shows
const InvalidMessage = "Sorry, I can only help with movies and TV shows. Try asking for popular movies or top-rated TV shows."

// Intent is a classified request
type Intent struct {
	Type    string `json:"type"`
	Sort    string `json:"sort"`
	Query   string `json:"query,omitempty"`
	Genre   string `json:"genre,omitempty"` // canonical genre word, see GenreID
	Count   int    `json:"count"`
	Valid   bool   `json:"isValid"`
	Message string `json:"message"`
}

// genre holds the TMDB ids of a genre; shows use their own id list
type genre struct {
	label   string
	movieID string
	tvID    string
}

var genres = map[string]genre{
	"action":      {"action", "28", "10759"},
	"adventure":   {"adventure", "12", "10759"},
	"animation":   {"animated", "16", "16"},
	"comedy":      {"comedy", "35", "35"},
	"crime":       {"crime", "80", "80"},
	"documentary": {"documentary", "99", "99"},
	"drama":       {"drama", "18", "18"},
	"family":      {"family", "10751", "10751"},
	"fantasy":     {"fantasy", "14", "10765"},
	"history":     {"history", "36", ""},
	"horror":      {"horror", "27", ""},
	"music":       {"music", "10402", ""},
	"mystery":     {"mystery", "9648", "9648"},
	"romance":     {"romance", "10749", ""},
	"scifi":       {"sci-fi", "878", "10765"},
	"thriller":    {"thriller", "53", ""},
	"war":         {"war", "10752", "10768"},
	"western":     {"western", "37", "37"},
	"kids":        {"kids", "10751", "10762"},
	"news":        {"news", "", "10763"},
	"reality":     {"reality", "", "10764"},
	"soap":        {"soap", "", "10766"},
	"talk":        {"talk", "", "10767"},
}

// genreAliases maps other spellings to a genre key
var genreAliases = map[string]string{
	"animated":      "animation",
	"anime":         "animation",
	"cartoon":       "animation",
	"cartoons":      "animation",
	"comedies":      "comedy",
	"funny":         "comedy",
	"documentaries": "documentary",
	"docs":          "documentary",
	"dramas":        "drama",
	"historical":    "history",
	"scary":         "horror",
	"musical":       "music",
	"musicals":      "music",
	"mysteries":     "mystery",
	"romantic":      "romance",
	"romcom":        "romance",
	"thrillers":     "thriller",
	"westerns":      "western",
	"politics":      "war",
	"children":      "kids",
}

var phraseReplacer = strings.NewReplacer(
	"science fiction", "scifi",
	"sci-fi", "scifi",
	"sci fi", "scifi",
	"top-rated", "top rated",
	"rom-com", "romcom",
	"tv shows", "shows",
	"tv series", "series",
)

var (
	nonWordRegex = regexp.MustCompile(`[^a-z0-9' ]+`)
	countRegex   = regexp.MustCompile(`\b(\d{1,2})\b`)
	searchRegex  = regexp.MustCompile(`\b(?:find|search(?: for)?|named|called|titled)\s+(.+)$`)
	startsRegex  = regexp.MustCompile(`\bstart(?:s|ing)? with(?: the letter| letter)?\s+(.+)$`)
)

var movieWords = map[string]bool{"movie": true, "movies": true, "film": true, "films": true, "cinema": true}
var tvWords = map[string]bool{"shows": true, "series": true, "tv": true, "episodes": true}

// typeWordSuffix strips trailing type words from a search term
var typeWordSuffix = regexp.MustCompile(`\s+(?:movies?|films?|shows?|series|tv)$`)

type sortPhrase struct {
	phrase string
	sort   string
}

// Checked in order; the first phrase found wins
var sortPhrases = []sortPhrase{
	{"top rated", SortTopRated},
	{"best rated", SortTopRated},
	{"highest rated", SortTopRated},
	{"best", SortTopRated},
	{"trending", SortTrending},
	{"now playing", SortNowPlaying},
	{"in theaters", SortNowPlaying},
	{"in cinemas", SortNowPlaying},
	{"upcoming", SortUpcoming},
	{"coming soon", SortUpcoming},
	{"airing today", SortAiringToday},
	{"on the air", SortOnTheAir},
	{"currently airing", SortOnTheAir},
	{"popular", SortPopular},
}

// Classify turns free text into an Intent.
// Genre words win over other categories and tolerate one typo in words of five letters or more.
func Classify(text string) Intent {
	normalized := normalize(text)
	words := strings.Fields(normalized)

	intent := Intent{Count: defaultCount}
	if len(words) == 0 {
		intent.Message = InvalidMessage
		return intent
	}

	if m := countRegex.FindStringSubmatch(normalized); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			intent.Count = min(n, maxCount)
		}
	}

	wantsMovie, wantsTV := false, false
	for i, w := range words {
		wantsMovie = wantsMovie || movieWords[w]
		wantsTV = wantsTV || tvWords[w] || (w == "show" && !isVerbShow(words, i))
	}

	// Searches
	if query := searchTerm(normalized); query != "" {
		intent.Sort = SortSearch
		intent.Query = query
		intent.Type = pickType(wantsMovie, wantsTV, TypeBoth)
		intent.Valid = true
		intent.Message = fmt.Sprintf("Here's what I found for '%s':", query)
		return intent
	}

	// Questions about the app itself
	if strings.Contains(normalized, "watchlist") {
		return helpIntent("Want to add something to your Watchlist? Try the Watchlist page.")
	}
	if strings.Contains(normalized, "subscription") {
		return helpIntent("Subscriptions live under the Subscriptions tab. You can add or edit plans there.")
	}

	genreKey := findGenre(words)
	sort := findSort(normalized)

	switch {
	case genreKey != "":
		intent.Sort = SortDiscover
		intent.Genre = genreKey
		intent.Type = pickType(wantsMovie, wantsTV, TypeBoth)
		g := genres[genreKey]
		// Fall back to the media type that has the genre
		if g.tvID == "" && intent.Type != TypeMovie {
			intent.Type = TypeMovie
		}
		if g.movieID == "" && intent.Type != TypeTV {
			intent.Type = TypeTV
		}
	case sort == SortNowPlaying || sort == SortUpcoming:
		intent.Sort = sort
		intent.Type = TypeMovie
	case sort == SortAiringToday || sort == SortOnTheAir:
		intent.Sort = sort
		intent.Type = TypeTV
	case sort != "":
		intent.Sort = sort
		intent.Type = pickType(wantsMovie, wantsTV, TypeMovie)
		if sort == SortTrending {
			intent.Type = pickType(wantsMovie, wantsTV, TypeBoth)
		}
	case wantsMovie || wantsTV || mentionsWatching(words):
		intent.Sort = SortPopular
		intent.Type = pickType(wantsMovie, wantsTV, TypeMovie)
	default:
		intent.Message = InvalidMessage
		return intent
	}

	intent.Valid = true
	intent.Message = describe(intent)
	return intent
}

// GenreID returns the TMDB genre id of the intent's genre for a media type
func (i Intent) GenreID(mediaType string) (string, bool) {
	g, ok := genres[i.Genre]
	if !ok {
		return "", false
	}
	id := g.movieID
	if mediaType == TypeTV {
		id = g.tvID
	}
	return id, id != ""
}

func helpIntent(message string) Intent {
	return Intent{Sort: SortHelp, Type: TypeBoth, Count: 0, Valid: true, Message: message}
}

func normalize(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	s = strings.ReplaceAll(s, "’", "'")
	s = phraseReplacer.Replace(s)
	s = nonWordRegex.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}

// searchFillers are dropped from the front of a search term
var searchFillers = map[string]bool{"me": true, "us": true, "some": true, "a": true, "an": true, "the": true, "good": true}

func searchTerm(normalized string) string {
	if m := startsRegex.FindStringSubmatch(normalized); m != nil {
		return cleanTerm(m[1])
	}

	m := searchRegex.FindStringSubmatch(normalized)
	if m == nil {
		return ""
	}
	words := strings.Fields(m[1])
	for len(words) > 0 && searchFillers[words[0]] {
		words = words[1:]
	}
	term := cleanTerm(strings.Join(words, " "))
	// "find me some comedies" asks for a category, not a title
	if term == "" || findGenre(strings.Fields(term)) != "" || findSort(term) != "" {
		return ""
	}
	return term
}

func cleanTerm(term string) string {
	term = strings.TrimSpace(term)
	term = typeWordSuffix.ReplaceAllString(term, "")
	term = strings.TrimPrefix(term, "the ")
	term = strings.Trim(term, "' ")
	if movieWords[term] || tvWords[term] {
		return ""
	}
	return term
}

// fuzzyStopWords are real words one edit away from a genre
var fuzzyStopWords = map[string]bool{"prime": true, "times": true, "prices": true, "shows": true}

func findGenre(words []string) string {
	for _, w := range words {
		if _, ok := genres[w]; ok {
			return w
		}
		if key, ok := genreAliases[w]; ok {
			return key
		}
	}
	// One typo allowed for longer words
	for _, w := range words {
		if len(w) < 5 || fuzzyStopWords[w] {
			continue
		}
		for _, key := range slices.Sorted(maps.Keys(genres)) {
			if len(key) >= 5 && levenshtein.ComputeDistance(w, key) <= 1 {
				return key
			}
		}
	}
	return ""
}

func findSort(normalized string) string {
	padded := " " + normalized + " "
	for _, p := range sortPhrases {
		if strings.Contains(padded, " "+p.phrase+" ") {
			return p.sort
		}
	}
	return ""
}

// isVerbShow reports whether "show" at index i is the verb, as in "show me"
func isVerbShow(words []string, i int) bool {
	if i == 0 {
		return true
	}
	return i+1 < len(words) && (words[i+1] == "me" || words[i+1] == "us")
}

func mentionsWatching(words []string) bool {
	for _, w := range words {
		switch w {
		case "watch", "watching", "binge", "recommend", "recommendation", "recommendations":
			return true
		}
	}
	return false
}

func pickType(wantsMovie, wantsTV bool, fallback string) string {
	switch {
	case wantsMovie && !wantsTV:
		return TypeMovie
	case wantsTV && !wantsMovie:
		return TypeTV
	case wantsMovie && wantsTV:
		return TypeBoth
	}
	return fallback
}

func describe(i Intent) string {
	noun := "movies"
	switch i.Type {
	case TypeTV:
		noun = "shows"
	case TypeBoth:
		noun = "movies and shows"
	}

	switch i.Sort {
	case SortDiscover:
		return fmt.Sprintf("Here are some popular %s %s:", genres[i.Genre].label, noun)
	case SortTopRated:
		return fmt.Sprintf("Here are the top-rated %s:", noun)
	case SortTrending:
		return fmt.Sprintf("Here's what's trending in %s this week:", noun)
	case SortNowPlaying:
		return "Here's what's playing in theaters right now:"
	case SortUpcoming:
		return "Here are some upcoming movies to look forward to:"
	case SortAiringToday:
		return "Here are the shows airing today:"
	case SortOnTheAir:
		return "Here are shows currently on the air:"
	}
	return fmt.Sprintf("Here are the most popular %s:", noun)
}
