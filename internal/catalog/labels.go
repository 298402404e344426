package catalog

// DefaultLabels returns the built-in code to label tables.
// TMDB genre ids cover both the movie and the tv genre lists.
func DefaultLabels() Labels {
	return Labels{
		DimensionType: {
			"Scripted":  "TV Show",
			"Animation": "Animated Series",
			"Reality":   "Reality Show",
			"Talk Show": "Talk Show",
			"Game Show": "Game Show",
			"Movie":     "Movie",
		},
		DimensionGenre: {
			"28":    "Action",
			"12":    "Adventure",
			"16":    "Animation",
			"35":    "Comedy",
			"80":    "Crime",
			"99":    "Documentary",
			"18":    "Drama",
			"10751": "Family",
			"14":    "Fantasy",
			"36":    "History",
			"27":    "Horror",
			"10402": "Music",
			"9648":  "Mystery",
			"10749": "Romance",
			"878":   "Science Fiction",
			"10770": "TV Movie",
			"53":    "Thriller",
			"10752": "War",
			"37":    "Western",
			"10759": "Action & Adventure",
			"10762": "Kids",
			"10763": "News",
			"10764": "Reality",
			"10765": "Sci-Fi & Fantasy",
			"10766": "Soap",
			"10767": "Talk",
			"10768": "War & Politics",
		},
		DimensionLanguage: {
			"EN": "English",
			"FR": "French",
			"ES": "Spanish",
			"DE": "German",
			"IT": "Italian",
			"JA": "Japanese",
			"KO": "Korean",
			"ZH": "Chinese",
			"HI": "Hindi",
			"PT": "Portuguese",
			"RU": "Russian",
		},
		DimensionStatus: {
			"Returning Series": "Currently Airing",
			"Running":          "Currently Airing",
			"Ended":            "Ended",
			"Canceled":         "Canceled",
			"In Production":    "In production",
			"In Development":   "In development",
			"Planned":          "Planned",
			"Pilot":            "Pilot",
			"Released":         "Released",
			"To Be Determined": "To be determined",
		},
	}
}

// DefaultSeeds returns the codes offered even when no loaded record carries them
func DefaultSeeds() map[Dimension][]string {
	return map[Dimension][]string{
		DimensionLanguage: {"EN", "FR", "ES", "DE", "IT", "JA", "KO", "ZH", "HI", "PT", "RU"},
	}
}
