package ranking

// Topic is a category of domain terms activated by any of its triggers.
type Topic struct {
	Name     string
	Triggers []string
	Keywords []string
}

// Topics is the fixed keyword table used for category scoring.
var Topics = []Topic{
	{
		Name:     "technology",
		Triggers: []string{"technology", "ai", "tech", "apple", "google", "microsoft", "computer", "software"},
		Keywords: []string{
			"ai", "artificial intelligence", "machine learning", "neural network", "algorithm",
			"apple", "google", "microsoft", "amazon", "meta", "facebook", "tesla", "openai",
			"tech", "technology", "software", "computer", "digital", "innovation", "startup",
			"chip", "semiconductor", "cpu", "gpu", "processor", "intel", "nvidia", "amd",
			"smartphone", "iphone", "android", "app", "application", "programming", "code",
			"cybersecurity", "hacking", "data", "cloud", "server", "database", "internet",
			"automation", "robot", "drone", "electric", "battery", "solar", "renewable",
			"crypto", "bitcoin", "blockchain", "nft", "web3", "metaverse", "vr", "ar",
		},
	},
	{
		Name:     "sports",
		Triggers: []string{"sports", "football", "basketball", "soccer", "baseball", "tennis", "golf"},
		Keywords: []string{
			"nfl", "nba", "nhl", "mlb", "nascar", "pga", "tennis", "golf", "soccer", "football",
			"basketball", "baseball", "hockey", "racing", "olympics", "championship", "playoff",
			"panthers", "lakers", "warriors", "cowboys", "patriots", "yankees", "dodgers",
			"game", "team", "player", "coach", "season", "score", "win", "loss", "victory",
			"stadium", "arena", "field", "court", "track", "gym", "training", "fitness",
		},
	},
	{
		Name:     "business",
		Triggers: []string{"business", "finance", "economy", "market", "stock", "money", "investment"},
		Keywords: []string{
			"business", "finance", "economy", "market", "stock", "investment", "trading",
			"company", "corporate", "financial", "bank", "banking", "loan", "credit",
			"revenue", "profit", "loss", "earnings", "quarterly", "ipo", "merger", "acquisition",
			"ceo", "executive", "board", "shareholder", "dividend", "portfolio", "fund",
			"startup", "venture", "capital", "funding", "valuation", "unicorn",
		},
	},
	{
		Name:     "health",
		Triggers: []string{"health", "science", "medical", "medicine", "research"},
		Keywords: []string{
			"health", "medical", "medicine", "doctor", "hospital", "patient", "treatment",
			"research", "study", "clinical", "trial", "vaccine", "drug", "therapy",
			"cancer", "diabetes", "heart", "brain", "mental", "psychology",
			"fitness", "exercise", "nutrition", "diet", "wellness", "lifestyle",
		},
	},
	{
		Name:     "entertainment",
		Triggers: []string{"entertainment", "movie", "music", "celebrity", "hollywood"},
		Keywords: []string{
			"movie", "film", "cinema", "hollywood", "actor", "actress", "director", "producer",
			"music", "song", "album", "artist", "singer", "band", "concert", "tour",
			"celebrity", "famous", "star", "award", "oscar", "grammy", "emmy", "golden globe",
			"netflix", "disney", "hbo", "streaming", "tv", "television", "series", "show",
		},
	},
}

// Triggered reports whether any interest activates the topic.
func (t Topic) Triggered(interests []string) bool {
	for _, interest := range interests {
		for _, trigger := range t.Triggers {
			if interest == trigger {
				return true
			}
		}
	}
	return false
}
