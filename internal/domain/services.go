package domain

// ServiceVocabulary is the fixed set of services a profile can list.
// Free-form entries are rejected at the edge so filters stay exact.
var ServiceVocabulary = []string{
	"classic-massage", "relax-massage", "spa-program", "sauna",
	"dinner-date", "event-companion", "city-tour", "travel-companion",
	"photo-session", "video-call", "dance-show", "party-host",
	"language-practice", "fitness-partner", "styling-advice",
	"overnight", "weekend-trip", "vip-program",
}

var serviceVocabularySet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(ServiceVocabulary))
	for _, s := range ServiceVocabulary {
		m[s] = struct{}{}
	}
	return m
}()

func KnownService(s string) bool {
	_, ok := serviceVocabularySet[s]
	return ok
}
