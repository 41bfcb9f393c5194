package zodiac

// DefaultCompatibility is used for any pair missing from the chart
const DefaultCompatibility = 50

// chart is keyed by the first user's sign. Pairs are not mirrored: Pisces
// lists Virgo but Virgo does not list Pisces, Scorpio lists Virgo but not
// the other way round. Keep it that way.
var chart = map[Sign]map[Sign]int{
	Aries:       {Leo: 90, Sagittarius: 85, Gemini: 80},
	Taurus:      {Virgo: 88, Capricorn: 85, Cancer: 80},
	Gemini:      {Libra: 90, Aquarius: 85, Aries: 80},
	Cancer:      {Scorpio: 90, Pisces: 85, Taurus: 80},
	Leo:         {Aries: 90, Sagittarius: 85, Gemini: 80},
	Virgo:       {Taurus: 88, Capricorn: 85},
	Libra:       {Gemini: 90, Aquarius: 85, Leo: 80},
	Scorpio:     {Cancer: 90, Pisces: 85, Virgo: 80},
	Sagittarius: {Aries: 90, Leo: 85, Aquarius: 80},
	Capricorn:   {Taurus: 88, Virgo: 85, Scorpio: 80},
	Aquarius:    {Gemini: 90, Libra: 85, Sagittarius: 80},
	Pisces:      {Cancer: 90, Scorpio: 85, Taurus: 80, Virgo: 80},
}

// Lookup returns the compatibility percentage of a against b
func Lookup(a, b Sign) int {
	if pct, ok := chart[a][b]; ok {
		return pct
	}
	return DefaultCompatibility
}
