package zodiac

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

type Sign string

const (
	Capricorn   Sign = "Capricorn"
	Aquarius    Sign = "Aquarius"
	Pisces      Sign = "Pisces"
	Aries       Sign = "Aries"
	Taurus      Sign = "Taurus"
	Gemini      Sign = "Gemini"
	Cancer      Sign = "Cancer"
	Leo         Sign = "Leo"
	Virgo       Sign = "Virgo"
	Libra       Sign = "Libra"
	Scorpio     Sign = "Scorpio"
	Sagittarius Sign = "Sagittarius"
)

// Signs is the fixed cycle, indexed by month-1 for the sign a month starts in
var Signs = [12]Sign{
	Capricorn, Aquarius, Pisces, Aries, Taurus, Gemini,
	Cancer, Leo, Virgo, Libra, Scorpio, Sagittarius,
}

// boundaries holds the last day of each month that still belongs to Signs[month-1]
var boundaries = [12]int{20, 19, 20, 20, 21, 21, 22, 22, 22, 23, 22, 21}

var birthdatePattern = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)

// ErrInvalidBirthdate is returned when input is not DD/MM/YYYY
var ErrInvalidBirthdate = errors.New("invalid birthdate format")

// Birthdate is a parsed DD/MM/YYYY value. Day is not checked against the month.
type Birthdate struct {
	Day   int
	Month int
	Year  int
}

func (b Birthdate) String() string {
	return fmt.Sprintf("%02d/%02d/%04d", b.Day, b.Month, b.Year)
}

// Sign derives the zodiac sign for the birthdate
func (b Birthdate) Sign() Sign {
	return DeriveSign(b.Day, b.Month)
}

// ParseBirthdate accepts exactly DD/MM/YYYY. Impossible days such as 31/04
// pass; a month outside 1..12 does not since it has no sign.
func ParseBirthdate(s string) (Birthdate, error) {
	s = strings.TrimSpace(s)
	if !birthdatePattern.MatchString(s) {
		return Birthdate{}, fmt.Errorf("%w: %q", ErrInvalidBirthdate, s)
	}

	parts := strings.Split(s, "/")
	day, _ := strconv.Atoi(parts[0])
	month, _ := strconv.Atoi(parts[1])
	year, _ := strconv.Atoi(parts[2])

	if month < 1 || month > 12 {
		return Birthdate{}, fmt.Errorf("%w: month %d", ErrInvalidBirthdate, month)
	}

	return Birthdate{Day: day, Month: month, Year: year}, nil
}

// DeriveSign returns the sign for a day and month (1-12). Past the month's
// boundary day the next sign in the cycle is used. It panics for a month
// outside 1..12; ParseBirthdate never yields one.
func DeriveSign(day, month int) Sign {
	if day > boundaries[month-1] {
		return Signs[month%12]
	}
	return Signs[month-1]
}
