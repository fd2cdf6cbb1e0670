// Package period classifies document years into fixed historical buckets.
package period

// Period identifies one of the six fixed historical buckets used to
// segment the corpus, or Unknown for years outside every bucket.
type Period int

const (
	// P1970s covers 1970–1979.
	P1970s Period = iota
	// P1980to87 covers 1980–1987.
	P1980to87
	// P1988to95 covers 1988–1995.
	P1988to95
	// P1996to2007 covers 1996–2007.
	P1996to2007
	// P2008to14 covers 2008–2014.
	P2008to14
	// P2015to23 covers 2015–2023.
	P2015to23
	// Unknown is the sentinel for years outside all buckets.
	Unknown
)

// bucket is one inclusive year range.
type bucket struct {
	from, to int
	period   Period
}

// buckets in ascending order; Classify returns the first match.
var buckets = []bucket{
	{1970, 1979, P1970s},
	{1980, 1987, P1980to87},
	{1988, 1995, P1988to95},
	{1996, 2007, P1996to2007},
	{2008, 2014, P2008to14},
	{2015, 2023, P2015to23},
}

// labels match the row keys produced by the reference analysis; the
// numbered prefix keeps spreadsheet sorting aligned with bucket order.
var labels = map[Period]string{
	P1970s:      "1. 1970–1979",
	P1980to87:   "2. 1980–1987",
	P1988to95:   "3. 1988–1995",
	P1996to2007: "4. 1996–2007",
	P2008to14:   "5. 2008–2014",
	P2015to23:   "6. 2015–2023",
	Unknown:     "Unknown",
}

// Classify maps a year to its bucket. It is total: any integer is valid
// input and years outside every range yield Unknown.
func Classify(year int) Period {
	for _, b := range buckets {
		if year >= b.from && year <= b.to {
			return b.period
		}
	}
	return Unknown
}

// String returns the display label for the period.
func (p Period) String() string {
	if label, ok := labels[p]; ok {
		return label
	}
	return "Unknown"
}

// Valid reports whether p is one of the six buckets or Unknown.
func (p Period) Valid() bool {
	return p >= P1970s && p <= Unknown
}

// All returns the six buckets in fixed enumeration order. Unknown is
// excluded; callers that need it append it explicitly.
func All() []Period {
	return []Period{P1970s, P1980to87, P1988to95, P1996to2007, P2008to14, P2015to23}
}
