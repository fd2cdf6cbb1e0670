package analysis

import "errors"

// ErrDegeneratePeriod reports a period whose document count is zero at
// aggregation time. The mean for such a period is 0/0; the row is
// excluded and the condition surfaced rather than coerced to zero.
var ErrDegeneratePeriod = errors.New("period has no documents")

// ErrNoVocabulary reports that term selection produced no terms, so no
// matrix can be built.
var ErrNoVocabulary = errors.New("no terms selected")
