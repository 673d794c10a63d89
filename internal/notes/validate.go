package notes

import (
	"fmt"

	"example.com/noteapp/internal/stringsx"
)

// MinContentLength is the shortest content a note may hold, in characters.
const MinContentLength = 5

const ReasonContentMissing = "content missing"

var ReasonContentTooShort = fmt.Sprintf("content must be at least %d characters long", MinContentLength)

// Validate checks in and settles defaults. It runs before every create and update.
func Validate(in Input) (Draft, error) {
	if in.Content == nil || *in.Content == "" {
		return Draft{}, Invalid(ReasonContentMissing)
	}
	if stringsx.Len(*in.Content) < MinContentLength {
		return Draft{}, Invalid(ReasonContentTooShort)
	}

	d := Draft{Content: *in.Content}
	if in.Important != nil {
		d.Important = *in.Important
	}
	return d, nil
}
