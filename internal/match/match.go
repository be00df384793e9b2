// Package match finds subscriber records whose chosen field matches a
// free-text query.
package match

import (
	"strconv"
	"strings"

	"github.com/koolexil/koolbot/internal/canon"
	"github.com/koolexil/koolbot/internal/models"
)

// Find returns the indices of records whose value in field matches the
// query, in original record order and duplicate-free. A record is a hit
// when any of the following holds:
//
//  1. the normalized query is a substring of the normalized value;
//  2. the digits of the query are a non-empty substring of the digits
//     of the value (phone and meter numbers survive spreadsheet float
//     storage this way);
//  3. the query and value are equal after stripping a trailing ".0".
//
// An unknown field yields an empty result, not an error.
func Find(records []models.Subscriber, field models.Field, query string) []int {
	if !models.IsKnown(field) {
		return nil
	}

	rawQuery := strings.TrimSpace(query)
	normQuery := canon.NormalizeForMatch(rawQuery)
	digitQuery := canon.DigitsOnly(rawQuery)

	var hits []int
	for i := range records {
		value := fieldValue(&records[i], field)
		switch {
		case normQuery != "" && strings.Contains(canon.NormalizeForMatch(value), normQuery):
			hits = append(hits, i)
		case digitQuery != "" && strings.Contains(canon.DigitsOnly(value), digitQuery):
			hits = append(hits, i)
		case canon.StripTrailingZero(value) == canon.StripTrailingZero(rawQuery):
			hits = append(hits, i)
		}
	}
	return hits
}

// fieldValue renders the field as the string the matcher compares on.
func fieldValue(s *models.Subscriber, field models.Field) string {
	if models.IsNumeric(field) {
		return strconv.FormatFloat(s.Number(field), 'f', -1, 64)
	}
	return s.Text(field)
}
